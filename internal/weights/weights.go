// Package weights implements the sparse nonzero-weight dimension vector
// that salad.BloomizeWeighted consumes as a salad.WeightSet: a caller
// trains a Set from a reference corpus (or loads one from a prior run),
// and only n-grams whose dimension lands in the set get inserted into the
// training filter.
//
// The dimension index is xxhash.Sum64(ngram) reduced into a fixed
// dimension space; the same function must be used to build and to query
// the set.
package weights

import (
	"io"

	"github.com/RoaringBitmap/roaring"
	"github.com/cespare/xxhash/v2"
)

// Set is a sparse set of dimension indices with weight > 0, over a fixed
// dimension space. dimSpace must fit in 32 bits: roaring.Bitmap addresses
// uint32 values, and the default dimSpace (1<<20) is well within range.
type Set struct {
	bitmap   *roaring.Bitmap
	dimSpace uint64
}

// New allocates an empty Set over dimSpace dimensions.
func New(dimSpace uint64) *Set {
	return &Set{bitmap: roaring.New(), dimSpace: dimSpace}
}

// Dim maps an n-gram to its weight-vector index: xxhash.Sum64(ngram)
// reduced into the set's dimension space.
func (s *Set) Dim(ngram []byte) uint64 {
	return xxhash.Sum64(ngram) % s.dimSpace
}

// Add marks ngram's dimension as having weight > 0.
func (s *Set) Add(ngram []byte) {
	s.bitmap.Add(uint32(s.Dim(ngram)))
}

// AddDim marks a dimension index directly, for callers that already
// computed it (or are rehydrating from an external weight source).
func (s *Set) AddDim(dim uint64) {
	s.bitmap.Add(uint32(dim % s.dimSpace))
}

// Contains implements salad.WeightSet.
func (s *Set) Contains(dim uint64) bool {
	return s.bitmap.Contains(uint32(dim))
}

// Count reports how many dimensions currently have nonzero weight.
func (s *Set) Count() uint64 {
	return s.bitmap.GetCardinality()
}

// DimSpace reports the configured dimension space.
func (s *Set) DimSpace() uint64 { return s.dimSpace }

// WriteTo serializes the underlying bitmap, prefixed with the dimension
// space as a little-endian u64, so a Set round-trips independently of its
// constructor arguments.
func (s *Set) WriteTo(w io.Writer) (int64, error) {
	var buf [8]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(s.dimSpace >> (8 * uint(i)))
	}
	n, err := w.Write(buf[:])
	if err != nil {
		return int64(n), err
	}
	m, err := s.bitmap.WriteTo(w)
	return int64(n) + m, err
}

// ReadSet reconstructs a Set written by WriteTo.
func ReadSet(r io.Reader) (*Set, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, err
	}
	var dimSpace uint64
	for i := 0; i < 8; i++ {
		dimSpace |= uint64(buf[i]) << (8 * uint(i))
	}
	bm := roaring.New()
	if _, err := bm.ReadFrom(r); err != nil {
		return nil, err
	}
	return &Set{bitmap: bm, dimSpace: dimSpace}, nil
}
