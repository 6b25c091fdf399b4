package salad

import (
	"io"
	"math"
	"math/bits"
)

// Bloom is a bit-array Bloom filter addressed by a pluggable, ordered list
// of hash functions. It carries no false negatives; membership checks can
// return false positives. A Bloom is not safe for concurrent mutation;
// concurrent reads are safe iff no writer is active. Bits are addressed
// individually, so bitsize need not be a multiple of 8.
type Bloom struct {
	bitsize uint64
	bits    []byte
	funcIDs []int
}

// NewBloom allocates a zeroed filter with no hash functions assigned yet.
// bitsize must be nonzero.
func NewBloom(bitsize uint64) (*Bloom, error) {
	if bitsize == 0 {
		return nil, errInvalid("bitsize must be nonzero")
	}
	size := byteSize(bitsize)
	if size > math.MaxInt {
		return nil, errAllocFailure("bloom bit array too large to allocate")
	}
	return &Bloom{
		bitsize: bitsize,
		bits:    make([]byte, size),
	}, nil
}

func byteSize(bitsize uint64) uint64 {
	return (bitsize + 7) / 8
}

// SetHashFuncs replaces the filter's hash-function list. Order matters: it
// determines which bits get set. len(ids) must be in [1, 255] and every id
// must be a valid registry index.
func (b *Bloom) SetHashFuncs(ids []int) error {
	if len(ids) == 0 {
		return errInvalid("nfuncs must be at least 1")
	}
	if len(ids) > 255 {
		return errInvalid("nfuncs must be at most 255")
	}
	for _, id := range ids {
		if id < 0 || id >= NumHashFuncs {
			return errInvalid("hash id out of range")
		}
	}
	b.funcIDs = append([]int(nil), ids...)
	return nil
}

// Init is the create(bitsize)+set_hashfuncs(hashset) shorthand: bitsize =
// 2^sizeExp. sizeExp must be at most the machine word bit width.
func Init(sizeExp int, hs HashSet) (*Bloom, error) {
	if sizeExp <= 0 || sizeExp > bits.UintSize {
		return nil, errInvalid("size exponent out of range")
	}
	bf, err := NewBloom(uint64(1) << uint(sizeExp))
	if err != nil {
		return nil, err
	}
	if err := bf.SetHashFuncs(hs.IDs); err != nil {
		return nil, err
	}
	return bf, nil
}

// NFuncs reports how many hash functions are assigned.
func (b *Bloom) NFuncs() int { return len(b.funcIDs) }

// FuncIDs returns a copy of the assigned hash-function ids, in order.
func (b *Bloom) FuncIDs() []int { return append([]int(nil), b.funcIDs...) }

// BitSize reports the logical number of addressable bits.
func (b *Bloom) BitSize() uint64 { return b.bitsize }

// Size reports the number of bytes backing the filter (ceil(bitsize/8)).
func (b *Bloom) Size() uint64 { return uint64(len(b.bits)) }

func (b *Bloom) setBit(idx uint64) {
	b.bits[idx/8] |= 1 << (idx % 8)
}

func (b *Bloom) getBit(idx uint64) bool {
	return b.bits[idx/8]&(1<<(idx%8)) != 0
}

// Add sets, for each assigned hash function h, the bit h(data,length) mod
// bitsize. Adding an empty slice is well-defined (not a no-op): it sets the
// bits produced by hashing the empty string.
func (b *Bloom) Add(data []byte, length int) {
	for _, id := range b.funcIDs {
		h := hashFuncs[id](data, length)
		b.setBit(uint64(h) % b.bitsize)
	}
}

// AddNum is equivalent to Add over the word's little-endian byte
// representation.
func (b *Bloom) AddNum(word uint64) {
	buf := wordBytes(word)
	b.Add(buf, len(buf))
}

// Check returns true iff every assigned hash function indexes a set bit.
// No false negatives; false positives are possible.
func (b *Bloom) Check(data []byte, length int) bool {
	for _, id := range b.funcIDs {
		h := hashFuncs[id](data, length)
		if !b.getBit(uint64(h) % b.bitsize) {
			return false
		}
	}
	return true
}

// CheckNum is the AddNum counterpart of Check.
func (b *Bloom) CheckNum(word uint64) bool {
	buf := wordBytes(word)
	return b.Check(buf, len(buf))
}

func wordBytes(word uint64) []byte {
	buf := make([]byte, 8)
	for i := 0; i < 8; i++ {
		buf[i] = byte(word >> (8 * uint(i)))
	}
	return buf
}

// Clear zeroes the bit array; size and assigned hash functions are
// preserved.
func (b *Bloom) Clear() {
	for i := range b.bits {
		b.bits[i] = 0
	}
}

// Count returns the popcount over the bit array. Bits beyond bitsize within
// the final byte are always zero (Add/Check only ever address bits below
// bitsize), so Count never sees stray high bits.
func (b *Bloom) Count() uint64 {
	var n uint64
	for _, by := range b.bits {
		n += uint64(bits.OnesCount8(by))
	}
	return n
}

// Compare returns 0 iff bitsize, size, and the bit array are byte-equal.
// The hash-function lists are intentionally not compared here; ids are
// compared at the model-codec level instead. The ordering returned for
// unequal filters is arbitrary but consistent.
func Compare(a, b *Bloom) int {
	if a.bitsize != b.bitsize {
		if a.bitsize < b.bitsize {
			return -1
		}
		return 1
	}
	if len(a.bits) != len(b.bits) {
		if len(a.bits) < len(b.bits) {
			return -1
		}
		return 1
	}
	return memcmpBytes(a.bits, b.bits, len(a.bits))
}

// memcmpBytes compares the first n bytes of a and b, returning 0 on
// equality and -1/1 by the first differing byte.
func memcmpBytes(a, b []byte, n int) int {
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// ToStream writes the bloom payload: u64 bitsize, u64 size, then size
// raw bytes, all little-endian.
func (b *Bloom) ToStream(w io.Writer) error {
	wr := newWriter(w)
	wr.u64(b.bitsize)
	wr.u64(uint64(len(b.bits)))
	wr.bytes(b.bits)
	return wr.err
}

// FromStream reads a bloom payload written by ToStream and assigns funcIDs
// (which are not part of the bloom payload itself: the model codec reads
// the hash spec separately and passes it in here).
func FromStream(r io.Reader, funcIDs []int) (*Bloom, error) {
	rd := newReader(r)
	bitsize := rd.u64()
	size := rd.u64()
	if rd.err != nil {
		return nil, errMalformed("short read of bloom payload")
	}
	if bitsize == 0 || size != byteSize(bitsize) {
		return nil, errMalformed("inconsistent bloom dimensions")
	}
	if size > math.MaxInt {
		return nil, errMalformed("bloom bit array too large")
	}
	buf := rd.bytesN(int(size))
	if rd.err != nil {
		return nil, errMalformed("short read of bloom bit array")
	}
	bf := &Bloom{bitsize: bitsize, bits: buf}
	if len(funcIDs) > 0 {
		if err := bf.SetHashFuncs(funcIDs); err != nil {
			return nil, errMalformed(err.Error())
		}
	}
	return bf, nil
}
