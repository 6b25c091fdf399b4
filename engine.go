package salad

import (
	"math"

	"github.com/cespare/xxhash/v2"
)

// Mode selects which of the three n-gram alphabets an extraction runs
// over. A detector fixes its Mode at training time; scoring with a
// different Mode than training produced is a caller error.
type Mode int

const (
	ModeByte Mode = iota
	ModeBit
	ModeToken
)

func (m Mode) String() string {
	switch m {
	case ModeByte:
		return "byte"
	case ModeBit:
		return "bit"
	case ModeToken:
		return "token"
	default:
		return "unknown"
	}
}

// extractNgrams dispatches to the alphabet-specific iterator in
// ngram_byte.go / ngram_bit.go / ngram_token.go. Byte and bit extraction
// never fail; token extraction fails when ds has no delimiter assigned.
func extractNgrams(mode Mode, s []byte, n int, ds DelimiterSet, sink NgramSink) error {
	switch mode {
	case ModeByte:
		ExtractByteGrams(s, n, sink)
		return nil
	case ModeBit:
		ExtractBitGrams(s, n, sink)
		return nil
	case ModeToken:
		return ExtractTokenGrams(s, n, ds, sink)
	default:
		return errInvalid("unknown mode")
	}
}

// WeightSet is the dimension membership test BloomizeWeighted consumes.
// internal/weights.Set (a roaring-bitmap-backed sparse set keyed by
// xxhash(ngram) % dimSpace) is the concrete implementation this repo
// ships, but the engine only depends on this interface.
type WeightSet interface {
	Contains(dim uint64) bool
}

// WeightDim is the fixed, reproducible function used to index a weight
// vector. It must be the same function used to build the weight vector,
// not merely a hash with good spread.
func WeightDim(ngram []byte, dimSpace uint64) uint64 {
	return xxhash.Sum64(ngram) % dimSpace
}

// Bloomize inserts every n-gram of s into b.
func Bloomize(b *Bloom, mode Mode, s []byte, n int, ds DelimiterSet) error {
	return extractNgrams(mode, s, n, ds, func(ngram []byte, length int) bool {
		b.Add(ngram, length)
		return true
	})
}

// BloomizeWeighted inserts only the n-grams whose WeightDim is present in
// weights (weight strictly greater than zero).
func BloomizeWeighted(b *Bloom, mode Mode, s []byte, n int, ds DelimiterSet, weights WeightSet, dimSpace uint64) error {
	return extractNgrams(mode, s, n, ds, func(ngram []byte, length int) bool {
		if weights.Contains(WeightDim(ngram, dimSpace)) {
			b.Add(ngram, length)
		}
		return true
	})
}

// DualPolicy selects which filters a dual-filter training pass mutates.
// The two semantics differ only in whether the training filter itself is
// written; both are exposed as an explicit caller choice.
type DualPolicy int

const (
	// DualCountedAdd is Variant A (counted_add): an n-gram unseen in B1 is
	// counted as new and inserted into B1; an n-gram unseen in B2 is
	// counted as uniq and inserted into B2.
	DualCountedAdd DualPolicy = iota
	// DualCount is Variant B (count): B1 is read-only; only B2 receives
	// inserts.
	DualCount
)

func (p DualPolicy) String() string {
	if p == DualCount {
		return "count"
	}
	return "counted_add"
}

// Stats accumulates the per-input counters of a dual-filter pass: new
// (absent from the training filter), uniq (distinct within this input,
// per the auxiliary filter), and total n-grams seen.
type Stats struct {
	New, Uniq, Total uint64
}

// BloomizeDual inserts s's n-grams into b1 under policy while tracking
// Stats against the auxiliary filter b2, which is always cleared first.
func BloomizeDual(b1, b2 *Bloom, mode Mode, s []byte, n int, ds DelimiterSet, policy DualPolicy) (Stats, error) {
	b2.Clear()
	var st Stats
	err := extractNgrams(mode, s, n, ds, func(ngram []byte, length int) bool {
		st.Total++
		newB1 := !b1.Check(ngram, length)
		if newB1 {
			st.New++
			if policy == DualCountedAdd {
				b1.Add(ngram, length)
			}
		}
		if !b2.Check(ngram, length) {
			st.Uniq++
			b2.Add(ngram, length)
		}
		return true
	})
	return st, err
}

// Anacheck returns the anomaly score (total-known)/total over b, or NaN
// when s yields zero n-grams so callers can filter empty inputs without
// a hard error.
func Anacheck(b *Bloom, mode Mode, s []byte, n int, ds DelimiterSet) (float64, error) {
	var total, known uint64
	err := extractNgrams(mode, s, n, ds, func(ngram []byte, length int) bool {
		total++
		if b.Check(ngram, length) {
			known++
		}
		return true
	})
	if err != nil {
		return 0, err
	}
	if total == 0 {
		return math.NaN(), nil
	}
	return float64(total-known) / float64(total), nil
}

// Anacheck2Class returns the discriminative score (known_bad-known_good)/
// total; positive means more like "bad".
func Anacheck2Class(bGood, bBad *Bloom, mode Mode, s []byte, n int, ds DelimiterSet) (float64, error) {
	var total, kGood, kBad uint64
	err := extractNgrams(mode, s, n, ds, func(ngram []byte, length int) bool {
		total++
		if bGood.Check(ngram, length) {
			kGood++
		}
		if bBad.Check(ngram, length) {
			kBad++
		}
		return true
	})
	if err != nil {
		return 0, err
	}
	if total == 0 {
		return math.NaN(), nil
	}
	return (float64(kBad) - float64(kGood)) / float64(total), nil
}
