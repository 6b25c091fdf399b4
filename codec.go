package salad

import "io"

// Model is the on-disk detector representation. Whether an empty-
// delimiter model was trained over bytes or bits is not recorded; the
// caller supplies that choice when loading, and it must match between
// training and scoring.
type Model struct {
	NgramLength uint64
	Delim       DelimiterSet
	HashIDs     []int
	Bloom       *Bloom
}

// EncodeModel writes m in the fixed on-disk layout: a NUL-terminated
// delimiter string (stored in its escaped form, so delimiter bytes like
// %00 survive NUL termination), ngram_length as u64, a u8 nfuncs followed
// by nfuncs u8 hash ids, then the bloom payload.
func EncodeModel(w io.Writer, m *Model) error {
	if len(m.HashIDs) == 0 || len(m.HashIDs) > 255 {
		return errInvalid("nfuncs must be in [1, 255]")
	}
	for _, id := range m.HashIDs {
		if id < 0 || id >= NumHashFuncs {
			return errInvalid("hash id out of range")
		}
	}

	wr := newWriter(w)
	wr.cstr(m.Delim.String())
	wr.u64(m.NgramLength)
	wr.byt(byte(len(m.HashIDs)))
	for _, id := range m.HashIDs {
		wr.byt(byte(id))
	}
	if wr.err != nil {
		return wr.err
	}
	return m.Bloom.ToStream(w)
}

// DecodeModel reads a model written by EncodeModel. Any short read, any
// out-of-range hash id, a zero ngram_length, or a bloom construction
// failure is folded into a single MalformedModel error; no partially
// built Model is returned to the caller on failure.
func DecodeModel(r io.Reader) (*Model, error) {
	rd := newReader(r)
	delimExpr := rd.cstr()
	ngramLength := rd.u64()
	if rd.err != nil {
		return nil, errMalformed("short read of model header")
	}
	if ngramLength == 0 {
		return nil, errMalformed("ngram_length must be nonzero")
	}

	nfuncs := rd.byt()
	if rd.err != nil {
		return nil, errMalformed("short read of hash spec")
	}
	if nfuncs == 0 {
		return nil, errMalformed("nfuncs must be at least 1")
	}
	ids := make([]int, nfuncs)
	for i := range ids {
		id := rd.byt()
		if rd.err != nil {
			return nil, errMalformed("short read of hash spec")
		}
		if int(id) >= NumHashFuncs {
			return nil, errMalformed("hash id out of range")
		}
		ids[i] = int(id)
	}

	bf, err := FromStream(r, ids)
	if err != nil {
		return nil, err
	}

	return &Model{
		NgramLength: ngramLength,
		Delim:       NewDelimiterSet(delimExpr),
		HashIDs:     ids,
		Bloom:       bf,
	}, nil
}
