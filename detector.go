package salad

import (
	"context"
	"io"
)

const defaultDimSpace = 1 << 20

// Detector owns a training filter and (when trained with a dual policy)
// an auxiliary filter, plus the n-gram configuration needed to extract
// consistently at both train and score time.
type Detector struct {
	ngramLength int
	mode        Mode
	delim       DelimiterSet
	bloom       *Bloom
	aux         *Bloom
	dimSpace    uint64
}

// NewDetector returns a Detector with no bloom filter and no ngram
// length configured yet. The weighted-training dimension space defaults
// to 1<<20; override with SetDimSpace before calling TrainWeighted.
func NewDetector() *Detector {
	return &Detector{mode: ModeByte, dimSpace: defaultDimSpace}
}

// Destroy releases the detector's filters. Go's GC reclaims the backing
// arrays regardless; Destroy lets long-lived callers drop large filters
// promptly rather than waiting on a future allocation to trigger GC.
func (d *Detector) Destroy() {
	d.bloom = nil
	d.aux = nil
}

// SetBloomfilter allocates the training filter and a same-shaped
// auxiliary filter, each with bitsize 2^sizeExp and the chosen hash set.
func (d *Detector) SetBloomfilter(sizeExp int, hs HashSet) error {
	bf, err := Init(sizeExp, hs)
	if err != nil {
		return err
	}
	aux, err := Init(sizeExp, hs)
	if err != nil {
		return err
	}
	d.bloom, d.aux = bf, aux
	return nil
}

// SetDimSpace overrides the default dimension space used by
// TrainWeighted's weight-vector indexing.
func (d *Detector) SetDimSpace(dimSpace uint64) error {
	if dimSpace == 0 {
		return errInvalid("dimSpace must be nonzero")
	}
	d.dimSpace = dimSpace
	return nil
}

// UseBinaryNgrams selects bit-mode (true) or byte-mode (false) n-grams.
// It is an error to call this while a nonempty delimiter set has put the
// detector in token mode; clear the delimiter first.
func (d *Detector) UseBinaryNgrams(asBinary bool) error {
	if d.mode == ModeToken {
		return errInvalid("cannot toggle binary n-grams while a delimiter set is active")
	}
	if asBinary {
		d.mode = ModeBit
	} else {
		d.mode = ModeByte
	}
	return nil
}

// SetDelimiter installs a delimiter set derived from the given string (percent-escapes
// decoded per delimiter.go). A nonempty decoded set switches the detector
// to token mode; an empty one reverts to byte mode if token mode was
// previously selected.
func (d *Detector) SetDelimiter(spec string) {
	ds := NewDelimiterSet(spec)
	d.delim = ds
	if !ds.Empty() {
		d.mode = ModeToken
	} else if d.mode == ModeToken {
		d.mode = ModeByte
	}
}

// SetNgramLength sets n for every extraction this detector performs.
func (d *Detector) SetNgramLength(n int) error {
	if n <= 0 {
		return errInvalid("ngram length must be positive")
	}
	d.ngramLength = n
	return nil
}

// Mode reports the detector's current alphabet.
func (d *Detector) Mode() Mode { return d.mode }

func (d *Detector) ready() error {
	if d.bloom == nil {
		return errInvalid("bloom filter not configured")
	}
	if d.ngramLength <= 0 {
		return errInvalid("ngram length not configured")
	}
	return nil
}

// Train pulls every input out of src and folds it into the training
// filter via BloomizeDual under policy, returning the stats summed across
// every input.
func (d *Detector) Train(ctx context.Context, src Source, policy DualPolicy) (Stats, error) {
	if err := d.ready(); err != nil {
		return Stats{}, err
	}
	var total Stats
	err := src.Recv(ctx, DefaultBatchSize, func(batch [][]byte) error {
		for _, buf := range batch {
			st, err := BloomizeDual(d.bloom, d.aux, d.mode, buf, d.ngramLength, d.delim, policy)
			if err != nil {
				return err
			}
			total.New += st.New
			total.Uniq += st.Uniq
			total.Total += st.Total
		}
		return nil
	})
	return total, err
}

// TrainWeighted is Train's weighted counterpart: only n-grams whose
// WeightDim is present in weights are inserted.
func (d *Detector) TrainWeighted(ctx context.Context, src Source, weights WeightSet) error {
	if err := d.ready(); err != nil {
		return err
	}
	return src.Recv(ctx, DefaultBatchSize, func(batch [][]byte) error {
		for _, buf := range batch {
			if err := BloomizeWeighted(d.bloom, d.mode, buf, d.ngramLength, d.delim, weights, d.dimSpace); err != nil {
				return err
			}
		}
		return nil
	})
}

// Predict computes one anomaly score per input pulled from src, in
// order.
func (d *Detector) Predict(ctx context.Context, src Source) ([]float64, error) {
	if err := d.ready(); err != nil {
		return nil, err
	}
	var scores []float64
	err := src.Recv(ctx, DefaultBatchSize, func(batch [][]byte) error {
		for _, buf := range batch {
			score, err := Anacheck(d.bloom, d.mode, buf, d.ngramLength, d.delim)
			if err != nil {
				return err
			}
			scores = append(scores, score)
		}
		return nil
	})
	return scores, err
}

// Predict2Class scores src against this detector's filter as the "bad"
// side and against good's filter as the "good" side. The two detectors
// must share mode, ngram length and delimiter configuration;
// Predict2Class uses the receiver's.
func (d *Detector) Predict2Class(ctx context.Context, src Source, good *Detector) ([]float64, error) {
	if err := d.ready(); err != nil {
		return nil, err
	}
	if good.bloom == nil {
		return nil, errInvalid("good detector's bloom filter not configured")
	}
	var scores []float64
	err := src.Recv(ctx, DefaultBatchSize, func(batch [][]byte) error {
		for _, buf := range batch {
			score, err := Anacheck2Class(good.bloom, d.bloom, d.mode, buf, d.ngramLength, d.delim)
			if err != nil {
				return err
			}
			scores = append(scores, score)
		}
		return nil
	})
	return scores, err
}

// Inspect derives an InspectResult for stats accumulated against this
// detector's training filter (e.g. from a DualCount-policy Train call
// used purely for reporting, without mutating the filter).
func (d *Detector) Inspect(st Stats) InspectResult {
	return Inspect(st, d.bloom)
}

// SpecDiff returns zero iff the two detectors' training filters are
// bit-for-bit identical.
func (d *Detector) SpecDiff(other *Detector) int {
	return Compare(d.bloom, other.bloom)
}

// ToFile persists the detector as a Model.
func (d *Detector) ToFile(w io.Writer) error {
	if err := d.ready(); err != nil {
		return err
	}
	m := &Model{
		NgramLength: uint64(d.ngramLength),
		Delim:       d.delim,
		HashIDs:     d.bloom.FuncIDs(),
		Bloom:       d.bloom,
	}
	return EncodeModel(w, m)
}

// FromFile rehydrates a Detector from a Model previously written by
// ToFile. asBinary resolves the bit-vs-byte ambiguity the file format
// cannot represent when the stored delimiter string is empty; it is
// ignored when the stored delimiter string is nonempty (token mode).
func FromFile(r io.Reader, asBinary bool) (*Detector, error) {
	m, err := DecodeModel(r)
	if err != nil {
		return nil, err
	}
	d := &Detector{
		ngramLength: int(m.NgramLength),
		delim:       m.Delim,
		bloom:       m.Bloom,
		dimSpace:    defaultDimSpace,
	}
	switch {
	case !m.Delim.Empty():
		d.mode = ModeToken
	case asBinary:
		d.mode = ModeBit
	default:
		d.mode = ModeByte
	}

	aux, err := NewBloom(m.Bloom.BitSize())
	if err != nil {
		return nil, err
	}
	if err := aux.SetHashFuncs(m.HashIDs); err != nil {
		return nil, err
	}
	d.aux = aux
	return d, nil
}
