package salad

import "math"

// InspectResult is the batch-level summary reported alongside a dual-
// filter training or scoring pass: the raw Stats counters plus the
// derived saturation and expected false-positive rate of the training
// filter.
type InspectResult struct {
	New, Uniq, Total uint64
	Saturation       float64
	ExpectedFPR      float64
}

// Inspect derives InspectResult from an accumulated Stats and the
// training filter b: saturation = count(b)/bitsize, expected FPR =
// (1-e^(-k*n/m))^k with m=bitsize, k=nfuncs, n=Uniq (total unique
// n-grams seen in the batch).
func Inspect(st Stats, b *Bloom) InspectResult {
	m := float64(b.BitSize())
	k := float64(b.NFuncs())
	n := float64(st.Uniq)
	return InspectResult{
		New:         st.New,
		Uniq:        st.Uniq,
		Total:       st.Total,
		Saturation:  float64(b.Count()) / m,
		ExpectedFPR: math.Pow(1-math.Exp(-k*n/m), k),
	}
}
