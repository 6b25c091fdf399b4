package salad

// NgramSink receives each extracted n-gram plus its length. Byte n-grams
// are slices into the input buffer; bit n-grams share one packed buffer
// that is overwritten for every window; token n-grams are slices into the
// canonicalized copy of the input. Extraction is pushed to the sink to
// keep the inner loop allocation-free. Returning false stops extraction
// early.
type NgramSink func(ngram []byte, length int) (cont bool)

// ExtractByteGrams yields max(0, len(s)-n+1) windows of length n, sliding by
// one byte.
func ExtractByteGrams(s []byte, n int, sink NgramSink) {
	if n <= 0 || len(s) < n {
		return
	}
	for i := 0; i+n <= len(s); i++ {
		if !sink(s[i:i+n], n) {
			return
		}
	}
}

// CountByteGrams reports the n-gram count without extracting:
// max(0, sLen-n+1).
func CountByteGrams(sLen, n int) int {
	if n <= 0 || sLen < n {
		return 0
	}
	return sLen - n + 1
}
