package salad

// uniquify rewrites s so that every maximal run of delimiter bytes becomes
// exactly one occurrence of csep and a non-empty result always ends in
// csep (a trailing separator is appended if s doesn't already end on a
// delimiter run). Starting inRun as true swallows a leading delimiter run
// and keeps empty and all-delimiter inputs empty, so no empty token is
// ever produced.
func uniquify(s []byte, ds DelimiterSet, csep byte) []byte {
	out := make([]byte, 0, len(s)+1)
	inRun := true
	for i := 0; i < len(s); i++ {
		b := s[i]
		if ds.Is(b) {
			if !inRun {
				out = append(out, csep)
				inRun = true
			}
			continue
		}
		inRun = false
		out = append(out, b)
	}
	if !inRun {
		out = append(out, csep)
	}
	return out
}

// ExtractTokenGrams splits s into delimiter-separated tokens and yields each
// run of n consecutive tokens (joined by the canonical separator, with no
// leading or trailing separator) as a single n-gram. Token mode is
// ill-defined over an empty delimiter set, which is reported as an error
// rather than silently producing byte-grams.
//
// The boundaries slice records the offset of every token boundary in the
// canonicalized stream up front, so each n-gram closes in O(1) without
// rescanning.
func ExtractTokenGrams(s []byte, n int, ds DelimiterSet, sink NgramSink) error {
	if n <= 0 {
		return nil
	}
	csep, ok := ds.CanonicalSeparator()
	if !ok {
		return errInvalid("token mode requires a nonempty delimiter set")
	}
	canon := uniquify(s, ds, csep)

	boundaries := make([]int, 1, 16)
	boundaries[0] = 0
	for i := 0; i < len(canon); i++ {
		if canon[i] == csep {
			boundaries = append(boundaries, i)
		}
	}

	for k := 0; k+n < len(boundaries); k++ {
		start := boundaries[k]
		if k > 0 {
			start++ // step past the separator byte that closes the previous token
		}
		end := boundaries[k+n]
		if !sink(canon[start:end], end-start) {
			return nil
		}
	}
	return nil
}
