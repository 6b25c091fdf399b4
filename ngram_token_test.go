package salad

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUniquify(t *testing.T) {
	ds := NewDelimiterSet("\r\n \t")
	ch, ok := ds.CanonicalSeparator()
	require.True(t, ok)
	require.Equal(t, byte('\t'), ch)

	got := uniquify([]byte("a  b\tc\n"), ds, ch)
	require.Equal(t, "a\tb\tc\t", string(got))
}

func TestUniquifyEdgeInputs(t *testing.T) {
	ds := NewDelimiterSet(" ")
	ch, ok := ds.CanonicalSeparator()
	require.True(t, ok)

	require.Empty(t, uniquify(nil, ds, ch))
	require.Empty(t, uniquify([]byte("   "), ds, ch), "all-delimiter input yields no tokens")
	require.Equal(t, "a ", string(uniquify([]byte("  a"), ds, ch)), "leading run produces no leading separator")
	require.Equal(t, "a ", string(uniquify([]byte("a"), ds, ch)))
}

func TestTokenGramsAllDelimiterInput(t *testing.T) {
	ds := NewDelimiterSet(" ")
	var got []string
	err := ExtractTokenGrams([]byte("     "), 1, ds, func(ngram []byte, length int) bool {
		got = append(got, string(ngram))
		return true
	})
	require.NoError(t, err)
	require.Empty(t, got)
}

// With delimiters "\r\n \t", input "a  b\tc\n" and n=2 must yield the
// token pairs (a,b) and (b,c).
func TestTokenModeCanonicalization(t *testing.T) {
	ds := NewDelimiterSet("\r\n \t")

	var got []string
	err := ExtractTokenGrams([]byte("a  b\tc\n"), 2, ds, func(ngram []byte, length int) bool {
		got = append(got, string(ngram))
		return true
	})
	require.NoError(t, err)
	require.Equal(t, []string{"a\tb", "b\tc"}, got)
}

func TestTokenGramsFewerThanNTokens(t *testing.T) {
	ds := NewDelimiterSet(" ")
	var got []string
	err := ExtractTokenGrams([]byte("solo"), 2, ds, func(ngram []byte, length int) bool {
		got = append(got, string(ngram))
		return true
	})
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestTokenGramsEmptyInput(t *testing.T) {
	ds := NewDelimiterSet(" ")
	var got []string
	err := ExtractTokenGrams(nil, 1, ds, func(ngram []byte, length int) bool {
		got = append(got, string(ngram))
		return true
	})
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestTokenGramsRefusesEmptyDelimiterSet(t *testing.T) {
	ds := NewDelimiterSet("")
	err := ExtractTokenGrams([]byte("a b"), 1, ds, func(ngram []byte, length int) bool {
		return true
	})
	require.Error(t, err)
}

func TestTokenGramsNoEmptyTokensFromConsecutiveDelimiters(t *testing.T) {
	ds := NewDelimiterSet(" ")
	var got []string
	err := ExtractTokenGrams([]byte("a     b"), 1, ds, func(ngram []byte, length int) bool {
		got = append(got, string(ngram))
		return true
	})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, got)
}
