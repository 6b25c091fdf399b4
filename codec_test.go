package salad

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestModelRoundTrip(t *testing.T) {
	bf, err := Init(16, Simple)
	require.NoError(t, err)
	bf.Add([]byte("hello"), 5)
	bf.Add([]byte("world"), 5)

	m := &Model{
		NgramLength: 3,
		Delim:       NewDelimiterSet("%20"),
		HashIDs:     Simple.IDs,
		Bloom:       bf,
	}

	var buf bytes.Buffer
	require.NoError(t, EncodeModel(&buf, m))

	got, err := DecodeModel(&buf)
	require.NoError(t, err)

	require.Equal(t, m.NgramLength, got.NgramLength)
	require.Equal(t, m.Delim.String(), got.Delim.String())
	require.Equal(t, m.HashIDs, got.HashIDs)
	require.Equal(t, 0, Compare(m.Bloom, got.Bloom))
}

func TestModelRoundTripByteMode(t *testing.T) {
	bf, err := Init(12, Murmur)
	require.NoError(t, err)

	m := &Model{NgramLength: 5, Delim: NewDelimiterSet(""), HashIDs: Murmur.IDs, Bloom: bf}

	var buf bytes.Buffer
	require.NoError(t, EncodeModel(&buf, m))

	got, err := DecodeModel(&buf)
	require.NoError(t, err)
	require.True(t, got.Delim.Empty())
}

func TestModelRoundTripNulDelimiter(t *testing.T) {
	bf, err := Init(10, Simple)
	require.NoError(t, err)

	// A NUL delimiter byte only survives the NUL-terminated on-disk string
	// because the escaped expression is what gets persisted.
	m := &Model{NgramLength: 2, Delim: NewDelimiterSet("%00"), HashIDs: Simple.IDs, Bloom: bf}

	var buf bytes.Buffer
	require.NoError(t, EncodeModel(&buf, m))

	got, err := DecodeModel(&buf)
	require.NoError(t, err)
	require.Equal(t, "%00", got.Delim.String())
	require.True(t, got.Delim.Is(0))
	require.False(t, got.Delim.Empty())
}

func TestDecodeModelShortRead(t *testing.T) {
	_, err := DecodeModel(bytes.NewReader(nil))
	require.Error(t, err)
	saladErr, ok := err.(*Error)
	require.True(t, ok)
	require.Equal(t, MalformedModel, saladErr.Kind)
}

func TestDecodeModelZeroNgramLength(t *testing.T) {
	var buf bytes.Buffer
	wr := newWriter(&buf)
	wr.cstr("")
	wr.u64(0)
	require.NoError(t, wr.err)

	_, err := DecodeModel(&buf)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrMalformedModel)
}

func TestDecodeModelHashIDOutOfRange(t *testing.T) {
	var buf bytes.Buffer
	wr := newWriter(&buf)
	wr.cstr("")
	wr.u64(3)
	wr.byt(1)
	wr.byt(byte(NumHashFuncs)) // out of range
	require.NoError(t, wr.err)

	_, err := DecodeModel(&buf)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrMalformedModel)
}

func TestEncodeModelRejectsBadHashSpec(t *testing.T) {
	bf, err := Init(8, Simple)
	require.NoError(t, err)
	m := &Model{NgramLength: 1, Delim: NewDelimiterSet(""), HashIDs: nil, Bloom: bf}
	require.Error(t, EncodeModel(&bytes.Buffer{}, m))
}
