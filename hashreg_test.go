package salad

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestHashVectors locks the three simple, hand-computable algorithms on
// short fixed strings; once set these must never drift, since model files
// record only hash ids. The murmur family's multiplicative mixing isn't
// practical to hand-verify, so it's covered by determinism and
// cross-variant distinctness below instead.
func TestHashVectors(t *testing.T) {
	cases := []struct {
		name string
		fn   HashFunc
		s    string
		want uint32
	}{
		{"sax empty", saxHash, "", 0},
		{"sax a", saxHash, "a", 97},
		{"sax ab", saxHash, "ab", 3323},
		{"sdbm empty", sdbmHash, "", 0},
		{"sdbm a", sdbmHash, "a", 97},
		{"bernstein empty", bernsteinHash, "", 0},
		{"bernstein a", bernsteinHash, "a", 97},
		{"bernstein ab", bernsteinHash, "ab", 3299}, // 97*33+98
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.fn([]byte(tc.s), len(tc.s)))
		})
	}
}

func TestHashSelfConsistency(t *testing.T) {
	inputs := []string{"", "a", "abc", "The quick brown fox"}
	for _, fn := range AllHashes() {
		for _, s := range inputs {
			a := fn([]byte(s), len(s))
			b := fn([]byte(s), len(s))
			require.Equal(t, a, b, "hash must be a pure function of its input")
		}
	}
}

func TestHashEmptyInput(t *testing.T) {
	for _, fn := range AllHashes() {
		require.Equal(t, uint32(0), fn(nil, 0))
	}
}

func TestAllHashesDistinctOnNonTrivialInput(t *testing.T) {
	fns := AllHashes()
	require.Len(t, fns, NumHashFuncs)

	seen := map[uint32]int{}
	for _, fn := range fns {
		seen[fn([]byte("distinguish me"), len("distinguish me"))]++
	}
	// Not a hard collision-freedom guarantee, but catches the copy-paste
	// class of bug where two "different" functions are byte-identical.
	require.GreaterOrEqual(t, len(seen), NumHashFuncs-1)
}

func TestHashSetByName(t *testing.T) {
	simple, err := HashSetByName("simple")
	require.NoError(t, err)
	require.Equal(t, Simple, simple)

	murmur, err := HashSetByName("murmur")
	require.NoError(t, err)
	require.Equal(t, Murmur, murmur)

	_, err = HashSetByName("nonexistent")
	require.Error(t, err)
}

func TestFuncAtOutOfRange(t *testing.T) {
	_, err := FuncAt(-1)
	require.Error(t, err)
	_, err = FuncAt(NumHashFuncs)
	require.Error(t, err)

	f, err := FuncAt(0)
	require.NoError(t, err)
	require.NotNil(t, f)
}

func TestIDOfRoundTrips(t *testing.T) {
	for id := 0; id < NumHashFuncs; id++ {
		f, err := FuncAt(id)
		require.NoError(t, err)
		require.Equal(t, id, IDOf(f))
	}
}

func TestMurmurVariantsDistinctFamily(t *testing.T) {
	s := []byte("abc")
	m0 := murmurHash0(s, len(s))
	m1 := murmurHash1(s, len(s))
	m2 := murmurHash2(s, len(s))
	require.NotEqual(t, m0, m2, "murmur0 must differ from murmur2 (no finalization avalanche)")
	require.NotEqual(t, m0, m1)
	require.NotEqual(t, m1, m2)
}
