package predict

import (
	"math/rand/v2"
	"testing"

	"github.com/hbollon/go-edlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitDistance() EditDistance {
	return EditDistance{DeletionWeight: 1, InsertionWeight: 1, ReplaceWeight: 1, TranspositionWeight: 1}
}

func defaultDistance() EditDistance {
	return EditDistanceFrom(DefaultSettings(), nil)
}

// Pairs where the diagonal-only dynamic program agrees with optimal string
// alignment.
var osaPairs = []struct {
	a, b string
	want float64
}{
	{"kitten", "sitting", 3},
	{"abcd", "acbd", 1},
	{"flaw", "lawn", 2},
	{"hello", "hallo", 1},
	{"book", "back", 2},
	{"saturday", "sunday", 3},
	{"teh", "the", 1},
	{"ca", "abc", 3},
	{"gumbo", "gambol", 2},
	{"receive", "recieve", 1},
	{"word", "world", 1},
	{"abc", "", 3},
	{"", "xy", 2},
}

func TestBetweenUnitWeights(t *testing.T) {
	d := unitDistance()
	for _, tc := range osaPairs {
		t.Run(tc.a+"/"+tc.b, func(t *testing.T) {
			got := d.Between([]rune(tc.a), []rune(tc.b))
			assert.InDelta(t, tc.want, got, 1e-9)
			assert.InDelta(t, float64(edlib.OSADamerauLevenshteinDistance(tc.a, tc.b)), got, 1e-9)
		})
	}
}

func TestBetweenDefaultWeights(t *testing.T) {
	d := defaultDistance()
	tests := []struct {
		a, b string
		want float64
	}{
		{"teh", "the", 1.05},
		{"ab", "ba", 1.05},
		{"abc", "abd", 1.0},
		{"word", "wrd", 0.8},
		{"wrd", "word", 1.0},
		{"kitten", "sitting", 3.01},
	}
	for _, tc := range tests {
		t.Run(tc.a+"/"+tc.b, func(t *testing.T) {
			assert.InDelta(t, tc.want, d.Between([]rune(tc.a), []rune(tc.b)), 1e-9)
		})
	}
}

func TestBetweenCharDistance(t *testing.T) {
	d := unitDistance()
	d.CharDistance = func(a, b rune) float64 {
		if (a == 'a' && b == 's') || (a == 's' && b == 'a') {
			return 0.4
		}
		return 1
	}
	assert.InDelta(t, 0.4, d.Between([]rune("cat"), []rune("cst")), 1e-9)
	assert.InDelta(t, 1.0, d.Between([]rune("cat"), []rune("cut")), 1e-9)
}

func TestBetweenMultiByte(t *testing.T) {
	d := unitDistance()
	assert.InDelta(t, 1.0, d.Between([]rune("grün"), []rune("grun")), 1e-9)
	assert.InDelta(t, 1.0, d.Between([]rune("straße"), []rune("strase")), 1e-9)
}

func TestLengthDistance(t *testing.T) {
	d := defaultDistance()
	assert.InDelta(t, 1.6, d.LengthDistance(5, 3), 1e-9)
	assert.InDelta(t, 2.02, d.LengthDistance(3, 5), 1e-9)
	assert.InDelta(t, 0.0, d.LengthDistance(4, 4), 1e-9)
}

func TestCommonAffixes(t *testing.T) {
	tests := []struct {
		a, b           string
		prefix, suffix int
	}{
		{"kitten", "sitting", 0, 0},
		{"kittn", "kitten", 4, 1},
		{"abc", "abc", 3, 0},
		{"abc", "", 0, 0},
		{"aXa", "aYa", 1, 1},
		{"ab", "abab", 2, 0},
	}
	for _, tc := range tests {
		t.Run(tc.a+"/"+tc.b, func(t *testing.T) {
			p, s := CommonAffixes([]rune(tc.a), []rune(tc.b))
			assert.Equal(t, tc.prefix, p)
			assert.Equal(t, tc.suffix, s)
			assert.LessOrEqual(t, p+s, min(len(tc.a), len(tc.b)))
		})
	}
}

func TestTrimmed(t *testing.T) {
	d := unitDistance()
	dist, p, s := d.Trimmed([]rune("kittn"), []rune("kitten"))
	assert.InDelta(t, 1.0, dist, 1e-9)
	assert.Equal(t, 4, p)
	assert.Equal(t, 1, s)

	dist, p, s = d.Trimmed([]rune("flaw"), []rune("lawn"))
	assert.InDelta(t, 2.0, dist, 1e-9)
	assert.Zero(t, p)
	assert.Zero(t, s)
}

// Trimming is a heuristic. With unit weights it never reports a smaller
// distance than the full program does.
func TestTrimmedNeverBelowFullWithUnitWeights(t *testing.T) {
	d := unitDistance()
	rng := rand.New(rand.NewPCG(7, 11))
	alphabet := []rune("abc")
	word := func() []rune {
		n := rng.IntN(6)
		out := make([]rune, n)
		for i := range out {
			out[i] = alphabet[rng.IntN(len(alphabet))]
		}
		return out
	}
	for range 2000 {
		a, b := word(), word()
		full := d.Between(a, b)
		trimmed, _, _ := d.Trimmed(a, b)
		require.GreaterOrEqual(t, trimmed, full, "%q/%q", string(a), string(b))
	}
}

func TestTrimmedCanUndercutWithDefaultWeights(t *testing.T) {
	d := defaultDistance()
	full := d.Between([]rune("ba"), []rune("bab"))
	trimmed, _, _ := d.Trimmed([]rune("ba"), []rune("bab"))
	assert.InDelta(t, 1.01, full, 1e-9)
	assert.InDelta(t, 1.0, trimmed, 1e-9)
}
