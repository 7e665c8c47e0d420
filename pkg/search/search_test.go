package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bastiangx/wordfix/pkg/dictionary"
	"github.com/bastiangx/wordfix/pkg/predict"
)

var kittens = []string{"kitten", "sitting", "bitten", "mitten"}

func build(t *testing.T, name string, words ...string) WordSearch {
	t.Helper()
	ws, err := New(name, Options{MaxDistance: 2, TopK: 3})
	require.NoError(t, err)
	for _, w := range words {
		_, err := ws.Index(w)
		require.NoError(t, err)
	}
	return ws
}

func TestBackendsFindKitten(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			ws := build(t, name, kittens...)
			got := ws.FindSimilarWords("kittn")
			require.NotEmpty(t, got)
			assert.Contains(t, got, "kitten")
			assert.NotEmpty(t, ws.String())
			assert.NotNil(t, ws.FindSimilarWords("qqqqqqqq"))
		})
	}
}

func TestTrie(t *testing.T) {
	ws := build(t, "trie", "cat", "Cat", "bat", "hat", "kitten", "at")
	assert.Equal(t, []string{"cat", "at", "bat"}, ws.FindSimilarWords("xat"))
	assert.Equal(t, []string{"cat"}, ws.FindSimilarWords("cat")[:1])
	assert.Equal(t, 5, ws.(*Trie).Len())

	// transposition counts once
	ws = build(t, "trie", "the", "the", "tea")
	assert.Equal(t, []string{"the", "tea"}, ws.FindSimilarWords("teh"))
}

func TestBackendsCountDistinctWords(t *testing.T) {
	for _, name := range Names() {
		ws := build(t, name, "cat", "Cat", "bat")
		if sizer, ok := ws.(Sizer); ok {
			assert.Equal(t, 2, sizer.Len(), name)
		} else {
			assert.Equal(t, "predict", name)
		}
	}
}

func TestTrieMaxDistance(t *testing.T) {
	ws, err := New("trie", Options{MaxDistance: 1, TopK: 10})
	require.NoError(t, err)
	for _, w := range kittens {
		_, err := ws.Index(w)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"kitten"}, ws.FindSimilarWords("kittn"))
}

func TestSubsequence(t *testing.T) {
	ws := build(t, "subsequence", kittens...)
	assert.Equal(t, []string{"kitten"}, ws.FindSimilarWords("kittn"))
	assert.Empty(t, ws.FindSimilarWords("kitxen"))

	ws = build(t, "subsequence", "abate", "bat", "cat")
	assert.Equal(t, []string{"bat", "abate"}, ws.FindSimilarWords("BAT"))
}

func TestFuzzy(t *testing.T) {
	ws := build(t, "fuzzy", "the", "the", "then", "kitten")
	got := ws.FindSimilarWords("teh")
	require.NotEmpty(t, got)
	assert.Contains(t, got, "the")
}

func TestPredictBackend(t *testing.T) {
	ws, err := New("predict", Options{NewEngine: func() (*predict.PreDict, error) {
		s, err := predict.NewSettings(predict.WithUnitWeights(), predict.WithTopK(2))
		if err != nil {
			return nil, err
		}
		return predict.New(s, predict.Noop{})
	}})
	require.NoError(t, err)
	for _, w := range kittens {
		_, err := ws.Index(w)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"kitten", "bitten"}, ws.FindSimilarWords("kittn"))
	assert.Equal(t, "PreDict SE", ws.String())
}

func TestUnknownBackend(t *testing.T) {
	_, err := New("elastic", Options{})
	assert.ErrorContains(t, err, "elastic")
}

func TestBackendsTakeCounts(t *testing.T) {
	var _ dictionary.CountIndexer = (*Trie)(nil)
	var _ dictionary.CountIndexer = (*Fuzzy)(nil)
	var _ dictionary.CountIndexer = (*Subsequence)(nil)
	var _ dictionary.CountIndexer = (*predict.PreDict)(nil)

	ws := NewTrie(1, 5)
	_, err := ws.IndexCount("bat", 1)
	require.NoError(t, err)
	_, err = ws.IndexCount("cat", 7)
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "bat"}, ws.FindSimilarWords("xat"))
}
