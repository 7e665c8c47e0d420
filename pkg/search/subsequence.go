package search

import (
	"strings"

	fuzzysearch "github.com/lithammer/fuzzysearch/fuzzy"
)

// Subsequence matches words that contain the query's characters in order,
// case and accent insensitive, ranked by Levenshtein distance. It finds
// dropped letters but never a mistyped one, which makes it a lower bound in
// comparisons.
type Subsequence struct {
	words  []string
	counts map[string]int
	topK   int
}

func NewSubsequence(topK int) *Subsequence {
	return &Subsequence{counts: make(map[string]int), topK: topK}
}

func (s *Subsequence) Index(word string) (bool, error) {
	return s.IndexCount(word, 1)
}

// IndexCount adds n occurrences of word.
func (s *Subsequence) IndexCount(word string, n int) (bool, error) {
	word = strings.ToLower(word)
	if _, ok := s.counts[word]; !ok {
		s.words = append(s.words, word)
	}
	s.counts[word] += n
	return true, nil
}

func (s *Subsequence) FindSimilarWords(word string) []string {
	matches := fuzzysearch.RankFindNormalizedFold(strings.ToLower(word), s.words)
	candidates := make([]ranked, len(matches))
	for i, m := range matches {
		candidates[i] = ranked{term: m.Target, distance: m.Distance, count: s.counts[m.Target]}
	}
	return rank(candidates, s.topK)
}

func (s *Subsequence) Len() int {
	return len(s.words)
}

func (s *Subsequence) String() string {
	return "fuzzysearch subsequence"
}
