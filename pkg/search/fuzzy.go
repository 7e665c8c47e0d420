package search

import (
	"fmt"
	"strings"

	sajari "github.com/sajari/fuzzy"
)

// Fuzzy wraps the sajari/fuzzy model, a symmetric delete speller with
// unweighted Levenshtein ranking.
type Fuzzy struct {
	model  *sajari.Model
	counts map[string]int
	depth  int
	topK   int
}

func NewFuzzy(depth, topK int) *Fuzzy {
	model := sajari.NewModel()
	model.SetDepth(depth)
	model.SetThreshold(1)
	model.SetUseAutocomplete(false)
	return &Fuzzy{
		model:  model,
		counts: make(map[string]int),
		depth:  depth,
		topK:   topK,
	}
}

func (f *Fuzzy) Index(word string) (bool, error) {
	return f.IndexCount(word, 1)
}

// IndexCount adds n occurrences of word.
func (f *Fuzzy) IndexCount(word string, n int) (bool, error) {
	word = strings.ToLower(word)
	f.counts[word] += n
	f.model.SetCount(word, f.counts[word], true)
	return true, nil
}

func (f *Fuzzy) FindSimilarWords(word string) []string {
	out := f.model.SpellCheckSuggestions(strings.ToLower(word), f.topK)
	if out == nil {
		return []string{}
	}
	return out
}

func (f *Fuzzy) Len() int {
	return len(f.counts)
}

func (f *Fuzzy) String() string {
	return fmt.Sprintf("sajari/fuzzy (depth %d)", f.depth)
}
