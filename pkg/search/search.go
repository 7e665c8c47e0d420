// Package search puts the predict engine and a few reference implementations
// behind one interface, so their answers can be compared on the same corpus.
package search

import (
	"cmp"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/bastiangx/wordfix/pkg/predict"
)

// WordSearch indexes words and finds the indexed words closest to a query,
// best first.
type WordSearch interface {
	Index(word string) (bool, error)
	FindSimilarWords(word string) []string
	String() string
}

var _ WordSearch = (*predict.PreDict)(nil)

// Sizer is implemented by backends that know how many distinct words they
// hold.
type Sizer interface {
	Len() int
}

// Options configure the reference backends.
type Options struct {
	MaxDistance int
	TopK        int
	// NewEngine builds the engine for the "predict" backend.
	NewEngine func() (*predict.PreDict, error)
}

// Factory builds an empty backend.
type Factory func(Options) (WordSearch, error)

var backends = map[string]Factory{
	"predict": func(o Options) (WordSearch, error) {
		if o.NewEngine == nil {
			return predict.New(predict.DefaultSettings(), predict.Noop{})
		}
		return o.NewEngine()
	},
	"trie": func(o Options) (WordSearch, error) {
		return NewTrie(o.MaxDistance, o.TopK), nil
	},
	"fuzzy": func(o Options) (WordSearch, error) {
		return NewFuzzy(o.MaxDistance, o.TopK), nil
	},
	"subsequence": func(o Options) (WordSearch, error) {
		return NewSubsequence(o.TopK), nil
	},
}

// New builds the backend registered under name.
func New(name string, opts Options) (WordSearch, error) {
	factory, ok := backends[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, errors.WithHint(errors.Newf("unknown search backend %q", name),
			"use one of: "+strings.Join(Names(), ", "))
	}
	if opts.TopK <= 0 {
		opts.TopK = predict.DefaultSettings().TopK()
	}
	if opts.MaxDistance < 0 {
		opts.MaxDistance = 0
	}
	return factory(opts)
}

// Names lists the registered backends in sorted order.
func Names() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ranked is a scored candidate of a reference backend.
type ranked struct {
	term     string
	distance int
	count    int
}

// rank sorts by distance, then count descending, then term, and keeps the
// first k terms.
func rank(candidates []ranked, k int) []string {
	slices.SortFunc(candidates, func(a, b ranked) int {
		return cmp.Or(
			cmp.Compare(a.distance, b.distance),
			cmp.Compare(b.count, a.count),
			strings.Compare(a.term, b.term),
		)
	})
	out := make([]string, 0, min(k, len(candidates)))
	for i := 0; i < len(candidates) && i < k; i++ {
		out = append(out, candidates[i].term)
	}
	return out
}
