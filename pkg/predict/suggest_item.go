package predict

import (
	"cmp"
	"fmt"
)

// SuggestItem is a single correction candidate for a search word.
// Identity is the Term; the proximity fields are only filled in by a
// scoring Customizing in AdjustFinalResult.
type SuggestItem struct {
	Term          string
	Count         int
	Distance      float64
	WordFrequency float64

	EditProximity     float64
	PhoneticProximity float64
	FragmentProximity float64
	PrefixProximity   float64
	// Proximity is the final combined similarity, higher is better.
	Proximity float64
}

// Equal compares by term only.
func (s SuggestItem) Equal(other SuggestItem) bool {
	return s.Term == other.Term
}

func (s SuggestItem) String() string {
	return fmt.Sprintf("%s (count=%d distance=%.3f proximity=%.3f)", s.Term, s.Count, s.Distance, s.Proximity)
}

// CompareByDistanceCount orders by ascending distance, then by descending count.
func CompareByDistanceCount(a, b SuggestItem) int {
	if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
		return c
	}
	return cmp.Compare(b.Count, a.Count)
}

// CompareByProximityCount orders by descending proximity, then by descending count.
func CompareByProximityCount(a, b SuggestItem) int {
	if c := cmp.Compare(b.Proximity, a.Proximity); c != 0 {
		return c
	}
	return cmp.Compare(b.Count, a.Count)
}

// Terms extracts the terms in order. Never returns nil.
func Terms(items []SuggestItem) []string {
	terms := make([]string, 0, len(items))
	for _, item := range items {
		terms = append(terms, item.Term)
	}
	return terms
}
