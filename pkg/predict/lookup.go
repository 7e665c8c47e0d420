package predict

import (
	"slices"

	"github.com/cockroachdb/errors"
	mapset "github.com/deckarep/golang-set/v2"
)

type candidate struct {
	term  string
	runes []rune
}

// Lookup returns the raw suggestions for searchWord after they went through
// AdjustFinalResult. The slice is never nil.
func (p *PreDict) Lookup(searchWord string) []SuggestItem {
	cleaned := p.customizing.CleanSearchWord(searchWord)
	query := []rune(cleaned)
	maxDistance := p.settings.maxEditDistance
	pruning := p.settings.accuracyLevel.pruning()

	// no indexed word is long enough
	if len(query)-maxDistance > p.dict.maxLength {
		return []SuggestItem{}
	}

	candidates := []candidate{{term: cleaned, runes: query}}
	seenCandidates := mapset.NewThreadUnsafeSet[string]()
	checked := mapset.NewThreadUnsafeSet[string]()
	var suggestions []SuggestItem
	var buf [1]int32

	for head := 0; head < len(candidates); head++ {
		cand := candidates[head]
		lenDiff := len(query) - len(cand.runes)

		// a shorter candidate can not beat what was already found
		if pruning && len(suggestions) > 0 && float64(lenDiff) > suggestions[0].Distance {
			continue
		}

		if c, ok := p.dict.cells[cand.term]; ok {
			count, words, err := c.view(&buf)
			if err != nil {
				panic(errors.Wrapf(err, "key %q", cand.term))
			}

			// count > 0 marks a real word, not only a delete
			if count > 0 && checked.Add(cand.term) {
				distance := p.distance.LengthDistance(len(query), len(cand.runes))
				distance = p.customizing.AdjustDistance(cleaned, cand.term, distance)
				if distance <= float64(maxDistance) {
					suggestions = append(suggestions, p.newItem(cand.term, count, distance))
				}
				// exact match, nothing shorter can do better
				if pruning && lenDiff == 0 {
					continue
				}
			}

			for _, wordNr := range words {
				suggestion := p.dict.words.at(wordNr)
				// different deletes of the search word lead to the same word
				if !checked.Add(suggestion) {
					continue
				}
				distance := p.suggestionDistance(cleaned, query, cand, suggestion)

				if pruning && len(suggestions) > 0 {
					if suggestions[0].Distance > distance {
						suggestions = suggestions[:0]
					} else if distance > suggestions[0].Distance {
						continue
					}
				}

				distance = p.customizing.AdjustDistance(cleaned, cand.term, distance)
				if distance > float64(maxDistance) {
					continue
				}
				if sc, ok := p.dict.cells[suggestion]; ok && sc.full != nil {
					suggestions = append(suggestions, p.newItem(suggestion, sc.full.count, distance))
				}
			}
		}

		// derive further deletes until the edit budget is spent
		if lenDiff < maxDistance {
			if pruning && len(suggestions) > 0 && float64(lenDiff) >= suggestions[0].Distance {
				continue
			}
			for i := range cand.runes {
				del := deleteRune(cand.runes, i)
				term := string(del)
				if seenCandidates.Add(term) {
					candidates = append(candidates, candidate{term: term, runes: del})
				}
			}
		}
	}

	return p.pick(cleaned, suggestions)
}

// suggestionDistance computes the distance between the search word and a
// word reached through a shared delete. Both sides may have been edited, so
// the plain length difference is only exact if one side was untouched.
func (p *PreDict) suggestionDistance(cleaned string, query []rune, cand candidate, suggestion string) float64 {
	if suggestion == cleaned {
		return 0
	}
	target := []rune(suggestion)
	switch {
	case len(target) == len(cand.runes):
		// only the search word was edited
		return p.distance.LengthDistance(len(query), len(cand.runes))
	case len(query) == len(cand.runes):
		// only the suggestion was edited
		return p.distance.LengthDistance(len(target), len(cand.runes))
	}
	distance, prefixLen, suffixLen := p.distance.Trimmed(query, target)
	return p.customizing.AdjustDetailedDistance(cleaned, suggestion, distance, prefixLen, suffixLen)
}

func (p *PreDict) newItem(term string, count int32, distance float64) SuggestItem {
	return SuggestItem{
		Term:          term,
		Count:         int(count),
		Distance:      distance,
		WordFrequency: float64(count) / float64(len(p.dict.cells)),
	}
}

// pick truncates the suggestions to the accuracy level and top k, sorted by
// distance and count, and hands them to AdjustFinalResult.
func (p *PreDict) pick(cleaned string, suggestions []SuggestItem) []SuggestItem {
	k := len(suggestions)
	if p.settings.accuracyLevel == TopHit && k > 1 {
		k = 1
	} else if k > p.settings.topK {
		k = p.settings.topK
	}
	slices.SortStableFunc(suggestions, CompareByDistanceCount)
	result := p.customizing.AdjustFinalResult(cleaned, suggestions[:k])
	if result == nil {
		return []SuggestItem{}
	}
	return result
}
