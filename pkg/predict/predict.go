// Package predict implements symmetric-delete spelling correction with a
// weighted Damerau-Levenshtein distance and pluggable scoring.
//
// Words are indexed together with every string that results from deleting up
// to maxEditDistance characters. A lookup deletes characters from the search
// word in the same way and meets the dictionary in the middle, so only
// deletes have to be generated on either side.
//
// An engine is built once and then queried:
//
//	settings, _ := predict.NewSettings(predict.WithAccuracyLevel(predict.Fast))
//	engine, _ := predict.New(settings, predict.Noop{})
//	engine.Index("kitten")
//	engine.FindSimilarWords("kittn") // [kitten]
//
// The engine has no internal locking. All Index calls have to happen before
// the first lookup, after which any number of goroutines may query it.
// Interleaving both needs an external lock.
package predict

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
)

// PreDict is the fuzzy word matching engine.
type PreDict struct {
	settings    Settings
	customizing Customizing
	distance    EditDistance
	dict        *dictionary
}

// Stats describes the current index.
type Stats struct {
	Words     int
	Keys      int
	MaxLength int
}

// New creates an empty engine. It fails if settings are invalid or no
// customizing is given.
func New(settings Settings, customizing Customizing) (*PreDict, error) {
	if err := settings.Validate(); err != nil {
		return nil, errors.Wrap(err, "can not create engine")
	}
	if customizing == nil {
		return nil, errors.WithHint(errors.WithStack(ErrMissingCustomizing), "pass predict.Noop{} for default behavior")
	}
	log.Debugf("New engine: %s, customizing=%v", settings, customizing)
	return &PreDict{
		settings:    settings,
		customizing: customizing,
		distance:    EditDistanceFrom(settings, customizing.ReplacementDistance),
		dict:        newDictionary(settings),
	}, nil
}

// Index adds one occurrence of word. The only failures are fatal ones after
// which the index must be discarded.
func (p *PreDict) Index(word string) (bool, error) {
	if err := p.dict.add(p.customizing.CleanIndexWord(word)); err != nil {
		return false, err
	}
	return true, nil
}

// IndexCount adds n occurrences of word at once, as if Index had been
// called n times. Counts saturate at the int32 maximum.
func (p *PreDict) IndexCount(word string, n int) (bool, error) {
	if n < 1 {
		return false, errors.Wrapf(ErrInvalidSettings, "count must be positive, got %d", n)
	}
	if n > maxCount {
		n = maxCount
	}
	if err := p.dict.addCount(p.customizing.CleanIndexWord(word), int32(n)); err != nil {
		return false, err
	}
	return true, nil
}

// MustIndex is like Index but panics on a fatal error.
func (p *PreDict) MustIndex(word string) bool {
	ok, err := p.Index(word)
	if err != nil {
		panic(err)
	}
	return ok
}

// FindSimilarWords returns the best matching terms for searchWord, best first.
// The result is empty, never nil, if nothing matches.
func (p *PreDict) FindSimilarWords(searchWord string) []string {
	return Terms(p.Lookup(searchWord))
}

func (p *PreDict) Settings() Settings {
	return p.settings
}

func (p *PreDict) Stats() Stats {
	return Stats{
		Words:     p.dict.words.len(),
		Keys:      len(p.dict.cells),
		MaxLength: p.dict.maxLength,
	}
}

func (p *PreDict) String() string {
	return fmt.Sprintf("PreDict %v", p.customizing)
}
