// Package customize holds the scoring strategies that plug into the
// predict engine, and a registry to select one by name.
package customize

import (
	"fmt"
	"math"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/bastiangx/wordfix/pkg/chardist"
	"github.com/bastiangx/wordfix/pkg/phonetic"
	"github.com/bastiangx/wordfix/pkg/predict"
	"github.com/bastiangx/wordfix/pkg/proximity"
)

var (
	searchNoise = regexp.MustCompile(`[^\p{L}\p{N}\p{Z}]`)
	whitespace  = regexp.MustCompile(`\s+`)
)

// Weights of the signals that make up the combined proximity.
type Weights struct {
	Edit      float64
	Phonetic  float64
	Prefix    float64
	Fragment  float64
	Frequency float64
}

func DefaultWeights() Weights {
	return Weights{
		Edit:      1.2,
		Phonetic:  1.0,
		Prefix:    1.4,
		Fragment:  1.5,
		Frequency: 0,
	}
}

func (w Weights) sum() float64 {
	return w.Edit + w.Phonetic + w.Prefix + w.Fragment + w.Frequency
}

// Community reranks the engine's suggestions by a weighted mix of edit,
// phonetic, prefix and fragment proximity. Replacements are charged by
// keyboard distance.
type Community struct {
	predict.Noop
	maxEditDistance float64
	weights         Weights
	keyboard        chardist.Func
}

var _ predict.Customizing = (*Community)(nil)

type Option func(*Community)

// WithWeights replaces the default signal weights.
func WithWeights(w Weights) Option {
	return func(c *Community) { c.weights = w }
}

// WithKeyboard sets the replacement cost function. Nil restores QWERTZ.
func WithKeyboard(f chardist.Func) Option {
	return func(c *Community) { c.keyboard = f }
}

func NewCommunity(settings predict.Settings, opts ...Option) *Community {
	c := &Community{
		maxEditDistance: float64(settings.MaxEditDistance()),
		weights:         DefaultWeights(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.keyboard == nil {
		c.keyboard = chardist.QWERTZ.Distance
	}
	return c
}

// CleanIndexWord lowercases and collapses runs of whitespace.
func (c *Community) CleanIndexWord(word string) string {
	return whitespace.ReplaceAllString(strings.ToLower(norm.NFC.String(word)), " ")
}

// CleanSearchWord drops everything but letters, digits and separators and
// lowercases the rest.
func (c *Community) CleanSearchWord(searchWord string) string {
	return strings.ToLower(searchNoise.ReplaceAllString(norm.NFC.String(searchWord), ""))
}

func (c *Community) ReplacementDistance(a, b rune) float64 {
	return c.keyboard(a, b)
}

// AdjustFinalResult fills in the proximity fields of every item and sorts
// by combined proximity.
func (c *Community) AdjustFinalResult(searchWord string, result []predict.SuggestItem) []predict.SuggestItem {
	searchCode := phonetic.Encode(searchWord)
	for i := range result {
		s := &result[i]
		s.EditProximity = c.editProximity(s.Distance)
		s.PhoneticProximity = phoneticProximity(phonetic.Distance(searchCode, phonetic.Encode(s.Term)))
		s.FragmentProximity = proximity.Fragment(searchWord, s.Term)
		s.PrefixProximity = proximity.Prefix(searchWord, s.Term)
		s.Proximity = c.combined(s)
	}
	slices.SortStableFunc(result, predict.CompareByProximityCount)
	return result
}

func (c *Community) editProximity(distance float64) float64 {
	if c.maxEditDistance == 0 {
		if distance == 0 {
			return 1
		}
		return 0
	}
	return (c.maxEditDistance - distance) / c.maxEditDistance
}

// phoneticProximity maps a Eudex distance onto [0, 1] on a log scale.
func phoneticProximity(distance int) float64 {
	return 1 - math.Log10(float64(distance)+1)/9
}

func (c *Community) combined(s *predict.SuggestItem) float64 {
	w := c.weights
	sum := w.sum()
	if sum == 0 {
		return 0
	}
	return (s.EditProximity*w.Edit +
		s.PhoneticProximity*w.Phonetic +
		s.FragmentProximity*w.Fragment +
		s.PrefixProximity*w.Prefix +
		s.WordFrequency*w.Frequency) / sum
}

func (c *Community) String() string {
	return "CE"
}

func (w Weights) String() string {
	return fmt.Sprintf("edit=%v phonetic=%v prefix=%v fragment=%v frequency=%v",
		w.Edit, w.Phonetic, w.Prefix, w.Fragment, w.Frequency)
}
