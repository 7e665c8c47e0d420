package predict

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// AccuracyLevel trades recall for speed.
//
//	TopHit  = like Fast, but only the best hit is returned
//	Fast    = early termination, suggestions of higher distance are dropped
//	Maximum = every word within the max edit distance is considered
type AccuracyLevel int

const (
	TopHit AccuracyLevel = iota
	Fast
	Maximum
)

func (a AccuracyLevel) String() string {
	switch a {
	case TopHit:
		return "topHit"
	case Fast:
		return "fast"
	case Maximum:
		return "maximum"
	}
	return fmt.Sprintf("AccuracyLevel(%d)", int(a))
}

// ParseAccuracyLevel accepts the names printed by String, case-insensitive.
func ParseAccuracyLevel(s string) (AccuracyLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tophit", "top_hit", "top":
		return TopHit, nil
	case "fast":
		return Fast, nil
	case "maximum", "max":
		return Maximum, nil
	}
	return 0, errors.WithHint(
		errors.Wrapf(ErrInvalidSettings, "unknown accuracy level %q", s),
		"use one of: topHit, fast, maximum")
}

// pruning reports whether early termination heuristics are active.
func (a AccuracyLevel) pruning() bool {
	return a < Maximum
}

// Settings is an immutable snapshot of the engine parameters.
// Build one with NewSettings; the zero value is not valid.
type Settings struct {
	maxEditDistance     int
	accuracyLevel       AccuracyLevel
	topK                int
	deletionWeight      float64
	insertionWeight     float64
	replaceWeight       float64
	transpositionWeight float64
}

// Option changes a single setting while the snapshot is being built.
type Option func(*Settings)

func WithMaxEditDistance(n int) Option {
	return func(s *Settings) { s.maxEditDistance = n }
}

func WithAccuracyLevel(level AccuracyLevel) Option {
	return func(s *Settings) { s.accuracyLevel = level }
}

// WithTopK limits the result list to k entries.
func WithTopK(k int) Option {
	return func(s *Settings) { s.topK = k }
}

func WithDeletionWeight(w float64) Option {
	return func(s *Settings) { s.deletionWeight = w }
}

func WithInsertionWeight(w float64) Option {
	return func(s *Settings) { s.insertionWeight = w }
}

func WithReplaceWeight(w float64) Option {
	return func(s *Settings) { s.replaceWeight = w }
}

func WithTranspositionWeight(w float64) Option {
	return func(s *Settings) { s.transpositionWeight = w }
}

// WithUnitWeights sets all four edit operation weights to 1, which turns the
// weighted distance into a plain Damerau-Levenshtein distance.
func WithUnitWeights() Option {
	return func(s *Settings) {
		s.deletionWeight = 1
		s.insertionWeight = 1
		s.replaceWeight = 1
		s.transpositionWeight = 1
	}
}

// DefaultSettings returns the tuned defaults.
func DefaultSettings() Settings {
	return Settings{
		maxEditDistance:     2,
		accuracyLevel:       Maximum,
		topK:                6,
		deletionWeight:      0.8,
		insertionWeight:     1.01,
		replaceWeight:       1.0,
		transpositionWeight: 1.05,
	}
}

// NewSettings applies opts on top of DefaultSettings and validates the result.
func NewSettings(opts ...Option) (Settings, error) {
	s := DefaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate reports the first invalid field.
func (s Settings) Validate() error {
	switch {
	case s.maxEditDistance < 0:
		return errors.Wrapf(ErrInvalidSettings, "max edit distance must be >= 0, got %d", s.maxEditDistance)
	case s.accuracyLevel < TopHit || s.accuracyLevel > Maximum:
		return errors.Wrapf(ErrInvalidSettings, "unknown accuracy level %d", int(s.accuracyLevel))
	case s.topK <= 0:
		return errors.Wrapf(ErrInvalidSettings, "topK must be > 0, got %d", s.topK)
	}
	weights := []struct {
		name string
		w    float64
	}{
		{"deletion", s.deletionWeight},
		{"insertion", s.insertionWeight},
		{"replace", s.replaceWeight},
		{"transposition", s.transpositionWeight},
	}
	for _, w := range weights {
		if !(w.w > 0) {
			return errors.Wrapf(ErrInvalidSettings, "%s weight must be > 0, got %v", w.name, w.w)
		}
	}
	return nil
}

func (s Settings) MaxEditDistance() int { return s.maxEditDistance }
func (s Settings) AccuracyLevel() AccuracyLevel { return s.accuracyLevel }
func (s Settings) TopK() int { return s.topK }
func (s Settings) DeletionWeight() float64 { return s.deletionWeight }
func (s Settings) InsertionWeight() float64 { return s.insertionWeight }
func (s Settings) ReplaceWeight() float64 { return s.replaceWeight }
func (s Settings) TranspositionWeight() float64 { return s.transpositionWeight }

func (s Settings) String() string {
	return fmt.Sprintf("Settings{maxEditDistance=%d accuracyLevel=%s topK=%d weights=[del=%v ins=%v rep=%v trans=%v]}",
		s.maxEditDistance, s.accuracyLevel, s.topK,
		s.deletionWeight, s.insertionWeight, s.replaceWeight, s.transpositionWeight)
}
