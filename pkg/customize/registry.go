package customize

import (
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"

	"github.com/bastiangx/wordfix/pkg/predict"
)

// ErrUnknownStrategy is returned for names without a registered factory.
var ErrUnknownStrategy = errors.New("unknown scoring strategy")

// Factory builds a strategy for the given engine settings.
type Factory func(settings predict.Settings, opts ...Option) predict.Customizing

var strategies = map[string]Factory{
	"noop": func(predict.Settings, ...Option) predict.Customizing {
		return predict.Noop{}
	},
	"community": func(settings predict.Settings, opts ...Option) predict.Customizing {
		return NewCommunity(settings, opts...)
	},
}

// aliases maps the short names printed by String to registered names.
var aliases = map[string]string{
	"":   "noop",
	"se": "noop",
	"ce": "community",
}

// New looks up a strategy by name. Options only apply to strategies that
// take them.
func New(name string, settings predict.Settings, opts ...Option) (predict.Customizing, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := aliases[key]; ok {
		key = alias
	}
	factory, ok := strategies[key]
	if !ok {
		return nil, errors.WithHint(
			errors.Wrapf(ErrUnknownStrategy, "%q", name),
			"use one of: "+strings.Join(Names(), ", "))
	}
	c := factory(settings, opts...)
	log.Debugf("Scoring strategy %s (%v)", key, c)
	return c, nil
}

// Names lists the registered strategies in sorted order.
func Names() []string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Validate rejects negative weights and an all-zero set.
func (w Weights) Validate() error {
	for _, v := range []float64{w.Edit, w.Phonetic, w.Prefix, w.Fragment, w.Frequency} {
		if v < 0 {
			return errors.Newf("scoring weights must not be negative: %v", w)
		}
	}
	if w.sum() == 0 {
		return errors.Newf("at least one scoring weight must be positive: %v", w)
	}
	return nil
}
