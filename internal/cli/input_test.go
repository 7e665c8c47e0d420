package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bastiangx/wordfix/pkg/predict"
)

func TestInputHandler(t *testing.T) {
	s, err := predict.NewSettings(predict.WithUnitWeights())
	require.NoError(t, err)
	p, err := predict.New(s, predict.Noop{})
	require.NoError(t, err)
	for _, w := range []string{"kitten", "sitting", "bitten", "mitten"} {
		p.MustIndex(w)
	}

	in := strings.NewReader("Kittn\n\n:add house\nhuose\n12345\nqwxz\n:stats\n")
	var out bytes.Buffer
	h := NewInputHandler(p, 1, 60, 2, false)
	require.NoError(t, h.Start(in, &out))

	got := out.String()
	assert.Contains(t, got, "Found 2 corrections for 'Kittn':")
	assert.Contains(t, got, "Kitten")
	assert.Contains(t, got, "Bitten")
	assert.NotContains(t, got, "Mitten")
	assert.Contains(t, got, "indexed 'house'")
	assert.Contains(t, got, "Found 1 corrections for 'huose':")
	assert.NotContains(t, got, "'12345'")
	assert.Contains(t, got, "No corrections found for 'qwxz'")
	assert.Contains(t, got, "PreDict SE: 5 words")
}

func TestInputHandlerLength(t *testing.T) {
	p, err := predict.New(predict.DefaultSettings(), predict.Noop{})
	require.NoError(t, err)
	p.MustIndex("cat")

	var out bytes.Buffer
	h := NewInputHandler(p, 2, 4, 5, true)
	require.NoError(t, h.Start(strings.NewReader("c\ncatalog\ncta\n"), &out))
	assert.NotContains(t, out.String(), "'c'")
	assert.NotContains(t, out.String(), "catalog")
	assert.Contains(t, out.String(), "corrections for 'cta'")
}
