package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bastiangx/wordfix/pkg/customize"
	"github.com/bastiangx/wordfix/pkg/predict"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestInitConfigCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	require.FileExists(t, path)

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), loaded)
}

func TestLoadConfigKeepsDefaultsForMissingKeys(t *testing.T) {
	path := writeFile(t, `
[engine]
max_edit_distance = 1
accuracy_level = "fast"

[scoring]
strategy = "noop"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Engine.MaxEditDistance)
	assert.Equal(t, "fast", cfg.Engine.AccuracyLevel)
	assert.Equal(t, 6, cfg.Engine.TopK)
	assert.Equal(t, 0.8, cfg.Engine.DeletionWeight)
	assert.Equal(t, "noop", cfg.Scoring.Strategy)
	assert.Equal(t, 60, cfg.Server.MaxQueryLen)
}

func TestLoadConfigPartialRecovery(t *testing.T) {
	// top_k has the wrong type, so the typed decode fails as a whole.
	path := writeFile(t, `
[engine]
top_k = "many"
replace_weight = 2

[scoring]
keyboard = "none"
prefix_weight = 0.5

[cli]
default_limit = 3
no_filter = true

[bench]
rate = 10
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Engine.TopK)
	assert.Equal(t, 2.0, cfg.Engine.ReplaceWeight)
	assert.Equal(t, "none", cfg.Scoring.Keyboard)
	assert.Equal(t, 0.5, cfg.Scoring.PrefixWeight)
	assert.Equal(t, 3, cfg.CLI.DefaultLimit)
	assert.True(t, cfg.CLI.NoFilter)
	assert.Equal(t, 10, cfg.Bench.Rate)
}

func TestLoadConfigGarbage(t *testing.T) {
	cfg, err := LoadConfig(writeFile(t, "this is [not toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigWithPriorityCustomPath(t *testing.T) {
	path := writeFile(t, "[cli]\nmax_len = 12\n")
	cfg, used, err := LoadConfigWithPriority(path)
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, 12, cfg.CLI.MaxLen)
	assert.Equal(t, absPath(path), GetActiveConfigPath(path))
	assert.Equal(t, "builtin defaults", GetActiveConfigPath(""))
}

func absPath(p string) string {
	abs, _ := filepath.Abs(p)
	return abs
}

func TestSettings(t *testing.T) {
	s, err := DefaultConfig().Settings()
	require.NoError(t, err)
	assert.Equal(t, predict.DefaultSettings(), s)

	cfg := DefaultConfig()
	cfg.Engine.AccuracyLevel = "topHit"
	s, err = cfg.Settings()
	require.NoError(t, err)
	assert.Equal(t, predict.TopHit, s.AccuracyLevel())

	cfg.Engine.AccuracyLevel = "slow"
	_, err = cfg.Settings()
	assert.True(t, errors.Is(err, predict.ErrInvalidSettings))

	cfg = DefaultConfig()
	cfg.Engine.TopK = 0
	_, err = cfg.Settings()
	assert.True(t, errors.Is(err, predict.ErrInvalidSettings))
}

func TestNewEngine(t *testing.T) {
	p, err := DefaultConfig().NewEngine()
	require.NoError(t, err)
	assert.Equal(t, "PreDict CE", p.String())

	cfg := DefaultConfig()
	cfg.Scoring.Strategy = "noop"
	p, err = cfg.NewEngine()
	require.NoError(t, err)
	assert.Equal(t, "PreDict SE", p.String())

	cfg = DefaultConfig()
	cfg.Scoring.Strategy = "enterprise"
	_, err = cfg.NewEngine()
	assert.True(t, errors.Is(err, customize.ErrUnknownStrategy))

	cfg = DefaultConfig()
	cfg.Scoring.Keyboard = "dvorak"
	_, err = cfg.NewEngine()
	assert.Error(t, err)

	cfg = DefaultConfig()
	cfg.Scoring.EditWeight = -1
	_, err = cfg.NewEngine()
	assert.Error(t, err)
}
