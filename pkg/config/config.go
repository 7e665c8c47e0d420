/*
Package config manages the TOML configuration of wordfix: engine settings,
the scoring strategy and the defaults of the server, CLI and benchmark modes.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"

	"github.com/bastiangx/wordfix/internal/utils"
	"github.com/bastiangx/wordfix/pkg/chardist"
	"github.com/bastiangx/wordfix/pkg/customize"
	"github.com/bastiangx/wordfix/pkg/predict"
)

const appName = "wordfix"

// Config holds the entire config structure
type Config struct {
	Engine  EngineConfig  `toml:"engine"`
	Scoring ScoringConfig `toml:"scoring"`
	Server  ServerConfig  `toml:"server"`
	CLI     CliConfig     `toml:"cli"`
	Bench   BenchConfig   `toml:"bench"`
}

// EngineConfig mirrors predict.Settings.
type EngineConfig struct {
	MaxEditDistance     int     `toml:"max_edit_distance"`
	AccuracyLevel       string  `toml:"accuracy_level"`
	TopK                int     `toml:"top_k"`
	DeletionWeight      float64 `toml:"deletion_weight"`
	InsertionWeight     float64 `toml:"insertion_weight"`
	ReplaceWeight       float64 `toml:"replace_weight"`
	TranspositionWeight float64 `toml:"transposition_weight"`
}

// ScoringConfig selects and tunes the scoring strategy.
type ScoringConfig struct {
	Strategy        string  `toml:"strategy"`
	EditWeight      float64 `toml:"edit_weight"`
	PhoneticWeight  float64 `toml:"phonetic_weight"`
	PrefixWeight    float64 `toml:"prefix_weight"`
	FragmentWeight  float64 `toml:"fragment_weight"`
	FrequencyWeight float64 `toml:"frequency_weight"`
	Keyboard        string  `toml:"keyboard"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	MaxQueryLen int `toml:"max_query_len"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultLimit int  `toml:"default_limit"`
	MinLen       int  `toml:"min_len"`
	MaxLen       int  `toml:"max_len"`
	NoFilter     bool `toml:"no_filter"`
}

// BenchConfig holds benchmark defaults. A zero rate runs unthrottled, a zero
// duration runs one pass over the corpus.
type BenchConfig struct {
	Rate       int `toml:"rate"`
	DurationMs int `toml:"duration_ms"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	s := predict.DefaultSettings()
	w := customize.DefaultWeights()
	return &Config{
		Engine: EngineConfig{
			MaxEditDistance:     s.MaxEditDistance(),
			AccuracyLevel:       s.AccuracyLevel().String(),
			TopK:                s.TopK(),
			DeletionWeight:      s.DeletionWeight(),
			InsertionWeight:     s.InsertionWeight(),
			ReplaceWeight:       s.ReplaceWeight(),
			TranspositionWeight: s.TranspositionWeight(),
		},
		Scoring: ScoringConfig{
			Strategy:        "community",
			EditWeight:      w.Edit,
			PhoneticWeight:  w.Phonetic,
			PrefixWeight:    w.Prefix,
			FragmentWeight:  w.Fragment,
			FrequencyWeight: w.Frequency,
			Keyboard:        chardist.QWERTZ.String(),
		},
		Server: ServerConfig{
			MaxQueryLen: 60,
		},
		CLI: CliConfig{
			DefaultLimit: 6,
			MinLen:       1,
			MaxLen:       60,
		},
		Bench: BenchConfig{
			Rate:       5000,
			DurationMs: 0,
		},
	}
}

// Settings converts the engine table into validated engine settings.
func (c *Config) Settings() (predict.Settings, error) {
	e := c.Engine
	level, err := predict.ParseAccuracyLevel(e.AccuracyLevel)
	if err != nil {
		return predict.Settings{}, errors.Wrap(err, "[engine] accuracy_level")
	}
	s, err := predict.NewSettings(
		predict.WithMaxEditDistance(e.MaxEditDistance),
		predict.WithAccuracyLevel(level),
		predict.WithTopK(e.TopK),
		predict.WithDeletionWeight(e.DeletionWeight),
		predict.WithInsertionWeight(e.InsertionWeight),
		predict.WithReplaceWeight(e.ReplaceWeight),
		predict.WithTranspositionWeight(e.TranspositionWeight),
	)
	if err != nil {
		return predict.Settings{}, errors.Wrap(err, "[engine]")
	}
	return s, nil
}

// Weights returns the community signal weights of the scoring table.
func (c *Config) Weights() customize.Weights {
	s := c.Scoring
	return customize.Weights{
		Edit:      s.EditWeight,
		Phonetic:  s.PhoneticWeight,
		Prefix:    s.PrefixWeight,
		Fragment:  s.FragmentWeight,
		Frequency: s.FrequencyWeight,
	}
}

// Customizing builds the configured scoring strategy for settings.
func (c *Config) Customizing(settings predict.Settings) (predict.Customizing, error) {
	weights := c.Weights()
	if err := weights.Validate(); err != nil {
		return nil, errors.Wrap(err, "[scoring]")
	}
	keyboard, err := chardist.ByName(c.Scoring.Keyboard)
	if err != nil {
		return nil, errors.Wrap(err, "[scoring] keyboard")
	}
	return customize.New(c.Scoring.Strategy, settings,
		customize.WithWeights(weights), customize.WithKeyboard(keyboard))
}

// NewEngine builds an empty engine from the engine and scoring tables.
func (c *Config) NewEngine() (*predict.PreDict, error) {
	settings, err := c.Settings()
	if err != nil {
		return nil, err
	}
	customizing, err := c.Customizing(settings)
	if err != nil {
		return nil, err
	}
	return predict.New(settings, customizing)
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/
// 2. ~/Library/Application Support/ (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", appName)
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", appName)
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from -config flag
// 2. Default path: [UserConfigDir]/wordfix/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err == nil {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
			log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}
	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)
	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}
	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file. Keys missing from the file keep their
// defaults, and a file that fails to decode is salvaged key by key.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()
	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "engine"); ok {
		extractEngineConfig(section, &config.Engine)
	}
	if section, ok := utils.ExtractSection(tempConfig, "scoring"); ok {
		extractScoringConfig(section, &config.Scoring)
	}
	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		if val, ok := utils.ExtractInt64(section, "max_query_len"); ok {
			config.Server.MaxQueryLen = val
		}
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	if section, ok := utils.ExtractSection(tempConfig, "bench"); ok {
		if val, ok := utils.ExtractInt64(section, "rate"); ok {
			config.Bench.Rate = val
		}
		if val, ok := utils.ExtractInt64(section, "duration_ms"); ok {
			config.Bench.DurationMs = val
		}
	}
	return config, nil
}

func extractEngineConfig(data map[string]any, engine *EngineConfig) {
	if val, ok := utils.ExtractInt64(data, "max_edit_distance"); ok {
		engine.MaxEditDistance = val
	}
	if val, ok := utils.ExtractString(data, "accuracy_level"); ok {
		engine.AccuracyLevel = val
	}
	if val, ok := utils.ExtractInt64(data, "top_k"); ok {
		engine.TopK = val
	}
	if val, ok := utils.ExtractFloat64(data, "deletion_weight"); ok {
		engine.DeletionWeight = val
	}
	if val, ok := utils.ExtractFloat64(data, "insertion_weight"); ok {
		engine.InsertionWeight = val
	}
	if val, ok := utils.ExtractFloat64(data, "replace_weight"); ok {
		engine.ReplaceWeight = val
	}
	if val, ok := utils.ExtractFloat64(data, "transposition_weight"); ok {
		engine.TranspositionWeight = val
	}
}

func extractScoringConfig(data map[string]any, scoring *ScoringConfig) {
	if val, ok := utils.ExtractString(data, "strategy"); ok {
		scoring.Strategy = val
	}
	if val, ok := utils.ExtractFloat64(data, "edit_weight"); ok {
		scoring.EditWeight = val
	}
	if val, ok := utils.ExtractFloat64(data, "phonetic_weight"); ok {
		scoring.PhoneticWeight = val
	}
	if val, ok := utils.ExtractFloat64(data, "prefix_weight"); ok {
		scoring.PrefixWeight = val
	}
	if val, ok := utils.ExtractFloat64(data, "fragment_weight"); ok {
		scoring.FragmentWeight = val
	}
	if val, ok := utils.ExtractFloat64(data, "frequency_weight"); ok {
		scoring.FrequencyWeight = val
	}
	if val, ok := utils.ExtractString(data, "keyboard"); ok {
		scoring.Keyboard = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		cli.DefaultLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "min_len"); ok {
		cli.MinLen = val
	}
	if val, ok := utils.ExtractInt64(data, "max_len"); ok {
		cli.MaxLen = val
	}
	if val, ok := utils.ExtractBool(data, "no_filter"); ok {
		cli.NoFilter = val
	}
}

// RebuildConfigFile force creates a new config.toml at the default path
func RebuildConfigFile() (string, error) {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return "", err
	}
	if err := utils.EnsureDir(filepath.Dir(defaultPath)); err != nil {
		return "", err
	}
	return defaultPath, SaveConfig(DefaultConfig(), defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		return "builtin defaults"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
