package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"strata/internal/errors"
)

// DefaultIntervalSeconds spaces sampled commits one week apart.
const DefaultIntervalSeconds = 7 * 24 * 60 * 60

// Config represents the global strata configuration, loaded from
// .strata/config.json under the repository root.
type Config struct {
	Version int `json:"version" mapstructure:"version"`

	Analyze AnalyzeConfig `json:"analyze" mapstructure:"analyze"`
	Cache   CacheConfig   `json:"cache" mapstructure:"cache"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
	Plot    PlotConfig    `json:"plot" mapstructure:"plot"`
}

// AnalyzeConfig contains default analysis settings
type AnalyzeConfig struct {
	CohortFormat    string `json:"cohortFormat" mapstructure:"cohortFormat"`
	IntervalSeconds int64  `json:"intervalSeconds" mapstructure:"intervalSeconds"`
	Jobs            int    `json:"jobs" mapstructure:"jobs"`
}

// CacheConfig contains blame cache settings
type CacheConfig struct {
	Enabled bool `json:"enabled" mapstructure:"enabled"`
	// Path is relative to the repository root unless absolute
	Path string `json:"path" mapstructure:"path"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// PlotConfig contains chart rendering defaults
type PlotConfig struct {
	WidthInches  float64 `json:"widthInches" mapstructure:"widthInches"`
	HeightInches float64 `json:"heightInches" mapstructure:"heightInches"`
	MaxLabels    int     `json:"maxLabels" mapstructure:"maxLabels"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Analyze: AnalyzeConfig{
			CohortFormat:    "%Y",
			IntervalSeconds: DefaultIntervalSeconds,
			Jobs:            4,
		},
		Cache: CacheConfig{
			Enabled: true,
			Path:    filepath.Join(".strata", "cache.db"),
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
		Plot: PlotConfig{
			WidthInches:  12,
			HeightInches: 8,
			MaxLabels:    20,
		},
	}
}

// LoadConfig loads configuration from .strata/config.json under the
// repository root, falling back to defaults when no file exists.
func LoadConfig(repoRoot string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("version", defaults.Version)
	v.SetDefault("analyze.cohortFormat", defaults.Analyze.CohortFormat)
	v.SetDefault("analyze.intervalSeconds", defaults.Analyze.IntervalSeconds)
	v.SetDefault("analyze.jobs", defaults.Analyze.Jobs)
	v.SetDefault("cache.enabled", defaults.Cache.Enabled)
	v.SetDefault("cache.path", defaults.Cache.Path)
	v.SetDefault("logging.format", defaults.Logging.Format)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("plot.widthInches", defaults.Plot.WidthInches)
	v.SetDefault("plot.heightInches", defaults.Plot.HeightInches)
	v.SetDefault("plot.maxLabels", defaults.Plot.MaxLabels)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(repoRoot, ".strata"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaults, nil
		}
		return nil, errors.New(errors.ConfigInvalid, "failed to read config file", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.New(errors.ConfigInvalid, "failed to parse config file", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the configuration to .strata/config.json
func (c *Config) Save(repoRoot string) error {
	dir := filepath.Join(repoRoot, ".strata")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 1 {
		return errors.New(errors.ConfigInvalid,
			fmt.Sprintf("unsupported config version %d", c.Version), nil)
	}
	if c.Analyze.IntervalSeconds <= 0 {
		return errors.New(errors.ConfigInvalid,
			"analyze.intervalSeconds must be positive", nil)
	}
	if c.Analyze.Jobs < 1 {
		return errors.New(errors.ConfigInvalid,
			"analyze.jobs must be at least 1", nil)
	}
	return nil
}

// CachePath resolves the blame cache location against the repo root.
func (c *Config) CachePath(repoRoot string) string {
	if filepath.IsAbs(c.Cache.Path) {
		return c.Cache.Path
	}
	return filepath.Join(repoRoot, c.Cache.Path)
}
