// Package config provides configuration loading and validation for the
// gumtree CLI.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidMinHeight     = errors.New("min height must be non-negative")
	ErrInvalidMinSimilarity = errors.New("min similarity must be in [0, 1]")
	ErrInvalidMaxSize       = errors.New("max size must be positive")
	ErrInvalidLogLevel      = errors.New("invalid log level")
	ErrInvalidLogFormat     = errors.New("invalid log format")
)

// Default configuration values, per SPEC_FULL.md §6.
const (
	defaultMinHeight     = 2
	defaultMinSimilarity = 0.5
	defaultMaxSize       = 100
	defaultLogLevel      = "info"
	defaultLogFormat     = "text"
)

// Config holds all configuration for a gumtree run.
type Config struct {
	Matcher MatcherConfig `mapstructure:"matcher"`
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// MatcherConfig holds the matching algorithm's tunable thresholds.
type MatcherConfig struct {
	MinHeight     int     `mapstructure:"min_height"`
	MinSimilarity float64 `mapstructure:"min_similarity"`
	MaxSize       int     `mapstructure:"max_size"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MetricsConfig holds the Prometheus scrape endpoint configuration.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// Load loads configuration from compiled defaults, an optional file, and
// environment variables (GUMTREE_ prefix), in that ascending precedence
// order. CLI flags are layered on top by the caller, which writes them into
// the returned Config (cmd/gumtree's bindFlagOverrides).
func Load(configPath string) (*viper.Viper, *Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName("gumtree")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("/etc/gumtree")
	}

	viperCfg.SetEnvPrefix("GUMTREE")
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viperCfg.ReadInConfig(); err != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(err, &notFoundErr) {
			return nil, nil, fmt.Errorf("gumtree: read config file: %w", err)
		}
	}

	var cfg Config
	if err := viperCfg.Unmarshal(&cfg); err != nil {
		return nil, nil, fmt.Errorf("gumtree: unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("gumtree: invalid configuration: %w", err)
	}

	return viperCfg, &cfg, nil
}

func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("matcher.min_height", defaultMinHeight)
	viperCfg.SetDefault("matcher.min_similarity", defaultMinSimilarity)
	viperCfg.SetDefault("matcher.max_size", defaultMaxSize)

	viperCfg.SetDefault("logging.level", defaultLogLevel)
	viperCfg.SetDefault("logging.format", defaultLogFormat)

	viperCfg.SetDefault("metrics.addr", "")
}

// Validate checks the configuration for internally-consistent values.
func (c *Config) Validate() error {
	if c.Matcher.MinHeight < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMinHeight, c.Matcher.MinHeight)
	}

	if c.Matcher.MinSimilarity < 0 || c.Matcher.MinSimilarity > 1 {
		return fmt.Errorf("%w: %f", ErrInvalidMinSimilarity, c.Matcher.MinSimilarity)
	}

	if c.Matcher.MaxSize <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxSize, c.Matcher.MaxSize)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %s", ErrInvalidLogLevel, c.Logging.Level)
	}

	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: %s", ErrInvalidLogFormat, c.Logging.Format)
	}

	return nil
}
