// Package config provides configuration loading and defaults for the
// scheduler daemon.
//
// Configuration is read once at startup from a YAML file (TOML when the path
// ends in .toml). The only required key is log_level; everything else falls
// back to [DefaultConfig]. Failures are reported as [*LoadError] or
// [*ValueError] and are always fatal to startup.
package config

//go:generate go run ../../cmd/genconfig

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
	"tools.zach/dev/scheduler/internal/logger"
	"tools.zach/dev/scheduler/internal/paths"
)

// EnvLogLevel overrides log_level after the file has been loaded.
const EnvLogLevel = paths.EnvPrefix + "_LOG_LEVEL"

// ///////////////////////////////////////////////
// Configuration Types
// ///////////////////////////////////////////////

// Config represents the top-level application configuration.
type Config struct {
	// LogLevel is the minimum log severity (trace, debug, info, warn, error,
	// critical, off).
	LogLevel string `yaml:"log_level" toml:"log_level"`
	// Log holds log destination and rotation settings.
	Log LogConfig `yaml:"log" toml:"log"`
}

// LogConfig holds log destination and rotation settings.
type LogConfig struct {
	// File is the log file path. Empty means stderr.
	File string `yaml:"file,omitempty" toml:"file,omitempty"`
	// MaxSizeMB is the maximum log file size in megabytes before rotation.
	MaxSizeMB int `yaml:"max_size_mb" toml:"max_size_mb"`
	// MaxBackups is the number of rotated files to keep.
	MaxBackups int `yaml:"max_backups" toml:"max_backups"`
}

// ///////////////////////////////////////////////
// Default Configuration
// ///////////////////////////////////////////////

// DefaultConfig returns a Config populated with defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Log: LogConfig{
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// ExampleConfig returns the Config rendered into config.default.yaml.
func ExampleConfig() *Config {
	return DefaultConfig()
}

// ///////////////////////////////////////////////
// Loading
// ///////////////////////////////////////////////

// Load reads and parses the configuration file at path. A missing or
// unreadable file, malformed content, or an absent log_level key produce a
// [*LoadError]; values that parse but are not acceptable produce a
// [*ValueError]. The [EnvLogLevel] override is applied only after the file
// itself loaded cleanly.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	cfg := DefaultConfig()
	cfg.LogLevel = ""

	present, err := decode(path, data, cfg)
	if err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("parse: %w", err)}
	}
	if !present {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("%w: log_level", ErrMissingKey)}
	}

	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode unmarshals data into cfg using the format implied by the path
// extension and reports whether log_level was present in the document.
func decode(path string, data []byte, cfg *Config) (bool, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		meta, err := toml.Decode(string(data), cfg)
		if err != nil {
			return false, err
		}
		return meta.IsDefined("log_level"), nil
	default:
		var probe struct {
			LogLevel *string `yaml:"log_level"`
		}
		if err := yaml.Unmarshal(data, &probe); err != nil {
			return false, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return false, err
		}
		return probe.LogLevel != nil, nil
	}
}

// ///////////////////////////////////////////////
// Validation
// ///////////////////////////////////////////////

// Validate checks that all configuration values are within acceptable ranges.
func (c *Config) Validate() error {
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return &ValueError{Key: "log_level", Value: c.LogLevel, Err: err}
	}

	if c.Log.MaxSizeMB <= 0 {
		return &ValueError{
			Key:   "log.max_size_mb",
			Value: strconv.Itoa(c.Log.MaxSizeMB),
			Err:   errors.New("must be > 0"),
		}
	}

	if c.Log.MaxBackups < 0 {
		return &ValueError{
			Key:   "log.max_backups",
			Value: strconv.Itoa(c.Log.MaxBackups),
			Err:   errors.New("must be >= 0"),
		}
	}

	return nil
}

// Level returns the parsed log level. Call only on a validated Config; an
// unparseable level yields [logger.LevelInfo].
func (c *Config) Level() slog.Level {
	lvl, _ := logger.ParseLevel(c.LogLevel)
	return lvl
}
