// Package config loads user preferences for nethesap. Exam structure is
// fixed and deliberately absent here.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/nethesap/nethesap/internal/exam"
)

// Config holds all nethesap settings.
type Config struct {
	// DefaultExam is the variant opened when none is given on the command line.
	DefaultExam string `yaml:"default_exam"`

	// BusyDelay is how long the calculator shows its busy indicator before
	// revealing results. Zero reveals results immediately.
	BusyDelay string `yaml:"busy_delay"`

	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// ExportConfig configures PNG result cards.
type ExportConfig struct {
	Dir string `yaml:"dir"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
	File   string `yaml:"file"`   // empty: stderr for commands, discarded in the TUI
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		DefaultExam: exam.TYT,
		BusyDelay:   "300ms",
		Export: ExportConfig{
			Dir: ".",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// Load reads settings from path on top of the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// Defaults only.
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config as YAML, creating the parent directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// applyEnvOverrides applies NETHESAP_* environment variables.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("NETHESAP_EXAM"); v != "" {
		c.DefaultExam = v
	}
	if v := os.Getenv("NETHESAP_EXPORT_DIR"); v != "" {
		c.Export.Dir = v
	}
	if v := os.Getenv("NETHESAP_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("NETHESAP_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []string

	if _, err := exam.Load(c.DefaultExam); err != nil {
		errs = append(errs, fmt.Sprintf("default_exam: %v", err))
	}
	if d, err := time.ParseDuration(c.BusyDelay); err != nil {
		errs = append(errs, fmt.Sprintf("busy_delay: %v", err))
	} else if d < 0 {
		errs = append(errs, fmt.Sprintf("busy_delay must be >= 0, got %s", d))
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Sprintf("logging.level: %v", err))
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Sprintf("logging.format must be json or console, got %q", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// GetBusyDelay returns the parsed busy delay, or zero if invalid.
func (c *Config) GetBusyDelay() time.Duration {
	d, err := time.ParseDuration(c.BusyDelay)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// DefaultPath resolves the config file path:
// 1. $XDG_CONFIG_HOME/nethesap/config.yaml
// 2. ~/.config/nethesap/config.yaml
func DefaultPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "nethesap", "config.yaml"), nil
}
