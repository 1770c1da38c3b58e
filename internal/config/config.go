// Package config loads quill's YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration.
type Config struct {
	DataDir       string        `yaml:"data_dir"`
	LogFile       *string       `yaml:"log_file,omitempty"`
	LogLevel      string        `yaml:"log_level"`
	StatusTimeout time.Duration `yaml:"status_timeout"`
	History       History       `yaml:"history"`
}

// History configures cursor memory and the save log.
type History struct {
	Enabled       bool `yaml:"enabled"`
	RestoreCursor bool `yaml:"restore_cursor"`
	MaxSaves      int  `yaml:"max_saves"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		DataDir:       "~/.quill",
		LogLevel:      "info",
		StatusTimeout: 5 * time.Second,
		History: History{
			Enabled:       true,
			RestoreCursor: true,
			MaxSaves:      200,
		},
	}
}

// DefaultPath returns the config file location under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, "quill", "config.yaml"), nil
}

// Load reads the config file at path over the defaults. A missing file
// yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	if c.StatusTimeout < 0 {
		return fmt.Errorf("status_timeout must not be negative")
	}
	if c.History.MaxSaves < 0 {
		return fmt.Errorf("history.max_saves must not be negative")
	}
	return nil
}

// DataPath returns DataDir with a leading ~ expanded.
func (c Config) DataPath() (string, error) {
	return ExpandHome(c.DataDir)
}

// LogPath returns the log file path. An empty result means logging is off.
func (c Config) LogPath() (string, error) {
	if c.LogFile != nil {
		return ExpandHome(*c.LogFile)
	}
	dir, err := c.DataPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "quill.log"), nil
}

// HistoryPath returns the SQLite database path.
func (c Config) HistoryPath() (string, error) {
	dir, err := c.DataPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
