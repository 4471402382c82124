// Package config loads the tracker's YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration. Every field has a usable default.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	UI       UIConfig       `yaml:"ui"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DatabaseConfig locates the item table.
type DatabaseConfig struct {
	// Path of the SQLite file; relative paths resolve against the working directory.
	Path string `yaml:"path"`
}

// UIConfig controls terminal output.
type UIConfig struct {
	Theme string `yaml:"theme"` // classic, neon, mono
	Color string `yaml:"color"` // auto, always, never
}

// LoggingConfig controls diagnostics written to stderr.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
	// File receives the log instead of stderr when set. The interactive
	// view only logs when it is set.
	File string `yaml:"file,omitempty"`
}

const (
	dirName  = ".inventory"
	fileName = "config.yaml"

	EnvDatabase = "INVENTORY_DB"
	EnvTheme    = "INVENTORY_THEME"
)

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{Path: "inventory.db"},
		UI: UIConfig{
			Theme: "classic",
			Color: "auto",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// DefaultPath is ~/.inventory/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, dirName, fileName), nil
}

// Load reads the config at path on top of the defaults. A missing file
// is not an error. Environment overrides apply last.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML, creating the directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if p := strings.TrimSpace(os.Getenv(EnvDatabase)); p != "" {
		c.Database.Path = p
	}
	if th := strings.TrimSpace(os.Getenv(EnvTheme)); th != "" {
		c.UI.Theme = th
	}
}

// Validate rejects values the rest of the program cannot act on.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("database.path is empty")
	}
	if !oneOf(c.UI.Theme, "classic", "neon", "mono") {
		return fmt.Errorf("ui.theme %q: want classic, neon or mono", c.UI.Theme)
	}
	if !oneOf(c.UI.Color, "auto", "always", "never") {
		return fmt.Errorf("ui.color %q: want auto, always or never", c.UI.Color)
	}
	if !oneOf(c.Logging.Level, "debug", "info", "warn", "error") {
		return fmt.Errorf("logging.level %q: want debug, info, warn or error", c.Logging.Level)
	}
	if !oneOf(c.Logging.Format, "json", "console") {
		return fmt.Errorf("logging.format %q: want json or console", c.Logging.Format)
	}
	return nil
}

func oneOf(v string, allowed ...string) bool {
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return true
		}
	}
	return false
}
