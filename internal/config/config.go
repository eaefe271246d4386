// Package config loads and validates spot configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Defaults mirror the fixed constants of the interactive session.
const (
	// DefaultViewportHeight is the number of result rows shown on screen.
	DefaultViewportHeight = 12

	// DefaultResultLimit caps how many matches a search collects before
	// the scan short-circuits.
	DefaultResultLimit = DefaultViewportHeight

	// MaxResultLimit is the hard upper bound on the result cap.
	MaxResultLimit = 50

	// DefaultMaxQueryLen bounds the query buffer.
	DefaultMaxQueryLen = 255
)

// Config is the complete spot configuration.
type Config struct {
	// ViewportHeight is the number of result rows rendered.
	ViewportHeight int `yaml:"viewport_height"`

	// ResultLimit caps search results. Never exceeds MaxResultLimit.
	ResultLimit int `yaml:"result_limit"`

	// MaxQueryLen bounds the interactive query buffer.
	MaxQueryLen int `yaml:"max_query_len"`

	// ClearQueryOnOpen clears the query buffer after a file is opened.
	// An invalid or cancelled selection always retains the buffer.
	ClearQueryOnOpen *bool `yaml:"clear_query_on_open"`

	// NoColor disables styled output.
	NoColor bool `yaml:"no_color"`

	// Ignore lists gitignore-style globs excluded from indexing.
	Ignore []string `yaml:"ignore"`

	// UseGitignore honors per-directory .gitignore files.
	UseGitignore *bool `yaml:"use_gitignore"`

	// LogLevel is the minimum log level (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`
}

// New returns the hardcoded defaults.
func New() *Config {
	yes := true
	return &Config{
		ViewportHeight:   DefaultViewportHeight,
		ResultLimit:      DefaultResultLimit,
		MaxQueryLen:      DefaultMaxQueryLen,
		ClearQueryOnOpen: &yes,
		Ignore:           []string{".git"},
		UseGitignore:     &yes,
		LogLevel:         "info",
	}
}

// Load loads configuration for the given root directory, applying in
// order of increasing precedence:
//  1. Hardcoded defaults
//  2. User config (~/.config/spot/config.yaml)
//  3. Project config (.spot.yaml in the root directory)
func Load(dir string) (*Config, error) {
	cfg := New()

	if userPath, err := userConfigPath(); err == nil {
		if err := cfg.loadYAML(userPath); err != nil {
			return nil, fmt.Errorf("failed to load user config: %w", err)
		}
	}

	if err := cfg.loadYAML(filepath.Join(dir, ".spot.yaml")); err != nil {
		return nil, fmt.Errorf("failed to load project config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// loadYAML merges a YAML file into c. A missing file is fine: defaults
// stand.
func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	c.mergeWith(&parsed)
	return nil
}

// mergeWith merges set values from other into c.
func (c *Config) mergeWith(other *Config) {
	if other.ViewportHeight != 0 {
		c.ViewportHeight = other.ViewportHeight
	}
	if other.ResultLimit != 0 {
		c.ResultLimit = other.ResultLimit
	}
	if other.MaxQueryLen != 0 {
		c.MaxQueryLen = other.MaxQueryLen
	}
	if other.ClearQueryOnOpen != nil {
		c.ClearQueryOnOpen = other.ClearQueryOnOpen
	}
	if other.NoColor {
		c.NoColor = true
	}
	if len(other.Ignore) > 0 {
		// Merge with defaults rather than replace.
		c.Ignore = append(c.Ignore, other.Ignore...)
	}
	if other.UseGitignore != nil {
		c.UseGitignore = other.UseGitignore
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
}

// Validate checks the final configuration.
func (c *Config) Validate() error {
	if c.ViewportHeight < 1 {
		return fmt.Errorf("viewport_height must be at least 1, got %d", c.ViewportHeight)
	}
	if c.ResultLimit < 1 || c.ResultLimit > MaxResultLimit {
		return fmt.Errorf("result_limit must be between 1 and %d, got %d", MaxResultLimit, c.ResultLimit)
	}
	if c.MaxQueryLen < 1 {
		return fmt.Errorf("max_query_len must be at least 1, got %d", c.MaxQueryLen)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("log_level must be 'debug', 'info', 'warn', or 'error', got %s", c.LogLevel)
	}
	return nil
}

// ShouldClearQueryOnOpen reports the configured post-open behavior.
func (c *Config) ShouldClearQueryOnOpen() bool {
	return c.ClearQueryOnOpen == nil || *c.ClearQueryOnOpen
}

// ShouldUseGitignore reports whether .gitignore files are honored.
func (c *Config) ShouldUseGitignore() bool {
	return c.UseGitignore == nil || *c.UseGitignore
}

// userConfigPath returns the user-level config file path.
func userConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "spot", "config.yaml"), nil
}
