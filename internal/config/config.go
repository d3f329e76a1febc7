// Package config provides configuration loading and validation for the CLI
// and the auth stack.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Datasets
	Universities string `json:"universities,omitempty"` // Path to universities dataset
	Scholarships string `json:"scholarships,omitempty"` // Path to scholarships dataset
	Exams        string `json:"exams,omitempty"`        // Path to entrance exams dataset

	// Input
	Profile string `json:"profile,omitempty"` // Path to student profile JSON

	// Behavior
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	Model       string `json:"model,omitempty"`        // Model override for the analysis tier
	Local       bool   `json:"local,omitempty"`        // Use the deterministic engine, no LLM
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	// Validate file paths exist (if specified)
	for _, p := range []struct{ label, path string }{
		{"universities", c.Universities},
		{"scholarships", c.Scholarships},
		{"exams", c.Exams},
		{"profile", c.Profile},
	} {
		if p.path == "" {
			continue
		}
		if _, err := os.Stat(p.path); os.IsNotExist(err) {
			return fmt.Errorf("config error: %s file not found: %s", p.label, p.path)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty string fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Universities == "" {
		result.Universities = defaults.Universities
	}
	if result.Scholarships == "" {
		result.Scholarships = defaults.Scholarships
	}
	if result.Exams == "" {
		result.Exams = defaults.Exams
	}
	if result.Profile == "" {
		result.Profile = defaults.Profile
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
