package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	// Create temp config file
	content := `{
		"universities": "data/universities.json",
		"profile": "profile.json",
		"model": "gemini-2.0-flash",
		"local": true,
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "data/universities.json", cfg.Universities)
	assert.Equal(t, "profile.json", cfg.Profile)
	assert.Equal(t, "gemini-2.0-flash", cfg.Model)
	assert.True(t, cfg.Local)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate_MissingDataset(t *testing.T) {
	cfg := &Config{
		Universities: "/nonexistent/universities.json",
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "universities file not found")
}

func TestValidate_ValidConfig(t *testing.T) {
	dataset := filepath.Join(t.TempDir(), "universities.json")
	require.NoError(t, os.WriteFile(dataset, []byte("[]"), 0644))

	cfg := &Config{
		Universities: dataset,
		Model:        "gemini-2.0-flash",
	}

	assert.NoError(t, cfg.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Config{
		Universities: "data/universities.json",
		Scholarships: "data/scholarships.json",
		Exams:        "data/entrance_exams.json",
		Model:        "gemini-2.0-flash",
	}

	partial := Config{
		Universities: "custom/universities.json",
		Profile:      "me.json",
	}

	merged := partial.MergeWithDefaults(defaults)

	// Custom values should be preserved
	assert.Equal(t, "custom/universities.json", merged.Universities)
	assert.Equal(t, "me.json", merged.Profile)

	// Default values should fill in empty fields
	assert.Equal(t, "data/scholarships.json", merged.Scholarships)
	assert.Equal(t, "data/entrance_exams.json", merged.Exams)
	assert.Equal(t, "gemini-2.0-flash", merged.Model)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{
		Profile: "me.json",
		APIKey:  "key",
	}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, "me.json", merged.Profile)
	assert.Equal(t, "key", merged.APIKey)
}
