package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWTConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key")
	t.Setenv("JWT_ISSUER", "")
	t.Setenv("JWT_EXPIRATION_HOURS", "")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, "test-secret-key", cfg.Secret)
	assert.Equal(t, DefaultIssuer, cfg.Issuer)
	assert.Equal(t, 24, cfg.ExpirationHours, "should use default expiration of 24 hours")
}

func TestNewJWTConfig_CustomValues(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key")
	t.Setenv("JWT_ISSUER", "counsel-staging")
	t.Setenv("JWT_EXPIRATION_HOURS", "168")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, "counsel-staging", cfg.Issuer)
	assert.Equal(t, 168, cfg.ExpirationHours)
}

func TestNewJWTConfig_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	cfg, err := NewJWTConfig()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestNewJWTConfig_InvalidExpiration(t *testing.T) {
	tests := []struct {
		name       string
		expiration string
	}{
		{"non-numeric", "invalid"},
		{"zero", "0"},
		{"negative", "-1"},
		{"float", "12.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "test-secret-key")
			t.Setenv("JWT_EXPIRATION_HOURS", tt.expiration)

			cfg, err := NewJWTConfig()
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), "JWT_EXPIRATION_HOURS")
		})
	}
}
