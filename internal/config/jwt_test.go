package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWTConfig(t *testing.T) {
	cfg, err := NewJWTConfig("a-very-long-secret-value", 0)
	require.NoError(t, err)
	assert.Equal(t, "a-very-long-secret-value", cfg.Secret)
	assert.Equal(t, DefaultTokenTTL, cfg.Expiration, "should use default expiration")

	cfg, err = NewJWTConfig("a-very-long-secret-value", 2*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, cfg.Expiration)
}

func TestNewJWTConfig_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		secret     string
		expiration time.Duration
		errMsg     string
	}{
		{"empty secret", "", time.Hour, "cannot be empty"},
		{"short secret", "tiny", time.Hour, "at least 16 bytes"},
		{"expiration too short", "a-very-long-secret-value", time.Second, "at least 1 minute"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewJWTConfig(tt.secret, tt.expiration)
			assert.Nil(t, cfg)
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}
