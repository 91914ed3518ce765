package config

import (
	"fmt"
	"time"
)

// MinSecretLength is the shortest accepted HMAC secret.
const MinSecretLength = 16

// JWTConfig holds configuration for crawl access token generation and validation.
type JWTConfig struct {
	Secret     string
	Expiration time.Duration
}

// NewJWTConfig creates a token configuration. A non-positive expiration uses DefaultTokenTTL.
func NewJWTConfig(secret string, expiration time.Duration) (*JWTConfig, error) {
	if expiration <= 0 {
		expiration = DefaultTokenTTL
	}
	cfg := &JWTConfig{Secret: secret, Expiration: expiration}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// normalize validates the configuration.
func (c *JWTConfig) normalize() error {
	if c.Secret == "" {
		return fmt.Errorf("token secret cannot be empty")
	}
	if len(c.Secret) < MinSecretLength {
		return fmt.Errorf("token secret must be at least %d bytes, got %d", MinSecretLength, len(c.Secret))
	}
	if c.Expiration < time.Minute {
		return fmt.Errorf("token expiration must be at least 1 minute, got: %s", c.Expiration)
	}
	return nil
}
