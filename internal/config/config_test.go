package config

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	testOwner  = "did:plc:owner123"
	testSecret = "0123456789abcdef0123456789abcdef"
)

func validConfig() Config {
	cfg := DefaultConfig()
	cfg.OwnerDID = testOwner
	cfg.JWTSecret = testSecret
	return cfg
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "valid config",
			mutate:  func(*Config) {},
			wantErr: nil,
		},
		{
			name:    "missing owner",
			mutate:  func(c *Config) { c.OwnerDID = "" },
			wantErr: ErrMissingOwner,
		},
		{
			name:    "owner is not a DID",
			mutate:  func(c *Config) { c.OwnerDID = "alice.example.com" },
			wantErr: ErrInvalidOwner,
		},
		{
			name:    "missing secret",
			mutate:  func(c *Config) { c.JWTSecret = "" },
			wantErr: ErrMissingJWTSecret,
		},
		{
			name:    "short secret",
			mutate:  func(c *Config) { c.JWTSecret = "short" },
			wantErr: ErrShortJWTSecret,
		},
		{
			name:    "empty port",
			mutate:  func(c *Config) { c.Port = "" },
			wantErr: ErrInvalidPort,
		},
		{
			name:    "zero rate limit",
			mutate:  func(c *Config) { c.RateLimitPerMinute = 0 },
			wantErr: ErrInvalidRateLimit,
		},
		{
			name:    "negative event buffer",
			mutate:  func(c *Config) { c.EventBuffer = -1 },
			wantErr: ErrInvalidEventBuffer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "expected %v, got %v", tt.wantErr, err)
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, "internal/db/migrations", cfg.MigrationsDir)
	assert.Equal(t, 100, cfg.RateLimitPerMinute)
	assert.Equal(t, 64, cfg.EventBuffer)
	assert.False(t, cfg.JournalEnabled())
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("AGORA_OWNER_DID", testOwner)
	t.Setenv("AGORA_JWT_SECRET", testSecret)
	t.Setenv("AGORA_JWT_ISSUER", "agora-dev")
	t.Setenv("AGORA_PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://localhost/agora")
	t.Setenv("AGORA_RATE_LIMIT_PER_MINUTE", "30")
	t.Setenv("AGORA_EVENT_BUFFER", "8")

	cfg := ConfigFromEnv()

	assert.Equal(t, testOwner, cfg.OwnerDID)
	assert.Equal(t, testSecret, cfg.JWTSecret)
	assert.Equal(t, "agora-dev", cfg.JWTIssuer)
	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.JournalEnabled())
	assert.Equal(t, 30, cfg.RateLimitPerMinute)
	assert.Equal(t, 8, cfg.EventBuffer)
	assert.NoError(t, cfg.Validate())
}

func TestConfigFromEnv_TrustProxy(t *testing.T) {
	assert.False(t, ConfigFromEnv().TrustProxy)

	t.Setenv("AGORA_TRUST_PROXY", "true")
	assert.True(t, ConfigFromEnv().TrustProxy)

	t.Setenv("AGORA_TRUST_PROXY", "sometimes")
	assert.False(t, ConfigFromEnv().TrustProxy)
}

func TestConfigFromEnv_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("AGORA_RATE_LIMIT_PER_MINUTE", "lots")
	t.Setenv("AGORA_EVENT_BUFFER", "-4")

	cfg := ConfigFromEnv()

	assert.Equal(t, 100, cfg.RateLimitPerMinute)
	assert.Equal(t, 64, cfg.EventBuffer)
}

func TestConfig_ValidateMessageIncludesValue(t *testing.T) {
	cfg := validConfig()
	cfg.RateLimitPerMinute = -3

	err := cfg.Validate()
	assert.True(t, strings.Contains(err.Error(), "-3"))
}
