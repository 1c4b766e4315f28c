package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/bluesky-social/indigo/atproto/syntax"
	"github.com/joho/godotenv"
)

// Config validation errors
var (
	// ErrMissingOwner is returned when no owner DID is configured
	ErrMissingOwner = errors.New("AGORA_OWNER_DID is required")
	// ErrInvalidOwner is returned when the owner is not a syntactically valid DID
	ErrInvalidOwner = errors.New("AGORA_OWNER_DID must be a valid DID")
	// ErrMissingJWTSecret is returned when no token signing secret is configured
	ErrMissingJWTSecret = errors.New("AGORA_JWT_SECRET is required")
	// ErrShortJWTSecret is returned when the signing secret is too short for HS256
	ErrShortJWTSecret = errors.New("AGORA_JWT_SECRET must be at least 32 bytes")
	// ErrInvalidPort is returned when Port is empty
	ErrInvalidPort = errors.New("AGORA_PORT must not be empty")
	// ErrInvalidRateLimit is returned when RateLimitPerMinute is not positive
	ErrInvalidRateLimit = errors.New("AGORA_RATE_LIMIT_PER_MINUTE must be positive")
	// ErrInvalidEventBuffer is returned when EventBuffer is not positive
	ErrInvalidEventBuffer = errors.New("AGORA_EVENT_BUFFER must be positive")
)

// MinJWTSecretLength is the shortest accepted HS256 signing key in bytes
const MinJWTSecretLength = 32

// Config holds the server configuration.
type Config struct {
	// OwnerDID is the platform owner, fixed for the lifetime of the process.
	OwnerDID string

	// Port is the HTTP listen port.
	Port string

	// DatabaseURL enables the event journal when set.
	// An empty value runs the platform purely in memory.
	DatabaseURL string

	// MigrationsDir is the goose migrations directory.
	MigrationsDir string

	// JWTSecret is the HS256 key used to verify bearer tokens.
	JWTSecret string

	// JWTIssuer, when set, must match the iss claim of every token.
	JWTIssuer string

	// RateLimitPerMinute is the per-client request budget.
	RateLimitPerMinute int

	// EventBuffer is the number of events queued per stream subscriber before it is dropped.
	EventBuffer int

	// TrustProxy keys rate limiting by X-Forwarded-For instead of the peer address.
	TrustProxy bool
}

// Validate checks the configuration for missing or invalid values.
func (c Config) Validate() error {
	if c.OwnerDID == "" {
		return ErrMissingOwner
	}
	if _, err := syntax.ParseDID(c.OwnerDID); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOwner, err)
	}
	if c.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	if len(c.JWTSecret) < MinJWTSecretLength {
		return fmt.Errorf("%w: got %d", ErrShortJWTSecret, len(c.JWTSecret))
	}
	if c.Port == "" {
		return ErrInvalidPort
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidRateLimit, c.RateLimitPerMinute)
	}
	if c.EventBuffer <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidEventBuffer, c.EventBuffer)
	}
	return nil
}

// JournalEnabled reports whether events are persisted to Postgres
func (c Config) JournalEnabled() bool {
	return c.DatabaseURL != ""
}

// DefaultConfig returns a Config with sensible default values.
// OwnerDID and JWTSecret have no defaults.
func DefaultConfig() Config {
	return Config{
		Port:               "8081",
		MigrationsDir:      "internal/db/migrations",
		RateLimitPerMinute: 100,
		EventBuffer:        64,
	}
}

// Load reads a .env file if one exists and then builds the config from the environment
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("[CONFIG] failed to load .env file", "error", err)
	}
	return ConfigFromEnv()
}

// ConfigFromEnv creates a Config from environment variables.
// Uses defaults for any missing environment variables.
//
// Environment variables:
//   - AGORA_OWNER_DID: platform owner DID (required)
//   - AGORA_PORT: HTTP port (default: 8081)
//   - DATABASE_URL: Postgres URL for the event journal (default: "" for in-memory only)
//   - AGORA_MIGRATIONS_DIR: goose migrations directory (default: internal/db/migrations)
//   - AGORA_JWT_SECRET: HS256 signing secret, at least 32 bytes (required)
//   - AGORA_JWT_ISSUER: expected token issuer (default: "" to accept any)
//   - AGORA_RATE_LIMIT_PER_MINUTE: requests per minute per client (default: 100)
//   - AGORA_EVENT_BUFFER: per-subscriber event stream buffer (default: 64)
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	cfg.OwnerDID = os.Getenv("AGORA_OWNER_DID")
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.JWTSecret = os.Getenv("AGORA_JWT_SECRET")
	cfg.JWTIssuer = os.Getenv("AGORA_JWT_ISSUER")

	if v := os.Getenv("AGORA_PORT"); v != "" {
		cfg.Port = v
	}

	if v := os.Getenv("AGORA_MIGRATIONS_DIR"); v != "" {
		cfg.MigrationsDir = v
	}

	if v := os.Getenv("AGORA_RATE_LIMIT_PER_MINUTE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RateLimitPerMinute = n
		} else {
			slog.Warn("[CONFIG] invalid AGORA_RATE_LIMIT_PER_MINUTE value, using default",
				"value", v,
				"default", cfg.RateLimitPerMinute,
				"error", err,
			)
		}
	}

	if v := os.Getenv("AGORA_TRUST_PROXY"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.TrustProxy = b
		} else {
			slog.Warn("[CONFIG] invalid AGORA_TRUST_PROXY value, using default",
				"value", v,
				"default", cfg.TrustProxy,
				"error", err,
			)
		}
	}

	if v := os.Getenv("AGORA_EVENT_BUFFER"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.EventBuffer = n
		} else {
			slog.Warn("[CONFIG] invalid AGORA_EVENT_BUFFER value, using default",
				"value", v,
				"default", cfg.EventBuffer,
				"error", err,
			)
		}
	}

	return cfg
}
