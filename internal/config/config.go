package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the server configuration, loaded from environment
// variables with sane defaults. Flags on the serve command override
// individual fields.
type Config struct {
	// Addr is the listen address for the HTTP server.
	// Env: TRACKD_ADDR, default ":8080".
	Addr string

	// DBPath is the SQLite database file.
	// Env: TRACKD_DB_PATH, default ~/.trackd/trackd.db.
	DBPath string

	// JWTSecret signs bearer tokens. Env: TRACKD_JWT_SECRET.
	// Required outside of tests; there is no safe default.
	JWTSecret string

	// TokenTTL is how long issued tokens stay valid.
	// Env: TRACKD_TOKEN_TTL_HOURS, default 72.
	TokenTTL time.Duration

	// LogLevel is the slog level: debug, info, warn, error.
	// Env: TRACKD_LOG_LEVEL, default info.
	LogLevel string
}

// FromEnv loads configuration from the environment.
func FromEnv() (Config, error) {
	cfg := Config{
		Addr:      ":8080",
		JWTSecret: os.Getenv("TRACKD_JWT_SECRET"),
		TokenTTL:  72 * time.Hour,
		LogLevel:  "info",
	}

	if v := os.Getenv("TRACKD_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("TRACKD_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("TRACKD_TOKEN_TTL_HOURS"); v != "" {
		hours, err := strconv.Atoi(v)
		if err != nil || hours < 1 {
			return cfg, fmt.Errorf("invalid TRACKD_TOKEN_TTL_HOURS %q", v)
		}
		cfg.TokenTTL = time.Duration(hours) * time.Hour
	}
	if v := os.Getenv("TRACKD_LOG_LEVEL"); v != "" {
		switch v {
		case "debug", "info", "warn", "error":
			cfg.LogLevel = v
		default:
			return cfg, fmt.Errorf("invalid TRACKD_LOG_LEVEL %q", v)
		}
	}

	return cfg, nil
}

// Validate checks the fields a running server cannot do without.
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("TRACKD_JWT_SECRET must be set")
	}
	return nil
}
