package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress         string
	DatabaseURI        string
	SessionSecret      string
	SessionTTL         time.Duration
	SessionStore       string
	RedisURL           string
	CookieSecure       bool
	BcryptCost         int
	HashWorkers        int
	ShutdownTimeout    time.Duration
	CORSAllowedOrigins []string
	LogLevel           string
}

// Session store backends.
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

const (
	defaultRunAddress      = ":8080"
	defaultSessionSecret   = "change-me-in-production"
	defaultSessionTTL      = 24 * time.Hour
	defaultSessionStore    = SessionStoreMemory
	defaultBcryptCost      = 10
	defaultHashWorkers     = 4
	defaultShutdownTimeout = 10 * time.Second
	defaultLogLevel        = "info"
)

// Load parses configuration from flags and environment variables. Values from a
// local .env file are merged into the environment first.
func Load() (*Config, error) {
	loadEnvFile(".env")
	return load(os.Args[1:], os.LookupEnv)
}

func loadEnvFile(path string) {
	// godotenv never overrides variables that are already set.
	_ = godotenv.Load(path)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:      getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:     getString(lookup, "DATABASE_URI", ""),
		SessionSecret:   getString(lookup, "SESSION_SECRET", defaultSessionSecret),
		SessionTTL:      getDuration(lookup, "SESSION_TTL", defaultSessionTTL),
		SessionStore:    getString(lookup, "SESSION_STORE", defaultSessionStore),
		RedisURL:        getString(lookup, "REDIS_URL", ""),
		CookieSecure:    getBool(lookup, "COOKIE_SECURE", false),
		BcryptCost:      getInt(lookup, "BCRYPT_COST", defaultBcryptCost),
		HashWorkers:     getInt(lookup, "HASH_WORKERS", defaultHashWorkers),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		LogLevel:        getString(lookup, "LOG_LEVEL", defaultLogLevel),
	}

	fs := flag.NewFlagSet("membersonly", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		sessionTTLStr      = cfg.SessionTTL.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		originsStr         = getString(lookup, "CORS_ALLOWED_ORIGINS", "")
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.SessionSecret, "session-secret", cfg.SessionSecret, "Secret for signing session ids")
	fs.StringVar(&sessionTTLStr, "session-ttl", sessionTTLStr, "Absolute session lifetime")
	fs.StringVar(&cfg.SessionStore, "session-store", cfg.SessionStore, "Session store backend: memory or redis")
	fs.StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "Redis URL for the redis session store")
	fs.BoolVar(&cfg.CookieSecure, "cookie-secure", cfg.CookieSecure, "Mark session cookie as Secure")
	fs.IntVar(&cfg.BcryptCost, "bcrypt-cost", cfg.BcryptCost, "bcrypt cost factor")
	fs.IntVar(&cfg.HashWorkers, "hash-workers", cfg.HashWorkers, "Number of concurrent password hashing workers")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&originsStr, "cors-origins", originsStr, "Comma separated list of allowed CORS origins")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.SessionTTL, err = time.ParseDuration(sessionTTLStr); err != nil {
		return nil, fmt.Errorf("invalid session ttl: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	cfg.CORSAllowedOrigins = splitList(originsStr)

	if secretFile, ok := lookup("SESSION_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read session secret file: %w", err)
		}
		cfg.SessionSecret = strings.TrimSpace(string(content))
	}

	if cfg.HashWorkers <= 0 {
		cfg.HashWorkers = defaultHashWorkers
	}

	if cfg.BcryptCost <= 0 {
		cfg.BcryptCost = defaultBcryptCost
	}

	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	cfg.SessionStore = strings.ToLower(strings.TrimSpace(cfg.SessionStore))

	if cfg.DatabaseURI == "" {
		return nil, errors.New("database URI must be provided")
	}

	if cfg.SessionSecret == "" {
		return nil, errors.New("session secret must not be empty")
	}

	if cfg.CookieSecure && cfg.UsesDefaultSessionSecret() {
		return nil, errors.New("session secret must be set when secure cookies are enabled")
	}

	switch cfg.SessionStore {
	case SessionStoreMemory:
	case SessionStoreRedis:
		if cfg.RedisURL == "" {
			return nil, errors.New("redis url must be provided for the redis session store")
		}
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.SessionStore)
	}

	return cfg, nil
}

// UsesDefaultSessionSecret reports whether the built-in development secret is in effect.
func (c *Config) UsesDefaultSessionSecret() bool {
	return c.SessionSecret == defaultSessionSecret
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
