package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	ErrMissingStoreURL   = errors.New("STORE_URL is required")
	ErrMissingServiceKey = errors.New("STORE_SERVICE_KEY is required")
	ErrNoEventTypes      = errors.New("WEBHOOK_EVENT_TYPES must name at least one event type")
)

// DefaultEventTypes covers both delivery shapes: database-trigger webhooks ("INSERT" on
// the users table) and auth hooks ("auth.user.created").
var DefaultEventTypes = []string{"INSERT", "auth.user.created"}

type Config struct {
	Port     string
	Env      string
	LogLevel string
	Migrate  bool

	Store   StoreConfig
	Redis   RedisConfig
	Webhook WebhookConfig
}

// StoreConfig points at the relational store. The service key authorizes the
// service role, which bypasses row-level security.
type StoreConfig struct {
	URL             string
	ServiceKey      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig is optional; an empty Addr disables the view cache and event publishing.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	ViewTTL  time.Duration
}

func (r RedisConfig) Enabled() bool { return r.Addr != "" }

type WebhookConfig struct {
	EventTypes []string
	// JWTSecret, when set, is required to sign the bearer token on inbound webhooks.
	JWTSecret string
	// Compensate deletes the user row when the profile insert fails.
	Compensate bool
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds and validates a Config from getenv.
func FromEnv(getenv func(string) string) (*Config, error) {
	e := env{getenv: getenv}

	cfg := &Config{
		Port:     e.str("PORT", "8082"),
		Env:      e.str("APP_ENV", "dev"),
		LogLevel: e.str("LOG_LEVEL", "info"),
		Migrate:  e.boolean("MIGRATE", false),
		Store: StoreConfig{
			URL:             e.str("STORE_URL", ""),
			ServiceKey:      e.str("STORE_SERVICE_KEY", ""),
			MaxOpenConns:    e.integer("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    e.integer("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: e.duration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			Addr:     e.str("REDIS_ADDR", ""),
			Password: e.str("REDIS_PASSWORD", ""),
			DB:       e.integer("REDIS_DB", 0),
			ViewTTL:  e.duration("VIEW_CACHE_TTL", 10*time.Minute),
		},
		Webhook: WebhookConfig{
			EventTypes: e.list("WEBHOOK_EVENT_TYPES", DefaultEventTypes),
			JWTSecret:  e.str("WEBHOOK_JWT_SECRET", ""),
			Compensate: e.boolean("SIGNUP_COMPENSATE", true),
		},
	}

	if len(e.errs) > 0 {
		return nil, errors.Join(e.errs...)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate fails fast on settings without which the service cannot do its job.
func (c *Config) Validate() error {
	var errs []error
	if c.Store.URL == "" {
		errs = append(errs, ErrMissingStoreURL)
	}
	if c.Store.ServiceKey == "" {
		errs = append(errs, ErrMissingServiceKey)
	}
	if len(c.Webhook.EventTypes) == 0 {
		errs = append(errs, ErrNoEventTypes)
	}
	return errors.Join(errs...)
}

type env struct {
	getenv func(string) string
	errs   []error
}

func (e *env) str(key, fallback string) string {
	if value := strings.TrimSpace(e.getenv(key)); value != "" {
		return value
	}
	return fallback
}

func (e *env) integer(key string, fallback int) int {
	raw := e.str(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: invalid integer %q", key, raw))
		return fallback
	}
	return v
}

func (e *env) boolean(key string, fallback bool) bool {
	raw := e.str(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: invalid boolean %q", key, raw))
		return fallback
	}
	return v
}

func (e *env) duration(key string, fallback time.Duration) time.Duration {
	raw := e.str(key, "")
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: invalid duration %q", key, raw))
		return fallback
	}
	return v
}

func (e *env) list(key string, fallback []string) []string {
	raw := e.str(key, "")
	if raw == "" {
		return append([]string(nil), fallback...)
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
