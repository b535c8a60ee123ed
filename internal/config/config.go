// Package config resolves server settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environments
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Storage backends
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

// Config holds all configuration for the server
type Config struct {
	Environment string
	Port        string
	LogLevel    slog.Level

	StorageType string
	RedisURL    string
	SessionTTL  time.Duration

	// KafkaBrokers is empty when notifications are not streamed to Kafka
	KafkaBrokers []string
	KafkaTopic   string

	// SeedEvents fills an empty catalog with sample events at startup
	SeedEvents bool
}

// Load reads configuration from environment variables. Outside production it
// first loads the given .env files (default ".env"); missing files are ignored.
// Variables already set in the environment take precedence.
func Load(envFiles ...string) (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = EnvDevelopment
	}

	if env != EnvProduction {
		if len(envFiles) == 0 {
			envFiles = []string{".env"}
		}
		for _, f := range envFiles {
			if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("loading %s: %w", f, err)
			}
		}
	}

	cfg := &Config{
		Environment: env,
		Port:        getEnv("PORT", "8080"),
		StorageType: strings.ToLower(getEnv("STORAGE_TYPE", StorageMemory)),
		RedisURL:    os.Getenv("REDIS_URL"),
		KafkaTopic:  getEnv("KAFKA_TOPIC", "eventease.notifications"),
	}

	level, err := parseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	cfg.SessionTTL, err = time.ParseDuration(getEnv("SESSION_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	cfg.SeedEvents, err = strconv.ParseBool(getEnv("SEED_EVENTS", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEED_EVENTS: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the settings are consistent
func (c *Config) Validate() error {
	switch c.StorageType {
	case StorageMemory:
	case StorageRedis:
		if c.RedisURL == "" {
			return errors.New("REDIS_URL required when STORAGE_TYPE=redis")
		}
	default:
		return fmt.Errorf("unknown STORAGE_TYPE %q", c.StorageType)
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	if port, err := strconv.Atoi(c.Port); err != nil || port < 0 || port > 65535 {
		return fmt.Errorf("invalid PORT %q", c.Port)
	}
	return nil
}

// IsProduction returns true when running in production
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return ":" + c.Port
}

// NewLogger builds the application logger: JSON in production, text otherwise
func NewLogger(cfg *Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	return level, nil
}
