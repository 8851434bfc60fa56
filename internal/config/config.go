// Package config loads CLI defaults from the environment. A local
// .env file is honored when present, matching how credentials are
// usually supplied in development.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the settings the CLI reads from the environment.
// Command-line flags override every field.
type Config struct {
	Email   string
	APIKey  string
	Gate    string
	Timeout time.Duration
	Debug   bool
}

func New() *Config {
	_ = godotenv.Load()

	return &Config{
		Email:   getEnv("SMSAERO_EMAIL", ""),
		APIKey:  getEnv("SMSAERO_API_KEY", ""),
		Gate:    getEnv("SMSAERO_GATE", ""),
		Timeout: getDuration("SMSAERO_TIMEOUT", 10*time.Second),
		Debug:   isTruthy(os.Getenv("SMSAERO_DEBUG")),
	}
}

func getEnv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}

func getDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
