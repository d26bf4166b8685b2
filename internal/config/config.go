// Package config provides application configuration loading from
// environment variables, with optional .env file support.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	// DBPath is the SQLite database file path.
	DBPath string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// SMTP settings for budget alert emails. Host left empty disables
	// email notification.
	SMTPHost     string
	SMTPPort     int
	SMTPEmail    string
	SMTPPassword string
}

// Load reads configuration from a .env file (if present) and the
// environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DBPath:       getEnv("DB_PATH", "./data/spendwise.db"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPEmail:    getEnv("SMTP_EMAIL", ""),
		SMTPPassword: getEnv("SMTP_PASS", ""),
	}
}

// EmailEnabled reports whether SMTP is configured well enough to try
// sending.
func (c *Config) EmailEnabled() bool {
	return c.SMTPHost != "" && c.SMTPEmail != ""
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
