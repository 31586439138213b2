package core

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	LogLevel  string // debug, info, warn, error
	LogFormat string // json or text
	SiteURL   string // Site hosting the Lists web service, required for live runs
	Username  string
	Password  string
	Timeout   time.Duration
	ReportDir string
}

// LoadConfig loads configuration from environment variables. Each env file that
// exists is loaded first; variables already set in the environment win.
func LoadConfig(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if f == "" {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("load env file %s: %w", f, err)
		}
	}

	logLevel := getEnvOrDefault("LOG_LEVEL", "info")

	// DEBUG flag overrides log level
	if os.Getenv("DEBUG") == "1" {
		logLevel = "debug"
	}

	timeout := 30 * time.Second
	if raw := os.Getenv("OUTSPS_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, &ValidationError{Field: "OUTSPS_TIMEOUT", Message: "must be a duration such as 30s", Err: err}
		}
		timeout = d
	}

	cfg := &Config{
		LogLevel:  logLevel,
		LogFormat: getEnvOrDefault("LOG_FORMAT", "json"),
		SiteURL:   os.Getenv("OUTSPS_SITE_URL"),
		Username:  os.Getenv("OUTSPS_USERNAME"),
		Password:  os.Getenv("OUTSPS_PASSWORD"),
		Timeout:   timeout,
		ReportDir: getEnvOrDefault("OUTSPS_REPORT_DIR", ".outsps"),
	}

	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, &ValidationError{Field: "LOG_FORMAT", Message: "must be json or text"}
	}

	return cfg, nil
}

// ValidateLive checks the settings needed to talk to a real server.
// The site URL is not required for offline commands.
func (c *Config) ValidateLive() error {
	if c.SiteURL == "" {
		return &ValidationError{Field: "OUTSPS_SITE_URL", Message: "required for live runs"}
	}
	if c.Timeout <= 0 {
		return &ValidationError{Field: "OUTSPS_TIMEOUT", Message: "must be positive"}
	}
	return nil
}

// getEnvOrDefault returns the value of an environment variable or a default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
