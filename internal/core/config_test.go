package core

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

var configEnvKeys = []string{
	"LOG_LEVEL", "DEBUG", "LOG_FORMAT",
	"OUTSPS_SITE_URL", "OUTSPS_USERNAME", "OUTSPS_PASSWORD",
	"OUTSPS_TIMEOUT", "OUTSPS_REPORT_DIR",
}

// clearConfigEnv unsets every config variable and restores the originals after the test.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvKeys {
		orig, had := os.LookupEnv(key)
		os.Unsetenv(key)
		t.Cleanup(func() {
			if had {
				os.Setenv(key, orig)
			} else {
				os.Unsetenv(key)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name            string
		envVars         map[string]string
		expectedLevel   string
		expectedFormat  string
		expectedSite    string
		expectedTimeout time.Duration
		expectedReport  string
		expectError     bool
	}{
		{
			name:            "default values",
			envVars:         map[string]string{},
			expectedLevel:   "info",
			expectedFormat:  "json",
			expectedTimeout: 30 * time.Second,
			expectedReport:  ".outsps",
		},
		{
			name: "custom log level",
			envVars: map[string]string{
				"LOG_LEVEL": "warn",
			},
			expectedLevel:   "warn",
			expectedFormat:  "json",
			expectedTimeout: 30 * time.Second,
			expectedReport:  ".outsps",
		},
		{
			name: "debug flag overrides log level",
			envVars: map[string]string{
				"LOG_LEVEL": "warn",
				"DEBUG":     "1",
			},
			expectedLevel:   "debug",
			expectedFormat:  "json",
			expectedTimeout: 30 * time.Second,
			expectedReport:  ".outsps",
		},
		{
			name: "live settings",
			envVars: map[string]string{
				"OUTSPS_SITE_URL":   "http://sp.example.com/sites/conformance",
				"OUTSPS_TIMEOUT":    "5s",
				"OUTSPS_REPORT_DIR": "/tmp/reports",
				"LOG_FORMAT":        "text",
			},
			expectedLevel:   "info",
			expectedFormat:  "text",
			expectedSite:    "http://sp.example.com/sites/conformance",
			expectedTimeout: 5 * time.Second,
			expectedReport:  "/tmp/reports",
		},
		{
			name: "invalid timeout",
			envVars: map[string]string{
				"OUTSPS_TIMEOUT": "soon",
			},
			expectError: true,
		},
		{
			name: "invalid log format",
			envVars: map[string]string{
				"LOG_FORMAT": "xml",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			for k, v := range tt.envVars {
				os.Setenv(k, v)
			}

			cfg, err := LoadConfig()

			if tt.expectError {
				if err == nil {
					t.Error("Expected error but got none")
				}
				var vErr *ValidationError
				if !errors.As(err, &vErr) {
					t.Errorf("Expected ValidationError, got %T", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if cfg.LogLevel != tt.expectedLevel {
				t.Errorf("LogLevel = %v, want %v", cfg.LogLevel, tt.expectedLevel)
			}
			if cfg.LogFormat != tt.expectedFormat {
				t.Errorf("LogFormat = %v, want %v", cfg.LogFormat, tt.expectedFormat)
			}
			if cfg.SiteURL != tt.expectedSite {
				t.Errorf("SiteURL = %v, want %v", cfg.SiteURL, tt.expectedSite)
			}
			if cfg.Timeout != tt.expectedTimeout {
				t.Errorf("Timeout = %v, want %v", cfg.Timeout, tt.expectedTimeout)
			}
			if cfg.ReportDir != tt.expectedReport {
				t.Errorf("ReportDir = %v, want %v", cfg.ReportDir, tt.expectedReport)
			}
		})
	}
}

func TestLoadConfig_EnvFile(t *testing.T) {
	clearConfigEnv(t)

	envFile := filepath.Join(t.TempDir(), ".env")
	content := "OUTSPS_SITE_URL=http://from-file.example.com\nOUTSPS_USERNAME=tester\nLOG_LEVEL=debug\n"
	if err := os.WriteFile(envFile, []byte(content), 0644); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	// Values already in the environment win over the file.
	os.Setenv("OUTSPS_USERNAME", "from-env")

	cfg, err := LoadConfig(envFile, filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.SiteURL != "http://from-file.example.com" {
		t.Errorf("SiteURL = %v, want value from env file", cfg.SiteURL)
	}
	if cfg.Username != "from-env" {
		t.Errorf("Username = %v, want from-env", cfg.Username)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
	}
}

func TestConfig_ValidateLive(t *testing.T) {
	cfg := &Config{Timeout: time.Second}
	if err := cfg.ValidateLive(); err == nil {
		t.Error("Expected error for missing site URL")
	}

	cfg.SiteURL = "http://sp.example.com"
	if err := cfg.ValidateLive(); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	cfg.Timeout = 0
	if err := cfg.ValidateLive(); err == nil {
		t.Error("Expected error for zero timeout")
	}
}

func TestGetEnvOrDefault(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		envValue     string
		expected     string
	}{
		{
			name:         "env var set",
			key:          "OUTSPS_TEST_VAR",
			defaultValue: "default",
			envValue:     "custom",
			expected:     "custom",
		},
		{
			name:         "env var not set",
			key:          "OUTSPS_TEST_VAR_MISSING",
			defaultValue: "default",
			envValue:     "",
			expected:     "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.envValue)

			result := getEnvOrDefault(tt.key, tt.defaultValue)
			if result != tt.expected {
				t.Errorf("getEnvOrDefault() = %v, want %v", result, tt.expected)
			}
		})
	}
}
