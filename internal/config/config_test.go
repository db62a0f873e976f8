package config

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Port:               "8080",
		Env:                "development",
		DBDriver:           "sqlite",
		DatabaseDSN:        "./data/fintrack.db",
		JWTSecret:          devSecret,
		JWTExpiry:          30 * time.Minute,
		LogLevel:           "info",
		LogFormat:          "text",
		AuthRateLimitRPS:   5,
		AuthRateLimitBurst: 10,
		ShutdownTimeout:    10 * time.Second,
	}
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "ENV", "DB_DRIVER", "DATABASE_DSN", "JWT_SECRET", "JWT_EXPIRY",
		"LOG_LEVEL", "LOG_FORMAT", "AUTH_RATE_LIMIT_RPS", "AUTH_RATE_LIMIT_BURST", "SHUTDOWN_TIMEOUT",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if !reflect.DeepEqual(cfg, validConfig()) {
		t.Errorf("Load() = %+v, want %+v", cfg, validConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("DATABASE_DSN", "user:pass@tcp(db:3306)/fintrack")
	t.Setenv("JWT_EXPIRY", "2h")
	t.Setenv("AUTH_RATE_LIMIT_RPS", "0.5")
	t.Setenv("AUTH_RATE_LIMIT_BURST", "3")

	cfg := Load()
	if cfg.Port != "9090" || cfg.DBDriver != "mysql" || cfg.DatabaseDSN != "user:pass@tcp(db:3306)/fintrack" {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.JWTExpiry != 2*time.Hour {
		t.Errorf("expected JWT expiry 2h, got %v", cfg.JWTExpiry)
	}
	if cfg.AuthRateLimitRPS != 0.5 || cfg.AuthRateLimitBurst != 3 {
		t.Errorf("unexpected rate limit %v/%d", cfg.AuthRateLimitRPS, cfg.AuthRateLimitBurst)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() unexpected error: %v", err)
	}
}

func TestLoad_MalformedValuesFailValidation(t *testing.T) {
	t.Setenv("JWT_EXPIRY", "30")
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	t.Setenv("AUTH_RATE_LIMIT_RPS", "fast")
	t.Setenv("AUTH_RATE_LIMIT_BURST", "1.5")

	cfg := Load()
	if cfg.JWTExpiry != 30*time.Minute || cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("malformed durations should keep defaults, got %v and %v", cfg.JWTExpiry, cfg.ShutdownTimeout)
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected malformed values to fail validation")
	}
	for _, want := range []string{
		"invalid JWT_EXPIRY '30'",
		"invalid SHUTDOWN_TIMEOUT 'not-a-duration'",
		"invalid AUTH_RATE_LIMIT_RPS 'fast'",
		"invalid AUTH_RATE_LIMIT_BURST '1.5'",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		errorString string
	}{
		{"valid", func(*Config) {}, ""},
		{"non-numeric port", func(c *Config) { c.Port = "abc" }, "invalid port 'abc': must be a number"},
		{"port out of range", func(c *Config) { c.Port = "70000" }, "invalid port 70000: must be between 1 and 65535"},
		{"unknown driver", func(c *Config) { c.DBDriver = "postgres" }, "invalid database driver 'postgres'"},
		{"empty dsn", func(c *Config) { c.DatabaseDSN = "" }, "DATABASE_DSN cannot be empty"},
		{"default secret in production", func(c *Config) { c.Env = "production" }, "JWT_SECRET must be set in production environment"},
		{"short secret in production", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = "too-short"
		}, "JWT_SECRET must be at least 32 bytes in production"},
		{"long secret in production", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = strings.Repeat("s", 32)
		}, ""},
		{"zero expiry", func(c *Config) { c.JWTExpiry = 0 }, "invalid JWT expiry"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "invalid log level 'loud'"},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, "invalid log format 'xml'"},
		{"zero burst", func(c *Config) { c.AuthRateLimitBurst = 0 }, "invalid auth rate limit burst 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()

			if tt.errorString == "" {
				if err != nil {
					t.Errorf("Config.Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Config.Validate() error = nil, want %q", tt.errorString)
			}
			if !strings.Contains(err.Error(), tt.errorString) {
				t.Errorf("Config.Validate() error = %v, want error containing %v", err, tt.errorString)
			}
		})
	}
}

func TestConfig_ValidateCollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Port = "abc"
	cfg.LogFormat = "xml"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"invalid port", "invalid log format"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}
