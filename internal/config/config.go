package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"
)

const devSecret = "dev-secret-change-in-production"

// minProductionSecret is the shortest JWT secret accepted when ENV=production.
const minProductionSecret = 32

type Config struct {
	Port string
	Env  string

	DBDriver    string
	DatabaseDSN string

	JWTSecret string
	JWTExpiry time.Duration

	LogLevel  string
	LogFormat string

	AuthRateLimitRPS   float64
	AuthRateLimitBurst int

	ShutdownTimeout time.Duration

	// parseErrors holds values that were set but could not be parsed.
	parseErrors []string
}

func Load() Config {
	var env envReader
	cfg := Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		DBDriver:           getEnv("DB_DRIVER", "sqlite"),
		DatabaseDSN:        getEnv("DATABASE_DSN", "./data/fintrack.db"),
		JWTSecret:          getEnv("JWT_SECRET", devSecret),
		JWTExpiry:          env.duration("JWT_EXPIRY", 30*time.Minute),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
		AuthRateLimitRPS:   env.number("AUTH_RATE_LIMIT_RPS", 5),
		AuthRateLimitBurst: env.integer("AUTH_RATE_LIMIT_BURST", 10),
		ShutdownTimeout:    env.duration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
	cfg.parseErrors = env.errs
	return cfg
}

// IsProduction reports whether ENV is "production".
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	errs := slices.Clone(c.parseErrors)

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DBDriver {
	case "sqlite", "mysql":
	default:
		errs = append(errs, fmt.Sprintf("invalid database driver '%s': must be sqlite or mysql", c.DBDriver))
	}
	if c.DatabaseDSN == "" {
		errs = append(errs, "DATABASE_DSN cannot be empty")
	}

	if c.JWTSecret == "" {
		errs = append(errs, "JWT_SECRET cannot be empty")
	} else if c.IsProduction() {
		if c.JWTSecret == devSecret {
			errs = append(errs, "JWT_SECRET must be set in production environment")
		} else if len(c.JWTSecret) < minProductionSecret {
			errs = append(errs, fmt.Sprintf("JWT_SECRET must be at least %d bytes in production", minProductionSecret))
		}
	}
	if c.JWTExpiry <= 0 {
		errs = append(errs, fmt.Sprintf("invalid JWT expiry %v: must be positive", c.JWTExpiry))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("invalid log level '%s': must be debug, info, warn or error", c.LogLevel))
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("invalid log format '%s': must be text or json", c.LogFormat))
	}

	if c.AuthRateLimitRPS <= 0 {
		errs = append(errs, fmt.Sprintf("invalid auth rate limit %v: must be positive", c.AuthRateLimitRPS))
	}
	if c.AuthRateLimitBurst < 1 {
		errs = append(errs, fmt.Sprintf("invalid auth rate limit burst %d: must be at least 1", c.AuthRateLimitBurst))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("invalid shutdown timeout %v: must be positive", c.ShutdownTimeout))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envReader parses typed variables, keeping the default and recording an
// error when a value is set but malformed.
type envReader struct {
	errs []string
}

func (e *envReader) integer(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Sprintf("invalid %s '%s': must be a whole number", key, v))
		return fallback
	}
	return i
}

func (e *envReader) number(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		e.errs = append(e.errs, fmt.Sprintf("invalid %s '%s': must be a number", key, v))
		return fallback
	}
	return f
}

func (e *envReader) duration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Sprintf("invalid %s '%s': must be a duration such as 30m or 10s", key, v))
		return fallback
	}
	return d
}
