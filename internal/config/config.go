package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // DISPLAY_TZ must resolve on hosts without zoneinfo

	"github.com/xhit/go-str2duration/v2"

	"github.com/battleroyale/stats-dashboard/internal/environment"
)

// Audit backends
const (
	AuditNone     = "none"
	AuditRedis    = "redis"
	AuditPostgres = "postgres"
)

type Config struct {
	// Server
	Port int
	Env  string

	// CORS
	AllowedOrigins []string

	// Backend API
	DefaultTarget   environment.Environment
	UpstreamURLs    map[environment.Environment]string
	UpstreamTimeout time.Duration

	// Report windows
	TournamentWindow time.Duration
	ReportWindow     time.Duration
	DisplayLocation  *time.Location

	// Audit trail
	AuditBackend    string
	AuditMaxEntries int
	RedisURL        string
	PostgresURL     string

	// Rate limiting (write routes)
	RateLimitPerSecond int
	RateLimitBurst     int

	// Logging
	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
}

// Load loads configuration from environment variables.
// It returns an error if the settings are inconsistent.
func Load() (*Config, error) {
	cfg := &Config{
		Port: getEnvInt("PORT", 8080),
		Env:  getEnv("ENV", "development"),

		UpstreamTimeout: getEnvDuration("UPSTREAM_TIMEOUT", 30*time.Second),

		TournamentWindow: getEnvDuration("TOURNAMENT_WINDOW", 24*time.Hour),
		ReportWindow:     getEnvDuration("REPORT_WINDOW", 7*24*time.Hour),

		AuditBackend:    strings.ToLower(getEnv("AUDIT_BACKEND", AuditNone)),
		AuditMaxEntries: getEnvInt("AUDIT_MAX_ENTRIES", 1000),
		RedisURL:        os.Getenv("REDIS_URL"),
		PostgresURL:     os.Getenv("POSTGRES_URL"),

		RateLimitPerSecond: getEnvInt("RATE_LIMIT_PER_SECOND", 5),
		RateLimitBurst:     getEnvInt("RATE_LIMIT_BURST", 10),

		LogFile:       os.Getenv("LOG_FILE"),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 100),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 30),
	}

	// CORS
	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:3000")
	rawOrigins := strings.Split(origins, ",")
	for _, o := range rawOrigins {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	var err error
	if cfg.DefaultTarget, err = environment.Parse(getEnv("DEFAULT_TARGET_ENV", "dev")); err != nil {
		return nil, fmt.Errorf("DEFAULT_TARGET_ENV: %w", err)
	}

	cfg.UpstreamURLs = map[environment.Environment]string{}
	for _, env := range environment.All() {
		if u := os.Getenv("UPSTREAM_URL_" + strings.ToUpper(env.String())); u != "" {
			cfg.UpstreamURLs[env] = u
		}
	}

	tz := getEnv("DISPLAY_TZ", "UTC")
	if cfg.DisplayLocation, err = time.LoadLocation(tz); err != nil {
		return nil, fmt.Errorf("DISPLAY_TZ: %w", err)
	}

	switch cfg.AuditBackend {
	case AuditNone:
	case AuditRedis:
		if cfg.RedisURL, err = getEnvRequired("REDIS_URL"); err != nil {
			return nil, err
		}
	case AuditPostgres:
		if cfg.PostgresURL, err = getEnvRequired("POSTGRES_URL"); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported AUDIT_BACKEND %q", cfg.AuditBackend)
	}

	return cfg, nil
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvRequired(key string) (string, error) {
	if value := os.Getenv(key); value != "" {
		return value, nil
	}
	return "", fmt.Errorf("missing required environment variable: %s", key)
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

// getEnvDuration also accepts day and week units ("7d", "1w").
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := str2duration.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
