// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DataSourcePostgres reads leads and events from the contact-center database.
	DataSourcePostgres = "postgres"
	// DataSourceFixture serves a seeded synthetic dataset held in memory.
	DataSourceFixture = "fixture"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// MigrationConfig controls whether the mirrored schema is migrated on startup.
type MigrationConfig interface {
	DatabaseConfig
	GetRunMigrations() bool
}

// JWTConfig provides JWT validation settings for middleware.
type JWTConfig interface {
	GetJWTAccessSecret() string
}

// OperatorConfig provides the single dashboard operator credentials.
type OperatorConfig interface {
	JWTConfig
	GetAccessTokenTTL() time.Duration
	GetDashboardUsername() string
	GetDashboardPasswordHash() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// RedisConfig provides settings for the shared Redis instance.
type RedisConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
}

// SchedulerConfig provides settings for the asynq task queue.
type SchedulerConfig interface {
	RedisConfig
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
	GetSummaryRefreshCron() string
}

// CacheConfig provides settings for the summary cache.
type CacheConfig interface {
	RedisConfig
	GetSummaryCacheTTL() time.Duration
}

// AIConfig provides settings for the OpenAI-compatible chat endpoint.
type AIConfig interface {
	GetGroqAPIKey() string
	GetGroqBaseURL() string
	GetGroqModel() string
	IsAIEnabled() bool
}

// AnalyticsConfig provides settings for the aggregation engine.
type AnalyticsConfig interface {
	GetDataSource() string
	GetAnalyticsRequestTimeout() time.Duration
	GetAnalyticsWorkers() int
	GetEnrollmentCode() string
	GetFixtureSeed() uint64
	GetFixtureSize() int
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                     string
	HTTPAddr                string
	DataSource              string
	DatabaseURL             string
	RunMigrations           bool
	JWTAccessSecret         string
	AccessTokenTTL          time.Duration
	DashboardUsername       string
	DashboardPasswordHash   string
	CORSAllowAll            bool
	CORSOrigins             []string
	CORSAllowCreds          bool
	RedisURL                string
	RedisTLSInsecure        bool
	AsynqQueueName          string
	AsynqConcurrency        int
	SummaryRefreshCron      string
	SummaryCacheTTL         time.Duration
	GroqAPIKey              string
	GroqBaseURL             string
	GroqModel               string
	AnalyticsRequestTimeout time.Duration
	AnalyticsWorkers        int
	EnrollmentCode          string
	FixtureSeed             uint64
	FixtureSize             int
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }
func (c *Config) GetRunMigrations() bool { return c.RunMigrations }

// OperatorConfig implementation
func (c *Config) GetJWTAccessSecret() string       { return c.JWTAccessSecret }
func (c *Config) GetAccessTokenTTL() time.Duration { return c.AccessTokenTTL }
func (c *Config) GetDashboardUsername() string     { return c.DashboardUsername }
func (c *Config) GetDashboardPasswordHash() string { return c.DashboardPasswordHash }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// SchedulerConfig implementation
func (c *Config) GetRedisURL() string           { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool     { return c.RedisTLSInsecure }
func (c *Config) GetAsynqQueueName() string     { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int      { return c.AsynqConcurrency }
func (c *Config) GetSummaryRefreshCron() string { return c.SummaryRefreshCron }

// CacheConfig implementation
func (c *Config) GetSummaryCacheTTL() time.Duration { return c.SummaryCacheTTL }

// AIConfig implementation
func (c *Config) GetGroqAPIKey() string  { return c.GroqAPIKey }
func (c *Config) GetGroqBaseURL() string { return c.GroqBaseURL }
func (c *Config) GetGroqModel() string   { return c.GroqModel }
func (c *Config) IsAIEnabled() bool      { return c.GroqAPIKey != "" }

// AnalyticsConfig implementation
func (c *Config) GetDataSource() string { return c.DataSource }
func (c *Config) GetAnalyticsRequestTimeout() time.Duration {
	return c.AnalyticsRequestTimeout
}
func (c *Config) GetAnalyticsWorkers() int  { return c.AnalyticsWorkers }
func (c *Config) GetEnrollmentCode() string { return c.EnrollmentCode }
func (c *Config) GetFixtureSeed() uint64    { return c.FixtureSeed }
func (c *Config) GetFixtureSize() int       { return c.FixtureSize }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return fromEnv(getEnv)
}

func fromEnv(lookup func(key, fallback string) string) (*Config, error) {
	corsOrigins := splitCSV(lookup("CORS_ORIGINS", "http://localhost:5173"))
	corsAllowAll := strings.EqualFold(lookup("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                     lookup("APP_ENV", "development"),
		HTTPAddr:                lookup("HTTP_ADDR", ":8080"),
		DataSource:              strings.ToLower(strings.TrimSpace(lookup("DATA_SOURCE", DataSourcePostgres))),
		DatabaseURL:             lookup("DATABASE_URL", ""),
		RunMigrations:           strings.EqualFold(lookup("DB_RUN_MIGRATIONS", "false"), "true"),
		JWTAccessSecret:         lookup("JWT_ACCESS_SECRET", ""),
		AccessTokenTTL:          mustDuration(lookup("JWT_ACCESS_TTL", "12h")),
		DashboardUsername:       lookup("DASHBOARD_USERNAME", "admin"),
		DashboardPasswordHash:   lookup("DASHBOARD_PASSWORD_HASH", ""),
		CORSAllowAll:            corsAllowAll,
		CORSOrigins:             corsOrigins,
		CORSAllowCreds:          strings.EqualFold(lookup("CORS_ALLOW_CREDENTIALS", "false"), "true"),
		RedisURL:                lookup("REDIS_URL", ""),
		RedisTLSInsecure:        strings.EqualFold(lookup("REDIS_TLS_INSECURE", "false"), "true"),
		AsynqQueueName:          lookup("ASYNQ_QUEUE", "default"),
		AsynqConcurrency:        mustInt(lookup("ASYNQ_CONCURRENCY", "4")),
		SummaryRefreshCron:      lookup("SUMMARY_REFRESH_CRON", "@every 10m"),
		SummaryCacheTTL:         mustDuration(lookup("SUMMARY_CACHE_TTL", "15m")),
		GroqAPIKey:              lookup("GROQ_API_KEY", ""),
		GroqBaseURL:             lookup("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		GroqModel:               lookup("GROQ_MODEL", "llama-3.3-70b-versatile"),
		AnalyticsRequestTimeout: mustDuration(lookup("ANALYTICS_REQUEST_TIMEOUT", "15s")),
		AnalyticsWorkers:        mustInt(lookup("ANALYTICS_WORKERS", "4")),
		EnrollmentCode:          lookup("ENROLLMENT_CODE", "116"),
		FixtureSeed:             mustUint64(lookup("FIXTURE_SEED", "42")),
		FixtureSize:             mustInt(lookup("FIXTURE_SIZE", "1200")),
	}

	switch cfg.DataSource {
	case DataSourcePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when DATA_SOURCE is %q", DataSourcePostgres)
		}
	case DataSourceFixture:
		if cfg.FixtureSize < 1 {
			return nil, fmt.Errorf("FIXTURE_SIZE must be positive")
		}
	default:
		return nil, fmt.Errorf("DATA_SOURCE must be %q or %q, got %q", DataSourcePostgres, DataSourceFixture, cfg.DataSource)
	}
	if cfg.JWTAccessSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.AccessTokenTTL <= 0 {
		return nil, fmt.Errorf("JWT_ACCESS_TTL must be a positive duration")
	}
	if cfg.AnalyticsRequestTimeout <= 0 {
		return nil, fmt.Errorf("ANALYTICS_REQUEST_TIMEOUT must be a positive duration")
	}
	if strings.TrimSpace(cfg.EnrollmentCode) == "" {
		return nil, fmt.Errorf("ENROLLMENT_CODE must not be empty")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return result
}

func mustUint64(value string) uint64 {
	result, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
