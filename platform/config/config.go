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

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
	GetMigrationsDir() string
}

// JWTConfig provides JWT validation settings for middleware.
type JWTConfig interface {
	GetJWTAccessSecret() string
}

// AuthServiceConfig provides settings needed by the auth service.
type AuthServiceConfig interface {
	JWTConfig
	GetAccessTokenTTL() time.Duration
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
	GetRateLimitRPS() float64
	GetRateLimitBurst() int
}

// RedisConfig provides settings for the Redis connection.
type RedisConfig interface {
	GetRedisURL() string
	IsRedisEnabled() bool
}

// ShippingConfig provides settings for shipping quote computation.
type ShippingConfig interface {
	GetShippingRatesURL() string
	GetShippingRatesAPIKey() string
	GetShippingRatesTimeout() time.Duration
	GetShippingQuoteCacheTTL() time.Duration
	IsRemoteRatesEnabled() bool
}

// LabelsConfig provides settings for localized label bundles.
type LabelsConfig interface {
	GetLabelsDir() string
}

// StoreConfig provides settings for merchant store resolution.
type StoreConfig interface {
	GetDefaultStoreCode() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                   string
	HTTPAddr              string
	DatabaseURL           string
	MigrationsDir         string
	JWTAccessSecret       string
	AccessTokenTTL        time.Duration
	CORSAllowAll          bool
	CORSOrigins           []string
	CORSAllowCreds        bool
	RateLimitRPS          float64
	RateLimitBurst        int
	RedisURL              string
	ShippingRatesURL      string
	ShippingRatesAPIKey   string
	ShippingRatesTimeout  time.Duration
	ShippingQuoteCacheTTL time.Duration
	LabelsDir             string
	DefaultStoreCode      string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string   { return c.DatabaseURL }
func (c *Config) GetMigrationsDir() string { return c.MigrationsDir }

// JWTConfig implementation
func (c *Config) GetJWTAccessSecret() string { return c.JWTAccessSecret }

// AuthServiceConfig implementation
func (c *Config) GetAccessTokenTTL() time.Duration { return c.AccessTokenTTL }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }
func (c *Config) GetRateLimitRPS() float64 { return c.RateLimitRPS }
func (c *Config) GetRateLimitBurst() int   { return c.RateLimitBurst }

// RedisConfig implementation
func (c *Config) GetRedisURL() string  { return c.RedisURL }
func (c *Config) IsRedisEnabled() bool { return c.RedisURL != "" }

// ShippingConfig implementation
func (c *Config) GetShippingRatesURL() string             { return c.ShippingRatesURL }
func (c *Config) GetShippingRatesAPIKey() string          { return c.ShippingRatesAPIKey }
func (c *Config) GetShippingRatesTimeout() time.Duration  { return c.ShippingRatesTimeout }
func (c *Config) GetShippingQuoteCacheTTL() time.Duration { return c.ShippingQuoteCacheTTL }
func (c *Config) IsRemoteRatesEnabled() bool              { return c.ShippingRatesURL != "" }

// LabelsConfig implementation
func (c *Config) GetLabelsDir() string { return c.LabelsDir }

// StoreConfig implementation
func (c *Config) GetDefaultStoreCode() string { return c.DefaultStoreCode }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                   getEnv("APP_ENV", "development"),
		HTTPAddr:              getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:           getEnv("DATABASE_URL", ""),
		MigrationsDir:         getEnv("MIGRATIONS_DIR", ""),
		JWTAccessSecret:       getEnv("JWT_ACCESS_SECRET", ""),
		AccessTokenTTL:        mustDuration(getEnv("JWT_ACCESS_TTL", "30m")),
		CORSAllowAll:          corsAllowAll,
		CORSOrigins:           corsOrigins,
		CORSAllowCreds:        strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		RateLimitRPS:          mustFloat(getEnv("RATE_LIMIT_RPS", "20")),
		RateLimitBurst:        mustInt(getEnv("RATE_LIMIT_BURST", "40")),
		RedisURL:              getEnv("REDIS_URL", ""),
		ShippingRatesURL:      getEnv("SHIPPING_RATES_URL", ""),
		ShippingRatesAPIKey:   getEnv("SHIPPING_RATES_API_KEY", ""),
		ShippingRatesTimeout:  mustDuration(getEnv("SHIPPING_RATES_TIMEOUT", "10s")),
		ShippingQuoteCacheTTL: mustDuration(getEnv("SHIPPING_QUOTE_CACHE_TTL", "5m")),
		LabelsDir:             getEnv("LABELS_DIR", ""),
		DefaultStoreCode:      getEnv("DEFAULT_STORE_CODE", "DEFAULT"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTAccessSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.AccessTokenTTL <= 0 {
		return nil, fmt.Errorf("JWT_ACCESS_TTL must be a positive duration")
	}
	if !cfg.CORSAllowAll && len(cfg.CORSOrigins) == 0 {
		return nil, fmt.Errorf("CORS_ORIGINS must list at least one origin")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

// DatabaseOnly is the configuration needed by tooling that only talks to
// the database.
type DatabaseOnly struct {
	DatabaseURL   string
	MigrationsDir string
}

func (c DatabaseOnly) GetDatabaseURL() string   { return c.DatabaseURL }
func (c DatabaseOnly) GetMigrationsDir() string { return c.MigrationsDir }

// LoadDatabase reads DATABASE_URL and MIGRATIONS_DIR only.
func LoadDatabase() (DatabaseOnly, error) {
	_ = godotenv.Load()

	cfg := DatabaseOnly{
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		MigrationsDir: getEnv("MIGRATIONS_DIR", ""),
	}
	if cfg.DatabaseURL == "" {
		return DatabaseOnly{}, fmt.Errorf("DATABASE_URL is required")
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
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}

func mustFloat(value string) float64 {
	result, err := strconv.ParseFloat(value, 64)
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
