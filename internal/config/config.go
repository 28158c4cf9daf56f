package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// FallbackSessionSecret signs session tokens when SESSION_SECRET is unset.
// Anyone who knows it can mint a valid session, so main warns loudly when it is in use.
const FallbackSessionSecret = "fallback-secret-change-this"

const (
	StoreRedis = "redis"
	StoreMySQL = "mysql"
)

var (
	ErrRedisURLRequired    = errors.New("REDIS_URL is required when STORE_DRIVER=redis")
	ErrDatabaseDSNRequired = errors.New("DATABASE_DSN is required when STORE_DRIVER=mysql")
	ErrUnknownStoreDriver  = errors.New("STORE_DRIVER must be one of: redis, mysql")
)

type Config struct {
	Port     string
	Env      string
	LogLevel string

	AdminPasswordHash string
	SessionSecret     string
	SessionTTL        time.Duration

	StoreDriver    string
	RedisURL       string
	RedisToken     string
	StoreNamespace string
	DatabaseDSN    string

	FirecrawlAPIKey  string
	FirecrawlBaseURL string
	ExtractRPS       float64
	ExtractBurst     int

	CORSAllowedOrigins []string
}

func Load() Config {
	return Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		SessionSecret:     getEnv("SESSION_SECRET", FallbackSessionSecret),
		SessionTTL:        30 * 24 * time.Hour,

		StoreDriver:    strings.ToLower(getEnv("STORE_DRIVER", StoreRedis)),
		RedisURL:       os.Getenv("REDIS_URL"),
		RedisToken:     os.Getenv("REDIS_TOKEN"),
		StoreNamespace: os.Getenv("STORE_NAMESPACE"),
		DatabaseDSN:    os.Getenv("DATABASE_DSN"),

		FirecrawlAPIKey:  os.Getenv("FIRECRAWL_API_KEY"),
		FirecrawlBaseURL: getEnv("FIRECRAWL_BASE_URL", "https://api.firecrawl.dev"),
		ExtractRPS:       getEnvFloat("EXTRACT_RPS", 1),
		ExtractBurst:     getEnvInt("EXTRACT_BURST", 3),

		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
	}
}

// Validate reports configuration the process cannot start without.
// Only the store is mandatory; auth and extraction fail per request instead.
func (c Config) Validate() error {
	switch c.StoreDriver {
	case StoreRedis:
		if c.RedisURL == "" {
			return ErrRedisURLRequired
		}
	case StoreMySQL:
		if c.DatabaseDSN == "" {
			return ErrDatabaseDSNRequired
		}
	default:
		return ErrUnknownStoreDriver
	}
	return nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func (c Config) UsesFallbackSecret() bool {
	return c.SessionSecret == FallbackSessionSecret
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			return i
		}
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
