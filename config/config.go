package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/joy095/shareit/logger"
)

// Config is the runtime configuration read from the environment.
type Config struct {
	Port        string
	DatabaseURL string
	RedisURL    string

	BookerPageSize int
	OwnerPageSize  int
	ItemPageSize   int

	LockTTL     time.Duration
	RateLimit   string
	CORSOrigins []string
	Location    *time.Location
}

// LoadEnv loads a .env file into the process environment when one exists.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		logger.InfoLogger.Info("No .env file found, using process environment")
	}
}

// Load builds a Config from the environment, applying defaults.
func Load() Config {
	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisURL:       os.Getenv("REDIS_URL"),
		BookerPageSize: getEnvInt("BOOKER_PAGE_SIZE", 10),
		OwnerPageSize:  getEnvInt("OWNER_PAGE_SIZE", 25),
		ItemPageSize:   getEnvInt("ITEM_PAGE_SIZE", 10),
		LockTTL:        getEnvDuration("LOCK_TTL", 5*time.Second),
		RateLimit:      getEnv("RATE_LIMIT", "60-1m"),
		CORSOrigins:    strings.Split(getEnv("CORS_ORIGINS", "*"), ","),
		Location:       time.UTC,
	}

	if tz := os.Getenv("TIMEZONE"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			logger.WarnLogger.Warnf("Unknown TIMEZONE %q, falling back to UTC: %v", tz, err)
		} else {
			cfg.Location = loc
		}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		logger.WarnLogger.Warnf("Invalid %s=%q, using %d", key, raw, fallback)
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		logger.WarnLogger.Warnf("Invalid %s=%q, using %s", key, raw, fallback)
		return fallback
	}
	return d
}
