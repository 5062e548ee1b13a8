package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr         string
	DBPath       string
	BaseURL      string
	AuthSecret   string
	AdminPhrase  string
	LogLevel     string
	PollInterval time.Duration
}

// Load reads configuration from .env (if present) and the environment.
// AdminPhrase may be empty, in which case the caller generates one.
func Load() *Config {
	godotenv.Load()

	return &Config{
		Addr:         getEnv("SAG_ADDR", ":8080"),
		DBPath:       getEnv("SAG_DB_PATH", "sag.db"),
		BaseURL:      getEnv("SAG_BASE_URL", "http://localhost:8080"),
		AuthSecret:   getEnv("SAG_AUTH_SECRET", ""),
		AdminPhrase:  getEnv("SAG_ADMIN_PHRASE", ""),
		LogLevel:     getEnv("SAG_LOG_LEVEL", "info"),
		PollInterval: getDurationEnv("SAG_POLL_INTERVAL_SECONDS", 3),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getDurationEnv(key string, fallbackSeconds int) time.Duration {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return time.Duration(fallbackSeconds) * time.Second
}
