package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries all runtime settings for the gateway. Values come from the
// environment, optionally seeded from a .env file in development.
type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	// BackendBaseURL is the classroom REST backend the gateway fronts.
	BackendBaseURL string

	// RedisURL enables the shared session store; empty means the gateway
	// runs without one and refetches the user from the backend per request.
	RedisURL string

	// CookieName and SessionTTL bound the bearer-token cookie and the
	// session record alike.
	CookieName string
	SessionTTL time.Duration
}

func LoadConfig() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		BackendBaseURL: getEnv("BACKEND_BASE_URL", "http://localhost:5000"),
		RedisURL:       getEnv("REDIS_URL", ""),
		CookieName:     getEnv("SESSION_COOKIE_NAME", "accessToken"),
	}

	switch getEnv("LOG_LEVEL", "info") {
	case "debug":
		cfg.LogLevel = slog.LevelDebug
	case "warn":
		cfg.LogLevel = slog.LevelWarn
	case "error":
		cfg.LogLevel = slog.LevelError
	default:
		cfg.LogLevel = slog.LevelInfo
	}

	ttlSeconds, err := strconv.Atoi(getEnv("SESSION_TTL_SECONDS", "3600"))
	if err != nil || ttlSeconds <= 0 {
		return nil, fmt.Errorf("invalid SESSION_TTL_SECONDS: %q", getEnv("SESSION_TTL_SECONDS", "3600"))
	}
	cfg.SessionTTL = time.Duration(ttlSeconds) * time.Second

	if cfg.BackendBaseURL == "" {
		return nil, fmt.Errorf("BACKEND_BASE_URL must not be empty")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
