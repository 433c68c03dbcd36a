package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config keeps runtime settings for the server.
type Config struct {
	AppPort       string
	DatabaseURL   string
	JWTSecret     string
	TokenTTL      time.Duration
	SweepTime     string // HH:MM, daily overdue sweep
	SweepInterval time.Duration
}

// Load reads configuration from environment variables with sane
// defaults. A .env file is honored when present.
func Load() (Config, error) {
	_ = godotenv.Load(".env")

	cfg := Config{
		AppPort:       getEnv("APP_PORT", "8080"),
		DatabaseURL:   getEnv("DATABASE_URL", "taskboard.db"),
		JWTSecret:     strings.TrimSpace(os.Getenv("JWT_SECRET")),
		TokenTTL:      parseHours(getEnv("TOKEN_TTL_HOURS", "24"), 24*time.Hour),
		SweepTime:     getEnv("OVERDUE_SWEEP_TIME", "03:00"),
		SweepInterval: parseHours(strings.TrimSpace(os.Getenv("OVERDUE_SWEEP_INTERVAL_HOURS")), 0),
	}

	if cfg.JWTSecret == "" {
		return cfg, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func parseHours(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	hours, err := time.ParseDuration(raw + "h")
	if err != nil || hours <= 0 {
		return fallback
	}
	return hours
}
