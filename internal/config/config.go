package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage backends
const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

type Config struct {
	Environment    string
	LogLevel       slog.Level
	LogFile        string
	StorageBackend string
	SaveDir        string
	RedisURL       string
	SaveTTL        time.Duration
	RandomSeed     uint64 // 0 picks a random seed
}

func Load() (*Config, error) {
	cfg := &Config{
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       parseLogLevel(getEnv("LOG_LEVEL", "info")),
		LogFile:        getEnv("LOG_FILE", "hide-and-seek.log"),
		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", BackendFile)),
		SaveDir:        getEnv("SAVE_DIR", "."),
		RedisURL:       getEnv("REDIS_URL", "localhost:6379"),
	}

	if v := os.Getenv("SAVE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SAVE_TTL %q: %w", v, err)
		}
		cfg.SaveTTL = ttl
	}

	if v := os.Getenv("RANDOM_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid RANDOM_SEED %q: %w", v, err)
		}
		cfg.RandomSeed = seed
	}

	switch cfg.StorageBackend {
	case BackendFile, BackendRedis:
	default:
		return nil, fmt.Errorf("invalid STORAGE_BACKEND %q: must be %q or %q", cfg.StorageBackend, BackendFile, BackendRedis)
	}

	return cfg, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
