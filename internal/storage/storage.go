package storage

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/jwebster45206/hide-and-seek/internal/config"
	"github.com/jwebster45206/hide-and-seek/pkg/storage"
)

// New creates the storage backend selected by the configuration.
func New(cfg *config.Config, logger *slog.Logger) (storage.Storage, error) {
	switch strings.ToLower(cfg.StorageBackend) {
	case config.BackendFile, "":
		logger.Info("Using file storage", "dir", cfg.SaveDir)
		return NewFileStorage(cfg.SaveDir, logger), nil
	case config.BackendRedis:
		logger.Info("Using Redis storage", "redis_url", cfg.RedisURL)
		return NewRedisStorage(cfg.RedisURL, cfg.SaveTTL, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
