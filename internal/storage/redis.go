package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/jwebster45206/hide-and-seek/pkg/state"
	"github.com/jwebster45206/hide-and-seek/pkg/storage"
	"github.com/redis/go-redis/v9"
)

const saveKeyPrefix = "savegame:"

// RedisStorage keeps saved games in Redis, one JSON string per save.
type RedisStorage struct {
	client *redis.Client
	logger *slog.Logger
	ttl    time.Duration
}

// Ensure RedisStorage implements Storage interface
var _ storage.Storage = (*RedisStorage)(nil)

// NewRedisStorage creates a new Redis storage instance. redisURL is either a
// redis:// URL or a bare host:port. A zero ttl keeps saves forever.
func NewRedisStorage(redisURL string, ttl time.Duration, logger *slog.Logger) (*RedisStorage, error) {
	opt := &redis.Options{Addr: redisURL}
	if strings.Contains(redisURL, "://") {
		var err error
		if opt, err = redis.ParseURL(redisURL); err != nil {
			return nil, fmt.Errorf("failed to parse redis URL: %w", err)
		}
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &RedisStorage{
		client: redis.NewClient(opt),
		logger: logger,
		ttl:    ttl,
	}, nil
}

func saveKey(name string) string {
	return saveKeyPrefix + name
}

// Health and lifecycle methods

func (r *RedisStorage) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// WaitForConnection waits for Redis to become available (used during startup)
func (r *RedisStorage) WaitForConnection(ctx context.Context, maxRetries int, retryDelay time.Duration) error {
	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}

		r.logger.Info("Redis connection established")
		return nil
	}

	return fmt.Errorf("redis did not become available after %d attempts", maxRetries)
}

// Saved game operations

func (r *RedisStorage) SaveGame(ctx context.Context, name string, sg *state.SavedGame) error {
	data, err := json.Marshal(sg)
	if err != nil {
		r.logger.Error("Failed to marshal saved game", "name", name, "error", err)
		return fmt.Errorf("failed to marshal saved game: %w", err)
	}

	if err := r.client.Set(ctx, saveKey(name), string(data), r.ttl).Err(); err != nil {
		r.logger.Error("Failed to save game", "name", name, "error", err)
		return fmt.Errorf("failed to save game: %w", err)
	}

	r.logger.Debug("Game saved", "name", name, "bytes", len(data))
	return nil
}

func (r *RedisStorage) LoadGame(ctx context.Context, name string) (*state.SavedGame, error) {
	data, err := r.client.Get(ctx, saveKey(name)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.logger.Warn("Saved game not found", "name", name)
			return nil, fmt.Errorf("%w: %s", storage.ErrSaveNotFound, name)
		}
		r.logger.Error("Failed to load game", "name", name, "error", err)
		return nil, fmt.Errorf("failed to load game: %w", err)
	}

	sg := state.NewSavedGame()
	if err := json.Unmarshal([]byte(data), sg); err != nil {
		r.logger.Error("Failed to unmarshal saved game", "name", name, "error", err)
		return nil, fmt.Errorf("failed to unmarshal saved game: %w", err)
	}

	return sg, nil
}

func (r *RedisStorage) DeleteGame(ctx context.Context, name string) error {
	deleted, err := r.client.Del(ctx, saveKey(name)).Result()
	if err != nil {
		r.logger.Error("Failed to delete game", "name", name, "error", err)
		return fmt.Errorf("failed to delete game: %w", err)
	}
	if deleted == 0 {
		return fmt.Errorf("%w: %s", storage.ErrSaveNotFound, name)
	}
	return nil
}

func (r *RedisStorage) ListGames(ctx context.Context) ([]string, error) {
	var names []string
	iter := r.client.Scan(ctx, 0, saveKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		names = append(names, strings.TrimPrefix(iter.Val(), saveKeyPrefix))
	}
	if err := iter.Err(); err != nil {
		r.logger.Error("Failed to list games", "error", err)
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	sort.Strings(names)
	return names, nil
}
