package storage

import (
	"context"
	"errors"

	"github.com/jwebster45206/hide-and-seek/pkg/state"
)

// ErrSaveNotFound is returned when loading or deleting a save that does not exist.
var ErrSaveNotFound = errors.New("save not found")

// Storage persists saved games under a player-chosen name.
// Backends: filesystem JSON files and Redis (internal/storage), in-memory for tests.
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// Saved game operations
	SaveGame(ctx context.Context, name string, sg *state.SavedGame) error
	LoadGame(ctx context.Context, name string) (*state.SavedGame, error)
	DeleteGame(ctx context.Context, name string) error
	ListGames(ctx context.Context) ([]string, error)
}
