package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jwebster45206/hide-and-seek/pkg/state"
	"github.com/jwebster45206/hide-and-seek/pkg/storage"
)

const saveFileExt = ".json"

// FileStorage keeps each saved game in {dir}/{name}.json.
type FileStorage struct {
	dir    string
	logger *slog.Logger
}

// Ensure FileStorage implements Storage interface
var _ storage.Storage = (*FileStorage)(nil)

// NewFileStorage creates a file storage rooted at dir, the working directory by default.
func NewFileStorage(dir string, logger *slog.Logger) *FileStorage {
	if dir == "" {
		dir = "."
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &FileStorage{
		dir:    dir,
		logger: logger,
	}
}

func (f *FileStorage) path(name string) string {
	return filepath.Join(f.dir, name+saveFileExt)
}

func (f *FileStorage) Ping(ctx context.Context) error {
	info, err := os.Stat(f.dir)
	if err != nil {
		return fmt.Errorf("save directory unavailable: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("save directory %s is not a directory", f.dir)
	}
	return nil
}

func (f *FileStorage) Close() error {
	return nil
}

func (f *FileStorage) SaveGame(ctx context.Context, name string, sg *state.SavedGame) error {
	data, err := json.Marshal(sg)
	if err != nil {
		f.logger.Error("Failed to marshal saved game", "name", name, "error", err)
		return fmt.Errorf("failed to marshal saved game: %w", err)
	}

	if err := os.WriteFile(f.path(name), data, 0o644); err != nil {
		f.logger.Error("Failed to write save file", "path", f.path(name), "error", err)
		return fmt.Errorf("failed to write save file: %w", err)
	}

	f.logger.Debug("Game saved", "path", f.path(name))
	return nil
}

func (f *FileStorage) LoadGame(ctx context.Context, name string) (*state.SavedGame, error) {
	data, err := os.ReadFile(f.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", storage.ErrSaveNotFound, name)
		}
		f.logger.Error("Failed to read save file", "path", f.path(name), "error", err)
		return nil, fmt.Errorf("failed to read save file: %w", err)
	}

	sg := state.NewSavedGame()
	if err := json.Unmarshal(data, sg); err != nil {
		f.logger.Error("Failed to unmarshal save file", "path", f.path(name), "error", err)
		return nil, fmt.Errorf("failed to unmarshal save file: %w", err)
	}

	return sg, nil
}

func (f *FileStorage) DeleteGame(ctx context.Context, name string) error {
	if err := os.Remove(f.path(name)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", storage.ErrSaveNotFound, name)
		}
		return fmt.Errorf("failed to delete save file: %w", err)
	}
	return nil
}

// ListGames returns the names of the .json files in the save directory.
// Files that are not saved games are not filtered out.
func (f *FileStorage) ListGames(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list save directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != saveFileExt {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), saveFileExt))
	}
	sort.Strings(names)
	return names, nil
}
