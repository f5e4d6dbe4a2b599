package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/jwebster45206/hide-and-seek/pkg/state"
)

// MockStorage is an in-memory implementation of Storage for testing.
// Saves are stored encoded so later changes to the caller's value don't leak in.
type MockStorage struct {
	mu        sync.RWMutex
	saves     map[string][]byte
	pingError error
	saveError error
}

// Ensure MockStorage implements Storage interface
var _ Storage = (*MockStorage)(nil)

// NewMockStorage creates a new mock storage
func NewMockStorage() *MockStorage {
	return &MockStorage{
		saves: make(map[string][]byte),
	}
}

// SetPingError configures the mock to fail on ping with the given error
func (m *MockStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

// SetSaveError configures the mock to fail every save with the given error
func (m *MockStorage) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveError = err
}

// PutRaw stores raw save file contents (for testing hand-written saves)
func (m *MockStorage) PutRaw(name string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves[name] = data
}

// Ping mocks storage ping
func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

// Close mocks storage close
func (m *MockStorage) Close() error {
	return nil
}

// SaveGame mocks saving a game
func (m *MockStorage) SaveGame(ctx context.Context, name string, sg *state.SavedGame) error {
	if sg == nil {
		return errors.New("saved game cannot be nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveError != nil {
		return m.saveError
	}
	data, err := json.Marshal(sg)
	if err != nil {
		return fmt.Errorf("failed to marshal saved game: %w", err)
	}
	m.saves[name] = data
	return nil
}

// LoadGame mocks loading a game
func (m *MockStorage) LoadGame(ctx context.Context, name string) (*state.SavedGame, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, exists := m.saves[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrSaveNotFound, name)
	}
	sg := state.NewSavedGame()
	if err := json.Unmarshal(data, sg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal saved game: %w", err)
	}
	return sg, nil
}

// DeleteGame mocks deleting a game
func (m *MockStorage) DeleteGame(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.saves[name]; !exists {
		return fmt.Errorf("%w: %s", ErrSaveNotFound, name)
	}
	delete(m.saves, name)
	return nil
}

// ListGames mocks listing saved games
func (m *MockStorage) ListGames(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.saves))
	for name := range m.saves {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
