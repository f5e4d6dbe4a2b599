package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/jwebster45206/hide-and-seek/internal/config"
	"github.com/jwebster45206/hide-and-seek/internal/logger"
	"github.com/jwebster45206/hide-and-seek/internal/storage"
	"github.com/jwebster45206/hide-and-seek/pkg/game"
	"github.com/jwebster45206/hide-and-seek/pkg/house"
	pkgstorage "github.com/jwebster45206/hide-and-seek/pkg/storage"
)

const (
	redisMaxRetries = 10
	redisRetryDelay = time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// The terminal belongs to the UI, so logs go to a file.
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() {
		_ = logFile.Close() // Ignore error in defer
	}()

	log := logger.Setup(cfg, logFile)
	log.Info("Starting Hide and Seek",
		"environment", cfg.Environment,
		"storage", cfg.StorageBackend)

	store, err := storage.New(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.WithError(log, err).Error("Error closing storage")
		}
	}()

	waitCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := waitForStorage(waitCtx, store); err != nil {
		return fmt.Errorf("storage unavailable: %w", err)
	}

	seed := cfg.RandomSeed
	if seed == 0 {
		seed = rand.Uint64()
	}
	log.Debug("Random seed", "seed", seed)

	h := house.New(
		house.WithRand(rand.New(rand.NewPCG(seed, seed))),
		house.WithLogger(log),
	)

	gameID := uuid.New()
	gameLog := logger.WithGameID(log, gameID.String())
	controller, err := game.NewController(h, store, game.WithID(gameID), game.WithLogger(gameLog))
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	p := tea.NewProgram(NewConsoleUI(context.Background(), controller, gameLog),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}

	gameLog.Info("Game ended", "moves", controller.MoveNumber(), "game_over", controller.GameOver())
	return nil
}

// waitForStorage checks the store is reachable. Redis may still be starting,
// so it is retried; other backends are pinged once.
func waitForStorage(ctx context.Context, store pkgstorage.Storage) error {
	if rs, ok := store.(*storage.RedisStorage); ok {
		return rs.WaitForConnection(ctx, redisMaxRetries, redisRetryDelay)
	}
	return store.Ping(ctx)
}
