package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jwebster45206/hide-and-seek/internal/config"
	internalstorage "github.com/jwebster45206/hide-and-seek/internal/storage"
	"github.com/jwebster45206/hide-and-seek/pkg/game"
	"github.com/jwebster45206/hide-and-seek/pkg/house"
	"github.com/jwebster45206/hide-and-seek/pkg/state"
	"github.com/jwebster45206/hide-and-seek/pkg/storage"
)

func main() {
	prune := flag.Bool("prune", false, "delete stored saves that fail validation (store mode only)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-prune] [save.json...]\n", os.Args[0])
		fmt.Fprintln(os.Stderr, "With no files, every save in the configured storage backend is checked.")
		flag.PrintDefaults()
	}
	flag.Parse()

	validator := NewSaveValidator()

	if flag.NArg() == 0 {
		if err := runStore(validator, *prune); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		return
	}

	failed := false
	for _, filename := range flag.Args() {
		fmt.Printf("Validating %s...\n", filename)
		if err := validator.validateFile(filename); err != nil {
			fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
			failed = true
			continue
		}
		fmt.Println("Save file is valid!")
	}

	if failed {
		os.Exit(1)
	}
}

// runStore checks every save held by the backend the game is configured with.
func runStore(v *SaveValidator, prune bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	store, err := internalstorage.New(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close() // Ignore error in defer
	}()

	invalid, err := v.validateStore(context.Background(), store, prune, os.Stdout)
	if err != nil {
		return err
	}
	if invalid > 0 && !prune {
		return fmt.Errorf("%d invalid save(s)", invalid)
	}
	return nil
}

// SaveValidator checks save files against the house and the default roster.
type SaveValidator struct {
	house  *house.House
	roster []house.Opponent
}

func NewSaveValidator() *SaveValidator {
	return &SaveValidator{
		house:  house.New(),
		roster: house.DefaultRoster(),
	}
}

func (v *SaveValidator) validateFile(filename string) error {
	baseName := filepath.Base(filename)
	if !strings.HasSuffix(baseName, ".json") {
		return fmt.Errorf("save file must have .json extension: %s", baseName)
	}
	if err := game.ValidateFilename(strings.TrimSuffix(baseName, ".json")); err != nil {
		return fmt.Errorf("save file %s cannot be loaded in game: %w", baseName, err)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	return v.validate(data)
}

func (v *SaveValidator) validate(data []byte) error {
	if !json.Valid(data) {
		return errors.New("file contains invalid JSON")
	}

	var sg state.SavedGame
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&sg); err != nil {
		return fmt.Errorf("failed strict JSON unmarshaling: %w", err)
	}

	if err := sg.Validate(v.house, v.roster); err != nil {
		return fmt.Errorf("validation errors:\n%w", err)
	}
	return nil
}

// validateStore checks every save the store lists and returns how many are
// invalid. With prune set, invalid saves are deleted.
func (v *SaveValidator) validateStore(ctx context.Context, store storage.Storage, prune bool, w io.Writer) (int, error) {
	names, err := store.ListGames(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list saves: %w", err)
	}

	invalid := 0
	for _, name := range names {
		fmt.Fprintf(w, "Validating %s...\n", name)
		err := v.validateStored(ctx, store, name)
		if err == nil {
			fmt.Fprintln(w, "Save is valid!")
			continue
		}

		invalid++
		fmt.Fprintf(w, "Validation failed: %v\n", err)
		if !prune {
			continue
		}
		if err := store.DeleteGame(ctx, name); err != nil && !errors.Is(err, storage.ErrSaveNotFound) {
			return invalid, fmt.Errorf("failed to delete %s: %w", name, err)
		}
		fmt.Fprintf(w, "Deleted %s\n", name)
	}
	return invalid, nil
}

func (v *SaveValidator) validateStored(ctx context.Context, store storage.Storage, name string) error {
	if err := game.ValidateFilename(name); err != nil {
		return fmt.Errorf("save %s cannot be loaded in game: %w", name, err)
	}
	sg, err := store.LoadGame(ctx, name)
	if err != nil {
		return err
	}
	if err := sg.Validate(v.house, v.roster); err != nil {
		return fmt.Errorf("validation errors:\n%w", err)
	}
	return nil
}
