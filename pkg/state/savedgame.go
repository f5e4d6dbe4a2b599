package state

import (
	"errors"
	"fmt"
	"slices"

	"github.com/jwebster45206/hide-and-seek/pkg/house"
)

// SavedGame is the snapshot written by "save" and restored by "load".
// Field names are the keys of the save file.
type SavedGame struct {
	CurrentLocation              string            `json:"CurrentLocation"`
	MoveNumber                   int               `json:"MoveNumber"`
	OpponentsWithHidingLocations map[string]string `json:"OpponentsWithHidingLocations"` // opponent name → original hiding location
	FoundOpponents               []string          `json:"FoundOpponents"`               // discovery order
}

// NewSavedGame returns an empty snapshot with non-nil collections.
func NewSavedGame() *SavedGame {
	return &SavedGame{
		OpponentsWithHidingLocations: make(map[string]string),
		FoundOpponents:               make([]string, 0),
	}
}

// Validate checks that every name in the snapshot refers to a roster member
// or a location of the house. All problems are reported together.
func (sg *SavedGame) Validate(h *house.House, roster []house.Opponent) error {
	var errs []error

	if sg.MoveNumber < 1 {
		errs = append(errs, fmt.Errorf("move number must be at least 1, got %d", sg.MoveNumber))
	}
	if _, err := h.GetLocationByName(sg.CurrentLocation); err != nil {
		errs = append(errs, fmt.Errorf("current location: %w", err))
	}

	inRoster := func(name string) bool {
		return slices.ContainsFunc(roster, func(o house.Opponent) bool { return o.Name == name })
	}

	for name, locName := range sg.OpponentsWithHidingLocations {
		if !inRoster(name) {
			errs = append(errs, fmt.Errorf("hiding location for unknown opponent %q", name))
		}
		if _, err := h.GetLocationByName(locName); err != nil {
			errs = append(errs, fmt.Errorf("hiding location of %s: %w", name, err))
		}
	}

	seen := make(map[string]bool, len(sg.FoundOpponents))
	for _, name := range sg.FoundOpponents {
		if !inRoster(name) {
			errs = append(errs, fmt.Errorf("found opponent %q is not in the roster", name))
		}
		if seen[name] {
			errs = append(errs, fmt.Errorf("opponent %q found more than once", name))
		}
		seen[name] = true
	}

	return errors.Join(errs...)
}
