// Package house models the house the opponents hide in: a fixed graph of
// locations, some of which have hiding places.
package house

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
)

var (
	// ErrLocationNotFound is returned when no location has the requested name.
	ErrLocationNotFound = errors.New("location not found")
	// ErrNoExits is returned when a random exit is requested from a dead end.
	ErrNoExits = errors.New("location has no exits")
)

const (
	// EntryName is where the player starts and every opponent starts walking.
	EntryName = "Entry"

	minWalk = 10
	maxWalk = 50
)

// House owns the location graph of one game session.
type House struct {
	entry     *Location
	locations map[string]*Location
	ordered   []*Location
	rng       *rand.Rand
	logger    *slog.Logger
}

// Option configures a House.
type Option func(*House)

// WithRand sets the random source used for opponent placement.
func WithRand(rng *rand.Rand) Option {
	return func(h *House) {
		h.rng = rng
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *House) {
		h.logger = logger
	}
}

// New builds an initialized house.
func New(opts ...Option) *House {
	h := &House{}
	for _, opt := range opts {
		opt(h)
	}
	if h.rng == nil {
		h.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if h.logger == nil {
		h.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	h.Initialize()
	return h
}

// Initialize builds the locations and wires their exits. Calling it again
// on an initialized house does nothing.
func (h *House) Initialize() {
	if h.locations != nil {
		return
	}
	h.locations = make(map[string]*Location)
	h.ordered = nil

	entry := h.add(NewLocation(EntryName))
	garage := h.add(NewHidingLocation("Garage", "behind the car"))
	hallway := h.add(NewLocation("Hallway"))
	kitchen := h.add(NewHidingLocation("Kitchen", "next to the stove"))
	bathroom := h.add(NewHidingLocation("Bathroom", "behind the door"))
	livingRoom := h.add(NewHidingLocation("Living Room", "behind the sofa"))
	landing := h.add(NewLocation("Landing"))
	masterBedroom := h.add(NewHidingLocation("Master Bedroom", "under the bed"))
	masterBath := h.add(NewHidingLocation("Master Bath", "in the tub"))
	secondBathroom := h.add(NewHidingLocation("Second Bathroom", "in the shower"))
	kidsRoom := h.add(NewHidingLocation("Kids Room", "in the bunk beds"))
	nursery := h.add(NewHidingLocation("Nursery", "behind the changing table"))
	pantry := h.add(NewHidingLocation("Pantry", "inside a cabinet"))
	attic := h.add(NewHidingLocation("Attic", "in a trunk"))

	entry.AddExit(Out, garage)
	entry.AddExit(East, hallway)

	hallway.AddExit(Northwest, kitchen)
	hallway.AddExit(North, bathroom)
	hallway.AddExit(South, livingRoom)
	hallway.AddExit(Up, landing)

	landing.AddExit(Northwest, masterBedroom)
	landing.AddExit(West, secondBathroom)
	landing.AddExit(Southwest, nursery)
	landing.AddExit(South, kidsRoom)
	landing.AddExit(Southeast, pantry)
	landing.AddExit(Up, attic)

	masterBedroom.AddExit(East, masterBath)

	h.entry = entry
	h.logger.Debug("House initialized", "locations", len(h.ordered))
}

func (h *House) add(loc *Location) *Location {
	h.locations[loc.Name] = loc
	h.ordered = append(h.ordered, loc)
	return loc
}

// Entry returns the entry location.
func (h *House) Entry() *Location {
	return h.entry
}

// Locations returns every location in construction order.
func (h *House) Locations() []*Location {
	return append([]*Location(nil), h.ordered...)
}

// HidingSpots returns the locations that have a hiding place.
func (h *House) HidingSpots() []*Location {
	var spots []*Location
	for _, loc := range h.ordered {
		if _, ok := loc.AsHidingSpot(); ok {
			spots = append(spots, loc)
		}
	}
	return spots
}

// GetLocationByName looks up a location by its exact name.
func (h *House) GetLocationByName(name string) (*Location, error) {
	loc, ok := h.locations[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrLocationNotFound, name)
	}
	return loc, nil
}

// ClearHidingPlaces empties every hiding place in the house.
func (h *House) ClearHidingPlaces() {
	for _, loc := range h.ordered {
		if spot, ok := loc.AsHidingSpot(); ok {
			spot.clear()
		}
	}
}

// RandomExit picks one of the location's exits uniformly at random.
func (h *House) RandomExit(loc *Location) (*Location, error) {
	dirs := loc.Directions()
	if len(dirs) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoExits, loc.Name)
	}
	next, _ := loc.Exit(dirs[h.rng.IntN(len(dirs))])
	return next, nil
}

// WalkLength returns the length of an opponent's initial random walk.
func (h *House) WalkLength() int {
	return minWalk + h.rng.IntN(maxWalk-minWalk)
}
