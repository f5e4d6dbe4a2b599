package house

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHouse(seed uint64) *House {
	return New(WithRand(rand.New(rand.NewPCG(seed, seed+1))))
}

func TestHouse_LocationsAreUniqueAndExitsExist(t *testing.T) {
	h := newTestHouse(1)

	seen := make(map[string]bool)
	for _, loc := range h.Locations() {
		assert.False(t, seen[loc.Name], "duplicate location %q", loc.Name)
		seen[loc.Name] = true
	}
	assert.Len(t, seen, 14)

	for _, loc := range h.Locations() {
		require.NotEmpty(t, loc.Directions(), "%s should have at least one exit", loc.Name)
		for _, d := range loc.Directions() {
			to, ok := loc.Exit(d)
			require.True(t, ok)
			found, err := h.GetLocationByName(to.Name)
			require.NoError(t, err)
			assert.Same(t, to, found, "exit %s of %s should point into the house", d, loc.Name)
		}
	}
}

func TestHouse_InitializeIsIdempotent(t *testing.T) {
	h := newTestHouse(1)
	entry := h.Entry()

	h.Initialize()
	h.Initialize()

	assert.Len(t, h.Locations(), 14)
	assert.Same(t, entry, h.Entry())
}

func TestHouse_GetLocationByName(t *testing.T) {
	h := newTestHouse(1)

	kitchen, err := h.GetLocationByName("Kitchen")
	require.NoError(t, err)
	assert.Equal(t, "Kitchen", kitchen.Name)

	_, err = h.GetLocationByName("kitchen")
	assert.True(t, errors.Is(err, ErrLocationNotFound), "lookup should be case sensitive")

	_, err = h.GetLocationByName("Basement")
	assert.ErrorIs(t, err, ErrLocationNotFound)
}

func TestHouse_ExitList(t *testing.T) {
	h := newTestHouse(1)

	tests := []struct {
		location string
		expected []string
	}{
		{"Entry", []string{"the Hallway is to the East", "the Garage is Out"}},
		{"Kitchen", []string{"the Hallway is to the Southeast"}},
		{"Garage", []string{"the Entry is In"}},
		{"Attic", []string{"the Landing is Down"}},
		{"Hallway", []string{
			"the Landing is Up",
			"the Bathroom is to the North",
			"the Living Room is to the South",
			"the Entry is to the West",
			"the Kitchen is to the Northwest",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			loc, err := h.GetLocationByName(tt.location)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, loc.ExitList())
		})
	}
}

func TestHouse_AsHidingSpot(t *testing.T) {
	h := newTestHouse(1)

	_, ok := h.Entry().AsHidingSpot()
	assert.False(t, ok)

	kitchen, err := h.GetLocationByName("Kitchen")
	require.NoError(t, err)
	spot, ok := kitchen.AsHidingSpot()
	require.True(t, ok)
	assert.Equal(t, "next to the stove", spot.Place)

	assert.Len(t, h.HidingSpots(), 11)
}

func TestHouse_RandomExit(t *testing.T) {
	h := newTestHouse(7)

	hallway, err := h.GetLocationByName("Hallway")
	require.NoError(t, err)

	for range 100 {
		next, err := h.RandomExit(hallway)
		require.NoError(t, err)
		_, isNeighbour := func() (*Location, bool) {
			for _, d := range hallway.Directions() {
				if to, _ := hallway.Exit(d); to == next {
					return to, true
				}
			}
			return nil, false
		}()
		assert.True(t, isNeighbour, "%s is not an exit of the Hallway", next.Name)
	}

	_, err = h.RandomExit(NewLocation("Closet"))
	assert.ErrorIs(t, err, ErrNoExits)
}

func TestHouse_WalkLength(t *testing.T) {
	h := newTestHouse(3)
	for range 500 {
		n := h.WalkLength()
		assert.GreaterOrEqual(t, n, 10)
		assert.Less(t, n, 50)
	}
}

func TestHouse_ClearHidingPlaces(t *testing.T) {
	h := newTestHouse(1)
	for _, o := range DefaultRoster() {
		_, err := o.Hide(h)
		require.NoError(t, err)
	}

	h.ClearHidingPlaces()

	for _, loc := range h.HidingSpots() {
		spot, _ := loc.AsHidingSpot()
		assert.Empty(t, spot.Hidden(), "%s should be empty", loc.Name)
	}
}

func TestHidingSpot_CheckHidingPlace(t *testing.T) {
	h := newTestHouse(1)
	kitchen, err := h.GetLocationByName("Kitchen")
	require.NoError(t, err)
	spot, _ := kitchen.AsHidingSpot()

	spot.Hide(Opponent{Name: "Joe"})
	spot.Hide(Opponent{Name: "Bob"})

	assert.Equal(t, []Opponent{{Name: "Joe"}, {Name: "Bob"}}, spot.Hidden())
	assert.Equal(t, []Opponent{{Name: "Joe"}, {Name: "Bob"}}, spot.CheckHidingPlace())
	assert.Empty(t, spot.CheckHidingPlace())
}
