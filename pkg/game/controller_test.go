package game

import (
	"context"
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	internalstorage "github.com/jwebster45206/hide-and-seek/internal/storage"
	"github.com/jwebster45206/hide-and-seek/pkg/house"
	"github.com/jwebster45206/hide-and-seek/pkg/state"
	"github.com/jwebster45206/hide-and-seek/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const kitchenSaveJSON = `{"CurrentLocation":"Kitchen","MoveNumber":10,` +
	`"OpponentsWithHidingLocations":{"Joe":"Garage","Bob":"Kitchen","Ana":"Attic","Owen":"Attic","Jimmy":"Kitchen"},` +
	`"FoundOpponents":["Joe","Bob","Jimmy"]}`

func newTestController(t *testing.T, store storage.Storage) *Controller {
	t.Helper()
	h := house.New(house.WithRand(rand.New(rand.NewPCG(1, 2))))
	c, err := NewController(h, store)
	require.NoError(t, err)
	return c
}

func hideAt(t *testing.T, c *Controller, location string, names ...string) {
	t.Helper()
	loc, err := c.House().GetLocationByName(location)
	require.NoError(t, err)
	spot, ok := loc.AsHidingSpot()
	require.True(t, ok, "%s has no hiding place", location)
	for _, name := range names {
		spot.Hide(house.Opponent{Name: name})
	}
}

func foundNames(c *Controller) []string {
	var names []string
	for _, o := range c.FoundOpponents() {
		names = append(names, o.Name)
	}
	return names
}

func TestNewController(t *testing.T) {
	c := newTestController(t, storage.NewMockStorage())

	assert.Equal(t, 1, c.MoveNumber())
	assert.Equal(t, "Entry", c.CurrentLocation().Name)
	assert.Len(t, c.Opponents(), 5)
	assert.Empty(t, c.FoundOpponents())
	assert.False(t, c.GameOver())
	assert.Equal(t, "1: Which direction do you want to go (or type 'check'): ", c.Prompt())
	assert.Equal(t, "You are in the Entry. You see the following exits:\n"+
		" - the Hallway is to the East\n"+
		" - the Garage is Out\n"+
		"You have not found any opponents", c.Status())

	// Every opponent is hidden exactly once, where the controller recorded them
	snapshot := c.Snapshot()
	counts := make(map[string]int)
	for _, loc := range c.House().HidingSpots() {
		spot, _ := loc.AsHidingSpot()
		for _, o := range spot.Hidden() {
			counts[o.Name]++
			assert.Equal(t, loc.Name, snapshot.OpponentsWithHidingLocations[o.Name])
		}
	}
	assert.Len(t, counts, 5)
	for name, n := range counts {
		assert.Equal(t, 1, n, "%s hidden %d times", name, n)
	}
}

func TestController_NewGameClearsPreviousGame(t *testing.T) {
	h := house.New(house.WithRand(rand.New(rand.NewPCG(3, 4))))
	_, err := NewController(h, storage.NewMockStorage())
	require.NoError(t, err)
	_, err = NewController(h, storage.NewMockStorage())
	require.NoError(t, err)

	total := 0
	for _, loc := range h.HidingSpots() {
		spot, _ := loc.AsHidingSpot()
		total += len(spot.Hidden())
	}
	assert.Equal(t, 5, total)
}

func TestController_ParseInput(t *testing.T) {
	tests := []struct {
		name         string
		inputs       []string
		lastResult   string
		moveNumber   int
		locationName string
	}{
		{
			name:         "check at entry",
			inputs:       []string{"check"},
			lastResult:   "There is no hiding place in the Entry",
			moveNumber:   2,
			locationName: "Entry",
		},
		{
			name:         "move east",
			inputs:       []string{"East"},
			lastResult:   "Moving East",
			moveNumber:   2,
			locationName: "Hallway",
		},
		{
			name:         "direction is case insensitive",
			inputs:       []string{"out"},
			lastResult:   "Moving Out",
			moveNumber:   2,
			locationName: "Garage",
		},
		{
			name:         "no exit still counts the move",
			inputs:       []string{"North"},
			lastResult:   "There's no exit in that direction",
			moveNumber:   2,
			locationName: "Entry",
		},
		{
			name:         "unknown input",
			inputs:       []string{"Fail"},
			lastResult:   "That's not a valid direction",
			moveNumber:   1,
			locationName: "Entry",
		},
		{
			name:         "empty input",
			inputs:       []string{"   "},
			lastResult:   "That's not a valid direction",
			moveNumber:   1,
			locationName: "Entry",
		},
		{
			name:         "walk upstairs",
			inputs:       []string{"East", "Up", "Up"},
			lastResult:   "Moving Up",
			moveNumber:   4,
			locationName: "Attic",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestController(t, storage.NewMockStorage())
			var result string
			for _, input := range tt.inputs {
				result = c.ParseInput(context.Background(), input)
			}
			assert.Equal(t, tt.lastResult, result)
			assert.Equal(t, tt.moveNumber, c.MoveNumber())
			assert.Equal(t, tt.locationName, c.CurrentLocation().Name)
		})
	}
}

func TestController_CheckFindsOpponents(t *testing.T) {
	c := newTestController(t, storage.NewMockStorage())
	ctx := context.Background()
	c.House().ClearHidingPlaces()
	hideAt(t, c, "Kitchen", "Joe", "Bob")

	c.ParseInput(ctx, "East")
	c.ParseInput(ctx, "Northwest")
	assert.Equal(t, "You found 2 opponents hiding next to the stove", c.ParseInput(ctx, "check"))
	assert.Equal(t, []string{"Joe", "Bob"}, foundNames(c))
	assert.Equal(t, 4, c.MoveNumber())

	assert.Equal(t, "Nobody was hiding next to the stove", c.ParseInput(ctx, "check"))
	assert.Equal(t, []string{"Joe", "Bob"}, foundNames(c))
	assert.Equal(t, 5, c.MoveNumber())
}

func TestController_CheckFindsOneOpponent(t *testing.T) {
	c := newTestController(t, storage.NewMockStorage())
	ctx := context.Background()
	c.House().ClearHidingPlaces()
	hideAt(t, c, "Garage", "Ana")

	c.ParseInput(ctx, "Out")
	assert.Equal(t, "You found 1 opponent hiding behind the car", c.ParseInput(ctx, "CHECK"))
}

func TestController_PlayAndStatus(t *testing.T) {
	c := newTestController(t, storage.NewMockStorage())
	ctx := context.Background()

	c.House().ClearHidingPlaces()
	hideAt(t, c, "Garage", "Joe")
	hideAt(t, c, "Kitchen", "Bob")
	hideAt(t, c, "Attic", "Ana", "Owen")
	hideAt(t, c, "Kitchen", "Jimmy")

	for _, input := range []string{"Check", "Out", "check", "In", "East", "North", "South", "Fail", "Northwest", "check"} {
		c.ParseInput(ctx, input)
	}

	assert.Equal(t, 10, c.MoveNumber())
	assert.Equal(t, "Kitchen", c.CurrentLocation().Name)
	assert.Equal(t, "You are in the Kitchen. You see the following exits:\n"+
		" - the Hallway is to the Southeast\n"+
		"Someone could hide next to the stove\n"+
		"You have found 3 of 5 opponents: Joe, Bob, Jimmy", c.Status())
	assert.False(t, c.GameOver())
}

func TestController_GameOver(t *testing.T) {
	c := newTestController(t, storage.NewMockStorage())
	ctx := context.Background()
	c.House().ClearHidingPlaces()
	hideAt(t, c, "Living Room", "Joe", "Bob", "Ana")
	hideAt(t, c, "Bathroom", "Owen", "Jimmy")

	c.ParseInput(ctx, "East")
	c.ParseInput(ctx, "South")
	c.ParseInput(ctx, "check")
	assert.False(t, c.GameOver())

	c.ParseInput(ctx, "North")
	c.ParseInput(ctx, "North")
	assert.Equal(t, "You found 2 opponents hiding behind the door", c.ParseInput(ctx, "check"))
	assert.True(t, c.GameOver())
	assert.Equal(t, []string{"Joe", "Bob", "Ana", "Owen", "Jimmy"}, foundNames(c))

	moves := c.MoveNumber()
	assert.Equal(t, MsgGameOver, c.ParseInput(ctx, "South"))
	assert.Equal(t, MsgGameOver, c.ParseInput(ctx, "load anything"))
	assert.True(t, c.GameOver())
	assert.Equal(t, moves, c.MoveNumber())
}

func TestController_SaveWritesSnapshot(t *testing.T) {
	store := storage.NewMockStorage()
	c := newTestController(t, store)
	ctx := context.Background()

	c.House().ClearHidingPlaces()
	hideAt(t, c, "Garage", "Joe")
	for _, input := range []string{"Out", "check"} {
		c.ParseInput(ctx, input)
	}

	assert.Equal(t, "Saved current game to my_saved_game", c.ParseInput(ctx, "save my_saved_game"))

	saved, err := store.LoadGame(ctx, "my_saved_game")
	require.NoError(t, err)
	assert.Equal(t, "Garage", saved.CurrentLocation)
	assert.Equal(t, 3, saved.MoveNumber)
	assert.Equal(t, []string{"Joe"}, saved.FoundOpponents)
	assert.Len(t, saved.OpponentsWithHidingLocations, 5)
	assert.Equal(t, c.Snapshot().OpponentsWithHidingLocations, saved.OpponentsWithHidingLocations)
	assert.Equal(t, 3, c.MoveNumber(), "saving is not a move")
}

func TestController_LoadHandWrittenSave(t *testing.T) {
	store := storage.NewMockStorage()
	store.PutRaw("my_saved_game", []byte(kitchenSaveJSON))
	c := newTestController(t, store)
	ctx := context.Background()

	assert.Equal(t, "Loaded game from my_saved_game", c.ParseInput(ctx, "load my_saved_game"))
	assert.Equal(t, 10, c.MoveNumber())
	assert.Equal(t, "Kitchen", c.CurrentLocation().Name)
	assert.Equal(t, "You are in the Kitchen. You see the following exits:\n"+
		" - the Hallway is to the Southeast\n"+
		"Someone could hide next to the stove\n"+
		"You have found 3 of 5 opponents: Joe, Bob, Jimmy", c.Status())

	attic, err := c.House().GetLocationByName("Attic")
	require.NoError(t, err)
	spot, _ := attic.AsHidingSpot()
	assert.Equal(t, []house.Opponent{{Name: "Ana"}, {Name: "Owen"}}, spot.CheckHidingPlace())

	// Bob and Jimmy are hidden in the kitchen again but were already found
	assert.Equal(t, "Nobody was hiding next to the stove", c.ParseInput(ctx, "check"))
	assert.Equal(t, []string{"Joe", "Bob", "Jimmy"}, foundNames(c))
}

func TestController_SaveLoadRoundTrip(t *testing.T) {
	store := internalstorage.NewFileStorage(t.TempDir(), nil)
	c := newTestController(t, store)
	ctx := context.Background()

	c.House().ClearHidingPlaces()
	hideAt(t, c, "Garage", "Joe")
	hideAt(t, c, "Attic", "Ana")
	for _, input := range []string{"Out", "check", "In", "East"} {
		c.ParseInput(ctx, input)
	}
	before := c.Snapshot()

	require.Equal(t, "Saved current game to abc", c.ParseInput(ctx, "save abc"))

	for _, input := range []string{"Up", "Up", "check", "Down"} {
		c.ParseInput(ctx, input)
	}
	require.NotEqual(t, before.MoveNumber, c.MoveNumber())

	require.Equal(t, "Loaded game from abc", c.ParseInput(ctx, "load abc"))
	assert.Equal(t, before.MoveNumber, c.MoveNumber())
	assert.Equal(t, before.CurrentLocation, c.CurrentLocation().Name)
	assert.Equal(t, before.FoundOpponents, foundNames(c))
	assert.Equal(t, before, c.Snapshot())

	// Opponents not yet found are hidden where the save says
	for name, locName := range before.OpponentsWithHidingLocations {
		loc, err := c.House().GetLocationByName(locName)
		require.NoError(t, err)
		spot, _ := loc.AsHidingSpot()
		assert.Contains(t, spot.Hidden(), house.Opponent{Name: name})
	}
}

func TestController_LoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	c := newTestController(t, internalstorage.NewFileStorage(dir, nil))
	ctx := context.Background()

	require.Equal(t, "Saved current game to abc", c.ParseInput(ctx, "save abc"))
	require.NoError(t, os.Remove(filepath.Join(dir, "abc.json")))

	assert.Equal(t, "That save file does not exist.", c.ParseInput(ctx, "load abc"))
	assert.Equal(t, 1, c.MoveNumber())
}

func TestController_InvalidFilenames(t *testing.T) {
	dir := t.TempDir()
	c := newTestController(t, internalstorage.NewFileStorage(dir, nil))
	ctx := context.Background()

	for _, input := range []string{"save a/b", `save a\b`, "save a b", "save", "load a/b", "load c d"} {
		assert.Equal(t, MsgInvalidFilename, c.ParseInput(ctx, input), input)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no file should have been written")
	assert.Equal(t, 1, c.MoveNumber())
}

func TestController_LoadFailuresLeaveGameUnchanged(t *testing.T) {
	store := storage.NewMockStorage()
	store.PutRaw("nowhere", []byte(`{"CurrentLocation":"Basement","MoveNumber":4,"OpponentsWithHidingLocations":{},"FoundOpponents":["Joe"]}`))
	store.PutRaw("corrupt", []byte(`{"CurrentLocation":`))
	c := newTestController(t, store)
	ctx := context.Background()
	c.ParseInput(ctx, "East")
	before := c.Snapshot()

	assert.Equal(t, MsgUnknownLocation, c.ParseInput(ctx, "load nowhere"))
	assert.Equal(t, MsgSaveUnreadable, c.ParseInput(ctx, "load corrupt"))
	assert.Equal(t, before, c.Snapshot())
}

func TestController_LoadIgnoresNonHidingLocations(t *testing.T) {
	store := storage.NewMockStorage()
	store.PutRaw("odd", []byte(`{"CurrentLocation":"Entry","MoveNumber":2,`+
		`"OpponentsWithHidingLocations":{"Joe":"Hallway","Bob":"Pantry"},"FoundOpponents":[]}`))
	c := newTestController(t, store)

	assert.Equal(t, "Loaded game from odd", c.ParseInput(context.Background(), "load odd"))

	hidden := 0
	for _, loc := range c.House().HidingSpots() {
		spot, _ := loc.AsHidingSpot()
		hidden += len(spot.Hidden())
	}
	assert.Equal(t, 1, hidden, "only Bob has a hiding place")
}

func TestController_SaveFailure(t *testing.T) {
	store := storage.NewMockStorage()
	store.SetSaveError(errors.New("disk full"))
	c := newTestController(t, store)

	assert.Equal(t, MsgSaveFailed, c.ParseInput(context.Background(), "save abc"))
}

func TestController_LoadRejectsMoveNumberBelowOne(t *testing.T) {
	store := storage.NewMockStorage()
	store.PutRaw("zero", []byte(`{"CurrentLocation":"Kitchen","MoveNumber":0,"OpponentsWithHidingLocations":{},"FoundOpponents":[]}`))
	c := newTestController(t, store)
	ctx := context.Background()
	before := c.Snapshot()

	assert.Equal(t, MsgSaveInvalid, c.ParseInput(ctx, "load zero"))
	assert.Equal(t, before, c.Snapshot())

	err := c.Restore(&state.SavedGame{CurrentLocation: "Kitchen", MoveNumber: -3})
	assert.ErrorIs(t, err, ErrInvalidSave)
}

func TestController_LoadIgnoresRepeatedAndUnknownFoundNames(t *testing.T) {
	store := storage.NewMockStorage()
	store.PutRaw("repeats", []byte(`{"CurrentLocation":"Entry","MoveNumber":3,`+
		`"OpponentsWithHidingLocations":{"Joe":"Garage","Zed":"Kitchen"},`+
		`"FoundOpponents":["Joe","Joe","Joe","Joe","Zed"]}`))
	c := newTestController(t, store)

	require.Equal(t, "Loaded game from repeats", c.ParseInput(context.Background(), "load repeats"))
	assert.Equal(t, []string{"Joe"}, foundNames(c))
	assert.False(t, c.GameOver())
	assert.Contains(t, c.Status(), "You have found 1 of 5 opponents: Joe")

	kitchen, err := c.House().GetLocationByName("Kitchen")
	require.NoError(t, err)
	spot, _ := kitchen.AsHidingSpot()
	assert.Empty(t, spot.Hidden(), "names outside the roster are not hidden")
	assert.NotContains(t, c.Snapshot().OpponentsWithHidingLocations, "Zed")
}

func TestController_WithID(t *testing.T) {
	id := uuid.New()
	c, err := NewController(house.New(), storage.NewMockStorage(), WithID(id))
	require.NoError(t, err)
	assert.Equal(t, id, c.ID())
}
