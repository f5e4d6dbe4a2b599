// Package game runs a hide-and-seek session: the player moves through the
// house, checks hiding places, and saves or loads progress.
package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/jwebster45206/hide-and-seek/pkg/house"
	"github.com/jwebster45206/hide-and-seek/pkg/state"
	"github.com/jwebster45206/hide-and-seek/pkg/storage"
)

var (
	// ErrInvalidFilename is returned for save names with slashes or spaces.
	ErrInvalidFilename = errors.New("invalid save filename")
	// ErrInvalidSave is returned when a saved game cannot be restored.
	ErrInvalidSave = errors.New("invalid saved game")
)

// Controller is the state of one game: where the player is, how many moves
// they have made, and who they have found.
type Controller struct {
	id        uuid.UUID
	house     *house.House
	store     storage.Storage
	logger    *slog.Logger
	current   *house.Location
	moves     int
	opponents []house.Opponent
	found     []house.Opponent

	// Opponent name → where they were hidden. Found opponents keep their entry.
	opponentLocations map[string]string
}

// Option configures a Controller.
type Option func(*Controller)

// WithID sets the session ID, so callers can tag their logger with it first.
func WithID(id uuid.UUID) Option {
	return func(c *Controller) {
		c.id = id
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithRoster replaces the default five opponents.
func WithRoster(roster []house.Opponent) Option {
	return func(c *Controller) {
		c.opponents = append([]house.Opponent(nil), roster...)
	}
}

// NewController starts a new game: every hiding place is emptied, each
// opponent hides, and the player stands at the entry on move 1.
func NewController(h *house.House, store storage.Storage, opts ...Option) (*Controller, error) {
	c := &Controller{
		id:                uuid.New(),
		house:             h,
		store:             store,
		opponents:         house.DefaultRoster(),
		opponentLocations: make(map[string]string),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	h.ClearHidingPlaces()
	for _, o := range c.opponents {
		loc, err := o.Hide(h)
		if err != nil {
			return nil, fmt.Errorf("failed to hide %s: %w", o.Name, err)
		}
		c.opponentLocations[o.Name] = loc.Name
	}

	c.current = h.Entry()
	c.moves = 1
	c.logger.Info("New game started", "opponents", len(c.opponents))
	return c, nil
}

// ID identifies the session in logs.
func (c *Controller) ID() uuid.UUID {
	return c.id
}

// House returns the house the game is played in.
func (c *Controller) House() *house.House {
	return c.house
}

// CurrentLocation is where the player is.
func (c *Controller) CurrentLocation() *house.Location {
	return c.current
}

// MoveNumber counts from 1 and goes up with every move or check.
func (c *Controller) MoveNumber() int {
	return c.moves
}

// Opponents returns the roster.
func (c *Controller) Opponents() []house.Opponent {
	return append([]house.Opponent(nil), c.opponents...)
}

// FoundOpponents returns the opponents found so far in discovery order.
func (c *Controller) FoundOpponents() []house.Opponent {
	return append([]house.Opponent(nil), c.found...)
}

// GameOver reports whether every opponent has been found.
func (c *Controller) GameOver() bool {
	return len(c.found) == len(c.opponents)
}

// Prompt asks the player for the next command.
func (c *Controller) Prompt() string {
	return fmt.Sprintf("%d: Which direction do you want to go (or type 'check'): ", c.moves)
}

// Status describes the current location, its exits and hiding place, and
// who has been found.
func (c *Controller) Status() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are in the %s. You see the following exits:", c.current.Name)
	for _, exit := range c.current.ExitList() {
		sb.WriteString("\n - " + exit)
	}

	if spot, ok := c.current.AsHidingSpot(); ok {
		sb.WriteString("\nSomeone could hide " + spot.Place)
	}

	if len(c.found) == 0 {
		sb.WriteString("\nYou have not found any opponents")
		return sb.String()
	}

	names := make([]string, 0, len(c.found))
	for _, o := range c.found {
		names = append(names, o.Name)
	}
	fmt.Fprintf(&sb, "\nYou have found %d of %d opponents: %s", len(c.found), len(c.opponents), strings.Join(names, ", "))
	return sb.String()
}

// ParseInput runs one line of player input and returns the result to show.
// Failures are reported in the result; the game is never left half-updated.
func (c *Controller) ParseInput(ctx context.Context, input string) string {
	if c.GameOver() {
		return MsgGameOver
	}

	cmd := ParseCommand(input)
	c.logger.Debug("Command received", "type", cmd.Type, "move", c.moves)

	switch cmd.Type {
	case CmdCheck:
		return c.checkHidingPlace()
	case CmdMove:
		return c.move(cmd.Direction)
	case CmdSave:
		return c.save(ctx, cmd.Filename)
	case CmdLoad:
		return c.load(ctx, cmd.Filename)
	default:
		return MsgInvalidDirection
	}
}

// Move goes through the exit in a direction, reporting whether there was one.
// The move counter is not touched.
func (c *Controller) Move(d house.Direction) bool {
	next, ok := c.current.Exit(d)
	if !ok {
		return false
	}
	c.current = next
	return true
}

// move counts the attempt even when there is no exit that way.
func (c *Controller) move(d house.Direction) string {
	c.moves++
	if !c.Move(d) {
		return MsgNoExit
	}
	return "Moving " + d.String()
}

func (c *Controller) checkHidingPlace() string {
	c.moves++

	spot, ok := c.current.AsHidingSpot()
	if !ok {
		return fmt.Sprintf("There is no hiding place in the %s", c.current.Name)
	}

	// A loaded game hides found opponents again; they don't count twice.
	var revealed []house.Opponent
	for _, o := range spot.CheckHidingPlace() {
		if !slices.Contains(c.found, o) {
			revealed = append(revealed, o)
		}
	}
	if len(revealed) == 0 {
		return "Nobody was hiding " + spot.Place
	}

	c.found = append(c.found, revealed...)
	c.logger.Info("Opponents found", "location", c.current.Name, "count", len(revealed), "total", len(c.found))
	if c.GameOver() {
		c.logger.Info("Game over", "moves", c.moves)
	}
	return printer.Sprintf(msgFoundOpponents, len(revealed), spot.Place)
}

// Snapshot captures the game as a saved game.
func (c *Controller) Snapshot() *state.SavedGame {
	sg := state.NewSavedGame()
	sg.CurrentLocation = c.current.Name
	sg.MoveNumber = c.moves
	for _, o := range c.opponents {
		if loc, ok := c.opponentLocations[o.Name]; ok {
			sg.OpponentsWithHidingLocations[o.Name] = loc
		}
	}
	for _, o := range c.found {
		sg.FoundOpponents = append(sg.FoundOpponents, o.Name)
	}
	return sg
}

// Restore replaces the game with a saved game. Every saved roster opponent
// is hidden again at their saved location, found or not, in roster order.
// Names outside the roster, repeated found names and locations without a
// hiding place are ignored. Nothing changes if the move number is below 1 or
// the saved current location is not in the house.
func (c *Controller) Restore(sg *state.SavedGame) error {
	if sg.MoveNumber < 1 {
		return fmt.Errorf("%w: move number %d", ErrInvalidSave, sg.MoveNumber)
	}
	current, err := c.house.GetLocationByName(sg.CurrentLocation)
	if err != nil {
		return err
	}

	c.current = current
	c.moves = sg.MoveNumber

	c.house.ClearHidingPlaces()
	c.opponentLocations = make(map[string]string, len(c.opponents))
	for _, o := range c.opponents {
		locName, ok := sg.OpponentsWithHidingLocations[o.Name]
		if !ok {
			continue
		}
		c.opponentLocations[o.Name] = locName
		loc, err := c.house.GetLocationByName(locName)
		if err != nil {
			c.logger.Warn("Saved hiding location not in house", "opponent", o.Name, "location", locName)
			continue
		}
		if spot, ok := loc.AsHidingSpot(); ok {
			spot.Hide(o)
		}
	}
	for name := range sg.OpponentsWithHidingLocations {
		if !c.inRoster(name) {
			c.logger.Warn("Saved opponent not in roster", "opponent", name)
		}
	}

	c.found = make([]house.Opponent, 0, len(sg.FoundOpponents))
	for _, name := range sg.FoundOpponents {
		o := house.Opponent{Name: name}
		if !c.inRoster(name) || slices.Contains(c.found, o) {
			c.logger.Warn("Ignoring saved found opponent", "opponent", name)
			continue
		}
		c.found = append(c.found, o)
	}
	return nil
}

func (c *Controller) inRoster(name string) bool {
	return slices.Contains(c.opponents, house.Opponent{Name: name})
}

func (c *Controller) save(ctx context.Context, filename string) string {
	if err := ValidateFilename(filename); err != nil {
		c.logger.Debug("Save rejected", "error", err)
		return MsgInvalidFilename
	}

	if err := c.store.SaveGame(ctx, filename, c.Snapshot()); err != nil {
		c.logger.Error("Failed to save game", "filename", filename, "error", err)
		return MsgSaveFailed
	}

	c.logger.Info("Game saved", "filename", filename, "move", c.moves)
	return "Saved current game to " + filename
}

func (c *Controller) load(ctx context.Context, filename string) string {
	if err := ValidateFilename(filename); err != nil {
		c.logger.Debug("Load rejected", "error", err)
		return MsgInvalidFilename
	}

	sg, err := c.store.LoadGame(ctx, filename)
	if err != nil {
		if errors.Is(err, storage.ErrSaveNotFound) {
			return MsgSaveMissing
		}
		c.logger.Error("Failed to load game", "filename", filename, "error", err)
		return MsgSaveUnreadable
	}

	if err := c.Restore(sg); err != nil {
		c.logger.Warn("Saved game rejected", "filename", filename, "error", err)
		if errors.Is(err, house.ErrLocationNotFound) {
			return MsgUnknownLocation
		}
		return MsgSaveInvalid
	}

	c.logger.Info("Game loaded", "filename", filename, "move", c.moves, "found", len(c.found))
	return "Loaded game from " + filename
}
