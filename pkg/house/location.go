package house

import (
	"fmt"
	"sort"
)

// Location is a named room in the house with directed exits.
type Location struct {
	Name  string
	exits map[Direction]*Location

	// Set only for locations with a hiding place.
	hidingSpot *HidingSpot
}

// NewLocation creates a location without a hiding place.
func NewLocation(name string) *Location {
	return &Location{
		Name:  name,
		exits: make(map[Direction]*Location),
	}
}

// NewHidingLocation creates a location whose hiding place is described by place,
// e.g. "behind the sofa".
func NewHidingLocation(name, place string) *Location {
	loc := NewLocation(name)
	loc.hidingSpot = &HidingSpot{Place: place}
	return loc
}

func (l *Location) String() string {
	return l.Name
}

// AddExit wires an exit to another location and the return exit back.
func (l *Location) AddExit(d Direction, to *Location) {
	l.exits[d] = to
	if _, ok := to.exits[d.Opposite()]; !ok {
		to.exits[d.Opposite()] = l
	}
}

// Exit returns the location in a direction, if there is an exit that way.
func (l *Location) Exit(d Direction) (*Location, bool) {
	to, ok := l.exits[d]
	return to, ok
}

// Directions returns the directions with an exit, in ordinal order.
func (l *Location) Directions() []Direction {
	dirs := make([]Direction, 0, len(l.exits))
	for d := range l.exits {
		dirs = append(dirs, d)
	}
	sort.Slice(dirs, func(i, j int) bool { return dirs[i] < dirs[j] })
	return dirs
}

// ExitList describes each exit, e.g. "the Hallway is to the East".
func (l *Location) ExitList() []string {
	dirs := l.Directions()
	list := make([]string, 0, len(dirs))
	for _, d := range dirs {
		list = append(list, fmt.Sprintf("the %s is %s", l.exits[d].Name, d.Describe()))
	}
	return list
}

// AsHidingSpot returns the location's hiding spot when it has one.
func (l *Location) AsHidingSpot() (*HidingSpot, bool) {
	return l.hidingSpot, l.hidingSpot != nil
}

// HidingSpot is the hiding place of a location and the opponents concealed there.
type HidingSpot struct {
	Place  string
	hidden []Opponent
}

// Hide conceals an opponent here.
func (h *HidingSpot) Hide(o Opponent) {
	h.hidden = append(h.hidden, o)
}

// CheckHidingPlace reveals the hidden opponents in the order they were hidden
// and empties the hiding place.
func (h *HidingSpot) CheckHidingPlace() []Opponent {
	found := h.hidden
	h.hidden = nil
	return found
}

// Hidden lists the concealed opponents without revealing them.
func (h *HidingSpot) Hidden() []Opponent {
	return append([]Opponent(nil), h.hidden...)
}

func (h *HidingSpot) clear() {
	h.hidden = nil
}
