package house

// Opponent is someone hiding in the house. Opponents are equal when their
// names are equal.
type Opponent struct {
	Name string
}

// DefaultRoster returns the five opponents of every game.
func DefaultRoster() []Opponent {
	return []Opponent{
		{Name: "Joe"},
		{Name: "Bob"},
		{Name: "Ana"},
		{Name: "Owen"},
		{Name: "Jimmy"},
	}
}

func (o Opponent) String() string {
	return o.Name
}

// Hide walks the opponent from the entry through random exits and conceals
// them in the first hiding spot reached once the initial walk is done.
// It returns the location they hid in.
func (o Opponent) Hide(h *House) (*Location, error) {
	current := h.Entry()
	steps := h.WalkLength()

	var err error
	for range steps {
		if current, err = h.RandomExit(current); err != nil {
			return nil, err
		}
	}

	for {
		if spot, ok := current.AsHidingSpot(); ok {
			spot.Hide(o)
			h.logger.Debug("Opponent hidden", "opponent", o.Name, "location", current.Name, "steps", steps)
			return current, nil
		}
		if current, err = h.RandomExit(current); err != nil {
			return nil, err
		}
	}
}
