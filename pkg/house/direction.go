package house

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Direction is a compass or relative direction. Opposite directions are
// negations of each other, and exit lists are ordered by the ordinal value.
type Direction int

const (
	North     Direction = -1
	South     Direction = 1
	East      Direction = -2
	West      Direction = 2
	Northeast Direction = -3
	Southwest Direction = 3
	Southeast Direction = -4
	Northwest Direction = 4
	Up        Direction = -5
	Down      Direction = 5
	In        Direction = -6
	Out       Direction = 6
)

var directionNames = map[Direction]string{
	North:     "North",
	South:     "South",
	East:      "East",
	West:      "West",
	Northeast: "Northeast",
	Southwest: "Southwest",
	Southeast: "Southeast",
	Northwest: "Northwest",
	Up:        "Up",
	Down:      "Down",
	In:        "In",
	Out:       "Out",
}

// Directions returns every direction in ordinal order.
func Directions() []Direction {
	return []Direction{In, Up, Southeast, Northeast, East, North, South, West, Southwest, Northwest, Down, Out}
}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return "Unknown"
}

// Opposite returns the direction leading back.
func (d Direction) Opposite() Direction {
	return -d
}

// Describe renders the direction the way exit lists show it:
// "Up", "Down", "In", "Out", or "to the North".
func (d Direction) Describe() string {
	switch d {
	case Up, Down, In, Out:
		return d.String()
	default:
		return "to the " + d.String()
	}
}

// ParseDirection matches a token against the direction names, ignoring case
// and surrounding whitespace.
func ParseDirection(token string) (Direction, bool) {
	token = strings.TrimSpace(token)
	for d, name := range directionNames {
		if strings.EqualFold(name, token) {
			return d, true
		}
	}
	return 0, false
}

// maxSuggestDistance is the furthest edit distance still offered as a suggestion.
const maxSuggestDistance = 2

// SuggestDirection returns the direction closest to a mistyped token.
func SuggestDirection(token string) (Direction, bool) {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return 0, false
	}

	best := Direction(0)
	bestDist := maxSuggestDistance + 1
	for _, d := range Directions() {
		dist := levenshtein.ComputeDistance(token, strings.ToLower(d.String()))
		if dist < bestDist {
			best, bestDist = d, dist
		}
	}
	if bestDist > maxSuggestDistance {
		return 0, false
	}
	return best, true
}
