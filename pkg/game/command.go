package game

import (
	"fmt"
	"strings"

	"github.com/jwebster45206/hide-and-seek/pkg/house"
)

// CommandType names the kind of command a line of input holds.
type CommandType string

const (
	CmdCheck CommandType = "check"
	CmdMove  CommandType = "move"
	CmdSave  CommandType = "save"
	CmdLoad  CommandType = "load"
	CmdNone  CommandType = "" // Not a recognized command
)

// Command is one parsed line of player input.
type Command struct {
	Type      CommandType
	Direction house.Direction // CmdMove only
	Filename  string          // CmdSave and CmdLoad only
}

// ParseCommand recognizes "check", a direction, "save <name>" and "load <name>",
// ignoring case. Everything after the save/load keyword is the filename.
func ParseCommand(input string) Command {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Command{Type: CmdNone}
	}

	if strings.EqualFold(trimmed, string(CmdCheck)) {
		return Command{Type: CmdCheck}
	}

	if d, ok := house.ParseDirection(trimmed); ok {
		return Command{Type: CmdMove, Direction: d}
	}

	keyword, rest, _ := strings.Cut(trimmed, " ")
	switch strings.ToLower(keyword) {
	case string(CmdSave):
		return Command{Type: CmdSave, Filename: strings.TrimSpace(rest)}
	case string(CmdLoad):
		return Command{Type: CmdLoad, Filename: strings.TrimSpace(rest)}
	}

	return Command{Type: CmdNone}
}

// ValidateFilename rejects empty save names and names with slashes or spaces.
func ValidateFilename(name string) error {
	if name == "" || strings.ContainsAny(name, `/\ `) {
		return fmt.Errorf("%w: %q", ErrInvalidFilename, name)
	}
	return nil
}
