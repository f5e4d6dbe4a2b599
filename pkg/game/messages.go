package game

import (
	"fmt"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Player-facing results of ParseInput.
const (
	MsgInvalidDirection = "That's not a valid direction"
	MsgNoExit           = "There's no exit in that direction"
	MsgInvalidFilename  = "Please enter a filename without slashes or spaces."
	MsgSaveMissing      = "That save file does not exist."
	MsgSaveUnreadable   = "That save file could not be read."
	MsgSaveFailed       = "Unable to save the game. Please try again."
	MsgUnknownLocation  = "That save file refers to a location that is not in the house."
	MsgSaveInvalid      = "That save file does not hold a valid game."
	MsgGameOver         = "You found everyone. The game is over."

	msgFoundOpponents = "You found %d opponent(s) hiding %s"
)

func init() {
	if err := message.Set(language.English, msgFoundOpponents,
		plural.Selectf(1, "%d",
			plural.One, "You found %d opponent hiding %s",
			plural.Other, "You found %d opponents hiding %s")); err != nil {
		panic(fmt.Sprintf("game: register %q: %v", msgFoundOpponents, err))
	}
}

var printer = message.NewPrinter(language.English)
