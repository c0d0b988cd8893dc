package formatting

import (
	"fmt"
	"math"
	"strconv"

	"guess-the-guild/internal/core/domain"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	MsgAdminRequired     = "You need Administrator permissions to use this command."
	MsgServerOnly        = "This command can only be used in a server."
	MsgDifficultyInvalid = "Unknown difficulty. Choose easy, medium or hard."
	MsgSaveError         = "Failed to save configuration."
	MsgStaleRound        = "This round is no longer active. Start a new one with /guess-the-guild."
	MsgRoundOver         = "This round is already decided. The next one is on its way."
	MsgUnknownGuild      = "That guild is not part of this round."
	MsgNothingToRetry    = "There is nothing to retry, the round is already loaded."
	MsgInvalidButton     = "This button is no longer valid."

	MsgLogoTitle    = "Guess the guild by the logo"
	MsgPairTitle    = "Pair the logos to their guilds"
	MsgLogoPrompt   = "Which guild does this logo belong to?"
	MsgPairPrompt   = "Click the logos in the order of the guilds listed below."
	MsgLogoSuccess  = "Good job! Let me find another one..."
	MsgPairSuccess  = "Correct order! Let me find another one..."
	MsgPairFailure  = "Wrong! You can see the correct order below."
	MsgNoGuilds     = "Could not load any guilds. Try again in a moment."
	MsgFetchFailure = "Could not load the next round."
)

var titleCaser = cases.Title(language.English)

// DifficultyLabel returns the display name of a difficulty.
func DifficultyLabel(d domain.Difficulty) string {
	return titleCaser.String(string(d))
}

func MsgLogoFailure(correct string) string {
	return fmt.Sprintf("Wrong! The correct answer was: %s", correct)
}

func MsgNewRecord(points int) string {
	return fmt.Sprintf("New record! %d points! Congratulations!", points)
}

func MsgScore(state domain.ScoreState) string {
	return fmt.Sprintf("Score: **%d** | Record: **%d**", state.Current, state.Record)
}

func MsgDifficultySet(d domain.Difficulty) string {
	return fmt.Sprintf("Default difficulty for this server set to **%s**.", DifficultyLabel(d))
}

// FormatNumber abbreviates counts above 1000 to whole thousands, e.g. 1234 -> "1k".
func FormatNumber(n int) string {
	if n > 1000 {
		return fmt.Sprintf("%.0fk", math.Round(float64(n)/1000))
	}
	return strconv.Itoa(n)
}
