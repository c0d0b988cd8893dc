package domain

import (
	"fmt"
	"strings"
)

type GuildSummary struct {
	ID          int
	Name        string
	ImageURL    string
	RolesCount  int
	MemberCount int
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, nil
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

// MaxOffset is the exclusive upper bound of the random offset into the guild listing.
func (d Difficulty) MaxOffset() int {
	switch d {
	case DifficultyMedium:
		return 500
	case DifficultyHard:
		return 1000
	default:
		return 100
	}
}

type GameMode string

const (
	ModeLogo GameMode = "logo"
	ModePair GameMode = "pair"
)

// Points awarded for winning a round of this mode.
func (m GameMode) Points() int {
	if m == ModePair {
		return 2
	}
	return 1
}

type ScoreState struct {
	Current int
	Record  int
}

type Round struct {
	ID           string
	Mode         GameMode
	Difficulty   Difficulty
	Pool         []GuildSummary
	Target       GuildSummary
	Presentation []GuildSummary
}

func (r *Round) Empty() bool {
	return r == nil || len(r.Pool) == 0
}

func (r *Round) Contains(guildID int) bool {
	if r == nil {
		return false
	}
	for _, g := range r.Pool {
		if g.ID == guildID {
			return true
		}
	}
	return false
}

type Phase string

const (
	PhasePlaying       Phase = "playing"
	PhaseSucceeded     Phase = "succeeded"
	PhaseFailed        Phase = "failed"
	PhaseLoadingFailed Phase = "loading-failed"
)

// Finished reports whether the round accepts no more guesses.
func (p Phase) Finished() bool {
	return p != PhasePlaying
}

type Snapshot struct {
	PlayerID  string
	Round     *Round
	Phase     Phase
	Revealed  []GuildSummary
	Score     ScoreState
	NewRecord bool
	FetchErr  string
}
