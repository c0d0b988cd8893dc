package matching

import (
	"errors"

	"guess-the-guild/internal/core/domain"
)

var ErrRoundOver = errors.New("round is over")

type State int

const (
	Awaiting State = iota
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "awaiting"
	}
}

type Game interface {
	Guess(guildID int) (State, error)
	State() State
	Revealed() []domain.GuildSummary
}

// PairGame expects the guilds of a fixed order to be picked one by one.
type PairGame struct {
	order    []domain.GuildSummary
	step     int
	state    State
	revealed []domain.GuildSummary
}

func NewPairGame(order []domain.GuildSummary) *PairGame {
	return &PairGame{order: order}
}

func (g *PairGame) Guess(guildID int) (State, error) {
	if g.state != Awaiting {
		return g.state, ErrRoundOver
	}
	if g.step >= len(g.order) {
		g.state = Succeeded
		return g.state, ErrRoundOver
	}

	expected := g.order[g.step]
	if guildID != expected.ID {
		g.state = Failed
		return g.state, nil
	}

	g.revealed = append(g.revealed, expected)
	g.step++
	if g.step == len(g.order) {
		g.state = Succeeded
	}
	return g.state, nil
}

func (g *PairGame) State() State {
	return g.state
}

// Step is the index of the item awaited next.
func (g *PairGame) Step() int {
	return g.step
}

func (g *PairGame) Revealed() []domain.GuildSummary {
	out := make([]domain.GuildSummary, len(g.revealed))
	copy(out, g.revealed)
	return out
}

// LogoGame accepts a single guess against the target guild.
type LogoGame struct {
	target domain.GuildSummary
	state  State
}

func NewLogoGame(target domain.GuildSummary) *LogoGame {
	return &LogoGame{target: target}
}

func (g *LogoGame) Guess(guildID int) (State, error) {
	if g.state != Awaiting {
		return g.state, ErrRoundOver
	}
	if guildID == g.target.ID {
		g.state = Succeeded
	} else {
		g.state = Failed
	}
	return g.state, nil
}

func (g *LogoGame) State() State {
	return g.state
}

func (g *LogoGame) Revealed() []domain.GuildSummary {
	if g.state == Awaiting {
		return nil
	}
	return []domain.GuildSummary{g.target}
}

func NewGame(round *domain.Round) Game {
	if round.Mode == domain.ModePair {
		return NewPairGame(round.Presentation)
	}
	return NewLogoGame(round.Target)
}
