package game

import (
	"context"

	"github.com/lox/blackjack/internal/deck"
)

// Action is a player decision on a hand
type Action int

const (
	Hit Action = iota
	Stand
	Double
)

// String returns the lowercase action name
func (a Action) String() string {
	switch a {
	case Hit:
		return "hit"
	case Stand:
		return "stand"
	case Double:
		return "double"
	default:
		return "unknown"
	}
}

// SplitPrompt describes a pair the player may split
type SplitPrompt struct {
	RoundID   string
	HandIndex int
	Cards     []deck.Card
	Stake     int
	Balance   int
	DealerUp  deck.Card
	HandCount int
}

// ActionPrompt describes the hand the player is acting on
type ActionPrompt struct {
	RoundID   string
	HandIndex int
	HandCount int
	Cards     []deck.Card
	Score     int
	Stake     int
	Balance   int
	DealerUp  deck.Card
	Actions   []Action // Only these may be returned
}

// CanDouble reports whether Double is among the offered actions
func (p ActionPrompt) CanDouble() bool {
	for _, a := range p.Actions {
		if a == Double {
			return true
		}
	}
	return false
}

// Agent makes the player's decisions. Agents only decide; the engine
// validates and applies. Any method may return ErrQuit to end the session.
type Agent interface {
	// PlaceBet returns a wager between 1 and balance inclusive
	PlaceBet(ctx context.Context, balance int) (int, error)

	// ChooseSplit decides whether to split an eligible, funded pair
	ChooseSplit(ctx context.Context, prompt SplitPrompt) (bool, error)

	// ChooseAction picks one of prompt.Actions
	ChooseAction(ctx context.Context, prompt ActionPrompt) (Action, error)

	// PlayAgain is asked after each settled round while the balance is positive
	PlayAgain(ctx context.Context, state State) (bool, error)
}
