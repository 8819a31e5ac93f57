// Package bot provides scripted strategies for the player seat. They drive
// headless simulations and are not opponents.
package bot

import (
	"context"
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/game"
)

// Strategy names accepted by New
const (
	Random       = "random"
	Dealer       = "dealer"
	Conservative = "conservative"
)

// Names lists every strategy New understands
var Names = []string{Random, Dealer, Conservative}

// New builds the named strategy betting a flat unit per round
func New(name string, unit int, rng *rand.Rand, logger *log.Logger) (game.Agent, error) {
	if unit < 1 {
		return nil, fmt.Errorf("bet unit must be at least 1, got %d", unit)
	}
	base := flatBet{unit: unit, logger: logger.WithPrefix(name)}
	switch name {
	case Random:
		return &RandomBot{flatBet: base, rng: rng}, nil
	case Dealer:
		return &DealerBot{flatBet: base}, nil
	case Conservative:
		return &ConservativeBot{flatBet: base}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q (want one of %v)", name, Names)
	}
}

// flatBet bets the same unit every round, or everything when the balance
// has dropped below it, and always plays on.
type flatBet struct {
	unit   int
	logger *log.Logger
}

func (f flatBet) PlaceBet(_ context.Context, balance int) (int, error) {
	return min(f.unit, balance), nil
}

func (f flatBet) PlayAgain(context.Context, game.State) (bool, error) {
	return true, nil
}

func (f flatBet) decided(prompt game.ActionPrompt, action game.Action, reason string) game.Action {
	f.logger.Debug("Decision", "hand", prompt.HandIndex, "cards", game.FormatCards(prompt.Cards),
		"score", prompt.Score, "dealer", prompt.DealerUp, "action", action, "reason", reason)
	return action
}

func offered(prompt game.ActionPrompt, action game.Action) bool {
	for _, a := range prompt.Actions {
		if a == action {
			return true
		}
	}
	return false
}
