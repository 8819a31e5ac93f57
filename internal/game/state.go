package game

import "github.com/lox/blackjack/internal/statistics"

// State is the per-session mutable state: the player's balance and the
// cumulative outcome counters. It is passed into and returned from each
// round so the engine holds none of it.
type State struct {
	Balance int
	Stats   statistics.Counters
}

// NewState returns the state a session starts from
func NewState(rules Rules) State {
	return State{Balance: rules.StartingBalance}
}

// Broke reports whether the player can no longer place a bet
func (s State) Broke() bool {
	return s.Balance <= 0
}
