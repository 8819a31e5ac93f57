package game

import (
	"errors"
	"fmt"
)

// Rules are the house rules fixed for the lifetime of a session
type Rules struct {
	NumDecks        int     // Decks in the shoe
	Penetration     float64 // Fraction of the shoe left when a reshuffle is forced
	MaxResplits     int     // A hand may be split while the hand count is at most this
	StartingBalance int
}

// DefaultRules returns six decks, reshuffle at a quarter, up to four hands
// and a 1000 starting balance.
func DefaultRules() Rules {
	return Rules{
		NumDecks:        6,
		Penetration:     0.25,
		MaxResplits:     3,
		StartingBalance: 1000,
	}
}

// maxHands is the largest number of player hands a round can reach
func (r Rules) maxHands() int {
	return r.MaxResplits + 1
}

// Validate checks the rules describe a playable game
func (r Rules) Validate() error {
	var errs []error
	if r.NumDecks < 1 {
		errs = append(errs, fmt.Errorf("num decks must be at least 1, got %d", r.NumDecks))
	}
	if r.Penetration <= 0 || r.Penetration >= 1 {
		errs = append(errs, fmt.Errorf("penetration must be between 0 and 1, got %g", r.Penetration))
	}
	if r.MaxResplits < 0 {
		errs = append(errs, fmt.Errorf("max resplits must not be negative, got %d", r.MaxResplits))
	}
	if r.StartingBalance < 1 {
		errs = append(errs, fmt.Errorf("starting balance must be at least 1, got %d", r.StartingBalance))
	}
	return errors.Join(errs...)
}
