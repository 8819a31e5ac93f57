package game

import (
	"strings"

	"github.com/lox/blackjack/internal/deck"
)

// Hand is an ordered set of cards owned by one position plus the stake
// reserved against it. Hands only ever grow.
type Hand struct {
	Cards     []deck.Card
	Stake     int
	Doubled   bool
	FromSplit bool
}

// NewHand creates a hand holding the given cards
func NewHand(cards ...deck.Card) *Hand {
	h := &Hand{Cards: make([]deck.Card, 0, len(cards)+2)}
	h.Cards = append(h.Cards, cards...)
	return h
}

// Add appends a card to the hand
func (h *Hand) Add(c deck.Card) {
	h.Cards = append(h.Cards, c)
}

// Score returns the best total for the hand: every Ace starts at 11 and is
// demoted to 1, one at a time, while the total is over 21.
func (h *Hand) Score() int {
	return Score(h.Cards)
}

// IsBlackjack reports a two-card 21
func (h *Hand) IsBlackjack() bool {
	return IsBlackjack(h.Cards)
}

// IsBust reports a score over 21
func (h *Hand) IsBust() bool {
	return h.Score() > 21
}

// IsSoft reports whether an Ace is being counted as 11
func (h *Hand) IsSoft() bool {
	return IsSoft(h.Cards)
}

// CardsCopy returns a copy of the hand's cards safe to hand to callers
func (h *Hand) CardsCopy() []deck.Card {
	c := make([]deck.Card, len(h.Cards))
	copy(c, h.Cards)
	return c
}

// String returns the cards separated by spaces, e.g. "A♠ K♥"
func (h *Hand) String() string {
	return FormatCards(h.Cards)
}

// Score computes the blackjack total of cards
func Score(cards []deck.Card) int {
	score, aces := 0, 0
	for _, c := range cards {
		score += c.Value()
		if c.IsAce() {
			aces++
		}
	}
	for score > 21 && aces > 0 {
		score -= 10
		aces--
	}
	return score
}

// IsBlackjack reports whether cards are exactly two cards totalling 21
func IsBlackjack(cards []deck.Card) bool {
	return len(cards) == 2 && Score(cards) == 21
}

// IsSoft reports whether the best score counts an Ace as 11, i.e. the
// all-Aces-as-one total plus ten is the score.
func IsSoft(cards []deck.Card) bool {
	hard, hasAce := 0, false
	for _, c := range cards {
		if c.IsAce() {
			hasAce = true
			hard++
			continue
		}
		hard += c.Value()
	}
	return hasAce && hard+10 == Score(cards)
}

// FormatCards joins cards with spaces
func FormatCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
