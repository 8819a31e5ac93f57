package deck

import (
	"errors"
	"math/rand/v2"
)

// CardsPerDeck is the size of a single standard deck
const CardsPerDeck = 52

// ErrEmptyShoe is returned when drawing from a shoe with no cards left.
// The caller is expected to reshuffle before this can happen, so seeing it
// means the reshuffle threshold is wrong.
var ErrEmptyShoe = errors.New("shoe is empty")

// Shoe is the working set of cards dealt from during a session. It is built
// from several standard decks and replaced wholesale on reshuffle.
type Shoe struct {
	cards []Card
	size  int
}

// NewShoe builds numDecks standard decks and shuffles them with rng.
func NewShoe(numDecks int, rng *rand.Rand) *Shoe {
	cards := make([]Card, 0, numDecks*CardsPerDeck)
	for range numDecks {
		for _, rank := range Ranks {
			for _, suit := range Suits {
				cards = append(cards, NewCard(suit, rank))
			}
		}
	}

	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})

	return &Shoe{cards: cards, size: len(cards)}
}

// NewStackedShoe returns a shoe that deals cards in exactly the given order.
// It is mostly useful for tests and replays.
func NewStackedShoe(cards []Card) *Shoe {
	c := make([]Card, len(cards))
	copy(c, cards)
	return &Shoe{cards: c, size: len(c)}
}

// Draw removes and returns the next card from the shoe
func (s *Shoe) Draw() (Card, error) {
	if len(s.cards) == 0 {
		return Card{}, ErrEmptyShoe
	}

	card := s.cards[0]
	s.cards = s.cards[1:]
	return card, nil
}

// Remaining returns the number of cards left in the shoe
func (s *Shoe) Remaining() int {
	return len(s.cards)
}

// Size returns the number of cards the shoe was built with
func (s *Shoe) Size() int {
	return s.size
}

// NeedsReshuffle reports whether fewer than penetration × numDecks × 52 cards
// remain.
func (s *Shoe) NeedsReshuffle(numDecks int, penetration float64) bool {
	return float64(len(s.cards)) < ReshuffleThreshold(numDecks, penetration)
}

// ReshuffleThreshold is the remaining-card count below which a shoe of
// numDecks decks must be replaced.
func ReshuffleThreshold(numDecks int, penetration float64) float64 {
	return float64(numDecks*CardsPerDeck) * penetration
}
