package bot

import (
	"context"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
)

// ConservativeBot follows a cut-down basic strategy. It splits only Aces
// and eights, doubles a hard 10 or 11 against a weak up card and never hits
// a stiff hand into a dealer bust card.
type ConservativeBot struct {
	flatBet
}

func (c *ConservativeBot) ChooseSplit(_ context.Context, prompt game.SplitPrompt) (bool, error) {
	rank := prompt.Cards[0].Rank
	return rank == deck.Ace || rank == deck.Eight, nil
}

func (c *ConservativeBot) ChooseAction(_ context.Context, prompt game.ActionPrompt) (game.Action, error) {
	score := prompt.Score
	up := prompt.DealerUp.Value()
	soft := game.IsSoft(prompt.Cards)

	switch {
	case !soft && (score == 10 || score == 11) && up < 10 && offered(prompt, game.Double):
		return c.decided(prompt, game.Double, "hard 10/11 against a weak card"), nil
	case score <= 11:
		return c.decided(prompt, game.Hit, "cannot bust"), nil
	case soft && score <= 17:
		return c.decided(prompt, game.Hit, "soft total"), nil
	case !soft && score <= 16 && up >= 7:
		return c.decided(prompt, game.Hit, "stiff against a strong card"), nil
	default:
		return c.decided(prompt, game.Stand, "made hand or dealer likely to bust"), nil
	}
}
