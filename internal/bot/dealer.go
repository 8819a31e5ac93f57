package bot

import (
	"context"

	"github.com/lox/blackjack/internal/game"
)

// DealerBot plays the player's hand by the dealer's rule: draw below 17,
// stand on any 17. It never splits or doubles.
type DealerBot struct {
	flatBet
}

func (d *DealerBot) ChooseSplit(context.Context, game.SplitPrompt) (bool, error) {
	return false, nil
}

func (d *DealerBot) ChooseAction(_ context.Context, prompt game.ActionPrompt) (game.Action, error) {
	if game.DealerShouldDraw(game.NewHand(prompt.Cards...)) {
		return d.decided(prompt, game.Hit, "below 17"), nil
	}
	return d.decided(prompt, game.Stand, "17 or more"), nil
}
