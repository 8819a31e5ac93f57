package bot

import (
	"context"
	rand "math/rand/v2"

	"github.com/lox/blackjack/internal/game"
)

// RandomBot splits on a coin flip and picks uniformly among offered actions
type RandomBot struct {
	flatBet
	rng *rand.Rand
}

func (r *RandomBot) ChooseSplit(context.Context, game.SplitPrompt) (bool, error) {
	return r.rng.IntN(2) == 0, nil
}

func (r *RandomBot) ChooseAction(_ context.Context, prompt game.ActionPrompt) (game.Action, error) {
	if len(prompt.Actions) == 0 {
		return game.Stand, nil
	}
	return r.decided(prompt, prompt.Actions[r.rng.IntN(len(prompt.Actions))], "random"), nil
}
