package game

import (
	"context"
	"fmt"
	"slices"
)

// AvailableActions returns what the player may do with h given the balance
// left to reserve from. Double needs exactly two cards and enough balance
// to match the stake.
func AvailableActions(h *Hand, balance int) []Action {
	actions := []Action{Hit, Stand}
	if len(h.Cards) == 2 && balance >= h.Stake {
		actions = append(actions, Double)
	}
	return actions
}

// playHand runs the action loop for the hand at index i until it stands,
// busts or doubles. A two-card 21 takes no actions and is not a blackjack.
func (e *Engine) playHand(ctx context.Context, agent Agent, r *round, i int) error {
	h := r.hands[i]

	if len(h.Cards) == 2 && h.Score() == 21 {
		e.bus.Publish(HandTurnEvent{
			HandIndex: i,
			HandCount: len(r.hands),
			Cards:     h.CardsCopy(),
			Score:     21,
			Stake:     h.Stake,
			AutoStand: true,
		})
		return nil
	}

	e.bus.Publish(HandTurnEvent{
		HandIndex: i,
		HandCount: len(r.hands),
		Cards:     h.CardsCopy(),
		Score:     h.Score(),
		Stake:     h.Stake,
	})

	for {
		score := h.Score()
		if score > 21 {
			e.logger.Debug("Hand bust", "round", r.id, "hand", i, "cards", h, "score", score)
			e.bus.Publish(HandBustEvent{HandIndex: i, Cards: h.CardsCopy(), Score: score})
			return nil
		}

		actions := AvailableActions(h, r.balance)
		action, err := agent.ChooseAction(ctx, ActionPrompt{
			RoundID:   r.id,
			HandIndex: i,
			HandCount: len(r.hands),
			Cards:     h.CardsCopy(),
			Score:     score,
			Stake:     h.Stake,
			Balance:   r.balance,
			DealerUp:  r.dealer.Cards[0],
			Actions:   actions,
		})
		if err != nil {
			return err
		}
		if !slices.Contains(actions, action) {
			return fmt.Errorf("%w: %s on hand %d (offered %v)", ErrIllegalAction, action, i+1, actions)
		}

		e.logger.Debug("Player action", "round", r.id, "hand", i, "action", action, "score", score)

		switch action {
		case Stand:
			e.publishAction(r, i, action)
			return nil

		case Hit:
			if err := e.drawInto(h); err != nil {
				return err
			}
			e.publishAction(r, i, action)

		case Double:
			r.balance -= h.Stake
			h.Stake *= 2
			h.Doubled = true
			if err := e.drawInto(h); err != nil {
				return err
			}
			e.publishAction(r, i, action)
			if h.IsBust() {
				e.bus.Publish(HandBustEvent{HandIndex: i, Cards: h.CardsCopy(), Score: h.Score()})
			}
			return nil
		}
	}
}

func (e *Engine) publishAction(r *round, i int, action Action) {
	h := r.hands[i]
	event := PlayerActionEvent{
		HandIndex: i,
		Action:    action,
		Cards:     h.CardsCopy(),
		Score:     h.Score(),
		Stake:     h.Stake,
		Balance:   r.balance,
	}
	if action != Stand {
		event.Card = h.Cards[len(h.Cards)-1]
	}
	e.bus.Publish(event)
}
