package game

// DealerStandScore is the total the dealer stands on
const DealerStandScore = 17

// DealerShouldDraw applies the house policy: draw below 17, stand on any
// 17 or more. Soft 17 stands.
func DealerShouldDraw(h *Hand) bool {
	return h.Score() < DealerStandScore
}

// anyLive reports whether at least one player hand is 21 or under
func anyLive(hands []*Hand) bool {
	for _, h := range hands {
		if !h.IsBust() {
			return true
		}
	}
	return false
}

// playDealer reveals the hole card and, if any player hand is still live,
// draws to the stopping rule. It reports whether the dealer played.
func (e *Engine) playDealer(r *round) (bool, error) {
	e.bus.Publish(DealerRevealEvent{Cards: r.dealer.CardsCopy(), Score: r.dealer.Score()})

	played := anyLive(r.hands)
	if played {
		for DealerShouldDraw(r.dealer) {
			if err := e.drawInto(r.dealer); err != nil {
				return false, err
			}
			c := r.dealer.Cards[len(r.dealer.Cards)-1]
			e.logger.Debug("Dealer draws", "round", r.id, "card", c, "score", r.dealer.Score())
			e.bus.Publish(DealerDrawEvent{Card: c, Cards: r.dealer.CardsCopy(), Score: r.dealer.Score()})
		}
	}

	e.bus.Publish(DealerFinalEvent{Cards: r.dealer.CardsCopy(), Score: r.dealer.Score(), Played: played})
	return played, nil
}
