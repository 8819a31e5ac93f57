package game

import (
	"context"
	"slices"
)

// CanSplit reports whether h is a splittable pair given how many hands the
// round already has: exactly two cards of equal rank while handCount is at
// most maxResplits.
func CanSplit(h *Hand, handCount, maxResplits int) bool {
	return len(h.Cards) == 2 &&
		h.Cards[0].Rank == h.Cards[1].Rank &&
		handCount <= maxResplits
}

// resolveSplits walks the round's hands with an index cursor. After a split
// the cursor stays put so the rebuilt hand at that position is offered
// again; it only advances when the hand there is not a pair, cannot be
// funded, or the player declines.
func (e *Engine) resolveSplits(ctx context.Context, agent Agent, r *round) error {
	for i := 0; i < len(r.hands); {
		h := r.hands[i]
		if !CanSplit(h, len(r.hands), e.rules.MaxResplits) {
			i++
			continue
		}

		if r.balance < h.Stake {
			e.logger.Debug("Split not funded", "round", r.id, "hand", i, "stake", h.Stake, "balance", r.balance)
			e.bus.Publish(SplitDeniedEvent{
				HandIndex: i,
				Cards:     h.CardsCopy(),
				Stake:     h.Stake,
				Balance:   r.balance,
			})
			i++
			continue
		}

		split, err := agent.ChooseSplit(ctx, SplitPrompt{
			RoundID:   r.id,
			HandIndex: i,
			Cards:     h.CardsCopy(),
			Stake:     h.Stake,
			Balance:   r.balance,
			DealerUp:  r.dealer.Cards[0],
			HandCount: len(r.hands),
		})
		if err != nil {
			return err
		}
		if !split {
			i++
			continue
		}

		if err := e.split(r, i); err != nil {
			return err
		}
	}
	return nil
}

// split reserves a second stake for the hand at i, separates the pair and
// deals one card onto each half. The second half is inserted right after
// the first.
func (e *Engine) split(r *round, i int) error {
	h := r.hands[i]
	r.balance -= h.Stake

	first := NewHand(h.Cards[0])
	second := NewHand(h.Cards[1])
	for _, half := range []*Hand{first, second} {
		c, err := e.draw()
		if err != nil {
			return err
		}
		half.Add(c)
		half.Stake = h.Stake
		half.FromSplit = true
	}

	r.hands[i] = first
	r.hands = slices.Insert(r.hands, i+1, second)

	e.logger.Debug("Split hand", "round", r.id, "hand", i, "first", first, "second", second, "balance", r.balance)
	e.bus.Publish(SplitEvent{
		HandIndex: i,
		First:     first.CardsCopy(),
		Second:    second.CardsCopy(),
		Stake:     h.Stake,
		Balance:   r.balance,
		HandCount: len(r.hands),
	})
	return nil
}
