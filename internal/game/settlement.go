package game

import (
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/statistics"
)

// Outcome is how a player hand resolved against the dealer
type Outcome int

const (
	OutcomeBust Outcome = iota
	OutcomeLoss
	OutcomePush
	OutcomeWin
	OutcomeBlackjack
)

// String returns the outcome name
func (o Outcome) String() string {
	switch o {
	case OutcomeBust:
		return "bust"
	case OutcomeLoss:
		return "loss"
	case OutcomePush:
		return "push"
	case OutcomeWin:
		return "win"
	case OutcomeBlackjack:
		return "blackjack"
	default:
		return "unknown"
	}
}

// HandResult is the settled state of one player hand. Payout is what was
// credited back to the balance; the stake itself was debited when reserved.
type HandResult struct {
	Cards   []deck.Card
	Score   int
	Stake   int
	Doubled bool
	Split   bool
	Outcome Outcome
	Payout  int
}

// RoundResult summarises a settled round
type RoundResult struct {
	ID            string
	Bet           int
	Natural       bool // Settled by the opening blackjack check
	Hands         []HandResult
	DealerCards   []deck.Card
	DealerScore   int
	DealerPlayed  bool
	Reshuffled    bool
	BalanceBefore int
	BalanceAfter  int
}

// Wagered is the total stake reserved over the round
func (r *RoundResult) Wagered() int {
	total := 0
	for _, h := range r.Hands {
		total += h.Stake
	}
	return total
}

// Payout is the total credited back at settlement
func (r *RoundResult) Payout() int {
	total := 0
	for _, h := range r.Hands {
		total += h.Payout
	}
	return total
}

// Net is the balance change over the round
func (r *RoundResult) Net() int {
	return r.BalanceAfter - r.BalanceBefore
}

// Reconciles checks the closing balance equals the opening balance minus
// every reserved stake plus every payout.
func (r *RoundResult) Reconciles() bool {
	return r.BalanceAfter == r.BalanceBefore-r.Wagered()+r.Payout()
}

// DealerBust reports whether the dealer finished over 21
func (r *RoundResult) DealerBust() bool {
	return r.DealerScore > 21
}

// AnySplit reports whether any hand came from a split
func (r *RoundResult) AnySplit() bool {
	for _, h := range r.Hands {
		if h.Split {
			return true
		}
	}
	return false
}

// AnyDoubled reports whether any hand was doubled
func (r *RoundResult) AnyDoubled() bool {
	for _, h := range r.Hands {
		if h.Doubled {
			return true
		}
	}
	return false
}

// SettleHand resolves one played hand against the dealer's final score and
// returns the outcome and the amount to credit back.
func SettleHand(h *Hand, dealerScore int) (Outcome, int) {
	score := h.Score()
	switch {
	case score > 21:
		return OutcomeBust, 0
	case dealerScore > 21:
		return OutcomeWin, h.Stake * 2
	case score > dealerScore:
		return OutcomeWin, h.Stake * 2
	case score < dealerScore:
		return OutcomeLoss, 0
	default:
		return OutcomePush, h.Stake
	}
}

// SettleNatural resolves an opening blackjack. A dealer blackjack pushes;
// otherwise it pays 3:2, rounding the profit down.
func SettleNatural(bet int, dealer *Hand) (Outcome, int) {
	if dealer.IsBlackjack() {
		return OutcomePush, bet
	}
	return OutcomeBlackjack, bet + BlackjackProfit(bet)
}

// BlackjackProfit is floor(bet × 1.5)
func BlackjackProfit(bet int) int {
	return bet * 3 / 2
}

func recordOutcome(c *statistics.Counters, o Outcome) {
	switch o {
	case OutcomeBust, OutcomeLoss:
		c.Losses++
	case OutcomePush:
		c.Pushes++
	case OutcomeWin:
		c.Wins++
	case OutcomeBlackjack:
		c.Wins++
		c.Blackjacks++
	}
}
