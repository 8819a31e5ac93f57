package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/lox/blackjack/internal/game"
)

// Renderer prints engine events as a running table commentary
type Renderer struct {
	w       io.Writer
	styles  *Styles
	natural bool
	dealer  int // Dealer's final score for the round
}

// NewRenderer creates a renderer writing to w
func NewRenderer(w io.Writer, styles *Styles) *Renderer {
	return &Renderer{w: w, styles: styles}
}

// OnEvent implements game.EventSubscriber
func (r *Renderer) OnEvent(event game.GameEvent) {
	s := r.styles

	switch e := event.(type) {
	case game.ShoeReshuffledEvent:
		r.printf("\n%s\n\n", s.Paint(s.Warning, "*** Reshuffling shoe ***"))

	case game.RoundStartEvent:
		r.natural = false
		r.dealer = 0
		r.printf("%s\n", s.Paint(s.Info, fmt.Sprintf("Round %s: bet $%d, $%d left", e.RoundID, e.Bet, e.Balance)))

	case game.InitialDealEvent:
		r.printf("\nYou: %s (score: %d)\n", s.Cards(e.PlayerCards), e.PlayerScore)
		r.printf("Dealer: %s\n", s.UpCard(e.DealerUp))

	case game.NaturalEvent:
		r.natural = true
		r.printf("\n%s\n", s.Paint(s.Success, "-- Player has Blackjack! --"))
		if e.DealerBlackjack {
			r.printf("Dealer: %s (Blackjack) -> Push.\n", s.Cards(e.DealerCards))
		}

	case game.SplitDeniedEvent:
		r.printf("\nHand %d: %s (split available)\n", e.HandIndex+1, s.Cards(e.Cards))
		r.printf("%s\n", s.Paint(s.Warning, "Insufficient funds to split this hand. Skipping split."))

	case game.SplitEvent:
		r.printf("Split -> Hand %d: %s | Hand %d: %s\n",
			e.HandIndex+1, s.Cards(e.First), e.HandIndex+2, s.Cards(e.Second))

	case game.HandTurnEvent:
		r.printf("\n%s\n", s.Paint(s.Header, fmt.Sprintf("---- Playing Hand %d ----", e.HandIndex+1)))
		if e.AutoStand {
			r.printf("Hand %d shows 21 (from initial two cards). Treated as 21 (not blackjack after splits).\n", e.HandIndex+1)
		}

	case game.PlayerActionEvent:
		switch e.Action {
		case game.Hit:
			r.printf("You draw: %s\n", s.Card(e.Card))
		case game.Double:
			r.printf("You double and draw: %s (score: %d, stake $%d)\n", s.Card(e.Card), e.Score, e.Stake)
		case game.Stand:
			r.printf("You stand on %d.\n", e.Score)
		}

	case game.HandBustEvent:
		r.printf("Player hand: %s (score: %d)\n", s.Cards(e.Cards), e.Score)
		r.printf("%s\n", s.Paint(s.Error, " -> Busted!"))

	case game.DealerRevealEvent:
		r.printf("\nDealer reveals: %s (score: %d)\n", s.Cards(e.Cards), e.Score)

	case game.DealerDrawEvent:
		r.printf("Dealer draws: %s\n", s.Card(e.Card))

	case game.DealerFinalEvent:
		r.dealer = e.Score
		r.printf("Dealer final: %s (score: %d)\n", s.Cards(e.Cards), e.Score)

	case game.HandSettledEvent:
		r.settled(e)

	case game.RoundEndEvent:
		r.printf("\nBalance after round: $%d\n", e.State.Balance)
		r.printf("Stats (Rounds/Wins/Losses/Pushes/Blackjacks): %s\n", e.State.Stats)

	case game.SessionEndEvent:
		switch e.Reason {
		case game.EndReasonBroke:
			r.printf("%s\n", s.Paint(s.Error, "You're out of money. Game over."))
		case game.EndReasonQuit:
			r.printf("\nLeaving the table with $%d.\n", e.State.Balance)
		default:
			r.printf("Thanks for playing!\n")
		}
		r.printf("Final stats (Rounds/Wins/Losses/Pushes/Blackjacks): %s\n", e.State.Stats)
	}
}

func (r *Renderer) settled(e game.HandSettledEvent) {
	s := r.styles
	h := e.Result

	if r.natural {
		if h.Outcome == game.OutcomeBlackjack {
			r.printf("%s\n", s.Paint(s.Success,
				fmt.Sprintf("You win Blackjack! Payout: 3:2 -> profit $%d", h.Payout-h.Stake)))
		}
		return
	}

	r.printf("\n-- Resolving Hand %d: %s (score: %d) | Bet: $%d --\n", e.HandIndex+1, s.Cards(h.Cards), h.Score, h.Stake)
	switch h.Outcome {
	case game.OutcomeBust:
		r.printf("Result: %s\n", s.Paint(s.Error, "BUST -> lose bet."))
	case game.OutcomeLoss:
		r.printf("Result: %s\n", s.Paint(s.Error, "Dealer wins -> you lose stake."))
	case game.OutcomePush:
		r.printf("Result: %s\n", s.Paint(s.Warning, "Push -> stake returned."))
	case game.OutcomeWin:
		if r.dealer > 21 {
			r.printf("Result: %s\n", s.Paint(s.Success, "Dealer busted -> You win this hand."))
		} else {
			r.printf("Result: %s\n", s.Paint(s.Success, "You beat dealer -> win."))
		}
	}
}

func (r *Renderer) printf(format string, args ...any) {
	fmt.Fprintf(r.w, format, args...)
}

// Separator is printed before each round
var Separator = strings.Repeat("-", 46)
