package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/sanity-io/litter"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/gameid"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/statistics"
)

// Engine plays blackjack rounds against one player seat. It owns the shoe
// for the session; balance and statistics travel in State.
type Engine struct {
	rules  Rules
	shoe   *deck.Shoe
	rng    *rand.Rand
	bus    EventBus
	logger *log.Logger
	newID  func() string
}

// Option configures an Engine
type Option func(*Engine)

// WithSeed makes every shoe the engine builds reproducible. Zero keeps
// fresh randomness.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.rng = randutil.ForSeed(seed) }
}

// WithShoe installs the initial shoe instead of building one. Reshuffles
// still build fresh shoes.
func WithShoe(shoe *deck.Shoe) Option {
	return func(e *Engine) { e.shoe = shoe }
}

// WithEventBus publishes round progress on bus
func WithEventBus(bus EventBus) Option {
	return func(e *Engine) { e.bus = bus }
}

// WithLogger sets the engine logger
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithIDGenerator overrides how round IDs are generated
func WithIDGenerator(newID func() string) Option {
	return func(e *Engine) { e.newID = newID }
}

// NewEngine validates rules and builds an engine with a shuffled shoe
func NewEngine(rules Rules, opts ...Option) (*Engine, error) {
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}

	e := &Engine{
		rules:  rules,
		bus:    NewEventBus(),
		logger: log.New(io.Discard),
		newID:  gameid.Generate,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = randutil.Fresh()
	}
	if e.shoe == nil {
		e.shoe = deck.NewShoe(rules.NumDecks, e.rng)
	}
	e.logger = e.logger.WithPrefix("engine")

	return e, nil
}

// Rules returns the engine's house rules
func (e *Engine) Rules() Rules {
	return e.rules
}

// EventBus returns the bus round progress is published on
func (e *Engine) EventBus() EventBus {
	return e.bus
}

// ShoeRemaining returns the number of undealt cards in the current shoe
func (e *Engine) ShoeRemaining() int {
	return e.shoe.Remaining()
}

// round is the working state of one round. balance is the player's balance
// with every stake reserved so far already taken out.
type round struct {
	id      string
	bet     int
	balance int
	dealer  *Hand
	hands   []*Hand
}

// PlayRound plays a full round: reshuffle check, bet, deal, splits, player
// actions, dealer play and settlement. It returns the updated state and the
// round result.
//
// On any error the round is void and st is returned unchanged. Errors from
// the agent (including ErrQuit) are passed through; running out of cards
// wraps deck.ErrEmptyShoe and means the reshuffle threshold is wrong.
func (e *Engine) PlayRound(ctx context.Context, agent Agent, st State) (State, *RoundResult, error) {
	if st.Broke() {
		return st, nil, fmt.Errorf("%w: balance is %d", ErrInvalidBet, st.Balance)
	}

	reshuffled := e.reshuffleIfNeeded()

	bet, err := agent.PlaceBet(ctx, st.Balance)
	if err != nil {
		return st, nil, err
	}
	if bet < 1 || bet > st.Balance {
		return st, nil, fmt.Errorf("%w: %d is outside 1..%d", ErrInvalidBet, bet, st.Balance)
	}

	r := &round{
		id:      e.newID(),
		bet:     bet,
		balance: st.Balance - bet,
		dealer:  NewHand(),
	}

	e.logger.Debug("Starting round", "round", r.id, "bet", bet, "balance", r.balance, "shoe", e.shoe.Remaining())
	e.bus.Publish(RoundStartEvent{RoundID: r.id, Bet: bet, Balance: r.balance})

	result, stats, err := e.play(ctx, agent, r, st)
	if err != nil {
		if errors.Is(err, deck.ErrEmptyShoe) {
			e.logger.Error("Shoe exhausted mid-round", "round", r.id, "error", err)
		}
		return st, nil, fmt.Errorf("round %s aborted: %w", r.id, err)
	}

	result.Reshuffled = reshuffled
	next := State{Balance: r.balance, Stats: stats}

	e.logger.Info("Round settled", "round", r.id, "net", result.Net(), "balance", next.Balance)
	if e.logger.GetLevel() <= log.DebugLevel {
		e.logger.Debug("Round result", "dump", litter.Sdump(result))
	}
	e.bus.Publish(RoundEndEvent{Result: result, State: next})

	return next, result, nil
}

func (e *Engine) play(ctx context.Context, agent Agent, r *round, st State) (*RoundResult, statistics.Counters, error) {
	stats := st.Stats

	player := NewHand()
	player.Stake = r.bet
	for _, h := range []*Hand{player, player, r.dealer, r.dealer} {
		if err := e.drawInto(h); err != nil {
			return nil, stats, err
		}
	}

	e.bus.Publish(InitialDealEvent{
		RoundID:     r.id,
		PlayerCards: player.CardsCopy(),
		PlayerScore: player.Score(),
		DealerUp:    r.dealer.Cards[0],
	})

	result := &RoundResult{
		ID:            r.id,
		Bet:           r.bet,
		BalanceBefore: st.Balance,
	}

	if player.IsBlackjack() {
		outcome, payout := SettleNatural(r.bet, r.dealer)
		r.balance += payout
		stats.Rounds++
		recordOutcome(&stats, outcome)

		e.bus.Publish(NaturalEvent{
			RoundID:         r.id,
			PlayerCards:     player.CardsCopy(),
			DealerCards:     r.dealer.CardsCopy(),
			DealerBlackjack: r.dealer.IsBlackjack(),
		})

		hr := HandResult{
			Cards:   player.CardsCopy(),
			Score:   player.Score(),
			Stake:   r.bet,
			Outcome: outcome,
			Payout:  payout,
		}
		e.bus.Publish(HandSettledEvent{HandIndex: 0, Result: hr})

		result.Natural = true
		result.Hands = []HandResult{hr}
		result.DealerCards = r.dealer.CardsCopy()
		result.DealerScore = r.dealer.Score()
		result.BalanceAfter = r.balance
		return result, stats, nil
	}

	r.hands = []*Hand{player}
	if err := e.resolveSplits(ctx, agent, r); err != nil {
		return nil, stats, err
	}

	for i := range r.hands {
		if err := e.playHand(ctx, agent, r, i); err != nil {
			return nil, stats, err
		}
	}

	played, err := e.playDealer(r)
	if err != nil {
		return nil, stats, err
	}

	dealerScore := r.dealer.Score()
	stats.Rounds++
	for i, h := range r.hands {
		outcome, payout := SettleHand(h, dealerScore)
		r.balance += payout
		recordOutcome(&stats, outcome)

		hr := HandResult{
			Cards:   h.CardsCopy(),
			Score:   h.Score(),
			Stake:   h.Stake,
			Doubled: h.Doubled,
			Split:   h.FromSplit,
			Outcome: outcome,
			Payout:  payout,
		}
		result.Hands = append(result.Hands, hr)

		e.logger.Debug("Hand settled", "round", r.id, "hand", i, "score", hr.Score, "dealer", dealerScore, "outcome", outcome, "payout", payout)
		e.bus.Publish(HandSettledEvent{HandIndex: i, Result: hr})
	}

	result.DealerCards = r.dealer.CardsCopy()
	result.DealerScore = dealerScore
	result.DealerPlayed = played
	result.BalanceAfter = r.balance
	return result, stats, nil
}

// reshuffleIfNeeded replaces the shoe wholesale once it has dropped below
// the penetration threshold. Discards are never reused.
func (e *Engine) reshuffleIfNeeded() bool {
	if !e.shoe.NeedsReshuffle(e.rules.NumDecks, e.rules.Penetration) {
		return false
	}

	e.logger.Info("Reshuffling shoe", "remaining", e.shoe.Remaining(), "size", e.shoe.Size(), "decks", e.rules.NumDecks)
	e.shoe = deck.NewShoe(e.rules.NumDecks, e.rng)
	e.bus.Publish(ShoeReshuffledEvent{Decks: e.rules.NumDecks, Cards: e.shoe.Remaining()})
	return true
}

func (e *Engine) draw() (deck.Card, error) {
	c, err := e.shoe.Draw()
	if err != nil {
		return deck.Card{}, fmt.Errorf("drawing card: %w", err)
	}
	return c, nil
}

func (e *Engine) drawInto(h *Hand) error {
	c, err := e.draw()
	if err != nil {
		return err
	}
	h.Add(c)
	return nil
}
