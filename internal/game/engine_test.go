package game

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/statistics"
)

func TestPlayerBlackjackPaysThreeToTwo(t *testing.T) {
	engine, rec := newStackedEngine(t, testRules(), "AsKh7d9c")
	agent := &scriptedAgent{bets: []int{100}}

	state, result, err := engine.PlayRound(context.Background(), agent, NewState(testRules()))
	require.NoError(t, err)

	assert.Equal(t, 1150, state.Balance)
	assert.Equal(t, statistics.Counters{Rounds: 1, Wins: 1, Blackjacks: 1}, state.Stats)

	assert.True(t, result.Natural)
	assert.Equal(t, "round-1", result.ID)
	require.Len(t, result.Hands, 1)
	assert.Equal(t, OutcomeBlackjack, result.Hands[0].Outcome)
	assert.Equal(t, 250, result.Hands[0].Payout)
	assert.True(t, result.Reconciles())
	assert.Equal(t, 150, result.Net())

	// no splitting, no actions, no dealer play
	assert.Empty(t, agent.splitPrompts)
	assert.Empty(t, agent.actionPrompts)
	assert.False(t, result.DealerPlayed)
	require.Len(t, rec.ofType(EventTypeNatural), 1)
	assert.False(t, rec.ofType(EventTypeNatural)[0].(NaturalEvent).DealerBlackjack)
}

func TestBlackjackAgainstDealerBlackjackPushes(t *testing.T) {
	engine, rec := newStackedEngine(t, testRules(), "AsKhAdQc")
	agent := &scriptedAgent{bets: []int{100}}

	state, result, err := engine.PlayRound(context.Background(), agent, NewState(testRules()))
	require.NoError(t, err)

	assert.Equal(t, 1000, state.Balance)
	assert.Equal(t, statistics.Counters{Rounds: 1, Pushes: 1}, state.Stats)
	assert.Equal(t, OutcomePush, result.Hands[0].Outcome)
	assert.True(t, rec.ofType(EventTypeNatural)[0].(NaturalEvent).DealerBlackjack)
}

func TestPairOfAcesOpeningIsNotBlackjack(t *testing.T) {
	engine, rec := newStackedEngine(t, testRules(), "AsAh7d9c")
	agent := &scriptedAgent{bets: []int{100}, splits: []bool{false}, actions: []Action{Stand}}

	_, result, err := engine.PlayRound(context.Background(), agent, NewState(testRules()))
	require.NoError(t, err)
	assert.False(t, result.Natural)
	assert.Empty(t, rec.ofType(EventTypeNatural))
}

func TestDealerBlackjackWithoutPeekBeatsTwenty(t *testing.T) {
	engine, _ := newStackedEngine(t, testRules(), "TsThAdKc")
	agent := &scriptedAgent{bets: []int{100}, actions: []Action{Stand}}

	state, result, err := engine.PlayRound(context.Background(), agent, NewState(testRules()))
	require.NoError(t, err)

	require.Len(t, agent.actionPrompts, 1, "the player still acts")
	assert.Equal(t, 21, result.DealerScore)
	assert.Equal(t, OutcomeLoss, result.Hands[0].Outcome)
	assert.Equal(t, 900, state.Balance)
}

func TestEventOrder(t *testing.T) {
	engine, rec := newStackedEngine(t, testRules(), "Ts7hTd6c2c")
	agent := &scriptedAgent{bets: []int{50}, actions: []Action{Stand}}

	_, _, err := engine.PlayRound(context.Background(), agent, NewState(testRules()))
	require.NoError(t, err)

	var types []EventType
	for _, e := range rec.events {
		types = append(types, e.EventType())
	}
	assert.Equal(t, []EventType{
		EventTypeRoundStart,
		EventTypeInitialDeal,
		EventTypeHandTurn,
		EventTypePlayerAction,
		EventTypeDealerReveal,
		EventTypeDealerDraw,
		EventTypeDealerFinal,
		EventTypeHandSettled,
		EventTypeRoundEnd,
	}, types)

	start := rec.events[0].(RoundStartEvent)
	assert.Equal(t, 950, start.Balance)
	deal := rec.events[1].(InitialDealEvent)
	assert.Equal(t, "10♦", deal.DealerUp.String())
	assert.Equal(t, 17, deal.PlayerScore)
}

func TestInvalidBet(t *testing.T) {
	for _, bet := range []int{0, -5, 1001} {
		engine, _ := newStackedEngine(t, testRules(), "AsKh7d9c")
		start := NewState(testRules())

		state, result, err := engine.PlayRound(context.Background(), &scriptedAgent{bets: []int{bet}}, start)
		require.ErrorIs(t, err, ErrInvalidBet, "bet %d", bet)
		assert.Nil(t, result)
		assert.Equal(t, start, state)
		assert.Equal(t, 4, engine.ShoeRemaining(), "nothing dealt")
	}
}

func TestPlayRoundWhenBroke(t *testing.T) {
	engine, _ := newStackedEngine(t, testRules(), "AsKh7d9c")
	_, _, err := engine.PlayRound(context.Background(), &scriptedAgent{bets: []int{1}}, State{})
	require.ErrorIs(t, err, ErrInvalidBet)
}

func TestEmptyShoeAbortsRound(t *testing.T) {
	engine, _ := newStackedEngine(t, testRules(), "Ts6hTd")
	start := NewState(testRules())

	state, result, err := engine.PlayRound(context.Background(), &scriptedAgent{bets: []int{100}}, start)
	require.ErrorIs(t, err, deck.ErrEmptyShoe)
	assert.Nil(t, result)
	assert.Equal(t, start, state, "reserved bet is void")
}

func TestEmptyShoeDuringSplitAbortsRound(t *testing.T) {
	engine, _ := newStackedEngine(t, testRules(), "8s8hTdQc8d")
	start := NewState(testRules())
	agent := &scriptedAgent{bets: []int{100}, splits: []bool{true}}

	state, _, err := engine.PlayRound(context.Background(), agent, start)
	require.ErrorIs(t, err, deck.ErrEmptyShoe)
	assert.Equal(t, start, state)
}

func TestQuitMidRound(t *testing.T) {
	engine, _ := newStackedEngine(t, testRules(), "Ts6hTd7c")
	start := NewState(testRules())
	agent := &scriptedAgent{bets: []int{100}, quitOnAction: true}

	state, _, err := engine.PlayRound(context.Background(), agent, start)
	require.ErrorIs(t, err, ErrQuit)
	assert.Equal(t, start, state)
}

func TestReshuffleTriggersBelowThreshold(t *testing.T) {
	rules := Rules{NumDecks: 1, Penetration: 0.5, MaxResplits: 3, StartingBalance: 1_000_000}
	rec := &eventRecorder{}
	bus := NewEventBus()
	bus.Subscribe(rec)

	engine, err := NewEngine(rules, WithSeed(11), WithEventBus(bus), WithLogger(quietLogger()))
	require.NoError(t, err)

	state := NewState(rules)
	agent := &scriptedAgent{bets: []int{1}}
	reshuffles := 0
	for range 60 {
		before := engine.ShoeRemaining()
		next, result, err := engine.PlayRound(context.Background(), agent, state)
		require.NoError(t, err)
		state = next

		// threshold is 26 cards; reshuffle happens exactly when below it
		assert.Equal(t, before < 26, result.Reshuffled, "remaining before round: %d", before)
		if result.Reshuffled {
			reshuffles++
		}
	}

	assert.Positive(t, reshuffles)
	assert.Len(t, rec.ofType(EventTypeShoeReshuffled), reshuffles, "at most one reshuffle per round")
}

// randomAgent makes arbitrary legal decisions
type randomAgent struct {
	rng *rand.Rand
}

func (a *randomAgent) PlaceBet(_ context.Context, balance int) (int, error) {
	return 1 + a.rng.IntN(min(balance, 200)), nil
}

func (a *randomAgent) ChooseSplit(_ context.Context, _ SplitPrompt) (bool, error) {
	return a.rng.IntN(4) != 0, nil
}

func (a *randomAgent) ChooseAction(_ context.Context, p ActionPrompt) (Action, error) {
	return p.Actions[a.rng.IntN(len(p.Actions))], nil
}

func (a *randomAgent) PlayAgain(_ context.Context, _ State) (bool, error) {
	return true, nil
}

func TestBalanceAlwaysReconciles(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		rules := DefaultRules()
		engine, err := NewEngine(rules, WithSeed(seed), WithLogger(quietLogger()))
		require.NoError(t, err)

		agent := &randomAgent{rng: rand.New(rand.NewPCG(uint64(seed), 0))}
		state := NewState(rules)
		for i := 0; i < 300 && !state.Broke(); i++ {
			next, result, err := engine.PlayRound(context.Background(), agent, state)
			require.NoError(t, err)

			require.True(t, result.Reconciles(), "seed %d round %d: %+v", seed, i, result)
			require.Equal(t, state.Balance+result.Net(), next.Balance)
			require.LessOrEqual(t, len(result.Hands), rules.maxHands())
			require.Equal(t, state.Stats.Rounds+1, next.Stats.Rounds)
			require.Equal(t, state.Stats.Hands()+len(result.Hands), next.Stats.Hands())
			require.GreaterOrEqual(t, next.Stats.Wins, state.Stats.Wins)
			require.GreaterOrEqual(t, next.Stats.Losses, state.Stats.Losses)
			state = next
		}
	}
}
