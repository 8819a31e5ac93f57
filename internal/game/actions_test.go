package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailableActions(t *testing.T) {
	h := hand("5s6h")
	h.Stake = 100

	assert.Equal(t, []Action{Hit, Stand, Double}, AvailableActions(h, 100))
	assert.Equal(t, []Action{Hit, Stand}, AvailableActions(h, 99), "not enough to match the stake")

	h.Add(hand("2c").Cards[0])
	assert.Equal(t, []Action{Hit, Stand}, AvailableActions(h, 1000), "double only on two cards")
}

func TestDoubleDown(t *testing.T) {
	// 11 doubles into 21 against dealer 17
	engine, rec := newStackedEngine(t, testRules(), "5s6hTd7cTs")
	agent := &scriptedAgent{bets: []int{100}, actions: []Action{Double}}

	state, result, err := engine.PlayRound(context.Background(), agent, NewState(testRules()))
	require.NoError(t, err)

	require.Len(t, agent.actionPrompts, 1, "double forces a stop")
	assert.True(t, agent.actionPrompts[0].CanDouble())

	require.Len(t, result.Hands, 1)
	h := result.Hands[0]
	assert.True(t, h.Doubled)
	assert.Equal(t, 200, h.Stake)
	assert.Equal(t, 21, h.Score)
	assert.Equal(t, OutcomeWin, h.Outcome)
	assert.Equal(t, 400, h.Payout)
	assert.Equal(t, 1200, state.Balance)
	assert.True(t, result.Reconciles())

	actions := rec.ofType(EventTypePlayerAction)
	require.Len(t, actions, 1)
	ev := actions[0].(PlayerActionEvent)
	assert.Equal(t, Double, ev.Action)
	assert.Equal(t, "10♠", ev.Card.String())
	assert.Equal(t, 800, ev.Balance, "second stake reserved before the draw")
}

func TestDoubleDownBust(t *testing.T) {
	engine, rec := newStackedEngine(t, testRules(), "Ts2hTd7cKs")
	agent := &scriptedAgent{bets: []int{100}, actions: []Action{Double}}

	state, result, err := engine.PlayRound(context.Background(), agent, NewState(testRules()))
	require.NoError(t, err)

	assert.Equal(t, OutcomeBust, result.Hands[0].Outcome)
	assert.Equal(t, 800, state.Balance)
	assert.Len(t, rec.ofType(EventTypeHandBust), 1)
	assert.False(t, result.DealerPlayed)
}

func TestDoubleNotOfferedWithoutFunds(t *testing.T) {
	engine, _ := newStackedEngine(t, testRules(), "5s6hTd7c")
	agent := &scriptedAgent{bets: []int{1000}}

	_, _, err := engine.PlayRound(context.Background(), agent, NewState(testRules()))
	require.NoError(t, err)

	require.Len(t, agent.actionPrompts, 1)
	assert.Equal(t, []Action{Hit, Stand}, agent.actionPrompts[0].Actions)
	assert.Zero(t, agent.actionPrompts[0].Balance)
}

func TestDoubleOfferedAfterSplit(t *testing.T) {
	// 5 5 split into 5 6 and 5 4; double the first into 21
	engine, _ := newStackedEngine(t, testRules(), "5s5hTd7c6c4dTs")
	agent := &scriptedAgent{
		bets:    []int{100},
		splits:  []bool{true},
		actions: []Action{Double, Stand},
	}

	state, result, err := engine.PlayRound(context.Background(), agent, NewState(testRules()))
	require.NoError(t, err)

	require.Len(t, result.Hands, 2)
	assert.True(t, result.Hands[0].Doubled)
	assert.Equal(t, 200, result.Hands[0].Stake)
	assert.Equal(t, OutcomeWin, result.Hands[0].Outcome)
	assert.Equal(t, OutcomeLoss, result.Hands[1].Outcome)
	// 1000 - 100 bet - 100 split - 100 double + 400
	assert.Equal(t, 1100, state.Balance)
	assert.Equal(t, 300, result.Wagered())
	assert.True(t, result.Reconciles())
}

func TestHitUntilBust(t *testing.T) {
	engine, rec := newStackedEngine(t, testRules(), "Ts6hTd7cKc")
	agent := &scriptedAgent{bets: []int{100}, actions: []Action{Hit}}

	state, result, err := engine.PlayRound(context.Background(), agent, NewState(testRules()))
	require.NoError(t, err)

	assert.Len(t, agent.actionPrompts, 1, "no prompt after busting")
	assert.Equal(t, 26, result.Hands[0].Score)
	assert.Equal(t, OutcomeBust, result.Hands[0].Outcome)
	assert.Equal(t, 900, state.Balance)
	assert.Equal(t, 1, state.Stats.Losses)

	// all hands bust: the dealer reveals but never draws
	assert.False(t, result.DealerPlayed)
	assert.Len(t, result.DealerCards, 2)
	assert.Empty(t, rec.ofType(EventTypeDealerDraw))
	require.Len(t, rec.ofType(EventTypeDealerReveal), 1)
	final := rec.ofType(EventTypeDealerFinal)[0].(DealerFinalEvent)
	assert.False(t, final.Played)
}

func TestHitPromptsShowRunningScore(t *testing.T) {
	engine, _ := newStackedEngine(t, testRules(), "2s3hTd7c4c5d")
	agent := &scriptedAgent{bets: []int{10}, actions: []Action{Hit, Hit, Stand}}

	_, _, err := engine.PlayRound(context.Background(), agent, NewState(testRules()))
	require.NoError(t, err)

	require.Len(t, agent.actionPrompts, 3)
	assert.Equal(t, 5, agent.actionPrompts[0].Score)
	assert.Equal(t, 9, agent.actionPrompts[1].Score)
	assert.Equal(t, 14, agent.actionPrompts[2].Score)
	assert.Equal(t, "10♦", agent.actionPrompts[2].DealerUp.String())
	assert.Equal(t, []Action{Hit, Stand}, agent.actionPrompts[1].Actions)
}

func TestIllegalActionAbortsRound(t *testing.T) {
	engine, _ := newStackedEngine(t, testRules(), "Ts6hTd7c")
	agent := &scriptedAgent{bets: []int{1000}, actions: []Action{Double}}

	start := NewState(testRules())
	state, result, err := engine.PlayRound(context.Background(), agent, start)
	require.ErrorIs(t, err, ErrIllegalAction)
	assert.Nil(t, result)
	assert.Equal(t, start, state)
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "hit", Hit.String())
	assert.Equal(t, "stand", Stand.String())
	assert.Equal(t, "double", Double.String())
	assert.Equal(t, "unknown", Action(42).String())
}
