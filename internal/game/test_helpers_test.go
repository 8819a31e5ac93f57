package game

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/deck"
)

// scriptedAgent replays canned decisions and records what it was asked
type scriptedAgent struct {
	bets    []int
	splits  []bool
	actions []Action
	again   []bool

	// quitOnAction makes ChooseAction return ErrQuit once the script runs out
	quitOnAction bool

	splitPrompts  []SplitPrompt
	actionPrompts []ActionPrompt
}

func (a *scriptedAgent) PlaceBet(_ context.Context, balance int) (int, error) {
	if len(a.bets) == 0 {
		return 0, fmt.Errorf("no scripted bet (balance %d)", balance)
	}
	bet := a.bets[0]
	if len(a.bets) > 1 {
		a.bets = a.bets[1:]
	}
	return bet, nil
}

func (a *scriptedAgent) ChooseSplit(_ context.Context, p SplitPrompt) (bool, error) {
	a.splitPrompts = append(a.splitPrompts, p)
	if len(a.splits) == 0 {
		return false, nil
	}
	s := a.splits[0]
	a.splits = a.splits[1:]
	return s, nil
}

func (a *scriptedAgent) ChooseAction(_ context.Context, p ActionPrompt) (Action, error) {
	a.actionPrompts = append(a.actionPrompts, p)
	if len(a.actions) == 0 {
		if a.quitOnAction {
			return Stand, ErrQuit
		}
		return Stand, nil
	}
	act := a.actions[0]
	a.actions = a.actions[1:]
	return act, nil
}

func (a *scriptedAgent) PlayAgain(_ context.Context, _ State) (bool, error) {
	if len(a.again) == 0 {
		return false, nil
	}
	again := a.again[0]
	a.again = a.again[1:]
	return again, nil
}

// eventRecorder captures every published event
type eventRecorder struct {
	events []GameEvent
}

func (r *eventRecorder) OnEvent(e GameEvent) {
	r.events = append(r.events, e)
}

func (r *eventRecorder) ofType(t EventType) []GameEvent {
	var out []GameEvent
	for _, e := range r.events {
		if e.EventType() == t {
			out = append(out, e)
		}
	}
	return out
}

// testRules keep the reshuffle threshold below one card so stacked shoes
// are never replaced.
func testRules() Rules {
	return Rules{
		NumDecks:        1,
		Penetration:     0.01,
		MaxResplits:     3,
		StartingBalance: 1000,
	}
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.DebugLevel})
}

// newStackedEngine builds an engine dealing cards in the given order
func newStackedEngine(t *testing.T, rules Rules, cards string) (*Engine, *eventRecorder) {
	t.Helper()

	rec := &eventRecorder{}
	bus := NewEventBus()
	bus.Subscribe(rec)

	n := 0
	engine, err := NewEngine(rules,
		WithShoe(deck.NewStackedShoe(deck.MustParseCards(cards))),
		WithEventBus(bus),
		WithLogger(quietLogger()),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("round-%d", n)
		}),
	)
	require.NoError(t, err)
	return engine, rec
}

func hand(cards string) *Hand {
	return NewHand(deck.MustParseCards(cards)...)
}
