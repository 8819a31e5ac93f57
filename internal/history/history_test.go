package history

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
)

// tickingAgent bets 100, always stands and advances the clock a minute
// between rounds.
type tickingAgent struct {
	clock  *quartz.Mock
	rounds int
}

func (a *tickingAgent) PlaceBet(context.Context, int) (int, error) { return 100, nil }

func (a *tickingAgent) ChooseSplit(context.Context, game.SplitPrompt) (bool, error) {
	return false, nil
}

func (a *tickingAgent) ChooseAction(context.Context, game.ActionPrompt) (game.Action, error) {
	return game.Stand, nil
}

func (a *tickingAgent) PlayAgain(ctx context.Context, _ game.State) (bool, error) {
	a.rounds--
	if a.rounds <= 0 {
		return false, nil
	}
	a.clock.Advance(time.Minute).MustWait(ctx)
	return true, nil
}

func TestRecorderFollowsSession(t *testing.T) {
	ctx := context.Background()
	mockClock := quartz.NewMock(t)
	start := mockClock.Now()

	rules := game.Rules{NumDecks: 1, Penetration: 0.01, MaxResplits: 3, StartingBalance: 1000}
	// Round one is a natural, round two is 19 against the dealer's 17.
	shoe := deck.NewStackedShoe(deck.MustParseCards("AsKh9c7d Tc9hTs7d"))
	rounds := 0
	engine, err := game.NewEngine(rules,
		game.WithShoe(shoe),
		game.WithIDGenerator(func() string {
			rounds++
			return []string{"", "first", "second"}[rounds]
		}),
	)
	require.NoError(t, err)

	rec := NewRecorder(mockClock)
	rec.Attach(engine.EventBus())

	final, err := game.NewSession(engine, &tickingAgent{clock: mockClock, rounds: 2}).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1250, final.Balance)

	records := rec.records()
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "first", first.ID)
	assert.True(t, first.Natural)
	assert.Equal(t, start, first.SettledAt)
	assert.Equal(t, 150, first.Net)
	require.Len(t, first.Hands, 1)
	assert.Equal(t, "blackjack", first.Hands[0].Outcome)
	assert.Equal(t, []string{"A♠", "K♥"}, first.Hands[0].Cards)

	second := records[1]
	assert.Equal(t, "second", second.ID)
	assert.Equal(t, start.Add(time.Minute), second.SettledAt)
	assert.Equal(t, 1150, second.BalanceBefore)
	assert.Equal(t, 1250, second.BalanceAfter)
	assert.Equal(t, 17, second.DealerScore)
	assert.Equal(t, "win", second.Hands[0].Outcome)
	assert.Equal(t, 200, second.Hands[0].Payout)
}

func TestRecorderIgnoresOtherEvents(t *testing.T) {
	rec := NewRecorder(quartz.NewMock(t))
	rec.OnEvent(game.RoundStartEvent{RoundID: "x", Bet: 10})
	rec.OnEvent(game.RoundEndEvent{})
	assert.Zero(t, rec.Len())
}

func TestExport(t *testing.T) {
	mockClock := quartz.NewMock(t)
	rec := NewRecorder(mockClock)

	rec.OnEvent(game.RoundEndEvent{
		Result: &game.RoundResult{
			ID:  "r1",
			Bet: 50,
			Hands: []game.HandResult{{
				Cards:   deck.MustParseCards("Th8c"),
				Score:   18,
				Stake:   50,
				Outcome: game.OutcomeLoss,
			}},
			DealerCards:   deck.MustParseCards("9dTs"),
			DealerScore:   19,
			DealerPlayed:  true,
			BalanceBefore: 1000,
			BalanceAfter:  950,
		},
		State: game.State{Balance: 950},
	})
	rec.OnEvent(game.SessionEndEvent{Reason: game.EndReasonStopped, State: game.State{Balance: 950}})

	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, rec.Export(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc Export
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, game.EndReasonStopped, doc.EndReason)
	assert.Equal(t, 950, doc.Balance)
	assert.Equal(t, "0/0/0/0/0", doc.FinalStats)
	require.Len(t, doc.Rounds, 1)
	assert.Equal(t, -50, doc.Rounds[0].Net)
	assert.Equal(t, []string{"9♦", "10♠"}, doc.Rounds[0].DealerCards)
}
