// Package history keeps a log of settled rounds and exports it as JSON.
package history

import (
	"sync"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/fileutil"
	"github.com/lox/blackjack/internal/game"
)

// HandRecord is one settled player hand
type HandRecord struct {
	Cards   []string `json:"cards"`
	Score   int      `json:"score"`
	Stake   int      `json:"stake"`
	Doubled bool     `json:"doubled,omitempty"`
	Split   bool     `json:"split,omitempty"`
	Outcome string   `json:"outcome"`
	Payout  int      `json:"payout"`
}

// Record is one settled round
type Record struct {
	ID            string       `json:"id"`
	SettledAt     time.Time    `json:"settled_at"`
	Bet           int          `json:"bet"`
	Natural       bool         `json:"natural,omitempty"`
	Reshuffled    bool         `json:"reshuffled,omitempty"`
	Hands         []HandRecord `json:"hands"`
	DealerCards   []string     `json:"dealer_cards"`
	DealerScore   int          `json:"dealer_score"`
	BalanceBefore int          `json:"balance_before"`
	BalanceAfter  int          `json:"balance_after"`
	Net           int          `json:"net"`
}

// Export is the document written by Recorder.Export
type Export struct {
	StartedAt  time.Time `json:"started_at"`
	EndedAt    time.Time `json:"ended_at,omitzero"`
	EndReason  string    `json:"end_reason,omitempty"`
	FinalStats string    `json:"final_stats,omitempty"`
	Balance    int       `json:"balance"`
	Rounds     []Record  `json:"rounds"`
}

// Recorder subscribes to the engine's event bus and keeps every settled round
type Recorder struct {
	mu    sync.Mutex
	clock quartz.Clock
	doc   Export
}

// NewRecorder creates a recorder stamping records with clock. A nil clock
// uses the real one.
func NewRecorder(clock quartz.Clock) *Recorder {
	if clock == nil {
		clock = quartz.NewReal()
	}
	now := clock.Now()
	return &Recorder{
		clock: clock,
		doc:   Export{StartedAt: now, Rounds: []Record{}},
	}
}

// Attach subscribes the recorder to bus
func (r *Recorder) Attach(bus game.EventBus) {
	bus.Subscribe(r)
}

// OnEvent implements game.EventSubscriber
func (r *Recorder) OnEvent(event game.GameEvent) {
	switch e := event.(type) {
	case game.RoundEndEvent:
		r.add(e.Result, e.State)
	case game.SessionEndEvent:
		r.mu.Lock()
		r.doc.EndedAt = r.clock.Now()
		r.doc.EndReason = e.Reason
		r.doc.FinalStats = e.State.Stats.String()
		r.doc.Balance = e.State.Balance
		r.mu.Unlock()
	}
}

func (r *Recorder) add(res *game.RoundResult, st game.State) {
	if res == nil {
		return
	}
	rec := Record{
		ID:            res.ID,
		SettledAt:     r.clock.Now(),
		Bet:           res.Bet,
		Natural:       res.Natural,
		Reshuffled:    res.Reshuffled,
		Hands:         make([]HandRecord, 0, len(res.Hands)),
		DealerCards:   cardStrings(res.DealerCards),
		DealerScore:   res.DealerScore,
		BalanceBefore: res.BalanceBefore,
		BalanceAfter:  res.BalanceAfter,
		Net:           res.Net(),
	}
	for _, h := range res.Hands {
		rec.Hands = append(rec.Hands, HandRecord{
			Cards:   cardStrings(h.Cards),
			Score:   h.Score,
			Stake:   h.Stake,
			Doubled: h.Doubled,
			Split:   h.Split,
			Outcome: h.Outcome.String(),
			Payout:  h.Payout,
		})
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.doc.Rounds = append(r.doc.Rounds, rec)
	r.doc.Balance = st.Balance
}

// records returns a copy of the rounds recorded so far
func (r *Recorder) records() []Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Record, len(r.doc.Rounds))
	copy(out, r.doc.Rounds)
	return out
}

// Len returns the number of rounds recorded
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.doc.Rounds)
}

// Export writes the history to filename as JSON
func (r *Recorder) Export(filename string) error {
	r.mu.Lock()
	doc := r.doc
	doc.Rounds = append([]Record(nil), r.doc.Rounds...)
	r.mu.Unlock()
	return fileutil.WriteJSONAtomic(filename, doc, 0o644)
}

func cardStrings(cards []deck.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}
