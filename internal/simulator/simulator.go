// Package simulator plays long headless sessions with a scripted strategy
// and collects per-round statistics.
package simulator

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/bot"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/statistics"
)

// Config holds configuration for running simulations
type Config struct {
	Rounds   int
	Strategy string
	Bet      int // Flat bet unit
	Seed     int64
	Rules    game.Rules
	Timeout  time.Duration // Per round
	Logger   *log.Logger
	Monitor  Monitor // Optional
}

// Report is the outcome of a simulation
type Report struct {
	Strategy string
	Seed     int64 // Replays the run when passed back as Config.Seed
	Stats    *statistics.Statistics
	Counters statistics.Counters
	Rebuys   int // Times the balance hit zero and was restored
	Balance  int // Balance at the end, since the last rebuy
}

// Simulator runs blackjack simulations
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.Timeout == 0 {
		config.Timeout = 5 * time.Second
	}
	if config.Bet == 0 {
		config.Bet = 10
	}
	return &Simulator{config: config}
}

// Run plays the configured number of rounds on a single shoe sequence.
// Every round must reconcile: the closing balance equals the opening
// balance less every stake plus every payout.
func (s *Simulator) Run(ctx context.Context) (*Report, error) {
	if s.config.Rounds < 1 {
		return nil, fmt.Errorf("rounds must be at least 1, got %d", s.config.Rounds)
	}
	logger := s.config.Logger.WithPrefix("simulator")

	engineLogger := s.config.Logger.With()
	if engineLogger.GetLevel() > log.DebugLevel {
		engineLogger.SetLevel(log.WarnLevel)
	}
	engine, err := game.NewEngine(s.config.Rules,
		game.WithSeed(s.config.Seed),
		game.WithLogger(engineLogger),
	)
	if err != nil {
		return nil, err
	}

	// Offset so the strategy and the shoe never share a stream
	botSeed := s.config.Seed
	if botSeed != 0 {
		botSeed++
	}
	agent, err := bot.New(s.config.Strategy, s.config.Bet, randutil.ForSeed(botSeed), s.config.Logger)
	if err != nil {
		return nil, err
	}

	report := &Report{Strategy: s.config.Strategy, Seed: s.config.Seed, Stats: &statistics.Statistics{}}
	state := game.NewState(s.config.Rules)

	logger.Info("Starting simulation", "rounds", s.config.Rounds, "strategy", s.config.Strategy,
		"bet", s.config.Bet, "seed", s.config.Seed, "decks", s.config.Rules.NumDecks)

	for i := 0; i < s.config.Rounds; i++ {
		next, result, err := s.playRoundWithTimeout(ctx, engine, agent, state)
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", i+1, err)
		}
		if !result.Reconciles() || next.Balance != result.BalanceAfter {
			return nil, fmt.Errorf("round %d (%s) does not reconcile: before=%d wagered=%d payout=%d after=%d",
				i+1, result.ID, result.BalanceBefore, result.Wagered(), result.Payout(), next.Balance)
		}

		report.Stats.Add(statistics.RoundResult{
			Net:        result.Net(),
			Wagered:    result.Wagered(),
			Hands:      len(result.Hands),
			Natural:    result.Natural,
			Split:      result.AnySplit(),
			Doubled:    result.AnyDoubled(),
			DealerBust: result.DealerBust(),
		})

		if s.config.Monitor != nil {
			s.config.Monitor.OnRoundComplete(i+1, s.config.Rounds, result.Net())
		}

		state = next
		if state.Broke() {
			report.Rebuys++
			logger.Debug("Rebuying", "round", i+1, "rebuys", report.Rebuys)
			state.Balance = s.config.Rules.StartingBalance
		}
	}

	if s.config.Monitor != nil {
		s.config.Monitor.OnComplete(report.Stats.Rounds)
	}

	if err := report.Stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	report.Counters = state.Stats
	report.Balance = state.Balance
	logger.Info("Simulation complete", "rounds", report.Stats.Rounds, "mean", report.Stats.Mean(), "rebuys", report.Rebuys)
	return report, nil
}

// playRoundWithTimeout runs a single round with hang protection
func (s *Simulator) playRoundWithTimeout(ctx context.Context, engine *game.Engine, agent game.Agent, st game.State) (game.State, *game.RoundResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	type outcome struct {
		state  game.State
		result *game.RoundResult
		err    error
	}
	done := make(chan outcome, 1)

	go func() {
		next, result, err := engine.PlayRound(ctx, agent, st)
		done <- outcome{next, result, err}
	}()

	select {
	case o := <-done:
		return o.state, o.result, o.err
	case <-ctx.Done():
		return st, nil, fmt.Errorf("round timed out after %v: %w", s.config.Timeout, ctx.Err())
	}
}

// PrintSummary writes a summary of simulation results to w
func PrintSummary(w io.Writer, r *Report) {
	stats := r.Stats
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== FINAL RESULTS (%s strategy) ===\n", r.Strategy)
	if r.Seed != 0 {
		fmt.Fprintf(w, "Seed: %d\n", r.Seed)
	}
	fmt.Fprintf(w, "Rounds played: %d (%d hands)\n", stats.Rounds, stats.HandsPlayed)
	fmt.Fprintf(w, "Rounds/Wins/Losses/Pushes/Blackjacks: %s\n", r.Counters)
	fmt.Fprintf(w, "Rebuys: %d, closing balance: %d\n", r.Rebuys, r.Balance)

	fmt.Fprintf(w, "\n=== STATISTICAL RESULTS ===\n")
	fmt.Fprintf(w, "Mean: %.4f per round\n", stats.Mean())
	fmt.Fprintf(w, "Median: %.4f per round\n", stats.Median())
	fmt.Fprintf(w, "Std Dev: %.4f\n", stats.StdDev())
	fmt.Fprintf(w, "Std Error: %.4f\n", stats.StdError())
	fmt.Fprintf(w, "95%% CI: [%.4f, %.4f] per round\n", low, high)
	fmt.Fprintf(w, "Return on wagered: %.3f%%\n", stats.ReturnOnWagered()*100)
	fmt.Fprintf(w, "Percentiles: P5=%.1f, P25=%.1f, P75=%.1f, P95=%.1f\n",
		stats.Percentile(0.05), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))
	fmt.Fprintf(w, "Biggest win: %d, biggest loss: %d\n", stats.BiggestWin, stats.BiggestLoss)

	fmt.Fprintf(w, "\n=== SOURCE ANALYSIS ===\n")
	fmt.Fprintf(w, "Naturals: %d rounds, %.2f net\n", stats.NaturalRounds, stats.NaturalNet)
	fmt.Fprintf(w, "Splits: %d rounds, %.2f net\n", stats.SplitRounds, stats.SplitNet)
	fmt.Fprintf(w, "Doubles: %d rounds, %.2f net\n", stats.DoubledRounds, stats.DoubledNet)
	fmt.Fprintf(w, "Dealer busts: %d (%.1f%%)\n", stats.DealerBusts, float64(stats.DealerBusts)/float64(stats.Rounds)*100)
}
