package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/simulator"
)

type SimulateCmd struct {
	Rounds   int           `default:"100000" help:"Number of rounds to simulate"`
	Strategy string        `default:"conservative" enum:"random,dealer,conservative" help:"Player strategy: random, dealer, conservative"`
	Bet      int           `default:"10" help:"Flat bet per round"`
	Timeout  time.Duration `default:"5s" help:"Per-round hang detection timeout"`
	Progress bool          `short:"p" help:"Print a dot per batch of rounds while running"`
}

func (s *SimulateCmd) Run(cli *CLI) error {
	cfg, err := cli.resolveConfig()
	if err != nil {
		return err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "simulate",
		Level:           cfg.LogLevel,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var monitor simulator.Monitor
	if s.Progress {
		monitor = simulator.NewDotsMonitor(os.Stderr, 400)
	}

	start := time.Now()
	report, err := simulator.New(simulator.Config{
		Rounds:   s.Rounds,
		Strategy: s.Strategy,
		Bet:      s.Bet,
		Seed:     cli.Seed,
		Rules:    cfg.Rules,
		Timeout:  s.Timeout,
		Logger:   logger,
		Monitor:  monitor,
	}).Run(ctx)
	if err != nil {
		return err
	}

	simulator.PrintSummary(os.Stdout, report)
	logger.Info("Done", "elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}
