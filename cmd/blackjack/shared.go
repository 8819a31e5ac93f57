package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/history"
)

// resolveConfig loads the config file and applies flag overrides
func (c *CLI) resolveConfig() (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}

	if c.Decks != 0 {
		cfg.Rules.NumDecks = c.Decks
	}
	if c.Penetration != 0 {
		cfg.Rules.Penetration = c.Penetration
	}
	if c.MaxResplits >= 0 {
		cfg.Rules.MaxResplits = c.MaxResplits
	}
	if c.Balance != 0 {
		cfg.Rules.StartingBalance = c.Balance
	}
	if c.LogFile != "" {
		cfg.LogFile = c.LogFile
	}
	if c.History != "" {
		cfg.HistoryFile = c.History
	}
	if c.Debug {
		cfg.LogLevel = log.DebugLevel
	}

	if err := cfg.Rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}
	return cfg, nil
}

// fileLogger logs to the configured file so log lines never interleave
// with the game. The returned closer must be called on exit.
func fileLogger(cfg *config.Config) (*log.Logger, io.Closer, error) {
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "blackjack",
		Level:           cfg.LogLevel,
	})
	return logger, f, nil
}

// newEngine builds the engine and, when a history file is configured, a
// recorder attached to it.
func (c *CLI) newEngine(cfg *config.Config, logger *log.Logger) (*game.Engine, *history.Recorder, error) {
	engine, err := game.NewEngine(cfg.Rules,
		game.WithSeed(c.Seed),
		game.WithLogger(logger),
	)
	if err != nil {
		return nil, nil, err
	}

	var rec *history.Recorder
	if cfg.HistoryFile != "" {
		rec = history.NewRecorder(nil)
		rec.Attach(engine.EventBus())
	}
	logger.Info("Engine ready", "decks", cfg.Rules.NumDecks, "penetration", cfg.Rules.Penetration,
		"max_resplits", cfg.Rules.MaxResplits, "balance", cfg.Rules.StartingBalance, "seed", c.Seed)
	return engine, rec, nil
}

func exportHistory(rec *history.Recorder, filename string, logger *log.Logger) error {
	if rec == nil {
		return nil
	}
	if err := rec.Export(filename); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	logger.Info("History written", "file", filename, "rounds", rec.Len())
	return nil
}
