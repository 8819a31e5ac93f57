package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/blackjack/internal/console"
	"github.com/lox/blackjack/internal/game"
)

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Padding(0, 1).
	Bold(true)

type PlayCmd struct{}

func (p *PlayCmd) Run(cli *CLI) error {
	cfg, err := cli.resolveConfig()
	if err != nil {
		return err
	}
	logger, closer, err := fileLogger(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	engine, rec, err := cli.newEngine(cfg, logger)
	if err != nil {
		return err
	}

	styles := console.NewStyles(os.Stdout)
	engine.EventBus().Subscribe(console.NewRenderer(os.Stdout, styles))
	agent := console.NewAgent(os.Stdin, os.Stdout, styles, logger)

	fmt.Println(titleStyle.Render(" ♠ ♥ Casino Blackjack ♦ ♣ "))
	fmt.Printf("Starting balance: $%d\n\n", cfg.Rules.StartingBalance)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, runErr := game.NewSession(engine, agent).Run(ctx)
	if err := exportHistory(rec, cfg.HistoryFile, logger); err != nil {
		logger.Error("History export failed", "error", err)
		if runErr == nil {
			runErr = err
		}
	}
	return runErr
}
