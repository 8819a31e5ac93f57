package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lox/blackjack/internal/tui"
)

type TUICmd struct{}

func (t *TUICmd) Run(cli *CLI) error {
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	final, runErr := tui.Run(ctx, engine, logger)
	fmt.Println(titleStyle.Render(" ♠ ♥ Casino Blackjack ♦ ♣ "))
	fmt.Printf("Final balance: $%d\n", final.Balance)
	fmt.Printf("Final stats (Rounds/Wins/Losses/Pushes/Blackjacks): %s\n", final.Stats)

	if err := exportHistory(rec, cfg.HistoryFile, logger); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}
