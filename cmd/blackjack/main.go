package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`

	Config      string  `short:"c" default:"blackjack.hcl" type:"path" help:"HCL config file (ignored if missing)"`
	Decks       int     `help:"Decks in the shoe (overrides config)"`
	Penetration float64 `help:"Reshuffle once this fraction of the shoe is left (overrides config)"`
	MaxResplits int     `default:"-1" help:"Split while the hand count is at most this (overrides config)"`
	Balance     int     `help:"Starting balance (overrides config)"`
	Seed        int64   `default:"0" help:"Shoe RNG seed (0 for random)"`
	LogFile     string  `type:"path" help:"Log file for interactive play (overrides config)"`
	Debug       bool    `short:"d" help:"Debug logging"`
	History     string  `type:"path" help:"Write a JSON history of every round here on exit"`

	Play     PlayCmd     `cmd:"" default:"withargs" help:"Play at the console (default)"`
	TUI      TUICmd      `cmd:"" name:"tui" help:"Play in a full-screen terminal UI"`
	Simulate SimulateCmd `cmd:"" help:"Play many rounds with a scripted strategy and report results"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blackjack"),
		kong.Description("Single-player blackjack against the house"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli)
	ctx.FatalIfErrorf(err)
}
