// Package game implements the blackjack round engine.
//
// The main type is Engine, which owns the shoe for a session and plays one
// round at a time against a single player seat. Everything the player
// decides (bet, split, hit/stand/double, play again) is delegated to an
// Agent, so the same engine drives the console, the TUI and headless
// simulations.
//
// # Basic Usage
//
//	engine, err := game.NewEngine(game.DefaultRules(), game.WithSeed(42))
//	state, result, err := engine.PlayRound(ctx, agent, game.NewState(engine.Rules()))
//
// Balance and statistics live in State, which is passed into and returned
// from each round rather than held by the engine. A round that fails
// returns the state it was given, untouched.
//
// # Deterministic Testing
//
// Use WithShoe and deck.NewStackedShoe to control exactly which cards are
// dealt:
//
//	shoe := deck.NewStackedShoe(deck.MustParseCards("AsKh7d9c"))
//	engine, _ := game.NewEngine(rules, game.WithShoe(shoe))
//
// Cards are dealt player, player, dealer, dealer; the dealer's first card
// is the one shown face up.
//
// # Architecture
//
// A round runs through these stages in order:
//   - Opening deal and the natural blackjack check (settled immediately)
//   - Split resolution over an index cursor (split.go)
//   - The per-hand action loop (actions.go)
//   - Dealer play, skipped when every player hand has bust (dealer.go)
//   - Settlement against the dealer's final score (settlement.go)
//
// Progress is published on an EventBus so renderers never poke at engine
// internals.
package game
