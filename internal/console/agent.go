// Package console plays blackjack over a line-oriented terminal.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/game"
)

// Agent reads the player's decisions from a line-oriented input. Invalid
// input is reported and asked again; end of input or "quit" returns
// game.ErrQuit, as does cancelling the context while a prompt waits.
type Agent struct {
	in     *bufio.Scanner
	out    io.Writer
	styles *Styles
	logger *log.Logger

	readOnce sync.Once
	lines    chan inputLine
}

type inputLine struct {
	text string
	err  error
	eof  bool
}

// NewAgent creates an agent reading from in and prompting on out
func NewAgent(in io.Reader, out io.Writer, styles *Styles, logger *log.Logger) *Agent {
	return &Agent{
		in:     bufio.NewScanner(in),
		out:    out,
		styles: styles,
		logger: logger.WithPrefix("console"),
		lines:  make(chan inputLine),
	}
}

// PlaceBet asks for a wager between 1 and balance
func (a *Agent) PlaceBet(ctx context.Context, balance int) (int, error) {
	fmt.Fprintln(a.out, Separator)
	fmt.Fprintf(a.out, "Balance: $%d\n", balance)
	return a.readInt(ctx, fmt.Sprintf("Enter bet amount (1 - %d): ", balance), 1, balance)
}

// ChooseSplit asks whether to split a pair
func (a *Agent) ChooseSplit(ctx context.Context, p game.SplitPrompt) (bool, error) {
	fmt.Fprintf(a.out, "\nHand %d: %s (split available)\n", p.HandIndex+1, a.styles.Cards(p.Cards))
	for {
		line, err := a.ask(ctx, "Do you want to split this pair? (y/n): ")
		if err != nil {
			return false, err
		}
		switch line {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		a.complain("Please answer y or n.")
	}
}

// ChooseAction asks for hit, stand or, when offered, double
func (a *Agent) ChooseAction(ctx context.Context, p game.ActionPrompt) (game.Action, error) {
	fmt.Fprintf(a.out, "Player hand: %s (score: %d)\n", a.styles.Cards(p.Cards), p.Score)
	fmt.Fprintf(a.out, "Dealer shows: %s\n", a.styles.UpCard(p.DealerUp))

	options := "(h)it, (s)tand"
	if p.CanDouble() {
		options += ", (d)ouble"
	}
	for {
		line, err := a.ask(ctx, fmt.Sprintf("Choose %s: ", options))
		if err != nil {
			return game.Stand, err
		}
		switch line {
		case "h", "hit":
			return game.Hit, nil
		case "s", "stand":
			return game.Stand, nil
		case "d", "double":
			if p.CanDouble() {
				return game.Double, nil
			}
			a.complain("Double is not available on this hand.")
			continue
		}
		a.complain(fmt.Sprintf("Please choose %s.", options))
	}
}

// PlayAgain asks whether to deal another round. Anything but yes stops.
func (a *Agent) PlayAgain(ctx context.Context, _ game.State) (bool, error) {
	line, err := a.ask(ctx, "\nPlay again? (y/n): ")
	if err != nil {
		return false, err
	}
	return line == "y" || line == "yes", nil
}

func (a *Agent) readInt(ctx context.Context, prompt string, lo, hi int) (int, error) {
	for {
		line, err := a.ask(ctx, prompt)
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(line)
		switch {
		case err != nil:
			a.complain("Please enter a valid integer.")
		case v < lo:
			a.complain(fmt.Sprintf("Must be at least %d.", lo))
		case v > hi:
			a.complain(fmt.Sprintf("Must be at most %d.", hi))
		default:
			return v, nil
		}
	}
}

// ask prints prompt and returns the next trimmed, lowercased line
func (a *Agent) ask(ctx context.Context, prompt string) (string, error) {
	if ctx.Err() != nil {
		return "", game.ErrQuit
	}
	fmt.Fprint(a.out, prompt)

	a.readOnce.Do(func() { go a.readLines() })

	var (
		in inputLine
		ok bool
	)
	select {
	case <-ctx.Done():
		a.logger.Debug("Prompt cancelled", "prompt", strings.TrimSpace(prompt), "error", ctx.Err())
		fmt.Fprintln(a.out)
		return "", game.ErrQuit
	case in, ok = <-a.lines:
		in.eof = in.eof || !ok
	}

	if in.err != nil {
		return "", fmt.Errorf("reading input: %w", in.err)
	}
	if in.eof {
		a.logger.Debug("Input closed")
		fmt.Fprintln(a.out)
		return "", game.ErrQuit
	}

	line := strings.ToLower(strings.TrimSpace(in.text))
	a.logger.Debug("Read input", "prompt", strings.TrimSpace(prompt), "input", line)
	if line == "q" || line == "quit" || line == "exit" {
		return "", game.ErrQuit
	}
	return line, nil
}

// readLines feeds the scanner into a.lines so a blocked read never holds
// up cancellation. It stops after end of input or a read error.
func (a *Agent) readLines() {
	for a.in.Scan() {
		a.lines <- inputLine{text: a.in.Text()}
	}
	a.lines <- inputLine{err: a.in.Err(), eof: true}
	close(a.lines)
}

func (a *Agent) complain(msg string) {
	fmt.Fprintln(a.out, a.styles.Paint(a.styles.Error, msg))
}
