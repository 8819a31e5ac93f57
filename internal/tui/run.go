package tui

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjack/internal/console"
	"github.com/lox/blackjack/internal/game"
)

// lineWriter turns console output into messages for the program. Complete
// lines become commentary; a trailing partial line is a prompt.
type lineWriter struct {
	mu      sync.Mutex
	send    func(tea.Msg)
	partial []byte
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.partial = append(w.partial, p...)
	for {
		i := bytes.IndexByte(w.partial, '\n')
		if i < 0 {
			break
		}
		w.send(lineMsg(w.partial[:i]))
		w.partial = w.partial[i+1:]
	}
	if len(w.partial) > 0 {
		w.send(promptMsg(w.partial))
		w.partial = nil
	}
	return len(p), nil
}

// statusForwarder keeps the sidebar in step with the engine
type statusForwarder struct {
	send   func(tea.Msg)
	status statusMsg
}

func (f *statusForwarder) OnEvent(event game.GameEvent) {
	switch e := event.(type) {
	case game.RoundStartEvent:
		f.status.Round = e.RoundID
		f.status.Bet = e.Bet
		f.status.Balance = e.Balance
		f.status.Settled = false
	case game.RoundEndEvent:
		f.status.Balance = e.State.Balance
		f.status.Stats = e.State.Stats
		f.status.Settled = true
	default:
		return
	}
	f.send(f.status)
}

// Run plays a session on engine in a full-screen program. The engine runs
// in its own goroutine and blocks on the player's typed answers.
func Run(ctx context.Context, engine *game.Engine, logger *log.Logger, opts ...tea.ProgramOption) (game.State, error) {
	g, ctx := errgroup.WithContext(ctx)

	answers, answerWriter := io.Pipe()
	model := NewModel(answerWriter, logger)
	program := tea.NewProgram(model, append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)...)

	out := &lineWriter{send: program.Send}
	styles := console.NewStylesFor(lipgloss.DefaultRenderer())
	status := &statusForwarder{send: program.Send}
	engine.EventBus().Subscribe(console.NewRenderer(out, styles))
	engine.EventBus().Subscribe(status)

	session := game.NewSession(engine, console.NewAgent(answers, out, styles, logger))
	status.status.Balance = session.State().Balance
	model.status = status.status

	var (
		final      game.State
		sessionErr error
	)
	g.Go(func() error {
		// Closing the pipe ends the session if the player leaves mid-round
		defer answerWriter.Close()
		if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		// A failed session stays on screen until the player leaves
		final, sessionErr = playSession(ctx, session, program.Send, logger)
		return nil
	})

	if err := g.Wait(); err != nil {
		return final, err
	}
	return final, sessionErr
}

// playSession runs the session and tells the program it is over
func playSession(ctx context.Context, session *game.Session, send func(tea.Msg), logger *log.Logger) (game.State, error) {
	final, err := session.Run(ctx)
	if err != nil {
		logger.Error("Session aborted", "error", err)
	}
	send(sessionOverMsg{Err: err})
	return final, err
}
