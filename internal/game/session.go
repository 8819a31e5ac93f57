package game

import (
	"context"
	"errors"
)

// Reasons a session ends
const (
	EndReasonBroke   = "broke"
	EndReasonStopped = "stopped"
	EndReasonQuit    = "quit"
)

// Session runs rounds back to back until the player stops, quits or runs
// out of money.
type Session struct {
	engine *Engine
	agent  Agent
	state  State
}

// NewSession starts a session at the rules' starting balance
func NewSession(engine *Engine, agent Agent) *Session {
	return &Session{
		engine: engine,
		agent:  agent,
		state:  NewState(engine.Rules()),
	}
}

// State returns the session's current state
func (s *Session) State() State {
	return s.state
}

// Run plays rounds until the session ends and returns the final state.
// ErrQuit from the agent ends the session cleanly; the round it interrupted
// is void. Any other error is returned with the state as of the last
// settled round.
func (s *Session) Run(ctx context.Context) (State, error) {
	for {
		if s.state.Broke() {
			return s.end(EndReasonBroke), nil
		}

		next, _, err := s.engine.PlayRound(ctx, s.agent, s.state)
		if errors.Is(err, ErrQuit) {
			return s.end(EndReasonQuit), nil
		}
		if err != nil {
			return s.state, err
		}
		s.state = next

		if s.state.Broke() {
			return s.end(EndReasonBroke), nil
		}

		again, err := s.agent.PlayAgain(ctx, s.state)
		if errors.Is(err, ErrQuit) {
			return s.end(EndReasonQuit), nil
		}
		if err != nil {
			return s.state, err
		}
		if !again {
			return s.end(EndReasonStopped), nil
		}
	}
}

func (s *Session) end(reason string) State {
	s.engine.logger.Info("Session over", "reason", reason, "balance", s.state.Balance, "stats", s.state.Stats)
	s.engine.bus.Publish(SessionEndEvent{Reason: reason, State: s.state})
	return s.state
}
