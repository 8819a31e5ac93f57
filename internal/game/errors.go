package game

import "errors"

var (
	// ErrInvalidBet is returned when an agent bets outside 1..balance
	ErrInvalidBet = errors.New("invalid bet")

	// ErrIllegalAction is returned when an agent picks an action it was not offered
	ErrIllegalAction = errors.New("illegal action")

	// ErrQuit may be returned by an agent at any decision point to end the session
	ErrQuit = errors.New("player quit")
)
