package statistics

import "fmt"

// Counters are the per-session outcome tallies shown to the player. They
// only ever go up; a new session starts from the zero value.
type Counters struct {
	Rounds     int
	Wins       int
	Losses     int
	Pushes     int
	Blackjacks int
}

// String renders the counters in Rounds/Wins/Losses/Pushes/Blackjacks order
func (c Counters) String() string {
	return fmt.Sprintf("%d/%d/%d/%d/%d", c.Rounds, c.Wins, c.Losses, c.Pushes, c.Blackjacks)
}

// Hands returns the number of settled player hands
func (c Counters) Hands() int {
	return c.Wins + c.Losses + c.Pushes
}
