package statistics

import (
	"fmt"
	"math"
	"sort"
)

// RoundResult is the outcome of one round from the player's point of view
type RoundResult struct {
	Net        int  // Balance change over the round
	Wagered    int  // Total stake reserved (bet + splits + doubles)
	Hands      int  // Player hands settled (1 + splits)
	Natural    bool // Resolved by the opening blackjack check
	Split      bool
	Doubled    bool
	DealerBust bool
}

// Statistics accumulates round results over a simulation run
type Statistics struct {
	Rounds  int
	SumNet  float64
	SumNet2 float64   // Sum of squares for variance calculation
	Values  []float64 // All net results for median/percentile calculation

	Wagered int

	NaturalRounds int     // Rounds settled by the opening blackjack check
	NaturalNet    float64 // Net from natural rounds
	PlayedNet     float64 // Net from rounds that went through the action loop
	AllNet        float64 // Total net for the ledger check

	SplitRounds   int
	SplitNet      float64
	DoubledRounds int
	DoubledNet    float64
	DealerBusts   int
	HandsPlayed   int

	BiggestWin  int
	BiggestLoss int
}

// Add incorporates a round result into the statistics
func (s *Statistics) Add(result RoundResult) {
	net := float64(result.Net)
	s.Rounds++
	s.SumNet += net
	s.SumNet2 += net * net
	s.Values = append(s.Values, net)
	s.Wagered += result.Wagered
	s.HandsPlayed += result.Hands

	if result.Natural {
		s.NaturalRounds++
		s.NaturalNet += net
	} else {
		s.PlayedNet += net
	}
	s.AllNet += net

	if result.Split {
		s.SplitRounds++
		s.SplitNet += net
	}
	if result.Doubled {
		s.DoubledRounds++
		s.DoubledNet += net
	}
	if result.DealerBust {
		s.DealerBusts++
	}

	if result.Net > s.BiggestWin {
		s.BiggestWin = result.Net
	}
	if result.Net < s.BiggestLoss {
		s.BiggestLoss = result.Net
	}
}

// Mean returns the mean net result per round
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumNet / float64(s.Rounds)
}

// Variance returns the sample variance of net results
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumNet2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// ReturnOnWagered is total net divided by total stake put at risk
func (s *Statistics) ReturnOnWagered() float64 {
	if s.Wagered == 0 {
		return 0
	}
	return s.AllNet / float64(s.Wagered)
}

// Median returns the median net result
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// IsLedgerBalanced checks natural and played buckets add up to the total
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.AllNet-s.NaturalNet-s.PlayedNet) <= 1e-6
}

// Validate performs consistency checks on the accumulated data
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: AllNet=%.2f, NaturalNet=%.2f, PlayedNet=%.2f",
			s.AllNet, s.NaturalNet, s.PlayedNet)
	}
	if s.Rounds <= 0 {
		return fmt.Errorf("invalid rounds count: %d", s.Rounds)
	}
	if len(s.Values) != s.Rounds {
		return fmt.Errorf("values array length (%d) does not match rounds count (%d)",
			len(s.Values), s.Rounds)
	}
	if s.HandsPlayed < s.Rounds {
		return fmt.Errorf("hands played (%d) is less than rounds (%d)", s.HandsPlayed, s.Rounds)
	}
	if s.NaturalRounds > s.Rounds {
		return fmt.Errorf("natural rounds (%d) exceeds total rounds (%d)", s.NaturalRounds, s.Rounds)
	}
	return nil
}
