package simulator

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Monitor observes a running simulation
type Monitor interface {
	OnRoundComplete(round, total, net int)
	OnComplete(rounds int)
}

var (
	dotWin  = lipgloss.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Render("●")
	dotLoss = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Render("●")
	dotEven = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")).Render("●")
)

// DotsMonitor prints one dot per batch of rounds: green when the batch
// came out ahead, red when it lost and grey when it broke even.
type DotsMonitor struct {
	mu        sync.Mutex
	writer    io.Writer
	maxDots   int
	lineWidth int

	batchNet  int
	dotCount  int
	batchSize int
}

// NewDotsMonitor creates a monitor printing at most maxDots dots
func NewDotsMonitor(w io.Writer, maxDots int) *DotsMonitor {
	return &DotsMonitor{writer: w, maxDots: max(maxDots, 1), lineWidth: 80}
}

// OnRoundComplete implements Monitor
func (d *DotsMonitor) OnRoundComplete(round, total, net int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.batchSize == 0 {
		d.batchSize = max((total+d.maxDots-1)/d.maxDots, 1)
	}
	d.batchNet += net
	if round%d.batchSize != 0 && round != total {
		return
	}

	switch {
	case d.batchNet > 0:
		fmt.Fprint(d.writer, dotWin)
	case d.batchNet < 0:
		fmt.Fprint(d.writer, dotLoss)
	default:
		fmt.Fprint(d.writer, dotEven)
	}
	d.batchNet = 0
	d.dotCount++
	if d.dotCount%d.lineWidth == 0 {
		fmt.Fprintln(d.writer)
	}
}

// OnComplete implements Monitor
func (d *DotsMonitor) OnComplete(rounds int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.dotCount%d.lineWidth != 0 {
		fmt.Fprintln(d.writer)
	}
	fmt.Fprintf(d.writer, "Completed %d rounds\n", rounds)
}
