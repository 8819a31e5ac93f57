// Package tui plays blackjack in a full-screen terminal UI. The table
// commentary and prompts come from the console package; this package only
// lays them out and feeds typed answers back.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/statistics"
)

const (
	paneLog = iota
	paneInput
)

const sidebarWidth = 28

// lineMsg is one finished line of table commentary
type lineMsg string

// promptMsg is a question waiting for an answer
type promptMsg string

// statusMsg refreshes the sidebar
type statusMsg struct {
	Round   string
	Bet     int
	Balance int
	Stats   statistics.Counters
	Settled bool
}

// sessionOverMsg is sent once the session has finished
type sessionOverMsg struct {
	Err error
}

// Model is the Bubble Tea model for a blackjack session
type Model struct {
	logger  *log.Logger
	answers io.Writer

	logViewport viewport.Model
	input       textinput.Model
	focusedPane int

	lines  []string
	prompt string
	status statusMsg
	over   bool

	width    int
	height   int
	quitting bool
}

// NewModel creates a model that writes submitted answers to answers
func NewModel(answers io.Writer, logger *log.Logger) *Model {
	vp := viewport.New(10, 5)

	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 32
	ti.Width = 32
	ti.PromptStyle = PromptStyle
	ti.TextStyle = InputStyle
	ti.Prompt = "> "
	ti.Placeholder = "waiting for the dealer"

	return &Model{
		logger:      logger.WithPrefix("tui"),
		answers:     answers,
		logViewport: vp,
		input:       ti,
		focusedPane: paneInput,
	}
}

// Init initializes the TUI model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Resized", "width", m.width, "height", m.height)

	case lineMsg:
		m.appendLine(string(msg))

	case promptMsg:
		m.prompt = string(msg)
		m.input.Prompt = strings.TrimLeft(m.prompt, "\n")
		m.input.Placeholder = ""

	case statusMsg:
		m.status = msg

	case sessionOverMsg:
		m.over = true
		m.prompt = ""
		m.input.Prompt = "> "
		if msg.Err != nil {
			m.appendLine(fmt.Sprintf("Session aborted: %v", msg.Err))
		}
		m.input.Placeholder = "press Enter to leave the table"

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "tab":
			if m.focusedPane == paneLog {
				m.focusedPane = paneInput
				m.input.Focus()
			} else {
				m.focusedPane = paneLog
				m.input.Blur()
			}
		case "enter":
			if m.focusedPane == paneInput {
				if cmd := m.submit(); cmd != nil {
					return m, cmd
				}
			}
		case "up", "k":
			if m.focusedPane == paneLog {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == paneLog {
				m.logViewport.ScrollDown(1)
			}
		case "home", "g":
			if m.focusedPane == paneLog {
				m.logViewport.GotoTop()
			}
		case "end", "G":
			if m.focusedPane == paneLog {
				m.logViewport.GotoBottom()
			}
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == paneInput {
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit sends the typed answer to the waiting prompt and echoes it
func (m *Model) submit() tea.Cmd {
	if m.over {
		m.quitting = true
		return tea.Quit
	}
	if m.prompt == "" {
		return nil
	}

	answer := strings.TrimSpace(m.input.Value())
	m.appendLine(strings.TrimLeft(m.prompt, "\n") + answer)
	m.prompt = ""
	m.input.Prompt = "> "
	m.input.SetValue("")

	w := m.answers
	return func() tea.Msg {
		if _, err := io.WriteString(w, answer+"\n"); err != nil {
			m.logger.Debug("Answer dropped", "error", err)
		}
		return nil
	}
}

func (m *Model) appendLine(line string) {
	m.lines = append(m.lines, line)
	m.logViewport.SetContent(strings.Join(m.lines, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// transcript returns the commentary shown so far
func (m *Model) transcript() []string {
	return append([]string(nil), m.lines...)
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	actionContent := m.renderActionPane()
	actionHeight := lipgloss.Height(actionContent)
	actionPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.borderFor(paneInput)).
		Width(max(m.width-2, 1)).
		Height(max(actionHeight, 1)).
		Render(actionContent)

	paneHeight := max(m.height-actionHeight-4, 1)
	sidebar := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(blurredBorder).
		Width(sidebarWidth).
		Height(paneHeight).
		Render(m.renderSidebar())

	m.logViewport.Width = max(m.width-sidebarWidth-4, 1)
	m.logViewport.Height = paneHeight
	logPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.borderFor(paneLog)).
		Width(m.logViewport.Width).
		Height(paneHeight).
		Render(m.logViewport.View())

	top := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebar)
	return lipgloss.JoinVertical(lipgloss.Top, top, actionPane)
}

func (m *Model) borderFor(pane int) lipgloss.Color {
	if m.focusedPane == pane {
		return focusedBorder
	}
	return blurredBorder
}

func (m *Model) renderSidebar() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(" Blackjack "))
	b.WriteString("\n\n")
	b.WriteString(BalanceStyle.Render(fmt.Sprintf("Balance: $%d", m.status.Balance)))
	b.WriteString("\n")
	if m.status.Round != "" && !m.status.Settled {
		b.WriteString(fmt.Sprintf("Bet: $%d\n", m.status.Bet))
		b.WriteString(InfoStyle.Render("Round " + m.status.Round))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	s := m.status.Stats
	b.WriteString(StatsStyle.Render(fmt.Sprintf(
		"Rounds     %d\nWins       %d\nLosses     %d\nPushes     %d\nBlackjacks %d",
		s.Rounds, s.Wins, s.Losses, s.Pushes, s.Blackjacks)))
	return b.String()
}

func (m *Model) renderActionPane() string {
	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.focusedPane == paneLog {
		b.WriteString(InfoStyle.Render("Log focused: ↑↓ scroll, Home/End, Tab to input"))
	} else {
		b.WriteString(InfoStyle.Render("Tab to scroll log • Enter to submit • q to leave • Ctrl+C to quit"))
	}
	return b.String()
}
