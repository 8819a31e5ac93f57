package console

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/blackjack/internal/deck"
)

// Styles renders console text. When the output cannot show colour every
// style is a no-op, so redirected output stays plain.
type Styles struct {
	plain bool

	Header    lipgloss.Style
	RedCard   lipgloss.Style
	BlackCard lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Info      lipgloss.Style
}

// NewStyles builds styles for w, detecting its colour profile
func NewStyles(w io.Writer) *Styles {
	return NewStylesFor(lipgloss.NewRenderer(w))
}

// NewStylesFor builds styles on an existing renderer
func NewStylesFor(r *lipgloss.Renderer) *Styles {
	return &Styles{
		plain: r.ColorProfile() == termenv.Ascii,

		Header:    r.NewStyle().Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color("#7D56F4")).Bold(true),
		RedCard:   r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		BlackCard: r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FAFAFA"}).Bold(true),
		Success:   r.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true),
		Error:     r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		Warning:   r.NewStyle().Foreground(lipgloss.Color("#FFEAA7")).Bold(true),
		Info:      r.NewStyle().Foreground(lipgloss.Color("#626262")),
	}
}

// PlainStyles never emits escape sequences
func PlainStyles() *Styles {
	return &Styles{plain: true}
}

// Paint renders text in style unless output is plain
func (s *Styles) Paint(style lipgloss.Style, text string) string {
	if s.plain {
		return text
	}
	return style.Render(text)
}

// Card renders a card in its suit colour
func (s *Styles) Card(c deck.Card) string {
	if c.IsRed() {
		return s.Paint(s.RedCard, c.String())
	}
	return s.Paint(s.BlackCard, c.String())
}

// Cards renders cards separated by spaces
func (s *Styles) Cards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = s.Card(c)
	}
	return strings.Join(parts, " ")
}

// UpCard renders the dealer's visible card with the hole card hidden
func (s *Styles) UpCard(c deck.Card) string {
	return s.Card(c) + " " + s.Paint(s.Info, "[hidden]")
}
