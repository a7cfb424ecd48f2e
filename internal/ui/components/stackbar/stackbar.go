// Package stackbar renders the view stack breadcrumb bar.
package stackbar

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

const (
	arrowLeft  = ""
	arrowRight = ""
)

// Styles holds the styles needed by the stack bar.
type Styles struct {
	Bar        lipgloss.Style
	Item       lipgloss.Style
	ArrowLeft  lipgloss.Style
	ArrowRight lipgloss.Style
}

// DefaultStyles returns default styles for the stack bar.
func DefaultStyles() Styles {
	return Styles{
		Bar:        lipgloss.NewStyle(),
		Item:       lipgloss.NewStyle().Padding(0, 1),
		ArrowLeft:  lipgloss.NewStyle(),
		ArrowRight: lipgloss.NewStyle(),
	}
}

// Model defines state for the stack bar component.
type Model struct {
	styles Styles
	stack  []string
	width  int
}

// Option is used to set options in New.
type Option func(*Model)

// New creates a new stack bar model.
func New(opts ...Option) Model {
	m := Model{
		styles: DefaultStyles(),
	}

	for _, opt := range opts {
		opt(&m)
	}

	return m
}

// WithStyles sets the styles.
func WithStyles(s Styles) Option {
	return func(m *Model) {
		m.styles = s
	}
}

// WithStack sets the stack labels, bottom of the stack first.
func WithStack(stack []string) Option {
	return func(m *Model) {
		m.stack = stack
	}
}

// WithWidth sets the width.
func WithWidth(w int) Option {
	return func(m *Model) {
		m.width = w
	}
}

// SetStyles sets the styles.
func (m *Model) SetStyles(s Styles) {
	m.styles = s
}

// SetStack sets the stack labels.
func (m *Model) SetStack(stack []string) {
	m.stack = stack
}

// SetWidth sets the width.
func (m *Model) SetWidth(w int) {
	m.width = w
}

// Height returns the height of the stack bar (always 1).
func (m Model) Height() int {
	return 1
}

// View renders the stack bar. When the breadcrumb is wider than the bar,
// the oldest entries are dropped first so the current view stays visible.
func (m Model) View() string {
	if m.width <= 0 {
		return ""
	}

	items := make([]string, len(m.stack))
	for i, label := range m.stack {
		items[i] = formatLabel(m.styles, label)
	}

	line := strings.Join(items, " ")
	for len(items) > 1 && lipgloss.Width(line) > m.width {
		items = items[1:]
		line = strings.Join(items, " ")
	}
	if lipgloss.Width(line) > m.width {
		line = ansi.Truncate(line, m.width, "")
	}

	return m.styles.Bar.Width(m.width).MaxWidth(m.width).Render(line)
}

func formatLabel(styles Styles, label string) string {
	return styles.ArrowLeft.Render(arrowLeft) + styles.Item.Render(label) + styles.ArrowRight.Render(arrowRight)
}
