// Package messagebox renders titled message boxes.
package messagebox

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// Styles holds the styles needed by the message box.
type Styles struct {
	Title  lipgloss.Style
	Muted  lipgloss.Style
	Border lipgloss.Style
}

// DefaultStyles returns default styles for the message box.
func DefaultStyles() Styles {
	return Styles{
		Title:  lipgloss.NewStyle().Bold(true),
		Muted:  lipgloss.NewStyle().Faint(true),
		Border: lipgloss.NewStyle(),
	}
}

// Model defines state for the message box component.
type Model struct {
	styles  Styles
	title   string
	message string
	width   int
	height  int
}

// Option is used to set options in New.
type Option func(*Model)

// New creates a new message box model.
func New(opts ...Option) Model {
	m := Model{
		styles: DefaultStyles(),
		height: 5,
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

// WithTitle sets the title.
func WithTitle(title string) Option {
	return func(m *Model) {
		m.title = title
	}
}

// WithMessage sets the message.
func WithMessage(msg string) Option {
	return func(m *Model) {
		m.message = msg
	}
}

// WithSize sets the width and height.
func WithSize(w, h int) Option {
	return func(m *Model) {
		m.width = w
		m.height = h
	}
}

// SetStyles sets the styles.
func (m *Model) SetStyles(s Styles) {
	m.styles = s
}

// SetTitle sets the title.
func (m *Model) SetTitle(title string) {
	m.title = title
}

// SetMessage sets the message.
func (m *Model) SetMessage(msg string) {
	m.message = msg
}

// SetSize sets the width and height.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Width returns the current width.
func (m Model) Width() int {
	return m.width
}

// Height returns the current height.
func (m Model) Height() int {
	return m.height
}

// Title returns the current title.
func (m Model) Title() string {
	return m.title
}

// Message returns the current message.
func (m Model) Message() string {
	return m.message
}

// View renders the message box. Multi-line messages are centered as a block.
func (m Model) View() string {
	if m.width < 2 {
		return ""
	}
	height := max(m.height, 5)

	border := lipgloss.RoundedBorder()
	innerWidth := m.width - 2

	// Top border with title
	styledTitle := ""
	if m.title != "" {
		styledTitle = m.styles.Title.Render(" " + m.title + " ")
		if lipgloss.Width(styledTitle) > innerWidth-1 {
			styledTitle = ""
		}
	}
	titleWidth := lipgloss.Width(styledTitle)
	leftPad := min(1, innerWidth)
	rightPad := max(innerWidth-titleWidth-leftPad, 0)

	hBar := m.styles.Border.Render(border.Top)
	topBorder := m.styles.Border.Render(border.TopLeft) +
		strings.Repeat(hBar, leftPad) +
		styledTitle +
		strings.Repeat(hBar, rightPad) +
		m.styles.Border.Render(border.TopRight)

	vBar := m.styles.Border.Render(border.Left)
	vBarRight := m.styles.Border.Render(border.Right)

	contentHeight := height - 2
	msgLines := strings.Split(m.message, "\n")
	if len(msgLines) > contentHeight {
		msgLines = msgLines[:contentHeight]
	}
	startRow := (contentHeight - len(msgLines)) / 2

	middleLines := make([]string, 0, contentHeight)
	for i := range contentHeight {
		line := strings.Repeat(" ", innerWidth)
		if idx := i - startRow; idx >= 0 && idx < len(msgLines) {
			text := m.styles.Muted.Render(ansi.Truncate(msgLines[idx], innerWidth, "…"))
			textWidth := lipgloss.Width(text)
			leftPadding := max((innerWidth-textWidth)/2, 0)
			rightPadding := max(innerWidth-leftPadding-textWidth, 0)
			line = strings.Repeat(" ", leftPadding) + text + strings.Repeat(" ", rightPadding)
		}
		middleLines = append(middleLines, vBar+line+vBarRight)
	}

	bottomBorder := m.styles.Border.Render(border.BottomLeft) +
		strings.Repeat(hBar, innerWidth) +
		m.styles.Border.Render(border.BottomRight)

	return topBorder + "\n" + strings.Join(middleLines, "\n") + "\n" + bottomBorder
}

// Render renders a message box without keeping a Model around.
func Render(styles Styles, title, message string, width, height int) string {
	m := New(
		WithStyles(styles),
		WithTitle(title),
		WithMessage(message),
		WithSize(width, height),
	)
	return m.View()
}
