// Package errorpopup renders the connection error box shown over the active view.
package errorpopup

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

const (
	maxWidth    = 60
	defaultHint = "Please try again later."
	title       = "Connection Error"
)

// Styles holds the styles needed by the error popup.
type Styles struct {
	Title   lipgloss.Style
	Message lipgloss.Style
	Border  lipgloss.Style
}

// DefaultStyles returns default styles for the error popup.
func DefaultStyles() Styles {
	errorColor := lipgloss.Color("#FF0000")
	return Styles{
		Title:   lipgloss.NewStyle().Foreground(errorColor).Bold(true),
		Message: lipgloss.NewStyle().Faint(true),
		Border:  lipgloss.NewStyle().Foreground(errorColor),
	}
}

// Model defines state for the error popup component.
type Model struct {
	styles  Styles
	message string
	hint    string
	width   int
	height  int
}

// Option is used to set options in New.
type Option func(*Model)

// New creates a new error popup model.
func New(opts ...Option) Model {
	m := Model{
		styles: DefaultStyles(),
		hint:   defaultHint,
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

// WithSize sets the available width and height.
func WithSize(w, h int) Option {
	return func(m *Model) {
		m.width = w
		m.height = h
	}
}

// WithMessage sets the error message.
func WithMessage(msg string) Option {
	return func(m *Model) {
		m.message = msg
	}
}

// WithHint sets the line shown under the message.
func WithHint(hint string) Option {
	return func(m *Model) {
		m.hint = hint
	}
}

// SetStyles sets the styles.
func (m *Model) SetStyles(s Styles) {
	m.styles = s
}

// SetSize sets the available width and height.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// SetMessage sets the error message to display.
func (m *Model) SetMessage(msg string) {
	m.message = msg
}

// Message returns the current error message.
func (m Model) Message() string {
	return m.message
}

// HasError returns true if there is an error message to display.
func (m Model) HasError() bool {
	return m.message != ""
}

// View renders the popup box alone. The caller positions it.
func (m Model) View() string {
	if m.message == "" || m.width < 4 || m.height <= 0 {
		return ""
	}

	width := min(m.width, maxWidth)
	innerWidth := width - 2
	textWidth := max(innerWidth-2, 1)

	body := lipgloss.NewStyle().Width(textWidth).Render(m.message)
	if m.hint != "" {
		body += "\n\n" + lipgloss.NewStyle().Width(textWidth).Render(m.hint)
	}

	border := lipgloss.RoundedBorder()
	lines := []string{m.topBorder(border, width)}

	vBar := m.styles.Border.Render(border.Left)
	vBarRight := m.styles.Border.Render(border.Right)
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimRight(line, " ")
		if ansi.StringWidth(line) > textWidth {
			line = ansi.Truncate(line, textWidth, "…")
		}
		pad := textWidth - ansi.StringWidth(line)
		lines = append(lines, vBar+" "+m.styles.Message.Render(line)+strings.Repeat(" ", pad)+" "+vBarRight)
	}

	bottom := m.styles.Border.Render(border.BottomLeft + strings.Repeat(border.Bottom, innerWidth) + border.BottomRight)
	lines = append(lines, bottom)

	if len(lines) > m.height {
		lines = append(lines[:m.height-1], bottom)
		if m.height == 1 {
			lines = lines[:1]
		}
	}

	return strings.Join(lines, "\n")
}

func (m Model) topBorder(border lipgloss.Border, width int) string {
	titleText := " " + title + " "
	remaining := width - 2 - ansi.StringWidth(titleText) - 1
	if remaining < 0 {
		return m.styles.Border.Render(border.TopLeft + strings.Repeat(border.Top, width-2) + border.TopRight)
	}
	return m.styles.Border.Render(border.TopLeft+border.Top) +
		m.styles.Title.Render(titleText) +
		m.styles.Border.Render(strings.Repeat(border.Top, remaining)+border.TopRight)
}
