// Package navbar renders the bottom key hint bar.
package navbar

import (
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// Styles holds the styles needed by the navbar.
type Styles struct {
	Bar   lipgloss.Style
	Brand lipgloss.Style
	Key   lipgloss.Style
	Item  lipgloss.Style
	Quit  lipgloss.Style
}

// DefaultStyles returns default styles for the navbar.
func DefaultStyles() Styles {
	return Styles{
		Bar:   lipgloss.NewStyle(),
		Brand: lipgloss.NewStyle().Bold(true),
		Key:   lipgloss.NewStyle().Padding(0, 1),
		Item:  lipgloss.NewStyle().PaddingRight(1),
		Quit:  lipgloss.NewStyle().PaddingRight(1),
	}
}

// Model defines state for the navbar component.
type Model struct {
	styles Styles
	brand  string
	hints  []key.Binding
	help   key.Binding
	quit   key.Binding
	width  int
}

// Option is used to set options in New.
type Option func(*Model)

// New creates a new navbar model.
func New(opts ...Option) Model {
	m := Model{
		styles: DefaultStyles(),
		quit:   key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
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

// WithBrand sets the application name shown on the right.
func WithBrand(brand string) Option {
	return func(m *Model) {
		m.brand = brand
	}
}

// WithHints sets the view-specific key hints.
func WithHints(hints []key.Binding) Option {
	return func(m *Model) {
		m.hints = hints
	}
}

// WithHelp sets the help binding.
func WithHelp(help key.Binding) Option {
	return func(m *Model) {
		m.help = help
	}
}

// WithQuit sets the quit binding.
func WithQuit(quit key.Binding) Option {
	return func(m *Model) {
		m.quit = quit
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

// SetHints sets the view-specific key hints.
func (m *Model) SetHints(hints []key.Binding) {
	m.hints = hints
}

// SetWidth sets the width.
func (m *Model) SetWidth(w int) {
	m.width = w
}

// Height returns the height of the navbar (always 1).
func (m Model) Height() int {
	return 1
}

// View renders the navbar. Hints that do not fit are dropped from the end.
func (m Model) View() string {
	if m.width <= 0 {
		return ""
	}

	bindings := make([]key.Binding, 0, len(m.hints)+2)
	bindings = append(bindings, m.hints...)
	bindings = append(bindings, m.help, m.quit)

	brand := ""
	if m.brand != "" {
		brand = m.styles.Brand.Render(m.brand)
	}
	available := m.width - lipgloss.Width(brand)

	var items strings.Builder
	used := 0
	for i, binding := range bindings {
		help := binding.Help()
		if help.Key == "" {
			continue
		}
		itemStyle := m.styles.Item
		if i == len(bindings)-1 {
			itemStyle = m.styles.Quit
		}
		item := m.styles.Key.Render(help.Key) + itemStyle.Render(help.Desc)
		itemWidth := lipgloss.Width(item)
		if used+itemWidth > available {
			break
		}
		items.WriteString(item)
		used += itemWidth
	}

	left := items.String()
	gap := max(m.width-used-lipgloss.Width(brand), 0)
	line := left + strings.Repeat(" ", gap) + brand
	if lipgloss.Width(line) > m.width {
		line = ansi.Truncate(line, m.width, "")
	}
	return m.styles.Bar.Render(line)
}
