// Package pager renders a page link window as a single centered line.
package pager

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/lccn-predictor/lazyrating/internal/pagination"
	"github.com/lccn-predictor/lazyrating/internal/ui/charts"
)

// Styles holds the styles needed by the pager.
type Styles struct {
	Active   lipgloss.Style
	Page     lipgloss.Style
	Disabled lipgloss.Style
	Muted    lipgloss.Style
}

// DefaultStyles returns default styles for the pager.
func DefaultStyles() Styles {
	return Styles{
		Active:   lipgloss.NewStyle().Bold(true),
		Page:     lipgloss.NewStyle(),
		Disabled: lipgloss.NewStyle().Faint(true),
		Muted:    lipgloss.NewStyle().Faint(true),
	}
}

// Model defines state for the pager component.
type Model struct {
	styles Styles
	links  pagination.Links
	width  int
}

// Option is used to set options in New.
type Option func(*Model)

// New creates a new pager model.
func New(opts ...Option) Model {
	m := Model{
		styles: DefaultStyles(),
		links:  pagination.Window(0, 1, 1),
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

// WithLinks sets the page window.
func WithLinks(links pagination.Links) Option {
	return func(m *Model) {
		m.links = links
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

// SetLinks sets the page window.
func (m *Model) SetLinks(links pagination.Links) {
	m.links = links
}

// SetWidth sets the width.
func (m *Model) SetWidth(w int) {
	m.width = w
}

// Links returns the current page window.
func (m Model) Links() pagination.Links {
	return m.links
}

// Height returns the height of the pager (always 1).
func (m Model) Height() int {
	return 1
}

// View renders the pager. The page counter is dropped first when space runs out.
func (m Model) View() string {
	if m.width <= 0 || len(m.links.Items) == 0 {
		return ""
	}

	parts := make([]string, 0, len(m.links.Items))
	for _, link := range m.links.Items {
		parts = append(parts, m.renderLink(link))
	}
	line := strings.Join(parts, " ")

	counter := m.styles.Muted.Render(fmt.Sprintf("page %d of %d", m.links.Current, m.links.MaxPage))
	if full := line + "  " + counter; lipgloss.Width(full) <= m.width {
		line = full
	}

	return charts.CenterLabel(line, m.width)
}

func (m Model) renderLink(link pagination.Link) string {
	var label string
	switch link.Kind {
	case pagination.KindFirst:
		label = "«"
	case pagination.KindLast:
		label = "»"
	case pagination.KindActive:
		return m.styles.Active.Render("[" + strconv.Itoa(link.Page) + "]")
	default:
		label = strconv.Itoa(link.Page)
	}
	if link.Disabled {
		return m.styles.Disabled.Render(label)
	}
	return m.styles.Page.Render(label)
}
