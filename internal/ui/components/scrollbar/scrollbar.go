// Package scrollbar renders the vertical position indicator drawn next to
// tables whose rows overflow the viewport.
package scrollbar

import (
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/lccn-predictor/lazyrating/internal/mathutil"
)

// DefaultWidth is the number of columns a scrollbar occupies.
const DefaultWidth = 1

const (
	thumbChar = "█"
	trackChar = "░"
)

// Styles holds the styles needed for the scrollbar.
type Styles struct {
	Track lipgloss.Style
	Thumb lipgloss.Style
}

// Model is a vertical scrollbar.
type Model struct {
	styles  Styles
	width   int
	height  int
	total   int
	visible int
	offset  int
}

// Option is used to set options in New.
type Option func(*Model)

// New creates a scrollbar one column wide.
func New(opts ...Option) Model {
	m := Model{width: DefaultWidth}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// WithStyles sets the scrollbar styles.
func WithStyles(s Styles) Option {
	return func(m *Model) {
		m.styles = s
	}
}

// WithSize sets the scrollbar width and height.
func WithSize(width, height int) Option {
	return func(m *Model) {
		m.width = width
		m.height = height
	}
}

// WithRange sets the number of rows, how many of them fit the viewport and
// the index of the first visible one.
func WithRange(total, visible, offset int) Option {
	return func(m *Model) {
		m.total = total
		m.visible = visible
		m.offset = offset
	}
}

// Thumb returns the first track cell covered by the thumb and its length.
// ok is false when every row fits and no thumb is drawn.
func Thumb(height, total, visible, offset int) (start, size int, ok bool) {
	if height <= 0 || visible <= 0 || total <= visible {
		return 0, 0, false
	}
	ratio := float64(height) / float64(total)
	size = mathutil.Clamp(int(math.Round(float64(visible)*ratio)), 1, height)
	start = mathutil.Clamp(int(math.Round(float64(offset)*ratio)), 0, height-size)
	return start, size, true
}

// View renders the scrollbar, one line per track cell. Without overflow it
// renders blank cells so callers keep their layout.
func (m Model) View() string {
	if m.height <= 0 || m.width <= 0 {
		return ""
	}

	start, size, ok := Thumb(m.height, m.total, m.visible, m.offset)
	lines := make([]string, m.height)
	for i := range lines {
		switch {
		case !ok:
			lines[i] = strings.Repeat(" ", m.width)
		case i >= start && i < start+size:
			lines[i] = m.styles.Thumb.Render(strings.Repeat(thumbChar, m.width))
		default:
			lines[i] = m.styles.Track.Render(strings.Repeat(trackChar, m.width))
		}
	}
	return strings.Join(lines, "\n")
}
