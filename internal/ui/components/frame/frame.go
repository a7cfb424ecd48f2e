// Package frame renders a titled bordered box with optional meta content.
package frame

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// StyleState holds styles for a focus state.
type StyleState struct {
	Title  lipgloss.Style
	Muted  lipgloss.Style
	Filter lipgloss.Style
	Border lipgloss.Style
}

// Styles holds focus-aware styles for a frame.
type Styles struct {
	Focused StyleState
	Blurred StyleState
}

// DefaultStyles returns default styles for a frame.
func DefaultStyles() Styles {
	state := StyleState{
		Title:  lipgloss.NewStyle().Bold(true),
		Muted:  lipgloss.NewStyle(),
		Filter: lipgloss.NewStyle(),
		Border: lipgloss.NewStyle(),
	}
	return Styles{
		Focused: state,
		Blurred: state,
	}
}

// Model defines state for the frame component.
type Model struct {
	styles       Styles
	title        string
	filter       string
	meta         string
	content      string
	width        int
	height       int
	minHeight    int
	padding      int
	titlePadding int
	metaPadding  int
	focused      bool
	border       lipgloss.Border
}

// Option is used to set options in New.
type Option func(*Model)

// New creates a new frame model.
func New(opts ...Option) Model {
	m := Model{
		styles:       DefaultStyles(),
		titlePadding: 1,
		border:       lipgloss.RoundedBorder(),
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

// WithFilter sets the active filter shown next to the title.
func WithFilter(filter string) Option {
	return func(m *Model) {
		m.filter = filter
	}
}

// WithMeta sets the meta content.
func WithMeta(meta string) Option {
	return func(m *Model) {
		m.meta = meta
	}
}

// WithContent sets the content.
func WithContent(content string) Option {
	return func(m *Model) {
		m.content = content
	}
}

// WithSize sets width and height.
func WithSize(width, height int) Option {
	return func(m *Model) {
		m.width = width
		m.height = height
	}
}

// WithMinHeight sets the minimum height.
func WithMinHeight(height int) Option {
	return func(m *Model) {
		m.minHeight = height
	}
}

// WithPadding sets horizontal padding inside the frame.
func WithPadding(padding int) Option {
	return func(m *Model) {
		m.padding = padding
	}
}

// WithTitlePadding sets the title padding.
func WithTitlePadding(padding int) Option {
	return func(m *Model) {
		m.titlePadding = padding
	}
}

// WithMetaPadding sets the meta padding.
func WithMetaPadding(padding int) Option {
	return func(m *Model) {
		m.metaPadding = padding
	}
}

// WithFocused sets the focus state.
func WithFocused(focused bool) Option {
	return func(m *Model) {
		m.focused = focused
	}
}

// WithBorder sets the border characters.
func WithBorder(border lipgloss.Border) Option {
	return func(m *Model) {
		m.border = border
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

// SetFilter sets the active filter shown next to the title.
func (m *Model) SetFilter(filter string) {
	m.filter = filter
}

// SetMeta sets the meta content.
func (m *Model) SetMeta(meta string) {
	m.meta = meta
}

// SetContent sets the content.
func (m *Model) SetContent(content string) {
	m.content = content
}

// SetSize sets the width and height.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetMinHeight sets the minimum height.
func (m *Model) SetMinHeight(height int) {
	m.minHeight = height
}

// SetPadding sets horizontal padding inside the frame.
func (m *Model) SetPadding(padding int) {
	m.padding = padding
}

// SetTitlePadding sets the title padding.
func (m *Model) SetTitlePadding(padding int) {
	m.titlePadding = padding
}

// SetMetaPadding sets the meta padding.
func (m *Model) SetMetaPadding(padding int) {
	m.metaPadding = padding
}

// Focused returns the focus state.
func (m Model) Focused() bool {
	return m.focused
}

// Focus focuses the frame.
func (m *Model) Focus() {
	m.focused = true
}

// Blur blurs the frame.
func (m *Model) Blur() {
	m.focused = false
}

// Width returns the current width.
func (m Model) Width() int {
	return m.width
}

// Height returns the current height.
func (m Model) Height() int {
	return m.height
}

// MinHeight returns the minimum height.
func (m Model) MinHeight() int {
	return m.minHeight
}

// View renders the frame with the current content.
func (m Model) View() string {
	if m.width <= 0 {
		return ""
	}

	effectiveHeight := m.height
	if m.minHeight > 0 {
		effectiveHeight = max(effectiveHeight, m.minHeight)
	}
	if effectiveHeight <= 0 {
		return ""
	}
	if effectiveHeight < 2 {
		return ""
	}

	state := m.styles.Blurred
	if m.focused {
		state = m.styles.Focused
	}

	innerWidth := max(m.width-2, 0)
	contentHeight := max(effectiveHeight-2, 0)

	top := m.renderTopBorder(state, innerWidth)
	body := m.renderBody(state, innerWidth, contentHeight)
	bottom := m.renderBottomBorder(state, innerWidth)

	if contentHeight == 0 {
		return top + "\n" + bottom
	}

	return top + "\n" + strings.Join(body, "\n") + "\n" + bottom
}

func (m Model) renderTopBorder(state StyleState, innerWidth int) string {
	topLeft := state.Border.Render(m.border.TopLeft)
	topRight := state.Border.Render(m.border.TopRight)
	hBar := state.Border.Render(m.border.Top)

	leftPad := 1
	rightPad := 1
	available := max(innerWidth-leftPad-rightPad, 0)

	meta := padLabel(m.meta, m.metaPadding)
	if meta != "" {
		meta = state.Border.Render("╖") + meta + state.Border.Render("╓")
	}
	metaWidth := lipgloss.Width(meta)
	if metaWidth > available {
		meta = ""
		metaWidth = 0
	}

	styledTitle := m.renderTitle(state, available)
	titleWidth := lipgloss.Width(styledTitle)
	if titleWidth+metaWidth > available {
		meta = ""
		metaWidth = 0
	}

	remaining := max(available-titleWidth-metaWidth, 0)

	return topLeft +
		strings.Repeat(hBar, leftPad) +
		styledTitle +
		strings.Repeat(hBar, remaining) +
		meta +
		strings.Repeat(hBar, rightPad) +
		topRight
}

func (m Model) renderBottomBorder(state StyleState, innerWidth int) string {
	bottomLeft := state.Border.Render(m.border.BottomLeft)
	bottomRight := state.Border.Render(m.border.BottomRight)
	hBar := state.Border.Render(m.border.Bottom)
	return bottomLeft + strings.Repeat(hBar, innerWidth) + bottomRight
}

func (m Model) renderBody(state StyleState, innerWidth, contentHeight int) []string {
	if contentHeight <= 0 {
		return nil
	}

	lines := strings.Split(m.content, "\n")
	body := make([]string, 0, contentHeight)

	vBar := state.Border.Render(m.border.Left)
	vBarRight := state.Border.Render(m.border.Right)

	for i := range contentHeight {
		var line string
		if i < len(lines) {
			line = lines[i]
		}

		line = padLine(line, innerWidth, m.padding)
		body = append(body, vBar+line+vBarRight)
	}

	return body
}

func padLine(line string, width, padding int) string {
	if width <= 0 {
		return ""
	}

	if padding > 0 {
		spaces := strings.Repeat(" ", padding)
		line = spaces + line + spaces
	}

	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		line += strings.Repeat(" ", width-lineWidth)
	}
	return line
}

// renderTitle renders the padded title and optional [filter] within maxWidth.
func (m Model) renderTitle(state StyleState, maxWidth int) string {
	if m.title == "" || maxWidth <= 0 {
		return ""
	}
	pad := strings.Repeat(" ", max(m.titlePadding, 0))
	contentWidth := maxWidth - 2*len(pad)
	if contentWidth <= 0 {
		return ""
	}

	baseWidth := lipgloss.Width(m.title)
	filter := strings.TrimSpace(m.filter)
	if baseWidth > contentWidth {
		return state.Title.Render(pad + truncateWithEllipsis(m.title, contentWidth) + pad)
	}
	available := contentWidth - baseWidth - 2
	if filter == "" || available <= 0 {
		return state.Title.Render(pad + m.title + pad)
	}

	return state.Title.Render(pad+m.title) +
		state.Muted.Render("[") +
		state.Filter.Render(truncateWithEllipsis(filter, available)) +
		state.Muted.Render("]") +
		state.Title.Render(pad)
}

func truncateWithEllipsis(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if lipgloss.Width(text) <= maxWidth {
		return text
	}
	const ellipsis = "…"
	if maxWidth <= 1 {
		return ellipsis
	}
	target := maxWidth - 1
	var b strings.Builder
	width := 0
	for _, r := range text {
		rw := lipgloss.Width(string(r))
		if width+rw > target {
			break
		}
		b.WriteRune(r)
		width += rw
	}
	return b.String() + ellipsis
}

func padLabel(label string, padding int) string {
	if label == "" || padding <= 0 {
		return label
	}
	spaces := strings.Repeat(" ", padding)
	return spaces + label + spaces
}
