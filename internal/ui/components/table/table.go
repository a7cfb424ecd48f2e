// Package table provides a scrollable table with row selection and a
// vertical scrollbar.
package table

import (
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/lccn-predictor/lazyrating/internal/mathutil"
	"github.com/lccn-predictor/lazyrating/internal/ui/components/scrollbar"
)

const (
	pageStep        = 10
	horizontalStep  = 4
	headerHeight    = 2
	defaultEmptyMsg = "No data"
)

// Alignment controls how a cell is padded within its column.
type Alignment int

const (
	// AlignLeft pads cells on the right.
	AlignLeft Alignment = iota
	// AlignRight pads cells on the left.
	AlignRight
)

// Column defines a table column.
type Column struct {
	Title string
	Width int
	Align Alignment
}

// Row is a table row. ID keeps the selection stable across updates.
type Row struct {
	ID    string
	Cells []string
}

// Styles holds the styles needed by the table.
type Styles struct {
	Text           lipgloss.Style
	Muted          lipgloss.Style
	Header         lipgloss.Style
	Selected       lipgloss.Style
	Separator      lipgloss.Style
	ScrollbarTrack lipgloss.Style
	ScrollbarThumb lipgloss.Style
}

// DefaultStyles returns a set of default style definitions for this table.
func DefaultStyles() Styles {
	return Styles{
		Text:           lipgloss.NewStyle(),
		Muted:          lipgloss.NewStyle().Faint(true),
		Header:         lipgloss.NewStyle().Bold(true),
		Selected:       lipgloss.NewStyle().Reverse(true),
		Separator:      lipgloss.NewStyle().Faint(true),
		ScrollbarTrack: lipgloss.NewStyle().Faint(true),
		ScrollbarThumb: lipgloss.NewStyle(),
	}
}

// KeyMap defines keybindings for table navigation.
type KeyMap struct {
	LineUp      key.Binding
	LineDown    key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	GotoTop     key.Binding
	GotoBottom  key.Binding
	ScrollLeft  key.Binding
	ScrollRight key.Binding
	Home        key.Binding
	End         key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		LineUp:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		LineDown:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:      key.NewBinding(key.WithKeys("pgup", "ctrl+b"), key.WithHelp("pgup", "page up")),
		PageDown:    key.NewBinding(key.WithKeys("pgdown", "ctrl+f"), key.WithHelp("pgdn", "page down")),
		GotoTop:     key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "top")),
		GotoBottom:  key.NewBinding(key.WithKeys("G"), key.WithHelp("G", "bottom")),
		ScrollLeft:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "scroll left")),
		ScrollRight: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "scroll right")),
		Home:        key.NewBinding(key.WithKeys("home", "0"), key.WithHelp("0", "line start")),
		End:         key.NewBinding(key.WithKeys("end", "$"), key.WithHelp("$", "line end")),
	}
}

// Model is a scrollable table component with selection support.
type Model struct {
	KeyMap KeyMap

	columns        []Column
	rows           []Row
	styles         Styles
	width          int
	height         int
	cursor         int
	yOffset        int
	xOffset        int
	totalWidth     int
	colWidths      []int
	emptyMessage   string
	content        string
	viewportHeight int
}

// Option is used to set options in New.
type Option func(*Model)

// New creates a new table.
func New(opts ...Option) Model {
	m := Model{
		KeyMap:       DefaultKeyMap(),
		styles:       DefaultStyles(),
		emptyMessage: defaultEmptyMsg,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.updateViewport()
	m.rebuildContent()
	m.clampScroll()
	return m
}

// WithColumns sets the table columns.
func WithColumns(cols []Column) Option {
	return func(m *Model) {
		m.columns = cols
	}
}

// WithRows sets the table rows.
func WithRows(rows []Row) Option {
	return func(m *Model) {
		m.rows = rows
	}
}

// WithStyles sets the table styles.
func WithStyles(s Styles) Option {
	return func(m *Model) {
		m.styles = s
	}
}

// WithWidth sets the table width.
func WithWidth(w int) Option {
	return func(m *Model) {
		m.width = w
	}
}

// WithHeight sets the table height, including the header.
func WithHeight(h int) Option {
	return func(m *Model) {
		m.height = h
	}
}

// WithEmptyMessage sets the message shown when there are no rows.
func WithEmptyMessage(msg string) Option {
	return func(m *Model) {
		m.emptyMessage = msg
	}
}

// WithKeyMap sets the keybindings.
func WithKeyMap(km KeyMap) Option {
	return func(m *Model) {
		m.KeyMap = km
	}
}

// SetEmptyMessage sets the message shown when there are no rows.
func (m *Model) SetEmptyMessage(msg string) {
	m.emptyMessage = msg
	m.rebuildContent()
}

// SetStyles updates the table styles.
func (m *Model) SetStyles(s Styles) {
	m.styles = s
	m.rebuildContent()
}

// SetSize sets the table dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.updateViewport()
	m.rebuildContent()
	m.ensureSelectedVisible()
	m.clampScroll()
}

// SetColumns replaces the column definitions.
func (m *Model) SetColumns(cols []Column) {
	m.columns = cols
	m.rebuildContent()
	m.clampScroll()
}

// SetRows replaces the table data. The selection follows the previously
// selected row ID when it is still present.
func (m *Model) SetRows(rows []Row) {
	selectedID := m.SelectedID()
	m.rows = rows

	if selectedID != "" {
		for i, r := range rows {
			if r.ID == selectedID {
				m.cursor = i
				break
			}
		}
	}
	m.cursor = mathutil.Clamp(m.cursor, 0, max(len(m.rows)-1, 0))

	m.rebuildContent()
	m.ensureSelectedVisible()
	m.clampScroll()
}

// Rows returns the current rows.
func (m Model) Rows() []Row {
	return m.rows
}

// RowCount returns the number of rows.
func (m Model) RowCount() int {
	return len(m.rows)
}

// Cursor returns the selected row index.
func (m Model) Cursor() int {
	return m.cursor
}

// SetCursor selects the row at index n.
func (m *Model) SetCursor(n int) {
	m.cursor = mathutil.Clamp(n, 0, max(len(m.rows)-1, 0))
	m.ensureSelectedVisible()
	m.rebuildContent()
}

// SelectedRow returns the selected row.
func (m Model) SelectedRow() (Row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return Row{}, false
	}
	return m.rows[m.cursor], true
}

// SelectedID returns the ID of the selected row, or "".
func (m Model) SelectedID() string {
	r, ok := m.SelectedRow()
	if !ok {
		return ""
	}
	return r.ID
}

// YOffset returns the index of the first visible row.
func (m Model) YOffset() int {
	return m.yOffset
}

// ViewportHeight returns the number of visible body rows.
func (m Model) ViewportHeight() int {
	return m.viewportHeight
}

// Update handles key messages for navigation and scrolling.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.KeyMap.LineUp):
		m.MoveUp(1)
	case key.Matches(keyMsg, m.KeyMap.LineDown):
		m.MoveDown(1)
	case key.Matches(keyMsg, m.KeyMap.PageUp):
		m.MoveUp(pageStep)
	case key.Matches(keyMsg, m.KeyMap.PageDown):
		m.MoveDown(pageStep)
	case key.Matches(keyMsg, m.KeyMap.GotoTop):
		m.GotoTop()
	case key.Matches(keyMsg, m.KeyMap.GotoBottom):
		m.GotoBottom()
	case key.Matches(keyMsg, m.KeyMap.ScrollLeft):
		m.ScrollLeft()
	case key.Matches(keyMsg, m.KeyMap.ScrollRight):
		m.ScrollRight()
	case key.Matches(keyMsg, m.KeyMap.Home):
		m.ScrollToStart()
	case key.Matches(keyMsg, m.KeyMap.End):
		m.ScrollToEnd()
	}
	return m, nil
}

// MoveUp moves the selection up by n rows.
func (m *Model) MoveUp(n int) {
	m.cursor = max(m.cursor-n, 0)
	m.ensureSelectedVisible()
	m.rebuildContent()
}

// MoveDown moves the selection down by n rows.
func (m *Model) MoveDown(n int) {
	m.cursor = min(m.cursor+n, max(len(m.rows)-1, 0))
	m.ensureSelectedVisible()
	m.rebuildContent()
}

// GotoTop selects the first row and resets both scroll offsets.
func (m *Model) GotoTop() {
	m.cursor = 0
	m.yOffset = 0
	m.xOffset = 0
	m.rebuildContent()
}

// GotoBottom selects the last row.
func (m *Model) GotoBottom() {
	m.cursor = max(len(m.rows)-1, 0)
	m.yOffset = max(len(m.rows)-m.viewportHeight, 0)
	m.rebuildContent()
}

// ScrollLeft scrolls the content left.
func (m *Model) ScrollLeft() {
	m.xOffset = max(m.xOffset-horizontalStep, 0)
	m.rebuildContent()
}

// ScrollRight scrolls the content right.
func (m *Model) ScrollRight() {
	m.xOffset = min(m.xOffset+horizontalStep, m.maxScrollOffset())
	m.rebuildContent()
}

// ScrollToStart resets the horizontal scroll.
func (m *Model) ScrollToStart() {
	m.xOffset = 0
	m.rebuildContent()
}

// ScrollToEnd scrolls to the right edge of the widest row.
func (m *Model) ScrollToEnd() {
	m.xOffset = m.maxScrollOffset()
	m.rebuildContent()
}

// View renders the header, the visible rows and the scrollbar.
func (m Model) View() string {
	contentWidth := m.contentWidth()
	showScrollbar := m.hasScrollbar()

	header := strings.Split(m.renderHeader(), "\n")
	body := m.getVisibleContent()
	for i, line := range body {
		body[i] = fitLine(line, contentWidth)
	}

	if showScrollbar {
		sb := scrollbar.New(
			scrollbar.WithStyles(scrollbar.Styles{Track: m.styles.ScrollbarTrack, Thumb: m.styles.ScrollbarThumb}),
			scrollbar.WithSize(scrollbar.DefaultWidth, m.viewportHeight),
			scrollbar.WithRange(len(m.rows), m.viewportHeight, m.yOffset),
		)
		for i := range header {
			header[i] += strings.Repeat(" ", scrollbar.DefaultWidth)
		}
		for i, bar := range strings.Split(sb.View(), "\n") {
			if i < len(body) {
				body[i] += bar
			}
		}
	}

	return strings.Join(append(header, body...), "\n")
}

func (m *Model) updateViewport() {
	m.viewportHeight = max(m.height-headerHeight, 1)
}

func (m Model) hasScrollbar() bool {
	return m.width > scrollbar.DefaultWidth && len(m.rows) > m.viewportHeight
}

func (m Model) contentWidth() int {
	if m.hasScrollbar() {
		return m.width - scrollbar.DefaultWidth
	}
	return m.width
}

func (m Model) maxScrollOffset() int {
	return max(m.totalWidth-m.contentWidth(), 0)
}

func (m *Model) clampScroll() {
	m.xOffset = mathutil.Clamp(m.xOffset, 0, m.maxScrollOffset())
	m.yOffset = mathutil.Clamp(m.yOffset, 0, max(len(m.rows)-m.viewportHeight, 0))
}

func (m *Model) ensureSelectedVisible() {
	if m.cursor < m.yOffset {
		m.yOffset = m.cursor
	} else if m.cursor >= m.yOffset+m.viewportHeight {
		m.yOffset = m.cursor - m.viewportHeight + 1
	}
}

func (m *Model) rebuildContent() {
	m.content = m.renderBody()
}

// computeWidths sizes every column to fit its title and widest cell.
func (m *Model) computeWidths() {
	m.colWidths = make([]int, len(m.columns))
	for i, col := range m.columns {
		m.colWidths[i] = max(col.Width, ansi.StringWidth(col.Title))
	}
	for _, r := range m.rows {
		for i, cell := range r.Cells {
			if i < len(m.colWidths) {
				m.colWidths[i] = max(m.colWidths[i], ansi.StringWidth(cell))
			}
		}
	}
}

func (m Model) formatCells(cells []string) string {
	last := len(m.columns) - 1
	parts := make([]string, 0, len(cells))
	for i, cell := range cells {
		if i > last {
			break
		}
		align := m.columns[i].Align
		switch {
		case align == AlignRight:
			parts = append(parts, padLeft(cell, m.colWidths[i]))
		case i < last:
			parts = append(parts, padRight(cell, m.colWidths[i]))
		default:
			parts = append(parts, cell)
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) renderHeader() string {
	titles := make([]string, len(m.columns))
	for i, col := range m.columns {
		titles[i] = col.Title
	}
	header := m.formatCells(titles)

	contentWidth := m.contentWidth()
	separator := strings.Repeat("─", max(m.totalWidth, contentWidth))

	header = applyHorizontalScroll(padRight(header, m.totalWidth), m.xOffset, contentWidth)
	separator = applyHorizontalScroll(separator, m.xOffset, contentWidth)

	return m.styles.Header.Render(header) + "\n" + m.styles.Separator.Render(separator)
}

func (m *Model) renderBody() string {
	m.computeWidths()

	titles := make([]string, len(m.columns))
	for i, col := range m.columns {
		titles[i] = col.Title
	}
	m.totalWidth = ansi.StringWidth(m.formatCells(titles))

	if len(m.rows) == 0 {
		return m.styles.Muted.Render(m.emptyMessage)
	}

	raw := make([]string, len(m.rows))
	for i, r := range m.rows {
		raw[i] = m.formatCells(r.Cells)
		m.totalWidth = max(m.totalWidth, ansi.StringWidth(raw[i]))
	}

	contentWidth := m.contentWidth()
	lines := make([]string, len(raw))
	for i, line := range raw {
		line = applyHorizontalScroll(padRight(line, m.totalWidth), m.xOffset, contentWidth)
		if i == m.cursor {
			lines[i] = m.styles.Selected.Render(line)
		} else {
			lines[i] = m.styles.Text.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

// getVisibleContent returns exactly viewportHeight body lines.
func (m Model) getVisibleContent() []string {
	lines := make([]string, 0, m.viewportHeight)
	if m.content != "" {
		all := strings.Split(m.content, "\n")
		start := mathutil.Clamp(m.yOffset, 0, max(len(all)-m.viewportHeight, 0))
		end := min(start+m.viewportHeight, len(all))
		lines = append(lines, all[start:end]...)
	}
	for len(lines) < m.viewportHeight {
		lines = append(lines, "")
	}
	return lines
}

// applyHorizontalScroll cuts a possibly styled line to the visible window
// and pads it with spaces.
func applyHorizontalScroll(line string, offset, visibleWidth int) string {
	if visibleWidth <= 0 {
		return ""
	}
	cut := ansi.Cut(line, offset, offset+visibleWidth)
	if w := ansi.StringWidth(cut); w < visibleWidth {
		cut += strings.Repeat(" ", visibleWidth-w)
	}
	return cut
}

func fitLine(line string, width int) string {
	if width <= 0 {
		return line
	}
	w := ansi.StringWidth(line)
	if w > width {
		return ansi.Truncate(line, width, "")
	}
	return line + strings.Repeat(" ", width-w)
}

func padRight(s string, width int) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

func padLeft(s string, width int) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return strings.Repeat(" ", width-w) + s
}
