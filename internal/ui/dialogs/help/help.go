// Package help renders the keybinding reference opened with "?". Sections
// flow into two columns and the body scrolls once it outgrows the dialog.
package help

import (
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/lccn-predictor/lazyrating/internal/ui/components/frame"
	"github.com/lccn-predictor/lazyrating/internal/ui/dialogs"
)

// DialogID identifies the help dialog.
const DialogID dialogs.DialogID = "help"

const (
	defaultTitle = "Help"
	minWidth     = 64
	minHeight    = 12
	padding      = 1
	columnGap    = 4
)

// Column pins a section to one side of the dialog.
type Column int

const (
	// ColumnAuto puts the section in whichever column is shorter.
	ColumnAuto Column = iota
	// ColumnLeft pins the section to the left column.
	ColumnLeft
	// ColumnRight pins the section to the right column.
	ColumnRight
)

// Section groups bindings or free-form lines under a title.
type Section struct {
	Title    string
	Bindings []key.Binding
	Lines    []string
	Column   Column
}

// Styles holds the styles used by the help dialog.
type Styles struct {
	Title   lipgloss.Style
	Border  lipgloss.Style
	Section lipgloss.Style
	Key     lipgloss.Style
	Desc    lipgloss.Style
	Muted   lipgloss.Style
}

// Model is the help dialog.
type Model struct {
	styles   Styles
	keys     dialogs.KeyMap
	title    string
	sections []Section
	body     viewport.Model
	width    int
	height   int
	row      int
	col      int
}

// Option configures the help dialog.
type Option func(*Model)

// New creates a help dialog. It stays empty until the first window size.
func New(opts ...Option) *Model {
	m := &Model{
		keys:  dialogs.DefaultKeyMap(),
		title: defaultTitle,
		body:  viewport.New(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// WithStyles sets the styles.
func WithStyles(s Styles) Option {
	return func(m *Model) { m.styles = s }
}

// WithSections sets the help sections.
func WithSections(sections []Section) Option {
	return func(m *Model) { m.sections = sections }
}

// WithTitle sets the dialog title.
func WithTitle(title string) Option {
	return func(m *Model) { m.title = title }
}

// Init implements dialogs.DialogModel.
func (m *Model) Init() tea.Cmd { return nil }

// Update handles input and dialog lifecycle.
func (m *Model) Update(msg tea.Msg) (dialogs.DialogModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyPressMsg:
		switch msg.String() {
		case "?":
			return m, closeDialog
		case "home", "g":
			m.body.GotoTop()
			return m, nil
		case "end", "G":
			m.body.GotoBottom()
			return m, nil
		}
		if key.Matches(msg, m.keys.Close) {
			return m, closeDialog
		}
		var cmd tea.Cmd
		m.body, cmd = m.body.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the help dialog.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	state := frame.StyleState{
		Title:  m.styles.Title,
		Muted:  m.styles.Muted,
		Filter: m.styles.Muted,
		Border: m.styles.Border,
	}
	box := frame.New(
		frame.WithStyles(frame.Styles{Focused: state, Blurred: state}),
		frame.WithTitle(m.title),
		frame.WithTitlePadding(0),
		frame.WithContent(m.body.View()),
		frame.WithPadding(padding),
		frame.WithSize(m.width, m.height),
		frame.WithMinHeight(5),
		frame.WithFocused(true),
	)
	return box.View()
}

// Position returns the dialog position.
func (m *Model) Position() (int, int) {
	return m.row, m.col
}

// ID returns the dialog ID.
func (m *Model) ID() dialogs.DialogID {
	return DialogID
}

func closeDialog() tea.Msg {
	return dialogs.CloseDialogMsg{}
}

func (m *Model) resize(windowWidth, windowHeight int) {
	if windowWidth <= 0 || windowHeight <= 0 {
		return
	}

	m.width = fitDimension((windowWidth*2)/3, minWidth, windowWidth, 10)
	m.height = fitDimension(windowHeight/2, minHeight, windowHeight, 5)
	m.row = max((windowHeight-m.height)/2, 0)
	m.col = max((windowWidth-m.width)/2, 0)

	contentWidth := max(m.width-2-(padding*2), 1)
	m.body.SetWidth(contentWidth)
	m.body.SetHeight(max(m.height-2, 0))
	m.body.SetContent(m.renderContent(contentWidth))
}

// fitDimension grows preferred up to floor while leaving a two cell margin
// on each side of the window, and never returns less than smallest.
func fitDimension(preferred, floor, window, smallest int) int {
	size := min(max(preferred, floor), window-4)
	if size < smallest {
		size = max(window-2, smallest)
	}
	return size
}

func (m *Model) renderContent(width int) string {
	if width <= 0 || len(m.sections) == 0 {
		return ""
	}

	gap := columnGap
	if width <= gap+10 {
		gap = 2
	}
	columnWidth := max((width-gap)/2, 1)
	column := lipgloss.NewStyle().Width(columnWidth).MaxWidth(columnWidth)

	left, right := splitSections(m.sections)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		column.Render(strings.Join(renderSections(left, columnWidth, m.styles), "\n")),
		strings.Repeat(" ", gap),
		column.Render(strings.Join(renderSections(right, columnWidth, m.styles), "\n")),
	)
}

// splitSections places pinned sections first, then hands each auto section
// to the column that is shorter so far.
func splitSections(sections []Section) (left, right []Section) {
	var leftHeight, rightHeight int
	var auto []Section
	for _, section := range sections {
		switch section.Column {
		case ColumnLeft:
			left = append(left, section)
			leftHeight += sectionHeight(section)
		case ColumnRight:
			right = append(right, section)
			rightHeight += sectionHeight(section)
		default:
			auto = append(auto, section)
		}
	}

	for _, section := range auto {
		if leftHeight <= rightHeight {
			left = append(left, section)
			leftHeight += sectionHeight(section)
		} else {
			right = append(right, section)
			rightHeight += sectionHeight(section)
		}
	}
	return left, right
}

// sectionHeight counts the rendered lines plus the blank separator.
func sectionHeight(section Section) int {
	return len(renderSection(section, Styles{})) + 1
}

func renderSections(sections []Section, width int, styles Styles) []string {
	if width <= 0 {
		return nil
	}

	var lines []string
	for i, section := range sections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, renderSection(section, styles)...)
	}
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, width, "")
	}
	return lines
}

func renderSection(section Section, styles Styles) []string {
	var lines []string
	if title := strings.TrimSpace(section.Title); title != "" {
		lines = append(lines, styles.Section.Render(title))
	}
	lines = append(lines, section.Lines...)

	entries := helpEntries(section.Bindings)
	if len(entries) == 0 {
		return lines
	}
	if len(section.Lines) > 0 {
		lines = append(lines, "")
	}

	keyWidth := 0
	for _, entry := range entries {
		keyWidth = max(keyWidth, ansi.StringWidth(entry.Key))
	}
	for _, entry := range entries {
		line := styles.Key.Render(padRight(entry.Key, keyWidth))
		if entry.Desc != "" {
			line += " " + styles.Desc.Render(entry.Desc)
		}
		lines = append(lines, line)
	}
	return lines
}

// helpEntries returns the help text of enabled bindings that have a key label.
func helpEntries(bindings []key.Binding) []key.Help {
	entries := make([]key.Help, 0, len(bindings))
	for _, binding := range bindings {
		if !binding.Enabled() {
			continue
		}
		h := binding.Help()
		h.Key = strings.TrimSpace(h.Key)
		h.Desc = strings.TrimSpace(h.Desc)
		if h.Key == "" {
			continue
		}
		entries = append(entries, h)
	}
	return entries
}

func padRight(value string, width int) string {
	if w := ansi.StringWidth(value); w < width {
		return value + strings.Repeat(" ", width-w)
	}
	return value
}
