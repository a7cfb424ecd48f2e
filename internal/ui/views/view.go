// Package views implements the screens pushed onto the application stack.
package views

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/lccn-predictor/lazyrating/internal/predictor"
)

// Styles holds the view-related styles from the theme
type Styles struct {
	Text           lipgloss.Style
	Muted          lipgloss.Style
	Title          lipgloss.Style
	Link           lipgloss.Style
	MetricLabel    lipgloss.Style
	MetricValue    lipgloss.Style
	TableHeader    lipgloss.Style
	TableSelected  lipgloss.Style
	TableSeparator lipgloss.Style
	ScrollbarTrack lipgloss.Style
	ScrollbarThumb lipgloss.Style
	BorderStyle    lipgloss.Style
	FocusBorder    lipgloss.Style
	FilterFocused  lipgloss.Style
	FilterBlurred  lipgloss.Style
	TrendUp        lipgloss.Style
	TrendDown      lipgloss.Style
	PagerActive    lipgloss.Style
	PagerPage      lipgloss.Style
	PagerDisabled  lipgloss.Style
	ChartAxis      lipgloss.Style
	ChartLabel     lipgloss.Style
	ChartSeries    []lipgloss.Style
	ChartCN        lipgloss.Style
	ChartUS        lipgloss.Style
	JSONKey        lipgloss.Style
	JSONString     lipgloss.Style
	JSONNumber     lipgloss.Style
	JSONBool       lipgloss.Style
	JSONNull       lipgloss.Style
	JSONPunct      lipgloss.Style
	Error          lipgloss.Style
}

// View defines the interface that all views must implement
type View interface {
	// Init returns an initial command for the view
	Init() tea.Cmd

	// Update handles messages and returns the updated view and any commands
	Update(msg tea.Msg) (View, tea.Cmd)

	// View renders the view as a string
	View() string

	// Name returns the display name for this view (shown in the stack bar)
	Name() string

	// ShortHelp returns keybindings to show in the help view
	ShortHelp() []key.Binding

	// SetSize updates the view dimensions
	SetSize(width, height int) View

	// SetStyles updates the view styles
	SetStyles(styles Styles) View
}

// Disposable is implemented by views that release state when popped.
type Disposable interface {
	Dispose()
}

// HelpSection groups bindings in the help dialog.
type HelpSection struct {
	Title    string
	Bindings []key.Binding
}

// HelpProvider is implemented by views that contribute help sections.
type HelpProvider interface {
	HelpSections() []HelpSection
}

// HintProvider is implemented by views that show key hints in the navbar.
type HintProvider interface {
	HintBindings() []key.Binding
}

// TableHelpProvider is implemented by views built around a table.
type TableHelpProvider interface {
	TableHelp() []key.Binding
}

// BackInterceptor is implemented by views that consume the back key before
// the app pops them. It reports whether the key was handled.
type BackInterceptor interface {
	InterceptBack() (bool, tea.Cmd)
}

// RefreshMsg asks the active view to reload its data.
type RefreshMsg struct{}

// ConnectionErrorMsg reports a failed API call.
type ConnectionErrorMsg struct {
	Err error
}

// ShowRecordsMsg opens the predicted records of a contest.
type ShowRecordsMsg struct {
	Contest predictor.Contest
}

// ShowRankMsg opens the real-time rank chart of one user.
type ShowRankMsg struct {
	Contest string
	Record  predictor.Record
}

// ShowQuestionsMsg opens the question finished chart of a contest.
type ShowQuestionsMsg struct {
	Contest string
}

// ShowRecordDetailMsg opens a record as JSON.
type ShowRecordDetailMsg struct {
	Record predictor.Record
}
