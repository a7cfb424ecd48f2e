package views

import (
	"strconv"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/lccn-predictor/lazyrating/internal/devtools"
	"github.com/lccn-predictor/lazyrating/internal/ui/components/frame"
	"github.com/lccn-predictor/lazyrating/internal/ui/components/table"
	"github.com/lccn-predictor/lazyrating/internal/ui/format"
)

// Requests lists the tracked HTTP requests and cache commands.
type Requests struct {
	tracker     *devtools.Tracker
	width       int
	height      int
	styles      Styles
	frameStyles frame.Styles
	table       table.Model
}

// NewRequests creates the request log view.
func NewRequests(tracker *devtools.Tracker) *Requests {
	return &Requests{
		tracker: tracker,
		table: table.New(
			table.WithColumns(requestsColumns),
			table.WithEmptyMessage("No requests yet"),
		),
	}
}

// Init implements View.
func (r *Requests) Init() tea.Cmd {
	r.syncEntries()
	return nil
}

// Update implements View.
func (r *Requests) Update(msg tea.Msg) (View, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		r.table, _ = r.table.Update(keyMsg)
		return r, nil
	}
	// Every completed fetch may have logged new entries.
	r.syncEntries()
	return r, nil
}

// View implements View.
func (r *Requests) View() string {
	box := frame.New(
		frame.WithStyles(r.frameStyles),
		frame.WithTitle("Requests"),
		frame.WithMeta(format.Count(int64(r.table.RowCount()))),
		frame.WithMetaPadding(1),
		frame.WithContent(r.table.View()),
		frame.WithPadding(1),
		frame.WithSize(r.width, r.height),
		frame.WithFocused(true),
	)
	return box.View()
}

// Name implements View.
func (r *Requests) Name() string {
	return "Requests"
}

// ShortHelp implements View.
func (r *Requests) ShortHelp() []key.Binding {
	return nil
}

// TableHelp implements TableHelpProvider.
func (r *Requests) TableHelp() []key.Binding {
	return tableHelpBindings(r.table.KeyMap)
}

// SetSize implements View.
func (r *Requests) SetSize(width, height int) View {
	r.width = width
	r.height = height
	r.table.SetSize(max(width-4, 1), max(height-2, 3))
	return r
}

// SetStyles implements View.
func (r *Requests) SetStyles(styles Styles) View {
	r.styles = styles
	r.frameStyles = frameStylesFromTheme(styles)
	r.table.SetStyles(tableStylesFromTheme(styles))
	r.syncEntries()
	return r
}

// Table columns for the request log.
var requestsColumns = []table.Column{
	{Title: "#", Width: 4, Align: table.AlignRight},
	{Title: "Time", Width: 12},
	{Title: "Origin", Width: 20},
	{Title: "Type", Width: 8},
	{Title: "Status", Width: 6, Align: table.AlignRight},
	{Title: "Dur", Width: 8, Align: table.AlignRight},
	{Title: "Command", Width: 40},
}

// syncEntries mirrors the tracker log and follows the tail when the cursor
// was already on the last row.
func (r *Requests) syncEntries() {
	if r.tracker == nil {
		r.table.SetRows(nil)
		return
	}
	prevRows := r.table.Rows()
	wasAtEnd := len(prevRows) == 0 || r.table.Cursor() >= len(prevRows)-1
	entries := r.tracker.LogEntries()
	rows := make([]table.Row, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, table.Row{
			ID: strconv.FormatUint(entry.Seq, 10),
			Cells: []string{
				strconv.FormatUint(entry.Seq, 10),
				entry.Time.Format("15:04:05.000"),
				entry.Origin,
				entry.Entry.Kind.String(),
				r.statusLabel(entry.Entry),
				devtools.FormatDuration(entry.Entry.Duration),
				entry.Entry.Command,
			},
		})
	}
	r.table.SetRows(rows)
	if wasAtEnd && len(rows) > 0 {
		r.table.MoveDown(len(rows))
	}
}

func (r *Requests) statusLabel(entry devtools.Entry) string {
	switch {
	case entry.Err != "":
		return r.styles.Error.Render("err")
	case entry.Status == 0:
		return "-"
	case entry.Status >= 400:
		return r.styles.Error.Render(strconv.Itoa(entry.Status))
	default:
		return strconv.Itoa(entry.Status)
	}
}
