package views

import (
	"context"
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/lccn-predictor/lazyrating/internal/pagination"
	"github.com/lccn-predictor/lazyrating/internal/predictor"
	"github.com/lccn-predictor/lazyrating/internal/ui/components/frame"
	"github.com/lccn-predictor/lazyrating/internal/ui/components/pager"
	"github.com/lccn-predictor/lazyrating/internal/ui/components/table"
	"github.com/lccn-predictor/lazyrating/internal/ui/dialogs"
	filterdialog "github.com/lccn-predictor/lazyrating/internal/ui/dialogs/filter"
	"github.com/lccn-predictor/lazyrating/internal/ui/format"
)

// RecordsPageSize is the number of records per page.
const RecordsPageSize = 25

// recordsPage is one page of records, or every match of a username search.
type recordsPage struct {
	records  []predictor.Record
	total    int
	searched bool
}

type recordsKeyMap struct {
	pages     pageKeys
	Search    key.Binding
	Clear     key.Binding
	Rank      key.Binding
	Questions key.Binding
	Detail    key.Binding
	Copy      key.Binding
}

func defaultRecordsKeyMap() recordsKeyMap {
	return recordsKeyMap{
		pages:     defaultPageKeys(),
		Search:    helpBinding([]string{"/"}, "/", "search user"),
		Clear:     helpBinding([]string{"ctrl+u"}, "ctrl+u", "clear search"),
		Rank:      helpBinding([]string{"enter"}, "enter", "real-time rank"),
		Questions: helpBinding([]string{"t"}, "t", "questions"),
		Detail:    helpBinding([]string{"d"}, "d", "record detail"),
		Copy:      helpBinding([]string{"c"}, "c", "copy username"),
	}
}

// Records shows the predicted records of one contest.
type Records struct {
	client      predictor.API
	contest     predictor.Contest
	keys        recordsKeyMap
	width       int
	height      int
	styles      Styles
	frameStyles frame.Styles
	filterStyle filterdialog.Styles
	page        int
	search      string
	records     []predictor.Record
	total       int
	matches     int
	ready       bool
	table       table.Model
	pager       pager.Model
	fetch       fetcher
}

// NewRecords creates the records view of contest.
func NewRecords(client predictor.API, contest predictor.Contest) *Records {
	return &Records{
		client:  client,
		contest: contest,
		keys:    defaultRecordsKeyMap(),
		page:    1,
		table: table.New(
			table.WithColumns(recordsColumns),
			table.WithEmptyMessage("No records"),
		),
		pager: pager.New(),
		fetch: newFetcher("records." + contest.TitleSlug),
	}
}

// Init implements View.
func (r *Records) Init() tea.Cmd {
	return r.fetchCmd()
}

// Update implements View.
func (r *Records) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case fetched[recordsPage]:
		if !r.fetch.accept(msg.id) {
			return r, nil
		}
		if msg.err != nil {
			return r, connectionErrorCmd(msg.err)
		}
		r.records = msg.value.records
		if msg.value.searched {
			r.matches = len(msg.value.records)
		} else {
			r.total = msg.value.total
		}
		r.ready = true
		r.updateTableRows()
		return r, nil

	case spinner.TickMsg:
		return r, r.fetch.updateSpinner(msg)

	case RefreshMsg:
		return r, r.fetchCmd()

	case filterdialog.ActionMsg:
		if msg.Action == filterdialog.ActionNone {
			return r, nil
		}
		return r, r.setSearch(msg.Query)

	case tea.KeyMsg:
		if r.search == "" {
			if page, ok := r.keys.pages.target(msg, r.links()); ok {
				r.page = page
				r.table.SetCursor(0)
				return r, r.fetchCmd()
			}
		}

		switch {
		case key.Matches(msg, r.keys.Search):
			return r, func() tea.Msg {
				return dialogs.OpenDialogMsg{
					Model: filterdialog.New(
						filterdialog.WithStyles(r.filterStyle),
						filterdialog.WithQuery(r.search),
					),
				}
			}
		case key.Matches(msg, r.keys.Clear):
			return r, r.setSearch("")
		case key.Matches(msg, r.keys.Rank):
			if record, ok := r.selectedRecord(); ok {
				return r, func() tea.Msg {
					return ShowRankMsg{Contest: r.contest.TitleSlug, Record: record}
				}
			}
			return r, nil
		case key.Matches(msg, r.keys.Questions):
			return r, func() tea.Msg { return ShowQuestionsMsg{Contest: r.contest.TitleSlug} }
		case key.Matches(msg, r.keys.Detail):
			if record, ok := r.selectedRecord(); ok {
				return r, func() tea.Msg { return ShowRecordDetailMsg{Record: record} }
			}
			return r, nil
		case key.Matches(msg, r.keys.Copy):
			if record, ok := r.selectedRecord(); ok {
				return r, copyCmd("username", record.Username)
			}
			return r, nil
		}

		r.table, _ = r.table.Update(msg)
		return r, nil
	}

	return r, nil
}

// View implements View.
func (r *Records) View() string {
	if !r.ready {
		return renderStatusMessage(r.title(), "Loading records...", r.styles, r.width, r.height)
	}

	content := r.table.View()
	if r.search == "" {
		content += "\n" + r.pager.View()
	}

	box := frame.New(
		frame.WithStyles(r.frameStyles),
		frame.WithTitle(r.title()),
		frame.WithFilter(r.search),
		frame.WithMeta(r.meta()),
		frame.WithMetaPadding(1),
		frame.WithContent(content),
		frame.WithPadding(1),
		frame.WithSize(r.width, r.height),
		frame.WithFocused(true),
	)
	return box.View()
}

// Name implements View.
func (r *Records) Name() string {
	return r.contest.TitleSlug
}

// ShortHelp implements View.
func (r *Records) ShortHelp() []key.Binding {
	return nil
}

// HintBindings implements HintProvider.
func (r *Records) HintBindings() []key.Binding {
	hints := []key.Binding{r.keys.Search, r.keys.Rank, r.keys.Questions, r.keys.Detail}
	if r.search != "" {
		return append([]key.Binding{r.keys.Clear}, hints...)
	}
	return append(hints, r.keys.pages.Prev, r.keys.pages.Next)
}

// HelpSections implements HelpProvider.
func (r *Records) HelpSections() []HelpSection {
	return []HelpSection{
		{
			Title:    "Records",
			Bindings: []key.Binding{r.keys.Rank, r.keys.Questions, r.keys.Detail, r.keys.Copy},
		},
		{
			Title:    "Search",
			Bindings: []key.Binding{r.keys.Search, r.keys.Clear},
		},
		{
			Title:    "Pages",
			Bindings: r.keys.pages.bindings(),
		},
	}
}

// TableHelp implements TableHelpProvider.
func (r *Records) TableHelp() []key.Binding {
	return tableHelpBindings(r.table.KeyMap)
}

// InterceptBack leaves search mode before leaving the view.
func (r *Records) InterceptBack() (bool, tea.Cmd) {
	if r.search == "" {
		return false, nil
	}
	return true, r.setSearch("")
}

// SetSize implements View.
func (r *Records) SetSize(width, height int) View {
	r.width = width
	r.height = height
	r.updateSize()
	return r
}

// SetStyles implements View.
func (r *Records) SetStyles(styles Styles) View {
	r.styles = styles
	r.frameStyles = frameStylesFromTheme(styles)
	r.filterStyle = filterDialogStylesFromTheme(styles)
	r.table.SetStyles(tableStylesFromTheme(styles))
	r.pager.SetStyles(pagerStylesFromTheme(styles))
	r.fetch.spinner.Style = styles.Muted
	r.updateTableRows()
	return r
}

// Dispose cancels the in-flight request when the view leaves the stack.
func (r *Records) Dispose() {
	r.fetch.stop()
}

// Search returns the active username search, or "".
func (r *Records) Search() string {
	return r.search
}

// Page returns the current 1-based page.
func (r *Records) Page() int {
	return r.page
}

func (r *Records) setSearch(query string) tea.Cmd {
	query = strings.TrimSpace(query)
	if query == r.search {
		return nil
	}
	r.search = query
	r.table.SetCursor(0)
	return r.fetchCmd()
}

func (r *Records) fetchCmd() tea.Cmd {
	client := r.client
	contest := r.contest.TitleSlug
	search := r.search
	skip := pageSkip(r.page, RecordsPageSize)
	return fetch(&r.fetch, func(ctx context.Context) (recordsPage, error) {
		if search != "" {
			records, err := client.UserRecords(ctx, contest, search)
			if err != nil {
				return recordsPage{}, err
			}
			return recordsPage{records: records, searched: true}, nil
		}

		total, err := client.RecordsCount(ctx, contest)
		if err != nil {
			return recordsPage{}, err
		}
		records, err := client.Records(ctx, contest, skip, RecordsPageSize)
		if err != nil {
			return recordsPage{}, err
		}
		return recordsPage{records: records, total: total}, nil
	})
}

func (r *Records) links() pagination.Links {
	return pagination.Window(r.total, RecordsPageSize, r.page)
}

func (r *Records) title() string {
	if r.contest.Title != "" {
		return r.contest.Title
	}
	return strings.ReplaceAll(r.contest.TitleSlug, "-", " ")
}

func (r *Records) meta() string {
	counter := format.Count(int64(r.total)) + " records"
	if r.search != "" {
		counter = format.Count(int64(r.matches)) + " matches"
	}
	return strings.TrimSpace(r.fetch.indicator() + " " + counter)
}

func (r *Records) selectedRecord() (predictor.Record, bool) {
	idx := r.table.Cursor()
	if idx < 0 || idx >= len(r.records) {
		return predictor.Record{}, false
	}
	return r.records[idx], true
}

func (r *Records) updateSize() {
	innerWidth := max(r.width-4, 1)
	tableHeight := r.height - 2
	if r.search == "" {
		tableHeight -= r.pager.Height()
	}
	r.table.SetSize(innerWidth, max(tableHeight, 3))
	r.pager.SetWidth(innerWidth)
}

// Table columns for records.
var recordsColumns = []table.Column{
	{Title: "Rank", Width: 7, Align: table.AlignRight},
	{Title: "Username", Width: 20},
	{Title: "Region", Width: 8},
	{Title: "Old Rating", Width: 10, Align: table.AlignRight},
	{Title: "Delta", Width: 8, Align: table.AlignRight},
	{Title: "New Rating", Width: 10, Align: table.AlignRight},
}

func (r *Records) updateTableRows() {
	rows := make([]table.Row, 0, len(r.records))
	for _, record := range r.records {
		rows = append(rows, table.Row{
			ID: record.DataRegion + "/" + record.Username,
			Cells: []string{
				"#" + format.Count(int64(record.Rank)),
				r.usernameStyle(record.DataRegion).Render(record.Username),
				record.DataRegion,
				format.Rating(record.OldRating),
				r.renderDelta(record.DeltaRating),
				format.Rating(record.NewRating),
			},
		})
	}
	r.table.SetRows(rows)
	r.pager.SetLinks(r.links())
	r.updateSize()
}

func (r *Records) usernameStyle(region string) lipgloss.Style {
	if region == predictor.RegionCN {
		return r.styles.ChartCN
	}
	return r.styles.ChartUS
}

func (r *Records) renderDelta(delta *float64) string {
	text := format.Delta(delta)
	switch {
	case delta == nil:
		return r.styles.Muted.Render(text)
	case *delta > 0:
		return r.styles.TrendUp.Render(text)
	case *delta < 0:
		return r.styles.TrendDown.Render(text)
	default:
		return text
	}
}
