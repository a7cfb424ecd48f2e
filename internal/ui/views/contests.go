package views

import (
	"cmp"
	"context"
	"slices"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/lccn-predictor/lazyrating/internal/mathutil"
	"github.com/lccn-predictor/lazyrating/internal/pagination"
	"github.com/lccn-predictor/lazyrating/internal/predictor"
	"github.com/lccn-predictor/lazyrating/internal/ui/components/frame"
	"github.com/lccn-predictor/lazyrating/internal/ui/components/pager"
	"github.com/lccn-predictor/lazyrating/internal/ui/components/stackchart"
	"github.com/lccn-predictor/lazyrating/internal/ui/components/table"
	"github.com/lccn-predictor/lazyrating/internal/ui/format"
)

// ContestsPageSize is the number of contests per page.
const ContestsPageSize = 10

const entrantsTitle = "Number of Contest Entrants"

// contestsPage is one page of predicted contests.
type contestsPage struct {
	contests []predictor.Contest
	total    int
}

// contestEntrants holds the entrant counts of the most recent contests.
type contestEntrants []predictor.ContestUserNum

type contestsKeyMap struct {
	pages  pageKeys
	Open   key.Binding
	CopyUS key.Binding
	CopyCN key.Binding
}

func defaultContestsKeyMap() contestsKeyMap {
	return contestsKeyMap{
		pages:  defaultPageKeys(),
		Open:   helpBinding([]string{"enter"}, "enter", "records"),
		CopyUS: helpBinding([]string{"c"}, "c", "copy LCUS ranking"),
		CopyCN: helpBinding([]string{"C"}, "C", "copy LCCN ranking"),
	}
}

// Contests lists predicted contests under the entrants chart.
type Contests struct {
	client      predictor.API
	keys        contestsKeyMap
	width       int
	height      int
	styles      Styles
	frameStyles frame.Styles
	page        int
	contests    []predictor.Contest
	total       int
	ready       bool
	table       table.Model
	pager       pager.Model
	chart       stackchart.Model
	pageFetch   fetcher
	chartFetch  fetcher
}

// NewContests creates the contests view.
func NewContests(client predictor.API) *Contests {
	return &Contests{
		client: client,
		keys:   defaultContestsKeyMap(),
		page:   1,
		table: table.New(
			table.WithColumns(contestsColumns),
			table.WithEmptyMessage("No predicted contests"),
		),
		pager: pager.New(),
		chart: stackchart.New(
			stackchart.WithLegend(predictor.RegionCN, predictor.RegionUS),
			stackchart.WithEmptyMessage("No entrants yet"),
		),
		pageFetch:  newFetcher("contests.page"),
		chartFetch: newFetcher("contests.entrants"),
	}
}

// Init implements View.
func (c *Contests) Init() tea.Cmd {
	return tea.Batch(c.fetchPageCmd(), c.fetchEntrantsCmd())
}

// Update implements View.
func (c *Contests) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case fetched[contestsPage]:
		if !c.pageFetch.accept(msg.id) {
			return c, nil
		}
		if msg.err != nil {
			return c, connectionErrorCmd(msg.err)
		}
		c.contests = msg.value.contests
		c.total = msg.value.total
		c.ready = true
		c.updateTableRows()
		return c, nil

	case fetched[contestEntrants]:
		if !c.chartFetch.accept(msg.id) {
			return c, nil
		}
		if msg.err != nil {
			return c, connectionErrorCmd(msg.err)
		}
		c.chart.SetBars(entrantBars(msg.value))
		return c, nil

	case spinner.TickMsg:
		return c, tea.Batch(c.pageFetch.updateSpinner(msg), c.chartFetch.updateSpinner(msg))

	case RefreshMsg:
		return c, tea.Batch(c.fetchPageCmd(), c.fetchEntrantsCmd())

	case tea.KeyMsg:
		if page, ok := c.keys.pages.target(msg, c.links()); ok {
			c.page = page
			c.table.SetCursor(0)
			return c, c.fetchPageCmd()
		}
		switch {
		case key.Matches(msg, c.keys.Open):
			if contest, ok := c.selectedContest(); ok {
				return c, func() tea.Msg { return ShowRecordsMsg{Contest: contest} }
			}
			return c, nil
		case key.Matches(msg, c.keys.CopyUS):
			if contest, ok := c.selectedContest(); ok {
				return c, copyCmd("LCUS ranking URL", contest.OfficialRankingURL(predictor.RegionUS))
			}
			return c, nil
		case key.Matches(msg, c.keys.CopyCN):
			if contest, ok := c.selectedContest(); ok {
				return c, copyCmd("LCCN ranking URL", contest.OfficialRankingURL(predictor.RegionCN))
			}
			return c, nil
		}

		c.table, _ = c.table.Update(msg)
		return c, nil
	}

	return c, nil
}

// View implements View.
func (c *Contests) View() string {
	if !c.ready {
		return renderStatusMessage("Contests", "Loading contests...", c.styles, c.width, c.height)
	}

	chartHeight := c.chartHeight()
	sections := make([]string, 0, 2)
	if chartHeight > 0 {
		box := frame.New(
			frame.WithStyles(c.frameStyles),
			frame.WithTitle(entrantsTitle),
			frame.WithMeta(c.chartFetch.indicator()),
			frame.WithContent(c.chart.View()),
			frame.WithPadding(1),
			frame.WithSize(c.width, chartHeight),
		)
		sections = append(sections, box.View())
	}

	box := frame.New(
		frame.WithStyles(c.frameStyles),
		frame.WithTitle("Predicted Contests"),
		frame.WithMeta(strings.TrimSpace(c.pageFetch.indicator()+" "+format.Count(int64(c.total))+" contests")),
		frame.WithContent(c.table.View()+"\n"+c.pager.View()),
		frame.WithPadding(1),
		frame.WithSize(c.width, c.height-chartHeight),
		frame.WithFocused(true),
	)
	sections = append(sections, box.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Name implements View.
func (c *Contests) Name() string {
	return "Contests"
}

// ShortHelp implements View.
func (c *Contests) ShortHelp() []key.Binding {
	return nil
}

// HintBindings implements HintProvider.
func (c *Contests) HintBindings() []key.Binding {
	return []key.Binding{c.keys.Open, c.keys.pages.Prev, c.keys.pages.Next, c.keys.CopyUS}
}

// HelpSections implements HelpProvider.
func (c *Contests) HelpSections() []HelpSection {
	return []HelpSection{
		{
			Title:    "Contests",
			Bindings: []key.Binding{c.keys.Open, c.keys.CopyUS, c.keys.CopyCN},
		},
		{
			Title:    "Pages",
			Bindings: c.keys.pages.bindings(),
		},
	}
}

// TableHelp implements TableHelpProvider.
func (c *Contests) TableHelp() []key.Binding {
	return tableHelpBindings(c.table.KeyMap)
}

// SetSize implements View.
func (c *Contests) SetSize(width, height int) View {
	c.width = width
	c.height = height
	c.updateSize()
	return c
}

// SetStyles implements View.
func (c *Contests) SetStyles(styles Styles) View {
	c.styles = styles
	c.frameStyles = frameStylesFromTheme(styles)
	c.table.SetStyles(tableStylesFromTheme(styles))
	c.pager.SetStyles(pagerStylesFromTheme(styles))
	c.chart.SetStyles(stackChartStylesFromTheme(styles))
	c.pageFetch.spinner.Style = styles.Muted
	c.chartFetch.spinner.Style = styles.Muted
	c.updateTableRows()
	return c
}

// Dispose cancels in-flight requests when the view leaves the stack.
func (c *Contests) Dispose() {
	c.pageFetch.stop()
	c.chartFetch.stop()
}

// Page returns the current 1-based page.
func (c *Contests) Page() int {
	return c.page
}

func (c *Contests) fetchPageCmd() tea.Cmd {
	client := c.client
	skip := pageSkip(c.page, ContestsPageSize)
	return fetch(&c.pageFetch, func(ctx context.Context) (contestsPage, error) {
		total, err := client.ContestsCount(ctx)
		if err != nil {
			return contestsPage{}, err
		}
		contests, err := client.Contests(ctx, skip, ContestsPageSize)
		if err != nil {
			return contestsPage{}, err
		}
		return contestsPage{contests: contests, total: total}, nil
	})
}

func (c *Contests) fetchEntrantsCmd() tea.Cmd {
	client := c.client
	return fetch(&c.chartFetch, func(ctx context.Context) (contestEntrants, error) {
		nums, err := client.ContestsUserNum(ctx)
		if err != nil {
			return nil, err
		}
		return contestEntrants(nums), nil
	})
}

func (c *Contests) links() pagination.Links {
	return pagination.Window(c.total, ContestsPageSize, c.page)
}

func (c *Contests) selectedContest() (predictor.Contest, bool) {
	idx := c.table.Cursor()
	if idx < 0 || idx >= len(c.contests) {
		return predictor.Contest{}, false
	}
	return c.contests[idx], true
}

// chartHeight reserves a third of the view for the chart when there is room.
func (c *Contests) chartHeight() int {
	if c.height < 24 {
		return 0
	}
	return mathutil.Clamp(c.height/3, 8, 14)
}

func (c *Contests) updateSize() {
	chartHeight := c.chartHeight()
	innerWidth := max(c.width-4, 1)
	c.chart.SetSize(innerWidth, max(chartHeight-2, 0))
	// Frame borders and the pager line.
	c.table.SetSize(innerWidth, max(c.height-chartHeight-3, 3))
	c.pager.SetWidth(innerWidth)
}

// Table columns for contests.
var contestsColumns = []table.Column{
	{Title: "#", Width: 3, Align: table.AlignRight},
	{Title: "Predicted Contest", Width: 24},
	{Title: "Started", Width: 16},
	{Title: "Predicted", Width: 16},
	{Title: "Official Result", Width: 11},
}

func (c *Contests) updateTableRows() {
	rows := make([]table.Row, 0, len(c.contests))
	for i, contest := range c.contests {
		title := c.styles.Link.Render(contest.Title)
		predicted := format.DateTime(contest.PredictTime.Time)
		if !contest.Predicted() {
			predicted = c.styles.Muted.Render("pending")
		}
		rows = append(rows, table.Row{
			ID: contest.TitleSlug,
			Cells: []string{
				strconv.Itoa(i + 1),
				title,
				format.DateTime(contest.StartTime.Time),
				predicted,
				"LCCN / LCUS",
			},
		})
	}
	c.table.SetRows(rows)
	c.pager.SetLinks(c.links())
	c.updateSize()
}

// entrantBars orders contests by start time and stacks CN over US.
func entrantBars(nums []predictor.ContestUserNum) []stackchart.Bar {
	sorted := slices.Clone(nums)
	slices.SortStableFunc(sorted, func(a, b predictor.ContestUserNum) int {
		return cmp.Compare(a.StartTime.Unix(), b.StartTime.Unix())
	})
	bars := make([]stackchart.Bar, 0, len(sorted))
	for _, n := range sorted {
		bars = append(bars, stackchart.Bar{
			Label:    contestLabel(n.Title),
			Segments: []int64{int64(n.UserNumCN), int64(n.UserNumUS)},
		})
	}
	return bars
}

// contestLabel shortens "Weekly Contest 400" to "W400" and
// "Biweekly Contest 130" to "Biw130".
func contestLabel(title string) string {
	return strings.ReplaceAll(title, "eekly Contest ", "")
}
