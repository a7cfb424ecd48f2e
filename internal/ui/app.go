// Package ui renders the Bubble Tea application UI.
package ui

import (
	"log/slog"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/lccn-predictor/lazyrating/internal/devtools"
	"github.com/lccn-predictor/lazyrating/internal/predictor"
	"github.com/lccn-predictor/lazyrating/internal/ui/components/errorpopup"
	"github.com/lccn-predictor/lazyrating/internal/ui/components/navbar"
	"github.com/lccn-predictor/lazyrating/internal/ui/components/stackbar"
	"github.com/lccn-predictor/lazyrating/internal/ui/dialogs"
	"github.com/lccn-predictor/lazyrating/internal/ui/dialogs/help"
	"github.com/lccn-predictor/lazyrating/internal/ui/theme"
	"github.com/lccn-predictor/lazyrating/internal/ui/views"
)

// DefaultRefreshInterval is how often the active view reloads its data.
const DefaultRefreshInterval = 30 * time.Second

// tickMsg is sent every refresh interval to reload the active view.
type tickMsg time.Time

// App is the main application model.
type App struct {
	keys            KeyMap
	width           int
	height          int
	ready           bool
	stack           []views.View
	stackbar        stackbar.Model
	navbar          navbar.Model
	errorPopup      errorpopup.Model
	dialogs         dialogs.Stack
	theme           theme.Theme
	trend           theme.Trend
	styles          theme.Styles
	client          predictor.API
	tracker         *devtools.Tracker
	logger          *slog.Logger
	refresh         time.Duration
	saveTheme       func(name string) error
	connectionError error
}

// Option configures the App.
type Option func(*App)

// WithTracker sets the request tracker shown by the requests view.
func WithTracker(tracker *devtools.Tracker) Option {
	return func(a *App) {
		a.tracker = tracker
	}
}

// WithRefreshInterval sets the refresh interval. Zero disables refreshing.
func WithRefreshInterval(d time.Duration) Option {
	return func(a *App) {
		a.refresh = d
	}
}

// WithTheme selects the initial theme. Unknown names keep the default.
func WithTheme(name string) Option {
	return func(a *App) {
		if t, ok := theme.Lookup(name); ok {
			a.theme = t
		}
	}
}

// WithTrend sets the colors used for rating changes.
func WithTrend(trend theme.Trend) Option {
	return func(a *App) {
		a.trend = trend
	}
}

// WithThemeSaver sets the callback that persists the selected theme.
func WithThemeSaver(save func(name string) error) Option {
	return func(a *App) {
		a.saveTheme = save
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New creates a new App instance with the contests view at the bottom of
// the stack.
func New(client predictor.API, opts ...Option) App {
	keys := DefaultKeyMap()
	a := App{
		keys:    keys,
		theme:   theme.DefaultTheme,
		trend:   theme.TrendForLocale(""),
		client:  client,
		logger:  slog.New(slog.DiscardHandler),
		refresh: DefaultRefreshInterval,
		dialogs: dialogs.NewStack(),
		navbar: navbar.New(
			navbar.WithBrand("lazyrating"),
			navbar.WithHelp(keys.Help),
			navbar.WithQuit(keys.Quit),
		),
		stackbar:   stackbar.New(),
		errorPopup: errorpopup.New(),
	}

	for _, opt := range opts {
		opt(&a)
	}

	a.stack = []views.View{views.NewContests(client)}
	a.applyTheme(a.theme)
	a.syncChrome()
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(a.active().Init(), a.tickCmd())
}

func (a App) tickCmd() tea.Cmd {
	if a.refresh <= 0 {
		return nil
	}
	return tea.Tick(a.refresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return a.resize(msg)

	case tickMsg:
		cmd := a.updateActive(views.RefreshMsg{})
		return a, tea.Batch(cmd, a.tickCmd())

	case views.ConnectionErrorMsg:
		a.logger.Warn("fetch failed", "view", a.active().Name(), "error", msg.Err)
		a.connectionError = msg.Err
		return a, nil

	case views.CopiedMsg:
		if msg.Err != nil {
			a.logger.Warn("copy to clipboard", "what", msg.What, "error", msg.Err)
		} else {
			a.logger.Info("copied to clipboard", "what", msg.What)
		}
		return a, nil

	case dialogs.OpenDialogMsg, dialogs.CloseDialogMsg, dialogs.CloseAllDialogsMsg:
		var cmd tea.Cmd
		a.dialogs, cmd = a.dialogs.Update(msg)
		return a, cmd

	case views.ShowRecordsMsg:
		return a.push(views.NewRecords(a.client, msg.Contest))

	case views.ShowRankMsg:
		return a.push(views.NewRank(a.client, msg.Contest, msg.Record))

	case views.ShowQuestionsMsg:
		return a.push(views.NewQuestions(a.client, msg.Contest))

	case views.ShowRecordDetailMsg:
		return a.push(views.NewRecordDetail(msg.Record))

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	if result, ok := msg.(views.FetchResult); ok && result.FetchErr() == nil {
		a.connectionError = nil
	}

	// Fetch results and spinner ticks carry their own ids, so every stacked
	// view sees them and drops what is not its own.
	cmds := make([]tea.Cmd, 0, len(a.stack))
	for i := range a.stack {
		var cmd tea.Cmd
		a.stack[i], cmd = a.stack[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return a, tea.Batch(cmds...)
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.dialogs.HasDialogs() {
		var cmd tea.Cmd
		a.dialogs, cmd = a.dialogs.Update(msg)
		return a, cmd
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		return a, a.openHelp()

	case key.Matches(msg, a.keys.Theme):
		return a.cycleTheme()

	case key.Matches(msg, a.keys.Requests):
		if _, ok := a.active().(*views.Requests); ok {
			return a, nil
		}
		return a.push(views.NewRequests(a.tracker))

	case key.Matches(msg, a.keys.Refresh):
		return a, a.updateActive(views.RefreshMsg{})

	case key.Matches(msg, a.keys.Back):
		if interceptor, ok := a.active().(views.BackInterceptor); ok {
			if handled, cmd := interceptor.InterceptBack(); handled {
				return a, cmd
			}
		}
		if len(a.stack) > 1 {
			return a.pop()
		}
		return a, nil
	}

	return a, a.updateActive(msg)
}

func (a App) resize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	a.width = msg.Width
	a.height = msg.Height
	a.ready = true

	a.stackbar.SetWidth(msg.Width)
	a.navbar.SetWidth(msg.Width)

	width, height := a.contentSize()
	for i := range a.stack {
		a.stack[i] = a.stack[i].SetSize(width, height)
	}
	a.errorPopup.SetSize(width, height)

	var cmd tea.Cmd
	a.dialogs, cmd = a.dialogs.Update(msg)
	return a, cmd
}

func (a App) contentSize() (int, int) {
	return a.width, max(a.height-a.stackbar.Height()-a.navbar.Height(), 0)
}

func (a App) active() views.View {
	return a.stack[len(a.stack)-1]
}

func (a *App) updateActive(msg tea.Msg) tea.Cmd {
	top := len(a.stack) - 1
	var cmd tea.Cmd
	a.stack[top], cmd = a.stack[top].Update(msg)
	return cmd
}

func (a App) push(v views.View) (tea.Model, tea.Cmd) {
	width, height := a.contentSize()
	v = v.SetStyles(a.viewStyles()).SetSize(width, height)
	a.stack = append(a.stack, v)
	a.syncChrome()
	a.logger.Debug("push view", "view", v.Name(), "depth", len(a.stack))
	return a, v.Init()
}

func (a App) pop() (tea.Model, tea.Cmd) {
	top := a.active()
	if disposable, ok := top.(views.Disposable); ok {
		disposable.Dispose()
	}
	a.stack = a.stack[:len(a.stack)-1]
	a.syncChrome()
	a.logger.Debug("pop view", "view", top.Name(), "depth", len(a.stack))
	return a, a.updateActive(views.RefreshMsg{})
}

// syncChrome updates the breadcrumb and key hints for the active view.
func (a *App) syncChrome() {
	names := make([]string, len(a.stack))
	for i, v := range a.stack {
		names[i] = v.Name()
	}
	a.stackbar.SetStack(names)

	active := a.active()
	hints := active.ShortHelp()
	if provider, ok := active.(views.HintProvider); ok {
		hints = provider.HintBindings()
	}
	if len(a.stack) > 1 {
		hints = append([]key.Binding{a.keys.Back}, hints...)
	}
	a.navbar.SetHints(hints)
}

func (a App) openHelp() tea.Cmd {
	model := help.New(
		help.WithStyles(a.helpStyles()),
		help.WithSections(a.helpSections()),
	)
	return func() tea.Msg { return dialogs.OpenDialogMsg{Model: model} }
}

func (a App) helpSections() []help.Section {
	active := a.active()
	var sections []help.Section

	if provider, ok := active.(views.HelpProvider); ok {
		for _, section := range provider.HelpSections() {
			sections = append(sections, help.Section{Title: section.Title, Bindings: section.Bindings})
		}
	} else if bindings := active.ShortHelp(); len(bindings) > 0 {
		sections = append(sections, help.Section{Title: active.Name(), Bindings: bindings})
	}

	if provider, ok := active.(views.TableHelpProvider); ok {
		sections = append(sections, help.Section{
			Title:    "Table",
			Bindings: provider.TableHelp(),
			Column:   help.ColumnRight,
		})
	}

	var global []key.Binding
	for _, group := range a.keys.FullHelp() {
		global = append(global, group...)
	}
	sections = append(sections,
		help.Section{Title: "Global", Bindings: global, Column: help.ColumnRight},
		help.Section{Title: "Dialogs", Bindings: dialogs.DefaultKeyMap().KeyBindings(), Column: help.ColumnRight},
		help.Section{Title: "Theme", Lines: []string{a.theme.Name}, Column: help.ColumnLeft},
	)
	return sections
}

func (a App) cycleTheme() (tea.Model, tea.Cmd) {
	a.applyTheme(theme.Next(a.theme.Name))
	a.logger.Info("theme changed", "theme", a.theme.Name)

	if a.saveTheme == nil {
		return a, nil
	}
	name, save, logger := a.theme.Name, a.saveTheme, a.logger
	return a, func() tea.Msg {
		if err := save(name); err != nil {
			logger.Warn("save preferences", "error", err)
		}
		return nil
	}
}

func (a *App) applyTheme(t theme.Theme) {
	a.theme = t
	a.styles = theme.StylesFor(t, a.trend)

	a.navbar.SetStyles(navbar.Styles{
		Bar:   a.styles.NavBar,
		Brand: a.styles.ViewTitle,
		Key:   a.styles.NavKey,
		Item:  a.styles.NavItem,
		Quit:  a.styles.NavQuit,
	})
	a.stackbar.SetStyles(stackbar.Styles{
		Bar:        a.styles.StackBar,
		Item:       a.styles.StackItem,
		ArrowLeft:  a.styles.StackArrow,
		ArrowRight: a.styles.StackArrow,
	})
	a.errorPopup.SetStyles(errorpopup.Styles{
		Title:   a.styles.ErrorTitle,
		Message: a.styles.ViewMuted,
		Border:  a.styles.ErrorBorder,
	})

	viewStyles := a.viewStyles()
	for i := range a.stack {
		a.stack[i] = a.stack[i].SetStyles(viewStyles)
	}
}

func (a App) viewStyles() views.Styles {
	s := a.styles
	return views.Styles{
		Text:           s.ViewText,
		Muted:          s.ViewMuted,
		Title:          s.ViewTitle,
		Link:           s.Link,
		MetricLabel:    s.MetricLabel,
		MetricValue:    s.MetricValue,
		TableHeader:    s.TableHeader,
		TableSelected:  s.TableSelected,
		TableSeparator: s.TableSeparator,
		ScrollbarTrack: s.BorderStyle,
		ScrollbarThumb: s.FocusBorder,
		BorderStyle:    s.BorderStyle,
		FocusBorder:    s.FocusBorder,
		FilterFocused:  s.FilterFocused,
		FilterBlurred:  s.FilterBlurred,
		TrendUp:        s.TrendUp,
		TrendDown:      s.TrendDown,
		PagerActive:    s.PagerActive,
		PagerPage:      s.PagerPage,
		PagerDisabled:  s.PagerDisabled,
		ChartAxis:      s.ChartAxis,
		ChartLabel:     s.ChartLabel,
		ChartSeries:    s.ChartSeries,
		ChartCN:        s.ChartCN,
		ChartUS:        s.ChartUS,
		JSONKey:        s.JSONKey,
		JSONString:     s.JSONString,
		JSONNumber:     s.JSONNumber,
		JSONBool:       s.JSONBool,
		JSONNull:       s.JSONNull,
		JSONPunct:      s.JSONPunctuation,
		Error:          s.ErrorTitle,
	}
}

func (a App) helpStyles() help.Styles {
	return help.Styles{
		Title:   a.styles.ViewTitle,
		Border:  a.styles.FocusBorder,
		Section: a.styles.FilterFocused,
		Key:     a.styles.NavKey,
		Desc:    a.styles.ViewText,
		Muted:   a.styles.ViewMuted,
	}
}

// View implements tea.Model.
func (a App) View() tea.View {
	var v tea.View
	v.AltScreen = true

	if !a.ready {
		v.SetContent("Initializing...")
		return v
	}

	v.SetContent(a.render())
	return v
}

// render lays out the stack bar, the active view and the navbar, then
// draws the error popup and open dialogs over them.
func (a App) render() string {
	screen := lipgloss.JoinVertical(
		lipgloss.Left,
		a.stackbar.View(),
		a.active().View(),
		a.navbar.View(),
	)

	if a.connectionError != nil {
		a.errorPopup.SetMessage(a.connectionError.Error())
		box := a.errorPopup.View()
		_, height := a.contentSize()
		row := a.stackbar.Height() + (height-lipgloss.Height(box))/2
		col := (a.width - lipgloss.Width(box)) / 2
		screen = dialogs.Overlay(screen, box, row, col)
	}

	return a.dialogs.Render(screen)
}
