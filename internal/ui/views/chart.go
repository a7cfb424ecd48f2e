package views

import (
	"context"
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/lccn-predictor/lazyrating/internal/reshape"
	"github.com/lccn-predictor/lazyrating/internal/ui/components/frame"
	"github.com/lccn-predictor/lazyrating/internal/ui/components/timeseries"
)

// chartData is the reshaped result of one chart fetch.
type chartData struct {
	dataset reshape.Dataset
}

// entityLoader fetches the entities plotted by a chart view.
type entityLoader func(ctx context.Context) ([]reshape.Entity, error)

// Chart plots a reshaped dataset as a multi-series line chart. The chart
// model is created when the view is pushed and released on Dispose.
type Chart struct {
	name        string
	subject     string
	config      reshape.Config
	load        entityLoader
	width       int
	height      int
	styles      Styles
	frameStyles frame.Styles
	dataset     reshape.Dataset
	ready       bool
	chart       *timeseries.Model
	fetch       fetcher
}

func newChart(name, subject string, config reshape.Config, load entityLoader) *Chart {
	return &Chart{
		name:    name,
		subject: subject,
		config:  config,
		load:    load,
		fetch:   newFetcher("chart." + strings.ToLower(name)),
	}
}

// Init implements View.
func (c *Chart) Init() tea.Cmd {
	if c.chart == nil {
		chart := timeseries.New(
			timeseries.WithLegend(true),
			timeseries.WithEmptyMessage("No data yet"),
		)
		c.chart = &chart
		c.applyStyles()
		c.updateSize()
	}
	return c.fetchCmd()
}

// Update implements View.
func (c *Chart) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case fetched[chartData]:
		if !c.fetch.accept(msg.id) {
			return c, nil
		}
		if msg.err != nil {
			return c, connectionErrorCmd(msg.err)
		}
		c.dataset = msg.value.dataset
		c.ready = true
		c.updateSeries()
		return c, nil

	case spinner.TickMsg:
		return c, c.fetch.updateSpinner(msg)

	case RefreshMsg:
		return c, c.fetchCmd()
	}

	return c, nil
}

// View implements View.
func (c *Chart) View() string {
	if !c.ready || c.chart == nil {
		return renderStatusMessage(c.config.Title, "Loading "+strings.ToLower(c.name)+"...", c.styles, c.width, c.height)
	}

	header := c.styles.Muted.Render(c.axisCaption())
	box := frame.New(
		frame.WithStyles(c.frameStyles),
		frame.WithTitle(c.config.Title),
		frame.WithFilter(c.subject),
		frame.WithMeta(c.fetch.indicator()),
		frame.WithContent(header+"\n"+c.chart.View()),
		frame.WithPadding(1),
		frame.WithSize(c.width, c.height),
		frame.WithFocused(true),
	)
	return box.View()
}

// Name implements View.
func (c *Chart) Name() string {
	return c.name
}

// ShortHelp implements View.
func (c *Chart) ShortHelp() []key.Binding {
	return nil
}

// SetSize implements View.
func (c *Chart) SetSize(width, height int) View {
	c.width = width
	c.height = height
	c.updateSize()
	return c
}

// SetStyles implements View.
func (c *Chart) SetStyles(styles Styles) View {
	c.styles = styles
	c.frameStyles = frameStylesFromTheme(styles)
	c.fetch.spinner.Style = styles.Muted
	c.applyStyles()
	c.updateSeries()
	return c
}

// Dispose releases the chart model and cancels the in-flight request.
func (c *Chart) Dispose() {
	c.fetch.stop()
	c.chart = nil
	c.dataset = reshape.Dataset{}
	c.ready = false
}

// Dataset returns the last reshaped dataset.
func (c *Chart) Dataset() reshape.Dataset {
	return c.dataset
}

// Series returns the plotted series, or nil once disposed.
func (c *Chart) Series() []timeseries.Series {
	if c.chart == nil {
		return nil
	}
	return c.chart.Series()
}

func (c *Chart) fetchCmd() tea.Cmd {
	load := c.load
	config := c.config
	return fetch(&c.fetch, func(ctx context.Context) (chartData, error) {
		entities, err := load(ctx)
		if err != nil {
			return chartData{}, err
		}
		return chartData{dataset: reshape.Reshape(config, entities)}, nil
	})
}

func (c *Chart) axisCaption() string {
	return "x: " + c.config.XAxisName + "  y: " + c.config.YAxisName
}

func (c *Chart) applyStyles() {
	if c.chart == nil {
		return
	}
	c.chart.SetStyles(timeseriesStylesFromTheme(c.styles))
}

func (c *Chart) updateSeries() {
	if c.chart == nil {
		return
	}
	c.chart.SetSeries(timeseries.FromDataset(c.dataset, seriesStyle(c.styles))...)
}

func (c *Chart) updateSize() {
	if c.chart == nil {
		return
	}
	// Frame borders and the axis caption.
	c.chart.SetSize(max(c.width-4, 1), max(c.height-3, 1))
}
