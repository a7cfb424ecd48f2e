// Package stackchart renders a stacked bar chart, one bar per labeled
// group, with a legend line on top and category labels below the axis.
package stackchart

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/NimbleMarkets/ntcharts/v2/barchart"

	"github.com/lccn-predictor/lazyrating/internal/ui/charts"
)

const legendChar = "■"

// Styles holds the visual styles for the chart.
type Styles struct {
	Axis     lipgloss.Style
	Muted    lipgloss.Style
	Segments []lipgloss.Style
}

// DefaultStyles returns sensible default styles.
func DefaultStyles() Styles {
	return Styles{
		Axis:  lipgloss.NewStyle(),
		Muted: lipgloss.NewStyle(),
	}
}

// Bar is one stacked column. Segments are drawn bottom up.
type Bar struct {
	Label    string
	Segments []int64
}

// Total returns the sum of all segments.
func (b Bar) Total() int64 {
	var total int64
	for _, v := range b.Segments {
		total += max(v, 0)
	}
	return total
}

// Model holds the chart state.
type Model struct {
	styles       Styles
	width        int
	height       int
	bars         []Bar
	legend       []string
	emptyMessage string
}

// Option is a functional option for configuring the chart.
type Option func(*Model)

// New creates a new chart model.
func New(opts ...Option) Model {
	m := Model{
		styles: DefaultStyles(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// WithStyles sets custom styles.
func WithStyles(s Styles) Option {
	return func(m *Model) { m.styles = s }
}

// WithSize sets the dimensions of the chart.
func WithSize(w, h int) Option {
	return func(m *Model) { m.width, m.height = w, h }
}

// WithBars sets the bars to display.
func WithBars(bars []Bar) Option {
	return func(m *Model) { m.bars = bars }
}

// WithLegend sets the segment names shown in the legend.
func WithLegend(names ...string) Option {
	return func(m *Model) { m.legend = names }
}

// WithEmptyMessage sets the message to display when there's no data.
func WithEmptyMessage(msg string) Option {
	return func(m *Model) { m.emptyMessage = msg }
}

// SetStyles updates the chart styles.
func (m *Model) SetStyles(s Styles) {
	m.styles = s
}

// SetSize updates the chart dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// SetBars updates the chart data.
func (m *Model) SetBars(bars []Bar) {
	m.bars = bars
}

// View renders the chart to a string.
func (m Model) View() string {
	if m.width < 2 || m.height < 2 {
		return ""
	}
	empty := func() string {
		return charts.RenderCentered(m.width, m.height, m.emptyMessage)
	}

	var maxTotal int64
	for _, bar := range m.bars {
		maxTotal = max(maxTotal, bar.Total())
	}
	if maxTotal == 0 {
		return empty()
	}

	showLegend := len(m.legend) > 0 && m.height >= 5
	// The canvas holds the bars, the axis row and the category labels.
	chartHeight := m.height
	if showLegend {
		chartHeight--
	}
	if chartHeight < 3 {
		return empty()
	}

	yLabels := charts.BuildValueYAxisLabels(maxTotal, chartHeight-1)
	labelWidth := charts.MaxLabelWidth(yLabels)
	plotWidth := m.width - labelWidth - 2
	if plotWidth < 1 {
		return empty()
	}

	// Every bar needs a column of its own plus a gap.
	bars := m.bars
	if limit := (plotWidth + 1) / 2; len(bars) > limit {
		bars = bars[len(bars)-limit:]
	}

	chart := barchart.New(plotWidth, chartHeight,
		barchart.WithStyles(m.styles.Axis, m.styles.Muted),
		barchart.WithNoAutoMaxValue(),
		barchart.WithMaxValue(float64(maxTotal)),
		barchart.WithBarGap(1),
		barchart.WithDataSet(m.barData(bars)),
	)
	chart.Draw()

	plot := strings.Split(chart.View(), "\n")
	axisRow := chartHeight - 2
	for i, line := range plot {
		switch {
		case i < axisRow:
			plot[i] = m.styles.Axis.Render("│") + line
		case i == axisRow:
			plot[i] = m.styles.Axis.Render("└") + line
		default:
			plot[i] = " " + line
		}
	}

	lines := make([]string, 0, m.height)
	if showLegend {
		lines = append(lines, m.renderLegend())
	}
	lines = append(lines, charts.ApplyYAxisLabels(plot, yLabels, labelWidth, m.styles.Muted)...)
	return strings.Join(lines, "\n")
}

// barData converts bars into stacked chart data. Segment i takes the i-th
// legend name and segment style.
func (m Model) barData(bars []Bar) []barchart.BarData {
	data := make([]barchart.BarData, 0, len(bars))
	for _, bar := range bars {
		values := make([]barchart.BarValue, 0, len(bar.Segments))
		for i, v := range bar.Segments {
			var name string
			if i < len(m.legend) {
				name = m.legend[i]
			}
			values = append(values, barchart.BarValue{
				Name:  name,
				Value: float64(max(v, 0)),
				Style: m.segmentStyle(i),
			})
		}
		data = append(data, barchart.BarData{Label: bar.Label, Values: values})
	}
	return data
}

func (m Model) segmentStyle(i int) lipgloss.Style {
	if len(m.styles.Segments) == 0 {
		return lipgloss.NewStyle()
	}
	return m.styles.Segments[i%len(m.styles.Segments)]
}

func (m Model) renderLegend() string {
	parts := make([]string, 0, len(m.legend))
	for i, name := range m.legend {
		parts = append(parts, m.segmentStyle(i).Render(legendChar)+" "+m.styles.Muted.Render(name))
	}
	return charts.CenterLabel(strings.Join(parts, "  "), m.width)
}
