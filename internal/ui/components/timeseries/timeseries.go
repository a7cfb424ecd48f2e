// Package timeseries provides a multi-series minute line chart bound to
// reshaped datasets.
package timeseries

import (
	"math"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	tslc "github.com/NimbleMarkets/ntcharts/v2/linechart/timeserieslinechart"
	"github.com/charmbracelet/x/ansi"

	"github.com/lccn-predictor/lazyrating/internal/reshape"
	"github.com/lccn-predictor/lazyrating/internal/ui/charts"
)

const legendMarker = "■"

// Styles holds the visual styles for the timeseries chart.
type Styles struct {
	Axis  lipgloss.Style // Style for chart axes
	Label lipgloss.Style // Style for axis labels
}

// DefaultStyles returns sensible default styles.
func DefaultStyles() Styles {
	return Styles{
		Axis:  lipgloss.NewStyle(),
		Label: lipgloss.NewStyle(),
	}
}

// Series represents a single data series to plot.
type Series struct {
	Name     string         // Unique name for this series
	EndLabel string         // Legend text, usually "name: last value"
	Minutes  []int          // Minute offsets, 1-based
	Values   []float64      // Values at each minute
	Style    lipgloss.Style // Line style for this series
}

// Len returns the number of plottable points.
func (s Series) Len() int {
	return min(len(s.Minutes), len(s.Values))
}

// FromDataset binds every series descriptor of ds to its sub-dataset.
// Series keep their own lengths. styleFor picks a style by series index.
func FromDataset(ds reshape.Dataset, styleFor func(int) lipgloss.Style) []Series {
	out := make([]Series, 0, len(ds.Series))
	for i, desc := range ds.Series {
		subset, ok := ds.Subset(desc.Name)
		if !ok {
			continue
		}
		s := Series{
			Name:     desc.Name,
			EndLabel: desc.EndLabel,
			Minutes:  make([]int, len(subset.Rows)),
			Values:   make([]float64, len(subset.Rows)),
		}
		for j, row := range subset.Rows {
			s.Minutes[j] = row.Minute
			s.Values[j] = row.Value
		}
		if styleFor != nil {
			s.Style = styleFor(i)
		}
		out = append(out, s)
	}
	return out
}

// Model holds the timeseries chart state.
type Model struct {
	styles       Styles
	width        int
	height       int
	series       []Series
	xFormatter   func(int, float64) string
	yFormatter   func(int, float64) string
	xSteps       int
	ySteps       int
	legend       bool
	emptyMessage string
}

// Option is a functional option for configuring the timeseries chart.
type Option func(*Model)

// New creates a new timeseries chart model with functional options.
func New(opts ...Option) Model {
	m := Model{
		styles:     DefaultStyles(),
		xSteps:     4,
		ySteps:     2,
		xFormatter: MinuteLabel,
		yFormatter: ValueLabel,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// WithStyles sets custom styles for the chart.
func WithStyles(s Styles) Option {
	return func(m *Model) { m.styles = s }
}

// WithSize sets the dimensions of the chart.
func WithSize(w, h int) Option {
	return func(m *Model) { m.width, m.height = w, h }
}

// WithSeries sets the data series to display.
func WithSeries(series ...Series) Option {
	return func(m *Model) { m.series = series }
}

// WithXYSteps sets the number of label steps for X and Y axes.
func WithXYSteps(xSteps, ySteps int) Option {
	return func(m *Model) { m.xSteps, m.ySteps = xSteps, ySteps }
}

// WithLegend enables the legend line under the chart.
func WithLegend(enabled bool) Option {
	return func(m *Model) { m.legend = enabled }
}

// WithEmptyMessage sets the message to display when there's no data.
func WithEmptyMessage(msg string) Option {
	return func(m *Model) { m.emptyMessage = msg }
}

// WithYFormatter sets the Y-axis label formatter.
func WithYFormatter(formatter func(int, float64) string) Option {
	return func(m *Model) { m.yFormatter = formatter }
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

// SetSeries updates the data series.
func (m *Model) SetSeries(series ...Series) {
	m.series = series
}

// SetEmptyMessage updates the empty state message.
func (m *Model) SetEmptyMessage(msg string) {
	m.emptyMessage = msg
}

// Series returns the plotted series.
func (m Model) Series() []Series {
	return m.series
}

// MinuteLabel formats an X tick as a minute offset.
func MinuteLabel(_ int, v float64) string {
	return reshape.FormatValue(math.Round(v / 60))
}

// ValueLabel formats a Y tick without decimals.
func ValueLabel(_ int, v float64) string {
	return reshape.FormatValue(math.Round(v))
}

// minuteTime places a minute offset on the chart's time axis.
func minuteTime(minute int) time.Time {
	return time.Unix(int64(minute)*60, 0).UTC()
}

// View renders the timeseries chart to a string.
func (m Model) View() string {
	if m.width < 1 || m.height < 1 {
		return ""
	}

	minMinute, maxMinute, minValue, maxValue, ok := m.bounds()
	if !ok {
		return charts.RenderCentered(m.width, m.height, m.emptyMessage)
	}

	chartHeight := m.height
	var legend string
	if m.legend && m.height >= 4 {
		legend = m.renderLegend()
		chartHeight--
	}

	if maxMinute <= minMinute {
		maxMinute = minMinute + 1
	}
	if maxValue <= minValue {
		maxValue = minValue + 1
	}

	chart := tslc.New(m.width, chartHeight,
		tslc.WithXYSteps(m.xSteps, m.ySteps),
		tslc.WithXLabelFormatter(m.xFormatter),
		tslc.WithYLabelFormatter(m.yFormatter),
		tslc.WithAxesStyles(m.styles.Axis, m.styles.Label),
		tslc.WithTimeRange(minuteTime(minMinute), minuteTime(maxMinute)),
		tslc.WithYRange(minValue, maxValue),
	)
	chart.AutoMinX = false
	chart.AutoMaxX = false
	chart.AutoMinY = false
	chart.AutoMaxY = false

	for i, series := range m.series {
		if i == 0 {
			chart.SetStyle(series.Style)
		} else {
			chart.SetDataSetStyle(series.Name, series.Style)
		}
		for j := range series.Len() {
			point := tslc.TimePoint{Time: minuteTime(series.Minutes[j]), Value: series.Values[j]}
			if i == 0 {
				chart.Push(point)
			} else {
				chart.PushDataSet(series.Name, point)
			}
		}
	}

	chart.DrawBrailleAll()
	view := chart.View()
	if legend != "" {
		view += "\n" + legend
	}
	return view
}

// bounds returns the minute and value extent across all series.
func (m Model) bounds() (int, int, float64, float64, bool) {
	minMinute, maxMinute := math.MaxInt, math.MinInt
	minValue, maxValue := math.Inf(1), math.Inf(-1)
	found := false
	for _, series := range m.series {
		for j := range series.Len() {
			found = true
			minMinute = min(minMinute, series.Minutes[j])
			maxMinute = max(maxMinute, series.Minutes[j])
			minValue = min(minValue, series.Values[j])
			maxValue = max(maxValue, series.Values[j])
		}
	}
	if !found {
		return 0, 0, 0, 0, false
	}
	return minMinute, maxMinute, min(minValue, 0), maxValue, true
}

// renderLegend lists series end labels, dropping those that do not fit.
func (m Model) renderLegend() string {
	var b strings.Builder
	used := 0
	for _, series := range m.series {
		text := series.EndLabel
		if text == "" {
			text = series.Name
		}
		item := series.Style.Render(legendMarker) + " " + m.styles.Label.Render(text)
		width := ansi.StringWidth(item)
		sep := 0
		if used > 0 {
			sep = 2
		}
		if used+sep+width > m.width {
			break
		}
		if sep > 0 {
			b.WriteString("  ")
		}
		b.WriteString(item)
		used += sep + width
	}
	return b.String() + strings.Repeat(" ", max(m.width-used, 0))
}
