package views

import (
	"charm.land/lipgloss/v2"

	"github.com/lccn-predictor/lazyrating/internal/ui/components/frame"
	"github.com/lccn-predictor/lazyrating/internal/ui/components/jsonview"
	"github.com/lccn-predictor/lazyrating/internal/ui/components/pager"
	"github.com/lccn-predictor/lazyrating/internal/ui/components/stackchart"
	"github.com/lccn-predictor/lazyrating/internal/ui/components/table"
	"github.com/lccn-predictor/lazyrating/internal/ui/components/timeseries"
	filterdialog "github.com/lccn-predictor/lazyrating/internal/ui/dialogs/filter"
)

func frameStylesFromTheme(styles Styles) frame.Styles {
	return frame.Styles{
		Focused: frame.StyleState{
			Title:  styles.Title,
			Muted:  styles.Muted,
			Filter: styles.FilterFocused,
			Border: styles.FocusBorder,
		},
		Blurred: frame.StyleState{
			Title:  styles.Title,
			Muted:  styles.Muted,
			Filter: styles.FilterBlurred,
			Border: styles.BorderStyle,
		},
	}
}

func filterDialogStylesFromTheme(styles Styles) filterdialog.Styles {
	return filterdialog.Styles{
		Title:       styles.Title,
		Border:      styles.FocusBorder,
		Prompt:      styles.Text,
		Text:        styles.Text,
		Placeholder: styles.Muted,
		Cursor:      styles.Text,
	}
}

func tableStylesFromTheme(styles Styles) table.Styles {
	return table.Styles{
		Text:           styles.Text,
		Muted:          styles.Muted,
		Header:         styles.TableHeader,
		Selected:       styles.TableSelected,
		Separator:      styles.TableSeparator,
		ScrollbarTrack: styles.ScrollbarTrack,
		ScrollbarThumb: styles.ScrollbarThumb,
	}
}

func pagerStylesFromTheme(styles Styles) pager.Styles {
	return pager.Styles{
		Active:   styles.PagerActive,
		Page:     styles.PagerPage,
		Disabled: styles.PagerDisabled,
		Muted:    styles.Muted,
	}
}

func stackChartStylesFromTheme(styles Styles) stackchart.Styles {
	return stackchart.Styles{
		Axis:     styles.ChartAxis,
		Muted:    styles.ChartLabel,
		Segments: []lipgloss.Style{styles.ChartCN, styles.ChartUS},
	}
}

func timeseriesStylesFromTheme(styles Styles) timeseries.Styles {
	return timeseries.Styles{
		Axis:  styles.ChartAxis,
		Label: styles.ChartLabel,
	}
}

func jsonStylesFromTheme(styles Styles) jsonview.Styles {
	return jsonview.Styles{
		Text:        styles.Text,
		Key:         styles.JSONKey,
		String:      styles.JSONString,
		Number:      styles.JSONNumber,
		Bool:        styles.JSONBool,
		Null:        styles.JSONNull,
		Punctuation: styles.JSONPunct,
		Muted:       styles.Muted,
	}
}

// seriesStyle cycles through the chart palette.
func seriesStyle(styles Styles) func(int) lipgloss.Style {
	return func(i int) lipgloss.Style {
		if len(styles.ChartSeries) == 0 {
			return styles.Text
		}
		return styles.ChartSeries[i%len(styles.ChartSeries)]
	}
}
