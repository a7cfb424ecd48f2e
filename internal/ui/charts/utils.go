// Package charts holds axis and layout helpers shared by chart components.
package charts

import (
	"math"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/lccn-predictor/lazyrating/internal/ui/format"
)

// BuildValueYAxisLabels creates Y-axis labels for numeric values.
// Returns a map of row index to label string.
func BuildValueYAxisLabels(maxVal int64, height int) map[int]string {
	labels := make(map[int]string)
	if height <= 0 {
		return labels
	}
	if maxVal < 0 {
		maxVal = 0
	}
	tickCount := min(4, height)
	if tickCount < 2 {
		labels[height-1] = format.ShortNumber(0)
		return labels
	}
	for i := range tickCount {
		row := int(math.Round(float64(i) * float64(height-1) / float64(tickCount-1)))
		val := maxVal * int64(tickCount-1-i) / int64(tickCount-1)
		labels[row] = format.ShortNumber(val)
	}
	return labels
}

// MaxLabelWidth returns the maximum display width of labels in a map.
func MaxLabelWidth(labels map[int]string) int {
	maxWidth := 0
	for _, label := range labels {
		labelWidth := lipgloss.Width(label)
		if labelWidth > maxWidth {
			maxWidth = labelWidth
		}
	}
	return maxWidth
}

// ApplyYAxisLabels prepends Y-axis labels to chart lines.
// Each line gets a label if present in the labels map, or spacing otherwise.
func ApplyYAxisLabels(lines []string, labels map[int]string, width int, style lipgloss.Style) []string {
	if width <= 0 {
		return lines
	}
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		raw := labels[i]
		padWidth := max(width-lipgloss.Width(raw), 0)
		prefix := strings.Repeat(" ", padWidth)
		if raw != "" {
			raw = style.Render(raw)
		}
		out = append(out, prefix+raw+" "+line)
	}
	return out
}

// RenderCentered centers content within a given width and height.
// Handles multi-line content by centering vertically and horizontally.
func RenderCentered(width, height int, value string) string {
	if height < 1 {
		return ""
	}
	lines := make([]string, height)
	for i := range lines {
		lines[i] = strings.Repeat(" ", width)
	}
	if width <= 0 {
		return strings.Join(lines, "\n")
	}

	// Handle multi-line content
	contentLines := strings.Split(value, "\n")
	contentHeight := len(contentLines)
	startLine := max((height-contentHeight)/2, 0)

	maxWidthStyle := lipgloss.NewStyle()
	for i, contentLine := range contentLines {
		lineIdx := startLine + i
		if lineIdx >= height {
			break
		}
		trimmed := maxWidthStyle.MaxWidth(width).Render(contentLine)
		pad := max((width-lipgloss.Width(trimmed))/2, 0)
		lines[lineIdx] = strings.Repeat(" ", pad) + trimmed
	}

	return strings.Join(lines, "\n")
}

// CenterLabel truncates label to width and centers it with spaces.
func CenterLabel(label string, width int) string {
	if width <= 0 {
		return ""
	}
	label = ansi.Truncate(label, width, "")
	w := ansi.StringWidth(label)
	left := (width - w) / 2
	return strings.Repeat(" ", left) + label + strings.Repeat(" ", width-w-left)
}
