package dialogs

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Overlay places fg over bg with its top-left corner at row, col. Cells of
// bg outside fg keep their content and styling. Lines of fg that fall
// outside bg are dropped.
func Overlay(bg, fg string, row, col int) string {
	if fg == "" {
		return bg
	}
	row = max(row, 0)
	col = max(col, 0)

	bgLines := strings.Split(bg, "\n")
	for i, line := range strings.Split(fg, "\n") {
		target := row + i
		if target >= len(bgLines) {
			break
		}
		bgLines[target] = spliceLine(bgLines[target], line, col)
	}
	return strings.Join(bgLines, "\n")
}

func spliceLine(bg, fg string, col int) string {
	bgWidth := ansi.StringWidth(bg)
	fgWidth := ansi.StringWidth(fg)

	left := ansi.Truncate(bg, col, "")
	if pad := col - ansi.StringWidth(left); pad > 0 {
		left += strings.Repeat(" ", pad)
	}

	var right string
	if end := col + fgWidth; end < bgWidth {
		right = ansi.Cut(bg, end, bgWidth)
	}
	return left + "\x1b[m" + fg + "\x1b[m" + right
}
