package messagebox

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/golden"
)

func TestViewDimensions(t *testing.T) {
	tests := map[string]struct {
		width     int
		height    int
		wantEmpty bool
	}{
		"zero width":   {width: 0, height: 5, wantEmpty: true},
		"zero height":  {width: 20, height: 0, wantEmpty: false},
		"short height": {width: 20, height: 3, wantEmpty: false},
		"normal":       {width: 30, height: 6, wantEmpty: false},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			m := New(
				WithSize(tc.width, tc.height),
				WithTitle("Empty"),
				WithMessage("No data"),
			)
			output := m.View()
			if tc.wantEmpty {
				if output != "" {
					t.Fatalf("expected empty output, got %q", output)
				}
				return
			}

			lines := strings.Split(ansi.Strip(output), "\n")
			expectedHeight := max(tc.height, 5)
			if len(lines) != expectedHeight {
				t.Fatalf("want %d lines, got %d", expectedHeight, len(lines))
			}
			for i, line := range lines {
				if lipgloss.Width(line) != tc.width {
					t.Fatalf("line %d: want width %d, got %d", i, tc.width, lipgloss.Width(line))
				}
			}
		})
	}
}

func TestMultilineMessageCentered(t *testing.T) {
	m := New(WithSize(30, 7), WithTitle("Error"), WithMessage("Something went wrong\ntry again later"))
	lines := strings.Split(ansi.Strip(m.View()), "\n")
	if !strings.Contains(lines[2], "Something went wrong") {
		t.Fatalf("line 2 = %q, want first message line", lines[2])
	}
	if !strings.Contains(lines[3], "try again later") {
		t.Fatalf("line 3 = %q, want second message line", lines[3])
	}
}

func TestLongTitleOmitted(t *testing.T) {
	m := New(WithSize(10, 5), WithTitle("A very long title"), WithMessage("x"))
	top := strings.Split(ansi.Strip(m.View()), "\n")[0]
	if strings.Contains(top, "very") {
		t.Fatalf("top border %q kept overflowing title", top)
	}
	if lipgloss.Width(top) != 10 {
		t.Fatalf("top width = %d, want 10", lipgloss.Width(top))
	}
}

func TestGoldenLoading(t *testing.T) {
	output := ansi.Strip(Render(DefaultStyles(), "Records", "Loading...", 22, 5))
	golden.RequireEqual(t, []byte(output))
}
