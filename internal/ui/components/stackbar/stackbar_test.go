package stackbar

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestStackBarRendersItems(t *testing.T) {
	m := New(WithWidth(60), WithStack([]string{"Contests", "Records"}))
	output := ansi.Strip(m.View())

	want := arrowLeft + " Contests " + arrowRight + " " + arrowLeft + " Records " + arrowRight
	if !strings.HasPrefix(output, want) {
		t.Fatalf("View() = %q, want prefix %q", output, want)
	}
	if w := ansi.StringWidth(output); w != 60 {
		t.Fatalf("width = %d, want 60", w)
	}
}

func TestStackBarDropsOldestWhenNarrow(t *testing.T) {
	m := New(WithWidth(24), WithStack([]string{"Contests", "Records", "Questions"}))
	output := ansi.Strip(m.View())

	if strings.Contains(output, "Contests") {
		t.Fatalf("expected oldest entry dropped, got %q", output)
	}
	if !strings.Contains(output, "Questions") {
		t.Fatalf("expected current entry kept, got %q", output)
	}
}

func TestStackBarZeroWidth(t *testing.T) {
	m := New(WithStack([]string{"Contests"}))
	if got := m.View(); got != "" {
		t.Fatalf("View() = %q, want empty", got)
	}
}
