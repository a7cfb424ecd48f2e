package scrollbar

import (
	"strings"
	"testing"
)

func TestThumb(t *testing.T) {
	tests := map[string]struct {
		height, total, visible, offset int
		wantStart, wantSize            int
		wantOK                         bool
	}{
		"page fits":          {height: 10, total: 25, visible: 25, offset: 0},
		"no rows":            {height: 10, total: 0, visible: 10, offset: 0},
		"zero height":        {height: 0, total: 25, visible: 10, offset: 0},
		"first rows":         {height: 10, total: 25, visible: 10, offset: 0, wantStart: 0, wantSize: 4, wantOK: true},
		"middle of page":     {height: 10, total: 25, visible: 10, offset: 8, wantStart: 3, wantSize: 4, wantOK: true},
		"last rows":          {height: 10, total: 25, visible: 10, offset: 15, wantStart: 6, wantSize: 4, wantOK: true},
		"thumb never hidden": {height: 4, total: 1000, visible: 1, offset: 500, wantStart: 2, wantSize: 1, wantOK: true},
		"offset past end":    {height: 5, total: 20, visible: 5, offset: 40, wantStart: 4, wantSize: 1, wantOK: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			start, size, ok := Thumb(tc.height, tc.total, tc.visible, tc.offset)
			if ok != tc.wantOK || start != tc.wantStart || size != tc.wantSize {
				t.Fatalf("Thumb() = (%d, %d, %v), want (%d, %d, %v)",
					start, size, ok, tc.wantStart, tc.wantSize, tc.wantOK)
			}
		})
	}
}

func TestViewWithoutOverflowIsBlank(t *testing.T) {
	bar := New(WithSize(1, 3), WithRange(25, 25, 0))
	if got, want := bar.View(), " \n \n "; got != want {
		t.Fatalf("View() = %q, want %q", got, want)
	}
}

func TestViewDrawsThumbOverTrack(t *testing.T) {
	// Rows 8..17 of a 25 row records page in a ten line viewport.
	bar := New(WithSize(1, 10), WithRange(25, 10, 8))
	want := strings.Join([]string{"░", "░", "░", "█", "█", "█", "█", "░", "░", "░"}, "\n")
	if got := bar.View(); got != want {
		t.Fatalf("View() = %q, want %q", got, want)
	}
}

func TestViewZeroSize(t *testing.T) {
	if got := New(WithSize(0, 5), WithRange(25, 10, 0)).View(); got != "" {
		t.Fatalf("View() = %q, want empty", got)
	}
	if got := New(WithRange(25, 10, 0)).View(); got != "" {
		t.Fatalf("View() without height = %q, want empty", got)
	}
}
