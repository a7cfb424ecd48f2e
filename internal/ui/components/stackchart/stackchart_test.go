package stackchart

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/golden"
)

func sampleBars() []Bar {
	return []Bar{
		{Label: "W1", Segments: []int64{400, 200}},
		{Label: "W2", Segments: []int64{600, 400}},
		{Label: "B3", Segments: []int64{200, 0}},
	}
}

func TestViewDimensions(t *testing.T) {
	tests := map[string]struct {
		width     int
		height    int
		bars      []Bar
		wantEmpty bool
		fullWidth bool
	}{
		"too narrow":   {width: 1, height: 5, bars: sampleBars(), wantEmpty: true},
		"too short":    {width: 10, height: 1, bars: sampleBars(), wantEmpty: true},
		"no data":      {width: 20, height: 5, bars: nil},
		"zero data":    {width: 20, height: 5, bars: []Bar{{Label: "A", Segments: []int64{0, 0}}}},
		"valid data":   {width: 30, height: 8, bars: sampleBars(), fullWidth: true},
		"no legend":    {width: 30, height: 4, bars: sampleBars(), fullWidth: true},
		"narrow slots": {width: 9, height: 6, bars: sampleBars(), fullWidth: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			m := New(
				WithSize(tc.width, tc.height),
				WithBars(tc.bars),
				WithLegend("CN", "US"),
				WithEmptyMessage("empty"),
			)
			output := m.View()
			if tc.wantEmpty {
				if output != "" {
					t.Fatalf("expected empty output, got %q", output)
				}
				return
			}

			lines := strings.Split(ansi.Strip(output), "\n")
			if len(lines) != tc.height {
				t.Fatalf("expected %d lines, got %d", tc.height, len(lines))
			}
			for i, line := range lines {
				w := ansi.StringWidth(line)
				if tc.fullWidth && w != tc.width {
					t.Fatalf("line %d: expected width %d, got %d", i, tc.width, w)
				}
				if !tc.fullWidth && w > tc.width {
					t.Fatalf("line %d: expected width <= %d, got %d", i, tc.width, w)
				}
			}
		})
	}
}

func TestBarData(t *testing.T) {
	m := New(WithLegend("CN", "US"))
	data := m.barData([]Bar{
		{Label: "W400", Segments: []int64{1200, -5}},
		{Label: "B130", Segments: []int64{300, 700, 10}},
	})
	if len(data) != 2 || data[0].Label != "W400" || data[1].Label != "B130" {
		t.Fatalf("barData() = %+v", data)
	}

	first := data[0].Values
	if len(first) != 2 || first[0].Name != "CN" || first[0].Value != 1200 {
		t.Fatalf("first bar = %+v", first)
	}
	if first[1].Name != "US" || first[1].Value != 0 {
		t.Fatalf("negative segment = %+v, want US with 0", first[1])
	}
	if extra := data[1].Values[2]; extra.Name != "" || extra.Value != 10 {
		t.Fatalf("segment without legend = %+v", extra)
	}
}

func TestViewKeepsLatestBars(t *testing.T) {
	bars := make([]Bar, 10)
	for i := range bars {
		bars[i] = Bar{Label: string(rune('A' + i)), Segments: []int64{int64(i + 1), 1}}
	}
	// A seven column plot fits four one column bars with gaps.
	m := New(WithSize(11, 6), WithBars(bars))
	lines := strings.Split(ansi.Strip(m.View()), "\n")
	if got := strings.TrimSpace(lines[len(lines)-1]); got != "G H I J" {
		t.Fatalf("labels = %q, want G H I J", got)
	}
}

func TestBarTotal(t *testing.T) {
	if got := (Bar{Segments: []int64{3, -1, 4}}).Total(); got != 7 {
		t.Fatalf("Total() = %d, want 7", got)
	}
}

func TestGoldenStackChart(t *testing.T) {
	m := New(
		WithSize(30, 8),
		WithBars(sampleBars()),
		WithLegend("CN", "US"),
	)
	output := ansi.Strip(m.View())
	golden.RequireEqual(t, []byte(output))
}
