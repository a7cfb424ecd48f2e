package charts

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestBuildValueYAxisLabels(t *testing.T) {
	tests := map[string]struct {
		maxVal int64
		height int
		want   map[int]string
	}{
		"zero height": {maxVal: 10, height: 0, want: map[int]string{}},
		"single row":  {maxVal: 10, height: 1, want: map[int]string{0: "0"}},
		"four rows":   {maxVal: 30000, height: 4, want: map[int]string{0: "30K", 1: "20K", 2: "10K", 3: "0"}},
		"negative":    {maxVal: -5, height: 2, want: map[int]string{0: "0", 1: "0"}},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := BuildValueYAxisLabels(tc.maxVal, tc.height)
			if len(got) != len(tc.want) {
				t.Fatalf("BuildValueYAxisLabels() = %v, want %v", got, tc.want)
			}
			for row, label := range tc.want {
				if got[row] != label {
					t.Fatalf("row %d = %q, want %q", row, got[row], label)
				}
			}
		})
	}
}

func TestApplyYAxisLabels(t *testing.T) {
	lines := ApplyYAxisLabels([]string{"ab", "cd"}, map[int]string{0: "10"}, 3, lipgloss.NewStyle())
	want := []string{" 10 ab", "    cd"}
	if strings.Join(lines, "\n") != strings.Join(want, "\n") {
		t.Fatalf("ApplyYAxisLabels() = %q, want %q", lines, want)
	}
}

func TestRenderCentered(t *testing.T) {
	got := RenderCentered(6, 3, "ab")
	want := "      \n  ab\n      "
	if got != want {
		t.Fatalf("RenderCentered() = %q, want %q", got, want)
	}
	if RenderCentered(6, 0, "ab") != "" {
		t.Fatalf("expected empty output for zero height")
	}
}

func TestCenterLabel(t *testing.T) {
	tests := []struct {
		label string
		width int
		want  string
	}{
		{label: "W1", width: 6, want: "  W1  "},
		{label: "W12", width: 6, want: " W12  "},
		{label: "W4201", width: 3, want: "W42"},
		{label: "x", width: 0, want: ""},
	}

	for _, tc := range tests {
		if got := CenterLabel(tc.label, tc.width); got != tc.want {
			t.Fatalf("CenterLabel(%q, %d) = %q, want %q", tc.label, tc.width, got, tc.want)
		}
	}
}
