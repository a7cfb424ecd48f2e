package views

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/lccn-predictor/lazyrating/internal/pagination"
)

func TestPageKeysTarget(t *testing.T) {
	t.Parallel()

	keys := defaultPageKeys()
	tests := []struct {
		name   string
		links  pagination.Links
		key    tea.KeyPressMsg
		want   int
		wantOK bool
	}{
		{"next", pagination.Window(95, 10, 5), keyText("]"), 6, true},
		{"prev", pagination.Window(95, 10, 5), keyText("["), 4, true},
		{"first", pagination.Window(95, 10, 5), keyText("<"), 1, true},
		{"last", pagination.Window(95, 10, 5), keyText(">"), 10, true},
		{"next on last page", pagination.Window(95, 10, 10), keyText("]"), 0, false},
		{"prev on first page", pagination.Window(95, 10, 1), keyText("["), 0, false},
		{"first on first page", pagination.Window(95, 10, 1), keyText("<"), 0, false},
		{"single page", pagination.Window(0, 10, 1), keyText(">"), 0, false},
		{"unrelated key", pagination.Window(95, 10, 5), keyText("x"), 0, false},
		{"beyond last page", pagination.Window(95, 10, 12), keyText("["), 0, false},
		{"no links", pagination.Links{}, keyText("]"), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := keys.target(tt.key, tt.links)
			if got != tt.want || ok != tt.wantOK {
				t.Fatalf("target = (%d, %v), want (%d, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestPageSkip(t *testing.T) {
	t.Parallel()

	if got := pageSkip(1, 25); got != 0 {
		t.Fatalf("pageSkip(1) = %d", got)
	}
	if got := pageSkip(3, 25); got != 50 {
		t.Fatalf("pageSkip(3) = %d", got)
	}
	if got := pageSkip(0, 25); got != 0 {
		t.Fatalf("pageSkip(0) = %d", got)
	}
}
