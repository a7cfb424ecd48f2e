package filter

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/lccn-predictor/lazyrating/internal/ui/dialogs"
)

func press(t *testing.T, m *Model, msg tea.KeyPressMsg) []tea.Msg {
	t.Helper()
	next, cmd := m.Update(msg)
	if next != m {
		t.Fatalf("Update returned %T, want the same *Model", next)
	}
	return drain(cmd)
}

func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, drain(c)...)
		}
		return out
	default:
		return []tea.Msg{msg}
	}
}

func enter() tea.KeyPressMsg { return tea.KeyPressMsg(tea.Key{Code: tea.KeyEnter}) }
func esc() tea.KeyPressMsg   { return tea.KeyPressMsg(tea.Key{Code: tea.KeyEsc}) }
func ctrlU() tea.KeyPressMsg { return tea.KeyPressMsg(tea.Key{Code: 'u', Mod: tea.ModCtrl}) }

func TestSearchDialogEnter(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		applied    string
		typed      string
		wantAction Action
		wantQuery  string
	}{
		"first username":    {applied: "", typed: "  lee215 ", wantAction: ActionApply, wantQuery: "lee215"},
		"another username":  {applied: "lee215", typed: "votrubac", wantAction: ActionApply, wantQuery: "votrubac"},
		"blank clears":      {applied: "lee215", typed: "   ", wantAction: ActionClear, wantQuery: ""},
		"same after trim":   {applied: "lee215", typed: " lee215 ", wantAction: ActionNone, wantQuery: "lee215"},
		"nothing to search": {applied: "", typed: "", wantAction: ActionNone, wantQuery: ""},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			m := New(WithQuery(tc.applied))
			m.Init()
			m.input.SetValue(tc.typed)
			m.input.CursorEnd()

			var action *ActionMsg
			closed := false
			for _, msg := range press(t, m, enter()) {
				switch v := msg.(type) {
				case ActionMsg:
					action = &v
				case dialogs.CloseDialogMsg:
					closed = true
				default:
					t.Fatalf("unexpected message %T", msg)
				}
			}

			if !closed {
				t.Fatal("expected CloseDialogMsg")
			}
			if tc.wantAction == ActionNone {
				if action != nil {
					t.Fatalf("unexpected %+v", *action)
				}
			} else if action == nil || action.Action != tc.wantAction || action.Query != tc.wantQuery {
				t.Fatalf("action = %+v, want %v %q", action, tc.wantAction, tc.wantQuery)
			}
			if m.Query() != tc.wantQuery {
				t.Fatalf("Query() = %q, want %q", m.Query(), tc.wantQuery)
			}
		})
	}
}

func TestSearchDialogClearThenEscKeepsAppliedUsername(t *testing.T) {
	t.Parallel()

	m := New(WithQuery("lee215"))
	m.Init()

	if msgs := press(t, m, ctrlU()); len(msgs) != 0 {
		t.Fatalf("ctrl+u messages = %v, want none", msgs)
	}
	if got := m.input.Value(); got != "" {
		t.Fatalf("input = %q, want empty", got)
	}

	msgs := press(t, m, esc())
	if len(msgs) != 1 {
		t.Fatalf("messages = %d, want 1", len(msgs))
	}
	if _, ok := msgs[0].(dialogs.CloseDialogMsg); !ok {
		t.Fatalf("message = %T, want dialogs.CloseDialogMsg", msgs[0])
	}
	if m.Query() != "lee215" {
		t.Fatalf("Query() = %q, want lee215", m.Query())
	}
}

func TestSearchDialogTypingEditsUsername(t *testing.T) {
	t.Parallel()

	m := New()
	m.Init()
	for _, r := range "lee" {
		press(t, m, tea.KeyPressMsg(tea.Key{Code: r, Text: string(r)}))
	}
	if got := m.input.Value(); got != "lee" {
		t.Fatalf("input = %q, want lee", got)
	}
	if m.Query() != "" {
		t.Fatalf("Query() = %q before enter, want empty", m.Query())
	}
}

func TestSearchDialogWithQueryTrims(t *testing.T) {
	t.Parallel()

	m := New(WithQuery("  lee215\t"))
	if m.Query() != "lee215" {
		t.Fatalf("Query() = %q, want lee215", m.Query())
	}

	m = New(WithQuery(strings.Repeat("a", 100)))
	if got := len(m.input.Value()); got != charLimit {
		t.Fatalf("input length = %d, want %d", got, charLimit)
	}
}

func TestSearchDialogPlaceholder(t *testing.T) {
	t.Parallel()

	m := New(WithQuery("lee215"))
	if m.input.Placeholder != "" {
		t.Fatalf("blurred placeholder = %q, want empty while a username is applied", m.input.Placeholder)
	}
	m.Init()
	if m.input.Placeholder != defaultPlaceholder {
		t.Fatalf("focused placeholder = %q, want %q", m.input.Placeholder, defaultPlaceholder)
	}

	m = New(WithPlaceholder("handle"))
	if m.input.Placeholder != "handle" {
		t.Fatalf("placeholder = %q, want handle", m.input.Placeholder)
	}
}

func TestSearchDialogView(t *testing.T) {
	t.Parallel()

	m := New()
	m.Init()
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	if view := ansi.Strip(m.View()); !strings.Contains(view, defaultTitle) {
		t.Fatalf("expected %q in view, got %q", defaultTitle, view)
	}

	m = New(WithTitle("Find"))
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	if view := ansi.Strip(m.View()); !strings.Contains(view, "Find") {
		t.Fatalf("expected custom title in view, got %q", view)
	}
}

func TestSearchDialogWindowSizing(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		width, height      int
		wantWidth, wantRow int
		wantCol, wantInput int
	}{
		"half the window":   {width: 120, height: 40, wantWidth: 60, wantRow: 18, wantCol: 30, wantInput: 55},
		"minimum width cap": {width: 30, height: 10, wantWidth: 26, wantRow: 3, wantCol: 2, wantInput: 21},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			m := New()
			m.Init()
			m.Update(tea.WindowSizeMsg{Width: tc.width, Height: tc.height})

			if m.width != tc.wantWidth || m.height != 3 {
				t.Fatalf("size = %dx%d, want %dx3", m.width, m.height, tc.wantWidth)
			}
			row, col := m.Position()
			if row != tc.wantRow || col != tc.wantCol {
				t.Fatalf("position = %d,%d, want %d,%d", row, col, tc.wantRow, tc.wantCol)
			}
			if got := m.input.Width(); got != tc.wantInput {
				t.Fatalf("input width = %d, want %d", got, tc.wantInput)
			}
		})
	}
}
