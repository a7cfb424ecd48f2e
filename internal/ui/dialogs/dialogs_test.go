package dialogs

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

type testDialog struct {
	id        DialogID
	initCalls int
	updates   []tea.Msg
	width     int
	height    int
	row       int
	col       int
	view      string
}

func (d *testDialog) Init() tea.Cmd {
	d.initCalls++
	return nil
}

func (d *testDialog) Update(msg tea.Msg) (DialogModel, tea.Cmd) {
	d.updates = append(d.updates, msg)
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		d.width = size.Width
		d.height = size.Height
	}
	return d, nil
}

func (d *testDialog) View() string {
	return d.view
}

func (d *testDialog) Position() (int, int) {
	return d.row, d.col
}

func (d *testDialog) ID() DialogID {
	return d.id
}

type closeDialog struct {
	testDialog
	closed bool
	msg    tea.Msg
}

func (d *closeDialog) Close() tea.Cmd {
	d.closed = true
	if d.msg == nil {
		return nil
	}
	return func() tea.Msg { return d.msg }
}

func TestStackOpenClose(t *testing.T) {
	t.Parallel()

	stack := NewStack()
	stack, _ = stack.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	dialog := &testDialog{id: "a"}
	stack, _ = stack.Update(OpenDialogMsg{Model: dialog})

	if !stack.HasDialogs() {
		t.Fatal("expected dialogs to be present")
	}
	if dialog.initCalls != 1 {
		t.Fatalf("init calls = %d, want %d", dialog.initCalls, 1)
	}
	if dialog.width != 80 || dialog.height != 24 {
		t.Fatalf("dialog size = %dx%d, want 80x24", dialog.width, dialog.height)
	}
	if got := stack.ActiveDialogID(); got != "a" {
		t.Fatalf("active id = %q, want %q", got, "a")
	}

	stack, _ = stack.Update(CloseDialogMsg{})
	if stack.HasDialogs() {
		t.Fatal("expected dialogs to be closed")
	}
}

func TestStackReusesExistingDialog(t *testing.T) {
	t.Parallel()

	stack := NewStack()
	stack, _ = stack.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	dialogA := &testDialog{id: "a"}
	dialogB := &testDialog{id: "b"}
	stack, _ = stack.Update(OpenDialogMsg{Model: dialogA})
	stack, _ = stack.Update(OpenDialogMsg{Model: dialogB})

	dialogA2 := &testDialog{id: "a"}
	stack, _ = stack.Update(OpenDialogMsg{Model: dialogA2})

	if got := stack.ActiveModel(); got != dialogA {
		t.Fatalf("active model = %p, want %p", got, dialogA)
	}
	if len(stack.Dialogs()) != 2 {
		t.Fatalf("dialogs len = %d, want %d", len(stack.Dialogs()), 2)
	}

	initCalls := dialogA.initCalls
	stack, _ = stack.Update(OpenDialogMsg{Model: dialogA})
	if dialogA.initCalls != initCalls {
		t.Fatalf("init calls = %d, want %d", dialogA.initCalls, initCalls)
	}
	if len(stack.Dialogs()) != 2 {
		t.Fatalf("dialogs len = %d, want %d", len(stack.Dialogs()), 2)
	}
}

func TestStackCloseCallback(t *testing.T) {
	t.Parallel()

	stack := NewStack()
	dialog := &closeDialog{
		testDialog: testDialog{id: "close"},
		msg:        tea.QuitMsg{},
	}

	stack, _ = stack.Update(OpenDialogMsg{Model: dialog})
	_, cmd := stack.Update(CloseDialogMsg{})
	if !dialog.closed {
		t.Fatal("expected Close to be called")
	}
	if cmd == nil {
		t.Fatal("expected close cmd")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("unexpected close message type %T", cmd())
	}
}

func TestStackForwardsUpdatesToActive(t *testing.T) {
	t.Parallel()

	stack := NewStack()
	dialogA := &testDialog{id: "a"}
	dialogB := &testDialog{id: "b"}
	stack, _ = stack.Update(OpenDialogMsg{Model: dialogA})
	stack, _ = stack.Update(OpenDialogMsg{Model: dialogB})

	key := tea.KeyPressMsg(tea.Key{Text: "x", Code: 'x'})
	_, _ = stack.Update(key)

	if len(dialogA.updates) != 1 {
		t.Fatalf("dialogA updates = %d, want %d", len(dialogA.updates), 1)
	}
	if len(dialogB.updates) != 2 {
		t.Fatalf("dialogB updates = %d, want %d", len(dialogB.updates), 2)
	}
	if dialogB.updates[len(dialogB.updates)-1] != key {
		t.Fatalf("dialogB last update = %T, want key msg", dialogB.updates[len(dialogB.updates)-1])
	}
}

func TestStackReopenAfterReorder(t *testing.T) {
	t.Parallel()

	stack := NewStack()
	a := &testDialog{id: "a"}
	b := &testDialog{id: "b"}
	c := &testDialog{id: "c"}
	for _, d := range []DialogModel{a, b, c} {
		stack, _ = stack.Update(OpenDialogMsg{Model: d})
	}

	stack, _ = stack.Update(OpenDialogMsg{Model: &testDialog{id: "a"}})
	stack, _ = stack.Update(OpenDialogMsg{Model: &testDialog{id: "b"}})

	got := make([]DialogID, 0, 3)
	for _, d := range stack.Dialogs() {
		got = append(got, d.ID())
	}
	want := []DialogID{"c", "a", "b"}
	if len(got) != len(want) {
		t.Fatalf("dialogs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("dialogs = %v, want %v", got, want)
		}
	}
	if stack.ActiveModel() != b {
		t.Fatalf("active model = %p, want %p", stack.ActiveModel(), b)
	}
}

func TestStackCloseAll(t *testing.T) {
	t.Parallel()

	stack := NewStack()
	a := &closeDialog{testDialog: testDialog{id: "a"}}
	b := &closeDialog{testDialog: testDialog{id: "b"}}
	stack, _ = stack.Update(OpenDialogMsg{Model: a})
	stack, _ = stack.Update(OpenDialogMsg{Model: b})

	stack, _ = stack.Update(CloseAllDialogsMsg{})
	if stack.HasDialogs() {
		t.Fatal("expected all dialogs to be closed")
	}
	if !a.closed || !b.closed {
		t.Fatalf("closed = %v/%v, want both closed", a.closed, b.closed)
	}
}

func TestStackRender(t *testing.T) {
	t.Parallel()

	stack := NewStack()
	stack, _ = stack.Update(OpenDialogMsg{Model: &testDialog{id: "a", view: "AA", row: 1, col: 2}})
	stack, _ = stack.Update(OpenDialogMsg{Model: &testDialog{id: "b", view: "B", row: 1, col: 3}})

	base := "......\n......\n......"
	got := ansi.Strip(stack.Render(base))
	if want := "......\n..AB..\n......"; got != want {
		t.Fatalf("render = %q, want %q", got, want)
	}
}

func TestOverlay(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		bg, fg   string
		row, col int
		want     string
	}{
		{"inside", "abcdef\nghijkl", "XY", 1, 2, "abcdef\nghXYkl"},
		{"past right edge", "abc", "XYZ", 0, 2, "abXYZ"},
		{"pads short line", "ab", "X", 0, 4, "ab  X"},
		{"drops rows below", "abc", "X\nY", 0, 0, "Xbc"},
		{"negative origin", "abc", "X", -1, -2, "Xbc"},
		{"empty foreground", "abc", "", 0, 0, "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ansi.Strip(Overlay(tt.bg, tt.fg, tt.row, tt.col)); got != tt.want {
				t.Fatalf("Overlay = %q, want %q", got, tt.want)
			}
		})
	}
}
