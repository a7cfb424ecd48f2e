package views

import (
	"errors"
	"slices"
	"testing"
)

// stubClipboard replaces the system clipboard for one test. Tests using it
// must not run in parallel.
func stubClipboard(t *testing.T, err error) *[]string {
	t.Helper()
	var written []string
	prev := writeClipboard
	writeClipboard = func(text string) error {
		written = append(written, text)
		return err
	}
	t.Cleanup(func() { writeClipboard = prev })
	return &written
}

func TestCopyUsername(t *testing.T) {
	written := stubClipboard(t, nil)

	r := newTestRecords(t, &fakeAPI{records: sampleRecords(5)})
	r.table.SetCursor(1)
	_, cmd := r.Update(keyText("c"))

	copied, ok := findMsg[CopiedMsg](collectMsgs(t, cmd))
	if !ok || copied.What != "username" || copied.Text != "user2" || copied.Err != nil {
		t.Fatalf("got %#v, want user2 copied", copied)
	}
	if want := []string{"user2"}; !slices.Equal(*written, want) {
		t.Fatalf("clipboard = %v, want %v", *written, want)
	}
}

func TestCopyRankingURLs(t *testing.T) {
	written := stubClipboard(t, nil)

	c := newTestContests(t, &fakeAPI{contests: sampleContests(3)})
	_, cmd := c.Update(keyText("c"))
	us, _ := findMsg[CopiedMsg](collectMsgs(t, cmd))
	_, cmd = c.Update(keyText("C"))
	cn, _ := findMsg[CopiedMsg](collectMsgs(t, cmd))

	if us.What != "LCUS ranking URL" || cn.What != "LCCN ranking URL" {
		t.Fatalf("copied %q and %q", us.What, cn.What)
	}
	want := []string{
		"https://leetcode.com/contest/weekly-contest-400/ranking",
		"https://leetcode.cn/contest/weekly-contest-400/ranking",
	}
	if !slices.Equal(*written, want) {
		t.Fatalf("clipboard = %v, want %v", *written, want)
	}
}

func TestCopyReportsClipboardError(t *testing.T) {
	stubClipboard(t, errors.New("no clipboard utility"))

	msg := copyCmd("username", "lee215")()
	copied, ok := msg.(CopiedMsg)
	if !ok || copied.Err == nil || copied.Text != "lee215" {
		t.Fatalf("got %#v, want a failed copy of lee215", msg)
	}
}

func TestCopyNothingIsNoop(t *testing.T) {
	if cmd := copyCmd("username", ""); cmd != nil {
		t.Fatal("expected no command for empty text")
	}
}
