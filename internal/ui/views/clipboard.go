package views

import (
	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"
)

// CopiedMsg reports a finished clipboard write.
type CopiedMsg struct {
	What string
	Text string
	Err  error
}

// writeClipboard is swapped out by tests.
var writeClipboard = clipboard.WriteAll

// copyCmd writes text to the system clipboard. what names the value in the
// log, such as "username" or "LCUS ranking URL".
func copyCmd(what, text string) tea.Cmd {
	if text == "" {
		return nil
	}
	return func() tea.Msg {
		return CopiedMsg{What: what, Text: text, Err: writeClipboard(text)}
	}
}
