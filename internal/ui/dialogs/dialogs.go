// Package dialogs provides a dialog stack and message types.
package dialogs

import (
	"slices"

	tea "charm.land/bubbletea/v2"
)

// DialogID identifies a dialog instance.
type DialogID string

// DialogModel represents a dialog component that can be displayed.
type DialogModel interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (DialogModel, tea.Cmd)
	View() string
	Position() (int, int)
	ID() DialogID
}

// CloseCallback allows dialogs to perform cleanup when closed.
type CloseCallback interface {
	Close() tea.Cmd
}

// OpenDialogMsg is sent to open a new dialog.
type OpenDialogMsg struct {
	Model DialogModel
}

// CloseDialogMsg is sent to close the topmost dialog.
type CloseDialogMsg struct{}

// CloseAllDialogsMsg closes every open dialog, top first.
type CloseAllDialogsMsg struct{}

// Stack manages open dialogs. Only the topmost dialog receives input.
type Stack struct {
	width, height int
	dialogs       []DialogModel
}

// NewStack creates an empty dialog stack.
func NewStack() Stack {
	return Stack{}
}

// Update handles dialog lifecycle and forwards messages to the active dialog.
func (s Stack) Update(msg tea.Msg) (Stack, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		cmds := make([]tea.Cmd, 0, len(s.dialogs))
		for i := range s.dialogs {
			u, cmd := s.dialogs[i].Update(msg)
			s.dialogs[i] = u
			cmds = append(cmds, cmd)
		}
		return s, tea.Batch(cmds...)
	case OpenDialogMsg:
		return s.open(msg.Model)
	case CloseDialogMsg:
		return s.closeTop()
	case CloseAllDialogsMsg:
		cmds := make([]tea.Cmd, 0, len(s.dialogs))
		for s.HasDialogs() {
			var cmd tea.Cmd
			s, cmd = s.closeTop()
			cmds = append(cmds, cmd)
		}
		return s, tea.Batch(cmds...)
	}

	if !s.HasDialogs() {
		return s, nil
	}
	top := len(s.dialogs) - 1
	u, cmd := s.dialogs[top].Update(msg)
	s.dialogs[top] = u
	return s, cmd
}

// Dialogs returns the open dialogs, bottom first.
func (s Stack) Dialogs() []DialogModel {
	return s.dialogs
}

// HasDialogs reports whether any dialog is open.
func (s Stack) HasDialogs() bool {
	return len(s.dialogs) > 0
}

// ActiveModel returns the topmost dialog, or nil.
func (s Stack) ActiveModel() DialogModel {
	if len(s.dialogs) == 0 {
		return nil
	}
	return s.dialogs[len(s.dialogs)-1]
}

// ActiveDialogID returns the ID of the topmost dialog, or "".
func (s Stack) ActiveDialogID() DialogID {
	if active := s.ActiveModel(); active != nil {
		return active.ID()
	}
	return ""
}

// Render draws every dialog over base, bottom first, at its own position.
func (s Stack) Render(base string) string {
	for _, dialog := range s.dialogs {
		row, col := dialog.Position()
		base = Overlay(base, dialog.View(), row, col)
	}
	return base
}

func (s Stack) indexOf(id DialogID) int {
	return slices.IndexFunc(s.dialogs, func(d DialogModel) bool { return d.ID() == id })
}

func (s Stack) open(model DialogModel) (Stack, tea.Cmd) {
	if s.ActiveDialogID() == model.ID() {
		return s, nil
	}

	// A dialog already in the stack moves to the top and keeps its state.
	if idx := s.indexOf(model.ID()); idx >= 0 {
		model = s.dialogs[idx]
		s.dialogs = slices.Delete(slices.Clone(s.dialogs), idx, idx+1)
	}

	initCmd := model.Init()
	model, sizeCmd := model.Update(tea.WindowSizeMsg{Width: s.width, Height: s.height})
	s.dialogs = append(slices.Clone(s.dialogs), model)

	return s, tea.Batch(initCmd, sizeCmd)
}

func (s Stack) closeTop() (Stack, tea.Cmd) {
	if len(s.dialogs) == 0 {
		return s, nil
	}
	dialog := s.dialogs[len(s.dialogs)-1]
	s.dialogs = s.dialogs[:len(s.dialogs)-1]
	if closeable, ok := dialog.(CloseCallback); ok {
		return s, closeable.Close()
	}
	return s, nil
}
