package dialogs

import "charm.land/bubbles/v2/key"

// KeyMap holds the bindings shared by the search and help dialogs.
type KeyMap struct {
	Close key.Binding
	Apply key.Binding
	Clear key.Binding
}

// DefaultKeyMap returns the default dialog key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Close: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close dialog")),
		Apply: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply search")),
		Clear: key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "clear username")),
	}
}

// KeyBindings lists the bindings in the order the help dialog shows them.
func (k KeyMap) KeyBindings() []key.Binding {
	return []key.Binding{k.Apply, k.Clear, k.Close}
}
