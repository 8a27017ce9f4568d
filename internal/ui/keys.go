package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the launcher keybindings. Everything else goes to the
// search field.
type KeyMap struct {
	Prev   key.Binding
	Next   key.Binding
	Launch key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Prev: key.NewBinding(
			key.WithKeys("up", "shift+tab", "ctrl+p"),
			key.WithHelp("↑/shift+tab", "previous"),
		),
		Next: key.NewBinding(
			key.WithKeys("down", "tab", "ctrl+n"),
			key.WithHelp("↓/tab", "next"),
		),
		Launch: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "launch"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "close"),
		),
	}
}
