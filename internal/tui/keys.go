package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the full-screen editor.
type KeyMap struct {
	Save key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+q", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// HelpText returns the status-bar help string.
func (k KeyMap) HelpText() string {
	return k.Save.Help().Key + " " + k.Save.Help().Desc + " • " + k.Quit.Help().Key + " " + k.Quit.Help().Desc
}
