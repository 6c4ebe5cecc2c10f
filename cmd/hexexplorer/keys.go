package main

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts
type KeyMap struct {
	// Navigation
	Forward  key.Binding
	Backward key.Binding
	Home     key.Binding
	End      key.Binding

	// Seeking
	NextData key.Binding
	NextZero key.Binding

	// Commands
	Copy key.Binding
	Help key.Binding
	Esc  key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Forward: key.NewBinding(
			key.WithKeys("pgdown", "down", "j", " "),
			key.WithHelp("↓/j/space", "next window"),
		),
		Backward: key.NewBinding(
			key.WithKeys("pgup", "up", "k"),
			key.WithHelp("↑/k", "previous window"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g/home", "start of file"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G/end", "end of file"),
		),
		NextData: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next window with data"),
		),
		NextZero: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "next all-zero window"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy offset"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Esc: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Forward,
		k.Backward,
		k.Help,
		k.Quit,
	}
}

// FullHelp returns all key bindings for the full help view
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Forward, k.Backward, k.Home, k.End},
		{k.NextData, k.NextZero, k.Copy, k.Help, k.Quit},
	}
}
