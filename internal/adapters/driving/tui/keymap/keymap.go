// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Back leaves the open note or the filter.
	Back key.Binding

	// Up navigates up in a list.
	Up key.Binding

	// Down navigates down in a list.
	Down key.Binding

	// Open shows the selected note.
	Open key.Binding

	// Filter starts filtering notes by title.
	Filter key.Binding

	// ShowArchived toggles whether archived notes are listed.
	ShowArchived key.Binding

	// Archive archives or restores the selected note.
	Archive key.Binding

	// Delete asks to delete the selected note.
	Delete key.Binding

	// Confirm accepts a pending deletion.
	Confirm key.Binding

	// Reload reads notes from the store again.
	Reload key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "find"),
		),
		ShowArchived: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "show archived"),
		),
		Archive: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "archive/restore"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "confirm"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
	}
}

// ListHelp returns the bindings shown under the notes list.
func (k *KeyMap) ListHelp() []key.Binding {
	return []key.Binding{k.Open, k.Filter, k.ShowArchived, k.Archive, k.Delete, k.Quit}
}

// NoteHelp returns the bindings shown under an open note.
func (k *KeyMap) NoteHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Archive, k.Back}
}
