// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back returns to the previous view.
	Back key.Binding

	// Up navigates up in a list.
	Up key.Binding

	// Down navigates down in a list.
	Down key.Binding

	// Select confirms a selection.
	Select key.Binding

	// Reload fetches the current list again.
	Reload key.Binding

	// TypeName focuses the filename field.
	TypeName key.Binding

	// Edit loads the selected chunk into the editor.
	Edit key.Binding

	// NewEdit opens the editor with an empty form.
	NewEdit key.Binding

	// Submit sends the edit form.
	Submit key.Binding

	// ToggleAction switches between overwrite and append.
	ToggleAction key.Binding

	// NextField moves focus to the next editor field.
	NextField key.Binding

	// PrevField moves focus to the previous editor field.
	PrevField key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
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
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		TypeName: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "type filename"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter", "e"),
			key.WithHelp("enter/e", "edit"),
		),
		NewEdit: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new edit"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		ToggleAction: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("ctrl+a", "overwrite/append"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous field"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// FilesHelp returns keybindings for the files view.
func (k *KeyMap) FilesHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.TypeName, k.Reload, k.Quit}
}

// ChunksHelp returns keybindings for the chunks view.
func (k *KeyMap) ChunksHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Edit, k.NewEdit, k.Reload, k.Back}
}

// EditorHelp returns keybindings for the editor view.
func (k *KeyMap) EditorHelp() []key.Binding {
	return []key.Binding{k.NextField, k.ToggleAction, k.Submit, k.Back}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.TypeName, k.Reload},
		{k.Edit, k.NewEdit, k.Back},
		{k.NextField, k.PrevField, k.ToggleAction, k.Submit},
		{k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
