package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap holds every binding the controller reacts to. Which ones are live
// depends on the screen and overlay; helpFor picks the matching subset for
// the footer.
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	First   key.Binding
	Last    key.Binding
	Choose  key.Binding
	Back    key.Binding
	Delete  key.Binding
	Create  key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Submit  key.Binding
	Abort   key.Binding
	Quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		First: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "first"),
		),
		Last: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "last"),
		),
		Choose: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "back"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Create: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "create"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n/esc", "cancel"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "create"),
		),
		Abort: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "exit"),
		),
	}
}

// helpSet adapts a list of bindings to help.KeyMap.
type helpSet []key.Binding

// ShortHelp returns keybindings to be shown in the mini help view
func (h helpSet) ShortHelp() []key.Binding {
	return h
}

// FullHelp returns keybindings for the expanded help view
func (h helpSet) FullHelp() [][]key.Binding {
	return [][]key.Binding{h}
}
