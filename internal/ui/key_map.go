package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up      key.Binding
	down    key.Binding
	enter   key.Binding
	combine key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select/deselect")),
		combine: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "combine")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// resolve maps a bubbletea key event onto a [Key].
func (k keyMap) resolve(msg tea.KeyMsg) Key {
	switch {
	case key.Matches(msg, k.up):
		return KeyUp
	case key.Matches(msg, k.down):
		return KeyDown
	case key.Matches(msg, k.enter):
		return KeyEnter
	case key.Matches(msg, k.combine):
		return KeyCombine
	case key.Matches(msg, k.quit):
		return KeyQuit
	default:
		return KeyNone
	}
}

// pickedHelp relabels the arrows while an entry is being moved.
func (k keyMap) pickedHelp() []key.Binding {
	up := key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "move up"))
	down := key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "move down"))
	drop := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "drop"))
	return []key.Binding{up, down, drop, k.combine, k.quit}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.up, k.down, k.enter, k.combine, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter},
		{k.combine, k.quit},
	}
}
