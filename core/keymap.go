package core

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the editor's key bindings. Bindings match on
// KeyEvent.String().
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	WordLeft  key.Binding
	WordRight key.Binding
	LineStart key.Binding
	LineEnd   key.Binding
	PageUp    key.Binding
	PageDown  key.Binding

	SelectUp        key.Binding
	SelectDown      key.Binding
	SelectLeft      key.Binding
	SelectRight     key.Binding
	SelectWordLeft  key.Binding
	SelectWordRight key.Binding
	SelectLineStart key.Binding
	SelectLineEnd   key.Binding
	SelectAll       key.Binding

	Undo  key.Binding
	Redo  key.Binding
	Copy  key.Binding
	Cut   key.Binding
	Paste key.Binding

	Backspace     key.Binding
	DeleteForward key.Binding
	Enter         key.Binding
	Tab           key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:        key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:      key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Left:      key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right:     key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		WordLeft:  key.NewBinding(key.WithKeys("ctrl+left"), key.WithHelp("ctrl+←", "word left")),
		WordRight: key.NewBinding(key.WithKeys("ctrl+right"), key.WithHelp("ctrl+→", "word right")),
		LineStart: key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "line start")),
		LineEnd:   key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "line end")),
		PageUp:    key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:  key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),

		SelectUp:        key.NewBinding(key.WithKeys("shift+up", "ctrl+shift+up")),
		SelectDown:      key.NewBinding(key.WithKeys("shift+down", "ctrl+shift+down")),
		SelectLeft:      key.NewBinding(key.WithKeys("shift+left")),
		SelectRight:     key.NewBinding(key.WithKeys("shift+right")),
		SelectWordLeft:  key.NewBinding(key.WithKeys("ctrl+shift+left")),
		SelectWordRight: key.NewBinding(key.WithKeys("ctrl+shift+right")),
		SelectLineStart: key.NewBinding(key.WithKeys("shift+home")),
		SelectLineEnd:   key.NewBinding(key.WithKeys("shift+end")),
		SelectAll:       key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "select all")),

		Undo:  key.NewBinding(key.WithKeys("ctrl+z", "ctrl+u"), key.WithHelp("ctrl+z", "undo")),
		Redo:  key.NewBinding(key.WithKeys("ctrl+y", "ctrl+r"), key.WithHelp("ctrl+y", "redo")),
		Copy:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "copy")),
		Cut:   key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "cut")),
		Paste: key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "paste")),

		Backspace:     key.NewBinding(key.WithKeys("backspace", "ctrl+h")),
		DeleteForward: key.NewBinding(key.WithKeys("delete")),
		Enter:         key.NewBinding(key.WithKeys("enter")),
		Tab:           key.NewBinding(key.WithKeys("tab")),
	}
}
