package bubble_adapter

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ionut-t/leetshell/core"
)

// Convert Bubbletea key to core.KeyEvent
func convertBubbleKey(msg tea.KeyMsg) core.KeyEvent {
	switch msg.Type {
	case tea.KeyRunes:
		if msg.Paste || len(msg.Runes) > 1 {
			return core.PasteKey(string(msg.Runes))
		}
		key := core.KeyEvent{}
		if len(msg.Runes) == 1 {
			key.Rune = msg.Runes[0]
		}
		if msg.Alt {
			key.Modifiers |= core.ModAlt
		}
		return key

	case tea.KeySpace:
		key := core.KeyEvent{Rune: ' '}
		if msg.Alt {
			key.Modifiers |= core.ModAlt
		}
		return key
	}

	// Everything else is identified by name: "enter", "ctrl+s", "shift+left", ...
	return core.ParseKey(msg.String())
}

// teaKeyTypes maps Bubbletea key names back to their key types.
var teaKeyTypes = func() map[string]tea.KeyType {
	m := make(map[string]tea.KeyType)
	for t := tea.KeyType(-256); t < 256; t++ {
		if t == tea.KeyRunes {
			continue
		}
		if name := t.String(); name != "" {
			if _, seen := m[name]; !seen {
				m[name] = t
			}
		}
	}
	return m
}()

// KeyMsg turns a core key back into the Bubbletea message that produces it,
// so bubbles components can be driven from a screen's key handler. ok is
// false for keys Bubbletea has no name for.
func KeyMsg(ev core.KeyEvent) (msg tea.KeyMsg, ok bool) {
	if ev.Key == core.KeyPaste {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(ev.Text), Paste: true}, true
	}

	alt := ev.Modifiers&core.ModAlt != 0
	if ev.Rune != 0 && ev.Key == core.KeyUnknown && ev.Modifiers&^core.ModAlt == 0 {
		if ev.Rune == ' ' {
			return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}, Alt: alt}, true
		}
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{ev.Rune}, Alt: alt}, true
	}

	t, found := teaKeyTypes[strings.TrimPrefix(ev.String(), "alt+")]
	if !found {
		return tea.KeyMsg{}, false
	}
	return tea.KeyMsg{Type: t, Alt: alt}, true
}
