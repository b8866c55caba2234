package core

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// --- KeyCode, KeyModifiers, Key ---

// KeyCode represents non-character keys
type KeyCode int

const (
	KeyUnknown KeyCode = iota
	KeyEnter
	KeyTab
	KeyBackspace
	KeyEscape

	// Arrow keys
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// Navigation keys
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	// Editing keys
	KeyDelete
	KeyInsert

	// KeyPaste carries bracketed-paste text in KeyEvent.Text
	KeyPaste
)

var keyNames = map[KeyCode]string{
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBackspace: "backspace",
	KeyEscape:    "esc",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPageUp:    "pgup",
	KeyPageDown:  "pgdown",
	KeyDelete:    "delete",
	KeyInsert:    "insert",
}

var keyCodes = func() map[string]KeyCode {
	m := make(map[string]KeyCode, len(keyNames))
	for code, name := range keyNames {
		m[name] = code
	}
	m["escape"] = KeyEscape
	m["pageup"] = KeyPageUp
	m["pagedown"] = KeyPageDown
	return m
}()

// KeyModifiers represents modifier keys held during a keystroke
type KeyModifiers uint8

const (
	ModNone KeyModifiers = 0
	ModCtrl KeyModifiers = 1 << iota
	ModAlt
	ModShift
)

// KeyEvent represents a keyboard input event
type KeyEvent struct {
	Rune      rune
	Key       KeyCode
	Modifiers KeyModifiers
	Text      string // pasted text when Key == KeyPaste
}

// String returns the key identity, e.g. "a", "enter", "ctrl+s" or
// "ctrl+shift+left". Pastes are bracketed so no binding ever matches them.
func (k KeyEvent) String() string {
	if k.Key == KeyPaste {
		return "[" + k.Text + "]"
	}

	var sb strings.Builder
	if k.Modifiers&ModAlt != 0 {
		sb.WriteString("alt+")
	}
	if k.Modifiers&ModCtrl != 0 {
		sb.WriteString("ctrl+")
	}
	if k.Modifiers&ModShift != 0 {
		sb.WriteString("shift+")
	}

	if k.Rune != 0 {
		sb.WriteRune(k.Rune)
	} else if name, ok := keyNames[k.Key]; ok {
		sb.WriteString(name)
	} else {
		sb.WriteString("unknown")
	}

	return sb.String()
}

// Printable reports whether the event should be inserted as a character.
func (k KeyEvent) Printable() bool {
	if k.Rune == 0 || k.Key != KeyUnknown {
		return false
	}
	if k.Modifiers&(ModCtrl|ModAlt) != 0 {
		return false
	}
	return unicode.IsPrint(k.Rune)
}

// ParseKey turns a key identity such as "shift+home" or "ctrl+z" back into
// a KeyEvent. Unrecognised names yield KeyUnknown with no rune.
func ParseKey(name string) KeyEvent {
	var ev KeyEvent
	rest := name

	for {
		if utf8.RuneCountInString(rest) <= 1 {
			break
		}
		if r, ok := strings.CutPrefix(rest, "alt+"); ok && r != "" {
			ev.Modifiers |= ModAlt
			rest = r
			continue
		}
		if r, ok := strings.CutPrefix(rest, "ctrl+"); ok && r != "" {
			ev.Modifiers |= ModCtrl
			rest = r
			continue
		}
		if r, ok := strings.CutPrefix(rest, "shift+"); ok && r != "" {
			ev.Modifiers |= ModShift
			rest = r
			continue
		}
		break
	}

	if code, ok := keyCodes[rest]; ok {
		ev.Key = code
		return ev
	}
	if rest == "space" {
		ev.Rune = ' '
		return ev
	}
	if utf8.RuneCountInString(rest) == 1 {
		ev.Rune, _ = utf8.DecodeRuneInString(rest)
		return ev
	}

	return KeyEvent{}
}

// RuneKey is a convenience for a plain character keystroke.
func RuneKey(r rune) KeyEvent {
	return KeyEvent{Rune: r}
}

// PasteKey wraps pasted text as a single event.
func PasteKey(text string) KeyEvent {
	return KeyEvent{Key: KeyPaste, Text: text}
}
