package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	bubble_adapter "github.com/ionut-t/leetshell/adapter-bubbletea"
	"github.com/ionut-t/leetshell/core"
	"github.com/rivo/uniseg"
)

// lineInput is a single-line field. A bubbles textinput owns the value and
// cursor; the screen draws it into its grid.
type lineInput struct {
	model textinput.Model
}

func newLineInput(masked bool) *lineInput {
	m := textinput.New()
	m.Prompt = ""
	if masked {
		m.EchoMode = textinput.EchoPassword
		m.EchoCharacter = '*'
	}
	m.Cursor.SetMode(cursor.CursorStatic)
	m.Focus()
	return &lineInput{model: m}
}

func (in *lineInput) Value() string { return in.model.Value() }

func (in *lineInput) Position() int { return in.model.Position() }

// SetValue replaces the text and moves the cursor to its end.
func (in *lineInput) SetValue(s string) {
	in.model.SetValue(s)
	in.model.CursorEnd()
}

func (in *lineInput) Reset() { in.model.Reset() }

// HandleKey edits the field and reports whether the text or cursor changed.
func (in *lineInput) HandleKey(ev core.KeyEvent) bool {
	msg, ok := bubble_adapter.KeyMsg(ev)
	if !ok {
		return false
	}
	value, pos := in.model.Value(), in.model.Position()
	in.model, _ = in.model.Update(msg)
	return in.model.Value() != value || in.model.Position() != pos
}

// Render draws prompt and field at (x, y) within width cells, scrolling the
// text so the cursor cell stays visible.
func (in *lineInput) Render(g *core.Grid, x, y, width int, prompt, style string) {
	n := g.SetString(x, y, prompt, style, width)
	avail := width - n
	if avail <= 0 {
		return
	}

	shown := []rune(in.echo())
	pos := min(in.model.Position(), len(shown))
	start := 0
	for start < pos && uniseg.StringWidth(string(shown[start:pos]))+1 > avail {
		start++
	}

	cx := x + n + g.SetString(x+n, y, string(shown[start:pos]), style, avail-1)
	under := " "
	if pos < len(shown) {
		under = string(shown[pos])
	}
	used := g.SetString(cx, y, under, core.StyleReverse, x+width-cx)
	if pos+1 < len(shown) {
		g.SetString(cx+used, y, string(shown[pos+1:]), style, x+width-cx-used)
	}
}

// echo is the text as displayed: one mask character per rune when masked.
func (in *lineInput) echo() string {
	v := in.model.Value()
	if in.model.EchoMode == textinput.EchoPassword {
		return strings.Repeat(string(in.model.EchoCharacter), utf8.RuneCountInString(v))
	}
	return v
}
