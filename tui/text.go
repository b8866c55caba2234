package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/ionut-t/leetshell/core"
	"github.com/rivo/uniseg"
)

// Truncate shortens s to width cells, marking the cut with "..." when
// there is room for it.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if uniseg.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return cutWidth(s, width)
	}
	return cutWidth(s, width-3) + "..."
}

func cutWidth(s string, width int) string {
	var sb strings.Builder
	used := 0
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		w := gr.Width()
		if used+w > width {
			break
		}
		sb.WriteString(gr.Str())
		used += w
	}
	return sb.String()
}

// PadRight pads or cuts s to exactly width cells.
func PadRight(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = cutWidth(s, width)
	return s + strings.Repeat(" ", width-uniseg.StringWidth(s))
}

// Wrap breaks a line at spaces so no piece exceeds width runes. Leading
// indentation is repeated on continuation lines.
func Wrap(line string, width int) []string {
	runes := []rune(line)
	if width <= 0 || len(runes) <= width {
		return []string{line}
	}

	indent := 0
	for indent < len(runes) && runes[indent] == ' ' {
		indent++
	}
	if indent >= width {
		indent = 0
	}
	prefix := runes[:indent]

	var out []string
	rest := runes
	for len(rest) > width {
		cut := lastSpace(rest, indent, width)
		if cut <= indent {
			cut = width
		}
		out = append(out, string(rest[:cut]))
		tail := []rune(strings.TrimLeft(string(rest[cut:]), " "))
		rest = append(append([]rune(nil), prefix...), tail...)
		if len(tail) == 0 {
			rest = nil
		}
	}
	if len(rest) > 0 {
		out = append(out, string(rest))
	}
	return out
}

func lastSpace(r []rune, from, to int) int {
	for i := min(to, len(r)) - 1; i >= from; i-- {
		if r[i] == ' ' {
			return i
		}
	}
	return -1
}

// WrapAll wraps every line to width.
func WrapAll(lines []string, width int) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, Wrap(l, width)...)
	}
	return out
}

// writeRow draws text on row y, optionally filling the rest of the row in
// the same style.
func writeRow(g *core.Grid, y int, text, style string, fill bool) {
	if fill {
		g.Fill(0, y, g.Width(), 1, style)
	}
	g.SetString(0, y, text, style, g.Width())
}

// statusBar shows the current notification, or the key hints when there
// is none.
func statusBar(a *App, g *core.Grid, bindings ...key.Binding) {
	text := a.Notification()
	if text == "" {
		text = hints(bindings...)
	}
	writeRow(g, g.Height()-1, " "+text, core.StyleDim, true)
}

func hints(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, "  ")
}

// scrollBy moves offset by delta within [0, max(total-visible, 0)].
func scrollBy(offset, delta, total, visible int) int {
	return min(max(offset+delta, 0), max(total-visible, 0))
}
