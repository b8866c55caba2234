package bubble_adapter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ionut-t/leetshell/core"
)

// renderer turns grids into the string bubbletea paints, caching one
// lipgloss style per style name.
type renderer struct {
	theme  Theme
	styles map[string]lipgloss.Style
}

func newRenderer(theme Theme) *renderer {
	return &renderer{theme: theme, styles: make(map[string]lipgloss.Style)}
}

func (r *renderer) style(name string) lipgloss.Style {
	if s, ok := r.styles[name]; ok {
		return s
	}
	s := r.theme.Style(name)
	r.styles[name] = s
	return s
}

// Render joins runs of equally styled cells so each run is styled once.
func (r *renderer) Render(g *core.Grid) string {
	var sb strings.Builder
	for y := range g.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}

		var run strings.Builder
		runStyle := ""
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runStyle == core.StyleNone {
				sb.WriteString(run.String())
			} else {
				sb.WriteString(r.style(runStyle).Render(run.String()))
			}
			run.Reset()
		}

		for _, cell := range g.Row(y) {
			if cell.Text == "" {
				continue // second half of a wide grapheme
			}
			if cell.Style != runStyle {
				flush()
				runStyle = cell.Style
			}
			run.WriteString(cell.Text)
		}
		flush()
	}
	return sb.String()
}
