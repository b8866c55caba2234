package core

import "github.com/rivo/uniseg"

// Style names understood by the terminal backends. Several names may be
// combined with spaces, e.g. "bold cyan".
const (
	StyleNone      = ""
	StyleDim       = "dim"
	StyleBold      = "bold"
	StyleReverse   = "reverse"
	StyleCursor    = "cursor"
	StyleSelection = "selection"
)

// Cell is one terminal cell. A wide grapheme occupies its own cell plus a
// following cell with empty Text.
type Cell struct {
	Text  string
	Style string
}

var blankCell = Cell{Text: " "}

// Grid is a rectangular frame of styled cells flushed to the terminal after
// each render.
type Grid struct {
	width  int
	height int
	cells  []Cell
}

func NewGrid(width, height int) *Grid {
	g := &Grid{}
	g.Resize(width, height)
	return g
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// Resize discards the content and allocates a blank grid.
func (g *Grid) Resize(width, height int) {
	g.width = max(width, 0)
	g.height = max(height, 0)
	g.cells = make([]Cell, g.width*g.height)
	g.Clear()
}

func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = blankCell
	}
}

func (g *Grid) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

// Set writes a single cell; writes outside the grid are dropped.
func (g *Grid) Set(x, y int, text, style string) {
	if !g.inside(x, y) {
		return
	}
	g.cells[y*g.width+x] = Cell{Text: text, Style: style}
}

func (g *Grid) Cell(x, y int) Cell {
	if !g.inside(x, y) {
		return Cell{}
	}
	return g.cells[y*g.width+x]
}

// Row returns the cells of line y.
func (g *Grid) Row(y int) []Cell {
	if y < 0 || y >= g.height {
		return nil
	}
	return g.cells[y*g.width : (y+1)*g.width]
}

// SetString writes s grapheme by grapheme starting at (x, y), clipped to
// maxWidth cells and the grid edge. It returns the number of cells used.
func (g *Grid) SetString(x, y int, s, style string, maxWidth int) int {
	limit := g.width - x
	if maxWidth >= 0 {
		limit = min(limit, maxWidth)
	}
	if limit <= 0 || y < 0 || y >= g.height {
		return 0
	}

	used := 0
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		w := gr.Width()
		if w == 0 {
			continue
		}
		if used+w > limit {
			break
		}
		g.Set(x+used, y, gr.Str(), style)
		for i := 1; i < w; i++ {
			g.Set(x+used+i, y, "", style)
		}
		used += w
	}
	return used
}

// Fill paints a rectangle with blanks in the given style.
func (g *Grid) Fill(x, y, width, height int, style string) {
	for row := y; row < y+height; row++ {
		for col := x; col < x+width; col++ {
			g.Set(col, row, " ", style)
		}
	}
}
