package core

import (
	"fmt"
	"strconv"

	"github.com/rivo/uniseg"
)

// GutterWidth is the line-number column width for a buffer of n lines.
func GutterWidth(lineCount int) int {
	return max(4, len(strconv.Itoa(lineCount))+2)
}

// Render draws the editor into the (x, y, width, height) rectangle of grid.
// It does not touch the buffer; only scroll offsets follow the cursor.
func (e *Editor) Render(grid *Grid, x, y, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}

	lines := e.buffer.GetLines()
	spans := e.highlighter.Highlight(lines)

	// Line numbers are dropped when they would leave no room for code.
	gutter := GutterWidth(len(lines))
	if width <= gutter {
		gutter = 0
	}
	codeWidth := width - gutter

	cursor := e.buffer.GetCursor()
	e.viewport.Resize(codeWidth, height)
	e.viewport.Follow(cursor)
	if cursor.Row < len(lines) {
		e.fitCursorColumn([]rune(lines[cursor.Row]), cursor.Col, codeWidth)
	}

	for i := range height {
		row := e.viewport.ScrollRow + i
		rowY := y + i

		if row >= len(lines) {
			grid.Fill(x, rowY, gutter, 1, StyleDim)
			grid.Fill(x+gutter, rowY, codeWidth, 1, StyleNone)
			continue
		}

		numStyle := StyleDim
		if row == cursor.Row {
			numStyle = StyleBold
		}
		if gutter > 0 {
			grid.SetString(x, rowY, fmt.Sprintf("%*d ", gutter-1, row+1), numStyle, gutter)
		}

		e.renderLine(grid, x+gutter, rowY, codeWidth, row, []rune(lines[row]), classesFor(spans, row))
	}

	e.dirty = false
}

// fitCursorColumn scrolls right until the cells from ScrollCol through the
// cursor fit in width. Follow works in runes and cannot see wide ones.
func (e *Editor) fitCursorColumn(line []rune, col, width int) {
	cursorCells := 1
	if col < len(line) {
		cursorCells = runeCells(line[col])
	}
	for e.viewport.ScrollCol < col && lineCells(line, e.viewport.ScrollCol, col)+cursorCells > width {
		e.viewport.ScrollCol++
	}
}

func (e *Editor) renderLine(grid *Grid, x, y, width, row int, line []rune, classes []string) {
	cursor := e.buffer.GetCursor()

	out := 0
	for col := e.viewport.ScrollCol; out < width; col++ {
		pos := Position{Row: row, Col: col}

		text := " "
		style := StyleNone
		cells := 1
		if col < len(line) {
			r := line[col]
			cells = runeCells(r)
			if r != '\t' {
				text = string(r)
			}
			if col < len(classes) {
				style = classes[col]
			}
		}

		if out+cells > width {
			// A wide rune cut by the right edge is left out.
			grid.Fill(x+out, y, width-out, 1, StyleNone)
			return
		}

		switch {
		case pos == cursor:
			style = StyleCursor
		case col <= len(line) && e.selection.Contains(cursor, pos):
			style = StyleSelection
		case col > len(line) && e.selection.Contains(cursor, Position{Row: row, Col: len(line)}):
			// Trailing blanks stay highlighted when the line break is selected.
			style = StyleSelection
		}

		grid.Set(x+out, y, text, style)
		for i := 1; i < cells; i++ {
			grid.Set(x+out+i, y, "", style)
		}
		out += cells
	}
}

// runeCells is the terminal width of r; tabs and zero-width runes take one cell.
func runeCells(r rune) int {
	if r == '\t' {
		return 1
	}
	return max(uniseg.StringWidth(string(r)), 1)
}

func lineCells(line []rune, from, to int) int {
	n := 0
	for _, r := range line[from:min(to, len(line))] {
		n += runeCells(r)
	}
	return n
}

// classesFor expands a line's spans into one color class per rune.
func classesFor(spans [][]Span, row int) []string {
	if row >= len(spans) {
		return nil
	}
	var classes []string
	for _, s := range spans[row] {
		for range []rune(s.Text) {
			classes = append(classes, s.Class)
		}
	}
	return classes
}
