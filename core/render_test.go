package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingHighlighter struct {
	dirty    bool
	computes int
	langs    []string
}

func (h *countingHighlighter) SetLanguage(lang string) {
	h.langs = append(h.langs, lang)
	h.dirty = true
}

func (h *countingHighlighter) Invalidate() { h.dirty = true }

func (h *countingHighlighter) Highlight(lines []string) [][]Span {
	if h.dirty {
		h.computes++
		h.dirty = false
	}
	out := make([][]Span, len(lines))
	for i, l := range lines {
		out[i] = []Span{{Class: "keyword", Text: l}}
	}
	return out
}

func rowText(g *Grid, y int) string {
	var sb strings.Builder
	for _, c := range g.Row(y) {
		sb.WriteString(c.Text)
	}
	return sb.String()
}

func TestGutterWidth(t *testing.T) {
	assert.Equal(t, 4, GutterWidth(1))
	assert.Equal(t, 4, GutterWidth(99))
	assert.Equal(t, 5, GutterWidth(100))
	assert.Equal(t, 6, GutterWidth(1000))
}

func TestRenderLayout(t *testing.T) {
	h := &countingHighlighter{}
	e := New(nil, h)
	e.SetText("ab\ncd")
	e.SetCursor(Position{1, 1})

	g := NewGrid(12, 4)
	e.Render(g, 0, 0, 12, 4)

	assert.Equal(t, "  1 ab      ", rowText(g, 0))
	assert.Equal(t, "  2 cd      ", rowText(g, 1))
	assert.Equal(t, strings.Repeat(" ", 12), rowText(g, 2))

	assert.Equal(t, StyleDim, g.Cell(0, 0).Style)
	assert.Equal(t, StyleBold, g.Cell(0, 1).Style)
	assert.Equal(t, "keyword", g.Cell(4, 0).Style)
	assert.Equal(t, StyleCursor, g.Cell(5, 1).Style)
	assert.Equal(t, StyleDim, g.Cell(0, 3).Style)
	assert.False(t, e.Dirty())
}

func TestRenderCursorAtEndOfLine(t *testing.T) {
	e := New(nil, nil)
	e.SetText("ab")
	e.SetCursor(Position{0, 2})

	g := NewGrid(10, 1)
	e.Render(g, 0, 0, 10, 1)
	assert.Equal(t, StyleCursor, g.Cell(6, 0).Style)
	assert.Equal(t, StyleNone, g.Cell(7, 0).Style)
}

func TestRenderSelectionRunsPastLineEnd(t *testing.T) {
	e := New(nil, nil)
	e.SetText("ab\ncd")
	e.Select(Position{0, 1}, Position{1, 1})

	g := NewGrid(10, 2)
	e.Render(g, 0, 0, 10, 2)

	assert.Equal(t, StyleNone, g.Cell(4, 0).Style)
	assert.Equal(t, StyleSelection, g.Cell(5, 0).Style)
	assert.Equal(t, StyleSelection, g.Cell(9, 0).Style, "line break selected")
	assert.Equal(t, StyleSelection, g.Cell(4, 1).Style)
	assert.Equal(t, StyleCursor, g.Cell(5, 1).Style)
	assert.Equal(t, StyleNone, g.Cell(6, 1).Style)
}

func TestRenderRecomputesOnlyAfterEdits(t *testing.T) {
	h := &countingHighlighter{}
	e := New(nil, h)
	e.SetText("x = 1")
	g := NewGrid(20, 3)

	e.Render(g, 0, 0, 20, 3)
	e.Render(g, 0, 0, 20, 3)
	assert.Equal(t, 1, h.computes)

	e.MoveRight()
	e.Render(g, 0, 0, 20, 3)
	assert.Equal(t, 1, h.computes, "cursor moves do not invalidate")

	e.InsertChar('y')
	e.Render(g, 0, 0, 20, 3)
	assert.Equal(t, 2, h.computes)

	e.SetLanguage("go")
	e.Render(g, 0, 0, 20, 3)
	assert.Equal(t, 3, h.computes)
	require.Equal(t, []string{"go"}, h.langs)
}

func TestRenderScrollsHorizontally(t *testing.T) {
	e := New(nil, nil)
	e.SetText("abcdefghij")
	e.SetCursor(Position{0, 9})

	g := NewGrid(8, 1)
	e.Render(g, 0, 0, 8, 1)

	assert.Equal(t, 6, e.Viewport().ScrollCol)
	assert.Equal(t, "  1 ghij", rowText(g, 0))
	assert.Equal(t, StyleCursor, g.Cell(7, 0).Style)
}

func TestRenderDropsGutterWhenNarrow(t *testing.T) {
	e := New(nil, nil)
	e.SetText("abcdef")

	g := NewGrid(6, 1)
	g.Set(3, 0, "#", StyleNone)
	e.Render(g, 0, 0, 3, 1)

	assert.Equal(t, "abc#  ", rowText(g, 0))
	assert.Equal(t, StyleCursor, g.Cell(0, 0).Style)
	assert.Equal(t, 3, e.Viewport().Width)
}

func TestRenderWideRunes(t *testing.T) {
	e := New(nil, nil)
	e.SetText("a中文b")
	e.SetCursor(Position{0, 2})

	g := NewGrid(10, 1)
	e.Render(g, 0, 0, 10, 1)

	assert.Equal(t, "  1 a中文b", rowText(g, 0))
	assert.Equal(t, "中", g.Cell(5, 0).Text)
	assert.Equal(t, "", g.Cell(6, 0).Text)
	assert.Equal(t, "文", g.Cell(7, 0).Text)
	assert.Equal(t, StyleCursor, g.Cell(7, 0).Style)
	assert.Equal(t, StyleCursor, g.Cell(8, 0).Style)
	assert.Equal(t, "b", g.Cell(9, 0).Text)
}

func TestRenderScrollsPastWideRunes(t *testing.T) {
	e := New(nil, nil)
	e.SetText("a中文b")
	e.SetCursor(Position{0, 4})

	g := NewGrid(10, 1)
	e.Render(g, 0, 0, 10, 1)

	assert.Equal(t, 1, e.Viewport().ScrollCol)
	assert.Equal(t, "  1 中文b ", rowText(g, 0))
	assert.Equal(t, StyleCursor, g.Cell(9, 0).Style)
}

func TestRenderClipsWideRuneAtEdge(t *testing.T) {
	e := New(nil, nil)
	e.SetText("ab中")

	g := NewGrid(7, 1)
	e.Render(g, 0, 0, 7, 1)

	assert.Equal(t, "  1 ab ", rowText(g, 0))
	assert.Equal(t, StyleNone, g.Cell(6, 0).Style)
}
