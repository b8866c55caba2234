package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGridSetStringClips(t *testing.T) {
	g := NewGrid(5, 1)

	n := g.SetString(1, 0, "hello", StyleBold, -1)
	assert.Equal(t, 4, n)
	assert.Equal(t, " hell", rowText(g, 0))
	assert.Equal(t, StyleBold, g.Cell(4, 0).Style)

	assert.Equal(t, 0, g.SetString(0, 3, "x", "", -1))
}

func TestGridWideGraphemes(t *testing.T) {
	g := NewGrid(5, 1)

	n := g.SetString(0, 0, "日本語", "", -1)
	assert.Equal(t, 4, n)
	assert.Equal(t, "日", g.Cell(0, 0).Text)
	assert.Equal(t, "", g.Cell(1, 0).Text)
	assert.Equal(t, "本", g.Cell(2, 0).Text)
	assert.Equal(t, " ", g.Cell(4, 0).Text)
}

func TestGridFillAndResize(t *testing.T) {
	g := NewGrid(3, 2)
	g.Fill(0, 1, 10, 1, StyleReverse)
	assert.Equal(t, StyleReverse, g.Cell(2, 1).Style)
	assert.Equal(t, StyleNone, g.Cell(2, 0).Style)

	g.Resize(4, 4)
	assert.Equal(t, 4, g.Width())
	assert.Equal(t, StyleNone, g.Cell(2, 1).Style)
	assert.Equal(t, Cell{}, g.Cell(9, 9))
}
