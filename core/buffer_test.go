package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetContentNeverEmpty(t *testing.T) {
	b := NewBufferFromString("")
	assert.Equal(t, 1, b.LineCount())
	assert.True(t, b.IsEmpty())

	b.SetContent("a\n")
	assert.Equal(t, []string{"a", ""}, b.GetLines())

	b.SetContent("x\r\ny")
	assert.Equal(t, []string{"x", "y"}, b.GetLines())
}

func TestInsertRunesAtSplitsOnNewlines(t *testing.T) {
	b := NewBufferFromString("hello world")

	require.NoError(t, b.InsertRunesAt(0, 5, []rune(",\n  big\n")))
	assert.Equal(t, []string{"hello,", "  big", " world"}, b.GetLines())

	err := b.InsertRunesAt(5, 0, []rune("x"))
	assert.ErrorIs(t, err, ErrInvalidPosition)
}

func TestDeleteRangeSingleRow(t *testing.T) {
	b := NewBufferFromString("abcdef")

	require.NoError(t, b.DeleteRange(Position{0, 2}, Position{0, 5}))
	assert.Equal(t, "abf", b.GetCurrentContent())
}

func TestDeleteRangeMultiRow(t *testing.T) {
	b := NewBufferFromString("first\nmiddle\nlast line")

	// Reversed order is normalized.
	require.NoError(t, b.DeleteRange(Position{2, 4}, Position{0, 2}))
	assert.Equal(t, []string{"fi line"}, b.GetLines())
}

func TestDeleteRangeInvalid(t *testing.T) {
	b := NewBufferFromString("abc")
	assert.ErrorIs(t, b.DeleteRange(Position{0, 0}, Position{0, 9}), ErrInvalidPosition)
}

func TestTextInRange(t *testing.T) {
	b := NewBufferFromString("one\ntwo\nthree")

	assert.Equal(t, "ne\ntwo\nth", b.TextInRange(Position{0, 1}, Position{2, 2}))
	assert.Equal(t, "tw", b.TextInRange(Position{1, 0}, Position{1, 2}))
}

func TestSnapshotIsACopy(t *testing.T) {
	b := NewBufferFromString("abc")
	snap := b.Snapshot()

	require.NoError(t, b.InsertRunesAt(0, 0, []rune("zz")))
	assert.Equal(t, "abc", string(snap.Lines[0]))

	b.Restore(snap)
	assert.Equal(t, "abc", b.GetCurrentContent())
}

func TestSetCursorClamps(t *testing.T) {
	b := NewBufferFromString("ab\nabcdef")

	b.SetCursor(Position{9, 9})
	assert.Equal(t, Position{1, 6}, b.GetCursor())

	b.SetCursor(Position{-1, -4})
	assert.Equal(t, Position{0, 0}, b.GetCursor())
}

func TestIsModified(t *testing.T) {
	b := NewBufferFromString("abc")
	assert.False(t, b.IsModified())

	require.NoError(t, b.InsertRunesAt(0, 3, []rune("d")))
	assert.True(t, b.IsModified())

	b.SaveContent()
	assert.False(t, b.IsModified())
}
