package core

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memClipboard struct {
	text string
	err  error
}

func (c *memClipboard) Write(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

func (c *memClipboard) Read() (string, error) {
	return c.text, c.err
}

func newTestEditor(text string) (*Editor, *memClipboard) {
	cb := &memClipboard{}
	e := New(cb, nil)
	e.SetText(text)
	return e, cb
}

func press(e *Editor, keys ...string) {
	for _, k := range keys {
		e.HandleKey(ParseKey(k))
	}
}

func TestTypeThenUndoEverything(t *testing.T) {
	e, _ := newTestEditor("")

	press(e, "a", "b", "c")
	assert.Equal(t, "abc", e.GetText())
	assert.Equal(t, Position{0, 3}, e.Cursor())

	for range 3 {
		require.NoError(t, e.Undo())
	}
	assert.Equal(t, "", e.GetText())
	assert.Equal(t, Position{0, 0}, e.Cursor())
	assert.ErrorIs(t, e.Undo(), ErrNothingToUndo)
}

func TestUndoRedoRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	e, _ := newTestEditor("seed line\n    indented")
	ops := []func(){
		func() { e.InsertChar('x') },
		func() { e.InsertText("ab\ncd") },
		e.Backspace,
		e.DeleteForward,
		e.Enter,
		e.Tab,
		e.MoveLeft,
		e.MoveUp,
		e.MoveWordRight,
	}

	for range 200 {
		before := e.GetText()
		undoBefore, _ := e.History().Len()
		ops[rng.Intn(len(ops))]()
		after := e.GetText()

		undoAfter, _ := e.History().Len()
		if undoAfter == undoBefore {
			continue
		}

		require.NoError(t, e.Undo())
		require.Equal(t, before, e.GetText())
		require.NoError(t, e.Redo())
		require.Equal(t, after, e.GetText())
	}
}

func TestDeleteSelectionSingleRow(t *testing.T) {
	e, _ := newTestEditor("abcdef")
	e.Select(Position{0, 2}, Position{0, 5})

	assert.True(t, e.DeleteSelection())
	assert.Equal(t, "abf", e.GetText())
	assert.Equal(t, Position{0, 2}, e.Cursor())

	_, _, ok := e.SelectionRange()
	assert.False(t, ok)
	assert.False(t, e.DeleteSelection())
}

func TestDeleteSelectionMultiRowBackwards(t *testing.T) {
	e, _ := newTestEditor("one\ntwo\nthree")
	e.Select(Position{2, 2}, Position{0, 1})

	assert.True(t, e.DeleteSelection())
	assert.Equal(t, "oree", e.GetText())
	assert.Equal(t, Position{0, 1}, e.Cursor())
}

func TestTypingReplacesSelectionWithOneSnapshot(t *testing.T) {
	e, _ := newTestEditor("hello world")
	press(e, "shift+right", "shift+right", "shift+right", "shift+right", "shift+right")
	assert.Equal(t, "hello", e.SelectedText())

	press(e, "J")
	assert.Equal(t, "J world", e.GetText())

	require.NoError(t, e.Undo())
	assert.Equal(t, "hello world", e.GetText())
}

func TestEnterCopiesIndent(t *testing.T) {
	e, _ := newTestEditor("    if x:")
	e.SetCursor(Position{0, 9})

	press(e, "enter")
	assert.Equal(t, "    if x:\n    ", e.GetText())
	assert.Equal(t, Position{1, 4}, e.Cursor())

	press(e, "tab", "p")
	assert.Equal(t, "    if x:\n"+strings.Repeat(" ", 8)+"p", e.GetText())
}

func TestBackspaceJoinsLines(t *testing.T) {
	e, _ := newTestEditor("ab\ncd")
	e.SetCursor(Position{1, 0})

	press(e, "backspace")
	assert.Equal(t, "abcd", e.GetText())
	assert.Equal(t, Position{0, 2}, e.Cursor())

	e.SetCursor(Position{0, 0})
	undo, _ := e.History().Len()
	press(e, "backspace")
	after, _ := e.History().Len()
	assert.Equal(t, undo, after, "no-op backspace must not record history")
}

func TestDeleteForwardPullsNextLine(t *testing.T) {
	e, _ := newTestEditor("ab\ncd")
	e.SetCursor(Position{0, 2})

	press(e, "delete")
	assert.Equal(t, "abcd", e.GetText())

	press(e, "delete")
	assert.Equal(t, "abd", e.GetText())
}

func TestPlainArrowsCollapseSelection(t *testing.T) {
	e, _ := newTestEditor("abcdef")
	e.Select(Position{0, 1}, Position{0, 4})

	press(e, "left")
	assert.Equal(t, Position{0, 1}, e.Cursor())
	_, _, ok := e.SelectionRange()
	assert.False(t, ok)

	e.Select(Position{0, 4}, Position{0, 1})
	press(e, "right")
	assert.Equal(t, Position{0, 4}, e.Cursor())
}

func TestShiftHomeEndSelect(t *testing.T) {
	e, _ := newTestEditor("abc def")
	e.SetCursor(Position{0, 4})

	press(e, "shift+end")
	assert.Equal(t, "def", e.SelectedText())

	press(e, "shift+home")
	assert.Equal(t, "abc ", e.SelectedText())

	press(e, "ctrl+shift+right")
	assert.Equal(t, "", e.SelectedText())
}

func TestUndoRedoKeys(t *testing.T) {
	e, _ := newTestEditor("")
	press(e, "x", "y")

	press(e, "ctrl+z")
	assert.Equal(t, "x", e.GetText())
	press(e, "ctrl+u")
	assert.Equal(t, "", e.GetText())
	press(e, "ctrl+r", "ctrl+y")
	assert.Equal(t, "xy", e.GetText())

	signals := e.DrainSignals()
	assert.Len(t, signals, 4)
}

func TestClipboardRoundTrip(t *testing.T) {
	e, cb := newTestEditor("alpha beta")
	e.Select(Position{0, 0}, Position{0, 5})

	press(e, "ctrl+x")
	assert.Equal(t, "alpha", cb.text)
	assert.Equal(t, " beta", e.GetText())

	e.SetCursor(Position{0, 5})
	cb.text = "\ngamma"
	press(e, "ctrl+v")
	assert.Equal(t, " beta\ngamma", e.GetText())
	assert.Equal(t, Position{1, 5}, e.Cursor())

	signals := e.DrainSignals()
	require.Len(t, signals, 2)
	assert.Equal(t, 5, signals[0].(CutSignal).Value())
	assert.Equal(t, 2, signals[1].(PasteSignal).Value())
}

func TestClipboardFailureIsSignalled(t *testing.T) {
	e, cb := newTestEditor("abc")
	cb.err = errors.New("no display")

	press(e, "ctrl+v")
	signals := e.DrainSignals()
	require.Len(t, signals, 1)
	id, err := signals[0].(ErrorSignal).Value()
	assert.Equal(t, ErrPasteFailedId, id)
	assert.EqualError(t, err, "no display")

	e.clipboard = nil
	e.SelectAll()
	assert.ErrorIs(t, e.Copy(), ErrClipboardUnavailable)
}

func TestPasteEventInsertsText(t *testing.T) {
	e, _ := newTestEditor("")
	assert.True(t, e.HandleKey(PasteKey("a\nb")))
	assert.Equal(t, "a\nb", e.GetText())
}

func TestUnboundKeysAreNotConsumed(t *testing.T) {
	e, _ := newTestEditor("")
	assert.False(t, e.HandleKey(ParseKey("esc")))
	assert.False(t, e.HandleKey(ParseKey("ctrl+s")))
	assert.Equal(t, "", e.GetText())
}

func TestSetTextResetsState(t *testing.T) {
	e, _ := newTestEditor("abc")
	press(e, "x")
	e.Select(Position{0, 0}, Position{0, 2})

	e.SetText("new\ntext")
	assert.Equal(t, Position{0, 0}, e.Cursor())
	assert.False(t, e.History().CanUndo())
	assert.False(t, e.IsModified())
	_, _, ok := e.SelectionRange()
	assert.False(t, ok)
}

func TestViewportFollowsCursor(t *testing.T) {
	lines := make([]byte, 0, 200)
	for range 60 {
		lines = append(lines, []byte("0123456789012345678901234567890123456789\n")...)
	}

	for _, size := range [][2]int{{1, 1}, {3, 2}, {7, 5}, {40, 20}} {
		e, _ := newTestEditor(string(lines))
		grid := NewGrid(80, 40)
		rng := rand.New(rand.NewSource(int64(size[0]*100 + size[1])))
		moves := []string{"down", "up", "right", "left", "pgdown", "pgup", "end", "home", "ctrl+right"}

		for range 300 {
			press(e, moves[rng.Intn(len(moves))])
			e.Render(grid, 0, 0, size[0]+GutterWidth(e.LineCount()), size[1])

			v := e.Viewport()
			c := e.Cursor()
			require.LessOrEqual(t, v.ScrollRow, c.Row)
			require.Less(t, c.Row, v.ScrollRow+size[1])
			require.LessOrEqual(t, v.ScrollCol, c.Col)
			require.Less(t, c.Col, v.ScrollCol+size[0])
		}
	}
}

func TestCollapsedSelectionIsDropped(t *testing.T) {
	tests := []struct {
		name string
		text string
		at   Position
		keys []string
		want string
	}{
		{
			name: "typing after shift back to anchor",
			text: "abc",
			at:   Position{0, 3},
			keys: []string{"shift+left", "shift+right", "x", "y"},
			want: "abcxy",
		},
		{
			name: "select all on empty buffer",
			keys: []string{"ctrl+a", "a", "b"},
			want: "ab",
		},
		{
			name: "backspace after shift back to anchor",
			text: "abc",
			at:   Position{0, 3},
			keys: []string{"shift+left", "shift+right", "backspace", "x"},
			want: "abx",
		},
		{
			name: "delete after shift back to anchor",
			text: "abc",
			at:   Position{0, 1},
			keys: []string{"shift+right", "shift+left", "delete", "x", "y"},
			want: "axyc",
		},
		{
			name: "enter after select all on empty buffer",
			keys: []string{"ctrl+a", "enter", "z"},
			want: "\nz",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEditor(tt.text)
			e.SetCursor(tt.at)

			press(e, tt.keys...)

			assert.Equal(t, tt.want, e.GetText())
			_, anchored := e.selection.AnchorPosition()
			assert.False(t, anchored)
			assert.Empty(t, e.DrainSignals())
		})
	}
}

func TestCutWithCollapsedSelectionKeepsTyping(t *testing.T) {
	e, cb := newTestEditor("abc")
	e.Select(Position{0, 2}, Position{0, 2})

	press(e, "ctrl+x", "x", "y")
	assert.Equal(t, "", cb.text)
	assert.Equal(t, "abxyc", e.GetText())
	assert.Empty(t, e.DrainSignals())
}

func TestPageKeysMoveByViewportHeight(t *testing.T) {
	lines := make([]string, 20)
	for i := range lines {
		lines[i] = "line"
	}
	e, _ := newTestEditor(strings.Join(lines, "\n"))
	e.SetCursor(Position{0, 2})
	e.Render(NewGrid(20, 5), 0, 0, 20, 5)

	steps := []struct {
		key       string
		row       int
		scrollRow int
	}{
		{"pgdown", 5, 1},
		{"pgdown", 10, 6},
		{"pgup", 5, 5},
		{"pgdown", 10, 6},
		{"pgdown", 15, 11},
		{"pgdown", 19, 15},
		{"pgdown", 19, 15},
		{"pgup", 14, 14},
		{"pgup", 9, 9},
		{"pgup", 4, 4},
		{"pgup", 0, 0},
		{"pgup", 0, 0},
	}

	for i, s := range steps {
		press(e, s.key)
		assert.Equal(t, Position{s.row, 2}, e.Cursor(), "step %d %s", i, s.key)
		assert.Equal(t, s.scrollRow, e.Viewport().ScrollRow, "step %d %s", i, s.key)
	}
}

func TestPageDownBeforeFirstRender(t *testing.T) {
	e, _ := newTestEditor(strings.Repeat("x\n", 49) + "x")

	press(e, "pgdown")
	assert.Equal(t, Position{20, 0}, e.Cursor())
	assert.Equal(t, 1, e.Viewport().ScrollRow)

	press(e, "pgdown", "pgdown")
	assert.Equal(t, Position{49, 0}, e.Cursor())
	assert.Equal(t, 30, e.Viewport().ScrollRow)
}

func TestHistoryErrorsCarryIds(t *testing.T) {
	e, _ := newTestEditor("abc")

	var editorErr *Error
	err := e.Undo()
	require.ErrorAs(t, err, &editorErr)
	assert.Equal(t, ErrUndoFailedId, editorErr.Id())
	assert.ErrorIs(t, err, ErrNothingToUndo)

	err = e.Redo()
	require.ErrorAs(t, err, &editorErr)
	assert.Equal(t, ErrRedoFailedId, editorErr.Id())
	assert.ErrorIs(t, err, ErrNothingToRedo)

	press(e, "ctrl+z", "ctrl+y")
	assert.Empty(t, e.DrainSignals(), "running out of history is silent")
}
