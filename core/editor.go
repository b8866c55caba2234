package core

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// Position represents a specific location in the text buffer
type Position struct {
	Row int // Zero-indexed row (line number)
	Col int // Zero-indexed column (rune offset in the line)
}

// Before reports whether p sorts strictly before other, row first.
func (p Position) Before(other Position) bool {
	if p.Row != other.Row {
		return p.Row < other.Row
	}
	return p.Col < other.Col
}

type Clipboard interface {
	Write(text string) error
	Read() (string, error)
}

// Span is a run of text sharing one color class.
type Span struct {
	Class string
	Text  string
}

// Highlighter turns buffer lines into colored spans. Implementations cache
// their result and recompute only after Invalidate or SetLanguage.
type Highlighter interface {
	SetLanguage(lang string)
	Invalidate()
	// Highlight returns exactly one span list per line, recomputing first
	// if the cache is stale.
	Highlight(lines []string) [][]Span
}

const (
	indentUnit      = "    "
	defaultPageSize = 20
)

// Editor is a single-buffer code editor component. It renders into a
// rectangle of a Grid and handles keystrokes passed to it by its screen.
type Editor struct {
	buffer      Buffer
	selection   Selection
	history     *History
	highlighter Highlighter
	viewport    Viewport
	clipboard   Clipboard
	keyMap      KeyMap
	language    string
	dirty       bool

	updateSignal chan Signal
}

// New creates an editor with an empty buffer. highlighter may be nil, in
// which case text is rendered without color.
func New(clipboard Clipboard, highlighter Highlighter) *Editor {
	if highlighter == nil {
		highlighter = plainHighlighter{}
	}
	e := &Editor{
		buffer:       NewBuffer(),
		history:      NewHistory(DefaultMaxHistory),
		highlighter:  highlighter,
		clipboard:    clipboard,
		keyMap:       DefaultKeyMap(),
		dirty:        true,
		updateSignal: make(chan Signal, 100),
	}
	e.viewport.Resize(80, defaultPageSize)
	return e
}

// SetText replaces the buffer and resets cursor, scroll, selection and history.
func (e *Editor) SetText(text string) {
	e.buffer.SetContent(text)
	e.buffer.SaveContent()
	e.viewport.Reset()
	e.selection.Clear()
	e.history.Clear()
	e.changed()
}

func (e *Editor) GetText() string {
	return e.buffer.GetCurrentContent()
}

func (e *Editor) Lines() []string {
	return e.buffer.GetLines()
}

func (e *Editor) LineCount() int {
	return e.buffer.LineCount()
}

func (e *Editor) SetLanguage(lang string) {
	e.language = lang
	e.highlighter.SetLanguage(lang)
	e.dirty = true
}

func (e *Editor) Language() string {
	return e.language
}

func (e *Editor) Cursor() Position {
	return e.buffer.GetCursor()
}

// SetCursor moves the cursor (clamped) and drops any selection.
func (e *Editor) SetCursor(pos Position) {
	e.selection.Clear()
	e.buffer.SetCursor(pos)
	e.moved()
}

func (e *Editor) Viewport() Viewport {
	return e.viewport
}

// Select anchors a selection at anchor and moves the cursor to cursor.
func (e *Editor) Select(anchor, cursor Position) {
	e.selection.Clear()
	e.buffer.SetCursor(anchor)
	e.selection.Anchor(e.buffer.GetCursor())
	e.buffer.SetCursor(cursor)
	e.moved()
}

// SelectionRange returns the normalized selection, if one is active.
func (e *Editor) SelectionRange() (start, end Position, ok bool) {
	return e.selection.Range(e.buffer.GetCursor())
}

func (e *Editor) SelectedText() string {
	start, end, ok := e.SelectionRange()
	if !ok {
		return ""
	}
	return e.buffer.TextInRange(start, end)
}

// IsModified reports whether the text differs from the last SetText or MarkSaved.
func (e *Editor) IsModified() bool {
	return e.buffer.IsModified()
}

func (e *Editor) MarkSaved() {
	e.buffer.SaveContent()
}

func (e *Editor) Dirty() bool {
	return e.dirty
}

func (e *Editor) History() *History {
	return e.history
}

// --- State change bookkeeping ---

func (e *Editor) moved() {
	e.viewport.Follow(e.buffer.GetCursor())
	e.dirty = true
}

func (e *Editor) changed() {
	e.highlighter.Invalidate()
	e.moved()
}

// SaveSnapshot pushes the current state onto the undo stack.
func (e *Editor) SaveSnapshot() {
	e.history.Save(e.buffer.Snapshot())
}

// Undo restores the previous snapshot. Failures carry ErrUndoFailedId and
// unwrap to the history error.
func (e *Editor) Undo() error {
	prev, err := e.history.Undo(e.buffer.Snapshot())
	if err != nil {
		return NewError(ErrUndoFailedId, err)
	}
	e.buffer.Restore(prev)
	e.selection.Clear()
	e.changed()
	return nil
}

func (e *Editor) Redo() error {
	next, err := e.history.Redo(e.buffer.Snapshot())
	if err != nil {
		return NewError(ErrRedoFailedId, err)
	}
	e.buffer.Restore(next)
	e.selection.Clear()
	e.changed()
	return nil
}

// --- Editing operations ---

// DeleteSelection removes the selected text, leaving the cursor at the
// start of the range. It reports whether anything was selected. A
// collapsed anchor is dropped either way.
func (e *Editor) DeleteSelection() bool {
	if _, _, ok := e.SelectionRange(); !ok {
		e.selection.Clear()
		return false
	}
	e.SaveSnapshot()
	return e.deleteSelection()
}

func (e *Editor) deleteSelection() bool {
	start, end, ok := e.SelectionRange()
	if !ok {
		e.selection.Clear()
		return false
	}
	if err := e.buffer.DeleteRange(start, end); err != nil {
		e.DispatchError(ErrInvalidPositionId, err)
		return false
	}
	e.buffer.SetCursor(start)
	e.selection.Clear()
	e.changed()
	return true
}

// replaceSelection runs edit under a single snapshot, removing any
// selected text first.
func (e *Editor) replaceSelection(edit func()) {
	e.SaveSnapshot()
	e.deleteSelection()
	edit()
	e.changed()
}

func (e *Editor) InsertChar(r rune) {
	e.replaceSelection(func() { e.insertText(string(r)) })
}

func (e *Editor) InsertText(s string) {
	if s == "" {
		return
	}
	e.replaceSelection(func() { e.insertText(s) })
}

func (e *Editor) insertText(s string) {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	cur := e.buffer.GetCursor()
	if err := e.buffer.InsertRunesAt(cur.Row, cur.Col, []rune(s)); err != nil {
		e.DispatchError(ErrInvalidPositionId, err)
		return
	}

	parts := strings.Split(s, "\n")
	if len(parts) == 1 {
		cur.Col += len([]rune(s))
	} else {
		cur.Row += len(parts) - 1
		cur.Col = len([]rune(parts[len(parts)-1]))
	}
	e.buffer.SetCursor(cur)
}

// Backspace deletes the selection, or the rune before the cursor, joining
// with the previous line at column zero.
func (e *Editor) Backspace() {
	if e.DeleteSelection() {
		return
	}
	cur := e.buffer.GetCursor()
	if cur.Row == 0 && cur.Col == 0 {
		return
	}
	e.SaveSnapshot()

	from := Position{Row: cur.Row, Col: cur.Col - 1}
	if cur.Col == 0 {
		from = Position{Row: cur.Row - 1, Col: e.buffer.LineRuneCount(cur.Row - 1)}
	}
	if err := e.buffer.DeleteRange(from, cur); err != nil {
		e.DispatchError(ErrInvalidPositionId, err)
		return
	}
	e.buffer.SetCursor(from)
	e.changed()
}

// DeleteForward deletes the selection, or the rune under the cursor,
// pulling up the next line at end of line.
func (e *Editor) DeleteForward() {
	if e.DeleteSelection() {
		return
	}
	cur := e.buffer.GetCursor()
	lineLen := e.buffer.LineRuneCount(cur.Row)
	if cur.Col >= lineLen && cur.Row >= e.buffer.LineCount()-1 {
		return
	}
	e.SaveSnapshot()

	to := Position{Row: cur.Row, Col: cur.Col + 1}
	if cur.Col >= lineLen {
		to = Position{Row: cur.Row + 1, Col: 0}
	}
	if err := e.buffer.DeleteRange(cur, to); err != nil {
		e.DispatchError(ErrInvalidPositionId, err)
		return
	}
	e.changed()
}

// Enter splits the line at the cursor, carrying the current line's leading
// whitespace onto the new line.
func (e *Editor) Enter() {
	e.replaceSelection(func() {
		line := e.buffer.GetLineRunes(e.buffer.GetCursor().Row)
		indent := 0
		for indent < len(line) && (line[indent] == ' ' || line[indent] == '\t') {
			indent++
		}
		e.insertText("\n" + string(line[:indent]))
	})
}

func (e *Editor) Tab() {
	e.replaceSelection(func() { e.insertText(indentUnit) })
}

// --- Movement ---

func (e *Editor) MoveUp()        { _ = e.buffer.MoveUp(1); e.moved() }
func (e *Editor) MoveDown()      { _ = e.buffer.MoveDown(1); e.moved() }
func (e *Editor) MoveLeft()      { _ = e.buffer.MoveLeft(); e.moved() }
func (e *Editor) MoveRight()     { _ = e.buffer.MoveRight(); e.moved() }
func (e *Editor) MoveWordLeft()  { _ = e.buffer.MoveWordLeft(); e.moved() }
func (e *Editor) MoveWordRight() { _ = e.buffer.MoveWordRight(); e.moved() }
func (e *Editor) LineStart()     { e.buffer.MoveToLineStart(); e.moved() }
func (e *Editor) LineEnd()       { e.buffer.MoveToLineEnd(); e.moved() }

// PageUp moves one visible page; before the first render the page is 20 lines.
func (e *Editor) PageUp() {
	_ = e.buffer.MoveUp(e.pageSize())
	e.moved()
}

func (e *Editor) PageDown() {
	_ = e.buffer.MoveDown(e.pageSize())
	e.moved()
}

func (e *Editor) pageSize() int {
	return max(e.viewport.Height, 1)
}

func (e *Editor) SelectAll() {
	e.selection.Clear()
	e.selection.Anchor(Position{})
	e.buffer.MoveToBufferEnd()
	e.moved()
}

// --- Clipboard ---

func (e *Editor) Copy() error {
	n, err := e.copySelection()
	if err != nil {
		return err
	}
	e.DispatchSignal(CopySignal{chars: n})
	return nil
}

func (e *Editor) Cut() error {
	n, err := e.copySelection()
	if err != nil {
		return err
	}
	e.DeleteSelection()
	e.DispatchSignal(CutSignal{chars: n})
	return nil
}

func (e *Editor) copySelection() (int, error) {
	if e.clipboard == nil {
		return 0, ErrClipboardUnavailable
	}
	text := e.SelectedText()
	if text == "" {
		return 0, ErrNoSelection
	}
	if err := e.clipboard.Write(text); err != nil {
		return 0, err
	}
	return len([]rune(text)), nil
}

func (e *Editor) Paste() error {
	if e.clipboard == nil {
		return ErrClipboardUnavailable
	}
	content, err := e.clipboard.Read()
	if err != nil {
		return err
	}
	e.InsertText(content)
	e.DispatchSignal(PasteSignal{totalLines: strings.Count(content, "\n") + 1})
	return nil
}

// --- Key handling ---

// HandleKey applies a keystroke and reports whether it was consumed.
func (e *Editor) HandleKey(ev KeyEvent) bool {
	km := e.keyMap

	// Shift-movement extends the selection from where it started.
	if extend := e.selectionMotion(ev); extend != nil {
		e.selection.Anchor(e.buffer.GetCursor())
		extend()
		return true
	}

	switch {
	case key.Matches(ev, km.WordLeft):
		e.selection.Clear()
		e.MoveWordLeft()
	case key.Matches(ev, km.WordRight):
		e.selection.Clear()
		e.MoveWordRight()
	case key.Matches(ev, km.Up):
		e.selection.Clear()
		e.MoveUp()
	case key.Matches(ev, km.Down):
		e.selection.Clear()
		e.MoveDown()
	case key.Matches(ev, km.Left):
		e.collapseOr(true, e.MoveLeft)
	case key.Matches(ev, km.Right):
		e.collapseOr(false, e.MoveRight)
	case key.Matches(ev, km.LineStart):
		e.selection.Clear()
		e.LineStart()
	case key.Matches(ev, km.LineEnd):
		e.selection.Clear()
		e.LineEnd()
	case key.Matches(ev, km.PageUp):
		e.selection.Clear()
		e.PageUp()
	case key.Matches(ev, km.PageDown):
		e.selection.Clear()
		e.PageDown()

	case key.Matches(ev, km.Undo):
		e.dispatchHistory(e.Undo(), UndoSignal{}, ErrNothingToUndo)
	case key.Matches(ev, km.Redo):
		e.dispatchHistory(e.Redo(), RedoSignal{}, ErrNothingToRedo)

	case key.Matches(ev, km.SelectAll):
		e.SelectAll()
	case key.Matches(ev, km.Copy):
		if err := e.Copy(); err != nil && !errors.Is(err, ErrNoSelection) {
			e.DispatchError(ErrCopyFailedId, err)
		}
	case key.Matches(ev, km.Cut):
		if err := e.Cut(); err != nil && !errors.Is(err, ErrNoSelection) {
			e.DispatchError(ErrCutFailedId, err)
		}
	case key.Matches(ev, km.Paste):
		if err := e.Paste(); err != nil {
			e.DispatchError(ErrPasteFailedId, err)
		}

	case key.Matches(ev, km.Backspace):
		e.Backspace()
	case key.Matches(ev, km.DeleteForward):
		e.DeleteForward()
	case key.Matches(ev, km.Enter):
		e.Enter()
	case key.Matches(ev, km.Tab):
		e.Tab()

	case ev.Key == KeyPaste:
		e.InsertText(ev.Text)
	case ev.Printable():
		e.InsertChar(ev.Rune)

	default:
		return false
	}

	return true
}

// dispatchHistory reports an undo or redo outcome. Running out of history
// is silent.
func (e *Editor) dispatchHistory(err error, ok Signal, exhausted error) {
	var editorErr *Error
	switch {
	case err == nil:
		e.DispatchSignal(ok)
	case errors.Is(err, exhausted):
	case errors.As(err, &editorErr):
		e.DispatchSignal(ErrorSignal(*editorErr))
	}
}

func (e *Editor) selectionMotion(ev KeyEvent) func() {
	km := e.keyMap
	switch {
	case key.Matches(ev, km.SelectUp):
		return e.MoveUp
	case key.Matches(ev, km.SelectDown):
		return e.MoveDown
	case key.Matches(ev, km.SelectLeft):
		return e.MoveLeft
	case key.Matches(ev, km.SelectRight):
		return e.MoveRight
	case key.Matches(ev, km.SelectWordLeft):
		return e.MoveWordLeft
	case key.Matches(ev, km.SelectWordRight):
		return e.MoveWordRight
	case key.Matches(ev, km.SelectLineStart):
		return e.LineStart
	case key.Matches(ev, km.SelectLineEnd):
		return e.LineEnd
	}
	return nil
}

// collapseOr jumps to one end of an active selection instead of moving.
func (e *Editor) collapseOr(toStart bool, move func()) {
	if _, anchored := e.selection.AnchorPosition(); !anchored {
		move()
		return
	}

	if start, end, ok := e.SelectionRange(); ok {
		if toStart {
			e.buffer.SetCursor(start)
		} else {
			e.buffer.SetCursor(end)
		}
	}
	e.selection.Clear()
	e.moved()
}

// plainHighlighter renders every line as a single uncolored span.
type plainHighlighter struct{}

func (plainHighlighter) SetLanguage(string) {}
func (plainHighlighter) Invalidate()        {}

func (plainHighlighter) Highlight(lines []string) [][]Span {
	out := make([][]Span, len(lines))
	for i, l := range lines {
		if l != "" {
			out[i] = []Span{{Text: l}}
		}
	}
	return out
}
