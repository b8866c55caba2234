package core

import (
	"fmt"
	"strings"
)

// Buffer represents the text content being edited (Using Runes)
type Buffer interface {
	// Content access
	GetLines() []string              // Get lines as strings (for display)
	GetLineRunes(lineNum int) []rune // Get specific line as runes (for editing)
	LineRuneCount(lineNum int) int   // Get rune count for a line
	GetCurrentContent() string       // Get entire buffer content as a string
	LineCount() int                  // Get number of lines
	TextInRange(start, end Position) string

	// Modification
	InsertRunesAt(row, col int, runes []rune) error // Insert runes (handles newlines)
	DeleteRange(start, end Position) error          // Delete [start, end) (handles newlines)
	SetContent(content string)                      // Replace everything, keeping at least one line

	// Snapshots for history
	Snapshot() Snapshot
	Restore(Snapshot)

	// Cursor
	GetCursor() Position
	SetCursor(Position)
	MoveLeft() error
	MoveRight() error
	MoveUp(count int) error
	MoveDown(count int) error
	MoveWordLeft() error
	MoveWordRight() error
	MoveToLineStart()
	MoveToLineEnd()
	MoveToBufferEnd()

	IsModified() bool // Check if buffer differs from the last saved content
	SaveContent()     // Mark current content as saved
	IsEmpty() bool
}

// textBuffer implementation using runes for better unicode handling
type textBuffer struct {
	lines        [][]rune
	cursor       Position
	savedContent string
}

// NewBuffer creates a new empty buffer
func NewBuffer() Buffer {
	return &textBuffer{
		lines: [][]rune{{}}, // Start with one empty line
	}
}

// NewBufferFromString creates a buffer holding content, treated as saved.
func NewBufferFromString(content string) Buffer {
	b := &textBuffer{}
	b.SetContent(content)
	b.SaveContent()
	return b
}

func (b *textBuffer) IsEmpty() bool {
	return len(b.lines) == 1 && len(b.lines[0]) == 0
}

func (b *textBuffer) SetContent(content string) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	parts := strings.Split(content, "\n")

	b.lines = make([][]rune, len(parts))
	for i, p := range parts {
		b.lines[i] = []rune(p)
	}
	b.cursor = Position{}
}

func (b *textBuffer) GetLines() []string {
	linesStr := make([]string, len(b.lines))
	for i, r := range b.lines {
		linesStr[i] = string(r)
	}
	return linesStr
}

func (b *textBuffer) GetLineRunes(lineNum int) []rune {
	if lineNum < 0 || lineNum >= len(b.lines) {
		return nil
	}
	return b.lines[lineNum]
}

func (b *textBuffer) LineRuneCount(lineNum int) int {
	if lineNum < 0 || lineNum >= len(b.lines) {
		return 0
	}
	return len(b.lines[lineNum])
}

func (b *textBuffer) IsModified() bool {
	return b.savedContent != b.GetCurrentContent()
}

func (b *textBuffer) SaveContent() {
	b.savedContent = b.GetCurrentContent()
}

// GetCurrentContent returns the entire buffer content as a string
func (b *textBuffer) GetCurrentContent() string {
	return strings.Join(b.GetLines(), "\n")
}

func (b *textBuffer) LineCount() int {
	return len(b.lines)
}

func (b *textBuffer) GetCursor() Position {
	return b.cursor
}

// SetCursor sets the cursor position, clamping it to the buffer.
func (b *textBuffer) SetCursor(pos Position) {
	b.cursor = b.clamp(pos)
}

func (b *textBuffer) clamp(pos Position) Position {
	pos.Row = min(max(pos.Row, 0), len(b.lines)-1)
	// Col may sit one past the last rune (end of line)
	pos.Col = min(max(pos.Col, 0), len(b.lines[pos.Row]))
	return pos
}

func (b *textBuffer) valid(pos Position) bool {
	if pos.Row < 0 || pos.Row >= len(b.lines) {
		return false
	}
	return pos.Col >= 0 && pos.Col <= len(b.lines[pos.Row])
}

func (b *textBuffer) Snapshot() Snapshot {
	lines := make([][]rune, len(b.lines))
	for i, l := range b.lines {
		lines[i] = append([]rune(nil), l...)
	}
	return Snapshot{Lines: lines, Cursor: b.cursor}
}

func (b *textBuffer) Restore(s Snapshot) {
	if len(s.Lines) == 0 {
		b.lines = [][]rune{{}}
	} else {
		b.lines = make([][]rune, len(s.Lines))
		for i, l := range s.Lines {
			b.lines[i] = append([]rune(nil), l...)
		}
	}
	b.cursor = b.clamp(s.Cursor)
}

// --- Buffer Modification ---

// InsertRunesAt inserts runes at the specified position. Handles newlines correctly.
func (b *textBuffer) InsertRunesAt(row, col int, runes []rune) error {
	if row < 0 || row >= len(b.lines) {
		return fmt.Errorf("InsertRunesAt: %w: row %d out of bounds [0, %d)", ErrInvalidPosition, row, len(b.lines))
	}

	line := b.lines[row]
	if col < 0 || col > len(line) { // Allow insertion at len(line)
		return fmt.Errorf("InsertRunesAt: %w: col %d out of bounds [0, %d]", ErrInvalidPosition, col, len(line))
	}

	text := strings.ReplaceAll(string(runes), "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	if !strings.Contains(text, "\n") {
		newLine := make([]rune, 0, len(line)+len(runes))
		newLine = append(newLine, line[:col]...)
		newLine = append(newLine, []rune(text)...)
		newLine = append(newLine, line[col:]...)
		b.lines[row] = newLine
		return nil
	}

	parts := strings.Split(text, "\n")
	head := append([]rune(nil), line[:col]...)
	tail := append([]rune(nil), line[col:]...)

	inserted := make([][]rune, len(parts))
	for i, p := range parts {
		inserted[i] = []rune(p)
	}
	inserted[0] = append(head, inserted[0]...)
	last := len(inserted) - 1
	inserted[last] = append(inserted[last], tail...)

	finalLines := make([][]rune, 0, len(b.lines)+last)
	finalLines = append(finalLines, b.lines[:row]...)
	finalLines = append(finalLines, inserted...)
	finalLines = append(finalLines, b.lines[row+1:]...)
	b.lines = finalLines

	return nil
}

// DeleteRange removes the text between two positions. The positions may be
// given in either order; the removed span is [start, end).
func (b *textBuffer) DeleteRange(start, end Position) error {
	if !b.valid(start) || !b.valid(end) {
		return fmt.Errorf("DeleteRange: %w: %v..%v", ErrInvalidPosition, start, end)
	}
	start, end = NormalizeSelection(start, end)

	if start.Row == end.Row {
		line := b.lines[start.Row]
		newLine := make([]rune, 0, len(line)-(end.Col-start.Col))
		newLine = append(newLine, line[:start.Col]...)
		newLine = append(newLine, line[end.Col:]...)
		b.lines[start.Row] = newLine
		return nil
	}

	merged := make([]rune, 0, start.Col+len(b.lines[end.Row])-end.Col)
	merged = append(merged, b.lines[start.Row][:start.Col]...)
	merged = append(merged, b.lines[end.Row][end.Col:]...)

	b.lines[start.Row] = merged
	b.lines = append(b.lines[:start.Row+1], b.lines[end.Row+1:]...)

	return nil
}

// TextInRange returns the text between two positions joined by newlines.
func (b *textBuffer) TextInRange(start, end Position) string {
	start, end = NormalizeSelection(b.clamp(start), b.clamp(end))
	if start.Row == end.Row {
		return string(b.lines[start.Row][start.Col:end.Col])
	}

	var sb strings.Builder
	sb.WriteString(string(b.lines[start.Row][start.Col:]))
	for r := start.Row + 1; r < end.Row; r++ {
		sb.WriteByte('\n')
		sb.WriteString(string(b.lines[r]))
	}
	sb.WriteByte('\n')
	sb.WriteString(string(b.lines[end.Row][:end.Col]))
	return sb.String()
}
