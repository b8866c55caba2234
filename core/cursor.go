package core

import "unicode"

// --- Cursor Movement ---

// MoveLeft moves one rune left, wrapping to the end of the previous line.
func (b *textBuffer) MoveLeft() error {
	if b.cursor.Col > 0 {
		b.cursor.Col--
		return nil
	}
	if b.cursor.Row == 0 {
		return ErrStartOfBuffer
	}
	b.cursor.Row--
	b.cursor.Col = len(b.lines[b.cursor.Row])
	return nil
}

// MoveRight moves one rune right, wrapping to the start of the next line.
func (b *textBuffer) MoveRight() error {
	if b.cursor.Col < len(b.lines[b.cursor.Row]) {
		b.cursor.Col++
		return nil
	}
	if b.cursor.Row >= len(b.lines)-1 {
		return ErrEndOfBuffer
	}
	b.cursor.Row++
	b.cursor.Col = 0
	return nil
}

// MoveUp moves the cursor up by count lines, keeping the column where the
// destination line is long enough.
func (b *textBuffer) MoveUp(count int) error {
	if b.cursor.Row <= 0 {
		return ErrStartOfBuffer
	}
	b.cursor.Row = max(b.cursor.Row-count, 0)
	b.cursor.Col = min(b.cursor.Col, len(b.lines[b.cursor.Row]))
	return nil
}

// MoveDown moves the cursor down by count lines
func (b *textBuffer) MoveDown(count int) error {
	last := len(b.lines) - 1
	if b.cursor.Row >= last {
		return ErrEndOfBuffer
	}
	b.cursor.Row = min(b.cursor.Row+count, last)
	b.cursor.Col = min(b.cursor.Col, len(b.lines[b.cursor.Row]))
	return nil
}

func (b *textBuffer) MoveToLineStart() {
	b.cursor.Col = 0
}

func (b *textBuffer) MoveToLineEnd() {
	b.cursor.Col = len(b.lines[b.cursor.Row])
}

func (b *textBuffer) MoveToBufferEnd() {
	b.cursor.Row = len(b.lines) - 1
	b.cursor.Col = len(b.lines[b.cursor.Row])
}

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_'
}

// MoveWordRight skips a run of word characters then a run of anything else.
// At the end of a line it first crosses into the next one.
func (b *textBuffer) MoveWordRight() error {
	if b.cursor.Col >= len(b.lines[b.cursor.Row]) {
		if b.cursor.Row >= len(b.lines)-1 {
			return ErrEndOfBuffer
		}
		b.cursor.Row++
		b.cursor.Col = 0
	}

	line := b.lines[b.cursor.Row]
	col := b.cursor.Col
	for col < len(line) && isWordChar(line[col]) {
		col++
	}
	for col < len(line) && !isWordChar(line[col]) {
		col++
	}
	b.cursor.Col = col
	return nil
}

// MoveWordLeft mirrors MoveWordRight: skip non-word runes, then the word
// before them. At column zero it first crosses to the end of the previous line.
func (b *textBuffer) MoveWordLeft() error {
	if b.cursor.Col == 0 {
		if b.cursor.Row == 0 {
			return ErrStartOfBuffer
		}
		b.cursor.Row--
		b.cursor.Col = len(b.lines[b.cursor.Row])
		if b.cursor.Col == 0 {
			return nil
		}
	}

	line := b.lines[b.cursor.Row]
	col := b.cursor.Col
	for col > 0 && !isWordChar(line[col-1]) {
		col--
	}
	for col > 0 && isWordChar(line[col-1]) {
		col--
	}
	b.cursor.Col = col
	return nil
}
