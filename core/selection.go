package core

// Selection tracks the anchor of a shift-extended selection. The other end
// is always the buffer cursor.
type Selection struct {
	anchor Position
	set    bool
}

// Anchor starts a selection at pos unless one is already anchored.
func (s *Selection) Anchor(pos Position) {
	if !s.set {
		s.anchor = pos
		s.set = true
	}
}

func (s *Selection) Clear() {
	s.set = false
	s.anchor = Position{}
}

// AnchorPosition returns the anchor and whether one is set.
func (s Selection) AnchorPosition() (Position, bool) {
	return s.anchor, s.set
}

// Range returns the normalized selection against cursor. ok is false when
// no anchor is set or the anchor equals the cursor.
func (s Selection) Range(cursor Position) (start, end Position, ok bool) {
	if !s.set || s.anchor == cursor {
		return Position{}, Position{}, false
	}
	start, end = NormalizeSelection(s.anchor, cursor)
	return start, end, true
}

// Contains reports whether pos lies in the half-open selected range.
func (s Selection) Contains(cursor, pos Position) bool {
	start, end, ok := s.Range(cursor)
	if !ok {
		return false
	}
	if pos.Row < start.Row || pos.Row > end.Row {
		return false
	}
	if pos.Row == start.Row && pos.Col < start.Col {
		return false
	}
	if pos.Row == end.Row && pos.Col >= end.Col {
		return false
	}
	return true
}

// NormalizeSelection orders two positions so that start <= end.
func NormalizeSelection(start, end Position) (Position, Position) {
	if end.Before(start) {
		return end, start
	}
	return start, end
}
