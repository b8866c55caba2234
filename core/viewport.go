package core

// Viewport is the visible window onto the buffer, in runes and lines.
type Viewport struct {
	ScrollRow int
	ScrollCol int
	Width     int
	Height    int
}

// Resize sets the visible extent; zero or negative sizes count as one.
func (v *Viewport) Resize(width, height int) {
	v.Width = max(width, 1)
	v.Height = max(height, 1)
}

// Follow scrolls the minimum amount needed for pos to be visible.
func (v *Viewport) Follow(pos Position) {
	height := max(v.Height, 1)
	width := max(v.Width, 1)

	if pos.Row < v.ScrollRow {
		v.ScrollRow = pos.Row
	} else if pos.Row >= v.ScrollRow+height {
		v.ScrollRow = pos.Row - height + 1
	}

	if pos.Col < v.ScrollCol {
		v.ScrollCol = pos.Col
	} else if pos.Col >= v.ScrollCol+width {
		v.ScrollCol = pos.Col - width + 1
	}

	v.ScrollRow = max(v.ScrollRow, 0)
	v.ScrollCol = max(v.ScrollCol, 0)
}

// Contains reports whether pos is inside the visible window.
func (v Viewport) Contains(pos Position) bool {
	return pos.Row >= v.ScrollRow && pos.Row < v.ScrollRow+max(v.Height, 1) &&
		pos.Col >= v.ScrollCol && pos.Col < v.ScrollCol+max(v.Width, 1)
}

func (v *Viewport) Reset() {
	v.ScrollRow = 0
	v.ScrollCol = 0
}
