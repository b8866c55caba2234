package core

// DefaultMaxHistory bounds each of the undo and redo stacks.
const DefaultMaxHistory = 200

// Snapshot is a full copy of the buffer lines plus the cursor.
type Snapshot struct {
	Lines  [][]rune
	Cursor Position
}

// History keeps undo and redo stacks of full buffer snapshots.
type History struct {
	undo       []Snapshot
	redo       []Snapshot
	maxHistory int
}

func NewHistory(maxHistory int) *History {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &History{maxHistory: maxHistory}
}

// Save records the pre-edit state and forgets anything that was undone.
func (h *History) Save(s Snapshot) {
	h.undo = push(h.undo, s, h.maxHistory)
	h.redo = h.redo[:0]
}

// Undo swaps current onto the redo stack and returns the state to restore.
func (h *History) Undo(current Snapshot) (Snapshot, error) {
	if len(h.undo) == 0 {
		return Snapshot{}, ErrNothingToUndo
	}
	prev := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = push(h.redo, current, h.maxHistory)
	return prev, nil
}

// Redo is the mirror of Undo; it leaves the redo stack otherwise intact.
func (h *History) Redo(current Snapshot) (Snapshot, error) {
	if len(h.redo) == 0 {
		return Snapshot{}, ErrNothingToRedo
	}
	next := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = push(h.undo, current, h.maxHistory)
	return next, nil
}

func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
}

func (h *History) CanUndo() bool { return len(h.undo) > 0 }

func (h *History) CanRedo() bool { return len(h.redo) > 0 }

func (h *History) Len() (undo, redo int) {
	return len(h.undo), len(h.redo)
}

// push appends s, dropping the oldest entries beyond limit.
func push(stack []Snapshot, s Snapshot, limit int) []Snapshot {
	stack = append(stack, s)
	if len(stack) > limit {
		stack = stack[len(stack)-limit:]
	}
	return stack
}
