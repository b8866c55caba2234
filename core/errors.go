package core

import (
	"errors"
	"fmt"
)

var (
	ErrEndOfBuffer          = errors.New("end of buffer")
	ErrStartOfBuffer        = errors.New("start of buffer")
	ErrInvalidPosition      = errors.New("invalid position")
	ErrNoSelection          = errors.New("no selection")
	ErrNothingToUndo        = errors.New("already at oldest change")
	ErrNothingToRedo        = errors.New("already at newest change")
	ErrClipboardUnavailable = errors.New("clipboard handler not set")
)

type ErrorId int

const (
	ErrInvalidPositionId ErrorId = iota
	ErrCopyFailedId
	ErrCutFailedId
	ErrPasteFailedId
	ErrUndoFailedId
	ErrRedoFailedId
)

func (id ErrorId) String() string {
	switch id {
	case ErrInvalidPositionId:
		return "invalid position"
	case ErrCopyFailedId:
		return "copy failed"
	case ErrCutFailedId:
		return "cut failed"
	case ErrPasteFailedId:
		return "paste failed"
	case ErrUndoFailedId:
		return "undo failed"
	case ErrRedoFailedId:
		return "redo failed"
	default:
		return fmt.Sprintf("error(%d)", int(id))
	}
}

// Error pairs an editor failure with an id consumers can switch on.
type Error struct {
	id  ErrorId
	err error
}

func NewError(id ErrorId, err error) *Error {
	return &Error{id: id, err: err}
}

func (e *Error) Id() ErrorId {
	return e.id
}

func (e *Error) Error() string {
	if e.err == nil {
		return e.id.String()
	}
	return fmt.Sprintf("%s: %v", e.id, e.err)
}

func (e *Error) Unwrap() error {
	return e.err
}
