// Package tui is the application runtime: a stack of full-screen views
// driven by a single cooperative loop.
package tui

import (
	"time"

	"github.com/google/uuid"
	"github.com/ionut-t/leetshell/core"
)

// Terminal is the device the scheduler draws to and reads keys from.
type Terminal interface {
	Size() (width, height int)
	// PollKey waits at most timeout for one key event.
	PollKey(timeout time.Duration) (core.KeyEvent, bool, error)
	Flush(grid *core.Grid) error
	Clear()
}

type Kind int

const (
	KindLogin Kind = iota
	KindProblemList
	KindProblemDetail
	KindTestResult
	KindSubmissionResult
)

func (k Kind) String() string {
	switch k {
	case KindLogin:
		return "login"
	case KindProblemList:
		return "problem-list"
	case KindProblemDetail:
		return "problem-detail"
	case KindTestResult:
		return "test-result"
	case KindSubmissionResult:
		return "submission-result"
	}
	return "unknown"
}

// Screen is one navigational unit on the stack. Only the active screen is
// ever rendered or sent keys, always from the scheduler goroutine.
type Screen interface {
	ID() uuid.UUID
	Kind() Kind

	Render(grid *core.Grid) error
	HandleKey(ev core.KeyEvent) error

	Invalidate()
	Dirty() bool
	ClearDirty()
	// CheckResize records the terminal size and reports whether it changed.
	CheckResize(width, height int) bool

	OnEnter()
	OnExit()
}

// Base carries the bookkeeping shared by all screens. Embed it and override
// OnEnter/OnExit as needed.
type Base struct {
	id     uuid.UUID
	kind   Kind
	dirty  bool
	width  int
	height int
}

func NewBase(kind Kind) Base {
	return Base{id: uuid.New(), kind: kind, dirty: true}
}

func (b *Base) ID() uuid.UUID { return b.id }
func (b *Base) Kind() Kind    { return b.kind }
func (b *Base) Invalidate()   { b.dirty = true }
func (b *Base) Dirty() bool   { return b.dirty }
func (b *Base) ClearDirty()   { b.dirty = false }
func (b *Base) OnEnter()      { b.dirty = true }
func (b *Base) OnExit()       {}

// Size is the terminal size seen by the last CheckResize.
func (b *Base) Size() (int, int) { return b.width, b.height }

func (b *Base) CheckResize(width, height int) bool {
	if width == b.width && height == b.height {
		return false
	}
	b.width, b.height = width, height
	b.dirty = true
	return true
}
