package core

import "github.com/ionut-t/leetshell/logging"

// Signal is a notification from the editor to whoever hosts it.
type Signal any

type CopySignal struct {
	chars int
}

func (c CopySignal) Value() int {
	return c.chars
}

type CutSignal struct {
	chars int
}

func (c CutSignal) Value() int {
	return c.chars
}

type PasteSignal struct {
	totalLines int
}

func (p PasteSignal) Value() int {
	return p.totalLines
}

type UndoSignal struct{}

type RedoSignal struct{}

type ErrorSignal Error

func (e ErrorSignal) Value() (id ErrorId, err error) {
	return e.id, e.err
}

func (e *Editor) DispatchSignal(signal Signal) {
	select {
	case e.updateSignal <- signal:
	default:
		logging.Warn("editor: signal channel is full, dropping %T", signal)
	}
}

func (e *Editor) DispatchError(id ErrorId, err error) {
	e.DispatchSignal(ErrorSignal(*NewError(id, err)))
}

// DrainSignals returns every signal queued so far without blocking.
func (e *Editor) DrainSignals() []Signal {
	var out []Signal
	for {
		select {
		case s := <-e.updateSignal:
			out = append(out, s)
		default:
			return out
		}
	}
}
