package tui

import "fmt"

// RenderError is a failure while drawing a screen. The frame is skipped.
type RenderError struct {
	Screen Kind
	Err    error
}

func (e *RenderError) Error() string { return fmt.Sprintf("render %s: %v", e.Screen, e.Err) }
func (e *RenderError) Unwrap() error { return e.Err }

// InputError is a failure while polling the terminal for keys.
type InputError struct {
	Err error
}

func (e *InputError) Error() string { return fmt.Sprintf("poll input: %v", e.Err) }
func (e *InputError) Unwrap() error { return e.Err }

// KeyHandlerError is a failure while a screen handled a key. The key is
// dropped.
type KeyHandlerError struct {
	Screen Kind
	Key    string
	Err    error
}

func (e *KeyHandlerError) Error() string {
	return fmt.Sprintf("handle key %q on %s: %v", e.Key, e.Screen, e.Err)
}
func (e *KeyHandlerError) Unwrap() error { return e.Err }

// recovered turns a recovered panic value into an error.
func recovered(r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("panic: %w", err)
	}
	return fmt.Errorf("panic: %v", r)
}
