package bubble_adapter

import (
	"github.com/atotto/clipboard"
	"github.com/ionut-t/leetshell/core"
	"github.com/ionut-t/leetshell/logging"
)

// SystemClipboard implements core.Clipboard on the OS clipboard.
type SystemClipboard struct{}

func (c *SystemClipboard) Write(text string) error {
	return clipboard.WriteAll(text)
}

func (c *SystemClipboard) Read() (string, error) {
	return clipboard.ReadAll()
}

// Available reports whether a clipboard utility was found.
func (c *SystemClipboard) Available() bool {
	return !clipboard.Unsupported
}

// NewClipboard returns the system clipboard, or nil when no clipboard
// utility is installed so editors report copy and paste as unavailable.
func NewClipboard() core.Clipboard {
	c := &SystemClipboard{}
	if !c.Available() {
		logging.Warn("no clipboard utility found, copy and paste are disabled")
		return nil
	}
	return c
}
