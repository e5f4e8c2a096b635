package command

import "github.com/atotto/clipboard"

// Clipboard abstracts the system clipboard so the engine can be
// exercised without a display server.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// SystemClipboard is the OS clipboard.
type SystemClipboard struct{}

func (SystemClipboard) ReadAll() (string, error) { return clipboard.ReadAll() }

func (SystemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }
