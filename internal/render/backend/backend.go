// Package backend abstracts the terminal: drawing primitives on one
// side, a channel of input events on the other. The tcell
// implementation drives a real terminal; Memory backs tests.
package backend

import "github.com/quilltext/quill/internal/input/key"

// Style selects how printed text is rendered.
type Style uint8

const (
	StyleDefault Style = iota
	// StyleReverse swaps foreground and background, used for the
	// selection highlight.
	StyleReverse
)

// EventKind identifies the type of a terminal event.
type EventKind uint8

const (
	EventNone EventKind = iota
	EventKey
	EventMouse
	EventResize
)

// MouseAction identifies what the mouse did.
type MouseAction uint8

const (
	MousePress MouseAction = iota
	MouseDrag
	MouseRelease
	MouseWheelUp
	MouseWheelDown
)

// Event is one terminal event. Kind says which fields are meaningful.
type Event struct {
	Kind EventKind

	// Key event
	Key key.Event

	// Mouse event
	Mouse MouseAction
	X, Y  int

	// Resize event
	Width, Height int
}

// Backend is the terminal surface the renderer draws on.
type Backend interface {
	Init() error
	Fini()

	Size() (width, height int)

	// Print draws text at (x, y) and returns the horizontal advance
	// in cells.
	Print(x, y int, text string, style Style) int
	ClearLine(y int)

	ShowCursor(x, y int)
	HideCursor()

	// Show flushes pending drawing to the terminal.
	Show()

	// Events delivers terminal input. The channel closes when the
	// backend shuts down.
	Events() <-chan Event
}
