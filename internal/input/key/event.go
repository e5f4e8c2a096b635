package key

import "fmt"

// Event is a single key press. It is comparable, so keymaps can use it
// directly as a map key.
type Event struct {
	Key       Key
	Rune      rune
	Modifiers Modifier
}

// NewEvent returns an event for a special key.
func NewEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// NewRuneEvent returns an event for a character key.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

func (e Event) String() string {
	name := e.Key.String()
	if e.Key == KeyRune {
		name = string(e.Rune)
	}
	if e.Modifiers == ModNone {
		return name
	}
	return fmt.Sprintf("%s+%s", e.Modifiers, name)
}
