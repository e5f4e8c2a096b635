// Package keymap binds key events to editor commands. The built-in
// bindings can be overridden by user-supplied TOML configuration.
package keymap

import (
	"github.com/quilltext/quill/internal/engine/command"
	"github.com/quilltext/quill/internal/input/key"
)

// Keymap resolves key events to commands.
type Keymap struct {
	bindings map[key.Event]command.Command
}

// New returns an empty keymap.
func New() *Keymap {
	return &Keymap{bindings: make(map[key.Event]command.Command)}
}

// Lookup returns the command bound to ev.
func (m *Keymap) Lookup(ev key.Event) (command.Command, bool) {
	cmd, ok := m.bindings[ev]
	return cmd, ok
}

// Bind maps ev to cmd, replacing any existing binding.
func (m *Keymap) Bind(ev key.Event, cmd command.Command) {
	m.bindings[ev] = cmd
}

// Len returns the number of bindings.
func (m *Keymap) Len() int { return len(m.bindings) }

// Default returns the built-in bindings.
func Default() *Keymap {
	m := New()

	bind := func(k key.Key, mods key.Modifier, op command.Op) {
		m.Bind(key.NewEvent(k, mods), command.Command{Op: op})
	}
	bindRune := func(r rune, mods key.Modifier, op command.Op) {
		m.Bind(key.NewRuneEvent(r, mods), command.Command{Op: op})
	}

	bind(key.KeyEnter, key.ModNone, command.OpInputEnter)
	bind(key.KeyEnter, key.ModShift, command.OpInputEnter)
	bind(key.KeyBackspace, key.ModNone, command.OpDeleteLeft)
	bind(key.KeyBackspace, key.ModShift, command.OpDeleteLeft)
	bind(key.KeyDelete, key.ModNone, command.OpDeleteRight)
	bind(key.KeyDelete, key.ModShift, command.OpDeleteRight)
	bind(key.KeyBackspace, key.ModCtrl, command.OpDeleteWordLeft)
	bind(key.KeyBackspace, key.ModCtrl|key.ModShift, command.OpDeleteWordLeft)
	bind(key.KeyDelete, key.ModCtrl, command.OpDeleteWordRight)
	bind(key.KeyDelete, key.ModCtrl|key.ModShift, command.OpDeleteWordRight)
	bindRune('w', key.ModCtrl, command.OpDeleteWordLeft)
	bindRune('d', key.ModAlt, command.OpDeleteWordRight)

	bind(key.KeyUp, key.ModNone, command.OpCursorUp)
	bind(key.KeyUp, key.ModShift, command.OpCursorUp)
	bind(key.KeyDown, key.ModNone, command.OpCursorDown)
	bind(key.KeyDown, key.ModShift, command.OpCursorDown)
	bind(key.KeyLeft, key.ModNone, command.OpCursorLeft)
	bind(key.KeyLeft, key.ModShift, command.OpCursorLeft)
	bind(key.KeyRight, key.ModNone, command.OpCursorRight)
	bind(key.KeyRight, key.ModShift, command.OpCursorRight)
	bind(key.KeyLeft, key.ModCtrl, command.OpCursorWordLeft)
	bind(key.KeyLeft, key.ModCtrl|key.ModShift, command.OpCursorWordLeft)
	bind(key.KeyRight, key.ModCtrl, command.OpCursorWordRight)
	bind(key.KeyRight, key.ModCtrl|key.ModShift, command.OpCursorWordRight)

	bind(key.KeyHome, key.ModNone, command.OpCursorHome)
	bind(key.KeyEnd, key.ModNone, command.OpCursorEnd)
	bind(key.KeyPageUp, key.ModNone, command.OpCursorPageUp)
	bind(key.KeyPageDown, key.ModNone, command.OpCursorPageDown)

	bindRune('a', key.ModCtrl, command.OpSelectAll)
	bindRune('l', key.ModCtrl, command.OpSelectLine)
	bindRune('c', key.ModCtrl, command.OpCopy)
	bindRune('x', key.ModCtrl, command.OpCut)
	bindRune('v', key.ModCtrl, command.OpPaste)
	bindRune('s', key.ModCtrl, command.OpSaveFile)

	bind(key.KeyEscape, key.ModNone, command.OpExit)

	return m
}
