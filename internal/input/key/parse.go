package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a key specification from a keymap file into an Event.
//
// Supported formats:
//   - Single character: "a", "@", "1"
//   - Special keys: "enter", "escape", "pageup"
//   - With modifiers: "ctrl+s", "ctrl+shift+right", "alt+d"
//
// Names are case-insensitive.
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	parts := strings.Split(strings.ToLower(spec), "+")
	// "+" alone, or a trailing "+" as in "ctrl++", means the plus key.
	if parts[len(parts)-1] == "" {
		parts[len(parts)-1] = "+"
	}

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		switch strings.TrimSpace(p) {
		case "":
		case "ctrl", "control", "c":
			mods = mods.With(ModCtrl)
		case "alt", "a", "opt", "option":
			mods = mods.With(ModAlt)
		case "shift", "s":
			mods = mods.With(ModShift)
		case "meta", "cmd", "super", "m":
			mods = mods.With(ModMeta)
		default:
			return Event{}, fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalidSpec, p, spec)
		}
	}

	name := strings.TrimSpace(parts[len(parts)-1])
	if k, ok := keyNames[name]; ok {
		return NewEvent(k, mods), nil
	}
	if name == "space" {
		return NewRuneEvent(' ', mods), nil
	}
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		return NewRuneEvent(r, mods), nil
	}
	return Event{}, fmt.Errorf("%w: unknown key %q in %q", ErrInvalidSpec, name, spec)
}
