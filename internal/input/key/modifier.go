package key

import "strings"

// Modifier is a bitmask of modifier keys held during a key press.
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModCtrl  Modifier = 1 << iota
	ModAlt
	ModShift
	ModMeta
)

// With returns the modifier set with m added.
func (mod Modifier) With(m Modifier) Modifier { return mod | m }

// Has reports whether m is held.
func (mod Modifier) Has(m Modifier) bool { return mod&m != 0 }

// String renders the set in keymap-file order, e.g. "ctrl+shift".
func (mod Modifier) String() string {
	if mod == ModNone {
		return "none"
	}
	var parts []string
	if mod.Has(ModCtrl) {
		parts = append(parts, "ctrl")
	}
	if mod.Has(ModAlt) {
		parts = append(parts, "alt")
	}
	if mod.Has(ModShift) {
		parts = append(parts, "shift")
	}
	if mod.Has(ModMeta) {
		parts = append(parts, "meta")
	}
	return strings.Join(parts, "+")
}
