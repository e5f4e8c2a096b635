// Package command defines the editor's command set and the engine
// that applies commands to the document and cursor, reporting the
// resulting damage as effects.
package command

import (
	"fmt"
	"strings"
)

// Op identifies an editor operation.
type Op uint8

const (
	OpNone Op = iota
	OpInputChar
	OpInputEnter
	OpDeleteLeft
	OpDeleteRight
	OpDeleteWordLeft
	OpDeleteWordRight
	OpCursorUp
	OpCursorDown
	OpCursorLeft
	OpCursorRight
	OpCursorWordLeft
	OpCursorWordRight
	OpCursorHome
	OpCursorEnd
	OpCursorPageUp
	OpCursorPageDown
	OpSelectAll
	OpSelectLine
	OpCopy
	OpCut
	OpPaste
	OpCopyAndClearSelection
	OpSaveFile
	OpExit
)

var opNames = map[Op]string{
	OpNone:                  "none",
	OpInputChar:             "inputchar",
	OpInputEnter:            "inputenter",
	OpDeleteLeft:            "deleteleft",
	OpDeleteRight:           "deleteright",
	OpDeleteWordLeft:        "deletewordleft",
	OpDeleteWordRight:       "deletewordright",
	OpCursorUp:              "cursorup",
	OpCursorDown:            "cursordown",
	OpCursorLeft:            "cursorleft",
	OpCursorRight:           "cursorright",
	OpCursorWordLeft:        "cursorwordleft",
	OpCursorWordRight:       "cursorwordright",
	OpCursorHome:            "cursorhome",
	OpCursorEnd:             "cursorend",
	OpCursorPageUp:          "cursorpageup",
	OpCursorPageDown:        "cursorpagedown",
	OpSelectAll:             "selectall",
	OpSelectLine:            "selectline",
	OpCopy:                  "copy",
	OpCut:                   "cut",
	OpPaste:                 "paste",
	OpCopyAndClearSelection: "textcopyandclearselection",
	OpSaveFile:              "savefile",
	OpExit:                  "exit",
}

func (op Op) String() string {
	if s, ok := opNames[op]; ok {
		return s
	}
	return fmt.Sprintf("op(%d)", uint8(op))
}

// ParseOp resolves a command name from a keymap file. Names are
// case-insensitive.
func ParseOp(s string) (Op, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for op, n := range opNames {
		if n == name && op != OpNone && op != OpInputChar {
			return op, nil
		}
	}
	return OpNone, fmt.Errorf("unknown command %q", s)
}

// Command is an operation plus its payload. Only OpInputChar carries
// a rune.
type Command struct {
	Op   Op
	Rune rune
}

// InputChar returns the command that types r at the cursor.
func InputChar(r rune) Command {
	return Command{Op: OpInputChar, Rune: r}
}

func (c Command) String() string {
	if c.Op == OpInputChar {
		return fmt.Sprintf("inputchar(%q)", c.Rune)
	}
	return c.Op.String()
}
