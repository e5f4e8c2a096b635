package keymap

import (
	"testing"

	"github.com/quilltext/quill/internal/engine/command"
	"github.com/quilltext/quill/internal/input/key"
)

func TestDefaultBindings(t *testing.T) {
	m := Default()

	tests := []struct {
		ev   key.Event
		want command.Op
	}{
		{key.NewEvent(key.KeyEscape, key.ModNone), command.OpExit},
		{key.NewEvent(key.KeyEnter, key.ModNone), command.OpInputEnter},
		{key.NewEvent(key.KeyBackspace, key.ModCtrl), command.OpDeleteWordLeft},
		{key.NewEvent(key.KeyRight, key.ModCtrl|key.ModShift), command.OpCursorWordRight},
		{key.NewRuneEvent('a', key.ModCtrl), command.OpSelectAll},
		{key.NewRuneEvent('v', key.ModCtrl), command.OpPaste},
		{key.NewRuneEvent('w', key.ModCtrl), command.OpDeleteWordLeft},
		{key.NewRuneEvent('d', key.ModAlt), command.OpDeleteWordRight},
		{key.NewEvent(key.KeyPageDown, key.ModNone), command.OpCursorPageDown},
	}
	for _, tt := range tests {
		cmd, ok := m.Lookup(tt.ev)
		if !ok || cmd.Op != tt.want {
			t.Errorf("Lookup(%v) = (%v, %v), want %v", tt.ev, cmd, ok, tt.want)
		}
	}

	if _, ok := m.Lookup(key.NewRuneEvent('z', key.ModCtrl)); ok {
		t.Error("ctrl+z should be unbound by default")
	}
}

func TestMergeOverridesAndReportsErrors(t *testing.T) {
	m := Default()
	before := m.Len()

	errs := m.Merge([]Binding{
		{Keys: "ctrl+q", Command: "exit"},
		{Keys: "escape", Command: "selectall"},
		{Keys: "not a key", Command: "exit"},
		{Keys: "ctrl+b", Command: "frobnicate"},
	})

	if len(errs) != 2 {
		t.Fatalf("got %d errors, want 2: %v", len(errs), errs)
	}

	if cmd, ok := m.Lookup(key.NewRuneEvent('q', key.ModCtrl)); !ok || cmd.Op != command.OpExit {
		t.Errorf("ctrl+q = (%v, %v), want exit", cmd, ok)
	}
	if cmd, _ := m.Lookup(key.NewEvent(key.KeyEscape, key.ModNone)); cmd.Op != command.OpSelectAll {
		t.Errorf("escape = %v, want selectall (overridden)", cmd)
	}
	if m.Len() != before+1 {
		t.Errorf("Len() = %d, want %d (one new binding, one override)", m.Len(), before+1)
	}
}
