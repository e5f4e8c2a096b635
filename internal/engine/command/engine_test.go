package command

import (
	"errors"
	"testing"

	"github.com/quilltext/quill/internal/engine/cursor"
	"github.com/quilltext/quill/internal/render/layout"
	"github.com/quilltext/quill/internal/textbuf"
)

type fakeClipboard struct {
	text     string
	readErr  error
	writeErr error
	writes   int
}

func (f *fakeClipboard) ReadAll() (string, error) {
	if f.readErr != nil {
		return "", f.readErr
	}
	return f.text, nil
}

func (f *fakeClipboard) WriteAll(text string) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.text = text
	f.writes++
	return nil
}

func newEngine(t *testing.T, text string) (*Engine, *textbuf.Buffer, *cursor.Cursor, *fakeClipboard) {
	t.Helper()
	doc := textbuf.FromString(text)
	cur := cursor.New()
	lay := layout.NewCache(40)
	lay.Rebuild(doc)
	clip := &fakeClipboard{}
	return New(doc, cur, lay, clip), doc, cur, clip
}

func mustExecute(t *testing.T, e *Engine, cmd Command) Effect {
	t.Helper()
	eff, err := e.Execute(cmd)
	if err != nil {
		t.Fatalf("Execute(%v): %v", cmd, err)
	}
	return eff
}

func TestInputChar(t *testing.T) {
	e, doc, cur, _ := newEngine(t, "hello")
	cur.SetPos(2)

	eff := mustExecute(t, e, InputChar('x'))
	if eff.Kind != EffectTextChanged || eff.StartLine != 0 || eff.OldLines != 1 || eff.NewLines != 1 {
		t.Errorf("effect = %+v, want TextChanged(0, 1, 1)", eff)
	}
	if got := doc.String(); got != "hexllo" {
		t.Errorf("doc = %q, want %q", got, "hexllo")
	}
	if cur.Pos() != 3 {
		t.Errorf("cursor = %d, want 3", cur.Pos())
	}
}

func TestInputCharReplacesSelection(t *testing.T) {
	e, doc, cur, _ := newEngine(t, "one\ntwo\nthree")
	cur.SetAnchor(2)
	cur.SetPos(9)

	eff := mustExecute(t, e, InputChar('X'))
	if eff.Kind != EffectTextChanged || eff.StartLine != 0 || eff.OldLines != 3 || eff.NewLines != 1 {
		t.Errorf("effect = %+v, want TextChanged(0, 3, 1)", eff)
	}
	if got := doc.String(); got != "onXhree" {
		t.Errorf("doc = %q, want %q", got, "onXhree")
	}
	if cur.HasSelection() {
		t.Error("selection should be cleared by typing")
	}
}

func TestInputEnterSplitsLine(t *testing.T) {
	e, doc, cur, _ := newEngine(t, "abcd")
	cur.SetPos(2)

	eff := mustExecute(t, e, Command{Op: OpInputEnter})
	if eff.Kind != EffectTextChanged || eff.StartLine != 0 || eff.OldLines != 1 || eff.NewLines != 2 {
		t.Errorf("effect = %+v, want TextChanged(0, 1, 2)", eff)
	}
	if got := doc.String(); got != "ab\ncd" {
		t.Errorf("doc = %q, want %q", got, "ab\ncd")
	}
	if cur.Pos() != 3 {
		t.Errorf("cursor = %d, want 3", cur.Pos())
	}
}

func TestDeleteLeftJoinsLines(t *testing.T) {
	e, doc, cur, _ := newEngine(t, "ab\ncd")
	cur.SetPos(3)

	eff := mustExecute(t, e, Command{Op: OpDeleteLeft})
	if eff.Kind != EffectTextChanged || eff.StartLine != 0 || eff.OldLines != 2 || eff.NewLines != 1 {
		t.Errorf("effect = %+v, want TextChanged(0, 2, 1)", eff)
	}
	if got := doc.String(); got != "abcd" {
		t.Errorf("doc = %q, want %q", got, "abcd")
	}
	if cur.Pos() != 2 {
		t.Errorf("cursor = %d, want 2", cur.Pos())
	}
}

func TestDeleteAtDocumentEdges(t *testing.T) {
	e, _, cur, _ := newEngine(t, "ab")

	if eff := mustExecute(t, e, Command{Op: OpDeleteLeft}); eff.Kind != EffectCursorDirty {
		t.Errorf("DeleteLeft at 0: effect = %+v, want CursorDirty", eff)
	}
	cur.SetPos(2)
	if eff := mustExecute(t, e, Command{Op: OpDeleteRight}); eff.Kind != EffectCursorDirty {
		t.Errorf("DeleteRight at end: effect = %+v, want CursorDirty", eff)
	}
}

func TestDeleteWordLeft(t *testing.T) {
	e, doc, cur, _ := newEngine(t, "foo bar")
	cur.SetPos(7)

	eff := mustExecute(t, e, Command{Op: OpDeleteWordLeft})
	if eff.Kind != EffectTextChanged || eff.StartLine != 0 || eff.OldLines != 1 {
		t.Errorf("effect = %+v, want TextChanged(0, 1, 1)", eff)
	}
	if got := doc.String(); got != "foo " {
		t.Errorf("doc = %q, want %q", got, "foo ")
	}
	if cur.Pos() != 4 {
		t.Errorf("cursor = %d, want 4", cur.Pos())
	}
}

func TestDeleteWordRightStopsAtNewline(t *testing.T) {
	e, doc, cur, _ := newEngine(t, "foo\nbar")
	cur.SetPos(3)

	eff := mustExecute(t, e, Command{Op: OpDeleteWordRight})
	if eff.Kind != EffectTextChanged || eff.StartLine != 0 || eff.OldLines != 2 || eff.NewLines != 1 {
		t.Errorf("effect = %+v, want TextChanged(0, 2, 1)", eff)
	}
	if got := doc.String(); got != "foobar" {
		t.Errorf("doc = %q, want %q", got, "foobar")
	}
}

func TestCursorHorizontalMotion(t *testing.T) {
	e, _, cur, _ := newEngine(t, "ab\ncd")

	mustExecute(t, e, Command{Op: OpCursorRight})
	if cur.Pos() != 1 {
		t.Fatalf("cursor = %d, want 1", cur.Pos())
	}
	mustExecute(t, e, Command{Op: OpCursorLeft})
	mustExecute(t, e, Command{Op: OpCursorLeft})
	if cur.Pos() != 0 {
		t.Errorf("cursor = %d, want 0 (clamped)", cur.Pos())
	}

	cur.SetPos(4)
	mustExecute(t, e, Command{Op: OpCursorHome})
	if cur.Pos() != 3 {
		t.Errorf("Home: cursor = %d, want 3", cur.Pos())
	}
	mustExecute(t, e, Command{Op: OpCursorEnd})
	if cur.Pos() != 5 {
		t.Errorf("End: cursor = %d, want 5", cur.Pos())
	}
}

func TestCursorEndExcludesLineBreak(t *testing.T) {
	e, _, cur, _ := newEngine(t, "ab\ncd")
	cur.SetPos(1)

	mustExecute(t, e, Command{Op: OpCursorEnd})
	if cur.Pos() != 2 {
		t.Errorf("End: cursor = %d, want 2 (before the newline)", cur.Pos())
	}
}

func TestPageMotion(t *testing.T) {
	e, doc, cur, _ := newEngine(t, "one\ntwo\nthree")
	cur.SetPos(5)

	mustExecute(t, e, Command{Op: OpCursorPageDown})
	if cur.Pos() != doc.CharCount() {
		t.Errorf("PageDown: cursor = %d, want %d", cur.Pos(), doc.CharCount())
	}
	mustExecute(t, e, Command{Op: OpCursorPageUp})
	if cur.Pos() != 0 {
		t.Errorf("PageUp: cursor = %d, want 0", cur.Pos())
	}
}

func TestSelectAll(t *testing.T) {
	e, doc, cur, _ := newEngine(t, "one\ntwo")

	eff := mustExecute(t, e, Command{Op: OpSelectAll})
	if eff.Kind != EffectSelectionFixed || !eff.FullRedraw {
		t.Errorf("effect = %+v, want SelectionFixed with full redraw", eff)
	}
	start, end, ok := cur.Selection()
	if !ok || start != 0 || end != doc.CharCount() {
		t.Errorf("selection = (%d, %d, %v), want whole document", start, end, ok)
	}
}

func TestSelectLine(t *testing.T) {
	e, _, cur, _ := newEngine(t, "one\ntwo\nthree")
	cur.SetPos(5)

	eff := mustExecute(t, e, Command{Op: OpSelectLine})
	if eff.Kind != EffectSelectionFixed {
		t.Errorf("effect = %+v, want SelectionFixed", eff)
	}
	start, end, ok := cur.Selection()
	if !ok || start != 4 || end != 8 {
		t.Errorf("selection = (%d, %d, %v), want (4, 8, true)", start, end, ok)
	}
}

func TestCopyAndCut(t *testing.T) {
	e, doc, cur, clip := newEngine(t, "one\ntwo")

	mustExecute(t, e, Command{Op: OpCopy})
	if clip.writes != 0 {
		t.Fatal("copy without selection should not touch the clipboard")
	}

	cur.SetAnchor(0)
	cur.SetPos(3)
	mustExecute(t, e, Command{Op: OpCopy})
	if clip.text != "one" {
		t.Errorf("clipboard = %q, want %q", clip.text, "one")
	}

	eff := mustExecute(t, e, Command{Op: OpCut})
	if eff.Kind != EffectTextChanged || eff.StartLine != 0 || eff.OldLines != 1 {
		t.Errorf("cut effect = %+v, want TextChanged(0, 1, 1)", eff)
	}
	if got := doc.String(); got != "\ntwo" {
		t.Errorf("doc = %q, want %q", got, "\ntwo")
	}
}

func TestCopyAndClearSelection(t *testing.T) {
	e, _, cur, clip := newEngine(t, "one\ntwo")
	cur.SetAnchor(0)
	cur.SetPos(3)

	eff := mustExecute(t, e, Command{Op: OpCopyAndClearSelection})
	if eff.Kind != EffectSelectionFixed {
		t.Errorf("effect = %+v, want SelectionFixed", eff)
	}
	if clip.text != "one" {
		t.Errorf("clipboard = %q, want %q", clip.text, "one")
	}
	if cur.HasSelection() {
		t.Error("the command must clear the selection itself")
	}
	if cur.Pos() != 3 {
		t.Errorf("cursor = %d, want 3", cur.Pos())
	}
}

func TestPasteReplacesSelection(t *testing.T) {
	e, doc, cur, clip := newEngine(t, "aa\nbb")
	clip.text = "x\ny"
	cur.SetAnchor(1)
	cur.SetPos(4)

	eff := mustExecute(t, e, Command{Op: OpPaste})
	if eff.Kind != EffectTextChanged || eff.StartLine != 0 || eff.OldLines != 2 || eff.NewLines != 2 {
		t.Errorf("effect = %+v, want TextChanged(0, 2, 2)", eff)
	}
	if got := doc.String(); got != "ax\nyb" {
		t.Errorf("doc = %q, want %q", got, "ax\nyb")
	}
	if cur.Pos() != 4 {
		t.Errorf("cursor = %d, want 4", cur.Pos())
	}
}

func TestPasteReadErrorLeavesStateIntact(t *testing.T) {
	e, doc, cur, clip := newEngine(t, "aa\nbb")
	clip.readErr = errors.New("clipboard unavailable")
	cur.SetAnchor(1)
	cur.SetPos(4)

	if _, err := e.Execute(Command{Op: OpPaste}); err == nil {
		t.Fatal("expected clipboard error")
	}
	if got := doc.String(); got != "aa\nbb" {
		t.Errorf("doc = %q, document must be untouched", got)
	}
	if !cur.HasSelection() {
		t.Error("selection must survive a failed paste")
	}
}

func TestExit(t *testing.T) {
	e, _, _, _ := newEngine(t, "")
	if e.ShouldQuit() {
		t.Fatal("fresh engine should not quit")
	}
	mustExecute(t, e, Command{Op: OpExit})
	if !e.ShouldQuit() {
		t.Error("exit command should set the quit flag")
	}
}

func TestParseOp(t *testing.T) {
	tests := []struct {
		in   string
		want Op
	}{
		{"inputenter", OpInputEnter},
		{"DeleteWordLeft", OpDeleteWordLeft},
		{"deletewordright", OpDeleteWordRight},
		{"cursorwordright", OpCursorWordRight},
		{"selectall", OpSelectAll},
		{"copy", OpCopy},
		{"exit", OpExit},
	}
	for _, tt := range tests {
		got, err := ParseOp(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseOp(%q) = (%v, %v), want %v", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseOp("frobnicate"); err == nil {
		t.Error("unknown command name should fail to parse")
	}
}
