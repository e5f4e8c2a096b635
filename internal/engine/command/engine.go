package command

import (
	"strings"

	"github.com/quilltext/quill/internal/engine/cursor"
	"github.com/quilltext/quill/internal/render/layout"
	"github.com/quilltext/quill/internal/textbuf"
)

// Engine applies commands to the document. It mutates the buffer and
// cursor and reports what changed; repainting and scrolling are the
// caller's job.
type Engine struct {
	doc  *textbuf.Buffer
	cur  *cursor.Cursor
	lay  *layout.Cache
	clip Clipboard
	quit bool
}

// New returns an engine over the given document state.
func New(doc *textbuf.Buffer, cur *cursor.Cursor, lay *layout.Cache, clip Clipboard) *Engine {
	return &Engine{doc: doc, cur: cur, lay: lay, clip: clip}
}

// ShouldQuit reports whether an exit command has run.
func (e *Engine) ShouldQuit() bool { return e.quit }

// Execute runs one command. Clipboard errors are returned with the
// document and cursor untouched.
func (e *Engine) Execute(cmd Command) (Effect, error) {
	switch cmd.Op {
	case OpInputChar:
		return e.insertText(string(cmd.Rune), 1), nil

	case OpInputEnter:
		return e.insertText("\n", 2), nil

	case OpDeleteLeft:
		e.cur.ResetTargetX()
		if start, oldLines, ok := e.deleteSelection(); ok {
			return textChanged(start, oldLines, 1), nil
		}
		pos := e.cur.Pos()
		if pos == 0 {
			return cursorDirty(), nil
		}
		return e.removeSpan(pos-1, pos, pos-1), nil

	case OpDeleteRight:
		e.cur.ResetTargetX()
		if start, oldLines, ok := e.deleteSelection(); ok {
			return textChanged(start, oldLines, 1), nil
		}
		pos := e.cur.Pos()
		if pos >= e.doc.CharCount() {
			return cursorDirty(), nil
		}
		return e.removeSpan(pos, pos+1, pos), nil

	case OpDeleteWordLeft:
		e.cur.ResetTargetX()
		if start, oldLines, ok := e.deleteSelection(); ok {
			return textChanged(start, oldLines, 1), nil
		}
		pos := e.cur.Pos()
		if pos == 0 {
			return cursorDirty(), nil
		}
		return e.removeSpan(cursor.RunLeft(e.doc, pos), pos, -1), nil

	case OpDeleteWordRight:
		e.cur.ResetTargetX()
		if start, oldLines, ok := e.deleteSelection(); ok {
			return textChanged(start, oldLines, 1), nil
		}
		pos := e.cur.Pos()
		if pos >= e.doc.CharCount() {
			return cursorDirty(), nil
		}
		return e.removeSpan(pos, cursor.RunRight(e.doc, pos), pos), nil

	case OpCursorUp:
		e.cur.MoveUp(e.doc, e.lay)
		return cursorDirty(), nil

	case OpCursorDown:
		e.cur.MoveDown(e.doc, e.lay)
		return cursorDirty(), nil

	case OpCursorLeft:
		e.cur.ResetTargetX()
		if p := e.cur.Pos(); p > 0 {
			e.cur.SetPos(p - 1)
		}
		return cursorDirty(), nil

	case OpCursorRight:
		e.cur.ResetTargetX()
		if p := e.cur.Pos(); p < e.doc.CharCount() {
			e.cur.SetPos(p + 1)
		}
		return cursorDirty(), nil

	case OpCursorWordLeft:
		e.cur.ResetTargetX()
		e.cur.SetPos(cursor.WordLeft(e.doc, e.cur.Pos()))
		return cursorDirty(), nil

	case OpCursorWordRight:
		e.cur.ResetTargetX()
		e.cur.SetPos(cursor.WordRight(e.doc, e.cur.Pos()))
		return cursorDirty(), nil

	case OpCursorHome:
		e.cur.ResetTargetX()
		e.cur.SetPos(e.doc.LineToChar(e.doc.CharToLine(e.cur.Pos())))
		return cursorDirty(), nil

	case OpCursorEnd:
		e.cur.ResetTargetX()
		line := e.doc.CharToLine(e.cur.Pos())
		e.cur.SetPos(e.doc.LineToChar(line) + e.doc.LineLen(line))
		return cursorDirty(), nil

	case OpCursorPageUp:
		e.cur.SetPos(0)
		return cursorDirty(), nil

	case OpCursorPageDown:
		e.cur.SetPos(e.doc.CharCount())
		return cursorDirty(), nil

	case OpSelectAll:
		e.cur.ResetTargetX()
		e.cur.SetAnchor(0)
		e.cur.SetPos(e.doc.CharCount())
		return Effect{Kind: EffectSelectionFixed, FullRedraw: true}, nil

	case OpSelectLine:
		e.cur.ResetTargetX()
		line := e.doc.CharToLine(e.cur.Pos())
		end := e.doc.CharCount()
		if line+1 < e.doc.LineCount() {
			end = e.doc.LineToChar(line + 1)
		}
		e.cur.SetAnchor(e.doc.LineToChar(line))
		e.cur.SetPos(end)
		return Effect{Kind: EffectSelectionFixed}, nil

	case OpCopy:
		return none(), e.copySelection()

	case OpCopyAndClearSelection:
		if err := e.copySelection(); err != nil {
			return none(), err
		}
		e.cur.ClearAnchor()
		return Effect{Kind: EffectSelectionFixed}, nil

	case OpCut:
		if err := e.copySelection(); err != nil {
			return none(), err
		}
		if start, oldLines, ok := e.deleteSelection(); ok {
			return textChanged(start, oldLines, 1), nil
		}
		return none(), nil

	case OpPaste:
		return e.paste()

	case OpExit:
		e.quit = true
		return none(), nil
	}
	return none(), nil
}

// insertText replaces the selection (or inserts at the cursor) with
// text, reporting newLines as the replacement's line count.
func (e *Engine) insertText(text string, newLines int) Effect {
	e.cur.ResetTargetX()
	start, oldLines, hadSel := e.deleteSelection()
	if !hadSel {
		start = e.doc.CharToLine(e.cur.Pos())
		oldLines = 1
	}
	e.doc.Insert(e.cur.Pos(), text)
	e.cur.SetPos(e.cur.Pos() + len([]rune(text)))
	return textChanged(start, oldLines, newLines)
}

// removeSpan deletes [start, end) and reports the logical lines the
// span occupied before the edit. newPos moves the cursor, or is -1 to
// place it at the start of the removed span.
func (e *Engine) removeSpan(start, end, newPos int) Effect {
	if newPos < 0 {
		newPos = start
	}
	startLine := e.doc.CharToLine(start)
	endClamped := end
	if n := e.doc.CharCount(); endClamped > n {
		endClamped = n
	}
	oldLines := e.doc.CharToLine(endClamped) - startLine + 1
	e.doc.Remove(start, end)
	e.cur.SetPos(newPos)
	return textChanged(startLine, oldLines, 1)
}

// deleteSelection removes the selected text, collapses the cursor to
// the selection start, and reports the line span the selection
// occupied. ok is false when there was no selection.
func (e *Engine) deleteSelection() (startLine, oldLines int, ok bool) {
	start, end, ok := e.cur.Selection()
	if !ok {
		return 0, 0, false
	}
	startLine = e.doc.CharToLine(start)
	oldLines = e.doc.CharToLine(end) - startLine + 1
	e.doc.Remove(start, end)
	e.cur.SetPos(start)
	e.cur.ClearAnchor()
	return startLine, oldLines, true
}

func (e *Engine) copySelection() error {
	start, end, ok := e.cur.Selection()
	if !ok {
		return nil
	}
	return e.clip.WriteAll(e.doc.Slice(start, end))
}

// paste reads the clipboard before touching the document, so a read
// failure leaves the editor state intact.
func (e *Engine) paste() (Effect, error) {
	text, err := e.clip.ReadAll()
	if err != nil {
		return none(), err
	}
	startSel, oldLines, hadSel := e.deleteSelection()
	start := e.doc.CharToLine(e.cur.Pos())
	if hadSel {
		start = startSel
	} else {
		oldLines = 1
	}
	e.doc.Insert(e.cur.Pos(), text)
	e.cur.SetPos(e.cur.Pos() + len([]rune(text)))
	return textChanged(start, oldLines, strings.Count(text, "\n")+1), nil
}
