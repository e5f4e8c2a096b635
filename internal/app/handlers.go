package app

import (
	"github.com/quilltext/quill/internal/engine/command"
	"github.com/quilltext/quill/internal/engine/cursor"
	"github.com/quilltext/quill/internal/input/key"
	"github.com/quilltext/quill/internal/render"
	"github.com/quilltext/quill/internal/render/backend"
)

func (e *Editor) handleEvent(ev backend.Event) {
	switch ev.Kind {
	case backend.EventKey:
		e.handleKey(ev.Key)
	case backend.EventMouse:
		e.handleMouse(ev)
	case backend.EventResize:
		e.handleResize(ev.Width, ev.Height)
	}
}

func (e *Editor) handleKey(kev key.Event) {
	lineBefore := e.doc.CharToLine(e.cur.Pos())
	posBefore := e.cur.Pos()
	selStart, selEnd, hadSel := e.cur.Selection()

	var eff command.Effect
	var err error
	switch {
	// Printable characters insert themselves regardless of bindings;
	// only none/shift count, so ctrl and alt chords stay commands.
	case kev.Key == key.KeyRune && (kev.Modifiers == key.ModNone || kev.Modifiers == key.ModShift):
		eff, err = e.eng.Execute(command.InputChar(kev.Rune))
	default:
		cmd, ok := e.keys.Lookup(kev)
		if !ok {
			return
		}
		// Saving touches the file, not the document; it produces no
		// damage and skips the engine entirely.
		if cmd.Op == command.OpSaveFile {
			if err := e.saveFile(); err != nil {
				e.log.Warnf("save failed: %v", err)
			}
			return
		}
		eff, err = e.eng.Execute(cmd)
	}
	if err != nil {
		// Clipboard trouble should not take the editor down.
		e.log.Warnf("command failed: %v", err)
		return
	}

	if eff.Kind == command.EffectTextChanged {
		delta := e.lay.Update(e.doc, eff.StartLine, eff.OldLines, eff.NewLines)
		e.ren.ApplyTextChange(eff.StartLine, eff.NewLines, delta, e.doc.LineCount())
	}
	if eff.FullRedraw {
		e.ren.RequestFull()
	}
	if eff.Kind == command.EffectNone {
		return
	}

	e.dirty = true
	e.ren.MarkLine(lineBefore)
	e.ren.MarkLine(e.doc.CharToLine(e.cur.Pos()))

	// Selection bookkeeping runs at the pre-command position, so a
	// shift-started selection anchors where the cursor was.
	posNow := e.cur.Pos()
	e.cur.SetPos(posBefore)
	switch eff.Kind {
	case command.EffectSelectionFixed:
		// The command set or cleared the selection itself; whatever
		// the old one highlighted must repaint.
		if hadSel {
			e.ren.MarkLines(e.doc.CharToLine(selStart), e.doc.CharToLine(selEnd)+1)
		}
	case command.EffectTextChanged:
		e.handleSelection(false)
	default:
		e.handleSelection(kev.Modifiers.Has(key.ModShift))
	}
	e.cur.SetPos(posNow)
}

// handleSelection either starts a selection at the cursor or clears
// the current one, marking its lines for repaint.
func (e *Editor) handleSelection(inSelection bool) {
	if inSelection {
		if !e.cur.HasSelection() {
			e.cur.SetAnchor(e.cur.Pos())
		}
		return
	}
	if start, end, ok := e.cur.Selection(); ok {
		e.ren.MarkLines(e.doc.CharToLine(start), e.doc.CharToLine(end)+1)
	}
	e.cur.ClearAnchor()
}

func (e *Editor) handleMouse(ev backend.Event) {
	switch ev.Mouse {
	case backend.MousePress:
		e.handleSelection(false)
		if pos, ok := e.hitTest(ev.X, ev.Y); ok {
			e.cur.SetPos(pos)
			e.cur.ResetTargetX()
		}
		e.dirty = true

	case backend.MouseDrag:
		e.handleSelection(true)
		if pos, ok := e.hitTest(ev.X, ev.Y); ok {
			oldLine := e.doc.CharToLine(e.cur.Pos())
			newLine := e.doc.CharToLine(pos)
			e.ren.MarkLines(min(oldLine, newLine), max(oldLine, newLine)+1)
			e.cur.SetPos(pos)
			e.cur.ResetTargetX()
		}
		e.dirty = true

	case backend.MouseRelease:
		// A click without movement leaves anchor == cursor; that is
		// not a selection.
		if anchor, ok := e.cur.Anchor(); ok && anchor == e.cur.Pos() {
			e.cur.ClearAnchor()
		}
		e.dirty = true

	case backend.MouseWheelUp:
		e.cur.MoveUp(e.doc, e.lay)
		e.dirty = true

	case backend.MouseWheelDown:
		e.cur.MoveDown(e.doc, e.lay)
		e.dirty = true
	}
}

// hitTest maps a screen position to a document offset. Clicks on the
// status bar or below miss.
func (e *Editor) hitTest(x, y int) (int, bool) {
	_, h := e.be.Size()
	if y >= render.ContentHeight(h) {
		return 0, false
	}
	return cursor.ScreenToChar(e.doc, e.lay, e.vp.Scroll(), x, y, render.GutterWidth), true
}

func (e *Editor) handleResize(w, h int) {
	if width := render.ContentWidth(w); width != e.lay.Width() {
		e.lay.SetWidth(width)
		e.lay.Rebuild(e.doc)
	}
	e.vp.SetHeight(render.ContentHeight(h))
	e.ren.RequestFull()
	e.dirty = true
}
