// Package render draws the editor to a backend, repainting only the
// lines marked dirty since the previous frame.
package render

import (
	"fmt"

	"github.com/quilltext/quill/internal/render/backend"
	"github.com/quilltext/quill/internal/render/dirty"
	"github.com/quilltext/quill/internal/render/layout"
	"github.com/quilltext/quill/internal/textbuf"
)

const (
	// GutterWidth is the width of the line-number column, including
	// the separator and padding.
	GutterWidth = 7
	// StatusBarHeight is the rows reserved at the bottom.
	StatusBarHeight = 1
)

// ContentWidth returns the text width available at the given terminal
// width. Zero or negative means the terminal is too narrow to wrap,
// and the layout treats it as unbounded.
func ContentWidth(terminalWidth int) int {
	return terminalWidth - GutterWidth - 1
}

// ContentHeight returns the text rows available at the given terminal
// height.
func ContentHeight(terminalHeight int) int {
	h := terminalHeight - StatusBarHeight
	if h < 0 {
		h = 0
	}
	return h
}

// Frame is the editor state a single draw works from.
type Frame struct {
	Doc    textbuf.Document
	Layout *layout.Cache
	Scroll layout.Scroll
	Cursor int

	SelStart, SelEnd int
	HasSel           bool
}

// Renderer accumulates line damage between frames and repaints exactly
// the damaged rows.
type Renderer struct {
	be    backend.Backend
	dirty dirty.LineSet
	full  bool
}

// New returns a renderer drawing to be. The first frame is a full
// redraw.
func New(be backend.Backend) *Renderer {
	return &Renderer{be: be, full: true}
}

// MarkLine marks one logical line for repaint.
func (r *Renderer) MarkLine(line int) { r.dirty.Mark(line) }

// MarkLines marks the half-open line range [start, end) for repaint.
func (r *Renderer) MarkLines(start, end int) { r.dirty.MarkRange(start, end) }

// RequestFull forces the next frame to repaint every visible line.
func (r *Renderer) RequestFull() { r.full = true }

// ApplyTextChange marks damage for an edit that replaced a span of
// lines starting at start with newLines lines. When the edit changed
// the document's visual height (delta != 0), every line from the edit
// to the end of the document shifted on screen and must repaint;
// otherwise only the edited span does.
func (r *Renderer) ApplyTextChange(start, newLines, delta, lineCount int) {
	if delta != 0 {
		r.dirty.MarkRange(start, lineCount)
		return
	}
	r.dirty.MarkRange(start, start+newLines)
}

// Draw paints one frame and flushes it.
func (r *Renderer) Draw(f Frame) {
	_, termH := r.be.Size()
	contentHeight := ContentHeight(termH)

	if r.full {
		r.dirty.Clear()
		y := 0
		first := f.Scroll.Line
		if first < f.Doc.LineCount() {
			r.dirty.Mark(first)
			if h := f.Layout.LineHeight(first) - f.Scroll.Row; h > 0 {
				y += h
			}
		}
		for i := first + 1; i < f.Doc.LineCount(); i++ {
			if y >= contentHeight {
				break
			}
			r.dirty.Mark(i)
			y += f.Layout.LineHeight(i)
		}
		r.full = false
	}

	for _, sp := range r.dirty.Spans() {
		for line := sp.Start; line <= sp.End; line++ {
			if line < f.Doc.LineCount() {
				r.drawLine(f, line, contentHeight)
			}
		}
	}
	r.dirty.Clear()

	r.cleanupBottom(f, contentHeight)
	r.drawStatusBar(f, contentHeight)
	r.placeCursor(f, contentHeight)
	r.be.Show()
}

func (r *Renderer) drawLine(f Frame, lineIdx, contentHeight int) {
	screenTop := f.Layout.AbsoluteRow(f.Scroll)
	lineTop := f.Layout.HeightBetween(0, lineIdx)
	line := f.Doc.Line(lineIdx)
	lineStart := f.Doc.LineToChar(lineIdx)

	firstChunk := true
	charOffset := 0
	rowIdx := 0
	for chunk := range f.Layout.Chunks(line) {
		chunkRunes := []rune(chunk.Text)
		absY := lineTop + rowIdx
		rowIdx++
		if absY < screenTop {
			charOffset += len(chunkRunes)
			continue
		}
		screenY := absY - screenTop
		if screenY >= contentHeight {
			break
		}

		r.be.ClearLine(screenY)
		gutter := "     │ "
		if firstChunk {
			gutter = fmt.Sprintf("%4d │ ", lineIdx+1)
			firstChunk = false
		}
		x := r.be.Print(0, screenY, gutter, backend.StyleDefault)

		chunkAbsStart := lineStart + charOffset
		visible := trimEnding(chunkRunes)

		if len(visible) == 0 {
			// An empty row inside the selection still shows one
			// highlighted cell, so selected blank lines are visible.
			if f.HasSel && chunkAbsStart >= f.SelStart && chunkAbsStart < f.SelEnd {
				r.be.Print(x, screenY, " ", backend.StyleReverse)
			}
		} else {
			r.drawChunk(f, x, screenY, chunkAbsStart, visible)
		}
		charOffset += len(chunkRunes)
	}
}

// drawChunk draws one wrapped row, splitting it where the selection
// starts and ends.
func (r *Renderer) drawChunk(f Frame, x, screenY, absStart int, runes []rune) {
	if f.HasSel {
		overlapStart := max(f.SelStart, absStart)
		overlapEnd := min(f.SelEnd, absStart+len(runes))
		if overlapStart < overlapEnd {
			lo := overlapStart - absStart
			hi := overlapEnd - absStart
			x += r.be.Print(x, screenY, string(runes[:lo]), backend.StyleDefault)
			x += r.be.Print(x, screenY, string(runes[lo:hi]), backend.StyleReverse)
			r.be.Print(x, screenY, string(runes[hi:]), backend.StyleDefault)
			return
		}
	}
	r.be.Print(x, screenY, string(runes), backend.StyleDefault)
}

// cleanupBottom clears the rows below the last visible line, which
// matters after deletions shrink the document.
func (r *Renderer) cleanupBottom(f Frame, contentHeight int) {
	drawn := 0
	first := f.Scroll.Line
	if first < f.Doc.LineCount() {
		if h := f.Layout.LineHeight(first) - f.Scroll.Row; h > 0 {
			drawn += h
		}
	}
	for i := first + 1; i < f.Doc.LineCount(); i++ {
		if drawn >= contentHeight {
			break
		}
		drawn += f.Layout.LineHeight(i)
	}
	for y := min(drawn, contentHeight); y < contentHeight; y++ {
		r.be.ClearLine(y)
	}
}

func (r *Renderer) drawStatusBar(f Frame, contentHeight int) {
	line := f.Doc.CharToLine(f.Cursor)
	col := f.Cursor - f.Doc.LineToChar(line)
	r.be.ClearLine(contentHeight)
	r.be.Print(0, contentHeight, fmt.Sprintf("Ln %d, Col %d", line+1, col+1), backend.StyleDefault)
}

func (r *Renderer) placeCursor(f Frame, contentHeight int) {
	line := f.Doc.CharToLine(f.Cursor)
	if line >= f.Doc.LineCount() {
		return
	}
	vx, vy := f.Layout.VisualPos(f.Doc.Line(line), f.Cursor-f.Doc.LineToChar(line))
	absY := f.Layout.AbsoluteRow(layout.Scroll{Line: line, Row: vy})
	screenTop := f.Layout.AbsoluteRow(f.Scroll)
	if absY >= screenTop {
		if screenY := absY - screenTop; screenY < contentHeight {
			r.be.ShowCursor(vx+GutterWidth, screenY)
			return
		}
	}
	r.be.HideCursor()
}

func trimEnding(runes []rune) []rune {
	n := len(runes)
	if n > 0 && runes[n-1] == '\n' {
		n--
		if n > 0 && runes[n-1] == '\r' {
			n--
		}
	}
	return runes[:n]
}
