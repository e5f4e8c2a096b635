// Package cursor models the editing cursor: a single character offset,
// an optional selection anchor, and the remembered horizontal target
// used by vertical movement. It also implements word-boundary scanning
// and screen-to-document hit testing.
package cursor

import (
	"github.com/quilltext/quill/internal/render/layout"
	"github.com/quilltext/quill/internal/textbuf"
)

// Cursor is the insertion point plus selection state. Offsets are
// logical character indices into the document, never references into
// storage.
type Cursor struct {
	pos int

	anchor    int
	hasAnchor bool

	// targetX is the sticky visual column for repeated vertical moves,
	// so ragged line widths don't cause horizontal drift. Reset by any
	// horizontal or edit command.
	targetX    int
	hasTargetX bool
}

// New returns a cursor at offset 0 with no selection.
func New() *Cursor {
	return &Cursor{}
}

// Pos returns the cursor's character offset.
func (c *Cursor) Pos() int { return c.pos }

// SetPos moves the cursor to offset p (clamped to non-negative).
func (c *Cursor) SetPos(p int) {
	if p < 0 {
		p = 0
	}
	c.pos = p
}

// ResetTargetX forgets the sticky column for vertical movement.
func (c *Cursor) ResetTargetX() { c.hasTargetX = false }

// Anchor returns the selection anchor, if one is set.
func (c *Cursor) Anchor() (int, bool) { return c.anchor, c.hasAnchor }

// SetAnchor places the selection anchor at offset p.
func (c *Cursor) SetAnchor(p int) {
	if p < 0 {
		p = 0
	}
	c.anchor = p
	c.hasAnchor = true
}

// ClearAnchor drops the selection.
func (c *Cursor) ClearAnchor() { c.hasAnchor = false }

// HasSelection reports whether an anchor is set.
func (c *Cursor) HasSelection() bool { return c.hasAnchor }

// Selection returns the selected range [start, end), normalized so
// start <= end. ok is false when no anchor is set.
func (c *Cursor) Selection() (start, end int, ok bool) {
	if !c.hasAnchor {
		return 0, 0, false
	}
	if c.pos < c.anchor {
		return c.pos, c.anchor, true
	}
	return c.anchor, c.pos, true
}

// MoveUp moves the cursor one visual row up, staying on the sticky
// column. Within a wrapped line it moves between rows of the same
// logical line; at the top row it crosses into the previous logical
// line's bottom row.
func (c *Cursor) MoveUp(doc textbuf.Document, lay *layout.Cache) {
	y := doc.CharToLine(c.pos)
	start := doc.LineToChar(y)
	line := doc.Line(y)
	vx, vy := lay.VisualPos(line, c.pos-start)
	tx := c.stickyX(vx)

	switch {
	case vy > 0:
		c.pos = start + lay.CharAt(line, tx, vy-1)
	case y > 0:
		targetRow := lay.LineHeight(y-1) - 1
		if targetRow < 0 {
			targetRow = 0
		}
		c.pos = doc.LineToChar(y-1) + lay.CharAt(doc.Line(y-1), tx, targetRow)
	}
}

// MoveDown is the downward counterpart of MoveUp.
func (c *Cursor) MoveDown(doc textbuf.Document, lay *layout.Cache) {
	y := doc.CharToLine(c.pos)
	start := doc.LineToChar(y)
	line := doc.Line(y)
	vx, vy := lay.VisualPos(line, c.pos-start)
	tx := c.stickyX(vx)

	switch {
	case vy < lay.LineHeight(y)-1:
		c.pos = start + lay.CharAt(line, tx, vy+1)
	case y < doc.LineCount()-1:
		c.pos = doc.LineToChar(y+1) + lay.CharAt(doc.Line(y+1), tx, 0)
	}
}

// stickyX returns the remembered target column, establishing it from
// the current column on the first vertical move of a streak.
func (c *Cursor) stickyX(vx int) int {
	if !c.hasTargetX {
		c.targetX = vx
		c.hasTargetX = true
	}
	return c.targetX
}

// ScreenToChar maps a screen cell to a document offset: the viewport's
// absolute-row lookup picks the logical line and wrapped row, then a
// midpoint scan picks the column. Clicks in the line-number gutter map
// to the line start; clicks past line content map to end of content.
func ScreenToChar(doc textbuf.Document, lay *layout.Cache, scroll layout.Scroll, screenX, screenY, gutterWidth int) int {
	top := lay.AbsoluteRow(scroll)
	target := lay.ScrollAt(top + screenY)
	if target.Line >= doc.LineCount() {
		return doc.CharCount()
	}
	lineStart := doc.LineToChar(target.Line)
	if screenX < gutterWidth {
		return lineStart
	}
	return lineStart + lay.HitChar(doc.Line(target.Line), screenX-gutterWidth, target.Row)
}
