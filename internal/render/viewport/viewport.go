// Package viewport tracks the scroll position of the visible text
// area and keeps the cursor inside it.
package viewport

import (
	"github.com/quilltext/quill/internal/render/layout"
	"github.com/quilltext/quill/internal/textbuf"
)

// Controller owns the scroll offset for a content area of a fixed
// visual height.
type Controller struct {
	scroll layout.Scroll
	height int
}

// New returns a controller scrolled to the top with the given content
// height in rows.
func New(height int) *Controller {
	return &Controller{height: height}
}

// Scroll returns the current scroll position.
func (v *Controller) Scroll() layout.Scroll { return v.scroll }

// Height returns the content height in visual rows.
func (v *Controller) Height() int { return v.height }

// SetHeight records a new content height after a resize.
func (v *Controller) SetHeight(h int) {
	if h < 0 {
		h = 0
	}
	v.height = h
}

// ScrollToCursor adjusts the scroll so the cursor is visible. A cursor
// outside the viewport scrolls the minimal distance to reach it; a
// visible cursor drifts toward the vertical center, clamped so the
// view never scrolls past the end of the document. Reports whether the
// scroll position changed.
func (v *Controller) ScrollToCursor(doc textbuf.Document, lay *layout.Cache, pos int) bool {
	if v.height <= 0 {
		return false
	}

	line := doc.CharToLine(pos)
	lineStart := doc.LineToChar(line)
	_, row := lay.VisualPos(doc.Line(line), pos-lineStart)
	cursorAbs := lay.AbsoluteRow(layout.Scroll{Line: line, Row: row})

	top := lay.AbsoluteRow(v.scroll)
	bottom := top + v.height - 1

	var newTop int
	switch {
	case cursorAbs < top:
		newTop = cursorAbs
	case cursorAbs > bottom:
		newTop = cursorAbs - v.height + 1
	default:
		ideal := cursorAbs - v.height/2
		if ideal < 0 {
			ideal = 0
		}
		if total := lay.TotalHeight(); total-ideal < v.height {
			newTop = total - v.height
			if newTop < 0 {
				newTop = 0
			}
		} else {
			newTop = ideal
		}
	}

	next := lay.ScrollAt(newTop)
	if next == v.scroll {
		return false
	}
	v.scroll = next
	return true
}
