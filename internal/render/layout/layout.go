// Package layout maintains the visual-height index that maps between
// logical document lines and wrapped screen rows.
//
// The cache keeps a cumulative array H with H[0] = 0 and
// H[i] = H[i-1] + height(line i-1), where height is the number of
// wrapped visual rows a line occupies at the current content width
// (minimum 1, even for empty lines). The array is rebuilt in full on
// width changes and spliced incrementally on edits.
package layout

import (
	"sort"

	"github.com/quilltext/quill/internal/textbuf"
)

// Scroll identifies a visual row as (logical line, row offset within
// that line's wrapping). Keeping the logical line explicit avoids
// re-deriving it from an absolute row counter every frame.
type Scroll struct {
	Line int
	Row  int
}

// Cache is the cumulative visual-height index for one document at one
// content width.
type Cache struct {
	// heights[i] is the total visual height of lines [0, i).
	// Strictly non-decreasing; len == lineCount+1.
	heights []int
	width   int
	measure *widthMeasurer
}

// NewCache creates a cache for the given content width in display
// columns. A width <= 0 means unbounded: every line is one row.
func NewCache(width int) *Cache {
	return &Cache{
		heights: []int{0},
		width:   width,
		measure: newWidthMeasurer(),
	}
}

// Width returns the content width.
func (c *Cache) Width() int { return c.width }

// SetWidth changes the content width. The caller must Rebuild
// afterwards; the cached heights are stale until then.
func (c *Cache) SetWidth(width int) { c.width = width }

// lineCount returns the number of lines the cache currently covers.
func (c *Cache) lineCount() int { return len(c.heights) - 1 }

// Rebuild recomputes every height from scratch. Used at startup and
// after a terminal width change.
func (c *Cache) Rebuild(doc textbuf.Document) {
	n := doc.LineCount()
	c.heights = append(c.heights[:0], 0)
	total := 0
	for i := 0; i < n; i++ {
		total += c.RowCount(doc.Line(i))
		c.heights = append(c.heights, total)
	}
}

// Update splices the cache after an edit that replaced oldCount logical
// lines starting at startLine with newCount lines, recomputing only the
// new span and shifting everything below by the height delta. It
// returns that delta: zero means only the edited lines changed
// visually, non-zero means every line below moved on screen.
func (c *Cache) Update(doc textbuf.Document, startLine, oldCount, newCount int) int {
	// An inconsistent span means the caller's bookkeeping diverged
	// from the cache; recompute rather than corrupt the index.
	if startLine < 0 || oldCount < 0 || newCount < 0 ||
		startLine+oldCount >= len(c.heights) ||
		startLine+newCount > doc.LineCount() {
		old := c.TotalHeight()
		c.Rebuild(doc)
		return c.TotalHeight() - old
	}

	oldSpan := c.heights[startLine+oldCount] - c.heights[startLine]

	newHeights := make([]int, 0, newCount)
	newSpan := 0
	for i := 0; i < newCount; i++ {
		h := c.RowCount(doc.Line(startLine + i))
		newHeights = append(newHeights, h)
		newSpan += h
	}
	delta := newSpan - oldSpan

	spliced := make([]int, 0, len(c.heights)-oldCount+newCount)
	spliced = append(spliced, c.heights[:startLine+1]...)
	cum := c.heights[startLine]
	for _, h := range newHeights {
		cum += h
		spliced = append(spliced, cum)
	}
	for _, h := range c.heights[startLine+1+oldCount:] {
		spliced = append(spliced, h+delta)
	}
	c.heights = spliced

	return delta
}

// LineHeight returns the visual height of one logical line.
func (c *Cache) LineHeight(line int) int {
	if line < 0 || line+1 >= len(c.heights) {
		return 1
	}
	return c.heights[line+1] - c.heights[line]
}

// HeightBetween returns the total visual height of lines [start, end).
func (c *Cache) HeightBetween(start, end int) int {
	if start < 0 || end >= len(c.heights) || start > end {
		return 0
	}
	return c.heights[end] - c.heights[start]
}

// TotalHeight returns the visual height of the whole document.
func (c *Cache) TotalHeight() int {
	return c.heights[len(c.heights)-1]
}

// AbsoluteRow converts a scroll position to an absolute visual row
// counted from the top of the document.
func (c *Cache) AbsoluteRow(off Scroll) int {
	return c.HeightBetween(0, off.Line) + off.Row
}

// ScrollAt converts an absolute visual row back to a scroll position,
// clamping to the last line when the row is beyond content.
func (c *Cache) ScrollAt(absRow int) Scroll {
	lines := c.lineCount()
	if lines <= 0 || absRow <= 0 {
		return Scroll{}
	}

	// First cumulative entry above absRow, minus one, owns the row.
	line := sort.Search(len(c.heights), func(i int) bool {
		return c.heights[i] > absRow
	}) - 1
	if line > lines-1 {
		line = lines - 1
	}

	row := absRow - c.heights[line]
	if row < 0 {
		row = 0
	}
	return Scroll{Line: line, Row: row}
}
