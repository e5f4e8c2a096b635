package layout

import (
	"iter"

	"github.com/mattn/go-runewidth"
)

// unboundedWidth stands in for "no wrapping" when the content width is
// zero or negative, so the greedy packer never divides by or loops on a
// zero budget.
const unboundedWidth = 1 << 30

// widthMeasurer measures display widths with East-Asian-width rules:
// CJK and other wide characters occupy two columns.
type widthMeasurer struct {
	cond *runewidth.Condition
}

func newWidthMeasurer() *widthMeasurer {
	return &widthMeasurer{cond: &runewidth.Condition{EastAsianWidth: true}}
}

// charWidth returns the column width of a single character. Newlines
// and control characters count as one column so they participate in the
// greedy packing the same way the renderer skips over them; zero-width
// combining marks stay at zero.
func (m *widthMeasurer) charWidth(r rune) int {
	if r == '\n' || r == '\r' {
		return 1
	}
	if w := m.cond.RuneWidth(r); w > 0 {
		return w
	}
	if r < 0x20 {
		return 1
	}
	return 0
}

// maxWidth returns the effective wrap budget.
func (c *Cache) maxWidth() int {
	if c.width <= 0 {
		return unboundedWidth
	}
	return c.width
}

// Chunk is one visual row of a wrapped logical line.
type Chunk struct {
	// Offset is the char offset of the chunk's first character within
	// the line.
	Offset int
	// Text is the chunk's characters, including a trailing newline on
	// the line's final chunk if the line has one.
	Text string
}

// Chunks yields the visual rows of a logical line under the current
// content width, greedily packing characters by display width. A
// character wider than the whole budget still consumes exactly one
// row. An empty line yields a single empty chunk.
func (c *Cache) Chunks(line string) iter.Seq[Chunk] {
	return func(yield func(Chunk) bool) {
		runes := []rune(line)
		if len(runes) == 0 {
			yield(Chunk{})
			return
		}
		budget := c.maxWidth()

		start := 0
		for start < len(runes) {
			width := 0
			end := start
			for end < len(runes) {
				w := c.measure.charWidth(runes[end])
				if width+w > budget {
					break
				}
				width += w
				end++
			}
			// An oversized character still takes one row.
			if end == start {
				end = start + 1
			}
			if !yield(Chunk{Offset: start, Text: string(runes[start:end])}) {
				return
			}
			start = end
		}
	}
}

// RowCount returns the number of visual rows the line occupies,
// at least 1.
func (c *Cache) RowCount(line string) int {
	n := 0
	for range c.Chunks(line) {
		n++
	}
	if n < 1 {
		n = 1
	}
	return n
}

// VisualPos converts a char offset within a line to its (column, row)
// position under the current wrapping.
func (c *Cache) VisualPos(line string, charOffset int) (x, y int) {
	budget := c.maxWidth()
	for i, r := range []rune(line) {
		if i >= charOffset {
			break
		}
		w := c.measure.charWidth(r)
		if x+w > budget {
			y++
			x = w
		} else {
			x += w
		}
	}
	return x, y
}

// CharAt finds the char offset within a line closest to the visual
// position (targetX, targetY), clamping to the line's content when the
// target lies past it.
func (c *Cache) CharAt(line string, targetX, targetY int) int {
	budget := c.maxWidth()
	runes := []rune(line)

	x, y := 0, 0
	last := 0
	for i, r := range runes {
		if y > targetY {
			return last
		}
		last = i
		w := c.measure.charWidth(r)
		if y == targetY && x >= targetX {
			return i
		}
		if x+w > budget {
			y++
			x = w
		} else {
			x += w
		}
	}
	return trimmedLen(runes)
}

// TextWidth returns the display width of s in terminal cells.
func (c *Cache) TextWidth(s string) int {
	w := 0
	for _, r := range s {
		w += c.measure.charWidth(r)
	}
	return w
}

// HitChar maps a click at visual position (targetX, row) to a char
// offset within the line. A cell counts as hit when the click lands at
// or past its horizontal midpoint, so clicking the right half of a
// wide character selects the position after it.
func (c *Cache) HitChar(line string, targetX, row int) int {
	budget := c.maxWidth()
	runes := []rune(line)

	x, y := 0, 0
	for i, r := range runes {
		w := c.measure.charWidth(r)
		if y == row && x+w/2 >= targetX {
			return i
		}
		if x+w > budget {
			y++
			x = w
		} else {
			x += w
		}
		if r == '\n' {
			break
		}
	}
	return trimmedLen(runes)
}

// trimmedLen is the line length excluding a trailing "\n" or "\r\n".
func trimmedLen(runes []rune) int {
	n := len(runes)
	if n > 0 && runes[n-1] == '\n' {
		n--
		if n > 0 && runes[n-1] == '\r' {
			n--
		}
	}
	return n
}
