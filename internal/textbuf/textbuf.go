package textbuf

import (
	"sort"
)

// Buffer is a rune-slice text store with a line-start index.
// Indexing operations (char/line conversion) are O(log n) via binary
// search over the line index; edits splice the rune slice and repair the
// index incrementally.
type Buffer struct {
	runes []rune
	// lineStarts[i] is the char offset of the first character of line i.
	// lineStarts[0] is always 0; an entry follows every newline.
	lineStarts []int
}

// New returns an empty buffer containing a single empty line.
func New() *Buffer {
	return &Buffer{lineStarts: []int{0}}
}

// FromString builds a buffer holding s.
func FromString(s string) *Buffer {
	b := New()
	if s != "" {
		b.Insert(0, s)
	}
	return b
}

// CharCount returns the total number of characters.
func (b *Buffer) CharCount() int { return len(b.runes) }

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() int { return len(b.lineStarts) }

// CharAt returns the character at offset i, or 0 when out of range.
func (b *Buffer) CharAt(i int) rune {
	if i < 0 || i >= len(b.runes) {
		return 0
	}
	return b.runes[i]
}

// CharToLine returns the line containing the given char offset.
// Offsets are clamped to [0, CharCount()].
func (b *Buffer) CharToLine(char int) int {
	if char < 0 {
		char = 0
	}
	if char > len(b.runes) {
		char = len(b.runes)
	}
	// First line whose start is beyond char, minus one.
	i := sort.Search(len(b.lineStarts), func(i int) bool {
		return b.lineStarts[i] > char
	})
	return i - 1
}

// LineToChar returns the char offset of the start of line.
// Lines past the end map to CharCount().
func (b *Buffer) LineToChar(line int) int {
	if line < 0 {
		return 0
	}
	if line >= len(b.lineStarts) {
		return len(b.runes)
	}
	return b.lineStarts[line]
}

// lineEnd returns the char offset one past the end of line, including its
// trailing newline.
func (b *Buffer) lineEnd(line int) int {
	if line+1 < len(b.lineStarts) {
		return b.lineStarts[line+1]
	}
	return len(b.runes)
}

// Line returns the text of line including a trailing newline, if present.
func (b *Buffer) Line(line int) string {
	if line < 0 || line >= len(b.lineStarts) {
		return ""
	}
	return string(b.runes[b.lineStarts[line]:b.lineEnd(line)])
}

// LineLen returns the character count of line excluding its line ending.
func (b *Buffer) LineLen(line int) int {
	if line < 0 || line >= len(b.lineStarts) {
		return 0
	}
	start, end := b.lineStarts[line], b.lineEnd(line)
	n := end - start
	if n > 0 && b.runes[end-1] == '\n' {
		n--
		if n > 0 && b.runes[end-2] == '\r' {
			n--
		}
	}
	return n
}

// Slice returns the text in [start, end), clamped to the buffer.
func (b *Buffer) Slice(start, end int) string {
	start, end = b.clampRange(start, end)
	return string(b.runes[start:end])
}

// String returns the whole buffer contents.
func (b *Buffer) String() string { return string(b.runes) }

// Insert inserts text at offset at (clamped to the buffer).
func (b *Buffer) Insert(at int, text string) {
	if text == "" {
		return
	}
	if at < 0 {
		at = 0
	}
	if at > len(b.runes) {
		at = len(b.runes)
	}

	ins := []rune(text)
	n := len(ins)

	b.runes = append(b.runes, ins...)
	copy(b.runes[at+n:], b.runes[at:])
	copy(b.runes[at:], ins)

	// Line starts at or before the insertion point are unaffected.
	// Starts strictly after it shift right; every newline in the
	// inserted text contributes a new start.
	keep := sort.Search(len(b.lineStarts), func(i int) bool {
		return b.lineStarts[i] > at
	})
	var added []int
	for i, r := range ins {
		if r == '\n' {
			added = append(added, at+i+1)
		}
	}

	starts := make([]int, 0, len(b.lineStarts)+len(added))
	starts = append(starts, b.lineStarts[:keep]...)
	starts = append(starts, added...)
	for _, s := range b.lineStarts[keep:] {
		starts = append(starts, s+n)
	}
	b.lineStarts = starts
}

// Remove deletes the characters in [start, end).
func (b *Buffer) Remove(start, end int) {
	start, end = b.clampRange(start, end)
	if start == end {
		return
	}
	n := end - start

	b.runes = append(b.runes[:start], b.runes[end:]...)

	// Starts in (start, end] belong to removed newlines; later starts
	// shift left.
	starts := b.lineStarts[:0]
	for _, s := range b.lineStarts {
		switch {
		case s <= start:
			starts = append(starts, s)
		case s > end:
			starts = append(starts, s-n)
		}
	}
	b.lineStarts = starts
}

func (b *Buffer) clampRange(start, end int) (int, int) {
	if start < 0 {
		start = 0
	}
	if end > len(b.runes) {
		end = len(b.runes)
	}
	if start > end {
		return end, end
	}
	return start, end
}
