// Package textbuf provides the text storage collaborator for the editor
// core: a rune-indexed buffer with a maintained line-start index.
//
// Offsets are character (rune) offsets, never bytes. Lines follow rope
// conventions: a buffer always has at least one line, line i includes its
// trailing newline (except the last line), and a buffer ending in a
// newline has a trailing empty line.
package textbuf

// Document is the capability contract the editor core requires from text
// storage. Any structure with efficient char/line indexing (rope, piece
// table, gap buffer) satisfies it; *Buffer is the in-tree implementation.
type Document interface {
	// CharCount returns the total number of characters.
	CharCount() int

	// LineCount returns the number of lines (newlines + 1, never 0).
	LineCount() int

	// CharAt returns the character at offset i.
	CharAt(i int) rune

	// CharToLine returns the line containing offset char.
	// char == CharCount() maps to the last line.
	CharToLine(char int) int

	// LineToChar returns the offset of the first character of line.
	LineToChar(line int) int

	// Line returns the text of line, including its trailing newline
	// if the line has one.
	Line(line int) string

	// LineLen returns the number of characters in line, excluding a
	// trailing "\n" or "\r\n".
	LineLen(line int) int

	// Slice returns the text in [start, end).
	Slice(start, end int) string

	// Insert inserts text at offset at.
	Insert(at int, text string)

	// Remove deletes the characters in [start, end).
	Remove(start, end int)
}
