package cursor

import "github.com/quilltext/quill/internal/textbuf"

// WordRight returns the offset reached by moving one word to the
// right from pos. The character under the cursor is always consumed;
// from whitespace the scan skips the run and steps onto the first
// character beyond it, then runs of word or symbol characters are
// consumed whole. Newlines end the scan so the cursor never jumps
// across a line boundary in one step.
func WordRight(doc textbuf.Document, pos int) int {
	if pos >= doc.CharCount() {
		return pos
	}
	kind := Classify(doc.CharAt(pos))
	off := 1

	if kind == ClassWhitespace {
		run, next, ok := runForward(doc, pos+off, kind)
		off += run
		if ok {
			off++
			kind = next
		} else {
			kind = ClassNewline
		}
	}
	if kind != ClassNewline {
		run, _, _ := runForward(doc, pos+off, kind)
		off += run
	}
	return pos + off
}

// WordLeft is the leftward mirror of WordRight, scanning the
// characters before pos.
func WordLeft(doc textbuf.Document, pos int) int {
	if pos <= 0 {
		return pos
	}
	kind := Classify(doc.CharAt(pos - 1))
	off := 1

	if kind == ClassWhitespace {
		run, next, ok := runBackward(doc, pos-off, kind)
		off += run
		if ok {
			off++
			kind = next
		} else {
			kind = ClassNewline
		}
	}
	if kind != ClassNewline {
		run, _, _ := runBackward(doc, pos-off, kind)
		off += run
	}
	return pos - off
}

// RunRight returns the end of the deletion span for delete-word-right:
// the character at pos plus, unless it is a newline, the rest of its
// run. Whitespace gets no special treatment here, so deleting at the
// start of indentation removes only the whitespace run.
func RunRight(doc textbuf.Document, pos int) int {
	if pos >= doc.CharCount() {
		return pos
	}
	kind := Classify(doc.CharAt(pos))
	off := 1
	if kind != ClassNewline {
		run, _, _ := runForward(doc, pos+off, kind)
		off += run
	}
	return pos + off
}

// RunLeft is the leftward mirror of RunRight, returning the start of
// the deletion span for delete-word-left.
func RunLeft(doc textbuf.Document, pos int) int {
	if pos <= 0 {
		return pos
	}
	kind := Classify(doc.CharAt(pos - 1))
	off := 1
	if kind != ClassNewline {
		run, _, _ := runBackward(doc, pos-off, kind)
		off += run
	}
	return pos - off
}

// runForward counts the characters of the given class starting at
// start. When a character of another class stops the run it has
// already been examined, so callers stepping past it add one to the
// returned count; next reports its class.
func runForward(doc textbuf.Document, start int, kind Class) (count int, next Class, ok bool) {
	n := doc.CharCount()
	for i := start; i < n; i++ {
		c := Classify(doc.CharAt(i))
		if c != kind {
			return count, c, true
		}
		count++
	}
	return count, 0, false
}

// runBackward counts characters of the given class scanning leftward
// from end (exclusive).
func runBackward(doc textbuf.Document, end int, kind Class) (count int, next Class, ok bool) {
	for i := end - 1; i >= 0; i-- {
		c := Classify(doc.CharAt(i))
		if c != kind {
			return count, c, true
		}
		count++
	}
	return count, 0, false
}
