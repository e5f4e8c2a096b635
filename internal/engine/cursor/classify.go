package cursor

import "unicode"

// Class buckets characters for word-boundary scanning. A word is a run
// of letters, digits, and underscores; punctuation forms its own runs;
// newlines are distinct from other whitespace so word motion stops at
// line boundaries.
type Class uint8

const (
	ClassWord Class = iota
	ClassSymbol
	ClassWhitespace
	ClassNewline
)

func (c Class) String() string {
	switch c {
	case ClassWord:
		return "word"
	case ClassSymbol:
		return "symbol"
	case ClassWhitespace:
		return "whitespace"
	case ClassNewline:
		return "newline"
	}
	return "unknown"
}

// Classify returns the scan class of r.
func Classify(r rune) Class {
	switch {
	case r == '\n' || r == '\r':
		return ClassNewline
	case unicode.IsSpace(r):
		return ClassWhitespace
	case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
		return ClassWord
	default:
		return ClassSymbol
	}
}
