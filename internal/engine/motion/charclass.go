package motion

import (
	"unicode"
	"unicode/utf8"
)

// CharClass categorizes a rune for word-motion purposes. A word is a
// contiguous run of a single class; a WORD is a contiguous run of
// non-whitespace.
type CharClass uint8

const (
	// ClassWhitespace is spaces, tabs and other blank characters.
	ClassWhitespace CharClass = iota

	// ClassWord is letters, digits and underscore.
	ClassWord

	// ClassPunctuation is everything else.
	ClassPunctuation
)

// ClassOf returns the character class of r.
func ClassOf(r rune) CharClass {
	switch {
	case unicode.IsSpace(r):
		return ClassWhitespace
	case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
		return ClassWord
	default:
		return ClassPunctuation
	}
}

// classAt returns the class of the rune starting at byte offset col, and
// the byte width of that rune. Offsets at or past the end of the line
// report ClassWhitespace with width 0.
func classAt(line string, col int) (CharClass, int) {
	if col < 0 || col >= len(line) {
		return ClassWhitespace, 0
	}
	r, size := utf8.DecodeRuneInString(line[col:])
	return ClassOf(r), size
}

// prevRuneStart returns the byte offset of the rune preceding col.
func prevRuneStart(line string, col int) int {
	if col <= 0 {
		return 0
	}
	_, size := utf8.DecodeLastRuneInString(line[:col])
	return col - size
}

// bigClass collapses word and punctuation into a single class for WORD
// motions.
func bigClass(c CharClass) CharClass {
	if c == ClassWhitespace {
		return ClassWhitespace
	}
	return ClassWord
}
