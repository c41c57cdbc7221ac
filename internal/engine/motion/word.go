package motion

import (
	"unicode/utf8"

	"github.com/dshills/vimkit/internal/engine/buffer"
)

// WordRight returns the start of the next word. A word is a contiguous run
// of a single character class; with big=true any run of non-whitespace is
// one WORD. At the end of the document the position is returned unchanged.
func WordRight(rd buffer.Reader, p buffer.Position, big bool) buffer.Position {
	text := flatten(rd)
	off := offsetOf(rd, p)
	next := nextWordStart(text, off, big)
	if next >= len(text) {
		// No further word start: stop on the last character rather than
		// walking off the document.
		end := endOfContent(rd)
		if end.After(p) {
			return end
		}
		return p
	}
	if next <= off {
		return p
	}
	return positionAt(rd, next)
}

// WordLeft returns the start of the previous word.
func WordLeft(rd buffer.Reader, p buffer.Position, big bool) buffer.Position {
	text := flatten(rd)
	off := offsetOf(rd, p)
	return positionAt(rd, prevWordStart(text, off, big))
}

// WordEnd returns the end of the current word, or of the next word when
// the cursor already sits on a word end.
func WordEnd(rd buffer.Reader, p buffer.Position, big bool) buffer.Position {
	text := flatten(rd)
	off := offsetOf(rd, p)
	end := wordEnd(text, off, big)
	if end >= len(text) || end <= off {
		return p
	}
	return positionAt(rd, end)
}

// WordEndBackward returns the end of the previous word.
func WordEndBackward(rd buffer.Reader, p buffer.Position, big bool) buffer.Position {
	text := flatten(rd)
	off := offsetOf(rd, p)
	return positionAt(rd, prevWordEnd(text, off, big))
}

// runClass returns the (possibly WORD-collapsed) class of the rune at off.
func runClass(text string, off int, big bool) (CharClass, int) {
	c, size := classAt(text, off)
	if big {
		c = bigClass(c)
	}
	return c, size
}

// nextWordStart finds the start of the word after off.
func nextWordStart(text string, off int, big bool) int {
	n := len(text)
	if off >= n {
		return n
	}

	// Skip the run the cursor sits in.
	cls, size := runClass(text, off, big)
	if cls != ClassWhitespace {
		for off < n {
			c, s := runClass(text, off, big)
			if c != cls {
				break
			}
			off += s
		}
	} else {
		off += size
	}

	// Skip whitespace to the next word start.
	for off < n {
		c, s := runClass(text, off, big)
		if c != ClassWhitespace {
			break
		}
		off += s
	}
	return off
}

// prevWordStart finds the start of the word before off.
func prevWordStart(text string, off int, big bool) int {
	if off <= 0 {
		return 0
	}
	if off > len(text) {
		off = len(text)
	}
	off = prevRuneStart(text, off)

	// Skip whitespace backwards.
	for off > 0 {
		c, _ := runClass(text, off, big)
		if c != ClassWhitespace {
			break
		}
		off = prevRuneStart(text, off)
	}

	// Walk to the start of the run.
	cls, _ := runClass(text, off, big)
	if cls == ClassWhitespace {
		return off
	}
	for off > 0 {
		prev := prevRuneStart(text, off)
		c, _ := runClass(text, prev, big)
		if c != cls {
			break
		}
		off = prev
	}
	return off
}

// wordEnd finds the last character of the current or next word after off.
func wordEnd(text string, off int, big bool) int {
	n := len(text)
	if off >= n {
		return n
	}

	// Step off the current character.
	_, size := utf8.DecodeRuneInString(text[off:])
	off += size

	// Skip whitespace.
	for off < n {
		c, s := runClass(text, off, big)
		if c != ClassWhitespace {
			break
		}
		off += s
	}
	if off >= n {
		return n
	}

	// Advance to the last character of the run.
	cls, _ := runClass(text, off, big)
	for {
		_, s := utf8.DecodeRuneInString(text[off:])
		next := off + s
		if next >= n {
			return off
		}
		c, _ := runClass(text, next, big)
		if c != cls {
			return off
		}
		off = next
	}
}

// prevWordEnd finds the last character of the word before off.
func prevWordEnd(text string, off int, big bool) int {
	if off <= 0 {
		return 0
	}
	if off > len(text) {
		off = len(text)
	}
	off = prevRuneStart(text, off)

	// Step backwards off the current run so ge from inside a word reaches
	// the previous word's end rather than the current one's.
	cls, _ := runClass(text, off, big)
	if cls != ClassWhitespace {
		for off > 0 {
			prev := prevRuneStart(text, off)
			c, _ := runClass(text, prev, big)
			if c != cls {
				off = prev
				break
			}
			off = prev
		}
		if off == 0 {
			return 0
		}
	}

	// Skip whitespace backwards; the first non-blank is a word end.
	for off > 0 {
		c, _ := runClass(text, off, big)
		if c != ClassWhitespace {
			break
		}
		off = prevRuneStart(text, off)
	}
	return off
}
