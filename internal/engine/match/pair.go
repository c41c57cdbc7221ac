package match

import (
	"unicode/utf8"

	"github.com/dshills/vimkit/internal/engine/buffer"
)

// pairs maps each bracket to its counterpart. Angle brackets participate
// in text objects but not in the % scan.
var pairs = map[rune]rune{
	'(': ')', ')': '(',
	'{': '}', '}': '{',
	'[': ']', ']': '[',
	'<': '>', '>': '<',
}

// openers marks the brackets that increase nesting depth.
var openers = map[rune]bool{'(': true, '{': true, '[': true, '<': true}

// Counterpart returns the matching bracket for r, and whether r is a
// bracket at all.
func Counterpart(r rune) (rune, bool) {
	c, ok := pairs[r]
	return c, ok
}

// IsOpen reports whether r opens a bracket pair.
func IsOpen(r rune) bool {
	return openers[r]
}

// BracketOnLine scans the cursor line from the cursor rightwards for the
// first round, curly, or square bracket. Angle brackets are skipped so a
// bare % on "a < b" does nothing.
func BracketOnLine(rd buffer.Reader, p buffer.Position) (buffer.Position, rune, bool) {
	line := rd.Line(p.Line)
	col := p.Character
	for col < len(line) {
		r, size := utf8.DecodeRuneInString(line[col:])
		if _, ok := pairs[r]; ok && r != '<' && r != '>' {
			return p.WithCharacter(col), r, true
		}
		col += size
	}
	return p, 0, false
}

// Pair returns the position of the bracket matching the one at p. The
// scan covers the whole buffer and counts nesting depth; ok is false when
// p does not sit on a bracket or the match is missing.
func Pair(rd buffer.Reader, p buffer.Position) (buffer.Position, bool) {
	line := rd.Line(p.Line)
	if p.Character >= len(line) {
		return p, false
	}
	open, _ := utf8.DecodeRuneInString(line[p.Character:])
	want, ok := pairs[open]
	if !ok {
		return p, false
	}
	if openers[open] {
		return scanForward(rd, p, open, want)
	}
	return scanBackward(rd, p, open, want)
}

func scanForward(rd buffer.Reader, p buffer.Position, open, want rune) (buffer.Position, bool) {
	depth := 0
	for ln := p.Line; ln < rd.LineCount(); ln++ {
		line := rd.Line(ln)
		col := 0
		if ln == p.Line {
			col = p.Character
		}
		for col < len(line) {
			r, size := utf8.DecodeRuneInString(line[col:])
			switch r {
			case open:
				depth++
			case want:
				depth--
				if depth == 0 {
					return buffer.NewPosition(ln, col), true
				}
			}
			col += size
		}
	}
	return p, false
}

func scanBackward(rd buffer.Reader, p buffer.Position, close, want rune) (buffer.Position, bool) {
	depth := 0
	for ln := p.Line; ln >= 0; ln-- {
		line := rd.Line(ln)
		col := len(line)
		if ln == p.Line {
			_, size := utf8.DecodeRuneInString(line[p.Character:])
			col = p.Character + size
		}
		for col > 0 {
			col = prevRuneStart(line, col)
			r, _ := utf8.DecodeRuneInString(line[col:])
			switch r {
			case close:
				depth++
			case want:
				depth--
				if depth == 0 {
					return buffer.NewPosition(ln, col), true
				}
			}
		}
	}
	return p, false
}

// Surrounding finds the innermost open/close bracket pair of the given
// kind enclosing p. A cursor sitting on either bracket counts as inside.
func Surrounding(rd buffer.Reader, p buffer.Position, open rune) (buffer.Position, buffer.Position, bool) {
	close, ok := pairs[open]
	if !ok || !openers[open] {
		return p, p, false
	}

	// If the cursor is on the opening bracket, match from there directly.
	line := rd.Line(p.Line)
	if p.Character < len(line) {
		r, _ := utf8.DecodeRuneInString(line[p.Character:])
		if r == open {
			end, ok := scanForward(rd, p, open, close)
			return p, end, ok
		}
	}

	start, ok := unmatchedBefore(rd, p, open, close)
	if !ok {
		return p, p, false
	}
	end, ok := scanForward(rd, start, open, close)
	if !ok {
		return p, p, false
	}
	return start, end, true
}

// unmatchedBefore walks backwards from p for an opening bracket with no
// close between it and the cursor.
func unmatchedBefore(rd buffer.Reader, p buffer.Position, open, close rune) (buffer.Position, bool) {
	depth := 0
	for ln := p.Line; ln >= 0; ln-- {
		line := rd.Line(ln)
		col := len(line)
		if ln == p.Line && p.Character < col {
			col = p.Character
		}
		for col > 0 {
			col = prevRuneStart(line, col)
			r, _ := utf8.DecodeRuneInString(line[col:])
			switch r {
			case close:
				depth++
			case open:
				if depth == 0 {
					return buffer.NewPosition(ln, col), true
				}
				depth--
			}
		}
	}
	return p, false
}

// prevRuneStart returns the byte offset of the rune preceding off.
func prevRuneStart(s string, off int) int {
	if off <= 0 {
		return 0
	}
	off--
	for off > 0 && !utf8.RuneStart(s[off]) {
		off--
	}
	return off
}
