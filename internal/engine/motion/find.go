package motion

import (
	"unicode/utf8"

	"github.com/dshills/vimkit/internal/engine/buffer"
)

// Find scans the cursor line for the count'th occurrence of target,
// forward or backward from the cursor. The scan never leaves the line;
// ok is false when fewer than count occurrences exist.
func Find(rd buffer.Reader, p buffer.Position, target rune, count int, forward bool) (buffer.Position, bool) {
	if count < 1 {
		count = 1
	}
	line := rd.Line(p.Line)

	if forward {
		col := p.Character
		if col < len(line) {
			_, size := utf8.DecodeRuneInString(line[col:])
			col += size
		}
		for col < len(line) {
			r, size := utf8.DecodeRuneInString(line[col:])
			if r == target {
				count--
				if count == 0 {
					return p.WithCharacter(col), true
				}
			}
			col += size
		}
		return p, false
	}

	col := p.Character
	for col > 0 {
		col = prevRuneStart(line, col)
		r, _ := utf8.DecodeRuneInString(line[col:])
		if r == target {
			count--
			if count == 0 {
				return p.WithCharacter(col), true
			}
		}
	}
	return p, false
}

// Till is Find stopping one character short of the target: before it when
// scanning forward, after it when scanning backward.
func Till(rd buffer.Reader, p buffer.Position, target rune, count int, forward bool) (buffer.Position, bool) {
	found, ok := Find(rd, p, target, count, forward)
	if !ok {
		return p, false
	}
	line := rd.Line(p.Line)
	if forward {
		return found.WithCharacter(prevRuneStart(line, found.Character)), true
	}
	_, size := utf8.DecodeRuneInString(line[found.Character:])
	return found.WithCharacter(found.Character + size), true
}
