package motion

import (
	"unicode"
	"unicode/utf8"

	"github.com/dshills/vimkit/internal/engine/buffer"
)

// ColumnEOL is the sticky desired-column sentinel meaning "end of line";
// set by $ so vertical motion tracks each line's own length.
const ColumnEOL = int(^uint(0) >> 1)

// Left returns the position one character to the left. With wrap=true the
// motion crosses to the previous line's end-of-line slot.
func Left(rd buffer.Reader, p buffer.Position, wrap bool) buffer.Position {
	if p.Character > 0 {
		return p.WithCharacter(prevRuneStart(rd.Line(p.Line), p.Character))
	}
	if wrap && p.Line > 0 {
		return buffer.NewPosition(p.Line-1, len(rd.Line(p.Line-1)))
	}
	return p
}

// Right returns the position one character to the right. With wrap=true
// the motion crosses to the next line's start.
func Right(rd buffer.Reader, p buffer.Position, wrap bool) buffer.Position {
	line := rd.Line(p.Line)
	if p.Character < len(line) {
		_, size := utf8.DecodeRuneInString(line[p.Character:])
		return p.WithCharacter(p.Character + size)
	}
	if wrap && p.Line < rd.LineCount()-1 {
		return buffer.NewPosition(p.Line+1, 0)
	}
	return p
}

// Vertical moves delta lines down (negative for up), targeting the desired
// column. The target line is clamped to [0, LineCount-1] and the column to
// that line's length; ColumnEOL always lands on the line end.
func Vertical(rd buffer.Reader, p buffer.Position, delta, desired int) buffer.Position {
	line := p.Line + delta
	if line < 0 {
		line = 0
	}
	if max := rd.LineCount() - 1; line > max {
		line = max
	}

	col := desired
	if col < 0 {
		col = p.Character
	}
	if n := len(rd.Line(line)); col > n {
		col = n
	}
	return buffer.NewPosition(line, col)
}

// LineBegin returns column 0 of the cursor line.
func LineBegin(p buffer.Position) buffer.Position {
	return p.WithCharacter(0)
}

// LineEnd returns the end-of-line slot of the cursor line.
func LineEnd(rd buffer.Reader, p buffer.Position) buffer.Position {
	return p.WithCharacter(len(rd.Line(p.Line)))
}

// FirstNonBlank returns the first non-blank character of the cursor line,
// or column 0 when the line is all blank.
func FirstNonBlank(rd buffer.Reader, p buffer.Position) buffer.Position {
	line := rd.Line(p.Line)
	col := 0
	for col < len(line) {
		r, size := utf8.DecodeRuneInString(line[col:])
		if !unicode.IsSpace(r) {
			break
		}
		col += size
	}
	if col >= len(line) {
		col = 0
	}
	return p.WithCharacter(col)
}

// LastNonBlank returns the last non-blank character of the cursor line.
func LastNonBlank(rd buffer.Reader, p buffer.Position) buffer.Position {
	line := rd.Line(p.Line)
	col := len(line)
	for col > 0 {
		prev := prevRuneStart(line, col)
		r, _ := utf8.DecodeRuneInString(line[prev:])
		if !unicode.IsSpace(r) {
			return p.WithCharacter(prev)
		}
		col = prev
	}
	return p.WithCharacter(0)
}

// GotoLine returns the first non-blank position of the given line, clamped
// to [0, LineCount-1].
func GotoLine(rd buffer.Reader, line int) buffer.Position {
	if line < 0 {
		line = 0
	}
	if max := rd.LineCount() - 1; line > max {
		line = max
	}
	return FirstNonBlank(rd, buffer.NewPosition(line, 0))
}
