package motion

import "github.com/dshills/vimkit/internal/engine/buffer"

// isBlankLine reports whether line n is empty.
func isBlankLine(rd buffer.Reader, n int) bool {
	return len(rd.Line(n)) == 0
}

// ParagraphForward returns the next paragraph boundary: the first blank
// line after the cursor's paragraph, or the end of the buffer.
func ParagraphForward(rd buffer.Reader, p buffer.Position) buffer.Position {
	last := rd.LineCount() - 1
	line := p.Line

	// Leave a blank-line run first so repeated } keeps advancing.
	for line < last && isBlankLine(rd, line) {
		line++
	}
	for line < last && !isBlankLine(rd, line) {
		line++
	}
	if isBlankLine(rd, line) {
		return buffer.NewPosition(line, 0)
	}
	return buffer.NewPosition(line, len(rd.Line(line)))
}

// ParagraphBackward returns the previous paragraph boundary: the first
// blank line before the cursor's paragraph, or the start of the buffer.
func ParagraphBackward(rd buffer.Reader, p buffer.Position) buffer.Position {
	line := p.Line

	for line > 0 && isBlankLine(rd, line) {
		line--
	}
	for line > 0 && !isBlankLine(rd, line) {
		line--
	}
	return buffer.NewPosition(line, 0)
}

// SectionForward returns the next section boundary: the first line after
// the cursor whose first character is the boundary character.
func SectionForward(rd buffer.Reader, p buffer.Position, boundary byte) buffer.Position {
	last := rd.LineCount() - 1
	for line := p.Line + 1; line <= last; line++ {
		text := rd.Line(line)
		if len(text) > 0 && text[0] == boundary {
			return buffer.NewPosition(line, 0)
		}
	}
	return buffer.NewPosition(last, 0)
}

// SectionBackward returns the previous section boundary.
func SectionBackward(rd buffer.Reader, p buffer.Position, boundary byte) buffer.Position {
	for line := p.Line - 1; line >= 0; line-- {
		text := rd.Line(line)
		if len(text) > 0 && text[0] == boundary {
			return buffer.NewPosition(line, 0)
		}
	}
	return buffer.NewPosition(0, 0)
}
