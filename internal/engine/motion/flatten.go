package motion

import (
	"strings"

	"github.com/dshills/vimkit/internal/engine/buffer"
)

// flatten joins the buffer's lines with newlines for whole-document scans.
func flatten(rd buffer.Reader) string {
	var b strings.Builder
	for i := 0; i < rd.LineCount(); i++ {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(rd.Line(i))
	}
	return b.String()
}

// offsetOf converts a position to a flat byte offset over flatten(rd).
func offsetOf(rd buffer.Reader, p buffer.Position) int {
	p = p.Clamp(rd)
	off := 0
	for i := 0; i < p.Line; i++ {
		off += len(rd.Line(i)) + 1
	}
	return off + p.Character
}

// positionAt converts a flat byte offset back to a position.
func positionAt(rd buffer.Reader, off int) buffer.Position {
	if off < 0 {
		off = 0
	}
	for i := 0; i < rd.LineCount(); i++ {
		n := len(rd.Line(i))
		if off <= n {
			return buffer.NewPosition(i, off)
		}
		off -= n + 1
	}
	last := rd.LineCount() - 1
	return buffer.NewPosition(last, len(rd.Line(last)))
}

// ByteOffset returns the position of the 1-based byte offset n over the
// flattened buffer, clamped to the content.
func ByteOffset(rd buffer.Reader, n int) buffer.Position {
	if n < 1 {
		n = 1
	}
	return positionAt(rd, n-1)
}

// endOfContent returns the position of the last character in the buffer,
// or (0,0) when the buffer is empty.
func endOfContent(rd buffer.Reader) buffer.Position {
	last := rd.LineCount() - 1
	line := rd.Line(last)
	if len(line) == 0 {
		return buffer.NewPosition(last, 0)
	}
	return buffer.NewPosition(last, prevRuneStart(line, len(line)))
}
