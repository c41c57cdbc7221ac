package motion

import (
	"unicode"
	"unicode/utf8"

	"github.com/dshills/vimkit/internal/engine/buffer"
)

// isSentenceTerminator reports whether r ends a sentence.
func isSentenceTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// isSentenceClosing reports whether r may trail a terminator before the
// whitespace that separates sentences (closing quotes and brackets).
func isSentenceClosing(r rune) bool {
	switch r {
	case ')', ']', '"', '\'':
		return true
	}
	return false
}

// SentenceForward returns the start of the next sentence. A sentence ends
// at . ! or ?, optionally followed by closing quotes or brackets, then
// whitespace or end of paragraph. Blank lines are sentence boundaries.
func SentenceForward(rd buffer.Reader, p buffer.Position) buffer.Position {
	text := flatten(rd)
	off := offsetOf(rd, p)
	n := len(text)

	for off < n {
		r, size := utf8.DecodeRuneInString(text[off:])

		// A blank line is its own sentence boundary.
		if r == '\n' && off+size < n && text[off+size] == '\n' {
			return positionAt(rd, off+size)
		}

		if isSentenceTerminator(r) {
			end := off + size
			for end < n {
				c, s := utf8.DecodeRuneInString(text[end:])
				if !isSentenceClosing(c) {
					break
				}
				end += s
			}
			// The terminator must be followed by whitespace or EOL.
			if end >= n {
				return endOfContent(rd)
			}
			c, _ := utf8.DecodeRuneInString(text[end:])
			if unicode.IsSpace(c) {
				start := skipForwardSpace(text, end)
				if start > offsetOf(rd, p) {
					return positionAt(rd, start)
				}
			}
		}
		off += size
	}
	return endOfContent(rd)
}

// SentenceBackward returns the start of the current sentence, or of the
// previous sentence when already at a sentence start.
func SentenceBackward(rd buffer.Reader, p buffer.Position) buffer.Position {
	text := flatten(rd)
	limit := offsetOf(rd, p)

	// Collect sentence starts from the top and take the last one before
	// the cursor. Sentence scans are line-local in practice, so the
	// forward pass is cheap enough.
	start := 0
	prev := 0
	for {
		next := nextSentenceStartFrom(text, start)
		if next <= start || next >= limit {
			if start < limit {
				prev = start
			}
			break
		}
		prev = start
		start = next
	}
	if start < limit {
		return positionAt(rd, start)
	}
	return positionAt(rd, prev)
}

// nextSentenceStartFrom finds the first sentence start strictly after off.
func nextSentenceStartFrom(text string, off int) int {
	n := len(text)
	for off < n {
		r, size := utf8.DecodeRuneInString(text[off:])

		if r == '\n' && off+size < n && text[off+size] == '\n' {
			return skipForwardSpace(text, off+size)
		}

		if isSentenceTerminator(r) {
			end := off + size
			for end < n {
				c, s := utf8.DecodeRuneInString(text[end:])
				if !isSentenceClosing(c) {
					break
				}
				end += s
			}
			if end >= n {
				return n
			}
			c, _ := utf8.DecodeRuneInString(text[end:])
			if unicode.IsSpace(c) {
				return skipForwardSpace(text, end)
			}
		}
		off += size
	}
	return n
}

// skipForwardSpace advances past whitespace, including newlines.
func skipForwardSpace(text string, off int) int {
	n := len(text)
	for off < n {
		r, size := utf8.DecodeRuneInString(text[off:])
		if !unicode.IsSpace(r) {
			break
		}
		off += size
	}
	return off
}
