package match

// QuoteScan indexes the unescaped quote characters of a single line and
// assigns each an opening or closing role by alternation, the way string
// literals pair up in source text.
type QuoteScan struct {
	offsets []int
	opening []bool
}

// ScanQuotes builds a QuoteScan for the given quote character. A quote
// preceded by a backslash is ignored; the backslash itself may be escaped.
func ScanQuotes(line string, quote byte) *QuoteScan {
	s := &QuoteScan{}
	escaped := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		if escaped {
			escaped = false
			continue
		}
		if c == '\\' {
			escaped = true
			continue
		}
		if c == quote {
			s.opening = append(s.opening, len(s.offsets)%2 == 0)
			s.offsets = append(s.offsets, i)
		}
	}
	return s
}

// Opening returns the nearest opening quote at or before col, or -1.
func (s *QuoteScan) Opening(col int) int {
	for i := len(s.offsets) - 1; i >= 0; i-- {
		if s.offsets[i] <= col && s.opening[i] {
			return s.offsets[i]
		}
	}
	return -1
}

// Closing returns the nearest closing quote at or after col, or -1.
func (s *QuoteScan) Closing(col int) int {
	for i := 0; i < len(s.offsets); i++ {
		if s.offsets[i] >= col && !s.opening[i] {
			return s.offsets[i]
		}
	}
	return -1
}

// Quote finds the quoted span of the cursor line around col. When the
// cursor sits before the first pair the pair ahead is used, matching the
// seeking behavior of quote text objects. Returned offsets are the quote
// characters themselves; ok is false when no balanced pair exists.
func Quote(line string, col int, quote byte) (int, int, bool) {
	s := ScanQuotes(line, quote)
	open := s.Opening(col)
	if open < 0 {
		// Cursor is ahead of every quote: seek forward to the next pair.
		for i := 0; i+1 < len(s.offsets); i += 2 {
			if s.offsets[i] >= col {
				return s.offsets[i], s.offsets[i+1], true
			}
		}
		return 0, 0, false
	}
	close := s.Closing(open + 1)
	if close < 0 {
		return 0, 0, false
	}
	return open, close, true
}
