package vim

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/vimkit/internal/engine/buffer"
	"github.com/dshills/vimkit/internal/engine/motion"
)

// SearchDirection is the scan direction of a search.
type SearchDirection uint8

const (
	// SearchForward scans toward the end of the buffer.
	SearchForward SearchDirection = iota

	// SearchBackward scans toward the start.
	SearchBackward
)

// SearchState is an in-progress or committed search: its direction, the
// pattern (mutated live while typing), and the cursor snapshot taken
// when the search began.
type SearchState struct {
	Direction SearchDirection
	Pattern   string
	Start     buffer.Position
}

// foldCase decides case-insensitive matching from the options: smartcase
// re-enables sensitivity when the pattern carries an upper-case rune.
func foldCase(ctx *Context, pattern string) bool {
	opts := ctx.Options.Get()
	if !opts.IgnoreCase {
		return false
	}
	if opts.SmartCase && strings.IndexFunc(pattern, unicode.IsUpper) >= 0 {
		return false
	}
	return true
}

// indexOn finds pattern within line honoring case folding; from bounds
// the search region.
func searchLine(line, pattern string, fold bool) []int {
	if fold {
		line = strings.ToLower(line)
		pattern = strings.ToLower(pattern)
	}
	var hits []int
	off := 0
	for {
		i := strings.Index(line[off:], pattern)
		if i < 0 {
			return hits
		}
		hits = append(hits, off+i)
		off += i + 1
	}
}

// NextMatch returns the first occurrence of s.Pattern strictly after
// (forward) or before (backward) from. With wrapscan the scan continues
// from the other end of the buffer; ok is false when the pattern is
// empty or absent.
func (s *SearchState) NextMatch(ctx *Context, from buffer.Position) (buffer.Position, bool) {
	if s.Pattern == "" {
		return from, false
	}
	rd := ctx.Buffer
	fold := foldCase(ctx, s.Pattern)
	wrap := ctx.Options.Get().WrapScan
	total := rd.LineCount()

	if s.Direction == SearchForward {
		passes := total
		if wrap {
			passes = total + 1
		}
		for i := 0; i <= passes; i++ {
			ln := from.Line + i
			if ln >= total {
				if !wrap {
					break
				}
				ln -= total
			}
			for _, col := range searchLine(rd.Line(ln), s.Pattern, fold) {
				if ln == from.Line && i == 0 && col <= from.Character {
					continue
				}
				return buffer.NewPosition(ln, col), true
			}
		}
		return from, false
	}

	passes := total
	if wrap {
		passes = total + 1
	}
	for i := 0; i <= passes; i++ {
		ln := from.Line - i
		if ln < 0 {
			if !wrap {
				break
			}
			ln += total
		}
		hits := searchLine(rd.Line(ln), s.Pattern, fold)
		for j := len(hits) - 1; j >= 0; j-- {
			col := hits[j]
			if ln == from.Line && i == 0 && col >= from.Character {
				continue
			}
			return buffer.NewPosition(ln, col), true
		}
	}
	return from, false
}

// wordAt returns the word-class run under p, or "" on whitespace.
func wordAt(rd buffer.Reader, p buffer.Position) string {
	line := rd.Line(p.Line)
	if p.Character >= len(line) {
		return ""
	}
	r, _ := utf8.DecodeRuneInString(line[p.Character:])
	if motion.ClassOf(r) != motion.ClassWord {
		return ""
	}
	start := p.Character
	for start > 0 {
		prev := prevRune(line, start)
		pr, _ := utf8.DecodeRuneInString(line[prev:])
		if motion.ClassOf(pr) != motion.ClassWord {
			break
		}
		start = prev
	}
	end := p.Character
	for end < len(line) {
		er, size := utf8.DecodeRuneInString(line[end:])
		if motion.ClassOf(er) != motion.ClassWord {
			break
		}
		end += size
	}
	return line[start:end]
}

// seekWholeWord advances through matches of seed until one whose
// word-at-cursor equals seed again, so a hit inside a longer identifier
// is skipped. The scan is bounded by the match count.
func seekWholeWord(ctx *Context, s *SearchState, from buffer.Position) (buffer.Position, bool) {
	pos := from
	seen := make(map[buffer.Position]bool)
	for {
		next, ok := s.NextMatch(ctx, pos)
		if !ok || seen[next] {
			return from, false
		}
		seen[next] = true
		if wordAt(ctx.Buffer, next) == s.Pattern {
			return next, true
		}
		pos = next
	}
}

func prevRune(s string, off int) int {
	if off <= 0 {
		return 0
	}
	off--
	for off > 0 && !utf8.RuneStart(s[off]) {
		off--
	}
	return off
}
