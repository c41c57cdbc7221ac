package match

import "strings"

// TagSpan describes a matched tag pair on a single line, as byte offsets.
// Inner covers the content between the tags; Outer includes the tags
// themselves. Both ranges are half-open.
type TagSpan struct {
	InnerStart int
	InnerEnd   int
	OuterStart int
	OuterEnd   int
}

// tagToken is one <...> run found while scanning a line.
type tagToken struct {
	name    string
	start   int // offset of '<'
	end     int // offset just past '>'
	closing bool
}

// scanTags tokenizes every well-formed tag on the line. Self-closing tags
// are dropped since they can never enclose the cursor.
func scanTags(line string) []tagToken {
	var toks []tagToken
	for i := 0; i < len(line); i++ {
		if line[i] != '<' {
			continue
		}
		gt := strings.IndexByte(line[i:], '>')
		if gt < 0 {
			break
		}
		end := i + gt + 1
		body := line[i+1 : end-1]
		if strings.HasSuffix(body, "/") {
			i = end - 1
			continue
		}
		closing := strings.HasPrefix(body, "/")
		if closing {
			body = body[1:]
		}
		name := body
		if sp := strings.IndexAny(name, " \t"); sp >= 0 {
			name = name[:sp]
		}
		if name != "" {
			toks = append(toks, tagToken{name: name, start: i, end: end, closing: closing})
		}
		i = end - 1
	}
	return toks
}

// Tag finds the innermost open/close tag pair around col on the line. A
// cursor inside either tag counts as enclosed. ok is false when no pair
// surrounds the cursor.
func Tag(line string, col int) (TagSpan, bool) {
	toks := scanTags(line)

	best := TagSpan{}
	found := false
	var stack []tagToken
	for _, tok := range toks {
		if !tok.closing {
			stack = append(stack, tok)
			continue
		}
		// Unwind to the nearest open tag of the same name.
		for i := len(stack) - 1; i >= 0; i-- {
			if stack[i].name != tok.name {
				continue
			}
			open := stack[i]
			stack = stack[:i]
			if open.start <= col && col < tok.end {
				span := TagSpan{
					InnerStart: open.end,
					InnerEnd:   tok.start,
					OuterStart: open.start,
					OuterEnd:   tok.end,
				}
				// Keep the tightest enclosing pair.
				if !found || span.OuterStart >= best.OuterStart {
					best = span
					found = true
				}
			}
			break
		}
	}
	return best, found
}
