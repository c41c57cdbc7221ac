package vim

import (
	"github.com/dshills/vimkit/internal/engine/buffer"
	"github.com/dshills/vimkit/internal/engine/match"
	"github.com/dshills/vimkit/internal/engine/motion"
)

// Text objects match only while an operator is pending or a visual
// selection is active; bare i and a in Normal mode stay insert/append
// commands via the MustBeFirstKey gate on those.
var objectModes = []Mode{ModeNormal, ModeVisual, ModeVisualLine, ModeVisualBlock}

func objectGate(st *State) bool {
	return st.Recorded.Operator != nil || st.Mode.visualFamily()
}

// wordObject implements iw/aw: the word under the cursor, with aw
// pulling in the trailing whitespace run.
func wordObject(around, big bool) MoveFunc {
	return func(ctx *Context, st *State, pos buffer.Position, keys []string) Result {
		rd := ctx.Buffer
		line := rd.Line(pos.Line)
		if len(line) == 0 {
			return FailedAt(pos)
		}
		p := pos.ClampToContent(rd)

		start := motion.WordLeft(rd, motion.Right(rd, p, false), big)
		if start.Line != p.Line || start.After(p) {
			start = buffer.NewPosition(p.Line, 0)
		}
		end := motion.WordEnd(rd, motion.Left(rd, p, false), big)
		if end.Line != p.Line {
			end = buffer.NewPosition(p.Line, len(line))
		}
		stop := advance(rd, end)
		if stop.Line != p.Line {
			stop = buffer.NewPosition(p.Line, len(line))
		}
		if around {
			for stop.Character < len(line) && (line[stop.Character] == ' ' || line[stop.Character] == '\t') {
				stop = stop.WithCharacter(stop.Character + 1)
			}
		}
		return Span(start, stop, RegisterCharacterWise)
	}
}

// pairObject implements i(/a( and friends over the bracket matcher.
func pairObject(open rune, around bool) MoveFunc {
	return func(ctx *Context, st *State, pos buffer.Position, keys []string) Result {
		start, end, ok := match.Surrounding(ctx.Buffer, pos, open)
		if !ok {
			return FailedAt(pos)
		}
		if around {
			return Span(start, advance(ctx.Buffer, end), RegisterCharacterWise)
		}
		return Span(advance(ctx.Buffer, start), end, RegisterCharacterWise)
	}
}

// quoteObject implements i"/a" style objects on the cursor line.
func quoteObject(quote byte, around bool) MoveFunc {
	return func(ctx *Context, st *State, pos buffer.Position, keys []string) Result {
		line := ctx.Buffer.Line(pos.Line)
		open, close, ok := match.Quote(line, pos.Character, quote)
		if !ok {
			return FailedAt(pos)
		}
		if around {
			return Span(pos.WithCharacter(open), pos.WithCharacter(close+1), RegisterCharacterWise)
		}
		return Span(pos.WithCharacter(open+1), pos.WithCharacter(close), RegisterCharacterWise)
	}
}

// tagObject implements it/at on the cursor line.
func tagObject(around bool) MoveFunc {
	return func(ctx *Context, st *State, pos buffer.Position, keys []string) Result {
		span, ok := match.Tag(ctx.Buffer.Line(pos.Line), pos.Character)
		if !ok {
			return FailedAt(pos)
		}
		if around {
			return Span(pos.WithCharacter(span.OuterStart), pos.WithCharacter(span.OuterEnd), RegisterCharacterWise)
		}
		return Span(pos.WithCharacter(span.InnerStart), pos.WithCharacter(span.InnerEnd), RegisterCharacterWise)
	}
}

// paragraphObject implements ip/ap over blank-line boundaries.
func paragraphObject(around bool) MoveFunc {
	return func(ctx *Context, st *State, pos buffer.Position, keys []string) Result {
		rd := ctx.Buffer
		blank := len(rd.Line(pos.Line)) == 0

		start := pos.Line
		for start > 0 && (len(rd.Line(start-1)) == 0) == blank {
			start--
		}
		end := pos.Line
		for end < rd.LineCount()-1 && (len(rd.Line(end+1)) == 0) == blank {
			end++
		}
		if around {
			for end < rd.LineCount()-1 && (len(rd.Line(end+1)) == 0) != blank {
				end++
			}
		}
		return Span(buffer.NewPosition(start, 0), buffer.NewPosition(end, len(rd.Line(end))), RegisterLineWise)
	}
}

// registerTextObjects populates r with the i/a object pairs.
func registerTextObjects(r *Registry) {
	type obj struct {
		name string
		keys []string
		fn   func(around bool) MoveFunc
	}

	objects := []obj{
		{"word", []string{"w"}, func(a bool) MoveFunc { return wordObject(a, false) }},
		{"WORD", []string{"W"}, func(a bool) MoveFunc { return wordObject(a, true) }},
		{"paren", []string{"(", ")", "b"}, func(a bool) MoveFunc { return pairObject('(', a) }},
		{"brace", []string{"{", "}", "B"}, func(a bool) MoveFunc { return pairObject('{', a) }},
		{"bracket", []string{"[", "]"}, func(a bool) MoveFunc { return pairObject('[', a) }},
		{"angle", []string{"<", ">"}, func(a bool) MoveFunc { return pairObject('<', a) }},
		{"doubleQuote", []string{`"`}, func(a bool) MoveFunc { return quoteObject('"', a) }},
		{"singleQuote", []string{"'"}, func(a bool) MoveFunc { return quoteObject('\'', a) }},
		{"backtick", []string{"`"}, func(a bool) MoveFunc { return quoteObject('`', a) }},
		{"tag", []string{"t"}, tagObject},
		{"paragraph", []string{"p"}, paragraphObject},
	}

	for _, o := range objects {
		for _, k := range o.keys {
			r.Register(
				&Action{Name: "inner" + o.name, Keys: []string{"i", k}, Modes: objectModes, When: objectGate,
					Movement: &Movement{Move: o.fn(false)}},
				&Action{Name: "around" + o.name, Keys: []string{"a", k}, Modes: objectModes, When: objectGate,
					Movement: &Movement{Move: o.fn(true)}},
			)
		}
	}
}
