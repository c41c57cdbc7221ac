package vim

import (
	"unicode/utf8"

	"github.com/dshills/vimkit/internal/engine/buffer"
	"github.com/dshills/vimkit/internal/engine/match"
	"github.com/dshills/vimkit/internal/engine/motion"
)

// normalAndVisual is the mode set shared by almost every motion.
var normalAndVisual = []Mode{ModeNormal, ModeVisual, ModeVisualLine, ModeVisualBlock}

// advance returns the position one character past p, crossing to the
// next line start when p sits at or past end of line.
func advance(rd buffer.Reader, p buffer.Position) buffer.Position {
	line := rd.Line(p.Line)
	if p.Character < len(line) {
		_, size := utf8.DecodeRuneInString(line[p.Character:])
		next := p.Character + size
		if next <= len(line) {
			return p.WithCharacter(next)
		}
	}
	if p.Line < rd.LineCount()-1 {
		return buffer.NewPosition(p.Line+1, 0)
	}
	return p.WithCharacter(len(line))
}

// simpleMove wraps a pure position function as a MoveFunc.
func simpleMove(fn func(rd buffer.Reader, p buffer.Position) buffer.Position) MoveFunc {
	return func(ctx *Context, st *State, pos buffer.Position, keys []string) Result {
		return At(fn(ctx.Buffer, pos))
	}
}

// wordMove wraps a word motion with its big-word flag applied.
func wordMove(fn func(rd buffer.Reader, p buffer.Position, big bool) buffer.Position, big bool) MoveFunc {
	return func(ctx *Context, st *State, pos buffer.Position, keys []string) Result {
		return At(fn(ctx.Buffer, pos, big))
	}
}

// wordForOperator caps word-right at the current line's end: operators
// never pull the next line's leading word into their range.
func wordForOperator(big bool) MoveFunc {
	return func(ctx *Context, st *State, pos buffer.Position, keys []string) Result {
		rd := ctx.Buffer
		bare := motion.WordRight(rd, pos, big)
		if bare.Line != pos.Line || !bare.After(pos) {
			return At(buffer.NewPosition(pos.Line, len(rd.Line(pos.Line))))
		}
		if bare.Character >= len(rd.Line(bare.Line)) {
			return At(advance(rd, bare))
		}
		return At(bare)
	}
}

func verticalMove(delta int) MoveFunc {
	return func(ctx *Context, st *State, pos buffer.Position, keys []string) Result {
		return At(motion.Vertical(ctx.Buffer, pos, delta, st.desired()))
	}
}

// gotoLine implements G and gg: the count is an absolute line number,
// not a repeat. Motion and operator counts still multiply, so 2d3G
// targets line 6.
func gotoLine(defaultLast bool) MoveFunc {
	return func(ctx *Context, st *State, pos buffer.Position, keys []string) Result {
		n := 0
		if r := st.Recorded; r.Count > 0 || r.OperatorCount > 0 {
			n = r.CombinedCount()
		}
		var line int
		switch {
		case n > 0:
			line = n - 1
		case defaultLast:
			line = ctx.Buffer.LineCount() - 1
		default:
			line = 0
		}
		return At(motion.GotoLine(ctx.Buffer, line))
	}
}

// gotoByte implements go: the count is a 1-based byte offset into the
// flattened buffer.
func gotoByte(ctx *Context, st *State, pos buffer.Position, keys []string) Result {
	n := 0
	if r := st.Recorded; r.Count > 0 || r.OperatorCount > 0 {
		n = r.CombinedCount()
	}
	return At(motion.ByteOffset(ctx.Buffer, n))
}

// findMove implements f/F/t/T. The target character is the second key
// token; the whole count picks the Nth occurrence.
func findMove(forward, till bool) MoveFunc {
	return func(ctx *Context, st *State, pos buffer.Position, keys []string) Result {
		target, _ := utf8.DecodeRuneInString(keys[len(keys)-1])
		count := st.Recorded.CombinedCount()
		st.lastFind = &findState{target: target, forward: forward, till: till}
		return runFind(ctx, pos, target, count, forward, till)
	}
}

// repeatFindMove implements ; and , over the remembered f/F/t/T.
func repeatFindMove(reverse bool) MoveFunc {
	return func(ctx *Context, st *State, pos buffer.Position, keys []string) Result {
		f := st.lastFind
		if f == nil {
			return FailedAt(pos)
		}
		forward := f.forward
		if reverse {
			forward = !forward
		}
		return runFind(ctx, pos, f.target, st.Recorded.CombinedCount(), forward, f.till)
	}
}

func runFind(ctx *Context, pos buffer.Position, target rune, count int, forward, till bool) Result {
	var p buffer.Position
	var ok bool
	if till {
		p, ok = motion.Till(ctx.Buffer, pos, target, count, forward)
	} else {
		p, ok = motion.Find(ctx.Buffer, pos, target, count, forward)
	}
	if !ok {
		return FailedAt(pos)
	}
	return At(p)
}

// percentMove jumps between matching brackets, seeking right on the
// current line for the first bracket when the cursor is not on one.
func percentMove(ctx *Context, st *State, pos buffer.Position, keys []string) Result {
	start, _, ok := match.BracketOnLine(ctx.Buffer, pos)
	if !ok {
		return FailedAt(pos)
	}
	end, ok := match.Pair(ctx.Buffer, start)
	if !ok {
		return FailedAt(pos)
	}
	return At(end)
}

func sectionMove(forward bool, boundary byte) MoveFunc {
	return func(ctx *Context, st *State, pos buffer.Position, keys []string) Result {
		if forward {
			return At(motion.SectionForward(ctx.Buffer, pos, boundary))
		}
		return At(motion.SectionBackward(ctx.Buffer, pos, boundary))
	}
}

// markMove jumps to a mark: backtick lands on the exact position, '
// on the first non-blank of the mark's line. Positions are stored
// verbatim, so a mark past the current buffer end fails here.
func markMove(exact bool) MoveFunc {
	return func(ctx *Context, st *State, pos buffer.Position, keys []string) Result {
		name, _ := utf8.DecodeRuneInString(keys[len(keys)-1])
		p, ok := ctx.Marks.Get(name)
		if !ok || p.Line >= ctx.Buffer.LineCount() {
			return FailedAt(pos)
		}
		if exact {
			return At(p.Clamp(ctx.Buffer))
		}
		return At(motion.GotoLine(ctx.Buffer, p.Line))
	}
}

// searchRepeatMove implements n and N over the last committed search.
func searchRepeatMove(reverse bool) MoveFunc {
	return func(ctx *Context, st *State, pos buffer.Position, keys []string) Result {
		last := st.LastSearch
		if last == nil || last.Pattern == "" {
			return FailedAt(pos)
		}
		s := *last
		if reverse {
			if s.Direction == SearchForward {
				s.Direction = SearchBackward
			} else {
				s.Direction = SearchForward
			}
		}
		p, ok := s.NextMatch(ctx, pos)
		if !ok {
			return FailedAt(pos)
		}
		return At(p)
	}
}

// wordSearchMove implements * and #: seed a search from the word under
// the cursor and advance until a whole-word occurrence.
func wordSearchMove(forward bool) MoveFunc {
	return func(ctx *Context, st *State, pos buffer.Position, keys []string) Result {
		seed := wordAt(ctx.Buffer, pos)
		if seed == "" {
			return FailedAt(pos)
		}
		dir := SearchForward
		if !forward {
			dir = SearchBackward
		}
		s := &SearchState{Direction: dir, Pattern: seed, Start: pos}
		st.LastSearch = s
		p, ok := seekWholeWord(ctx, s, pos)
		if !ok {
			return FailedAt(pos)
		}
		return At(p)
	}
}

// registerMotions populates r with every cursor motion, in priority
// order. The literal 0 motion precedes the <number> count prefix so a
// bare 0 is line-begin while 10 accumulates.
func registerMotions(r *Registry) {
	countInactive := func(st *State) bool {
		return st.Recorded.Count == 0
	}

	r.Register(
		&Action{Name: "lineBegin", Keys: []string{"0"}, Modes: normalAndVisual, When: countInactive,
			Movement: &Movement{Move: simpleMove(func(rd buffer.Reader, p buffer.Position) buffer.Position {
				return motion.LineBegin(p)
			})}},
	)

	left := simpleMove(func(rd buffer.Reader, p buffer.Position) buffer.Position {
		return motion.Left(rd, p, false)
	})
	right := simpleMove(func(rd buffer.Reader, p buffer.Position) buffer.Position {
		return motion.Right(rd, p, false)
	})
	for _, k := range []string{"h", "<left>"} {
		r.Register(&Action{Name: "left", Keys: []string{k}, Modes: normalAndVisual, Movement: &Movement{Move: left}})
	}
	for _, k := range []string{"l", "<right>"} {
		r.Register(&Action{Name: "right", Keys: []string{k}, Modes: normalAndVisual, Movement: &Movement{Move: right}})
	}
	for _, k := range []string{"j", "<down>"} {
		r.Register(&Action{Name: "down", Keys: []string{k}, Modes: normalAndVisual,
			Movement: &Movement{Move: verticalMove(1), Linewise: true, KeepsDesiredColumn: true}})
	}
	for _, k := range []string{"k", "<up>"} {
		r.Register(&Action{Name: "up", Keys: []string{k}, Modes: normalAndVisual,
			Movement: &Movement{Move: verticalMove(-1), Linewise: true, KeepsDesiredColumn: true}})
	}

	r.Register(
		&Action{Name: "word", Keys: []string{"w"}, Modes: normalAndVisual,
			Movement: &Movement{Move: wordMove(motion.WordRight, false), MoveForOperator: wordForOperator(false)}},
		&Action{Name: "WORD", Keys: []string{"W"}, Modes: normalAndVisual,
			Movement: &Movement{Move: wordMove(motion.WordRight, true), MoveForOperator: wordForOperator(true)}},
		&Action{Name: "wordBack", Keys: []string{"b"}, Modes: normalAndVisual,
			Movement: &Movement{Move: wordMove(motion.WordLeft, false)}},
		&Action{Name: "WORDBack", Keys: []string{"B"}, Modes: normalAndVisual,
			Movement: &Movement{Move: wordMove(motion.WordLeft, true)}},
		&Action{Name: "wordEnd", Keys: []string{"e"}, Modes: normalAndVisual,
			Movement: &Movement{Move: wordMove(motion.WordEnd, false), Inclusive: true}},
		&Action{Name: "WORDEnd", Keys: []string{"E"}, Modes: normalAndVisual,
			Movement: &Movement{Move: wordMove(motion.WordEnd, true), Inclusive: true}},
		&Action{Name: "wordEndBack", Keys: []string{"g", "e"}, Modes: normalAndVisual,
			Movement: &Movement{Move: wordMove(motion.WordEndBackward, false), Inclusive: true}},
		&Action{Name: "WORDEndBack", Keys: []string{"g", "E"}, Modes: normalAndVisual,
			Movement: &Movement{Move: wordMove(motion.WordEndBackward, true), Inclusive: true}},
	)

	r.Register(
		&Action{Name: "firstNonBlank", Keys: []string{"^"}, Modes: normalAndVisual,
			Movement: &Movement{Move: simpleMove(motion.FirstNonBlank)}},
		&Action{Name: "lineEnd", Keys: []string{"$"}, Modes: normalAndVisual,
			Movement: &Movement{Move: simpleMove(motion.LineEnd), ToEOL: true}},
		&Action{Name: "lastNonBlank", Keys: []string{"g", "_"}, Modes: normalAndVisual,
			Movement: &Movement{Move: simpleMove(motion.LastNonBlank), Inclusive: true}},
		&Action{Name: "gotoLast", Keys: []string{"G"}, Modes: normalAndVisual,
			Movement: &Movement{Move: gotoLine(true), Linewise: true, TakesCount: true}},
		&Action{Name: "gotoFirst", Keys: []string{"g", "g"}, Modes: normalAndVisual,
			Movement: &Movement{Move: gotoLine(false), Linewise: true, TakesCount: true}},
		&Action{Name: "gotoByte", Keys: []string{"g", "o"}, Modes: normalAndVisual,
			Movement: &Movement{Move: gotoByte, TakesCount: true}},
	)

	r.Register(
		&Action{Name: "find", Keys: []string{"f", "<character>"}, Modes: normalAndVisual,
			Movement: &Movement{Move: findMove(true, false), Inclusive: true, TakesCount: true}},
		&Action{Name: "findBack", Keys: []string{"F", "<character>"}, Modes: normalAndVisual,
			Movement: &Movement{Move: findMove(false, false), TakesCount: true}},
		&Action{Name: "till", Keys: []string{"t", "<character>"}, Modes: normalAndVisual,
			Movement: &Movement{Move: findMove(true, true), Inclusive: true, TakesCount: true}},
		&Action{Name: "tillBack", Keys: []string{"T", "<character>"}, Modes: normalAndVisual,
			Movement: &Movement{Move: findMove(false, true), TakesCount: true}},
		&Action{Name: "repeatFind", Keys: []string{";"}, Modes: normalAndVisual,
			Movement: &Movement{Move: repeatFindMove(false), Inclusive: true, TakesCount: true}},
		&Action{Name: "repeatFindBack", Keys: []string{","}, Modes: normalAndVisual,
			Movement: &Movement{Move: repeatFindMove(true), TakesCount: true}},
	)

	r.Register(
		&Action{Name: "paragraphForward", Keys: []string{"}"}, Modes: normalAndVisual,
			Movement: &Movement{Move: simpleMove(motion.ParagraphForward)}},
		&Action{Name: "paragraphBack", Keys: []string{"{"}, Modes: normalAndVisual,
			Movement: &Movement{Move: simpleMove(motion.ParagraphBackward)}},
		&Action{Name: "sentenceForward", Keys: []string{")"}, Modes: normalAndVisual,
			Movement: &Movement{Move: simpleMove(motion.SentenceForward)}},
		&Action{Name: "sentenceBack", Keys: []string{"("}, Modes: normalAndVisual,
			Movement: &Movement{Move: simpleMove(motion.SentenceBackward)}},
		&Action{Name: "matchPair", Keys: []string{"%"}, Modes: normalAndVisual,
			Movement: &Movement{Move: percentMove, Inclusive: true}},
		&Action{Name: "sectionForward", Keys: []string{"]", "]"}, Modes: normalAndVisual,
			Movement: &Movement{Move: sectionMove(true, '{'), Linewise: true}},
		&Action{Name: "sectionBack", Keys: []string{"[", "["}, Modes: normalAndVisual,
			Movement: &Movement{Move: sectionMove(false, '{'), Linewise: true}},
		&Action{Name: "sectionEndForward", Keys: []string{"]", "["}, Modes: normalAndVisual,
			Movement: &Movement{Move: sectionMove(true, '}'), Linewise: true}},
		&Action{Name: "sectionEndBack", Keys: []string{"[", "]"}, Modes: normalAndVisual,
			Movement: &Movement{Move: sectionMove(false, '}'), Linewise: true}},
	)

	r.Register(
		&Action{Name: "markJumpExact", Keys: []string{"`", "<character>"}, Modes: normalAndVisual,
			Movement: &Movement{Move: markMove(true)}},
		&Action{Name: "markJumpLine", Keys: []string{"'", "<character>"}, Modes: normalAndVisual,
			Movement: &Movement{Move: markMove(false), Linewise: true}},
	)

	r.Register(
		&Action{Name: "searchNext", Keys: []string{"n"}, Modes: normalAndVisual,
			Movement: &Movement{Move: searchRepeatMove(false)}},
		&Action{Name: "searchPrev", Keys: []string{"N"}, Modes: normalAndVisual,
			Movement: &Movement{Move: searchRepeatMove(true)}},
		&Action{Name: "searchWord", Keys: []string{"*"}, Modes: normalAndVisual,
			Movement: &Movement{Move: wordSearchMove(true)}},
		&Action{Name: "searchWordBack", Keys: []string{"#"}, Modes: normalAndVisual,
			Movement: &Movement{Move: wordSearchMove(false)}},
	)
}
