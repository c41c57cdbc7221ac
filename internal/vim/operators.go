package vim

import (
	"strings"
	"unicode"

	"github.com/dshills/vimkit/internal/engine/buffer"
	"github.com/dshills/vimkit/internal/engine/motion"
)

// lineSpan converts an arbitrary span to the inclusive line interval it
// touches.
func lineSpan(start, stop buffer.Position) (int, int) {
	sl, el := start.Line, stop.Line
	if stop.Character == 0 && el > sl {
		el--
	}
	return sl, el
}

// linesText joins whole lines sl..el with a trailing newline, the
// line-wise register format.
func linesText(rd buffer.Reader, sl, el int) string {
	var b strings.Builder
	for ln := sl; ln <= el; ln++ {
		b.WriteString(rd.Line(ln))
		b.WriteByte('\n')
	}
	return b.String()
}

// deleteLines removes whole lines sl..el. When the range reaches the
// final line the deletion swallows the trailing newline by retargeting
// the start to the previous line's end.
func deleteLines(ctx *Context, sl, el int) error {
	rd := ctx.Buffer
	last := rd.LineCount() - 1
	switch {
	case el < last:
		return ctx.Buffer.Delete(buffer.NewPosition(sl, 0), buffer.NewPosition(el+1, 0))
	case sl > 0:
		return ctx.Buffer.Delete(buffer.NewPosition(sl-1, len(rd.Line(sl-1))), buffer.NewPosition(el, len(rd.Line(el))))
	default:
		return ctx.Buffer.Delete(buffer.NewPosition(0, 0), buffer.NewPosition(el, len(rd.Line(el))))
	}
}

// blockCells returns the per-line sub-ranges of the rectangle spanned
// by the two corners, each clamped to its own line's length.
func blockCells(rd buffer.Reader, a, b buffer.Position) []struct{ Line, Left, Right int } {
	top, bottom := a.Line, b.Line
	if top > bottom {
		top, bottom = bottom, top
	}
	left, right := a.Character, b.Character
	if left > right {
		left, right = right, left
	}
	var cells []struct{ Line, Left, Right int }
	for ln := top; ln <= bottom; ln++ {
		n := len(rd.Line(ln))
		l, r := left, right+1
		if l > n {
			l = n
		}
		if r > n {
			r = n
		}
		cells = append(cells, struct{ Line, Left, Right int }{ln, l, r})
	}
	return cells
}

// deleteSpan is the shared delete path: records the removed text into
// the register store, applies the edit, and places the cursor.
func deleteSpan(ctx *Context, st *State, start, stop buffer.Position, mode RegisterMode, yank bool) error {
	start, stop = buffer.Ordered(start, stop)

	switch mode {
	case RegisterLineWise:
		sl, el := lineSpan(start, stop)
		if yank {
			reg := Register{Content: linesText(ctx.Buffer, sl, el), Mode: RegisterLineWise}
			ctx.Registers.RecordDelete(st.Recorded.Register, reg, false)
		}
		if err := deleteLines(ctx, sl, el); err != nil {
			return err
		}
		line := sl
		if max := ctx.Buffer.LineCount() - 1; line > max {
			line = max
		}
		st.SetCursor(motion.GotoLine(ctx.Buffer, line), false)
		return nil

	case RegisterBlockWise:
		cells := blockCells(ctx.Buffer, start, stop)
		if yank {
			reg := Register{Mode: RegisterBlockWise}
			for _, c := range cells {
				reg.Block = append(reg.Block, ctx.Buffer.Line(c.Line)[c.Left:c.Right])
			}
			ctx.Registers.RecordDelete(st.Recorded.Register, reg, false)
		}
		for _, c := range cells {
			if err := ctx.Buffer.Delete(buffer.NewPosition(c.Line, c.Left), buffer.NewPosition(c.Line, c.Right)); err != nil {
				return err
			}
		}
		st.SetCursor(buffer.NewPosition(cells[0].Line, cells[0].Left).ClampToContent(ctx.Buffer), false)
		return nil

	default:
		if yank {
			text := ctx.Buffer.Text(start, stop)
			small := start.Line == stop.Line
			ctx.Registers.RecordDelete(st.Recorded.Register, Register{Content: text, Mode: RegisterCharacterWise}, small)
		}
		if err := ctx.Buffer.Delete(start, stop); err != nil {
			return err
		}
		st.SetCursor(start.ClampToContent(ctx.Buffer), false)
		return nil
	}
}

func opDelete(ctx *Context, st *State, start, stop buffer.Position, mode RegisterMode) error {
	ctx.History.Checkpoint(ctx.Buffer, st.Cursor)
	return deleteSpan(ctx, st, start, stop, mode, true)
}

func opYank(ctx *Context, st *State, start, stop buffer.Position, mode RegisterMode) error {
	start, stop = buffer.Ordered(start, stop)

	var reg Register
	switch mode {
	case RegisterLineWise:
		sl, el := lineSpan(start, stop)
		reg = Register{Content: linesText(ctx.Buffer, sl, el), Mode: RegisterLineWise}
	case RegisterBlockWise:
		reg = Register{Mode: RegisterBlockWise}
		for _, c := range blockCells(ctx.Buffer, start, stop) {
			reg.Block = append(reg.Block, ctx.Buffer.Line(c.Line)[c.Left:c.Right])
		}
	default:
		reg = Register{Content: ctx.Buffer.Text(start, stop), Mode: RegisterCharacterWise}
	}
	ctx.Registers.RecordYank(st.Recorded.Register, reg)

	// Yank never moves the Normal-mode cursor; a visual yank collapses
	// to the selection start.
	if st.Mode.visualFamily() {
		st.SetCursor(start.ClampToContent(ctx.Buffer), false)
	}
	return nil
}

func opChange(ctx *Context, st *State, start, stop buffer.Position, mode RegisterMode) error {
	ctx.History.Checkpoint(ctx.Buffer, st.Cursor)
	start, stop = buffer.Ordered(start, stop)

	if mode == RegisterLineWise {
		sl, el := lineSpan(start, stop)
		indent := leadingBlank(ctx.Buffer.Line(sl))
		ctx.Registers.RecordDelete(st.Recorded.Register, Register{Content: linesText(ctx.Buffer, sl, el), Mode: RegisterLineWise}, false)
		if err := ctx.Buffer.Replace(buffer.NewPosition(sl, 0), buffer.NewPosition(el, len(ctx.Buffer.Line(el))), indent); err != nil {
			return err
		}
		st.SetCursor(buffer.NewPosition(sl, len(indent)), false)
		st.Mode = ModeInsert
		return nil
	}

	if mode == RegisterBlockWise {
		cells := blockCells(ctx.Buffer, start, stop)
		for _, c := range cells {
			if err := ctx.Buffer.Delete(buffer.NewPosition(c.Line, c.Left), buffer.NewPosition(c.Line, c.Right)); err != nil {
				return err
			}
		}
		st.SetCursor(buffer.NewPosition(cells[0].Line, cells[0].Left), false)
		st.Mode = ModeVisualBlockInsert
		return nil
	}

	// An already-empty line has nothing to delete; change just enters
	// insert.
	if len(ctx.Buffer.Line(start.Line)) > 0 {
		if err := deleteSpan(ctx, st, start, stop, RegisterCharacterWise, false); err != nil {
			return err
		}
	}
	// Insertion happens at the deletion start, past the remaining last
	// character when the range reached end of line.
	st.SetCursor(start, false)
	st.Mode = ModeInsert
	return nil
}

// leadingBlank returns the leading whitespace of line.
func leadingBlank(line string) string {
	for i, r := range line {
		if !unicode.IsSpace(r) {
			return line[:i]
		}
	}
	return line
}

// opIndent shifts whole lines by one indent step in the given
// direction.
func opIndent(dir int) func(ctx *Context, st *State, start, stop buffer.Position, mode RegisterMode) error {
	return func(ctx *Context, st *State, start, stop buffer.Position, mode RegisterMode) error {
		ctx.History.Checkpoint(ctx.Buffer, st.Cursor)
		start, stop = buffer.Ordered(start, stop)
		sl, el := lineSpan(start, stop)
		indent := ctx.Options.Get().Indent()

		for ln := sl; ln <= el; ln++ {
			line := ctx.Buffer.Line(ln)
			if dir > 0 {
				if len(line) == 0 {
					continue
				}
				if err := ctx.Buffer.Insert(buffer.NewPosition(ln, 0), indent); err != nil {
					return err
				}
				continue
			}
			if err := ctx.Buffer.Replace(buffer.NewPosition(ln, 0), buffer.NewPosition(ln, len(line)), dedent(line, ctx.Options.Get().ShiftWidth)); err != nil {
				return err
			}
		}
		st.SetCursor(motion.GotoLine(ctx.Buffer, sl), false)
		return nil
	}
}

// dedent removes one indent level: a leading tab, or up to width
// leading spaces.
func dedent(line string, width int) string {
	if strings.HasPrefix(line, "\t") {
		return line[1:]
	}
	if width <= 0 {
		width = 4
	}
	n := 0
	for n < width && n < len(line) && line[n] == ' ' {
		n++
	}
	return line[n:]
}

// caseKind selects the transformation of a case operator.
type caseKind uint8

const (
	caseLower caseKind = iota
	caseUpper
	caseToggle
)

func applyCase(kind caseKind, s string) string {
	switch kind {
	case caseLower:
		return strings.ToLower(s)
	case caseUpper:
		return strings.ToUpper(s)
	default:
		return strings.Map(func(r rune) rune {
			switch {
			case unicode.IsLower(r):
				return unicode.ToUpper(r)
			case unicode.IsUpper(r):
				return unicode.ToLower(r)
			}
			return r
		}, s)
	}
}

// opCase transforms letter case over the range without touching
// registers.
func opCase(kind caseKind) func(ctx *Context, st *State, start, stop buffer.Position, mode RegisterMode) error {
	return func(ctx *Context, st *State, start, stop buffer.Position, mode RegisterMode) error {
		ctx.History.Checkpoint(ctx.Buffer, st.Cursor)
		start, stop = buffer.Ordered(start, stop)

		if mode == RegisterLineWise {
			sl, el := lineSpan(start, stop)
			start = buffer.NewPosition(sl, 0)
			stop = buffer.NewPosition(el, len(ctx.Buffer.Line(el)))
		}
		text := ctx.Buffer.Text(start, stop)
		if err := ctx.Buffer.Replace(start, stop, applyCase(kind, text)); err != nil {
			return err
		}
		st.SetCursor(start.ClampToContent(ctx.Buffer), false)
		return nil
	}
}

// opFormat hands the line range to the host editor's formatter; its
// effect is observed through subsequent reads.
func opFormat(ctx *Context, st *State, start, stop buffer.Position, mode RegisterMode) error {
	ctx.History.Checkpoint(ctx.Buffer, st.Cursor)
	if err := ctx.Buffer.RunCommand(buffer.CommandFormat, nil); err != nil {
		return err
	}
	start, _ = buffer.Ordered(start, stop)
	st.SetCursor(motion.GotoLine(ctx.Buffer, start.Line), false)
	return nil
}

// registerOperators populates r with the operator actions.
func registerOperators(r *Registry) {
	r.Register(
		&Action{Name: "delete", Keys: []string{"d"}, Modes: normalAndVisual, Dot: true,
			Operator: &Operator{Run: opDelete}},
		&Action{Name: "change", Keys: []string{"c"}, Modes: normalAndVisual, Dot: true,
			Operator: &Operator{Run: opChange, IndentAware: true}},
		&Action{Name: "yank", Keys: []string{"y"}, Modes: normalAndVisual,
			Operator: &Operator{Run: opYank}},
		&Action{Name: "indent", Keys: []string{">"}, Modes: normalAndVisual, Dot: true,
			Operator: &Operator{Run: opIndent(1)}},
		&Action{Name: "outdent", Keys: []string{"<"}, Modes: normalAndVisual, Dot: true,
			Operator: &Operator{Run: opIndent(-1)}},
		&Action{Name: "format", Keys: []string{"="}, Modes: normalAndVisual,
			Operator: &Operator{Run: opFormat}},
		&Action{Name: "lowercase", Keys: []string{"g", "u"}, Modes: normalAndVisual, Dot: true,
			Operator: &Operator{Run: opCase(caseLower)}},
		&Action{Name: "uppercase", Keys: []string{"g", "U"}, Modes: normalAndVisual, Dot: true,
			Operator: &Operator{Run: opCase(caseUpper)}},
		&Action{Name: "togglecase", Keys: []string{"g", "~"}, Modes: normalAndVisual, Dot: true,
			Operator: &Operator{Run: opCase(caseToggle)}},
	)
}
