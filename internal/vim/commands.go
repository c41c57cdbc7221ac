package vim

import (
	"strings"
	"unicode/utf8"

	"github.com/dshills/vimkit/internal/engine/buffer"
	"github.com/dshills/vimkit/internal/engine/motion"
)

// registerPrefixes populates r with the command-extending prefix
// actions: count digits and register targeting. Both leave the
// in-progress command open.
func registerPrefixes(r *Registry) {
	r.Register(
		&Action{Name: "count", Keys: []string{"<number>"}, Modes: normalAndVisual, Prefix: true,
			Command: &Command{Exec: func(ctx *Context, st *State, keys []string) error {
				d := int(keys[0][0] - '0')
				n := st.Recorded.Count*10 + d
				if n > CountMax {
					n = CountMax
				}
				st.Recorded.Count = n
				return nil
			}}},
		&Action{Name: "selectRegister", Keys: []string{`"`, "<character>"}, Modes: normalAndVisual, Prefix: true,
			Command: &Command{Exec: func(ctx *Context, st *State, keys []string) error {
				name, _ := utf8.DecodeRuneInString(keys[1])
				st.Recorded.Register = name
				return nil
			}}},
	)
}

// enterInsert is the shared tail of every insert-entry command.
func enterInsert(ctx *Context, st *State, at buffer.Position) {
	ctx.History.Checkpoint(ctx.Buffer, st.Cursor)
	st.SetCursor(at, false)
	st.Mode = ModeInsert
}

// openLine inserts a fresh line below or above the cursor, carrying the
// current line's indent, and enters insert on it.
func openLine(below bool) func(ctx *Context, st *State, keys []string) error {
	return func(ctx *Context, st *State, keys []string) error {
		ctx.History.Checkpoint(ctx.Buffer, st.Cursor)
		rd := ctx.Buffer
		indent := leadingBlank(rd.Line(st.Cursor.Line))

		if below {
			at := buffer.NewPosition(st.Cursor.Line, len(rd.Line(st.Cursor.Line)))
			if err := ctx.Buffer.Insert(at, "\n"+indent); err != nil {
				return err
			}
			st.SetCursor(buffer.NewPosition(st.Cursor.Line+1, len(indent)), false)
		} else {
			at := buffer.NewPosition(st.Cursor.Line, 0)
			if err := ctx.Buffer.Insert(at, indent+"\n"); err != nil {
				return err
			}
			st.SetCursor(buffer.NewPosition(st.Cursor.Line, len(indent)), false)
		}
		st.Mode = ModeInsert
		return nil
	}
}

// deleteChars implements x and X: count characters on the cursor line,
// never crossing line ends.
func deleteChars(forward bool) func(ctx *Context, st *State, keys []string) error {
	return func(ctx *Context, st *State, keys []string) error {
		rd := ctx.Buffer
		line := rd.Line(st.Cursor.Line)
		if len(line) == 0 {
			return nil
		}
		count := st.Recorded.CombinedCount()
		ctx.History.Checkpoint(ctx.Buffer, st.Cursor)

		if forward {
			stop := st.Cursor
			for i := 0; i < count && stop.Character < len(line); i++ {
				_, size := utf8.DecodeRuneInString(line[stop.Character:])
				stop = stop.WithCharacter(stop.Character + size)
			}
			return deleteSpan(ctx, st, st.Cursor, stop, RegisterCharacterWise, true)
		}

		start := st.Cursor
		for i := 0; i < count && start.Character > 0; i++ {
			start = motion.Left(rd, start, false)
		}
		if start.Equal(st.Cursor) {
			return nil
		}
		return deleteSpan(ctx, st, start, st.Cursor, RegisterCharacterWise, true)
	}
}

// substituteChars implements s: delete count characters, then insert.
// The checkpoint comes from the change operator underneath.
func substituteChars(ctx *Context, st *State, keys []string) error {
	line := ctx.Buffer.Line(st.Cursor.Line)
	stop := st.Cursor
	count := st.Recorded.CombinedCount()
	for i := 0; i < count && stop.Character < len(line); i++ {
		_, size := utf8.DecodeRuneInString(line[stop.Character:])
		stop = stop.WithCharacter(stop.Character + size)
	}
	return opChange(ctx, st, st.Cursor, stop, RegisterCharacterWise)
}

// replaceChars implements r<char>: overwrite count characters with the
// argument, without entering Replace mode. Too few characters on the
// line makes it a no-op.
func replaceChars(ctx *Context, st *State, keys []string) error {
	ch := keys[len(keys)-1]
	line := ctx.Buffer.Line(st.Cursor.Line)
	count := st.Recorded.CombinedCount()

	stop := st.Cursor
	for i := 0; i < count; i++ {
		if stop.Character >= len(line) {
			return nil
		}
		_, size := utf8.DecodeRuneInString(line[stop.Character:])
		stop = stop.WithCharacter(stop.Character + size)
	}
	ctx.History.Checkpoint(ctx.Buffer, st.Cursor)
	if err := ctx.Buffer.Replace(st.Cursor, stop, strings.Repeat(ch, count)); err != nil {
		return err
	}
	st.SetCursor(buffer.NewPosition(st.Cursor.Line, st.Cursor.Character+len(ch)*(count-1)), false)
	return nil
}

// toggleCaseChar implements ~: toggle case under the cursor and step
// right.
func toggleCaseChar(ctx *Context, st *State, keys []string) error {
	line := ctx.Buffer.Line(st.Cursor.Line)
	if st.Cursor.Character >= len(line) {
		return nil
	}
	ctx.History.Checkpoint(ctx.Buffer, st.Cursor)
	_, size := utf8.DecodeRuneInString(line[st.Cursor.Character:])
	stop := st.Cursor.WithCharacter(st.Cursor.Character + size)
	text := ctx.Buffer.Text(st.Cursor, stop)
	if err := ctx.Buffer.Replace(st.Cursor, stop, applyCase(caseToggle, text)); err != nil {
		return err
	}
	st.SetCursor(motion.Right(ctx.Buffer, stop.WithCharacter(stop.Character-size), false).ClampToContent(ctx.Buffer), false)
	return nil
}

// joinLines implements J: join count lines (at least two) with a single
// space, trimming the next line's leading blanks.
func joinLines(ctx *Context, st *State, keys []string) error {
	rd := ctx.Buffer
	count := st.Recorded.CombinedCount()
	if count < 2 {
		count = 2
	}
	if st.Cursor.Line >= rd.LineCount()-1 {
		return nil
	}
	ctx.History.Checkpoint(ctx.Buffer, st.Cursor)

	joins := count - 1
	for i := 0; i < joins && st.Cursor.Line < rd.LineCount()-1; i++ {
		ln := st.Cursor.Line
		line := rd.Line(ln)
		next := strings.TrimLeft(rd.Line(ln+1), " \t")
		sep := " "
		if len(line) == 0 || len(next) == 0 {
			sep = ""
		}
		if err := ctx.Buffer.Replace(
			buffer.NewPosition(ln, len(line)),
			buffer.NewPosition(ln+1, len(rd.Line(ln+1))-len(next)),
			sep,
		); err != nil {
			return err
		}
		st.SetCursor(buffer.NewPosition(ln, len(line)).ClampToContent(rd), false)
	}
	return nil
}

// put implements p and P, honoring the register's mode.
func put(after bool) func(ctx *Context, st *State, keys []string) error {
	return func(ctx *Context, st *State, keys []string) error {
		name := st.Recorded.Register
		if name == 0 {
			name = '"'
		}
		reg, ok := ctx.Registers.Get(name)
		if !ok || (reg.Content == "" && len(reg.Block) == 0) {
			return nil
		}
		ctx.History.Checkpoint(ctx.Buffer, st.Cursor)
		count := st.Recorded.CombinedCount()
		rd := ctx.Buffer
		cur := st.Cursor

		switch reg.Mode {
		case RegisterLineWise:
			text := strings.TrimSuffix(strings.Repeat(reg.Content, count), "\n")
			if after {
				at := buffer.NewPosition(cur.Line, len(rd.Line(cur.Line)))
				if err := ctx.Buffer.Insert(at, "\n"+text); err != nil {
					return err
				}
				st.SetCursor(motion.GotoLine(rd, cur.Line+1), false)
			} else {
				if err := ctx.Buffer.Insert(buffer.NewPosition(cur.Line, 0), text+"\n"); err != nil {
					return err
				}
				st.SetCursor(motion.GotoLine(rd, cur.Line), false)
			}
			return nil

		case RegisterBlockWise:
			col := cur.Character
			if after {
				col++
			}
			for i, cell := range reg.Block {
				ln := cur.Line + i
				for ln >= rd.LineCount() {
					end := buffer.NewPosition(rd.LineCount()-1, len(rd.Line(rd.LineCount()-1)))
					if err := ctx.Buffer.Insert(end, "\n"); err != nil {
						return err
					}
				}
				c := col
				if n := len(rd.Line(ln)); c > n {
					c = n
				}
				if err := ctx.Buffer.Insert(buffer.NewPosition(ln, c), cell); err != nil {
					return err
				}
			}
			st.SetCursor(buffer.NewPosition(cur.Line, col).ClampToContent(rd), false)
			return nil

		default:
			text := strings.Repeat(reg.Content, count)
			at := cur
			if after && len(rd.Line(cur.Line)) > 0 {
				at = motion.Right(rd, cur, false)
			}
			if err := ctx.Buffer.Insert(at, text); err != nil {
				return err
			}
			// Cursor lands on the last character of the pasted text.
			end := at.WithCharacter(at.Character + len(text))
			if i := strings.LastIndexByte(text, '\n'); i >= 0 {
				end = buffer.NewPosition(at.Line+strings.Count(text, "\n"), len(text)-i-1)
			}
			st.SetCursor(motion.Left(rd, end, false).ClampToContent(rd), false)
			return nil
		}
	}
}

func undoCmd(ctx *Context, st *State, keys []string) error {
	if p, ok := ctx.History.Undo(ctx.Buffer, st.Cursor); ok {
		st.SetCursor(p.Clamp(ctx.Buffer).ClampToContent(ctx.Buffer), false)
	}
	return nil
}

func redoCmd(ctx *Context, st *State, keys []string) error {
	if p, ok := ctx.History.Redo(ctx.Buffer, st.Cursor); ok {
		st.SetCursor(p.Clamp(ctx.Buffer).ClampToContent(ctx.Buffer), false)
	}
	return nil
}

// scrollCmd moves the cursor by a page fraction and notifies the host
// editor so the viewport can follow.
func scrollCmd(lines int) func(ctx *Context, st *State, keys []string) error {
	return func(ctx *Context, st *State, keys []string) error {
		_ = ctx.Buffer.RunCommand(buffer.CommandScroll, map[string]any{"lines": lines})
		st.SetCursor(motion.Vertical(ctx.Buffer, st.Cursor, lines, st.desired()).ClampToContent(ctx.Buffer), true)
		return nil
	}
}

// visualToggle enters the given visual mode, or leaves it when already
// active.
func visualToggle(mode Mode) func(ctx *Context, st *State, keys []string) error {
	return func(ctx *Context, st *State, keys []string) error {
		if st.Mode == mode {
			st.Mode = ModeNormal
			return nil
		}
		if !st.Mode.visualFamily() {
			st.Anchor = st.Cursor
		}
		st.Mode = mode
		return nil
	}
}

// registerCommands populates r with the complete commands. Some close
// over the engine: dot-repeat, block insertion and the declaration
// jump need interpreter state beyond Context.
func registerCommands(r *Registry, e *Engine) {
	normalOnly := []Mode{ModeNormal}

	r.Register(
		&Action{Name: "insert", Keys: []string{"i"}, Modes: normalOnly, MustBeFirstKey: true, Dot: true,
			Command: &Command{Exec: func(ctx *Context, st *State, keys []string) error {
				enterInsert(ctx, st, st.Cursor)
				return nil
			}}},
		&Action{Name: "insertLineBegin", Keys: []string{"I"}, Modes: normalOnly, MustBeFirstKey: true, Dot: true,
			Command: &Command{Exec: func(ctx *Context, st *State, keys []string) error {
				enterInsert(ctx, st, motion.FirstNonBlank(ctx.Buffer, st.Cursor))
				return nil
			}}},
		&Action{Name: "append", Keys: []string{"a"}, Modes: normalOnly, MustBeFirstKey: true, Dot: true,
			Command: &Command{Exec: func(ctx *Context, st *State, keys []string) error {
				at := st.Cursor
				if len(ctx.Buffer.Line(at.Line)) > 0 {
					at = motion.Right(ctx.Buffer, at, false)
				}
				enterInsert(ctx, st, at)
				return nil
			}}},
		&Action{Name: "appendLineEnd", Keys: []string{"A"}, Modes: normalOnly, MustBeFirstKey: true, Dot: true,
			Command: &Command{Exec: func(ctx *Context, st *State, keys []string) error {
				enterInsert(ctx, st, motion.LineEnd(ctx.Buffer, st.Cursor))
				return nil
			}}},
		&Action{Name: "openBelow", Keys: []string{"o"}, Modes: normalOnly, Dot: true,
			Command: &Command{Exec: openLine(true)}},
		&Action{Name: "openAbove", Keys: []string{"O"}, Modes: normalOnly, Dot: true,
			Command: &Command{Exec: openLine(false)}},
		&Action{Name: "replaceMode", Keys: []string{"R"}, Modes: normalOnly, Dot: true,
			Command: &Command{Exec: func(ctx *Context, st *State, keys []string) error {
				ctx.History.Checkpoint(ctx.Buffer, st.Cursor)
				st.Replace = &ReplaceState{Start: st.Cursor}
				st.Mode = ModeReplace
				return nil
			}}},
	)

	r.Register(
		&Action{Name: "visual", Keys: []string{"v"}, Modes: normalAndVisual,
			Command: &Command{Exec: visualToggle(ModeVisual)}},
		&Action{Name: "visualLine", Keys: []string{"V"}, Modes: normalAndVisual,
			Command: &Command{Exec: visualToggle(ModeVisualLine)}},
		&Action{Name: "visualBlock", Keys: []string{"<c-v>"}, Modes: normalAndVisual,
			Command: &Command{Exec: visualToggle(ModeVisualBlock)}},
	)

	// Block-mode I/A start a rectangular insertion; they must precede
	// nothing else since the text-object gate keeps plain i/a away from
	// VisualBlock only when no operator is pending.
	blockInsert := func(kind BlockInsertKind) func(ctx *Context, st *State, keys []string) error {
		return func(ctx *Context, st *State, keys []string) error {
			ctx.History.Checkpoint(ctx.Buffer, st.Cursor)
			top, bottom := st.Anchor.Line, st.Cursor.Line
			if top > bottom {
				top, bottom = bottom, top
			}
			left, right := st.Anchor.Character, st.Cursor.Character
			if left > right {
				left, right = right, left
			}
			col := left
			if kind == BlockAppend {
				col = right + 1
			}
			e.blockActive = true
			e.blockKind = kind
			e.blockTop, e.blockBottom, e.blockCol = top, bottom, col
			e.blockTyped = ""
			st.Recorded.BlockInsert = kind

			c := col
			if n := len(ctx.Buffer.Line(top)); c > n {
				c = n
			}
			st.SetCursor(buffer.NewPosition(top, c), false)
			st.Mode = ModeVisualBlockInsert
			return nil
		}
	}
	r.Register(
		&Action{Name: "blockInsert", Keys: []string{"I"}, Modes: []Mode{ModeVisualBlock}, Dot: true,
			Command: &Command{Exec: blockInsert(BlockInsert)}},
		&Action{Name: "blockAppend", Keys: []string{"A"}, Modes: []Mode{ModeVisualBlock}, Dot: true,
			Command: &Command{Exec: blockInsert(BlockAppend)}},
	)

	r.Register(
		&Action{Name: "deleteChar", Keys: []string{"x"}, Modes: normalOnly, Dot: true,
			Command: &Command{Exec: deleteChars(true)}},
		&Action{Name: "deleteCharBack", Keys: []string{"X"}, Modes: normalOnly, Dot: true,
			Command: &Command{Exec: deleteChars(false)}},
		&Action{Name: "substitute", Keys: []string{"s"}, Modes: normalOnly, Dot: true,
			Command: &Command{Exec: substituteChars}},
		&Action{Name: "substituteLine", Keys: []string{"S"}, Modes: normalOnly, Dot: true,
			Command: &Command{Exec: func(ctx *Context, st *State, keys []string) error {
				sl := st.Cursor.Line
				el := sl + st.Recorded.CombinedCount() - 1
				if max := ctx.Buffer.LineCount() - 1; el > max {
					el = max
				}
				return opChange(ctx, st,
					motion.FirstNonBlank(ctx.Buffer, buffer.NewPosition(sl, 0)),
					buffer.NewPosition(el, len(ctx.Buffer.Line(el))), RegisterLineWise)
			}}},
		&Action{Name: "deleteToEnd", Keys: []string{"D"}, Modes: normalOnly, Dot: true,
			Command: &Command{Exec: func(ctx *Context, st *State, keys []string) error {
				stop := buffer.NewPosition(st.Cursor.Line, len(ctx.Buffer.Line(st.Cursor.Line)))
				if stop.Equal(st.Cursor) {
					return nil
				}
				return opDelete(ctx, st, st.Cursor, stop, RegisterCharacterWise)
			}}},
		&Action{Name: "changeToEnd", Keys: []string{"C"}, Modes: normalOnly, Dot: true,
			Command: &Command{Exec: func(ctx *Context, st *State, keys []string) error {
				stop := buffer.NewPosition(st.Cursor.Line, len(ctx.Buffer.Line(st.Cursor.Line)))
				return opChange(ctx, st, st.Cursor, stop, RegisterCharacterWise)
			}}},
		&Action{Name: "yankLine", Keys: []string{"Y"}, Modes: normalOnly,
			Command: &Command{Exec: func(ctx *Context, st *State, keys []string) error {
				sl := st.Cursor.Line
				el := sl + st.Recorded.CombinedCount() - 1
				if max := ctx.Buffer.LineCount() - 1; el > max {
					el = max
				}
				return opYank(ctx, st, buffer.NewPosition(sl, 0),
					buffer.NewPosition(el, len(ctx.Buffer.Line(el))), RegisterLineWise)
			}}},
		&Action{Name: "replaceChar", Keys: []string{"r", "<character>"}, Modes: normalOnly, Dot: true,
			Command: &Command{Exec: replaceChars}},
		&Action{Name: "toggleCase", Keys: []string{"~"}, Modes: normalOnly, Dot: true,
			Command: &Command{Exec: toggleCaseChar, TakesCount: true}},
		&Action{Name: "join", Keys: []string{"J"}, Modes: normalOnly, Dot: true,
			Command: &Command{Exec: joinLines}},
	)

	r.Register(
		&Action{Name: "putAfter", Keys: []string{"p"}, Modes: normalOnly, Dot: true,
			Command: &Command{Exec: put(true)}},
		&Action{Name: "putBefore", Keys: []string{"P"}, Modes: normalOnly, Dot: true,
			Command: &Command{Exec: put(false)}},
		&Action{Name: "undo", Keys: []string{"u"}, Modes: normalOnly,
			Command: &Command{Exec: undoCmd, TakesCount: true}},
		&Action{Name: "redo", Keys: []string{"<c-r>"}, Modes: normalOnly,
			Command: &Command{Exec: redoCmd, TakesCount: true}},
		&Action{Name: "setMark", Keys: []string{"m", "<character>"}, Modes: normalOnly,
			Command: &Command{Exec: func(ctx *Context, st *State, keys []string) error {
				name, _ := utf8.DecodeRuneInString(keys[1])
				ctx.Marks.Set(name, st.Cursor)
				return nil
			}}},
		&Action{Name: "repeat", Keys: []string{"."}, Modes: normalOnly,
			Command: &Command{Exec: func(ctx *Context, st *State, keys []string) error {
				return e.repeatLastCommand()
			}}},
	)

	search := func(dir SearchDirection) func(ctx *Context, st *State, keys []string) error {
		return func(ctx *Context, st *State, keys []string) error {
			st.Search = &SearchState{Direction: dir, Start: st.Cursor}
			st.Mode = ModeSearchInProgress
			return nil
		}
	}
	r.Register(
		&Action{Name: "searchForward", Keys: []string{"/"}, Modes: normalOnly,
			Command: &Command{Exec: search(SearchForward)}},
		&Action{Name: "searchBackward", Keys: []string{"?"}, Modes: normalOnly,
			Command: &Command{Exec: search(SearchBackward)}},
	)

	r.Register(
		&Action{Name: "pageDown", Keys: []string{"<c-f>"}, Modes: normalAndVisual,
			Command: &Command{Exec: scrollCmd(pageLines)}},
		&Action{Name: "pageUp", Keys: []string{"<c-b>"}, Modes: normalAndVisual,
			Command: &Command{Exec: scrollCmd(-pageLines)}},
		&Action{Name: "halfPageDown", Keys: []string{"<c-d>"}, Modes: normalAndVisual,
			Command: &Command{Exec: scrollCmd(pageLines / 2)}},
		&Action{Name: "halfPageUp", Keys: []string{"<c-u>"}, Modes: normalAndVisual,
			Command: &Command{Exec: scrollCmd(-pageLines / 2)}},
		&Action{Name: "gotoDeclaration", Keys: []string{"g", "d"}, Modes: normalOnly,
			Command: &Command{Exec: func(ctx *Context, st *State, keys []string) error {
				return e.gotoDeclaration()
			}}},
	)
}
