package vim

import (
	"time"

	"github.com/google/uuid"

	"github.com/dshills/vimkit/internal/config"
	"github.com/dshills/vimkit/internal/engine/buffer"
	"github.com/dshills/vimkit/internal/engine/motion"
	"github.com/dshills/vimkit/internal/input/key"
)

// pageLines is the cursor travel of a full-page scroll when no screen
// geometry is available.
const pageLines = 20

// Engine interprets keystrokes for one buffer view. Keys arrive one at
// a time through HandleKey and are processed to completion before the
// next; the engine owns all session state and is not safe for
// concurrent use.
type Engine struct {
	id  string
	ctx *Context
	reg *Registry
	st  *State

	// pending is the key buffer of the sub-command being matched.
	pending []string

	// dotKeys records every key of the current command for dot-repeat.
	dotKeys      []string
	lastDot      []string
	capturingDot bool
	replaying    bool

	// bounded poll for declaration-style editor commands
	pollRetries  int
	pollInterval time.Duration

	// visual block insertion bookkeeping
	blockActive bool
	blockKind   BlockInsertKind
	blockTop    int
	blockBottom int
	blockCol    int
	blockTyped  string
}

// New returns an Engine over buf with the given options.
func New(buf *buffer.Memory, opts config.Options) *Engine {
	e := &Engine{
		id:           uuid.NewString(),
		ctx:          NewContext(buf, opts),
		st:           NewState(),
		pollRetries:  20,
		pollInterval: 10 * time.Millisecond,
	}
	if opts.StartInInsertMode {
		e.st.Mode = ModeInsert
	}
	e.reg = buildRegistry(e)
	return e
}

// ID returns the session identifier.
func (e *Engine) ID() string { return e.id }

// Mode returns the current mode.
func (e *Engine) Mode() Mode { return e.st.Mode }

// Cursor returns the current cursor position.
func (e *Engine) Cursor() buffer.Position { return e.st.Cursor }

// State exposes the session state for front ends and tests.
func (e *Engine) State() *State { return e.st }

// Context exposes the collaborators the engine executes against.
func (e *Engine) Context() *Context { return e.ctx }

// PendingKeys returns the keys of the partially typed command.
func (e *Engine) PendingKeys() []string {
	out := make([]string, 0, len(e.pending))
	return append(out, e.pending...)
}

// commandIdle reports whether no command prefix has been typed.
func (e *Engine) commandIdle() bool {
	r := e.st.Recorded
	return r.Count == 0 && r.OperatorCount == 0 && r.Operator == nil && r.Register == 0
}

func isEscape(token string) bool {
	return token == key.Escape || token == "<c-[>" || token == "<c-c>"
}

// HandleKey feeds one key token into the interpreter. Unmatched
// sequences are swallowed silently; errors come only from the external
// buffer collaborators, after which the engine is back in Normal mode.
func (e *Engine) HandleKey(token string) error {
	token = key.Normalize(token)

	switch e.st.Mode {
	case ModeInsert:
		return e.handleInsertKey(token)
	case ModeReplace:
		return e.handleReplaceKey(token)
	case ModeSearchInProgress:
		return e.handleSearchKey(token)
	case ModeVisualBlockInsert:
		return e.handleBlockInsertKey(token)
	}

	if isEscape(token) {
		e.cancel()
		e.syncSelection()
		return nil
	}

	if len(e.pending) == 0 && e.commandIdle() && !e.capturingDot {
		e.dotKeys = e.dotKeys[:0]
	}
	e.pending = append(e.pending, token)
	e.dotKeys = append(e.dotKeys, token)

	first := e.commandIdle() && len(e.pending) == 1
	a, status := e.reg.Match(e.pending, matchInput{
		mode:  e.st.Mode,
		first: first,
		state: e.st,
	})

	switch status {
	case MatchPartial:
		return nil
	case MatchNone:
		// Impossible sequence: discard and restart from empty.
		e.pending = nil
		e.st.ResetCommand()
		return nil
	}

	err := e.execute(a)
	if err != nil {
		// External failure interrupts the action; never leave the
		// session in a half-applied mode.
		e.pending = nil
		e.st.ResetCommand()
		e.st.Mode = ModeNormal
	}
	e.syncSelection()
	return err
}

// cancel abandons the in-progress parse with no side effects.
func (e *Engine) cancel() {
	e.pending = nil
	e.st.ResetCommand()
	if e.st.Mode.visualFamily() {
		e.st.Mode = ModeNormal
	}
}

// syncSelection mirrors cursor and visual anchor into the host buffer's
// selection.
func (e *Engine) syncSelection() {
	if e.st.Mode.visualFamily() {
		e.ctx.Buffer.SetSelection(e.st.Anchor, e.st.Cursor)
		return
	}
	e.ctx.Buffer.SetSelection(e.st.Cursor, e.st.Cursor)
}

// execute dispatches a fully matched action.
func (e *Engine) execute(a *Action) error {
	keys := e.pending
	e.pending = nil

	switch {
	case a.Prefix:
		return a.Command.Exec(e.ctx, e.st, keys)
	case a.Movement != nil:
		return e.executeMovement(a, keys)
	case a.Operator != nil:
		return e.executeOperator(a)
	default:
		return e.executeCommand(a, keys)
	}
}

// finishCommand resets accumulation and updates the dot-repeat buffer.
func (e *Engine) finishCommand(a *Action) {
	e.st.ResetCommand()
	if e.replaying || !a.Dot {
		return
	}
	switch e.st.Mode {
	case ModeInsert, ModeReplace, ModeVisualBlockInsert:
		// The command continues through typed text; capture the rest of
		// the keys until the mode is left.
		e.capturingDot = true
	default:
		e.lastDot = append([]string(nil), e.dotKeys...)
	}
}

// finishDotCapture closes an insert-family dot capture.
func (e *Engine) finishDotCapture() {
	if e.capturingDot && !e.replaying {
		e.lastDot = append([]string(nil), e.dotKeys...)
	}
	e.capturingDot = false
}

// runMotion executes a movement, iterating count times unless the
// motion consumes the count itself. Across iterations the last position
// wins; a failure on any iteration fails the whole motion.
func (e *Engine) runMotion(a *Action, keys []string, forOperator bool) Result {
	mv := a.Movement
	fn := mv.Move
	if forOperator && mv.MoveForOperator != nil {
		fn = mv.MoveForOperator
	}
	count := 1
	if !mv.TakesCount {
		count = e.st.Recorded.CombinedCount()
	}

	pos := e.st.Cursor
	var out Result
	for i := 0; i < count; i++ {
		res := fn(e.ctx, e.st, pos, keys)
		if res.Failed {
			return FailedAt(e.st.Cursor)
		}
		if res.Ranged {
			return res
		}
		out = res
		pos = res.Pos
	}
	return out
}

// executeMovement runs a bare motion or hands its range to the pending
// operator.
func (e *Engine) executeMovement(a *Action, keys []string) error {
	if e.st.Recorded.Operator != nil {
		return e.composeOperator(a, keys)
	}

	res := e.runMotion(a, keys, false)
	if res.Failed {
		// Failed motions are strict no-ops.
		e.st.ResetCommand()
		return nil
	}

	mv := a.Movement
	if res.Ranged {
		// A bare text object only occurs in visual mode: it becomes the
		// selection.
		if e.st.Mode.visualFamily() {
			e.st.Anchor = res.Start
			e.st.SetCursor(motion.Left(e.ctx.Buffer, res.Stop, true).ClampToContent(e.ctx.Buffer), false)
		}
		e.st.ResetCommand()
		return nil
	}

	p := res.Pos.ClampToContent(e.ctx.Buffer)
	switch {
	case mv.ToEOL:
		e.st.SetCursor(p, true)
		e.st.DesiredColumn = motion.ColumnEOL
	case mv.KeepsDesiredColumn:
		e.st.SetCursor(p, true)
	default:
		e.st.SetCursor(p, false)
	}
	e.st.ResetCommand()
	return nil
}

// changeWordQuirk reports whether change-word must act as
// change-to-word-end: cw and cW on a non-blank character.
func (e *Engine) changeWordQuirk(op *Action, a *Action) bool {
	if op.Name != "change" || (a.Name != "word" && a.Name != "WORD") {
		return false
	}
	line := e.ctx.Buffer.Line(e.st.Cursor.Line)
	c := e.st.Cursor.Character
	return c < len(line) && line[c] != ' ' && line[c] != '\t'
}

// composeOperator builds the operator's range from the motion and runs
// it. The count was distributed onto the motion by runMotion; operator
// and motion counts have already been multiplied.
func (e *Engine) composeOperator(a *Action, keys []string) error {
	op := e.st.Recorded.Operator
	mv := a.Movement

	if e.changeWordQuirk(op, a) {
		big := a.Name == "WORD"
		mv = &Movement{Move: wordMove(motion.WordEnd, big), Inclusive: true}
		a = &Action{Name: "wordEnd", Movement: mv}
	}

	res := e.runMotion(a, keys, true)
	if res.Failed {
		e.st.ResetCommand()
		return nil
	}

	var start, stop buffer.Position
	mode := RegisterCharacterWise

	if res.Ranged {
		start, stop = res.Start, res.Stop
		if res.RegisterMode != RegisterFromContext {
			mode = res.RegisterMode
		}
	} else {
		cur := e.st.Cursor
		p := res.Pos
		switch {
		case mv.Linewise:
			mode = RegisterLineWise
			sl, el := cur.Line, p.Line
			if sl > el {
				sl, el = el, sl
			}
			start = buffer.NewPosition(sl, 0)
			stop = buffer.NewPosition(el, len(e.ctx.Buffer.Line(el)))
		case p.After(cur):
			start, stop = cur, p
			if mv.Inclusive {
				stop = advance(e.ctx.Buffer, p)
			}
		case p.Before(cur):
			start, stop = p, cur
			if mv.Inclusive {
				// Symmetric inclusion: a backward jump still covers the
				// delimiter the cursor started on.
				stop = advance(e.ctx.Buffer, cur)
			}
		default:
			// Zero-width range: nothing to operate on.
			e.st.ResetCommand()
			return nil
		}
	}

	if err := op.Operator.Run(e.ctx, e.st, start, stop, mode); err != nil {
		return err
	}
	e.finishCommand(op)
	return nil
}

// executeOperator handles an operator keystroke: apply over a visual
// selection, complete a doubled trigger, or go pending.
func (e *Engine) executeOperator(a *Action) error {
	if e.st.Mode.visualFamily() {
		return e.applyVisualOperator(a)
	}

	// Any operator keystroke while one is pending acts as the doubled
	// trigger: dy takes the whole line, same as dd.
	if op := e.st.Recorded.Operator; op != nil {
		return e.runDoubledOperator(op)
	}

	// Go pending: a count typed so far belongs to the operator; the
	// motion accumulates its own.
	e.st.Recorded.Operator = a
	e.st.Recorded.OperatorCount = e.st.Recorded.Count
	e.st.Recorded.Count = 0
	return nil
}

// runDoubledOperator synthesizes the N-line range of dd, yy, cc, >>
// and <<, bypassing the motion path. cc starts at the first non-blank.
func (e *Engine) runDoubledOperator(a *Action) error {
	count := e.st.Recorded.CombinedCount()
	rd := e.ctx.Buffer
	sl := e.st.Cursor.Line
	el := sl + count - 1
	if max := rd.LineCount() - 1; el > max {
		el = max
	}

	start := buffer.NewPosition(sl, 0)
	if a.Operator.IndentAware {
		start = motion.FirstNonBlank(rd, start)
	}
	stop := buffer.NewPosition(el, len(rd.Line(el)))

	if err := a.Operator.Run(e.ctx, e.st, start, stop, RegisterLineWise); err != nil {
		return err
	}
	e.finishCommand(a)
	return nil
}

// applyVisualOperator runs the operator over the active selection and
// leaves visual mode.
func (e *Engine) applyVisualOperator(a *Action) error {
	anchor, cur := e.st.Anchor, e.st.Cursor
	var start, stop buffer.Position
	var mode RegisterMode

	switch e.st.Mode {
	case ModeVisualLine:
		mode = RegisterLineWise
		sl, el := anchor.Line, cur.Line
		if sl > el {
			sl, el = el, sl
		}
		start = buffer.NewPosition(sl, 0)
		stop = buffer.NewPosition(el, len(e.ctx.Buffer.Line(el)))
	case ModeVisualBlock:
		mode = RegisterBlockWise
		start, stop = anchor, cur
	default:
		mode = RegisterCharacterWise
		start, stop = buffer.Ordered(anchor, cur)
		stop = advance(e.ctx.Buffer, stop)
	}

	// The operator sees the visual mode (yank collapses the cursor to
	// the selection start) and may choose the next mode itself (change
	// enters Insert); otherwise the selection ends in Normal.
	if err := a.Operator.Run(e.ctx, e.st, start, stop, mode); err != nil {
		return err
	}
	if e.st.Mode.visualFamily() {
		e.st.Mode = ModeNormal
	}
	e.finishCommand(a)
	return nil
}

// executeCommand runs a complete command, count times when it opts in.
func (e *Engine) executeCommand(a *Action, keys []string) error {
	n := 1
	if a.Command.TakesCount {
		n = e.st.Recorded.CombinedCount()
	}
	for i := 0; i < n; i++ {
		if err := a.Command.Exec(e.ctx, e.st, keys); err != nil {
			return err
		}
	}
	e.finishCommand(a)
	return nil
}

// repeatLastCommand replays the last dot-repeatable command's keys as
// if freshly typed, substituting a fresh count when one was given
// before the dot.
func (e *Engine) repeatLastCommand() error {
	if len(e.lastDot) == 0 || e.replaying {
		return nil
	}
	keys := append([]string(nil), e.lastDot...)

	if n := e.st.Recorded.Count; n > 0 {
		i := 0
		for i < len(keys) && key.IsDigit(keys[i]) {
			i++
		}
		keys = append(countDigits(n), keys[i:]...)
	}
	e.st.ResetCommand()

	e.replaying = true
	defer func() { e.replaying = false }()
	for _, k := range keys {
		if err := e.HandleKey(k); err != nil {
			return err
		}
	}
	return nil
}

// countDigits renders n as key tokens.
func countDigits(n int) []string {
	if n <= 0 {
		return nil
	}
	var digits []string
	for n > 0 {
		digits = append([]string{string(rune('0' + n%10))}, digits...)
		n /= 10
	}
	return digits
}

// gotoDeclaration asks the host editor to jump to the declaration of
// the symbol at the cursor, then polls the selection a bounded number
// of times for the landing position.
func (e *Engine) gotoDeclaration() error {
	buf := e.ctx.Buffer
	_, before := buf.Selection()
	if err := buf.RunCommand(buffer.CommandDeclaration, nil); err != nil {
		return err
	}
	for i := 0; i < e.pollRetries; i++ {
		if _, active := buf.Selection(); active != before {
			e.st.SetCursor(active.Clamp(buf).ClampToContent(buf), false)
			return nil
		}
		time.Sleep(e.pollInterval)
	}
	return nil
}

// buildRegistry assembles the full catalog in priority order.
func buildRegistry(e *Engine) *Registry {
	r := NewRegistry()
	registerMotions(r)
	registerPrefixes(r)
	registerTextObjects(r)
	registerOperators(r)
	registerCommands(r, e)
	return r
}
