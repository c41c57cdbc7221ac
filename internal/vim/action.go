package vim

import "github.com/dshills/vimkit/internal/engine/buffer"

// MoveFunc computes a motion outcome from the current position. keys is
// the full trigger sequence, so wildcard motions like f<character> can
// read their argument.
type MoveFunc func(ctx *Context, st *State, pos buffer.Position, keys []string) Result

// Movement is cursor repositioning. Executed bare it moves the cursor;
// executed under a pending operator it supplies the operator's range.
type Movement struct {
	// Move is the single-step motion.
	Move MoveFunc

	// MoveForOperator, when set, replaces Move while an operator is
	// pending. Motions widen or cap their end boundary here.
	MoveForOperator MoveFunc

	// Inclusive extends the range one character past the landing
	// position when the motion targets an operator (f, e, %).
	Inclusive bool

	// Linewise makes the motion operate on whole lines under an
	// operator and in visual range conversion (j, k, G, gg, ').
	Linewise bool

	// KeepsDesiredColumn leaves the sticky column untouched (j, k).
	KeepsDesiredColumn bool

	// ToEOL pins the sticky column to end-of-line ($).
	ToEOL bool

	// TakesCount means the motion consumes the whole count itself
	// (absolute line numbers, Nth-occurrence finds) instead of being
	// re-invoked count times.
	TakesCount bool
}

// Command is an immediately-complete action: mode switches, inserts,
// scrolls, undo, put.
type Command struct {
	// Exec runs the command once.
	Exec func(ctx *Context, st *State, keys []string) error

	// TakesCount re-invokes Exec count times. Commands are count-unaware
	// unless they opt in.
	TakesCount bool
}

// Operator consumes an explicit range and mutates the buffer. It never
// runs without a range: one arrives from a following motion, a doubled
// trigger, or the active visual selection.
type Operator struct {
	// Run applies the operator over the half-open span [start, stop).
	Run func(ctx *Context, st *State, start, stop buffer.Position, mode RegisterMode) error

	// IndentAware makes the doubled trigger start at the first non-blank
	// instead of column 0 (cc).
	IndentAware bool
}

// Action is one entry of the catalog: a trigger pattern, its gates, and
// exactly one of the three behavior kinds.
type Action struct {
	// Name identifies the action for recording and debugging.
	Name string

	// Keys is the trigger pattern. Tokens are literals or the wildcards
	// <number>, <character>, <any>.
	Keys []string

	// Modes lists the modes the action is valid in.
	Modes []Mode

	// MustBeFirstKey restricts the action to the start of a fresh
	// command: no count, operator or register prefix typed yet.
	MustBeFirstKey bool

	// Dot marks the action as replayable by dot-repeat.
	Dot bool

	// Prefix marks an action that extends the current command (count
	// digits, register targeting) rather than completing it.
	Prefix bool

	// When, if set, further gates applicability on live state.
	When func(st *State) bool

	Movement *Movement
	Command  *Command
	Operator *Operator
}

// validIn reports whether the action applies in mode.
func (a *Action) validIn(mode Mode) bool {
	for _, m := range a.Modes {
		if m == mode {
			return true
		}
	}
	return false
}
