package vim

import (
	"github.com/dshills/vimkit/internal/engine/buffer"
	"github.com/dshills/vimkit/internal/engine/motion"
)

// BlockInsertKind selects which side of a block selection text is
// inserted on.
type BlockInsertKind uint8

const (
	// BlockInsert puts the cursor before the block's left column.
	BlockInsert BlockInsertKind = iota

	// BlockAppend puts the cursor after the block's right column.
	BlockAppend
)

// RecordedState accumulates the pieces of the command currently being
// typed. It is reset whenever a complete, non-prefix action finishes.
type RecordedState struct {
	// Count is the numeric prefix typed so far; 0 means unspecified.
	Count int

	// OperatorCount is a count typed before the pending operator, kept
	// separately so operator and motion counts multiply.
	OperatorCount int

	// Operator is the pending operator awaiting its range, if any.
	Operator *Action

	// Register is the pending " target; 0 means the default register.
	Register rune

	// BlockInsert selects insert versus append for block-mode insertion.
	BlockInsert BlockInsertKind
}

// CombinedCount folds the motion and operator counts into one repeat
// count, clamped to [1, CountMax]. Counts multiply when both are given.
func (r RecordedState) CombinedCount() int {
	n := r.Count
	if n <= 0 {
		n = 1
	}
	if r.OperatorCount > 0 {
		n *= r.OperatorCount
	}
	return ClampCount(n)
}

// CountMax is the hard ceiling on any repeat count.
const CountMax = 99999

// ClampCount restricts n to [1, CountMax], with 0 meaning unspecified
// and defaulting to 1.
func ClampCount(n int) int {
	if n <= 0 {
		return 1
	}
	if n > CountMax {
		return CountMax
	}
	return n
}

// ReplaceState snapshots what Replace mode has overwritten so backspace
// can restore the original characters.
type ReplaceState struct {
	// Start is where Replace mode was entered.
	Start buffer.Position

	// Overwritten holds the original characters, in typing order.
	Overwritten []string
}

// findState remembers the last f/F/t/T so ; and , can repeat it.
type findState struct {
	target  rune
	forward bool
	till    bool
}

// State is the whole per-session snapshot threaded through every
// action: mode, cursor, visual anchor, sticky column, the in-progress
// command and the sub-states of replace and search.
type State struct {
	Mode   Mode
	Cursor buffer.Position

	// Anchor is the fixed end of a Visual selection.
	Anchor buffer.Position

	// DesiredColumn is the sticky column for vertical motion;
	// motion.ColumnEOL pins it to each line's end.
	DesiredColumn int

	Recorded RecordedState
	Replace  *ReplaceState
	Search   *SearchState

	// LastSearch is the most recent committed search, for n/N/*/#.
	LastSearch *SearchState

	lastFind *findState
}

// NewState returns a State in Normal mode at the buffer origin.
func NewState() *State {
	return &State{DesiredColumn: -1}
}

// ResetCommand discards the in-progress command accumulation.
func (s *State) ResetCommand() {
	s.Recorded = RecordedState{}
}

// SetCursor moves the cursor and, unless keep is set, re-derives the
// desired column from the new position.
func (s *State) SetCursor(p buffer.Position, keepDesired bool) {
	s.Cursor = p
	if !keepDesired {
		s.DesiredColumn = p.Character
	}
}

// desired returns the column vertical motions should target.
func (s *State) desired() int {
	if s.DesiredColumn == motion.ColumnEOL {
		return motion.ColumnEOL
	}
	if s.DesiredColumn < 0 {
		return s.Cursor.Character
	}
	return s.DesiredColumn
}
