package vim

import "github.com/dshills/vimkit/internal/engine/buffer"

// RegisterMode governs how a range is interpreted when yanked, deleted,
// or put back.
type RegisterMode uint8

const (
	// RegisterFromContext defers the decision to the consuming operator.
	RegisterFromContext RegisterMode = iota

	// RegisterCharacterWise treats content as an exact character span.
	RegisterCharacterWise

	// RegisterLineWise treats content as whole lines.
	RegisterLineWise

	// RegisterBlockWise treats content as a rectangular column region.
	RegisterBlockWise
)

// String returns the register mode name.
func (m RegisterMode) String() string {
	switch m {
	case RegisterFromContext:
		return "fromContext"
	case RegisterCharacterWise:
		return "characterwise"
	case RegisterLineWise:
		return "linewise"
	case RegisterBlockWise:
		return "blockwise"
	default:
		return "unknown"
	}
}

// Result is the tagged outcome of a motion: either a simple position or
// an explicit range. Failed marks a motion that could not locate its
// target; holders of a failed Result must not touch buffer or cursor.
type Result struct {
	Pos          buffer.Position
	Start        buffer.Position
	Stop         buffer.Position
	Ranged       bool
	Failed       bool
	RegisterMode RegisterMode
}

// At returns a simple position result.
func At(p buffer.Position) Result {
	return Result{Pos: p}
}

// Span returns a ranged result over the half-open span [start, stop).
func Span(start, stop buffer.Position, mode RegisterMode) Result {
	return Result{Start: start, Stop: stop, Ranged: true, RegisterMode: mode}
}

// FailedAt returns a failed result anchored at p.
func FailedAt(p buffer.Position) Result {
	return Result{Pos: p, Failed: true}
}
