package history

import (
	"sync"

	"github.com/dshills/vimkit/internal/engine/buffer"
)

// snapshot captures the whole buffer plus the cursor at the moment an
// edit began, so undo restores both.
type snapshot struct {
	lines  []string
	cursor buffer.Position
}

// History is a snapshot-based undo stack for one buffer. Checkpoint is
// called before each undoable command; any new checkpoint discards the
// redo branch. Safe for concurrent use.
type History struct {
	mu    sync.Mutex
	undo  []snapshot
	redo  []snapshot
	limit int
}

// New returns a History keeping at most limit undo states. A limit of
// zero or less means unbounded.
func New(limit int) *History {
	return &History{limit: limit}
}

// Checkpoint records the current buffer content and cursor. Call it
// before mutating the buffer.
func (h *History) Checkpoint(rd buffer.Reader, cursor buffer.Position) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undo = append(h.undo, capture(rd, cursor))
	h.redo = nil
	if h.limit > 0 && len(h.undo) > h.limit {
		h.undo = h.undo[len(h.undo)-h.limit:]
	}
}

// Undo restores the most recent checkpoint into buf and returns the
// cursor recorded with it. ok is false when nothing is left to undo.
func (h *History) Undo(buf *buffer.Memory, cursor buffer.Position) (buffer.Position, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undo) == 0 {
		return cursor, false
	}
	snap := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, capture(buf, cursor))

	buf.SetLines(snap.lines)
	return snap.cursor, true
}

// Redo reapplies the last undone state. ok is false when nothing has
// been undone since the last checkpoint.
func (h *History) Redo(buf *buffer.Memory, cursor buffer.Position) (buffer.Position, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redo) == 0 {
		return cursor, false
	}
	snap := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, capture(buf, cursor))

	buf.SetLines(snap.lines)
	return snap.cursor, true
}

// Depth returns the number of states available to undo.
func (h *History) Depth() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undo)
}

func capture(rd buffer.Reader, cursor buffer.Position) snapshot {
	lines := make([]string, rd.LineCount())
	for i := range lines {
		lines[i] = rd.Line(i)
	}
	return snapshot{lines: lines, cursor: cursor}
}
