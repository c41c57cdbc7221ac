package history

import (
	"testing"

	"github.com/dshills/vimkit/internal/engine/buffer"
)

func TestUndoRedo(t *testing.T) {
	buf := buffer.NewMemory("hello")
	h := New(0)

	h.Checkpoint(buf, buffer.NewPosition(0, 2))
	buf.SetLines([]string{"hxllo"})

	pos, ok := h.Undo(buf, buffer.NewPosition(0, 1))
	if !ok || pos != buffer.NewPosition(0, 2) || buf.Line(0) != "hello" {
		t.Fatalf("Undo = %v, %v, line %q", pos, ok, buf.Line(0))
	}

	pos, ok = h.Redo(buf, pos)
	if !ok || buf.Line(0) != "hxllo" {
		t.Fatalf("Redo = %v, %v, line %q", pos, ok, buf.Line(0))
	}
}

func TestUndoEmpty(t *testing.T) {
	buf := buffer.NewMemory("a")
	h := New(0)

	if _, ok := h.Undo(buf, buffer.NewPosition(0, 0)); ok {
		t.Error("expected Undo on empty history to fail")
	}
	if _, ok := h.Redo(buf, buffer.NewPosition(0, 0)); ok {
		t.Error("expected Redo on empty history to fail")
	}
}

func TestCheckpointDiscardsRedo(t *testing.T) {
	buf := buffer.NewMemory("one")
	h := New(0)

	h.Checkpoint(buf, buffer.NewPosition(0, 0))
	buf.SetLines([]string{"two"})
	h.Undo(buf, buffer.NewPosition(0, 0))

	// A fresh edit after undo kills the redo branch.
	h.Checkpoint(buf, buffer.NewPosition(0, 0))
	buf.SetLines([]string{"three"})
	if _, ok := h.Redo(buf, buffer.NewPosition(0, 0)); ok {
		t.Error("expected redo branch to be discarded")
	}
}

func TestUndoLimit(t *testing.T) {
	buf := buffer.NewMemory("x")
	h := New(2)

	for i := 0; i < 5; i++ {
		h.Checkpoint(buf, buffer.NewPosition(0, 0))
	}
	if h.Depth() != 2 {
		t.Errorf("Depth = %d, want 2", h.Depth())
	}
}

func TestMarksNotAdjustedByEdits(t *testing.T) {
	m := NewMarks()
	m.Set('a', buffer.NewPosition(5, 3))

	// Editing the buffer has no effect on stored marks; the position
	// comes back exactly as recorded even if the line is gone.
	pos, ok := m.Get('a')
	if !ok || pos != buffer.NewPosition(5, 3) {
		t.Fatalf("Get = %v, %v", pos, ok)
	}

	m.Set('a', buffer.NewPosition(1, 0))
	if pos, _ := m.Get('a'); pos != buffer.NewPosition(1, 0) {
		t.Errorf("overwrite = %v", pos)
	}

	if _, ok := m.Get('z'); ok {
		t.Error("expected missing mark")
	}
}
