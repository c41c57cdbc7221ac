package history

import (
	"sync"

	"github.com/dshills/vimkit/internal/engine/buffer"
)

// Marks stores named cursor positions. Positions are recorded verbatim
// and never shifted by later edits; a jump to a mark past the current
// end of the buffer is the caller's clamping problem. Safe for
// concurrent use.
type Marks struct {
	mu    sync.RWMutex
	marks map[rune]buffer.Position
}

// NewMarks returns an empty mark table.
func NewMarks() *Marks {
	return &Marks{marks: make(map[rune]buffer.Position)}
}

// Set records pos under name, replacing any previous value.
func (m *Marks) Set(name rune, pos buffer.Position) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.marks[name] = pos
}

// Get returns the position recorded under name.
func (m *Marks) Get(name rune) (buffer.Position, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	pos, ok := m.marks[name]
	return pos, ok
}

// Clear removes every mark.
func (m *Marks) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.marks = make(map[rune]buffer.Position)
}
