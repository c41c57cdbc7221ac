package buffer

import (
	"fmt"
	"strings"
)

// Reader provides read-only access to buffer content.
type Reader interface {
	// LineCount returns the number of lines in the buffer.
	// An empty buffer has one empty line.
	LineCount() int

	// Line returns the text of the given line without its newline.
	// Out-of-range lines return the empty string.
	Line(n int) string
}

// Buffer is the external text buffer collaborator. All edits requested by
// the interpreter go through this interface; ranges are half-open with the
// stop position exclusive. A stop character equal to the line length selects
// through the end-of-line slot, and spanning to the next line's column 0
// removes the newline between them.
type Buffer interface {
	Reader

	// Text returns the content of the half-open range [start, stop).
	Text(start, stop Position) string

	// Insert inserts text at the given position. Text may contain newlines.
	Insert(at Position, text string) error

	// Delete removes the half-open range [start, stop).
	Delete(start, stop Position) error

	// Replace substitutes the half-open range [start, stop) with text.
	Replace(start, stop Position, text string) error

	// Selection returns the active selection as (anchor, active).
	// When there is no selection both equal the cursor position.
	Selection() (anchor, active Position)

	// SetSelection sets the active selection.
	SetSelection(anchor, active Position)

	// RunCommand executes a named editor command (scroll, fold, format,
	// reveal, focus, declaration). Effects are observed only through
	// subsequent content and selection reads.
	RunCommand(name string, args map[string]any) error
}

// Named editor commands understood by host buffers.
const (
	CommandScroll      = "scroll"
	CommandFold        = "fold"
	CommandFormat      = "format"
	CommandReveal      = "revealRange"
	CommandFocus       = "focusPane"
	CommandDeclaration = "goToDeclaration"
)

// ErrUnknownCommand is returned by RunCommand for unrecognized commands.
var ErrUnknownCommand = fmt.Errorf("unknown editor command")

// Memory is an in-process Buffer backed by a slice of lines. It is the
// implementation used by tests and the demo front end.
type Memory struct {
	lines  []string
	anchor Position
	active Position

	// OnCommand, when set, handles RunCommand calls. Known commands
	// succeed as no-ops when OnCommand is nil.
	OnCommand func(name string, args map[string]any) error
}

// NewMemory creates a buffer with the given initial lines.
// A nil or empty slice yields a single empty line.
func NewMemory(lines ...string) *Memory {
	if len(lines) == 0 {
		lines = []string{""}
	}
	copied := make([]string, len(lines))
	copy(copied, lines)
	return &Memory{lines: copied}
}

// NewMemoryFromText creates a buffer by splitting text on newlines.
func NewMemoryFromText(text string) *Memory {
	return NewMemory(strings.Split(text, "\n")...)
}

// LineCount returns the number of lines.
func (m *Memory) LineCount() int {
	return len(m.lines)
}

// Line returns the text of line n, or "" when out of range.
func (m *Memory) Line(n int) string {
	if n < 0 || n >= len(m.lines) {
		return ""
	}
	return m.lines[n]
}

// Lines returns a copy of all lines.
func (m *Memory) Lines() []string {
	out := make([]string, len(m.lines))
	copy(out, m.lines)
	return out
}

// SetLines replaces the entire content. Used by history restoration.
func (m *Memory) SetLines(lines []string) {
	if len(lines) == 0 {
		lines = []string{""}
	}
	m.lines = make([]string, len(lines))
	copy(m.lines, lines)
}

// Content returns the whole buffer joined with newlines.
func (m *Memory) Content() string {
	return strings.Join(m.lines, "\n")
}

// offset converts a position to a flat offset over Content().
func (m *Memory) offset(p Position) int {
	p = p.Clamp(m)
	off := 0
	for i := 0; i < p.Line; i++ {
		off += len(m.lines[i]) + 1
	}
	return off + p.Character
}

// Text returns the content of [start, stop).
func (m *Memory) Text(start, stop Position) string {
	start, stop = Ordered(start, stop)
	content := m.Content()
	a, b := m.offset(start), m.offset(stop)
	if a > len(content) {
		a = len(content)
	}
	if b > len(content) {
		b = len(content)
	}
	return content[a:b]
}

// Insert inserts text at the given position.
func (m *Memory) Insert(at Position, text string) error {
	content := m.Content()
	off := m.offset(at)
	m.lines = strings.Split(content[:off]+text+content[off:], "\n")
	return nil
}

// Delete removes the half-open range [start, stop).
func (m *Memory) Delete(start, stop Position) error {
	return m.Replace(start, stop, "")
}

// Replace substitutes [start, stop) with text.
func (m *Memory) Replace(start, stop Position, text string) error {
	start, stop = Ordered(start, stop)
	content := m.Content()
	a, b := m.offset(start), m.offset(stop)
	if a > len(content) {
		a = len(content)
	}
	if b > len(content) {
		b = len(content)
	}
	m.lines = strings.Split(content[:a]+text+content[b:], "\n")
	return nil
}

// Selection returns the active selection.
func (m *Memory) Selection() (Position, Position) {
	return m.anchor, m.active
}

// SetSelection sets the active selection.
func (m *Memory) SetSelection(anchor, active Position) {
	m.anchor = anchor
	m.active = active
}

// RunCommand dispatches a named editor command.
func (m *Memory) RunCommand(name string, args map[string]any) error {
	if m.OnCommand != nil {
		return m.OnCommand(name, args)
	}
	switch name {
	case CommandScroll, CommandFold, CommandFormat, CommandReveal, CommandFocus, CommandDeclaration:
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
}
