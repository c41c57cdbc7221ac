package buffer

import "fmt"

// Position represents a line and character position in a buffer.
// Both fields are 0-indexed. Character may equal the line length to denote
// the virtual end-of-line slot. Position is an immutable value type; all
// derived positions are new values.
type Position struct {
	Line      int
	Character int
}

// NewPosition creates a position at the given line and character.
func NewPosition(line, character int) Position {
	return Position{Line: line, Character: character}
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Character)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Position) Compare(other Position) int {
	if p.Line < other.Line {
		return -1
	}
	if p.Line > other.Line {
		return 1
	}
	if p.Character < other.Character {
		return -1
	}
	if p.Character > other.Character {
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other.
func (p Position) After(other Position) bool {
	return p.Compare(other) > 0
}

// Equal returns true if p and other are the same position.
func (p Position) Equal(other Position) bool {
	return p == other
}

// WithLine returns a copy of p on the given line.
func (p Position) WithLine(line int) Position {
	return Position{Line: line, Character: p.Character}
}

// WithCharacter returns a copy of p at the given character.
func (p Position) WithCharacter(character int) Position {
	return Position{Line: p.Line, Character: character}
}

// Ordered returns the two positions in ascending order.
func Ordered(a, b Position) (Position, Position) {
	if b.Before(a) {
		return b, a
	}
	return a, b
}

// Clamp returns p constrained to valid coordinates for the given reader.
// Character is allowed to sit at the virtual end-of-line slot.
func (p Position) Clamp(r Reader) Position {
	if r.LineCount() == 0 {
		return Position{}
	}
	line := p.Line
	if line < 0 {
		line = 0
	}
	if line >= r.LineCount() {
		line = r.LineCount() - 1
	}
	character := p.Character
	if character < 0 {
		character = 0
	}
	if max := len(r.Line(line)); character > max {
		character = max
	}
	return Position{Line: line, Character: character}
}

// ClampToContent is like Clamp but keeps Character on an actual character
// of the line, one short of the end-of-line slot, as Normal mode requires.
func (p Position) ClampToContent(r Reader) Position {
	clamped := p.Clamp(r)
	lineLen := len(r.Line(clamped.Line))
	if lineLen > 0 && clamped.Character >= lineLen {
		clamped.Character = lineLen - 1
	}
	return clamped
}
