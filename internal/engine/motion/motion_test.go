package motion

import (
	"testing"

	"github.com/dshills/vimkit/internal/engine/buffer"
)

func TestWordRight(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		pos   buffer.Position
		big   bool
		want  buffer.Position
	}{
		{"simple words", []string{"hello world"}, buffer.NewPosition(0, 0), false, buffer.NewPosition(0, 6)},
		{"punctuation is its own word", []string{"foo(bar)"}, buffer.NewPosition(0, 0), false, buffer.NewPosition(0, 3)},
		{"from punctuation", []string{"foo(bar)"}, buffer.NewPosition(0, 3), false, buffer.NewPosition(0, 4)},
		{"WORD skips punctuation", []string{"foo(bar) baz"}, buffer.NewPosition(0, 0), true, buffer.NewPosition(0, 9)},
		{"crosses lines", []string{"hello", "world"}, buffer.NewPosition(0, 3), false, buffer.NewPosition(1, 0)},
		{"end of document unchanged", []string{"hello"}, buffer.NewPosition(0, 4), false, buffer.NewPosition(0, 4)},
		{"mid word", []string{"hello world"}, buffer.NewPosition(0, 2), false, buffer.NewPosition(0, 6)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rd := buffer.NewMemory(tt.lines...)
			if got := WordRight(rd, tt.pos, tt.big); got != tt.want {
				t.Errorf("WordRight = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWordLeft(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		pos   buffer.Position
		big   bool
		want  buffer.Position
	}{
		{"to word start", []string{"hello world"}, buffer.NewPosition(0, 8), false, buffer.NewPosition(0, 6)},
		{"to previous word", []string{"hello world"}, buffer.NewPosition(0, 6), false, buffer.NewPosition(0, 0)},
		{"punctuation run", []string{"a==b"}, buffer.NewPosition(0, 3), false, buffer.NewPosition(0, 1)},
		{"crosses lines", []string{"hello", "world"}, buffer.NewPosition(1, 0), false, buffer.NewPosition(0, 0)},
		{"at document start", []string{"hello"}, buffer.NewPosition(0, 0), false, buffer.NewPosition(0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rd := buffer.NewMemory(tt.lines...)
			if got := WordLeft(rd, tt.pos, tt.big); got != tt.want {
				t.Errorf("WordLeft = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWordEnd(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		pos   buffer.Position
		want  buffer.Position
	}{
		{"current word end", []string{"hello world"}, buffer.NewPosition(0, 0), buffer.NewPosition(0, 4)},
		{"next word end from end", []string{"hello world"}, buffer.NewPosition(0, 4), buffer.NewPosition(0, 10)},
		{"punctuation run end", []string{"a==b"}, buffer.NewPosition(0, 0), buffer.NewPosition(0, 2)},
		{"crosses lines", []string{"one", "two"}, buffer.NewPosition(0, 2), buffer.NewPosition(1, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rd := buffer.NewMemory(tt.lines...)
			if got := WordEnd(rd, tt.pos, false); got != tt.want {
				t.Errorf("WordEnd = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWordEndBackward(t *testing.T) {
	rd := buffer.NewMemory("hello world")
	if got := WordEndBackward(rd, buffer.NewPosition(0, 8), false); got != buffer.NewPosition(0, 4) {
		t.Errorf("WordEndBackward = %v, want (0:4)", got)
	}
}

func TestSentenceForward(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		pos   buffer.Position
		want  buffer.Position
	}{
		{"period space", []string{"One. Two."}, buffer.NewPosition(0, 0), buffer.NewPosition(0, 5)},
		{"closing quote after period", []string{`He said "hi." Then left.`}, buffer.NewPosition(0, 0), buffer.NewPosition(0, 14)},
		{"blank line boundary", []string{"one", "", "two"}, buffer.NewPosition(0, 0), buffer.NewPosition(1, 0)},
		{"no terminator goes to end", []string{"no end here"}, buffer.NewPosition(0, 0), buffer.NewPosition(0, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rd := buffer.NewMemory(tt.lines...)
			if got := SentenceForward(rd, tt.pos); got != tt.want {
				t.Errorf("SentenceForward = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSentenceBackward(t *testing.T) {
	rd := buffer.NewMemory("One. Two. Three.")
	if got := SentenceBackward(rd, buffer.NewPosition(0, 12)); got != buffer.NewPosition(0, 10) {
		t.Errorf("SentenceBackward = %v, want (0:10)", got)
	}
	// Already at a sentence start: move to the previous one.
	if got := SentenceBackward(rd, buffer.NewPosition(0, 10)); got != buffer.NewPosition(0, 5) {
		t.Errorf("SentenceBackward = %v, want (0:5)", got)
	}
}

func TestParagraphForward(t *testing.T) {
	rd := buffer.NewMemory("one", "", "two")
	if got := ParagraphForward(rd, buffer.NewPosition(0, 0)); got != buffer.NewPosition(1, 0) {
		t.Errorf("ParagraphForward = %v, want (1:0)", got)
	}
	// From the blank line, advance past the next paragraph.
	if got := ParagraphForward(rd, buffer.NewPosition(1, 0)); got != buffer.NewPosition(2, 3) {
		t.Errorf("ParagraphForward = %v, want (2:3)", got)
	}
}

func TestParagraphBackward(t *testing.T) {
	rd := buffer.NewMemory("one", "", "two")
	if got := ParagraphBackward(rd, buffer.NewPosition(2, 1)); got != buffer.NewPosition(1, 0) {
		t.Errorf("ParagraphBackward = %v, want (1:0)", got)
	}
}

func TestSection(t *testing.T) {
	rd := buffer.NewMemory("func a() ", "{", "body", "}", "after")
	if got := SectionForward(rd, buffer.NewPosition(0, 0), '{'); got != buffer.NewPosition(1, 0) {
		t.Errorf("SectionForward = %v, want (1:0)", got)
	}
	if got := SectionBackward(rd, buffer.NewPosition(4, 0), '}'); got != buffer.NewPosition(3, 0) {
		t.Errorf("SectionBackward = %v, want (3:0)", got)
	}
}

func TestFind(t *testing.T) {
	rd := buffer.NewMemory("abcabcabc")

	tests := []struct {
		name    string
		pos     buffer.Position
		target  rune
		count   int
		forward bool
		want    buffer.Position
		ok      bool
	}{
		{"first forward", buffer.NewPosition(0, 0), 'c', 1, true, buffer.NewPosition(0, 2), true},
		{"second forward", buffer.NewPosition(0, 0), 'c', 2, true, buffer.NewPosition(0, 5), true},
		{"missing fails", buffer.NewPosition(0, 0), 'x', 1, true, buffer.NewPosition(0, 0), false},
		{"too few fails", buffer.NewPosition(0, 0), 'c', 4, true, buffer.NewPosition(0, 0), false},
		{"backward", buffer.NewPosition(0, 5), 'a', 1, false, buffer.NewPosition(0, 3), true},
		{"own char not counted", buffer.NewPosition(0, 2), 'c', 1, true, buffer.NewPosition(0, 5), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Find(rd, tt.pos, tt.target, tt.count, tt.forward)
			if ok != tt.ok || got != tt.want {
				t.Errorf("Find = %v, %v; want %v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestTill(t *testing.T) {
	rd := buffer.NewMemory("abcdef")
	got, ok := Till(rd, buffer.NewPosition(0, 0), 'd', 1, true)
	if !ok || got != buffer.NewPosition(0, 2) {
		t.Errorf("Till forward = %v, %v", got, ok)
	}
	got, ok = Till(rd, buffer.NewPosition(0, 5), 'b', 1, false)
	if !ok || got != buffer.NewPosition(0, 2) {
		t.Errorf("Till backward = %v, %v", got, ok)
	}
	if _, ok := Till(rd, buffer.NewPosition(0, 0), 'z', 1, true); ok {
		t.Error("expected Till to fail for missing target")
	}
}

func TestVertical(t *testing.T) {
	rd := buffer.NewMemory("long line here", "ab", "another long line")

	// Desired column survives a short line.
	p := Vertical(rd, buffer.NewPosition(0, 10), 1, 10)
	if p != buffer.NewPosition(1, 2) {
		t.Errorf("down through short line = %v", p)
	}
	p = Vertical(rd, p, 1, 10)
	if p != buffer.NewPosition(2, 10) {
		t.Errorf("column restored on long line = %v", p)
	}

	// ColumnEOL sticks to each line's end.
	p = Vertical(rd, buffer.NewPosition(0, 14), 1, ColumnEOL)
	if p != buffer.NewPosition(1, 2) {
		t.Errorf("eol sentinel = %v", p)
	}

	// Clamped at document edges.
	if got := Vertical(rd, buffer.NewPosition(0, 0), -5, -1); got.Line != 0 {
		t.Errorf("clamp top = %v", got)
	}
	if got := Vertical(rd, buffer.NewPosition(2, 0), 5, -1); got.Line != 2 {
		t.Errorf("clamp bottom = %v", got)
	}
}

func TestLineHelpers(t *testing.T) {
	rd := buffer.NewMemory("  hello  ")

	if got := FirstNonBlank(rd, buffer.NewPosition(0, 7)); got != buffer.NewPosition(0, 2) {
		t.Errorf("FirstNonBlank = %v", got)
	}
	if got := LastNonBlank(rd, buffer.NewPosition(0, 0)); got != buffer.NewPosition(0, 6) {
		t.Errorf("LastNonBlank = %v", got)
	}
	if got := LineEnd(rd, buffer.NewPosition(0, 0)); got != buffer.NewPosition(0, 9) {
		t.Errorf("LineEnd = %v", got)
	}

	blank := buffer.NewMemory("   ")
	if got := FirstNonBlank(blank, buffer.NewPosition(0, 2)); got != buffer.NewPosition(0, 0) {
		t.Errorf("FirstNonBlank on blank line = %v", got)
	}
}

func TestLeftRight(t *testing.T) {
	rd := buffer.NewMemory("ab", "cd")

	if got := Left(rd, buffer.NewPosition(0, 0), false); got != buffer.NewPosition(0, 0) {
		t.Errorf("Left no wrap = %v", got)
	}
	if got := Left(rd, buffer.NewPosition(1, 0), true); got != buffer.NewPosition(0, 2) {
		t.Errorf("Left wrap = %v", got)
	}
	if got := Right(rd, buffer.NewPosition(0, 2), true); got != buffer.NewPosition(1, 0) {
		t.Errorf("Right wrap = %v", got)
	}
	if got := Right(rd, buffer.NewPosition(1, 2), true); got != buffer.NewPosition(1, 2) {
		t.Errorf("Right at end = %v", got)
	}
}
