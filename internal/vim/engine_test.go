package vim

import (
	"testing"
	"time"

	"github.com/dshills/vimkit/internal/config"
	"github.com/dshills/vimkit/internal/engine/buffer"
)

func newEngine(lines ...string) *Engine {
	return New(buffer.NewMemory(lines...), config.Default())
}

func press(t *testing.T, e *Engine, tokens ...string) {
	t.Helper()
	for _, tok := range tokens {
		if err := e.HandleKey(tok); err != nil {
			t.Fatalf("HandleKey(%q): %v", tok, err)
		}
	}
}

func typeString(t *testing.T, e *Engine, s string) {
	t.Helper()
	for _, r := range s {
		press(t, e, string(r))
	}
}

func wantBuffer(t *testing.T, e *Engine, lines ...string) {
	t.Helper()
	got := e.Context().Buffer.Lines()
	if len(got) != len(lines) {
		t.Fatalf("buffer = %q, want %q", got, lines)
	}
	for i := range lines {
		if got[i] != lines[i] {
			t.Fatalf("buffer = %q, want %q", got, lines)
		}
	}
}

func wantCursor(t *testing.T, e *Engine, line, char int) {
	t.Helper()
	if e.Cursor() != buffer.NewPosition(line, char) {
		t.Fatalf("cursor = %v, want (%d:%d)", e.Cursor(), line, char)
	}
}

func TestDeleteWord(t *testing.T) {
	e := newEngine("hello world", "  goodbye")
	typeString(t, e, "dw")

	wantBuffer(t, e, "world", "  goodbye")
	wantCursor(t, e, 0, 0)
	if reg, _ := e.Context().Registers.Get('"'); reg.Content != "hello " {
		t.Errorf("register = %q, want %q", reg.Content, "hello ")
	}
}

func TestDeleteWordNeverCrossesLine(t *testing.T) {
	e := newEngine("hello", "world")
	press(t, e, "3", "l")
	typeString(t, e, "dw")

	// The operator caps w at end of line instead of pulling in the
	// next line's first word.
	wantBuffer(t, e, "hel", "world")
}

func TestDeleteCharClampsCursor(t *testing.T) {
	e := newEngine("abc")
	press(t, e, "2", "l", "x")

	wantBuffer(t, e, "ab")
	wantCursor(t, e, 0, 1)
}

func TestCountedDeleteWord(t *testing.T) {
	e := newEngine("one two three four")
	typeString(t, e, "3dw")
	wantBuffer(t, e, "four")

	e = newEngine("one two three four")
	typeString(t, e, "d3w")
	wantBuffer(t, e, "four")
}

func TestCountsMultiply(t *testing.T) {
	e := newEngine("a b c d e f g h")
	typeString(t, e, "2d3w")
	wantBuffer(t, e, "g h")
}

func TestDeleteLine(t *testing.T) {
	e := newEngine("one", "two", "three")
	press(t, e, "j")
	typeString(t, e, "dd")

	wantBuffer(t, e, "one", "three")
	wantCursor(t, e, 1, 0)
	if reg, _ := e.Context().Registers.Get('"'); reg.Content != "two\n" || reg.Mode != RegisterLineWise {
		t.Errorf("register = %+v", reg)
	}
}

func TestMixedOperatorPairDoubles(t *testing.T) {
	e := newEngine("alpha", "beta")
	typeString(t, e, "dy")

	wantBuffer(t, e, "beta")
	wantCursor(t, e, 0, 0)
	if reg, _ := e.Context().Registers.Get('"'); reg.Content != "alpha\n" || reg.Mode != RegisterLineWise {
		t.Errorf("register = %+v", reg)
	}
	if e.Mode() != ModeNormal {
		t.Errorf("mode = %v, want normal", e.Mode())
	}
}

func TestMixedOperatorPairKeepsPendingSemantics(t *testing.T) {
	e := newEngine("alpha", "beta")
	typeString(t, e, "yd")

	wantBuffer(t, e, "alpha", "beta")
	if reg, _ := e.Context().Registers.Get('"'); reg.Content != "alpha\n" || reg.Mode != RegisterLineWise {
		t.Errorf("register = %+v", reg)
	}
}

func TestCountedGotoLineUnderOperator(t *testing.T) {
	e := newEngine("one", "two", "three", "four", "five", "six", "seven")
	typeString(t, e, "2d3G")

	wantBuffer(t, e, "seven")
	wantCursor(t, e, 0, 0)
}

func TestDeleteLastLineSwallowsNewline(t *testing.T) {
	e := newEngine("alpha", "omega")
	press(t, e, "j")
	typeString(t, e, "dd")

	wantBuffer(t, e, "alpha")
	wantCursor(t, e, 0, 0)
}

func TestDeleteToLastLine(t *testing.T) {
	e := newEngine("a", "b", "c")
	press(t, e, "j")
	press(t, e, "d", "G")

	wantBuffer(t, e, "a")
}

func TestChangeWordActsLikeChangeEnd(t *testing.T) {
	e := newEngine("hello world")
	typeString(t, e, "cw")

	// cw on a non-blank behaves as ce: the trailing space survives.
	wantBuffer(t, e, " world")
	if e.Mode() != ModeInsert {
		t.Fatalf("mode = %v, want insert", e.Mode())
	}
	typeString(t, e, "bye")
	press(t, e, "<esc>")
	wantBuffer(t, e, "bye world")
}

func TestChangeDoesNotWriteRegisters(t *testing.T) {
	e := newEngine("keep this")
	typeString(t, e, "yw")
	typeString(t, e, "cw")
	press(t, e, "<esc>")

	if reg, _ := e.Context().Registers.Get('"'); reg.Content != "keep " {
		t.Errorf("register = %q, change must not disturb it", reg.Content)
	}
}

func TestChangeLineKeepsIndent(t *testing.T) {
	e := newEngine("    body here")
	typeString(t, e, "cc")

	wantBuffer(t, e, "    ")
	wantCursor(t, e, 0, 4)
	if e.Mode() != ModeInsert {
		t.Fatalf("mode = %v, want insert", e.Mode())
	}
}

func TestMatchingBracket(t *testing.T) {
	e := newEngine("foo(bar)baz")
	press(t, e, "%")
	wantCursor(t, e, 0, 7)

	// Order symmetry: % from the close lands back on the open.
	press(t, e, "%")
	wantCursor(t, e, 0, 3)
}

func TestDeleteMatchingBracketBackward(t *testing.T) {
	e := newEngine("foo(bar)baz")
	press(t, e, "7", "l")
	typeString(t, e, "d%")

	// Backward % includes both delimiters symmetrically.
	wantBuffer(t, e, "foobaz")
}

func TestParagraphMotion(t *testing.T) {
	e := newEngine("one", "", "two")
	press(t, e, "}")
	wantCursor(t, e, 1, 0)
}

func TestFailedMotionIsNoOp(t *testing.T) {
	e := newEngine("abc")
	press(t, e, "l")
	before := e.Cursor()

	press(t, e, "f", "z")
	if e.Cursor() != before {
		t.Errorf("cursor moved on failed find: %v", e.Cursor())
	}

	typeString(t, e, "dfz")
	wantBuffer(t, e, "abc")
	if e.Cursor() != before {
		t.Errorf("cursor moved on failed operator motion: %v", e.Cursor())
	}
}

func TestCountZeroEqualsOne(t *testing.T) {
	a := newEngine("abcdef")
	press(t, a, "l")

	b := newEngine("abcdef")
	press(t, b, "1", "l")

	if a.Cursor() != b.Cursor() {
		t.Errorf("bare = %v, counted = %v", a.Cursor(), b.Cursor())
	}
}

func TestZeroIsLineBeginWithoutCount(t *testing.T) {
	e := newEngine("hello world")
	press(t, e, "4", "l", "0")
	wantCursor(t, e, 0, 0)

	// With a count pending, 0 is a digit.
	press(t, e, "1", "0", "l")
	wantCursor(t, e, 0, 10)
}

func TestGotoByteOffset(t *testing.T) {
	e := newEngine("abc", "def")
	press(t, e, "6", "g", "o")
	wantCursor(t, e, 1, 1)

	// Without a count, go targets the first byte.
	press(t, e, "g", "o")
	wantCursor(t, e, 0, 0)
}

func TestDotRepeat(t *testing.T) {
	e := newEngine("abc")
	press(t, e, "x", ".")

	// Each deletion happens at the then-current cursor.
	wantBuffer(t, e, "c")
}

func TestDotRepeatFreshCount(t *testing.T) {
	e := newEngine("abcdef")
	press(t, e, "x", "3", ".")
	wantBuffer(t, e, "ef")
}

func TestDotRepeatInsert(t *testing.T) {
	e := newEngine("")
	typeString(t, e, "ihi")
	press(t, e, "<esc>", ".")
	wantBuffer(t, e, "hhii")
}

func TestYankPutRoundTrip(t *testing.T) {
	e := newEngine("hello world")
	typeString(t, e, "yw")
	wantCursor(t, e, 0, 0) // normal-mode yank must not move the cursor
	press(t, e, "P")
	wantBuffer(t, e, "hello hello world")

	e = newEngine("solo")
	typeString(t, e, "yy")
	press(t, e, "p")
	wantBuffer(t, e, "solo", "solo")
	wantCursor(t, e, 1, 0)
}

func TestNamedRegisterAppend(t *testing.T) {
	e := newEngine("one", "two")
	press(t, e, `"`, "a")
	typeString(t, e, "yy")
	press(t, e, "j", `"`, "A")
	typeString(t, e, "yy")

	reg, _ := e.Context().Registers.Get('a')
	if reg.Content != "one\ntwo\n" {
		t.Errorf("register a = %q", reg.Content)
	}
}

func TestDeleteRotation(t *testing.T) {
	e := newEngine("first", "second", "third")
	typeString(t, e, "dd")
	typeString(t, e, "dd")

	r1, _ := e.Context().Registers.Get('1')
	r2, _ := e.Context().Registers.Get('2')
	if r1.Content != "second\n" || r2.Content != "first\n" {
		t.Errorf("rotation: 1=%q 2=%q", r1.Content, r2.Content)
	}
}

func TestSmallDeleteRegister(t *testing.T) {
	e := newEngine("abc")
	press(t, e, "x")
	reg, _ := e.Context().Registers.Get('-')
	if reg.Content != "a" {
		t.Errorf("small delete register = %q", reg.Content)
	}
}

func TestYankRegisterZero(t *testing.T) {
	e := newEngine("word here")
	typeString(t, e, "yw")
	press(t, e, "x")

	// Deletes overwrite the unnamed register but never register 0.
	r0, _ := e.Context().Registers.Get('0')
	if r0.Content != "word " {
		t.Errorf("register 0 = %q", r0.Content)
	}
}

func TestUndoRedoCommand(t *testing.T) {
	e := newEngine("abc")
	press(t, e, "x")
	wantBuffer(t, e, "bc")
	press(t, e, "u")
	wantBuffer(t, e, "abc")
	press(t, e, "<c-r>")
	wantBuffer(t, e, "bc")
}

func TestMarksSurviveEditsUnadjusted(t *testing.T) {
	e := newEngine("one", "two", "three")
	press(t, e, "j", "j", "m", "a", "g", "g")
	typeString(t, e, "dj")
	wantBuffer(t, e, "three")

	// The mark still points at line 2, which no longer exists; the
	// jump fails and nothing moves.
	before := e.Cursor()
	press(t, e, "`", "a")
	if e.Cursor() != before {
		t.Errorf("stale mark jump moved cursor to %v", e.Cursor())
	}
	if p, ok := e.Context().Marks.Get('a'); !ok || p != buffer.NewPosition(2, 0) {
		t.Errorf("mark = %v, %v; must stay unadjusted", p, ok)
	}
}

func TestMarkJump(t *testing.T) {
	e := newEngine("  one", "two")
	press(t, e, "j", "m", "q", "g", "g")
	press(t, e, "'", "q")
	wantCursor(t, e, 1, 0)
}

func TestSearchCommitAndRepeat(t *testing.T) {
	e := newEngine("say hello", "hello again")
	typeString(t, e, "/hello")
	press(t, e, "<cr>")
	wantCursor(t, e, 0, 4)

	press(t, e, "n")
	wantCursor(t, e, 1, 0)
}

func TestSearchCancelRestoresCursor(t *testing.T) {
	e := newEngine("say hello")
	press(t, e, "2", "l")
	typeString(t, e, "/hello")
	press(t, e, "<esc>")
	wantCursor(t, e, 0, 2)
	if e.Mode() != ModeNormal {
		t.Errorf("mode = %v", e.Mode())
	}
}

func TestStarSkipsSubstringMatches(t *testing.T) {
	e := newEngine("foo bar", "foobar", "foo")
	press(t, e, "*")
	wantCursor(t, e, 2, 0)
}

func TestVisualDelete(t *testing.T) {
	e := newEngine("hello world")
	press(t, e, "v", "e", "d")

	wantBuffer(t, e, " world")
	if e.Mode() != ModeNormal {
		t.Fatalf("mode = %v", e.Mode())
	}
}

func TestVisualLineYank(t *testing.T) {
	e := newEngine("one", "two", "three")
	press(t, e, "V", "j", "y")

	reg, _ := e.Context().Registers.Get('"')
	if reg.Content != "one\ntwo\n" || reg.Mode != RegisterLineWise {
		t.Errorf("register = %+v", reg)
	}
	wantCursor(t, e, 0, 0)
}

func TestVisualBlockDelete(t *testing.T) {
	e := newEngine("abcd", "efgh")
	press(t, e, "<c-v>", "j", "l", "d")

	wantBuffer(t, e, "cd", "gh")
	reg, _ := e.Context().Registers.Get('"')
	if reg.Mode != RegisterBlockWise || len(reg.Block) != 2 || reg.Block[0] != "ab" || reg.Block[1] != "ef" {
		t.Errorf("register = %+v", reg)
	}
}

func TestVisualBlockInsert(t *testing.T) {
	e := newEngine("one", "two", "three")
	press(t, e, "<c-v>", "j", "j", "I")
	typeString(t, e, "# ")
	press(t, e, "<esc>")

	wantBuffer(t, e, "# one", "# two", "# three")
}

func TestReplaceModeBackspaceRestores(t *testing.T) {
	e := newEngine("abcd")
	press(t, e, "R")
	typeString(t, e, "xy")
	wantBuffer(t, e, "xycd")

	press(t, e, "<bs>")
	wantBuffer(t, e, "xbcd")
	wantCursor(t, e, 0, 1)

	// Replace-mode overwrite never disturbs registers.
	if reg, ok := e.Context().Registers.Get('"'); ok && reg.Content != "" {
		t.Errorf("register written by replace mode: %q", reg.Content)
	}

	press(t, e, "<esc>")
	wantCursor(t, e, 0, 0)
}

func TestReplaceChar(t *testing.T) {
	e := newEngine("abc")
	press(t, e, "2", "r", "z")
	wantBuffer(t, e, "zzc")
	wantCursor(t, e, 0, 1)

	// Too few characters remain: no-op.
	e = newEngine("ab")
	press(t, e, "5", "r", "z")
	wantBuffer(t, e, "ab")
}

func TestJoinLines(t *testing.T) {
	e := newEngine("foo", "  bar")
	press(t, e, "J")
	wantBuffer(t, e, "foo bar")
	wantCursor(t, e, 0, 3)
}

func TestToggleCase(t *testing.T) {
	e := newEngine("aBc")
	press(t, e, "~", "~")
	wantBuffer(t, e, "Abc")
	wantCursor(t, e, 0, 2)
}

func TestCaseOperator(t *testing.T) {
	e := newEngine("hello there")
	press(t, e, "g", "U", "w")
	wantBuffer(t, e, "HELLO there")
}

func TestIndentLines(t *testing.T) {
	e := newEngine("one", "two")
	typeString(t, e, ">>")
	wantBuffer(t, e, "\tone", "two")
	typeString(t, e, "<<")
	wantBuffer(t, e, "one", "two")
}

func TestTextObjects(t *testing.T) {
	e := newEngine("foo bar baz")
	press(t, e, "5", "l")
	typeString(t, e, "diw")
	wantBuffer(t, e, "foo  baz")

	e = newEngine(`say "hi there" ok`)
	typeString(t, e, `di"`)
	wantBuffer(t, e, `say "" ok`)

	e = newEngine("f(a, b)c")
	press(t, e, "3", "l")
	typeString(t, e, "da(")
	wantBuffer(t, e, "fc")

	e = newEngine("<b>bold</b>")
	press(t, e, "4", "l")
	typeString(t, e, "dit")
	wantBuffer(t, e, "<b></b>")
}

func TestStickyColumn(t *testing.T) {
	e := newEngine("long line here", "ab", "another long line")
	press(t, e, "1", "0", "l")
	wantCursor(t, e, 0, 10)
	press(t, e, "j")
	wantCursor(t, e, 1, 1)
	press(t, e, "j")
	wantCursor(t, e, 2, 10)
}

func TestDollarPinsColumnToLineEnd(t *testing.T) {
	e := newEngine("abc", "defgh")
	press(t, e, "$")
	wantCursor(t, e, 0, 2)
	press(t, e, "j")
	wantCursor(t, e, 1, 4)
}

func TestUnmatchedSequenceDiscarded(t *testing.T) {
	e := newEngine("abc")
	press(t, e, "g", "q") // no gq action: buffer discarded
	press(t, e, "l")      // interpretation restarts cleanly
	wantCursor(t, e, 0, 1)
}

func TestEscapeCancelsPendingOperator(t *testing.T) {
	e := newEngine("abc")
	press(t, e, "d", "<esc>", "w")
	wantBuffer(t, e, "abc")
	if e.State().Recorded.Operator != nil {
		t.Error("operator still pending after escape")
	}
}

func TestOpenLineCarriesIndent(t *testing.T) {
	e := newEngine("  one")
	press(t, e, "o")
	typeString(t, e, "x")
	press(t, e, "<esc>")
	wantBuffer(t, e, "  one", "  x")
}

func TestGotoDeclarationPollsSelection(t *testing.T) {
	buf := buffer.NewMemory("target", "", "use target")
	calls := 0
	buf.OnCommand = func(name string, args map[string]any) error {
		if name == buffer.CommandDeclaration {
			calls++
			buf.SetSelection(buffer.NewPosition(0, 0), buffer.NewPosition(0, 0))
		}
		return nil
	}
	e := New(buf, config.Default())
	e.pollInterval = time.Millisecond
	press(t, e, "j", "j")
	press(t, e, "g", "d")

	if calls != 1 {
		t.Fatalf("declaration command ran %d times", calls)
	}
	wantCursor(t, e, 0, 0)
}

func TestExternalErrorReturnsToNormal(t *testing.T) {
	buf := buffer.NewMemory("text")
	boom := buffer.ErrUnknownCommand
	buf.OnCommand = func(name string, args map[string]any) error { return boom }
	e := New(buf, config.Default())

	if err := e.HandleKey("<c-f>"); err != nil {
		t.Fatalf("scroll errors are swallowed: %v", err)
	}
	press(t, e, "g")
	if err := e.HandleKey("d"); err == nil {
		t.Fatal("expected declaration error to surface")
	}
	if e.Mode() != ModeNormal {
		t.Errorf("mode = %v, want normal after external failure", e.Mode())
	}
}
