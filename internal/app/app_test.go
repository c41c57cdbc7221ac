package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/vimkit/internal/vim"
)

func TestKeyToken(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want string
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'x', 0), "x"},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, 0), "<esc>"},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, 0), "<cr>"},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, 0), "<tab>"},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, 0), "<bs>"},
		{"ctrl-r", tcell.NewEventKey(tcell.KeyCtrlR, 0, tcell.ModCtrl), "<c-r>"},
		{"ctrl-v", tcell.NewEventKey(tcell.KeyCtrlV, 0, tcell.ModCtrl), "<c-v>"},
		{"alt-rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), "<a-x>"},
		{"arrow", tcell.NewEventKey(tcell.KeyUp, 0, 0), "<up>"},
		{"pageup", tcell.NewEventKey(tcell.KeyPgUp, 0, 0), "<pageup>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keyToken(tt.ev); got != tt.want {
				t.Errorf("keyToken = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.txt")
	if err := os.WriteFile(path, []byte("one\ntwo\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	lines, err := readLines(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 2 || lines[0] != "one" || lines[1] != "two" {
		t.Errorf("lines = %q", lines)
	}

	lines, err = readLines(filepath.Join(dir, "missing.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 1 || lines[0] != "" {
		t.Errorf("missing file should open a scratch line, got %q", lines)
	}
}

func TestLoggerLevelsAndFields(t *testing.T) {
	var buf strings.Builder
	log := NewLogger(LogLevelWarn, &buf).With("session", "abc")

	log.Debug("hidden")
	log.Info("hidden too")
	log.Warn("shown %d", 1)
	log.Error("also shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("low levels leaked: %q", out)
	}
	if !strings.Contains(out, "WARN shown 1") || !strings.Contains(out, "session=abc") {
		t.Errorf("missing warn line or field: %q", out)
	}
	if !strings.Contains(out, "ERROR also shown") {
		t.Errorf("missing error line: %q", out)
	}
}

func TestParseLogLevel(t *testing.T) {
	if ParseLogLevel("debug") != LogLevelDebug || ParseLogLevel("ERROR") != LogLevelError {
		t.Error("known levels must parse")
	}
	if ParseLogLevel("bogus") != LogLevelInfo {
		t.Error("unknown levels fall back to info")
	}
}

func newSimApp(t *testing.T, file string) (*App, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("")
	a, err := NewWithScreen(Options{File: file, LogLevel: "error"}, sim)
	if err != nil {
		t.Fatal(err)
	}
	if err := sim.Init(); err != nil {
		t.Fatal(err)
	}
	sim.SetSize(40, 8)
	return a, sim
}

func screenText(sim tcell.SimulationScreen) string {
	cells, w, h := sim.GetContents()
	var b strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := cells[y*w+x]
			if len(c.Runes) > 0 {
				b.WriteRune(c.Runes[0])
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func TestRenderShowsBufferAndStatus(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo.txt")
	if err := os.WriteFile(path, []byte("hello world\nsecond\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	a, sim := newSimApp(t, path)
	defer sim.Fini()
	defer a.Shutdown()

	a.render()
	out := screenText(sim)
	if !strings.Contains(out, "hello world") || !strings.Contains(out, "second") {
		t.Errorf("buffer text missing:\n%s", out)
	}
	if !strings.Contains(out, "NORMAL") || !strings.Contains(out, "demo.txt") {
		t.Errorf("status line missing:\n%s", out)
	}

	if err := a.Engine().HandleKey("i"); err != nil {
		t.Fatal(err)
	}
	a.render()
	if out := screenText(sim); !strings.Contains(out, "INSERT") {
		t.Errorf("mode change not rendered:\n%s", out)
	}
}

func TestScrollCommandMovesViewport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "long.txt")
	var lines []string
	for i := 0; i < 60; i++ {
		lines = append(lines, "line")
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	a, sim := newSimApp(t, path)
	defer sim.Fini()
	defer a.Shutdown()

	if err := a.Engine().HandleKey("<c-f>"); err != nil {
		t.Fatal(err)
	}
	if a.top == 0 {
		t.Error("page forward should move the viewport top")
	}
	if a.Engine().Mode() != vim.ModeNormal {
		t.Errorf("mode = %v", a.Engine().Mode())
	}
	a.render() // clamps top to the buffer and must not panic
}
