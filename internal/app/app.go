package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/vimkit/internal/config"
	"github.com/dshills/vimkit/internal/engine/buffer"
	"github.com/dshills/vimkit/internal/vim"
)

// Options configures a front-end session.
type Options struct {
	// ConfigPath is the TOML options file. Empty disables loading and
	// live reload.
	ConfigPath string

	// File is the file to edit. Empty opens a scratch buffer.
	File string

	// LogLevel selects the minimum level written to the log output.
	LogLevel string
}

// App couples one engine session to a tcell screen.
type App struct {
	screen  tcell.Screen
	buf     *buffer.Memory
	eng     *vim.Engine
	watcher *config.Watcher
	log     *Logger

	file string
	top  int
}

// New builds the session: options are loaded from disk, the file (when
// named) is read into the buffer, and the engine is created over it.
func New(opts Options) (*App, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	return NewWithScreen(opts, screen)
}

// NewWithScreen is New with an injected screen, used by tests with
// tcell's simulation screen.
func NewWithScreen(opts Options, screen tcell.Screen) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	lines, err := readLines(opts.File)
	if err != nil {
		return nil, err
	}

	a := &App{
		screen: screen,
		buf:    buffer.NewMemory(lines...),
		log:    NewLogger(ParseLogLevel(opts.LogLevel), nil),
		file:   opts.File,
	}
	a.buf.OnCommand = a.runEditorCommand
	a.eng = vim.New(a.buf, cfg)
	a.log = a.log.With("session", a.eng.ID())

	if opts.ConfigPath != "" {
		w, err := config.Watch(a.eng.Context().Options, opts.ConfigPath, func(o config.Options, err error) {
			if err != nil {
				a.log.Warn("options reload failed: %v", err)
				return
			}
			a.log.Info("options reloaded")
		})
		if err != nil {
			a.log.Warn("options watch unavailable: %v", err)
		} else {
			a.watcher = w
		}
	}
	return a, nil
}

func readLines(path string) ([]string, error) {
	if path == "" {
		return []string{""}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{""}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n"), nil
}

// Run drives the event loop until the user quits with Ctrl-Q.
func (a *App) Run() error {
	if err := a.screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer a.screen.Fini()

	a.render()
	for {
		switch ev := a.screen.PollEvent().(type) {
		case *tcell.EventResize:
			a.screen.Sync()
		case *tcell.EventKey:
			token := keyToken(ev)
			switch token {
			case "":
				continue
			case "<c-q>":
				return nil
			case "<c-s>":
				if err := a.save(); err != nil {
					a.log.Error("save failed: %v", err)
				}
			default:
				if err := a.eng.HandleKey(token); err != nil {
					a.log.Warn("key %q: %v", token, err)
				}
			}
		case nil:
			return nil
		}
		a.render()
	}
}

// Shutdown releases resources outside the screen's own lifecycle.
func (a *App) Shutdown() {
	if a.watcher != nil {
		_ = a.watcher.Close()
	}
}

// Engine exposes the session engine for tests.
func (a *App) Engine() *vim.Engine { return a.eng }

func (a *App) save() error {
	if a.file == "" {
		return nil
	}
	text := strings.Join(a.buf.Lines(), "\n") + "\n"
	if err := os.WriteFile(a.file, []byte(text), 0o644); err != nil {
		return err
	}
	a.log.Info("wrote %s (%d lines)", a.file, a.buf.LineCount())
	return nil
}

// runEditorCommand services the engine's host-editor requests. The
// demo front end only has a viewport to scroll; everything else is
// acknowledged and logged.
func (a *App) runEditorCommand(name string, args map[string]any) error {
	switch name {
	case buffer.CommandScroll:
		if lines, ok := args["lines"].(int); ok {
			a.top += lines
		}
		return nil
	default:
		a.log.Debug("editor command %s ignored", name)
		return nil
	}
}
