// Package config holds the editing options that shape keystroke
// interpretation, loaded from a TOML file with optional live reload.
package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// Options are the tunables consulted while interpreting keystrokes.
type Options struct {
	// ShiftWidth is the indent step used by the > and < operators.
	ShiftWidth int `toml:"shiftwidth"`

	// TabStop is the display width of a tab character.
	TabStop int `toml:"tabstop"`

	// ExpandTab inserts spaces instead of a tab for indentation.
	ExpandTab bool `toml:"expandtab"`

	// IgnoreCase makes searches case-insensitive.
	IgnoreCase bool `toml:"ignorecase"`

	// SmartCase overrides IgnoreCase when the pattern has an upper-case
	// character.
	SmartCase bool `toml:"smartcase"`

	// WrapScan lets searches continue from the other end of the buffer.
	WrapScan bool `toml:"wrapscan"`

	// ScrollOff is the minimum number of lines kept visible around the
	// cursor when scrolling.
	ScrollOff int `toml:"scrolloff"`

	// UndoLevels bounds the undo stack depth. Zero means unbounded.
	UndoLevels int `toml:"undolevels"`

	// StartInInsertMode selects the mode a fresh session begins in.
	StartInInsertMode bool `toml:"startininsertmode"`
}

// Default returns the option values used when no file overrides them.
func Default() Options {
	return Options{
		ShiftWidth: 4,
		TabStop:    4,
		IgnoreCase: false,
		SmartCase:  false,
		WrapScan:   true,
		ScrollOff:  0,
		UndoLevels: 1000,
	}
}

// Indent returns the string one shift of indentation inserts.
func (o Options) Indent() string {
	if o.ExpandTab {
		w := o.ShiftWidth
		if w <= 0 {
			w = 4
		}
		b := make([]byte, w)
		for i := range b {
			b[i] = ' '
		}
		return string(b)
	}
	return "\t"
}

// Load reads options from the TOML file at path, layered over Default.
// A missing file is not an error; the defaults come back unchanged.
func Load(path string) (Options, error) {
	opts := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return opts, nil
		}
		return opts, fmt.Errorf("reading options file %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("parsing options file %s: %w", path, err)
	}
	return opts, nil
}

// Store is a concurrency-safe holder for the live option values.
type Store struct {
	mu   sync.RWMutex
	opts Options
}

// NewStore returns a Store seeded with opts.
func NewStore(opts Options) *Store {
	return &Store{opts: opts}
}

// Get returns the current options.
func (s *Store) Get() Options {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.opts
}

// Set replaces the current options.
func (s *Store) Set(opts Options) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts = opts
}
