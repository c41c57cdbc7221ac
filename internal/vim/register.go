package vim

import (
	"strings"
	"sync"
	"unicode"
)

// Register is one storage slot: a string for character- and line-wise
// content, or an ordered list of per-line strings for block-wise.
type Register struct {
	Content string
	Block   []string
	Mode    RegisterMode
}

// Text returns the register content as a single string.
func (r Register) Text() string {
	if r.Mode == RegisterBlockWise {
		return strings.Join(r.Block, "\n")
	}
	return r.Content
}

// RegisterStore holds the named registers of one session: a-z (A-Z
// appends), numbered 0-9 with delete rotation, unnamed ", small-delete -
// and the discarding black hole _. Safe for concurrent use.
type RegisterStore struct {
	mu   sync.RWMutex
	regs map[rune]Register
}

// NewRegisterStore returns an empty store.
func NewRegisterStore() *RegisterStore {
	return &RegisterStore{regs: make(map[rune]Register)}
}

// Get returns the register under name. Upper-case names read their
// lower-case slot.
func (rs *RegisterStore) Get(name rune) (Register, bool) {
	if unicode.IsUpper(name) {
		name = unicode.ToLower(name)
	}
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	reg, ok := rs.regs[name]
	return reg, ok
}

// set writes reg under name, appending when name is upper-case.
func (rs *RegisterStore) set(name rune, reg Register) {
	if name == '_' {
		return
	}
	if unicode.IsUpper(name) {
		lower := unicode.ToLower(name)
		if prev, ok := rs.regs[lower]; ok {
			reg.Content = prev.Content + reg.Content
			reg.Block = append(append([]string(nil), prev.Block...), reg.Block...)
			if prev.Mode == RegisterLineWise {
				reg.Mode = RegisterLineWise
			}
		}
		name = lower
	}
	rs.regs[name] = reg
}

// RecordYank stores yanked text. name 0 targets the defaults: the
// unnamed register and yank register 0.
func (rs *RegisterStore) RecordYank(name rune, reg Register) {
	if name == '_' {
		return
	}
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if name != 0 {
		rs.set(name, reg)
		rs.regs['"'] = rs.regs[unicode.ToLower(name)]
		return
	}
	rs.regs['"'] = reg
	rs.regs['0'] = reg
}

// RecordDelete stores deleted text. Unnamed deletes rotate registers
// 1-9; a small (within-line, character-wise) delete goes to - instead
// of the rotation.
func (rs *RegisterStore) RecordDelete(name rune, reg Register, small bool) {
	if name == '_' {
		return
	}
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if name != 0 {
		rs.set(name, reg)
		rs.regs['"'] = rs.regs[unicode.ToLower(name)]
		return
	}
	rs.regs['"'] = reg
	if small {
		rs.regs['-'] = reg
		return
	}
	for n := '9'; n > '1'; n-- {
		if prev, ok := rs.regs[n-1]; ok {
			rs.regs[n] = prev
		}
	}
	rs.regs['1'] = reg
}
