package vim

import (
	"github.com/dshills/vimkit/internal/config"
	"github.com/dshills/vimkit/internal/engine/buffer"
	"github.com/dshills/vimkit/internal/engine/history"
)

// Context bundles the collaborators an action executes against: the
// host buffer, the undo history and mark table, the register store and
// the live options.
type Context struct {
	Buffer    *buffer.Memory
	History   *history.History
	Marks     *history.Marks
	Registers *RegisterStore
	Options   *config.Store
}

// NewContext wires a Context around buf with fresh collaborators.
func NewContext(buf *buffer.Memory, opts config.Options) *Context {
	return &Context{
		Buffer:    buf,
		History:   history.New(opts.UndoLevels),
		Marks:     history.NewMarks(),
		Registers: NewRegisterStore(),
		Options:   config.NewStore(opts),
	}
}
