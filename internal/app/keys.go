package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/vimkit/internal/input/key"
)

// keyToken converts a tcell key event into the engine's token form.
// An empty string means the event has no token and is dropped.
func keyToken(ev *tcell.EventKey) string {
	k := ev.Key()

	// Named keys first: several of them share codes with control chords
	// (Tab is Ctrl-I, Enter is Ctrl-M, Backspace is Ctrl-H).
	switch k {
	case tcell.KeyEscape:
		return key.Escape
	case tcell.KeyEnter:
		return key.Enter
	case tcell.KeyTab:
		return key.Tab
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return key.Backspace
	case tcell.KeyDelete:
		return key.Delete
	case tcell.KeyUp:
		return key.Up
	case tcell.KeyDown:
		return key.Down
	case tcell.KeyLeft:
		return key.Left
	case tcell.KeyRight:
		return key.Right
	case tcell.KeyHome:
		return key.Home
	case tcell.KeyEnd:
		return key.End
	case tcell.KeyPgUp:
		return key.PageUp
	case tcell.KeyPgDn:
		return key.PageDown
	case tcell.KeyInsert:
		return key.Insert
	}

	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return fmt.Sprintf("<c-%c>", 'a'+rune(k-tcell.KeyCtrlA))
	}
	if k == tcell.KeyCtrlSpace {
		return "<c-space>"
	}

	if k == tcell.KeyRune {
		r := ev.Rune()
		if ev.Modifiers()&tcell.ModAlt != 0 {
			return fmt.Sprintf("<a-%c>", r)
		}
		return key.FromRune(r)
	}
	return ""
}
