package app

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/vimkit/internal/engine/buffer"
	"github.com/dshills/vimkit/internal/vim"
)

var (
	styleText     = tcell.StyleDefault
	styleSelected = tcell.StyleDefault.Reverse(true)
	styleStatus   = tcell.StyleDefault.Reverse(true).Bold(true)
	styleTilde    = tcell.StyleDefault.Foreground(tcell.ColorBlue)
)

// modeLabel is the status-line name of each mode.
var modeLabel = map[vim.Mode]string{
	vim.ModeNormal:            "NORMAL",
	vim.ModeInsert:            "INSERT",
	vim.ModeVisual:            "VISUAL",
	vim.ModeVisualLine:        "V-LINE",
	vim.ModeVisualBlock:       "V-BLOCK",
	vim.ModeVisualBlockInsert: "V-INSERT",
	vim.ModeReplace:           "REPLACE",
	vim.ModeSearchInProgress:  "SEARCH",
}

// render redraws the whole screen: buffer text, visual selection,
// cursor and status line.
func (a *App) render() {
	a.screen.Clear()
	width, height := a.screen.Size()
	if height < 2 {
		a.screen.Show()
		return
	}
	view := height - 1

	a.followCursor(view)

	tabstop := a.eng.Context().Options.Get().TabStop
	if tabstop <= 0 {
		tabstop = 4
	}

	for row := 0; row < view; row++ {
		ln := a.top + row
		if ln >= a.buf.LineCount() {
			a.screen.SetContent(0, row, '~', nil, styleTilde)
			continue
		}
		a.drawLine(row, ln, width, tabstop)
	}

	a.drawStatus(width, height-1)

	cur := a.eng.Cursor()
	if row := cur.Line - a.top; row >= 0 && row < view && a.eng.Mode() != vim.ModeSearchInProgress {
		a.screen.ShowCursor(a.visualColumn(cur, tabstop), row)
	} else {
		a.screen.HideCursor()
	}
	a.screen.Show()
}

// drawLine writes one buffer line, expanding tabs and highlighting the
// visual selection.
func (a *App) drawLine(row, ln, width, tabstop int) {
	x := 0
	for col, r := range a.buf.Line(ln) {
		if x >= width {
			return
		}
		style := styleText
		if a.selected(buffer.NewPosition(ln, col)) {
			style = styleSelected
		}
		if r == '\t' {
			next := (x/tabstop + 1) * tabstop
			for ; x < next && x < width; x++ {
				a.screen.SetContent(x, row, ' ', nil, style)
			}
			continue
		}
		a.screen.SetContent(x, row, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}

// selected reports whether p falls inside the active visual selection.
func (a *App) selected(p buffer.Position) bool {
	st := a.eng.State()
	switch a.eng.Mode() {
	case vim.ModeVisual:
		start, stop := buffer.Ordered(st.Anchor, st.Cursor)
		return !p.Before(start) && !stop.Before(p)
	case vim.ModeVisualLine:
		top, bottom := st.Anchor.Line, st.Cursor.Line
		if top > bottom {
			top, bottom = bottom, top
		}
		return p.Line >= top && p.Line <= bottom
	case vim.ModeVisualBlock:
		top, bottom := st.Anchor.Line, st.Cursor.Line
		if top > bottom {
			top, bottom = bottom, top
		}
		left, right := st.Anchor.Character, st.Cursor.Character
		if left > right {
			left, right = right, left
		}
		return p.Line >= top && p.Line <= bottom &&
			p.Character >= left && p.Character <= right
	}
	return false
}

// visualColumn maps a buffer position to its screen column.
func (a *App) visualColumn(p buffer.Position, tabstop int) int {
	x := 0
	line := a.buf.Line(p.Line)
	for col, r := range line {
		if col >= p.Character {
			break
		}
		if r == '\t' {
			x = (x/tabstop + 1) * tabstop
			continue
		}
		x += runewidth.RuneWidth(r)
	}
	return x
}

// followCursor scrolls the viewport so the cursor stays visible with
// the configured scrolloff margin.
func (a *App) followCursor(view int) {
	so := a.eng.Context().Options.Get().ScrollOff
	if so > view/2 {
		so = view / 2
	}
	cur := a.eng.Cursor().Line

	if cur < a.top+so {
		a.top = cur - so
	}
	if cur > a.top+view-1-so {
		a.top = cur - view + 1 + so
	}
	if max := a.buf.LineCount() - view; a.top > max {
		a.top = max
	}
	if a.top < 0 {
		a.top = 0
	}
}

// drawStatus renders the bottom status line.
func (a *App) drawStatus(width, row int) {
	left := " " + modeLabel[a.eng.Mode()]
	if s := a.eng.State().Search; s != nil {
		prompt := "/"
		if s.Direction == vim.SearchBackward {
			prompt = "?"
		}
		left += "  " + prompt + s.Pattern
	}
	if pending := a.eng.PendingKeys(); len(pending) > 0 {
		left += "  " + strings.Join(pending, "")
	}

	name := a.file
	if name == "" {
		name = "[scratch]"
	}
	cur := a.eng.Cursor()
	right := fmt.Sprintf("%s  %d:%d/%d ", name, cur.Line+1, cur.Character+1, a.buf.LineCount())

	x := 0
	for _, r := range left {
		if x >= width {
			break
		}
		a.screen.SetContent(x, row, r, nil, styleStatus)
		x += runewidth.RuneWidth(r)
	}
	pad := width - x - runewidth.StringWidth(right)
	for ; pad > 0 && x < width; pad-- {
		a.screen.SetContent(x, row, ' ', nil, styleStatus)
		x++
	}
	for _, r := range right {
		if x >= width {
			break
		}
		a.screen.SetContent(x, row, r, nil, styleStatus)
		x += runewidth.RuneWidth(r)
	}
}
