package vim

import (
	"unicode/utf8"

	"github.com/dshills/vimkit/internal/engine/buffer"
	"github.com/dshills/vimkit/internal/engine/motion"
	"github.com/dshills/vimkit/internal/input/key"
)

// handleInsertKey processes one key while in Insert mode.
func (e *Engine) handleInsertKey(token string) error {
	e.dotKeys = append(e.dotKeys, token)
	buf := e.ctx.Buffer
	cur := e.st.Cursor

	switch {
	case isEscape(token):
		// Leaving insert steps the cursor one column left.
		p := cur
		if p.Character > 0 {
			p = motion.Left(buf, p, false)
		}
		e.st.SetCursor(p.ClampToContent(buf), false)
		e.st.Mode = ModeNormal
		e.finishDotCapture()
		return nil

	case token == key.Backspace:
		if cur.Character > 0 {
			prev := motion.Left(buf, cur, false)
			if err := buf.Delete(prev, cur); err != nil {
				return err
			}
			e.st.SetCursor(prev, false)
		} else if cur.Line > 0 {
			prev := buffer.NewPosition(cur.Line-1, len(buf.Line(cur.Line-1)))
			if err := buf.Delete(prev, cur); err != nil {
				return err
			}
			e.st.SetCursor(prev, false)
		}
		return nil

	case token == key.Enter:
		if err := buf.Insert(cur, "\n"); err != nil {
			return err
		}
		e.st.SetCursor(buffer.NewPosition(cur.Line+1, 0), false)
		return nil

	case token == key.Tab:
		return e.insertText(cur, "\t")

	case key.IsPrintable(token):
		return e.insertText(cur, token)
	}
	return nil
}

func (e *Engine) insertText(at buffer.Position, text string) error {
	if err := e.ctx.Buffer.Insert(at, text); err != nil {
		return err
	}
	e.st.SetCursor(at.WithCharacter(at.Character+len(text)), false)
	return nil
}

// handleReplaceKey processes one key while in Replace mode. Typed
// characters overwrite in place without touching registers; backspace
// restores overwritten characters while still inside the replace span.
func (e *Engine) handleReplaceKey(token string) error {
	e.dotKeys = append(e.dotKeys, token)
	buf := e.ctx.Buffer
	cur := e.st.Cursor
	rs := e.st.Replace

	switch {
	case isEscape(token):
		p := cur
		if p.Character > 0 {
			p = motion.Left(buf, p, false)
		}
		e.st.SetCursor(p.ClampToContent(buf), false)
		e.st.Mode = ModeNormal
		e.st.Replace = nil
		e.finishDotCapture()
		return nil

	case token == key.Backspace:
		if cur.Character == 0 {
			return nil
		}
		prev := motion.Left(buf, cur, false)
		if rs != nil && !prev.Before(rs.Start) && len(rs.Overwritten) > 0 {
			// Still inside the replace span: put the original back.
			orig := rs.Overwritten[len(rs.Overwritten)-1]
			rs.Overwritten = rs.Overwritten[:len(rs.Overwritten)-1]
			if err := buf.Replace(prev, cur, orig); err != nil {
				return err
			}
		}
		e.st.SetCursor(prev, false)
		return nil

	case key.IsPrintable(token):
		line := buf.Line(cur.Line)
		if cur.Character < len(line) {
			_, size := utf8.DecodeRuneInString(line[cur.Character:])
			end := cur.WithCharacter(cur.Character + size)
			if rs != nil {
				rs.Overwritten = append(rs.Overwritten, line[cur.Character:cur.Character+size])
			}
			if err := buf.Replace(cur, end, token); err != nil {
				return err
			}
		} else {
			if rs != nil {
				rs.Overwritten = append(rs.Overwritten, "")
			}
			if err := buf.Insert(cur, token); err != nil {
				return err
			}
		}
		e.st.SetCursor(cur.WithCharacter(cur.Character+len(token)), false)
		return nil
	}
	return nil
}

// handleSearchKey processes one key while a / or ? pattern is being
// typed. Every edit to the pattern previews the next match.
func (e *Engine) handleSearchKey(token string) error {
	e.dotKeys = append(e.dotKeys, token)
	s := e.st.Search

	switch {
	case isEscape(token):
		// Cancel: back to where the search started, nothing committed.
		e.st.SetCursor(s.Start, false)
		e.st.Mode = ModeNormal
		e.st.Search = nil
		return nil

	case token == key.Enter:
		e.st.LastSearch = s
		if p, ok := s.NextMatch(e.ctx, s.Start); ok {
			e.st.SetCursor(p, false)
		} else {
			e.st.SetCursor(s.Start, false)
		}
		e.st.Mode = ModeNormal
		e.st.Search = nil
		return nil

	case token == key.Backspace:
		if len(s.Pattern) > 0 {
			s.Pattern = s.Pattern[:prevRune(s.Pattern, len(s.Pattern))]
		}
		e.previewSearch()
		return nil

	case key.IsPrintable(token):
		s.Pattern += token
		e.previewSearch()
		return nil
	}
	return nil
}

func (e *Engine) previewSearch() {
	s := e.st.Search
	if p, ok := s.NextMatch(e.ctx, s.Start); ok {
		e.st.SetCursor(p, false)
		return
	}
	e.st.SetCursor(s.Start, false)
}

// handleBlockInsertKey processes typing during a visual-block insert.
// Text lands live on the block's top line; leaving with escape
// replicates it onto every other covered line, clamped to each line's
// own length.
func (e *Engine) handleBlockInsertKey(token string) error {
	e.dotKeys = append(e.dotKeys, token)
	buf := e.ctx.Buffer
	cur := e.st.Cursor

	switch {
	case isEscape(token):
		if e.blockActive && e.blockTyped != "" {
			for ln := e.blockTop + 1; ln <= e.blockBottom; ln++ {
				col := e.blockCol
				if n := len(buf.Line(ln)); col > n {
					col = n
				}
				if err := buf.Insert(buffer.NewPosition(ln, col), e.blockTyped); err != nil {
					return err
				}
			}
		}
		e.blockActive = false
		e.blockTyped = ""
		p := cur
		if p.Character > 0 {
			p = motion.Left(buf, p, false)
		}
		e.st.SetCursor(p.ClampToContent(buf), false)
		e.st.Mode = ModeNormal
		e.finishDotCapture()
		return nil

	case token == key.Backspace:
		if e.blockTyped == "" || cur.Character == 0 {
			return nil
		}
		prev := motion.Left(buf, cur, false)
		if err := buf.Delete(prev, cur); err != nil {
			return err
		}
		e.blockTyped = e.blockTyped[:prevRune(e.blockTyped, len(e.blockTyped))]
		e.st.SetCursor(prev, false)
		return nil

	case token == key.Tab:
		e.blockTyped += "\t"
		return e.insertText(cur, "\t")

	case key.IsPrintable(token):
		e.blockTyped += token
		return e.insertText(cur, token)
	}
	return nil
}
