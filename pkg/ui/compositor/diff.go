package compositor

import "github.com/rivo/uniseg"

// DiffStats records what the last render walk did.
type DiffStats struct {
	TotalCells   int
	ChangedCells int
	SkippedCells int // unchanged cells and continuations
	StyleChanges int
	CursorJumps  int
}

// cursorState caches what the terminal was last told so unchanged
// style and position commands can be elided.
type cursorState struct {
	hasLast   bool
	last      Pos2
	lastWidth int

	hasAttr bool
	attr    Attribute
	hasFG   bool
	fg      Color
	hasBG   bool
	bg      Color
}

// move reports whether a cursor move is needed to write at pos.
func (s *cursorState) move(pos Pos2, width int) bool {
	need := !s.hasLast || s.last.Y != pos.Y || s.last.X+s.lastWidth != pos.X
	s.hasLast = true
	s.last = pos
	s.lastWidth = width
	return need
}

// attribute reports whether a must be emitted and whether the terminal
// has to be reset first. A reset is needed when a drops bits the terminal
// still has set.
func (s *cursorState) attribute(a Attribute) (emit, reset bool) {
	if s.hasAttr && s.attr == a {
		return false, false
	}
	reset = a == AttrReset || (s.hasAttr && s.attr&^a != 0)
	s.hasAttr = true
	s.attr = a
	return true, reset
}

// reset records that SGR 0 was sent, which also restores both colors.
func (s *cursorState) reset() {
	s.hasFG, s.fg = true, ColorReset
	s.hasBG, s.bg = true, ColorReset
}

func (s *cursorState) color(c Color, justReset bool, has *bool, cache *Color) (Color, bool) {
	if c.Mode == ColorModeReuse {
		return Color{}, false
	}
	if justReset {
		*has, *cache = true, c
		return c, true
	}
	if *has && *cache == c {
		return Color{}, false
	}
	*has, *cache = true, c
	return c, true
}

// renderDiff walks front and back row-major and emits the commands needed
// to turn front into back. It does not modify either grid.
// When clearFirst is set the screen is cleared before any cell is written.
func renderDiff(front, back []Cell, width int, clearFirst bool, r Renderer) (DiffStats, error) {
	stats := DiffStats{TotalCells: len(back)}
	if err := r.Begin(); err != nil {
		return stats, err
	}
	if clearFirst {
		if err := r.ClearScreen(); err != nil {
			return stats, err
		}
	}

	var state cursorState
	emitted := false

	for i := range back {
		f, b := front[i], back[i]

		if b.Kind == CellContinuation || (b.Kind == CellEmpty && f.Kind == CellEmpty) || f == b {
			stats.SkippedCells++
			continue
		}
		// An erased cell over old content is painted as a default blank.
		if b.Kind == CellEmpty {
			b = DefaultPixel.Cell()
		}

		pos := Pos2{X: i % width, Y: i / width}
		cellWidth := max(b.Width(), 1)
		emitted = true
		stats.ChangedCells++

		if state.move(pos, cellWidth) {
			stats.CursorJumps++
			if err := r.MoveTo(pos); err != nil {
				return stats, err
			}
		}

		justReset := false
		if emit, reset := state.attribute(b.Attr); emit {
			stats.StyleChanges++
			if reset {
				justReset = true
				state.reset()
				if err := r.ResetAttr(); err != nil {
					return stats, err
				}
			}
			if b.Attr != AttrReset {
				if err := r.SetAttr(b.Attr); err != nil {
					return stats, err
				}
			}
		}

		if fg, ok := state.color(b.FG, justReset, &state.hasFG, &state.fg); ok {
			stats.StyleChanges++
			var err error
			if fg.Mode == ColorModeReset {
				err = r.ResetFG()
			} else {
				err = r.SetFG(fg.RGBA)
			}
			if err != nil {
				return stats, err
			}
		}

		if bg, ok := state.color(b.BG, justReset, &state.hasBG, &state.bg); ok {
			stats.StyleChanges++
			var err error
			if bg.Mode == ColorModeReset {
				err = r.ResetBG()
			} else {
				err = r.SetBG(bg.RGBA)
			}
			if err != nil {
				return stats, err
			}
		}

		if err := writeCell(r, b, width-pos.X); err != nil {
			return stats, err
		}
	}

	if emitted {
		if state.move(Pos2{}, 0) {
			if err := r.MoveTo(Pos2{}); err != nil {
				return stats, err
			}
		}
		if err := r.ResetBG(); err != nil {
			return stats, err
		}
		if err := r.ResetFG(); err != nil {
			return stats, err
		}
		if err := r.ResetAttr(); err != nil {
			return stats, err
		}
	}

	return stats, r.End()
}

// writeCell writes the text of c, never past available columns.
func writeCell(r Renderer, c Cell, available int) error {
	switch c.Kind {
	case CellPixel:
		ch := c.Char
		if isControl(ch) {
			ch = ' '
		}
		return r.WriteString(string(ch))
	case CellGrapheme:
		state := -1
		rest := c.Cluster
		var cluster string
		var w int
		for len(rest) > 0 {
			cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
			if w > available {
				break
			}
			available -= w
			if err := r.WriteString(cluster); err != nil {
				return err
			}
		}
	}
	return nil
}

func isControl(r rune) bool {
	return r < 0x20 || (r >= 0x7f && r < 0xa0)
}
