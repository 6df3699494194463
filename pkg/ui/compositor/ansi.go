package compositor

import (
	"bufio"
	"io"
	"strconv"
)

// ANSI escape sequences.
const (
	ANSIEscape         = "\x1b["
	ANSIClearScreen    = "\x1b[2J"
	ANSICursorHome     = "\x1b[H"
	ANSICursorHide     = "\x1b[?25l"
	ANSICursorShow     = "\x1b[?25h"
	ANSIReset          = "\x1b[0m"
	ANSIResetFG        = "\x1b[39m"
	ANSIResetBG        = "\x1b[49m"
	ANSIAltScreen      = "\x1b[?1049h"
	ANSIMainScreen     = "\x1b[?1049l"
	ANSISyncBegin      = "\x1b[?2026h"
	ANSISyncEnd        = "\x1b[?2026l"
	ANSIMouseEnable    = "\x1b[?1000h\x1b[?1002h\x1b[?1006h"
	ANSIMouseDisable   = "\x1b[?1006l\x1b[?1002l\x1b[?1000l"
	ANSIFocusEnable    = "\x1b[?1004h"
	ANSIFocusDisable   = "\x1b[?1004l"
	ANSIPasteEnable    = "\x1b[?2004h"
	ANSIPasteDisable   = "\x1b[?2004l"
	bytesPerCellBudget = 21
	minBufferSize      = 4096
)

// CursorTo returns ANSI sequence to move cursor to (x, y).
// Coordinates are 0-indexed, but ANSI uses 1-indexed.
func CursorTo(x, y int) string {
	b := appendCursorTo(nil, x, y)
	return string(b)
}

func appendCursorTo(b []byte, x, y int) []byte {
	b = append(b, ANSIEscape...)
	b = strconv.AppendInt(b, int64(y+1), 10)
	b = append(b, ';')
	b = strconv.AppendInt(b, int64(x+1), 10)
	return append(b, ";H"...)
}

// TermRenderer writes the diff command stream as ANSI escape sequences.
// Output is buffered and flushed at End and at screen-level commands.
type TermRenderer struct {
	out     io.Writer
	w       *bufio.Writer
	scratch []byte
}

// NewTermRenderer creates a renderer for a terminal of the given size.
func NewTermRenderer(out io.Writer, size Vec2) *TermRenderer {
	return &TermRenderer{
		out:     out,
		w:       bufio.NewWriterSize(out, bufferSize(size)),
		scratch: make([]byte, 0, 64),
	}
}

func bufferSize(size Vec2) int {
	return max(size.Area()*bytesPerCellBudget, minBufferSize)
}

// Resize grows or shrinks the output buffer for a new terminal size.
// Pending output is flushed first.
func (t *TermRenderer) Resize(size Vec2) error {
	if err := t.w.Flush(); err != nil {
		return err
	}
	t.w = bufio.NewWriterSize(t.out, bufferSize(size))
	return nil
}

// Flush writes any buffered output.
func (t *TermRenderer) Flush() error {
	return t.w.Flush()
}

func (t *TermRenderer) write(s string) error {
	_, err := t.w.WriteString(s)
	return err
}

func (t *TermRenderer) writeFlush(s string) error {
	if err := t.write(s); err != nil {
		return err
	}
	return t.w.Flush()
}

func (t *TermRenderer) Begin() error { return t.write(ANSISyncBegin) }

func (t *TermRenderer) End() error { return t.writeFlush(ANSISyncEnd) }

func (t *TermRenderer) MoveTo(pos Pos2) error {
	t.scratch = appendCursorTo(t.scratch[:0], pos.X, pos.Y)
	_, err := t.w.Write(t.scratch)
	return err
}

func (t *TermRenderer) WriteString(s string) error { return t.write(s) }

func (t *TermRenderer) color(prefix string, c Rgba) error {
	b := append(t.scratch[:0], ANSIEscape...)
	b = append(b, prefix...)
	b = strconv.AppendInt(b, int64(c.R), 10)
	b = append(b, ';')
	b = strconv.AppendInt(b, int64(c.G), 10)
	b = append(b, ';')
	b = strconv.AppendInt(b, int64(c.B), 10)
	b = append(b, 'm')
	t.scratch = b
	_, err := t.w.Write(b)
	return err
}

func (t *TermRenderer) SetFG(c Rgba) error { return t.color("38;2;", c) }

func (t *TermRenderer) SetBG(c Rgba) error { return t.color("48;2;", c) }

// SetAttr writes one SGR sequence per set attribute bit.
func (t *TermRenderer) SetAttr(a Attribute) error {
	b := t.scratch[:0]
	for _, code := range a.Codes() {
		b = append(b, ANSIEscape...)
		b = strconv.AppendInt(b, int64(code), 10)
		b = append(b, 'm')
	}
	t.scratch = b
	_, err := t.w.Write(b)
	return err
}

func (t *TermRenderer) ResetFG() error { return t.write(ANSIResetFG) }

func (t *TermRenderer) ResetBG() error { return t.write(ANSIResetBG) }

func (t *TermRenderer) ResetAttr() error { return t.write(ANSIReset) }

func (t *TermRenderer) ClearScreen() error { return t.write(ANSIClearScreen) }

func (t *TermRenderer) SetTitle(title string) error {
	return t.writeFlush("\x1b]2;" + title + "\x07")
}

func (t *TermRenderer) SwitchToAltScreen() error { return t.writeFlush(ANSIAltScreen) }

func (t *TermRenderer) SwitchToMainScreen() error { return t.writeFlush(ANSIMainScreen) }

// ShowCursor writes the show-cursor sequence immediately.
func (t *TermRenderer) ShowCursor() error { return t.writeFlush(ANSICursorShow) }

// HideCursor writes the hide-cursor sequence immediately.
func (t *TermRenderer) HideCursor() error { return t.writeFlush(ANSICursorHide) }

var _ Renderer = (*TermRenderer)(nil)
