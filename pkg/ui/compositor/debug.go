package compositor

import (
	"strconv"
	"strings"
)

// DebugRenderer records the command stream as a readable transcript.
// Consecutive writes share one line; spaces are shown as '▒'.
type DebugRenderer struct {
	lines   []string
	ops     []string
	pending strings.Builder
	writing bool
}

// NewDebugRenderer creates an empty transcript.
func NewDebugRenderer() *DebugRenderer {
	return &DebugRenderer{}
}

func (d *DebugRenderer) finishWrite() {
	if d.writing {
		d.lines = append(d.lines, d.pending.String())
		d.pending.Reset()
		d.writing = false
	}
}

func (d *DebugRenderer) entry(op, line string) error {
	d.finishWrite()
	d.ops = append(d.ops, op)
	d.lines = append(d.lines, line)
	return nil
}

// Lines returns the transcript, one entry per line.
func (d *DebugRenderer) Lines() []string {
	d.finishWrite()
	return append([]string(nil), d.lines...)
}

// Ops returns the method names called, in order.
func (d *DebugRenderer) Ops() []string {
	return append([]string(nil), d.ops...)
}

// Reset discards the transcript.
func (d *DebugRenderer) Reset() {
	d.lines = d.lines[:0]
	d.ops = d.ops[:0]
	d.pending.Reset()
	d.writing = false
}

func (d *DebugRenderer) String() string {
	lines := d.Lines()
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

func rgbString(c Rgba) string {
	b := strconv.AppendInt(nil, int64(c.R), 10)
	b = append(b, ',')
	b = strconv.AppendInt(b, int64(c.G), 10)
	b = append(b, ',')
	b = strconv.AppendInt(b, int64(c.B), 10)
	return string(b)
}

func (d *DebugRenderer) Begin() error { return d.entry("begin", "begin") }

func (d *DebugRenderer) End() error { return d.entry("end", "end") }

func (d *DebugRenderer) MoveTo(pos Pos2) error {
	return d.entry("move_to", "  move_to "+pos.String())
}

func (d *DebugRenderer) WriteString(s string) error {
	d.ops = append(d.ops, "write_str")
	if !d.writing {
		d.pending.WriteString("    ")
		d.writing = true
	}
	d.pending.WriteString(strings.ReplaceAll(s, " ", "▒"))
	return nil
}

func (d *DebugRenderer) SetFG(c Rgba) error { return d.entry("set_fg", "  set_fg "+rgbString(c)) }

func (d *DebugRenderer) SetBG(c Rgba) error { return d.entry("set_bg", "  set_bg "+rgbString(c)) }

func (d *DebugRenderer) SetAttr(a Attribute) error {
	return d.entry("set_attr", "  set_attr "+a.String())
}

func (d *DebugRenderer) ResetFG() error { return d.entry("reset_fg", "  reset_fg") }

func (d *DebugRenderer) ResetBG() error { return d.entry("reset_bg", "  reset_bg") }

func (d *DebugRenderer) ResetAttr() error { return d.entry("reset_attr", "  reset_attr") }

func (d *DebugRenderer) ClearScreen() error { return d.entry("clear_screen", "  clear_screen") }

func (d *DebugRenderer) SetTitle(title string) error {
	return d.entry("set_title", "  set_title "+title)
}

func (d *DebugRenderer) SwitchToAltScreen() error {
	return d.entry("switch_alt_screen", "  switch_alt_screen")
}

func (d *DebugRenderer) SwitchToMainScreen() error {
	return d.entry("switch_main_screen", "  switch_main_screen")
}

var _ Renderer = (*DebugRenderer)(nil)
