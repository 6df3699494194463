package backend

import "github.com/museun/too-sub001/pkg/ui/compositor"

// Pen tracks the colors and attributes set through a Renderer, for
// backends that write styled cells instead of escape sequences.
// The zero value draws with terminal defaults.
type Pen struct {
	fg    compositor.Rgba
	bg    compositor.Rgba
	hasFG bool
	hasBG bool
	attrs compositor.Attribute
}

// SetFG sets the foreground color.
func (p *Pen) SetFG(c compositor.Rgba) {
	p.fg = c
	p.hasFG = true
}

// SetBG sets the background color.
func (p *Pen) SetBG(c compositor.Rgba) {
	p.bg = c
	p.hasBG = true
}

// SetAttr adds attributes to the current set.
func (p *Pen) SetAttr(a compositor.Attribute) {
	p.attrs |= a
}

// ResetFG returns the foreground to the terminal default.
func (p *Pen) ResetFG() { p.hasFG = false }

// ResetBG returns the background to the terminal default.
func (p *Pen) ResetBG() { p.hasBG = false }

// ResetAttr clears all attributes.
func (p *Pen) ResetAttr() { p.attrs = compositor.AttrReset }

// Reset returns everything to the terminal default.
func (p *Pen) Reset() { *p = Pen{} }

// FG returns the foreground and whether one is set.
func (p *Pen) FG() (compositor.Rgba, bool) { return p.fg, p.hasFG }

// BG returns the background and whether one is set.
func (p *Pen) BG() (compositor.Rgba, bool) { return p.bg, p.hasBG }

// Attributes returns the current attribute set.
func (p *Pen) Attributes() compositor.Attribute { return p.attrs }
