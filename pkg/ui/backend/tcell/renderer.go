package tcell

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/museun/too-sub001/pkg/ui/backend"
	"github.com/museun/too-sub001/pkg/ui/compositor"
	"github.com/museun/too-sub001/pkg/ui/geom"
)

// Renderer writes the compositor's commands into a tcell cell buffer.
// Show is called at End.
type Renderer struct {
	screen tcell.Screen
	pen    backend.Pen
	cursor geom.Pos2
}

// NewRenderer creates a renderer drawing onto screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

func (r *Renderer) Begin() error {
	r.cursor = geom.Pos2{}
	return nil
}

func (r *Renderer) End() error {
	r.screen.Show()
	return nil
}

func (r *Renderer) MoveTo(pos geom.Pos2) error {
	r.cursor = pos
	return nil
}

// WriteString places one grapheme cluster per cell, advancing by its width.
func (r *Renderer) WriteString(s string) error {
	style := r.style()
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		runes := gr.Runes()
		r.screen.SetContent(r.cursor.X, r.cursor.Y, runes[0], runes[1:], style)
		r.cursor.X += max(runewidth.StringWidth(gr.Str()), 1)
	}
	return nil
}

func (r *Renderer) SetFG(c compositor.Rgba) error {
	r.pen.SetFG(c)
	return nil
}

func (r *Renderer) SetBG(c compositor.Rgba) error {
	r.pen.SetBG(c)
	return nil
}

func (r *Renderer) SetAttr(a compositor.Attribute) error {
	r.pen.SetAttr(a)
	return nil
}

func (r *Renderer) ResetFG() error {
	r.pen.ResetFG()
	return nil
}

func (r *Renderer) ResetBG() error {
	r.pen.ResetBG()
	return nil
}

// ResetAttr behaves like SGR 0 and also drops both colors.
func (r *Renderer) ResetAttr() error {
	r.pen.Reset()
	return nil
}

func (r *Renderer) ClearScreen() error {
	r.screen.Clear()
	return nil
}

func (r *Renderer) SetTitle(title string) error {
	r.screen.SetTitle(title)
	return nil
}

// SwitchToAltScreen resumes the suspended screen.
func (r *Renderer) SwitchToAltScreen() error {
	return r.screen.Resume()
}

// SwitchToMainScreen suspends the screen, restoring the shell's view.
func (r *Renderer) SwitchToMainScreen() error {
	return r.screen.Suspend()
}

func (r *Renderer) style() tcell.Style {
	return ConvertStyle(&r.pen)
}

// ConvertStyle converts a Pen to a tcell.Style.
func ConvertStyle(p *backend.Pen) tcell.Style {
	style := tcell.StyleDefault
	if fg, ok := p.FG(); ok {
		style = style.Foreground(convertColor(fg))
	}
	if bg, ok := p.BG(); ok {
		style = style.Background(convertColor(bg))
	}

	attrs := p.Attributes()
	if attrs.Has(compositor.AttrBold) {
		style = style.Bold(true)
	}
	if attrs.Has(compositor.AttrFaint) {
		style = style.Dim(true)
	}
	if attrs.Has(compositor.AttrItalic) {
		style = style.Italic(true)
	}
	if attrs.Has(compositor.AttrUnderline) {
		style = style.Underline(true)
	}
	if attrs.Has(compositor.AttrBlink) {
		style = style.Blink(true)
	}
	if attrs.Has(compositor.AttrReverse) {
		style = style.Reverse(true)
	}
	if attrs.Has(compositor.AttrStrikeout) {
		style = style.StrikeThrough(true)
	}
	return style
}

func convertColor(c compositor.Rgba) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Ensure Renderer implements compositor.Renderer
var _ compositor.Renderer = (*Renderer)(nil)
