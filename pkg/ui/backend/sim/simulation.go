// Package sim provides a simulation backend for testing.
package sim

import (
	"strings"
	"sync"

	tcellv2 "github.com/gdamore/tcell/v2"

	"github.com/museun/too-sub001/pkg/ui/backend"
	"github.com/museun/too-sub001/pkg/ui/backend/tcell"
	"github.com/museun/too-sub001/pkg/ui/compositor"
	"github.com/museun/too-sub001/pkg/ui/geom"
)

// Backend is a testable backend using tcell's simulation screen.
type Backend struct {
	*tcell.Backend
	screen tcellv2.SimulationScreen
	mu     sync.Mutex
}

// New creates a new simulation backend with the given dimensions.
func New(width, height int) *Backend {
	return NewWithConfig(width, height, backend.DefaultTermConfig())
}

// NewWithConfig creates a simulation backend with a custom terminal config.
func NewWithConfig(width, height int, cfg backend.TermConfig) *Backend {
	screen := tcellv2.NewSimulationScreen("")
	screen.SetSize(width, height)

	return &Backend{
		Backend: tcell.NewWithScreen(screen, cfg),
		screen:  screen,
	}
}

// Resize changes the simulation screen size without reporting it.
func (s *Backend) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.screen.SetSize(width, height)
}

// InjectKey injects a key event into the simulation.
func (s *Backend) InjectKey(key tcellv2.Key, r rune, mod tcellv2.ModMask) {
	s.screen.InjectKey(key, r, mod)
}

// InjectRune injects a regular character keypress.
func (s *Backend) InjectRune(r rune) {
	s.InjectKey(tcellv2.KeyRune, r, tcellv2.ModNone)
}

// InjectString injects a string as a sequence of key events.
func (s *Backend) InjectString(str string) {
	for _, r := range str {
		s.InjectRune(r)
	}
}

// InjectMouse injects a mouse report with the given buttons held.
func (s *Backend) InjectMouse(pos geom.Pos2, buttons tcellv2.ButtonMask, mod tcellv2.ModMask) {
	s.screen.InjectMouse(pos.X, pos.Y, buttons, mod)
}

// InjectResize resizes the screen and reports it.
func (s *Backend) InjectResize(width, height int) {
	s.mu.Lock()
	s.screen.SetSize(width, height)
	s.mu.Unlock()
	_ = s.screen.PostEvent(tcellv2.NewEventResize(width, height))
}

// Capture captures the current screen content as a string.
func (s *Backend) Capture() string {
	s.mu.Lock()
	w, h := s.screen.Size()
	s.mu.Unlock()
	return s.CaptureRegion(geom.RectFromSize(geom.Vec(w, h)))
}

// CaptureCell returns the content and style of a single cell.
func (s *Backend) CaptureCell(pos geom.Pos2) compositor.Cell {
	s.mu.Lock()
	defer s.mu.Unlock()

	mainc, comb, style, _ := s.screen.GetContent(pos.X, pos.Y)
	fg, bg, attr := convertTcellStyle(style)

	if len(comb) > 0 {
		g := compositor.NewGrapheme(string(mainc) + string(comb))
		return g.WithFG(fg).WithBG(bg).WithAttr(attr).Cell()
	}
	if mainc == 0 {
		mainc = ' '
	}
	return compositor.NewPixel(mainc).WithFG(fg).WithBG(bg).WithAttr(attr).Cell()
}

// CaptureRegion captures a rectangular region of the screen. Wide
// characters occupy one rune followed by their continuation columns.
func (s *Backend) CaptureRegion(r geom.Rect) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var lines []string
	for row := r.Top(); row < r.Bottom(); row++ {
		var line strings.Builder
		for col := r.Left(); col < r.Right(); {
			mainc, comb, _, width := s.screen.GetContent(col, row)
			if mainc == 0 {
				mainc = ' '
			}
			line.WriteRune(mainc)
			for _, c := range comb {
				line.WriteRune(c)
			}
			col += max(width, 1)
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

// FindText searches for text on the screen and returns its position.
func (s *Backend) FindText(text string) (geom.Pos2, bool) {
	capture := s.Capture()
	lines := strings.Split(capture, "\n")

	for row, line := range lines {
		if col := strings.Index(line, text); col >= 0 {
			return geom.Pt(len([]rune(line[:col])), row), true
		}
	}
	return geom.Pos2{}, false
}

// ContainsText returns true if the text appears anywhere on screen.
func (s *Backend) ContainsText(text string) bool {
	_, ok := s.FindText(text)
	return ok
}

// convertTcellStyle maps a tcell style back into compositor terms.
func convertTcellStyle(ts tcellv2.Style) (fg, bg compositor.Color, attr compositor.Attribute) {
	tfg, tbg, tattrs := ts.Decompose()

	if tattrs&tcellv2.AttrBold != 0 {
		attr |= compositor.AttrBold
	}
	if tattrs&tcellv2.AttrDim != 0 {
		attr |= compositor.AttrFaint
	}
	if tattrs&tcellv2.AttrItalic != 0 {
		attr |= compositor.AttrItalic
	}
	if tattrs&tcellv2.AttrUnderline != 0 {
		attr |= compositor.AttrUnderline
	}
	if tattrs&tcellv2.AttrBlink != 0 {
		attr |= compositor.AttrBlink
	}
	if tattrs&tcellv2.AttrReverse != 0 {
		attr |= compositor.AttrReverse
	}
	if tattrs&tcellv2.AttrStrikeThrough != 0 {
		attr |= compositor.AttrStrikeout
	}
	return convertTcellColor(tfg), convertTcellColor(tbg), attr
}

// convertTcellColor converts a tcell color to a compositor color.
// Palette colors are reported as their RGB equivalents.
func convertTcellColor(tc tcellv2.Color) compositor.Color {
	if tc == tcellv2.ColorDefault {
		return compositor.ColorReset
	}
	r, g, b := tc.RGB()
	if r < 0 {
		return compositor.ColorReset
	}
	return compositor.ColorSet(compositor.RGB(uint8(r), uint8(g), uint8(b)))
}

// Ensure Backend implements backend.Backend
var _ backend.Backend = (*Backend)(nil)
