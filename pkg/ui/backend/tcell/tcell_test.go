package tcell

import (
	"reflect"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/museun/too-sub001/pkg/ui/backend"
	"github.com/museun/too-sub001/pkg/ui/compositor"
	"github.com/museun/too-sub001/pkg/ui/geom"
	"github.com/museun/too-sub001/pkg/ui/terminal"
)

func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	screen.SetSize(20, 5)
	return NewWithScreen(screen, backend.DefaultTermConfig())
}

func TestConvertKey(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		key  terminal.Key
		mods terminal.Modifiers
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), terminal.Char('x'), terminal.ModNone},
		{"alt rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), terminal.Char('x'), terminal.ModAlt},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), terminal.Named(terminal.KeyTab), terminal.ModNone},
		{"backtab", tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModNone), terminal.Named(terminal.KeyTab), terminal.ModShift},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), terminal.Named(terminal.KeyEnter), terminal.ModNone},
		{"backspace2", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), terminal.Named(terminal.KeyBackspace), terminal.ModNone},
		{"page down", tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone), terminal.Named(terminal.KeyPageDown), terminal.ModNone},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), terminal.Char('c'), terminal.ModCtrl},
		{"f1", tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone), terminal.Function(1), terminal.ModNone},
		{"f12 shift", tcell.NewEventKey(tcell.KeyF12, 0, tcell.ModShift), terminal.Function(12), terminal.ModShift},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, mods, ok := convertKey(tt.ev)
			if !ok {
				t.Fatal("key not converted")
			}
			if key != tt.key || mods != tt.mods {
				t.Errorf("got %v %v, want %v %v", key, mods, tt.key, tt.mods)
			}
		})
	}
}

func TestConvert_Paste(t *testing.T) {
	b := newTestBackend(t)

	var out []terminal.Event
	for _, ev := range []tcell.Event{
		tcell.NewEventPaste(true),
		tcell.NewEventKey(tcell.KeyRune, 'h', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyRune, 'i', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone),
		tcell.NewEventPaste(false),
	} {
		out = append(out, b.convert(ev)...)
	}

	want := []terminal.Event{terminal.Paste{Text: "hi\n"}}
	if !reflect.DeepEqual(out, want) {
		t.Errorf("got %#v, want %#v", out, want)
	}
}

func TestConvert_MouseClickAndDrag(t *testing.T) {
	b := newTestBackend(t)

	var out []terminal.Event
	for _, ev := range []tcell.Event{
		tcell.NewEventMouse(1, 1, tcell.ButtonNone, tcell.ModNone),
		tcell.NewEventMouse(2, 2, tcell.Button1, tcell.ModNone),
		tcell.NewEventMouse(4, 4, tcell.Button1, tcell.ModNone),
		tcell.NewEventMouse(7, 8, tcell.Button1, tcell.ModNone),
		tcell.NewEventMouse(7, 8, tcell.ButtonNone, tcell.ModNone),
	} {
		out = append(out, b.convert(ev)...)
	}

	origin := geom.Pt(4, 4)
	want := []terminal.Event{
		terminal.MouseMove{Pos: geom.Pt(1, 1)},
		terminal.MouseHeld{Pos: geom.Pt(2, 2), Button: terminal.MousePrimary},
		terminal.MouseDragStart{Pos: origin, Button: terminal.MousePrimary},
		terminal.MouseDragHeld{Pos: geom.Pt(7, 8), Origin: origin, Button: terminal.MousePrimary},
		terminal.MouseDragHeld{Pos: geom.Pt(7, 8), Origin: origin, Delta: geom.Vec(3, 4), Button: terminal.MousePrimary},
		terminal.MouseDragRelease{Pos: geom.Pt(7, 8), Origin: origin, Button: terminal.MousePrimary},
	}
	if !reflect.DeepEqual(out, want) {
		t.Errorf("got:\n%#v\nwant:\n%#v", out, want)
	}
}

func TestConvert_Wheel(t *testing.T) {
	b := newTestBackend(t)

	tests := []struct {
		mask  tcell.ButtonMask
		delta geom.Vec2
	}{
		{tcell.WheelUp, geom.Vec(0, 1)},
		{tcell.WheelDown, geom.Vec(0, -1)},
		{tcell.WheelLeft, geom.Vec(-1, 0)},
		{tcell.WheelRight, geom.Vec(1, 0)},
	}
	for _, tt := range tests {
		out := b.convert(tcell.NewEventMouse(3, 3, tt.mask, tcell.ModCtrl))
		want := []terminal.Event{terminal.MouseScroll{Pos: geom.Pt(3, 3), Delta: tt.delta, Modifiers: terminal.ModCtrl}}
		if !reflect.DeepEqual(out, want) {
			t.Errorf("mask %v: got %#v", tt.mask, out)
		}
	}
}

func TestConvert_ResizeAndFocus(t *testing.T) {
	b := newTestBackend(t)
	if err := b.screen.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer b.screen.Fini()

	out := b.convert(tcell.NewEventResize(30, 10))
	if !reflect.DeepEqual(out, []terminal.Event{terminal.Resize{Size: geom.Vec(30, 10)}}) {
		t.Errorf("resize: %#v", out)
	}
	out = b.convert(tcell.NewEventFocus(false))
	if !reflect.DeepEqual(out, []terminal.Event{terminal.FocusLost{}}) {
		t.Errorf("focus: %#v", out)
	}
}

func TestBackend_CommandsAndQuit(t *testing.T) {
	b := newTestBackend(t)
	if err := b.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer b.Fini()

	b.Command(backend.SetTitle{Title: "demo"})
	b.Command(backend.SwitchMainScreen{})
	if ev := b.TryReadEvent(); ev != (terminal.SwitchMainScreen{}) {
		t.Fatalf("expected SwitchMainScreen, got %#v", ev)
	}
	if b.ShouldDraw() {
		t.Error("should not draw on the main screen")
	}

	b.Command(backend.SwitchAltScreen{})
	if ev := b.TryReadEvent(); ev != (terminal.SwitchAltScreen{}) {
		t.Fatalf("expected SwitchAltScreen, got %#v", ev)
	}
	if !b.ShouldDraw() {
		t.Error("should draw again on the alt screen")
	}

	b.Command(backend.RequestQuit{})
	if ev := b.TryReadEvent(); !terminal.IsQuit(ev) {
		t.Fatalf("expected Quit, got %#v", ev)
	}
	if ev := b.TryReadEvent(); ev != nil {
		t.Errorf("Quit delivered twice: %#v", ev)
	}
}

func TestRenderer_Surface(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(10, 2)

	s := compositor.NewSurface(geom.Vec(10, 2))
	s.Set(geom.Pt(1, 0), compositor.NewPixel('x').WithFG(compositor.ColorSet(compositor.RGB(255, 0, 0))).Bold().Cell())
	s.Set(geom.Pt(3, 0), compositor.NewPixel('世').Cell())
	if err := s.Render(NewRenderer(screen)); err != nil {
		t.Fatalf("Render: %v", err)
	}

	mainc, _, style, _ := screen.GetContent(1, 0)
	if mainc != 'x' {
		t.Errorf("cell (1,0) = %q", mainc)
	}
	fg, _, attrs := style.Decompose()
	if fg != tcell.NewRGBColor(255, 0, 0) {
		t.Errorf("fg = %v", fg)
	}
	if attrs&tcell.AttrBold == 0 {
		t.Error("bold not applied")
	}

	if mainc, _, _, width := screen.GetContent(3, 0); mainc != '世' || width != 2 {
		t.Errorf("wide cell = %q width %d", mainc, width)
	}
}

func TestRenderer_ResetAttrClearsColors(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(4, 1)

	r := NewRenderer(screen)
	_ = r.SetFG(compositor.RGB(255, 0, 0))
	_ = r.SetBG(compositor.RGB(0, 0, 255))
	_ = r.SetAttr(compositor.AttrBold)
	_ = r.ResetAttr()
	_ = r.WriteString("a")

	_, _, style, _ := screen.GetContent(0, 0)
	fg, bg, attrs := style.Decompose()
	if fg != tcell.ColorDefault || bg != tcell.ColorDefault {
		t.Errorf("colors after reset = %v %v, want defaults", fg, bg)
	}
	if attrs&tcell.AttrBold != 0 {
		t.Error("bold survived reset")
	}
}

func TestConvertStyle(t *testing.T) {
	var p backend.Pen
	if ConvertStyle(&p) != tcell.StyleDefault {
		t.Error("empty pen should map to the default style")
	}

	p.SetBG(compositor.RGB(0, 0, 255))
	p.SetAttr(compositor.AttrItalic | compositor.AttrStrikeout)
	_, bg, attrs := ConvertStyle(&p).Decompose()
	if bg != tcell.NewRGBColor(0, 0, 255) {
		t.Errorf("bg = %v", bg)
	}
	if attrs&tcell.AttrItalic == 0 || attrs&tcell.AttrStrikeThrough == 0 {
		t.Errorf("attrs = %v", attrs)
	}
}
