package terminal

import (
	"reflect"
	"testing"

	"github.com/museun/too-sub001/pkg/ui/geom"
)

func TestEventInterface(t *testing.T) {
	// Verify event types implement Event interface
	events := []Event{
		KeyPressed{}, KeyReleased{}, KeyRepeat{},
		MouseMove{}, MouseClick{}, MouseHeld{}, MouseDragStart{}, MouseDragHeld{},
		MouseDragRelease{}, MouseScroll{},
		Resize{}, FocusGained{}, FocusLost{}, Paste{},
		SwitchMainScreen{}, SwitchAltScreen{}, Quit{},
	}
	if len(events) != 17 {
		t.Fatalf("expected 17 event variants, got %d", len(events))
	}

	if !IsQuit(Quit{}) || IsQuit(FocusLost{}) {
		t.Error("IsQuit mismatch")
	}
	if !IsScreenSwitch(SwitchAltScreen{}) || !IsScreenSwitch(SwitchMainScreen{}) || IsScreenSwitch(Quit{}) {
		t.Error("IsScreenSwitch mismatch")
	}
}

func TestMousePosAndModifiers(t *testing.T) {
	ev := MouseScroll{Pos: geom.Pt(3, 4), Delta: geom.Vec(0, 1), Modifiers: ModCtrl}
	pos, ok := MousePos(ev)
	if !ok || pos != geom.Pt(3, 4) {
		t.Errorf("MousePos = %v, %v", pos, ok)
	}
	if EventModifiers(ev) != ModCtrl {
		t.Errorf("EventModifiers = %v", EventModifiers(ev))
	}
	if _, ok := MousePos(Paste{Text: "x"}); ok {
		t.Error("paste has no mouse position")
	}
}

func TestKeybindCaseFolding(t *testing.T) {
	bind := BindChar('a')

	tests := []struct {
		name string
		ev   Event
		want bool
	}{
		{"lower no mods", KeyPressed{Key: Char('a')}, true},
		{"upper with shift", KeyPressed{Key: Char('A'), Modifiers: ModShift}, true},
		{"ctrl", KeyPressed{Key: Char('a'), Modifiers: ModCtrl}, false},
		{"other char", KeyPressed{Key: Char('b')}, false},
		{"released is not pressed", KeyReleased{Key: Char('a')}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsKeybindPressed(tt.ev, bind); got != tt.want {
				t.Errorf("IsKeybindPressed = %v, want %v", got, tt.want)
			}
		})
	}

	if !IsKeybindReleased(KeyReleased{Key: Char('a')}, bind) {
		t.Error("IsKeybindReleased should match")
	}
	if !IsKeybindRepeat(KeyRepeat{Key: Char('A'), Modifiers: ModShift}, bind) {
		t.Error("IsKeybindRepeat should fold case")
	}
}

func TestKeybindExact(t *testing.T) {
	ctrlC := Bind(Char('c'), ModCtrl)
	if !IsKeybindPressed(KeyPressed{Key: Char('c'), Modifiers: ModCtrl}, ctrlC) {
		t.Error("ctrl+c should match")
	}
	if IsKeybindPressed(KeyPressed{Key: Char('c'), Modifiers: ModCtrl | ModAlt}, ctrlC) {
		t.Error("extra modifiers should not match")
	}

	shiftTab := Bind(Named(KeyTab), ModShift)
	if !IsKeybindPressed(KeyPressed{Key: Named(KeyTab), Modifiers: ModShift}, shiftTab) {
		t.Error("shift+tab should match")
	}
	if IsKeybindPressed(KeyPressed{Key: Named(KeyTab)}, shiftTab) {
		t.Error("tab should not match shift+tab")
	}
}

func TestParseKeybind(t *testing.T) {
	tests := []struct {
		in   string
		want Keybind
	}{
		{"a", BindChar('a')},
		{"ctrl+a", Bind(Char('a'), ModCtrl)},
		{"Ctrl+Shift+F5", Bind(Function(5), ModCtrl|ModShift)},
		{"alt+enter", Bind(Named(KeyEnter), ModAlt)},
		{"ctrl++", Bind(Char('+'), ModCtrl)},
		{"+", BindChar('+')},
		{"esc", Bind(Named(KeyEscape), ModNone)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKeybind(tt.in)
			if err != nil {
				t.Fatalf("ParseKeybind(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	for _, bad := range []string{"", "hyper+a", "ctrl+nokey", "f99"} {
		if _, err := ParseKeybind(bad); err == nil {
			t.Errorf("ParseKeybind(%q) should fail", bad)
		}
	}
}

func TestModifiersString(t *testing.T) {
	if got := (ModCtrl | ModShift).String(); got != "ctrl+shift" {
		t.Errorf("String = %q", got)
	}
	m, err := ParseModifiers(" ctrl + shift ")
	if err != nil || m != ModCtrl|ModShift {
		t.Errorf("ParseModifiers = %v, %v", m, err)
	}
	if got := Bind(Char('x'), ModAlt).String(); got != "alt+x" {
		t.Errorf("Keybind.String = %q", got)
	}
}

func feed(m *MouseState, samples ...MouseSample) []Event {
	var out []Event
	for _, s := range samples {
		out = append(out, m.Update(s)...)
	}
	return out
}

func TestMouseState_Click(t *testing.T) {
	p := geom.Pt(5, 5)
	for _, b := range []MouseButton{MousePrimary, MouseSecondary, MouseMiddle} {
		var m MouseState
		got := feed(&m, Down(p, b), Up(p, b))
		want := []Event{
			MouseHeld{Pos: p, Button: b},
			MouseClick{Pos: p, Button: b},
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("%v: got %#v, want %#v", b, got, want)
		}
		if !m.Idle() {
			t.Errorf("%v: state not clean after click", b)
		}
	}
}

func TestMouseState_Drag(t *testing.T) {
	var m MouseState
	got := feed(&m,
		Down(geom.Pt(2, 2), MousePrimary),
		Drag(geom.Pt(4, 4), MousePrimary),
		Drag(geom.Pt(7, 8), MousePrimary),
		Up(geom.Pt(7, 8), MousePrimary),
	)

	origin := geom.Pt(4, 4)
	want := []Event{
		MouseHeld{Pos: geom.Pt(2, 2), Button: MousePrimary},
		MouseDragStart{Pos: origin, Button: MousePrimary},
		MouseDragHeld{Pos: geom.Pt(7, 8), Origin: origin, Delta: geom.Vec(0, 0), Button: MousePrimary},
		MouseDragHeld{Pos: geom.Pt(7, 8), Origin: origin, Delta: geom.Vec(3, 4), Button: MousePrimary},
		MouseDragRelease{Pos: geom.Pt(7, 8), Origin: origin, Button: MousePrimary},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got:\n%#v\nwant:\n%#v", got, want)
	}
	if !m.Idle() {
		t.Error("state not clean after release")
	}
}

func TestMouseState_DragDeltasAccumulate(t *testing.T) {
	var m MouseState
	events := feed(&m,
		Down(geom.Pt(0, 0), MousePrimary),
		Drag(geom.Pt(1, 0), MousePrimary),
		Drag(geom.Pt(3, 0), MousePrimary),
		Drag(geom.Pt(6, 2), MousePrimary),
		Drag(geom.Pt(5, 2), MousePrimary),
	)

	var total geom.Vec2
	for _, ev := range events {
		if d, ok := ev.(MouseDragHeld); ok {
			total = total.Add(d.Delta)
		}
	}
	if total != geom.Pt(5, 2).Sub(geom.Pt(1, 0)) {
		t.Errorf("summed delta = %v, want pos - origin", total)
	}
}

func TestMouseState_StrayUp(t *testing.T) {
	var m MouseState
	if got := m.Update(Up(geom.Pt(1, 1), MousePrimary)); len(got) != 0 {
		t.Errorf("stray up emitted %v", got)
	}

	feed(&m, Down(geom.Pt(1, 1), MousePrimary))
	if got := m.Update(Up(geom.Pt(1, 1), MouseSecondary)); len(got) != 0 {
		t.Errorf("up with another button emitted %v", got)
	}
	if got := m.Update(Up(geom.Pt(1, 1), MousePrimary)); len(got) != 1 {
		t.Errorf("held state lost after stray up: %v", got)
	}
}

func TestMouseState_DragInPlace(t *testing.T) {
	var m MouseState
	feed(&m, Down(geom.Pt(2, 2), MousePrimary))
	if got := m.Update(Drag(geom.Pt(2, 2), MousePrimary)); len(got) != 0 {
		t.Errorf("drag in place while held emitted %v", got)
	}
}
