// Package terminal provides terminal event types used throughout the UI.
package terminal

import "github.com/museun/too-sub001/pkg/ui/geom"

// Event represents a terminal input event.
type Event interface {
	eventMarker()
}

// KeyPressed is sent when a key goes down.
type KeyPressed struct {
	Key       Key
	Modifiers Modifiers
}

// KeyReleased is sent when a key comes up, on terminals that report it.
type KeyReleased struct {
	Key       Key
	Modifiers Modifiers
}

// KeyRepeat is sent while a key is held, on terminals that report it.
type KeyRepeat struct {
	Key       Key
	Modifiers Modifiers
}

// MouseMove is cursor motion with no button held.
type MouseMove struct {
	Pos       geom.Pos2
	Modifiers Modifiers
}

// MouseClick is a press and release at the same position.
type MouseClick struct {
	Pos       geom.Pos2
	Button    MouseButton
	Modifiers Modifiers
}

// MouseHeld is a button press.
type MouseHeld struct {
	Pos       geom.Pos2
	Button    MouseButton
	Modifiers Modifiers
}

// MouseDragStart is the first motion after a press.
type MouseDragStart struct {
	Pos       geom.Pos2
	Button    MouseButton
	Modifiers Modifiers
}

// MouseDragHeld is motion during a drag. Delta is the movement since the
// previous drag event; Origin is where the drag started.
type MouseDragHeld struct {
	Pos       geom.Pos2
	Origin    geom.Pos2
	Delta     geom.Vec2
	Button    MouseButton
	Modifiers Modifiers
}

// MouseDragRelease ends a drag.
type MouseDragRelease struct {
	Pos       geom.Pos2
	Origin    geom.Pos2
	Button    MouseButton
	Modifiers Modifiers
}

// MouseScroll is wheel input. Positive Delta.Y is up, positive Delta.X is right.
type MouseScroll struct {
	Pos       geom.Pos2
	Delta     geom.Vec2
	Modifiers Modifiers
}

// Resize indicates terminal size changed.
type Resize struct {
	Size geom.Vec2
}

// FocusGained is sent when the terminal window gains focus.
type FocusGained struct{}

// FocusLost is sent when the terminal window loses focus.
type FocusLost struct{}

// Paste represents bracketed paste content.
type Paste struct {
	Text string
}

// SwitchMainScreen reports that drawing moved off the alternate screen.
type SwitchMainScreen struct{}

// SwitchAltScreen reports that drawing moved back to the alternate screen.
type SwitchAltScreen struct{}

// Quit means the backend has shut down and the loop should exit.
type Quit struct{}

func (KeyPressed) eventMarker()       {}
func (KeyReleased) eventMarker()      {}
func (KeyRepeat) eventMarker()        {}
func (MouseMove) eventMarker()        {}
func (MouseClick) eventMarker()       {}
func (MouseHeld) eventMarker()        {}
func (MouseDragStart) eventMarker()   {}
func (MouseDragHeld) eventMarker()    {}
func (MouseDragRelease) eventMarker() {}
func (MouseScroll) eventMarker()      {}
func (Resize) eventMarker()           {}
func (FocusGained) eventMarker()      {}
func (FocusLost) eventMarker()        {}
func (Paste) eventMarker()            {}
func (SwitchMainScreen) eventMarker() {}
func (SwitchAltScreen) eventMarker()  {}
func (Quit) eventMarker()             {}

// IsQuit reports whether ev is Quit.
func IsQuit(ev Event) bool {
	_, ok := ev.(Quit)
	return ok
}

// IsScreenSwitch reports whether ev is a screen switch.
func IsScreenSwitch(ev Event) bool {
	switch ev.(type) {
	case SwitchMainScreen, SwitchAltScreen:
		return true
	}
	return false
}

// MousePos returns the position of a mouse event.
func MousePos(ev Event) (geom.Pos2, bool) {
	switch ev := ev.(type) {
	case MouseMove:
		return ev.Pos, true
	case MouseClick:
		return ev.Pos, true
	case MouseHeld:
		return ev.Pos, true
	case MouseDragStart:
		return ev.Pos, true
	case MouseDragHeld:
		return ev.Pos, true
	case MouseDragRelease:
		return ev.Pos, true
	case MouseScroll:
		return ev.Pos, true
	}
	return geom.Pos2{}, false
}

// EventModifiers returns the modifiers carried by key and mouse events.
func EventModifiers(ev Event) Modifiers {
	switch ev := ev.(type) {
	case KeyPressed:
		return ev.Modifiers
	case KeyReleased:
		return ev.Modifiers
	case KeyRepeat:
		return ev.Modifiers
	case MouseMove:
		return ev.Modifiers
	case MouseClick:
		return ev.Modifiers
	case MouseHeld:
		return ev.Modifiers
	case MouseDragStart:
		return ev.Modifiers
	case MouseDragHeld:
		return ev.Modifiers
	case MouseDragRelease:
		return ev.Modifiers
	case MouseScroll:
		return ev.Modifiers
	}
	return ModNone
}
