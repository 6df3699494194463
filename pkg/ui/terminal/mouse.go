package terminal

import "github.com/museun/too-sub001/pkg/ui/geom"

// MouseButton identifies which mouse button was involved.
type MouseButton uint8

const (
	MousePrimary MouseButton = iota
	MouseSecondary
	MouseMiddle
)

func (b MouseButton) String() string {
	switch b {
	case MousePrimary:
		return "primary"
	case MouseSecondary:
		return "secondary"
	case MouseMiddle:
		return "middle"
	default:
		return "unknown"
	}
}

// SampleKind is the raw transition reported by a backend.
type SampleKind uint8

const (
	SampleDown SampleKind = iota
	SampleUp
	SampleDrag
)

// MouseSample is one raw button transition from a backend.
type MouseSample struct {
	Kind      SampleKind
	Pos       geom.Pos2
	Button    MouseButton
	Modifiers Modifiers
}

// Down creates a press sample.
func Down(pos geom.Pos2, b MouseButton) MouseSample {
	return MouseSample{Kind: SampleDown, Pos: pos, Button: b}
}

// Up creates a release sample.
func Up(pos geom.Pos2, b MouseButton) MouseSample {
	return MouseSample{Kind: SampleUp, Pos: pos, Button: b}
}

// Drag creates a motion-with-button sample.
func Drag(pos geom.Pos2, b MouseButton) MouseSample {
	return MouseSample{Kind: SampleDrag, Pos: pos, Button: b}
}

type mousePhase uint8

const (
	phaseNone mousePhase = iota
	phaseHeld
	phaseDragStart
	phaseDrag
)

// MouseState turns raw samples into clicks, holds and drags.
// The zero value is ready to use.
type MouseState struct {
	phase     mousePhase
	origin    geom.Pos2
	previous  geom.Pos2
	pos       geom.Pos2
	button    MouseButton
	hasButton bool
}

// Idle reports whether no press or drag is in progress.
func (m *MouseState) Idle() bool {
	return m.phase == phaseNone && !m.hasButton
}

func (m *MouseState) check(pos geom.Pos2, b MouseButton) bool {
	return m.pos == pos && m.hasButton && m.button == b
}

func (m *MouseState) hold(pos geom.Pos2, b MouseButton) {
	m.phase = phaseHeld
	m.pos = pos
	m.button = b
	m.hasButton = true
}

func (m *MouseState) reset() {
	m.phase = phaseNone
	m.hasButton = false
}

// Update consumes one sample and returns the events it produces, if any.
func (m *MouseState) Update(s MouseSample) []Event {
	switch s.Kind {
	case SampleDown:
		m.hold(s.Pos, s.Button)
		return []Event{MouseHeld{Pos: s.Pos, Button: s.Button, Modifiers: s.Modifiers}}

	case SampleUp:
		switch {
		case m.phase == phaseHeld && m.check(s.Pos, s.Button):
			m.reset()
			return []Event{MouseClick{Pos: s.Pos, Button: s.Button, Modifiers: s.Modifiers}}
		case m.phase == phaseDrag && m.hasButton && m.button == s.Button:
			origin := m.origin
			m.reset()
			return []Event{MouseDragRelease{Pos: s.Pos, Origin: origin, Button: s.Button, Modifiers: s.Modifiers}}
		}
		return nil

	case SampleDrag:
		return m.drag(s)
	}
	return nil
}

func (m *MouseState) drag(s MouseSample) []Event {
	switch m.phase {
	case phaseNone, phaseHeld:
		if m.pos == s.Pos {
			wasNone := m.phase == phaseNone
			m.hold(s.Pos, s.Button)
			if wasNone {
				return []Event{MouseHeld{Pos: s.Pos, Button: s.Button, Modifiers: s.Modifiers}}
			}
			return nil
		}
		m.phase = phaseDragStart
		m.origin = s.Pos
		m.pos = s.Pos
		m.button = s.Button
		m.hasButton = true
		return []Event{MouseDragStart{Pos: s.Pos, Button: s.Button, Modifiers: s.Modifiers}}

	case phaseDragStart:
		if !m.check(m.origin, s.Button) {
			return nil
		}
		origin := m.origin
		m.phase = phaseDrag
		m.previous = origin
		out := []Event{MouseDragHeld{Pos: s.Pos, Origin: origin, Button: s.Button, Modifiers: s.Modifiers}}
		if s.Pos != origin {
			out = append(out, m.dragHeld(s))
		}
		return out

	case phaseDrag:
		if !m.check(m.origin, s.Button) {
			return nil
		}
		return []Event{m.dragHeld(s)}
	}
	return nil
}

func (m *MouseState) dragHeld(s MouseSample) Event {
	delta := s.Pos.Sub(m.previous)
	m.previous = s.Pos
	m.pos = m.origin
	return MouseDragHeld{Pos: s.Pos, Origin: m.origin, Delta: delta, Button: s.Button, Modifiers: s.Modifiers}
}
