package tcell

import (
	"github.com/gdamore/tcell/v2"

	"github.com/museun/too-sub001/pkg/ui/geom"
	"github.com/museun/too-sub001/pkg/ui/terminal"
)

const wheelMask = tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight

var mouseButtons = []struct {
	mask   tcell.ButtonMask
	button terminal.MouseButton
}{
	{tcell.Button1, terminal.MousePrimary},
	{tcell.Button2, terminal.MouseMiddle},
	{tcell.Button3, terminal.MouseSecondary},
}

// convert turns one tcell event into zero or more terminal events.
func (b *Backend) convert(ev tcell.Event) []terminal.Event {
	switch e := ev.(type) {
	case *tcell.EventPaste:
		if e.Start() {
			// Begin paste mode, buffer subsequent key events
			b.inPaste = true
			b.pasteBuffer.Reset()
			return nil
		}
		if e.End() {
			b.inPaste = false
			text := b.pasteBuffer.String()
			b.pasteBuffer.Reset()
			if text != "" {
				return []terminal.Event{terminal.Paste{Text: text}}
			}
		}
		return nil

	case *tcell.EventKey:
		if b.inPaste {
			switch e.Key() {
			case tcell.KeyRune:
				b.pasteBuffer.WriteRune(e.Rune())
			case tcell.KeyEnter:
				b.pasteBuffer.WriteRune('\n')
			case tcell.KeyTab:
				b.pasteBuffer.WriteRune('\t')
			}
			return nil
		}
		key, mods, ok := convertKey(e)
		if !ok {
			return nil
		}
		return []terminal.Event{terminal.KeyPressed{Key: key, Modifiers: mods}}

	case *tcell.EventMouse:
		return b.convertMouse(e)

	case *tcell.EventResize:
		w, h := e.Size()
		b.screen.Sync()
		return []terminal.Event{terminal.Resize{Size: geom.Vec(w, h)}}

	case *tcell.EventFocus:
		if e.Focused {
			return []terminal.Event{terminal.FocusGained{}}
		}
		return []terminal.Event{terminal.FocusLost{}}
	}
	return nil
}

// convertMouse diffs the held buttons against the previous event and feeds
// the transitions through the mouse state machine.
func (b *Backend) convertMouse(e *tcell.EventMouse) []terminal.Event {
	x, y := e.Position()
	pos := geom.Pt(x, y)
	mods := convertModifiers(e.Modifiers())
	buttons := e.Buttons()

	if buttons&wheelMask != 0 {
		var delta geom.Vec2
		switch {
		case buttons&tcell.WheelUp != 0:
			delta = geom.Vec(0, 1)
		case buttons&tcell.WheelDown != 0:
			delta = geom.Vec(0, -1)
		case buttons&tcell.WheelLeft != 0:
			delta = geom.Vec(-1, 0)
		case buttons&tcell.WheelRight != 0:
			delta = geom.Vec(1, 0)
		}
		return []terminal.Event{terminal.MouseScroll{Pos: pos, Delta: delta, Modifiers: mods}}
	}

	prev := b.buttons
	held := buttons & (tcell.Button1 | tcell.Button2 | tcell.Button3)
	b.buttons = held

	if prev == 0 && held == 0 {
		return []terminal.Event{terminal.MouseMove{Pos: pos, Modifiers: mods}}
	}

	var out []terminal.Event
	for _, mb := range mouseButtons {
		had, has := prev&mb.mask != 0, held&mb.mask != 0
		var s terminal.MouseSample
		switch {
		case had && !has:
			s = terminal.Up(pos, mb.button)
		case !had && has:
			s = terminal.Down(pos, mb.button)
		case had && has:
			s = terminal.Drag(pos, mb.button)
		default:
			continue
		}
		s.Modifiers = mods
		out = append(out, b.mouse.Update(s)...)
	}
	return out
}

func convertModifiers(m tcell.ModMask) terminal.Modifiers {
	var out terminal.Modifiers
	if m&tcell.ModShift != 0 {
		out |= terminal.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		out |= terminal.ModCtrl
	}
	if m&(tcell.ModAlt|tcell.ModMeta) != 0 {
		out |= terminal.ModAlt
	}
	return out
}

// convertKey maps a tcell key. Named keys are matched first because tcell
// aliases several of them onto the control range (Tab is Ctrl-I).
func convertKey(e *tcell.EventKey) (terminal.Key, terminal.Modifiers, bool) {
	mods := convertModifiers(e.Modifiers())
	k := e.Key()

	switch k {
	case tcell.KeyRune:
		return terminal.Char(e.Rune()), mods, true
	case tcell.KeyBacktab:
		return terminal.Named(terminal.KeyTab), mods | terminal.ModShift, true
	case tcell.KeyTab:
		return terminal.Named(terminal.KeyTab), mods, true
	case tcell.KeyEnter:
		return terminal.Named(terminal.KeyEnter), mods, true
	case tcell.KeyEscape:
		return terminal.Named(terminal.KeyEscape), mods, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return terminal.Named(terminal.KeyBackspace), mods, true
	case tcell.KeyDelete:
		return terminal.Named(terminal.KeyDelete), mods, true
	case tcell.KeyInsert:
		return terminal.Named(terminal.KeyInsert), mods, true
	case tcell.KeyUp:
		return terminal.Named(terminal.KeyUp), mods, true
	case tcell.KeyDown:
		return terminal.Named(terminal.KeyDown), mods, true
	case tcell.KeyLeft:
		return terminal.Named(terminal.KeyLeft), mods, true
	case tcell.KeyRight:
		return terminal.Named(terminal.KeyRight), mods, true
	case tcell.KeyHome:
		return terminal.Named(terminal.KeyHome), mods, true
	case tcell.KeyEnd:
		return terminal.Named(terminal.KeyEnd), mods, true
	case tcell.KeyPgUp:
		return terminal.Named(terminal.KeyPageUp), mods, true
	case tcell.KeyPgDn:
		return terminal.Named(terminal.KeyPageDown), mods, true
	case tcell.KeyCtrlSpace:
		return terminal.Char(' '), mods | terminal.ModCtrl, true
	}

	switch {
	case k >= tcell.KeyF1 && k <= tcell.KeyF64:
		return terminal.Function(uint8(k-tcell.KeyF1) + 1), mods, true
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return terminal.Char(rune('a' + (k - tcell.KeyCtrlA))), mods | terminal.ModCtrl, true
	}
	return terminal.Key{}, terminal.ModNone, false
}
