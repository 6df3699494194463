// Package tcell provides a Backend implementation using tcell.
package tcell

import (
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/museun/too-sub001/pkg/ui/backend"
	"github.com/museun/too-sub001/pkg/ui/compositor"
	"github.com/museun/too-sub001/pkg/ui/geom"
	"github.com/museun/too-sub001/pkg/ui/terminal"
)

// eventBuffer bounds how far the pump runs ahead of the frame loop.
const eventBuffer = 256

// Backend implements backend.Backend using tcell.
type Backend struct {
	screen   tcell.Screen
	cfg      backend.TermConfig
	renderer *Renderer

	events   chan tcell.Event
	done     chan struct{}
	pumpDone chan struct{}
	finiOnce sync.Once
	started  bool

	queue   backend.Queue
	pending []terminal.Event
	onAlt   bool

	mouse   terminal.MouseState
	buttons tcell.ButtonMask

	// Bracketed paste state
	inPaste     bool
	pasteBuffer strings.Builder
}

// New creates a new tcell backend on the controlling terminal.
func New(cfg backend.TermConfig) (*Backend, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(screen, cfg), nil
}

// NewWithScreen creates a backend with an existing tcell screen (for testing).
func NewWithScreen(screen tcell.Screen, cfg backend.TermConfig) *Backend {
	return &Backend{
		screen:   screen,
		cfg:      cfg,
		renderer: &Renderer{screen: screen},
		events:   make(chan tcell.Event, eventBuffer),
		done:     make(chan struct{}),
		pumpDone: make(chan struct{}),
	}
}

// Init initializes the screen and starts the event pump.
func (b *Backend) Init() error {
	if err := b.screen.Init(); err != nil {
		return err
	}
	if b.cfg.MouseCapture {
		b.screen.EnableMouse()
	}
	b.screen.EnablePaste()
	b.screen.EnableFocus()
	if b.cfg.HideCursor {
		b.screen.HideCursor()
	}
	b.onAlt = true
	b.started = true
	go b.pump()
	return nil
}

func (b *Backend) pump() {
	defer close(b.pumpDone)
	defer close(b.events)
	for {
		ev := b.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case b.events <- ev:
		case <-b.done:
			return
		}
	}
}

// Fini restores the terminal. It is safe to call more than once.
func (b *Backend) Fini() {
	b.finiOnce.Do(func() {
		close(b.done)
		b.queue.Close()
		if b.started {
			b.screen.Fini()
			<-b.pumpDone
		}
	})
}

// Size returns the terminal dimensions.
func (b *Backend) Size() geom.Vec2 {
	w, h := b.screen.Size()
	return geom.Vec(w, h)
}

// ShouldDraw is false while suspended on the main screen.
func (b *Backend) ShouldDraw() bool {
	return b.onAlt && !b.queue.Closed()
}

// Command queues cmd for the next TryReadEvent.
func (b *Backend) Command(cmd backend.Command) {
	b.queue.Push(cmd)
}

// Renderer returns the cell renderer for this screen.
func (b *Backend) Renderer() compositor.Renderer {
	return b.renderer
}

// TryReadEvent applies queued commands, then returns the next converted
// event if one is waiting.
func (b *Backend) TryReadEvent() terminal.Event {
	if ev := b.queue.Quit(); ev != nil {
		return ev
	}
	if b.queue.Closed() {
		return nil
	}

	for {
		cmd, ok := b.queue.Pop()
		if !ok {
			break
		}
		if ev := b.apply(cmd); ev != nil {
			return ev
		}
	}

	if len(b.pending) > 0 {
		ev := b.pending[0]
		b.pending = b.pending[1:]
		return ev
	}

	for {
		select {
		case ev, ok := <-b.events:
			if !ok {
				b.queue.Close()
				return b.queue.Quit()
			}
			out := b.convert(ev)
			if len(out) == 0 {
				continue
			}
			b.pending = append(b.pending, out[1:]...)
			if cmd, ok := b.cfg.Intercept(out[0], b.onAlt); ok {
				return b.apply(cmd)
			}
			return out[0]
		default:
			return nil
		}
	}
}

func (b *Backend) apply(cmd backend.Command) terminal.Event {
	switch cmd := cmd.(type) {
	case backend.SetTitle:
		_ = b.renderer.SetTitle(cmd.Title)
	case backend.SwitchMainScreen:
		if b.onAlt {
			_ = b.renderer.SwitchToMainScreen()
			b.onAlt = false
		}
		return terminal.SwitchMainScreen{}
	case backend.SwitchAltScreen:
		if !b.onAlt {
			_ = b.renderer.SwitchToAltScreen()
			b.onAlt = true
		}
		return terminal.SwitchAltScreen{}
	case backend.RequestQuit:
		b.queue.Close()
		return b.queue.Quit()
	}
	return nil
}

// Screen exposes the underlying tcell screen.
func (b *Backend) Screen() tcell.Screen {
	return b.screen
}

// Ensure Backend implements backend.Backend
var _ backend.Backend = (*Backend)(nil)
