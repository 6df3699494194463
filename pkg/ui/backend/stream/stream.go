// Package stream provides a Backend that writes ANSI sequences to any
// io.Writer and takes its input from Inject.
package stream

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"

	"github.com/museun/too-sub001/pkg/ui/backend"
	"github.com/museun/too-sub001/pkg/ui/compositor"
	"github.com/museun/too-sub001/pkg/ui/geom"
	"github.com/museun/too-sub001/pkg/ui/terminal"
)

// DefaultSize is used when the writer is not a terminal.
var DefaultSize = geom.Vec(80, 24)

// Backend renders to a writer. It is used for golden tests and for
// recording a session to a file.
type Backend struct {
	out      io.Writer
	cfg      backend.TermConfig
	renderer *compositor.TermRenderer

	mu       sync.Mutex
	size     geom.Vec2
	fallback geom.Vec2
	events   []terminal.Event
	onAlt    bool
	started  bool
	finished bool

	// writeErr holds a write failure from outside Render until the next
	// Render can return it.
	writeErr error

	queue backend.Queue
}

// Option configures a stream backend.
type Option func(*Backend)

// WithSize sets the size reported when the writer is not a terminal.
func WithSize(size geom.Vec2) Option {
	return func(b *Backend) { b.fallback = size }
}

// New creates a stream backend writing to out.
func New(out io.Writer, cfg backend.TermConfig, opts ...Option) *Backend {
	b := &Backend{
		out:      out,
		cfg:      cfg,
		fallback: DefaultSize,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.size = b.detectSize()
	b.renderer = compositor.NewTermRenderer(out, b.size)
	return b
}

// detectSize asks the terminal behind out for its size, if there is one.
func (b *Backend) detectSize() geom.Vec2 {
	f, ok := b.out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return b.fallback
	}
	w, h, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return b.fallback
	}
	return geom.Vec(w, h)
}

// Init writes the terminal setup sequences.
func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.finished {
		return backend.ErrClosed
	}

	var err error
	if b.cfg.UseAltScreen {
		err = errors.Join(err, b.renderer.SwitchToAltScreen())
	}
	if b.cfg.HideCursor {
		err = errors.Join(err, b.renderer.HideCursor())
	}
	if b.cfg.MouseCapture {
		err = errors.Join(err, b.writeFlush(compositor.ANSIMouseEnable))
	}
	err = errors.Join(err, b.writeFlush(compositor.ANSIFocusEnable+compositor.ANSIPasteEnable))
	if err != nil {
		return fmt.Errorf("stream init: %w", err)
	}
	b.onAlt = true
	b.started = true
	return nil
}

func (b *Backend) writeFlush(s string) error {
	if err := b.renderer.WriteString(s); err != nil {
		return err
	}
	return b.renderer.Flush()
}

// Fini restores what Init changed. It is safe to call more than once.
func (b *Backend) Fini() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.finished {
		return
	}
	b.finished = true
	b.queue.Close()
	if !b.started {
		return
	}

	_ = b.writeFlush(compositor.ANSIPasteDisable + compositor.ANSIFocusDisable)
	if b.cfg.MouseCapture {
		_ = b.writeFlush(compositor.ANSIMouseDisable)
	}
	if b.cfg.HideCursor {
		_ = b.renderer.ShowCursor()
	}
	if b.cfg.UseAltScreen && b.onAlt {
		_ = b.renderer.SwitchToMainScreen()
	}
	_ = b.writeFlush(compositor.ANSIReset)
}

// Size returns the current size.
func (b *Backend) Size() geom.Vec2 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.size
}

// ShouldDraw is false while on the main screen.
func (b *Backend) ShouldDraw() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.onAlt && !b.queue.Closed()
}

// Command queues cmd for the next TryReadEvent.
func (b *Backend) Command(cmd backend.Command) {
	b.queue.Push(cmd)
}

// Renderer returns the ANSI renderer. A write error from a command or a
// resize since the last frame is returned by its Begin.
func (b *Backend) Renderer() compositor.Renderer {
	return frameRenderer{TermRenderer: b.renderer, b: b}
}

type frameRenderer struct {
	*compositor.TermRenderer
	b *Backend
}

func (r frameRenderer) Begin() error {
	if err := r.b.takeErr(); err != nil {
		return err
	}
	return r.TermRenderer.Begin()
}

// hold keeps the first write error. b.mu must be held.
func (b *Backend) hold(op string, err error) {
	if err != nil && b.writeErr == nil {
		b.writeErr = fmt.Errorf("stream %s: %w", op, err)
	}
}

func (b *Backend) takeErr() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	err := b.writeErr
	b.writeErr = nil
	return err
}

// Inject queues events for TryReadEvent. A Resize also changes Size.
func (b *Backend) Inject(events ...terminal.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, events...)
}

// TryReadEvent applies queued commands, then returns the oldest injected event.
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

	b.mu.Lock()
	if len(b.events) == 0 {
		b.mu.Unlock()
		return nil
	}
	ev := b.events[0]
	b.events[0] = nil
	b.events = b.events[1:]
	onAlt := b.onAlt
	if resize, ok := ev.(terminal.Resize); ok {
		b.size = resize.Size
		b.hold("resize", b.renderer.Resize(resize.Size))
	}
	b.mu.Unlock()

	if cmd, ok := b.cfg.Intercept(ev, onAlt); ok {
		return b.apply(cmd)
	}
	return ev
}

func (b *Backend) apply(cmd backend.Command) terminal.Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch cmd := cmd.(type) {
	case backend.SetTitle:
		b.hold("set title", b.renderer.SetTitle(cmd.Title))
	case backend.SwitchMainScreen:
		if b.onAlt && b.cfg.UseAltScreen {
			b.hold("main screen", b.renderer.SwitchToMainScreen())
		}
		b.onAlt = false
		return terminal.SwitchMainScreen{}
	case backend.SwitchAltScreen:
		if !b.onAlt && b.cfg.UseAltScreen {
			b.hold("alt screen", b.renderer.SwitchToAltScreen())
		}
		b.onAlt = true
		return terminal.SwitchAltScreen{}
	case backend.RequestQuit:
		b.queue.Close()
		return b.queue.Quit()
	}
	return nil
}

// Ensure Backend implements backend.Backend
var _ backend.Backend = (*Backend)(nil)
