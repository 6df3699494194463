package runtime

import (
	"fmt"
	"sync"
	"time"

	"github.com/museun/too-sub001/pkg/ui/compositor"
	"github.com/museun/too-sub001/pkg/ui/geom"
)

const (
	fpsWindowSize     = 32
	defaultDebugLimit = 100
)

// Overlay is drawn on top of each frame.
type Overlay struct {
	FPS   *FPSOverlay
	Debug *DebugOverlay
}

// NewOverlay creates an overlay with both parts hidden.
func NewOverlay() *Overlay {
	return &Overlay{
		FPS:   NewFPSOverlay(),
		Debug: NewDebugOverlay(),
	}
}

// Draw paints the parts that are shown.
func (o *Overlay) Draw(v compositor.View) {
	if o.FPS.Show {
		o.FPS.Draw(v)
	}
	if o.Debug.Show {
		o.Debug.Draw(v)
	}
}

// FPSOverlay shows frame rate statistics.
type FPSOverlay struct {
	Show   bool
	Axis   compositor.Axis
	Anchor Anchor2
	FG     compositor.Rgba
	BG     compositor.Rgba

	window *EMAWindow
}

// NewFPSOverlay creates a hidden overlay along the top-left edge.
func NewFPSOverlay() *FPSOverlay {
	return &FPSOverlay{
		Axis:   compositor.Horizontal,
		Anchor: AnchorLeftTop,
		FG:     compositor.MustHex("#F00"),
		BG:     compositor.MustHex("#000"),
		window: NewEMAWindow(fpsWindowSize),
	}
}

// Push records a frame duration.
func (f *FPSOverlay) Push(frame time.Duration) {
	f.window.Push(frame.Seconds())
}

// Stats returns the current frame rate statistics.
func (f *FPSOverlay) Stats() WindowStats {
	return f.window.Stats()
}

// Toggle flips Show.
func (f *FPSOverlay) Toggle() { f.Show = !f.Show }

// Draw paints the statistics without checking Show.
func (f *FPSOverlay) Draw(v compositor.View) {
	stats := f.Stats()
	drawParts(v, f.layout(), f.FG, f.BG, []string{
		fmt.Sprintf("min: %.2f", stats.Min),
		fmt.Sprintf("max: %.2f", stats.Max),
		fmt.Sprintf("avg: %.2f", stats.Avg),
	})
}

func (f *FPSOverlay) layout() LinearLayout {
	return overlayLayout(f.Axis, f.Anchor)
}

// DebugOverlay shows recent messages. Push is safe for concurrent use so
// a log handler can feed it.
type DebugOverlay struct {
	Show   bool
	Axis   compositor.Axis
	Anchor Anchor2
	FG     compositor.Rgba
	BG     compositor.Rgba
	Limit  int

	mu    sync.Mutex
	queue []string
}

// NewDebugOverlay creates a hidden overlay along the right edge.
func NewDebugOverlay() *DebugOverlay {
	return &DebugOverlay{
		Axis:   compositor.Vertical,
		Anchor: AnchorRightTop,
		FG:     compositor.MustHex("#F00"),
		BG:     compositor.MustHex("#000"),
		Limit:  defaultDebugLimit,
	}
}

// Push queues a message, dropping the oldest beyond Limit.
func (d *DebugOverlay) Push(msg string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.queue = append(d.queue, msg)
	if over := len(d.queue) - max(d.Limit, 0); over > 0 {
		clear(d.queue[:over])
		d.queue = d.queue[over:]
	}
}

// Pushf formats and queues a message.
func (d *DebugOverlay) Pushf(format string, args ...any) {
	d.Push(fmt.Sprintf(format, args...))
}

// Len returns the number of queued messages.
func (d *DebugOverlay) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queue)
}

// Drain empties the queue and returns its messages newest first.
func (d *DebugOverlay) Drain() []string {
	d.mu.Lock()
	queue := d.queue
	d.queue = nil
	d.mu.Unlock()

	out := make([]string, len(queue))
	for i, msg := range queue {
		out[len(queue)-1-i] = msg
	}
	return out
}

// Toggle flips Show.
func (d *DebugOverlay) Toggle() { d.Show = !d.Show }

// Draw drains the queue and paints it without checking Show.
func (d *DebugOverlay) Draw(v compositor.View) {
	drawParts(v, overlayLayout(d.Axis, d.Anchor), d.FG, d.BG, d.Drain())
}

func overlayLayout(axis compositor.Axis, anchor Anchor2) LinearLayout {
	return NewLinearLayout(axis).
		WithAnchor(anchor).
		WithWrap(true).
		WithSpacing(geom.Vec(1, 0))
}

func drawParts(v compositor.View, layout LinearLayout, fg, bg compositor.Rgba, parts []string) {
	alloc := layout.Layout(v.Rect())
	for _, part := range parts {
		text := compositor.NewText(part).
			WithFG(compositor.ColorSet(fg)).
			WithBG(compositor.ColorSet(bg))
		rect, ok := alloc.Allocate(text.Size())
		if !ok {
			continue
		}
		v.Text(rect, text)
	}
}
