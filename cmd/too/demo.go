package main

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/museun/too-sub001/pkg/config"
	"github.com/museun/too-sub001/pkg/logging"
	"github.com/museun/too-sub001/pkg/ui/backend"
	"github.com/museun/too-sub001/pkg/ui/compositor"
	"github.com/museun/too-sub001/pkg/ui/geom"
	"github.com/museun/too-sub001/pkg/ui/runtime"
	"github.com/museun/too-sub001/pkg/ui/terminal"
)

type hit uint8

const (
	hitButton hit = iota + 1
	hitBox
)

const (
	hueCycle  = 6 * time.Second
	panelSize = 48
	helpText  = "q quit  f fps  d debug  t title  a pause"
)

var (
	hueAnimation = runtime.ID("demo.hue")

	quitKey  = terminal.BindChar('q')
	fpsKey   = terminal.BindChar('f')
	debugKey = terminal.BindChar('d')
	titleKey = terminal.BindChar('t')
	pauseKey = terminal.BindChar('a')

	panelBG  = compositor.MustHex("#1E1E2E")
	accent   = compositor.MustHex("#89B4FA")
	buttonBG = compositor.MustHex("#313244")
	hoverBG  = compositor.MustHex("#45475A")
	boxBG    = compositor.MustHex("#F38BA8")
)

// demo is a small app: a moving gradient, a panel with a click counter
// and a box that can be dragged around with the mouse.
type demo struct {
	logger    *logging.Logger
	maxFrames int

	// pending is set from the config watcher and applied on the loop.
	pending atomic.Pointer[config.Config]

	hits     *runtime.HitGrid[hit]
	button   geom.Rect
	box      geom.Rect
	dragging bool
	hover    bool
	clicks   int
	frames   int

	parked      *runtime.Animation
	parkedValue float64
}

func newDemo(logger *logging.Logger, maxFrames int) *demo {
	return &demo{
		logger:    logger,
		maxFrames: maxFrames,
		hits:      runtime.NewHitGrid[hit](geom.Vec2{}),
		box:       geom.RectFromMinSize(geom.Pt(4, 2), geom.Vec(16, 5)),
	}
}

func (d *demo) configure(cfg *runtime.Config) {
	cfg.Init = d.init
	cfg.Event = d.event
	cfg.FrameReady = d.frameReady
	cfg.Render = d.render
}

func (d *demo) init(ctx *runtime.Context) {
	anim, err := runtime.NewAnimation().
		Repeat(true).
		With(runtime.Linear).
		Schedule(hueCycle)
	if err != nil {
		d.logger.Error("schedule animation", "error", err)
		return
	}
	ctx.Animations().Add(hueAnimation, anim, 0)
	ctx.Command(backend.SetTitle{Title: "too"})
	d.box = clampRect(d.box, ctx.Size())
}

func (d *demo) event(ctx *runtime.Context, ev terminal.Event) {
	switch {
	case terminal.IsKeybindPressed(ev, quitKey):
		ctx.Command(backend.RequestQuit{})
		return
	case terminal.IsKeybindPressed(ev, fpsKey):
		ctx.ToggleFPS()
		return
	case terminal.IsKeybindPressed(ev, debugKey):
		ctx.ToggleDebug()
		return
	case terminal.IsKeybindPressed(ev, titleKey):
		ctx.Command(backend.SetTitle{Title: fmt.Sprintf("too: %d clicks", d.clicks)})
		return
	case terminal.IsKeybindPressed(ev, pauseKey):
		d.togglePause(ctx)
		return
	}

	switch ev := ev.(type) {
	case terminal.MouseMove:
		target, ok := d.hits.At(ev.Pos)
		d.hover = ok && target == hitButton

	case terminal.MouseClick:
		if target, ok := d.hits.At(ev.Pos); ok && target == hitButton && ev.Button == terminal.MousePrimary {
			d.clicks++
			d.logger.Info("clicked", slog.Int("count", d.clicks))
		}

	case terminal.MouseDragStart:
		target, ok := d.hits.At(ev.Pos)
		d.dragging = ok && target == hitBox && ev.Button == terminal.MousePrimary

	case terminal.MouseDragHeld:
		if d.dragging {
			d.box = clampRect(d.box.Translate(ev.Delta), ctx.Size())
		}

	case terminal.MouseDragRelease:
		if d.dragging {
			d.dragging = false
			d.logger.Debug("box moved", "pos", d.box.Min.String())
		}

	case terminal.MouseScroll:
		// positive Y scrolls up, which moves the box up
		d.box = clampRect(d.box.Translate(geom.Vec(ev.Delta.X, -ev.Delta.Y)), ctx.Size())

	case terminal.Resize:
		d.box = clampRect(d.box, ev.Size)
	}
}

// togglePause takes the hue animation out of the manager, or puts it back
// where it stopped.
func (d *demo) togglePause(ctx *runtime.Context) {
	anims := ctx.Animations()
	if d.parked != nil {
		anims.Add(hueAnimation, d.parked, d.parkedValue)
		d.parked = nil
		ctx.Debug("animation resumed")
		return
	}
	anim, value, ok := anims.Get(hueAnimation)
	if !ok {
		return
	}
	anims.Remove(hueAnimation)
	d.parked, d.parkedValue = anim, value
	ctx.Debug("animation paused at %.2f", value)
}

func (d *demo) paused() bool { return d.parked != nil }

func (d *demo) frameReady(ctx *runtime.Context) {
	if cfg := d.pending.Swap(nil); cfg != nil {
		if err := cfg.ApplyOverlay(ctx.Overlay()); err != nil {
			d.logger.Warn("overlay not applied", "error", err)
		}
	}

	d.frames++
	if d.maxFrames > 0 && d.frames == d.maxFrames {
		ctx.Command(backend.RequestQuit{})
	}
}

// reload returns the config watcher callback. Only the overlay settings
// take effect while running.
func (d *demo) reload(path string) func(*config.Config, error) {
	return func(cfg *config.Config, err error) {
		if err != nil {
			d.logger.ConfigRejected(path, err)
			return
		}
		d.pending.Store(cfg)
		d.logger.ConfigReloaded(path)
	}
}

func (d *demo) hue(ctx *runtime.Context) float64 {
	if d.paused() {
		return d.parkedValue
	}
	return ctx.Animations().Value(hueAnimation)
}

func (d *demo) render(ctx *runtime.Context, v compositor.View) {
	size := v.Size()
	d.hits.Resize(size)
	d.hits.Clear()

	t := d.hue(ctx)
	width := float64(max(size.X, 1))
	v.Draw(compositor.Anonymous(func(geom.Vec2) func(geom.Pos2) (compositor.Cell, bool) {
		return func(pos geom.Pos2) (compositor.Cell, bool) {
			c := compositor.PaletteRainbow.At(t + float64(pos.X)/width)
			return compositor.PixelFromRgba(c).Cell(), true
		}
	}))

	d.drawPanel(ctx, v)
	d.drawBox(v)
}

func (d *demo) drawPanel(ctx *runtime.Context, v compositor.View) {
	size := v.Size()
	panel := centered(size, geom.Vec(min(panelSize, size.X), min(7, size.Y)))
	pv := v.Crop(panel)
	pv.Fill(pv.Rect(), compositor.PixelFromRgba(panelBG))
	pv.Draw(compositor.BorderRounded.WithFG(compositor.ColorSet(accent)))

	inner := pv.Rect().Inset(1, 2, 1, 2)
	row := func(n int) geom.Rect {
		return geom.RectFromMinSize(geom.Pt(inner.Left(), inner.Top()+n), geom.Vec(inner.Width(), 1))
	}

	pv.Text(row(0), compositor.NewText("too").
		WithFG(compositor.ColorSet(accent)).
		Bold().
		WithMain(compositor.JustifyCenter))

	status := fmt.Sprintf("%.1f ups  %dx%d", ctx.UPS(), size.X, size.Y)
	if d.paused() {
		status += "  paused"
	}
	pv.Text(row(1), compositor.NewText(status).WithMain(compositor.JustifyCenter))

	label := fmt.Sprintf(" clicked %d times ", d.clicks)
	bw := compositor.MeasureText(label)
	local := geom.RectFromMinSize(
		geom.Pt(inner.Left()+(inner.Width()-bw)/2, inner.Top()+2),
		geom.Vec(bw, 1),
	).Intersect(inner)
	bg := buttonBG
	if d.hover {
		bg = hoverBG
	}
	pv.Fill(local, compositor.PixelFromRgba(bg))
	pv.Text(local, compositor.NewText(label).Underline())

	d.button = local.Translate(geom.Vec(panel.Min.X, panel.Min.Y))
	d.hits.Add(hitButton, d.button)

	pv.Text(row(4), compositor.NewText(helpText).
		WithFG(compositor.ColorSet(accent)).
		WithMain(compositor.JustifyCenter))
}

func (d *demo) drawBox(v compositor.View) {
	bv := v.Crop(d.box)
	bv.Fill(bv.Rect(), compositor.PixelFromRgba(boxBG))
	bv.Draw(compositor.BorderThick)
	label := "drag me"
	if d.dragging {
		label = "dragging"
	}
	bv.Text(bv.Rect().Inset(1, 1, 1, 1), compositor.NewText(label).
		Bold().
		WithMain(compositor.JustifyCenter).
		WithCross(compositor.JustifyCenter))
	d.hits.Add(hitBox, d.box)
}

// centered returns a rect of size centered within bounds.
func centered(bounds, size geom.Vec2) geom.Rect {
	return geom.RectFromMinSize(
		geom.Pt((bounds.X-size.X)/2, (bounds.Y-size.Y)/2),
		size,
	)
}

// clampRect moves r so it stays inside bounds, keeping its size.
func clampRect(r geom.Rect, bounds geom.Vec2) geom.Rect {
	size := r.Size()
	x := min(max(r.Min.X, 0), max(bounds.X-size.X, 0))
	y := min(max(r.Min.Y, 0), max(bounds.Y-size.Y, 0))
	return geom.RectFromMinSize(geom.Pt(x, y), size)
}
