package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/museun/too-sub001/pkg/ui/backend"
	"github.com/museun/too-sub001/pkg/ui/compositor"
	"github.com/museun/too-sub001/pkg/ui/terminal"
)

// ErrNoBackend is returned by NewRunner when Config.Backend is nil.
var ErrNoBackend = errors.New("backend is required")

const (
	upsIncrease = 1.05
	upsDecrease = 0.9

	tracerName = "github.com/museun/too-sub001/pkg/ui/runtime"
)

// FrameStats describes one completed frame.
type FrameStats struct {
	Start     time.Time
	Duration  time.Duration
	Work      time.Duration
	Events    int
	Updates   int
	TargetUPS float64
	FPS       float64
	Drawn     bool
	Diff      compositor.DiffStats
}

// FrameObserver is notified after every frame.
type FrameObserver interface {
	ObserveFrame(FrameStats)
}

// Config configures a Runner. Start from DefaultConfig; zero numeric
// fields fall back to their defaults.
type Config struct {
	Backend backend.Backend

	MinUPS     float64
	MaxUPS     float64
	MaxCatchUp int

	// EraseEachFrame clears the back buffer before Render.
	EraseEachFrame bool

	Init       func(ctx *Context)
	Event      func(ctx *Context, ev terminal.Event)
	Update     func(ctx *Context, dt time.Duration)
	FrameReady func(ctx *Context)
	Render     func(ctx *Context, v compositor.View)
	// PostRender runs after Render. The default draws the overlay.
	PostRender func(ctx *Context, v compositor.View)

	Logger   *slog.Logger
	Observer FrameObserver
	Tracer   trace.Tracer

	// Test hooks
	Now   func() time.Time
	Sleep func(ctx context.Context, d time.Duration)
}

// DefaultConfig returns the standard loop settings.
func DefaultConfig() Config {
	return Config{
		MinUPS:         10,
		MaxUPS:         60,
		MaxCatchUp:     8,
		EraseEachFrame: true,
	}
}

// Runner drives the frame loop against a backend.
type Runner struct {
	cfg     Config
	backend backend.Backend
	logger  *slog.Logger
	tracer  trace.Tracer

	surface    *compositor.Surface
	overlay    *Overlay
	commands   CommandQueue
	animations *AnimationManager
	ctx        *Context

	targetUPS float64
	targetDur time.Duration
	prev      time.Time
	started   bool
	slowFrame rate.Sometimes
}

// NewRunner creates a runner from cfg.
func NewRunner(cfg Config) (*Runner, error) {
	if cfg.Backend == nil {
		return nil, ErrNoBackend
	}

	def := DefaultConfig()
	if cfg.MinUPS <= 0 {
		cfg.MinUPS = def.MinUPS
	}
	if cfg.MaxUPS <= 0 {
		cfg.MaxUPS = def.MaxUPS
	}
	if cfg.MinUPS > cfg.MaxUPS {
		return nil, fmt.Errorf("min ups %.2f exceeds max ups %.2f", cfg.MinUPS, cfg.MaxUPS)
	}
	if cfg.MaxCatchUp <= 0 {
		cfg.MaxCatchUp = def.MaxCatchUp
	}
	if cfg.PostRender == nil {
		cfg.PostRender = func(ctx *Context, v compositor.View) {
			ctx.Overlay().Draw(v)
		}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Sleep == nil {
		cfg.Sleep = sleepContext
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}

	r := &Runner{
		cfg:        cfg,
		backend:    cfg.Backend,
		logger:     logger,
		tracer:     tracer,
		overlay:    NewOverlay(),
		animations: NewAnimationManager(),
		slowFrame:  rate.Sometimes{Interval: time.Second},
	}
	r.setTarget(cfg.MaxUPS)
	r.ctx = &Context{
		overlay:    r.overlay,
		commands:   &r.commands,
		animations: r.animations,
		logger:     logger,
	}
	return r, nil
}

func sleepContext(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

// TargetUPS returns the current updates-per-second target.
func (r *Runner) TargetUPS() float64 { return r.targetUPS }

// Surface returns the surface, or nil before the loop starts.
func (r *Runner) Surface() *compositor.Surface { return r.surface }

// Context returns the callback context.
func (r *Runner) Context() *Context { return r.ctx }

// Overlay returns the frame overlay.
func (r *Runner) Overlay() *Overlay { return r.overlay }

// Run initializes the backend and loops frames until Quit or ctx is done.
func (r *Runner) Run(ctx context.Context) error {
	if err := r.backend.Init(); err != nil {
		return fmt.Errorf("init backend: %w", err)
	}
	defer r.backend.Fini()

	r.start()
	r.logger.Info("runner started",
		"size", r.surface.Size().String(),
		"min_ups", r.cfg.MinUPS,
		"max_ups", r.cfg.MaxUPS,
	)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		quit, err := r.Frame(ctx)
		if err != nil {
			return err
		}
		if quit {
			r.logger.Info("runner stopped")
			return nil
		}
	}
}

func (r *Runner) start() {
	if r.started {
		return
	}
	r.started = true
	r.surface = compositor.NewSurface(r.backend.Size())
	r.syncContext()
	if r.cfg.Init != nil {
		r.cfg.Init(r.ctx)
	}
	r.prev = r.cfg.Now()
}

func (r *Runner) syncContext() {
	r.ctx.size = r.surface.Size()
	r.ctx.ups = r.targetUPS
}

func (r *Runner) setTarget(ups float64) {
	r.targetUPS = ups
	r.targetDur = time.Duration(float64(time.Second) / ups)
}

// Frame runs a single iteration of the loop. It reports quit when the
// backend delivered Quit. A render failure is returned and is fatal.
func (r *Runner) Frame(ctx context.Context) (bool, error) {
	r.start()

	frameStart := r.cfg.Now()
	_, span := r.tracer.Start(ctx, "frame")
	defer span.End()

	stats := FrameStats{Start: frameStart}

	var eventDur time.Duration
	for {
		ev := r.backend.TryReadEvent()
		if ev == nil {
			break
		}
		if terminal.IsQuit(ev) {
			span.SetAttributes(attribute.Bool("quit", true))
			return true, nil
		}

		start := r.cfg.Now()
		r.surface.Update(ev)
		r.syncContext()
		if r.cfg.Event != nil {
			r.cfg.Event(r.ctx, ev)
		}
		stats.Events++
		eventDur += r.cfg.Now().Sub(start)

		// only spend up to half of the budget on events
		if eventDur >= r.targetDur/2 {
			break
		}
	}

	r.commands.Drain(r.backend.Command)

	accum := frameStart.Sub(r.prev)
	if limit := time.Duration(r.cfg.MaxCatchUp) * r.targetDur; accum > limit {
		accum = limit
	}
	for accum >= r.targetDur {
		dt := r.targetDur
		r.step(dt)
		accum -= dt
		stats.Updates++
	}
	if accum > 0 {
		r.step(accum)
		stats.Updates++
	}

	r.syncContext()
	if r.cfg.FrameReady != nil {
		r.cfg.FrameReady(r.ctx)
	}

	if r.backend.ShouldDraw() {
		if r.cfg.EraseEachFrame {
			r.surface.Erase()
		}
		v := r.surface.Crop(r.surface.Rect())
		if r.cfg.Render != nil {
			r.cfg.Render(r.ctx, v)
		}
		r.cfg.PostRender(r.ctx, v)
		if err := r.surface.Render(r.backend.Renderer()); err != nil {
			span.RecordError(err)
			return false, fmt.Errorf("render frame: %w", err)
		}
		stats.Drawn = true
		stats.Diff = r.surface.Stats()
	}

	work := r.cfg.Now().Sub(frameStart)
	if work > 2*r.targetDur {
		r.slowFrame.Do(func() {
			r.logger.Warn("slow frame", "work", work, "target", r.targetDur)
		})
	}
	r.cfg.Sleep(ctx, r.targetDur-work)

	stats.Duration = frameStart.Sub(r.prev)
	stats.Work = work
	r.overlay.FPS.Push(stats.Duration)
	r.prev = frameStart

	stats.TargetUPS = r.targetUPS
	stats.FPS = r.overlay.FPS.Stats().Avg
	span.SetAttributes(
		attribute.Int("events", stats.Events),
		attribute.Int("updates", stats.Updates),
		attribute.Int("cells", stats.Diff.ChangedCells),
		attribute.Float64("target_ups", stats.TargetUPS),
	)
	if r.cfg.Observer != nil {
		r.cfg.Observer.ObserveFrame(stats)
	}
	return false, nil
}

// step runs one update and adjusts the target rate: slower when the
// update overran its slot, faster otherwise.
func (r *Runner) step(dt time.Duration) {
	start := r.cfg.Now()
	r.syncContext()
	if r.cfg.Update != nil {
		r.cfg.Update(r.ctx, dt)
	}
	r.animations.Update(dt)
	took := r.cfg.Now().Sub(start)

	if took > r.targetDur {
		r.setTarget(max(r.targetUPS*upsDecrease, r.cfg.MinUPS))
	} else {
		r.setTarget(min(r.targetUPS*upsIncrease, r.cfg.MaxUPS))
	}
}
