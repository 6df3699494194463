// Command too runs an interactive demo of the terminal toolkit.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
	"golang.org/x/time/rate"

	"github.com/museun/too-sub001/pkg/config"
	"github.com/museun/too-sub001/pkg/logging"
	"github.com/museun/too-sub001/pkg/telemetry"
	"github.com/museun/too-sub001/pkg/ui/backend"
	"github.com/museun/too-sub001/pkg/ui/backend/stream"
	tcellbackend "github.com/museun/too-sub001/pkg/ui/backend/tcell"
	"github.com/museun/too-sub001/pkg/ui/geom"
	"github.com/museun/too-sub001/pkg/ui/runtime"
)

// Version information - set via ldflags during build
var (
	version   = "0.1.0-dev"
	commit    = "unknown"
	buildDate = "unknown"
)

const serviceName = "too"

// frameLogInterval limits how often frame stats reach the log.
const frameLogInterval = 5 * time.Second

type options struct {
	configPath  string
	backend     string
	fps         bool
	debug       bool
	logLevel    string
	metricsAddr string
	traceFile   string
	record      string
	frames      int
	version     bool
}

func parseOptions(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("too", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "path to config file (default $TOO_CONFIG or ~/.config/too/config.yaml)")
	fs.StringVar(&opts.backend, "backend", "tcell", "terminal backend: tcell or stream")
	fs.BoolVar(&opts.fps, "fps", false, "show the fps overlay")
	fs.BoolVar(&opts.debug, "debug", false, "show the debug overlay")
	fs.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	fs.StringVar(&opts.traceFile, "trace-file", "", "write frame traces to this file")
	fs.StringVar(&opts.record, "record", "", "copy the stream backend output to this file")
	fs.IntVar(&opts.frames, "frames", 0, "quit after this many frames (0 runs until quit)")
	fs.BoolVar(&opts.version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	opts.backend = strings.ToLower(strings.TrimSpace(opts.backend))
	switch opts.backend {
	case "tcell", "stream":
	default:
		return opts, fmt.Errorf("unknown backend %q (want tcell or stream)", opts.backend)
	}
	if opts.record != "" && opts.backend != "stream" {
		return opts, errors.New("-record requires -backend stream")
	}
	if opts.frames < 0 {
		return opts, fmt.Errorf("-frames must not be negative, got %d", opts.frames)
	}
	return opts, nil
}

// apply lets explicit flags override the loaded config.
func (o options) apply(cfg *config.Config) {
	if o.fps {
		cfg.Overlay.FPS.Show = true
	}
	if o.debug {
		cfg.Overlay.Debug.Show = true
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	if o.metricsAddr != "" {
		cfg.Telemetry.MetricsAddr = o.metricsAddr
	}
	if o.traceFile != "" {
		cfg.Telemetry.TraceFile = o.traceFile
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCodeForError(err))
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseOptions(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return withExitCode(err, exitUsage)
	}
	if opts.version {
		fmt.Fprintf(stdout, "too %s (commit %s, built %s)\n", version, commit, buildDate)
		return nil
	}

	cfgPath := config.ResolvePath(opts.configPath)
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return withExitCode(err, exitConfig)
	}
	opts.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return withExitCode(fmt.Errorf("config validation: %w", err), exitConfig)
	}

	sink := &overlaySink{}
	logger, err := logging.New(cfg.Logging, sink)
	if err != nil {
		return withExitCode(err, exitConfig)
	}
	defer logger.Close()

	b, closeOutput, err := openBackend(opts, cfg.Terminal, stdout)
	if err != nil {
		return withExitCode(err, exitBackend)
	}
	defer closeOutput()

	var tracer trace.Tracer
	if path := cfg.Telemetry.TraceFile; path != "" {
		tp, err := telemetry.OpenTracerProvider(path, serviceName)
		if err != nil {
			return withExitCode(err, exitConfig)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := tp.Shutdown(shutdownCtx); err != nil {
				logger.Warn("trace shutdown failed", "error", err)
			}
		}()
		tracer = tp.Tracer()
	}

	metrics := telemetry.NewMetrics()
	hub := telemetry.NewHub(metrics)
	defer hub.Close()

	app := newDemo(logger.WithComponent("demo"), opts.frames)
	rcfg := cfg.RuntimeConfig(b)
	app.configure(&rcfg)
	rcfg.Logger = logger.WithComponent("runner").Logger
	rcfg.Observer = hub
	rcfg.Tracer = tracer

	runner, err := runtime.NewRunner(rcfg)
	if err != nil {
		return withExitCode(err, exitConfig)
	}
	if err := cfg.ApplyOverlay(runner.Overlay()); err != nil {
		return withExitCode(err, exitConfig)
	}
	sink.attach(runner.Overlay().Debug)

	g, gctx := errgroup.WithContext(ctx)
	runCtx, cancel := context.WithCancel(gctx)
	defer cancel()

	g.Go(func() error {
		defer cancel()
		err := runner.Run(runCtx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	if addr := cfg.Telemetry.MetricsAddr; addr != "" {
		logger.ServerStarted("metrics", addr)
		g.Go(func() error {
			return metrics.Serve(runCtx, addr)
		})
	}
	if cfgPath != "" {
		g.Go(func() error {
			return config.Watch(runCtx, cfgPath, app.reload(cfgPath))
		})
	}
	g.Go(func() error {
		logFrames(runCtx, hub, logger.WithComponent("frames"))
		return nil
	})

	return g.Wait()
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFromPath(path)
}

func openBackend(opts options, termCfg backend.TermConfig, stdout io.Writer) (backend.Backend, func() error, error) {
	noop := func() error { return nil }
	if opts.backend == "tcell" {
		b, err := tcellbackend.New(termCfg)
		if err != nil {
			return nil, noop, fmt.Errorf("open terminal: %w", err)
		}
		return b, noop, nil
	}

	if opts.record == "" {
		return stream.New(stdout, termCfg), noop, nil
	}
	f, err := os.Create(opts.record)
	if err != nil {
		return nil, noop, fmt.Errorf("open recording: %w", err)
	}
	out := io.MultiWriter(stdout, f)
	return stream.New(out, termCfg, stream.WithSize(terminalSize(stdout))), f.Close, nil
}

// terminalSize reports the size of stdout when it is a terminal. The tee
// hides the file from the stream backend, so the size is taken here.
func terminalSize(w io.Writer) geom.Vec2 {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return stream.DefaultSize
	}
	width, height, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		return stream.DefaultSize
	}
	return geom.Vec(width, height)
}

// overlaySink forwards log lines to the debug overlay once the runner
// exists. Lines logged before that are dropped.
type overlaySink struct {
	overlay atomic.Pointer[runtime.DebugOverlay]
}

func (s *overlaySink) attach(o *runtime.DebugOverlay) { s.overlay.Store(o) }

func (s *overlaySink) Push(msg string) {
	if o := s.overlay.Load(); o != nil {
		o.Push(msg)
	}
}

func logFrames(ctx context.Context, hub *telemetry.Hub, logger *logging.Logger) {
	frames, unsubscribe := hub.Subscribe()
	defer unsubscribe()

	sometimes := rate.Sometimes{Interval: frameLogInterval}
	for {
		select {
		case <-ctx.Done():
			return
		case s, ok := <-frames:
			if !ok {
				return
			}
			sometimes.Do(func() {
				logger.Debug("frame",
					slog.Duration("duration", s.Duration),
					slog.Duration("work", s.Work),
					slog.Int("updates", s.Updates),
					slog.Float64("target_ups", s.TargetUPS),
					slog.Float64("fps", s.FPS),
					slog.Group("diff",
						slog.Int("cells", s.Diff.ChangedCells),
						slog.Int("cursor_jumps", s.Diff.CursorJumps),
					),
				)
			})
		}
	}
}
