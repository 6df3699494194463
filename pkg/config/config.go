package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/museun/too-sub001/pkg/ui/backend"
	"github.com/museun/too-sub001/pkg/ui/compositor"
	"github.com/museun/too-sub001/pkg/ui/runtime"
)

// Default configuration values exported for documentation and validation
const (
	DefaultMinUPS      = 10.0
	DefaultMaxUPS      = 60.0
	DefaultMaxCatchUp  = 8
	DefaultDebugLimit  = 100
	DefaultLogLevel    = "info"
	DefaultOverlayFG   = "#F00"
	DefaultOverlayBG   = "#000"
	DefaultMetricsAddr = ""
)

// Config represents the complete toolkit configuration
type Config struct {
	Runner    RunnerConfig       `yaml:"runner"`
	Terminal  backend.TermConfig `yaml:"terminal"`
	Overlay   OverlayConfig      `yaml:"overlay"`
	Logging   LoggingConfig      `yaml:"logging"`
	Telemetry TelemetryConfig    `yaml:"telemetry"`
}

// RunnerConfig controls the frame loop.
type RunnerConfig struct {
	MinUPS         float64 `yaml:"min_ups"`
	MaxUPS         float64 `yaml:"max_ups"`
	EraseEachFrame bool    `yaml:"erase_each_frame"`
	MaxCatchUp     int     `yaml:"max_catch_up"`
}

// OverlayConfig holds both overlay parts.
type OverlayConfig struct {
	FPS   OverlayPartConfig `yaml:"fps"`
	Debug OverlayPartConfig `yaml:"debug"`
}

// OverlayPartConfig places one overlay part. Limit only applies to debug.
type OverlayPartConfig struct {
	Show   bool   `yaml:"show"`
	Axis   string `yaml:"axis"`
	Anchor string `yaml:"anchor"`
	FG     string `yaml:"fg"`
	BG     string `yaml:"bg"`
	Limit  int    `yaml:"limit,omitempty"`
}

// LoggingConfig controls the structured log. An empty File discards output.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	File    string `yaml:"file"`
	Overlay bool   `yaml:"overlay"`
}

// TelemetryConfig enables metrics and tracing. Empty values disable them.
type TelemetryConfig struct {
	MetricsAddr string `yaml:"metrics_addr"`
	TraceFile   string `yaml:"trace_file"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Runner: RunnerConfig{
			MinUPS:         DefaultMinUPS,
			MaxUPS:         DefaultMaxUPS,
			EraseEachFrame: true,
			MaxCatchUp:     DefaultMaxCatchUp,
		},
		Terminal: backend.DefaultTermConfig(),
		Overlay: OverlayConfig{
			FPS: OverlayPartConfig{
				Axis:   "horizontal",
				Anchor: "left_top",
				FG:     DefaultOverlayFG,
				BG:     DefaultOverlayBG,
			},
			Debug: OverlayPartConfig{
				Axis:   "vertical",
				Anchor: "right_top",
				FG:     DefaultOverlayFG,
				BG:     DefaultOverlayBG,
				Limit:  DefaultDebugLimit,
			},
		},
		Logging: LoggingConfig{
			Level: DefaultLogLevel,
		},
		Telemetry: TelemetryConfig{
			MetricsAddr: DefaultMetricsAddr,
		},
	}
}

// Validate checks configuration validity
func (c *Config) Validate() error {
	if c.Runner.MinUPS <= 0 || c.Runner.MaxUPS <= 0 {
		return fmt.Errorf("invalid runner rates: min_ups %.2f and max_ups %.2f must be positive", c.Runner.MinUPS, c.Runner.MaxUPS)
	}
	if c.Runner.MinUPS > c.Runner.MaxUPS {
		return fmt.Errorf("invalid runner rates: min_ups %.2f exceeds max_ups %.2f", c.Runner.MinUPS, c.Runner.MaxUPS)
	}
	if c.Runner.MaxCatchUp < 0 {
		return fmt.Errorf("invalid max_catch_up: %d", c.Runner.MaxCatchUp)
	}

	if err := c.Overlay.FPS.validate(); err != nil {
		return fmt.Errorf("overlay.fps: %w", err)
	}
	if err := c.Overlay.Debug.validate(); err != nil {
		return fmt.Errorf("overlay.debug: %w", err)
	}
	if c.Overlay.Debug.Limit < 0 {
		return fmt.Errorf("overlay.debug: invalid limit %d", c.Overlay.Debug.Limit)
	}

	if _, err := c.Logging.SlogLevel(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}

func (p OverlayPartConfig) validate() error {
	var errs []error
	if _, err := runtime.ParseAxis(p.Axis); err != nil {
		errs = append(errs, err)
	}
	if _, err := runtime.ParseAnchor2(p.Anchor); err != nil {
		errs = append(errs, err)
	}
	if _, err := compositor.Parse(p.FG); err != nil {
		errs = append(errs, fmt.Errorf("fg: %w", err))
	}
	if _, err := compositor.Parse(p.BG); err != nil {
		errs = append(errs, fmt.Errorf("bg: %w", err))
	}
	return errors.Join(errs...)
}

// SlogLevel parses Level. An empty level means info.
func (l LoggingConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	name := strings.TrimSpace(l.Level)
	if name == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", l.Level, err)
	}
	return level, nil
}

// RuntimeConfig returns runner settings for b. Callbacks are left unset.
func (c *Config) RuntimeConfig(b backend.Backend) runtime.Config {
	cfg := runtime.DefaultConfig()
	cfg.Backend = b
	cfg.MinUPS = c.Runner.MinUPS
	cfg.MaxUPS = c.Runner.MaxUPS
	cfg.MaxCatchUp = c.Runner.MaxCatchUp
	cfg.EraseEachFrame = c.Runner.EraseEachFrame
	return cfg
}

// ApplyOverlay copies the overlay placement and colors onto o.
func (c *Config) ApplyOverlay(o *runtime.Overlay) error {
	fps := c.Overlay.FPS
	axis, anchor, fg, bg, err := fps.parse()
	if err != nil {
		return fmt.Errorf("overlay.fps: %w", err)
	}
	o.FPS.Show = fps.Show
	o.FPS.Axis, o.FPS.Anchor, o.FPS.FG, o.FPS.BG = axis, anchor, fg, bg

	debug := c.Overlay.Debug
	axis, anchor, fg, bg, err = debug.parse()
	if err != nil {
		return fmt.Errorf("overlay.debug: %w", err)
	}
	o.Debug.Show = debug.Show
	o.Debug.Axis, o.Debug.Anchor, o.Debug.FG, o.Debug.BG = axis, anchor, fg, bg
	o.Debug.Limit = debug.Limit
	return nil
}

func (p OverlayPartConfig) parse() (compositor.Axis, runtime.Anchor2, compositor.Rgba, compositor.Rgba, error) {
	axis, err := runtime.ParseAxis(p.Axis)
	if err != nil {
		return axis, runtime.Anchor2{}, compositor.Rgba{}, compositor.Rgba{}, err
	}
	anchor, err := runtime.ParseAnchor2(p.Anchor)
	if err != nil {
		return axis, anchor, compositor.Rgba{}, compositor.Rgba{}, err
	}
	fg, err := compositor.Parse(p.FG)
	if err != nil {
		return axis, anchor, fg, compositor.Rgba{}, fmt.Errorf("fg: %w", err)
	}
	bg, err := compositor.Parse(p.BG)
	if err != nil {
		return axis, anchor, fg, bg, fmt.Errorf("bg: %w", err)
	}
	return axis, anchor, fg, bg, nil
}
