package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/museun/too-sub001/pkg/config"
	"github.com/museun/too-sub001/pkg/ui/backend"
	"github.com/museun/too-sub001/pkg/ui/compositor"
	"github.com/museun/too-sub001/pkg/ui/runtime"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 10.0, cfg.Runner.MinUPS)
	assert.Equal(t, 60.0, cfg.Runner.MaxUPS)
	assert.True(t, cfg.Runner.EraseEachFrame)
	assert.Equal(t, backend.DefaultTermConfig(), cfg.Terminal)
	assert.Equal(t, 100, cfg.Overlay.Debug.Limit)
	assert.False(t, cfg.Overlay.FPS.Show)
}

func TestLoadFromPathOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
runner:
  max_ups: 30
terminal:
  ctrl_z_switches: true
overlay:
  fps:
    show: true
    anchor: right-bottom
    fg: "#0F0"
logging:
  level: debug
`)

	cfg, err := config.LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, 30.0, cfg.Runner.MaxUPS)
	assert.Equal(t, 10.0, cfg.Runner.MinUPS, "unset keys keep defaults")
	assert.True(t, cfg.Terminal.CtrlZSwitches)
	assert.True(t, cfg.Terminal.CtrlCQuits)
	assert.True(t, cfg.Overlay.FPS.Show)
	assert.Equal(t, "right-bottom", cfg.Overlay.FPS.Anchor)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFromPathErrors(t *testing.T) {
	_, err := config.LoadFromPath(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := writeConfig(t, t.TempDir(), "runner: [not, a, map]\n")
	_, err = config.LoadFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing YAML")

	path = writeConfig(t, t.TempDir(), "runner:\n  min_ups: 90\n")
	_, err = config.LoadFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation")
}

func TestLoadPrecedence(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(config.EnvConfigPath, "")

	cfg, err := config.Load()
	require.NoError(t, err, "missing user config falls back to defaults")
	assert.Equal(t, 60.0, cfg.Runner.MaxUPS)

	userDir := filepath.Join(home, ".config", "too")
	require.NoError(t, os.MkdirAll(userDir, 0o755))
	writeConfig(t, userDir, "runner:\n  max_ups: 45\n")
	cfg, err = config.Load()
	require.NoError(t, err)
	assert.Equal(t, 45.0, cfg.Runner.MaxUPS)

	explicit := writeConfig(t, t.TempDir(), "runner:\n  max_ups: 20\n")
	t.Setenv(config.EnvConfigPath, explicit)
	t.Setenv("TOO_METRICS_ADDR", "127.0.0.1:9999")
	cfg, err = config.Load()
	require.NoError(t, err)
	assert.Equal(t, 20.0, cfg.Runner.MaxUPS)
	assert.Equal(t, "127.0.0.1:9999", cfg.Telemetry.MetricsAddr)
}

func TestResolvePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(config.EnvConfigPath, "")

	assert.Empty(t, config.ResolvePath(""), "no file applies")

	userDir := filepath.Join(home, ".config", "too")
	require.NoError(t, os.MkdirAll(userDir, 0o755))
	user := writeConfig(t, userDir, "runner:\n  max_ups: 45\n")
	assert.Equal(t, user, config.ResolvePath(""))

	t.Setenv(config.EnvConfigPath, "/etc/too.yaml")
	assert.Equal(t, "/etc/too.yaml", config.ResolvePath(""))
	assert.Equal(t, filepath.Join(home, "too.yaml"), config.ResolvePath("~/too.yaml"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"zero min", func(c *config.Config) { c.Runner.MinUPS = 0 }, "must be positive"},
		{"min above max", func(c *config.Config) { c.Runner.MinUPS = 70 }, "exceeds"},
		{"negative catch up", func(c *config.Config) { c.Runner.MaxCatchUp = -1 }, "max_catch_up"},
		{"bad axis", func(c *config.Config) { c.Overlay.FPS.Axis = "diagonal" }, "overlay.fps"},
		{"bad anchor", func(c *config.Config) { c.Overlay.Debug.Anchor = "middle" }, "overlay.debug"},
		{"bad color", func(c *config.Config) { c.Overlay.Debug.FG = "#GG0000" }, "fg"},
		{"negative limit", func(c *config.Config) { c.Overlay.Debug.Limit = -1 }, "limit"},
		{"bad level", func(c *config.Config) { c.Logging.Level = "loud" }, "log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestBadColorWrapsSentinel(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Overlay.FPS.BG = "nope"
	assert.ErrorIs(t, cfg.Validate(), compositor.ErrInvalidColor)
}

func TestRuntimeConfigAndOverlay(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Runner.MaxUPS = 25
	cfg.Overlay.FPS.Show = true
	cfg.Overlay.FPS.Anchor = "right_bottom"
	cfg.Overlay.Debug.Limit = 7
	cfg.Overlay.Debug.Axis = "h"

	rc := cfg.RuntimeConfig(nil)
	assert.Equal(t, 25.0, rc.MaxUPS)
	assert.Equal(t, 10.0, rc.MinUPS)
	assert.Equal(t, 8, rc.MaxCatchUp)

	o := runtime.NewOverlay()
	require.NoError(t, cfg.ApplyOverlay(o))
	assert.True(t, o.FPS.Show)
	assert.Equal(t, runtime.AnchorRightBottom, o.FPS.Anchor)
	assert.Equal(t, compositor.MustHex("#F00"), o.FPS.FG)
	assert.Equal(t, 7, o.Debug.Limit)
	assert.Equal(t, compositor.Horizontal, o.Debug.Axis)

	cfg.Overlay.Debug.BG = "bad"
	assert.Error(t, cfg.ApplyOverlay(o))
}

func TestWatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "runner:\n  max_ups: 60\n")

	type result struct {
		cfg *config.Config
		err error
	}
	results := make(chan result, 16)
	w, err := config.NewWatcher(path, func(cfg *config.Config, err error) {
		results <- result{cfg, err}
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	next := func() result {
		t.Helper()
		select {
		case r := <-results:
			return r
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for reload")
			return result{}
		}
	}

	writeConfig(t, dir, "runner:\n  max_ups: 40\n")
	r := next()
	require.NoError(t, r.err)
	assert.Equal(t, 40.0, r.cfg.Runner.MaxUPS)

	writeConfig(t, dir, "runner:\n  min_ups: 99\n")
	r = next()
	require.Error(t, r.err, "invalid reloads are reported")
	assert.Nil(t, r.cfg)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop")
	}
}

func TestNewWatcherMissingDir(t *testing.T) {
	_, err := config.NewWatcher(filepath.Join(t.TempDir(), "nope", "config.yaml"), func(*config.Config, error) {})
	assert.Error(t, err)
}
