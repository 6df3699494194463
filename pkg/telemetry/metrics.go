// Package telemetry exports frame loop metrics and traces.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/museun/too-sub001/pkg/ui/runtime"
)

const namespace = "too"

// Metrics holds the frame collectors on a private registry. It is a
// runtime.FrameObserver.
type Metrics struct {
	registry *prometheus.Registry

	frames       prometheus.Counter
	updates      prometheus.Counter
	events       prometheus.Counter
	cellsEmitted prometheus.Counter
	cursorJumps  prometheus.Counter
	targetUPS    prometheus.Gauge
	fps          prometheus.Gauge
	frameSeconds prometheus.Histogram
}

// NewMetrics registers the collectors, plus the Go and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_total",
			Help:      "Frames completed by the runner.",
		}),
		updates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "updates_total",
			Help:      "Fixed and partial update steps run.",
		}),
		events: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Backend events dispatched.",
		}),
		cellsEmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cells_emitted_total",
			Help:      "Cells written to the renderer by surface diffs.",
		}),
		cursorJumps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cursor_jumps_total",
			Help:      "Explicit cursor moves emitted by surface diffs.",
		}),
		targetUPS: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "target_ups",
			Help:      "Current adaptive updates-per-second target.",
		}),
		fps: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "fps",
			Help:      "Moving average frames per second.",
		}),
		frameSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_seconds",
			Help:      "Time between frame starts.",
			Buckets:   []float64{0.005, 0.01, 0.0167, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
	reg.MustRegister(
		m.frames, m.updates, m.events,
		m.cellsEmitted, m.cursorJumps,
		m.targetUPS, m.fps, m.frameSeconds,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveFrame records one frame.
func (m *Metrics) ObserveFrame(s runtime.FrameStats) {
	m.frames.Inc()
	m.updates.Add(float64(s.Updates))
	m.events.Add(float64(s.Events))
	if s.Drawn {
		m.cellsEmitted.Add(float64(s.Diff.ChangedCells))
		m.cursorJumps.Add(float64(s.Diff.CursorJumps))
	}
	m.targetUPS.Set(s.TargetUPS)
	m.fps.Set(s.FPS)
	if s.Duration > 0 {
		m.frameSeconds.Observe(s.Duration.Seconds())
	}
}

// Registry returns the private registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Serve exposes /metrics on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return m.ServeListener(ctx, ln)
}

// ServeListener is Serve on an existing listener.
func (m *Metrics) ServeListener(ctx context.Context, ln net.Listener) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown metrics server: %w", err)
		}
		return nil
	}
}
