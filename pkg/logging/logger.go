package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/museun/too-sub001/pkg/config"
)

// Logger is a structured logger for toolkit components. Output goes to a
// file because the terminal belongs to the renderer.
type Logger struct {
	*slog.Logger
	runID  string
	closer io.Closer
}

// New creates a logger from cfg. Records are written as JSON to cfg.File
// and, when cfg.Overlay is set and sink is non-nil, mirrored to sink.
func New(cfg config.LoggingConfig, sink Sink) (*Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}

	var handlers []slog.Handler
	var closer io.Closer
	if cfg.File != "" {
		f, err := openLogFile(cfg.File)
		if err != nil {
			return nil, err
		}
		closer = f
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
	}
	if cfg.Overlay && sink != nil {
		handlers = append(handlers, NewOverlayHandler(sink, level))
	}

	var handler slog.Handler = slog.DiscardHandler
	switch len(handlers) {
	case 0:
	case 1:
		handler = handlers[0]
	default:
		handler = Tee(handlers...)
	}

	runID := uuid.NewString()
	logger := slog.New(handler).With(
		slog.String("system", "too"),
		slog.String("run_id", runID),
	)
	return &Logger{Logger: logger, runID: runID, closer: closer}, nil
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return &Logger{Logger: slog.New(slog.DiscardHandler)}
}

// RunID identifies this process in the log.
func (l *Logger) RunID() string { return l.runID }

// WithComponent returns a logger tagged with a component name
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("component", component)),
		runID:  l.runID,
	}
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	err := l.closer.Close()
	l.closer = nil
	return err
}

// ConfigReloaded logs a successful config reload
func (l *Logger) ConfigReloaded(path string) {
	l.Info("config reloaded", slog.String("path", path))
}

// ConfigRejected logs a config reload that failed to load or validate
func (l *Logger) ConfigRejected(path string, err error) {
	l.Warn("config rejected",
		slog.String("path", path),
		slog.String("error", err.Error()),
	)
}

// ServerStarted logs a listening side service
func (l *Logger) ServerStarted(name, addr string) {
	l.Info("server started",
		slog.String("server", name),
		slog.String("addr", addr),
	)
}
