// Package backend defines the interface between the run loop and a terminal.
package backend

import (
	"errors"

	"github.com/museun/too-sub001/pkg/ui/compositor"
	"github.com/museun/too-sub001/pkg/ui/geom"
	"github.com/museun/too-sub001/pkg/ui/terminal"
)

//go:generate mockgen -package=backend -destination=mock_backend.go github.com/museun/too-sub001/pkg/ui/backend Backend

// ErrClosed is returned when a backend is used after Fini.
var ErrClosed = errors.New("backend closed")

// Backend abstracts a terminal. Implementations: tcell, sim, stream.
type Backend interface {
	// Init prepares the terminal for drawing.
	Init() error

	// Fini restores the terminal. After Fini, TryReadEvent yields Quit once.
	Fini()

	// Size returns the drawable area in cells.
	Size() geom.Vec2

	// ShouldDraw reports whether the next frame should be rendered.
	// It is false while the main screen is active.
	ShouldDraw() bool

	// Command queues a command, applied at the next TryReadEvent.
	Command(cmd Command)

	// Renderer returns the renderer the surface flushes into.
	Renderer() compositor.Renderer

	// TryReadEvent returns the next event without blocking, or nil.
	TryReadEvent() terminal.Event
}
