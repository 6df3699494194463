package runtime

import (
	"fmt"
	"log/slog"

	"github.com/museun/too-sub001/pkg/ui/backend"
	"github.com/museun/too-sub001/pkg/ui/geom"
)

// Context is handed to every callback. It is only valid on the loop goroutine.
type Context struct {
	overlay    *Overlay
	commands   *CommandQueue
	animations *AnimationManager
	logger     *slog.Logger
	size       geom.Vec2
	ups        float64
}

// Command queues a backend command for the next frame.
func (c *Context) Command(cmd backend.Command) {
	c.commands.Push(cmd)
}

// Overlay returns the frame overlay.
func (c *Context) Overlay() *Overlay { return c.overlay }

// Size returns the current surface size.
func (c *Context) Size() geom.Vec2 { return c.size }

// ToggleFPS shows or hides the FPS overlay.
func (c *Context) ToggleFPS() { c.overlay.FPS.Toggle() }

// ToggleDebug shows or hides the debug overlay.
func (c *Context) ToggleDebug() { c.overlay.Debug.Toggle() }

// Debug pushes a formatted message to the debug overlay.
func (c *Context) Debug(format string, args ...any) {
	c.overlay.Debug.Push(fmt.Sprintf(format, args...))
}

// Animations returns the animation manager updated with each step.
func (c *Context) Animations() *AnimationManager { return c.animations }

// UPS returns the current target updates per second.
func (c *Context) UPS() float64 { return c.ups }

// Logger returns the runner's logger.
func (c *Context) Logger() *slog.Logger { return c.logger }
