package runtime

import "github.com/museun/too-sub001/pkg/ui/geom"

// HitGrid maps screen cells to the most recently added target covering
// them, for mouse hit testing. Rebuild it each frame during Render.
type HitGrid[T comparable] struct {
	size    geom.Vec2
	cells   []int
	targets []T
}

// NewHitGrid creates a new hit grid with the given dimensions.
func NewHitGrid[T comparable](size geom.Vec2) *HitGrid[T] {
	grid := &HitGrid[T]{}
	grid.Resize(size)
	return grid
}

// Resize updates the grid dimensions, clearing it when they change.
func (g *HitGrid[T]) Resize(size geom.Vec2) {
	if size == g.size {
		return
	}
	g.size = size
	if size.Area() <= 0 {
		g.cells = nil
		g.targets = nil
		return
	}
	g.cells = make([]int, size.Area())
	g.Clear()
}

// Clear resets the grid contents.
func (g *HitGrid[T]) Clear() {
	for i := range g.cells {
		g.cells[i] = -1
	}
	g.targets = g.targets[:0]
}

// Add records target occupying rect. Later targets cover earlier ones.
func (g *HitGrid[T]) Add(target T, rect geom.Rect) {
	rect = rect.Intersect(geom.RectFromSize(g.size))
	if rect.IsEmpty() {
		return
	}

	id := len(g.targets)
	g.targets = append(g.targets, target)

	for y := rect.Top(); y < rect.Bottom(); y++ {
		row := y * g.size.X
		for x := rect.Left(); x < rect.Right(); x++ {
			g.cells[row+x] = id
		}
	}
}

// At returns the target at pos.
func (g *HitGrid[T]) At(pos geom.Pos2) (T, bool) {
	var zero T
	if !geom.RectFromSize(g.size).Contains(pos) {
		return zero, false
	}
	idx := g.cells[pos.Y*g.size.X+pos.X]
	if idx < 0 || idx >= len(g.targets) {
		return zero, false
	}
	return g.targets[idx], true
}
