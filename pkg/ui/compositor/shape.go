package compositor

// Shape is a drawing primitive painted into a local coordinate frame.
// size is the canvas the shape may use; put writes one cell.
type Shape interface {
	Draw(size Vec2, put func(Pos2, Cell))
}

// ShapeFunc adapts a function to a Shape.
type ShapeFunc func(size Vec2, put func(Pos2, Cell))

// Draw calls f.
func (f ShapeFunc) Draw(size Vec2, put func(Pos2, Cell)) { f(size, put) }

// Fill covers the canvas with one pixel.
type Fill struct {
	Pixel Pixel
}

// FillColor fills with a background color.
func FillColor(c Rgba) Fill {
	return Fill{Pixel: PixelFromRgba(c)}
}

// Draw implements Shape.
func (f Fill) Draw(size Vec2, put func(Pos2, Cell)) {
	cell := f.Pixel.Cell()
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			put(Pos2{X: x, Y: y}, cell)
		}
	}
}

// Anonymous builds a shape from a function of the canvas size that
// returns a per-position painter. Positions where the painter reports
// false are left untouched.
func Anonymous(draw func(size Vec2) func(pos Pos2) (Cell, bool)) Shape {
	return ShapeFunc(func(size Vec2, put func(Pos2, Cell)) {
		paint := draw(size)
		for y := 0; y < size.Y; y++ {
			for x := 0; x < size.X; x++ {
				pos := Pos2{X: x, Y: y}
				if cell, ok := paint(pos); ok {
					put(pos, cell)
				}
			}
		}
	})
}

// AnonymousCtx is Anonymous with a context value passed to the painter.
func AnonymousCtx[T any](ctx T, draw func(size Vec2) func(ctx T, pos Pos2) (Cell, bool)) Shape {
	return ShapeFunc(func(size Vec2, put func(Pos2, Cell)) {
		paint := draw(size)
		for y := 0; y < size.Y; y++ {
			for x := 0; x < size.X; x++ {
				pos := Pos2{X: x, Y: y}
				if cell, ok := paint(ctx, pos); ok {
					put(pos, cell)
				}
			}
		}
	})
}
