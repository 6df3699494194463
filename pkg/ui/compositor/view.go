package compositor

import "github.com/museun/too-sub001/pkg/ui/geom"

// View is a rect-bounded window onto a Surface. Positions are local to the
// view's top-left corner and writes outside the view are dropped.
// A View is only valid while its Surface is not resized.
type View struct {
	surface *Surface
	rect    Rect
}

// Rect returns the view bounds in local coordinates.
func (v View) Rect() Rect { return geom.RectFromSize(v.rect.Size()) }

// Bounds returns the view bounds in surface coordinates.
func (v View) Bounds() Rect { return v.rect }

// Size returns the view dimensions.
func (v View) Size() Vec2 { return v.rect.Size() }

// Set writes cell at a local position. A wide cell that would cross the
// view's right edge is dropped.
func (v View) Set(pos Pos2, cell Cell) {
	if v.surface == nil || !v.Rect().Contains(pos) {
		return
	}
	if pos.X+cell.Width() > v.rect.Width() {
		return
	}
	v.surface.Set(v.rect.Min.Add(Vec2{X: pos.X, Y: pos.Y}), cell)
}

// Cell returns the back cell at a local position.
func (v View) Cell(pos Pos2) Cell {
	if v.surface == nil || !v.Rect().Contains(pos) {
		return EmptyCell
	}
	return v.surface.Cell(v.rect.Min.Add(Vec2{X: pos.X, Y: pos.Y}))
}

// Fill sets pixel on every cell of the local rect.
func (v View) Fill(rect Rect, pixel Pixel) {
	rect = v.Rect().Intersect(rect)
	cell := pixel.Cell()
	for y := rect.Top(); y < rect.Bottom(); y++ {
		for x := rect.Left(); x < rect.Right(); x++ {
			v.Set(Pos2{X: x, Y: y}, cell)
		}
	}
}

// Text draws text inside a local rect.
func (v View) Text(rect Rect, text Text) {
	v.Crop(rect).Draw(text)
}

// Draw paints shape over the whole view.
func (v View) Draw(shape Shape) {
	if v.surface == nil || v.rect.IsEmpty() {
		return
	}
	shape.Draw(v.Size(), v.Set)
}

// Crop returns a nested view. rect is local to v and is clipped to it.
func (v View) Crop(rect Rect) View {
	local := v.Rect().Intersect(rect)
	if local.IsEmpty() {
		return View{surface: v.surface, rect: Rect{Min: v.rect.Min, Max: v.rect.Min}}
	}
	return View{surface: v.surface, rect: local.Translate(Vec2{X: v.rect.Min.X, Y: v.rect.Min.Y})}
}

// Erase resets the view's cells to Empty.
func (v View) Erase() {
	if v.surface == nil {
		return
	}
	for y := v.rect.Top(); y < v.rect.Bottom(); y++ {
		for x := v.rect.Left(); x < v.rect.Right(); x++ {
			v.surface.back[v.surface.index(Pos2{X: x, Y: y})] = EmptyCell
		}
	}
}
