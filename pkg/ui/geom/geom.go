// Package geom provides the integer screen geometry shared by the UI packages.
package geom

import "fmt"

// Pos2 is a cell position on screen.
type Pos2 struct {
	X, Y int
}

// Pt creates a position.
func Pt(x, y int) Pos2 {
	return Pos2{X: x, Y: y}
}

// Add offsets the position by v.
func (p Pos2) Add(v Vec2) Pos2 {
	return Pos2{X: p.X + v.X, Y: p.Y + v.Y}
}

// Sub returns the vector from o to p.
func (p Pos2) Sub(o Pos2) Vec2 {
	return Vec2{X: p.X - o.X, Y: p.Y - o.Y}
}

func (p Pos2) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Vec2 is a size or a delta.
type Vec2 struct {
	X, Y int
}

// Vec creates a vector.
func Vec(x, y int) Vec2 {
	return Vec2{X: x, Y: y}
}

// Area returns X*Y, or 0 when either component is negative.
func (v Vec2) Area() int {
	if v.X <= 0 || v.Y <= 0 {
		return 0
	}
	return v.X * v.Y
}

// Max returns the component-wise maximum.
func (v Vec2) Max(o Vec2) Vec2 {
	return Vec2{X: max(v.X, o.X), Y: max(v.Y, o.Y)}
}

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) String() string {
	return fmt.Sprintf("%dx%d", v.X, v.Y)
}

// Rect is a half-open rectangle: Min is inside, Max is not.
type Rect struct {
	Min, Max Pos2
}

// RectFromSize creates a rect at the origin.
func RectFromSize(size Vec2) Rect {
	return Rect{Max: Pos2{X: max(size.X, 0), Y: max(size.Y, 0)}}
}

// RectFromMinSize creates a rect at origin with the given size.
func RectFromMinSize(origin Pos2, size Vec2) Rect {
	return Rect{Min: origin, Max: origin.Add(Vec2{X: max(size.X, 0), Y: max(size.Y, 0)})}
}

// Width returns the horizontal extent.
func (r Rect) Width() int { return max(r.Max.X-r.Min.X, 0) }

// Height returns the vertical extent.
func (r Rect) Height() int { return max(r.Max.Y-r.Min.Y, 0) }

// Size returns the extent as a vector.
func (r Rect) Size() Vec2 { return Vec2{X: r.Width(), Y: r.Height()} }

// Left is the first column.
func (r Rect) Left() int { return r.Min.X }

// Top is the first row.
func (r Rect) Top() int { return r.Min.Y }

// Right is one past the last column.
func (r Rect) Right() int { return r.Max.X }

// Bottom is one past the last row.
func (r Rect) Bottom() int { return r.Max.Y }

// LeftTop is the first cell.
func (r Rect) LeftTop() Pos2 { return r.Min }

// RightTop is the last cell of the first row.
func (r Rect) RightTop() Pos2 { return Pos2{X: r.Max.X - 1, Y: r.Min.Y} }

// LeftBottom is the first cell of the last row.
func (r Rect) LeftBottom() Pos2 { return Pos2{X: r.Min.X, Y: r.Max.Y - 1} }

// RightBottom is the last cell.
func (r Rect) RightBottom() Pos2 { return Pos2{X: r.Max.X - 1, Y: r.Max.Y - 1} }

// IsEmpty reports whether the rect covers no cells.
func (r Rect) IsEmpty() bool {
	return r.Max.X <= r.Min.X || r.Max.Y <= r.Min.Y
}

// Contains reports whether p lies in [Min, Max) on both axes.
func (r Rect) Contains(p Pos2) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Intersect returns the overlap of r and o. Disjoint rects yield the zero rect.
func (r Rect) Intersect(o Rect) Rect {
	out := Rect{
		Min: Pos2{X: max(r.Min.X, o.Min.X), Y: max(r.Min.Y, o.Min.Y)},
		Max: Pos2{X: min(r.Max.X, o.Max.X), Y: min(r.Max.Y, o.Max.Y)},
	}
	if out.IsEmpty() {
		return Rect{}
	}
	return out
}

// Translate moves the rect by v.
func (r Rect) Translate(v Vec2) Rect {
	return Rect{Min: r.Min.Add(v), Max: r.Max.Add(v)}
}

// Inset returns a rect shrunk by the given amounts.
func (r Rect) Inset(top, right, bottom, left int) Rect {
	out := Rect{
		Min: Pos2{X: r.Min.X + left, Y: r.Min.Y + top},
		Max: Pos2{X: r.Max.X - right, Y: r.Max.Y - bottom},
	}
	if out.IsEmpty() {
		return Rect{Min: out.Min, Max: out.Min}
	}
	return out
}

func (r Rect) String() string {
	return fmt.Sprintf("[%s..%s]", r.Min, r.Max)
}
