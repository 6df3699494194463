package runtime

import (
	"fmt"
	"strings"

	"github.com/museun/too-sub001/pkg/ui/compositor"
	"github.com/museun/too-sub001/pkg/ui/geom"
)

// Anchor is the edge of an axis items start from.
type Anchor uint8

const (
	AnchorMin Anchor = iota // left or top
	AnchorMax               // right or bottom
)

// Anchor2 picks the corner a LinearLayout grows from.
type Anchor2 struct {
	X, Y Anchor
}

var (
	AnchorLeftTop     = Anchor2{X: AnchorMin, Y: AnchorMin}
	AnchorRightTop    = Anchor2{X: AnchorMax, Y: AnchorMin}
	AnchorLeftBottom  = Anchor2{X: AnchorMin, Y: AnchorMax}
	AnchorRightBottom = Anchor2{X: AnchorMax, Y: AnchorMax}
)

var anchorNames = map[Anchor2]string{
	AnchorLeftTop:     "left_top",
	AnchorRightTop:    "right_top",
	AnchorLeftBottom:  "left_bottom",
	AnchorRightBottom: "right_bottom",
}

func (a Anchor2) String() string {
	if name, ok := anchorNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Anchor2(%d,%d)", a.X, a.Y)
}

// ParseAnchor2 parses "left_top", "right-bottom" and similar.
func ParseAnchor2(s string) (Anchor2, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for a, n := range anchorNames {
		if n == name {
			return a, nil
		}
	}
	return Anchor2{}, fmt.Errorf("unknown anchor: %q", s)
}

// ParseAxis parses "horizontal" or "vertical".
func ParseAxis(s string) (compositor.Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "horizontal", "h":
		return compositor.Horizontal, nil
	case "vertical", "v":
		return compositor.Vertical, nil
	}
	return compositor.Horizontal, fmt.Errorf("unknown axis: %q", s)
}

// LinearLayout places items one after another along an axis.
type LinearLayout struct {
	Axis    compositor.Axis
	Anchor  Anchor2
	Wrap    bool
	Spacing geom.Vec2
}

// NewLinearLayout creates a layout along axis anchored at the left-top.
func NewLinearLayout(axis compositor.Axis) LinearLayout {
	return LinearLayout{Axis: axis}
}

func (l LinearLayout) WithAnchor(a Anchor2) LinearLayout {
	l.Anchor = a
	return l
}

func (l LinearLayout) WithWrap(wrap bool) LinearLayout {
	l.Wrap = wrap
	return l
}

func (l LinearLayout) WithSpacing(v geom.Vec2) LinearLayout {
	l.Spacing = v
	return l
}

// Layout starts allocating inside rect.
func (l LinearLayout) Layout(rect geom.Rect) *LinearAllocator {
	return &LinearAllocator{layout: l, rect: rect}
}

// LinearAllocator hands out rects for a LinearLayout. The cursor is an
// offset from the anchor corner growing into the rect.
type LinearAllocator struct {
	layout LinearLayout
	rect   geom.Rect
	cursor geom.Vec2
	line   geom.Vec2
}

// Allocate reserves size and returns its rect, or false when it no longer fits.
func (a *LinearAllocator) Allocate(size geom.Vec2) (geom.Rect, bool) {
	w, h := a.rect.Width(), a.rect.Height()
	spacing := a.layout.Spacing

	switch a.layout.Axis {
	case compositor.Horizontal:
		if a.cursor.X > 0 && a.cursor.X+size.X > w {
			if !a.layout.Wrap {
				return geom.Rect{}, false
			}
			a.cursor = geom.Vec(0, a.cursor.Y+a.line.Y+spacing.Y)
			a.line = geom.Vec2{}
		}
		if a.cursor.X+size.X > w || a.cursor.Y+size.Y > h {
			return geom.Rect{}, false
		}
		r := a.place(size)
		a.cursor.X += size.X + spacing.X
		a.line = a.line.Max(size)
		return r, true

	default:
		if a.cursor.Y > 0 && a.cursor.Y+size.Y > h {
			if !a.layout.Wrap {
				return geom.Rect{}, false
			}
			a.cursor = geom.Vec(a.cursor.X+a.line.X+spacing.X, 0)
			a.line = geom.Vec2{}
		}
		if a.cursor.X+size.X > w || a.cursor.Y+size.Y > h {
			return geom.Rect{}, false
		}
		r := a.place(size)
		a.cursor.Y += size.Y + spacing.Y
		a.line = a.line.Max(size)
		return r, true
	}
}

func (a *LinearAllocator) place(size geom.Vec2) geom.Rect {
	x := a.rect.Left() + a.cursor.X
	if a.layout.Anchor.X == AnchorMax {
		x = a.rect.Right() - a.cursor.X - size.X
	}
	y := a.rect.Top() + a.cursor.Y
	if a.layout.Anchor.Y == AnchorMax {
		y = a.rect.Bottom() - a.cursor.Y - size.Y
	}
	return geom.RectFromMinSize(geom.Pt(x, y), size)
}
