package runtime

import (
	"testing"

	"github.com/museun/too-sub001/pkg/ui/compositor"
	"github.com/museun/too-sub001/pkg/ui/geom"
)

type allocation struct {
	size geom.Vec2
	want geom.Rect
	ok   bool
}

func rectAt(x, y, w, h int) geom.Rect {
	return geom.RectFromMinSize(geom.Pt(x, y), geom.Vec(w, h))
}

func TestLinearLayout_Allocate(t *testing.T) {
	area := rectAt(0, 0, 10, 3)
	item := geom.Vec(3, 1)
	tall := geom.Vec(4, 1)

	tests := []struct {
		name   string
		layout LinearLayout
		area   geom.Rect
		steps  []allocation
	}{
		{
			name:   "horizontal left top",
			layout: NewLinearLayout(compositor.Horizontal),
			area:   area,
			steps: []allocation{
				{item, rectAt(0, 0, 3, 1), true},
				{item, rectAt(3, 0, 3, 1), true},
				{item, rectAt(6, 0, 3, 1), true},
				{item, geom.Rect{}, false},
			},
		},
		{
			name:   "horizontal wrap",
			layout: NewLinearLayout(compositor.Horizontal).WithWrap(true),
			area:   area,
			steps: []allocation{
				{item, rectAt(0, 0, 3, 1), true},
				{item, rectAt(3, 0, 3, 1), true},
				{item, rectAt(6, 0, 3, 1), true},
				{item, rectAt(0, 1, 3, 1), true},
			},
		},
		{
			name:   "horizontal spacing",
			layout: NewLinearLayout(compositor.Horizontal).WithSpacing(geom.Vec(1, 0)),
			area:   area,
			steps: []allocation{
				{item, rectAt(0, 0, 3, 1), true},
				{item, rectAt(4, 0, 3, 1), true},
				{item, geom.Rect{}, false},
			},
		},
		{
			name:   "horizontal right top",
			layout: NewLinearLayout(compositor.Horizontal).WithAnchor(AnchorRightTop),
			area:   area,
			steps: []allocation{
				{item, rectAt(7, 0, 3, 1), true},
				{item, rectAt(4, 0, 3, 1), true},
			},
		},
		{
			name:   "vertical right bottom",
			layout: NewLinearLayout(compositor.Vertical).WithAnchor(AnchorRightBottom),
			area:   area,
			steps: []allocation{
				{tall, rectAt(6, 2, 4, 1), true},
				{tall, rectAt(6, 1, 4, 1), true},
			},
		},
		{
			name: "vertical wrap right top",
			layout: NewLinearLayout(compositor.Vertical).
				WithAnchor(AnchorRightTop).
				WithWrap(true).
				WithSpacing(geom.Vec(1, 0)),
			area: area,
			steps: []allocation{
				{tall, rectAt(6, 0, 4, 1), true},
				{tall, rectAt(6, 1, 4, 1), true},
				{tall, rectAt(6, 2, 4, 1), true},
				{tall, rectAt(1, 0, 4, 1), true},
			},
		},
		{
			name:   "offset area",
			layout: NewLinearLayout(compositor.Horizontal).WithAnchor(AnchorLeftBottom),
			area:   rectAt(2, 2, 5, 5),
			steps: []allocation{
				{geom.Vec(1, 1), rectAt(2, 6, 1, 1), true},
			},
		},
		{
			name:   "item larger than area",
			layout: NewLinearLayout(compositor.Horizontal).WithWrap(true),
			area:   area,
			steps: []allocation{
				{geom.Vec(11, 1), geom.Rect{}, false},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alloc := tt.layout.Layout(tt.area)
			for i, step := range tt.steps {
				got, ok := alloc.Allocate(step.size)
				if ok != step.ok || (ok && got != step.want) {
					t.Errorf("step %d: got %v, %v; want %v, %v", i, got, ok, step.want, step.ok)
				}
			}
		})
	}
}

func TestParseAnchor2(t *testing.T) {
	tests := map[string]Anchor2{
		"left_top":     AnchorLeftTop,
		"right-top":    AnchorRightTop,
		"Left_Bottom":  AnchorLeftBottom,
		"right_bottom": AnchorRightBottom,
	}
	for in, want := range tests {
		got, err := ParseAnchor2(in)
		if err != nil || got != want {
			t.Errorf("ParseAnchor2(%q) = %v, %v", in, got, err)
		}
		if got.String() != want.String() {
			t.Errorf("String mismatch for %q", in)
		}
	}
	if _, err := ParseAnchor2("middle"); err == nil {
		t.Error("expected error for unknown anchor")
	}
}

func TestParseAxis(t *testing.T) {
	if a, err := ParseAxis("V"); err != nil || a != compositor.Vertical {
		t.Errorf("ParseAxis(V) = %v, %v", a, err)
	}
	if a, err := ParseAxis("horizontal"); err != nil || a != compositor.Horizontal {
		t.Errorf("ParseAxis(horizontal) = %v, %v", a, err)
	}
	if _, err := ParseAxis("diagonal"); err == nil {
		t.Error("expected error for unknown axis")
	}
}
