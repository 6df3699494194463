package geom

import "testing"

func TestRect_Contains(t *testing.T) {
	r := RectFromMinSize(Pt(2, 3), Vec(4, 2))

	tests := []struct {
		pos  Pos2
		want bool
	}{
		{Pt(2, 3), true},
		{Pt(5, 4), true},
		{Pt(6, 4), false},
		{Pt(5, 5), false},
		{Pt(1, 3), false},
		{Pt(2, 2), false},
	}

	for _, tt := range tests {
		if got := r.Contains(tt.pos); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.pos, got, tt.want)
		}
	}
}

func TestRect_Intersect(t *testing.T) {
	a := RectFromSize(Vec(10, 10))
	b := RectFromMinSize(Pt(5, 5), Vec(10, 10))

	got := a.Intersect(b)
	want := Rect{Min: Pt(5, 5), Max: Pt(10, 10)}
	if got != want {
		t.Errorf("Intersect = %v, want %v", got, want)
	}

	far := RectFromMinSize(Pt(20, 20), Vec(2, 2))
	if got := a.Intersect(far); !got.IsEmpty() {
		t.Errorf("disjoint Intersect = %v, want empty", got)
	}
}

func TestRect_Corners(t *testing.T) {
	r := RectFromSize(Vec(4, 3))
	if r.RightTop() != Pt(3, 0) {
		t.Errorf("RightTop = %v", r.RightTop())
	}
	if r.LeftBottom() != Pt(0, 2) {
		t.Errorf("LeftBottom = %v", r.LeftBottom())
	}
	if r.RightBottom() != Pt(3, 2) {
		t.Errorf("RightBottom = %v", r.RightBottom())
	}
}

func TestRect_Inset(t *testing.T) {
	r := RectFromSize(Vec(10, 5)).Inset(1, 1, 1, 1)
	if r.Size() != Vec(8, 3) || r.Min != Pt(1, 1) {
		t.Errorf("Inset = %v", r)
	}

	collapsed := RectFromSize(Vec(2, 2)).Inset(2, 2, 2, 2)
	if !collapsed.IsEmpty() {
		t.Errorf("over-inset should be empty, got %v", collapsed)
	}
}

func TestPos2_SubAdd(t *testing.T) {
	p := Pt(7, 8)
	q := Pt(4, 4)
	d := p.Sub(q)
	if d != Vec(3, 4) {
		t.Errorf("Sub = %v, want 3x4", d)
	}
	if q.Add(d) != p {
		t.Errorf("Add round trip = %v, want %v", q.Add(d), p)
	}
}
