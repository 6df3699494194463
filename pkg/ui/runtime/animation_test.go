package runtime

import (
	"errors"
	"math"
	"testing"
	"time"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestEasing_Endpoints(t *testing.T) {
	easings := map[string]Easing{
		"Linear":           Linear,
		"SineIn":           SineIn,
		"SineOut":          SineOut,
		"SineInOut":        SineInOut,
		"ExponentialIn":    ExponentialIn,
		"ExponentialOut":   ExponentialOut,
		"ExponentialInOut": ExponentialInOut,
		"CircularIn":       CircularIn,
		"CircularOut":      CircularOut,
		"CircularInOut":    CircularInOut,
		"ElasticIn":        ElasticIn,
		"ElasticOut":       ElasticOut,
		"ElasticInOut":     ElasticInOut,
		"BounceIn":         BounceIn,
		"BounceOut":        BounceOut,
		"BounceInOut":      BounceInOut,
		"BackIn":           BackIn,
		"BackOut":          BackOut,
		"BackInOut":        BackInOut,
	}
	for name, ease := range easings {
		if got := ease(0); !approx(got, 0) {
			t.Errorf("%s(0) = %v", name, got)
		}
		if got := ease(1); !approx(got, 1) {
			t.Errorf("%s(1) = %v", name, got)
		}
	}
}

func TestEasing_Midpoints(t *testing.T) {
	tests := []struct {
		name string
		ease Easing
		t    float64
		want float64
	}{
		{"Reverse", Reverse, 0.25, 0.75},
		{"RoundTrip rising", RoundTrip, 0.25, 0.5},
		{"RoundTrip peak", RoundTrip, 0.5, 1},
		{"RoundTrip falling", RoundTrip, 0.75, 0.5},
		{"SineInOut", SineInOut, 0.5, 0.5},
		{"CircularInOut", CircularInOut, 0.5, 0.5},
		{"BounceOut first arc", BounceOut, 0.2, 7.5625 * 0.04},
		{"BackIn undershoots", BackIn, 0.2, backC3*0.008 - backC1*0.04},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ease(tt.t); !approx(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
	if BackIn(0.2) >= 0 {
		t.Error("BackIn should dip below zero early")
	}
}

func TestAnimation_ScheduleErrors(t *testing.T) {
	if _, err := NewAnimation().Schedule(time.Second); !errors.Is(err, ErrNoKeyframes) {
		t.Errorf("empty: %v", err)
	}
	_, err := NewAnimation().
		WithTime(Linear, 2*time.Second).
		Schedule(time.Second)
	if !errors.Is(err, ErrKeyframesTooLong) {
		t.Errorf("too long: %v", err)
	}
}

func TestAnimation_ScheduleSplitsFreeTime(t *testing.T) {
	a, err := NewAnimation().
		WithTime(Linear, 600*time.Millisecond).
		With(Linear).
		With(Linear).
		Schedule(time.Second)
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	want := []time.Duration{600 * time.Millisecond, 200 * time.Millisecond, 200 * time.Millisecond}
	for i, kf := range a.keyframes {
		if kf.dur != want[i] {
			t.Errorf("keyframe %d = %v, want %v", i, kf.dur, want[i])
		}
	}

	a, err = NewAnimation().With(Linear).With(Linear).With(Linear).Schedule(1000)
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	var total time.Duration
	for _, kf := range a.keyframes {
		total += kf.dur
	}
	if total != 1000 || a.keyframes[2].dur != 334 {
		t.Errorf("remainder not absorbed: %v", a.keyframes)
	}
}

func TestAnimation_Update(t *testing.T) {
	a, err := NewAnimation().With(Linear).With(Reverse).Schedule(time.Second)
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}

	if got := a.Update(250 * time.Millisecond); !approx(got, 0.5) {
		t.Errorf("first keyframe = %v", got)
	}
	if got := a.Update(500 * time.Millisecond); !approx(got, 0.5) {
		t.Errorf("second keyframe = %v", got)
	}
	if got := a.Update(200 * time.Millisecond); !approx(got, 0.1) {
		t.Errorf("near end = %v", got)
	}
	if a.Done() {
		t.Error("not done yet")
	}

	last := a.Position()
	if got := a.Update(time.Second); got != last {
		t.Errorf("finished animation moved to %v", got)
	}
	if !a.Done() {
		t.Error("should be done")
	}

	a.Reset()
	if a.Done() || a.Position() != 0 {
		t.Error("Reset should rewind")
	}
}

func TestAnimation_Repeat(t *testing.T) {
	a, err := NewAnimation().Repeat(true).With(Linear).Schedule(time.Second)
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	a.Update(900 * time.Millisecond)
	if got := a.Update(350 * time.Millisecond); !approx(got, 0.25) {
		t.Errorf("wrapped value = %v, want 0.25", got)
	}
	if a.Done() {
		t.Error("repeating animation is never done")
	}
}

func TestAnimation_RoundTrip(t *testing.T) {
	a, err := NewAnimation().RoundTrip(true).With(Linear).Schedule(time.Second)
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if got := a.Update(500 * time.Millisecond); !approx(got, 1) {
		t.Errorf("midpoint = %v, want 1", got)
	}
	if got := a.Update(250 * time.Millisecond); !approx(got, 0.5) {
		t.Errorf("falling = %v, want 0.5", got)
	}
}

func TestAnimationManager(t *testing.T) {
	m := NewAnimationManager()
	id := ID("fade")
	if id != ID("fade") || id == ID("slide") {
		t.Fatal("ID should be stable and distinct per name")
	}

	first, _ := NewAnimation().With(Linear).Schedule(time.Second)
	if prev := m.Add(id, first, 0); prev != nil {
		t.Error("first Add should not replace anything")
	}
	m.Update(500 * time.Millisecond)
	if got := m.Value(id); !approx(got, 0.5) {
		t.Errorf("Value = %v", got)
	}

	second, _ := NewAnimation().With(Linear).Schedule(time.Second)
	if prev := m.Add(id, second, 0.25); prev != first {
		t.Error("Add should return the replaced animation")
	}
	if a, v, ok := m.Get(id); !ok || a != second || v != 0.25 {
		t.Errorf("Get = %v %v %v", a, v, ok)
	}
	if m.Len() != 1 {
		t.Errorf("Len = %d", m.Len())
	}

	if got := m.Remove(id); got != second {
		t.Error("Remove should return the animation")
	}
	if m.Remove(id) != nil || m.Value(id) != 0 {
		t.Error("removed animation still present")
	}

	m.Add(ID("a"), first, 0)
	m.Add(ID("b"), second, 0)
	m.Clear()
	if m.Len() != 0 {
		t.Error("Clear should empty the manager")
	}
}
