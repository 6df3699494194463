package runtime

import (
	"errors"
	"math"
	"time"

	"github.com/cespare/xxhash/v2"
)

var (
	// ErrNoKeyframes is returned when scheduling an empty animation.
	ErrNoKeyframes = errors.New("animation has no keyframes")
	// ErrKeyframesTooLong is returned when fixed keyframe durations exceed the total.
	ErrKeyframesTooLong = errors.New("keyframe durations exceed scheduled time")
)

type keyframe struct {
	ease  Easing
	dur   time.Duration
	fixed bool
}

// Animation interpolates through keyframes evaluated first to last.
// Build it with With and WithTime, then call Schedule.
type Animation struct {
	keyframes []keyframe
	scheduled time.Duration
	current   time.Duration
	position  float64
	repeat    bool
	roundTrip bool
}

// NewAnimation creates an empty animation.
func NewAnimation() *Animation {
	return &Animation{}
}

// Repeat makes the animation wrap around after its scheduled time.
func (a *Animation) Repeat(repeat bool) *Animation {
	a.repeat = repeat
	return a
}

// RoundTrip makes each keyframe rise and fall back.
func (a *Animation) RoundTrip(roundTrip bool) *Animation {
	a.roundTrip = roundTrip
	return a
}

// With adds a keyframe that shares the unclaimed time evenly.
func (a *Animation) With(ease Easing) *Animation {
	a.keyframes = append(a.keyframes, keyframe{ease: ease})
	return a
}

// WithTime adds a keyframe with a fixed duration.
func (a *Animation) WithTime(ease Easing, d time.Duration) *Animation {
	a.keyframes = append(a.keyframes, keyframe{ease: ease, dur: d, fixed: true})
	return a
}

// Schedule spreads the keyframes over total. Keyframes added with With
// split whatever time the fixed keyframes leave.
func (a *Animation) Schedule(total time.Duration) (*Animation, error) {
	if len(a.keyframes) == 0 {
		return nil, ErrNoKeyframes
	}

	var fixed time.Duration
	free := 0
	for _, kf := range a.keyframes {
		if kf.fixed {
			fixed += kf.dur
		} else {
			free++
		}
	}
	if fixed > total {
		return nil, ErrKeyframesTooLong
	}

	if free > 0 {
		share := (total - fixed) / time.Duration(free)
		rem := (total - fixed) % time.Duration(free)
		for i := range a.keyframes {
			if !a.keyframes[i].fixed {
				a.keyframes[i].dur = share
			}
		}
		// the last free keyframe absorbs the rounding remainder
		for i := len(a.keyframes) - 1; i >= 0; i-- {
			if !a.keyframes[i].fixed {
				a.keyframes[i].dur += rem
				break
			}
		}
	}
	a.scheduled = total
	return a, nil
}

// Reset rewinds the animation to its start.
func (a *Animation) Reset() {
	a.current = 0
	a.position = 0
}

// Position returns the last value computed by Update.
func (a *Animation) Position() float64 {
	return a.position
}

// Done reports whether a non-repeating animation has run past its schedule.
func (a *Animation) Done() bool {
	return !a.repeat && a.current > a.scheduled
}

// Update advances the animation by dt and returns the new value.
func (a *Animation) Update(dt time.Duration) float64 {
	if a.scheduled <= 0 {
		return a.position
	}

	a.current += dt
	if a.current > a.scheduled {
		if !a.repeat {
			return a.position
		}
		a.current %= a.scheduled
	}

	var elapsed time.Duration
	for _, kf := range a.keyframes {
		elapsed += kf.dur
		if a.current > elapsed || kf.dur <= 0 {
			continue
		}
		t := float64(a.current-(elapsed-kf.dur)) / float64(kf.dur)
		v := kf.ease(math.Min(math.Max(t, 0), 1))
		if a.roundTrip {
			v = RoundTrip(v)
		}
		a.position = v
		break
	}
	return a.position
}

// AnimationID keys an animation in an AnimationManager.
type AnimationID uint64

// ID derives an AnimationID from a name.
func ID(name string) AnimationID {
	return AnimationID(xxhash.Sum64String(name))
}

type animationEntry struct {
	animation *Animation
	value     float64
}

// AnimationManager updates many animations at once.
type AnimationManager struct {
	animations map[AnimationID]*animationEntry
}

// NewAnimationManager creates an empty manager.
func NewAnimationManager() *AnimationManager {
	return &AnimationManager{animations: make(map[AnimationID]*animationEntry)}
}

// Add stores animation under id with a starting value and returns any
// animation it replaced.
func (m *AnimationManager) Add(id AnimationID, animation *Animation, initial float64) *Animation {
	prev := m.animations[id]
	m.animations[id] = &animationEntry{animation: animation, value: initial}
	if prev == nil {
		return nil
	}
	return prev.animation
}

// Get returns the animation and its current value.
func (m *AnimationManager) Get(id AnimationID) (*Animation, float64, bool) {
	e, ok := m.animations[id]
	if !ok {
		return nil, 0, false
	}
	return e.animation, e.value, true
}

// Value returns the current value for id, or 0 if it is not present.
func (m *AnimationManager) Value(id AnimationID) float64 {
	if e, ok := m.animations[id]; ok {
		return e.value
	}
	return 0
}

// Remove deletes the animation for id and returns it.
func (m *AnimationManager) Remove(id AnimationID) *Animation {
	e, ok := m.animations[id]
	if !ok {
		return nil
	}
	delete(m.animations, id)
	return e.animation
}

// Update advances every animation by dt.
func (m *AnimationManager) Update(dt time.Duration) {
	for _, e := range m.animations {
		e.value = e.animation.Update(dt)
	}
}

// Len returns the number of animations.
func (m *AnimationManager) Len() int {
	return len(m.animations)
}

// Clear removes all animations.
func (m *AnimationManager) Clear() {
	clear(m.animations)
}
