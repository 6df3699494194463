package runtime

import (
	"math"
	"math/bits"
)

// WindowStats summarizes frame rates derived from frame durations.
type WindowStats struct {
	Min float64
	Max float64
	Avg float64
}

// EMAWindow is a ring of the last N samples with a running min and max and
// an exponential moving average using alpha = 1/N. N is a power of two.
type EMAWindow struct {
	buf    []float64
	mask   int
	index  int
	n      int
	alpha  float64
	ema    float64
	min    float64
	max    float64
	seeded bool
}

// NewEMAWindow creates a window holding n samples, rounded up to a power of two.
func NewEMAWindow(n int) *EMAWindow {
	if n < 1 {
		n = 1
	}
	size := 1 << bits.Len(uint(n-1))
	return &EMAWindow{
		buf:   make([]float64, size),
		mask:  size - 1,
		alpha: 1 / float64(size),
		min:   math.Inf(1),
		max:   math.Inf(-1),
	}
}

// Cap returns the window capacity.
func (w *EMAWindow) Cap() int { return len(w.buf) }

// Len returns how many samples are live.
func (w *EMAWindow) Len() int { return w.n }

// Push adds a sample, evicting the oldest once the window is full.
func (w *EMAWindow) Push(v float64) {
	full := w.n == len(w.buf)
	old := w.buf[w.index]
	w.buf[w.index] = v
	w.index = (w.index + 1) & w.mask
	if !full {
		w.n++
	}

	if !w.seeded {
		w.ema = v
		w.seeded = true
	} else {
		w.ema += w.alpha * (v - w.ema)
	}

	w.min = math.Min(w.min, v)
	w.max = math.Max(w.max, v)
	if !full {
		return
	}

	live := w.buf[:w.n]
	if old == w.min {
		w.min = math.Inf(1)
		for _, s := range live {
			w.min = math.Min(w.min, s)
		}
	}
	if old == w.max {
		w.max = math.Inf(-1)
		for _, s := range live {
			w.max = math.Max(w.max, s)
		}
	}
}

// MinMax returns the smallest and largest live samples.
func (w *EMAWindow) MinMax() (float64, float64) {
	if w.n == 0 {
		return 0, 0
	}
	return w.min, w.max
}

// EMA returns the moving average.
func (w *EMAWindow) EMA() float64 { return w.ema }

// Stats treats samples as durations in seconds and reports rates: the
// slowest sample gives Min and the fastest gives Max.
func (w *EMAWindow) Stats() WindowStats {
	if w.n == 0 {
		return WindowStats{}
	}
	return WindowStats{
		Min: recip(w.max),
		Max: recip(w.min),
		Avg: recip(w.ema),
	}
}

func recip(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return 1 / v
}
