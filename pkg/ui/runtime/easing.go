package runtime

import "math"

// Easing maps progress in [0, 1] to an eased value, normally in [0, 1].
type Easing func(t float64) float64

func Linear(t float64) float64 { return t }

func Reverse(t float64) float64 { return 1 - t }

// RoundTrip rises to 1 at the midpoint and falls back to 0.
func RoundTrip(t float64) float64 {
	if t >= 0.5 {
		t = Reverse(t)
	}
	return t * 2
}

func SineIn(t float64) float64 { return 1 - math.Cos(t*math.Pi/2) }

func SineOut(t float64) float64 { return math.Sin(t * math.Pi / 2) }

func SineInOut(t float64) float64 { return -(math.Cos(math.Pi*t) - 1) / 2 }

func ExponentialIn(t float64) float64 {
	if t <= 0 {
		return 0
	}
	return math.Exp2(10*t - 10)
}

func ExponentialOut(t float64) float64 {
	if t >= 1 {
		return 1
	}
	return 1 - math.Exp2(-10*t)
}

func ExponentialInOut(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	case t < 0.5:
		return math.Exp2(20*t-10) / 2
	default:
		return (2 - math.Exp2(-20*t+10)) / 2
	}
}

func CircularIn(t float64) float64 { return 1 - math.Sqrt(1-t*t) }

func CircularOut(t float64) float64 { return math.Sqrt(1 - (t-1)*(t-1)) }

func CircularInOut(t float64) float64 {
	if t < 0.5 {
		return (1 - math.Sqrt(1-4*t*t)) / 2
	}
	f := -2*t + 2
	return (math.Sqrt(1-f*f) + 1) / 2
}

const (
	elasticC4 = 2 * math.Pi / 3
	elasticC5 = 2 * math.Pi / 4.5
)

func ElasticIn(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	}
	return -math.Exp2(10*t-10) * math.Sin((t*10-10.75)*elasticC4)
}

func ElasticOut(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	}
	return math.Exp2(-10*t)*math.Sin((t*10-0.75)*elasticC4) + 1
}

func ElasticInOut(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	case t < 0.5:
		return -(math.Exp2(20*t-10) * math.Sin((20*t-11.125)*elasticC5)) / 2
	default:
		return math.Exp2(-20*t+10)*math.Sin((20*t-11.125)*elasticC5)/2 + 1
	}
}

func BounceIn(t float64) float64 { return 1 - BounceOut(1-t) }

func BounceOut(t float64) float64 {
	const (
		n1 = 7.5625
		d1 = 2.75
	)
	switch {
	case t < 1/d1:
		return n1 * t * t
	case t < 2/d1:
		t -= 1.5 / d1
		return n1*t*t + 0.75
	case t < 2.5/d1:
		t -= 2.25 / d1
		return n1*t*t + 0.9375
	default:
		t -= 2.625 / d1
		return n1*t*t + 0.984375
	}
}

func BounceInOut(t float64) float64 {
	if t < 0.5 {
		return (1 - BounceOut(1-2*t)) / 2
	}
	return (1 + BounceOut(2*t-1)) / 2
}

const (
	backC1 = 1.70158
	backC2 = backC1 * 1.525
	backC3 = backC1 + 1
)

func BackIn(t float64) float64 { return backC3*t*t*t - backC1*t*t }

func BackOut(t float64) float64 {
	u := t - 1
	return 1 + backC3*u*u*u + backC1*u*u
}

func BackInOut(t float64) float64 {
	if t < 0.5 {
		return (4 * t * t * ((backC2+1)*2*t - backC2)) / 2
	}
	u := 2*t - 2
	return (u*u*((backC2+1)*u+backC2) + 2) / 2
}
