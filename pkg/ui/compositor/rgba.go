package compositor

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColor is returned when a color string cannot be parsed.
var ErrInvalidColor = errors.New("invalid color")

// Rgba is an 8-bit per channel color with straight (non-premultiplied) alpha.
type Rgba struct {
	R, G, B, A uint8
}

var (
	// Transparent has zero alpha and blends to whatever is underneath.
	Transparent = Rgba{}
	// Opaque is fully opaque white.
	Opaque = Rgba{R: 255, G: 255, B: 255, A: 255}
)

// RGB creates an opaque color.
func RGB(r, g, b uint8) Rgba {
	return Rgba{R: r, G: g, B: b, A: 255}
}

// RGBA creates a color with alpha.
func RGBA(r, g, b, a uint8) Rgba {
	return Rgba{R: r, G: g, B: b, A: a}
}

// ParseHex parses #RGB, #RGBA, #RRGGBB or #RRGGBBAA.
// Leading and trailing whitespace is ignored.
func ParseHex(s string) (Rgba, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Rgba{}, fmt.Errorf("%w: empty string", ErrInvalidColor)
	}
	if s[0] != '#' {
		return Rgba{}, fmt.Errorf("%w: missing '#' prefix in %q", ErrInvalidColor, s)
	}

	digits := s[1:]
	for i := 0; i < len(digits); i++ {
		if _, ok := hexDigit(digits[i]); !ok {
			return Rgba{}, fmt.Errorf("%w: invalid hex digit %q in %q", ErrInvalidColor, digits[i], s)
		}
	}

	switch len(digits) {
	case 3, 4:
		var ch [4]uint8
		ch[3] = 0xFF
		for i := 0; i < len(digits); i++ {
			d, _ := hexDigit(digits[i])
			ch[i] = d<<4 | d
		}
		return Rgba{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
	case 6, 8:
		var ch [4]uint8
		ch[3] = 0xFF
		for i := 0; i < len(digits); i += 2 {
			hi, _ := hexDigit(digits[i])
			lo, _ := hexDigit(digits[i+1])
			ch[i/2] = hi<<4 | lo
		}
		return Rgba{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
	default:
		return Rgba{}, fmt.Errorf("%w: %q, want #RRGGBB | #RRGGBBAA | #RGB | #RGBA", ErrInvalidColor, s)
	}
}

// MustHex is ParseHex for literals. It panics on malformed input.
func MustHex(s string) Rgba {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Parse accepts the hex forms plus rgb(r, g, b) and rgb(r, g, b, a).
func Parse(s string) (Rgba, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		return ParseHex(s)
	}
	if !strings.HasPrefix(s, "rgb(") || !strings.HasSuffix(s, ")") {
		return ParseHex(s)
	}

	parts := strings.Split(s[len("rgb("):len(s)-1], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return Rgba{}, fmt.Errorf("%w: %q, want rgb(r, g, b) or rgb(r, g, b, a)", ErrInvalidColor, s)
	}

	names := [4]string{"red", "green", "blue", "alpha"}
	ch := [4]uint8{0, 0, 0, 0xFF}
	for i, part := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(part), 10, 8)
		if err != nil {
			return Rgba{}, fmt.Errorf("%w: invalid %s channel in %q", ErrInvalidColor, names[i], s)
		}
		ch[i] = uint8(v)
	}
	return Rgba{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}

func hexDigit(b byte) (uint8, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	}
	return 0, false
}

// Hex formats the color as #rrggbb, or #rrggbbaa when not opaque.
func (c Rgba) Hex() string {
	if c.A == 0xFF {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

func (c Rgba) String() string {
	return c.Hex()
}

// MarshalText implements encoding.TextMarshaler.
func (c Rgba) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Rgba) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// WithAlpha returns c with its alpha replaced.
func (c Rgba) WithAlpha(a uint8) Rgba {
	c.A = a
	return c
}

// ToOpaque returns c with full alpha.
func (c Rgba) ToOpaque() Rgba {
	return c.WithAlpha(0xFF)
}

// ToTransparent sets alpha from a percentage in [0, 100].
func (c Rgba) ToTransparent(percent float64) Rgba {
	t := clamp01(percent / 100)
	c.A = uint8(t * 255)
	return c
}

// ToFloat returns the channels normalized to [0, 1].
func (c Rgba) ToFloat() [4]float64 {
	return [4]float64{
		float64(c.R) / 255,
		float64(c.G) / 255,
		float64(c.B) / 255,
		float64(c.A) / 255,
	}
}

// FromFloat builds a color from normalized channels, clamping each to [0, 1].
func FromFloat(v [4]float64) Rgba {
	scale := func(d float64) uint8 {
		return uint8(math.Round(clamp01(d) * 255))
	}
	return Rgba{R: scale(v[0]), G: scale(v[1]), B: scale(v[2]), A: scale(v[3])}
}

// Mix blends c (weighted by left) with other (weighted by right).
// The result alpha is the larger of the two.
func (c Rgba) Mix(left float64, other Rgba, right float64) Rgba {
	ratio := left + right
	if ratio == 0 {
		return c
	}
	a, b := c.ToFloat(), other.ToFloat()
	return FromFloat([4]float64{
		(left*a[0] + right*b[0]) / ratio,
		(left*a[1] + right*b[1]) / ratio,
		(left*a[2] + right*b[2]) / ratio,
		math.Max(a[3], b[3]),
	})
}

// Blend mixes c and other with equal weight mix.
func (c Rgba) Blend(other Rgba, mix float64) Rgba {
	return c.Mix(mix, other, mix)
}

// BlendLinear interpolates from c (t=0) to other (t=1).
func (c Rgba) BlendLinear(other Rgba, t float64) Rgba {
	t = clamp01(t)
	a, b := c.ToFloat(), other.ToFloat()
	return FromFloat([4]float64{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
		math.Max(a[3], b[3]),
	})
}

// BlendAlpha composites c over under using c's alpha.
// Alpha 0 yields under, alpha 255 yields c; the result is opaque.
func (c Rgba) BlendAlpha(under Rgba) Rgba {
	switch c.A {
	case 0:
		return under
	case 0xFF:
		return c
	}
	a := int(c.A)
	blend := func(src, dst uint8) uint8 {
		v := (a*int(src) + (255-a)*int(dst)) / 255
		return uint8(min(max(v, 0), 255))
	}
	return Rgba{
		R: blend(c.R, under.R),
		G: blend(c.G, under.G),
		B: blend(c.B, under.B),
		A: 0xFF,
	}
}

// BlendLab interpolates in CIE-L*a*b* space, which keeps perceived
// lightness even across the blend. Alpha is interpolated linearly.
func (c Rgba) BlendLab(other Rgba, t float64) Rgba {
	t = clamp01(t)
	a := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	b := colorful.Color{R: float64(other.R) / 255, G: float64(other.G) / 255, B: float64(other.B) / 255}
	r, g, bl := a.BlendLab(b, t).Clamped().RGB255()
	alpha := float64(c.A) + (float64(other.A)-float64(c.A))*t
	return Rgba{R: r, G: g, B: bl, A: uint8(math.Round(alpha))}
}

// Vec3 is a triple used by the cosine palette.
type Vec3 struct {
	X, Y, Z float64
}

// Gradient evaluates the cosine palette offset + amp*cos(2π(freq*t + phase)).
func Gradient(t float64, offset, amp, freq, phase Vec3) Rgba {
	f := func(o, a, fr, ph float64) float64 {
		return o + a*math.Cos((fr*t+ph)*2*math.Pi)
	}
	return FromFloat([4]float64{
		f(offset.X, amp.X, freq.X, phase.X),
		f(offset.Y, amp.Y, freq.Y, phase.Y),
		f(offset.Z, amp.Z, freq.Z, phase.Z),
		1,
	})
}

// Sine returns a smoothly cycling hue for t, stepping by the golden ratio.
func Sine(t float64) Rgba {
	h := t * ((1 + math.Sqrt(5)) / 2)
	h = -(h + 0.5)
	r := math.Sin(math.Pi * h)
	g := math.Sin(math.Pi * (h + 0.3))
	b := math.Sin(math.Pi * (h + 0.6))
	return FromFloat([4]float64{r * r, g * g, b * b, 1})
}

// Palette is a named cosine palette.
type Palette struct {
	Offset, Amp, Freq, Phase Vec3
}

// At evaluates the palette at t.
func (p Palette) At(t float64) Rgba {
	return Gradient(t, p.Offset, p.Amp, p.Freq, p.Phase)
}

// Predefined palettes.
var (
	PaletteRainbow = Palette{
		Offset: Vec3{0.5, 0.5, 0.5},
		Amp:    Vec3{0.5, 0.5, 0.5},
		Freq:   Vec3{1, 1, 1},
		Phase:  Vec3{0, 0.3, 0.6},
	}
	PaletteYellowMagentaCyan = Palette{
		Offset: Vec3{1, 0.5, 0.5},
		Amp:    Vec3{0.5, 0.5, 0.5},
		Freq:   Vec3{0.75, 1, 0.6},
		Phase:  Vec3{0.8, 1, 0.3},
	}
	PaletteOrangeBlue = Palette{
		Offset: Vec3{0.5, 0.5, 0.5},
		Amp:    Vec3{0.5, 0.5, 0.5},
		Freq:   Vec3{0.8, 0.8, 0.5},
		Phase:  Vec3{0, 0.2, 0.5},
	}
	PaletteGreenMagenta = Palette{
		Offset: Vec3{0.6, 0.5, 0.5},
		Amp:    Vec3{0.5, 0.6, 0.5},
		Freq:   Vec3{0.6, 0.6, 0.5},
		Phase:  Vec3{0.2, 0, 0.5},
	}
)

func clamp01(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}
