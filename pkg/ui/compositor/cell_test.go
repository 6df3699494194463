package compositor

import (
	"errors"
	"math/rand"
	"slices"
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want Rgba
	}{
		{"#F00", RGB(255, 0, 0)},
		{"#f008", RGBA(255, 0, 0, 0x88)},
		{"#112233", RGB(0x11, 0x22, 0x33)},
		{"#11223344", RGBA(0x11, 0x22, 0x33, 0x44)},
		{"  #abcdef\n", RGB(0xab, 0xcd, 0xef)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if err != nil {
				t.Fatalf("ParseHex(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseHex_Errors(t *testing.T) {
	for _, in := range []string{"", "F00", "#12", "#GGG", "#1234567", "#"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseHex(in)
			if !errors.Is(err, ErrInvalidColor) {
				t.Errorf("ParseHex(%q) = %v, want ErrInvalidColor", in, err)
			}
		})
	}
}

func TestMustHex_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for malformed literal")
		}
	}()
	MustHex("#nope")
}

func TestParse_RGBFunction(t *testing.T) {
	got, err := Parse("rgb(1, 2, 3)")
	if err != nil || got != RGB(1, 2, 3) {
		t.Errorf("Parse rgb = %v, %v", got, err)
	}

	got, err = Parse("rgb(1,2,3,4)")
	if err != nil || got != RGBA(1, 2, 3, 4) {
		t.Errorf("Parse rgba = %v, %v", got, err)
	}

	if _, err := Parse("rgb(256, 0, 0)"); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("expected channel overflow error, got %v", err)
	}
	if _, err := Parse("rgb(1, 2)"); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("expected arity error, got %v", err)
	}
}

func TestHex_RoundTrip(t *testing.T) {
	check := func(c Rgba) {
		got, err := Parse(c.Hex())
		if err != nil {
			t.Fatalf("Parse(%q): %v", c.Hex(), err)
		}
		if got != c {
			t.Fatalf("round trip %v -> %q -> %v", c, c.Hex(), got)
		}
	}

	for v := 0; v < 256; v++ {
		b := uint8(v)
		check(RGBA(b, 0, 0, 255))
		check(RGBA(0, b, 0, 255))
		check(RGBA(0, 0, b, 255))
		check(RGBA(b, b, b, b))
	}

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100000; i++ {
		v := rng.Uint32()
		check(RGBA(uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v)))
	}
}

func TestRgba_TextMarshaling(t *testing.T) {
	var c Rgba
	if err := c.UnmarshalText([]byte("#102030")); err != nil {
		t.Fatal(err)
	}
	out, _ := c.MarshalText()
	if string(out) != "#102030" {
		t.Errorf("MarshalText = %q", out)
	}
	if err := c.UnmarshalText([]byte("zzz")); err == nil {
		t.Error("expected error")
	}
}

func within(a, b uint8, tol int) bool {
	d := int(a) - int(b)
	return d >= -tol && d <= tol
}

func TestBlendAlpha(t *testing.T) {
	under := RGB(10, 20, 30)

	if got := RGBA(200, 200, 200, 0).BlendAlpha(under); got != under {
		t.Errorf("alpha 0 = %v, want under", got)
	}
	if got := RGB(200, 100, 50).BlendAlpha(under); got != RGB(200, 100, 50) {
		t.Errorf("alpha 255 = %v, want self", got)
	}

	// lerp(r', r, a/255) with tolerance 1
	src := RGBA(255, 128, 0, 64)
	got := src.BlendAlpha(RGB(0, 0, 255))
	want := RGB(64, 32, 191)
	if !within(got.R, want.R, 1) || !within(got.G, want.G, 1) || !within(got.B, want.B, 1) || got.A != 255 {
		t.Errorf("got %v, want about %v", got, want)
	}
}

func TestBlendLab_Endpoints(t *testing.T) {
	a, b := RGB(255, 0, 0), RGB(0, 0, 255)
	start, end := a.BlendLab(b, 0), a.BlendLab(b, 1)
	if !within(start.R, 255, 1) || !within(start.B, 0, 1) {
		t.Errorf("t=0 = %v, want about %v", start, a)
	}
	if !within(end.R, 0, 1) || !within(end.B, 255, 1) {
		t.Errorf("t=1 = %v, want about %v", end, b)
	}
}

func TestMix(t *testing.T) {
	got := RGB(0, 0, 0).Mix(1, RGB(255, 255, 255), 1)
	if !within(got.R, 128, 1) || got.A != 255 {
		t.Errorf("Mix = %v", got)
	}
	if got := RGB(1, 2, 3).Mix(0, RGB(9, 9, 9), 0); got != RGB(1, 2, 3) {
		t.Errorf("zero weights = %v, want self", got)
	}
}

func TestPalette(t *testing.T) {
	c := PaletteRainbow.At(0)
	if c.R != 255 || c.A != 255 {
		t.Errorf("rainbow(0) = %v", c)
	}
	if s := Sine(0.25); s.A != 255 {
		t.Errorf("Sine alpha = %d", s.A)
	}
}

func TestAttribute(t *testing.T) {
	a, err := ParseAttribute("bold+Italic")
	if err != nil {
		t.Fatal(err)
	}
	if a != AttrBold|AttrItalic {
		t.Errorf("got %v", a)
	}
	if a.String() != "bold+italic" {
		t.Errorf("String = %q", a.String())
	}

	if r, _ := ParseAttribute("reset"); r != AttrReset || r.String() != "reset" {
		t.Errorf("reset = %v", r)
	}
	if _, err := ParseAttribute("bold+sparkly"); err == nil {
		t.Error("expected unknown attribute error")
	}

	if got := (AttrReverse | AttrStrikeout | AttrBold).Codes(); !slices.Equal(got, []int{1, 7, 9}) {
		t.Errorf("Codes = %v", got)
	}
}

func TestMerge(t *testing.T) {
	red := ColorSet(RGB(255, 0, 0))
	blue := ColorSet(RGB(0, 0, 255))
	old := NewPixel('a').WithFG(red).WithBG(blue).Cell()

	t.Run("onto empty", func(t *testing.T) {
		if got := Merge(EmptyCell, old); got != old {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("empty keeps old", func(t *testing.T) {
		if got := Merge(old, EmptyCell); got != old {
			t.Errorf("got %+v", got)
		}
		if got := Merge(old, ContinuationCell); got != old {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("reuse is a no-op", func(t *testing.T) {
		same := Pixel{Char: 'a', FG: ColorReuse, BG: ColorReuse}.Cell()
		if got := Merge(old, same); got != old {
			t.Errorf("got %+v, want %+v", got, old)
		}
	})

	t.Run("reset replaces", func(t *testing.T) {
		got := Merge(old, Pixel{Char: 'b', FG: ColorReset, BG: ColorReset}.Cell())
		if got.FG != ColorReset || got.BG != ColorReset || got.Char != 'b' {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("grapheme replaces pixel", func(t *testing.T) {
		got := Merge(old, NewGrapheme("éx").Cell())
		if got.Kind != CellGrapheme || got.Char != 0 || got.BG != blue {
			t.Errorf("got %+v", got)
		}
	})
}

func TestCell_Width(t *testing.T) {
	tests := []struct {
		name string
		cell Cell
		want int
	}{
		{"empty", EmptyCell, 0},
		{"continuation", ContinuationCell, 0},
		{"ascii", NewPixel('a').Cell(), 1},
		{"wide", NewPixel('世').Cell(), 2},
		{"cluster", NewGrapheme("ab").Cell(), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cell.Width(); got != tt.want {
				t.Errorf("Width() = %d, want %d", got, tt.want)
			}
		})
	}
}
