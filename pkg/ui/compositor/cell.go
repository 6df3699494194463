// Package compositor provides a flicker-free terminal rendering system.
// It maintains a double-buffered cell grid and outputs only changed cells.
package compositor

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// ColorMode defines how a color is applied to a cell.
type ColorMode uint8

const (
	// ColorModeReuse keeps whatever color is already underneath.
	ColorModeReuse ColorMode = iota
	// ColorModeReset restores the terminal default color.
	ColorModeReset
	// ColorModeRGBA uses an explicit color.
	ColorModeRGBA
)

// Color is a cell foreground or background.
type Color struct {
	Mode ColorMode
	RGBA Rgba
}

// Pre-defined colors for convenience.
var (
	ColorReuse = Color{Mode: ColorModeReuse}
	ColorReset = Color{Mode: ColorModeReset}
)

// ColorSet creates an explicit color.
func ColorSet(c Rgba) Color {
	return Color{Mode: ColorModeRGBA, RGBA: c}
}

// ColorHex creates an explicit color from a hex literal. It panics on malformed input.
func ColorHex(s string) Color {
	return ColorSet(MustHex(s))
}

func (c Color) String() string {
	switch c.Mode {
	case ColorModeReuse:
		return "reuse"
	case ColorModeReset:
		return "reset"
	default:
		return c.RGBA.Hex()
	}
}

// mergeFG replaces old unless new is Reuse.
func mergeFG(old, new Color) Color {
	if new.Mode == ColorModeReuse {
		return old
	}
	return new
}

// mergeBG alpha-composites two explicit colors, otherwise behaves like mergeFG.
func mergeBG(old, new Color) Color {
	if new.Mode == ColorModeRGBA && old.Mode == ColorModeRGBA {
		return ColorSet(new.RGBA.BlendAlpha(old.RGBA))
	}
	return mergeFG(old, new)
}

// Attribute is a set of SGR text attributes.
type Attribute uint16

// The SGR code of each attribute is its bit index plus one.
const (
	AttrReset     Attribute = 0
	AttrBold      Attribute = 1 << 0
	AttrFaint     Attribute = 1 << 1
	AttrItalic    Attribute = 1 << 2
	AttrUnderline Attribute = 1 << 3
	AttrBlink     Attribute = 1 << 4
	AttrReverse   Attribute = 1 << 6
	AttrStrikeout Attribute = 1 << 8
)

var attrNames = []struct {
	attr Attribute
	name string
}{
	{AttrBold, "bold"},
	{AttrFaint, "faint"},
	{AttrItalic, "italic"},
	{AttrUnderline, "underline"},
	{AttrBlink, "blink"},
	{AttrReverse, "reverse"},
	{AttrStrikeout, "strikeout"},
}

// ParseAttribute parses names joined by '+', such as "bold+italic".
// "reset" and the empty string yield AttrReset.
func ParseAttribute(s string) (Attribute, error) {
	var out Attribute
	for _, part := range strings.Split(s, "+") {
		part = strings.TrimSpace(part)
		if part == "" || strings.EqualFold(part, "reset") {
			continue
		}
		found := false
		for _, n := range attrNames {
			if strings.EqualFold(part, n.name) {
				out |= n.attr
				found = true
				break
			}
		}
		if !found {
			return AttrReset, fmt.Errorf("unknown attribute: %q", part)
		}
	}
	return out, nil
}

// Has reports whether all bits of o are set.
func (a Attribute) Has(o Attribute) bool {
	return a&o == o
}

// Codes lists the SGR codes of the set bits in bit order.
func (a Attribute) Codes() []int {
	var codes []int
	for i := 0; i < 16; i++ {
		if a&(1<<i) != 0 {
			codes = append(codes, i+1)
		}
	}
	return codes
}

func (a Attribute) String() string {
	if a == AttrReset {
		return "reset"
	}
	var parts []string
	for _, n := range attrNames {
		if a.Has(n.attr) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "+")
}

// Pixel is a single code point drawn into one cell.
type Pixel struct {
	Char rune
	FG   Color
	BG   Color
	Attr Attribute
}

// DefaultPixel is a blank with terminal default colors.
var DefaultPixel = Pixel{Char: ' ', FG: ColorReset, BG: ColorReset}

// NewPixel creates a pixel that resets the foreground and keeps the background.
func NewPixel(ch rune) Pixel {
	return Pixel{Char: ch, FG: ColorReset, BG: ColorReuse}
}

// PixelFromRgba creates a blank pixel with the given background.
func PixelFromRgba(c Rgba) Pixel {
	return Pixel{Char: ' ', FG: ColorReset, BG: ColorSet(c)}
}

// WithChar returns a copy with the char set.
func (p Pixel) WithChar(ch rune) Pixel {
	p.Char = ch
	return p
}

// WithFG returns a copy with foreground color set.
func (p Pixel) WithFG(c Color) Pixel {
	p.FG = c
	return p
}

// WithBG returns a copy with background color set.
func (p Pixel) WithBG(c Color) Pixel {
	p.BG = c
	return p
}

// WithAttr returns a copy with the attribute set.
func (p Pixel) WithAttr(a Attribute) Pixel {
	p.Attr = a
	return p
}

// Bold returns a copy with bold added.
func (p Pixel) Bold() Pixel { return p.WithAttr(p.Attr | AttrBold) }

// Italic returns a copy with italic added.
func (p Pixel) Italic() Pixel { return p.WithAttr(p.Attr | AttrItalic) }

// Underline returns a copy with underline added.
func (p Pixel) Underline() Pixel { return p.WithAttr(p.Attr | AttrUnderline) }

// Faint returns a copy with faint added.
func (p Pixel) Faint() Pixel { return p.WithAttr(p.Attr | AttrFaint) }

// Reverse returns a copy with reverse added.
func (p Pixel) Reverse() Pixel { return p.WithAttr(p.Attr | AttrReverse) }

// Cell converts the pixel to a cell.
func (p Pixel) Cell() Cell {
	return Cell{Kind: CellPixel, Char: p.Char, FG: p.FG, BG: p.BG, Attr: p.Attr}
}

// Draw makes a pixel a one-cell shape at the origin.
func (p Pixel) Draw(size Vec2, put func(Pos2, Cell)) {
	if size.X > 0 && size.Y > 0 {
		put(Pos2{}, p.Cell())
	}
}

// Grapheme is a user-perceived character that may span several code points.
type Grapheme struct {
	Cluster string
	FG      Color
	BG      Color
	Attr    Attribute
}

// NewGrapheme creates a grapheme that resets the foreground and keeps the background.
func NewGrapheme(cluster string) Grapheme {
	return Grapheme{Cluster: cluster, FG: ColorReset, BG: ColorReuse}
}

// WithFG returns a copy with foreground color set.
func (g Grapheme) WithFG(c Color) Grapheme {
	g.FG = c
	return g
}

// WithBG returns a copy with background color set.
func (g Grapheme) WithBG(c Color) Grapheme {
	g.BG = c
	return g
}

// WithAttr returns a copy with the attribute set.
func (g Grapheme) WithAttr(a Attribute) Grapheme {
	g.Attr = a
	return g
}

// Cell converts the grapheme to a cell.
func (g Grapheme) Cell() Cell {
	return Cell{Kind: CellGrapheme, Cluster: g.Cluster, FG: g.FG, BG: g.BG, Attr: g.Attr}
}

// CellKind tags the variant held by a Cell.
type CellKind uint8

const (
	// CellEmpty has never been drawn this frame.
	CellEmpty CellKind = iota
	// CellContinuation is the right part of a wide cell.
	CellContinuation
	// CellPixel holds a single rune.
	CellPixel
	// CellGrapheme holds a grapheme cluster.
	CellGrapheme
)

func (k CellKind) String() string {
	switch k {
	case CellEmpty:
		return "empty"
	case CellContinuation:
		return "continuation"
	case CellPixel:
		return "pixel"
	case CellGrapheme:
		return "grapheme"
	default:
		return fmt.Sprintf("CellKind(%d)", uint8(k))
	}
}

// Cell represents a single character cell on screen.
// Only the fields relevant to Kind are set, so cells compare with ==.
type Cell struct {
	Kind    CellKind
	Char    rune
	Cluster string
	FG      Color
	BG      Color
	Attr    Attribute
}

// EmptyCell is the zero cell.
var EmptyCell = Cell{}

// ContinuationCell fills the columns covered by a wide cell.
var ContinuationCell = Cell{Kind: CellContinuation}

// IsEmpty reports whether the cell is Empty.
func (c Cell) IsEmpty() bool { return c.Kind == CellEmpty }

// IsContinuation reports whether the cell is a Continuation.
func (c Cell) IsContinuation() bool { return c.Kind == CellContinuation }

// Width returns the number of columns the cell occupies.
func (c Cell) Width() int {
	switch c.Kind {
	case CellPixel:
		return runewidth.RuneWidth(c.Char)
	case CellGrapheme:
		return runewidth.StringWidth(c.Cluster)
	default:
		return 0
	}
}

// Text returns the printable content of the cell.
func (c Cell) Text() string {
	switch c.Kind {
	case CellPixel:
		return string(c.Char)
	case CellGrapheme:
		return c.Cluster
	default:
		return ""
	}
}

// Merge composes new over old.
func Merge(old, new Cell) Cell {
	switch new.Kind {
	case CellEmpty, CellContinuation:
		return old
	}
	switch old.Kind {
	case CellEmpty, CellContinuation:
		return new
	}

	out := new
	out.FG = mergeFG(old.FG, new.FG)
	out.BG = mergeBG(old.BG, new.BG)
	return out
}
