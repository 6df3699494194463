package compositor

import "github.com/museun/too-sub001/pkg/ui/geom"

// Border draws the edge of its canvas with eight pixels.
type Border struct {
	LeftTop     Pixel
	Top         Pixel
	RightTop    Pixel
	Right       Pixel
	RightBottom Pixel
	Bottom      Pixel
	LeftBottom  Pixel
	Left        Pixel
}

func border(lt, top, rt, right, rb, bottom, lb, left rune) Border {
	return Border{
		LeftTop:     NewPixel(lt),
		Top:         NewPixel(top),
		RightTop:    NewPixel(rt),
		Right:       NewPixel(right),
		RightBottom: NewPixel(rb),
		Bottom:      NewPixel(bottom),
		LeftBottom:  NewPixel(lb),
		Left:        NewPixel(left),
	}
}

// Border presets.
var (
	BorderEmpty     = border(' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ')
	BorderThin      = border('┌', '─', '┐', '│', '┘', '─', '└', '│')
	BorderThinWide  = border('▁', '▁', '▁', '▕', '▔', '▔', '▔', '▏')
	BorderRounded   = border('╭', '─', '╮', '│', '╯', '─', '╰', '│')
	BorderDouble    = border('╔', '═', '╗', '║', '╝', '═', '╚', '║')
	BorderThick     = border('┏', '━', '┓', '┃', '┛', '━', '┗', '┃')
	BorderThickTall = border('▛', '▀', '▜', '▐', '▟', '▄', '▙', '▌')
	BorderThickWide = border('▗', '▄', '▖', '▌', '▘', '▀', '▝', '▐')
)

func (b *Border) pixels() []*Pixel {
	return []*Pixel{
		&b.LeftTop, &b.Top, &b.RightTop, &b.Right,
		&b.RightBottom, &b.Bottom, &b.LeftBottom, &b.Left,
	}
}

// WithFG returns a copy with every pixel's foreground set.
func (b Border) WithFG(c Color) Border {
	for _, p := range b.pixels() {
		*p = p.WithFG(c)
	}
	return b
}

// WithBG returns a copy with every pixel's background set.
func (b Border) WithBG(c Color) Border {
	for _, p := range b.pixels() {
		*p = p.WithBG(c)
	}
	return b
}

// Draw paints the edges, then the corners on top.
func (b Border) Draw(size Vec2, put func(Pos2, Cell)) {
	if size.X <= 0 || size.Y <= 0 {
		return
	}
	r := geom.RectFromSize(size)
	lt, rt, rb, lb := r.LeftTop(), r.RightTop(), r.RightBottom(), r.LeftBottom()

	for x := lt.X; x < rt.X; x++ {
		put(Pos2{X: x, Y: lt.Y}, b.Top.Cell())
	}
	for x := lb.X; x < rb.X; x++ {
		put(Pos2{X: x, Y: lb.Y}, b.Bottom.Cell())
	}
	for y := rt.Y; y < rb.Y; y++ {
		put(Pos2{X: rt.X, Y: y}, b.Right.Cell())
	}
	for y := lt.Y; y < lb.Y; y++ {
		put(Pos2{X: lt.X, Y: y}, b.Left.Cell())
	}

	put(lt, b.LeftTop.Cell())
	put(rt, b.RightTop.Cell())
	put(rb, b.RightBottom.Cell())
	put(lb, b.LeftBottom.Cell())
}

// Axis selects horizontal or vertical layout.
type Axis uint8

const (
	Horizontal Axis = iota
	Vertical
)

func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Line runes.
const (
	LightHorizontal              = '─'
	HeavyHorizontal              = '━'
	LightVertical                = '│'
	HeavyVertical                = '┃'
	LightTripleDashHorizontal    = '┄'
	HeavyTripleDashHorizontal    = '┅'
	LightTripleDashVertical      = '┆'
	HeavyTripleDashVertical      = '┇'
	LightQuadrupleDashHorizontal = '┈'
	HeavyQuadrupleDashHorizontal = '┉'
	LightQuadrupleDashVertical   = '┊'
	HeavyQuadrupleDashVertical   = '┋'
)

// Line repeats a pixel along the first row or column of its canvas.
type Line struct {
	Axis  Axis
	Pixel Pixel
}

// HorizontalLine creates a line along the top row.
func HorizontalLine(ch rune) Line {
	return Line{Axis: Horizontal, Pixel: NewPixel(ch)}
}

// VerticalLine creates a line down the left column.
func VerticalLine(ch rune) Line {
	return Line{Axis: Vertical, Pixel: NewPixel(ch)}
}

// WithFG returns a copy with the foreground set.
func (l Line) WithFG(c Color) Line {
	l.Pixel = l.Pixel.WithFG(c)
	return l
}

// WithBG returns a copy with the background set.
func (l Line) WithBG(c Color) Line {
	l.Pixel = l.Pixel.WithBG(c)
	return l
}

// Draw implements Shape.
func (l Line) Draw(size Vec2, put func(Pos2, Cell)) {
	if size.X <= 0 || size.Y <= 0 {
		return
	}
	cell := l.Pixel.Cell()
	if l.Axis == Vertical {
		for y := 0; y < size.Y; y++ {
			put(Pos2{Y: y}, cell)
		}
		return
	}
	for x := 0; x < size.X; x++ {
		put(Pos2{X: x}, cell)
	}
}
