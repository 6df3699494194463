package compositor

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
)

// Justification places text along an axis.
type Justification uint8

const (
	JustifyStart Justification = iota
	JustifyCenter
	JustifyEnd
)

// offset returns where content of length used starts within available.
func (j Justification) offset(available, used int) int {
	switch j {
	case JustifyCenter:
		return (available - used) / 2
	case JustifyEnd:
		return available - used
	default:
		return 0
	}
}

// Text is a shape that lays out a string, wrapping greedily on width.
type Text struct {
	Content string
	FG      Color
	BG      Color
	Attr    Attribute
	Main    Justification
	Cross   Justification
}

// NewText creates text that resets the foreground and keeps the background.
func NewText(s string) Text {
	return Text{Content: s, FG: ColorReset, BG: ColorReuse}
}

// WithFG returns a copy with foreground color set.
func (t Text) WithFG(c Color) Text {
	t.FG = c
	return t
}

// WithBG returns a copy with background color set.
func (t Text) WithBG(c Color) Text {
	t.BG = c
	return t
}

// WithAttr returns a copy with a added to its attributes.
func (t Text) WithAttr(a Attribute) Text {
	t.Attr |= a
	return t
}

// Bold returns a copy with bold added.
func (t Text) Bold() Text { return t.WithAttr(AttrBold) }

// Italic returns a copy with italic added.
func (t Text) Italic() Text { return t.WithAttr(AttrItalic) }

// Underline returns a copy with underline added.
func (t Text) Underline() Text { return t.WithAttr(AttrUnderline) }

// WithMain returns a copy with the horizontal justification set.
func (t Text) WithMain(j Justification) Text {
	t.Main = j
	return t
}

// WithCross returns a copy with the vertical justification set.
func (t Text) WithCross(j Justification) Text {
	t.Cross = j
	return t
}

// Size returns the unwrapped extent of the text.
func (t Text) Size() Vec2 {
	return Vec2{X: MeasureText(t.Content), Y: 1}
}

// MeasureText returns the display width of s.
func MeasureText(s string) int {
	return runewidth.StringWidth(norm.NFC.String(s))
}

type cluster struct {
	text  string
	width int
}

type textLine struct {
	clusters []cluster
	width    int
}

func (t Text) cell(c cluster) Cell {
	if utf8.RuneCountInString(c.text) == 1 {
		ch, _ := utf8.DecodeRuneInString(c.text)
		return Pixel{Char: ch, FG: t.FG, BG: t.BG, Attr: t.Attr}.Cell()
	}
	return Grapheme{Cluster: c.text, FG: t.FG, BG: t.BG, Attr: t.Attr}.Cell()
}

// lines splits the content into wrapped lines no wider than available.
// A newline always starts a new line.
func (t Text) lines(available int) []textLine {
	var (
		out     []textLine
		current textLine
	)

	state := -1
	rest := norm.NFC.String(t.Content)
	for len(rest) > 0 {
		var text string
		text, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if text == "\n" || text == "\r\n" {
			out = append(out, current)
			current = textLine{}
			continue
		}
		w := max(runewidth.StringWidth(text), 1)

		if current.width+w > available && len(current.clusters) > 0 {
			out = append(out, current)
			current = textLine{}
		}
		current.clusters = append(current.clusters, cluster{text: text, width: w})
		current.width += w
	}
	if len(current.clusters) > 0 {
		out = append(out, current)
	}
	return out
}

// Draw implements Shape. One cell is written per grapheme cluster.
func (t Text) Draw(size Vec2, put func(Pos2, Cell)) {
	if size.X <= 0 || size.Y <= 0 {
		return
	}

	lines := t.lines(size.X)
	y := t.Cross.offset(size.Y, len(lines))

	for row, line := range lines {
		x := t.Main.offset(size.X, line.width)
		for _, c := range line.clusters {
			if x >= 0 && x+c.width <= size.X {
				put(Pos2{X: x, Y: y + row}, t.cell(c))
			}
			x += c.width
		}
	}
}
