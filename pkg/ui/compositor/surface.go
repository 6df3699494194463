package compositor

import (
	"github.com/museun/too-sub001/pkg/ui/geom"
	"github.com/museun/too-sub001/pkg/ui/terminal"
)

// Geometry aliases so drawing code reads without the package prefix.
type (
	Pos2 = geom.Pos2
	Vec2 = geom.Vec2
	Rect = geom.Rect
)

// Surface is a double-buffered cell grid.
// back is composed by the current frame; front is what the terminal last saw.
type Surface struct {
	front []Cell
	back  []Cell
	size  Vec2
	stats DiffStats

	// cleared is set when the terminal content can no longer be trusted
	// and the next render must clear the screen first.
	cleared bool
}

// NewSurface creates a surface with both grids Empty.
func NewSurface(size Vec2) *Surface {
	size = clampSize(size)
	return &Surface{
		front: make([]Cell, size.Area()),
		back:  make([]Cell, size.Area()),
		size:  size,
	}
}

func clampSize(size Vec2) Vec2 {
	return Vec2{X: max(size.X, 0), Y: max(size.Y, 0)}
}

// Resize changes the dimensions. A new size keeps no prior state and forces
// every cell to repaint on the next render.
func (s *Surface) Resize(size Vec2) {
	size = clampSize(size)
	if size == s.size {
		return
	}
	s.size = size
	s.front = make([]Cell, size.Area())
	s.back = make([]Cell, size.Area())
	fill(s.back, DefaultPixel.Cell())
	s.cleared = true
}

// Update reacts to backend events that invalidate the grids.
func (s *Surface) Update(ev terminal.Event) {
	switch ev := ev.(type) {
	case terminal.Resize:
		s.Resize(ev.Size)
	case terminal.SwitchAltScreen:
		fill(s.front, EmptyCell)
		s.cleared = true
	}
}

// Size returns the surface dimensions.
func (s *Surface) Size() Vec2 { return s.size }

// Rect returns the full surface rect.
func (s *Surface) Rect() Rect { return geom.RectFromSize(s.size) }

// Stats returns the counts from the last render.
func (s *Surface) Stats() DiffStats { return s.stats }

// Cell returns the back cell at pos, or Empty outside the surface.
func (s *Surface) Cell(pos Pos2) Cell {
	if !s.Rect().Contains(pos) {
		return EmptyCell
	}
	return s.back[s.index(pos)]
}

// FrontCell returns the last rendered cell at pos.
func (s *Surface) FrontCell(pos Pos2) Cell {
	if !s.Rect().Contains(pos) {
		return EmptyCell
	}
	return s.front[s.index(pos)]
}

func (s *Surface) index(pos Pos2) int {
	return pos.Y*s.size.X + pos.X
}

// Set merges cell into the back grid at pos. Positions outside the surface
// are ignored. Wide cells claim the following columns with continuations
// and any cell they overwrite has its own continuations cleared.
func (s *Surface) Set(pos Pos2, cell Cell) {
	if !s.Rect().Contains(pos) {
		return
	}

	index := s.index(pos)
	remaining := s.size.X - pos.X
	old := s.back[index]
	s.clearSpan(index, remaining)

	s.back[index] = Merge(old, cell)

	for i := 1; i < min(cell.Width(), remaining); i++ {
		s.clearSpan(index+i, remaining-i)
		s.back[index+i] = ContinuationCell
	}
}

// clearSpan empties the cell at index and the continuations it owns.
func (s *Surface) clearSpan(index, remaining int) {
	for i := range min(s.back[index].Width(), remaining) {
		s.back[index+i] = EmptyCell
	}
}

// Fill sets pixel on every cell of rect that lies on the surface.
func (s *Surface) Fill(rect Rect, pixel Pixel) {
	rect = s.Rect().Intersect(rect)
	cell := pixel.Cell()
	for y := rect.Top(); y < rect.Bottom(); y++ {
		for x := rect.Left(); x < rect.Right(); x++ {
			s.Set(Pos2{X: x, Y: y}, cell)
		}
	}
}

// Text draws text inside rect.
func (s *Surface) Text(rect Rect, text Text) {
	s.Crop(rect).Draw(text)
}

// Draw paints shape over the whole surface.
func (s *Surface) Draw(shape Shape) {
	s.Crop(s.Rect()).Draw(shape)
}

// Crop returns a view clipped to rect.
func (s *Surface) Crop(rect Rect) View {
	return View{surface: s, rect: s.Rect().Intersect(rect)}
}

// Erase resets the back grid to Empty.
func (s *Surface) Erase() {
	fill(s.back, EmptyCell)
}

// Render diffs back against front into r. On success front becomes a copy
// of back. A renderer error is returned unchanged and front is left as is.
func (s *Surface) Render(r Renderer) error {
	stats, err := renderDiff(s.front, s.back, s.size.X, s.cleared, r)
	s.stats = stats
	if err != nil {
		return err
	}
	copy(s.front, s.back)
	s.cleared = false
	return nil
}

func fill(cells []Cell, c Cell) {
	for i := range cells {
		cells[i] = c
	}
}
