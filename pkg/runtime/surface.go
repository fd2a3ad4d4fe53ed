package runtime

import "github.com/odvcencio/cellkit/pkg/backend"

// Cell is a single character cell. The zero value renders as a blank.
type Cell struct {
	Rune  rune
	Style backend.Style
}

// Surface is the output of one widget's draw call: a W×H grid of styled
// cells plus an ordered list of positioned child surfaces. Later children
// paint over earlier ones. A Surface is built once, never mutated after its
// draw call returns, and never retained past the scope that produced it.
type Surface struct {
	width  int
	height int
	cells  []Cell
	dirty  []bool

	children []SubSurface
	widget   Widget

	released bool
}

// SubSurface positions a child Surface at an offset in its parent's local
// coordinates. Offsets compose additively across nesting depth.
type SubSurface struct {
	Origin  Point
	Surface *Surface
}

// NewSurface allocates a blanked grid of the given size from the scope.
// Negative dimensions floor at zero. The widget handle identifies the
// producer for hit testing; it may be nil for synthetic surfaces.
func (s *Scope) NewSurface(widget Widget, size Size) (*Surface, error) {
	w := max(0, size.Width)
	h := max(0, size.Height)

	cells, err := s.allocCells(w * h)
	if err != nil {
		return nil, err
	}

	surf := &Surface{
		width:  w,
		height: h,
		cells:  cells,
		dirty:  make([]bool, w*h),
		widget: widget,
	}
	s.surfaces = append(s.surfaces, surf)
	return surf, nil
}

// Size returns the surface dimensions.
func (s *Surface) Size() Size {
	return Size{Width: s.width, Height: s.height}
}

// Widget returns the widget that produced this surface, if any.
func (s *Surface) Widget() Widget {
	return s.widget
}

// Children returns the surface's positioned children in paint order.
func (s *Surface) Children() []SubSurface {
	return s.children
}

// SetCell writes a cell at (x, y). Out-of-range writes are a silent no-op.
func (s *Surface) SetCell(x, y int, c Cell) {
	s.checkValid()
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	idx := y*s.width + x
	if s.cells[idx] != c {
		s.cells[idx] = c
		s.dirty[idx] = true
	}
}

// GetCell returns the cell at (x, y). The second return is false for
// out-of-range positions.
func (s *Surface) GetCell(x, y int) (Cell, bool) {
	s.checkValid()
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return Cell{}, false
	}
	return s.cells[y*s.width+x], true
}

// Changed reports whether the cell at (x, y) was written since the surface
// was blanked. Out-of-range positions report false.
func (s *Surface) Changed(x, y int) bool {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return false
	}
	return s.dirty[y*s.width+x]
}

// FillRect fills a rectangular region, clipped to the surface bounds.
func (s *Surface) FillRect(r Rect, c Cell) {
	s.checkValid()
	x0 := max(0, r.X)
	y0 := max(0, r.Y)
	x1 := min(s.width, r.X+r.Width)
	y1 := min(s.height, r.Y+r.Height)

	for y := y0; y < y1; y++ {
		row := y * s.width
		for x := x0; x < x1; x++ {
			idx := row + x
			if s.cells[idx] != c {
				s.cells[idx] = c
				s.dirty[idx] = true
			}
		}
	}
}

// WriteText writes text starting at (x, y), one cell per Unicode scalar
// value, stopping at the row edge. Returns the number of cells written.
// Wide and combining characters are the caller's concern (see textshape).
func (s *Surface) WriteText(x, y int, text string, style backend.Style) int {
	s.checkValid()
	if y < 0 || y >= s.height {
		return 0
	}

	written := 0
	for _, r := range text {
		px := x + written
		if px >= s.width {
			break
		}
		if px >= 0 {
			idx := y*s.width + px
			c := Cell{Rune: r, Style: style}
			if s.cells[idx] != c {
				s.cells[idx] = c
				s.dirty[idx] = true
			}
		}
		written++
	}
	return written
}

// AddChild appends a positioned child surface. Later additions paint over
// earlier ones.
func (s *Surface) AddChild(origin Point, child *Surface) {
	s.checkValid()
	if child == nil {
		return
	}
	s.children = append(s.children, SubSurface{Origin: origin, Surface: child})
}

// BlitFrom copies the rectangular intersection of another surface's cells
// at the given offset, bypassing the draw protocol. Child surfaces are not
// copied. Used for pasting cached, precomputed output.
func (s *Surface) BlitFrom(other *Surface, offset Point) {
	s.checkValid()
	if other == nil {
		return
	}

	dst := Rect{X: offset.X, Y: offset.Y, Width: other.width, Height: other.height}
	clipped := dst.Intersection(Rect{Width: s.width, Height: s.height})

	for y := clipped.Y; y < clipped.Y+clipped.Height; y++ {
		srcRow := (y - offset.Y) * other.width
		dstRow := y * s.width
		for x := clipped.X; x < clipped.X+clipped.Width; x++ {
			c := other.cells[srcRow+(x-offset.X)]
			idx := dstRow + x
			if s.cells[idx] != c {
				s.cells[idx] = c
				s.dirty[idx] = true
			}
		}
	}
}

// Composite paints the surface tree onto a render target, with this
// surface's origin at the given point. Children paint after (over) their
// parent, in insertion order.
func (s *Surface) Composite(target backend.RenderTarget, origin Point) {
	s.checkValid()
	for y := 0; y < s.height; y++ {
		row := y * s.width
		for x := 0; x < s.width; x++ {
			c := s.cells[row+x]
			if c.Rune == 0 {
				c.Rune = ' '
			}
			target.SetContent(origin.X+x, origin.Y+y, c.Rune, nil, c.Style)
		}
	}

	for _, child := range s.children {
		child.Surface.Composite(target, origin.Add(child.Origin))
	}
}

// Walk visits the surface tree in paint order, reporting each surface's
// absolute bounds given this surface's origin.
func (s *Surface) Walk(origin Point, fn func(surf *Surface, abs Rect)) {
	s.checkValid()
	fn(s, Rect{X: origin.X, Y: origin.Y, Width: s.width, Height: s.height})
	for _, child := range s.children {
		child.Surface.Walk(origin.Add(child.Origin), fn)
	}
}

func (s *Surface) invalidate() {
	s.released = true
	s.cells = nil
	s.dirty = nil
	s.children = nil
}

func (s *Surface) checkValid() {
	if s.released {
		panic("runtime: surface used after its scope was released")
	}
}
