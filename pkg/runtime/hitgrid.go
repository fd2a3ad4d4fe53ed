package runtime

// HitGrid maps screen cells to widgets for pointer routing. It is rebuilt
// from the composited surface tree every frame: surfaces are visited in
// paint order, so the widget drawn on top wins each cell.
type HitGrid struct {
	width   int
	height  int
	cells   []int
	widgets []Widget
	bounds  []Rect
}

// NewHitGrid creates a hit grid with the given dimensions.
func NewHitGrid(width, height int) *HitGrid {
	grid := &HitGrid{}
	grid.Resize(width, height)
	return grid
}

// Resize updates the hit grid dimensions.
func (g *HitGrid) Resize(width, height int) {
	if width == g.width && height == g.height {
		return
	}
	g.width = width
	g.height = height
	size := width * height
	if size <= 0 {
		g.cells = nil
		g.widgets = nil
		g.bounds = nil
		return
	}
	g.cells = make([]int, size)
	g.Clear()
}

// Clear resets the grid contents.
func (g *HitGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = -1
	}
	g.widgets = g.widgets[:0]
	g.bounds = g.bounds[:0]
}

// Rebuild clears the grid and repopulates it from a surface tree rooted at
// the given origin.
func (g *HitGrid) Rebuild(root *Surface, origin Point) {
	g.Clear()
	if root == nil {
		return
	}
	root.Walk(origin, func(surf *Surface, abs Rect) {
		g.Add(surf.Widget(), abs)
	})
}

// Add records a widget occupying the specified absolute bounds.
func (g *HitGrid) Add(widget Widget, bounds Rect) {
	if widget == nil || g.width <= 0 || g.height <= 0 {
		return
	}
	if bounds.Width <= 0 || bounds.Height <= 0 {
		return
	}
	clipped := bounds.Intersection(Rect{Width: g.width, Height: g.height})
	if clipped.Width <= 0 || clipped.Height <= 0 {
		return
	}

	id := len(g.widgets)
	g.widgets = append(g.widgets, widget)
	g.bounds = append(g.bounds, bounds)

	for y := clipped.Y; y < clipped.Y+clipped.Height; y++ {
		row := y * g.width
		for x := clipped.X; x < clipped.X+clipped.Width; x++ {
			g.cells[row+x] = id
		}
	}
}

// WidgetAt returns the widget at the given screen position, or nil.
func (g *HitGrid) WidgetAt(x, y int) Widget {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return nil
	}
	idx := g.cells[y*g.width+x]
	if idx < 0 || idx >= len(g.widgets) {
		return nil
	}
	return g.widgets[idx]
}

// BoundsAt returns the recorded absolute bounds of the widget at the
// given screen position.
func (g *HitGrid) BoundsAt(x, y int) (Rect, bool) {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return ZeroRect, false
	}
	idx := g.cells[y*g.width+x]
	if idx < 0 || idx >= len(g.widgets) {
		return ZeroRect, false
	}
	return g.bounds[idx], true
}
