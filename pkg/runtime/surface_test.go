package runtime

import (
	"testing"

	"github.com/odvcencio/cellkit/pkg/backend"
)

func testScope(t *testing.T) *Scope {
	t.Helper()
	scope := NewScope()
	t.Cleanup(scope.Release)
	return scope
}

func mustSurface(t *testing.T, scope *Scope, w, h int) *Surface {
	t.Helper()
	surf, err := scope.NewSurface(nil, Size{Width: w, Height: h})
	if err != nil {
		t.Fatalf("new surface: %v", err)
	}
	return surf
}

func TestSetCellOutOfRangeIsNoOp(t *testing.T) {
	surf := mustSurface(t, testScope(t), 3, 3)

	for _, p := range []Point{{-1, 0}, {0, -1}, {3, 0}, {0, 3}, {100, 100}} {
		surf.SetCell(p.X, p.Y, Cell{Rune: 'x'})
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if surf.Changed(x, y) {
				t.Errorf("cell (%d,%d) changed by out-of-range writes", x, y)
			}
		}
	}
}

func TestGetCellOutOfRange(t *testing.T) {
	surf := mustSurface(t, testScope(t), 2, 2)
	if _, ok := surf.GetCell(2, 0); ok {
		t.Error("read past the right edge reported ok")
	}
	if _, ok := surf.GetCell(0, -1); ok {
		t.Error("read above the top edge reported ok")
	}
}

func TestWriteTextTruncatesAtRowEdge(t *testing.T) {
	surf := mustSurface(t, testScope(t), 5, 1)

	// Ten scalars starting at column 2 of a five-wide row: three land.
	n := surf.WriteText(2, 0, "abcdefghij", backend.Style{})
	if n != 3 {
		t.Errorf("written = %d, want 3", n)
	}
	for i, want := range []rune{'a', 'b', 'c'} {
		cell, _ := surf.GetCell(2+i, 0)
		if cell.Rune != want {
			t.Errorf("cell %d = %q, want %q", 2+i, cell.Rune, want)
		}
	}
}

func TestWriteTextOffRow(t *testing.T) {
	surf := mustSurface(t, testScope(t), 5, 2)
	if n := surf.WriteText(0, 5, "abc", backend.Style{}); n != 0 {
		t.Errorf("written = %d on a row that does not exist, want 0", n)
	}
}

func TestFillRectClips(t *testing.T) {
	surf := mustSurface(t, testScope(t), 4, 4)
	surf.FillRect(Rect{X: 2, Y: 2, Width: 10, Height: 10}, Cell{Rune: '#'})

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			cell, _ := surf.GetCell(x, y)
			wantFilled := x >= 2 && y >= 2
			if (cell.Rune == '#') != wantFilled {
				t.Errorf("cell (%d,%d) = %q, filled want %v", x, y, cell.Rune, wantFilled)
			}
		}
	}
}

func TestBlitFromCopiesIntersection(t *testing.T) {
	scope := testScope(t)
	dst := mustSurface(t, scope, 4, 4)
	src := mustSurface(t, scope, 3, 3)
	src.FillRect(Rect{Width: 3, Height: 3}, Cell{Rune: 'S'})

	dst.BlitFrom(src, Point{X: 2, Y: 2})

	cell, _ := dst.GetCell(2, 2)
	if cell.Rune != 'S' {
		t.Errorf("cell (2,2) = %q, want S", cell.Rune)
	}
	cell, _ = dst.GetCell(3, 3)
	if cell.Rune != 'S' {
		t.Errorf("cell (3,3) = %q, want S", cell.Rune)
	}
	cell, _ = dst.GetCell(1, 1)
	if cell.Rune == 'S' {
		t.Error("cell (1,1) copied outside the blit offset")
	}
}

// gridTarget collects composited output for assertions.
type gridTarget struct {
	w, h  int
	runes []rune
}

func newGridTarget(w, h int) *gridTarget {
	runes := make([]rune, w*h)
	for i := range runes {
		runes[i] = ' '
	}
	return &gridTarget{w: w, h: h, runes: runes}
}

func (g *gridTarget) Size() (int, int) { return g.w, g.h }

func (g *gridTarget) SetContent(x, y int, mainc rune, comb []rune, style backend.Style) {
	if x < 0 || x >= g.w || y < 0 || y >= g.h {
		return
	}
	g.runes[y*g.w+x] = mainc
}

func (g *gridTarget) row(y int) string {
	return string(g.runes[y*g.w : (y+1)*g.w])
}

func TestCompositeChildrenPaintOver(t *testing.T) {
	scope := testScope(t)
	parent := mustSurface(t, scope, 4, 2)
	parent.FillRect(Rect{Width: 4, Height: 2}, Cell{Rune: 'p'})

	child := mustSurface(t, scope, 2, 1)
	child.FillRect(Rect{Width: 2, Height: 1}, Cell{Rune: 'c'})
	parent.AddChild(Point{X: 1, Y: 1}, child)

	target := newGridTarget(4, 2)
	parent.Composite(target, Point{})

	if got := target.row(0); got != "pppp" {
		t.Errorf("row 0 = %q, want %q", got, "pppp")
	}
	if got := target.row(1); got != "pccp" {
		t.Errorf("row 1 = %q, want %q", got, "pccp")
	}
}

func TestCompositeNestedOffsets(t *testing.T) {
	scope := testScope(t)
	root := mustSurface(t, scope, 6, 3)
	mid := mustSurface(t, scope, 4, 2)
	leaf := mustSurface(t, scope, 1, 1)
	leaf.SetCell(0, 0, Cell{Rune: 'L'})

	mid.AddChild(Point{X: 1, Y: 1}, leaf)
	root.AddChild(Point{X: 2, Y: 0}, mid)

	target := newGridTarget(6, 3)
	root.Composite(target, Point{})

	// Offsets compose: 2+1 horizontally, 0+1 vertically.
	if got := target.runes[1*6+3]; got != 'L' {
		t.Errorf("leaf landed at %q, want it at (3,1)", got)
	}
}

func TestWalkReportsAbsoluteBounds(t *testing.T) {
	scope := testScope(t)
	root := mustSurface(t, scope, 6, 3)
	child := mustSurface(t, scope, 2, 1)
	root.AddChild(Point{X: 4, Y: 2}, child)

	var got []Rect
	root.Walk(Point{X: 10, Y: 10}, func(s *Surface, abs Rect) {
		got = append(got, abs)
	})

	want := []Rect{
		{X: 10, Y: 10, Width: 6, Height: 3},
		{X: 14, Y: 12, Width: 2, Height: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("visited %d surfaces, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("surface %d bounds = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestZeroCellRendersAsBlank(t *testing.T) {
	scope := testScope(t)
	surf := mustSurface(t, scope, 2, 1)
	surf.SetCell(0, 0, Cell{Rune: 'x'})

	target := newGridTarget(2, 1)
	// Pre-dirty the target so blanks actually overwrite.
	target.runes[1] = '?'
	surf.Composite(target, Point{})

	if got := target.row(0); got != "x " {
		t.Errorf("row = %q, want %q", got, "x ")
	}
}
