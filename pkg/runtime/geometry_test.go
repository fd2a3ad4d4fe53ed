package runtime

import "testing"

func TestRectContainsHalfOpen(t *testing.T) {
	r := Rect{X: 1, Y: 1, Width: 3, Height: 2}

	if !r.Contains(1, 1) {
		t.Error("top-left corner is inside")
	}
	if !r.Contains(3, 2) {
		t.Error("last cell is inside")
	}
	if r.Contains(4, 1) || r.Contains(1, 3) {
		t.Error("right and bottom edges are outside")
	}
}

func TestRectIntersection(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 5, Height: 5}
	b := Rect{X: 3, Y: 3, Width: 5, Height: 5}

	got := a.Intersection(b)
	if got != (Rect{X: 3, Y: 3, Width: 2, Height: 2}) {
		t.Errorf("intersection = %+v, want 2x2 at (3,3)", got)
	}

	c := Rect{X: 10, Y: 10, Width: 2, Height: 2}
	if got := a.Intersection(c); got != ZeroRect {
		t.Errorf("disjoint intersection = %+v, want zero", got)
	}
}

func TestRectInsetFloorsAtZero(t *testing.T) {
	r := Rect{Width: 4, Height: 4}
	got := r.Inset(3, 3, 3, 3)
	if got.Width != 0 || got.Height != 0 {
		t.Errorf("inset = %+v, want zero dimensions", got)
	}

	got = r.Inset(1, 1, 1, 1)
	if got != (Rect{X: 1, Y: 1, Width: 2, Height: 2}) {
		t.Errorf("inset = %+v, want 2x2 at (1,1)", got)
	}
}

func TestPointArithmetic(t *testing.T) {
	p := Point{X: 3, Y: 4}
	if got := p.Add(Point{X: 1, Y: -2}); got != (Point{X: 4, Y: 2}) {
		t.Errorf("Add = %+v", got)
	}
	if got := p.Sub(Point{X: 1, Y: 1}); got != (Point{X: 2, Y: 3}) {
		t.Errorf("Sub = %+v", got)
	}
}

func TestSizeCells(t *testing.T) {
	if got := (Size{Width: 4, Height: 3}).Cells(); got != 12 {
		t.Errorf("Cells = %d, want 12", got)
	}
	if got := (Size{Width: -1, Height: 3}).Cells(); got != 0 {
		t.Errorf("negative width Cells = %d, want 0", got)
	}
}
