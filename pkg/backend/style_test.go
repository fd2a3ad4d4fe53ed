package backend

import "testing"

func TestColorRGB(t *testing.T) {
	c := ColorRGB(0x12, 0x34, 0x56)
	if !c.IsRGB() {
		t.Fatal("expected RGB color")
	}
	r, g, b := c.RGB()
	if r != 0x12 || g != 0x34 || b != 0x56 {
		t.Errorf("RGB() = (%x,%x,%x), want (12,34,56)", r, g, b)
	}
}

func TestPaletteColorNotRGB(t *testing.T) {
	if ColorRed.IsRGB() {
		t.Error("palette color reported as RGB")
	}
	r, g, b := ColorRed.RGB()
	if r != 0 || g != 0 || b != 0 {
		t.Errorf("RGB() on palette color = (%d,%d,%d), want zeros", r, g, b)
	}
}

func TestStyleAttrs(t *testing.T) {
	s := DefaultStyle().Bold(true).Underline(true)
	if s.Attributes()&AttrBold == 0 {
		t.Error("bold not set")
	}
	if s.Attributes()&AttrUnderline == 0 {
		t.Error("underline not set")
	}

	s = s.Bold(false)
	if s.Attributes()&AttrBold != 0 {
		t.Error("bold not cleared")
	}
	if s.Attributes()&AttrUnderline == 0 {
		t.Error("underline lost when clearing bold")
	}
}

func TestStyleComparable(t *testing.T) {
	a := NewStyle(ColorRed, ColorDefault).Bold(true)
	b := DefaultStyle().Foreground(ColorRed).Bold(true)
	if a != b {
		t.Error("equal styles compare unequal")
	}
	if a == b.Dim(true) {
		t.Error("distinct styles compare equal")
	}
}

func TestSubTargetClipping(t *testing.T) {
	rec := &recordingTarget{w: 10, h: 10}
	sub := NewSubTarget(rec, 2, 3, 4, 4)

	sub.SetContent(0, 0, 'a', nil, DefaultStyle())
	sub.SetContent(3, 3, 'b', nil, DefaultStyle())
	sub.SetContent(4, 0, 'x', nil, DefaultStyle()) // outside, dropped
	sub.SetContent(-1, 0, 'x', nil, DefaultStyle())

	if len(rec.writes) != 2 {
		t.Fatalf("writes = %d, want 2", len(rec.writes))
	}
	if rec.writes[0] != [2]int{2, 3} {
		t.Errorf("first write at %v, want (2,3)", rec.writes[0])
	}
	if rec.writes[1] != [2]int{5, 6} {
		t.Errorf("second write at %v, want (5,6)", rec.writes[1])
	}
}

type recordingTarget struct {
	w, h   int
	writes [][2]int
}

func (r *recordingTarget) Size() (int, int) { return r.w, r.h }

func (r *recordingTarget) SetContent(x, y int, mainc rune, comb []rune, style Style) {
	r.writes = append(r.writes, [2]int{x, y})
}
