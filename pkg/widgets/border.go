package widgets

import (
	"github.com/odvcencio/cellkit/pkg/backend"
	"github.com/odvcencio/cellkit/pkg/runtime"
)

// BorderStyle selects the glyph set drawn around the child.
type BorderStyle int

const (
	BorderNone BorderStyle = iota
	BorderASCII
	BorderSingle
	BorderDouble
	BorderThick
	BorderRounded
	BorderDashed
)

// borderGlyphs is one frame's character set: the four corners followed by
// the horizontal and vertical edge runes.
type borderGlyphs struct {
	topLeft, topRight, bottomLeft, bottomRight rune
	horizontal, vertical                       rune
}

var borderTables = map[BorderStyle]borderGlyphs{
	BorderASCII:   {'+', '+', '+', '+', '-', '|'},
	BorderSingle:  {'┌', '┐', '└', '┘', '─', '│'},
	BorderDouble:  {'╔', '╗', '╚', '╝', '═', '║'},
	BorderThick:   {'┏', '┓', '┗', '┛', '━', '┃'},
	BorderRounded: {'╭', '╮', '╰', '╯', '─', '│'},
	BorderDashed:  {'┌', '┐', '└', '┘', '╌', '╎'},
}

// Border frames its child with a one-cell box. The child is inset by one
// cell on every side and the frame needs at least 3×3 cells; anything
// smaller draws nothing. BorderNone passes the child through untouched.
type Border struct {
	Child runtime.Widget
	Style BorderStyle
	Attrs backend.Style
}

// Bordered wraps a widget with a single-line border.
func Bordered(child runtime.Widget) *Border {
	return &Border{Child: child, Style: BorderSingle}
}

// Draw implements runtime.Widget.
func (b *Border) Draw(ctx runtime.DrawContext) (*runtime.Surface, error) {
	if b.Style == BorderNone {
		return b.Child.Draw(ctx)
	}

	avail := runtime.Size{Width: runtime.Unconstrained, Height: runtime.Unconstrained}
	if ctx.HasMaxWidth() {
		avail.Width = max(0, ctx.Max.Width-2)
	}
	if ctx.HasMaxHeight() {
		avail.Height = max(0, ctx.Max.Height-2)
	}

	childSurf, err := b.Child.Draw(ctx.Child(avail))
	if err != nil {
		return nil, err
	}

	childSize := childSurf.Size()
	own := ctx.Constrain(runtime.Size{
		Width:  childSize.Width + 2,
		Height: childSize.Height + 2,
	})

	surface, err := ctx.Scope.NewSurface(b, own)
	if err != nil {
		return nil, err
	}
	if own.Width < 3 || own.Height < 3 {
		return surface, nil
	}

	g := borderTables[b.Style]
	w, h := own.Width, own.Height

	surface.SetCell(0, 0, runtime.Cell{Rune: g.topLeft, Style: b.Attrs})
	surface.SetCell(w-1, 0, runtime.Cell{Rune: g.topRight, Style: b.Attrs})
	surface.SetCell(0, h-1, runtime.Cell{Rune: g.bottomLeft, Style: b.Attrs})
	surface.SetCell(w-1, h-1, runtime.Cell{Rune: g.bottomRight, Style: b.Attrs})
	for x := 1; x < w-1; x++ {
		surface.SetCell(x, 0, runtime.Cell{Rune: g.horizontal, Style: b.Attrs})
		surface.SetCell(x, h-1, runtime.Cell{Rune: g.horizontal, Style: b.Attrs})
	}
	for y := 1; y < h-1; y++ {
		surface.SetCell(0, y, runtime.Cell{Rune: g.vertical, Style: b.Attrs})
		surface.SetCell(w-1, y, runtime.Cell{Rune: g.vertical, Style: b.Attrs})
	}

	surface.AddChild(runtime.Point{X: 1, Y: 1}, childSurf)
	return surface, nil
}

// HandleEvent implements runtime.EventHandler, forwarding to the child with
// bounds shrunk by the one-cell frame.
func (b *Border) HandleEvent(ctx runtime.EventContext) ([]runtime.Command, error) {
	inner := runtime.RectFromSize(ctx.Bounds.Size())
	if b.Style != BorderNone {
		inner = inner.Inset(1, 1, 1, 1)
	}
	childCtx := ctx.Child(inner).WithFocus(ctx.HasFocus, ctx.CanFocus)
	return runtime.DispatchEvent(b.Child, childCtx)
}
