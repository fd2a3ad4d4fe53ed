package widgets

import (
	"github.com/odvcencio/cellkit/pkg/runtime"
)

// Insets holds per-side padding in cells.
type Insets struct {
	Top, Right, Bottom, Left int
}

// UniformInsets returns equal padding on all sides.
func UniformInsets(n int) Insets {
	return Insets{Top: n, Right: n, Bottom: n, Left: n}
}

// Horizontal returns the combined left and right inset.
func (in Insets) Horizontal() int { return in.Left + in.Right }

// Vertical returns the combined top and bottom inset.
func (in Insets) Vertical() int { return in.Top + in.Bottom }

// Padding draws its child inset by fixed per-side amounts and reports the
// child size plus the insets. When the insets exceed the available space
// the child's room floors at zero.
type Padding struct {
	Child  runtime.Widget
	Insets Insets
}

// Pad wraps a widget with uniform padding.
func Pad(child runtime.Widget, n int) *Padding {
	return &Padding{Child: child, Insets: UniformInsets(n)}
}

// Draw implements runtime.Widget.
func (p *Padding) Draw(ctx runtime.DrawContext) (*runtime.Surface, error) {
	avail := runtime.Size{Width: runtime.Unconstrained, Height: runtime.Unconstrained}
	if ctx.HasMaxWidth() {
		avail.Width = max(0, ctx.Max.Width-p.Insets.Horizontal())
	}
	if ctx.HasMaxHeight() {
		avail.Height = max(0, ctx.Max.Height-p.Insets.Vertical())
	}

	childSurf, err := p.Child.Draw(ctx.Child(avail))
	if err != nil {
		return nil, err
	}

	childSize := childSurf.Size()
	own := ctx.Constrain(runtime.Size{
		Width:  childSize.Width + p.Insets.Horizontal(),
		Height: childSize.Height + p.Insets.Vertical(),
	})

	surface, err := ctx.Scope.NewSurface(p, own)
	if err != nil {
		return nil, err
	}
	surface.AddChild(runtime.Point{X: p.Insets.Left, Y: p.Insets.Top}, childSurf)
	return surface, nil
}

// HandleEvent implements runtime.EventHandler, forwarding to the child with
// bounds shrunk by the insets.
func (p *Padding) HandleEvent(ctx runtime.EventContext) ([]runtime.Command, error) {
	inner := runtime.RectFromSize(ctx.Bounds.Size()).
		Inset(p.Insets.Top, p.Insets.Right, p.Insets.Bottom, p.Insets.Left)
	childCtx := ctx.Child(inner).WithFocus(ctx.HasFocus, ctx.CanFocus)
	return runtime.DispatchEvent(p.Child, childCtx)
}
