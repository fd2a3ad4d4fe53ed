package widgets

import (
	"github.com/odvcencio/cellkit/pkg/runtime"
)

// Center measures its child unconstrained and places it in the middle of
// the offered area. Odd leftover space biases toward the top-left (floor
// division).
type Center struct {
	Child runtime.Widget

	lastChild runtime.Rect
}

// Centered wraps a widget in a Center.
func Centered(child runtime.Widget) *Center {
	return &Center{Child: child}
}

// Draw implements runtime.Widget.
func (c *Center) Draw(ctx runtime.DrawContext) (*runtime.Surface, error) {
	// The measure pass drops the parent's bound on purpose: the child
	// reports its natural size and is then positioned, not squeezed.
	measureCtx := runtime.DrawContext{
		Max:     runtime.Size{Width: runtime.Unconstrained, Height: runtime.Unconstrained},
		Scope:   ctx.Scope,
		Metrics: ctx.Metrics,
	}
	childSurf, err := c.Child.Draw(measureCtx)
	if err != nil {
		return nil, err
	}

	own := runtime.Size{Width: ctx.Width(), Height: ctx.Height()}
	surface, err := ctx.Scope.NewSurface(c, own)
	if err != nil {
		return nil, err
	}

	childSize := childSurf.Size()
	origin := runtime.Point{
		X: (own.Width - childSize.Width) / 2,
		Y: (own.Height - childSize.Height) / 2,
	}
	surface.AddChild(origin, childSurf)
	c.lastChild = runtime.Rect{
		X: origin.X, Y: origin.Y,
		Width: childSize.Width, Height: childSize.Height,
	}
	return surface, nil
}

// HandleEvent implements runtime.EventHandler. The child rect from the last
// draw decides pointer containment; other events forward unconditionally.
func (c *Center) HandleEvent(ctx runtime.EventContext) ([]runtime.Command, error) {
	if p, ok := ctx.LocalMouse(); ok && !c.lastChild.Contains(p.X, p.Y) {
		return nil, nil
	}
	childCtx := ctx.Child(c.lastChild).WithFocus(ctx.HasFocus, ctx.CanFocus)
	return runtime.DispatchEvent(c.Child, childCtx)
}
