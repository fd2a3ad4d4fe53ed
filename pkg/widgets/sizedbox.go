package widgets

import (
	"github.com/odvcencio/cellkit/pkg/runtime"
)

// Overflow selects how SizedBox treats a child larger than the box.
type Overflow int

const (
	// OverflowClip constrains the child to the box; anything past the
	// edge is cut off.
	OverflowClip Overflow = iota

	// OverflowVisible lets the child paint past the box. The box still
	// reports its fixed size; overflow is the parent's concern.
	OverflowVisible

	// OverflowScale clips like OverflowClip but also records the
	// reduction factor the child would need to fit, for hosts that can
	// act on it. Cell content is never resampled.
	OverflowScale
)

// SizedBox forces an exact size regardless of the incoming constraints.
type SizedBox struct {
	Child    runtime.Widget
	Size     runtime.Size
	Overflow Overflow

	lastScale float64
}

// ScaleFactor returns the reduction factor computed by the last draw under
// OverflowScale: 1 when the child fit, below 1 when it would need shrinking.
func (b *SizedBox) ScaleFactor() float64 {
	if b.lastScale == 0 {
		return 1
	}
	return b.lastScale
}

// Draw implements runtime.Widget.
func (b *SizedBox) Draw(ctx runtime.DrawContext) (*runtime.Surface, error) {
	surface, err := ctx.Scope.NewSurface(b, b.Size)
	if err != nil {
		return nil, err
	}
	if b.Child == nil {
		return surface, nil
	}

	switch b.Overflow {
	case OverflowVisible:
		childCtx := runtime.DrawContext{
			Max:     runtime.Size{Width: runtime.Unconstrained, Height: runtime.Unconstrained},
			Scope:   ctx.Scope,
			Metrics: ctx.Metrics,
		}
		childSurf, err := b.Child.Draw(childCtx)
		if err != nil {
			return nil, err
		}
		surface.AddChild(runtime.Point{}, childSurf)

	case OverflowScale:
		childCtx := runtime.DrawContext{
			Max:     runtime.Size{Width: runtime.Unconstrained, Height: runtime.Unconstrained},
			Scope:   ctx.Scope,
			Metrics: ctx.Metrics,
		}
		childSurf, err := b.Child.Draw(childCtx)
		if err != nil {
			return nil, err
		}
		b.lastScale = fitScale(childSurf.Size(), b.Size)
		// Cells cannot be resampled, so the visible portion is the
		// box-sized top-left intersection.
		surface.BlitFrom(childSurf, runtime.Point{})

	default: // OverflowClip
		childCtx := runtime.DrawContext{
			Max:     b.Size,
			Scope:   ctx.Scope,
			Metrics: ctx.Metrics,
		}
		childSurf, err := b.Child.Draw(childCtx)
		if err != nil {
			return nil, err
		}
		surface.AddChild(runtime.Point{}, childSurf)
	}

	return surface, nil
}

// fitScale returns the factor the child would need to shrink by to fit the
// box, capped at 1.
func fitScale(child, box runtime.Size) float64 {
	if child.Width <= 0 || child.Height <= 0 {
		return 1
	}
	sw := float64(box.Width) / float64(child.Width)
	sh := float64(box.Height) / float64(child.Height)
	s := min(sw, sh)
	if s > 1 {
		return 1
	}
	return s
}

// HandleEvent implements runtime.EventHandler, forwarding to the child
// within the box bounds.
func (b *SizedBox) HandleEvent(ctx runtime.EventContext) ([]runtime.Command, error) {
	if b.Child == nil {
		return nil, nil
	}
	childCtx := ctx.Child(runtime.RectFromSize(b.Size)).WithFocus(ctx.HasFocus, ctx.CanFocus)
	return runtime.DispatchEvent(b.Child, childCtx)
}
