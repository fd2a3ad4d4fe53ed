package runtime

// Unconstrained is the sentinel for an unset maximum on one axis.
const Unconstrained = maxInt

// CellMetrics carries the pixel geometry of one terminal cell, for hosts
// that know it (pixel-reporting terminals). Zero values mean unknown.
type CellMetrics struct {
	PixelWidth  int
	PixelHeight int
}

// DrawContext bundles the size constraints, the frame scope, and the cell
// metrics passed top-down during drawing. Derived child contexts narrow
// constraints; they never widen them.
//
// Contract: a widget must return a Surface whose size is already clamped
// into its context's constraints. Callers offer correct constraints;
// Surface construction does not defensively re-clamp.
type DrawContext struct {
	Min     Size
	Max     Size // Unconstrained per axis when unset
	Scope   *Scope
	Metrics CellMetrics
}

// NewDrawContext creates a root context that forces an exact size.
func NewDrawContext(scope *Scope, size Size) DrawContext {
	return DrawContext{Min: size, Max: size, Scope: scope}
}

// HasMaxWidth reports whether the width is bounded.
func (ctx DrawContext) HasMaxWidth() bool {
	return ctx.Max.Width != Unconstrained
}

// HasMaxHeight reports whether the height is bounded.
func (ctx DrawContext) HasMaxHeight() bool {
	return ctx.Max.Height != Unconstrained
}

// Width resolves the context's width: fill the maximum if one is set,
// otherwise be exactly as large as required.
func (ctx DrawContext) Width() int {
	if ctx.HasMaxWidth() {
		return ctx.Max.Width
	}
	return ctx.Min.Width
}

// Height resolves the context's height the same way as Width.
func (ctx DrawContext) Height() int {
	if ctx.HasMaxHeight() {
		return ctx.Max.Height
	}
	return ctx.Min.Height
}

// Child derives a context for a child widget: the minimum resets to zero
// and the maximum tightens to min(parent max, available). Pass
// Unconstrained on an axis to keep only the parent's bound.
func (ctx DrawContext) Child(available Size) DrawContext {
	return DrawContext{
		Min:     Size{},
		Max:     Size{Width: min(ctx.Max.Width, available.Width), Height: min(ctx.Max.Height, available.Height)},
		Scope:   ctx.Scope,
		Metrics: ctx.Metrics,
	}
}

// WithMin returns the context with its minimum replaced. The minimum is
// clamped into the maximum so constraints stay consistent.
func (ctx DrawContext) WithMin(m Size) DrawContext {
	ctx.Min = Size{
		Width:  min(m.Width, ctx.Max.Width),
		Height: min(m.Height, ctx.Max.Height),
	}
	return ctx
}

// Constrain clamps a size into the context's constraints.
func (ctx DrawContext) Constrain(s Size) Size {
	return Size{
		Width:  clamp(s.Width, ctx.Min.Width, ctx.Max.Width),
		Height: clamp(s.Height, ctx.Min.Height, ctx.Max.Height),
	}
}
