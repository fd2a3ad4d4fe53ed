package widgets

import (
	"github.com/odvcencio/cellkit/pkg/backend"
	"github.com/odvcencio/cellkit/pkg/runtime"
	"github.com/odvcencio/cellkit/pkg/terminal"
)

// SplitView shows two panes separated by a one-cell draggable divider.
// Ratio is the first pane's share of the splittable extent (the axis
// length minus the divider), kept in [0, 1]. MinPane clamps both panes;
// when the container is too small to honor it both panes shrink toward
// zero rather than erroring.
type SplitView struct {
	// Horizontal means panes side by side with a vertical divider;
	// otherwise panes stack with a horizontal divider.
	Horizontal bool

	First  runtime.Widget
	Second runtime.Widget

	Ratio   float64
	MinPane int

	DividerStyle backend.Style

	dragging    bool
	focusedPane int // 0 or 1; the one pane focus flags propagate into
}

// HSplit creates a side-by-side split at the given ratio.
func HSplit(first, second runtime.Widget, ratio float64) *SplitView {
	return &SplitView{Horizontal: true, First: first, Second: second, Ratio: ratio}
}

// VSplit creates a stacked split at the given ratio.
func VSplit(first, second runtime.Widget, ratio float64) *SplitView {
	return &SplitView{First: first, Second: second, Ratio: ratio}
}

// paneSizes resolves the two pane extents from the ratio and the min-pane
// clamp. Clamping one pane re-derives the other from what remains.
func (sv *SplitView) paneSizes(extent int) (first, second int) {
	if extent <= 0 {
		return 0, 0
	}
	ratio := clampRatio(sv.Ratio)
	first = int(ratio * float64(extent))

	lo := min(sv.MinPane, extent)
	hi := extent - lo
	if hi < lo {
		first = clampInt(first, 0, extent)
	} else {
		first = clampInt(first, lo, hi)
	}
	return first, extent - first
}

func clampRatio(r float64) float64 {
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}

// Draw implements runtime.Widget.
func (sv *SplitView) Draw(ctx runtime.DrawContext) (*runtime.Surface, error) {
	own := runtime.Size{Width: ctx.Width(), Height: ctx.Height()}
	surface, err := ctx.Scope.NewSurface(sv, own)
	if err != nil {
		return nil, err
	}

	main, cross := own.Height, own.Width
	if sv.Horizontal {
		main, cross = own.Width, own.Height
	}
	extent := max(0, main-1)
	first, second := sv.paneSizes(extent)

	firstRect, divRect, secondRect := sv.regions(first, second, cross)

	firstSurf, err := sv.First.Draw(paneContext(ctx, firstRect.Size()))
	if err != nil {
		return nil, err
	}
	surface.AddChild(firstRect.Origin(), firstSurf)

	secondSurf, err := sv.Second.Draw(paneContext(ctx, secondRect.Size()))
	if err != nil {
		return nil, err
	}
	surface.AddChild(secondRect.Origin(), secondSurf)

	glyph := '─'
	if sv.Horizontal {
		glyph = '│'
	}
	surface.FillRect(divRect, runtime.Cell{Rune: glyph, Style: sv.DividerStyle})

	return surface, nil
}

// regions computes the pane and divider rects in local coordinates.
func (sv *SplitView) regions(first, second, cross int) (firstRect, divRect, secondRect runtime.Rect) {
	if sv.Horizontal {
		firstRect = runtime.Rect{Width: first, Height: cross}
		divRect = runtime.Rect{X: first, Width: 1, Height: cross}
		secondRect = runtime.Rect{X: first + 1, Width: second, Height: cross}
		return
	}
	firstRect = runtime.Rect{Width: cross, Height: first}
	divRect = runtime.Rect{Y: first, Width: cross, Height: 1}
	secondRect = runtime.Rect{Y: first + 1, Width: cross, Height: second}
	return
}

func paneContext(ctx runtime.DrawContext, size runtime.Size) runtime.DrawContext {
	return runtime.DrawContext{
		Min:     size,
		Max:     size,
		Scope:   ctx.Scope,
		Metrics: ctx.Metrics,
	}
}

// HandleEvent implements runtime.EventHandler. Pointer events drive the
// divider drag machine or route to the pane under the pointer; everything
// else is forwarded to both panes.
func (sv *SplitView) HandleEvent(ctx runtime.EventContext) ([]runtime.Command, error) {
	switch ev := ctx.Event.(type) {
	case terminal.FocusOutEvent:
		// A drag cannot continue without input; abandon it.
		sv.dragging = false
		return sv.forwardToBoth(ctx)

	case terminal.MouseEvent:
		return sv.handleMouse(ctx, ev)

	default:
		return sv.forwardToBoth(ctx)
	}
}

func (sv *SplitView) handleMouse(ctx runtime.EventContext, ev terminal.MouseEvent) ([]runtime.Command, error) {
	size := ctx.Bounds.Size()
	main, cross := size.Height, size.Width
	if sv.Horizontal {
		main, cross = size.Width, size.Height
	}
	extent := max(0, main-1)
	first, second := sv.paneSizes(extent)
	firstRect, divRect, secondRect := sv.regions(first, second, cross)

	local, _ := ctx.LocalMouse()
	along := local.Y
	if sv.Horizontal {
		along = local.X
	}

	if sv.dragging {
		switch ev.Action {
		case terminal.MouseMove:
			before := sv.Ratio
			if extent > 0 {
				// Same denominator as paneSizes, so drag positions
				// round-trip and the divider can reach both edges.
				sv.Ratio = clampRatio(float64(along) / float64(extent))
			}
			if sv.Ratio != before {
				return []runtime.Command{runtime.Redraw{}}, nil
			}
			return nil, nil
		case terminal.MouseRelease:
			sv.dragging = false
			return nil, nil
		}
		return nil, nil
	}

	if ev.Action == terminal.MousePress && ev.Button == terminal.MouseLeft &&
		divRect.Contains(local.X, local.Y) {
		sv.dragging = true
		return nil, nil
	}

	if firstRect.Contains(local.X, local.Y) {
		if ev.Action == terminal.MousePress {
			sv.focusedPane = 0
		}
		return runtime.DispatchEvent(sv.First, ctx.Child(firstRect))
	}
	if secondRect.Contains(local.X, local.Y) {
		if ev.Action == terminal.MousePress {
			sv.focusedPane = 1
		}
		return runtime.DispatchEvent(sv.Second, ctx.Child(secondRect))
	}
	return nil, nil
}

// forwardToBoth offers a non-pointer event to both panes. Focus flags
// follow only the pane last activated by a click, so a single path carries
// them down the tree.
func (sv *SplitView) forwardToBoth(ctx runtime.EventContext) ([]runtime.Command, error) {
	size := ctx.Bounds.Size()
	main, cross := size.Height, size.Width
	if sv.Horizontal {
		main, cross = size.Width, size.Height
	}
	first, second := sv.paneSizes(max(0, main-1))
	firstRect, _, secondRect := sv.regions(first, second, cross)

	firstCtx := ctx.Child(firstRect)
	secondCtx := ctx.Child(secondRect)
	if sv.focusedPane == 0 {
		firstCtx = firstCtx.WithFocus(ctx.HasFocus, ctx.CanFocus)
	} else {
		secondCtx = secondCtx.WithFocus(ctx.HasFocus, ctx.CanFocus)
	}

	cmds, err := runtime.DispatchEvent(sv.First, firstCtx)
	if err != nil {
		return nil, err
	}
	more, err := runtime.DispatchEvent(sv.Second, secondCtx)
	if err != nil {
		return nil, err
	}
	return append(cmds, more...), nil
}
