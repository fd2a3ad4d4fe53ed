// Package widgets provides the stock layout and interaction widgets built
// on the runtime's draw/event contract: flex containers, size adapters
// (Padding, Center, SizedBox, Border), and interactive decorators
// (SplitView, scrollbars), plus small leaves (Text, Spacer).
package widgets

import (
	"github.com/odvcencio/cellkit/pkg/runtime"
)

// FlexItem pairs a widget with its share of leftover space. Weight 0 means
// fixed: the child keeps its natural size. Positive weights divide the
// leftover proportionally.
type FlexItem struct {
	Widget runtime.Widget
	Weight int
}

// Fixed wraps a widget as a natural-size flex child.
func Fixed(w runtime.Widget) FlexItem {
	return FlexItem{Widget: w}
}

// Flexible wraps a widget with a proportional weight.
func Flexible(w runtime.Widget, weight int) FlexItem {
	return FlexItem{Widget: w, Weight: weight}
}

type axis int

const (
	axisHorizontal axis = iota
	axisVertical
)

// Flex distributes one axis of space among children by weight, in two
// passes: natural sizes for weight-0 children first, then leftover space
// split among weighted children with the exact remainder going to the last
// one so no cell is lost to rounding.
type Flex struct {
	items []FlexItem
	axis  axis
}

// Row lays children out horizontally.
func Row(items ...FlexItem) *Flex {
	return &Flex{items: items, axis: axisHorizontal}
}

// Column lays children out vertically.
func Column(items ...FlexItem) *Flex {
	return &Flex{items: items, axis: axisVertical}
}

// Add appends a child.
func (f *Flex) Add(item FlexItem) {
	f.items = append(f.items, item)
}

// Items returns the children.
func (f *Flex) Items() []FlexItem {
	return f.items
}

// Draw implements runtime.Widget.
//
// The offered context must be bounded on both axes: distributing leftover
// space requires a finite extent, so an unbounded context is a programming
// error and panics rather than silently misbehaving.
func (f *Flex) Draw(ctx runtime.DrawContext) (*runtime.Surface, error) {
	if !ctx.HasMaxWidth() || !ctx.HasMaxHeight() {
		panic("widgets: flex requires bounded constraints on both axes")
	}

	if len(f.items) == 0 {
		return ctx.Scope.NewSurface(f, ctx.Min)
	}

	mainMax, crossMax := f.split(ctx.Max)

	// First pass: natural sizes for fixed children, cross-axis bounded,
	// main axis unconstrained.
	natural := make([]*runtime.Surface, len(f.items))
	sumFixed := 0
	totalWeight := 0
	for i, item := range f.items {
		if item.Weight > 0 {
			totalWeight += item.Weight
			continue
		}
		childCtx := runtime.DrawContext{
			Max:     f.join(runtime.Unconstrained, crossMax),
			Scope:   ctx.Scope,
			Metrics: ctx.Metrics,
		}
		surf, err := item.Widget.Draw(childCtx)
		if err != nil {
			return nil, err
		}
		natural[i] = surf
		main, _ := f.split(surf.Size())
		sumFixed += main
	}

	leftover := max(0, mainMax-sumFixed)

	// Second pass: redraw every child at its final size and compose at
	// the running offset.
	surface, err := ctx.Scope.NewSurface(f, f.join(mainMax, crossMax))
	if err != nil {
		return nil, err
	}

	lastWeighted := -1
	for i, item := range f.items {
		if item.Weight > 0 {
			lastWeighted = i
		}
	}

	offset := 0
	distributed := 0
	for i, item := range f.items {
		var main int
		if item.Weight > 0 {
			if i == lastWeighted {
				main = leftover - distributed
			} else {
				main = leftover * item.Weight / totalWeight
				distributed += main
			}
		} else {
			main, _ = f.split(natural[i].Size())
		}

		childCtx := runtime.DrawContext{
			Min:     f.join(main, 0),
			Max:     f.join(main, crossMax),
			Scope:   ctx.Scope,
			Metrics: ctx.Metrics,
		}
		surf, err := item.Widget.Draw(childCtx)
		if err != nil {
			return nil, err
		}

		if f.axis == axisHorizontal {
			surface.AddChild(runtime.Point{X: offset}, surf)
		} else {
			surface.AddChild(runtime.Point{Y: offset}, surf)
		}
		offset += main
	}

	return surface, nil
}

// HandleEvent implements runtime.EventHandler. Pointer events route to the
// child under the pointer; everything else is offered to each child in
// order.
func (f *Flex) HandleEvent(ctx runtime.EventContext) ([]runtime.Command, error) {
	pointer, isPointer := ctx.LocalMouse()

	sizes, err := f.eventSizes(ctx)
	if err != nil {
		return nil, err
	}
	_, cross := f.split(ctx.Bounds.Size())

	var cmds []runtime.Command
	offset := 0
	for i, item := range f.items {
		var bounds runtime.Rect
		if f.axis == axisHorizontal {
			bounds = runtime.Rect{X: offset, Width: sizes[i], Height: cross}
		} else {
			bounds = runtime.Rect{Y: offset, Width: cross, Height: sizes[i]}
		}
		offset += sizes[i]

		if isPointer && !bounds.Contains(pointer.X, pointer.Y) {
			continue
		}

		childCmds, err := runtime.DispatchEvent(item.Widget, ctx.Child(bounds))
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, childCmds...)
	}
	return cmds, nil
}

// eventSizes replays the draw-phase distribution against the event scope,
// returning each child's final main-axis extent. Natural sizes are not
// retained across phases, so fixed children are measured with a throwaway
// draw; a failed measurement (scope exhaustion) aborts the whole dispatch
// rather than routing the event through a degenerate layout.
func (f *Flex) eventSizes(ctx runtime.EventContext) ([]int, error) {
	mainTotal, cross := f.split(ctx.Bounds.Size())
	sizes := make([]int, len(f.items))

	sumFixed := 0
	totalWeight := 0
	lastWeighted := -1
	for i, it := range f.items {
		if it.Weight > 0 {
			totalWeight += it.Weight
			lastWeighted = i
			continue
		}
		childCtx := runtime.DrawContext{
			Max:   f.join(runtime.Unconstrained, cross),
			Scope: ctx.Scope,
		}
		surf, err := it.Widget.Draw(childCtx)
		if err != nil {
			return nil, err
		}
		main, _ := f.split(surf.Size())
		sizes[i] = main
		sumFixed += main
	}

	leftover := max(0, mainTotal-sumFixed)
	distributed := 0
	for i, it := range f.items {
		if it.Weight == 0 {
			continue
		}
		if i == lastWeighted {
			sizes[i] = leftover - distributed
		} else {
			sizes[i] = leftover * it.Weight / totalWeight
			distributed += sizes[i]
		}
	}
	return sizes, nil
}

func (f *Flex) split(s runtime.Size) (main, cross int) {
	if f.axis == axisHorizontal {
		return s.Width, s.Height
	}
	return s.Height, s.Width
}

func (f *Flex) join(main, cross int) runtime.Size {
	if f.axis == axisHorizontal {
		return runtime.Size{Width: main, Height: cross}
	}
	return runtime.Size{Width: cross, Height: main}
}
