package runtime

import "github.com/odvcencio/cellkit/pkg/terminal"

// EventContext bundles everything a widget needs to handle one event: the
// payload, the event scope, the widget's bounds in its parent's coordinate
// space, and the focus flags. Mouse coordinates in the event share the
// bounds' coordinate space.
//
// Derived child contexts reuse the event and scope, narrow bounds, and
// reset focus flags; exactly one path down to the focused descendant must
// carry HasFocus explicitly.
type EventContext struct {
	Event    terminal.Event
	Scope    *Scope
	Bounds   Rect
	HasFocus bool
	CanFocus bool
}

// ShouldHandle applies the event routing table: it reports whether this
// widget receives the event at all.
//
//	init, tick, destroy             always
//	focus in/out                    only if the widget can focus
//	key press/release               only if the widget has focus
//	pointer                         only if the position is inside bounds
//	mouse enter/leave, winsize,     always
//	color scheme
//	paste                           only if the widget has focus
//	user                            always (the widget decides)
//	color report                    never
func (ctx EventContext) ShouldHandle() bool {
	switch ev := ctx.Event.(type) {
	case terminal.InitEvent, terminal.TickEvent, terminal.DestroyEvent:
		return true
	case terminal.FocusInEvent, terminal.FocusOutEvent:
		return ctx.CanFocus
	case terminal.KeyEvent:
		return ctx.HasFocus
	case terminal.MouseEvent:
		return ctx.Bounds.Contains(ev.X, ev.Y)
	case terminal.MouseEnterEvent, terminal.MouseLeaveEvent,
		terminal.ResizeEvent, terminal.ColorSchemeEvent:
		return true
	case terminal.PasteStartEvent, terminal.PasteEndEvent, terminal.PasteEvent:
		return ctx.HasFocus
	case terminal.UserEvent:
		return true
	case terminal.ColorReportEvent:
		return false
	default:
		return false
	}
}

// MousePosition returns the pointer position in the bounds' coordinate
// space, when the event carries one.
func (ctx EventContext) MousePosition() (Point, bool) {
	if ev, ok := ctx.Event.(terminal.MouseEvent); ok {
		return Point{X: ev.X, Y: ev.Y}, true
	}
	return Point{}, false
}

// LocalMouse returns the pointer position relative to the widget's own
// origin (bounds origin subtracted).
func (ctx EventContext) LocalMouse() (Point, bool) {
	p, ok := ctx.MousePosition()
	if !ok {
		return Point{}, false
	}
	return p.Sub(ctx.Bounds.Origin()), true
}

// Child derives a context for a child widget. The child's bounds are given
// in this widget's local coordinates; pointer coordinates are translated
// to match, so transforms compose additively with nesting depth. Focus
// flags reset to false; propagate them with WithFocus on the one path that
// leads to the focused descendant.
func (ctx EventContext) Child(bounds Rect) EventContext {
	child := EventContext{
		Event:  ctx.Event,
		Scope:  ctx.Scope,
		Bounds: bounds,
	}
	if ev, ok := ctx.Event.(terminal.MouseEvent); ok {
		ev.X -= ctx.Bounds.X
		ev.Y -= ctx.Bounds.Y
		child.Event = ev
	}
	return child
}

// WithFocus returns the context with explicit focus flags.
func (ctx EventContext) WithFocus(has, can bool) EventContext {
	ctx.HasFocus = has
	ctx.CanFocus = can
	return ctx
}
