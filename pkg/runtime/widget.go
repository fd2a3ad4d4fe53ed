package runtime

// Widget is the dispatch contract every component implements: one draw
// call producing a Surface. Concrete widgets own their own state; the
// runtime holds them only behind this interface. Widget values must be
// comparable (pointer receivers in practice) so the lifecycle manager can
// key its registry on them.
type Widget interface {
	// Draw renders the widget into a Surface allocated from ctx.Scope.
	// The returned surface's size must already satisfy ctx's constraints.
	Draw(ctx DrawContext) (*Surface, error)
}

// EventHandler is the optional half of the widget contract. A widget
// without it never handles events; dispatch falls through.
type EventHandler interface {
	// HandleEvent processes one routed event and returns deferred
	// side-effect requests. Commands are applied by the lifecycle
	// manager after traversal completes, never inline.
	HandleEvent(ctx EventContext) ([]Command, error)
}

// DispatchEvent routes an event to a widget, honoring the routing table
// and the optional-handler contract. Widgets without an EventHandler, and
// events the routing table withholds, yield no commands.
func DispatchEvent(w Widget, ctx EventContext) ([]Command, error) {
	handler, ok := w.(EventHandler)
	if !ok {
		return nil, nil
	}
	if !ctx.ShouldHandle() {
		return nil, nil
	}
	return handler.HandleEvent(ctx)
}
