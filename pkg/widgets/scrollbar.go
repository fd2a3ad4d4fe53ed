package widgets

import (
	"github.com/odvcencio/cellkit/pkg/backend"
	"github.com/odvcencio/cellkit/pkg/runtime"
	"github.com/odvcencio/cellkit/pkg/terminal"
)

// wheelStep is the scroll distance of one wheel notch, in content cells.
const wheelStep = 3

// thumbMetrics computes the thumb extent and offset for a scrollbar track.
// The thumb never shrinks below one cell. scrollable is false when the
// content fits the viewport.
func thumbMetrics(content, viewport, track, pos int) (thumb, offset int, scrollable bool) {
	if track <= 0 || content <= 0 || viewport <= 0 || content <= viewport {
		return 0, 0, false
	}
	thumb = max(1, viewport*track/content)
	maxScroll := content - viewport
	pos = clampInt(pos, 0, maxScroll)
	offset = pos * (track - thumb) / maxScroll
	return thumb, offset, true
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Scrollbar is a one-cell-thick standalone scrollbar. It owns the scroll
// position; hosts read it back through Pos after events are applied.
type Scrollbar struct {
	// Vertical selects the axis; false means horizontal.
	Vertical bool

	// ContentLen and ViewportLen describe the scrolled content in cells
	// along the axis.
	ContentLen  int
	ViewportLen int

	// Pos is the current scroll offset in content cells.
	Pos int

	TrackGlyph rune
	ThumbGlyph rune
	TrackStyle backend.Style
	ThumbStyle backend.Style

	dragging  bool
	dragStart int
	dragPos   int
	lastTrack int
}

// MaxScroll returns the largest valid Pos.
func (s *Scrollbar) MaxScroll() int {
	return max(0, s.ContentLen-s.ViewportLen)
}

// ScrollTo sets Pos, clamped into range.
func (s *Scrollbar) ScrollTo(pos int) {
	s.Pos = clampInt(pos, 0, s.MaxScroll())
}

// ScrollBy adjusts Pos by delta, clamped into range.
func (s *Scrollbar) ScrollBy(delta int) {
	s.ScrollTo(s.Pos + delta)
}

// Draw implements runtime.Widget.
func (s *Scrollbar) Draw(ctx runtime.DrawContext) (*runtime.Surface, error) {
	var size runtime.Size
	if s.Vertical {
		size = runtime.Size{Width: 1, Height: ctx.Height()}
	} else {
		size = runtime.Size{Width: ctx.Width(), Height: 1}
	}
	size = ctx.Constrain(size)

	surface, err := ctx.Scope.NewSurface(s, size)
	if err != nil {
		return nil, err
	}

	track := size.Height
	if !s.Vertical {
		track = size.Width
	}
	s.lastTrack = track

	trackGlyph := s.TrackGlyph
	if trackGlyph == 0 {
		trackGlyph = '░'
	}
	thumbGlyph := s.ThumbGlyph
	if thumbGlyph == 0 {
		thumbGlyph = '█'
	}

	thumb, offset, scrollable := thumbMetrics(s.ContentLen, s.ViewportLen, track, s.Pos)
	for i := 0; i < track; i++ {
		cell := runtime.Cell{Rune: trackGlyph, Style: s.TrackStyle}
		if scrollable && i >= offset && i < offset+thumb {
			cell = runtime.Cell{Rune: thumbGlyph, Style: s.ThumbStyle}
		}
		if s.Vertical {
			surface.SetCell(0, i, cell)
		} else {
			surface.SetCell(i, 0, cell)
		}
	}
	return surface, nil
}

// HandleEvent implements runtime.EventHandler: wheel scrolling, thumb
// dragging, and track-click paging.
func (s *Scrollbar) HandleEvent(ctx runtime.EventContext) ([]runtime.Command, error) {
	switch ev := ctx.Event.(type) {
	case terminal.FocusOutEvent, terminal.MouseLeaveEvent:
		s.dragging = false
		return nil, nil

	case terminal.MouseEvent:
		return s.handleMouse(ctx, ev)
	}
	return nil, nil
}

func (s *Scrollbar) handleMouse(ctx runtime.EventContext, ev terminal.MouseEvent) ([]runtime.Command, error) {
	local, _ := ctx.LocalMouse()
	along := local.Y
	if !s.Vertical {
		along = local.X
	}

	switch ev.Button {
	case terminal.MouseWheelUp, terminal.MouseWheelLeft:
		before := s.Pos
		s.ScrollBy(-wheelStep)
		return redrawIfChanged(before, s.Pos), nil
	case terminal.MouseWheelDown, terminal.MouseWheelRight:
		before := s.Pos
		s.ScrollBy(wheelStep)
		return redrawIfChanged(before, s.Pos), nil
	}

	track := s.lastTrack
	thumb, offset, scrollable := thumbMetrics(s.ContentLen, s.ViewportLen, track, s.Pos)
	if !scrollable {
		return nil, nil
	}

	switch ev.Action {
	case terminal.MousePress:
		if ev.Button != terminal.MouseLeft {
			return nil, nil
		}
		if along >= offset && along < offset+thumb {
			s.dragging = true
			s.dragStart = along
			s.dragPos = s.Pos
			return nil, nil
		}
		// Track click: page toward the pointer.
		before := s.Pos
		if along < offset {
			s.ScrollBy(-s.ViewportLen)
		} else {
			s.ScrollBy(s.ViewportLen)
		}
		return redrawIfChanged(before, s.Pos), nil

	case terminal.MouseMove:
		if !s.dragging {
			return nil, nil
		}
		// One cell of thumb travel covers maxScroll/(track-thumb)
		// content cells; the multiplier is fixed for the gesture.
		span := track - thumb
		if span <= 0 {
			return nil, nil
		}
		delta := (along - s.dragStart) * s.MaxScroll() / span
		before := s.Pos
		s.ScrollTo(s.dragPos + delta)
		return redrawIfChanged(before, s.Pos), nil

	case terminal.MouseRelease:
		s.dragging = false
		return nil, nil
	}
	return nil, nil
}

func redrawIfChanged(before, after int) []runtime.Command {
	if before == after {
		return nil
	}
	return []runtime.Command{runtime.Redraw{}}
}

// ScrollBars overlays auto-hiding scrollbars on a child widget. The bars
// paint over the child's last column and row instead of consuming layout
// space, and each bar appears only when its axis actually scrolls (unless
// AlwaysVisible).
type ScrollBars struct {
	Child runtime.Widget

	// Content is the child's full content size; the viewport is whatever
	// the ScrollBars widget is offered.
	Content runtime.Size

	// Pos is the current scroll offset.
	Pos runtime.Point

	AlwaysVisible bool

	TrackStyle backend.Style
	ThumbStyle backend.Style

	lastViewport runtime.Size
}

// Draw implements runtime.Widget.
func (sb *ScrollBars) Draw(ctx runtime.DrawContext) (*runtime.Surface, error) {
	childSurf, err := sb.Child.Draw(ctx)
	if err != nil {
		return nil, err
	}

	size := childSurf.Size()
	sb.lastViewport = size

	surface, err := ctx.Scope.NewSurface(sb, size)
	if err != nil {
		return nil, err
	}
	surface.AddChild(runtime.Point{}, childSurf)

	vThumb, vOffset, vScroll := thumbMetrics(sb.Content.Height, size.Height, size.Height, sb.Pos.Y)
	hThumb, hOffset, hScroll := thumbMetrics(sb.Content.Width, size.Width, size.Width, sb.Pos.X)

	if vScroll || (sb.AlwaysVisible && size.Width > 0) {
		bar, err := ctx.Scope.NewSurface(nil, runtime.Size{Width: 1, Height: size.Height})
		if err != nil {
			return nil, err
		}
		for y := 0; y < size.Height; y++ {
			cell := runtime.Cell{Rune: '░', Style: sb.TrackStyle}
			if vScroll && y >= vOffset && y < vOffset+vThumb {
				cell = runtime.Cell{Rune: '█', Style: sb.ThumbStyle}
			}
			bar.SetCell(0, y, cell)
		}
		surface.AddChild(runtime.Point{X: size.Width - 1}, bar)
	}

	if hScroll || (sb.AlwaysVisible && size.Height > 0) {
		bar, err := ctx.Scope.NewSurface(nil, runtime.Size{Width: size.Width, Height: 1})
		if err != nil {
			return nil, err
		}
		for x := 0; x < size.Width; x++ {
			cell := runtime.Cell{Rune: '░', Style: sb.TrackStyle}
			if hScroll && x >= hOffset && x < hOffset+hThumb {
				cell = runtime.Cell{Rune: '█', Style: sb.ThumbStyle}
			}
			bar.SetCell(x, 0, cell)
		}
		surface.AddChild(runtime.Point{Y: size.Height - 1}, bar)
	}

	return surface, nil
}

// MaxScroll returns the largest valid offsets given the last viewport.
func (sb *ScrollBars) MaxScroll() runtime.Point {
	return runtime.Point{
		X: max(0, sb.Content.Width-sb.lastViewport.Width),
		Y: max(0, sb.Content.Height-sb.lastViewport.Height),
	}
}

// ScrollBy adjusts the offsets, clamped into range.
func (sb *ScrollBars) ScrollBy(dx, dy int) {
	limit := sb.MaxScroll()
	sb.Pos.X = clampInt(sb.Pos.X+dx, 0, limit.X)
	sb.Pos.Y = clampInt(sb.Pos.Y+dy, 0, limit.Y)
}

// HandleEvent implements runtime.EventHandler: wheel events scroll the
// overlay; everything else forwards to the child.
func (sb *ScrollBars) HandleEvent(ctx runtime.EventContext) ([]runtime.Command, error) {
	if ev, ok := ctx.Event.(terminal.MouseEvent); ok {
		before := sb.Pos
		switch ev.Button {
		case terminal.MouseWheelUp:
			sb.ScrollBy(0, -wheelStep)
		case terminal.MouseWheelDown:
			sb.ScrollBy(0, wheelStep)
		case terminal.MouseWheelLeft:
			sb.ScrollBy(-wheelStep, 0)
		case terminal.MouseWheelRight:
			sb.ScrollBy(wheelStep, 0)
		}
		if sb.Pos != before {
			return []runtime.Command{runtime.Redraw{}}, nil
		}
	}

	childCtx := ctx.Child(runtime.RectFromSize(ctx.Bounds.Size())).
		WithFocus(ctx.HasFocus, ctx.CanFocus)
	return runtime.DispatchEvent(sb.Child, childCtx)
}
