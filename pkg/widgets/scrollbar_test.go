package widgets

import (
	"testing"

	"github.com/odvcencio/cellkit/pkg/runtime"
	"github.com/odvcencio/cellkit/pkg/terminal"
)

func TestThumbMetrics(t *testing.T) {
	tests := []struct {
		name                        string
		content, viewport, track    int
		pos                         int
		wantThumb, wantOffset       int
		wantScrollable              bool
	}{
		{"reference ratios", 100, 20, 10, 0, 2, 0, true},
		{"scrolled to end", 100, 20, 10, 80, 2, 8, true},
		{"midway", 100, 20, 10, 40, 2, 4, true},
		{"thumb floors at one cell", 1000, 5, 10, 0, 1, 0, true},
		{"content fits", 15, 20, 10, 0, 0, 0, false},
		{"content equals viewport", 20, 20, 10, 0, 0, 0, false},
		{"empty track", 100, 20, 0, 0, 0, 0, false},
		{"pos clamped", 100, 20, 10, 500, 2, 8, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			thumb, offset, scrollable := thumbMetrics(tt.content, tt.viewport, tt.track, tt.pos)
			if thumb != tt.wantThumb || offset != tt.wantOffset || scrollable != tt.wantScrollable {
				t.Errorf("thumbMetrics(%d, %d, %d, %d) = (%d, %d, %v), want (%d, %d, %v)",
					tt.content, tt.viewport, tt.track, tt.pos,
					thumb, offset, scrollable,
					tt.wantThumb, tt.wantOffset, tt.wantScrollable)
			}
		})
	}
}

func TestScrollbarDrawsThumb(t *testing.T) {
	bar := &Scrollbar{
		Vertical:    true,
		ContentLen:  100,
		ViewportLen: 20,
		Pos:         40,
	}
	surf, _ := drawRoot(t, bar, runtime.Size{Width: 1, Height: 10})

	if got := surf.Size(); got != (runtime.Size{Width: 1, Height: 10}) {
		t.Fatalf("size = %+v, want 1x10", got)
	}
	// thumb of 2 at offset 4
	for y := 0; y < 10; y++ {
		cell, _ := surf.GetCell(0, y)
		wantThumb := y == 4 || y == 5
		isThumb := cell.Rune == '█'
		if isThumb != wantThumb {
			t.Errorf("row %d thumb = %v, want %v", y, isThumb, wantThumb)
		}
	}
}

func TestScrollbarWheel(t *testing.T) {
	bar := &Scrollbar{
		Vertical:    true,
		ContentLen:  100,
		ViewportLen: 20,
	}
	drawRoot(t, bar, runtime.Size{Width: 1, Height: 10})

	ctx := runtime.EventContext{
		Event:  terminal.MouseEvent{X: 0, Y: 0, Button: terminal.MouseWheelDown, Action: terminal.MousePress},
		Bounds: runtime.Rect{Width: 1, Height: 10},
	}
	cmds, err := bar.HandleEvent(ctx)
	if err != nil {
		t.Fatalf("wheel: %v", err)
	}
	if bar.Pos != wheelStep {
		t.Errorf("pos = %d, want %d", bar.Pos, wheelStep)
	}
	if len(cmds) != 1 {
		t.Fatalf("commands = %d, want 1 redraw", len(cmds))
	}
	if _, ok := cmds[0].(runtime.Redraw); !ok {
		t.Errorf("command = %T, want Redraw", cmds[0])
	}

	// Wheel up at the top is already clamped: no redraw.
	bar.Pos = 0
	ctx.Event = terminal.MouseEvent{Button: terminal.MouseWheelUp, Action: terminal.MousePress}
	cmds, err = bar.HandleEvent(ctx)
	if err != nil {
		t.Fatalf("wheel up: %v", err)
	}
	if len(cmds) != 0 {
		t.Errorf("clamped wheel produced %d commands, want 0", len(cmds))
	}
}

func TestScrollbarThumbDrag(t *testing.T) {
	bar := &Scrollbar{
		Vertical:    true,
		ContentLen:  100,
		ViewportLen: 20,
	}
	drawRoot(t, bar, runtime.Size{Width: 1, Height: 10})

	bounds := runtime.Rect{Width: 1, Height: 10}
	press := runtime.EventContext{
		Event:  terminal.MouseEvent{X: 0, Y: 0, Button: terminal.MouseLeft, Action: terminal.MousePress},
		Bounds: bounds,
	}
	if _, err := bar.HandleEvent(press); err != nil {
		t.Fatalf("press: %v", err)
	}

	// Dragging the thumb down four cells over an 8-cell travel span moves
	// the position by 4*80/8 = 40 content cells.
	move := runtime.EventContext{
		Event:  terminal.MouseEvent{X: 0, Y: 4, Button: terminal.MouseLeft, Action: terminal.MouseMove},
		Bounds: bounds,
	}
	if _, err := bar.HandleEvent(move); err != nil {
		t.Fatalf("move: %v", err)
	}
	if bar.Pos != 40 {
		t.Errorf("pos after drag = %d, want 40", bar.Pos)
	}

	release := runtime.EventContext{
		Event:  terminal.MouseEvent{X: 0, Y: 4, Button: terminal.MouseLeft, Action: terminal.MouseRelease},
		Bounds: bounds,
	}
	if _, err := bar.HandleEvent(release); err != nil {
		t.Fatalf("release: %v", err)
	}

	// After release, moves no longer scroll.
	before := bar.Pos
	if _, err := bar.HandleEvent(move); err != nil {
		t.Fatalf("move after release: %v", err)
	}
	if bar.Pos != before {
		t.Errorf("pos moved after release: %d -> %d", before, bar.Pos)
	}
}

func TestScrollbarTrackClickPages(t *testing.T) {
	bar := &Scrollbar{
		Vertical:    true,
		ContentLen:  100,
		ViewportLen: 20,
	}
	drawRoot(t, bar, runtime.Size{Width: 1, Height: 10})

	click := runtime.EventContext{
		Event:  terminal.MouseEvent{X: 0, Y: 9, Button: terminal.MouseLeft, Action: terminal.MousePress},
		Bounds: runtime.Rect{Width: 1, Height: 10},
	}
	if _, err := bar.HandleEvent(click); err != nil {
		t.Fatalf("click: %v", err)
	}
	if bar.Pos != 20 {
		t.Errorf("pos = %d, want one viewport page (20)", bar.Pos)
	}
}

func TestScrollbarDragCancelledOnFocusLoss(t *testing.T) {
	bar := &Scrollbar{Vertical: true, ContentLen: 100, ViewportLen: 20}
	drawRoot(t, bar, runtime.Size{Width: 1, Height: 10})

	bounds := runtime.Rect{Width: 1, Height: 10}
	press := runtime.EventContext{
		Event:  terminal.MouseEvent{Button: terminal.MouseLeft, Action: terminal.MousePress},
		Bounds: bounds,
	}
	if _, err := bar.HandleEvent(press); err != nil {
		t.Fatalf("press: %v", err)
	}
	if !bar.dragging {
		t.Fatal("press on thumb must start a drag")
	}

	if _, err := bar.HandleEvent(runtime.EventContext{Event: terminal.FocusOutEvent{}, Bounds: bounds, CanFocus: true}); err != nil {
		t.Fatalf("focus out: %v", err)
	}
	if bar.dragging {
		t.Error("focus loss must cancel the drag")
	}
}

func TestScrollBarsOverlay(t *testing.T) {
	sb := &ScrollBars{
		Child:   &fillWidget{},
		Content: runtime.Size{Width: 10, Height: 100},
	}
	surf, _ := drawRoot(t, sb, runtime.Size{Width: 10, Height: 20})

	// Vertical content scrolls, horizontal fits: exactly one bar overlay
	// on top of the child.
	if got := len(surf.Children()); got != 2 {
		t.Fatalf("children = %d, want child + 1 bar", got)
	}
	bar := surf.Children()[1]
	if bar.Origin.X != 9 {
		t.Errorf("bar origin x = %d, want last column 9", bar.Origin.X)
	}
	if bar.Surface.Size() != (runtime.Size{Width: 1, Height: 20}) {
		t.Errorf("bar size = %+v, want 1x20", bar.Surface.Size())
	}

	// The overlay consumes no layout space.
	if got := surf.Children()[0].Surface.Size(); got != (runtime.Size{Width: 10, Height: 20}) {
		t.Errorf("child size = %+v, want full 10x20", got)
	}
}

func TestScrollBarsAutoHide(t *testing.T) {
	sb := &ScrollBars{
		Child:   &fillWidget{},
		Content: runtime.Size{Width: 5, Height: 10},
	}
	surf, _ := drawRoot(t, sb, runtime.Size{Width: 10, Height: 20})

	if got := len(surf.Children()); got != 1 {
		t.Errorf("children = %d, want only the child when nothing scrolls", got)
	}
}

func TestScrollBarsWheelScrollsOverlay(t *testing.T) {
	sb := &ScrollBars{
		Child:   &fillWidget{},
		Content: runtime.Size{Width: 10, Height: 100},
	}
	drawRoot(t, sb, runtime.Size{Width: 10, Height: 20})

	ctx := runtime.EventContext{
		Event:  terminal.MouseEvent{X: 5, Y: 5, Button: terminal.MouseWheelDown, Action: terminal.MousePress},
		Bounds: runtime.Rect{Width: 10, Height: 20},
	}
	cmds, err := sb.HandleEvent(ctx)
	if err != nil {
		t.Fatalf("wheel: %v", err)
	}
	if sb.Pos.Y != wheelStep {
		t.Errorf("pos y = %d, want %d", sb.Pos.Y, wheelStep)
	}
	if len(cmds) != 1 {
		t.Errorf("commands = %d, want 1 redraw", len(cmds))
	}
}
