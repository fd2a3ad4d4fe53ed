package widgets

import (
	"testing"

	"github.com/odvcencio/cellkit/pkg/runtime"
	"github.com/odvcencio/cellkit/pkg/terminal"
)

func TestSplitViewPaneSizes(t *testing.T) {
	tests := []struct {
		name    string
		ratio   float64
		minPane int
		extent  int
		first   int
		second  int
	}{
		{"even split", 0.5, 0, 20, 10, 10},
		{"quarter", 0.25, 0, 20, 5, 15},
		{"ratio clamps low", -1, 0, 20, 0, 20},
		{"ratio clamps high", 2, 0, 20, 20, 0},
		{"min pane clamps first", 0.0, 4, 20, 4, 16},
		{"min pane clamps second", 1.0, 4, 20, 16, 4},
		{"too small for min panes", 0.5, 8, 10, 5, 5},
		{"zero extent", 0.5, 2, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sv := &SplitView{Ratio: tt.ratio, MinPane: tt.minPane}
			first, second := sv.paneSizes(tt.extent)
			if first != tt.first || second != tt.second {
				t.Errorf("paneSizes(%d) = (%d, %d), want (%d, %d)",
					tt.extent, first, second, tt.first, tt.second)
			}
			if first+second != tt.extent {
				t.Errorf("panes %d + %d do not cover extent %d", first, second, tt.extent)
			}
		})
	}
}

func TestSplitViewDraw(t *testing.T) {
	sv := HSplit(&fillWidget{}, &fillWidget{}, 0.5)
	surf, _ := drawRoot(t, sv, runtime.Size{Width: 21, Height: 5})

	subs := surf.Children()
	if len(subs) != 2 {
		t.Fatalf("children = %d, want 2 panes", len(subs))
	}
	// 21 wide leaves a 20-cell splittable extent: 10 | divider | 10.
	if got := subs[0].Surface.Size(); got != (runtime.Size{Width: 10, Height: 5}) {
		t.Errorf("first pane = %+v, want 10x5", got)
	}
	if subs[1].Origin.X != 11 {
		t.Errorf("second pane origin x = %d, want 11", subs[1].Origin.X)
	}
	if got := subs[1].Surface.Size(); got != (runtime.Size{Width: 10, Height: 5}) {
		t.Errorf("second pane = %+v, want 10x5", got)
	}

	for y := 0; y < 5; y++ {
		cell, _ := surf.GetCell(10, y)
		if cell.Rune != '│' {
			t.Errorf("divider cell (10,%d) = %q, want %q", y, cell.Rune, '│')
		}
	}
}

func TestSplitViewDragMachine(t *testing.T) {
	sv := HSplit(&fillWidget{}, &fillWidget{}, 0.5)
	bounds := runtime.Rect{Width: 21, Height: 5}
	drawRoot(t, sv, bounds.Size())

	press := runtime.EventContext{
		Event:  terminal.MouseEvent{X: 10, Y: 2, Button: terminal.MouseLeft, Action: terminal.MousePress},
		Bounds: bounds,
	}
	if _, err := sv.HandleEvent(press); err != nil {
		t.Fatalf("press: %v", err)
	}
	if !sv.dragging {
		t.Fatal("press on the divider must start a drag")
	}

	move := runtime.EventContext{
		Event:  terminal.MouseEvent{X: 15, Y: 2, Button: terminal.MouseLeft, Action: terminal.MouseMove},
		Bounds: bounds,
	}
	cmds, err := sv.HandleEvent(move)
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	// The splittable extent is 20 (21 minus the divider).
	want := 15.0 / 20.0
	if sv.Ratio != want {
		t.Errorf("ratio = %v, want %v", sv.Ratio, want)
	}
	if len(cmds) != 1 {
		t.Errorf("commands = %d, want 1 redraw", len(cmds))
	}

	release := runtime.EventContext{
		Event:  terminal.MouseEvent{X: 15, Y: 2, Button: terminal.MouseLeft, Action: terminal.MouseRelease},
		Bounds: bounds,
	}
	if _, err := sv.HandleEvent(release); err != nil {
		t.Fatalf("release: %v", err)
	}
	if sv.dragging {
		t.Error("release must end the drag")
	}

	// Moves after release no longer adjust the ratio.
	before := sv.Ratio
	if _, err := sv.HandleEvent(move); err != nil {
		t.Fatalf("move after release: %v", err)
	}
	if sv.Ratio != before {
		t.Errorf("ratio moved after release: %v -> %v", before, sv.Ratio)
	}
}

func TestSplitViewDragClampsRatio(t *testing.T) {
	sv := HSplit(&fillWidget{}, &fillWidget{}, 0.5)
	bounds := runtime.Rect{Width: 21, Height: 5}
	drawRoot(t, sv, bounds.Size())

	sv.dragging = true
	move := runtime.EventContext{
		Event:  terminal.MouseEvent{X: 400, Y: 2, Button: terminal.MouseLeft, Action: terminal.MouseMove},
		Bounds: bounds,
	}
	if _, err := sv.HandleEvent(move); err != nil {
		t.Fatalf("move: %v", err)
	}
	if sv.Ratio != 1 {
		t.Errorf("ratio = %v, want clamped to 1", sv.Ratio)
	}
}

func TestSplitViewDragReachesEdges(t *testing.T) {
	sv := HSplit(&fillWidget{}, &fillWidget{}, 0.5)
	bounds := runtime.Rect{Width: 21, Height: 5}
	drawRoot(t, sv, bounds.Size())

	sv.dragging = true
	move := func(x int) runtime.EventContext {
		return runtime.EventContext{
			Event:  terminal.MouseEvent{X: x, Y: 2, Button: terminal.MouseLeft, Action: terminal.MouseMove},
			Bounds: bounds,
		}
	}

	// Dragging to the end of the 20-cell extent must land the divider at
	// the last position, not one short of it.
	if _, err := sv.HandleEvent(move(20)); err != nil {
		t.Fatalf("move to far edge: %v", err)
	}
	if sv.Ratio != 1 {
		t.Errorf("ratio = %v, want 1", sv.Ratio)
	}
	if first, second := sv.paneSizes(20); first != 20 || second != 0 {
		t.Errorf("paneSizes = (%d, %d), want (20, 0)", first, second)
	}

	if _, err := sv.HandleEvent(move(0)); err != nil {
		t.Fatalf("move to near edge: %v", err)
	}
	if sv.Ratio != 0 {
		t.Errorf("ratio = %v, want 0", sv.Ratio)
	}
}

func TestSplitViewFocusLossCancelsDrag(t *testing.T) {
	sv := HSplit(&fillWidget{}, &fillWidget{}, 0.5)
	bounds := runtime.Rect{Width: 21, Height: 5}
	drawRoot(t, sv, bounds.Size())

	sv.dragging = true
	ctx := runtime.EventContext{Event: terminal.FocusOutEvent{}, Bounds: bounds, CanFocus: true}
	if _, err := sv.HandleEvent(ctx); err != nil {
		t.Fatalf("focus out: %v", err)
	}
	if sv.dragging {
		t.Error("focus loss must cancel the drag")
	}
}

// paneRecorder records the pointer coordinates it receives.
type paneRecorder struct {
	fillWidget
	got []runtime.Point
}

func (p *paneRecorder) HandleEvent(ctx runtime.EventContext) ([]runtime.Command, error) {
	if pt, ok := ctx.LocalMouse(); ok {
		p.got = append(p.got, pt)
	}
	return nil, nil
}

func TestSplitViewRoutesPointerToPane(t *testing.T) {
	first := &paneRecorder{}
	second := &paneRecorder{}
	sv := HSplit(first, second, 0.5)
	bounds := runtime.Rect{Width: 21, Height: 5}
	drawRoot(t, sv, bounds.Size())

	click := func(x int) runtime.EventContext {
		return runtime.EventContext{
			Event:  terminal.MouseEvent{X: x, Y: 2, Button: terminal.MouseLeft, Action: terminal.MousePress},
			Bounds: bounds,
		}
	}

	if _, err := sv.HandleEvent(click(3)); err != nil {
		t.Fatalf("click first: %v", err)
	}
	if _, err := sv.HandleEvent(click(14)); err != nil {
		t.Fatalf("click second: %v", err)
	}

	if len(first.got) != 1 || first.got[0] != (runtime.Point{X: 3, Y: 2}) {
		t.Errorf("first pane got %v, want [(3,2)]", first.got)
	}
	// The second pane starts at x=11, so a click at 14 lands at local 3.
	if len(second.got) != 1 || second.got[0] != (runtime.Point{X: 3, Y: 2}) {
		t.Errorf("second pane got %v, want [(3,2)]", second.got)
	}
}
