package runtime

import "testing"

func TestDrawContextResolution(t *testing.T) {
	tests := []struct {
		name       string
		ctx        DrawContext
		wantWidth  int
		wantHeight int
	}{
		{
			"bounded fills the max",
			DrawContext{Min: Size{Width: 2, Height: 1}, Max: Size{Width: 10, Height: 5}},
			10, 5,
		},
		{
			"unbounded falls back to the min",
			DrawContext{Min: Size{Width: 2, Height: 1}, Max: Size{Width: Unconstrained, Height: Unconstrained}},
			2, 1,
		},
		{
			"mixed axes resolve independently",
			DrawContext{Min: Size{Width: 2, Height: 1}, Max: Size{Width: 10, Height: Unconstrained}},
			10, 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ctx.Width(); got != tt.wantWidth {
				t.Errorf("Width() = %d, want %d", got, tt.wantWidth)
			}
			if got := tt.ctx.Height(); got != tt.wantHeight {
				t.Errorf("Height() = %d, want %d", got, tt.wantHeight)
			}
		})
	}
}

func TestDrawContextChildNarrows(t *testing.T) {
	parent := DrawContext{
		Min: Size{Width: 5, Height: 5},
		Max: Size{Width: 20, Height: 10},
	}
	child := parent.Child(Size{Width: 8, Height: 30})

	if !child.Min.Zero() {
		t.Errorf("child min = %+v, want zero", child.Min)
	}
	if child.Max != (Size{Width: 8, Height: 10}) {
		t.Errorf("child max = %+v, want tightened 8x10", child.Max)
	}
}

func TestDrawContextChildKeepsParentBound(t *testing.T) {
	parent := DrawContext{Max: Size{Width: 20, Height: 10}}
	child := parent.Child(Size{Width: Unconstrained, Height: Unconstrained})

	if child.Max != parent.Max {
		t.Errorf("child max = %+v, want parent's %+v", child.Max, parent.Max)
	}
}

func TestDrawContextConstrain(t *testing.T) {
	ctx := DrawContext{
		Min: Size{Width: 3, Height: 3},
		Max: Size{Width: 8, Height: 8},
	}

	tests := []struct {
		in, want Size
	}{
		{Size{Width: 5, Height: 5}, Size{Width: 5, Height: 5}},
		{Size{Width: 1, Height: 20}, Size{Width: 3, Height: 8}},
		{Size{Width: 100, Height: 0}, Size{Width: 8, Height: 3}},
	}
	for _, tt := range tests {
		if got := ctx.Constrain(tt.in); got != tt.want {
			t.Errorf("Constrain(%+v) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestDrawContextWithMinClampsIntoMax(t *testing.T) {
	ctx := DrawContext{Max: Size{Width: 6, Height: 6}}
	got := ctx.WithMin(Size{Width: 10, Height: 2})
	if got.Min != (Size{Width: 6, Height: 2}) {
		t.Errorf("min = %+v, want clamped 6x2", got.Min)
	}
}

func TestNewDrawContextIsTight(t *testing.T) {
	scope := NewScope()
	defer scope.Release()

	ctx := NewDrawContext(scope, Size{Width: 80, Height: 24})
	if ctx.Min != ctx.Max {
		t.Errorf("root context min %+v != max %+v, want tight", ctx.Min, ctx.Max)
	}
	if !ctx.HasMaxWidth() || !ctx.HasMaxHeight() {
		t.Error("root context must be bounded")
	}
}
