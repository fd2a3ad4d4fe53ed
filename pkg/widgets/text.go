package widgets

import (
	"strings"

	"github.com/odvcencio/cellkit/pkg/backend"
	"github.com/odvcencio/cellkit/pkg/runtime"
	"github.com/odvcencio/cellkit/pkg/textshape"
)

// Text is a styled text leaf. It sizes to its content, wraps to the offered
// width when Wrap is set, and truncates lines that still do not fit.
type Text struct {
	Content string
	Style   backend.Style
	Wrap    bool
}

// Label creates an unwrapped text leaf.
func Label(content string) *Text {
	return &Text{Content: content}
}

// Draw implements runtime.Widget.
func (t *Text) Draw(ctx runtime.DrawContext) (*runtime.Surface, error) {
	var lines []string
	if t.Wrap && ctx.HasMaxWidth() {
		lines = textshape.WrapToCells(t.Content, ctx.Max.Width)
	} else {
		lines = strings.Split(t.Content, "\n")
	}

	natural := runtime.Size{Height: len(lines)}
	for _, line := range lines {
		natural.Width = max(natural.Width, textshape.Width(line))
	}

	own := ctx.Constrain(natural)
	surface, err := ctx.Scope.NewSurface(t, own)
	if err != nil {
		return nil, err
	}

	for y, line := range lines {
		if y >= own.Height {
			break
		}
		if textshape.Width(line) > own.Width {
			line = textshape.TruncateToCells(line, own.Width, "")
		}
		surface.WriteText(0, y, line, t.Style)
	}
	return surface, nil
}

// Spacer is an empty widget that fills whatever space it is offered. Inside
// a flex container with a weight it soaks up leftover space.
type Spacer struct{}

// Draw implements runtime.Widget.
func (s Spacer) Draw(ctx runtime.DrawContext) (*runtime.Surface, error) {
	return ctx.Scope.NewSurface(s, runtime.Size{Width: ctx.Width(), Height: ctx.Height()})
}
