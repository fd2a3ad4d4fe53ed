// Command demo shows the widget runtime end to end: a bordered split view
// with wrapped text, a live clock driven by tick timers, and scrollable
// content, rendered through the tcell backend.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	tcellbackend "github.com/odvcencio/cellkit/pkg/backend/tcell"
	"github.com/odvcencio/cellkit/pkg/runtime"
	"github.com/odvcencio/cellkit/pkg/terminal"
	"github.com/odvcencio/cellkit/pkg/theme"
	"github.com/odvcencio/cellkit/pkg/widgets"
)

func main() {
	themePath := flag.String("theme", "", "TOML theme override file")
	flag.Parse()

	if err := run(*themePath); err != nil {
		fmt.Fprintln(os.Stderr, "demo:", err)
		os.Exit(1)
	}
}

func run(themePath string) error {
	backend, err := tcellbackend.New()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}

	th := theme.Dark()
	if themePath != "" {
		th, err = theme.Load(themePath, th)
		if err != nil {
			return err
		}
	}

	app := runtime.NewApp(runtime.AppConfig{
		Backend: backend,
		Root:    newDemoRoot(th),
	})
	return app.Run(context.Background())
}

// demoRoot composes the demo layout and owns the clock state.
type demoRoot struct {
	theme *theme.Theme

	clock  *widgets.Text
	body   *widgets.SplitView
	scroll *widgets.ScrollBars
	layout *widgets.Flex
}

func newDemoRoot(th *theme.Theme) *demoRoot {
	r := &demoRoot{theme: th}

	r.clock = &widgets.Text{Style: th.Accent}

	intro := &widgets.Text{
		Content: "Drag the divider between the panes. Scroll the right pane " +
			"with the mouse wheel. Press Ctrl-C to quit.",
		Style: th.Text,
		Wrap:  true,
	}

	var lines []string
	for i := 1; i <= 100; i++ {
		lines = append(lines, fmt.Sprintf("line %3d of some scrollable content", i))
	}
	r.scroll = &widgets.ScrollBars{
		Child:      &widgets.Text{Content: strings.Join(lines, "\n"), Style: th.TextMuted},
		Content:    runtime.Size{Width: 36, Height: 100},
		TrackStyle: th.ScrollTrack,
		ThumbStyle: th.ScrollThumb,
	}

	left := &widgets.Border{
		Child: widgets.Pad(intro, 1),
		Style: widgets.BorderRounded,
		Attrs: th.Border,
	}
	right := &widgets.Border{
		Child: r.scroll,
		Style: widgets.BorderSingle,
		Attrs: th.Border,
	}

	r.body = widgets.HSplit(left, right, 0.4)
	r.body.MinPane = 12
	r.body.DividerStyle = th.Divider

	header := &widgets.Border{
		Child: widgets.Centered(r.clock),
		Style: widgets.BorderDouble,
		Attrs: th.BorderFocus,
	}

	r.layout = widgets.Column(
		widgets.Fixed(&widgets.SizedBox{Child: header, Size: runtime.Size{Width: 0, Height: 3}}),
		widgets.Flexible(r.body, 1),
	)
	return r
}

// Draw implements runtime.Widget. The header box tracks the terminal width
// before the column lays everything out.
func (r *demoRoot) Draw(ctx runtime.DrawContext) (*runtime.Surface, error) {
	header := r.layout.Items()[0].Widget.(*widgets.SizedBox)
	header.Size = runtime.Size{Width: ctx.Width(), Height: 3}
	return r.layout.Draw(ctx)
}

// HandleEvent implements runtime.EventHandler: it arms the clock timer on
// init, refreshes the clock on ticks, and hands everything else to the
// layout.
func (r *demoRoot) HandleEvent(ctx runtime.EventContext) ([]runtime.Command, error) {
	switch ev := ctx.Event.(type) {
	case terminal.InitEvent:
		r.updateClock(time.Now())
		return []runtime.Command{
			runtime.Tick{Widget: r, Delay: time.Second},
		}, nil

	case terminal.TickEvent:
		r.updateClock(ev.Time)
		return []runtime.Command{
			runtime.Tick{Widget: r, Delay: time.Second},
			runtime.Redraw{},
		}, nil

	case terminal.ColorSchemeEvent:
		// Swap palettes when the terminal reports a scheme change.
		r.applyTheme(theme.ForScheme(ev.Scheme))
		return []runtime.Command{runtime.Redraw{}}, nil
	}

	childCtx := ctx.Child(runtime.RectFromSize(ctx.Bounds.Size())).
		WithFocus(ctx.HasFocus, ctx.CanFocus)
	return runtime.DispatchEvent(r.layout, childCtx)
}

func (r *demoRoot) updateClock(now time.Time) {
	r.clock.Content = now.Format("15:04:05")
}

func (r *demoRoot) applyTheme(th *theme.Theme) {
	r.theme = th
	r.clock.Style = th.Accent
	r.scroll.TrackStyle = th.ScrollTrack
	r.scroll.ThumbStyle = th.ScrollThumb
	r.body.DividerStyle = th.Divider
}
