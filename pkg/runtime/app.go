package runtime

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/odvcencio/cellkit/pkg/backend"
	"github.com/odvcencio/cellkit/pkg/terminal"
)

// AppConfig configures an App.
type AppConfig struct {
	Backend backend.Backend

	// Root is drawn every frame and registered focusable with the
	// lifecycle manager.
	Root Widget

	// TickPoll bounds how long the loop sleeps between ProcessTicks
	// calls while idle. Defaults to 50ms.
	TickPoll time.Duration

	// ScopeBudget overrides the per-frame cell budget.
	ScopeBudget int

	// QuitKey stops the loop when pressed. Defaults to Ctrl-C; set to a
	// negative value to disable.
	QuitKey terminal.Key
}

// App is a convenience host: it owns a backend and a lifecycle manager,
// polls events, processes ticks every iteration, and composites the root
// widget's surface tree to the terminal. Applications with their own loop
// can drive a LifecycleManager directly instead.
type App struct {
	backend backend.Backend
	manager *LifecycleManager
	root    Widget

	messages    chan terminal.Event
	tickPoll    time.Duration
	scopeBudget int
	quitKey     terminal.Key

	width, height int
	grid          *screenBuffer
	hits          *HitGrid
	hover         Widget

	running bool
	dirty   bool
}

// NewApp creates an App from config.
func NewApp(cfg AppConfig) *App {
	tickPoll := cfg.TickPoll
	if tickPoll <= 0 {
		tickPoll = 50 * time.Millisecond
	}
	budget := cfg.ScopeBudget
	if budget <= 0 {
		budget = DefaultScopeBudget
	}
	quitKey := cfg.QuitKey
	if quitKey == 0 {
		quitKey = terminal.KeyCtrlC
	}

	a := &App{
		backend:     cfg.Backend,
		manager:     NewLifecycleManager(),
		root:        cfg.Root,
		messages:    make(chan terminal.Event, 128),
		tickPoll:    tickPoll,
		scopeBudget: budget,
		quitKey:     quitKey,
	}
	a.manager.SetScopeBudget(budget)
	a.manager.CopyFunc = func(data []byte) error {
		if a.backend == nil {
			return nil
		}
		return a.backend.SetClipboard(data)
	}
	a.manager.RedrawFunc = func() {
		a.dirty = true
	}
	return a
}

// Manager returns the lifecycle manager so hosts can register additional
// widgets, move focus, or schedule ticks.
func (a *App) Manager() *LifecycleManager {
	return a.manager
}

// Post injects an event into the loop from outside (another goroutine or
// a timer). Dropped if the queue is full.
func (a *App) Post(ev terminal.Event) {
	select {
	case a.messages <- ev:
	default:
	}
}

// Stop ends the run loop after the current iteration.
func (a *App) Stop() {
	a.running = false
}

// Run starts the event loop until Stop, the quit key, or context
// cancellation.
func (a *App) Run(ctx context.Context) error {
	if a.backend == nil {
		return errors.New("backend is required")
	}
	if a.root == nil {
		return errors.New("root widget is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := a.backend.Init(); err != nil {
		return fmt.Errorf("init backend: %w", err)
	}
	defer a.backend.Fini()
	defer func() { _ = a.manager.Shutdown() }()

	a.backend.HideCursor()
	a.width, a.height = a.backend.Size()
	a.grid = newScreenBuffer(a.width, a.height)
	a.hits = NewHitGrid(a.width, a.height)

	rootBounds := Rect{Width: a.width, Height: a.height}
	a.manager.Register(a.root, rootBounds, true)
	if err := a.manager.InitializeAll(); err != nil {
		return err
	}
	if err := a.manager.SetFocus(a.root); err != nil {
		return err
	}

	if prober, ok := a.backend.(backend.SchemeProber); ok {
		scheme := prober.ColorScheme()
		if err := a.manager.Broadcast(terminal.ColorSchemeEvent{Scheme: scheme}); err != nil {
			return err
		}
	}

	a.running = true
	a.dirty = true

	go a.pollEvents()

	ticker := time.NewTicker(a.tickPoll)
	defer ticker.Stop()

	for a.running {
		select {
		case <-ctx.Done():
			a.running = false
		case ev := <-a.messages:
			if err := a.handleEvent(ev); err != nil {
				return err
			}
		case <-ticker.C:
		}

		if err := a.manager.ProcessTicks(); err != nil {
			return err
		}

		if a.dirty && a.running {
			a.dirty = false
			if err := a.render(); err != nil {
				if errors.Is(err, ErrScopeExhausted) {
					// Abort this frame, retry next iteration.
					a.dirty = true
					continue
				}
				return err
			}
		}
	}

	return ctx.Err()
}

func (a *App) pollEvents() {
	for a.running {
		ev := a.backend.PollEvent()
		if ev == nil {
			return
		}
		a.Post(ev)
	}
}

// handleEvent routes one backend event into the widget tree.
func (a *App) handleEvent(ev terminal.Event) error {
	switch e := ev.(type) {
	case terminal.ResizeEvent:
		a.width, a.height = e.Width, e.Height
		a.grid.resize(e.Width, e.Height)
		a.hits.Resize(e.Width, e.Height)
		a.dirty = true
		return a.manager.Resize(a.root, Rect{Width: e.Width, Height: e.Height})

	case terminal.KeyEvent:
		if e.Key == a.quitKey && !e.Release {
			a.running = false
			return nil
		}
		if focused := a.manager.Focused(); focused != nil {
			return a.manager.DispatchEvent(focused, ev)
		}
		return nil

	case terminal.PasteStartEvent, terminal.PasteEndEvent, terminal.PasteEvent:
		if focused := a.manager.Focused(); focused != nil {
			return a.manager.DispatchEvent(focused, ev)
		}
		return nil

	case terminal.MouseEvent:
		return a.routeMouse(e)

	case terminal.FocusInEvent, terminal.FocusOutEvent,
		terminal.ColorSchemeEvent, terminal.UserEvent:
		return a.manager.Broadcast(ev)

	case terminal.ColorReportEvent:
		// Never routed to widgets.
		return nil

	default:
		return a.manager.Broadcast(ev)
	}
}

// routeMouse sends a pointer event to the topmost registered widget under
// the cursor, synthesizing enter/leave transitions as the hover target
// changes.
func (a *App) routeMouse(ev terminal.MouseEvent) error {
	target := a.hits.WidgetAt(ev.X, ev.Y)
	if target != nil {
		if _, known := a.manager.Bounds(target); !known {
			target = a.root
		}
	} else {
		target = a.root
	}

	if target != a.hover {
		if a.hover != nil {
			if err := a.manager.DispatchEvent(a.hover, terminal.MouseLeaveEvent{}); err != nil {
				return err
			}
		}
		a.hover = target
		if err := a.manager.DispatchEvent(target, terminal.MouseEnterEvent{}); err != nil {
			return err
		}
	}

	return a.manager.DispatchEvent(target, ev)
}

// render draws one frame: a fresh scope, one root draw, hit grid rebuild,
// composite into the diffing buffer, and a flush of changed cells.
func (a *App) render() error {
	scope := NewScopeWithBudget(a.scopeBudget)
	defer scope.Release()

	ctx := NewDrawContext(scope, Size{Width: a.width, Height: a.height})
	surface, err := a.root.Draw(ctx)
	if err != nil {
		return err
	}

	a.hits.Rebuild(surface, Point{})
	surface.Composite(a.grid, Point{})
	a.grid.flush(a.backend)
	a.backend.Show()
	return nil
}

// screenBuffer is the flattened output grid between the surface tree and
// the backend. It tracks which cells changed since the last flush so the
// backend only receives the delta.
type screenBuffer struct {
	width, height int
	cells         []Cell
	dirty         []bool
	dirtyCount    int
}

func newScreenBuffer(w, h int) *screenBuffer {
	b := &screenBuffer{}
	b.resize(w, h)
	return b
}

func (b *screenBuffer) resize(w, h int) {
	b.width = w
	b.height = h
	b.cells = make([]Cell, w*h)
	b.dirty = make([]bool, w*h)
	// Everything repaints after a resize.
	for i := range b.dirty {
		b.dirty[i] = true
	}
	b.dirtyCount = len(b.dirty)
}

// Size implements backend.RenderTarget.
func (b *screenBuffer) Size() (int, int) {
	return b.width, b.height
}

// SetContent implements backend.RenderTarget with change tracking.
func (b *screenBuffer) SetContent(x, y int, mainc rune, comb []rune, style backend.Style) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	idx := y*b.width + x
	c := Cell{Rune: mainc, Style: style}
	if b.cells[idx] != c {
		b.cells[idx] = c
		if !b.dirty[idx] {
			b.dirty[idx] = true
			b.dirtyCount++
		}
	}
}

func (b *screenBuffer) flush(target backend.RenderTarget) {
	if b.dirtyCount == 0 {
		return
	}
	for y := 0; y < b.height; y++ {
		row := y * b.width
		for x := 0; x < b.width; x++ {
			idx := row + x
			if !b.dirty[idx] {
				continue
			}
			c := b.cells[idx]
			if c.Rune == 0 {
				c.Rune = ' '
			}
			target.SetContent(x, y, c.Rune, nil, c.Style)
			b.dirty[idx] = false
		}
	}
	b.dirtyCount = 0
}
