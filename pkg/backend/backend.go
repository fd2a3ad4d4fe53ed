// Package backend defines the terminal backend interface for the widget
// runtime. The runtime treats the backend as an opaque collaborator: it
// consumes the event stream the backend produces and hands back a composited
// cell grid. Implementations exist for tcell (real terminals) and for a
// simulation screen (tests).
package backend

import "github.com/odvcencio/cellkit/pkg/terminal"

// Backend is the terminal abstraction layer.
type Backend interface {
	// Init initializes the backend (enters alt screen, raw mode, etc).
	Init() error

	// Fini cleans up the backend (restores terminal state).
	Fini()

	// Size returns the current terminal dimensions.
	Size() (width, height int)

	// SetContent sets a cell at position (x, y) with the given rune and
	// style. The comb parameter contains combining characters (can be nil).
	SetContent(x, y int, mainc rune, comb []rune, style Style)

	// Show synchronizes the internal buffer to the terminal.
	Show()

	// Clear clears the screen.
	Clear()

	// HideCursor hides the terminal cursor.
	HideCursor()

	// ShowCursor shows the terminal cursor at the given position.
	ShowCursor(x, y int)

	// PollEvent blocks until an event is available and returns it.
	// Returns nil if the backend is shutting down.
	PollEvent() terminal.Event

	// PostEvent injects an event into the event queue.
	PostEvent(ev terminal.Event) error

	// SetClipboard asks the terminal to place data on the system
	// clipboard. Payload bytes are owned by the caller.
	SetClipboard(data []byte) error

	// Beep emits an audible bell.
	Beep()

	// Sync forces a full redraw on next Show().
	Sync()
}

// SchemeProber is an optional Backend capability: backends that can detect
// the terminal's background lightness implement it, and hosts use it to
// deliver the initial ColorSchemeEvent.
type SchemeProber interface {
	ColorScheme() terminal.ColorScheme
}

// RenderTarget is the subset of Backend the compositor writes cells to.
type RenderTarget interface {
	Size() (width, height int)
	SetContent(x, y int, mainc rune, comb []rune, style Style)
}

// SubTarget wraps a RenderTarget with an offset and clip rectangle, for
// rendering into a sub-region of the screen.
type SubTarget struct {
	parent  RenderTarget
	offsetX int
	offsetY int
	width   int
	height  int
}

// NewSubTarget creates a sub-region of a RenderTarget.
func NewSubTarget(parent RenderTarget, x, y, w, h int) *SubTarget {
	return &SubTarget{
		parent:  parent,
		offsetX: x,
		offsetY: y,
		width:   w,
		height:  h,
	}
}

// Size returns the sub-target dimensions.
func (s *SubTarget) Size() (width, height int) {
	return s.width, s.height
}

// SetContent sets content with coordinates relative to the sub-target.
// Writes outside the sub-region are dropped.
func (s *SubTarget) SetContent(x, y int, mainc rune, comb []rune, style Style) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.parent.SetContent(s.offsetX+x, s.offsetY+y, mainc, comb, style)
}
