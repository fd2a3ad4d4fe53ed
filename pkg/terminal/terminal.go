// Package terminal provides the input event types consumed by the widget
// runtime. Backends translate raw terminal input into these variants; the
// lifecycle manager synthesizes the rest (init, tick, focus, destroy).
package terminal

import "time"

// Event represents a terminal or lifecycle input event.
type Event interface {
	eventMarker()
}

// InitEvent is delivered exactly once, when a widget is initialized.
type InitEvent struct{}

func (InitEvent) eventMarker() {}

// TickEvent is delivered when a scheduled timer fires.
type TickEvent struct {
	Time time.Time
}

func (TickEvent) eventMarker() {}

// FocusInEvent is delivered when a widget gains focus.
type FocusInEvent struct{}

func (FocusInEvent) eventMarker() {}

// FocusOutEvent is delivered when a widget loses focus. It is also
// broadcast when the hosting terminal itself loses focus.
type FocusOutEvent struct{}

func (FocusOutEvent) eventMarker() {}

// DestroyEvent is the last event a widget ever receives.
type DestroyEvent struct{}

func (DestroyEvent) eventMarker() {}

// KeyEvent represents a key press or release.
type KeyEvent struct {
	Key     Key
	Rune    rune
	Alt     bool
	Ctrl    bool
	Shift   bool
	Release bool
}

func (KeyEvent) eventMarker() {}

// ResizeEvent indicates the terminal size changed.
type ResizeEvent struct {
	Width  int
	Height int
}

func (ResizeEvent) eventMarker() {}

// MouseEvent represents a pointer input event.
type MouseEvent struct {
	X, Y   int
	Button MouseButton
	Action MouseAction
	Alt    bool
	Ctrl   bool
	Shift  bool
}

func (MouseEvent) eventMarker() {}

// MouseEnterEvent is synthesized when the pointer enters a widget's bounds.
type MouseEnterEvent struct{}

func (MouseEnterEvent) eventMarker() {}

// MouseLeaveEvent is synthesized when the pointer leaves a widget's bounds.
type MouseLeaveEvent struct{}

func (MouseLeaveEvent) eventMarker() {}

// PasteStartEvent marks the beginning of a bracketed paste.
type PasteStartEvent struct{}

func (PasteStartEvent) eventMarker() {}

// PasteEndEvent marks the end of a bracketed paste.
type PasteEndEvent struct{}

func (PasteEndEvent) eventMarker() {}

// PasteEvent carries bracketed paste content.
type PasteEvent struct {
	Text string
}

func (PasteEvent) eventMarker() {}

// ColorScheme indicates the terminal's reported background preference.
type ColorScheme int

const (
	SchemeDark ColorScheme = iota
	SchemeLight
)

// ColorSchemeEvent indicates the terminal color scheme changed.
type ColorSchemeEvent struct {
	Scheme ColorScheme
}

func (ColorSchemeEvent) eventMarker() {}

// ColorReportEvent carries a terminal color query response. It is consumed
// by the backend layer and never routed to widgets.
type ColorReportEvent struct {
	Index   int
	R, G, B uint8
}

func (ColorReportEvent) eventMarker() {}

// UserEvent carries an application-defined payload.
type UserEvent struct {
	Payload any
}

func (UserEvent) eventMarker() {}

// MouseButton identifies which mouse button was involved.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
	MouseWheelLeft
	MouseWheelRight
)

// MouseAction identifies what happened with the mouse.
type MouseAction int

const (
	MousePress MouseAction = iota
	MouseRelease
	MouseMove
)

// Key represents special keys.
type Key int

const (
	KeyNone Key = iota
	KeyRune     // Regular character
	KeyEnter
	KeyBackspace
	KeyTab
	KeyEscape
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyDelete
	KeyInsert
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyCtrlC
	KeyCtrlD
	KeyCtrlL
	KeyCtrlU
	KeyCtrlW
	KeyCtrlZ
)
