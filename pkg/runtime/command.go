package runtime

import "time"

// Command is a deferred, declarative request for a side effect, returned
// from event handlers instead of direct mutation of shared state. The set
// is closed so the lifecycle manager can apply every case exhaustively.
type Command interface {
	isCommand()
}

// RequestFocus asks the lifecycle manager to move focus to a widget.
type RequestFocus struct {
	Widget Widget
}

func (RequestFocus) isCommand() {}

// Tick schedules a one-shot TickEvent for a widget after a delay.
type Tick struct {
	Widget Widget
	Delay  time.Duration
}

func (Tick) isCommand() {}

// CopyToClipboard asks the host to place bytes on the system clipboard.
// Construct it with NewCopyToClipboard so the payload is copied into the
// event scope; source buffers may be transient.
type CopyToClipboard struct {
	Data []byte
}

func (CopyToClipboard) isCommand() {}

// NewCopyToClipboard copies data into the event scope and wraps it. The
// copy counts against the scope budget, so an oversized payload fails with
// ErrScopeExhausted like any other scope allocation.
func NewCopyToClipboard(scope *Scope, data []byte) (CopyToClipboard, error) {
	copied, err := scope.CopyBytes(data)
	if err != nil {
		return CopyToClipboard{}, err
	}
	return CopyToClipboard{Data: copied}, nil
}

// Redraw requests a full redraw on the next host loop iteration.
type Redraw struct{}

func (Redraw) isCommand() {}
