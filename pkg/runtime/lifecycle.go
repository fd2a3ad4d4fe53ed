package runtime

import (
	"fmt"
	"time"

	"github.com/odvcencio/cellkit/pkg/terminal"
)

// LifecycleState tracks where a widget is in its lifecycle.
type LifecycleState int

const (
	StateUninitialized LifecycleState = iota
	StateInitialized
	StateFocused
	StateBlurred
	StateDestroyed
)

// String returns the state name.
func (s LifecycleState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitialized:
		return "initialized"
	case StateFocused:
		return "focused"
	case StateBlurred:
		return "blurred"
	case StateDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

type widgetRecord struct {
	state        LifecycleState
	bounds       Rect
	canFocus     bool
	tickInterval time.Duration
}

type timerEntry struct {
	id       uint64
	widget   Widget
	interval time.Duration // zero for one-shot timers
	deadline time.Time
}

// LifecycleManager is the single owner of cross-widget shared state: the
// widget registry, the one focus slot, and the timer list. Widgets never
// mutate this state directly; they request changes through Commands, which
// the manager applies after each dispatch completes.
//
// The manager is single-threaded by contract. A multi-threaded host must
// serialize calls into it externally.
type LifecycleManager struct {
	records map[Widget]*widgetRecord
	order   []Widget
	focused Widget

	timers      []*timerEntry
	nextTimerID uint64

	scopeBudget int
	now         func() time.Time

	// CopyFunc receives CopyToClipboard payloads. Unset means copies are
	// dropped.
	CopyFunc func(data []byte) error

	// RedrawFunc is invoked for Redraw commands.
	RedrawFunc func()
}

// NewLifecycleManager creates an empty manager. Multiple managers can
// coexist, each owning an independent widget tree.
func NewLifecycleManager() *LifecycleManager {
	return &LifecycleManager{
		records:     make(map[Widget]*widgetRecord),
		scopeBudget: DefaultScopeBudget,
		now:         time.Now,
	}
}

// SetScopeBudget overrides the per-event scope budget.
func (m *LifecycleManager) SetScopeBudget(cells int) {
	m.scopeBudget = cells
}

// Register adds a widget to the registry in the uninitialized state.
// Re-registering an existing widget updates its bounds and focusability.
func (m *LifecycleManager) Register(w Widget, bounds Rect, canFocus bool) {
	if w == nil {
		return
	}
	if rec, ok := m.records[w]; ok {
		rec.bounds = bounds
		rec.canFocus = canFocus
		return
	}
	m.records[w] = &widgetRecord{
		state:    StateUninitialized,
		bounds:   bounds,
		canFocus: canFocus,
	}
	m.order = append(m.order, w)
}

// State returns a widget's lifecycle state. Unregistered widgets report
// StateDestroyed.
func (m *LifecycleManager) State(w Widget) LifecycleState {
	if rec, ok := m.records[w]; ok {
		return rec.state
	}
	return StateDestroyed
}

// Bounds returns a widget's registered bounds.
func (m *LifecycleManager) Bounds(w Widget) (Rect, bool) {
	rec, ok := m.records[w]
	if !ok {
		return ZeroRect, false
	}
	return rec.bounds, true
}

// Initialize fires the init event for a widget, exactly once. Calling it
// again is a no-op.
func (m *LifecycleManager) Initialize(w Widget) error {
	rec, ok := m.records[w]
	if !ok || rec.state != StateUninitialized {
		return nil
	}
	rec.state = StateInitialized
	if err := m.DispatchEvent(w, terminal.InitEvent{}); err != nil {
		return fmt.Errorf("init %T: %w", w, err)
	}
	return nil
}

// InitializeAll initializes every registered widget.
func (m *LifecycleManager) InitializeAll() error {
	for _, w := range m.order {
		if err := m.Initialize(w); err != nil {
			return err
		}
	}
	return nil
}

// Focused returns the widget currently holding focus, or nil.
func (m *LifecycleManager) Focused() Widget {
	return m.focused
}

// HasFocus reports whether the widget holds focus.
func (m *LifecycleManager) HasFocus(w Widget) bool {
	return w != nil && m.focused == w
}

// SetFocus moves focus to the given widget, or clears it when w is nil.
// The previous holder receives focus-out and the new one focus-in; at most
// one widget holds focus at any time.
//
// Requesting focus for a widget that is unregistered, uninitialized, or
// not focusable is a full no-op: the previous holder keeps focus. Clearing
// focus deliberately is done with SetFocus(nil).
func (m *LifecycleManager) SetFocus(w Widget) error {
	if w != nil {
		rec, ok := m.records[w]
		if !ok || !rec.canFocus {
			return nil
		}
		if rec.state == StateUninitialized || rec.state == StateDestroyed {
			return nil
		}
	}
	if m.focused == w {
		return nil
	}

	if prev := m.focused; prev != nil {
		if rec, ok := m.records[prev]; ok {
			rec.state = StateBlurred
		}
		m.focused = nil
		if err := m.DispatchEvent(prev, terminal.FocusOutEvent{}); err != nil {
			return fmt.Errorf("focus out %T: %w", prev, err)
		}
	}

	if w != nil {
		m.records[w].state = StateFocused
		m.focused = w
		if err := m.DispatchEvent(w, terminal.FocusInEvent{}); err != nil {
			return fmt.Errorf("focus in %T: %w", w, err)
		}
	}
	return nil
}

// ScheduleTickEvents registers a periodic timer for a widget and returns
// its id. Ids increase monotonically across all timers. The host must
// call ProcessTicks every loop iteration; ticking is cooperative polling,
// not an interrupt.
func (m *LifecycleManager) ScheduleTickEvents(w Widget, interval time.Duration) (uint64, error) {
	rec, ok := m.records[w]
	if !ok {
		return 0, fmt.Errorf("schedule ticks: widget %T not registered", w)
	}
	if interval <= 0 {
		return 0, fmt.Errorf("schedule ticks: interval %v must be positive", interval)
	}
	rec.tickInterval = interval

	m.nextTimerID++
	m.timers = append(m.timers, &timerEntry{
		id:       m.nextTimerID,
		widget:   w,
		interval: interval,
		deadline: m.now().Add(interval),
	})
	return m.nextTimerID, nil
}

// scheduleOneShot arms a single tick after delay, from a Tick command.
func (m *LifecycleManager) scheduleOneShot(w Widget, delay time.Duration) {
	if _, ok := m.records[w]; !ok {
		return
	}
	m.nextTimerID++
	m.timers = append(m.timers, &timerEntry{
		id:       m.nextTimerID,
		widget:   w,
		deadline: m.now().Add(delay),
	})
}

// ProcessTicks fires every due timer. Periodic timers reset their
// deadline from the current time; one-shot timers are removed.
func (m *LifecycleManager) ProcessTicks() error {
	now := m.now()

	var due []*timerEntry
	kept := m.timers[:0]
	for _, t := range m.timers {
		if !t.deadline.After(now) {
			due = append(due, t)
			if t.interval > 0 {
				t.deadline = now.Add(t.interval)
				kept = append(kept, t)
			}
		} else {
			kept = append(kept, t)
		}
	}
	m.timers = kept

	for _, t := range due {
		if _, ok := m.records[t.widget]; !ok {
			continue
		}
		if err := m.DispatchEvent(t.widget, terminal.TickEvent{Time: now}); err != nil {
			return fmt.Errorf("tick %T: %w", t.widget, err)
		}
	}
	return nil
}

// ActiveTimers returns the number of armed timers.
func (m *LifecycleManager) ActiveTimers() int {
	return len(m.timers)
}

// Resize updates a widget's bounds and delivers a resize event sized to
// the new bounds.
func (m *LifecycleManager) Resize(w Widget, bounds Rect) error {
	rec, ok := m.records[w]
	if !ok {
		return nil
	}
	rec.bounds = bounds
	if rec.state == StateUninitialized {
		return nil
	}
	ev := terminal.ResizeEvent{Width: bounds.Width, Height: bounds.Height}
	if err := m.DispatchEvent(w, ev); err != nil {
		return fmt.Errorf("resize %T: %w", w, err)
	}
	return nil
}

// Destroy tears a widget down: it releases focus if held, cancels the
// widget's timers, delivers the final destroy event, and removes the
// record. Destroying an unknown widget is a no-op.
func (m *LifecycleManager) Destroy(w Widget) error {
	rec, ok := m.records[w]
	if !ok {
		return nil
	}

	if m.focused == w {
		m.focused = nil
	}
	m.cancelTimers(w)

	wasInitialized := rec.state != StateUninitialized
	rec.state = StateDestroyed
	delete(m.records, w)
	for i, other := range m.order {
		if other == w {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}

	if wasInitialized {
		if err := m.dispatchTo(w, rec, terminal.DestroyEvent{}); err != nil {
			return fmt.Errorf("destroy %T: %w", w, err)
		}
	}
	return nil
}

// Shutdown destroys every registered widget, in reverse registration
// order so children torn down by parents are already gone.
func (m *LifecycleManager) Shutdown() error {
	for len(m.order) > 0 {
		w := m.order[len(m.order)-1]
		if err := m.Destroy(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *LifecycleManager) cancelTimers(w Widget) {
	kept := m.timers[:0]
	for _, t := range m.timers {
		if t.widget != w {
			kept = append(kept, t)
		}
	}
	m.timers = kept
}

// DispatchEvent delivers one event to a registered widget through the
// routing table, then applies every returned command. The event scope is
// created for the dispatch and released when it completes.
func (m *LifecycleManager) DispatchEvent(w Widget, ev terminal.Event) error {
	rec, ok := m.records[w]
	if !ok {
		return nil
	}
	return m.dispatchTo(w, rec, ev)
}

func (m *LifecycleManager) dispatchTo(w Widget, rec *widgetRecord, ev terminal.Event) error {
	scope := NewScopeWithBudget(m.scopeBudget)
	defer scope.Release()

	ctx := EventContext{
		Event:    ev,
		Scope:    scope,
		Bounds:   rec.bounds,
		HasFocus: rec.state == StateFocused,
		CanFocus: rec.canFocus,
	}

	cmds, err := DispatchEvent(w, ctx)
	if err != nil {
		return err
	}
	return m.applyCommands(cmds)
}

// Broadcast delivers an event to every registered widget in registration
// order. Routing still applies per widget.
func (m *LifecycleManager) Broadcast(ev terminal.Event) error {
	// Snapshot: command application may destroy widgets mid-broadcast.
	targets := append([]Widget(nil), m.order...)
	for _, w := range targets {
		if err := m.DispatchEvent(w, ev); err != nil {
			return err
		}
	}
	return nil
}

// applyCommands applies every command a dispatch returned. The set is
// closed; each case is handled here.
func (m *LifecycleManager) applyCommands(cmds []Command) error {
	for _, cmd := range cmds {
		switch c := cmd.(type) {
		case RequestFocus:
			if err := m.SetFocus(c.Widget); err != nil {
				return err
			}
		case Tick:
			m.scheduleOneShot(c.Widget, c.Delay)
		case CopyToClipboard:
			if m.CopyFunc != nil {
				if err := m.CopyFunc(c.Data); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
			}
		case Redraw:
			if m.RedrawFunc != nil {
				m.RedrawFunc()
			}
		default:
			return fmt.Errorf("unknown command %T", cmd)
		}
	}
	return nil
}
