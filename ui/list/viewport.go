package list

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// frameDuration matches the default Bubble Tea renderer rate (60 FPS).
const frameDuration = time.Second / 60

// FrameMsg marks a render-frame boundary for one list. ID keeps frames of
// different lists apart.
type FrameMsg struct {
	ID int64
}

// FrameScheduler returns a command that delivers msg on the next frame.
type FrameScheduler func(msg tea.Msg) tea.Cmd

// NextFrame schedules msg one renderer frame from now.
func NextFrame(msg tea.Msg) tea.Cmd {
	return tea.Tick(frameDuration, func(time.Time) tea.Msg { return msg })
}

// Tracker owns the list's ViewportState. Scroll updates are coalesced to at
// most one per frame: the first ScrollTo in a frame schedules a FrameMsg and
// later ones only overwrite the pending offset. Resizes apply immediately.
type Tracker struct {
	id       int64
	state    ViewportState
	schedule FrameScheduler

	pending       bool
	pendingOffset int

	listeners map[int]func(ViewportState)
	nextSub   int
}

// NewTracker returns a tracker for the list identified by id. A nil schedule
// uses NextFrame.
func NewTracker(id int64, extent int, schedule FrameScheduler) *Tracker {
	if schedule == nil {
		schedule = NextFrame
	}
	return &Tracker{
		id:        id,
		state:     ViewportState{Extent: extent},
		schedule:  schedule,
		listeners: make(map[int]func(ViewportState)),
	}
}

// State returns the last flushed viewport state.
func (t *Tracker) State() ViewportState { return t.state }

// Pending reports whether a frame is scheduled.
func (t *Tracker) Pending() bool { return t.pending }

// PendingOffset returns the newest offset, flushed or not.
func (t *Tracker) PendingOffset() int {
	if t.pending {
		return t.pendingOffset
	}
	return t.state.Offset
}

// ScrollTo records offset. It returns a frame command only when no frame is
// already pending; otherwise the event is folded into the scheduled one.
func (t *Tracker) ScrollTo(offset int) tea.Cmd {
	offset = max(offset, 0)
	t.pendingOffset = offset
	if t.pending {
		return nil
	}
	t.pending = true
	return t.schedule(FrameMsg{ID: t.id})
}

// Flush applies the pending offset if msg belongs to this tracker. It
// reports whether listeners were notified.
func (t *Tracker) Flush(msg FrameMsg) bool {
	if msg.ID != t.id || !t.pending {
		return false
	}
	t.pending = false
	t.state.Offset = t.pendingOffset
	t.notify()
	return true
}

// Resize applies a new container extent right away. Resizes are rare and
// must not wait for a frame.
func (t *Tracker) Resize(extent int) {
	if extent == t.state.Extent {
		return
	}
	t.state.Extent = extent
	t.notify()
}

// Jump sets the offset synchronously, dropping any pending scroll. Used when
// the content itself changes (refresh resets to the top).
func (t *Tracker) Jump(offset int) {
	t.pending = false
	t.pendingOffset = max(offset, 0)
	t.state.Offset = t.pendingOffset
	t.notify()
}

// Subscribe registers fn for viewport updates and returns its unsubscribe
// function.
func (t *Tracker) Subscribe(fn func(ViewportState)) (unsubscribe func()) {
	id := t.nextSub
	t.nextSub++
	t.listeners[id] = fn
	return func() { delete(t.listeners, id) }
}

// Close drops every listener and any pending frame.
func (t *Tracker) Close() {
	t.pending = false
	clear(t.listeners)
}

func (t *Tracker) notify() {
	for _, fn := range t.listeners {
		fn(t.state)
	}
}
