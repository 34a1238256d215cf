package list

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
)

// RefreshPhase is the pull-to-refresh state.
type RefreshPhase int

const (
	RefreshIdle       RefreshPhase = iota // nothing happening
	RefreshPulling                        // dragging, below threshold
	RefreshArmed                          // dragging, past threshold
	RefreshRefreshing                     // reload in flight
	RefreshSettling                       // reload done, showing the outcome
)

func (p RefreshPhase) String() string {
	switch p {
	case RefreshIdle:
		return "idle"
	case RefreshPulling:
		return "pulling"
	case RefreshArmed:
		return "armed"
	case RefreshRefreshing:
		return "refreshing"
	case RefreshSettling:
		return "settling"
	default:
		return "unknown"
	}
}

const (
	DefaultPullThreshold  = 4
	DefaultPullResistance = 0.5
	DefaultSettleDuration = 600 * time.Millisecond
)

// refreshMsg carries a finished reload back into Update.
type refreshMsg struct {
	id  int64
	gen uint64
	res Page
	err error
}

// settleMsg ends the settling hold. seq guards against stale timers.
type settleMsg struct {
	id  int64
	seq uint64
}

// RefreshController drives the pull-to-refresh state machine:
//
//	idle -> pulling <-> armed -> refreshing -> settling -> idle
//
// Refreshing is only reachable from armed, and only left through Settle.
type RefreshController struct {
	id         int64
	threshold  float64
	resistance float64
	settle     time.Duration

	phase    RefreshPhase
	distance float64
	err      error // outcome of the last reload, shown while settling

	settleSeq uint64
	cancel    context.CancelFunc
}

// NewRefreshController returns an idle controller.
func NewRefreshController(id int64, threshold int, resistance float64, settle time.Duration) *RefreshController {
	if threshold <= 0 {
		threshold = DefaultPullThreshold
	}
	if resistance <= 0 || resistance > 1 {
		resistance = DefaultPullResistance
	}
	if settle < 0 {
		settle = DefaultSettleDuration
	}
	return &RefreshController{
		id:         id,
		threshold:  float64(threshold),
		resistance: resistance,
		settle:     settle,
	}
}

// Phase returns the current phase.
func (c *RefreshController) Phase() RefreshPhase { return c.phase }

// Distance returns the current (resisted) pull distance in rows.
func (c *RefreshController) Distance() float64 { return c.distance }

// Threshold returns the arming distance.
func (c *RefreshController) Threshold() float64 { return c.threshold }

// LastErr returns the error of the last reload, nil on success.
func (c *RefreshController) LastErr() error { return c.err }

// Busy reports whether a reload is in flight.
func (c *RefreshController) Busy() bool { return c.phase == RefreshRefreshing }

// Begin starts a pull gesture. It only succeeds when the list is scrolled to
// the top and no reload is running; a gesture during settling cuts the hold
// short.
func (c *RefreshController) Begin(atTop bool) bool {
	switch c.phase {
	case RefreshRefreshing:
		return false
	case RefreshSettling:
		c.toIdle()
	case RefreshPulling, RefreshArmed:
		return true
	}
	if !atTop {
		return false
	}
	c.phase = RefreshPulling
	c.distance = 0
	return true
}

// Drag sets the raw drag distance of the current gesture. The controller
// applies resistance and moves between pulling and armed in both
// directions.
func (c *RefreshController) Drag(raw float64) {
	if c.phase != RefreshPulling && c.phase != RefreshArmed {
		return
	}
	c.distance = max(raw, 0) * c.resistance
	if c.distance > c.threshold {
		c.phase = RefreshArmed
	} else {
		c.phase = RefreshPulling
	}
}

// Release ends the gesture. It reports true when the list should reload,
// which happens only when released while armed.
func (c *RefreshController) Release() bool {
	switch c.phase {
	case RefreshArmed:
		c.phase = RefreshRefreshing
		c.distance = 0
		c.err = nil
		return true
	case RefreshPulling:
		c.toIdle()
	}
	return false
}

// Trigger runs a programmatic refresh through the same machine. It is a
// no-op unless the controller is idle or mid-pull.
func (c *RefreshController) Trigger() bool {
	switch c.phase {
	case RefreshIdle, RefreshPulling, RefreshArmed:
		c.phase = RefreshArmed
		return c.Release()
	case RefreshSettling:
		c.toIdle()
		c.phase = RefreshArmed
		return c.Release()
	}
	return false
}

// Start issues the reload for an armed release. fetch is called with a
// context derived from parent that Cancel aborts.
func (c *RefreshController) Start(parent context.Context, fetch PageFetcher, page int, gen uint64) tea.Cmd {
	if c.phase != RefreshRefreshing || fetch == nil {
		return nil
	}
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	c.cancel = cancel
	id := c.id
	return func() tea.Msg {
		res, err := fetch(ctx, page)
		if err == nil && ctx.Err() != nil {
			err = ctx.Err()
		}
		return refreshMsg{id: id, gen: gen, res: res, err: err}
	}
}

// Settle moves refreshing to settling once the reload finished and returns
// the command that ends the hold.
func (c *RefreshController) Settle(err error) tea.Cmd {
	if c.phase != RefreshRefreshing {
		return nil
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.phase = RefreshSettling
	c.err = err
	c.settleSeq++
	if c.settle == 0 {
		c.toIdle()
		return nil
	}
	id, seq := c.id, c.settleSeq
	return tea.Tick(c.settle, func(time.Time) tea.Msg { return settleMsg{id: id, seq: seq} })
}

// Drop abandons a reload that cannot run, e.g. a list without a page
// source, and returns to idle without settling.
func (c *RefreshController) Drop() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.err = nil
	c.toIdle()
}

// Finish handles the settle timer.
func (c *RefreshController) Finish(msg settleMsg) bool {
	if msg.id != c.id || msg.seq != c.settleSeq || c.phase != RefreshSettling {
		return false
	}
	c.toIdle()
	return true
}

// Cancel aborts a running reload. The machine still has to settle.
func (c *RefreshController) Cancel() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *RefreshController) toIdle() {
	c.phase = RefreshIdle
	c.distance = 0
}
