package list

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"
)

// DefaultTriggerDistance is how close (in items) the window's last index may
// get to the end of the list before the next page is requested.
const DefaultTriggerDistance = 5

// LoadState is the pagination status exposed to callers.
type LoadState struct {
	Loading bool
	HasMore bool
	// Page is the last successfully loaded page; 0 until the first load.
	Page int
	Err  error
}

// pageMsg carries a finished page fetch back into Update.
type pageMsg struct {
	id   int64
	gen  uint64
	seq  uint64
	page int
	res  Page
	err  error
}

// Pager decides when to fetch the next page and applies the results. At most
// one request is in flight; starting a new one aborts the old one.
type Pager struct {
	id        int64
	fetch     PageFetcher
	threshold int
	parent    context.Context

	state  LoadState
	seq    uint64
	cancel context.CancelFunc
}

// NewPager returns a pager whose requests derive from parent. threshold < 0
// selects DefaultTriggerDistance.
func NewPager(parent context.Context, id int64, fetch PageFetcher, threshold, initialPage int) *Pager {
	if threshold < 0 {
		threshold = DefaultTriggerDistance
	}
	return &Pager{
		id:        id,
		fetch:     fetch,
		threshold: threshold,
		parent:    parent,
		state:     LoadState{HasMore: true, Page: max(initialPage, 1) - 1},
	}
}

// State returns the current load state.
func (p *Pager) State() LoadState { return p.state }

// ShouldLoad reports whether the window r over count items is close enough
// to the end to fetch more. An empty list never qualifies; the caller has to
// ask for the first page explicitly.
func (p *Pager) ShouldLoad(r Range, count int) bool {
	if count == 0 || r.Empty() || p.fetch == nil {
		return false
	}
	if p.state.Loading || !p.state.HasMore {
		return false
	}
	return r.End >= count-1-p.threshold
}

// Begin starts fetching the page after State().Page for generation gen.
func (p *Pager) Begin(gen uint64) tea.Cmd {
	if p.fetch == nil {
		return nil
	}
	p.abortInFlight()

	ctx, cancel := context.WithCancel(p.parent)
	p.cancel = cancel
	p.seq++
	p.state.Loading = true

	id, seq, page, fetch := p.id, p.seq, p.state.Page+1, p.fetch
	return func() tea.Msg {
		res, err := fetch(ctx, page)
		if err == nil && ctx.Err() != nil {
			err = ctx.Err()
		}
		return pageMsg{id: id, gen: gen, seq: seq, page: page, res: res, err: err}
	}
}

// Complete applies a finished fetch. It returns the items to append and
// whether msg was applied at all; stale generations, superseded requests
// and cancellations are dropped.
func (p *Pager) Complete(msg pageMsg, gen uint64) ([]Item, bool) {
	if msg.gen != gen || msg.seq != p.seq || !p.state.Loading {
		return nil, false
	}
	p.state.Loading = false
	p.release()
	if msg.err != nil {
		if errors.Is(msg.err, context.Canceled) {
			return nil, false
		}
		p.state.Err = msg.err
		return nil, true
	}
	p.state.Err = nil
	p.state.Page = msg.page
	p.state.HasMore = msg.res.HasMore
	return msg.res.Items, true
}

// Abort cancels the in-flight request, if any. Its result will be ignored.
func (p *Pager) Abort() {
	p.abortInFlight()
	p.state.Loading = false
}

// Reset puts the pager back at page after a refresh replaced the items.
func (p *Pager) Reset(page int, hasMore bool) {
	p.Abort()
	p.state = LoadState{Page: page, HasMore: hasMore}
}

// Fail records err without touching the page counter.
func (p *Pager) Fail(err error) { p.state.Err = err }

func (p *Pager) abortInFlight() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
		// Bump seq so a result that raced the cancel is discarded.
		p.seq++
	}
}

func (p *Pager) release() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}
