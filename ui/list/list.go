// Package list provides a virtualized, incrementally loaded list component
// for the feed screens.
//
// Key properties:
//   - Only the items inside the visible range (plus overscan) are rendered,
//     so cost is O(window) no matter how many items are loaded.
//   - Fixed or per-item extents; per-item extents are memoized and laid out
//     in a flat cumulative-offset array that grows append-only.
//   - Scroll handling is coalesced to one recompute per frame.
//   - Infinite pagination with a single in-flight request, and a
//     pull-to-refresh state machine that replaces the items and invalidates
//     stale page loads through a generation counter.
package list

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/miosa/osa-feed/style"
	"github.com/miosa/osa-feed/ui/anim"
	"github.com/miosa/osa-feed/ui/common"
)

// ---------------------------------------------------------------------------
// Options
// ---------------------------------------------------------------------------

// Options is the single configuration surface of a list.
type Options struct {
	// Overscan is how many extra items are materialized above and below the
	// visible ones.
	Overscan int
	// PullThreshold is the resisted pull distance, in rows, that arms a
	// refresh.
	PullThreshold int
	// PullResistance scales the raw drag distance (0 < r <= 1).
	PullResistance float64
	// PageLoadTriggerDistance is how many items from the end the window may
	// reach before the next page is requested.
	PageLoadTriggerDistance int
	// InitialPage is the page a refresh reloads. Pages are 1-based.
	InitialPage int
	// RowExtent is the fixed item extent used when no extent func is given.
	RowExtent int
	// LeadPadding and TrailPadding add rows above the first and below the
	// last item.
	LeadPadding  int
	TrailPadding int
	// SettleDuration is how long the refresh outcome stays on screen.
	SettleDuration time.Duration
	// WheelStep is the number of rows one wheel notch scrolls (or pulls).
	WheelStep int
	// PullReleaseDelay ends a wheel-driven pull when no further notches
	// arrive; wheels have no release event.
	PullReleaseDelay time.Duration
}

// DefaultOptions returns the stock list configuration.
func DefaultOptions() Options {
	return Options{
		Overscan:                3,
		PullThreshold:           DefaultPullThreshold,
		PullResistance:          DefaultPullResistance,
		PageLoadTriggerDistance: DefaultTriggerDistance,
		InitialPage:             1,
		RowExtent:               1,
		SettleDuration:          DefaultSettleDuration,
		WheelStep:               3,
		PullReleaseDelay:        250 * time.Millisecond,
	}
}

func (o Options) normalized() Options {
	d := DefaultOptions()
	if o.Overscan < 0 {
		o.Overscan = d.Overscan
	}
	if o.PullThreshold <= 0 {
		o.PullThreshold = d.PullThreshold
	}
	if o.PullResistance <= 0 || o.PullResistance > 1 {
		o.PullResistance = d.PullResistance
	}
	if o.PageLoadTriggerDistance < 0 {
		o.PageLoadTriggerDistance = d.PageLoadTriggerDistance
	}
	if o.InitialPage < 1 {
		o.InitialPage = d.InitialPage
	}
	if o.RowExtent < 1 {
		o.RowExtent = d.RowExtent
	}
	if o.SettleDuration < 0 {
		o.SettleDuration = d.SettleDuration
	}
	if o.WheelStep < 1 {
		o.WheelStep = d.WheelStep
	}
	if o.PullReleaseDelay <= 0 {
		o.PullReleaseDelay = d.PullReleaseDelay
	}
	return o
}

// Option is a functional option for New.
type Option func(*Model)

// WithSize sets the initial viewport size.
func WithSize(w, h int) Option {
	return func(m *Model) { m.width, m.height = w, h }
}

// WithOptions replaces the list configuration.
func WithOptions(o Options) Option {
	return func(m *Model) { m.opts = o }
}

// WithFetcher sets the page source.
func WithFetcher(f PageFetcher) Option {
	return func(m *Model) { m.fetch = f }
}

// WithRenderer sets the item renderer.
func WithRenderer(r Renderer) Option {
	return func(m *Model) { m.render = r }
}

// WithExtent switches the list to per-index extents.
func WithExtent(fn ExtentFunc) Option {
	return func(m *Model) { m.extentFn = fn }
}

// WithItemExtent switches the list to extents measured from the item itself
// at the current width.
func WithItemExtent(fn ItemExtentFunc) Option {
	return func(m *Model) { m.itemExtent = fn }
}

// WithLogger routes engine diagnostics to l.
func WithLogger(l *log.Logger) Option {
	return func(m *Model) { m.log = l }
}

// WithContext sets the parent of every fetch context. Cancelling it aborts
// all in-flight requests, as does Close.
func WithContext(ctx context.Context) Option {
	return func(m *Model) { m.parent = ctx }
}

// WithFrameScheduler overrides how frame boundaries are scheduled.
func WithFrameScheduler(s FrameScheduler) Option {
	return func(m *Model) { m.schedule = s }
}

// WithScrollbar toggles the one-column scrollbar.
func WithScrollbar(on bool) Option {
	return func(m *Model) { m.scrollbar = on }
}

// ---------------------------------------------------------------------------
// Messages emitted to the parent
// ---------------------------------------------------------------------------

// LoadErrorMsg reports a failed page load or refresh so the parent can show
// it. The list has already recorded it in LoadState.
type LoadErrorMsg struct {
	ID      int64
	Page    int
	Refresh bool
	Err     error
}

// RefreshedMsg reports a successful refresh with the new first page.
type RefreshedMsg struct {
	ID      int64
	Items   []Item
	HasMore bool
}

// PageLoadedMsg reports a page appended by pagination or the initial Load.
type PageLoadedMsg struct {
	ID    int64
	Page  int
	Count int // items loaded in total
}

// pullReleaseMsg ends a wheel-driven pull after a quiet period.
type pullReleaseMsg struct {
	id  int64
	seq uint64
}

// ---------------------------------------------------------------------------
// Model
// ---------------------------------------------------------------------------

var idCounter atomic.Int64

// gesture tracks an in-progress drag or wheel pull.
type gesture struct {
	dragging    bool
	startY      int
	startOffset int
	pulling     bool // drag turned into a pull
	wheelPull   int  // raw rows pulled by the wheel
	wheelSeq    uint64
}

// Model is a virtualized list bound to one feed. Construct with New and call
// Close when the owning screen goes away.
type Model struct {
	id     int64
	opts   Options
	width  int
	height int

	parent context.Context
	ctx    context.Context
	cancel context.CancelFunc

	fetch      PageFetcher
	render     Renderer
	extentFn   ExtentFunc
	itemExtent ItemExtentFunc
	schedule   FrameScheduler
	log        *log.Logger
	scrollbar  bool

	store   *Store
	layout  *Layout
	calc    *RangeCalculator
	tracker *Tracker
	pager   *Pager
	refresh *RefreshController
	nodes   *nodeCache
	measure *int // width seen by item extent funcs

	window  Range
	footer  int // footer rows at the last sync
	spin    anim.Model
	gesture gesture
}

// New constructs a list with the supplied options.
func New(opts ...Option) Model {
	m := Model{
		id:     idCounter.Add(1),
		opts:   DefaultOptions(),
		parent: context.Background(),
	}
	for _, o := range opts {
		o(&m)
	}
	m.opts = m.opts.normalized()
	if m.log == nil {
		m.log = log.New(io.Discard, "", 0)
	}
	m.ctx, m.cancel = context.WithCancel(m.parent)
	m.measure = new(int)
	*m.measure = m.width

	m.store = NewStore(m.log)
	m.layout = NewLayout(m.newResolver())
	m.calc = NewRangeCalculator(m.opts.Overscan)
	m.tracker = NewTracker(m.id, m.height, m.schedule)
	m.pager = NewPager(m.ctx, m.id, m.fetch, m.opts.PageLoadTriggerDistance, m.opts.InitialPage)
	m.refresh = NewRefreshController(m.id, m.opts.PullThreshold, m.opts.PullResistance, m.opts.SettleDuration)
	m.nodes = newNodeCache()
	m.spin = anim.New("")
	m.window = EmptyRange
	return m
}

func (m *Model) newResolver() *ExtentResolver {
	var res *ExtentResolver
	switch {
	case m.itemExtent != nil:
		store, width, fn := m.store, m.measure, m.itemExtent
		res = NewVariableExtent(func(i int) int {
			it, ok := store.At(i)
			if !ok {
				return minExtent
			}
			return fn(it, *width)
		})
	case m.extentFn != nil:
		res = NewVariableExtent(m.extentFn)
	default:
		res = NewFixedExtent(m.opts.RowExtent)
	}
	res.SetEdgePadding(m.opts.LeadPadding, m.opts.TrailPadding)
	return res
}

// ID returns the list's message ID.
func (m Model) ID() int64 { return m.id }

// Init implements the component pattern; the caller starts loading with Load.
func (m Model) Init() tea.Cmd { return nil }

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

// Len returns the number of loaded items.
func (m Model) Len() int { return m.store.Len() }

// Items returns a copy of the loaded items.
func (m Model) Items() []Item { return m.store.Items() }

// LoadState returns the pagination state.
func (m Model) LoadState() LoadState { return m.pager.State() }

// RefreshPhase returns the pull-to-refresh phase.
func (m Model) RefreshPhase() RefreshPhase { return m.refresh.Phase() }

// Window returns the materialized index range.
func (m Model) Window() Range { return m.window }

// Viewport returns the flushed viewport state.
func (m Model) Viewport() ViewportState { return m.tracker.State() }

// Generation returns the store generation.
func (m Model) Generation() uint64 { return m.store.Generation() }

// ContentRows returns the full scroll extent, including the footer row.
func (m Model) ContentRows() int { return m.layout.Total() + m.footerRows() }

// Subscribe registers fn for viewport changes. Call the returned function to
// unsubscribe; Close drops all subscriptions.
func (m Model) Subscribe(fn func(ViewportState)) (unsubscribe func()) {
	return m.tracker.Subscribe(fn)
}

// ---------------------------------------------------------------------------
// Mutations
// ---------------------------------------------------------------------------

// SetSize updates the viewport. Height changes apply immediately; a width
// change drops cached renders and measured extents.
func (m *Model) SetSize(w, h int) tea.Cmd {
	if w != m.width {
		m.width = w
		*m.measure = w
		m.nodes.reset()
		if m.itemExtent != nil {
			m.layout.Resolver().Reset()
			m.layout.Rebuild(m.store.Len())
		}
	}
	m.height = h
	m.tracker.Resize(max(h, 0))
	m.sync()
	return m.maybePaginate()
}

// Load requests the first page. It is the caller's explicit initial load and
// does nothing once items are present or a load is running.
func (m *Model) Load() tea.Cmd {
	if m.store.Len() > 0 || m.pager.State().Loading || m.refresh.Busy() {
		return nil
	}
	return m.beginPage()
}

// Refresh reloads the first page through the refresh state machine, as if
// the user pulled past the threshold and let go.
func (m *Model) Refresh() tea.Cmd {
	if m.fetch == nil || !m.refresh.Trigger() {
		return nil
	}
	return m.startRefresh()
}

// Seed fills an empty, idle list with items (typically a cached first page)
// through the same replace path a refresh uses.
func (m *Model) Seed(items []Item, hasMore bool) bool {
	if m.store.Len() > 0 || m.pager.State().Loading || m.refresh.Busy() {
		return false
	}
	m.store.Invalidate()
	m.replace(items, hasMore)
	return true
}

// Remove deletes the item with key, e.g. after the user deleted it.
func (m *Model) Remove(key string) bool {
	i := m.store.Remove(key)
	if i < 0 {
		return false
	}
	m.layout.Remeasure(i, m.store.Len())
	m.sync()
	return true
}

// Close aborts all fetches and drops viewport subscriptions. The list must
// not be used afterwards.
func (m *Model) Close() {
	m.cancel()
	m.pager.Abort()
	m.refresh.Cancel()
	m.tracker.Close()
	m.spin.Stop()
}

// ---------------------------------------------------------------------------
// Scroll
// ---------------------------------------------------------------------------

// ScrollBy moves the viewport by delta rows; positive scrolls down.
func (m *Model) ScrollBy(delta int) tea.Cmd {
	return m.ScrollTo(m.tracker.PendingOffset() + delta)
}

// ScrollTo moves the viewport to offset, clamped to the content.
func (m *Model) ScrollTo(offset int) tea.Cmd {
	return m.tracker.ScrollTo(min(max(offset, 0), m.maxOffset()))
}

// ScrollToTop jumps to the first row.
func (m *Model) ScrollToTop() tea.Cmd { return m.ScrollTo(0) }

// ScrollToBottom jumps to the last row.
func (m *Model) ScrollToBottom() tea.Cmd { return m.ScrollTo(m.maxOffset()) }

// PageDown scrolls one viewport down.
func (m *Model) PageDown() tea.Cmd { return m.ScrollBy(max(m.height, 1)) }

// PageUp scrolls one viewport up.
func (m *Model) PageUp() tea.Cmd { return m.ScrollBy(-max(m.height, 1)) }

// TopItem returns the item covering the first visible row.
func (m Model) TopItem() (Item, bool) {
	i := m.layout.IndexAt(m.tracker.State().Offset)
	if i < 0 {
		return nil, false
	}
	return m.store.At(i)
}

// AtTop reports whether the viewport shows the first row, counting a
// pending scroll.
func (m Model) AtTop() bool { return m.tracker.PendingOffset() == 0 }

func (m Model) maxOffset() int {
	return max(m.ContentRows()-m.height, 0)
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

// Update handles frame, fetch and mouse messages. Callers forward whichever
// messages they want the list to respond to; messages for other lists are
// ignored.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case FrameMsg:
		if m.tracker.Flush(msg) {
			m.sync()
			return m, m.maybePaginate()
		}

	case pageMsg:
		if msg.id != m.id {
			return m, nil
		}
		return m, m.applyPage(msg)

	case refreshMsg:
		if msg.id != m.id {
			return m, nil
		}
		return m, m.applyRefresh(msg)

	case settleMsg:
		if msg.id == m.id && m.refresh.Finish(msg) {
			m.stopSpinnerIfIdle()
		}

	case pullReleaseMsg:
		if msg.id == m.id && msg.seq == m.gesture.wheelSeq && m.gesture.wheelPull > 0 {
			m.gesture.wheelPull = 0
			if m.refresh.Release() {
				return m, m.startRefresh()
			}
		}

	case anim.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.MouseWheelMsg:
		return m, m.handleWheel(msg)

	case tea.MouseClickMsg:
		if msg.Button == tea.MouseLeft {
			m.gesture.dragging = true
			m.gesture.pulling = false
			m.gesture.startY = msg.Y
			m.gesture.startOffset = m.tracker.PendingOffset()
		}

	case tea.MouseMotionMsg:
		return m, m.handleDrag(msg.Y)

	case tea.MouseReleaseMsg:
		if !m.gesture.dragging {
			return m, nil
		}
		m.gesture.dragging = false
		m.gesture.pulling = false
		if m.refresh.Release() {
			return m, m.startRefresh()
		}
	}
	return m, nil
}

func (m *Model) handleWheel(msg tea.MouseWheelMsg) tea.Cmd {
	step := m.opts.WheelStep
	switch msg.Button {
	case tea.MouseWheelUp:
		if m.gesture.wheelPull > 0 || m.AtTop() {
			if !m.refresh.Begin(true) {
				return nil
			}
			m.gesture.wheelPull += step
			m.refresh.Drag(float64(m.gesture.wheelPull))
			return m.armWheelRelease()
		}
		return m.ScrollBy(-step)
	case tea.MouseWheelDown:
		if m.gesture.wheelPull > 0 {
			m.gesture.wheelPull = max(m.gesture.wheelPull-step, 0)
			m.refresh.Drag(float64(m.gesture.wheelPull))
			if m.gesture.wheelPull == 0 {
				m.refresh.Release()
				return nil
			}
			return m.armWheelRelease()
		}
		return m.ScrollBy(step)
	}
	return nil
}

func (m *Model) armWheelRelease() tea.Cmd {
	m.gesture.wheelSeq++
	id, seq := m.id, m.gesture.wheelSeq
	return tea.Tick(m.opts.PullReleaseDelay, func(time.Time) tea.Msg {
		return pullReleaseMsg{id: id, seq: seq}
	})
}

func (m *Model) handleDrag(y int) tea.Cmd {
	g := &m.gesture
	if !g.dragging {
		return nil
	}
	dy := y - g.startY
	if g.pulling || (g.startOffset == 0 && dy > 0) {
		if !g.pulling {
			if !m.refresh.Begin(true) {
				return nil
			}
			g.pulling = true
		}
		m.refresh.Drag(float64(dy))
		return nil
	}
	return m.ScrollTo(g.startOffset - dy)
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// maybePaginate starts the next page load when the window nears the end.
func (m *Model) maybePaginate() tea.Cmd {
	if m.refresh.Busy() {
		return nil
	}
	if !m.pager.ShouldLoad(m.window, m.store.Len()) {
		return nil
	}
	return m.beginPage()
}

// beginPage fetches the next page and shows the loading footer.
func (m *Model) beginPage() tea.Cmd {
	fetch := m.pager.Begin(m.store.Generation())
	m.sync()
	return tea.Batch(fetch, m.spin.Start())
}

func (m *Model) applyPage(msg pageMsg) tea.Cmd {
	items, ok := m.pager.Complete(msg, m.store.Generation())
	if !ok {
		m.log.Printf("list %d: dropped page %d (gen %d, seq %d)", m.id, msg.page, msg.gen, msg.seq)
		m.stopSpinnerIfIdle()
		return nil
	}
	m.stopSpinnerIfIdle()
	if msg.err != nil {
		m.log.Printf("list %d: page %d failed: %v", m.id, msg.page, msg.err)
		m.sync()
		return m.emitError(msg.page, false, msg.err)
	}
	m.store.Append(items)
	m.layout.Grow(m.store.Len())
	m.sync()

	id, page, count := m.id, msg.page, m.store.Len()
	loaded := func() tea.Msg { return PageLoadedMsg{ID: id, Page: page, Count: count} }
	return tea.Batch(loaded, m.maybePaginate())
}

func (m *Model) startRefresh() tea.Cmd {
	m.gesture.wheelPull = 0
	if m.fetch == nil {
		m.refresh.Drop()
		return nil
	}
	gen := m.store.Invalidate()
	m.pager.Abort()
	return tea.Batch(
		m.refresh.Start(m.ctx, m.fetch, m.opts.InitialPage, gen),
		m.spin.Start(),
	)
}

func (m *Model) applyRefresh(msg refreshMsg) tea.Cmd {
	if msg.gen != m.store.Generation() || !m.refresh.Busy() {
		m.log.Printf("list %d: dropped stale refresh (gen %d)", m.id, msg.gen)
		return nil
	}
	if errors.Is(msg.err, context.Canceled) {
		// Teardown; nothing left to show.
		m.refresh.Drop()
		m.stopSpinnerIfIdle()
		return nil
	}
	if msg.err != nil {
		m.log.Printf("list %d: refresh failed: %v", m.id, msg.err)
		m.pager.Fail(msg.err)
		settle := m.refresh.Settle(msg.err)
		m.stopSpinnerIfIdle()
		m.sync()
		return tea.Batch(settle, m.emitError(m.opts.InitialPage, true, msg.err))
	}

	m.replace(msg.res.Items, msg.res.HasMore)
	settle := m.refresh.Settle(nil)
	m.stopSpinnerIfIdle()

	id, items, more := m.id, m.store.Items(), msg.res.HasMore
	done := func() tea.Msg { return RefreshedMsg{ID: id, Items: items, HasMore: more} }
	return tea.Batch(settle, done, m.maybePaginate())
}

// replace swaps in a fresh first page. Callers bump the generation first.
func (m *Model) replace(items []Item, hasMore bool) {
	m.store.Replace(items)
	m.layout.Resolver().Reset()
	m.layout.Rebuild(m.store.Len())
	m.pager.Reset(m.opts.InitialPage, hasMore)
	m.tracker.Jump(0)
	m.sync()
}

func (m *Model) emitError(page int, refresh bool, err error) tea.Cmd {
	id := m.id
	return func() tea.Msg {
		return LoadErrorMsg{ID: id, Page: page, Refresh: refresh, Err: err}
	}
}

func (m *Model) stopSpinnerIfIdle() {
	if !m.pager.State().Loading && !m.refresh.Busy() {
		m.spin.Stop()
	}
}

// sync clamps the offset to the content and recomputes the window. A
// viewport resting on the last row stays there when the footer appears.
func (m *Model) sync() {
	footer := m.footerRows()
	off := m.tracker.State().Offset
	if footer > m.footer && m.height > 0 && off == m.tracker.PendingOffset() {
		prev := m.layout.Total() + m.footer
		if prev >= m.height && off == max(prev-m.height, 0) {
			m.tracker.Jump(m.maxOffset())
		}
	}
	m.footer = footer

	if off := m.tracker.State().Offset; off > m.maxOffset() {
		m.tracker.Jump(m.maxOffset())
	}
	m.window = m.calc.Compute(m.tracker.State(), m.layout)
}

// footerRows is 1 while a page is loading, after a failure, or once the end
// of a non-empty list is reached.
func (m Model) footerRows() int {
	s := m.pager.State()
	if s.Loading || s.Err != nil || (!s.HasMore && m.store.Len() > 0) {
		return 1
	}
	return 0
}

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

// View renders the materialized window into exactly height lines.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	vp := m.tracker.State()
	vp.Extent = m.height

	bodyW := m.width
	bar := []string(nil)
	if m.scrollbar {
		bar = common.Scrollbar(m.height, m.ContentRows(), vp.Offset)
		if bar != nil {
			bodyW--
		}
	}

	placements := Materialize(m.window, m.store, m.layout)
	if m.footerRows() > 0 {
		placements = append(placements, Placement{
			Index:       m.store.Len(),
			Start:       m.layout.Total(),
			Extent:      1,
			Placeholder: true,
		})
	}

	keep := make(map[string]struct{}, len(placements))
	frame := composeWindow(placements, vp, bodyW, func(p Placement) []string {
		if p.Placeholder {
			return m.placeholder(p, bodyW)
		}
		keep[p.Key] = struct{}{}
		return m.nodes.lines(p, bodyW, m.render)
	})
	m.nodes.retain(keep)

	if m.store.Len() == 0 && m.footerRows() == 0 && m.pager.State().Page > 0 {
		frame[0] = style.Faint.Render("Nothing here yet.")
	}

	if k := m.pullRows(); k > 0 {
		k = min(k, len(frame))
		header := make([]string, k)
		header[k-1] = m.pullIndicator(bodyW)
		frame = append(header, frame[:len(frame)-k]...)
	}

	if bar != nil {
		for i := range frame {
			frame[i] = padRight(frame[i], bodyW) + bar[i]
		}
	}
	return strings.Join(frame, "\n")
}

// placeholder renders rows for an index with no backing item: the footer
// after the last item, or a skeleton for a slot the store no longer has.
func (m Model) placeholder(p Placement, width int) []string {
	lines := make([]string, p.Extent)
	if p.Index != m.store.Len() {
		for i := range lines {
			lines[i] = style.Placeholder.Render(strings.Repeat("·", min(width, 24)))
		}
		return lines
	}
	s := m.pager.State()
	switch {
	case s.Loading:
		if v := m.spin.View(); v != "" {
			lines[0] = v + " " + style.Faint.Render("loading more")
		} else {
			lines[0] = style.Faint.Render("loading more…")
		}
	case s.Err != nil:
		lines[0] = style.FooterError.Render(
			fmt.Sprintf("⚠ couldn't load page %d — scroll to retry", s.Page+1))
	default:
		lines[0] = style.FooterEnd.Render("— end —")
	}
	return lines
}

// pullRows is how far the content is pushed down by the pull indicator.
func (m Model) pullRows() int {
	switch m.refresh.Phase() {
	case RefreshPulling, RefreshArmed:
		return max(int(m.refresh.Distance()), 1)
	case RefreshRefreshing, RefreshSettling:
		return 1
	}
	return 0
}

func (m Model) pullIndicator(width int) string {
	switch m.refresh.Phase() {
	case RefreshPulling:
		frac := m.refresh.Distance() / m.refresh.Threshold()
		return style.PullMeter(frac, min(width/3, 20)) + " " + style.PullHint.Render("pull to refresh")
	case RefreshArmed:
		return style.PullMeter(1, min(width/3, 20)) + " " + style.PullArmed.Render("release to refresh")
	case RefreshRefreshing:
		if v := m.spin.View(); v != "" {
			return v + " " + style.Faint.Render("refreshing")
		}
		return style.Faint.Render("refreshing…")
	case RefreshSettling:
		if err := m.refresh.LastErr(); err != nil {
			return style.RefreshFailed.Render("✗ refresh failed")
		}
		return style.RefreshOK.Render("✓ up to date")
	}
	return ""
}

func padRight(s string, w int) string {
	if gap := w - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
