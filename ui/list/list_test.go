package list

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

func viewLines(m Model) []string { return strings.Split(m.View(), "\n") }

// ---------------------------------------------------------------------------
// New / options
// ---------------------------------------------------------------------------

func TestNew_DefaultsAreZeroSafe(t *testing.T) {
	m := New()
	if out := m.View(); out != "" {
		t.Errorf("unsized list View want empty string, got %q", out)
	}
	if m.Len() != 0 || m.Window().Len() != 0 {
		t.Errorf("want empty list, got %d items window %+v", m.Len(), m.Window())
	}
	m.Close()
}

func TestOptions_NormalizedFallsBackToDefaults(t *testing.T) {
	o := Options{Overscan: -1, PullResistance: 3, InitialPage: 0, WheelStep: 0}.normalized()
	d := DefaultOptions()
	if o.Overscan != d.Overscan || o.PullResistance != d.PullResistance ||
		o.InitialPage != d.InitialPage || o.WheelStep != d.WheelStep || o.RowExtent != d.RowExtent {
		t.Errorf("invalid values not replaced: %+v", o)
	}
	if z := (Options{}).normalized(); z.Overscan != 0 || z.SettleDuration != 0 {
		t.Errorf("zero overscan and settle are valid choices, got %+v", z)
	}
}

// ---------------------------------------------------------------------------
// Initial load
// ---------------------------------------------------------------------------

func TestList_NoFetchUntilLoad(t *testing.T) {
	f := &fakeFeed{pageSize: 20}
	m := newTestList(f, 40, 10)

	m = run(t, m, m.SetSize(40, 12))
	m = run(t, m, m.ScrollBy(5))

	if f.callCount() != 0 {
		t.Fatalf("empty list fetched on its own: %d calls", f.callCount())
	}
	if s := m.LoadState(); s.Page != 0 || s.Loading {
		t.Errorf("want untouched state, got %+v", s)
	}
	if got := len(viewLines(m)); got != 12 {
		t.Errorf("want 12 lines, got %d", got)
	}
}

func TestList_LoadFetchesFirstPage(t *testing.T) {
	f := &fakeFeed{pageSize: 20}
	m := newTestList(f, 40, 10)

	cmd := m.Load()
	if cmd == nil || !m.LoadState().Loading {
		t.Fatal("Load must start a request")
	}
	if m.Load() != nil {
		t.Error("second Load while loading must be a no-op")
	}
	m = run(t, m, cmd)

	if m.Len() != 20 || m.LoadState().Page != 1 {
		t.Fatalf("want 20 items on page 1, got %d on %d", m.Len(), m.LoadState().Page)
	}
	if f.callCount() != 1 {
		t.Errorf("want 1 fetch, got %d", f.callCount())
	}
	if m.Load() != nil {
		t.Error("Load on a populated list must be a no-op")
	}
	lines := viewLines(m)
	if len(lines) != 10 || lines[0] != "c1-p1-0" {
		t.Errorf("unexpected view %q", lines)
	}
}

func TestList_EmptyFeed(t *testing.T) {
	f := &fakeFeed{pageSize: 0, last: 1}
	m := newTestList(f, 40, 5)
	cmd := m.Load()
	m = run(t, m, cmd)

	if m.Len() != 0 || m.LoadState().Page != 1 {
		t.Fatalf("want loaded empty page, got %d items %+v", m.Len(), m.LoadState())
	}
	if !strings.Contains(m.View(), "Nothing here yet.") {
		t.Errorf("want empty notice, got %q", m.View())
	}
}

// ---------------------------------------------------------------------------
// Pagination
// ---------------------------------------------------------------------------

func TestList_ScrollNearEndLoadsNextPageOnce(t *testing.T) {
	f := &fakeFeed{pageSize: 20}
	m := loaded(t, f, 40, 10)

	frame := m.ScrollToBottom()()
	m, pcmd := m.Update(frame)
	if pcmd == nil || !m.LoadState().Loading {
		t.Fatal("reaching the end must start the next page")
	}

	for i := 0; i < 3; i++ {
		scroll := m.ScrollBy(-1)
		var cmd tea.Cmd
		m, cmd = m.Update(scroll())
		if cmd != nil {
			t.Fatalf("scroll %d during a load started another request", i)
		}
	}

	m = run(t, m, pcmd)
	if f.callCount() != 2 {
		t.Fatalf("want 2 fetches, got %d", f.callCount())
	}
	if m.Len() != 40 || m.LoadState().Page != 2 {
		t.Errorf("want 40 items on page 2, got %d on %d", m.Len(), m.LoadState().Page)
	}
}

func TestList_StalePageAfterRefreshDropped(t *testing.T) {
	f := &fakeFeed{pageSize: 20}
	m := loaded(t, f, 40, 10)

	m, pcmd := m.Update(m.ScrollToBottom()())
	stale, ok := firstOf[pageMsg](collect(pcmd))
	if !ok {
		t.Fatal("no page load started")
	}

	rcmd := m.Refresh()
	m = run(t, m, rcmd)
	m = apply(t, m, stale)

	if m.Len() != 20 {
		t.Fatalf("stale page leaked into the list: %d items", m.Len())
	}
	for _, it := range m.Items() {
		if !strings.HasPrefix(it.Key(), "c3-p1") {
			t.Fatalf("unexpected item %s after refresh", it.Key())
		}
	}
	if m.LoadState().Page != 1 {
		t.Errorf("want page 1 after refresh, got %d", m.LoadState().Page)
	}
}

func TestList_FailedPageRetriesOnNextScroll(t *testing.T) {
	f := &fakeFeed{pageSize: 20}
	m := loaded(t, f, 40, 10)
	f.setFail(true)

	cmd := m.ScrollToBottom()
	m = run(t, m, cmd)

	s := m.LoadState()
	if !errors.Is(s.Err, errBackend) || s.Page != 1 || s.Loading {
		t.Fatalf("unexpected state after failure %+v", s)
	}
	if f.callCount() != 2 {
		t.Fatalf("failure must not retry on its own, got %d fetches", f.callCount())
	}
	if !strings.Contains(m.View(), "couldn't load page 2") {
		t.Errorf("want error footer, got %q", m.View())
	}

	f.setFail(false)
	cmd = m.ScrollBy(-1)
	m = run(t, m, cmd)

	if got := f.calls; len(got) != 3 || got[2] != 2 {
		t.Fatalf("want page 2 retried, got %v", got)
	}
	if m.Len() != 40 || m.LoadState().Err != nil {
		t.Errorf("retry must succeed, got %d items err=%v", m.Len(), m.LoadState().Err)
	}
}

func TestList_LoadingFooterFollowsBottom(t *testing.T) {
	f := &fakeFeed{pageSize: 20}
	m := loaded(t, f, 40, 10)

	frame := m.ScrollToBottom()()
	m, pcmd := m.Update(frame)
	if pcmd == nil || !m.LoadState().Loading {
		t.Fatal("reaching the end must start the next page")
	}
	if got := m.Viewport().Offset; got != 11 {
		t.Errorf("want offset 11 with the footer on screen, got %d", got)
	}
	lines := viewLines(m)
	if !strings.Contains(lines[len(lines)-1], "loading more") {
		t.Errorf("want loading footer on the last row, got %q", lines[len(lines)-1])
	}
}

func TestList_ErrorFooterFollowsBottom(t *testing.T) {
	f := &fakeFeed{pageSize: 50}
	m := loaded(t, f, 40, 10)

	cmd := m.ScrollTo(5)
	m = run(t, m, cmd)
	f.setFail(true)
	cmd = m.ScrollToBottom()
	m = run(t, m, cmd)
	if m.LoadState().Err == nil {
		t.Fatal("want failed page")
	}
	if got, want := m.Viewport().Offset, m.ContentRows()-10; got != want {
		t.Errorf("want offset %d, got %d", want, got)
	}
}

func TestList_EndOfFeed(t *testing.T) {
	f := &fakeFeed{pageSize: 20, last: 1}
	m := loaded(t, f, 40, 10)

	cmd := m.ScrollToBottom()
	m = run(t, m, cmd)

	if f.callCount() != 1 {
		t.Errorf("must not load past the last page, got %d fetches", f.callCount())
	}
	lines := viewLines(m)
	if !strings.Contains(lines[len(lines)-1], "end") {
		t.Errorf("want end marker on the last row, got %q", lines[len(lines)-1])
	}
}

// ---------------------------------------------------------------------------
// Virtualization
// ---------------------------------------------------------------------------

func TestList_LargeListRendersOnlyWindow(t *testing.T) {
	m := New(WithSize(40, 10), WithRenderer(renderKey), WithFrameScheduler(immediateFrames))
	if !m.Seed(makeItems("k", 10_000), true) {
		t.Fatal("seed of an empty list must succeed")
	}

	_ = m.View()
	if w := m.Window(); w.Start != 0 || w.Len() > 14 {
		t.Errorf("unexpected top window %+v", w)
	}
	if m.nodes.len() > m.Window().Len() {
		t.Errorf("cache holds %d renders for a %d-item window", m.nodes.len(), m.Window().Len())
	}

	cmd := m.ScrollTo(5000)
	m = run(t, m, cmd)
	lines := viewLines(m)

	if lines[0] != "k-5000" || lines[9] != "k-5009" {
		t.Errorf("unexpected rows %q", lines)
	}
	if w := m.Window(); w.Len() > 10+1+2*DefaultOptions().Overscan {
		t.Errorf("window too wide: %+v", w)
	}
	if m.nodes.len() > m.Window().Len() {
		t.Errorf("cache not evicted: %d entries for %d items", m.nodes.len(), m.Window().Len())
	}
}

func TestList_ViewAlwaysFillsViewport(t *testing.T) {
	f := &fakeFeed{pageSize: 40}
	m := loaded(t, f, 30, 8, WithScrollbar(true))

	for _, off := range []int{0, 3, 17, 32, 1000} {
		cmd := m.ScrollTo(off)
		m = run(t, m, cmd)
		lines := viewLines(m)
		if len(lines) != 8 {
			t.Fatalf("offset %d: want 8 lines, got %d", off, len(lines))
		}
		for i, l := range lines {
			if w := lipgloss.Width(l); w != 30 {
				t.Fatalf("offset %d line %d: want width 30, got %d (%q)", off, i, w, l)
			}
		}
	}

	cmd := m.ScrollToTop()
	m = run(t, m, cmd)
	m = apply(t, m, press(0), drag(12))
	if got := len(viewLines(m)); got != 8 {
		t.Errorf("pull header changed the frame height to %d", got)
	}
	if !strings.Contains(m.View(), "release to refresh") {
		t.Errorf("want pull indicator, got %q", m.View())
	}
}

func TestList_VariableItemExtent(t *testing.T) {
	items := make([]Item, 30)
	total := 0
	for i := range items {
		n := i%4 + 1
		items[i] = testItem{key: fmt.Sprintf("v-%d", i), lines: n}
		total += n
	}
	m := New(
		WithSize(40, 10),
		WithRenderer(renderKey),
		WithFrameScheduler(immediateFrames),
		WithItemExtent(func(it Item, _ int) int { return it.(testItem).lines }),
	)
	m.Seed(items, false)

	if got := m.layout.Total(); got != total {
		t.Fatalf("want total %d, got %d", total, got)
	}
	want := []string{"v-0", "v-1/0", "v-1/1", "v-2/0", "v-2/1", "v-2/2"}
	lines := viewLines(m)
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("row %d: want %q, got %q", i, w, lines[i])
		}
	}

	cmd := m.ScrollTo(m.layout.Start(10))
	m = run(t, m, cmd)
	if got := viewLines(m)[0]; got != "v-10/0" {
		t.Errorf("want v-10/0 at the top, got %q", got)
	}
}

func TestList_WidthChangeRemeasures(t *testing.T) {
	m := New(
		WithSize(40, 10),
		WithRenderer(renderKey),
		WithFrameScheduler(immediateFrames),
		WithItemExtent(func(_ Item, w int) int {
			if w < 20 {
				return 2
			}
			return 1
		}),
	)
	m.Seed(makeItems("w", 5), false)
	if got := m.layout.Total(); got != 5 {
		t.Fatalf("want 5 rows at width 40, got %d", got)
	}
	m.SetSize(10, 10)
	if got := m.layout.Total(); got != 10 {
		t.Errorf("want 10 rows at width 10, got %d", got)
	}
}

func TestList_RemoveNearBottom(t *testing.T) {
	m := New(WithSize(40, 10), WithRenderer(renderKey), WithFrameScheduler(immediateFrames))
	m.Seed(makeItems("r", 30), false)
	cmd := m.ScrollToBottom()
	m = run(t, m, cmd)
	if m.Viewport().Offset != 21 {
		t.Fatalf("want offset 21, got %d", m.Viewport().Offset)
	}

	for i := 29; i >= 15; i-- {
		if !m.Remove(fmt.Sprintf("r-%d", i)) {
			t.Fatalf("remove r-%d failed", i)
		}
	}
	if m.Remove("r-99") {
		t.Error("removing a missing key must report false")
	}

	if m.Len() != 15 || m.Viewport().Offset != 6 {
		t.Errorf("want 15 items at offset 6, got %d at %d", m.Len(), m.Viewport().Offset)
	}
	if w := m.Window(); w.End >= 15 {
		t.Errorf("window %+v past the end", w)
	}
	lines := viewLines(m)
	if len(lines) != 10 || lines[0] != "r-6" {
		t.Errorf("unexpected view %q", lines)
	}
}

// ---------------------------------------------------------------------------
// Seed / lifecycle
// ---------------------------------------------------------------------------

func TestList_SeedThenRefresh(t *testing.T) {
	f := &fakeFeed{pageSize: 20}
	m := newTestList(f, 40, 10)

	if !m.Seed(makeItems("cached", 5), true) {
		t.Fatal("seed must succeed on an empty list")
	}
	if m.Seed(makeItems("again", 5), true) {
		t.Error("seed of a populated list must be refused")
	}
	if m.Len() != 5 || m.LoadState().Page != 1 {
		t.Fatalf("want 5 seeded items on page 1, got %d %+v", m.Len(), m.LoadState())
	}

	cmd := m.Refresh()
	m = run(t, m, cmd)
	if m.Len() != 20 || !strings.HasPrefix(m.Items()[0].Key(), "c1-p1") {
		t.Errorf("refresh must replace the seed, got %d items starting %s", m.Len(), m.Items()[0].Key())
	}
}

func TestList_CloseCancelsInFlight(t *testing.T) {
	var seen context.Context
	m := New(
		WithSize(40, 10),
		WithFrameScheduler(immediateFrames),
		WithFetcher(func(ctx context.Context, page int) (Page, error) {
			seen = ctx
			return Page{Items: makeItems("late", 3)}, nil
		}),
	)
	cmd := m.Load()
	m.Close()
	m = run(t, m, cmd)

	if seen == nil || !errors.Is(seen.Err(), context.Canceled) {
		t.Fatal("fetch must observe a cancelled context after Close")
	}
	if m.Len() != 0 || m.LoadState().Err != nil {
		t.Errorf("closed list applied a result: %d items err=%v", m.Len(), m.LoadState().Err)
	}
}

func TestList_IgnoresOtherListMessages(t *testing.T) {
	fa, fb := &fakeFeed{pageSize: 5}, &fakeFeed{pageSize: 5}
	a := newTestList(fa, 40, 10)
	b := newTestList(fb, 40, 10)

	msg, ok := firstOf[pageMsg](collect(a.Load()))
	if !ok {
		t.Fatal("no page from a")
	}
	b, _ = b.Update(msg)
	b, _ = b.Update(FrameMsg{ID: a.ID()})
	if b.Len() != 0 {
		t.Errorf("b applied a's page: %d items", b.Len())
	}
	a, _ = a.Update(msg)
	if a.Len() != 5 {
		t.Errorf("a lost its own page: %d items", a.Len())
	}
}

func TestList_SubscribeObservesScroll(t *testing.T) {
	f := &fakeFeed{pageSize: 50}
	m := loaded(t, f, 40, 10)

	var seen []ViewportState
	unsubscribe := m.Subscribe(func(vp ViewportState) { seen = append(seen, vp) })

	cmd := m.ScrollTo(5)
	m = run(t, m, cmd)
	if len(seen) == 0 || seen[len(seen)-1].Offset != 5 {
		t.Fatalf("want offset 5 delivered, got %+v", seen)
	}

	unsubscribe()
	n := len(seen)
	cmd = m.ScrollTo(6)
	m = run(t, m, cmd)
	if len(seen) != n {
		t.Error("unsubscribed listener still notified")
	}
	if m.Viewport().Offset != 6 {
		t.Errorf("want offset 6, got %d", m.Viewport().Offset)
	}
}

// ---------------------------------------------------------------------------
// Render cache
// ---------------------------------------------------------------------------

type versionedItem struct {
	key     string
	version int
}

func (v versionedItem) Key() string         { return v.key }
func (v versionedItem) ContentVersion() int { return v.version }

func TestNodeCache_ReusesUntilVersionChanges(t *testing.T) {
	c := newNodeCache()
	renders := 0
	render := func(it Item, _, _ int) string {
		renders++
		return fmt.Sprintf("%s@%d", it.Key(), it.(versionedItem).version)
	}
	p := Placement{Key: "a", Item: versionedItem{key: "a", version: 1}, Extent: 1}

	c.lines(p, 20, render)
	p.Start = 40
	c.lines(p, 20, render)
	if renders != 1 {
		t.Fatalf("moved row must reuse its render, got %d renders", renders)
	}

	p.Item = versionedItem{key: "a", version: 2}
	if got := c.lines(p, 20, render); got[0] != "a@2" {
		t.Errorf("want re-render after version bump, got %q", got)
	}
	c.lines(p, 30, render)
	if renders != 3 {
		t.Errorf("width change must re-render, got %d renders", renders)
	}

	c.retain(map[string]struct{}{})
	if c.len() != 0 {
		t.Errorf("want empty cache, got %d", c.len())
	}
}

func TestFitLines_PadsAndTruncates(t *testing.T) {
	got := fitLines("abcdefgh\nsecond\nthird", 2, 4)
	if len(got) != 2 {
		t.Fatalf("want 2 lines, got %d", len(got))
	}
	if lipgloss.Width(got[0]) > 4 || !strings.HasPrefix(got[0], "abc") {
		t.Errorf("first line not truncated: %q", got[0])
	}
	if got := fitLines("one", 3, 10); got[0] != "one" || got[2] != "" {
		t.Errorf("short render must be padded with blank rows, got %q", got)
	}
}
