package list

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/miosa/osa-feed/ui/anim"
)

// ---------------------------------------------------------------------------
// Test item implementation
// ---------------------------------------------------------------------------

type testItem struct {
	key   string
	lines int
}

func (t testItem) Key() string { return t.key }

func makeItems(prefix string, n int) []Item {
	out := make([]Item, n)
	for i := range out {
		out[i] = testItem{key: fmt.Sprintf("%s-%d", prefix, i), lines: 1}
	}
	return out
}

func renderKey(it Item, _ int, _ int) string {
	ti := it.(testItem)
	if ti.lines <= 1 {
		return ti.key
	}
	parts := make([]string, ti.lines)
	for i := range parts {
		parts[i] = fmt.Sprintf("%s/%d", ti.key, i)
	}
	return strings.Join(parts, "\n")
}

// ---------------------------------------------------------------------------
// Fake backend
// ---------------------------------------------------------------------------

var errBackend = errors.New("backend unavailable")

// fakeFeed serves pages of pageSize items. Page `last` reports HasMore=false.
// Every call gets a distinct key prefix so refreshed pages never collide
// with stale ones.
type fakeFeed struct {
	mu       sync.Mutex
	pageSize int
	last     int
	fail     bool
	calls    []int
}

func (f *fakeFeed) fetch(ctx context.Context, page int) (Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, page)
	if err := ctx.Err(); err != nil {
		return Page{}, err
	}
	if f.fail {
		return Page{}, errBackend
	}
	prefix := fmt.Sprintf("c%d-p%d", len(f.calls), page)
	return Page{Items: makeItems(prefix, f.pageSize), HasMore: f.last == 0 || page < f.last}, nil
}

func (f *fakeFeed) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeFeed) setFail(v bool) {
	f.mu.Lock()
	f.fail = v
	f.mu.Unlock()
}

// ---------------------------------------------------------------------------
// Model helpers
// ---------------------------------------------------------------------------

// immediateFrames delivers frame messages without waiting for a tick.
func immediateFrames(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func testOptions() Options {
	o := DefaultOptions()
	o.SettleDuration = 0
	return o
}

func newTestList(f *fakeFeed, w, h int, extra ...Option) Model {
	opts := []Option{
		WithSize(w, h),
		WithOptions(testOptions()),
		WithFetcher(f.fetch),
		WithRenderer(renderKey),
		WithFrameScheduler(immediateFrames),
	}
	return New(append(opts, extra...)...)
}

// collect runs cmd (and nested batches) and returns the messages it
// produced, minus spinner ticks. Nothing is fed back into the model.
func collect(cmd tea.Cmd) []tea.Msg {
	var out []tea.Msg
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case anim.TickMsg:
		default:
			out = append(out, msg)
		}
	}
	return out
}

// run feeds every message cmd produces back into m until nothing is left.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 10_000 {
			t.Fatal("command loop did not settle")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case anim.TickMsg:
		default:
			var next tea.Cmd
			m, next = m.Update(msg)
			queue = append(queue, next)
		}
	}
	return m
}

// apply feeds msgs into m, running whatever they trigger.
func apply(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		var cmd tea.Cmd
		m, cmd = m.Update(msg)
		m = run(t, m, cmd)
	}
	return m
}

// loaded returns a list that already holds its first page.
func loaded(t *testing.T, f *fakeFeed, w, h int, extra ...Option) Model {
	t.Helper()
	m := newTestList(f, w, h, extra...)
	cmd := m.Load()
	m = run(t, m, cmd)
	if m.Len() == 0 {
		t.Fatal("initial load produced no items")
	}
	return m
}

func firstOf[T any](msgs []tea.Msg) (T, bool) {
	for _, msg := range msgs {
		if v, ok := msg.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}
