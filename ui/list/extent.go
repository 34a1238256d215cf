package list

import "sort"

// minExtent is the smallest extent an item may occupy. Zero-height items
// would stall the range search.
const minExtent = 1

// ---------------------------------------------------------------------------
// ExtentResolver
// ---------------------------------------------------------------------------

// ExtentResolver answers "how many rows does item i take". In fixed mode every
// item shares one extent; in variable mode the caller's ExtentFunc is
// memoized by index.
type ExtentResolver struct {
	fixed int
	fn    ExtentFunc
	memo  []int // 0 = not measured yet

	lead  int // added to the first item
	trail int // added to the last item
}

// NewFixedExtent returns a resolver where every item is e rows tall.
func NewFixedExtent(e int) *ExtentResolver {
	if e < minExtent {
		e = minExtent
	}
	return &ExtentResolver{fixed: e}
}

// NewVariableExtent returns a memoizing resolver backed by fn.
func NewVariableExtent(fn ExtentFunc) *ExtentResolver {
	return &ExtentResolver{fn: fn}
}

// SetEdgePadding sets cosmetic extra rows for the first and last items.
func (r *ExtentResolver) SetEdgePadding(lead, trail int) {
	r.lead = max(lead, 0)
	r.trail = max(trail, 0)
}

// IsFixed reports whether all items share one base extent.
func (r *ExtentResolver) IsFixed() bool { return r.fn == nil }

// Base returns the base extent of index, without edge padding.
func (r *ExtentResolver) Base(index int) int {
	if r.fn == nil {
		return r.fixed
	}
	if index < len(r.memo) && r.memo[index] > 0 {
		return r.memo[index]
	}
	e := r.fn(index)
	if e < minExtent {
		e = minExtent
	}
	if index >= len(r.memo) {
		grown := make([]int, index+1, max(index+1, 2*len(r.memo)))
		copy(grown, r.memo)
		r.memo = grown
	}
	r.memo[index] = e
	return e
}

// ExtentOf returns the on-screen extent of index in a list of count items,
// edge padding included.
func (r *ExtentResolver) ExtentOf(index, count int) int {
	e := r.Base(index)
	if index == 0 {
		e += r.lead
	}
	if index == count-1 {
		e += r.trail
	}
	return e
}

// InvalidateFrom forgets memoized extents at and after index, used when items
// are removed or reordered.
func (r *ExtentResolver) InvalidateFrom(index int) {
	if index < 0 {
		index = 0
	}
	if index < len(r.memo) {
		r.memo = r.memo[:index]
	}
}

// Reset drops every memoized extent.
func (r *ExtentResolver) Reset() { r.memo = nil }

// ---------------------------------------------------------------------------
// Layout
// ---------------------------------------------------------------------------

// Layout maps item indices to cumulative row offsets. Variable-extent lists
// keep a flat offsets array (offsets[i] is the first row of item i,
// offsets[n] the total); fixed-extent lists compute positions arithmetically.
type Layout struct {
	res     *ExtentResolver
	count   int
	offsets []int
}

// NewLayout returns an empty layout over res.
func NewLayout(res *ExtentResolver) *Layout {
	return &Layout{res: res, offsets: []int{0}}
}

// Len returns the number of items laid out.
func (l *Layout) Len() int { return l.count }

// Resolver returns the backing resolver.
func (l *Layout) Resolver() *ExtentResolver { return l.res }

// Rebuild lays out n items from scratch.
func (l *Layout) Rebuild(n int) {
	l.count = max(n, 0)
	if l.res.IsFixed() {
		l.offsets = l.offsets[:1]
		return
	}
	l.offsets = append(l.offsets[:1], make([]int, l.count)...)
	for i := 0; i < l.count; i++ {
		l.offsets[i+1] = l.offsets[i] + l.res.ExtentOf(i, l.count)
	}
}

// Grow extends the layout to n items. Only the previous tail is re-measured
// (it may lose its trailing padding); earlier offsets are untouched.
func (l *Layout) Grow(n int) {
	if n < l.count {
		l.Truncate(n)
		return
	}
	l.reflow(max(l.count-1, 0), n)
}

// Truncate shrinks the layout to n items. The new tail is re-measured since
// it picks up the trailing padding.
func (l *Layout) Truncate(n int) {
	if n >= l.count {
		return
	}
	n = max(n, 0)
	l.res.InvalidateFrom(n)
	l.reflow(max(n-1, 0), n)
}

// Remeasure forgets extents from index on, e.g. after a removal shifted the
// items behind it, and lays out n items again from there.
func (l *Layout) Remeasure(from, n int) {
	from = max(from, 0)
	l.res.InvalidateFrom(from)
	// The new tail may sit before from and still needs its trailing padding.
	l.reflow(max(min(from, n-1), 0), n)
}

func (l *Layout) reflow(from, n int) {
	n = max(n, 0)
	if l.res.IsFixed() {
		l.count = n
		return
	}
	from = min(from, n)
	l.offsets = l.offsets[:from+1]
	for i := from; i < n; i++ {
		l.offsets = append(l.offsets, l.offsets[i]+l.res.ExtentOf(i, n))
	}
	l.count = n
}

// Start returns the first row of item i.
func (l *Layout) Start(i int) int {
	if i <= 0 {
		return 0
	}
	if i > l.count {
		i = l.count
	}
	if l.res.IsFixed() {
		return l.res.lead + i*l.res.fixed
	}
	return l.offsets[i]
}

// Extent returns the row count of item i.
func (l *Layout) Extent(i int) int {
	if i < 0 || i >= l.count {
		return 0
	}
	if l.res.IsFixed() {
		return l.res.ExtentOf(i, l.count)
	}
	return l.offsets[i+1] - l.offsets[i]
}

// End returns the first row after item i.
func (l *Layout) End(i int) int { return l.Start(i) + l.Extent(i) }

// Total returns the summed extent of all items.
func (l *Layout) Total() int {
	if l.count == 0 {
		return 0
	}
	if l.res.IsFixed() {
		return l.res.lead + l.count*l.res.fixed + l.res.trail
	}
	return l.offsets[l.count]
}

// IndexAt returns the first item whose end lies strictly after row y, i.e.
// the item covering y. Rows past the end map to the last item. Returns -1 for
// an empty layout.
func (l *Layout) IndexAt(y int) int {
	if l.count == 0 {
		return -1
	}
	if y < 0 {
		return 0
	}
	if l.res.IsFixed() {
		first := l.res.fixed + l.res.lead
		if y < first {
			return 0
		}
		return min((y-l.res.lead)/l.res.fixed, l.count-1)
	}
	i := sort.Search(l.count, func(i int) bool { return l.offsets[i+1] > y })
	return min(i, l.count-1)
}
