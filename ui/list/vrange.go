package list

// ViewportState is the scroll position and visible size of the container,
// both in rows.
type ViewportState struct {
	Offset int
	Extent int
}

// Range is an inclusive span of item indices. The zero-length range is
// represented by End < Start.
type Range struct {
	Start int
	End   int
}

// EmptyRange is returned for lists with no items.
var EmptyRange = Range{Start: 0, End: -1}

// Empty reports whether the range selects no items.
func (r Range) Empty() bool { return r.End < r.Start }

// Len returns the number of indices in the range.
func (r Range) Len() int {
	if r.Empty() {
		return 0
	}
	return r.End - r.Start + 1
}

// Contains reports whether i falls inside the range.
func (r Range) Contains(i int) bool { return !r.Empty() && i >= r.Start && i <= r.End }

// clamp restricts the range to [0, count).
func (r Range) clamp(count int) Range {
	if count <= 0 || r.Empty() {
		return EmptyRange
	}
	r.Start = max(r.Start, 0)
	r.End = min(r.End, count-1)
	if r.Start > r.End {
		// The list shrank underneath us; pin to the tail.
		r.Start = r.End
	}
	return r
}

// ComputeRange maps a viewport onto the items that must be materialized.
//
// The raw start is the first item whose end lies past vp.Offset; the raw end
// is the first item whose end lies past vp.Offset+vp.Extent, so an item
// sitting exactly on the bottom edge is included. Both bounds are then
// widened by overscan and clamped. ok is false when the viewport has no
// extent, in which case the result is meaningless.
func ComputeRange(vp ViewportState, l *Layout, overscan int) (r Range, ok bool) {
	if vp.Extent <= 0 {
		return EmptyRange, false
	}
	n := l.Len()
	if n == 0 {
		return EmptyRange, true
	}
	overscan = max(overscan, 0)
	offset := max(vp.Offset, 0)

	start := l.IndexAt(offset)
	end := l.IndexAt(offset + vp.Extent)

	r = Range{Start: start - overscan, End: end + overscan}
	return r.clamp(n), true
}

// RangeCalculator wraps ComputeRange and remembers the last valid result so
// a transient zero-extent viewport (mid-layout) does not flash an empty
// window.
type RangeCalculator struct {
	overscan int
	last     Range
	valid    bool
}

// NewRangeCalculator returns a calculator using the given overscan.
func NewRangeCalculator(overscan int) *RangeCalculator {
	return &RangeCalculator{overscan: max(overscan, 0), last: EmptyRange}
}

// Compute returns the range for vp, falling back to the previous valid range
// (clamped to the current item count) when vp has no extent.
func (c *RangeCalculator) Compute(vp ViewportState, l *Layout) Range {
	r, ok := ComputeRange(vp, l, c.overscan)
	if !ok {
		if !c.valid {
			return EmptyRange
		}
		return c.last.clamp(l.Len())
	}
	c.last = r
	c.valid = true
	return r
}

// Last returns the most recent valid range.
func (c *RangeCalculator) Last() Range { return c.last }
