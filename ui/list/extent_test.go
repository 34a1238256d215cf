package list

import "testing"

func TestFixedExtent_ClampsToMinimum(t *testing.T) {
	r := NewFixedExtent(0)
	if got := r.ExtentOf(5, 10); got != 1 {
		t.Errorf("want extent 1, got %d", got)
	}
}

func TestVariableExtent_Memoizes(t *testing.T) {
	calls := 0
	r := NewVariableExtent(func(i int) int {
		calls++
		return i%3 + 1
	})
	for pass := 0; pass < 3; pass++ {
		for i := 0; i < 10; i++ {
			r.ExtentOf(i, 10)
		}
	}
	if calls != 10 {
		t.Errorf("want 10 measurements, got %d", calls)
	}

	r.InvalidateFrom(7)
	for i := 0; i < 10; i++ {
		r.ExtentOf(i, 10)
	}
	if calls != 13 {
		t.Errorf("want 3 re-measurements after invalidation, got %d", calls-10)
	}
}

func TestVariableExtent_NonPositiveClamped(t *testing.T) {
	r := NewVariableExtent(func(int) int { return -4 })
	if got := r.ExtentOf(0, 1); got != 1 {
		t.Errorf("want 1, got %d", got)
	}
}

func TestEdgePadding_FirstAndLastOnly(t *testing.T) {
	r := NewFixedExtent(2)
	r.SetEdgePadding(1, 3)
	cases := []struct {
		index, count, want int
	}{
		{0, 5, 3},
		{2, 5, 2},
		{4, 5, 5},
		{0, 1, 6},
	}
	for _, c := range cases {
		if got := r.ExtentOf(c.index, c.count); got != c.want {
			t.Errorf("ExtentOf(%d, %d): want %d, got %d", c.index, c.count, c.want, got)
		}
	}
	if got := r.Base(4); got != 2 {
		t.Errorf("padding must not change the base extent, got %d", got)
	}
}

// linearIndexAt is the reference implementation IndexAt must agree with.
func linearIndexAt(extents []int, y int) int {
	end := 0
	for i, e := range extents {
		end += e
		if end > y {
			return i
		}
	}
	return len(extents) - 1
}

func TestLayout_VariableMatchesLinearScan(t *testing.T) {
	extents := []int{1, 4, 2, 2, 7, 1, 3, 5}
	l := NewLayout(NewVariableExtent(func(i int) int { return extents[i] }))
	l.Rebuild(len(extents))

	total := 0
	for _, e := range extents {
		total += e
	}
	if l.Total() != total {
		t.Fatalf("want total %d, got %d", total, l.Total())
	}
	for y := 0; y < total+3; y++ {
		if got, want := l.IndexAt(y), linearIndexAt(extents, y); got != want {
			t.Errorf("IndexAt(%d): want %d, got %d", y, want, got)
		}
	}
}

func TestLayout_FixedMatchesVariable(t *testing.T) {
	fixed := NewFixedExtent(3)
	fixed.SetEdgePadding(2, 1)
	variable := NewVariableExtent(func(int) int { return 3 })
	variable.SetEdgePadding(2, 1)

	a, b := NewLayout(fixed), NewLayout(variable)
	a.Rebuild(20)
	b.Rebuild(20)

	if a.Total() != b.Total() {
		t.Fatalf("totals differ: fixed %d, variable %d", a.Total(), b.Total())
	}
	for i := 0; i < 20; i++ {
		if a.Start(i) != b.Start(i) || a.Extent(i) != b.Extent(i) {
			t.Errorf("item %d: fixed (%d,%d) variable (%d,%d)",
				i, a.Start(i), a.Extent(i), b.Start(i), b.Extent(i))
		}
	}
	for y := 0; y < a.Total(); y++ {
		if a.IndexAt(y) != b.IndexAt(y) {
			t.Errorf("IndexAt(%d): fixed %d, variable %d", y, a.IndexAt(y), b.IndexAt(y))
		}
	}
}

func TestLayout_GrowIsIncremental(t *testing.T) {
	calls := 0
	r := NewVariableExtent(func(i int) int {
		calls++
		return 2
	})
	r.SetEdgePadding(0, 1)
	l := NewLayout(r)
	l.Grow(10)
	if calls != 10 {
		t.Fatalf("want 10 measurements, got %d", calls)
	}
	l.Grow(15)
	if calls != 15 {
		t.Errorf("append must only measure new items, got %d measurements", calls)
	}
	// Old tail lost its trailing padding, new tail gained it.
	if got := l.Extent(9); got != 2 {
		t.Errorf("old tail: want 2, got %d", got)
	}
	if got := l.Extent(14); got != 3 {
		t.Errorf("new tail: want 3, got %d", got)
	}
	if got := l.Total(); got != 31 {
		t.Errorf("want total 31, got %d", got)
	}
}

func TestLayout_RemeasureAfterRemoval(t *testing.T) {
	extents := []int{1, 2, 3, 4, 5}
	l := NewLayout(NewVariableExtent(func(i int) int { return extents[i] }))
	l.Rebuild(5)

	// Remove index 1.
	extents = append(extents[:1], extents[2:]...)
	l.Remeasure(1, 4)

	if l.Len() != 4 {
		t.Fatalf("want 4 items, got %d", l.Len())
	}
	if got := l.Total(); got != 13 {
		t.Errorf("want total 13, got %d", got)
	}
	if got := l.Start(2); got != 4 {
		t.Errorf("want item 2 at row 4, got %d", got)
	}
}

func TestLayout_RemoveTailKeepsTrailPadding(t *testing.T) {
	r := NewVariableExtent(func(int) int { return 2 })
	r.SetEdgePadding(0, 3)
	l := NewLayout(r)
	l.Rebuild(5)

	l.Remeasure(4, 4)

	fresh := NewVariableExtent(func(int) int { return 2 })
	fresh.SetEdgePadding(0, 3)
	want := NewLayout(fresh)
	want.Rebuild(4)

	if l.Total() != want.Total() {
		t.Errorf("want total %d after removing the tail, got %d", want.Total(), l.Total())
	}
	if got := l.Extent(3); got != 5 {
		t.Errorf("new tail: want 5, got %d", got)
	}
}

func TestLayout_TruncateToEmpty(t *testing.T) {
	l := NewLayout(NewVariableExtent(func(int) int { return 2 }))
	l.Rebuild(3)
	l.Truncate(0)
	if l.Len() != 0 || l.Total() != 0 {
		t.Errorf("want empty layout, got len=%d total=%d", l.Len(), l.Total())
	}
	if l.IndexAt(0) != -1 {
		t.Errorf("want -1 for empty layout, got %d", l.IndexAt(0))
	}
}
