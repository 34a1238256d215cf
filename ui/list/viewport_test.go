package list

import (
	"testing"

	tea "charm.land/bubbletea/v2"
)

// countingScheduler records how many frames were requested.
type countingScheduler struct{ frames int }

func (c *countingScheduler) schedule(msg tea.Msg) tea.Cmd {
	c.frames++
	return func() tea.Msg { return msg }
}

func TestTracker_CoalescesScrollsPerFrame(t *testing.T) {
	sched := &countingScheduler{}
	tr := NewTracker(7, 20, sched.schedule)

	var seen []ViewportState
	tr.Subscribe(func(vp ViewportState) { seen = append(seen, vp) })

	first := tr.ScrollTo(3)
	if first == nil {
		t.Fatal("first scroll must schedule a frame")
	}
	for _, off := range []int{5, 9, 12} {
		if cmd := tr.ScrollTo(off); cmd != nil {
			t.Fatalf("scroll to %d scheduled a second frame", off)
		}
	}
	if sched.frames != 1 {
		t.Fatalf("want 1 frame, got %d", sched.frames)
	}
	if len(seen) != 0 {
		t.Fatal("listeners must not fire before the frame")
	}

	if !tr.Flush(first().(FrameMsg)) {
		t.Fatal("flush of own frame must notify")
	}
	if len(seen) != 1 || seen[0].Offset != 12 {
		t.Fatalf("want one update at offset 12, got %+v", seen)
	}
	if tr.Pending() {
		t.Error("no frame should remain pending")
	}
}

func TestTracker_IgnoresForeignFrames(t *testing.T) {
	tr := NewTracker(1, 10, (&countingScheduler{}).schedule)
	tr.ScrollTo(4)
	if tr.Flush(FrameMsg{ID: 2}) {
		t.Error("frame of another list must be ignored")
	}
	if tr.State().Offset != 0 || tr.PendingOffset() != 4 {
		t.Errorf("unexpected state %+v pending %d", tr.State(), tr.PendingOffset())
	}
}

func TestTracker_ResizeIsImmediate(t *testing.T) {
	sched := &countingScheduler{}
	tr := NewTracker(1, 10, sched.schedule)
	var got []ViewportState
	tr.Subscribe(func(vp ViewportState) { got = append(got, vp) })

	tr.Resize(30)
	tr.Resize(30)
	if len(got) != 1 || got[0].Extent != 30 {
		t.Fatalf("want one immediate update with extent 30, got %+v", got)
	}
	if sched.frames != 0 {
		t.Error("resize must not schedule a frame")
	}
}

func TestTracker_Unsubscribe(t *testing.T) {
	tr := NewTracker(1, 10, nil)
	a, b := 0, 0
	unsubA := tr.Subscribe(func(ViewportState) { a++ })
	tr.Subscribe(func(ViewportState) { b++ })

	tr.Jump(3)
	unsubA()
	tr.Jump(6)

	if a != 1 || b != 2 {
		t.Errorf("want a=1 b=2, got a=%d b=%d", a, b)
	}

	tr.Close()
	tr.Jump(9)
	if b != 2 {
		t.Error("closed tracker must not notify")
	}
}

func TestTracker_JumpDropsPendingScroll(t *testing.T) {
	sched := &countingScheduler{}
	tr := NewTracker(1, 10, sched.schedule)
	cmd := tr.ScrollTo(40)
	tr.Jump(0)

	if tr.Flush(cmd().(FrameMsg)) {
		t.Error("frame after Jump must be a no-op")
	}
	if tr.State().Offset != 0 {
		t.Errorf("want offset 0, got %d", tr.State().Offset)
	}
}

func TestTracker_NegativeOffsetClamped(t *testing.T) {
	tr := NewTracker(1, 10, (&countingScheduler{}).schedule)
	cmd := tr.ScrollTo(-5)
	tr.Flush(cmd().(FrameMsg))
	if tr.State().Offset != 0 {
		t.Errorf("want 0, got %d", tr.State().Offset)
	}
}
