package pip

import (
	"testing"
	"time"
)

type alphaRecorder struct{ alpha float64 }

func (a *alphaRecorder) SetControlsAlpha(alpha float64) { a.alpha = alpha }

func TestControlsAutoHideAfterLoad(t *testing.T) {
	loop := newFakeLoop()
	c := NewControlVisibilityTimer(loop, loop, loop.Now)
	view := &alphaRecorder{}
	c.SetView(view)

	c.Load()
	st := c.State()
	if !st.Visible || !st.HasDeadline || !st.PendingHideDeadline.Equal(loop.Now().Add(ControlsHideDelay)) {
		t.Fatalf("state after load = %+v", st)
	}

	loop.Advance(ControlsHideDelay - time.Millisecond)
	if !c.State().Visible {
		t.Fatal("hidden too early")
	}
	loop.Advance(time.Millisecond)
	if c.State().Visible || c.State().HasDeadline {
		t.Fatalf("state after deadline = %+v", c.State())
	}
	loop.Advance(ControlsFadeAnimation.Duration)
	if view.alpha != 0 {
		t.Fatalf("alpha after hide = %v", view.alpha)
	}
}

func TestControlsTapWhileHiddenShowsAndReschedules(t *testing.T) {
	loop := newFakeLoop()
	c := NewControlVisibilityTimer(loop, loop, loop.Now)
	c.Load()
	loop.Advance(ControlsHideDelay + time.Second)

	c.Tap()
	st := c.State()
	if !st.Visible {
		t.Fatal("tap did not show controls")
	}
	if !st.HasDeadline || !st.PendingHideDeadline.Equal(loop.Now().Add(ControlsHideDelay)) {
		t.Fatalf("hide not scheduled at now+delay: %+v", st)
	}
	if loop.Pending() != 1 {
		t.Fatalf("pending hides = %d, want 1", loop.Pending())
	}
}

func TestControlsTapWhileVisibleHidesAndCancels(t *testing.T) {
	loop := newFakeLoop()
	c := NewControlVisibilityTimer(loop, loop, loop.Now)
	c.Load()

	c.Tap()
	st := c.State()
	if st.Visible || st.HasDeadline {
		t.Fatalf("state after tap = %+v", st)
	}
	if loop.Pending() != 0 {
		t.Fatalf("pending hide not cancelled, pending = %d", loop.Pending())
	}
}

func TestControlsAtMostOnePendingHide(t *testing.T) {
	loop := newFakeLoop()
	c := NewControlVisibilityTimer(loop, loop, loop.Now)
	var flips []bool
	c.OnChange(func(v bool) { flips = append(flips, v) })

	c.Load()
	for i := 0; i < 5; i++ {
		c.Tap() // hide
		c.Tap() // show + reschedule
		if loop.Pending() != 1 {
			t.Fatalf("round %d: pending = %d", i, loop.Pending())
		}
		loop.Advance(time.Second)
	}
	loop.Advance(ControlsHideDelay)
	if c.State().Visible {
		t.Fatal("controls still visible")
	}
	if flips[len(flips)-1] != false {
		t.Fatalf("last change = %v", flips[len(flips)-1])
	}
}
