// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: pip/controls.go
// Summary: Auto-hides the overlay affordances after a period of inactivity.
// Usage: Load once when the screen appears, then call Tap on every tap.
// Notes: At most one pending hide exists; scheduling always cancels the last.

package pip

import "time"

// ControlVisibilityTimer toggles the minimize/close affordances on tap and
// hides them automatically after ControlsHideDelay.
type ControlVisibilityTimer struct {
	scheduler Scheduler
	animator  Animator
	clock     func() time.Time
	delay     time.Duration

	visible  bool
	pending  CancelToken
	deadline time.Time

	view  ControlsView
	alpha float64
	fade  uint64

	onChange func(visible bool)
}

// NewControlVisibilityTimer creates a timer with controls initially visible.
// clock may be nil, in which case time.Now is used.
func NewControlVisibilityTimer(scheduler Scheduler, animator Animator, clock func() time.Time) *ControlVisibilityTimer {
	if clock == nil {
		clock = time.Now
	}
	return &ControlVisibilityTimer{
		scheduler: scheduler,
		animator:  animator,
		clock:     clock,
		delay:     ControlsHideDelay,
		visible:   true,
		alpha:     1,
	}
}

// SetView attaches the view that renders the affordances.
func (c *ControlVisibilityTimer) SetView(view ControlsView) {
	c.view = view
	if view != nil {
		view.SetControlsAlpha(c.alpha)
	}
}

// SetDelay changes the inactivity period used by later schedules.
func (c *ControlVisibilityTimer) SetDelay(d time.Duration) {
	if d > 0 {
		c.delay = d
	}
}

// OnChange registers a callback for visibility flips.
func (c *ControlVisibilityTimer) OnChange(fn func(visible bool)) {
	c.onChange = fn
}

// State returns a snapshot of the timer.
func (c *ControlVisibilityTimer) State() ControlVisibility {
	return ControlVisibility{
		Visible:             c.visible,
		PendingHideDeadline: c.deadline,
		HasDeadline:         c.pending != 0,
	}
}

// Load shows the controls and schedules the first automatic hide.
func (c *ControlVisibilityTimer) Load() {
	c.setVisible(true)
	c.scheduleHide()
}

// Tap shows hidden controls (rescheduling the hide) or hides visible ones
// immediately (dropping the pending hide).
func (c *ControlVisibilityTimer) Tap() {
	if c.visible {
		c.cancelPending()
		c.setVisible(false)
		return
	}
	c.setVisible(true)
	c.scheduleHide()
}

// Stop cancels any pending hide.
func (c *ControlVisibilityTimer) Stop() {
	c.cancelPending()
}

func (c *ControlVisibilityTimer) scheduleHide() {
	c.cancelPending()
	c.deadline = c.clock().Add(c.delay)
	var token CancelToken
	token = c.scheduler.ScheduleOnce(c.delay, func() {
		if c.pending != token {
			return
		}
		c.pending = 0
		c.deadline = time.Time{}
		c.setVisible(false)
	})
	c.pending = token
}

func (c *ControlVisibilityTimer) cancelPending() {
	if c.pending == 0 {
		return
	}
	c.scheduler.Cancel(c.pending)
	c.pending = 0
	c.deadline = time.Time{}
}

func (c *ControlVisibilityTimer) setVisible(visible bool) {
	changed := c.visible != visible
	c.visible = visible
	if changed && c.onChange != nil {
		c.onChange(visible)
	}

	target := 0.0
	if visible {
		target = 1
	}
	if c.alpha == target {
		return
	}
	c.fade++
	gen := c.fade
	from := c.alpha
	c.animator.Animate(ControlsFadeAnimation, func(t float64) {
		if gen != c.fade {
			return
		}
		c.applyAlpha(from + (target-from)*t)
	}, func() {
		if gen != c.fade {
			return
		}
		c.applyAlpha(target)
	})
}

func (c *ControlVisibilityTimer) applyAlpha(alpha float64) {
	c.alpha = alpha
	if c.view != nil {
		c.view.SetControlsAlpha(alpha)
	}
}
