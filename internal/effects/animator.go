// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/animator.go
// Summary: Frame-driven Animator that runs pip animations on a Timeline.
// Usage: The host calls Tick from its frame ticker on the event-loop goroutine.
// Notes: Callbacks may start new animations; they are picked up on the next Tick.

package effects

import (
	"time"

	"github.com/framegrace/texelpip/pip"
)

type animation struct {
	key  uint64
	step func(float64)
	done func()
}

// Animator implements pip.Animator. It is not safe for concurrent use; the
// host confines it to the event loop.
type Animator struct {
	timeline *Timeline
	clock    func() time.Time
	next     uint64
	running  []*animation
}

// NewAnimator creates an animator reading time from clock (time.Now if nil).
func NewAnimator(clock func() time.Time) *Animator {
	if clock == nil {
		clock = time.Now
	}
	return &Animator{
		timeline: NewTimeline(0),
		clock:    clock,
	}
}

// EasingFor maps a pip animation spec to an easing function.
func EasingFor(spec pip.AnimationSpec) EasingFunc {
	switch spec.Curve {
	case pip.CurveSpring:
		return EaseSpring(spec.Damping, spec.Velocity)
	case pip.CurveEaseOut:
		return EaseOutCubic
	case pip.CurveEaseInOut:
		return EaseSmoothstep
	default:
		return EaseLinear
	}
}

// Animate registers an animation starting now.
func (a *Animator) Animate(spec pip.AnimationSpec, step func(progress float64), done func()) {
	a.next++
	key := a.next
	a.timeline.AnimateToWithOptions(key, 1, AnimateOptions{
		Duration: spec.Duration,
		Easing:   EasingFor(spec),
	}, a.clock())
	a.running = append(a.running, &animation{key: key, step: step, done: done})
}

// Active reports whether any animation is still running.
func (a *Animator) Active() bool {
	return len(a.running) > 0
}

// Tick steps every running animation to now and completes the finished ones.
// It reports whether anything was stepped, so the host knows to redraw.
func (a *Animator) Tick(now time.Time) bool {
	if len(a.running) == 0 {
		return false
	}
	current := a.running
	a.running = nil

	a.timeline.Update(now)
	var finished []*animation
	for _, anim := range current {
		anim.step(a.timeline.GetCached(anim.key))
		if a.timeline.IsAnimating(anim.key, now) {
			a.running = append(a.running, anim)
			continue
		}
		a.timeline.Reset(anim.key)
		finished = append(finished, anim)
	}
	for _, anim := range finished {
		if anim.done != nil {
			anim.done()
		}
	}
	return true
}
