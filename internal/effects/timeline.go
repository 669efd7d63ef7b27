// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/timeline.go
// Summary: Per-key animation timeline with configurable easing functions.
// Usage: Backs the Animator; each running animation is one key from 0 to 1.
// Notes: Time is always passed in explicitly so frames and tests agree on "now".

package effects

import (
	"math"
	"sync"
	"time"
)

// EasingFunc maps linear progress [0,1] to eased progress. Springs may
// return values above 1 before settling.
type EasingFunc func(progress float64) float64

// Common easing functions
var (
	// EaseLinear - No easing, constant speed
	EaseLinear EasingFunc = func(t float64) float64 { return t }

	// EaseSmoothstep - Smooth S-curve, accelerates at start and decelerates at end
	EaseSmoothstep EasingFunc = func(t float64) float64 {
		return t * t * (3.0 - 2.0*t)
	}

	// EaseOutQuad - Quadratic ease-out (fast start, decelerating)
	EaseOutQuad EasingFunc = func(t float64) float64 {
		return t * (2.0 - t)
	}

	// EaseInOutQuad - Quadratic ease-in-out
	EaseInOutQuad EasingFunc = func(t float64) float64 {
		if t < 0.5 {
			return 2.0 * t * t
		}
		return -1.0 + (4.0-2.0*t)*t
	}

	// EaseOutCubic - Cubic ease-out
	EaseOutCubic EasingFunc = func(t float64) float64 {
		t1 := t - 1.0
		return t1*t1*t1 + 1.0
	}
)

// springStiffness is the natural frequency in radians per animation length.
// At damping 0.6 the residual is under 0.3% by the end.
const springStiffness = 10.0

// EaseSpring returns a damped spring settling on 1. damping is the damping
// ratio (1 is critical); velocity is the initial velocity in units of total
// distance per animation length.
func EaseSpring(damping, velocity float64) EasingFunc {
	if damping <= 0 {
		damping = 1
	}
	w := springStiffness
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		// Displacement from the target starts at -1.
		if damping >= 1 {
			a := -1.0
			b := velocity + w*a
			return 1 + math.Exp(-w*t)*(a+b*t)
		}
		wd := w * math.Sqrt(1-damping*damping)
		a := -1.0
		b := (velocity + damping*w*a) / wd
		return 1 + math.Exp(-damping*w*t)*(a*math.Cos(wd*t)+b*math.Sin(wd*t))
	}
}

// AnimateOptions configures an animation transition
type AnimateOptions struct {
	Duration time.Duration // Animation duration (default: 0 = instant)
	Easing   EasingFunc    // Easing function (default: EaseSmoothstep)
}

// DefaultAnimateOptions returns options with smoothstep easing
func DefaultAnimateOptions(duration time.Duration) AnimateOptions {
	return AnimateOptions{
		Duration: duration,
		Easing:   EaseSmoothstep,
	}
}

// keyState tracks animation state for a single key
type keyState struct {
	current   float64
	start     float64
	target    float64
	startTime time.Time
	duration  time.Duration
	easing    EasingFunc
}

// Timeline provides thread-safe, per-key animation timelines with automatic state management
type Timeline struct {
	states         map[interface{}]*keyState
	mu             sync.RWMutex
	defaultEasing  EasingFunc
	defaultInitial float64
}

// NewTimeline creates a new timeline manager
// defaultInitial: initial value for uninitialized keys (typically 0.0)
func NewTimeline(defaultInitial float64) *Timeline {
	return &Timeline{
		states:         make(map[interface{}]*keyState),
		defaultEasing:  EaseSmoothstep,
		defaultInitial: defaultInitial,
	}
}

// AnimateTo starts or updates an animation for the given key and returns the
// value at now.
func (tl *Timeline) AnimateTo(key interface{}, target float64, duration time.Duration, now time.Time) float64 {
	return tl.AnimateToWithOptions(key, target, DefaultAnimateOptions(duration), now)
}

// AnimateToWithOptions starts an animation with custom easing function.
// An existing key restarts from its current value.
func (tl *Timeline) AnimateToWithOptions(key interface{}, target float64, opts AnimateOptions, now time.Time) float64 {
	tl.mu.Lock()
	defer tl.mu.Unlock()

	state := tl.states[key]
	start := tl.defaultInitial
	if state != nil {
		start = tl.computeValue(state, now)
	} else {
		state = &keyState{}
		tl.states[key] = state
	}

	state.current = start
	state.start = start
	state.target = target
	state.startTime = now
	state.duration = opts.Duration
	state.easing = opts.Easing
	if state.easing == nil {
		state.easing = tl.defaultEasing
	}

	if opts.Duration <= 0 || start == target {
		state.current = target
		state.duration = 0
		return target
	}
	return start
}

// Get returns the value for key at now, or the default for unknown keys.
func (tl *Timeline) Get(key interface{}, now time.Time) float64 {
	tl.mu.Lock()
	defer tl.mu.Unlock()

	state := tl.states[key]
	if state == nil {
		return tl.defaultInitial
	}
	state.current = tl.computeValue(state, now)
	return state.current
}

// GetCached returns the last computed value without recomputing.
func (tl *Timeline) GetCached(key interface{}) float64 {
	tl.mu.RLock()
	defer tl.mu.RUnlock()
	if state := tl.states[key]; state != nil {
		return state.current
	}
	return tl.defaultInitial
}

// IsAnimating returns true if the key has not reached its target at now.
func (tl *Timeline) IsAnimating(key interface{}, now time.Time) bool {
	tl.mu.RLock()
	defer tl.mu.RUnlock()

	state := tl.states[key]
	if state == nil || state.duration <= 0 {
		return false
	}
	return now.Sub(state.startTime) < state.duration
}

// HasActiveAnimations returns true if any key is still animating at now.
func (tl *Timeline) HasActiveAnimations(now time.Time) bool {
	tl.mu.RLock()
	defer tl.mu.RUnlock()

	for _, state := range tl.states {
		if state.duration > 0 && now.Sub(state.startTime) < state.duration {
			return true
		}
	}
	return false
}

// Update advances all animations to the given time
func (tl *Timeline) Update(now time.Time) {
	tl.mu.Lock()
	defer tl.mu.Unlock()

	for _, state := range tl.states {
		state.current = tl.computeValue(state, now)
	}
}

// Reset removes the timeline state for a key
func (tl *Timeline) Reset(key interface{}) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	delete(tl.states, key)
}

// Len returns the number of tracked keys.
func (tl *Timeline) Len() int {
	tl.mu.RLock()
	defer tl.mu.RUnlock()
	return len(tl.states)
}

// computeValue calculates the current value for a state at the given time
// Must be called with lock held
func (tl *Timeline) computeValue(state *keyState, now time.Time) float64 {
	if state.duration <= 0 {
		return state.target
	}
	if now.Before(state.startTime) {
		return state.start
	}

	elapsed := now.Sub(state.startTime)
	if elapsed >= state.duration {
		return state.target
	}

	progress := float64(elapsed) / float64(state.duration)
	easing := state.easing
	if easing == nil {
		easing = tl.defaultEasing
	}
	return state.start + (state.target-state.start)*easing(progress)
}
