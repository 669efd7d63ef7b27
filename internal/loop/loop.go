// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/loop/loop.go
// Summary: Single-goroutine event loop that also serves as the pip Scheduler.
// Usage: Everything that mutates overlay state is posted here; Run drains it.
// Notes: Timers fire on runtime goroutines but only ever post back into the loop,
// so scheduled callbacks run strictly sequentially with input and frames.

package loop

import (
	"context"
	"time"

	"github.com/framegrace/texelpip/pip"
)

// FrameInterval is the default animation frame period (~60 fps).
const FrameInterval = 16 * time.Millisecond

type timer struct {
	t      *time.Timer
	period time.Duration
	fn     func()
}

// Loop runs posted closures, timers and frame callbacks on one goroutine.
type Loop struct {
	tasks   chan func()
	done    chan struct{}
	frame   time.Duration
	onFrame func(now time.Time)

	// Loop-confined.
	next   pip.CancelToken
	timers map[pip.CancelToken]*timer
}

// New creates a loop with the given task queue depth.
func New(queue int) *Loop {
	if queue <= 0 {
		queue = 64
	}
	return &Loop{
		tasks:  make(chan func(), queue),
		done:   make(chan struct{}),
		frame:  FrameInterval,
		timers: make(map[pip.CancelToken]*timer),
	}
}

// OnFrame installs a callback invoked every frame interval while running.
// Must be called before Run.
func (l *Loop) OnFrame(interval time.Duration, fn func(now time.Time)) {
	if interval > 0 {
		l.frame = interval
	}
	l.onFrame = fn
}

// Post queues fn to run on the loop. It is safe from any goroutine and
// drops fn once the loop has stopped.
func (l *Loop) Post(fn func()) {
	select {
	case l.tasks <- fn:
	case <-l.done:
	}
}

// Run drains the loop until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)
	defer l.stopTimers()

	var frames <-chan time.Time
	if l.onFrame != nil {
		ticker := time.NewTicker(l.frame)
		defer ticker.Stop()
		frames = ticker.C
	}

	for {
		select {
		case fn := <-l.tasks:
			fn()
		case now := <-frames:
			l.onFrame(now)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// ScheduleOnce runs fn on the loop after delay. Must be called on the loop.
func (l *Loop) ScheduleOnce(delay time.Duration, fn func()) pip.CancelToken {
	return l.schedule(delay, 0, fn)
}

// ScheduleRepeating runs fn on the loop every period until cancelled.
// Must be called on the loop.
func (l *Loop) ScheduleRepeating(period time.Duration, fn func()) pip.CancelToken {
	if period <= 0 {
		period = time.Millisecond
	}
	return l.schedule(period, period, fn)
}

// Cancel stops a scheduled callback. Unknown tokens are ignored.
// Must be called on the loop.
func (l *Loop) Cancel(token pip.CancelToken) {
	if t, ok := l.timers[token]; ok {
		t.t.Stop()
		delete(l.timers, token)
	}
}

// Pending returns the number of live scheduled callbacks.
func (l *Loop) Pending() int {
	return len(l.timers)
}

func (l *Loop) schedule(delay, period time.Duration, fn func()) pip.CancelToken {
	l.next++
	token := l.next
	tm := &timer{period: period, fn: fn}
	tm.t = time.AfterFunc(delay, func() { l.Post(func() { l.fire(token) }) })
	l.timers[token] = tm
	return token
}

// fire runs on the loop. A timer cancelled after its AfterFunc already
// posted is no longer in the table and is skipped.
func (l *Loop) fire(token pip.CancelToken) {
	tm, ok := l.timers[token]
	if !ok {
		return
	}
	if tm.period > 0 {
		tm.t.Reset(tm.period)
	} else {
		delete(l.timers, token)
	}
	tm.fn()
}

func (l *Loop) stopTimers() {
	for token, tm := range l.timers {
		tm.t.Stop()
		delete(l.timers, token)
	}
}
