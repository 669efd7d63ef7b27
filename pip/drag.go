// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: pip/drag.go
// Summary: Pointer drag tracking and snap-to-edge for the floating overlay.
// Usage: Owned by OverlayPresenter; the host feeds it DragEvents.
// Notes: Movement is unconstrained mid-drag; clamping happens only at release.

package pip

import (
	"github.com/framegrace/texelpip/geom"
)

// DragPhase is the stage of a pointer gesture.
type DragPhase int

const (
	DragBegan DragPhase = iota
	DragChanged
	DragEnded
	DragCancelled
)

// DragEvent is one pointer gesture update. Translation is incremental since
// the previous event.
type DragEvent struct {
	Phase       DragPhase
	Translation geom.Position
	// Source, when set, has its baseline reset once the event is consumed.
	Source TranslationSource
}

// DragSession is the state of an in-progress gesture.
type DragSession struct {
	Active          bool
	LastTranslation geom.Position
}

// dragTarget is what a drag moves.
type dragTarget interface {
	Center() geom.Position
	SetCenter(c geom.Position)
	Frame() geom.Rect
}

// DragTracker turns drag events into center updates and snaps the target to
// an edge when the gesture ends.
type DragTracker struct {
	target   dragTarget
	metrics  DisplayMetrics
	animator Animator
	insets   geom.Insets

	session     DragSession
	start       geom.Position
	accumulated geom.Position

	// gen invalidates in-flight snap animations when a new gesture starts.
	gen uint64

	onSnap func(rest geom.Position)
}

// NewDragTracker creates a tracker moving target within metrics' bounds.
func NewDragTracker(target dragTarget, metrics DisplayMetrics, animator Animator, insets geom.Insets) *DragTracker {
	return &DragTracker{
		target:   target,
		metrics:  metrics,
		animator: animator,
		insets:   insets,
	}
}

// OnSnap registers a callback fired with the resting point once a snap
// animation completes.
func (d *DragTracker) OnSnap(fn func(rest geom.Position)) {
	d.onSnap = fn
}

// Session returns the current gesture state.
func (d *DragTracker) Session() DragSession {
	return d.session
}

// Accumulated returns the sum of translations applied in the current (or
// most recently ended) session.
func (d *DragTracker) Accumulated() geom.Position {
	return d.accumulated
}

// Handle dispatches ev and resets the source's translation baseline.
func (d *DragTracker) Handle(ev DragEvent) {
	switch ev.Phase {
	case DragBegan:
		d.Begin()
	case DragChanged:
		d.Change(ev.Translation)
	case DragEnded:
		// A release away from the last motion still moves the target.
		if d.session.Active && ev.Translation != (geom.Position{}) {
			d.Change(ev.Translation)
		}
		d.End()
	case DragCancelled:
		d.End()
	}
	d.session.LastTranslation = geom.Position{}
	if ev.Source != nil {
		ev.Source.ResetTranslation()
	}
}

// Begin opens a session. A second Begin while one is active is ignored.
func (d *DragTracker) Begin() {
	if d.session.Active {
		return
	}
	d.gen++
	d.session = DragSession{Active: true}
	d.start = d.target.Center()
	d.accumulated = geom.Position{}
}

// Change moves the target by delta. A change without a prior Begin opens
// the session implicitly.
func (d *DragTracker) Change(delta geom.Position) {
	if !d.session.Active {
		d.Begin()
	}
	d.session.LastTranslation = delta
	d.accumulated = d.accumulated.Add(delta)
	d.target.SetCenter(d.target.Center().Add(delta))
}

// End closes the session and animates the target to its snap point.
func (d *DragTracker) End() {
	if !d.session.Active {
		return
	}
	d.session = DragSession{}

	from := d.target.Center()
	rest := geom.Snap(from, d.target.Frame().Size, d.metrics.Bounds(), d.insets)
	gen := d.gen
	d.animator.Animate(SnapAnimation, func(t float64) {
		if gen != d.gen {
			return
		}
		d.target.SetCenter(geom.Lerp(from, rest, t))
	}, func() {
		if gen != d.gen {
			return
		}
		d.target.SetCenter(rest)
		if d.onSnap != nil {
			d.onSnap(rest)
		}
	})
}

// Cancel drops the session and any in-flight snap without moving the target.
func (d *DragTracker) Cancel() {
	d.gen++
	d.session = DragSession{}
}
