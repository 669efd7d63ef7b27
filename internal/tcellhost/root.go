// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/tcellhost/root.go
// Summary: Root surface that floating overlays attach to.
// Notes: Attached surfaces paint above the navigation stack in attach order.

package tcellhost

import (
	"github.com/framegrace/texelpip/geom"
	"github.com/framegrace/texelpip/pip"
)

// Root implements pip.RootSurface for the terminal desktop.
type Root struct {
	attached []*CellSurface
	onChange func()
}

// NewRoot creates an empty root.
func NewRoot() *Root {
	return &Root{}
}

// OnChange registers a callback run after every attach or detach.
func (r *Root) OnChange(fn func()) {
	r.onChange = fn
}

// Attach implements pip.RootSurface. Attaching twice is a no-op.
func (r *Root) Attach(s pip.Surface) {
	cs, ok := s.(*CellSurface)
	if !ok {
		return
	}
	for _, a := range r.attached {
		if a == cs {
			return
		}
	}
	cs.RemoveFromParent()
	r.attached = append(r.attached, cs)
	r.changed()
}

// Detach implements pip.RootSurface.
func (r *Root) Detach(s pip.Surface) {
	for i, a := range r.attached {
		if pip.Surface(a) == s {
			r.attached = append(r.attached[:i], r.attached[i+1:]...)
			r.changed()
			return
		}
	}
}

// Attached returns the surfaces currently on the root, bottom first.
func (r *Root) Attached() []*CellSurface {
	return r.attached
}

// HitTest returns the topmost attached surface whose display rect holds the
// cell (x, y).
func (r *Root) HitTest(x, y int) (*CellSurface, bool) {
	for i := len(r.attached) - 1; i >= 0; i-- {
		s := r.attached[i]
		if s.Alpha() > 0 && s.DisplayRect(geom.Position{}).Contains(x, y) {
			return s, true
		}
	}
	return nil, false
}

// Paint composes every attached surface onto c.
func (r *Root) Paint(c *Canvas) {
	screen := CellRect{W: c.W, H: c.H}
	for _, s := range r.attached {
		s.PaintShadow(c, geom.Position{}, 1)
		s.Paint(c, geom.Position{}, 1, screen)
	}
}

func (r *Root) changed() {
	if r.onChange != nil {
		r.onChange()
	}
}
