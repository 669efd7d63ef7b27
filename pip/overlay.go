// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: pip/overlay.go
// Summary: Attaches the floating overlay to the root surface and fades it in and out.
// Usage: Owned by Coordinator; one presenter per coordinator.
// Notes: Detach only ever happens from the dismiss fade's completion callback.

package pip

import (
	"github.com/framegrace/texelpip/geom"
)

// OverlayPresenter hosts a screen's content inside a small container
// attached to the root surface.
type OverlayPresenter struct {
	root     RootSurface
	factory  SurfaceFactory
	metrics  DisplayMetrics
	animator Animator
	geometry Geometry

	container Surface
	content   Surface
	attached  bool
	// fade invalidates a stale fade when a newer one starts.
	fade uint64

	drag *DragTracker
}

// NewOverlayPresenter wires a presenter to its collaborators.
func NewOverlayPresenter(root RootSurface, factory SurfaceFactory, metrics DisplayMetrics, animator Animator, geometry Geometry) *OverlayPresenter {
	p := &OverlayPresenter{
		root:     root,
		factory:  factory,
		metrics:  metrics,
		animator: animator,
		geometry: geometry.withDefaults(),
	}
	p.drag = NewDragTracker(p, metrics, animator, p.geometry.Insets)
	return p
}

// Drag returns the tracker moving this overlay.
func (p *OverlayPresenter) Drag() *DragTracker {
	return p.drag
}

// HandleDrag forwards a pointer event while the overlay is attached.
func (p *OverlayPresenter) HandleDrag(ev DragEvent) {
	if !p.attached {
		if ev.Source != nil {
			ev.Source.ResetTranslation()
		}
		return
	}
	p.drag.Handle(ev)
}

// Presented reports whether the overlay container is attached.
func (p *OverlayPresenter) Presented() bool {
	return p.attached
}

// Container returns the overlay surface, or nil before the first present.
func (p *OverlayPresenter) Container() Surface {
	return p.container
}

// Size is the overlay size for the current display scale.
func (p *OverlayPresenter) Size() geom.Size {
	return geom.OverlaySize(p.geometry.BaseSize, p.metrics.Scale())
}

// Frame returns the container frame in root coordinates.
func (p *OverlayPresenter) Frame() geom.Rect {
	if p.container == nil {
		return geom.Rect{}
	}
	return p.container.Frame()
}

// Center returns the overlay center.
func (p *OverlayPresenter) Center() geom.Position {
	return p.Frame().Center()
}

// SetCenter moves the overlay without changing its size.
func (p *OverlayPresenter) SetCenter(c geom.Position) {
	if p.container == nil {
		return
	}
	p.container.SetFrame(p.container.Frame().WithCenter(c))
}

// PresentFrom floats screen's content in the overlay. It returns
// ErrNoContent, without touching anything, when the screen has no surface.
func (p *OverlayPresenter) PresentFrom(screen DetachableScreen) error {
	content := screen.Content()
	if content == nil {
		return ErrNoContent
	}
	if p.container == nil {
		p.container = p.factory.NewSurface()
		p.container.SetShadow(overlayShadow)
		p.container.SetCornerRadius(overlayCornerRadius)
	}
	p.drag.Cancel()

	size := p.Size()
	p.container.AddChild(content)
	p.container.SetFrame(geom.Rect{
		Origin: geom.StartingOrigin(size, p.metrics.Bounds(), p.geometry.Insets),
		Size:   size,
	})

	// Content lays out at size/scale and is displayed scaled down about its
	// center, so it fills the container exactly.
	local := geom.Rect{Size: size}
	scale := p.geometry.ContentScale
	content.SetFrame(geom.ScaleAboutCenter(local, 1/scale))
	content.SetScale(scale)
	content.SetCornerRadius(overlayCornerRadius)
	content.SetShadow(overlayShadow)

	p.content = content
	if !p.attached {
		p.container.SetAlpha(0)
	}
	p.root.Attach(p.container)
	p.attached = true

	p.fadeTo(1, nil)
	return nil
}

// Dismiss fades the overlay out and detaches it once the fade finishes.
// Calling it with nothing presented is a no-op.
func (p *OverlayPresenter) Dismiss() {
	if !p.attached {
		return
	}
	p.drag.Cancel()
	for _, child := range p.container.Children() {
		child.SetCornerRadius(0)
	}
	container := p.container
	p.fadeTo(0, func() {
		p.root.Detach(container)
		p.attached = false
	})
}

// ResetContentTransform restores identity scale on the floated content.
func (p *OverlayPresenter) ResetContentTransform() {
	if p.content != nil {
		p.content.SetScale(1)
	}
}

// fadeTo animates the container from its current alpha, so a fade that
// interrupts another continues without a jump.
func (p *OverlayPresenter) fadeTo(target float64, done func()) {
	p.fade++
	gen := p.fade
	container := p.container
	from := container.Alpha()
	p.animator.Animate(FadeAnimation, func(t float64) {
		if gen != p.fade {
			return
		}
		container.SetAlpha(from + (target-from)*t)
	}, func() {
		if gen != p.fade {
			return
		}
		container.SetAlpha(target)
		if done != nil {
			done()
		}
	})
}
