// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: pip/interfaces.go
// Summary: Collaborator contracts the overlay engine depends on.
// Usage: Hosts implement these to plug the engine into a real display stack.
// Notes: All methods are called from the host's single event-loop goroutine.

package pip

import (
	"time"

	"github.com/framegrace/texelpip/geom"
)

// Shadow describes a drop shadow drawn behind a surface.
type Shadow struct {
	Offset  geom.Position
	Radius  float64
	Opacity float64
}

// Surface is a node in the host's visual hierarchy. The overlay container and
// a screen's content are both surfaces.
type Surface interface {
	Frame() geom.Rect
	SetFrame(frame geom.Rect)
	Alpha() float64
	SetAlpha(alpha float64)
	// Scale is a visual transform applied about the frame center; 1 is identity.
	Scale() float64
	SetScale(scale float64)
	CornerRadius() float64
	SetCornerRadius(radius float64)
	SetShadow(shadow Shadow)
	// AddChild reparents child, removing it from any previous parent first.
	AddChild(child Surface)
	Children() []Surface
	RemoveFromParent()
}

// RootSurface is the top-level drawing surface floating overlays attach to.
type RootSurface interface {
	Attach(s Surface)
	Detach(s Surface)
}

// SurfaceFactory creates the overlay container surface.
type SurfaceFactory interface {
	NewSurface() Surface
}

// SurfaceFactoryFunc adapts a function to SurfaceFactory.
type SurfaceFactoryFunc func() Surface

// NewSurface calls f.
func (f SurfaceFactoryFunc) NewSurface() Surface { return f() }

// DetachableScreen is the capability a screen needs to be floated. Screens
// implement it directly or are wrapped by something that does.
type DetachableScreen interface {
	ScreenID() string
	Title() string
	// Content returns the screen's visual surface, or nil when it has none yet.
	Content() Surface
}

// Placement tells how a screen sits in the host presentation stack.
type Placement int

const (
	// PlacementPushed means the screen is an entry in a navigation stack.
	PlacementPushed Placement = iota
	// PlacementPresented means the screen was presented modally.
	PlacementPresented
)

// Controller is a node of the host presentation stack.
type Controller interface {
	// IsNavigation reports whether the controller manages a push/pop stack.
	IsNavigation() bool
	// Presented returns the controller this one presented modally, if any.
	Presented() (Controller, bool)
	Push(screen DetachableScreen, animated bool)
	Pop(animated bool)
	PopToRoot(animated bool)
	Present(screen DetachableScreen, animated bool)
	Dismiss(animated bool)
}

// Host is the external presentation stack a screen normally lives in.
type Host interface {
	// Root returns the top-level controller; false when none is reachable.
	Root() (Controller, bool)
	// ContainerOf finds the controller holding screen and how it holds it.
	ContainerOf(screen DetachableScreen) (Controller, Placement, bool)
	SetNavigationHidden(hidden bool)
}

// CancelToken identifies a scheduled callback. The zero token is never issued.
type CancelToken uint64

// Scheduler runs callbacks later on the event loop.
type Scheduler interface {
	ScheduleOnce(delay time.Duration, fn func()) CancelToken
	ScheduleRepeating(period time.Duration, fn func()) CancelToken
	// Cancel is a no-op for unknown or already fired tokens.
	Cancel(token CancelToken)
}

// Curve selects the easing family for an animation.
type Curve int

const (
	CurveLinear Curve = iota
	CurveEaseInOut
	CurveEaseOut
	CurveSpring
)

// AnimationSpec is the easing configuration handed to the Animator.
type AnimationSpec struct {
	Duration time.Duration
	Curve    Curve
	// Damping and Velocity only apply to CurveSpring.
	Damping  float64
	Velocity float64
}

// Animator drives time-based transitions. step receives eased progress,
// which may overshoot 1 for springs; done runs once after the final step.
type Animator interface {
	Animate(spec AnimationSpec, step func(progress float64), done func())
}

// DisplayMetrics describes the physical display.
type DisplayMetrics interface {
	Bounds() geom.Bounds
	Scale() float64
}

// TranslationSource is an input source whose translation baseline can be
// reset after each consumed event.
type TranslationSource interface {
	ResetTranslation()
}

// ControlsView receives the animated opacity of the overlay affordances.
type ControlsView interface {
	SetControlsAlpha(alpha float64)
}
