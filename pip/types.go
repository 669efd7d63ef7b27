// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: pip/types.go
// Summary: State enums, tuning constants and customization for the engine.

package pip

import (
	"fmt"
	"time"

	"github.com/framegrace/texelpip/geom"
)

// OverlayState is the presentation state of a coordinator.
type OverlayState int

const (
	// Embedded means the screen is part of the host stack at full size.
	Embedded OverlayState = iota
	// Floating means the screen's content lives in the overlay.
	Floating
	// Closed is terminal.
	Closed
)

func (s OverlayState) String() string {
	switch s {
	case Embedded:
		return "embedded"
	case Floating:
		return "floating"
	case Closed:
		return "closed"
	default:
		return fmt.Sprintf("OverlayState(%d)", int(s))
	}
}

const (
	// ContentScale is the visual scale applied to content inside the overlay.
	ContentScale = 0.6
	// MaximizeDelay lets the dismiss fade start before content changes parent.
	MaximizeDelay = 400 * time.Millisecond
	// ControlsHideDelay is how long affordances stay up without interaction.
	ControlsHideDelay = 2500 * time.Millisecond
)

// Overlay decoration.
const (
	overlayCornerRadius = 10
	shadowRadius        = 3
	shadowOpacity       = 0.75
)

var (
	// SnapAnimation moves the overlay to its resting point after a drag.
	SnapAnimation = AnimationSpec{
		Duration: 400 * time.Millisecond,
		Curve:    CurveSpring,
		Damping:  0.6,
		Velocity: 0.4,
	}
	// FadeAnimation is used to show and hide the overlay.
	FadeAnimation = AnimationSpec{Duration: 500 * time.Millisecond, Curve: CurveEaseInOut}
	// ControlsFadeAnimation fades the affordances in and out.
	ControlsFadeAnimation = AnimationSpec{Duration: 500 * time.Millisecond, Curve: CurveEaseInOut}

	overlayShadow = Shadow{Offset: geom.Position{X: 1, Y: 1}, Radius: shadowRadius, Opacity: shadowOpacity}
)

// Affordance is the label and icon of an overlay button.
type Affordance struct {
	Title string
	Icon  string
}

// Customization is pure configuration supplied by the screen author.
type Customization struct {
	Minimize Affordance
	Maximize Affordance
	Close    Affordance
	// PopToRootOnClose pops the whole navigation stack instead of one level
	// whenever the screen leaves the host.
	PopToRootOnClose bool
	// HideNavigationWhileMinimized hides the host's navigation chrome while
	// the screen floats.
	HideNavigationWhileMinimized bool
}

// DefaultCustomization returns the stock labels with both flags off.
func DefaultCustomization() Customization {
	return Customization{
		Minimize: Affordance{Title: "Minimize"},
		Maximize: Affordance{Title: "Maximize"},
		Close:    Affordance{Title: "Close"},
	}
}

// Geometry bundles the layout constants of the overlay.
type Geometry struct {
	BaseSize     geom.Size
	Insets       geom.Insets
	ContentScale float64
}

// DefaultGeometry returns a 70×100 base, (20, 40) insets and 0.6 content scale.
func DefaultGeometry() Geometry {
	return Geometry{
		BaseSize:     geom.BaseSize,
		Insets:       geom.DefaultInsets,
		ContentScale: ContentScale,
	}
}

func (g Geometry) withDefaults() Geometry {
	def := DefaultGeometry()
	if g.BaseSize.Width <= 0 || g.BaseSize.Height <= 0 {
		g.BaseSize = def.BaseSize
	}
	if g.Insets == (geom.Insets{}) {
		g.Insets = def.Insets
	}
	if g.ContentScale <= 0 {
		g.ContentScale = def.ContentScale
	}
	return g
}

// ControlVisibility is a snapshot of the affordance visibility timer.
type ControlVisibility struct {
	Visible bool
	// PendingHideDeadline is meaningful only when HasDeadline is set.
	PendingHideDeadline time.Time
	HasDeadline         bool
}
