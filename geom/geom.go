// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: geom/geom.go
// Summary: Value types and pure geometry for the floating overlay.
// Usage: Used by the pip engine to size, place and snap the overlay surface.
// Notes: Everything here is stateless; no function retains its arguments.

package geom

// Position is a point in screen coordinates. For the overlay it is the center.
type Position struct {
	X, Y float64
}

// Add returns p translated by d.
func (p Position) Add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

// Sub returns p - o.
func (p Position) Sub(o Position) Position {
	return Position{X: p.X - o.X, Y: p.Y - o.Y}
}

// Size holds surface dimensions.
type Size struct {
	Width, Height float64
}

// Bounds holds the host display dimensions.
type Bounds struct {
	Width, Height float64
}

// Insets are the fixed margins kept clear of the screen edge.
type Insets struct {
	X, Y float64
}

// Rect is an axis-aligned frame described by its top-left origin and size.
type Rect struct {
	Origin Position
	Size   Size
}

// Center returns the midpoint of r.
func (r Rect) Center() Position {
	return Position{
		X: r.Origin.X + r.Size.Width/2,
		Y: r.Origin.Y + r.Size.Height/2,
	}
}

// WithCenter returns r moved so its midpoint is c.
func (r Rect) WithCenter(c Position) Rect {
	r.Origin = Position{X: c.X - r.Size.Width/2, Y: c.Y - r.Size.Height/2}
	return r
}

// Contains reports whether p lies inside r (right and bottom edges excluded).
func (r Rect) Contains(p Position) bool {
	return p.X >= r.Origin.X && p.X < r.Origin.X+r.Size.Width &&
		p.Y >= r.Origin.Y && p.Y < r.Origin.Y+r.Size.Height
}

var (
	// BaseSize is the overlay size before display scaling.
	BaseSize = Size{Width: 70, Height: 100}

	// DefaultInsets are the margins used when none are configured.
	DefaultInsets = Insets{X: 20, Y: 40}
)

// OverlaySize scales base by the display density.
func OverlaySize(base Size, scale float64) Size {
	return Size{Width: base.Width * scale, Height: base.Height * scale}
}

// AutoRepositionPoint returns the snap reference: the horizontal midline and
// the bottom edge of the display.
func AutoRepositionPoint(bounds Bounds) Position {
	return Position{X: bounds.Width / 2, Y: bounds.Height}
}

// StartingOrigin is the top-left of a freshly presented overlay, tucked into
// the bottom-right corner.
func StartingOrigin(view Size, bounds Bounds, insets Insets) Position {
	return Position{
		X: bounds.Width - (view.Width + insets.X),
		Y: bounds.Height - (view.Height + insets.Y),
	}
}

// Snap computes where the overlay comes to rest after a drag. Horizontally it
// goes to whichever edge is nearer the center; vertically it stays put but is
// kept inside the inset band.
func Snap(center Position, view Size, bounds Bounds, insets Insets) Position {
	ref := AutoRepositionPoint(bounds)
	upper := ref.Y - (view.Height/2 + insets.Y)
	lower := view.Height/2 + insets.Y

	var final Position
	if center.X > ref.X {
		final.X = ref.X*2 - (view.Width/2 + insets.X)
	} else {
		final.X = view.Width/2 + insets.X
	}

	// Lower bound wins when the band is inverted.
	final.Y = center.Y
	if final.Y < lower {
		final.Y = lower
	} else if final.Y > upper {
		final.Y = upper
	}
	return final
}

// ScaleAboutCenter shrinks (or grows) frame by scale while keeping its
// center fixed, so a transformed surface does not visibly jump.
func ScaleAboutCenter(frame Rect, scale float64) Rect {
	c := frame.Center()
	out := Rect{Size: Size{Width: frame.Size.Width * scale, Height: frame.Size.Height * scale}}
	return out.WithCenter(c)
}

// Lerp interpolates between a and b. t outside [0,1] extrapolates, which the
// spring easing relies on for overshoot.
func Lerp(a, b Position, t float64) Position {
	return Position{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
	}
}
