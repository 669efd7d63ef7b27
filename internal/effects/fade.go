// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/fade.go
// Summary: Colour blending used to render surface opacity on a terminal.
// Usage: The compositor fades overlay cells toward whatever lies beneath them.

package effects

import (
	"github.com/gdamore/tcell/v2"
)

// Fallback colours for cells that use the terminal default.
var (
	DefaultFg = tcell.NewRGBColor(0xd0, 0xd0, 0xd0)
	DefaultBg = tcell.NewRGBColor(0x10, 0x10, 0x10)
)

// BlendColor linearly interpolates from original toward blend.
func BlendColor(original, blend tcell.Color, intensity float64) tcell.Color {
	if !original.Valid() || !blend.Valid() {
		return original
	}
	if intensity <= 0 {
		return original
	}
	if intensity >= 1 {
		return blend
	}

	r1, g1, b1 := original.RGB()
	r2, g2, b2 := blend.RGB()
	mix := func(a, b int32) int32 {
		v := int32(float64(a)*(1-intensity) + float64(b)*intensity)
		if v < 0 {
			return 0
		}
		if v > 255 {
			return 255
		}
		return v
	}
	return tcell.NewRGBColor(mix(r1, r2), mix(g1, g2), mix(b1, b2))
}

// FadeStyle renders style at the given opacity over a backdrop colour,
// keeping its text attributes.
func FadeStyle(style tcell.Style, backdrop tcell.Color, alpha float64) tcell.Style {
	if alpha >= 1 {
		return style
	}
	fg, bg, attrs := style.Decompose()
	if !fg.Valid() {
		fg = DefaultFg
	}
	if !bg.Valid() {
		bg = DefaultBg
	}
	if !backdrop.Valid() {
		backdrop = DefaultBg
	}
	return tcell.StyleDefault.
		Foreground(BlendColor(fg, backdrop, 1-alpha)).
		Background(BlendColor(bg, backdrop, 1-alpha)).
		Attributes(attrs)
}
