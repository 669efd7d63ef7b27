// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/options.go
// Summary: Resolves raw config sections into typed overlay options.

package config

import (
	"log"
	"time"

	"github.com/framegrace/texelpip/geom"
	"github.com/framegrace/texelpip/pip"
)

// Options is the typed view of a Config.
type Options struct {
	Customization pip.Customization
	Geometry      pip.Geometry
	// ScreenScale is the display scale used to lay out the overlay.
	ScreenScale       float64
	ControlsHideDelay time.Duration
	MaximizeDelay     time.Duration
	JournalEnabled    bool
	JournalPath       string
}

// Options resolves cfg. Missing or invalid values fall back to the defaults.
func (c Config) Options() Options {
	def := pip.DefaultCustomization()
	geo := pip.DefaultGeometry()

	opts := Options{
		Customization: pip.Customization{
			Minimize: pip.Affordance{
				Title: c.GetString(SectionAffordances, "minimize_title", def.Minimize.Title),
				Icon:  c.GetString(SectionAffordances, "minimize_icon", def.Minimize.Icon),
			},
			Maximize: pip.Affordance{
				Title: c.GetString(SectionAffordances, "maximize_title", def.Maximize.Title),
				Icon:  c.GetString(SectionAffordances, "maximize_icon", def.Maximize.Icon),
			},
			Close: pip.Affordance{
				Title: c.GetString(SectionAffordances, "close_title", def.Close.Title),
				Icon:  c.GetString(SectionAffordances, "close_icon", def.Close.Icon),
			},
			PopToRootOnClose:             c.GetBool(SectionHost, "pop_to_root_on_close", def.PopToRootOnClose),
			HideNavigationWhileMinimized: c.GetBool(SectionHost, "hide_navigation_while_minimized", def.HideNavigationWhileMinimized),
		},
		Geometry: pip.Geometry{
			BaseSize: geom.Size{
				Width:  c.GetFloat(SectionOverlay, "base_width", geo.BaseSize.Width),
				Height: c.GetFloat(SectionOverlay, "base_height", geo.BaseSize.Height),
			},
			Insets: geom.Insets{
				X: c.GetFloat(SectionOverlay, "inset_x", geo.Insets.X),
				Y: c.GetFloat(SectionOverlay, "inset_y", geo.Insets.Y),
			},
			ContentScale: c.GetFloat(SectionOverlay, "content_scale", geo.ContentScale),
		},
		ScreenScale:       c.GetFloat(SectionOverlay, "screen_scale", 1),
		ControlsHideDelay: c.GetDuration(SectionControls, "hide_delay_ms", pip.ControlsHideDelay),
		MaximizeDelay:     c.GetDuration(SectionControls, "maximize_delay_ms", pip.MaximizeDelay),
		JournalEnabled:    c.GetBool(SectionJournal, "enabled", true),
		JournalPath:       c.GetString(SectionJournal, "path", ""),
	}

	if opts.Geometry.BaseSize.Width <= 0 || opts.Geometry.BaseSize.Height <= 0 {
		log.Printf("Config: invalid base size %vx%v, using default", opts.Geometry.BaseSize.Width, opts.Geometry.BaseSize.Height)
		opts.Geometry.BaseSize = geo.BaseSize
	}
	if opts.Geometry.ContentScale <= 0 || opts.Geometry.ContentScale > 1 {
		log.Printf("Config: invalid content_scale %v, using default", opts.Geometry.ContentScale)
		opts.Geometry.ContentScale = geo.ContentScale
	}
	if opts.ScreenScale <= 0 {
		opts.ScreenScale = 1
	}
	return opts
}
