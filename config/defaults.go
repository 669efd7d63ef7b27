// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Built-in defaults for every texelpip config section.

package config

// Section names.
const (
	SectionOverlay     = "overlay"
	SectionControls    = "controls"
	SectionAffordances = "affordances"
	SectionHost        = "host"
	SectionJournal     = "journal"
)

func defaultSections() map[string]Section {
	return map[string]Section{
		SectionOverlay: {
			"base_width":    70.0,
			"base_height":   100.0,
			"inset_x":       20.0,
			"inset_y":       40.0,
			"content_scale": 0.6,
			"screen_scale":  1.0,
		},
		SectionControls: {
			"hide_delay_ms":     2500.0,
			"maximize_delay_ms": 400.0,
		},
		SectionAffordances: {
			"minimize_title": "Minimize",
			"minimize_icon":  "",
			"maximize_title": "Maximize",
			"maximize_icon":  "",
			"close_title":    "Close",
			"close_icon":     "",
		},
		SectionHost: {
			"pop_to_root_on_close":             false,
			"hide_navigation_while_minimized": false,
		},
		SectionJournal: {
			"enabled": true,
			"path":    "",
		},
	}
}

func applyDefaults(cfg Config) {
	for name, defaults := range defaultSections() {
		cfg.RegisterDefaults(name, defaults)
	}
}
