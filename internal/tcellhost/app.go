// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/tcellhost/app.go
// Summary: Cell-grid apps and the detachable screens that wrap them.
// Usage: Screens under screens/ implement App; AppScreen hands them to a
// Coordinator as pip.DetachableScreen.

package tcellhost

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelpip/pip"
)

// Cell is one character cell of rendered content.
type Cell struct {
	Ch    rune
	Style tcell.Style
}

// App renders into a grid of cells. Run blocks until Stop is called; Render
// and Resize are called from the desktop loop while Run is active.
type App interface {
	Run() error
	Stop()
	Resize(cols, rows int)
	Render() [][]Cell
	GetTitle() string
	HandleKey(ev *tcell.EventKey)
	SetRefreshNotifier(refreshChan chan<- bool)
}

// AppScreen exposes an App as a floatable screen. Its content surface is
// created once and moves between the navigation stack and the overlay.
type AppScreen struct {
	id      string
	app     App
	content *CellSurface
}

// NewAppScreen wraps app under the given screen id.
func NewAppScreen(id string, app App) *AppScreen {
	return &AppScreen{
		id:      id,
		app:     app,
		content: NewCellSurface(app),
	}
}

// ScreenID implements pip.DetachableScreen.
func (s *AppScreen) ScreenID() string { return s.id }

// Title implements pip.DetachableScreen.
func (s *AppScreen) Title() string { return s.app.GetTitle() }

// Content implements pip.DetachableScreen.
func (s *AppScreen) Content() pip.Surface {
	if s.content == nil {
		return nil
	}
	return s.content
}

// Surface returns the concrete content surface.
func (s *AppScreen) Surface() *CellSurface { return s.content }

// App returns the wrapped app.
func (s *AppScreen) App() App { return s.app }

func blankGrid(cols, rows int) [][]Cell {
	buf := make([][]Cell, rows)
	for y := range buf {
		buf[y] = make([]Cell, cols)
		for x := range buf[y] {
			buf[y][x] = Cell{Ch: ' ', Style: tcell.StyleDefault}
		}
	}
	return buf
}
