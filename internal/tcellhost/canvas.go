// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/tcellhost/canvas.go
// Summary: Off-screen cell grid the desktop composes each frame into.

package tcellhost

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelpip/internal/effects"
)

// Canvas is a full-screen cell buffer flushed to the driver after composing.
type Canvas struct {
	W, H  int
	cells [][]Cell
	base  tcell.Style
}

// NewCanvas creates a canvas cleared to the given default colours.
func NewCanvas(w, h int, fg, bg tcell.Color) *Canvas {
	c := &Canvas{W: w, H: h, base: tcell.StyleDefault.Foreground(fg).Background(bg)}
	c.cells = make([][]Cell, h)
	for y := range c.cells {
		c.cells[y] = make([]Cell, w)
	}
	c.Clear()
	return c
}

// Clear resets every cell to a blank in the base style.
func (c *Canvas) Clear() {
	for y := range c.cells {
		for x := range c.cells[y] {
			c.cells[y][x] = Cell{Ch: ' ', Style: c.base}
		}
	}
}

// Base returns the default style of an empty cell.
func (c *Canvas) Base() tcell.Style { return c.base }

func (c *Canvas) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.W && y < c.H
}

// Set writes one cell; out-of-range writes are dropped.
func (c *Canvas) Set(x, y int, ch rune, style tcell.Style) {
	if !c.inside(x, y) {
		return
	}
	if ch == 0 {
		ch = ' '
	}
	c.cells[y][x] = Cell{Ch: ch, Style: style}
}

// Get returns the cell at (x, y), or a blank when out of range.
func (c *Canvas) Get(x, y int) Cell {
	if !c.inside(x, y) {
		return Cell{Ch: ' ', Style: c.base}
	}
	return c.cells[y][x]
}

// Backdrop is the colour a translucent cell drawn at (x, y) blends toward.
func (c *Canvas) Backdrop(x, y int) tcell.Color {
	_, bg, _ := c.Get(x, y).Style.Decompose()
	if !bg.Valid() {
		_, bg, _ = c.base.Decompose()
	}
	return bg
}

// Darken blends the existing cell toward black.
func (c *Canvas) Darken(x, y int, intensity float64) {
	if !c.inside(x, y) || intensity <= 0 {
		return
	}
	cell := c.cells[y][x]
	fg, bg, attrs := cell.Style.Decompose()
	if !fg.Valid() {
		fg, _, _ = c.base.Decompose()
	}
	if !bg.Valid() {
		_, bg, _ = c.base.Decompose()
	}
	black := tcell.NewRGBColor(0, 0, 0)
	c.cells[y][x].Style = tcell.StyleDefault.
		Foreground(effects.BlendColor(fg, black, intensity)).
		Background(effects.BlendColor(bg, black, intensity)).
		Attributes(attrs)
}

// Fill paints a rectangle with blanks in style.
func (c *Canvas) Fill(r CellRect, style tcell.Style) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			c.Set(x, y, ' ', style)
		}
	}
}

// DrawText writes text starting at (x, y), truncated to maxWidth columns with
// an ellipsis. It returns the number of columns used.
func (c *Canvas) DrawText(x, y, maxWidth int, text string, style tcell.Style) int {
	if maxWidth <= 0 {
		return 0
	}
	if runewidth.StringWidth(text) > maxWidth {
		text = runewidth.Truncate(text, maxWidth, "…")
	}
	col := 0
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		c.Set(x+col, y, r, style)
		for i := 1; i < w; i++ {
			c.Set(x+col+i, y, ' ', style)
		}
		col += w
	}
	return col
}

// Flush copies the canvas to the driver and shows it.
func (c *Canvas) Flush(d ScreenDriver) {
	for y := range c.cells {
		for x, cell := range c.cells[y] {
			d.SetContent(x, y, cell.Ch, nil, cell.Style)
		}
	}
	d.Show()
}
