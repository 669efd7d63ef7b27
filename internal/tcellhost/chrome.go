// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/tcellhost/chrome.go
// Summary: Navigation bar and overlay affordance labels.
// Usage: Chrome is the pip.ControlsView of a coordinator; the desktop draws it
// after the screen content and hit-tests clicks against the last layout.

package tcellhost

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelpip/internal/effects"
	"github.com/framegrace/texelpip/pip"
)

// Action is what a click on a chrome label does.
type Action int

const (
	ActionNone Action = iota
	ActionToggle
	ActionClose
	ActionBack
)

// clickableAlpha is the minimum controls opacity at which labels take clicks.
const clickableAlpha = 0.5

// Label is a laid out, clickable piece of chrome.
type Label struct {
	Action Action
	Rect   CellRect
	Text   string
}

// Chrome draws the navigation bar and the affordance labels.
type Chrome struct {
	alpha    float64
	labels   []Label
	barStyle tcell.Style
	btnStyle tcell.Style
	onChange func()
}

// NewChrome creates chrome with visible controls.
func NewChrome() *Chrome {
	return &Chrome{
		alpha:    1,
		barStyle: tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.NewRGBColor(0x30, 0x30, 0x50)),
		btnStyle: tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.NewRGBColor(0xd0, 0xd0, 0xe0)).Bold(true),
	}
}

// OnChange registers a callback for opacity changes.
func (c *Chrome) OnChange(fn func()) {
	c.onChange = fn
}

// SetControlsAlpha implements pip.ControlsView.
func (c *Chrome) SetControlsAlpha(alpha float64) {
	c.alpha = clamp01(alpha)
	if c.onChange != nil {
		c.onChange()
	}
}

// Alpha returns the current affordance opacity.
func (c *Chrome) Alpha() float64 { return c.alpha }

// Labels returns the labels laid out by the last draw.
func (c *Chrome) Labels() []Label { return c.labels }

// Reset forgets the previous layout. Call once per frame before drawing.
func (c *Chrome) Reset() {
	c.labels = c.labels[:0]
}

// DrawNavigation draws the one-row navigation bar at the top of the canvas.
func (c *Chrome) DrawNavigation(canvas *Canvas, title string, canGoBack bool) {
	canvas.Fill(CellRect{W: canvas.W, H: 1}, c.barStyle)
	x := 1
	if canGoBack {
		text := "‹ Back"
		w := canvas.DrawText(x, 0, canvas.W-x, text, c.barStyle.Bold(true))
		c.labels = append(c.labels, Label{Action: ActionBack, Rect: CellRect{X: x, Y: 0, W: w, H: 1}, Text: text})
		x += w + 2
	}
	if tw := runewidth.StringWidth(title); tw < canvas.W-x {
		x = max(x, (canvas.W-tw)/2)
	}
	canvas.DrawText(x, 0, canvas.W-x, title, c.barStyle)
}

// DrawControls draws the primary and close affordances right-aligned on the
// first row of area.
func (c *Chrome) DrawControls(canvas *Canvas, area CellRect, primary, closer pip.Affordance) {
	if c.alpha < minVisibleAlpha || area.W <= 0 || area.H <= 0 {
		return
	}
	texts := []string{labelText(closer), labelText(primary)}
	actions := []Action{ActionClose, ActionToggle}
	budget := max((area.W-1)/len(texts)-1, 1)

	right := area.X + area.W
	for i, text := range texts {
		if runewidth.StringWidth(text) > budget {
			text = runewidth.Truncate(text, budget, "…")
		}
		w := runewidth.StringWidth(text)
		x := right - w
		if x < area.X {
			break
		}
		for col := x; col < x+w; col++ {
			style := effects.FadeStyle(c.btnStyle, canvas.Backdrop(col, area.Y), c.alpha)
			canvas.Set(col, area.Y, ' ', style)
		}
		canvas.DrawText(x, area.Y, w, text, effects.FadeStyle(c.btnStyle, canvas.Backdrop(x, area.Y), c.alpha))
		if c.alpha >= clickableAlpha {
			c.labels = append(c.labels, Label{Action: actions[i], Rect: CellRect{X: x, Y: area.Y, W: w, H: 1}, Text: text})
		}
		right = x - 1
	}
}

// HitTest returns the action of the label under (x, y).
func (c *Chrome) HitTest(x, y int) Action {
	for i := len(c.labels) - 1; i >= 0; i-- {
		if c.labels[i].Rect.Contains(x, y) {
			return c.labels[i].Action
		}
	}
	return ActionNone
}

func labelText(a pip.Affordance) string {
	switch {
	case a.Icon != "" && a.Title != "":
		return " " + a.Icon + " " + a.Title + " "
	case a.Icon != "":
		return " " + a.Icon + " "
	default:
		return " " + a.Title + " "
	}
}
