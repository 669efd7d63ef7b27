// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/tcellhost/pointer.go
// Summary: Turns tcell mouse reports into pan gestures and clicks.
// Notes: Translation is measured from a baseline cell that ResetTranslation
// moves to the current cell, so every delivered event carries a delta.

package tcellhost

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelpip/pip"
)

// PointerKind classifies what a mouse report produced.
type PointerKind int

const (
	PointerNone PointerKind = iota
	// PointerDrag carries a DragEvent for the overlay.
	PointerDrag
	// PointerClick is a press and release without movement.
	PointerClick
)

// PointerResult is the outcome of feeding one mouse report.
type PointerResult struct {
	Kind PointerKind
	Drag pip.DragEvent
	X, Y int
}

// Pointer recognises pans that start on a draggable region.
type Pointer struct {
	pressed  bool
	dragging bool
	grabbed  bool
	// base is the cell translations are measured from; cur the latest cell.
	baseX, baseY int
	curX, curY   int
}

// NewPointer creates an idle recognizer.
func NewPointer() *Pointer {
	return &Pointer{}
}

// ResetTranslation implements pip.TranslationSource.
func (p *Pointer) ResetTranslation() {
	p.baseX, p.baseY = p.curX, p.curY
}

// Dragging reports whether a pan is in progress.
func (p *Pointer) Dragging() bool { return p.dragging }

// Feed processes one mouse report. draggable tells whether a press at a cell
// may start a pan.
func (p *Pointer) Feed(ev *tcell.EventMouse, draggable func(x, y int) bool) PointerResult {
	x, y := ev.Position()
	down := ev.Buttons()&tcell.Button1 != 0

	switch {
	case down && !p.pressed:
		p.pressed = true
		p.dragging = false
		p.grabbed = draggable != nil && draggable(x, y)
		p.baseX, p.baseY = x, y
		p.curX, p.curY = x, y
		return PointerResult{}

	case down && p.pressed:
		if !p.grabbed || (x == p.curX && y == p.curY && !p.dragging) {
			return PointerResult{}
		}
		// The first motion opens the session implicitly so its delta is kept.
		p.curX, p.curY = x, y
		p.dragging = true
		return PointerResult{Kind: PointerDrag, X: x, Y: y, Drag: p.event(pip.DragChanged)}

	case !down && p.pressed:
		p.pressed = false
		if p.dragging {
			p.dragging = false
			p.curX, p.curY = x, y
			return PointerResult{Kind: PointerDrag, X: x, Y: y, Drag: p.event(pip.DragEnded)}
		}
		return PointerResult{Kind: PointerClick, X: x, Y: y}
	}
	return PointerResult{}
}

// Cancel aborts an in-progress pan, returning the cancel event to deliver.
func (p *Pointer) Cancel() (pip.DragEvent, bool) {
	if !p.dragging {
		p.pressed = false
		return pip.DragEvent{}, false
	}
	p.pressed = false
	p.dragging = false
	return p.event(pip.DragCancelled), true
}

func (p *Pointer) event(phase pip.DragPhase) pip.DragEvent {
	return pip.DragEvent{
		Phase:       phase,
		Translation: CellDelta(p.curX-p.baseX, p.curY-p.baseY),
		Source:      p,
	}
}
