// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/tcellhost/metrics.go
// Summary: Maps the overlay's point space onto terminal cells.
// Notes: Cells are roughly twice as tall as they are wide, so one cell spans
// PointsPerCellX by PointsPerCellY points.

package tcellhost

import (
	"math"

	"github.com/framegrace/texelpip/geom"
)

const (
	PointsPerCellX = 4.0
	PointsPerCellY = 8.0
)

// CellRect is a rectangle in cell coordinates.
type CellRect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r CellRect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Metrics implements pip.DisplayMetrics for a terminal of cols×rows cells.
type Metrics struct {
	cols, rows int
	scale      float64
}

// NewMetrics creates metrics with the given display scale.
func NewMetrics(cols, rows int, scale float64) *Metrics {
	if scale <= 0 {
		scale = 1
	}
	return &Metrics{cols: cols, rows: rows, scale: scale}
}

// Resize records a new terminal size.
func (m *Metrics) Resize(cols, rows int) {
	m.cols, m.rows = cols, rows
}

// SetScale changes the display scale used for the next overlay layout.
func (m *Metrics) SetScale(scale float64) {
	if scale > 0 {
		m.scale = scale
	}
}

// Cells returns the terminal size.
func (m *Metrics) Cells() (int, int) { return m.cols, m.rows }

// Bounds implements pip.DisplayMetrics.
func (m *Metrics) Bounds() geom.Bounds {
	return geom.Bounds{
		Width:  float64(m.cols) * PointsPerCellX,
		Height: float64(m.rows) * PointsPerCellY,
	}
}

// Scale implements pip.DisplayMetrics.
func (m *Metrics) Scale() float64 { return m.scale }

// ToCells converts a point rectangle to the cells it covers.
func ToCells(r geom.Rect) CellRect {
	x0 := int(math.Round(r.Origin.X / PointsPerCellX))
	y0 := int(math.Round(r.Origin.Y / PointsPerCellY))
	x1 := int(math.Round((r.Origin.X + r.Size.Width) / PointsPerCellX))
	y1 := int(math.Round((r.Origin.Y + r.Size.Height) / PointsPerCellY))
	return CellRect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// ToPoints converts a cell rectangle to points.
func ToPoints(r CellRect) geom.Rect {
	return geom.Rect{
		Origin: geom.Position{X: float64(r.X) * PointsPerCellX, Y: float64(r.Y) * PointsPerCellY},
		Size:   geom.Size{Width: float64(r.W) * PointsPerCellX, Height: float64(r.H) * PointsPerCellY},
	}
}

// CellDelta converts a cell offset to a point translation.
func CellDelta(dx, dy int) geom.Position {
	return geom.Position{X: float64(dx) * PointsPerCellX, Y: float64(dy) * PointsPerCellY}
}
