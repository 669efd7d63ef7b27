// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/tcellhost/surface.go
// Summary: Terminal implementation of pip.Surface.
// Usage: Screen content and the overlay container are both CellSurfaces;
// Paint renders a surface tree onto a Canvas.
// Notes: Frames are in points and children are positioned relative to their
// parent's origin. Scale is applied about the frame center by resampling the
// app's cell grid.

package tcellhost

import (
	"log"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelpip/geom"
	"github.com/framegrace/texelpip/internal/effects"
	"github.com/framegrace/texelpip/pip"
)

// minVisibleAlpha is the opacity below which a surface is not drawn at all.
const minVisibleAlpha = 0.02

// CellSurface is a node of the terminal visual tree.
type CellSurface struct {
	frame  geom.Rect
	alpha  float64
	scale  float64
	radius float64
	shadow pip.Shadow

	parent   *CellSurface
	children []pip.Surface

	app        App
	fill       tcell.Style
	hasFill    bool
	cols, rows int
}

// NewCellSurface creates a surface; app may be nil for a plain container.
func NewCellSurface(app App) *CellSurface {
	return &CellSurface{alpha: 1, scale: 1, app: app}
}

// NewContainer returns a factory for filled overlay containers.
func NewContainer(fill tcell.Style) pip.SurfaceFactory {
	return pip.SurfaceFactoryFunc(func() pip.Surface {
		s := NewCellSurface(nil)
		s.fill = fill
		s.hasFill = true
		return s
	})
}

func (s *CellSurface) Frame() geom.Rect          { return s.frame }
func (s *CellSurface) SetFrame(frame geom.Rect)  { s.frame = frame }
func (s *CellSurface) Alpha() float64            { return s.alpha }
func (s *CellSurface) SetAlpha(alpha float64)    { s.alpha = clamp01(alpha) }
func (s *CellSurface) Scale() float64            { return s.scale }
func (s *CellSurface) SetScale(scale float64)    { s.scale = scale }
func (s *CellSurface) CornerRadius() float64     { return s.radius }
func (s *CellSurface) SetCornerRadius(r float64) { s.radius = r }
func (s *CellSurface) SetShadow(shadow pip.Shadow) {
	s.shadow = shadow
}

// Shadow returns the configured drop shadow.
func (s *CellSurface) Shadow() pip.Shadow { return s.shadow }

// Parent returns the surface this one is attached to, or nil.
func (s *CellSurface) Parent() *CellSurface { return s.parent }

// Children implements pip.Surface.
func (s *CellSurface) Children() []pip.Surface {
	return s.children
}

// AddChild implements pip.Surface. Only CellSurfaces can join the tree.
func (s *CellSurface) AddChild(child pip.Surface) {
	c, ok := child.(*CellSurface)
	if !ok {
		log.Printf("Surface: ignoring foreign child %T", child)
		return
	}
	c.RemoveFromParent()
	c.parent = s
	s.children = append(s.children, c)
}

// RemoveFromParent implements pip.Surface.
func (s *CellSurface) RemoveFromParent() {
	if s.parent == nil {
		return
	}
	p := s.parent
	for i, c := range p.children {
		if c == pip.Surface(s) {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	s.parent = nil
}

// DisplayRect is where the surface appears on screen, in cells, when its
// parent's origin sits at origin (in points).
func (s *CellSurface) DisplayRect(origin geom.Position) CellRect {
	abs := geom.Rect{Origin: s.frame.Origin.Add(origin), Size: s.frame.Size}
	return ToCells(geom.ScaleAboutCenter(abs, s.scale))
}

// LogicalSize is the cell grid the app renders at, before scaling.
func (s *CellSurface) LogicalSize() (int, int) {
	r := ToCells(geom.Rect{Size: s.frame.Size})
	return max(r.W, 1), max(r.H, 1)
}

// Paint draws s and its subtree. origin is the parent's absolute origin in
// points, alpha the parent's effective opacity and clip the visible area.
func (s *CellSurface) Paint(c *Canvas, origin geom.Position, alpha float64, clip CellRect) {
	a := alpha * s.alpha
	if a < minVisibleAlpha {
		return
	}
	dr := s.DisplayRect(origin)
	area := intersect(dr, clip)

	var grid [][]Cell
	if s.app != nil {
		cols, rows := s.LogicalSize()
		if cols != s.cols || rows != s.rows {
			s.cols, s.rows = cols, rows
			s.app.Resize(cols, rows)
		}
		grid = s.app.Render()
	}

	if grid != nil || s.hasFill {
		for y := area.Y; y < area.Y+area.H; y++ {
			for x := area.X; x < area.X+area.W; x++ {
				if s.radius > 0 && isCorner(dr, x, y) {
					continue
				}
				cell := Cell{Ch: ' ', Style: s.fill}
				if grid != nil {
					cell = sample(grid, s.cols, s.rows, dr, x, y, s.fill)
				}
				c.Set(x, y, cell.Ch, effects.FadeStyle(cell.Style, c.Backdrop(x, y), a))
			}
		}
	}

	abs := s.frame.Origin.Add(origin)
	for _, child := range s.children {
		if cs, ok := child.(*CellSurface); ok {
			cs.Paint(c, abs, a, area)
		}
	}
}

// PaintShadow darkens the cells under the surface's drop shadow. Only
// surfaces attached to the root cast one.
func (s *CellSurface) PaintShadow(c *Canvas, origin geom.Position, alpha float64) {
	alpha *= s.alpha
	if s.shadow.Opacity <= 0 || alpha < minVisibleAlpha {
		return
	}
	dr := s.DisplayRect(origin)
	dx := max(int(s.shadow.Offset.X/PointsPerCellX+0.5), 1)
	dy := max(int(s.shadow.Offset.Y/PointsPerCellY+0.5), 1)
	shadow := CellRect{X: dr.X + dx, Y: dr.Y + dy, W: dr.W, H: dr.H}
	intensity := s.shadow.Opacity * alpha * 0.6
	for y := shadow.Y; y < shadow.Y+shadow.H; y++ {
		for x := shadow.X; x < shadow.X+shadow.W; x++ {
			if dr.Contains(x, y) || (s.radius > 0 && isCorner(shadow, x, y)) {
				continue
			}
			c.Darken(x, y, intensity)
		}
	}
}

// sample maps the display cell (x, y) back onto the app grid.
func sample(grid [][]Cell, cols, rows int, dr CellRect, x, y int, fill tcell.Style) Cell {
	if dr.W <= 0 || dr.H <= 0 {
		return Cell{Ch: ' ', Style: fill}
	}
	sx := (x - dr.X) * cols / dr.W
	sy := (y - dr.Y) * rows / dr.H
	if sy < 0 || sy >= len(grid) || sx < 0 || sx >= len(grid[sy]) {
		return Cell{Ch: ' ', Style: fill}
	}
	return grid[sy][sx]
}

func isCorner(r CellRect, x, y int) bool {
	return (x == r.X || x == r.X+r.W-1) && (y == r.Y || y == r.Y+r.H-1)
}

func intersect(a, b CellRect) CellRect {
	x0, y0 := max(a.X, b.X), max(a.Y, b.Y)
	x1, y1 := min(a.X+a.W, b.X+b.W), min(a.Y+a.H, b.Y+b.H)
	if x1 <= x0 || y1 <= y0 {
		return CellRect{X: x0, Y: y0}
	}
	return CellRect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
