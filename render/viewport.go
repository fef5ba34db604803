package render

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Viewport maps world coordinates (y up) onto terminal cells (y down)
// Terminal cells are roughly twice as tall as wide, so x gets twice the density
type Viewport struct {
	Min, Max   r2.Vec
	Cols, Rows int
}

// NewViewport fits the world rectangle [min, max] into cols x rows cells
func NewViewport(min, max r2.Vec, cols, rows int) Viewport {
	return Viewport{Min: min, Max: max, Cols: max0(cols), Rows: max0(rows)}
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// Resize keeps the world rectangle and changes the cell grid
func (v *Viewport) Resize(cols, rows int) {
	v.Cols, v.Rows = max0(cols), max0(rows)
}

func (v Viewport) scale() (sx, sy float64) {
	w, h := v.Max.X-v.Min.X, v.Max.Y-v.Min.Y
	if w <= 0 || h <= 0 || v.Cols == 0 || v.Rows == 0 {
		return 0, 0
	}
	return float64(v.Cols) / w, float64(v.Rows) / h
}

// ToCell returns the cell holding p; ok is false outside the grid
func (v Viewport) ToCell(p r2.Vec) (x, y int, ok bool) {
	sx, sy := v.scale()
	if sx == 0 {
		return 0, 0, false
	}
	x = int(math.Floor((p.X - v.Min.X) * sx))
	y = int(math.Floor((v.Max.Y - p.Y) * sy))
	ok = x >= 0 && x < v.Cols && y >= 0 && y < v.Rows
	return x, y, ok
}

// ToWorld returns the world point at the center of cell (x, y)
func (v Viewport) ToWorld(x, y int) r2.Vec {
	sx, sy := v.scale()
	if sx == 0 {
		return v.Min
	}
	return r2.Vec{
		X: v.Min.X + (float64(x)+0.5)/sx,
		Y: v.Max.Y - (float64(y)+0.5)/sy,
	}
}

// CellSize returns the world extent of one cell
func (v Viewport) CellSize() (w, h float64) {
	sx, sy := v.scale()
	if sx == 0 {
		return 0, 0
	}
	return 1 / sx, 1 / sy
}
