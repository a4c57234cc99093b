// Package core provides terminal-level primitives shared by the renderer:
// a character canvas, colors, rectangles and the mapping between terminal
// cells and normalized canvas coordinates. It has no Bubble Tea dependency.
package core

import "math"

// Rect is an axis-aligned area of terminal cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Empty reports whether the rectangle has no cells.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains returns true if the cell (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center cell of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Inset shrinks the rectangle by n cells on every side.
func (r Rect) Inset(n int) Rect {
	return Rect{X: r.X + n, Y: r.Y + n, W: max(r.W-2*n, 0), H: max(r.H-2*n, 0)}
}

// Normalize converts a terminal cell inside r into normalized canvas
// coordinates in [0, 1), taking the center of the cell.
// ok is false when the cell lies outside r.
func (r Rect) Normalize(col, row int) (x, y float64, ok bool) {
	if r.Empty() || !r.Contains(col, row) {
		return 0, 0, false
	}
	x = (float64(col-r.X) + 0.5) / float64(r.W)
	y = (float64(row-r.Y) + 0.5) / float64(r.H)
	return x, y, true
}

// Denormalize converts normalized canvas coordinates into the terminal
// cell of r that contains them. Coordinates outside [0, 1] are clamped to
// the nearest edge cell.
func (r Rect) Denormalize(x, y float64) (col, row int) {
	col = r.X + Clamp(int(math.Floor(x*float64(r.W))), 0, max(r.W-1, 0))
	row = r.Y + Clamp(int(math.Floor(y*float64(r.H))), 0, max(r.H-1, 0))
	return col, row
}

// CellRadius converts a normalized radius into half-extents in cells along
// each axis, at least one cell in each.
func (r Rect) CellRadius(radius float64) (rx, ry int) {
	rx = max(int(math.Round(radius*float64(r.W))), 1)
	ry = max(int(math.Round(radius*float64(r.H))), 1)
	return rx, ry
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// ClampF restricts a float64 value to be within [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
