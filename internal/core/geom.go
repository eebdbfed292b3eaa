// Package core provides fundamental types shared by the world creation
// packages. It contains no external dependencies (especially no Bubble Tea)
// so the core logic stays pure and testable.
package core

// Point is a position in screen cells, used to place UI controls.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
