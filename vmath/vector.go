package vmath

// Point is a 2D coordinate in curve space, origin at canvas center
type Point struct {
	X, Y float64
}
