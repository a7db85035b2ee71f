// Package geom provides the scalar and vector primitives shared by the
// construction engine.
//
// This package contains math only. All other internal packages may import
// geom; geom imports nothing internal. This keeps it the foundational layer
// with no circular dependencies.
//
// All coordinates are float64 world units. Comparisons go through Eps-based
// helpers rather than ==; the engine's tolerance is 1e-9 world units.
package geom

import "math"

// Eps is the tolerance used for all geometric comparisons, in world units.
// Near-tangent circles, near-zero direction vectors, and candidate
// deduplication all use this value.
const Eps = 1e-9

// Vec is a 2D point or direction in world coordinates.
type Vec struct {
	X float64
	Y float64
}

// Add returns v + w.
func (v Vec) Add(w Vec) Vec {
	return Vec{v.X + w.X, v.Y + w.Y}
}

// Sub returns v - w.
func (v Vec) Sub(w Vec) Vec {
	return Vec{v.X - w.X, v.Y - w.Y}
}

// Scale returns v scaled by s.
func (v Vec) Scale(s float64) Vec {
	return Vec{v.X * s, v.Y * s}
}

// Dot returns the dot product of v and w.
func (v Vec) Dot(w Vec) float64 {
	return v.X*w.X + v.Y*w.Y
}

// Cross returns the 2D cross product (z-component) of v and w.
func (v Vec) Cross(w Vec) float64 {
	return v.X*w.Y - v.Y*w.X
}

// Len returns the Euclidean length of v.
func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Perp returns v rotated 90 degrees counterclockwise.
func (v Vec) Perp() Vec {
	return Vec{-v.Y, v.X}
}

// Normalize returns the unit vector in v's direction.
// Returns (Vec{}, false) when v is shorter than Eps.
func (v Vec) Normalize() (Vec, bool) {
	l := v.Len()
	if l < Eps {
		return Vec{}, false
	}
	return Vec{v.X / l, v.Y / l}, true
}

// Dist returns the distance between a and b.
func Dist(a, b Vec) float64 {
	return b.Sub(a).Len()
}

// Eq reports whether a and b coincide within Eps.
func Eq(a, b Vec) bool {
	return Dist(a, b) < Eps
}

// Near reports whether two scalars are within Eps of each other.
func Near(a, b float64) bool {
	return math.Abs(a-b) < Eps
}
