// Package construction holds the append-only log of geometric elements that
// makes up a construction in progress.
//
// State is an immutable value type: every operation returns a new State plus
// the element it added. No element is ever deleted or mutated in place, and
// element IDs are unique and referentially stable for the lifetime of a
// state. Renderers and the stepper read the same State values the mutation
// ops return; there is no hidden shared structure to invalidate.
package construction

import "github.com/roach88/euclid/internal/geom"

// Origin records which tool introduced an element.
type Origin string

const (
	// OriginGiven marks elements declared by the proposition itself.
	OriginGiven Origin = "given"
	// OriginCompass marks circles drawn with the compass tool.
	OriginCompass Origin = "compass"
	// OriginStraightedge marks segments drawn with the straightedge tool.
	OriginStraightedge Origin = "straightedge"
	// OriginIntersection marks points promoted from intersection candidates.
	OriginIntersection Origin = "intersection"
	// OriginMacro marks elements produced by invoking a proven proposition.
	OriginMacro Origin = "macro"
	// OriginExtend marks points produced by extending a segment past an
	// endpoint.
	OriginExtend Origin = "extend"
)

// Element is a sealed union over Point, Circle, and Segment.
// Only those three types implement it.
type Element interface {
	// ElementID returns the unique, stable ID of the element.
	ElementID() string
	element() // sealed
}

// Point is a named location. Label is the human-visible letter (A, B, C, ...)
// assigned from the state's label sequence unless explicitly overridden.
type Point struct {
	ID     string
	X      float64
	Y      float64
	Label  string
	Color  string
	Origin Origin
}

func (p Point) ElementID() string { return p.ID }
func (Point) element()            {}

// Pos returns the point's position as a vector.
func (p Point) Pos() geom.Vec { return geom.Vec{X: p.X, Y: p.Y} }

// Circle is defined by its center point and a point on its circumference.
// The radius is derived, never stored: Radius recomputes it from the current
// point positions on every call, which is what makes a dragged radius point
// live-update every dependent circle with no invalidation step.
type Circle struct {
	ID            string
	CenterID      string
	RadiusPointID string
	Color         string
}

func (c Circle) ElementID() string { return c.ID }
func (Circle) element()            {}

// Segment is a finite line between two existing points.
type Segment struct {
	ID     string
	FromID string
	ToID   string
	Color  string
	Origin Origin
}

func (s Segment) ElementID() string { return s.ID }
func (Segment) element()            {}
