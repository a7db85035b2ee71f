package prop

import "github.com/roach88/euclid/internal/construction"

// Selector names an element either directly by ID or structurally by its
// defining points. Structural selectors exist because steps and macros must
// refer to geometry whose creation-order ID is not stable at authoring time.
//
// Selector is a sealed union: only PointRef, CircleRef, and SegmentRef
// implement it.
type Selector interface {
	selector() // sealed
}

// PointRef selects an element by its ID (points, or any element whose ID is
// already known).
type PointRef struct {
	ID string
}

func (PointRef) selector() {}

// CircleRef selects the circle with exactly this center and radius point.
// The two roles are distinct and order-sensitive: a circle created with
// swapped center/radius naming does not match.
type CircleRef struct {
	CenterID      string
	RadiusPointID string
}

func (CircleRef) selector() {}

// SegmentRef selects the segment drawn from FromID to ToID, in that
// direction.
type SegmentRef struct {
	FromID string
	ToID   string
}

func (SegmentRef) selector() {}

// Resolve matches a selector against the state and returns the element ID,
// or "" when nothing matches. "" means "not yet satisfiable", not an error:
// a selector may target an element a later step constructs.
func Resolve(sel Selector, st construction.State) string {
	switch s := sel.(type) {
	case PointRef:
		if _, ok := construction.GetElement(st, s.ID); ok {
			return s.ID
		}
	case CircleRef:
		for _, c := range construction.AllCircles(st) {
			if c.CenterID == s.CenterID && c.RadiusPointID == s.RadiusPointID {
				return c.ID
			}
		}
	case SegmentRef:
		for _, seg := range construction.AllSegments(st) {
			if seg.FromID == s.FromID && seg.ToID == s.ToID {
				return seg.ID
			}
		}
	}
	return ""
}

// selectorPointIDs returns the point IDs a selector references, for the
// static validator.
func selectorPointIDs(sel Selector) []string {
	switch s := sel.(type) {
	case PointRef:
		return []string{s.ID}
	case CircleRef:
		return []string{s.CenterID, s.RadiusPointID}
	case SegmentRef:
		return []string{s.FromID, s.ToID}
	}
	return nil
}
