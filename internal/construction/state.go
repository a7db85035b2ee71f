package construction

import (
	"fmt"

	"github.com/roach88/euclid/internal/geom"
)

// GivenColor is the palette entry used for all given elements.
const GivenColor = "gray"

// AccentPalette is the color cycle for constructed elements, indexed by
// State.NextColorIndex modulo its length.
var AccentPalette = []string{"red", "blue", "yellow", "green", "purple", "orange"}

// State is the append-only construction log plus the allocation counters for
// labels, accent colors, and element IDs. The zero value is an empty
// construction.
type State struct {
	Elements       []Element
	NextLabelIndex int
	NextColorIndex int
	NextElemIndex  int
}

// PointOpts carries the optional fields of AddPoint.
type PointOpts struct {
	// ID overrides the generated element ID. When a point is introduced
	// with a human label the two are kept equal so later steps can refer
	// to the point by its letter.
	ID string
	// Label overrides automatic label generation.
	Label string
	// Color overrides palette selection. When empty, given points use
	// GivenColor and constructed points take the next accent color.
	Color string
	// Origin defaults to OriginGiven when empty.
	Origin Origin
}

// AddPoint appends a point and returns the new state plus the added element.
func AddPoint(st State, x, y float64, opts PointOpts) (State, Point) {
	origin := opts.Origin
	if origin == "" {
		origin = OriginGiven
	}

	label := opts.Label
	if label == "" {
		st, label = nextLabel(st)
	}

	id := opts.ID
	if id == "" {
		id = label
	}

	color := opts.Color
	if color == "" {
		st, color = pickColor(st, origin)
	}

	p := Point{ID: id, X: x, Y: y, Label: label, Color: color, Origin: origin}
	st.Elements = appended(st.Elements, p)
	return st, p
}

// CircleOpts carries the optional fields of AddCircle.
type CircleOpts struct {
	Color  string
	Origin Origin // origin affects color selection only; circles carry no origin field
}

// AddCircle appends a circle defined by a center point and a radius point.
func AddCircle(st State, centerID, radiusPointID string, opts CircleOpts) (State, Circle) {
	origin := opts.Origin
	if origin == "" {
		origin = OriginCompass
	}

	color := opts.Color
	if color == "" {
		st, color = pickColor(st, origin)
	}

	st, id := nextElemID(st, "c")
	c := Circle{ID: id, CenterID: centerID, RadiusPointID: radiusPointID, Color: color}
	st.Elements = appended(st.Elements, c)
	return st, c
}

// SegmentOpts carries the optional fields of AddSegment.
type SegmentOpts struct {
	Color  string
	Origin Origin
}

// AddSegment appends a segment between two existing points.
func AddSegment(st State, fromID, toID string, opts SegmentOpts) (State, Segment) {
	origin := opts.Origin
	if origin == "" {
		origin = OriginStraightedge
	}

	color := opts.Color
	if color == "" {
		st, color = pickColor(st, origin)
	}

	st, id := nextElemID(st, "s")
	s := Segment{ID: id, FromID: fromID, ToID: toID, Color: color, Origin: origin}
	st.Elements = appended(st.Elements, s)
	return st, s
}

// NextAccentColor returns the next accent color and the state with the color
// counter advanced. Callers that add several elements in one visible action
// (the macro engine) take one color up front and pass it explicitly so the
// counter advances once per action, not once per element.
func NextAccentColor(st State) (State, string) {
	color := AccentPalette[st.NextColorIndex%len(AccentPalette)]
	st.NextColorIndex++
	return st, color
}

// GetPoint returns the point with the given ID.
func GetPoint(st State, id string) (Point, bool) {
	for _, el := range st.Elements {
		if p, ok := el.(Point); ok && p.ID == id {
			return p, true
		}
	}
	return Point{}, false
}

// GetCircle returns the circle with the given ID.
func GetCircle(st State, id string) (Circle, bool) {
	for _, el := range st.Elements {
		if c, ok := el.(Circle); ok && c.ID == id {
			return c, true
		}
	}
	return Circle{}, false
}

// GetSegment returns the segment with the given ID.
func GetSegment(st State, id string) (Segment, bool) {
	for _, el := range st.Elements {
		if s, ok := el.(Segment); ok && s.ID == id {
			return s, true
		}
	}
	return Segment{}, false
}

// GetElement returns the element with the given ID regardless of kind.
func GetElement(st State, id string) (Element, bool) {
	for _, el := range st.Elements {
		if el.ElementID() == id {
			return el, true
		}
	}
	return nil, false
}

// AllPoints returns the points in creation order.
func AllPoints(st State) []Point {
	var out []Point
	for _, el := range st.Elements {
		if p, ok := el.(Point); ok {
			out = append(out, p)
		}
	}
	return out
}

// AllCircles returns the circles in creation order.
func AllCircles(st State) []Circle {
	var out []Circle
	for _, el := range st.Elements {
		if c, ok := el.(Circle); ok {
			out = append(out, c)
		}
	}
	return out
}

// AllSegments returns the segments in creation order.
func AllSegments(st State) []Segment {
	var out []Segment
	for _, el := range st.Elements {
		if s, ok := el.(Segment); ok {
			out = append(out, s)
		}
	}
	return out
}

// PointPos returns the position of the point with the given ID.
func PointPos(st State, id string) (geom.Vec, bool) {
	p, ok := GetPoint(st, id)
	if !ok {
		return geom.Vec{}, false
	}
	return p.Pos(), true
}

// Radius recomputes a circle's radius from the current positions of its
// center and radius point.
func Radius(st State, circleID string) (float64, bool) {
	c, ok := GetCircle(st, circleID)
	if !ok {
		return 0, false
	}
	center, ok := PointPos(st, c.CenterID)
	if !ok {
		return 0, false
	}
	rim, ok := PointPos(st, c.RadiusPointID)
	if !ok {
		return 0, false
	}
	return geom.Dist(center, rim), true
}

// nextLabel returns the next unused label in the A, B, ..., Z, A2, B2, ...
// sequence, skipping labels already present in the state.
func nextLabel(st State) (State, string) {
	for {
		i := st.NextLabelIndex
		st.NextLabelIndex++
		label := labelAt(i)
		if !labelInUse(st, label) {
			return st, label
		}
	}
}

// labelAt maps a label index to its letter: 0..25 are A..Z, 26..51 are
// A2..Z2, and so on.
func labelAt(i int) string {
	letter := string(rune('A' + i%26))
	if round := i / 26; round > 0 {
		return fmt.Sprintf("%s%d", letter, round+1)
	}
	return letter
}

func labelInUse(st State, label string) bool {
	for _, el := range st.Elements {
		if p, ok := el.(Point); ok && p.Label == label {
			return true
		}
	}
	return false
}

func nextElemID(st State, prefix string) (State, string) {
	st.NextElemIndex++
	return st, fmt.Sprintf("%s%d", prefix, st.NextElemIndex)
}

func pickColor(st State, origin Origin) (State, string) {
	if origin == OriginGiven {
		return st, GivenColor
	}
	return NextAccentColor(st)
}

// appended returns a copy of elems with el appended. Copying keeps earlier
// State values valid after later additions (append would otherwise share the
// backing array).
func appended(elems []Element, el Element) []Element {
	out := make([]Element, len(elems)+1)
	copy(out, elems)
	out[len(elems)] = el
	return out
}
