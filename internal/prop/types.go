// Package prop defines authored proposition data: the givens, the ordered
// steps with their expected actions, and the registry the stepper and macro
// engine resolve propositions through.
//
// Definitions are static data validated offline (see validate.go); nothing in
// this package mutates construction state.
package prop

import (
	"github.com/roach88/euclid/internal/construction"
	"github.com/roach88/euclid/internal/facts"
	"github.com/roach88/euclid/internal/geom"
)

// Tool names the interaction tool a step is performed with.
type Tool string

const (
	// ToolCompass draws a circle from a center through a radius point.
	ToolCompass Tool = "compass"
	// ToolStraightedge draws a segment between two points.
	ToolStraightedge Tool = "straightedge"
	// ToolIntersect promotes an intersection candidate to a point.
	ToolIntersect Tool = "intersect"
	// ToolMacro invokes a previously proven proposition.
	ToolMacro Tool = "macro"
	// ToolExtend produces a segment past an endpoint and marks a point.
	ToolExtend Tool = "extend"
)

// ExpectedAction is the sealed union of actions a step can expect. Only the
// five action types below implement it.
type ExpectedAction interface {
	expectedAction() // sealed
}

// CompassAction expects a circle with exactly this center and radius point.
// Matching is structural: no geometric-equivalence fallback, and the two
// roles are never interchangeable.
type CompassAction struct {
	CenterID      string
	RadiusPointID string
}

func (CompassAction) expectedAction() {}

// StraightedgeAction expects a segment drawn from FromID to ToID.
type StraightedgeAction struct {
	FromID string
	ToID   string
}

func (StraightedgeAction) expectedAction() {}

// IntersectionAction expects the user to mark the intersection of the two
// selected elements. BeyondID restricts candidates to those strictly past
// that endpoint of the selected segment (Postulate-2 production); Label names
// the introduced point.
type IntersectionAction struct {
	OfA      Selector
	OfB      Selector
	BeyondID string
	Label    string
}

func (IntersectionAction) expectedAction() {}

// MacroAction expects invocation of another proposition with exactly these
// input points, in order. OutputLabels maps the target proposition's output
// placeholder names (for example "apex" or "result") to the labels this
// proposition wants.
type MacroAction struct {
	PropID        string
	InputPointIDs []string
	OutputLabels  map[string]string
}

func (MacroAction) expectedAction() {}

// ExtendAction expects the segment from BaseID through ThroughID to be
// produced, marking a new point Label at Distance from the base point.
type ExtendAction struct {
	BaseID    string
	ThroughID string
	Distance  float64
	Label     string
}

func (ExtendAction) expectedAction() {}

// Step is one instruction in a proposition's construction.
type Step struct {
	Instruction  string
	Expected     ExpectedAction
	HighlightIDs []string
	Tool         Tool
	// Citation is the display key justifying the step's action
	// ("Post.1", "Post.3", ...), resolved by an external citation table.
	Citation string
}

// GivenElement is the sealed union of elements a proposition starts with.
type GivenElement interface {
	givenElement() // sealed
}

// GivenPoint declares a starting point. Its ID doubles as its label.
type GivenPoint struct {
	ID string
	X  float64
	Y  float64
}

func (GivenPoint) givenElement() {}

// GivenSegment declares a starting segment between two given points.
type GivenSegment struct {
	ID     string
	FromID string
	ToID   string
}

func (GivenSegment) givenElement() {}

// GivenFact declares a distance equality that holds by hypothesis.
type GivenFact struct {
	A         facts.DistancePair
	B         facts.DistancePair
	Statement string
}

// ConcludeFunc appends a proposition's final derived facts once the last
// step is accepted. atStep is the index conclusion facts are stamped with.
type ConcludeFunc func(st construction.State, fs facts.Store, atStep int) (facts.Store, []facts.Fact)

// ComputeGivenFunc rebuilds the given elements from dragged point positions.
// Drag-to-explore replaces the givens wholesale with its result on every
// drag frame and replays all committed steps against them.
type ComputeGivenFunc func(positions map[string]geom.Vec) []GivenElement

// Definition is one authored proposition.
type Definition struct {
	ID    string
	Title string

	GivenElements []GivenElement
	Steps         []Step

	// ResultSegments lists the point pairs highlighted as the result.
	ResultSegments [][2]string

	// DraggablePointIDs lists given points the explore mode may move.
	DraggablePointIDs []string

	// InputLabels declares the order macro invocations bind their input
	// points to this proposition's given points.
	InputLabels []string

	GivenFacts []GivenFact

	ComputeGiven     ComputeGivenFunc
	DeriveConclusion ConcludeFunc
}

// GivenPoints returns the definition's given points in declaration order.
func (d *Definition) GivenPoints() []GivenPoint {
	var out []GivenPoint
	for _, g := range d.GivenElements {
		if p, ok := g.(GivenPoint); ok {
			out = append(out, p)
		}
	}
	return out
}
