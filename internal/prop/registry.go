package prop

import (
	"github.com/roach88/euclid/internal/construction"
	"github.com/roach88/euclid/internal/facts"
	"github.com/roach88/euclid/internal/geom"
)

// Citation display keys used by the built-in propositions. The keys are
// opaque here; an external citation table renders them.
const (
	CitePost1 = "Post.1"
	CitePost2 = "Post.2"
	CitePost3 = "Post.3"
	CiteDef15 = "Def.15"
	CiteCN1   = "C.N.1"
	CiteCN3   = "C.N.3"
)

// Builtin returns the registry of built-in propositions. A fresh registry is
// built per call; there is no ambient shared table to mutate.
func Builtin() *Registry {
	return NewRegistry(PropI1(), PropI2(), PropI3())
}

// PropI1 is Elements I.1: on a given finite straight line, construct an
// equilateral triangle.
func PropI1() *Definition {
	return &Definition{
		ID:    "I.1",
		Title: "To construct an equilateral triangle on a given finite straight line.",
		GivenElements: []GivenElement{
			GivenPoint{ID: "A", X: -2, Y: 0},
			GivenPoint{ID: "B", X: 2, Y: 0},
			GivenSegment{ID: "AB", FromID: "A", ToID: "B"},
		},
		InputLabels: []string{"A", "B"},
		Steps: []Step{
			{
				Instruction:  "Draw a circle with center A through B.",
				Tool:         ToolCompass,
				Expected:     CompassAction{CenterID: "A", RadiusPointID: "B"},
				HighlightIDs: []string{"A", "B"},
				Citation:     CitePost3,
			},
			{
				Instruction:  "Draw a circle with center B through A.",
				Tool:         ToolCompass,
				Expected:     CompassAction{CenterID: "B", RadiusPointID: "A"},
				HighlightIDs: []string{"B", "A"},
				Citation:     CitePost3,
			},
			{
				Instruction: "Mark the upper intersection of the two circles as C.",
				Tool:        ToolIntersect,
				Expected: IntersectionAction{
					OfA:   CircleRef{CenterID: "A", RadiusPointID: "B"},
					OfB:   CircleRef{CenterID: "B", RadiusPointID: "A"},
					Label: "C",
				},
			},
			{
				Instruction:  "Draw the segment from C to A.",
				Tool:         ToolStraightedge,
				Expected:     StraightedgeAction{FromID: "C", ToID: "A"},
				HighlightIDs: []string{"C", "A"},
				Citation:     CitePost1,
			},
			{
				Instruction:  "Draw the segment from C to B.",
				Tool:         ToolStraightedge,
				Expected:     StraightedgeAction{FromID: "C", ToID: "B"},
				HighlightIDs: []string{"C", "B"},
				Citation:     CitePost1,
			},
		},
		ResultSegments:    [][2]string{{"A", "B"}, {"C", "A"}, {"C", "B"}},
		DraggablePointIDs: []string{"A", "B"},
		ComputeGiven: func(positions map[string]geom.Vec) []GivenElement {
			a := positionOr(positions, "A", geom.Vec{X: -2, Y: 0})
			b := positionOr(positions, "B", geom.Vec{X: 2, Y: 0})
			return []GivenElement{
				GivenPoint{ID: "A", X: a.X, Y: a.Y},
				GivenPoint{ID: "B", X: b.X, Y: b.Y},
				GivenSegment{ID: "AB", FromID: "A", ToID: "B"},
			}
		},
		DeriveConclusion: func(st construction.State, fs facts.Store, atStep int) (facts.Store, []facts.Fact) {
			var all []facts.Fact

			ab := facts.NewDistancePair("A", "B")
			ac := facts.NewDistancePair("A", "C")
			bc := facts.NewDistancePair("B", "C")

			fs, added := facts.AddFact(fs, ac, ab,
				facts.Citation{Kind: facts.CiteAxiom, Key: CiteDef15},
				facts.EqualityStatement(ac, ab), atStep)
			all = append(all, added...)

			fs, added = facts.AddFact(fs, bc, ab,
				facts.Citation{Kind: facts.CiteAxiom, Key: CiteDef15},
				facts.EqualityStatement(bc, ab), atStep)
			all = append(all, added...)

			fs, added = facts.AddFact(fs, ac, bc,
				facts.Citation{Kind: facts.CiteAxiom, Key: CiteCN1},
				facts.EqualityStatement(ac, bc), atStep)
			all = append(all, added...)

			return fs, all
		},
	}
}

// PropI2 is Elements I.2: place at a given point a straight line equal to a
// given straight line.
func PropI2() *Definition {
	return &Definition{
		ID:    "I.2",
		Title: "To place a straight line equal to a given straight line with one end at a given point.",
		GivenElements: []GivenElement{
			GivenPoint{ID: "A", X: -1, Y: 2},
			GivenPoint{ID: "B", X: 0, Y: 0},
			GivenPoint{ID: "C", X: 3, Y: 1},
			GivenSegment{ID: "BC", FromID: "B", ToID: "C"},
		},
		InputLabels: []string{"A", "B", "C"},
		Steps: []Step{
			{
				Instruction:  "Join A to B.",
				Tool:         ToolStraightedge,
				Expected:     StraightedgeAction{FromID: "A", ToID: "B"},
				HighlightIDs: []string{"A", "B"},
				Citation:     CitePost1,
			},
			{
				Instruction: "Construct an equilateral triangle on AB; call its apex D.",
				Tool:        ToolMacro,
				Expected: MacroAction{
					PropID:        "I.1",
					InputPointIDs: []string{"A", "B"},
					OutputLabels:  map[string]string{"apex": "D"},
				},
				HighlightIDs: []string{"A", "B"},
			},
			{
				Instruction:  "Draw a circle with center B through C.",
				Tool:         ToolCompass,
				Expected:     CompassAction{CenterID: "B", RadiusPointID: "C"},
				HighlightIDs: []string{"B", "C"},
				Citation:     CitePost3,
			},
			{
				Instruction: "Produce DB beyond B to meet the circle; mark the point G.",
				Tool:        ToolIntersect,
				Expected: IntersectionAction{
					OfA:      CircleRef{CenterID: "B", RadiusPointID: "C"},
					OfB:      SegmentRef{FromID: "D", ToID: "B"},
					BeyondID: "B",
					Label:    "G",
				},
			},
			{
				Instruction:  "Draw a circle with center D through G.",
				Tool:         ToolCompass,
				Expected:     CompassAction{CenterID: "D", RadiusPointID: "G"},
				HighlightIDs: []string{"D", "G"},
				Citation:     CitePost3,
			},
			{
				Instruction: "Produce DA beyond A to meet the circle; mark the point L.",
				Tool:        ToolIntersect,
				Expected: IntersectionAction{
					OfA:      CircleRef{CenterID: "D", RadiusPointID: "G"},
					OfB:      SegmentRef{FromID: "D", ToID: "A"},
					BeyondID: "A",
					Label:    "L",
				},
			},
		},
		ResultSegments: [][2]string{{"A", "L"}},
		DeriveConclusion: func(st construction.State, fs facts.Store, atStep int) (facts.Store, []facts.Fact) {
			var all []facts.Fact

			bg := facts.NewDistancePair("B", "G")
			bc := facts.NewDistancePair("B", "C")
			dl := facts.NewDistancePair("D", "L")
			dg := facts.NewDistancePair("D", "G")
			da := facts.NewDistancePair("D", "A")
			al := facts.NewDistancePair("A", "L")

			fs, added := facts.AddFact(fs, bg, bc,
				facts.Citation{Kind: facts.CiteAxiom, Key: CiteDef15},
				facts.EqualityStatement(bg, bc), atStep)
			all = append(all, added...)

			fs, added = facts.AddFact(fs, dl, dg,
				facts.Citation{Kind: facts.CiteAxiom, Key: CiteDef15},
				facts.EqualityStatement(dl, dg), atStep)
			all = append(all, added...)

			// AL = DL - DA and BG = DG - DB; the wholes and parts are
			// equal, so the remainders are.
			fs, added = facts.AddFact(fs, al, bg,
				facts.Citation{Kind: facts.CiteCN3, Key: CiteCN3, Whole: dl, Part: da},
				facts.EqualityStatement(al, bg), atStep)
			all = append(all, added...)

			fs, added = facts.AddFact(fs, al, bc,
				facts.Citation{Kind: facts.CiteAxiom, Key: CiteCN1},
				facts.EqualityStatement(al, bc), atStep)
			all = append(all, added...)

			return fs, all
		},
	}
}

// PropI3 is Elements I.3: given two unequal straight lines, cut off from the
// greater a line equal to the less.
func PropI3() *Definition {
	return &Definition{
		ID:    "I.3",
		Title: "To cut off from the greater of two given straight lines a straight line equal to the less.",
		GivenElements: []GivenElement{
			GivenPoint{ID: "A", X: 0, Y: 0},
			GivenPoint{ID: "B", X: 5, Y: 0},
			GivenSegment{ID: "AB", FromID: "A", ToID: "B"},
			GivenPoint{ID: "C", X: -4, Y: 2},
			GivenPoint{ID: "F", X: -2, Y: 2},
			GivenSegment{ID: "CF", FromID: "C", ToID: "F"},
		},
		InputLabels: []string{"A", "B", "C", "F"},
		Steps: []Step{
			{
				Instruction: "Place at A a straight line equal to CF; call its end D.",
				Tool:        ToolMacro,
				Expected: MacroAction{
					PropID:        "I.2",
					InputPointIDs: []string{"A", "C", "F"},
					OutputLabels:  map[string]string{"result": "D"},
				},
				HighlightIDs: []string{"A", "C", "F"},
			},
			{
				Instruction:  "Draw a circle with center A through D.",
				Tool:         ToolCompass,
				Expected:     CompassAction{CenterID: "A", RadiusPointID: "D"},
				HighlightIDs: []string{"A", "D"},
				Citation:     CitePost3,
			},
			{
				Instruction: "Mark the point E where the circle cuts AB.",
				Tool:        ToolIntersect,
				Expected: IntersectionAction{
					OfA:   CircleRef{CenterID: "A", RadiusPointID: "D"},
					OfB:   SegmentRef{FromID: "A", ToID: "B"},
					Label: "E",
				},
			},
		},
		ResultSegments:    [][2]string{{"A", "E"}},
		DraggablePointIDs: []string{"C", "F"},
		ComputeGiven: func(positions map[string]geom.Vec) []GivenElement {
			a := positionOr(positions, "A", geom.Vec{X: 0, Y: 0})
			b := positionOr(positions, "B", geom.Vec{X: 5, Y: 0})
			c := positionOr(positions, "C", geom.Vec{X: -4, Y: 2})
			f := positionOr(positions, "F", geom.Vec{X: -2, Y: 2})
			return []GivenElement{
				GivenPoint{ID: "A", X: a.X, Y: a.Y},
				GivenPoint{ID: "B", X: b.X, Y: b.Y},
				GivenSegment{ID: "AB", FromID: "A", ToID: "B"},
				GivenPoint{ID: "C", X: c.X, Y: c.Y},
				GivenPoint{ID: "F", X: f.X, Y: f.Y},
				GivenSegment{ID: "CF", FromID: "C", ToID: "F"},
			}
		},
		DeriveConclusion: func(st construction.State, fs facts.Store, atStep int) (facts.Store, []facts.Fact) {
			var all []facts.Fact

			ae := facts.NewDistancePair("A", "E")
			ad := facts.NewDistancePair("A", "D")
			cf := facts.NewDistancePair("C", "F")

			fs, added := facts.AddFact(fs, ae, ad,
				facts.Citation{Kind: facts.CiteAxiom, Key: CiteDef15},
				facts.EqualityStatement(ae, ad), atStep)
			all = append(all, added...)

			fs, added = facts.AddFact(fs, ae, cf,
				facts.Citation{Kind: facts.CiteAxiom, Key: CiteCN1},
				facts.EqualityStatement(ae, cf), atStep)
			all = append(all, added...)

			return fs, all
		},
	}
}

func positionOr(positions map[string]geom.Vec, id string, fallback geom.Vec) geom.Vec {
	if v, ok := positions[id]; ok {
		return v
	}
	return fallback
}
