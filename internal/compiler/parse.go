package compiler

import (
	"fmt"

	"cuelang.org/go/cue"

	"github.com/roach88/euclid/internal/facts"
	"github.com/roach88/euclid/internal/prop"
)

// parseGiven reads the given block: ordered point and segment lists plus
// optional hypothesis facts.
//
//	given: {
//		points: [{id: "A", x: -2, y: 0}, ...]
//		segments: [{id: "AB", from: "A", to: "B"}, ...]
//		facts: [{a: ["A", "B"], b: ["C", "D"]}, ...]
//	}
func parseGiven(v cue.Value) ([]prop.GivenElement, []prop.GivenFact, error) {
	if !v.Exists() {
		return nil, nil, nil
	}

	var elems []prop.GivenElement

	pointsVal := v.LookupPath(cue.ParsePath("points"))
	if pointsVal.Exists() {
		iter, err := pointsVal.List()
		if err != nil {
			return nil, nil, formatCUEError(err)
		}
		for i := 0; iter.Next(); i++ {
			pv := iter.Value()
			id, err := requiredString(pv, "id")
			if err != nil {
				return nil, nil, err
			}
			x, err := requiredFloat(pv, "x")
			if err != nil {
				return nil, nil, err
			}
			y, err := requiredFloat(pv, "y")
			if err != nil {
				return nil, nil, err
			}
			elems = append(elems, prop.GivenPoint{ID: id, X: x, Y: y})
		}
	}

	segsVal := v.LookupPath(cue.ParsePath("segments"))
	if segsVal.Exists() {
		iter, err := segsVal.List()
		if err != nil {
			return nil, nil, formatCUEError(err)
		}
		for iter.Next() {
			sv := iter.Value()
			id, err := requiredString(sv, "id")
			if err != nil {
				return nil, nil, err
			}
			from, err := requiredString(sv, "from")
			if err != nil {
				return nil, nil, err
			}
			to, err := requiredString(sv, "to")
			if err != nil {
				return nil, nil, err
			}
			elems = append(elems, prop.GivenSegment{ID: id, FromID: from, ToID: to})
		}
	}

	var givenFacts []prop.GivenFact
	factsVal := v.LookupPath(cue.ParsePath("facts"))
	if factsVal.Exists() {
		iter, err := factsVal.List()
		if err != nil {
			return nil, nil, formatCUEError(err)
		}
		for i := 0; iter.Next(); i++ {
			fv := iter.Value()
			a, err := parsePair(fv.LookupPath(cue.ParsePath("a")), fmt.Sprintf("given.facts[%d].a", i))
			if err != nil {
				return nil, nil, err
			}
			b, err := parsePair(fv.LookupPath(cue.ParsePath("b")), fmt.Sprintf("given.facts[%d].b", i))
			if err != nil {
				return nil, nil, err
			}
			givenFacts = append(givenFacts, prop.GivenFact{
				A: facts.NewDistancePair(a[0], a[1]),
				B: facts.NewDistancePair(b[0], b[1]),
			})
		}
	}

	return elems, givenFacts, nil
}

// parseSteps reads the ordered step list. The tool field selects the step
// shape; unknown tools are compile errors.
func parseSteps(v cue.Value) ([]prop.Step, error) {
	if !v.Exists() {
		return nil, nil
	}

	iter, err := v.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var steps []prop.Step
	for i := 0; iter.Next(); i++ {
		step, err := parseStep(iter.Value(), i)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func parseStep(v cue.Value, index int) (prop.Step, error) {
	var step prop.Step

	tool, err := requiredString(v, "tool")
	if err != nil {
		return step, err
	}

	if instrVal := v.LookupPath(cue.ParsePath("instruction")); instrVal.Exists() {
		step.Instruction, err = instrVal.String()
		if err != nil {
			return step, formatCUEError(err)
		}
	}
	if citeVal := v.LookupPath(cue.ParsePath("cite")); citeVal.Exists() {
		step.Citation, err = citeVal.String()
		if err != nil {
			return step, formatCUEError(err)
		}
	}
	step.HighlightIDs, err = optionalStringList(v, "highlight")
	if err != nil {
		return step, err
	}

	switch tool {
	case "compass":
		step.Tool = prop.ToolCompass
		center, err := requiredString(v, "center")
		if err != nil {
			return step, err
		}
		radius, err := requiredString(v, "radius")
		if err != nil {
			return step, err
		}
		step.Expected = prop.CompassAction{CenterID: center, RadiusPointID: radius}

	case "straightedge":
		step.Tool = prop.ToolStraightedge
		from, err := requiredString(v, "from")
		if err != nil {
			return step, err
		}
		to, err := requiredString(v, "to")
		if err != nil {
			return step, err
		}
		step.Expected = prop.StraightedgeAction{FromID: from, ToID: to}

	case "intersect":
		step.Tool = prop.ToolIntersect
		ofA, err := parseSelector(v.LookupPath(cue.ParsePath("of")), fmt.Sprintf("steps[%d].of", index))
		if err != nil {
			return step, err
		}
		ofB, err := parseSelector(v.LookupPath(cue.ParsePath("with")), fmt.Sprintf("steps[%d].with", index))
		if err != nil {
			return step, err
		}
		label, err := requiredString(v, "label")
		if err != nil {
			return step, err
		}
		action := prop.IntersectionAction{OfA: ofA, OfB: ofB, Label: label}
		if beyondVal := v.LookupPath(cue.ParsePath("beyond")); beyondVal.Exists() {
			action.BeyondID, err = beyondVal.String()
			if err != nil {
				return step, formatCUEError(err)
			}
		}
		step.Expected = action

	case "macro":
		step.Tool = prop.ToolMacro
		propID, err := requiredString(v, "prop")
		if err != nil {
			return step, err
		}
		inputs, err := optionalStringList(v, "inputs")
		if err != nil {
			return step, err
		}
		outputs, err := parseStringMap(v.LookupPath(cue.ParsePath("outputs")))
		if err != nil {
			return step, err
		}
		step.Expected = prop.MacroAction{
			PropID:        propID,
			InputPointIDs: inputs,
			OutputLabels:  outputs,
		}

	case "extend":
		step.Tool = prop.ToolExtend
		base, err := requiredString(v, "base")
		if err != nil {
			return step, err
		}
		through, err := requiredString(v, "through")
		if err != nil {
			return step, err
		}
		distance, err := requiredFloat(v, "distance")
		if err != nil {
			return step, err
		}
		label, err := requiredString(v, "label")
		if err != nil {
			return step, err
		}
		step.Expected = prop.ExtendAction{
			BaseID:    base,
			ThroughID: through,
			Distance:  distance,
			Label:     label,
		}

	default:
		return step, &CompileError{
			Field:   fmt.Sprintf("steps[%d].tool", index),
			Message: fmt.Sprintf("unknown tool %q", tool),
			Pos:     v.Pos(),
		}
	}

	return step, nil
}

// parseSelector reads one element selector:
//
//	{point: "A"}
//	{circle: {center: "A", through: "B"}}
//	{segment: {from: "D", to: "B"}}
func parseSelector(v cue.Value, field string) (prop.Selector, error) {
	if !v.Exists() {
		return nil, &CompileError{
			Field:   field,
			Message: "selector is required",
			Pos:     v.Pos(),
		}
	}

	if pv := v.LookupPath(cue.ParsePath("point")); pv.Exists() {
		id, err := pv.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return prop.PointRef{ID: id}, nil
	}
	if cv := v.LookupPath(cue.ParsePath("circle")); cv.Exists() {
		center, err := requiredString(cv, "center")
		if err != nil {
			return nil, err
		}
		through, err := requiredString(cv, "through")
		if err != nil {
			return nil, err
		}
		return prop.CircleRef{CenterID: center, RadiusPointID: through}, nil
	}
	if sv := v.LookupPath(cue.ParsePath("segment")); sv.Exists() {
		from, err := requiredString(sv, "from")
		if err != nil {
			return nil, err
		}
		to, err := requiredString(sv, "to")
		if err != nil {
			return nil, err
		}
		return prop.SegmentRef{FromID: from, ToID: to}, nil
	}

	return nil, &CompileError{
		Field:   field,
		Message: "selector must have a point, circle, or segment key",
		Pos:     v.Pos(),
	}
}

func requiredFloat(v cue.Value, field string) (float64, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return 0, &CompileError{
			Field:   field,
			Message: field + " is required",
			Pos:     v.Pos(),
		}
	}
	f, err := fv.Float64()
	if err != nil {
		return 0, formatCUEError(err)
	}
	return f, nil
}

func optionalStringList(v cue.Value, field string) ([]string, error) {
	lv := v.LookupPath(cue.ParsePath(field))
	if !lv.Exists() {
		return nil, nil
	}
	iter, err := lv.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	var out []string
	for iter.Next() {
		s, err := iter.Value().String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		out = append(out, s)
	}
	return out, nil
}

// parsePair reads a two-element string list.
func parsePair(v cue.Value, field string) ([2]string, error) {
	list, err := listStrings(v, field)
	if err != nil {
		return [2]string{}, err
	}
	if len(list) != 2 {
		return [2]string{}, &CompileError{
			Field:   field,
			Message: fmt.Sprintf("expected exactly two point IDs, got %d", len(list)),
			Pos:     v.Pos(),
		}
	}
	return [2]string{list[0], list[1]}, nil
}

// parsePairList reads a list of two-element string lists.
func parsePairList(v cue.Value, field string) ([][2]string, error) {
	if !v.Exists() {
		return nil, nil
	}
	iter, err := v.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	var out [][2]string
	for i := 0; iter.Next(); i++ {
		pair, err := parsePair(iter.Value(), fmt.Sprintf("%s[%d]", field, i))
		if err != nil {
			return nil, err
		}
		out = append(out, pair)
	}
	return out, nil
}

func listStrings(v cue.Value, field string) ([]string, error) {
	if !v.Exists() {
		return nil, &CompileError{
			Field:   field,
			Message: field + " is required",
			Pos:     v.Pos(),
		}
	}
	iter, err := v.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	var out []string
	for iter.Next() {
		s, err := iter.Value().String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		out = append(out, s)
	}
	return out, nil
}

func parseStringMap(v cue.Value) (map[string]string, error) {
	if !v.Exists() {
		return nil, nil
	}
	iter, err := v.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}
	out := map[string]string{}
	for iter.Next() {
		s, err := iter.Value().String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		out[iter.Label()] = s
	}
	return out, nil
}
