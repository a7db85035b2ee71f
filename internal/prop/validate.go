package prop

import "fmt"

// Validation error codes (E200-E299).
const (
	// ErrDanglingGivenRef means a given segment references a point not
	// declared in the same given list.
	ErrDanglingGivenRef = "E201"
	// ErrForwardRef means a step references a point that is neither given
	// nor introduced by an earlier step.
	ErrForwardRef = "E202"
	// ErrUnknownHighlight means a step highlights an unknown point.
	ErrUnknownHighlight = "E203"
	// ErrUnknownResultRef means a result segment references an unknown point.
	ErrUnknownResultRef = "E204"
	// ErrDuplicateGivenID means two given elements share an ID.
	ErrDuplicateGivenID = "E205"
	// ErrMacroCycle means a definition's macro steps reach the definition
	// itself transitively (registry-level check).
	ErrMacroCycle = "E206"
	// ErrUnknownMacroProp means a macro step names a proposition absent
	// from the registry (registry-level check).
	ErrUnknownMacroProp = "E207"
	// ErrUnknownDraggable means a draggable ID names no given point.
	ErrUnknownDraggable = "E208"
)

// ValidationError is one authoring-time violation. StepIndex is -1 for
// top-level (definition-scoped) violations.
type ValidationError struct {
	StepIndex int    `json:"step_index"`
	PointID   string `json:"point_id"`
	Field     string `json:"field"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.StepIndex >= 0 {
		return fmt.Sprintf("[%s] step %d: %s: %s", e.Code, e.StepIndex, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// ValidateDefinition statically checks a definition: steps may only
// reference points that are given or introduced by an earlier step, givens
// must be self-consistent, and top-level references must resolve. All
// violations are collected; nothing short-circuits.
func ValidateDefinition(def *Definition) []ValidationError {
	var errs []ValidationError

	known := map[string]bool{}
	givenIDs := map[string]bool{}

	// Givens: collect point IDs first so segment order inside the given
	// list does not matter, then check segment self-consistency.
	for _, g := range def.GivenElements {
		switch el := g.(type) {
		case GivenPoint:
			if givenIDs[el.ID] {
				errs = append(errs, ValidationError{
					StepIndex: -1,
					PointID:   el.ID,
					Field:     "givenElements",
					Code:      ErrDuplicateGivenID,
					Message:   fmt.Sprintf("duplicate given ID %q", el.ID),
				})
			}
			givenIDs[el.ID] = true
			known[el.ID] = true
		case GivenSegment:
			if givenIDs[el.ID] {
				errs = append(errs, ValidationError{
					StepIndex: -1,
					PointID:   el.ID,
					Field:     "givenElements",
					Code:      ErrDuplicateGivenID,
					Message:   fmt.Sprintf("duplicate given ID %q", el.ID),
				})
			}
			givenIDs[el.ID] = true
		}
	}
	for _, g := range def.GivenElements {
		seg, ok := g.(GivenSegment)
		if !ok {
			continue
		}
		for _, id := range []string{seg.FromID, seg.ToID} {
			if !known[id] {
				errs = append(errs, ValidationError{
					StepIndex: -1,
					PointID:   id,
					Field:     "givenElements",
					Code:      ErrDanglingGivenRef,
					Message:   fmt.Sprintf("given segment %q references undeclared point %q", seg.ID, id),
				})
			}
		}
	}

	// Steps, in order. Labels introduced by a step become known for
	// subsequent steps only, never retroactively.
	for i, step := range def.Steps {
		for _, ref := range expectedPointRefs(step.Expected) {
			if !known[ref.id] {
				errs = append(errs, ValidationError{
					StepIndex: i,
					PointID:   ref.id,
					Field:     ref.field,
					Code:      ErrForwardRef,
					Message:   fmt.Sprintf("reference to unknown point %q", ref.id),
				})
			}
		}
		for _, id := range step.HighlightIDs {
			if !known[id] {
				errs = append(errs, ValidationError{
					StepIndex: i,
					PointID:   id,
					Field:     "highlightIds",
					Code:      ErrUnknownHighlight,
					Message:   fmt.Sprintf("highlight of unknown point %q", id),
				})
			}
		}
		for _, label := range introducedLabels(step.Expected) {
			known[label] = true
		}
	}

	// Top-level references resolve against the final known set.
	for _, pair := range def.ResultSegments {
		for _, id := range pair {
			if !known[id] {
				errs = append(errs, ValidationError{
					StepIndex: -1,
					PointID:   id,
					Field:     "resultSegments",
					Code:      ErrUnknownResultRef,
					Message:   fmt.Sprintf("result segment references unknown point %q", id),
				})
			}
		}
	}
	for _, id := range def.DraggablePointIDs {
		if !givenIDs[id] {
			errs = append(errs, ValidationError{
				StepIndex: -1,
				PointID:   id,
				Field:     "draggablePointIds",
				Code:      ErrUnknownDraggable,
				Message:   fmt.Sprintf("draggable ID %q names no given element", id),
			})
		}
	}

	return errs
}

// pointRef is a point reference inside an expected action, tagged with the
// field it came from for error reporting.
type pointRef struct {
	id    string
	field string
}

// expectedPointRefs returns every point-ID reference inside an expected
// action.
func expectedPointRefs(exp ExpectedAction) []pointRef {
	switch a := exp.(type) {
	case CompassAction:
		return []pointRef{
			{a.CenterID, "expected.centerId"},
			{a.RadiusPointID, "expected.radiusPointId"},
		}
	case StraightedgeAction:
		return []pointRef{
			{a.FromID, "expected.fromId"},
			{a.ToID, "expected.toId"},
		}
	case IntersectionAction:
		var refs []pointRef
		for _, id := range selectorPointIDs(a.OfA) {
			refs = append(refs, pointRef{id, "expected.ofA"})
		}
		for _, id := range selectorPointIDs(a.OfB) {
			refs = append(refs, pointRef{id, "expected.ofB"})
		}
		if a.BeyondID != "" {
			refs = append(refs, pointRef{a.BeyondID, "expected.beyondId"})
		}
		return refs
	case MacroAction:
		var refs []pointRef
		for _, id := range a.InputPointIDs {
			refs = append(refs, pointRef{id, "expected.inputPointIds"})
		}
		return refs
	case ExtendAction:
		return []pointRef{
			{a.BaseID, "expected.baseId"},
			{a.ThroughID, "expected.throughId"},
		}
	}
	return nil
}

// introducedLabels returns the point labels an expected action adds to the
// known set for subsequent steps.
func introducedLabels(exp ExpectedAction) []string {
	switch a := exp.(type) {
	case IntersectionAction:
		if a.Label != "" {
			return []string{a.Label}
		}
	case MacroAction:
		var out []string
		for _, label := range sortedValues(a.OutputLabels) {
			out = append(out, label)
		}
		return out
	case ExtendAction:
		if a.Label != "" {
			return []string{a.Label}
		}
	}
	return nil
}
