package journal

import (
	"fmt"
	"strconv"

	"github.com/roach88/euclid/internal/intersect"
	"github.com/roach88/euclid/internal/stepper"
)

// Action kind discriminators in encoded payloads.
const (
	kindCompass = "compass"
	kindSegment = "segment"
	kindMark    = "mark"
	kindMacro   = "macro"
	kindExtend  = "extend"
)

// formatCoord renders a coordinate as its shortest decimal that parses back
// to the identical float64. Coordinates travel as strings because canonical
// JSON admits no floats.
func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func parseCoord(v Value, field string) (float64, error) {
	s, ok := v.(VString)
	if !ok {
		return 0, fmt.Errorf("field %q: expected coordinate string, got %T", field, v)
	}
	f, err := strconv.ParseFloat(string(s), 64)
	if err != nil {
		return 0, fmt.Errorf("field %q: %w", field, err)
	}
	return f, nil
}

func stringField(obj VObject, field string) (string, error) {
	v, ok := obj[field]
	if !ok {
		return "", fmt.Errorf("missing field %q", field)
	}
	s, ok := v.(VString)
	if !ok {
		return "", fmt.Errorf("field %q: expected string, got %T", field, v)
	}
	return string(s), nil
}

func intField(obj VObject, field string) (int64, error) {
	v, ok := obj[field]
	if !ok {
		return 0, fmt.Errorf("missing field %q", field)
	}
	n, ok := v.(VInt)
	if !ok {
		return 0, fmt.Errorf("field %q: expected integer, got %T", field, v)
	}
	return int64(n), nil
}

// EncodeAction renders a dispatched action as a canonical JSON object.
func EncodeAction(a stepper.Action) (VObject, error) {
	switch act := a.(type) {
	case stepper.CommitCompass:
		return VObject{
			"kind":       VString(kindCompass),
			"centerId":   VString(act.CenterID),
			"radiusPtId": VString(act.RadiusPointID),
		}, nil
	case stepper.CommitSegment:
		return VObject{
			"kind":   VString(kindSegment),
			"fromId": VString(act.FromID),
			"toId":   VString(act.ToID),
		}, nil
	case stepper.MarkIntersection:
		return VObject{
			"kind":  VString(kindMark),
			"x":     VString(formatCoord(act.Candidate.X)),
			"y":     VString(formatCoord(act.Candidate.Y)),
			"ofA":   VString(act.Candidate.OfA),
			"ofB":   VString(act.Candidate.OfB),
			"which": VInt(int64(act.Candidate.Which)),
		}, nil
	case stepper.InvokeMacro:
		inputs := make(VArray, len(act.InputPointIDs))
		for i, id := range act.InputPointIDs {
			inputs[i] = VString(id)
		}
		return VObject{
			"kind":   VString(kindMacro),
			"propId": VString(act.PropID),
			"inputs": inputs,
		}, nil
	case stepper.CommitExtend:
		return VObject{
			"kind":      VString(kindExtend),
			"baseId":    VString(act.BaseID),
			"throughId": VString(act.ThroughID),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported action type %T", a)
	}
}

// DecodeAction rebuilds a dispatched action from its encoded payload.
func DecodeAction(obj VObject) (stepper.Action, error) {
	kind, err := stringField(obj, "kind")
	if err != nil {
		return nil, err
	}
	switch kind {
	case kindCompass:
		centerID, err := stringField(obj, "centerId")
		if err != nil {
			return nil, err
		}
		radiusID, err := stringField(obj, "radiusPtId")
		if err != nil {
			return nil, err
		}
		return stepper.CommitCompass{CenterID: centerID, RadiusPointID: radiusID}, nil

	case kindSegment:
		fromID, err := stringField(obj, "fromId")
		if err != nil {
			return nil, err
		}
		toID, err := stringField(obj, "toId")
		if err != nil {
			return nil, err
		}
		return stepper.CommitSegment{FromID: fromID, ToID: toID}, nil

	case kindMark:
		x, err := parseCoord(obj["x"], "x")
		if err != nil {
			return nil, err
		}
		y, err := parseCoord(obj["y"], "y")
		if err != nil {
			return nil, err
		}
		ofA, err := stringField(obj, "ofA")
		if err != nil {
			return nil, err
		}
		ofB, err := stringField(obj, "ofB")
		if err != nil {
			return nil, err
		}
		which, err := intField(obj, "which")
		if err != nil {
			return nil, err
		}
		return stepper.MarkIntersection{Candidate: intersect.Candidate{
			X: x, Y: y, OfA: ofA, OfB: ofB, Which: int(which),
		}}, nil

	case kindMacro:
		propID, err := stringField(obj, "propId")
		if err != nil {
			return nil, err
		}
		raw, ok := obj["inputs"].(VArray)
		if !ok {
			return nil, fmt.Errorf("field \"inputs\": expected array")
		}
		inputs := make([]string, len(raw))
		for i, v := range raw {
			s, ok := v.(VString)
			if !ok {
				return nil, fmt.Errorf("field \"inputs\"[%d]: expected string", i)
			}
			inputs[i] = string(s)
		}
		return stepper.InvokeMacro{PropID: propID, InputPointIDs: inputs}, nil

	case kindExtend:
		baseID, err := stringField(obj, "baseId")
		if err != nil {
			return nil, err
		}
		throughID, err := stringField(obj, "throughId")
		if err != nil {
			return nil, err
		}
		return stepper.CommitExtend{BaseID: baseID, ThroughID: throughID}, nil

	default:
		return nil, fmt.Errorf("unknown action kind %q", kind)
	}
}
