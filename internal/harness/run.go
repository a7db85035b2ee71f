package harness

import (
	"fmt"

	"github.com/roach88/euclid/internal/geom"
	"github.com/roach88/euclid/internal/prop"
	"github.com/roach88/euclid/internal/stepper"
)

// TraceEvent is one dispatch in a scenario trace. Every field is a string,
// integer, or bool: traces carry labels and provenance, never coordinates,
// so golden files contain no floats.
type TraceEvent struct {
	Seq      int64
	Tool     string
	Accepted bool
	Reason   string
	// StepIndex is the session's step index after the dispatch.
	StepIndex int
	// AddedIDs lists the element IDs the dispatch appended.
	AddedIDs []string
	// FactKeys lists the canonical keys of facts the dispatch derived.
	FactKeys []string
	Complete bool
}

// Result is a finished scenario run.
type Result struct {
	Scenario *Scenario
	Session  *stepper.Session
	Trace    []TraceEvent
	// Failures lists assertion violations; empty means the scenario
	// passed. All assertions are evaluated, none short-circuit.
	Failures []string
}

// Passed reports whether every assertion held.
func (r *Result) Passed() bool { return len(r.Failures) == 0 }

// Run executes a scenario against a registry. The session runs through the
// ordinary dispatch path with a fixed token, so the trace is deterministic.
func Run(reg *prop.Registry, scenario *Scenario) (*Result, error) {
	opts := stepper.Options{
		TokenGen: stepper.NewFixedGenerator(scenario.SessionToken),
	}
	if len(scenario.Given) > 0 {
		opts.Positions = make(map[string]geom.Vec, len(scenario.Given))
		for id, p := range scenario.Given {
			opts.Positions[id] = geom.Vec{X: p.X, Y: p.Y}
		}
	}

	session, err := stepper.NewSession(reg, scenario.Proposition, opts)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	result := &Result{Scenario: scenario, Session: session}
	for i, step := range scenario.Actions {
		action, err := buildAction(session, step)
		if err != nil {
			return nil, fmt.Errorf("scenario %s action %d: %w", scenario.Name, i, err)
		}
		out := session.Dispatch(action)
		result.Trace = append(result.Trace, toTraceEvent(session, step.Tool, out))
	}

	result.Failures = evaluate(result)
	return result, nil
}

// buildAction translates a scripted step into a stepper action. Mark steps
// click a live candidate: the expected one, or for branch "other" the same
// pair's rejected branch.
func buildAction(session *stepper.Session, step ActionStep) (stepper.Action, error) {
	switch step.Tool {
	case "compass":
		return stepper.CommitCompass{CenterID: step.Center, RadiusPointID: step.Radius}, nil
	case "straightedge":
		return stepper.CommitSegment{FromID: step.From, ToID: step.To}, nil
	case "mark":
		cand, ok := session.ExpectedCandidate()
		if !ok {
			// Clicking when nothing is highlighted: dispatch a blank
			// mark and let the session reject it.
			return stepper.MarkIntersection{}, nil
		}
		if step.Branch == "other" {
			cand.Which++
			cand.Y = -cand.Y
		}
		return stepper.MarkIntersection{Candidate: cand}, nil
	case "macro":
		return stepper.InvokeMacro{PropID: step.Prop, InputPointIDs: step.Inputs}, nil
	case "extend":
		return stepper.CommitExtend{BaseID: step.Base, ThroughID: step.Through}, nil
	default:
		return nil, fmt.Errorf("unknown tool %q", step.Tool)
	}
}

func toTraceEvent(session *stepper.Session, tool string, out stepper.Outcome) TraceEvent {
	ev := TraceEvent{
		Seq:       out.Seq,
		Tool:      tool,
		Accepted:  out.Accepted,
		Reason:    out.Reason,
		StepIndex: session.StepIndex,
		Complete:  session.Complete,
	}
	for _, el := range out.Added {
		ev.AddedIDs = append(ev.AddedIDs, el.ElementID())
	}
	for _, f := range out.NewFacts {
		ev.FactKeys = append(ev.FactKeys, factKey(f))
	}
	return ev
}
