package harness

import (
	"fmt"

	"github.com/roach88/euclid/internal/construction"
	"github.com/roach88/euclid/internal/facts"
)

// factKey renders a fact as "keyA=keyB" using the canonical pair keys, the
// stable identity traces and assertions compare on.
func factKey(f facts.Fact) string {
	if f.Kind == facts.FactAngle {
		return f.AngleA.Key() + "=" + f.AngleB.Key()
	}
	return f.DistA.Key() + "=" + f.DistB.Key()
}

// evaluate checks every assertion against the finished run and returns the
// violations. Nothing short-circuits; a failing scenario reports all its
// failures at once.
func evaluate(r *Result) []string {
	var failures []string
	for i, a := range r.Scenario.Assertions {
		if msg := evaluateOne(r, a); msg != "" {
			failures = append(failures, fmt.Sprintf("assertion %d (%s): %s", i, a.Type, msg))
		}
	}
	return failures
}

func evaluateOne(r *Result, a Assertion) string {
	switch a.Type {
	case AssertComplete:
		if !r.Session.Complete {
			return fmt.Sprintf("proposition not complete, stalled at step %d", r.Session.StepIndex)
		}
	case AssertIncomplete:
		if r.Session.Complete {
			return "proposition unexpectedly complete"
		}
	case AssertStepIndex:
		if r.Session.StepIndex != a.Value {
			return fmt.Sprintf("step index %d, want %d", r.Session.StepIndex, a.Value)
		}
	case AssertPointExists:
		if _, ok := construction.GetPoint(r.Session.State, a.Label); !ok {
			return fmt.Sprintf("point %q does not exist", a.Label)
		}
	case AssertEqualDistance:
		if len(a.A) != 2 || len(a.B) != 2 {
			return "equal_distance needs two point IDs on each side"
		}
		pa := facts.NewDistancePair(a.A[0], a.A[1])
		pb := facts.NewDistancePair(a.B[0], a.B[1])
		if !facts.QueryEquality(r.Session.Facts, pa, pb) {
			return fmt.Sprintf("%s is not known equal to %s", pa, pb)
		}
	case AssertFactCount:
		if got := len(r.Session.Facts.Facts); got != a.Value {
			return fmt.Sprintf("%d facts, want %d", got, a.Value)
		}
	case AssertRejectedCount:
		rejected := 0
		for _, ev := range r.Trace {
			if !ev.Accepted {
				rejected++
			}
		}
		if rejected != a.Value {
			return fmt.Sprintf("%d rejected dispatches, want %d", rejected, a.Value)
		}
	default:
		return fmt.Sprintf("unknown assertion type %q", a.Type)
	}
	return ""
}
