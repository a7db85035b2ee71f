package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/euclid/internal/journal"
	"github.com/roach88/euclid/internal/prop"
)

// snapshot renders a result as a canonical JSON object. Traces carry IDs,
// labels, and fact keys only; coordinates never appear, so golden files are
// exact on every platform and can be reviewed by hand.
func snapshot(r *Result) journal.VObject {
	trace := make(journal.VArray, len(r.Trace))
	for i, ev := range r.Trace {
		added := make(journal.VArray, len(ev.AddedIDs))
		for j, id := range ev.AddedIDs {
			added[j] = journal.VString(id)
		}
		factKeys := make(journal.VArray, len(ev.FactKeys))
		for j, k := range ev.FactKeys {
			factKeys[j] = journal.VString(k)
		}
		trace[i] = journal.VObject{
			"seq":       journal.VInt(ev.Seq),
			"tool":      journal.VString(ev.Tool),
			"accepted":  journal.VBool(ev.Accepted),
			"reason":    journal.VString(ev.Reason),
			"stepIndex": journal.VInt(int64(ev.StepIndex)),
			"added":     added,
			"facts":     factKeys,
			"complete":  journal.VBool(ev.Complete),
		}
	}
	return journal.VObject{
		"scenario": journal.VString(r.Scenario.Name),
		"session":  journal.VString(r.Scenario.SessionToken),
		"trace":    trace,
	}
}

// RunWithGolden executes a scenario, fails the test on assertion violations,
// and compares the trace against testdata/golden/{name}.golden.
//
// Regenerate golden files with:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, reg *prop.Registry, scenario *Scenario) *Result {
	t.Helper()

	result, err := Run(reg, scenario)
	if err != nil {
		t.Fatalf("run scenario %s: %v", scenario.Name, err)
	}
	for _, failure := range result.Failures {
		t.Errorf("scenario %s: %s", scenario.Name, failure)
	}

	traceJSON, err := journal.MarshalCanonical(snapshot(result))
	if err != nil {
		t.Fatalf("marshal trace for %s: %v", scenario.Name, err)
	}
	traceJSON = append(traceJSON, '\n')

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, traceJSON)
	return result
}
