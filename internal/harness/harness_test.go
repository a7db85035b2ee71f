package harness

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/euclid/internal/prop"
)

func writeScenario(t *testing.T, yaml string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	return path
}

func TestLoadScenarioDefaultsSessionToken(t *testing.T) {
	path := writeScenario(t, `
name: minimal
proposition: I.1
actions:
  - tool: compass
    center: A
    radius: B
`)
	sc, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "scenario-minimal", sc.SessionToken)
	require.Len(t, sc.Actions, 1)
	assert.Equal(t, "compass", sc.Actions[0].Tool)
}

func TestLoadScenarioRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"unknown top-level field", `
name: x
proposition: I.1
propositionn: typo
actions: []
`},
		{"unknown action field", `
name: x
proposition: I.1
actions:
  - tool: compass
    centre: A
`},
		{"unknown tool", `
name: x
proposition: I.1
actions:
  - tool: protractor
`},
		{"unknown assertion type", `
name: x
proposition: I.1
actions: []
assertions:
  - type: triangle_is_pretty
`},
		{"missing name", `
proposition: I.1
actions: []
`},
		{"missing proposition", `
name: x
actions: []
`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tc.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadScenarioMissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestRunUnknownProposition(t *testing.T) {
	sc := &Scenario{Name: "x", Proposition: "I.47", SessionToken: "t"}
	_, err := Run(prop.Builtin(), sc)
	assert.Error(t, err)
}

func TestRunReportsAssertionFailures(t *testing.T) {
	sc := &Scenario{
		Name:         "half-done",
		Proposition:  "I.1",
		SessionToken: "half-done",
		Actions: []ActionStep{
			{Tool: "compass", Center: "A", Radius: "B"},
		},
		Assertions: []Assertion{
			{Type: AssertComplete},
			{Type: AssertStepIndex, Value: 1},
			{Type: AssertPointExists, Label: "C"},
		},
	}
	result, err := Run(prop.Builtin(), sc)
	require.NoError(t, err)

	// Failing assertions are all reported, passing ones are not.
	assert.False(t, result.Passed())
	require.Len(t, result.Failures, 2)
	assert.Contains(t, result.Failures[0], "complete")
	assert.Contains(t, result.Failures[1], `point "C"`)
}

func TestRunMarkOtherBranchIsRejected(t *testing.T) {
	sc := &Scenario{
		Name:         "lower-branch",
		Proposition:  "I.1",
		SessionToken: "lower-branch",
		Actions: []ActionStep{
			{Tool: "compass", Center: "A", Radius: "B"},
			{Tool: "compass", Center: "B", Radius: "A"},
			{Tool: "mark", Branch: "other"},
		},
		Assertions: []Assertion{
			{Type: AssertIncomplete},
			{Type: AssertStepIndex, Value: 2},
			{Type: AssertRejectedCount, Value: 1},
		},
	}
	result, err := Run(prop.Builtin(), sc)
	require.NoError(t, err)
	assert.True(t, result.Passed(), "failures: %v", result.Failures)
}

// TestScenarioGoldenTraces runs every scenario under testdata/scenarios and
// compares its trace against the matching golden file. Regenerate with
// -update after an intentional trace change.
func TestScenarioGoldenTraces(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "scenarios", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)
	sort.Strings(paths)

	for _, path := range paths {
		sc, err := LoadScenario(path)
		require.NoError(t, err, path)
		t.Run(sc.Name, func(t *testing.T) {
			RunWithGolden(t, prop.Builtin(), sc)
		})
	}
}
