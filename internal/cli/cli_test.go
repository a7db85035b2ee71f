package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the CLI with args and returns stdout, stderr, and the error.
func execute(args ...string) (string, string, error) {
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const i1Scenario = `
name: cli-i1
proposition: I.1
actions:
  - tool: compass
    center: A
    radius: B
  - tool: compass
    center: B
    radius: A
  - tool: mark
  - tool: straightedge
    from: C
    to: A
  - tool: straightedge
    from: C
    to: B
assertions:
  - type: complete
`

func TestRootRejectsInvalidFormat(t *testing.T) {
	_, _, err := execute("--format", "xml", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestValidateBuiltins(t *testing.T) {
	out, _, err := execute("validate")
	require.NoError(t, err)
	assert.Contains(t, out, "3 proposition(s) valid")
}

func TestValidateBuiltinsJSON(t *testing.T) {
	out, _, err := execute("validate", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Valid bool `json:"valid"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Data.Valid)
}

func TestValidateReportsViolations(t *testing.T) {
	// The step references a point no given or earlier step introduces.
	spec := writeFile(t, "bad.cue", `
proposition: "X.9": {
	id:    "X.9"
	title: "Forward reference."
	given: points: [{id: "A", x: 0, y: 0}]
	steps: [
		{tool: "straightedge", from: "A", to: "Z"},
	]
}
`)
	out, _, err := execute("validate", spec)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "E202")
}

func TestValidateCompileErrorIsCommandError(t *testing.T) {
	spec := writeFile(t, "broken.cue", `proposition: "X": {id: "X"}`)
	_, _, err := execute("validate", spec)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestListBuiltins(t *testing.T) {
	out, _, err := execute("list")
	require.NoError(t, err)
	assert.Contains(t, out, "I.1")
	assert.Contains(t, out, "I.2")
	assert.Contains(t, out, "I.3")
	assert.Contains(t, out, "equilateral triangle")
}

func TestShowWithTutorial(t *testing.T) {
	out, _, err := execute("show", "I.1", "--tutorial")
	require.NoError(t, err)
	assert.Contains(t, out, "equilateral triangle")
	assert.Contains(t, out, "(compass)")
	assert.Contains(t, out, "Click point A to place the compass center.")
	assert.Contains(t, out, "sweep the full circle")
}

func TestShowTouchWording(t *testing.T) {
	out, _, err := execute("show", "I.1", "--tutorial", "--touch")
	require.NoError(t, err)
	assert.Contains(t, out, "Tap point A")
	assert.NotContains(t, out, "Click point A")
}

func TestShowUnknownProposition(t *testing.T) {
	_, _, err := execute("show", "I.47")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRunScenarioComplete(t *testing.T) {
	scenario := writeFile(t, "i1.yaml", i1Scenario)
	out, _, err := execute("run", scenario)
	require.NoError(t, err)
	assert.Contains(t, out, "Proposition complete.")
	assert.Contains(t, out, "✓ All assertions passed")
}

func TestRunScenarioFailingAssertion(t *testing.T) {
	scenario := writeFile(t, "stall.yaml", `
name: cli-stall
proposition: I.1
actions:
  - tool: compass
    center: A
    radius: B
assertions:
  - type: complete
`)
	out, _, err := execute("run", scenario)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Stalled at step 1.")
}

func TestRunJournalReplayTrace(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "euclid.db")
	scenarioPath := filepath.Join(dir, "i1.yaml")
	require.NoError(t, os.WriteFile(scenarioPath, []byte(i1Scenario), 0o644))

	_, _, err := execute("run", scenarioPath, "--db", dbPath)
	require.NoError(t, err)

	// The journaled session replays without divergence.
	out, _, err := execute("replay", "--db", dbPath, "--session", "scenario-cli-i1")
	require.NoError(t, err)
	assert.Contains(t, out, "Replayed 5 action(s)")
	assert.Contains(t, out, "✓ Replay is deterministic")

	// The timeline shows every action and a stable digest.
	out, _, err = execute("trace", "--db", dbPath, "--session", "scenario-cli-i1")
	require.NoError(t, err)
	assert.Contains(t, out, "compass")
	assert.Contains(t, out, "Digest: ")

	out, _, err = execute("sessions", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "scenario-cli-i1")
	assert.Contains(t, out, "I.1")
}

func TestReplayUnknownSession(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "euclid.db")
	scenario := writeFile(t, "i1.yaml", i1Scenario)
	_, _, err := execute("run", scenario, "--db", dbPath)
	require.NoError(t, err)

	_, _, err = execute("replay", "--db", dbPath, "--session", "nope")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRunWithCompiledSpec(t *testing.T) {
	spec := writeFile(t, "join.cue", `
proposition: "X.join": {
	id:    "X.join"
	title: "Join two points."
	given: points: [
		{id: "P", x: 0, y: 0},
		{id: "Q", x: 3, y: 1},
	]
	steps: [
		{tool: "straightedge", from: "P", to: "Q", cite: "Post.1"},
	]
	results: [["P", "Q"]]
}
`)
	scenario := writeFile(t, "join.yaml", `
name: cli-join
proposition: X.join
actions:
  - tool: straightedge
    from: P
    to: Q
assertions:
  - type: complete
`)
	out, _, err := execute("run", scenario, "--spec", spec)
	require.NoError(t, err)
	assert.Contains(t, out, "Proposition complete.")
}
