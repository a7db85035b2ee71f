// Package harness runs scripted proposition sessions from YAML scenario
// files and validates the outcome with declarative assertions and golden
// trace files.
//
// Scenarios drive the real stepper through the same dispatch path as
// interactive use; nothing is stubbed. Traces are canonicalized with the
// journal's float-free JSON, so golden files are stable across platforms and
// can be written by hand.
package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario scripts one proposition session.
type Scenario struct {
	// Name uniquely identifies this scenario; the golden file is named
	// after it.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Proposition is the registry ID of the proposition to run.
	Proposition string `yaml:"proposition"`

	// SessionToken is a fixed token for deterministic traces. Defaults
	// to "scenario-" plus the scenario name.
	SessionToken string `yaml:"session_token,omitempty"`

	// Given moves draggable given points before the run, keyed by point
	// ID. Only usable with propositions that support dragging.
	Given map[string]Position `yaml:"given,omitempty"`

	// Actions is the scripted dispatch sequence.
	Actions []ActionStep `yaml:"actions"`

	// Assertions validate the final session.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Position is a given point override.
type Position struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// ActionStep is one scripted action. Tool selects the variant; the other
// fields apply per tool.
type ActionStep struct {
	// Tool is one of compass, straightedge, mark, macro, extend.
	Tool string `yaml:"tool"`

	// Compass.
	Center string `yaml:"center,omitempty"`
	Radius string `yaml:"radius,omitempty"`

	// Straightedge and extend.
	From string `yaml:"from,omitempty"`
	To   string `yaml:"to,omitempty"`

	// Mark. Branch "expected" (the default) clicks the candidate the
	// step accepts; "other" clicks the rejected branch of the same pair.
	Branch string `yaml:"branch,omitempty"`

	// Macro.
	Prop   string   `yaml:"prop,omitempty"`
	Inputs []string `yaml:"inputs,omitempty"`

	// Extend.
	Base    string `yaml:"base,omitempty"`
	Through string `yaml:"through,omitempty"`
}

// Assertion validates the session after the scripted actions ran.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Value is the expected number for step_index, fact_count, and
	// rejected_count.
	Value int `yaml:"value,omitempty"`

	// Label names a point for point_exists.
	Label string `yaml:"label,omitempty"`

	// A and B are point-ID pairs for equal_distance.
	A []string `yaml:"a,omitempty"`
	B []string `yaml:"b,omitempty"`
}

// Assertion type constants.
const (
	AssertComplete      = "complete"
	AssertIncomplete    = "incomplete"
	AssertStepIndex     = "step_index"
	AssertPointExists   = "point_exists"
	AssertEqualDistance = "equal_distance"
	AssertFactCount     = "fact_count"
	AssertRejectedCount = "rejected_count"
)

// LoadScenario reads and parses a scenario file. Unknown YAML fields are
// rejected so a typo fails loudly instead of silently skipping a check.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	if err := scenario.validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	if scenario.SessionToken == "" {
		scenario.SessionToken = "scenario-" + scenario.Name
	}
	return &scenario, nil
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("missing name")
	}
	if s.Proposition == "" {
		return fmt.Errorf("missing proposition")
	}
	for i, a := range s.Actions {
		switch a.Tool {
		case "compass", "straightedge", "mark", "macro", "extend":
		default:
			return fmt.Errorf("action %d: unknown tool %q", i, a.Tool)
		}
	}
	for i, a := range s.Assertions {
		switch a.Type {
		case AssertComplete, AssertIncomplete, AssertStepIndex,
			AssertPointExists, AssertEqualDistance,
			AssertFactCount, AssertRejectedCount:
		default:
			return fmt.Errorf("assertion %d: unknown type %q", i, a.Type)
		}
	}
	return nil
}
