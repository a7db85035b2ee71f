package prop

import "fmt"

// Phase names shared between the tutorial expansion and the stepper's tool
// phase machines. A sub-step advances when its trigger phase is reached.
const (
	PhaseCenterSet     = "center-set"
	PhaseRadiusSet     = "radius-set"
	PhaseSweepComplete = "sweep-complete"
	PhaseFromSet       = "from-set"
	PhaseToSet         = "to-set"
	PhaseMarked        = "marked"
	PhaseInputPicked   = "input-picked"
	PhaseInvoked       = "invoked"
	PhaseExtended      = "extended"
)

// Trigger says when a tutorial sub-step is satisfied.
type Trigger struct {
	// Phase is the tool phase whose arrival advances past the sub-step.
	Phase string
	// PointIndex disambiguates repeated phases, such as the Nth macro
	// input pick. -1 when unused.
	PointIndex int
}

// SubStep is one line of tutorial guidance within a proposition step.
type SubStep struct {
	Text    string
	Trigger Trigger
}

// Tutorial expands every step of a definition into fine-grained guidance.
// The outer slice is indexed by step; touch selects wording for touch
// screens ("tap" and "drag" instead of "click").
func Tutorial(def *Definition, touch bool) [][]SubStep {
	verb := "Click"
	if touch {
		verb = "Tap"
	}
	out := make([][]SubStep, len(def.Steps))
	for i, step := range def.Steps {
		out[i] = expandStep(step, verb)
	}
	return out
}

func expandStep(step Step, verb string) []SubStep {
	switch a := step.Expected.(type) {
	case CompassAction:
		return []SubStep{
			{
				Text:    fmt.Sprintf("%s point %s to place the compass center.", verb, a.CenterID),
				Trigger: Trigger{Phase: PhaseCenterSet, PointIndex: -1},
			},
			{
				Text:    fmt.Sprintf("%s point %s to set the radius.", verb, a.RadiusPointID),
				Trigger: Trigger{Phase: PhaseRadiusSet, PointIndex: -1},
			},
			{
				Text:    "Drag all the way around to sweep the full circle.",
				Trigger: Trigger{Phase: PhaseSweepComplete, PointIndex: -1},
			},
		}
	case StraightedgeAction:
		return []SubStep{
			{
				Text:    fmt.Sprintf("%s point %s.", verb, a.FromID),
				Trigger: Trigger{Phase: PhaseFromSet, PointIndex: -1},
			},
			{
				Text:    fmt.Sprintf("%s point %s to draw the segment.", verb, a.ToID),
				Trigger: Trigger{Phase: PhaseToSet, PointIndex: -1},
			},
		}
	case IntersectionAction:
		return []SubStep{
			{
				Text:    fmt.Sprintf("%s the highlighted intersection to mark %s.", verb, a.Label),
				Trigger: Trigger{Phase: PhaseMarked, PointIndex: -1},
			},
		}
	case MacroAction:
		subs := make([]SubStep, 0, len(a.InputPointIDs)+1)
		for idx, id := range a.InputPointIDs {
			subs = append(subs, SubStep{
				Text:    fmt.Sprintf("%s point %s.", verb, id),
				Trigger: Trigger{Phase: PhaseInputPicked, PointIndex: idx},
			})
		}
		subs = append(subs, SubStep{
			Text:    fmt.Sprintf("Apply %s.", a.PropID),
			Trigger: Trigger{Phase: PhaseInvoked, PointIndex: -1},
		})
		return subs
	case ExtendAction:
		return []SubStep{
			{
				Text:    fmt.Sprintf("%s point %s.", verb, a.BaseID),
				Trigger: Trigger{Phase: PhaseFromSet, PointIndex: -1},
			},
			{
				Text:    fmt.Sprintf("Drag through %s to produce the line to %s.", a.ThroughID, a.Label),
				Trigger: Trigger{Phase: PhaseExtended, PointIndex: -1},
			},
		}
	}
	return nil
}
