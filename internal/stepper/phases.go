package stepper

import (
	"math"

	"github.com/roach88/euclid/internal/intersect"
	"github.com/roach88/euclid/internal/prop"
)

// FullSweep is one complete compass turn in radians.
const FullSweep = 2 * math.Pi

// sweepCompletionRatio is the fraction of a full turn that counts as a
// finished circle. Requiring exactly 2*pi punishes input jitter at the seam
// of the sweep.
const sweepCompletionRatio = 0.95

// CompassPhase tracks the intra-step gestures of the compass tool: pick a
// center, pick a radius point, then sweep a full turn. Each transition
// returns the phase name reached, which is what tutorial sub-step triggers
// match on. The phase machine validates nothing against the proposition;
// Dispatch does that when the finished action is committed.
type CompassPhase struct {
	centerID string
	radiusID string
	swept    float64
	phase    string
}

// NewCompassPhase returns an idle compass.
func NewCompassPhase() *CompassPhase {
	return &CompassPhase{}
}

// Phase returns the current phase name, "" while idle.
func (p *CompassPhase) Phase() string { return p.phase }

// PickCenter places the compass center.
func (p *CompassPhase) PickCenter(id string) string {
	p.centerID = id
	p.radiusID = ""
	p.swept = 0
	p.phase = prop.PhaseCenterSet
	return p.phase
}

// PickRadius sets the radius point. Ignored until a center is placed.
func (p *CompassPhase) PickRadius(id string) string {
	if p.phase != prop.PhaseCenterSet {
		return p.phase
	}
	p.radiusID = id
	p.phase = prop.PhaseRadiusSet
	return p.phase
}

// Sweep accumulates swept angle in radians. Deltas are signed; backtracking
// un-sweeps. The phase flips to sweep-complete once the cumulative magnitude
// reaches the completion threshold.
func (p *CompassPhase) Sweep(delta float64) string {
	if p.phase != prop.PhaseRadiusSet && p.phase != prop.PhaseSweepComplete {
		return p.phase
	}
	p.swept += delta
	if math.Abs(p.swept) >= sweepCompletionRatio*FullSweep {
		p.phase = prop.PhaseSweepComplete
	}
	return p.phase
}

// Swept returns the cumulative swept angle.
func (p *CompassPhase) Swept() float64 { return p.swept }

// Action returns the finished compass commit once the sweep is complete.
func (p *CompassPhase) Action() (CommitCompass, bool) {
	if p.phase != prop.PhaseSweepComplete {
		return CommitCompass{}, false
	}
	return CommitCompass{CenterID: p.centerID, RadiusPointID: p.radiusID}, true
}

// Reset returns the compass to idle.
func (p *CompassPhase) Reset() {
	*p = CompassPhase{}
}

// StraightedgePhase tracks the two picks of the straightedge tool.
type StraightedgePhase struct {
	fromID string
	toID   string
	phase  string
}

// NewStraightedgePhase returns an idle straightedge.
func NewStraightedgePhase() *StraightedgePhase {
	return &StraightedgePhase{}
}

// Phase returns the current phase name, "" while idle.
func (p *StraightedgePhase) Phase() string { return p.phase }

// PickFrom sets the segment's start point.
func (p *StraightedgePhase) PickFrom(id string) string {
	p.fromID = id
	p.toID = ""
	p.phase = prop.PhaseFromSet
	return p.phase
}

// PickTo sets the segment's end point. Ignored until a start is picked.
func (p *StraightedgePhase) PickTo(id string) string {
	if p.phase != prop.PhaseFromSet {
		return p.phase
	}
	p.toID = id
	p.phase = prop.PhaseToSet
	return p.phase
}

// Action returns the finished segment commit once both ends are picked.
func (p *StraightedgePhase) Action() (CommitSegment, bool) {
	if p.phase != prop.PhaseToSet {
		return CommitSegment{}, false
	}
	return CommitSegment{FromID: p.fromID, ToID: p.toID}, true
}

// Reset returns the straightedge to idle.
func (p *StraightedgePhase) Reset() {
	*p = StraightedgePhase{}
}

// MacroPhase collects the input points of a macro invocation. Arity is the
// number of inputs the target proposition takes; the phase machine accepts
// picks in any order and leaves correctness to Dispatch.
type MacroPhase struct {
	propID string
	arity  int
	inputs []string
	phase  string
}

// NewMacroPhase returns an idle macro selection for the given proposition.
func NewMacroPhase(propID string, arity int) *MacroPhase {
	return &MacroPhase{propID: propID, arity: arity}
}

// Phase returns the current phase name, "" while idle.
func (p *MacroPhase) Phase() string { return p.phase }

// PickInput adds an input point and returns the phase name plus the pick's
// index. Picks past the arity are ignored.
func (p *MacroPhase) PickInput(id string) (string, int) {
	if len(p.inputs) >= p.arity {
		return p.phase, len(p.inputs) - 1
	}
	p.inputs = append(p.inputs, id)
	p.phase = prop.PhaseInputPicked
	return p.phase, len(p.inputs) - 1
}

// Ready reports whether all inputs are picked.
func (p *MacroPhase) Ready() bool {
	return len(p.inputs) == p.arity
}

// Invoke finalizes the selection. It fails until all inputs are picked.
func (p *MacroPhase) Invoke() (InvokeMacro, bool) {
	if !p.Ready() {
		return InvokeMacro{}, false
	}
	p.phase = prop.PhaseInvoked
	inputs := make([]string, len(p.inputs))
	copy(inputs, p.inputs)
	return InvokeMacro{PropID: p.propID, InputPointIDs: inputs}, true
}

// Reset clears the selection, keeping the target proposition.
func (p *MacroPhase) Reset() {
	p.inputs = nil
	p.phase = ""
}

// MarkPhase tracks the single click of the intersection tool. The candidate
// carried is whatever the renderer had highlighted; Dispatch validates it
// against the step.
type MarkPhase struct {
	candidate intersect.Candidate
	phase     string
}

// NewMarkPhase returns an idle intersection marker.
func NewMarkPhase() *MarkPhase {
	return &MarkPhase{}
}

// Phase returns the current phase name, "" while idle.
func (p *MarkPhase) Phase() string { return p.phase }

// Click records the candidate under the cursor.
func (p *MarkPhase) Click(cand intersect.Candidate) string {
	p.candidate = cand
	p.phase = prop.PhaseMarked
	return p.phase
}

// Action returns the finished mark once a candidate is clicked.
func (p *MarkPhase) Action() (MarkIntersection, bool) {
	if p.phase != prop.PhaseMarked {
		return MarkIntersection{}, false
	}
	return MarkIntersection{Candidate: p.candidate}, true
}

// Reset returns the marker to idle.
func (p *MarkPhase) Reset() {
	*p = MarkPhase{}
}

// ExtendPhase tracks the two gestures of producing a line: pick the base
// point, then drag through the far end.
type ExtendPhase struct {
	baseID    string
	throughID string
	phase     string
}

// NewExtendPhase returns an idle extension.
func NewExtendPhase() *ExtendPhase {
	return &ExtendPhase{}
}

// Phase returns the current phase name, "" while idle.
func (p *ExtendPhase) Phase() string { return p.phase }

// PickBase sets the endpoint the extension is measured from.
func (p *ExtendPhase) PickBase(id string) string {
	p.baseID = id
	p.throughID = ""
	p.phase = prop.PhaseFromSet
	return p.phase
}

// DragThrough sets the point the line is produced through. Ignored until a
// base is picked.
func (p *ExtendPhase) DragThrough(id string) string {
	if p.phase != prop.PhaseFromSet {
		return p.phase
	}
	p.throughID = id
	p.phase = prop.PhaseExtended
	return p.phase
}

// Action returns the finished extension commit once both points are set.
func (p *ExtendPhase) Action() (CommitExtend, bool) {
	if p.phase != prop.PhaseExtended {
		return CommitExtend{}, false
	}
	return CommitExtend{BaseID: p.baseID, ThroughID: p.throughID}, true
}

// Reset returns the extension to idle.
func (p *ExtendPhase) Reset() {
	*p = ExtendPhase{}
}
