// Package stepper runs interactive proposition sessions: it owns the
// construction state and fact store for one proposition attempt, checks each
// user action against the current step's expectation, and advances on match.
//
// The dispatch contract is silent rejection. A wrong action returns an
// Outcome with Accepted false and leaves the session byte-identical; there
// is no error state to recover from and nothing to undo. Accepted events are
// stamped from a logical clock so a recorded action list replays to the
// identical session.
package stepper

import (
	"fmt"

	"github.com/roach88/euclid/internal/construction"
	"github.com/roach88/euclid/internal/facts"
	"github.com/roach88/euclid/internal/geom"
	"github.com/roach88/euclid/internal/intersect"
	"github.com/roach88/euclid/internal/macro"
	"github.com/roach88/euclid/internal/prop"
)

// Options configures NewSession. The zero value uses production defaults.
type Options struct {
	// TokenGen defaults to UUIDv7Generator.
	TokenGen TokenGenerator
	// DepthLimit bounds macro ghost nesting; defaults to
	// macro.DefaultDepthLimit.
	DepthLimit int
	// Positions overrides the draggable given points when the definition
	// has a ComputeGiven function.
	Positions map[string]geom.Vec
}

// Session is one attempt at a proposition. Construction state and facts are
// immutable values; the session replaces them wholesale on each accepted
// action, so a rejected dispatch cannot leave partial effects behind.
type Session struct {
	Token    string
	Def      *prop.Definition
	Registry *prop.Registry

	State construction.State
	Facts facts.Store

	// StepIndex is the step awaiting an action. Equal to len(Def.Steps)
	// once Complete.
	StepIndex int
	Complete  bool

	// Accepted is the replay log: every accepted action in order.
	Accepted []Action

	// Ghosts accumulates render-only macro intermediates.
	Ghosts []macro.Ghost

	clock      *Clock
	depthLimit int
	positions  map[string]geom.Vec
}

// Outcome reports the result of one dispatch.
type Outcome struct {
	Accepted bool
	// Reason says why a rejected action did not match. Rejections are
	// silent in the interaction layer; Reason exists for logs and traces.
	Reason string
	// Seq is the logical-clock stamp of an accepted event, 0 otherwise.
	Seq int64

	// Added lists the elements the action appended, in creation order.
	Added    []construction.Element
	NewFacts []facts.Fact
	Ghosts   []macro.Ghost

	StepCompleted       bool
	PropositionComplete bool
}

// NewSession starts a session for the proposition propID.
func NewSession(reg *prop.Registry, propID string, opts Options) (*Session, error) {
	def, ok := reg.Get(propID)
	if !ok {
		return nil, fmt.Errorf("unknown proposition %q", propID)
	}

	gen := opts.TokenGen
	if gen == nil {
		gen = UUIDv7Generator{}
	}
	limit := opts.DepthLimit
	if limit <= 0 {
		limit = macro.DefaultDepthLimit
	}

	st, fs, err := initialState(def, opts.Positions)
	if err != nil {
		return nil, err
	}

	return &Session{
		Token:      gen.Generate(),
		Def:        def,
		Registry:   reg,
		State:      st,
		Facts:      fs,
		clock:      NewClock(),
		depthLimit: limit,
		positions:  opts.Positions,
		// A definition with no steps is born at its terminal state, so
		// every dispatch is rejected rather than indexing past the end.
		Complete: len(def.Steps) == 0,
	}, nil
}

// initialState builds the given geometry and hypothesis facts. Given facts
// are stamped with step -1: they precede every construction step.
func initialState(def *prop.Definition, positions map[string]geom.Vec) (construction.State, facts.Store, error) {
	givens := def.GivenElements
	if def.ComputeGiven != nil && len(positions) > 0 {
		givens = def.ComputeGiven(positions)
	}

	st := construction.State{}
	// Points first so segments can refer to them regardless of
	// declaration order.
	for _, g := range givens {
		if p, ok := g.(prop.GivenPoint); ok {
			st, _ = construction.AddPoint(st, p.X, p.Y, construction.PointOpts{
				Label:  p.ID,
				Origin: construction.OriginGiven,
			})
		}
	}
	for _, g := range givens {
		if s, ok := g.(prop.GivenSegment); ok {
			if _, found := construction.GetPoint(st, s.FromID); !found {
				return construction.State{}, facts.Store{}, fmt.Errorf("given segment %q references missing point %q", s.ID, s.FromID)
			}
			if _, found := construction.GetPoint(st, s.ToID); !found {
				return construction.State{}, facts.Store{}, fmt.Errorf("given segment %q references missing point %q", s.ID, s.ToID)
			}
			st, _ = construction.AddSegment(st, s.FromID, s.ToID, construction.SegmentOpts{
				Origin: construction.OriginGiven,
			})
		}
	}

	fs := facts.Store{}
	for _, gf := range def.GivenFacts {
		stmt := gf.Statement
		if stmt == "" {
			stmt = facts.EqualityStatement(gf.A, gf.B)
		}
		fs, _ = facts.AddFact(fs, gf.A, gf.B,
			facts.Citation{Kind: facts.CiteGiven, Key: "given"}, stmt, -1)
	}
	return st, fs, nil
}

// CurrentStep returns the step awaiting an action.
func (s *Session) CurrentStep() (prop.Step, bool) {
	if s.Complete || s.StepIndex >= len(s.Def.Steps) {
		return prop.Step{}, false
	}
	return s.Def.Steps[s.StepIndex], true
}

func reject(reason string) Outcome {
	return Outcome{Reason: reason}
}

// Dispatch checks an action against the current step. On a match it commits
// the action's geometry and facts, advances the step index, and, after the
// final step, appends the proposition's conclusion facts. On a mismatch it
// returns a rejection and the session is untouched.
func (s *Session) Dispatch(action Action) Outcome {
	if s.Complete {
		return reject("proposition already complete")
	}
	step := s.Def.Steps[s.StepIndex]

	var (
		next     construction.State
		nextFS   facts.Store
		newFacts []facts.Fact
		ghosts   []macro.Ghost
		ok       bool
		reason   string
	)

	switch expected := step.Expected.(type) {
	case prop.CompassAction:
		next, ok, reason = s.applyCompass(expected, action)
		nextFS = s.Facts
	case prop.StraightedgeAction:
		next, ok, reason = s.applyStraightedge(expected, action)
		nextFS = s.Facts
	case prop.IntersectionAction:
		next, ok, reason = s.applyIntersection(expected, action)
		nextFS = s.Facts
	case prop.MacroAction:
		next, nextFS, newFacts, ghosts, ok, reason = s.applyMacro(expected, action)
	case prop.ExtendAction:
		next, ok, reason = s.applyExtend(expected, action)
		nextFS = s.Facts
	default:
		ok, reason = false, "step has no expected action"
	}
	if !ok {
		return reject(reason)
	}

	added := next.Elements[len(s.State.Elements):]

	s.State = next
	s.Facts = nextFS
	s.StepIndex++
	s.Accepted = append(s.Accepted, action)
	s.Ghosts = append(s.Ghosts, ghosts...)

	out := Outcome{
		Accepted:      true,
		Seq:           s.clock.Next(),
		Added:         added,
		NewFacts:      newFacts,
		Ghosts:        ghosts,
		StepCompleted: true,
	}

	if s.StepIndex == len(s.Def.Steps) {
		s.Complete = true
		out.PropositionComplete = true
		if s.Def.DeriveConclusion != nil {
			var concluded []facts.Fact
			s.Facts, concluded = s.Def.DeriveConclusion(s.State, s.Facts, len(s.Def.Steps)-1)
			out.NewFacts = append(out.NewFacts, concluded...)
		}
	}
	return out
}

func (s *Session) applyCompass(expected prop.CompassAction, action Action) (construction.State, bool, string) {
	a, ok := action.(CommitCompass)
	if !ok {
		return s.State, false, "step expects the compass tool"
	}
	// Structural match only: center and radius roles are never
	// interchangeable, even when the circles coincide geometrically.
	if a.CenterID != expected.CenterID || a.RadiusPointID != expected.RadiusPointID {
		return s.State, false, fmt.Sprintf("expected circle center %s through %s", expected.CenterID, expected.RadiusPointID)
	}
	next, _ := construction.AddCircle(s.State, a.CenterID, a.RadiusPointID, construction.CircleOpts{
		Origin: construction.OriginCompass,
	})
	return next, true, ""
}

func (s *Session) applyStraightedge(expected prop.StraightedgeAction, action Action) (construction.State, bool, string) {
	a, ok := action.(CommitSegment)
	if !ok {
		return s.State, false, "step expects the straightedge tool"
	}
	if a.FromID != expected.FromID || a.ToID != expected.ToID {
		return s.State, false, fmt.Sprintf("expected segment from %s to %s", expected.FromID, expected.ToID)
	}
	next, _ := construction.AddSegment(s.State, a.FromID, a.ToID, construction.SegmentOpts{
		Origin: construction.OriginStraightedge,
	})
	return next, true, ""
}

func (s *Session) applyIntersection(expected prop.IntersectionAction, action Action) (construction.State, bool, string) {
	a, ok := action.(MarkIntersection)
	if !ok {
		return s.State, false, "step expects an intersection mark"
	}

	pick, aID, bID, ok := s.expectedIntersection(expected)
	if !ok {
		return s.State, false, "expected intersection does not exist yet"
	}

	// The clicked candidate must be the intersection of the same two
	// elements, in either order, on the picked branch. Matching by branch
	// index rather than position keeps a recorded mark valid when replay
	// runs against dragged given points.
	clicked := a.Candidate
	samePair := (clicked.OfA == aID && clicked.OfB == bID) || (clicked.OfA == bID && clicked.OfB == aID)
	if !samePair {
		return s.State, false, "marked intersection is of the wrong elements"
	}
	if clicked.Which != pick.Which {
		return s.State, false, "marked the wrong intersection of the expected pair"
	}

	// The point is committed at the recomputed position, not the clicked
	// one, so replay under dragged givens stays exact.
	next, _ := construction.AddPoint(s.State, pick.X, pick.Y, construction.PointOpts{
		Label:  expected.Label,
		Origin: construction.OriginIntersection,
	})
	return next, true, ""
}

// expectedIntersection resolves the step's selectors and returns the single
// candidate the step will accept, applying the beyond filter and the
// pick convention.
func (s *Session) expectedIntersection(expected prop.IntersectionAction) (intersect.Candidate, string, string, bool) {
	aID := prop.Resolve(expected.OfA, s.State)
	bID := prop.Resolve(expected.OfB, s.State)
	if aID == "" || bID == "" {
		return intersect.Candidate{}, "", "", false
	}

	produce := expected.BeyondID != ""
	cands := intersect.Candidates(s.State, aID, bID, intersect.Options{Produce: produce})
	if expected.BeyondID != "" {
		segID := aID
		if _, isSeg := construction.GetSegment(s.State, bID); isSeg {
			segID = bID
		}
		cands = intersect.Beyond(s.State, cands, segID, expected.BeyondID)
	}
	pick, ok := intersect.Pick(cands)
	return pick, aID, bID, ok
}

func (s *Session) applyMacro(expected prop.MacroAction, action Action) (construction.State, facts.Store, []facts.Fact, []macro.Ghost, bool, string) {
	a, ok := action.(InvokeMacro)
	if !ok {
		return s.State, s.Facts, nil, nil, false, "step expects a macro invocation"
	}
	if a.PropID != expected.PropID {
		return s.State, s.Facts, nil, nil, false, fmt.Sprintf("expected invocation of %s", expected.PropID)
	}
	if len(a.InputPointIDs) != len(expected.InputPointIDs) {
		return s.State, s.Facts, nil, nil, false, "wrong number of input points"
	}
	for i, id := range expected.InputPointIDs {
		if a.InputPointIDs[i] != id {
			return s.State, s.Facts, nil, nil, false, "input points differ from the expected ones"
		}
	}

	next, nextFS, res := macro.Execute(s.Registry, s.State, s.Facts,
		expected.PropID, expected.InputPointIDs, expected.OutputLabels,
		s.StepIndex, macro.Options{DepthLimit: s.depthLimit})
	if !res.Applied {
		return s.State, s.Facts, nil, nil, false, res.Reason
	}
	return next, nextFS, res.NewFacts, res.Ghosts, true, ""
}

func (s *Session) applyExtend(expected prop.ExtendAction, action Action) (construction.State, bool, string) {
	a, ok := action.(CommitExtend)
	if !ok {
		return s.State, false, "step expects a segment extension"
	}
	if a.BaseID != expected.BaseID || a.ThroughID != expected.ThroughID {
		return s.State, false, fmt.Sprintf("expected extension of %s through %s", expected.BaseID, expected.ThroughID)
	}

	base, okBase := construction.PointPos(s.State, expected.BaseID)
	through, okThrough := construction.PointPos(s.State, expected.ThroughID)
	if !okBase || !okThrough {
		return s.State, false, "extension endpoints are not in the construction"
	}
	dir, okDir := through.Sub(base).Normalize()
	if !okDir {
		return s.State, false, "extension endpoints coincide"
	}

	pos := base.Add(dir.Scale(expected.Distance))
	// One visible action: the marked point and the produced segment share
	// one accent color and the counter advances once.
	next, color := construction.NextAccentColor(s.State)
	var p construction.Point
	next, p = construction.AddPoint(next, pos.X, pos.Y, construction.PointOpts{
		Label:  expected.Label,
		Color:  color,
		Origin: construction.OriginExtend,
	})
	next, _ = construction.AddSegment(next, expected.ThroughID, p.ID, construction.SegmentOpts{
		Color:  color,
		Origin: construction.OriginStraightedge,
	})
	return next, true, ""
}

// ExpectedCandidate returns the intersection candidate the current step
// accepts, when the current step is an intersection step whose geometry
// exists. Renderers use it to highlight the clickable point.
func (s *Session) ExpectedCandidate() (intersect.Candidate, bool) {
	step, ok := s.CurrentStep()
	if !ok {
		return intersect.Candidate{}, false
	}
	exp, ok := step.Expected.(prop.IntersectionAction)
	if !ok {
		return intersect.Candidate{}, false
	}
	cand, _, _, ok := s.expectedIntersection(exp)
	return cand, ok
}

// Seq returns the logical clock's current position.
func (s *Session) Seq() int64 {
	return s.clock.Current()
}
