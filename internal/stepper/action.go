package stepper

import "github.com/roach88/euclid/internal/intersect"

// Action is the sealed union of user actions a session can receive. Only the
// five commit types below implement it.
//
// Actions describe what the user did, not what the step expects; Dispatch
// compares the two. An action that does not match the current step is
// silently rejected and mutates nothing.
type Action interface {
	action() // sealed
}

// CommitCompass reports a finished compass sweep: a full circle drawn with
// this center through this radius point.
type CommitCompass struct {
	CenterID      string
	RadiusPointID string
}

func (CommitCompass) action() {}

// CommitSegment reports a segment drawn from FromID to ToID with the
// straightedge.
type CommitSegment struct {
	FromID string
	ToID   string
}

func (CommitSegment) action() {}

// MarkIntersection reports a click on an intersection candidate.
type MarkIntersection struct {
	Candidate intersect.Candidate
}

func (MarkIntersection) action() {}

// InvokeMacro reports invocation of a proposition on the picked input
// points, in pick order.
type InvokeMacro struct {
	PropID        string
	InputPointIDs []string
}

func (InvokeMacro) action() {}

// CommitExtend reports producing the line from BaseID through ThroughID
// past its far end.
type CommitExtend struct {
	BaseID    string
	ThroughID string
}

func (CommitExtend) action() {}
