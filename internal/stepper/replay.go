package stepper

import (
	"github.com/roach88/euclid/internal/geom"
)

// Replay rebuilds a session by dispatching a recorded action list from
// scratch. Rejected actions are no-ops in the live session and stay no-ops
// here, so replaying a full log, rejections included, converges on the same
// final state as the original run.
func Replay(s *Session, actions []Action) []Outcome {
	outcomes := make([]Outcome, 0, len(actions))
	for _, a := range actions {
		outcomes = append(outcomes, s.Dispatch(a))
	}
	return outcomes
}

// Explore re-derives the whole construction with the draggable given points
// moved to new positions: it rebuilds the givens through the definition's
// ComputeGiven function and replays every accepted action against them.
//
// The returned bool reports whether the full log replayed. When the dragged
// configuration makes a step impossible, a circle that no longer cuts the
// line it must cut, the replay stalls at that step: earlier steps stand,
// later ones are dropped, and the caller gets ok false. The stalled session
// is still valid; dragging back to a workable configuration replays clean
// again from the original session's log.
func Explore(s *Session, positions map[string]geom.Vec) (*Session, bool) {
	st, fs, err := initialState(s.Def, positions)
	if err != nil {
		return s, false
	}

	next := &Session{
		Token:      s.Token,
		Def:        s.Def,
		Registry:   s.Registry,
		State:      st,
		Facts:      fs,
		clock:      NewClock(),
		depthLimit: s.depthLimit,
		positions:  positions,
	}

	for _, a := range s.Accepted {
		if out := next.Dispatch(a); !out.Accepted {
			return next, false
		}
	}
	return next, true
}
