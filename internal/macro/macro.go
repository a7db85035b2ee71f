// Package macro executes previously proven propositions as single actions.
//
// A macro does not replay the target proposition's steps. Each supported
// proposition has an analytic form: a closed-form computation of its output
// points from its input points. Executing a macro adds the output points and
// result segments to the construction in one stroke, records the derived
// distance facts with the proposition as their citation, and reports the
// intermediate geometry the hidden construction would have drawn as ghost
// shapes for rendering only.
package macro

import (
	"fmt"
	"sort"

	"github.com/roach88/euclid/internal/construction"
	"github.com/roach88/euclid/internal/facts"
	"github.com/roach88/euclid/internal/geom"
	"github.com/roach88/euclid/internal/prop"
)

// DefaultDepthLimit bounds the nesting depth of ghost expansion. A macro's
// ghosts include the ghosts of the macros it builds on; the limit keeps that
// recursion finite even for adversarial registries.
const DefaultDepthLimit = 8

// Options configures Execute. The zero value uses DefaultDepthLimit.
type Options struct {
	DepthLimit int
}

// GhostKind distinguishes ghost shapes.
type GhostKind string

const (
	GhostCircle  GhostKind = "circle"
	GhostSegment GhostKind = "segment"
	GhostPoint   GhostKind = "point"
)

// Ghost is one piece of intermediate geometry from the hidden construction.
// Ghosts are render-only: they never enter the construction state and no
// fact or selector can reference them.
type Ghost struct {
	Kind   GhostKind
	PropID string
	// Depth is 0 for the invoked proposition's own intermediates and grows
	// by one per nesting level.
	Depth int

	Center geom.Vec // GhostCircle
	Radius float64  // GhostCircle
	From   geom.Vec // GhostSegment
	To     geom.Vec // GhostSegment
	Pos    geom.Vec // GhostPoint
}

// Result reports what a macro invocation did. When Applied is false the
// returned state and fact store are the inputs unchanged and Reason says why;
// rejection is silent at the interaction layer, Reason exists for logs.
type Result struct {
	Applied bool
	Reason  string

	// OutputIDs maps the proposition's output placeholders to the IDs of
	// the points the invocation created.
	OutputIDs map[string]string
	NewFacts  []facts.Fact
	Ghosts    []Ghost
}

// analytic computes a proposition's outputs from input positions. It returns
// the output placeholder positions, the result segments as pairs of
// placeholder-or-input indices into names, and an error for degenerate
// inputs.
type analytic struct {
	inputCount int
	run        func(in []geom.Vec) (map[string]geom.Vec, error)
	// segments lists result segments as (endpoint, endpoint) where each
	// endpoint is either an input index (0-based, as "#0") or an output
	// placeholder name.
	segments [][2]string
	// conclude derives the invocation's facts. ids maps "#n" and
	// placeholder names to point IDs in the construction.
	conclude func(fs facts.Store, ids map[string]string, propID string, atStep int) (facts.Store, []facts.Fact)
	ghosts   func(in []geom.Vec, depth, limit int) []Ghost
}

// Execute runs the proposition propID as a macro on the named input points.
// outputLabels maps the proposition's output placeholders to the labels the
// caller wants for the created points; placeholders left unbound get the
// next free auto-generated label. Facts are stamped with atStep.
//
// Any failure, an unknown proposition, a missing input point, a wrong input
// count, or degenerate geometry, leaves state and facts untouched and
// returns Applied false.
func Execute(reg *prop.Registry, st construction.State, fs facts.Store, propID string, inputIDs []string, outputLabels map[string]string, atStep int, opts Options) (construction.State, facts.Store, Result) {
	limit := opts.DepthLimit
	if limit <= 0 {
		limit = DefaultDepthLimit
	}

	if _, ok := reg.Get(propID); !ok {
		return st, fs, Result{Reason: fmt.Sprintf("unknown proposition %q", propID)}
	}
	an, ok := analytics[propID]
	if !ok {
		return st, fs, Result{Reason: fmt.Sprintf("no analytic form for proposition %q", propID)}
	}
	if len(inputIDs) != an.inputCount {
		return st, fs, Result{Reason: fmt.Sprintf("proposition %q takes %d input points, got %d", propID, an.inputCount, len(inputIDs))}
	}

	in := make([]geom.Vec, len(inputIDs))
	for i, id := range inputIDs {
		pos, ok := construction.PointPos(st, id)
		if !ok {
			return st, fs, Result{Reason: fmt.Sprintf("input point %q not in construction", id)}
		}
		in[i] = pos
	}

	outputs, err := an.run(in)
	if err != nil {
		return st, fs, Result{Reason: err.Error()}
	}

	// One accent color per invocation: every element the macro adds shares
	// it, and the counter advances once.
	next, color := construction.NextAccentColor(st)

	ids := map[string]string{}
	for i, id := range inputIDs {
		ids[fmt.Sprintf("#%d", i)] = id
	}
	outIDs := map[string]string{}
	for _, placeholder := range sortedKeys(outputs) {
		// An unbound placeholder falls through to automatic label
		// generation, same letter sequence as every other point.
		var p construction.Point
		next, p = construction.AddPoint(next, outputs[placeholder].X, outputs[placeholder].Y, construction.PointOpts{
			Label:  outputLabels[placeholder],
			Color:  color,
			Origin: construction.OriginMacro,
		})
		ids[placeholder] = p.ID
		outIDs[placeholder] = p.ID
	}
	for _, seg := range an.segments {
		next, _ = construction.AddSegment(next, ids[seg[0]], ids[seg[1]], construction.SegmentOpts{
			Color:  color,
			Origin: construction.OriginMacro,
		})
	}

	nextFacts, newFacts := an.conclude(fs, ids, propID, atStep)

	return next, nextFacts, Result{
		Applied:   true,
		OutputIDs: outIDs,
		NewFacts:  newFacts,
		Ghosts:    an.ghosts(in, 0, limit),
	}
}

// Ghosts returns only the ghost geometry of an invocation, for re-rendering
// during drag without re-executing the macro against the fact store.
func Ghosts(propID string, in []geom.Vec, limit int) []Ghost {
	an, ok := analytics[propID]
	if !ok || len(in) != an.inputCount {
		return nil
	}
	if limit <= 0 {
		limit = DefaultDepthLimit
	}
	return an.ghosts(in, 0, limit)
}

func sortedKeys(m map[string]geom.Vec) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
