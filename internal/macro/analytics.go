package macro

import (
	"errors"

	"github.com/roach88/euclid/internal/facts"
	"github.com/roach88/euclid/internal/geom"
)

// errDegenerate covers inputs no compass-and-straightedge construction can
// proceed from: coincident defining points, or a cut longer than the line it
// is cut from.
var errDegenerate = errors.New("degenerate input geometry")

// analytics holds the closed-form version of each proposition the macro
// engine can invoke. I.1's apex lands exactly where the stepped construction
// puts it, upper-intersection convention included. I.2 places its copy on
// the ray from the target point through the source segment's near end,
// straight up when the two coincide; I.3 cuts along the greater line from
// its start.
var analytics map[string]analytic

// Populated in init: the I.2 and I.3 ghost functions expand the ghosts of
// the macros they build on through this same map.
func init() {
	analytics = map[string]analytic{
		"I.1": {
			inputCount: 2,
			run: func(in []geom.Vec) (map[string]geom.Vec, error) {
				apex, err := equilateralApex(in[0], in[1])
				if err != nil {
					return nil, err
				}
				return map[string]geom.Vec{"apex": apex}, nil
			},
			segments: [][2]string{{"apex", "#0"}, {"apex", "#1"}},
			conclude: func(fs facts.Store, ids map[string]string, propID string, atStep int) (facts.Store, []facts.Fact) {
				var all []facts.Fact
				base := facts.NewDistancePair(ids["#0"], ids["#1"])
				for _, endID := range []string{ids["#0"], ids["#1"]} {
					side := facts.NewDistancePair(ids["apex"], endID)
					var added []facts.Fact
					fs, added = facts.AddFact(fs, side, base,
						facts.Citation{Kind: facts.CiteProp, Key: propID, PropID: propID},
						facts.EqualityStatement(side, base), atStep)
					all = append(all, added...)
				}
				return fs, all
			},
			ghosts: func(in []geom.Vec, depth, limit int) []Ghost {
				r := geom.Dist(in[0], in[1])
				return []Ghost{
					{Kind: GhostCircle, PropID: "I.1", Depth: depth, Center: in[0], Radius: r},
					{Kind: GhostCircle, PropID: "I.1", Depth: depth, Center: in[1], Radius: r},
				}
			},
		},

		"I.2": {
			inputCount: 3,
			run: func(in []geom.Vec) (map[string]geom.Vec, error) {
				l, err := placedCopyEnd(in[0], in[1], in[2])
				if err != nil {
					return nil, err
				}
				return map[string]geom.Vec{"result": l}, nil
			},
			segments: [][2]string{{"#0", "result"}},
			conclude: func(fs facts.Store, ids map[string]string, propID string, atStep int) (facts.Store, []facts.Fact) {
				placed := facts.NewDistancePair(ids["#0"], ids["result"])
				source := facts.NewDistancePair(ids["#1"], ids["#2"])
				return facts.AddFact(fs, placed, source,
					facts.Citation{Kind: facts.CiteProp, Key: propID, PropID: propID},
					facts.EqualityStatement(placed, source), atStep)
			},
			ghosts: func(in []geom.Vec, depth, limit int) []Ghost {
				a, b, c := in[0], in[1], in[2]
				d, err := equilateralApex(a, b)
				if err != nil {
					return nil
				}
				out := []Ghost{
					{Kind: GhostSegment, PropID: "I.2", Depth: depth, From: a, To: b},
					{Kind: GhostPoint, PropID: "I.2", Depth: depth, Pos: d},
					{Kind: GhostCircle, PropID: "I.2", Depth: depth, Center: b, Radius: geom.Dist(b, c)},
				}
				if dir, ok := b.Sub(d).Normalize(); ok {
					g := b.Add(dir.Scale(geom.Dist(b, c)))
					out = append(out, Ghost{Kind: GhostCircle, PropID: "I.2", Depth: depth, Center: d, Radius: geom.Dist(d, g)})
				}
				if depth+1 < limit {
					out = append(out, analytics["I.1"].ghosts([]geom.Vec{a, b}, depth+1, limit)...)
				}
				return out
			},
		},

		"I.3": {
			inputCount: 4,
			run: func(in []geom.Vec) (map[string]geom.Vec, error) {
				a, b, c, f := in[0], in[1], in[2], in[3]
				cut := geom.Dist(c, f)
				if cut <= geom.Eps {
					return nil, errDegenerate
				}
				if cut > geom.Dist(a, b)+geom.Eps {
					return nil, errDegenerate
				}
				dir, ok := b.Sub(a).Normalize()
				if !ok {
					return nil, errDegenerate
				}
				return map[string]geom.Vec{"result": a.Add(dir.Scale(cut))}, nil
			},
			segments: [][2]string{{"#0", "result"}},
			conclude: func(fs facts.Store, ids map[string]string, propID string, atStep int) (facts.Store, []facts.Fact) {
				cutOff := facts.NewDistancePair(ids["#0"], ids["result"])
				lesser := facts.NewDistancePair(ids["#2"], ids["#3"])
				return facts.AddFact(fs, cutOff, lesser,
					facts.Citation{Kind: facts.CiteProp, Key: propID, PropID: propID},
					facts.EqualityStatement(cutOff, lesser), atStep)
			},
			ghosts: func(in []geom.Vec, depth, limit int) []Ghost {
				a, c, f := in[0], in[2], in[3]
				d, err := placedCopyEnd(a, c, f)
				if err != nil {
					return nil
				}
				out := []Ghost{
					{Kind: GhostPoint, PropID: "I.3", Depth: depth, Pos: d},
					{Kind: GhostCircle, PropID: "I.3", Depth: depth, Center: a, Radius: geom.Dist(a, d)},
				}
				if depth+1 < limit {
					out = append(out, analytics["I.2"].ghosts([]geom.Vec{a, c, f}, depth+1, limit)...)
				}
				return out
			},
		},
	}
}

// equilateralApex returns the apex of the equilateral triangle on ab, on the
// side the upper-intersection convention selects: the candidate with the
// larger Y, smaller X on a tie.
func equilateralApex(a, b geom.Vec) (geom.Vec, error) {
	side := geom.Dist(a, b)
	if side <= geom.Eps {
		return geom.Vec{}, errDegenerate
	}
	mid := a.Add(b).Scale(0.5)
	u, ok := b.Sub(a).Perp().Normalize()
	if !ok {
		return geom.Vec{}, errDegenerate
	}
	h := side * 0.8660254037844386 // sqrt(3)/2
	p := mid.Add(u.Scale(h))
	q := mid.Sub(u.Scale(h))
	if q.Y > p.Y || (q.Y == p.Y && q.X < p.X) {
		return q, nil
	}
	return p, nil
}

// placedCopyEnd returns the far end of the segment of length |bc| placed at
// a, on the ray from a through b. When a and b coincide the ray has no
// direction and the copy goes straight up.
func placedCopyEnd(a, b, c geom.Vec) (geom.Vec, error) {
	if geom.Dist(b, c) <= geom.Eps {
		return geom.Vec{}, errDegenerate
	}
	dir, ok := b.Sub(a).Normalize()
	if !ok {
		dir = geom.Vec{X: 0, Y: 1}
	}
	return a.Add(dir.Scale(geom.Dist(b, c))), nil
}
