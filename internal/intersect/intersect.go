// Package intersect computes intersection candidates between construction
// elements.
//
// All functions are pure: they read a construction.State and return candidate
// lists without touching it. A candidate is not part of the construction until
// the stepper (or a macro) promotes it to a Point.
//
// Candidate lists are deterministically ordered (descending Y, then ascending
// X) and the Which index is the candidate's position in that order, so "the
// other intersection" is a stable reference across recomputation.
package intersect

import (
	"math"
	"sort"

	"github.com/roach88/euclid/internal/construction"
	"github.com/roach88/euclid/internal/geom"
)

// Candidate is a transient intersection point between elements OfA and OfB.
type Candidate struct {
	X     float64
	Y     float64
	OfA   string
	OfB   string
	Which int
}

// Pos returns the candidate position as a vector.
func (c Candidate) Pos() geom.Vec { return geom.Vec{X: c.X, Y: c.Y} }

// Options controls candidate computation.
type Options struct {
	// Produce extends segments to unbounded lines before intersecting
	// (Postulate 2). It applies to every segment in the pair.
	Produce bool
}

// Candidates computes all intersection points between the two referenced
// elements. Point IDs and unknown IDs yield no candidates; only
// circle/circle, circle/segment, and segment/segment pairs intersect.
func Candidates(st construction.State, aID, bID string, opts Options) []Candidate {
	pts := solutions(st, aID, bID, opts)
	return tagged(pts, aID, bID)
}

// solutions dispatches on the element kinds and returns raw points.
func solutions(st construction.State, aID, bID string, opts Options) []geom.Vec {
	a, okA := construction.GetElement(st, aID)
	b, okB := construction.GetElement(st, bID)
	if !okA || !okB {
		return nil
	}

	switch ea := a.(type) {
	case construction.Circle:
		switch eb := b.(type) {
		case construction.Circle:
			return circleCircle(st, ea, eb)
		case construction.Segment:
			return circleSegment(st, ea, eb, opts.Produce)
		}
	case construction.Segment:
		switch eb := b.(type) {
		case construction.Circle:
			return circleSegment(st, eb, ea, opts.Produce)
		case construction.Segment:
			return segmentSegment(st, ea, eb, opts.Produce)
		}
	}
	return nil
}

// tagged sorts raw points into canonical order and assigns Which indices.
func tagged(pts []geom.Vec, aID, bID string) []Candidate {
	if len(pts) == 0 {
		return nil
	}
	sorted := make([]geom.Vec, len(pts))
	copy(sorted, pts)
	sort.Slice(sorted, func(i, j int) bool {
		if !geom.Near(sorted[i].Y, sorted[j].Y) {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	out := make([]Candidate, len(sorted))
	for i, p := range sorted {
		out[i] = Candidate{X: p.X, Y: p.Y, OfA: aID, OfB: bID, Which: i}
	}
	return out
}

// circleCircle computes the 0, 1 (tangent), or 2 intersection points of two
// circles via the radical-line construction. Near-tangency within Eps is
// treated as tangency.
func circleCircle(st construction.State, a, b construction.Circle) []geom.Vec {
	ca, okA := construction.PointPos(st, a.CenterID)
	cb, okB := construction.PointPos(st, b.CenterID)
	ra, okRA := construction.Radius(st, a.ID)
	rb, okRB := construction.Radius(st, b.ID)
	if !okA || !okB || !okRA || !okRB {
		return nil
	}

	d := geom.Dist(ca, cb)
	if d < geom.Eps {
		// Concentric circles: either identical (infinitely many points,
		// none referenceable) or disjoint.
		return nil
	}
	if d > ra+rb+geom.Eps || d < math.Abs(ra-rb)-geom.Eps {
		return nil
	}

	// Distance from ca to the radical line along the center axis.
	aDist := (d*d + ra*ra - rb*rb) / (2 * d)
	h2 := ra*ra - aDist*aDist
	if h2 < 0 {
		h2 = 0 // near-tangency clamped to tangency
	}
	h := math.Sqrt(h2)

	u, _ := cb.Sub(ca).Normalize() // d >= Eps, so the direction exists
	base := ca.Add(u.Scale(aDist))
	if h < geom.Eps {
		return []geom.Vec{base}
	}
	off := u.Perp().Scale(h)
	return []geom.Vec{base.Add(off), base.Sub(off)}
}

// circleSegment solves the line-circle quadratic for the segment's carrier
// line, keeping roots whose parameter lies on the segment unless produce is
// set.
func circleSegment(st construction.State, c construction.Circle, s construction.Segment, produce bool) []geom.Vec {
	center, okC := construction.PointPos(st, c.CenterID)
	r, okR := construction.Radius(st, c.ID)
	from, okF := construction.PointPos(st, s.FromID)
	to, okT := construction.PointPos(st, s.ToID)
	if !okC || !okR || !okF || !okT {
		return nil
	}

	dv := to.Sub(from)
	if dv.Len() < geom.Eps {
		return nil // degenerate segment has no carrier line
	}

	// |from + t*dv - center|^2 = r^2
	fc := from.Sub(center)
	qa := dv.Dot(dv)
	qb := 2 * dv.Dot(fc)
	qc := fc.Dot(fc) - r*r

	disc := qb*qb - 4*qa*qc
	// Scale the tangency tolerance by the quadratic's magnitude so world
	// units and the 1e-9 epsilon stay in proportion.
	tol := geom.Eps * (qa + math.Abs(qb) + math.Abs(qc))
	if disc < -tol {
		return nil
	}
	if disc < 0 {
		disc = 0
	}

	sq := math.Sqrt(disc)
	roots := []float64{(-qb - sq) / (2 * qa), (-qb + sq) / (2 * qa)}
	if sq < geom.Eps {
		roots = roots[:1] // tangent
	}

	var out []geom.Vec
	for _, t := range roots {
		if !produce && (t < -geom.Eps || t > 1+geom.Eps) {
			continue
		}
		out = append(out, from.Add(dv.Scale(t)))
	}
	return out
}

// segmentSegment computes the intersection of two segments (or their carrier
// lines when produce is set). Parallel and degenerate pairs yield nothing.
func segmentSegment(st construction.State, a, b construction.Segment, produce bool) []geom.Vec {
	p1, ok1 := construction.PointPos(st, a.FromID)
	p2, ok2 := construction.PointPos(st, a.ToID)
	p3, ok3 := construction.PointPos(st, b.FromID)
	p4, ok4 := construction.PointPos(st, b.ToID)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return nil
	}

	r := p2.Sub(p1)
	s := p4.Sub(p3)
	denom := r.Cross(s)
	if math.Abs(denom) < geom.Eps {
		return nil
	}

	qp := p3.Sub(p1)
	t := qp.Cross(s) / denom
	u := qp.Cross(r) / denom
	if !produce {
		if t < -geom.Eps || t > 1+geom.Eps || u < -geom.Eps || u > 1+geom.Eps {
			return nil
		}
	}
	return []geom.Vec{p1.Add(r.Scale(t))}
}
