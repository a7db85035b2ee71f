package intersect

import (
	"github.com/roach88/euclid/internal/construction"
	"github.com/roach88/euclid/internal/geom"
)

// Beyond keeps only the candidates strictly past the named endpoint of the
// segment, measured along the segment's own direction. Candidates between the
// two defining points are never admissible: this is how "produce the line"
// steps reject the inner root of the line-circle quadratic.
//
// beyondID must be one of the segment's endpoints; anything else filters out
// every candidate.
func Beyond(st construction.State, cands []Candidate, segmentID, beyondID string) []Candidate {
	seg, ok := construction.GetSegment(st, segmentID)
	if !ok {
		return nil
	}
	from, okF := construction.PointPos(st, seg.FromID)
	to, okT := construction.PointPos(st, seg.ToID)
	if !okF || !okT {
		return nil
	}

	dv := to.Sub(from)
	length2 := dv.Dot(dv)
	if length2 < geom.Eps*geom.Eps {
		return nil
	}

	var out []Candidate
	for _, c := range cands {
		// Parameter along from->to; 0 is from, 1 is to.
		t := c.Pos().Sub(from).Dot(dv) / length2
		switch beyondID {
		case seg.ToID:
			if t > 1+geom.Eps {
				out = append(out, c)
			}
		case seg.FromID:
			if t < -geom.Eps {
				out = append(out, c)
			}
		}
	}
	return out
}

// Pick resolves an ambiguous candidate list to a single point.
//
// The canonical tie-break is the candidate with the larger world-Y
// coordinate (visually "upper"), with smaller X breaking exact Y ties. This
// is a convention, not geometry: tutorials and golden traces depend on it, so
// it must not change.
func Pick(cands []Candidate) (Candidate, bool) {
	if len(cands) == 0 {
		return Candidate{}, false
	}
	best := cands[0]
	for _, c := range cands[1:] {
		if c.Y > best.Y+geom.Eps {
			best = c
			continue
		}
		if geom.Near(c.Y, best.Y) && c.X < best.X-geom.Eps {
			best = c
		}
	}
	return best, true
}
