package intersect

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/euclid/internal/construction"
	"github.com/roach88/euclid/internal/geom"
)

// twoCircleState builds the Prop I.1 configuration: circles centered at
// A=(-2,0) and B=(2,0), each through the other center.
func twoCircleState(t *testing.T) (construction.State, string, string) {
	t.Helper()
	st := construction.State{}
	st, a := construction.AddPoint(st, -2, 0, construction.PointOpts{Label: "A"})
	st, b := construction.AddPoint(st, 2, 0, construction.PointOpts{Label: "B"})
	st, c1 := construction.AddCircle(st, a.ID, b.ID, construction.CircleOpts{})
	st, c2 := construction.AddCircle(st, b.ID, a.ID, construction.CircleOpts{})
	return st, c1.ID, c2.ID
}

func TestCircleCircleTwoSolutions(t *testing.T) {
	st, c1, c2 := twoCircleState(t)

	cands := Candidates(st, c1, c2, Options{})
	require.Len(t, cands, 2)

	// Radius 4 circles with centers 4 apart meet at (0, ±2*sqrt(3)).
	h := 2 * math.Sqrt(3)
	assert.InDelta(t, 0, cands[0].X, geom.Eps)
	assert.InDelta(t, h, cands[0].Y, 1e-9)
	assert.InDelta(t, 0, cands[1].X, geom.Eps)
	assert.InDelta(t, -h, cands[1].Y, 1e-9)

	// Canonical order: higher Y first, Which follows the order.
	assert.Equal(t, 0, cands[0].Which)
	assert.Equal(t, 1, cands[1].Which)
}

func TestCircleCircleSymmetry(t *testing.T) {
	st, c1, c2 := twoCircleState(t)

	ab := Candidates(st, c1, c2, Options{})
	ba := Candidates(st, c2, c1, Options{})
	require.Len(t, ba, len(ab))
	for i := range ab {
		assert.InDelta(t, ab[i].X, ba[i].X, geom.Eps)
		assert.InDelta(t, ab[i].Y, ba[i].Y, geom.Eps)
		assert.Equal(t, ab[i].Which, ba[i].Which)
		assert.Equal(t, ab[i].OfA, ba[i].OfB)
		assert.Equal(t, ab[i].OfB, ba[i].OfA)
	}
}

func TestCircleCircleTangent(t *testing.T) {
	st := construction.State{}
	st, a := construction.AddPoint(st, 0, 0, construction.PointOpts{Label: "A"})
	st, b := construction.AddPoint(st, 2, 0, construction.PointOpts{Label: "B"})
	st, m := construction.AddPoint(st, 1, 0, construction.PointOpts{Label: "M"})
	st, c1 := construction.AddCircle(st, a.ID, m.ID, construction.CircleOpts{})
	st, c2 := construction.AddCircle(st, b.ID, m.ID, construction.CircleOpts{})

	cands := Candidates(st, c1.ID, c2.ID, Options{})
	require.Len(t, cands, 1, "externally tangent circles meet once")
	assert.InDelta(t, 1.0, cands[0].X, geom.Eps)
	assert.InDelta(t, 0.0, cands[0].Y, geom.Eps)
}

func TestCircleCircleDisjointAndConcentric(t *testing.T) {
	st := construction.State{}
	st, a := construction.AddPoint(st, 0, 0, construction.PointOpts{Label: "A"})
	st, b := construction.AddPoint(st, 10, 0, construction.PointOpts{Label: "B"})
	st, r1 := construction.AddPoint(st, 1, 0, construction.PointOpts{Label: "R"})
	st, r2 := construction.AddPoint(st, 11, 0, construction.PointOpts{Label: "S"})
	st, c1 := construction.AddCircle(st, a.ID, r1.ID, construction.CircleOpts{})
	st, c2 := construction.AddCircle(st, b.ID, r2.ID, construction.CircleOpts{})

	assert.Empty(t, Candidates(st, c1.ID, c2.ID, Options{}), "too far apart")

	// One circle strictly inside the other.
	st, c3 := construction.AddCircle(st, a.ID, r2.ID, construction.CircleOpts{}) // radius 11
	assert.Empty(t, Candidates(st, c1.ID, c3.ID, Options{}), "contained circle")
}

func TestCircleSegmentInsideSpan(t *testing.T) {
	st := construction.State{}
	st, a := construction.AddPoint(st, 0, 0, construction.PointOpts{Label: "A"})
	st, b := construction.AddPoint(st, 10, 0, construction.PointOpts{Label: "B"})
	st, r := construction.AddPoint(st, 3, 0, construction.PointOpts{Label: "R"})
	st, seg := construction.AddSegment(st, a.ID, b.ID, construction.SegmentOpts{})
	st, cir := construction.AddCircle(st, a.ID, r.ID, construction.CircleOpts{})

	cands := Candidates(st, cir.ID, seg.ID, Options{})
	require.Len(t, cands, 1, "only the +x root lies on the segment")
	assert.InDelta(t, 3.0, cands[0].X, geom.Eps)
	assert.InDelta(t, 0.0, cands[0].Y, geom.Eps)
}

func TestCircleSegmentProduced(t *testing.T) {
	st := construction.State{}
	st, a := construction.AddPoint(st, 0, 0, construction.PointOpts{Label: "A"})
	st, b := construction.AddPoint(st, 1, 0, construction.PointOpts{Label: "B"})
	st, r := construction.AddPoint(st, 5, 0, construction.PointOpts{Label: "R"})
	st, seg := construction.AddSegment(st, a.ID, b.ID, construction.SegmentOpts{})
	st, cir := construction.AddCircle(st, a.ID, r.ID, construction.CircleOpts{})

	assert.Empty(t, Candidates(st, cir.ID, seg.ID, Options{}),
		"radius 5 circle misses the unit segment")

	cands := Candidates(st, cir.ID, seg.ID, Options{Produce: true})
	require.Len(t, cands, 2, "production extends the segment to its carrier line")
	xs := []float64{cands[0].X, cands[1].X}
	assert.InDelta(t, -5.0, min(xs[0], xs[1]), geom.Eps)
	assert.InDelta(t, 5.0, max(xs[0], xs[1]), geom.Eps)
}

func TestBeyondFilter(t *testing.T) {
	st := construction.State{}
	st, a := construction.AddPoint(st, 0, 0, construction.PointOpts{Label: "A"})
	st, b := construction.AddPoint(st, 1, 0, construction.PointOpts{Label: "B"})
	st, r := construction.AddPoint(st, 5, 0, construction.PointOpts{Label: "R"})
	st, seg := construction.AddSegment(st, a.ID, b.ID, construction.SegmentOpts{})
	st, cir := construction.AddCircle(st, a.ID, r.ID, construction.CircleOpts{})

	cands := Candidates(st, cir.ID, seg.ID, Options{Produce: true})
	require.Len(t, cands, 2)

	beyondB := Beyond(st, cands, seg.ID, b.ID)
	require.Len(t, beyondB, 1, "only the root past B survives")
	assert.InDelta(t, 5.0, beyondB[0].X, geom.Eps)

	beyondA := Beyond(st, cands, seg.ID, a.ID)
	require.Len(t, beyondA, 1, "only the root behind A survives")
	assert.InDelta(t, -5.0, beyondA[0].X, geom.Eps)

	assert.Empty(t, Beyond(st, cands, seg.ID, "Z"), "unknown endpoint admits nothing")
}

func TestBeyondExcludesInteriorCandidates(t *testing.T) {
	st := construction.State{}
	st, a := construction.AddPoint(st, 0, 0, construction.PointOpts{Label: "A"})
	st, b := construction.AddPoint(st, 10, 0, construction.PointOpts{Label: "B"})
	st, r := construction.AddPoint(st, 3, 0, construction.PointOpts{Label: "R"})
	st, seg := construction.AddSegment(st, a.ID, b.ID, construction.SegmentOpts{})
	st, cir := construction.AddCircle(st, a.ID, r.ID, construction.CircleOpts{})

	// Both roots (x=±3) are interior or behind A; nothing is beyond B.
	cands := Candidates(st, cir.ID, seg.ID, Options{Produce: true})
	require.Len(t, cands, 2)
	assert.Empty(t, Beyond(st, cands, seg.ID, b.ID))
}

func TestSegmentSegment(t *testing.T) {
	st := construction.State{}
	st, a := construction.AddPoint(st, -1, -1, construction.PointOpts{Label: "A"})
	st, b := construction.AddPoint(st, 1, 1, construction.PointOpts{Label: "B"})
	st, c := construction.AddPoint(st, -1, 1, construction.PointOpts{Label: "C"})
	st, d := construction.AddPoint(st, 1, -1, construction.PointOpts{Label: "D"})
	st, s1 := construction.AddSegment(st, a.ID, b.ID, construction.SegmentOpts{})
	st, s2 := construction.AddSegment(st, c.ID, d.ID, construction.SegmentOpts{})

	cands := Candidates(st, s1.ID, s2.ID, Options{})
	require.Len(t, cands, 1)
	assert.InDelta(t, 0.0, cands[0].X, geom.Eps)
	assert.InDelta(t, 0.0, cands[0].Y, geom.Eps)
}

func TestSegmentSegmentDisjointUnlessProduced(t *testing.T) {
	st := construction.State{}
	st, a := construction.AddPoint(st, 0, 0, construction.PointOpts{Label: "A"})
	st, b := construction.AddPoint(st, 1, 0, construction.PointOpts{Label: "B"})
	st, c := construction.AddPoint(st, 3, -1, construction.PointOpts{Label: "C"})
	st, d := construction.AddPoint(st, 3, 1, construction.PointOpts{Label: "D"})
	st, s1 := construction.AddSegment(st, a.ID, b.ID, construction.SegmentOpts{})
	st, s2 := construction.AddSegment(st, c.ID, d.ID, construction.SegmentOpts{})

	assert.Empty(t, Candidates(st, s1.ID, s2.ID, Options{}))

	cands := Candidates(st, s1.ID, s2.ID, Options{Produce: true})
	require.Len(t, cands, 1)
	assert.InDelta(t, 3.0, cands[0].X, geom.Eps)
}

func TestSegmentSegmentParallel(t *testing.T) {
	st := construction.State{}
	st, a := construction.AddPoint(st, 0, 0, construction.PointOpts{Label: "A"})
	st, b := construction.AddPoint(st, 1, 0, construction.PointOpts{Label: "B"})
	st, c := construction.AddPoint(st, 0, 1, construction.PointOpts{Label: "C"})
	st, d := construction.AddPoint(st, 1, 1, construction.PointOpts{Label: "D"})
	st, s1 := construction.AddSegment(st, a.ID, b.ID, construction.SegmentOpts{})
	st, s2 := construction.AddSegment(st, c.ID, d.ID, construction.SegmentOpts{})

	assert.Empty(t, Candidates(st, s1.ID, s2.ID, Options{Produce: true}))
}

func TestPointPairsYieldNothing(t *testing.T) {
	st := construction.State{}
	st, a := construction.AddPoint(st, 0, 0, construction.PointOpts{Label: "A"})
	st, b := construction.AddPoint(st, 1, 0, construction.PointOpts{Label: "B"})
	st, seg := construction.AddSegment(st, a.ID, b.ID, construction.SegmentOpts{})

	assert.Empty(t, Candidates(st, a.ID, b.ID, Options{}))
	assert.Empty(t, Candidates(st, a.ID, seg.ID, Options{}))
	assert.Empty(t, Candidates(st, "missing", seg.ID, Options{}))
}

func TestPickPrefersHigherY(t *testing.T) {
	cands := []Candidate{
		{X: 0, Y: -2, Which: 1},
		{X: 0, Y: 2, Which: 0},
	}
	got, ok := Pick(cands)
	require.True(t, ok)
	assert.Equal(t, 0, got.Which)
	assert.InDelta(t, 2.0, got.Y, geom.Eps)

	_, ok = Pick(nil)
	assert.False(t, ok)
}

func TestPickBreaksExactYTiesOnX(t *testing.T) {
	cands := []Candidate{
		{X: 3, Y: 1, Which: 1},
		{X: -3, Y: 1, Which: 0},
	}
	got, ok := Pick(cands)
	require.True(t, ok)
	assert.InDelta(t, -3.0, got.X, geom.Eps)
}
