package prop

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/euclid/internal/construction"
)

func selectorFixture(t *testing.T) construction.State {
	t.Helper()
	st := construction.State{}
	st, _ = construction.AddPoint(st, -1, 0, construction.PointOpts{Label: "A", Origin: construction.OriginGiven})
	st, _ = construction.AddPoint(st, 1, 0, construction.PointOpts{Label: "B", Origin: construction.OriginGiven})
	st, _ = construction.AddCircle(st, "A", "B", construction.CircleOpts{})
	st, _ = construction.AddSegment(st, "A", "B", construction.SegmentOpts{})
	return st
}

func TestResolvePointRef(t *testing.T) {
	st := selectorFixture(t)
	assert.Equal(t, "A", Resolve(PointRef{ID: "A"}, st))
	assert.Equal(t, "", Resolve(PointRef{ID: "Z"}, st))
}

func TestResolveCircleRefIsOrderSensitive(t *testing.T) {
	st := selectorFixture(t)
	assert.Equal(t, "c1", Resolve(CircleRef{CenterID: "A", RadiusPointID: "B"}, st))
	// Swapped roles name a different circle, which does not exist.
	assert.Equal(t, "", Resolve(CircleRef{CenterID: "B", RadiusPointID: "A"}, st))
}

func TestResolveSegmentRefIsDirectional(t *testing.T) {
	st := selectorFixture(t)
	// Element IDs share one counter: the circle took c1, so the segment
	// is s2.
	assert.Equal(t, "s2", Resolve(SegmentRef{FromID: "A", ToID: "B"}, st))
	assert.Equal(t, "", Resolve(SegmentRef{FromID: "B", ToID: "A"}, st))
}

func TestResolveAgainstLaterState(t *testing.T) {
	// A selector for geometry not yet constructed resolves to "" and
	// starts resolving once the element appears.
	st := construction.State{}
	st, _ = construction.AddPoint(st, 0, 0, construction.PointOpts{Label: "A", Origin: construction.OriginGiven})
	st, _ = construction.AddPoint(st, 2, 0, construction.PointOpts{Label: "B", Origin: construction.OriginGiven})

	sel := CircleRef{CenterID: "A", RadiusPointID: "B"}
	assert.Equal(t, "", Resolve(sel, st))

	st, _ = construction.AddCircle(st, "A", "B", construction.CircleOpts{})
	assert.Equal(t, "c1", Resolve(sel, st))
}
