package facts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func axiom(key string) Citation {
	return Citation{Kind: CiteAxiom, Key: key}
}

func TestDistancePairCanonicalization(t *testing.T) {
	ab := NewDistancePair("B", "A")
	ba := NewDistancePair("A", "B")
	assert.Equal(t, ab, ba)
	assert.Equal(t, "dist:A|B", ab.Key())
	assert.Equal(t, "AB", ab.String())
}

func TestAngleMeasureCanonicalization(t *testing.T) {
	m1 := NewAngleMeasure("B", "A", "C")
	m2 := NewAngleMeasure("B", "C", "A")
	assert.Equal(t, m1, m2)
	assert.Equal(t, "angle:A|B|C", m1.Key())
	assert.Equal(t, "∠ABC", m1.String())
}

func TestAddFactAndDirectQuery(t *testing.T) {
	st := Store{}
	ab := NewDistancePair("A", "B")
	ac := NewDistancePair("A", "C")

	st, added := AddFact(st, ac, ab, axiom("Def.15"), "AC = AB", 2)
	require.Len(t, added, 1)
	assert.Len(t, st.Facts, 1)
	assert.Equal(t, "AC = AB", st.Facts[0].Statement)
	assert.Equal(t, 2, st.Facts[0].AtStep)

	assert.True(t, QueryEquality(st, ab, ac))
	assert.True(t, QueryEquality(st, ac, ab), "query is symmetric")
	assert.False(t, QueryEquality(st, ab, NewDistancePair("B", "C")))
}

func TestTransitivity(t *testing.T) {
	st := Store{}
	p := NewDistancePair("A", "B")
	q := NewDistancePair("A", "C")
	r := NewDistancePair("B", "C")

	st, _ = AddFact(st, p, q, axiom("Def.15"), "AB = AC", 0)
	st, _ = AddFact(st, q, r, axiom("Def.15"), "AC = BC", 1)

	assert.True(t, QueryEquality(st, p, r), "p=q and q=r imply p=r")
}

func TestTransitivityInsertionOrderIndependent(t *testing.T) {
	p := NewDistancePair("A", "B")
	q := NewDistancePair("C", "D")
	r := NewDistancePair("E", "F")

	// Merge two disjoint classes after the fact.
	st := Store{}
	st, _ = AddFact(st, p, q, axiom("C.N.1"), "AB = CD", 0)
	st, _ = AddFact(st, r, q, axiom("C.N.1"), "EF = CD", 1)
	assert.True(t, QueryEquality(st, p, r))

	st2 := Store{}
	st2, _ = AddFact(st2, r, q, axiom("C.N.1"), "EF = CD", 0)
	st2, _ = AddFact(st2, p, q, axiom("C.N.1"), "AB = CD", 1)
	assert.True(t, QueryEquality(st2, p, r))
}

func TestRedundantFactRecordedWithoutMerge(t *testing.T) {
	st := Store{}
	p := NewDistancePair("A", "B")
	q := NewDistancePair("A", "C")
	r := NewDistancePair("B", "C")

	st, _ = AddFact(st, p, q, axiom("Def.15"), "AB = AC", 0)
	st, _ = AddFact(st, q, r, axiom("Def.15"), "AC = BC", 1)

	// p and r are already equal; the fact is still recorded for display.
	st, added := AddFact(st, p, r, axiom("C.N.1"), "AB = BC", 2)
	require.Len(t, added, 1)
	assert.Len(t, st.Facts, 3)
	assert.True(t, QueryEquality(st, p, r))
}

func TestTrivialFactAppendsNothing(t *testing.T) {
	st := Store{}
	p := NewDistancePair("A", "B")
	st, added := AddFact(st, p, NewDistancePair("B", "A"), axiom("C.N.1"), "AB = AB", 0)
	assert.Empty(t, added)
	assert.Empty(t, st.Facts)
}

func TestAngleFacts(t *testing.T) {
	st := Store{}
	abc := NewAngleMeasure("B", "A", "C")
	dbf := NewAngleMeasure("B", "D", "F")
	xyz := NewAngleMeasure("Y", "X", "Z")

	st, added := AddAngleFact(st, abc, dbf, axiom("I.5"), "∠ABC = ∠DBF", 3)
	require.Len(t, added, 1)
	assert.Equal(t, FactAngle, added[0].Kind)

	st, _ = AddAngleFact(st, dbf, xyz, axiom("C.N.1"), "∠DBF = ∠XYZ", 4)
	assert.True(t, QueryAngleEquality(st, abc, xyz))

	// Angle and distance universes are disjoint.
	assert.False(t, QueryEquality(st, NewDistancePair("A", "B"), NewDistancePair("D", "F")))
}

func TestCopyOnWrite(t *testing.T) {
	st0 := Store{}
	p := NewDistancePair("A", "B")
	q := NewDistancePair("C", "D")
	r := NewDistancePair("E", "F")

	st1, _ := AddFact(st0, p, q, axiom("C.N.1"), "AB = CD", 0)
	st2, _ := AddFact(st1, q, r, axiom("C.N.1"), "CD = EF", 1)

	assert.Empty(t, st0.Facts)
	assert.Len(t, st1.Facts, 1)
	assert.Len(t, st2.Facts, 2)

	assert.False(t, QueryEquality(st1, p, r), "older store unaffected by later merge")
	assert.True(t, QueryEquality(st2, p, r))
}

func TestFactsAtStep(t *testing.T) {
	st := Store{}
	st, _ = AddFact(st, NewDistancePair("A", "B"), NewDistancePair("C", "D"), axiom("I.2"), "AB = CD", 1)
	st, _ = AddFact(st, NewDistancePair("A", "B"), NewDistancePair("E", "F"), axiom("I.2"), "AB = EF", 1)
	st, _ = AddFact(st, NewDistancePair("G", "H"), NewDistancePair("A", "B"), axiom("C.N.1"), "GH = AB", 2)

	assert.Len(t, FactsAtStep(st, 1), 2)
	assert.Len(t, FactsAtStep(st, 2), 1)
	assert.Empty(t, FactsAtStep(st, 3))
}

func TestCN3Citation(t *testing.T) {
	whole := NewDistancePair("D", "L")
	part := NewDistancePair("D", "A")
	cit := Citation{Kind: CiteCN3, Key: "C.N.3", Whole: whole, Part: part}

	st := Store{}
	st, added := AddFact(st, NewDistancePair("A", "L"), NewDistancePair("B", "G"), cit, "AL = BG", 5)
	require.Len(t, added, 1)
	assert.Equal(t, CiteCN3, added[0].Citation.Kind)
	assert.Equal(t, whole, added[0].Citation.Whole)
	assert.Equal(t, part, added[0].Citation.Part)
}

func TestDescribe(t *testing.T) {
	f := Fact{Statement: "AC = AB", Citation: axiom("Def.15")}
	assert.Equal(t, "AC = AB [Def.15]", Describe(f))
}
