// Package facts is the equality-reasoning engine behind proofs.
//
// A fact asserts that two distances (unordered point pairs) or two angle
// measures are equal, and carries the citation that justifies it. The store
// keeps an append-only fact log for proof display plus union-find equivalence
// classes for transitive queries, one universe for distances and one for
// angles.
//
// Store is a copy-on-write value type: Add operations return a new Store and
// leave the receiver's maps untouched, so earlier stores stay valid the same
// way earlier construction states do.
package facts

import (
	"fmt"
	"sort"
	"strings"
)

// DistancePair identifies the distance between two points. The pair is
// unordered; NewDistancePair canonicalizes by sorting the IDs.
type DistancePair struct {
	A string
	B string
}

// NewDistancePair returns the canonical (sorted) pair for two point IDs.
func NewDistancePair(a, b string) DistancePair {
	if b < a {
		a, b = b, a
	}
	return DistancePair{A: a, B: b}
}

// Key returns the canonical map key for the pair.
func (p DistancePair) Key() string {
	return "dist:" + p.A + "|" + p.B
}

// String renders the pair the way proof statements do.
func (p DistancePair) String() string {
	return p.A + p.B
}

// AngleMeasure identifies the angle at Vertex between the rays toward
// Ray1End and Ray2End. The two ray ends are unordered; NewAngleMeasure
// canonicalizes by sorting them.
type AngleMeasure struct {
	Vertex  string
	Ray1End string
	Ray2End string
}

// NewAngleMeasure returns the canonical measure for a vertex and two rays.
func NewAngleMeasure(vertex, ray1End, ray2End string) AngleMeasure {
	ends := []string{ray1End, ray2End}
	sort.Strings(ends)
	return AngleMeasure{Vertex: vertex, Ray1End: ends[0], Ray2End: ends[1]}
}

// Key returns the canonical map key for the measure.
func (m AngleMeasure) Key() string {
	return "angle:" + m.Ray1End + "|" + m.Vertex + "|" + m.Ray2End
}

// String renders the measure the way proof statements do (vertex in the
// middle).
func (m AngleMeasure) String() string {
	return "∠" + m.Ray1End + m.Vertex + m.Ray2End
}

// CitationKind tags why a fact holds.
type CitationKind string

const (
	// CiteGiven marks facts declared by the proposition's givens.
	CiteGiven CitationKind = "given"
	// CiteAxiom marks facts justified directly by a postulate, definition,
	// or common notion (the Key names which).
	CiteAxiom CitationKind = "axiom"
	// CiteProp marks facts derived by invoking another proposition's
	// theorem; PropID names it.
	CiteProp CitationKind = "prop"
	// CiteCN3 marks subtraction-of-equals derivations over distances;
	// Whole and Part reference the operands.
	CiteCN3 CitationKind = "cn3"
	// CiteCN3Angle is the angle form of CiteCN3, with WholeAngle/PartAngle.
	CiteCN3Angle CitationKind = "cn3-angle"
)

// Citation records the justification of a fact. Key is the opaque display
// key ("Post.3", "Def.15", "I.2", ...) resolved against an external citation
// table; the remaining fields carry the structured operands proof replay
// needs.
type Citation struct {
	Kind   CitationKind
	Key    string
	PropID string // Kind == CiteProp

	// CN-3 operands: the fact "whole - part" was derived from.
	Whole DistancePair // Kind == CiteCN3
	Part  DistancePair // Kind == CiteCN3

	WholeAngle AngleMeasure // Kind == CiteCN3Angle
	PartAngle  AngleMeasure // Kind == CiteCN3Angle
}

// FactKind distinguishes distance facts from angle facts.
type FactKind string

const (
	// FactDistance asserts equality of two distance pairs.
	FactDistance FactKind = "distance"
	// FactAngle asserts equality of two angle measures.
	FactAngle FactKind = "angle"
)

// Fact is one recorded equality with provenance. AtStep is the proposition
// step that produced it; every fact emitted by a single macro invocation or
// derivation shares one AtStep stamp.
type Fact struct {
	Kind      FactKind
	DistA     DistancePair
	DistB     DistancePair
	AngleA    AngleMeasure
	AngleB    AngleMeasure
	Citation  Citation
	Statement string
	AtStep    int
}

// Store holds the fact log and the equivalence structure. The zero value is
// an empty store.
type Store struct {
	Facts []Fact

	distParent  map[string]string
	angleParent map[string]string
}

// AddFact records that two distance pairs are equal. It returns the new
// store and the facts appended by this call (at most one).
//
// A trivial assertion (both pairs canonicalize identically) appends nothing.
// An assertion between pairs already in the same class is still recorded for
// proof-display completeness, but performs no structural merge.
func AddFact(st Store, a, b DistancePair, cit Citation, statement string, atStep int) (Store, []Fact) {
	if a.Key() == b.Key() {
		return st, nil
	}

	fact := Fact{
		Kind:      FactDistance,
		DistA:     a,
		DistB:     b,
		Citation:  cit,
		Statement: statement,
		AtStep:    atStep,
	}
	st.Facts = appendedFacts(st.Facts, fact)

	rootA := findRoot(st.distParent, a.Key())
	rootB := findRoot(st.distParent, b.Key())
	if rootA != rootB {
		st.distParent = cloneWith(st.distParent, rootB, rootA)
	}
	return st, []Fact{fact}
}

// AddAngleFact is the angle-measure analog of AddFact.
func AddAngleFact(st Store, a, b AngleMeasure, cit Citation, statement string, atStep int) (Store, []Fact) {
	if a.Key() == b.Key() {
		return st, nil
	}

	fact := Fact{
		Kind:      FactAngle,
		AngleA:    a,
		AngleB:    b,
		Citation:  cit,
		Statement: statement,
		AtStep:    atStep,
	}
	st.Facts = appendedFacts(st.Facts, fact)

	rootA := findRoot(st.angleParent, a.Key())
	rootB := findRoot(st.angleParent, b.Key())
	if rootA != rootB {
		st.angleParent = cloneWith(st.angleParent, rootB, rootA)
	}
	return st, []Fact{fact}
}

// QueryEquality reports whether the two distance pairs are known equal,
// directly or transitively, regardless of insertion order.
func QueryEquality(st Store, a, b DistancePair) bool {
	if a.Key() == b.Key() {
		return true
	}
	return findRoot(st.distParent, a.Key()) == findRoot(st.distParent, b.Key())
}

// QueryAngleEquality is the angle-measure analog of QueryEquality.
func QueryAngleEquality(st Store, a, b AngleMeasure) bool {
	if a.Key() == b.Key() {
		return true
	}
	return findRoot(st.angleParent, a.Key()) == findRoot(st.angleParent, b.Key())
}

// FactsAtStep returns the facts stamped with the given step, in insertion
// order. The UI keys its "hover a step" highlighting on this.
func FactsAtStep(st Store, step int) []Fact {
	var out []Fact
	for _, f := range st.Facts {
		if f.AtStep == step {
			out = append(out, f)
		}
	}
	return out
}

// EqualityStatement formats a distance equality the way fact statements are
// written ("AC = AB").
func EqualityStatement(a, b DistancePair) string {
	return fmt.Sprintf("%s = %s", a, b)
}

// AngleEqualityStatement formats an angle equality statement.
func AngleEqualityStatement(a, b AngleMeasure) string {
	return fmt.Sprintf("%s = %s", a, b)
}

// findRoot walks parent links without mutating the map. Class sizes are tiny
// (a handful of pairs per proposition), so there is no path compression.
func findRoot(parent map[string]string, key string) string {
	for {
		next, ok := parent[key]
		if !ok || next == key {
			return key
		}
		key = next
	}
}

// cloneWith returns a copy of parent with one extra link. Copying keeps
// earlier Store values valid after later merges.
func cloneWith(parent map[string]string, from, to string) map[string]string {
	out := make(map[string]string, len(parent)+1)
	for k, v := range parent {
		out[k] = v
	}
	out[from] = to
	return out
}

func appendedFacts(facts []Fact, f Fact) []Fact {
	out := make([]Fact, len(facts)+1)
	copy(out, facts)
	out[len(facts)] = f
	return out
}

// Describe renders a short one-line summary of a fact for traces and logs.
func Describe(f Fact) string {
	var b strings.Builder
	b.WriteString(f.Statement)
	b.WriteString(" [")
	b.WriteString(f.Citation.Key)
	b.WriteString("]")
	return b.String()
}
