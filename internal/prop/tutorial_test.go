package prop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTutorialCompassExpansion(t *testing.T) {
	def := PropI1()
	subs := Tutorial(def, false)
	require.Len(t, subs, len(def.Steps))

	first := subs[0]
	require.Len(t, first, 3)
	assert.Equal(t, "Click point A to place the compass center.", first[0].Text)
	assert.Equal(t, PhaseCenterSet, first[0].Trigger.Phase)
	assert.Equal(t, PhaseRadiusSet, first[1].Trigger.Phase)
	assert.Equal(t, PhaseSweepComplete, first[2].Trigger.Phase)
}

func TestTutorialTouchWording(t *testing.T) {
	subs := Tutorial(PropI1(), true)
	assert.Equal(t, "Tap point A to place the compass center.", subs[0][0].Text)
}

func TestTutorialMacroExpansion(t *testing.T) {
	subs := Tutorial(PropI2(), false)
	// Step 1 of I.2 invokes I.1 on A and B.
	macro := subs[1]
	require.Len(t, macro, 3)
	assert.Equal(t, 0, macro[0].Trigger.PointIndex)
	assert.Equal(t, 1, macro[1].Trigger.PointIndex)
	assert.Equal(t, PhaseInputPicked, macro[0].Trigger.Phase)
	assert.Equal(t, PhaseInvoked, macro[2].Trigger.Phase)
	assert.Equal(t, "Apply I.1.", macro[2].Text)
}

func TestTutorialIntersectionExpansion(t *testing.T) {
	subs := Tutorial(PropI1(), false)
	mark := subs[2]
	require.Len(t, mark, 1)
	assert.Equal(t, PhaseMarked, mark[0].Trigger.Phase)
	assert.Contains(t, mark[0].Text, "C")
}

func TestRegistryOrderAndLookup(t *testing.T) {
	r := Builtin()
	assert.Equal(t, []string{"I.1", "I.2", "I.3"}, r.IDs())

	d, ok := r.Get("I.2")
	require.True(t, ok)
	assert.Equal(t, "I.2", d.ID)

	_, ok = r.Get("I.47")
	assert.False(t, ok)
}

func TestRegistryDuplicateKeepsFirst(t *testing.T) {
	a := &Definition{ID: "X", Title: "first"}
	b := &Definition{ID: "X", Title: "second"}
	r := NewRegistry(a, b)
	d, ok := r.Get("X")
	require.True(t, ok)
	assert.Equal(t, "first", d.Title)
	assert.Equal(t, []string{"X"}, r.IDs())
}
