package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariableAssignAndRemove(t *testing.T) {
	m := NewModel()
	x := m.NewIntVar("x", 0, 3)

	require.NoError(t, x.Assign(2))
	assert.True(t, x.IsInstantiated())
	assert.Equal(t, 2, x.Value())

	assert.ErrorIs(t, x.Assign(3), ErrContradiction, "assigning a removed value fails")
	assert.NoError(t, x.Assign(2), "re-assigning the current value is a no-op")
	assert.ErrorIs(t, x.Remove(2), ErrContradiction, "emptying a domain fails")
}

func TestVariableBounds(t *testing.T) {
	m := NewModel()
	x := m.NewIntVar("x", 0, 9)

	require.NoError(t, x.UpdateLowerBound(3))
	require.NoError(t, x.UpdateUpperBound(6))
	assert.Equal(t, 3, x.Min())
	assert.Equal(t, 6, x.Max())
	assert.ErrorIs(t, x.UpdateLowerBound(7), ErrContradiction)
	assert.Equal(t, 3, x.Min(), "failed tightening leaves the domain untouched")
}

func TestNotEqualFiltersOnInstantiation(t *testing.T) {
	m := NewModel()
	x := m.NewIntVar("x", 0, 1)
	y := m.NewIntVar("y", 0, 1)
	m.Post(NotEqual(x, y))

	require.NoError(t, x.Assign(0))
	require.NoError(t, m.Engine().Propagate())
	assert.True(t, y.IsInstantiated())
	assert.Equal(t, 1, y.Value())
}

func TestNotEqualOffset(t *testing.T) {
	m := NewModel()
	x := m.NewIntVar("x", 1, 4)
	y := m.NewIntVar("y", 1, 4)
	m.Post(NotEqualOffset(x, y, 1)) // x != y + 1

	require.NoError(t, y.Assign(2))
	require.NoError(t, m.Engine().Propagate())
	assert.False(t, x.Contains(3))
	assert.Equal(t, 3, x.Domain().Count())
}

func TestLessOrEqualBounds(t *testing.T) {
	m := NewModel()
	x := m.NewIntVar("x", 0, 9)
	y := m.NewIntVar("y", 0, 5)
	m.Post(LessOrEqual(x, y))

	require.NoError(t, m.Engine().Propagate())
	assert.Equal(t, 5, x.Max())

	require.NoError(t, x.UpdateLowerBound(3))
	require.NoError(t, m.Engine().Propagate())
	assert.Equal(t, 3, y.Min())
}

func TestSumBounds(t *testing.T) {
	m := NewModel()
	x := m.NewIntVar("x", 1, 3)
	y := m.NewIntVar("y", 1, 3)
	s := m.NewIntVar("s", 0, 10)
	m.Post(Sum([]*IntVar{x, y}, s))

	require.NoError(t, m.Engine().Propagate())
	assert.Equal(t, 2, s.Min())
	assert.Equal(t, 6, s.Max())

	require.NoError(t, s.UpdateUpperBound(3))
	require.NoError(t, m.Engine().Propagate())
	assert.Equal(t, 2, x.Max(), "terms tighten against the total")
	assert.Equal(t, 2, y.Max())
}

func TestEqualsContradiction(t *testing.T) {
	m := NewModel()
	x := m.NewIntVar("x", 0, 1)
	m.Post(Equals(x, 0), Equals(x, 1))

	assert.ErrorIs(t, m.Engine().Propagate(), ErrContradiction)
}

func TestFixpointReachesTransitiveConsequences(t *testing.T) {
	m := NewModel()
	x := m.NewIntVar("x", 0, 1)
	y := m.NewIntVar("y", 0, 1)
	z := m.NewIntVar("z", 0, 1)
	m.Post(NotEqual(x, y), NotEqual(y, z))

	require.NoError(t, x.Assign(0))
	require.NoError(t, m.Engine().Propagate())
	assert.Equal(t, 1, y.Value())
	assert.Equal(t, 0, z.Value(), "fixpoint must chain through y")
}

func TestNoPropagationEngine(t *testing.T) {
	m := NewModel()
	x := m.NewIntVar("x", 0, 1)
	m.Post(Equals(x, 0), Equals(x, 1))
	m.SetEngine(NoPropagationEngine{})

	assert.NoError(t, m.Engine().Propagate(), "the no-op engine never filters")
	assert.Equal(t, 2, x.Domain().Count())
}
