package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSatisfactionManagerIsInert(t *testing.T) {
	om := NewSatisfactionManager()
	assert.False(t, om.IsOptimization())
	assert.NoError(t, om.PostCut())
	om.UpdateBest()
	_, ok := om.BestValue()
	assert.False(t, ok)
	assert.Equal(t, "satisfaction", om.String())
}

func TestMinimizeManagerCut(t *testing.T) {
	m := NewModel()
	obj := m.NewIntVar("obj", 1, 5)
	om := NewMinimizeManager(obj)
	require.True(t, om.IsOptimization())

	om.UpdateBest()
	_, ok := om.BestValue()
	assert.False(t, ok, "no incumbent while the objective is open")

	require.NoError(t, obj.Assign(3))
	om.UpdateBest()
	best, ok := om.BestValue()
	require.True(t, ok)
	assert.Equal(t, 3, best)

	// Back at a fresh domain, the cut keeps only improving values.
	obj.domain = NewBitSetDomain(1, 5)
	require.NoError(t, om.PostCut())
	assert.Equal(t, 2, obj.Max())

	// At the incumbent itself the cut contradicts.
	obj.domain = NewBitSetDomainFromValues(1, 5, []int{3})
	assert.ErrorIs(t, om.PostCut(), ErrContradiction)
}

func TestMinimizeManagerKeepsBestIncumbent(t *testing.T) {
	m := NewModel()
	obj := m.NewIntVar("obj", 1, 9)
	om := NewMinimizeManager(obj)

	obj.domain = NewBitSetDomainFromValues(1, 9, []int{4})
	om.UpdateBest()
	obj.domain = NewBitSetDomainFromValues(1, 9, []int{7})
	om.UpdateBest()

	best, _ := om.BestValue()
	assert.Equal(t, 4, best, "a worse value must not replace the incumbent")
}

func TestMaximizeManagerCut(t *testing.T) {
	m := NewModel()
	obj := m.NewIntVar("obj", 1, 5)
	om := NewMaximizeManager(obj)

	require.NoError(t, obj.Assign(3))
	om.UpdateBest()

	obj.domain = NewBitSetDomain(1, 5)
	require.NoError(t, om.PostCut())
	assert.Equal(t, 4, obj.Min())
}

func TestObjectiveManagerReset(t *testing.T) {
	m := NewModel()
	obj := m.NewIntVar("obj", 1, 5)
	om := NewMinimizeManager(obj)
	require.NoError(t, obj.Assign(2))
	om.UpdateBest()

	om.Reset()
	_, ok := om.BestValue()
	assert.False(t, ok)
	obj.domain = NewBitSetDomain(1, 5)
	require.NoError(t, om.PostCut())
	assert.Equal(t, 5, obj.Domain().Count(), "a reset manager no longer cuts")
}

func TestObjectiveCutPropagator(t *testing.T) {
	m := NewModel()
	obj := m.NewIntVar("obj", 1, 5)
	om := NewMinimizeManager(obj)
	m.Post(ObjectiveCut(om))

	require.NoError(t, m.Engine().Propagate(), "no incumbent, no filtering")
	assert.Equal(t, 5, obj.Domain().Count())

	obj.domain = NewBitSetDomainFromValues(1, 5, []int{4})
	om.UpdateBest()
	obj.domain = NewBitSetDomain(1, 5)
	require.NoError(t, m.Engine().Propagate())
	assert.Equal(t, 3, obj.Max(), "the cut propagator enforces the incumbent")
}
