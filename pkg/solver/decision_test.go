package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntDecisionBranches(t *testing.T) {
	m := NewModel()
	x := m.NewIntVar("x", 0, 2)

	d := NewIntDecision(x, 1)
	assert.True(t, d.HasNextBranch())

	require.NoError(t, d.ApplyLeft())
	assert.Equal(t, 1, x.Value())
	assert.True(t, d.HasNextBranch(), "the refutation is still available")

	// Undo the assignment by hand, then refute.
	x.domain = NewBitSetDomain(0, 2)
	require.NoError(t, d.ApplyRight())
	assert.False(t, x.Contains(1))
	assert.False(t, d.HasNextBranch())
}

func TestIntDecisionChain(t *testing.T) {
	m := NewModel()
	x := m.NewIntVar("x", 0, 2)
	y := m.NewIntVar("y", 0, 2)

	root := &rootDecision{}
	d1 := NewIntDecision(x, 0)
	d1.setPrevious(root)
	d2 := NewIntDecision(y, 0)
	d2.setPrevious(d1)

	assert.Equal(t, d1, d2.Previous())
	assert.Equal(t, Decision(root), d1.Previous())
	assert.Equal(t, Decision(root), root.Previous(), "the root is its own predecessor")
}

func TestIntDecisionPoolReuse(t *testing.T) {
	m := NewModel()
	x := m.NewIntVar("x", 0, 2)

	d := NewIntDecision(x, 2)
	require.NoError(t, d.ApplyLeft())
	d.Free()

	d2 := NewIntDecision(x, 0)
	assert.True(t, d2.HasNextBranch(), "a pooled decision must come back fresh")
	assert.Nil(t, d2.Previous())
}

func TestRootDecisionIsInert(t *testing.T) {
	root := &rootDecision{}
	assert.NoError(t, root.ApplyLeft())
	assert.NoError(t, root.ApplyRight())
	assert.False(t, root.HasNextBranch())
	assert.Equal(t, "ROOT", root.String())
	root.Free() // must not panic
}
