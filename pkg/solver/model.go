// Package solver provides finite-domain constraint solving.
// This file defines the Model abstraction for declaratively building
// constraint satisfaction problems.
package solver

// Model holds the declarative statement of a problem: variables, the
// propagators posted over them, and the trail they share. A model is built
// incrementally and must not change once a search has been launched on it.
//
// Thread safety: construction is sequential; during solving the model is
// mutated only through the trail-aware variable operations.
type Model struct {
	variables   []*IntVar
	propagators []Propagator
	trail       *WorldTrail
	engine      PropagationEngine
}

// NewModel creates an empty model with a fresh trail and a fixpoint
// propagation engine.
func NewModel() *Model {
	m := &Model{
		variables: make([]*IntVar, 0, 16),
		trail:     NewWorldTrail(),
	}
	m.engine = NewFixpointEngine(m)
	return m
}

// NewIntVar creates a variable with domain [lb, ub] and adds it to the model.
func (m *Model) NewIntVar(name string, lb, ub int) *IntVar {
	v := &IntVar{
		id:     len(m.variables),
		name:   name,
		lb:     lb,
		ub:     ub,
		domain: NewBitSetDomain(lb, ub),
		model:  m,
	}
	m.variables = append(m.variables, v)
	return v
}

// NewIntVarFromValues creates a variable whose initial domain holds only the
// given values, within the range [lb, ub].
func (m *Model) NewIntVarFromValues(name string, lb, ub int, values []int) *IntVar {
	v := m.NewIntVar(name, lb, ub)
	v.domain = NewBitSetDomainFromValues(lb, ub, values)
	return v
}

// Post adds propagators to the model and attaches them to their variables.
// Posting is a construction-time operation; adding constraints during search
// is not supported.
func (m *Model) Post(ps ...Propagator) {
	for _, p := range ps {
		m.propagators = append(m.propagators, p)
		for _, v := range p.Variables() {
			v.propagators = append(v.propagators, p)
		}
	}
}

// Variables returns the model's variables in creation order. The returned
// slice is the model's own; callers must not modify it.
func (m *Model) Variables() []*IntVar { return m.variables }

// Propagators returns the posted propagators in posting order.
func (m *Model) Propagators() []Propagator { return m.propagators }

// Trail returns the trail shared by the model's variables and the driver.
func (m *Model) Trail() Trail { return m.trail }

// Engine returns the currently installed propagation engine.
func (m *Model) Engine() PropagationEngine { return m.engine }

// SetEngine installs a propagation engine. Reset uses this to park the model
// on a no-op engine between resolutions.
func (m *Model) SetEngine(e PropagationEngine) { m.engine = e }
