// Package solver provides finite-domain constraint solving.
// This file implements the propagation engine: fixpoint computation over the
// propagators posted on a model.
package solver

import "errors"

// ErrContradiction is the control-flow signal raised when filtering empties
// a domain. It never surfaces to callers of the search driver; the driver
// recovers by backtracking or by proving exhaustion.
var ErrContradiction = errors.New("contradiction")

// Propagator filters variable domains. Implementations must be
// deterministic: the same trail state always produces the same filtering.
type Propagator interface {
	// Propagate applies the filtering algorithm, mutating variable domains
	// through their trail-aware operations. Returns ErrContradiction when
	// the constraint cannot be satisfied in the current state.
	Propagate() error

	// Variables returns the variables this propagator filters.
	Variables() []*IntVar
}

// PropagationEngine runs propagation to fixpoint over a model.
type PropagationEngine interface {
	// Propagate runs filtering until no domain changes, or returns
	// ErrContradiction.
	Propagate() error

	// Schedule notes that v's domain changed. Engines use this to requeue
	// the propagators watching v while a fixpoint is being computed.
	Schedule(v *IntVar)
}

// FixpointEngine is the default engine. Every Propagate call seeds the queue
// with all posted propagators and then drains it, re-enqueueing a propagator
// whenever one of its variables changes. Seeding everything keeps the engine
// correct for untrailed tightenings such as an objective cut that got
// stronger since the last call.
type FixpointEngine struct {
	model   *Model
	queue   []Propagator
	queued  map[Propagator]bool
	running bool
}

// NewFixpointEngine creates an engine over the model's propagators.
func NewFixpointEngine(m *Model) *FixpointEngine {
	return &FixpointEngine{
		model:  m,
		queue:  make([]Propagator, 0, 32),
		queued: make(map[Propagator]bool),
	}
}

// Schedule requeues the propagators watching v. Outside a Propagate call
// this is a no-op: the next call seeds the full queue anyway.
func (e *FixpointEngine) Schedule(v *IntVar) {
	if !e.running {
		return
	}
	for _, p := range v.propagators {
		e.push(p)
	}
}

func (e *FixpointEngine) push(p Propagator) {
	if e.queued[p] {
		return
	}
	e.queued[p] = true
	e.queue = append(e.queue, p)
}

// Propagate drains the queue to fixpoint.
func (e *FixpointEngine) Propagate() error {
	e.running = true
	defer func() {
		e.running = false
		e.queue = e.queue[:0]
		for p := range e.queued {
			delete(e.queued, p)
		}
	}()
	for _, p := range e.model.propagators {
		e.push(p)
	}
	for len(e.queue) > 0 {
		p := e.queue[0]
		e.queue = e.queue[1:]
		delete(e.queued, p)
		if err := p.Propagate(); err != nil {
			return err
		}
	}
	return nil
}

// NoPropagationEngine does nothing. Reset installs it so that a model left
// between two resolutions cannot accidentally filter.
type NoPropagationEngine struct{}

// Propagate is a no-op.
func (NoPropagationEngine) Propagate() error { return nil }

// Schedule is a no-op.
func (NoPropagationEngine) Schedule(*IntVar) {}
