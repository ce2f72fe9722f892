// Package solver provides finite-domain constraint solving.
// This file implements decisions: the branching choices pushed onto the
// search tree. The chain of decisions *is* the search path; every non-root
// decision holds a back reference to its predecessor.
package solver

import (
	"fmt"
	"sync"
)

// Decision is a branching choice at a node of the search tree. A binary
// decision applies x = v on the left branch and x ≠ v on the right branch.
//
// Lifecycle: a decision is created by the strategy when the driver opens a
// node, linked behind the current top of the chain, and freed when the
// driver pops past it while going up or restoring the root.
type Decision interface {
	// ApplyLeft posts the left branch on the constraint network.
	ApplyLeft() error

	// ApplyRight posts the next branch after the left one was refuted.
	ApplyRight() error

	// HasNextBranch returns true while an unapplied branch remains.
	HasNextBranch() bool

	// Previous returns the predecessor in the chain.
	Previous() Decision

	// Free releases the decision's resources. The decision must not be
	// used afterwards.
	Free()

	// String renders the decision for logging.
	String() string

	setPrevious(d Decision)
}

// rootDecision is the per-driver sentinel terminating every decision chain.
// It is never freed and carries no branch. It has no real predecessor:
// Previous returns the root itself.
type rootDecision struct{}

func (r *rootDecision) ApplyLeft() error     { return nil }
func (r *rootDecision) ApplyRight() error    { return nil }
func (r *rootDecision) HasNextBranch() bool  { return false }
func (r *rootDecision) Previous() Decision   { return r }
func (r *rootDecision) Free()                {}
func (r *rootDecision) String() string       { return "ROOT" }
func (r *rootDecision) setPrevious(Decision) {}

// intDecision is the standard binary decision x = v / x ≠ v.
// Decisions churn heavily during search, so they are pooled.
type intDecision struct {
	v      *IntVar
	value  int
	branch int // 0: fresh, 1: left applied, 2: right applied
	prev   Decision
}

var intDecisionPool = sync.Pool{
	New: func() interface{} { return &intDecision{} },
}

// NewIntDecision returns a pooled binary decision on v with the given value.
func NewIntDecision(v *IntVar, value int) Decision {
	d := intDecisionPool.Get().(*intDecision)
	d.v = v
	d.value = value
	d.branch = 0
	d.prev = nil
	return d
}

// ApplyLeft posts v = value.
func (d *intDecision) ApplyLeft() error {
	d.branch = 1
	return d.v.Assign(d.value)
}

// ApplyRight posts v ≠ value.
func (d *intDecision) ApplyRight() error {
	d.branch = 2
	return d.v.Remove(d.value)
}

// HasNextBranch returns true until the refutation has been applied.
func (d *intDecision) HasNextBranch() bool { return d.branch < 2 }

// Previous returns the predecessor in the chain.
func (d *intDecision) Previous() Decision { return d.prev }

func (d *intDecision) setPrevious(p Decision) { d.prev = p }

// Free returns the decision to the pool.
func (d *intDecision) Free() {
	d.v = nil
	d.prev = nil
	intDecisionPool.Put(d)
}

// String renders the branch that is currently applied.
func (d *intDecision) String() string {
	op := "="
	if d.branch == 2 {
		op = "!="
	}
	return fmt.Sprintf("%s %s %d", d.v.Name(), op, d.value)
}
