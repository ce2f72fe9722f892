// Package solver provides finite-domain constraint solving.
// This file implements solution snapshots and the monitors that record
// them, plus the solution nogood store that lets restart-based enumeration
// terminate.
package solver

import (
	"fmt"
	"strings"
)

// Solution is an immutable snapshot of the instantiated variables at a
// solution node, stamped with the driver's time stamp at recording time.
type Solution struct {
	names  []string
	values []int
	stamp  int
}

// snapshotSolution copies the current values of the model's variables.
func snapshotSolution(l *SearchLoop) *Solution {
	vars := l.Model().Variables()
	s := &Solution{
		names:  make([]string, len(vars)),
		values: make([]int, len(vars)),
		stamp:  l.TimeStamp(),
	}
	for i, v := range vars {
		s.names[i] = v.Name()
		s.values[i] = v.Value()
	}
	return s
}

// Value returns the recorded value of v.
func (s *Solution) Value(v *IntVar) int { return s.values[v.ID()] }

// ValueOf returns the recorded value of the named variable.
func (s *Solution) ValueOf(name string) (int, bool) {
	for i, n := range s.names {
		if n == name {
			return s.values[i], true
		}
	}
	return 0, false
}

// Values returns the recorded values in variable order.
func (s *Solution) Values() []int {
	out := make([]int, len(s.values))
	copy(out, s.values)
	return out
}

// Stamp returns the driver time stamp at which the solution was recorded.
func (s *Solution) Stamp() int { return s.stamp }

// String renders the solution as name=value pairs.
func (s *Solution) String() string {
	parts := make([]string, len(s.names))
	for i := range s.names {
		parts[i] = fmt.Sprintf("%s=%d", s.names[i], s.values[i])
	}
	return strings.Join(parts, ", ")
}

// SolutionRecorder is a monitor keeping the last (and optionally every)
// solution found. The driver's time stamp is used to skip re-recording when
// the world has not changed since the previous solution.
type SolutionRecorder struct {
	loop      *SearchLoop
	keepAll   bool
	last      *Solution
	all       []*Solution
	lastStamp int
}

// NewSolutionRecorder creates a recorder keeping only the last solution.
func NewSolutionRecorder(l *SearchLoop) *SolutionRecorder {
	return &SolutionRecorder{loop: l, lastStamp: -1}
}

// NewAllSolutionsRecorder creates a recorder keeping every solution.
func NewAllSolutionsRecorder(l *SearchLoop) *SolutionRecorder {
	return &SolutionRecorder{loop: l, keepAll: true, lastStamp: -1}
}

// OnSolution snapshots the variables. Implements MonitorSolution.
func (r *SolutionRecorder) OnSolution() {
	if r.loop.TimeStamp() == r.lastStamp {
		return
	}
	r.lastStamp = r.loop.TimeStamp()
	r.last = snapshotSolution(r.loop)
	if r.keepAll {
		r.all = append(r.all, r.last)
	}
}

// Last returns the most recent solution, or nil.
func (r *SolutionRecorder) Last() *Solution { return r.last }

// All returns every recorded solution in discovery order.
func (r *SolutionRecorder) All() []*Solution { return r.all }

// SolutionNogoods is a propagator forbidding previously found solutions.
// The store is posted once at model time and grows as solutions are
// recorded; like the objective cut, its content is not trailed, so recorded
// nogoods survive backtracking and restarts. Plug the companion monitor
// (see RecordNogoodsOnSolutions) to feed it.
type SolutionNogoods struct {
	vars   []*IntVar
	tuples [][]int
}

// NewSolutionNogoods creates an empty nogood store over vars.
func NewSolutionNogoods(vars []*IntVar) *SolutionNogoods {
	vs := make([]*IntVar, len(vars))
	copy(vs, vars)
	return &SolutionNogoods{vars: vs}
}

// Variables implements Propagator.
func (p *SolutionNogoods) Variables() []*IntVar { return p.vars }

// Propagate rejects any state committed to a stored tuple and prunes the
// last open variable of an otherwise matched tuple.
func (p *SolutionNogoods) Propagate() error {
	for _, tuple := range p.tuples {
		open := -1
		dead := false
		for i, v := range p.vars {
			if !v.Contains(tuple[i]) {
				dead = true
				break
			}
			if !v.IsInstantiated() {
				if open >= 0 {
					open = -2 // more than one open variable, nothing to do
					break
				}
				open = i
			}
		}
		if dead || open == -2 {
			continue
		}
		if open == -1 {
			return ErrContradiction
		}
		if err := p.vars[open].Remove(tuple[open]); err != nil {
			return err
		}
	}
	return nil
}

// record stores the current assignment of the watched variables.
func (p *SolutionNogoods) record() {
	tuple := make([]int, len(p.vars))
	for i, v := range p.vars {
		tuple[i] = v.Value()
	}
	p.tuples = append(p.tuples, tuple)
}

// Size returns the number of stored nogoods.
func (p *SolutionNogoods) Size() int { return len(p.tuples) }

// nogoodRecorder feeds a SolutionNogoods store from solutions.
type nogoodRecorder struct {
	store *SolutionNogoods
}

// RecordNogoodsOnSolutions returns a monitor that forbids each found
// solution from being found again. Use together with
// RestartAfterEachSolution to enumerate via restarts.
func RecordNogoodsOnSolutions(store *SolutionNogoods) SearchMonitor {
	return &nogoodRecorder{store: store}
}

// OnSolution implements MonitorSolution.
func (r *nogoodRecorder) OnSolution() { r.store.record() }
