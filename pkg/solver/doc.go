// Package solver implements a finite-domain constraint solver built around a
// flat, iterative tree-search driver.
//
// # Architecture Overview
//
// The package separates the immutable problem definition from the mutable
// solving state:
//
//	Model (immutable once solving starts):
//	  - Integer variables with bitset domains
//	  - Propagators that filter those domains
//	  - The trail shared by variables and the search driver
//
//	SearchLoop (mutable, owned by the driver):
//	  - A state tag selecting the next transition
//	  - The decision chain rooted at a per-driver ROOT sentinel
//	  - Counters and outcome on Measures
//
// The search itself is a flattened representation of a recursive tree walk.
// One iteration of the loop reads the state tag, fires the matching before
// hooks on the plugged monitors, runs the transition, fires the after hooks,
// and re-checks liveness. Because no transition recurses, stack usage is
// independent of search depth and interruption, limits and restarts are
// ordinary state changes rather than unwinding.
//
// # How Backtracking Works
//
// Every domain mutation records the previous domain on the trail before the
// change. Pushing a world marks a save point; popping a world replays the
// recorded changes in reverse, restoring every variable to its state at the
// save point. The driver pushes one world per branching step and two worlds
// around the initial propagation so that a restart can rewind to the state
// just after the root fixpoint; the restart then propagates once more from
// that state so that cuts tightened since the root apply.
//
// # Entry Points
//
// Most callers use the Solver facade:
//
//	m := solver.NewModel()
//	x := m.NewIntVar("x", 0, 1)
//	y := m.NewIntVar("y", 0, 1)
//	m.Post(solver.NotEqual(x, y))
//	s := solver.NewSolver(m)
//	sol, err := s.FindSolution()
//
// Advanced callers drive the SearchLoop directly to plug monitors, install
// limits or restart policies, or swap the branching strategy.
package solver
