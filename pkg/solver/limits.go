// Package solver provides finite-domain constraint solving.
// This file implements the limit monitors. Limits are cooperative: each
// monitor observes the measures from its after hooks (the solution limit
// from OnSolution) and calls ReachLimit
// on the driver when its budget is exhausted. The driver itself never polls
// wall time.
package solver

import "time"

// NodeLimit stops the search after max opened nodes.
type NodeLimit struct {
	loop *SearchLoop
	max  int64
}

// NewNodeLimit creates a node limit monitor for the driver.
func NewNodeLimit(l *SearchLoop, max int64) *NodeLimit {
	return &NodeLimit{loop: l, max: max}
}

// BeforeOpenNode implements MonitorOpenNode.
func (n *NodeLimit) BeforeOpenNode() {}

// AfterOpenNode checks the node budget.
func (n *NodeLimit) AfterOpenNode() {
	if n.loop.Measures().NodeCount >= n.max {
		n.loop.ReachLimit()
	}
}

// SolutionLimit stops the search after max recorded solutions. The solution
// is recorded before the limit fires.
type SolutionLimit struct {
	loop *SearchLoop
	max  int64
}

// NewSolutionLimit creates a solution limit monitor for the driver.
func NewSolutionLimit(l *SearchLoop, max int64) *SolutionLimit {
	return &SolutionLimit{loop: l, max: max}
}

// OnSolution checks the solution budget. Implements MonitorSolution.
func (s *SolutionLimit) OnSolution() {
	if s.loop.Measures().SolutionCount >= s.max {
		s.loop.ReachLimit()
	}
}

// FailLimit stops the search after max propagation fails.
type FailLimit struct {
	loop *SearchLoop
	max  int64
}

// NewFailLimit creates a fail limit monitor for the driver.
func NewFailLimit(l *SearchLoop, max int64) *FailLimit {
	return &FailLimit{loop: l, max: max}
}

// BeforeDownLeftBranch implements MonitorDownBranch.
func (f *FailLimit) BeforeDownLeftBranch() {}

// AfterDownLeftBranch checks the fail budget.
func (f *FailLimit) AfterDownLeftBranch() { f.check() }

// BeforeDownRightBranch implements MonitorDownBranch.
func (f *FailLimit) BeforeDownRightBranch() {}

// AfterDownRightBranch checks the fail budget.
func (f *FailLimit) AfterDownRightBranch() { f.check() }

func (f *FailLimit) check() {
	if f.loop.Measures().FailCount >= f.max {
		f.loop.ReachLimit()
	}
}

// TimeLimit stops the search once the wall clock budget is spent. The clock
// is read only from after hooks, on node openings and backtracks.
type TimeLimit struct {
	loop  *SearchLoop
	max   time.Duration
	start time.Time
}

// NewTimeLimit creates a time limit monitor for the driver.
func NewTimeLimit(l *SearchLoop, max time.Duration) *TimeLimit {
	return &TimeLimit{loop: l, max: max}
}

// BeforeInitialize stamps the start of the resolution.
func (t *TimeLimit) BeforeInitialize() { t.start = time.Now() }

// AfterInitialize implements MonitorInitialize.
func (t *TimeLimit) AfterInitialize() {}

// BeforeOpenNode implements MonitorOpenNode.
func (t *TimeLimit) BeforeOpenNode() {}

// AfterOpenNode checks the clock.
func (t *TimeLimit) AfterOpenNode() { t.check() }

// BeforeUpBranch implements MonitorUpBranch.
func (t *TimeLimit) BeforeUpBranch() {}

// AfterUpBranch checks the clock.
func (t *TimeLimit) AfterUpBranch() { t.check() }

func (t *TimeLimit) check() {
	if !t.start.IsZero() && time.Since(t.start) >= t.max {
		t.loop.ReachLimit()
	}
}
