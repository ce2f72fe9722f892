// Package solver provides finite-domain constraint solving.
// This file implements the search measures: counters and the final
// feasibility/optimality outcome. The measures are themselves a monitor and
// always the first entry of the monitor list, so their counters are current
// by the time any other monitor observes them.
package solver

import (
	"fmt"
	"time"
)

// Measures aggregates counters over one resolution plus the outcome filled
// in when the search closes.
//
// Plugged monitors may read every field; they must treat the counters as
// increments the driver owns and keep their own custom counters separately.
type Measures struct {
	SolutionCount  int64
	NodeCount      int64
	BacktrackCount int64
	FailCount      int64
	RestartCount   int64
	MaxDepth       int
	CurrentDepth   int

	// TimeCount is the wall time of the resolution, fixed when the search
	// closes.
	TimeCount time.Duration

	// Feasible is the feasibility outcome: true with at least one solution,
	// undefined when a limit stopped the search before any solution, and
	// false in every other case without a solution (exhaustion, a failed
	// root propagation, a strategy inconsistency or another interrupt).
	Feasible ESat

	// ObjectiveOptimal is true when optimality was proven.
	ObjectiveOptimal bool

	hasObjective bool
	startTime    time.Time
}

// NewMeasures creates zeroed measures.
func NewMeasures() *Measures {
	return &Measures{Feasible: ESatUndefined}
}

// Reset zeroes every counter and clears the outcome.
func (m *Measures) Reset() {
	*m = Measures{Feasible: ESatUndefined, hasObjective: m.hasObjective}
}

// DeclareObjective marks the resolution as an optimization.
func (m *Measures) DeclareObjective() { m.hasObjective = true }

// HasObjective returns true for optimization resolutions.
func (m *Measures) HasObjective() bool { return m.hasObjective }

// SetFeasible records the feasibility outcome.
func (m *Measures) SetFeasible(e ESat) { m.Feasible = e }

// SetObjectiveOptimal records the optimality outcome.
func (m *Measures) SetObjectiveOptimal(b bool) { m.ObjectiveOptimal = b }

// incFailCount is called by the driver on every propagation or refutation
// contradiction.
func (m *Measures) incFailCount() { m.FailCount++ }

// BeforeInitialize stamps the resolution start.
func (m *Measures) BeforeInitialize() { m.startTime = time.Now() }

// AfterInitialize implements MonitorInitialize.
func (m *Measures) AfterInitialize() {}

// BeforeOpenNode counts the node.
func (m *Measures) BeforeOpenNode() { m.NodeCount++ }

// AfterOpenNode implements MonitorOpenNode.
func (m *Measures) AfterOpenNode() {}

// BeforeDownLeftBranch tracks depth.
func (m *Measures) BeforeDownLeftBranch() { m.deepen() }

// AfterDownLeftBranch implements MonitorDownBranch.
func (m *Measures) AfterDownLeftBranch() {}

// BeforeDownRightBranch tracks depth.
func (m *Measures) BeforeDownRightBranch() { m.deepen() }

// AfterDownRightBranch implements MonitorDownBranch.
func (m *Measures) AfterDownRightBranch() {}

// BeforeUpBranch counts the backtrack and unwinds depth.
func (m *Measures) BeforeUpBranch() {
	m.BacktrackCount++
	if m.CurrentDepth > 0 {
		m.CurrentDepth--
	}
}

// AfterUpBranch implements MonitorUpBranch.
func (m *Measures) AfterUpBranch() {}

// BeforeRestart counts the restart and rewinds depth.
func (m *Measures) BeforeRestart() {
	m.RestartCount++
	m.CurrentDepth = 0
}

// AfterRestart implements MonitorRestart.
func (m *Measures) AfterRestart() {}

// BeforeClose fixes the wall time.
func (m *Measures) BeforeClose() {
	if !m.startTime.IsZero() {
		m.TimeCount = time.Since(m.startTime)
	}
}

// AfterClose implements MonitorClose.
func (m *Measures) AfterClose() {}

// OnSolution counts the solution.
func (m *Measures) OnSolution() { m.SolutionCount++ }

func (m *Measures) deepen() {
	m.CurrentDepth++
	if m.CurrentDepth > m.MaxDepth {
		m.MaxDepth = m.CurrentDepth
	}
}

// String returns a one-line summary of the resolution.
func (m *Measures) String() string {
	s := fmt.Sprintf(
		"%d solutions, %d nodes, %d fails, %d backtracks, %d restarts, depth %d, %v, feasible=%s",
		m.SolutionCount, m.NodeCount, m.FailCount, m.BacktrackCount,
		m.RestartCount, m.MaxDepth, m.TimeCount.Round(time.Microsecond), m.Feasible,
	)
	if m.hasObjective {
		s += fmt.Sprintf(", optimal=%t", m.ObjectiveOptimal)
	}
	return s
}
