// Package solver provides finite-domain constraint solving.
// This file implements the prometheus monitor: an optional observer that
// mirrors the search measures into prometheus collectors. It never alters
// search semantics.
package solver

import (
	"github.com/prometheus/client_golang/prometheus"
)

// SearchMetrics exposes the progress of a driver as prometheus metrics.
type SearchMetrics struct {
	loop *SearchLoop

	nodes     prometheus.Counter
	fails     prometheus.Counter
	solutions prometheus.Counter
	restarts  prometheus.Counter
	depth     prometheus.Gauge

	lastFails int64
}

// NewSearchMetrics creates the collectors and registers them with reg.
// Pass prometheus.DefaultRegisterer for the process-wide registry.
func NewSearchMetrics(l *SearchLoop, reg prometheus.Registerer) (*SearchMetrics, error) {
	m := &SearchMetrics{
		loop: l,
		nodes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "solver_search_nodes_total",
			Help: "Number of nodes opened by the search driver.",
		}),
		fails: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "solver_search_fails_total",
			Help: "Number of propagation failures met by the search driver.",
		}),
		solutions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "solver_search_solutions_total",
			Help: "Number of solutions found by the search driver.",
		}),
		restarts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "solver_search_restarts_total",
			Help: "Number of restarts performed by the search driver.",
		}),
		depth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "solver_search_depth",
			Help: "Current depth of the search driver.",
		}),
	}
	for _, c := range []prometheus.Collector{m.nodes, m.fails, m.solutions, m.restarts, m.depth} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// BeforeOpenNode counts the node.
func (m *SearchMetrics) BeforeOpenNode() { m.nodes.Inc() }

// AfterOpenNode syncs the fail counter and depth gauge.
func (m *SearchMetrics) AfterOpenNode() { m.sync() }

// BeforeUpBranch implements MonitorUpBranch.
func (m *SearchMetrics) BeforeUpBranch() {}

// AfterUpBranch syncs the fail counter and depth gauge.
func (m *SearchMetrics) AfterUpBranch() { m.sync() }

// BeforeRestart counts the restart.
func (m *SearchMetrics) BeforeRestart() { m.restarts.Inc() }

// AfterRestart implements MonitorRestart.
func (m *SearchMetrics) AfterRestart() {}

// OnSolution counts the solution. Implements MonitorSolution.
func (m *SearchMetrics) OnSolution() { m.solutions.Inc() }

// sync mirrors the measure deltas the hooks cannot observe directly.
func (m *SearchMetrics) sync() {
	meas := m.loop.Measures()
	if d := meas.FailCount - m.lastFails; d > 0 {
		m.fails.Add(float64(d))
		m.lastFails = meas.FailCount
	}
	m.depth.Set(float64(meas.CurrentDepth))
}
