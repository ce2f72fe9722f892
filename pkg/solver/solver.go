// Package solver provides finite-domain constraint solving.
// This file implements the Solver facade: the high-level entry points that
// wire a model, its propagation engine and the search driver together.
package solver

import (
	"github.com/sirupsen/logrus"
)

// Solver ties a model to a search driver and exposes the standard call
// configurations: FindSolution, FindAllSolutions and FindOptimalSolution.
// Each entry point runs one full resolution; the driver is reset first, so
// a solver can be reused sequentially.
//
// Thread safety: none. A Solver drives a single search at a time.
type Solver struct {
	model *Model
	loop  *SearchLoop
	log   logrus.FieldLogger
}

// NewSolver creates a solver over the model with the standard logger.
func NewSolver(m *Model) *Solver {
	return NewSolverWithLogger(m, logrus.StandardLogger())
}

// NewSolverWithLogger creates a solver logging through log.
func NewSolverWithLogger(m *Model, log logrus.FieldLogger) *Solver {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Solver{
		model: m,
		loop:  NewSearchLoop(m, log),
		log:   log,
	}
}

// Model returns the underlying model.
func (s *Solver) Model() *Model { return s.model }

// Search returns the search driver, for plugging monitors, limits, restart
// policies or a custom branching strategy before calling an entry point.
func (s *Solver) Search() *SearchLoop { return s.loop }

// Measures returns the measures of the last (or running) resolution.
func (s *Solver) Measures() *Measures { return s.loop.Measures() }

// prepare rewinds the driver and installs defaults for a fresh resolution.
func (s *Solver) prepare() {
	s.loop.Reset()
	s.model.SetEngine(NewFixpointEngine(s.model))
	if s.loop.Strategy() == nil {
		s.loop.SetStrategy(InputOrderLowerBound(s.model.Variables()))
	}
}

// FindSolution searches for one solution. It returns the solution, or nil
// when the problem is infeasible or the search stopped on a limit; consult
// Measures().Feasible to tell the two apart.
func (s *Solver) FindSolution() (*Solution, error) {
	s.prepare()
	rec := NewSolutionRecorder(s.loop)
	s.loop.PlugSearchMonitor(rec)
	if err := s.loop.Launch(true); err != nil {
		return nil, err
	}
	return rec.Last(), nil
}

// FindAllSolutions enumerates every solution and returns them in discovery
// order.
func (s *Solver) FindAllSolutions() ([]*Solution, error) {
	s.prepare()
	rec := NewAllSolutionsRecorder(s.loop)
	s.loop.PlugSearchMonitor(rec)
	if err := s.loop.Launch(false); err != nil {
		return nil, err
	}
	return rec.All(), nil
}

// FindOptimalSolution minimizes or maximizes obj and returns the best
// solution found. Optimality is proven when Measures().ObjectiveOptimal is
// true. The objective cut is posted on the model the first time an
// optimization runs on it.
func (s *Solver) FindOptimalSolution(obj *IntVar, minimize bool) (*Solution, error) {
	s.prepare()
	var om *ObjectiveManager
	if minimize {
		om = NewMinimizeManager(obj)
	} else {
		om = NewMaximizeManager(obj)
	}
	s.loop.SetObjectiveManager(om)
	s.ensureCut(om)
	rec := NewSolutionRecorder(s.loop)
	s.loop.PlugSearchMonitor(rec)
	if err := s.loop.Launch(false); err != nil {
		return nil, err
	}
	return rec.Last(), nil
}

// ensureCut posts the objective cut propagator once per model, retargeting
// it on subsequent optimizations.
func (s *Solver) ensureCut(om *ObjectiveManager) {
	for _, p := range s.model.Propagators() {
		if c, ok := p.(*objectiveCut); ok {
			c.om = om
			return
		}
	}
	s.model.Post(ObjectiveCut(om))
}
