// Package solver provides finite-domain constraint solving.
// This file implements the branching strategies: how the driver picks the
// next decision when it opens a node.
package solver

import "errors"

// ErrInconsistentStrategy reports that a strategy found the current state
// unsatisfiable while computing a decision (an empty domain slipped through
// propagation). The driver interrupts the search when it sees this.
var ErrInconsistentStrategy = errors.New("search strategy detects inconsistency")

// Strategy computes the next decision for the driver.
//
// Contract:
//   - returns (nil, nil) when every variable the strategy watches is
//     instantiated, which the driver treats as a solution;
//   - returns (d, nil) with a fresh, unlinked decision otherwise;
//   - returns (nil, ErrInconsistentStrategy) when the state is broken.
type Strategy interface {
	GetDecision() (Decision, error)
}

// inputOrderLowerBound branches on the first uninstantiated variable in
// declaration order, trying its smallest value first. This is the
// lexicographic strategy.
type inputOrderLowerBound struct {
	vars []*IntVar
}

// InputOrderLowerBound returns the lexicographic strategy over vars.
func InputOrderLowerBound(vars []*IntVar) Strategy {
	return &inputOrderLowerBound{vars: vars}
}

func (s *inputOrderLowerBound) GetDecision() (Decision, error) {
	for _, v := range s.vars {
		switch v.Domain().Count() {
		case 0:
			return nil, ErrInconsistentStrategy
		case 1:
			continue
		default:
			return NewIntDecision(v, v.Min()), nil
		}
	}
	return nil, nil
}

// firstFail branches on the uninstantiated variable with the smallest
// domain, trying its smallest value first. Ties break on declaration order.
type firstFail struct {
	vars []*IntVar
}

// FirstFail returns the smallest-domain-first strategy over vars.
func FirstFail(vars []*IntVar) Strategy {
	return &firstFail{vars: vars}
}

func (s *firstFail) GetDecision() (Decision, error) {
	var best *IntVar
	bestSize := 0
	for _, v := range s.vars {
		size := v.Domain().Count()
		if size == 0 {
			return nil, ErrInconsistentStrategy
		}
		if size == 1 {
			continue
		}
		if best == nil || size < bestSize {
			best = v
			bestSize = size
		}
	}
	if best == nil {
		return nil, nil
	}
	return NewIntDecision(best, best.Min()), nil
}

// domOverDeg branches on the variable minimizing domain size over constraint
// degree, a dynamic variant of first-fail that prefers constrained
// variables.
type domOverDeg struct {
	vars []*IntVar
}

// DomOverDeg returns the dom/deg strategy over vars.
func DomOverDeg(vars []*IntVar) Strategy {
	return &domOverDeg{vars: vars}
}

func (s *domOverDeg) GetDecision() (Decision, error) {
	var best *IntVar
	bestScore := 0.0
	for _, v := range s.vars {
		size := v.Domain().Count()
		if size == 0 {
			return nil, ErrInconsistentStrategy
		}
		if size == 1 {
			continue
		}
		score := float64(size) / float64(1+len(v.propagators))
		if best == nil || score < bestScore {
			best = v
			bestScore = score
		}
	}
	if best == nil {
		return nil, nil
	}
	return NewIntDecision(best, best.Min()), nil
}
