// Package solver provides finite-domain constraint solving.
// This file implements the propagators shipped with the solver: value
// fixing, disequality, ordering and summation. Each achieves at least
// bounds consistency; disequality filters once a side is instantiated.
package solver

import (
	"fmt"
	"strings"
)

// equalsConst pins x to a constant: x = c.
type equalsConst struct {
	x *IntVar
	c int
}

// Equals returns a propagator enforcing x = c.
func Equals(x *IntVar, c int) Propagator { return &equalsConst{x: x, c: c} }

func (p *equalsConst) Propagate() error     { return p.x.Assign(p.c) }
func (p *equalsConst) Variables() []*IntVar { return []*IntVar{p.x} }
func (p *equalsConst) String() string       { return fmt.Sprintf("%s = %d", p.x.Name(), p.c) }

// notEqualOffset enforces x ≠ y + c. Filtering fires once either side is
// instantiated.
type notEqualOffset struct {
	x, y *IntVar
	c    int
}

// NotEqual returns a propagator enforcing x ≠ y.
func NotEqual(x, y *IntVar) Propagator { return NotEqualOffset(x, y, 0) }

// NotEqualOffset returns a propagator enforcing x ≠ y + c.
func NotEqualOffset(x, y *IntVar, c int) Propagator {
	return &notEqualOffset{x: x, y: y, c: c}
}

func (p *notEqualOffset) Propagate() error {
	if p.x.IsInstantiated() {
		if err := p.y.Remove(p.x.Value() - p.c); err != nil {
			return err
		}
	}
	if p.y.IsInstantiated() {
		return p.x.Remove(p.y.Value() + p.c)
	}
	return nil
}

func (p *notEqualOffset) Variables() []*IntVar { return []*IntVar{p.x, p.y} }

func (p *notEqualOffset) String() string {
	if p.c == 0 {
		return fmt.Sprintf("%s != %s", p.x.Name(), p.y.Name())
	}
	return fmt.Sprintf("%s != %s + %d", p.x.Name(), p.y.Name(), p.c)
}

// lessEqualOffset enforces x ≤ y + c with bounds filtering.
type lessEqualOffset struct {
	x, y *IntVar
	c    int
}

// LessOrEqual returns a propagator enforcing x ≤ y.
func LessOrEqual(x, y *IntVar) Propagator { return LessOrEqualOffset(x, y, 0) }

// LessOrEqualOffset returns a propagator enforcing x ≤ y + c.
func LessOrEqualOffset(x, y *IntVar, c int) Propagator {
	return &lessEqualOffset{x: x, y: y, c: c}
}

func (p *lessEqualOffset) Propagate() error {
	if err := p.x.UpdateUpperBound(p.y.Max() + p.c); err != nil {
		return err
	}
	return p.y.UpdateLowerBound(p.x.Min() - p.c)
}

func (p *lessEqualOffset) Variables() []*IntVar { return []*IntVar{p.x, p.y} }

func (p *lessEqualOffset) String() string {
	return fmt.Sprintf("%s <= %s + %d", p.x.Name(), p.y.Name(), p.c)
}

// sumEquals enforces Σ terms = total with bounds consistency in both
// directions.
type sumEquals struct {
	terms []*IntVar
	total *IntVar
}

// Sum returns a propagator enforcing total = Σ terms.
func Sum(terms []*IntVar, total *IntVar) Propagator {
	ts := make([]*IntVar, len(terms))
	copy(ts, terms)
	return &sumEquals{terms: ts, total: total}
}

func (p *sumEquals) Propagate() error {
	sumMin, sumMax := 0, 0
	for _, t := range p.terms {
		sumMin += t.Min()
		sumMax += t.Max()
	}
	if err := p.total.UpdateLowerBound(sumMin); err != nil {
		return err
	}
	if err := p.total.UpdateUpperBound(sumMax); err != nil {
		return err
	}
	// Tighten each term against the slack left by the others.
	for _, t := range p.terms {
		othersMin := sumMin - t.Min()
		othersMax := sumMax - t.Max()
		if err := t.UpdateUpperBound(p.total.Max() - othersMin); err != nil {
			return err
		}
		if err := t.UpdateLowerBound(p.total.Min() - othersMax); err != nil {
			return err
		}
	}
	return nil
}

func (p *sumEquals) Variables() []*IntVar {
	return append(append([]*IntVar{}, p.terms...), p.total)
}

func (p *sumEquals) String() string {
	names := make([]string, len(p.terms))
	for i, t := range p.terms {
		names[i] = t.Name()
	}
	return fmt.Sprintf("%s = %s", p.total.Name(), strings.Join(names, " + "))
}
