// Package solver provides finite-domain constraint solving.
// This file implements the trail: the backtracking store the search driver
// and the variables share. Pushing a world marks a save point; popping a
// world replays recorded domain changes in reverse.
package solver

import (
	"github.com/pkg/errors"
)

// ErrInvalidWorld reports a request to pop the trail to a world that does
// not exist. It indicates a collaborator bug and is surfaced to the caller
// rather than recovered.
var ErrInvalidWorld = errors.New("invalid world index")

// Trail is the save/restore collaborator of the search driver.
//
// Invariants the driver relies on:
//   - pops are the inverse of pushes, in LIFO order;
//   - WorldPopUntil(i) pops until WorldIndex() == i, is a no-op when the
//     trail is already at i, and fails with ErrInvalidWorld when i exceeds
//     the current index.
type Trail interface {
	// WorldIndex returns the number of currently pushed worlds.
	WorldIndex() int

	// WorldPush marks a save point.
	WorldPush()

	// WorldPop restores every variable to its state at the latest save
	// point and discards that save point.
	WorldPop() error

	// WorldPopUntil pops worlds until WorldIndex() == index.
	WorldPopUntil(index int) error
}

// savedDomain is one reversible modification: the domain a variable held
// before a change.
type savedDomain struct {
	v      *IntVar
	domain Domain
}

// WorldTrail is the concrete Trail used by the solver. It records domain
// changes in a flat slice and world marks as indices into that slice.
//
// Thread safety: none. The trail is mutated only from driver-owned
// transitions and from propagation running inside them.
type WorldTrail struct {
	entries []savedDomain
	marks   []int
}

// NewWorldTrail creates an empty trail.
func NewWorldTrail() *WorldTrail {
	return &WorldTrail{
		entries: make([]savedDomain, 0, 1024),
		marks:   make([]int, 0, 64),
	}
}

// WorldIndex returns the number of currently pushed worlds.
func (t *WorldTrail) WorldIndex() int { return len(t.marks) }

// WorldPush marks a save point.
func (t *WorldTrail) WorldPush() {
	t.marks = append(t.marks, len(t.entries))
}

// WorldPop restores all changes recorded since the latest save point.
func (t *WorldTrail) WorldPop() error {
	if len(t.marks) == 0 {
		return errors.Wrap(ErrInvalidWorld, "pop on empty trail")
	}
	mark := t.marks[len(t.marks)-1]
	t.marks = t.marks[:len(t.marks)-1]
	for i := len(t.entries) - 1; i >= mark; i-- {
		e := t.entries[i]
		e.v.domain = e.domain
		t.entries[i] = savedDomain{}
	}
	t.entries = t.entries[:mark]
	return nil
}

// WorldPopUntil pops worlds until the index is reached.
func (t *WorldTrail) WorldPopUntil(index int) error {
	if index > len(t.marks) || index < 0 {
		return errors.Wrapf(ErrInvalidWorld, "pop until %d with %d worlds", index, len(t.marks))
	}
	for len(t.marks) > index {
		if err := t.WorldPop(); err != nil {
			return err
		}
	}
	return nil
}

// saveDomain records v's current domain so the enclosing world can restore
// it. Changes made before the first push are permanent.
func (t *WorldTrail) saveDomain(v *IntVar) {
	if len(t.marks) == 0 {
		return
	}
	t.entries = append(t.entries, savedDomain{v: v, domain: v.domain})
}
