package solver

// esat.go: three-valued logic for the feasibility outcome of a search.

// ESat is a three-valued truth: a search may prove a problem feasible,
// prove it infeasible, or stop before deciding either way.
type ESat int8

const (
	// ESatFalse means infeasibility was proven.
	ESatFalse ESat = iota
	// ESatUndefined means the search stopped before proving either outcome.
	ESatUndefined
	// ESatTrue means at least one solution was found.
	ESatTrue
)

// String returns a human-readable representation.
func (e ESat) String() string {
	switch e {
	case ESatTrue:
		return "true"
	case ESatFalse:
		return "false"
	default:
		return "undefined"
	}
}
