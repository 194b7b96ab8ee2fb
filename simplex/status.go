package simplex

import "github.com/pkg/errors"

var (
	// ErrUnbounded is returned when the entering column has no positive
	// entry, so no row limits the step.
	ErrUnbounded = errors.New("simplex: problem is unbounded")

	// ErrPrimalInfeasible is returned when the leaving row of a dual pivot
	// has no negative entry.
	ErrPrimalInfeasible = errors.New("simplex: problem is primal infeasible")

	// ErrNoFractionalRow is returned when the solution is not integral but
	// every right-hand side is, so no cut can be formed. It is produced by
	// the cutting-plane package (gomory.SelectRow) and lives here so that
	// StatusOf can map it.
	ErrNoFractionalRow = errors.New("simplex: no constraint row with a fractional right-hand side")

	ErrIterationLimit = errors.New("simplex: iteration limit reached")

	// ErrNoPivot is returned by the pivot selection rules when the tableau
	// cannot be improved any further.
	ErrNoPivot = errors.New("simplex: no pivot available")
)

// Status summarizes the outcome of an engine or cutting-plane step.
type Status int

const (
	Optimal Status = iota
	CutApplied
	Unbounded
	PrimalInfeasible
	NoCutAvailable
	IterationLimit
	Failed
)

var statusNames = map[Status]string{
	Optimal:          "optimal",
	CutApplied:       "cut applied",
	Unbounded:        "unbounded",
	PrimalInfeasible: "primal infeasible",
	NoCutAvailable:   "no cut available",
	IterationLimit:   "iteration limit",
	Failed:           "failed",
}

func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return "unknown"
}

// StatusOf maps an error returned by this package, possibly wrapped, to
// its Status. A nil error is Optimal.
func StatusOf(err error) Status {
	switch {
	case err == nil, errors.Is(err, ErrNoPivot):
		return Optimal
	case errors.Is(err, ErrUnbounded):
		return Unbounded
	case errors.Is(err, ErrPrimalInfeasible):
		return PrimalInfeasible
	case errors.Is(err, ErrNoFractionalRow):
		return NoCutAvailable
	case errors.Is(err, ErrIterationLimit):
		return IterationLimit
	default:
		return Failed
	}
}
