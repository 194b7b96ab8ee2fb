package simplex

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"q.log/cgcut/model"
)

// Mode selects how far SolveDual goes.
type Mode int

const (
	// FullSolve pivots until every right-hand side is non-negative.
	FullSolve Mode = iota

	// SinglePivot performs at most one pivot.
	SinglePivot
)

// DualCanImprove reports whether some constraint row has a negative
// right-hand side.
func DualCanImprove(t *model.Tableau) bool {
	for i := range t.NumRows {
		if t.RHS(i) < 0 {
			return true
		}
	}

	return false
}

// DualPivotPosition picks the row with the most negative right-hand side
// and, among its negative entries, the column minimizing
// reduced cost / entry. Ties go to the first index.
func DualPivotPosition(t *model.Tableau) (row, col int, err error) {
	rhs := make([]float64, t.NumRows)
	for i := range t.NumRows {
		rhs[i] = t.RHS(i)
	}
	row = floats.MinIdx(rhs)
	if rhs[row] >= 0 {
		return -1, -1, errors.Wrap(ErrNoPivot, "right-hand side is non-negative")
	}

	col = -1
	best := math.Inf(1)
	for j := range t.NumCols {
		el := t.At(row, j)
		if el >= 0 {
			continue
		}
		if ratio := t.Reduced(j) / el; col == -1 || ratio < best {
			col, best = j, ratio
		}
	}
	if col == -1 {
		return -1, -1, errors.Wrapf(ErrPrimalInfeasible, "row %d has no negative entry", row)
	}

	return row, col, nil
}

// SolveDual runs the dual simplex on a copy of t, which should already be
// dual feasible (no positive reduced cost). With SinglePivot it stops after
// one pivot even if a right-hand side is still negative. On error the last
// tableau reached is returned with it.
func SolveDual(t *model.Tableau, mode Mode, opts ...Option) (*model.Tableau, error) {
	e := newEngine(opts)
	return e.dual(t.Clone(), mode)
}

func (e *engine) dual(t *model.Tableau, mode Mode) (*model.Tableau, error) {
	for DualCanImprove(t) {
		row, col, err := DualPivotPosition(t)
		if err != nil {
			return t, err
		}
		if err := e.pivot(t, row, col, "dual"); err != nil {
			return t, err
		}
		if mode == SinglePivot {
			break
		}
	}

	return t, nil
}
