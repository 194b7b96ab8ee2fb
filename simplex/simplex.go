package simplex

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"q.log/cgcut/model"
)

// CanImprove reports whether some reduced cost is positive, i.e. the
// current basis is not optimal for maximization.
func CanImprove(t *model.Tableau) bool {
	for j := range t.NumCols {
		if t.Reduced(j) > 0 {
			return true
		}
	}

	return false
}

// PivotPosition picks the first column with a positive reduced cost and
// the row passing the minimum ratio test, the first one on ties.
func PivotPosition(t *model.Tableau) (row, col int, err error) {
	col = -1
	for j := range t.NumCols {
		if t.Reduced(j) > 0 {
			col = j
			break
		}
	}
	if col == -1 {
		return -1, -1, errors.Wrap(ErrNoPivot, "no positive reduced cost")
	}

	// entries <= 0 never limit the step
	ratios := make([]float64, t.NumRows)
	for i := range t.NumRows {
		el := t.At(i, col)
		if el <= 0 {
			ratios[i] = math.Inf(1)
			continue
		}
		ratios[i] = t.RHS(i) / el
	}

	row = floats.MinIdx(ratios)
	if math.IsInf(ratios[row], 1) {
		return -1, -1, errors.Wrapf(ErrUnbounded, "column %d has no positive entry", col)
	}

	return row, col, nil
}

// Solve runs the primal simplex on a copy of t until no reduced cost is
// positive and returns the optimal tableau. t must have a non-negative
// right-hand side. On error the last tableau reached is returned with it.
func Solve(t *model.Tableau, opts ...Option) (*model.Tableau, error) {
	e := newEngine(opts)
	return e.primal(t.Clone())
}

func (e *engine) primal(t *model.Tableau) (*model.Tableau, error) {
	for CanImprove(t) {
		row, col, err := PivotPosition(t)
		if err != nil {
			return t, err
		}
		if err := e.pivot(t, row, col, "primal"); err != nil {
			return t, err
		}
	}

	return t, nil
}
