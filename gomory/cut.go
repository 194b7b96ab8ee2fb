package gomory

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats/scalar"
	"q.log/cgcut/model"
	"q.log/cgcut/simplex"
)

// DefaultTolerance is how far from an integer a value may be and still
// count as integral.
const DefaultTolerance = 0.003

// roundoff absorbs the representation error of values like 2.997, whose
// fractional part is computed as 0.99699999999999988.
const roundoff = 1e-9

var (
	ErrBadColumn    = errors.New("gomory: decision variable column out of range")
	ErrBadTolerance = errors.New("gomory: tolerance must be in [0, 0.5)")
)

func fractional(v float64) float64 {
	return v - math.Floor(v)
}

// IsIntegral reports whether v lies within tol of an integer.
func IsIntegral(v, tol float64) bool {
	f := fractional(v)
	return scalar.EqualWithinAbs(f, 0, tol+roundoff) || scalar.EqualWithinAbs(f, 1, tol+roundoff)
}

// Integral reports whether every decision variable column of t has an
// integral value.
func Integral(t *model.Tableau, cols []int, tol float64) (bool, error) {
	if err := checkColumns(t, cols); err != nil {
		return false, err
	}
	x := t.Solution()
	for _, j := range cols {
		if !IsIntegral(x[j], tol) {
			return false, nil
		}
	}

	return true, nil
}

func checkColumns(t *model.Tableau, cols []int) error {
	for _, j := range cols {
		if j < 0 || j >= t.NumCols {
			return errors.Wrapf(ErrBadColumn, "column %d, tableau has %d variables", j, t.NumCols)
		}
	}

	return nil
}

// SelectRow returns the first constraint row whose right-hand side is not
// integral.
func SelectRow(t *model.Tableau, tol float64) (int, error) {
	for i := range t.NumRows {
		if !IsIntegral(t.RHS(i), tol) {
			return i, nil
		}
	}

	return -1, errors.WithStack(simplex.ErrNoFractionalRow)
}

// Cut derives the Chvátal-Gomory cut of a row: every entry, right-hand side
// included, is replaced by its negated fractional part. Entries that are
// integers up to round-off get 0.
func Cut(t *model.Tableau, row int) (coeffs []float64, rhs float64) {
	coeffs = make([]float64, t.NumCols)
	for j := range t.NumCols {
		coeffs[j] = negFraction(t.At(row, j))
	}

	return coeffs, negFraction(t.RHS(row))
}

func negFraction(v float64) float64 {
	f := fractional(v)
	if scalar.EqualWithinAbs(f, 0, roundoff) || scalar.EqualWithinAbs(f, 1, roundoff) {
		return 0
	}
	return -f
}

// AddCut selects a row, derives its cut and returns the augmented tableau
// along with the row the cut came from.
func AddCut(t *model.Tableau, tol float64) (*model.Tableau, int, error) {
	row, err := SelectRow(t, tol)
	if err != nil {
		return nil, -1, err
	}
	coeffs, rhs := Cut(t, row)
	next, err := t.InsertBeforeTrailer(coeffs, rhs)
	if err != nil {
		return nil, -1, err
	}

	return next, row, nil
}
