package model

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Tableau is a simplex tableau for a maximization problem in standard form.
//
// The grid has NumRows+1 rows and NumCols+1 columns. Rows 0..NumRows-1 are
// constraints and the last row is the objective; columns 0..NumCols-1 are
// variables and the last column is the right-hand side. The objective row's
// last entry holds the negated objective value.
type Tableau struct {
	grid *mat.Dense

	//NumRows number of constraint rows
	NumRows int

	//NumCols number of variable columns
	NumCols int
}

// NewTableau returns a tableau holding a copy of d.
func NewTableau(d mat.Matrix) (*Tableau, error) {
	if d == nil {
		return nil, errors.Wrap(ErrBadShape, "nil grid")
	}
	r, c := d.Dims()
	if r < 2 || c < 2 {
		return nil, errors.Wrapf(ErrBadShape, "grid is %dx%d, need at least 2x2", r, c)
	}

	g := mat.DenseCopyOf(d)
	for i := range r {
		for j := range c {
			v := g.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, errors.Wrapf(ErrNaNInf, "entry (%d,%d)", i, j)
			}
		}
	}

	return &Tableau{grid: g, NumRows: r - 1, NumCols: c - 1}, nil
}

// FromRows builds a tableau from a full grid given row by row, the
// objective row last.
func FromRows(rows [][]float64) (*Tableau, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.Wrap(ErrBadShape, "empty grid")
	}
	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, errors.Wrapf(ErrDimensionMismatch, "row %d has %d entries, want %d", i, len(row), cols)
		}
		data = append(data, row...)
	}

	return NewTableau(mat.NewDense(len(rows), cols, data))
}

// Build lays out the initial tableau: constraint rows [A | b] followed by
// the objective row [c | 0].
func Build(c []float64, A mat.Matrix, b []float64) (*Tableau, error) {
	if A == nil {
		return nil, errors.Wrap(ErrBadShape, "nil constraint matrix")
	}
	m, n := A.Dims()
	if len(c) != n {
		return nil, errors.Wrapf(ErrDimensionMismatch, "len(c) = %d, A has %d columns", len(c), n)
	}
	if len(b) != m {
		return nil, errors.Wrapf(ErrDimensionMismatch, "len(b) = %d, A has %d rows", len(b), m)
	}

	g := mat.NewDense(m+1, n+1, nil)
	g.Slice(0, m, 0, n).(*mat.Dense).Copy(A)
	g.SetCol(n, append(append([]float64{}, b...), 0))
	g.Slice(m, m+1, 0, n).(*mat.Dense).SetRow(0, c)

	return NewTableau(g)
}

// Dims returns the size of the full grid, trailing row and column included.
func (t *Tableau) Dims() (r, c int) {
	return t.grid.Dims()
}

func (t *Tableau) At(i, j int) float64 {
	return t.grid.At(i, j)
}

// RHS returns the right-hand side of constraint row i.
func (t *Tableau) RHS(i int) float64 {
	return t.grid.At(i, t.NumCols)
}

// Reduced returns the objective row entry of variable column j.
func (t *Tableau) Reduced(j int) float64 {
	return t.grid.At(t.NumRows, j)
}

// ObjectiveValue returns the objective value of the current basis.
func (t *Tableau) ObjectiveValue() float64 {
	return -t.grid.At(t.NumRows, t.NumCols)
}

// Row returns a copy of row i of the full grid.
func (t *Tableau) Row(i int) []float64 {
	return mat.Row(nil, i, t.grid)
}

// Col returns a copy of column j of the full grid.
func (t *Tableau) Col(j int) []float64 {
	return mat.Col(nil, j, t.grid)
}

// Dense returns a copy of the full grid.
func (t *Tableau) Dense() *mat.Dense {
	return mat.DenseCopyOf(t.grid)
}

func (t *Tableau) Clone() *Tableau {
	return &Tableau{
		grid:    mat.DenseCopyOf(t.grid),
		NumRows: t.NumRows,
		NumCols: t.NumCols,
	}
}

// Pivot performs a Gauss-Jordan step on (row, col) in place. Afterwards
// column col is a unit vector with its 1 at row.
func (t *Tableau) Pivot(row, col int) error {
	if row < 0 || row >= t.NumRows || col < 0 || col >= t.NumCols {
		return errors.Wrapf(ErrOutOfRange, "pivot (%d,%d) on %d constraints and %d variables", row, col, t.NumRows, t.NumCols)
	}
	pv := t.grid.At(row, col)
	if pv == 0 {
		return errors.Wrapf(ErrZeroPivot, "pivot (%d,%d)", row, col)
	}

	// divide, the pivot entry must come out exactly 1
	pr := t.grid.RawRowView(row)
	for k := range pr {
		pr[k] /= pv
	}

	r, _ := t.grid.Dims()
	for i := range r {
		if i == row {
			continue
		}
		ri := t.grid.RawRowView(i)
		f := ri[col]
		if f == 0 {
			continue
		}
		floats.AddScaled(ri, -f, pr)
		ri[col] = 0
	}

	return nil
}

// BasicRow reports whether variable column j is a unit vector and, if so,
// the constraint row holding its 1. A unit entry in the objective row does
// not make a column basic.
func (t *Tableau) BasicRow(j int) (int, bool) {
	one := -1
	r, _ := t.grid.Dims()
	for i := range r {
		switch v := t.grid.At(i, j); {
		case v == 0:
		case v == 1 && one < 0:
			one = i
		default:
			return -1, false
		}
	}

	return one, one >= 0 && one < t.NumRows
}

// Solution returns the value of every variable column: basic columns take
// the right-hand side of their unit row, non-basic columns are 0.
func (t *Tableau) Solution() []float64 {
	x := make([]float64, t.NumCols)
	for j := range t.NumCols {
		if i, ok := t.BasicRow(j); ok {
			x[j] = t.RHS(i)
		}
	}

	return x
}

// InsertBeforeTrailer returns a new tableau with the constraint
// coeffs * x + s = rhs added, where s is a fresh slack variable. The slack
// column goes right before the right-hand side and the new row right before
// the objective row, so both stay trailing. The receiver is not modified.
func (t *Tableau) InsertBeforeTrailer(coeffs []float64, rhs float64) (*Tableau, error) {
	if len(coeffs) != t.NumCols {
		return nil, errors.Wrapf(ErrDimensionMismatch, "cut has %d coefficients, tableau has %d variables", len(coeffs), t.NumCols)
	}
	m, n := t.NumRows, t.NumCols

	g := mat.NewDense(m+2, n+2, nil)
	// constraint block and its right-hand side
	g.Slice(0, m, 0, n).(*mat.Dense).Copy(t.grid.Slice(0, m, 0, n))
	g.Slice(0, m, n+1, n+2).(*mat.Dense).Copy(t.grid.Slice(0, m, n, n+1))

	row := make([]float64, n+2)
	copy(row, coeffs)
	row[n] = 1
	row[n+1] = rhs
	g.SetRow(m, row)

	// objective row, with a zero reduced cost for the new slack
	g.Slice(m+1, m+2, 0, n).(*mat.Dense).Copy(t.grid.Slice(m, m+1, 0, n))
	g.Set(m+1, n+1, t.grid.At(m, n))

	return &Tableau{grid: g, NumRows: m + 1, NumCols: n + 1}, nil
}

// Format writes the grid with every value rounded to two decimals.
func (t *Tableau) Format(w io.Writer) error {
	var rounded mat.Dense
	rounded.Apply(func(_, _ int, v float64) float64 {
		return math.Round(v*100) / 100
	}, t.grid)
	_, err := fmt.Fprintf(w, "%v\n", mat.Formatted(&rounded, mat.Squeeze()))
	return err
}

func (t *Tableau) String() string {
	var sb strings.Builder
	_ = t.Format(&sb)
	return sb.String()
}
