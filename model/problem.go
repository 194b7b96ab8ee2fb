package model

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

type Variable struct {
	Name    string
	Integer bool
}

// Problem is a maximization problem max c'x s.t. Ax <= b, x >= 0 before
// slack variables are added.
type Problem struct {
	//V variables, one per column of A
	V []*Variable

	//C objective function coefficients
	C *mat.Dense

	//A constraints matrix
	A *mat.Dense

	//B constraints rhs
	B *mat.Dense

	NumRows int
	NumCols int
}

// NewProblem panics if numRows or numCols is not positive.
func NewProblem(numRows, numCols int) *Problem {
	p := &Problem{
		C:       mat.NewDense(1, numCols, nil),
		A:       mat.NewDense(numRows, numCols, nil),
		B:       mat.NewDense(numRows, 1, nil),
		NumRows: numRows,
		NumCols: numCols,
	}
	p.V = make([]*Variable, numCols)
	for c := range numCols {
		p.V[c] = &Variable{Name: fmt.Sprintf("x%d", c+1)}
	}

	return p
}

func (p *Problem) SetC(cVec []float64) error {
	if len(cVec) != p.NumCols {
		return errors.Wrap(ErrDimensionMismatch, "mismatch number of variables")
	}

	p.C = mat.NewDense(1, p.NumCols, append([]float64{}, cVec...))

	return nil
}

func (p *Problem) SetA(aVec []float64) error {
	if len(aVec) != p.NumCols*p.NumRows {
		return errors.Wrap(ErrDimensionMismatch, "mismatch number of variables and/or constraints")
	}

	p.A = mat.NewDense(p.NumRows, p.NumCols, append([]float64{}, aVec...))

	return nil
}

func (p *Problem) SetB(bVec []float64) error {
	if len(bVec) != p.NumRows {
		return errors.Wrap(ErrDimensionMismatch, "mismatch number of constraints")
	}

	p.B = mat.NewDense(p.NumRows, 1, append([]float64{}, bVec...))

	return nil
}

// AddRow appends the constraint rVec * x <= rhs.
func (p *Problem) AddRow(rVec []float64, rhs float64) error {
	if len(rVec) != p.NumCols {
		return errors.Wrap(ErrDimensionMismatch, "mismatch number of columns, i.e. wrong len of rVec")
	}

	p.A = mat.DenseCopyOf(p.A.Grow(1, 0))
	p.A.SetRow(p.NumRows, rVec)

	p.B = mat.DenseCopyOf(p.B.Grow(1, 0))
	p.B.Set(p.NumRows, 0, rhs)

	p.NumRows++
	return nil
}

func (p *Problem) SetInteger(c int, integer bool) error {
	if c < 0 || c >= p.NumCols {
		return errors.Wrapf(ErrOutOfRange, "variable %d does not exist", c)
	}
	p.V[c].Integer = integer

	return nil
}

// Validate checks that the problem is in the standard form the primal
// engine can start from.
func (p *Problem) Validate() error {
	if p.NumRows == 0 || p.NumCols == 0 {
		return errors.Wrapf(ErrBadShape, "%d constraints, %d variables", p.NumRows, p.NumCols)
	}
	for r := range p.NumRows {
		if p.B.At(r, 0) < 0 {
			return errors.Wrapf(ErrNegativeRHS, "constraint %d has rhs %v", r+1, p.B.At(r, 0))
		}
	}

	return nil
}

// Tableau adds one slack variable per constraint and returns the initial
// tableau. Slack columns follow the problem's own variables.
func (p *Problem) Tableau() (*Tableau, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	aug := mat.NewDense(p.NumRows, p.NumCols+p.NumRows, nil)
	aug.Slice(0, p.NumRows, 0, p.NumCols).(*mat.Dense).Copy(p.A)
	for r := range p.NumRows {
		aug.Set(r, p.NumCols+r, 1)
	}

	c := make([]float64, p.NumCols+p.NumRows)
	copy(c, p.C.RawRowView(0))

	return Build(c, aug, mat.Col(nil, 0, p.B))
}

// DecisionColumns returns the tableau columns of the integer variables.
func (p *Problem) DecisionColumns() []int {
	var cols []int
	for c, v := range p.V {
		if v.Integer {
			cols = append(cols, c)
		}
	}

	return cols
}

// ColumnNames names every variable column of the tableau built by
// Tableau: the problem's variables, then s1..sm for the slacks.
func (p *Problem) ColumnNames() []string {
	names := make([]string, 0, p.NumCols+p.NumRows)
	for _, v := range p.V {
		names = append(names, v.Name)
	}
	for r := range p.NumRows {
		names = append(names, fmt.Sprintf("s%d", r+1))
	}

	return names
}

func (p *Problem) Format(w io.Writer) {
	fmt.Fprintf(w, "c = %v\n", mat.Formatted(p.C, mat.Prefix("    "), mat.Squeeze()))
	fmt.Fprintf(w, "A = %v\n", mat.Formatted(p.A, mat.Prefix("    "), mat.Squeeze()))
	fmt.Fprintf(w, "b = %v\n", mat.Formatted(p.B, mat.Prefix("    "), mat.Squeeze()))
}
