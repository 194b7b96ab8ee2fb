package instance

import (
	"math"
	"runtime"

	"github.com/lukpank/go-glpk/glpk"
	"github.com/pkg/errors"
	"q.log/cgcut/model"
)

// Reader reads a mps file to construct a problem
type Reader struct {
	filename string
}

func NewReader(filename string) *Reader {
	return &Reader{
		filename: filename,
	}
}

// ConstructModelFromFile returns the problem as max c'x s.t. Ax <= b.
// Minimization objectives are negated. Only upper bounded rows, zero lower
// bounds and finite upper bounds on columns are supported; column upper
// bounds become constraint rows.
func (r *Reader) ConstructModelFromFile() (*model.Problem, error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	lp := glpk.New()
	defer lp.Delete()
	if err := lp.ReadMPS(glpk.MPS_FILE, nil, r.filename); err != nil {
		return nil, errors.Wrapf(err, "reading %s", r.filename)
	}

	numCols := lp.NumCols()
	if numCols == 0 || lp.NumRows() == 0 {
		return nil, errors.Wrapf(ErrEmptyProblem, "%s", r.filename)
	}

	sign := 1.0
	if lp.ObjDir() == glpk.MIN {
		sign = -1
	}

	//populate obj function
	cVec := make([]float64, numCols)
	for c := range numCols {
		cVec[c] = sign * lp.ObjCoef(c+1)
	}

	//populate constraints
	aVec := []float64{}
	rowsRhs := []float64{}
	for r := 1; r <= lp.NumRows(); r++ {
		if lp.RowLB(r) != -math.MaxFloat64 {
			return nil, errors.Wrapf(ErrUnsupportedRow, "row %s", lp.RowName(r))
		}

		rowVec := make([]float64, numCols)
		idxs, row := lp.MatRow(r)
		for i, v := range idxs {
			if v == 0 {
				continue
			}
			rowVec[v-1] = row[i]
		}
		aVec = append(aVec, rowVec...)
		rowsRhs = append(rowsRhs, lp.RowUB(r))
	}

	p := model.NewProblem(len(rowsRhs), numCols)
	if err := p.SetC(cVec); err != nil {
		return nil, err
	}
	if err := p.SetA(aVec); err != nil {
		return nil, err
	}
	if err := p.SetB(rowsRhs); err != nil {
		return nil, err
	}

	for c := range numCols {
		p.V[c].Name = lp.ColName(c + 1)
		kind := lp.ColKind(c + 1)
		p.V[c].Integer = kind == glpk.IV || kind == glpk.BV

		if lb := lp.ColLB(c + 1); lb != 0 {
			return nil, errors.Wrapf(ErrUnsupportedBound, "column %s has lower bound %v", p.V[c].Name, lb)
		}
		if ub := lp.ColUB(c + 1); ub != math.MaxFloat64 {
			rowVec := make([]float64, numCols)
			rowVec[c] = 1
			if err := p.AddRow(rowVec, ub); err != nil {
				return nil, err
			}
		}
	}

	if err := p.Validate(); err != nil {
		return nil, errors.Wrapf(err, "%s", r.filename)
	}

	return p, nil
}
