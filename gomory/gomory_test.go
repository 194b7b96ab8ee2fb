package gomory

import (
	"io"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"q.log/cgcut/model"
	"q.log/cgcut/simplex"
)

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func standardForm(t *testing.T, c []float64, A [][]float64, b []float64) *model.Tableau {
	t.Helper()
	rows := make([]float64, 0, len(A)*len(c))
	for _, a := range A {
		rows = append(rows, a...)
	}
	p := model.NewProblem(len(A), len(c))
	require.NoError(t, p.SetC(c))
	require.NoError(t, p.SetA(rows))
	require.NoError(t, p.SetB(b))
	tab, err := p.Tableau()
	require.NoError(t, err)
	return tab
}

// max x2 s.t. 3x1 + 2x2 <= 6, -3x1 + 2x2 <= 0, integer optimum x = (1, 1)
func triangle(t *testing.T) *model.Tableau {
	return standardForm(t, []float64{0, 1}, [][]float64{{3, 2}, {-3, 2}}, []float64{6, 0})
}

func TestCuttingPlanes(t *testing.T) {
	res, err := CuttingPlanes(triangle(t), []int{0, 1}, WithLogger(quietLogger()))
	require.NoError(t, err)

	assert.Equal(t, simplex.Optimal, res.Status)
	assert.Equal(t, Done, res.State)
	assert.Equal(t, 2, res.Cuts)
	assert.InDelta(t, 1, res.Objective, 1e-9)
	assert.InDelta(t, 1, res.Solution[0], 1e-9)
	assert.InDelta(t, 1, res.Solution[1], 1e-9)

	// two cuts, two extra rows and columns
	r, c := res.Tableau.Dims()
	assert.Equal(t, 5, r)
	assert.Equal(t, 7, c)
	assert.False(t, simplex.DualCanImprove(res.Tableau))
}

func TestCuttingPlanesSingleCut(t *testing.T) {
	// max x s.t. 2x <= 3
	tab := standardForm(t, []float64{1}, [][]float64{{2}}, []float64{3})

	res, err := CuttingPlanes(tab, []int{0}, WithLogger(quietLogger()))
	require.NoError(t, err)
	assert.Equal(t, simplex.Optimal, res.Status)
	assert.Equal(t, 1, res.Cuts)
	assert.Equal(t, 1.0, res.Solution[0])
	assert.Equal(t, 1.0, res.Objective)
}

func TestCuttingPlanesIntegralRelaxation(t *testing.T) {
	tab := standardForm(t,
		[]float64{3, 5},
		[][]float64{{1, 0}, {0, 2}, {3, 2}},
		[]float64{4, 12, 18})

	res, err := CuttingPlanes(tab, []int{0, 1}, WithLogger(quietLogger()))
	require.NoError(t, err)
	assert.Equal(t, simplex.Optimal, res.Status)
	assert.Equal(t, 0, res.Cuts)
	assert.Equal(t, 36.0, res.Objective)
	assert.Equal(t, []float64{2, 6}, res.Solution[:2])
}

func TestCuttingPlanesDualInfeasibleAborts(t *testing.T) {
	// max 3x + 2y s.t. x + y <= 4.5, x <= 3.5. The row of x has integer
	// coefficients and a fractional rhs, so its cut has no negative entry.
	tab := standardForm(t, []float64{3, 2}, [][]float64{{1, 1}, {1, 0}}, []float64{4.5, 3.5})

	log, hook := test.NewNullLogger()
	res, err := CuttingPlanes(tab, []int{0, 1}, WithLogger(log))
	require.NoError(t, err)

	assert.Equal(t, simplex.PrimalInfeasible, res.Status)
	assert.Equal(t, Aborted, res.State)
	assert.Equal(t, 0, res.Cuts)
	assert.Equal(t, 12.5, res.Objective)
	assert.Equal(t, 3.5, res.Solution[0])

	// the tableau before the failed cut is kept
	r, c := res.Tableau.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 5, c)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestCuttingPlanesMaxCuts(t *testing.T) {
	res, err := CuttingPlanes(triangle(t), []int{0, 1}, WithLogger(quietLogger()), WithMaxCuts(1))
	require.NoError(t, err)

	assert.Equal(t, simplex.IterationLimit, res.Status)
	assert.Equal(t, Aborted, res.State)
	assert.Equal(t, 1, res.Cuts)
	assert.InDelta(t, 2.0/3, res.Solution[0], 1e-12)
	assert.InDelta(t, 1, res.Solution[1], 1e-12)
}

func TestCuttingPlanesFullDualResolve(t *testing.T) {
	res, err := CuttingPlanes(triangle(t), []int{0, 1}, WithLogger(quietLogger()), WithFullDualResolve())
	require.NoError(t, err)
	assert.Equal(t, simplex.Optimal, res.Status)
	assert.InDelta(t, 1, res.Objective, 1e-9)
}

// The single dual pivot after each cut is not a textbook cutting-plane loop:
// on this problem it stops at the integer optimum value 20 on a tableau that
// still has a negative right-hand side, while the full re-solve ends at the
// feasible optimum x = (4, 0).
func TestCuttingPlanesAgainstKnownOptimum(t *testing.T) {
	build := func() *model.Tableau {
		return standardForm(t, []float64{5, 4}, [][]float64{{6, 4}, {1, 2}}, []float64{24, 6})
	}

	single, err := CuttingPlanes(build(), []int{0, 1}, WithLogger(quietLogger()))
	require.NoError(t, err)
	assert.Equal(t, simplex.Optimal, single.Status)
	assert.InDelta(t, 20, single.Objective, 1e-9)
	assert.Equal(t, Done, single.State)
	assert.True(t, simplex.DualCanImprove(single.Tableau), "single pivot mode leaves the cut problem infeasible")

	full, err := CuttingPlanes(build(), []int{0, 1}, WithLogger(quietLogger()), WithFullDualResolve())
	require.NoError(t, err)
	assert.Equal(t, simplex.Optimal, full.Status)
	assert.InDelta(t, 20, full.Objective, 1e-9)
	assert.InDelta(t, 4, full.Solution[0], 1e-9)
	assert.InDelta(t, 0, full.Solution[1], 1e-9)
	assert.False(t, simplex.DualCanImprove(full.Tableau))
}

func TestCuttingPlanesUnbounded(t *testing.T) {
	tab := standardForm(t, []float64{1, 0}, [][]float64{{-1, 1}}, []float64{1})

	res, err := CuttingPlanes(tab, []int{0}, WithLogger(quietLogger()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, simplex.ErrUnbounded))
	assert.Equal(t, simplex.Unbounded, res.Status)
	assert.Equal(t, Aborted, res.State)
}

func TestCuttingPlanesBadInput(t *testing.T) {
	_, err := CuttingPlanes(triangle(t), []int{7}, WithLogger(quietLogger()))
	assert.True(t, errors.Is(err, ErrBadColumn))

	_, err = CuttingPlanes(triangle(t), []int{0}, WithLogger(quietLogger()), WithTolerance(0.5))
	assert.True(t, errors.Is(err, ErrBadTolerance))
}

func TestCuttingPlanesKeepsInput(t *testing.T) {
	tab := triangle(t)
	before := tab.Dense()

	_, err := CuttingPlanes(tab, []int{0, 1}, WithLogger(quietLogger()))
	require.NoError(t, err)
	assert.True(t, mat.Equal(before, tab.Dense()))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "relaxed", Relaxed.String())
	assert.Equal(t, "cutting", Cutting.String())
	assert.Equal(t, "done", Done.String())
	assert.Equal(t, "aborted", Aborted.String())
}
