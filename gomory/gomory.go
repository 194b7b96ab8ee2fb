// Package gomory extends the tableau simplex to integer programs with
// Chvátal-Gomory cutting planes.
//
// CuttingPlanes solves the LP relaxation once with the primal simplex and
// then, while some decision variable is fractional, appends a cut derived
// from the first row with a fractional right-hand side and applies a single
// dual simplex pivot. It does not re-solve to dual optimality after a cut
// unless WithFullDualResolve is given, so it may stop at a tableau that is
// not optimal for the cut problem.
package gomory

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"q.log/cgcut/model"
	"q.log/cgcut/simplex"
)

// State is the controller state.
type State int

const (
	Relaxed State = iota
	Cutting
	Done
	Aborted
)

func (s State) String() string {
	switch s {
	case Relaxed:
		return "relaxed"
	case Cutting:
		return "cutting"
	case Done:
		return "done"
	case Aborted:
		return "aborted"
	}
	return "unknown"
}

// Result is the outcome of CuttingPlanes.
type Result struct {
	// Tableau is the best tableau obtained. When the search aborts it is the
	// tableau before the cut that could not be applied, not the augmented
	// tableau the failed dual step left behind.
	Tableau *model.Tableau

	Status simplex.Status
	State  State

	// Cuts is the number of cuts applied to Tableau.
	Cuts int

	//Solution value of every variable column of Tableau
	Solution  []float64
	Objective float64
}

type Config struct {
	Tolerance float64

	// MaxCuts stops the search after that many cuts. Zero means no limit.
	MaxCuts int

	// FullDualResolve runs the dual simplex to completion after each cut
	// instead of a single pivot.
	FullDualResolve bool

	Logger         logrus.FieldLogger
	SimplexOptions []simplex.Option
}

type Option func(*Config)

func WithTolerance(tol float64) Option {
	return func(c *Config) {
		c.Tolerance = tol
	}
}

func WithMaxCuts(n int) Option {
	return func(c *Config) {
		c.MaxCuts = n
	}
}

func WithFullDualResolve() Option {
	return func(c *Config) {
		c.FullDualResolve = true
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// WithSimplexOptions passes options to every primal and dual solve.
func WithSimplexOptions(opts ...simplex.Option) Option {
	return func(c *Config) {
		c.SimplexOptions = append(c.SimplexOptions, opts...)
	}
}

type controller struct {
	cfg   Config
	state State
	cuts  int
	log   logrus.FieldLogger
}

// CuttingPlanes solves t as an integer program in the variable columns
// given by decisionVars.
//
// An unbounded relaxation is returned as an error. Running out of cuts or
// failing the dual pivot after a cut is not: the search aborts and the
// Result carries the last tableau together with a status telling why.
//
// Status Optimal with State Done means the decision variables are integral.
// In single pivot mode the tableau may still hold a negative right-hand
// side, so Optimal does not imply primal feasibility; check
// simplex.DualCanImprove or use WithFullDualResolve when that matters.
func CuttingPlanes(t *model.Tableau, decisionVars []int, opts ...Option) (Result, error) {
	cfg := Config{Tolerance: DefaultTolerance, Logger: logrus.StandardLogger()}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	if cfg.Tolerance < 0 || cfg.Tolerance >= 0.5 {
		return Result{}, errors.Wrapf(ErrBadTolerance, "got %v", cfg.Tolerance)
	}
	if err := checkColumns(t, decisionVars); err != nil {
		return Result{}, err
	}

	c := &controller{cfg: cfg, state: Relaxed, log: cfg.Logger}
	return c.run(t, decisionVars)
}

func (c *controller) simplexOptions() []simplex.Option {
	return append([]simplex.Option{simplex.WithLogger(c.log)}, c.cfg.SimplexOptions...)
}

func (c *controller) run(t *model.Tableau, vars []int) (Result, error) {
	solved, err := simplex.Solve(t, c.simplexOptions()...)
	if err != nil {
		c.state = Aborted
		return c.result(solved, simplex.StatusOf(err)), errors.Wrap(err, "solving relaxation")
	}
	c.state = Cutting
	c.log.WithField("objective", solved.ObjectiveValue()).Debug("relaxation solved")

	mode := simplex.SinglePivot
	if c.cfg.FullDualResolve {
		mode = simplex.FullSolve
	}

	for {
		// columns were checked on entry and cuts only append columns
		if ok, _ := Integral(solved, vars, c.cfg.Tolerance); ok {
			c.state = Done
			c.log.WithFields(logrus.Fields{
				"cuts":      c.cuts,
				"objective": solved.ObjectiveValue(),
			}).Info("integral solution found")
			return c.result(solved, simplex.Optimal), nil
		}

		if c.cfg.MaxCuts > 0 && c.cuts >= c.cfg.MaxCuts {
			return c.abort(solved, errors.Wrapf(simplex.ErrIterationLimit, "%d cuts applied", c.cuts))
		}

		next, row, err := AddCut(solved, c.cfg.Tolerance)
		if err != nil {
			return c.abort(solved, err)
		}
		next, err = simplex.SolveDual(next, mode, c.simplexOptions()...)
		if err != nil {
			return c.abort(solved, err)
		}

		solved = next
		c.cuts++
		c.log.WithFields(logrus.Fields{
			"cut":       c.cuts,
			"row":       row,
			"objective": solved.ObjectiveValue(),
		}).Info(simplex.CutApplied.String())
	}
}

// abort ends the search with the best tableau so far. Errors meaning no
// further cut can be applied become a status, anything else is returned.
func (c *controller) abort(best *model.Tableau, err error) (Result, error) {
	c.state = Aborted
	status := simplex.StatusOf(err)
	res := c.result(best, status)

	switch status {
	case simplex.NoCutAvailable, simplex.PrimalInfeasible, simplex.IterationLimit:
		c.log.WithFields(logrus.Fields{
			"cuts":   c.cuts,
			"status": status.String(),
		}).WithError(err).Warn("cutting planes aborted")
		return res, nil
	}

	return res, err
}

func (c *controller) result(t *model.Tableau, status simplex.Status) Result {
	res := Result{
		Tableau: t,
		Status:  status,
		State:   c.state,
		Cuts:    c.cuts,
	}
	if t != nil {
		res.Solution = t.Solution()
		res.Objective = t.ObjectiveValue()
	}

	return res
}
