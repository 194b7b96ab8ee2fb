package simplex

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"q.log/cgcut/model"
)

// Config holds the engine settings.
type Config struct {
	// MaxIterations caps the number of pivots of one Solve or SolveDual
	// call. Zero means no limit; neither engine has an anti-cycling rule,
	// so a degenerate tableau may pivot forever without one.
	MaxIterations int

	Logger logrus.FieldLogger
}

type Option func(*Config)

func WithMaxIterations(n int) Option {
	return func(c *Config) {
		c.MaxIterations = n
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

func newConfig(opts []Option) Config {
	cfg := Config{Logger: logrus.StandardLogger()}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}

	return cfg
}

// engine counts the pivots of a single solve.
type engine struct {
	cfg    Config
	pivots int
}

func newEngine(opts []Option) *engine {
	return &engine{cfg: newConfig(opts)}
}

func (e *engine) pivot(t *model.Tableau, row, col int, phase string) error {
	if e.cfg.MaxIterations > 0 && e.pivots >= e.cfg.MaxIterations {
		return errors.Wrapf(ErrIterationLimit, "%s simplex stopped after %d pivots", phase, e.pivots)
	}
	if err := t.Pivot(row, col); err != nil {
		return err
	}
	e.pivots++

	e.cfg.Logger.WithFields(logrus.Fields{
		"phase":     phase,
		"iteration": e.pivots,
		"row":       row,
		"col":       col,
		"objective": t.ObjectiveValue(),
	}).Debug("pivot")

	return nil
}
