package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"q.log/cgcut/gomory"
	"q.log/cgcut/instance"
	"q.log/cgcut/model"
	"q.log/cgcut/simplex"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "cgcut [flags] <problem file>",
		Short: "Solve integer programs with Chvátal-Gomory cutting planes",
		Long: `cgcut solves max c'x s.t. Ax <= b, x >= 0 with the tableau simplex method.
When the problem declares integer variables, Chvátal-Gomory cuts are added
one at a time, each followed by a dual simplex pivot, until the integer
variables are integral or no further cut can be applied.

Problems are read from MPS (through GLPK) or YAML files.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v, cfgFile)
			if err != nil {
				return err
			}
			return run(cmd.OutOrStdout(), setupLogger(cfg), cfg, args[0])
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfgFile, "config", "", "YAML configuration file")
	flags.Float64("tolerance", gomory.DefaultTolerance, "distance to an integer still counted as integral")
	flags.Int("max-iterations", 0, "pivot limit per simplex solve, 0 for none")
	flags.Int("max-cuts", 0, "cut limit, 0 for none")
	flags.Bool("full-dual", false, "re-solve with the dual simplex after each cut instead of one pivot")
	flags.Bool("lp-only", false, "solve the LP relaxation only")
	flags.String("format", "", "problem format: mps or yaml (default: file extension)")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	if err := bindFlags(v, flags); err != nil {
		panic(err)
	}

	return cmd
}

func run(w io.Writer, log *logrus.Logger, cfg *Config, path string) error {
	p, err := instance.Load(path, cfg.Format)
	if err != nil {
		return err
	}
	if log.IsLevelEnabled(logrus.DebugLevel) {
		p.Format(w)
	}

	t, err := p.Tableau()
	if err != nil {
		return err
	}
	simplexOpts := []simplex.Option{
		simplex.WithLogger(log),
		simplex.WithMaxIterations(cfg.MaxIterations),
	}

	decision := p.DecisionColumns()
	if cfg.LPOnly || len(decision) == 0 {
		solved, err := simplex.Solve(t, simplexOpts...)
		if err != nil {
			return errors.Wrap(err, "solving LP")
		}
		return report(w, solved, simplex.Optimal, 0, p.ColumnNames())
	}

	opts := []gomory.Option{
		gomory.WithTolerance(cfg.Tolerance),
		gomory.WithMaxCuts(cfg.MaxCuts),
		gomory.WithLogger(log),
		gomory.WithSimplexOptions(simplexOpts...),
	}
	if cfg.FullDual {
		opts = append(opts, gomory.WithFullDualResolve())
	}
	res, err := gomory.CuttingPlanes(t, decision, opts...)
	if err != nil {
		return errors.Wrap(err, "cutting planes")
	}

	return report(w, res.Tableau, res.Status, res.Cuts, p.ColumnNames())
}

// report prints the final tableau and the variable values. Slack columns
// added by cuts are named c1, c2, ...
func report(w io.Writer, t *model.Tableau, status simplex.Status, cuts int, names []string) error {
	fmt.Fprintf(w, "status: %s\n", status)
	fmt.Fprintf(w, "cuts: %d\n", cuts)
	if err := t.Format(w); err != nil {
		return err
	}
	fmt.Fprintf(w, "Z = %v\n", t.ObjectiveValue())

	for j, x := range t.Solution() {
		name := fmt.Sprintf("c%d", j-len(names)+1)
		if j < len(names) {
			name = names[j]
		}
		fmt.Fprintf(w, "%s = %v\n", name, x)
	}

	return nil
}
