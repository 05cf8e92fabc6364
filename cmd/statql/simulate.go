// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/hans-elliott99/statql/array"
	"github.com/hans-elliott99/statql/linalg"
)

type simulateOptions struct {
	rows  int
	cols  int
	seed  uint64
	noise float64
}

func newSimulateCmd(g *globalOptions) *cobra.Command {
	o := &simulateOptions{}
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Fit a regression on simulated data with known coefficients",
		Long: `The simulate command draws a design matrix of standard normal predictors
plus an intercept, sets the true coefficients to 1, 2, ..., p, adds normal
noise, and fits the model. The estimates are printed next to the truth.

Example:
  statql simulate --rows 200 --cols 3 --seed 7 --noise 0.5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSimulate(cmd, g, o)
		},
	}
	cmd.Flags().IntVar(&o.rows, "rows", 100, "Number of observations")
	cmd.Flags().IntVar(&o.cols, "cols", 2, "Number of predictors besides the intercept")
	cmd.Flags().Uint64Var(&o.seed, "seed", 1, "Random seed")
	cmd.Flags().Float64Var(&o.noise, "noise", 1, "Standard deviation of the noise")

	return cmd
}

func runSimulate(cmd *cobra.Command, g *globalOptions, o *simulateOptions) error {
	if o.rows < 1 || o.cols < 0 {
		return fmt.Errorf("need --rows >= 1 and --cols >= 0, got %d and %d", o.rows, o.cols)
	}
	if o.noise < 0 {
		return fmt.Errorf("--noise must not be negative, got %g", o.noise)
	}

	rt := array.New(array.WithLogger(g.log))
	out := newReporter(cmd.OutOrStdout(), g)

	err := simulate(rt, g, out, o)
	m := rt.Metrics()
	out.printArena(rt.Teardown(), m)

	return err
}

func simulate(rt *array.Runtime, g *globalOptions, out *reporter, o *simulateOptions) error {
	rng := rand.New(rand.NewPCG(o.seed, o.seed^0x9e3779b97f4a7c15))
	p := o.cols + 1

	x, err := simulatedDesign(rt, rng, o.rows, p)
	if err != nil {
		return err
	}
	defer func() { _ = rt.Release(x) }()

	beta, err := rt.Alloc(array.Real, p, 1)
	if err != nil {
		return err
	}
	defer func() { _ = rt.Release(beta) }()
	if err = rt.FillRange(beta, 1, 1); err != nil {
		return err
	}

	y, err := linalg.MatMul(rt, x, beta)
	if err != nil {
		return err
	}
	defer func() { _ = rt.Release(y) }()
	noise, err := rt.SameShape(y, array.Real)
	if err != nil {
		return err
	}
	defer func() { _ = rt.Release(noise) }()
	if err = rt.FillFunc(noise, func() float64 { return o.noise * rng.NormFloat64() }); err != nil {
		return err
	}
	if _, err = rt.AddInPlace(y, noise); err != nil {
		return err
	}

	fit, err := linalg.LeastSquares(rt, x, y)
	if err != nil {
		return err
	}
	defer func() { _ = fit.Release(rt) }()
	g.log.Info("simulation fitted",
		slog.Uint64("seed", o.seed),
		slog.Int("n", fit.N),
		slog.Int("p", fit.P),
		slog.Float64("sigma", fit.Sigma))

	truth, _ := rt.Reals(beta)
	names := []string{"(Intercept)"}
	for j := 1; j < p; j++ {
		names = append(names, fmt.Sprintf("x%d", j))
	}

	return out.printFit(rt, fit, fitReport{
		title: fmt.Sprintf("simulate(n=%d, p=%d, seed=%d, noise=%g)", o.rows, p, o.seed, o.noise),
		names: names,
		truth: truth,
	})
}

// simulatedDesign returns an n×p Real matrix whose first column is ones and
// whose other columns are standard normal draws.
func simulatedDesign(rt *array.Runtime, rng *rand.Rand, n, p int) (array.Handle, error) {
	x, err := rt.Alloc(array.Real, n, p)
	if err != nil {
		return array.Handle{}, err
	}
	if err = rt.FillFunc(x, rng.NormFloat64); err != nil {
		_ = rt.Release(x)
		return array.Handle{}, err
	}
	ones, err := rt.Alloc(array.Real, n, 1)
	if err != nil {
		_ = rt.Release(x)
		return array.Handle{}, err
	}
	defer func() { _ = rt.Release(ones) }()
	if err = rt.FillRange(ones, 1, 0); err != nil {
		_ = rt.Release(x)
		return array.Handle{}, err
	}
	if err = rt.SetCol(x, 0, ones); err != nil {
		_ = rt.Release(x)
		return array.Handle{}, err
	}

	return x, nil
}
