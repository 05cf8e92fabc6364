// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hans-elliott99/statql/array"
	"github.com/hans-elliott99/statql/linalg"
	"github.com/hans-elliott99/statql/table"
)

type lmOptions struct {
	csv         string
	response    string
	predictors  []string
	noIntercept bool
	example     bool
}

var errNoData = errors.New("no data: use --csv, a [data] section in --config, or --example")

func newLMCmd(g *globalOptions) *cobra.Command {
	o := &lmOptions{}
	cmd := &cobra.Command{
		Use:   "lm",
		Short: "Fit an ordinary least-squares regression",
		Long: `The lm command regresses a response on one or more predictors and prints
coefficients, standard errors, t values, the residual standard error, and
the fitted values and residuals.

Example:
  statql lm --example
  statql lm --csv birthwt.csv --response bwt --predictors age,lwt
  statql lm --config model.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLM(cmd, g, o)
		},
	}
	cmd.Flags().StringVar(&o.csv, "csv", "", "CSV file with a header row")
	cmd.Flags().StringVar(&o.response, "response", "", "Response column")
	cmd.Flags().StringSliceVar(&o.predictors, "predictors", nil, "Predictor columns (comma separated)")
	cmd.Flags().BoolVar(&o.noIntercept, "no-intercept", false, "Do not add an intercept column")
	cmd.Flags().BoolVar(&o.example, "example", false, "Fit the built-in 4x3 example")

	return cmd
}

// dataset is a design matrix and response owned by the caller's Runtime.
type dataset struct {
	x, y  array.Handle
	names []string
	title string
	tab   *table.Table
}

func (d *dataset) release(rt *array.Runtime) error {
	err := rt.ReleaseAll(d.x, d.y)
	if d.tab != nil {
		err = errors.Join(err, d.tab.Release())
	}

	return err
}

func runLM(cmd *cobra.Command, g *globalOptions, o *lmOptions) error {
	data := g.cfg.Data
	flags := cmd.Flags()
	if flags.Changed("csv") {
		data.CSV, data.X, data.Y = o.csv, nil, nil
	}
	if flags.Changed("response") {
		data.Response = o.response
	}
	if flags.Changed("predictors") {
		data.Predictors = o.predictors
	}
	if o.noIntercept {
		data.Intercept = false
	}

	rt := array.New(array.WithLogger(g.log))
	out := newReporter(cmd.OutOrStdout(), g)

	err := fitAndPrint(rt, g, out, data, o.example)
	m := rt.Metrics()
	out.printArena(rt.Teardown(), m)

	return err
}

func fitAndPrint(rt *array.Runtime, g *globalOptions, out *reporter, data DataConfig, example bool) error {
	var (
		ds  *dataset
		err error
	)
	switch {
	case example:
		ds, err = exampleData(rt)
	case data.CSV != "":
		ds, err = csvData(rt, g, data)
	case len(data.X) > 0:
		ds, err = inlineData(rt, data)
	default:
		return errNoData
	}
	if err != nil {
		return err
	}
	defer func() { _ = ds.release(rt) }()

	fit, err := linalg.LeastSquares(rt, ds.x, ds.y)
	if err != nil {
		return err
	}
	defer func() { _ = fit.Release(rt) }()
	g.log.Info("model fitted",
		slog.Int("n", fit.N),
		slog.Int("p", fit.P),
		slog.Float64("sigma", fit.Sigma))

	return out.printFit(rt, fit, fitReport{title: ds.title, names: ds.names, showObs: true})
}

// exampleData is the 4×3 design used throughout the docs: an intercept
// column and two predictors.
func exampleData(rt *array.Runtime) (*dataset, error) {
	x, err := rt.FromInts(4, 3, []int{
		1, 2, 3,
		1, 3, 9,
		1, 9, 10,
		1, 4, 5,
	})
	if err != nil {
		return nil, err
	}
	y, err := rt.FromInts(4, 1, []int{1, 2, 3, 4})
	if err != nil {
		_ = rt.Release(x)
		return nil, err
	}

	return &dataset{
		x: x, y: y,
		names: []string{"(Intercept)", "x1", "x2"},
		title: "lm(y ~ x1 + x2)",
	}, nil
}

func csvData(rt *array.Runtime, g *globalOptions, data DataConfig) (*dataset, error) {
	if data.Response == "" {
		return nil, errors.New("--response is required with --csv")
	}
	if len(data.Predictors) == 0 {
		return nil, errors.New("--predictors is required with --csv")
	}
	comma, err := data.comma()
	if err != nil {
		return nil, err
	}
	cm, err := data.charmap()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(data.CSV)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	opts := []table.Option{table.WithLogger(g.log), table.WithComma(comma)}
	if cm != nil {
		opts = append(opts, table.WithCharmap(cm))
	}
	tab, err := table.Load(rt, f, data.CSV, opts...)
	if err != nil {
		return nil, err
	}
	ds := &dataset{tab: tab, title: fmt.Sprintf("lm(%s ~ %s)", data.Response, strings.Join(data.Predictors, " + "))}

	col, err := tab.Column(data.Response)
	if err != nil {
		_ = ds.release(rt)
		return nil, err
	}
	// y is copied so the dataset owns every handle it releases.
	if ds.y, err = rt.Copy(col); err != nil {
		_ = ds.release(rt)
		return nil, err
	}
	if ds.x, err = tab.Design(data.Predictors, data.Intercept); err != nil {
		_ = ds.release(rt)
		return nil, err
	}
	if data.Intercept {
		ds.names = append(ds.names, "(Intercept)")
	}
	ds.names = append(ds.names, data.Predictors...)

	return ds, nil
}

// inlineData builds the design from [data].x and [data].y.
func inlineData(rt *array.Runtime, data DataConfig) (*dataset, error) {
	n, k := len(data.X), len(data.X[0])
	off := 0
	if data.Intercept {
		off = 1
	}
	vals := make([]float64, 0, n*(k+off))
	for _, row := range data.X {
		if data.Intercept {
			vals = append(vals, 1)
		}
		vals = append(vals, row...)
	}
	x, err := rt.FromReals(n, k+off, vals)
	if err != nil {
		return nil, err
	}
	y, err := rt.FromReals(len(data.Y), 1, data.Y)
	if err != nil {
		_ = rt.Release(x)
		return nil, err
	}

	ds := &dataset{x: x, y: y}
	terms := make([]string, 0, k)
	if data.Intercept {
		ds.names = append(ds.names, "(Intercept)")
	}
	for j := 1; j <= k; j++ {
		terms = append(terms, fmt.Sprintf("x%d", j))
	}
	ds.names = append(ds.names, terms...)
	ds.title = fmt.Sprintf("lm(y ~ %s)", strings.Join(terms, " + "))

	return ds, nil
}
