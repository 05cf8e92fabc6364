// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"golang.org/x/text/message"

	"github.com/hans-elliott99/statql/arena"
	"github.com/hans-elliott99/statql/array"
	"github.com/hans-elliott99/statql/linalg"
)

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	okColor      = color.New(color.FgGreen)
	leakColor    = color.New(color.FgRed, color.Bold)
)

// reporter renders numbers through a locale-aware printer.
type reporter struct {
	w    io.Writer
	p    *message.Printer
	prec int
}

func newReporter(w io.Writer, g *globalOptions) *reporter {
	return &reporter{w: w, p: g.printer, prec: g.cfg.Output.Precision}
}

func (r *reporter) num(v float64) string {
	return r.p.Sprintf(fmt.Sprintf("%%.%df", r.prec), v)
}

func (r *reporter) heading(format string, args ...any) {
	headingColor.Fprintf(r.w, format+"\n", args...)
}

// fitReport is what printFit needs besides the fit itself.
type fitReport struct {
	title   string
	names   []string // one per coefficient
	showObs bool     // print fitted values and residuals
	truth   []float64
}

// printFit writes the coefficient table, residual summary and optionally
// the per-observation fitted values and residuals.
func (r *reporter) printFit(rt *array.Runtime, fit *linalg.Fit, rep fitReport) error {
	beta, err := rt.Reals(fit.Coefficients)
	if err != nil {
		return err
	}
	se, err := rt.Reals(fit.StdErrors)
	if err != nil {
		return err
	}
	tvals, err := rt.Divide(fit.Coefficients, fit.StdErrors)
	if err != nil {
		return err
	}
	defer func() { _ = rt.Release(tvals) }()
	tv, _ := rt.Reals(tvals)

	r.heading("%s", rep.title)
	fmt.Fprintln(r.w)
	r.heading("Coefficients:")
	tw := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', tabwriter.AlignRight)
	header := "\tEstimate\tStd. Error\tt value\t"
	if rep.truth != nil {
		header += "True\t"
	}
	fmt.Fprintln(tw, header)
	for i := range beta {
		name := fmt.Sprintf("b%d", i)
		if i < len(rep.names) {
			name = rep.names[i]
		}
		row := []string{name, r.num(beta[i]), r.num(se[i]), r.num(tv[i])}
		if rep.truth != nil {
			row = append(row, r.num(rep.truth[i]))
		}
		fmt.Fprintln(tw, strings.Join(row, "\t")+"\t")
	}
	if err = tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(r.w)
	r.p.Fprintf(r.w, "Residual standard error: %s on %d degrees of freedom\n",
		r.num(fit.Sigma), fit.N-fit.P)
	r.p.Fprintf(r.w, "Observations: %d, coefficients: %d\n", fit.N, fit.P)

	if !rep.showObs {
		return nil
	}
	fitted, err := rt.Reals(fit.Fitted)
	if err != nil {
		return err
	}
	resid, err := rt.Reals(fit.Residuals)
	if err != nil {
		return err
	}
	fmt.Fprintln(r.w)
	r.heading("Fitted values and residuals:")
	tw = tabwriter.NewWriter(r.w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "obs\tfitted\tresidual\t")
	for i := range fitted {
		fmt.Fprintf(tw, "%d\t%s\t%s\t\n", i+1, r.num(fitted[i]), r.num(resid[i]))
	}

	return tw.Flush()
}

// printArena writes the teardown report, flagging leaks.
func (r *reporter) printArena(rep arena.Report, m arena.Metrics) {
	fmt.Fprintln(r.w)
	line := r.p.Sprintf("arena: %d arrays allocated, peak %d live, %d released at teardown, %d outstanding",
		m.Appended, m.Peak, rep.Removed, rep.Outstanding)
	if rep.Leaked() {
		leakColor.Fprintln(r.w, line, "(LEAK)")
		return
	}
	okColor.Fprintln(r.w, line)
}
