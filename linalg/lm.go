// SPDX-License-Identifier: MIT

package linalg

import (
	"fmt"
	"math"

	"github.com/hans-elliott99/statql/array"
)

// Fit holds the result of an ordinary least-squares fit. Every Handle is
// owned by the Runtime passed to LeastSquares; call Release when done.
type Fit struct {
	Q, R         array.Handle // QR factors of the design matrix
	Coefficients array.Handle // β, p×1
	Fitted       array.Handle // ŷ = Q Qᵗ y, n×1
	Residuals    array.Handle // y − ŷ, n×1
	StdErrors    array.Handle // sqrt(diag((XᵗX)⁻¹)·σ²), p×1
	XtXInverse   array.Handle // (RᵗR)⁻¹, p×p

	Sigma2 float64 // Σ residual² / (n − p)
	Sigma  float64
	N, P   int
}

// Release frees every array of the fit.
func (f *Fit) Release(rt *array.Runtime) error {
	return rt.ReleaseAll(f.Q, f.R, f.Coefficients, f.Fitted, f.Residuals, f.StdErrors, f.XtXInverse)
}

// LeastSquares regresses y on the n×p design matrix X.
//
// Implementation:
//   - Stage 1: Promote y to a Real n×1 column (a copy; y is untouched).
//   - Stage 2: Q, R = QR(X); Qᵗy; β = SolveUpperTriangular(R, Qᵗy).
//   - Stage 3: ŷ = Q(Qᵗy); residuals = y − ŷ; σ² = Σ residual² / (n − p).
//   - Stage 4: (XᵗX)⁻¹ = R⁻¹R⁻ᵗ via InvertUpperTriangular; SE = sqrt(diag·σ²).
//
// Errors:
//   - array.ErrDimensionMismatch when y does not hold n elements.
//   - ErrDegreesOfFreedom when n <= p.
//   - array.ErrUnsupportedVariant for Text operands.
//
// Complexity:
//   - Time O(n*p²), Space O(n*p).
func LeastSquares(rt *array.Runtime, x, y array.Handle) (*Fit, error) {
	vx, err := numeric(rt, x)
	if err != nil {
		return nil, linalgErrorf(opLM, err)
	}
	vy, err := numeric(rt, y)
	if err != nil {
		return nil, linalgErrorf(opLM, err)
	}
	n, p := vx.rows, vx.cols
	if vy.len() != n {
		return nil, linalgErrorf(opLM, fmt.Errorf("y has %d elements, X has %d rows: %w",
			vy.len(), n, array.ErrDimensionMismatch))
	}
	if n <= p {
		return nil, linalgErrorf(opLM, fmt.Errorf("n=%d, p=%d: %w", n, p, ErrDegreesOfFreedom))
	}

	fit := &Fit{N: n, P: p}
	tmp := &scratch{rt: rt}
	defer tmp.release()
	fail := func(err error) (*Fit, error) {
		_ = fit.Release(rt)
		return nil, linalgErrorf(opLM, err)
	}

	yc, err := column(rt, y, n)
	if err != nil {
		return fail(err)
	}
	tmp.add(yc)

	if fit.Q, fit.R, err = QR(rt, x); err != nil {
		return fail(err)
	}
	qty, err := Crossprod(rt, fit.Q, yc)
	if err != nil {
		return fail(err)
	}
	tmp.add(qty)
	if fit.Coefficients, err = SolveUpperTriangular(rt, fit.R, qty); err != nil {
		return fail(err)
	}
	if fit.Fitted, err = MatMul(rt, fit.Q, qty); err != nil {
		return fail(err)
	}
	if fit.Residuals, err = rt.Subtract(yc, fit.Fitted); err != nil {
		return fail(err)
	}

	sq, err := rt.Square(fit.Residuals)
	if err != nil {
		return fail(err)
	}
	tmp.add(sq)
	sqs, _ := rt.Reals(sq)
	rss := 0.0
	for _, v := range sqs {
		rss += v
	}
	fit.Sigma2 = rss / float64(n-p)
	fit.Sigma = math.Sqrt(fit.Sigma2)

	rinv, err := InvertUpperTriangular(rt, fit.R)
	if err != nil {
		return fail(err)
	}
	tmp.add(rinv)
	if fit.XtXInverse, err = Tcrossprod(rt, rinv, rinv); err != nil {
		return fail(err)
	}
	if fit.StdErrors, err = stdErrors(rt, fit.XtXInverse, fit.Sigma2); err != nil {
		return fail(err)
	}

	return fit, nil
}

// column returns a Real n×1 copy of y.
func column(rt *array.Runtime, y array.Handle, n int) (array.Handle, error) {
	c, err := rt.Copy(y)
	if err != nil {
		return array.Handle{}, err
	}
	if err = rt.Reshape(c, n, 1); err != nil {
		_ = rt.Release(c)
		return array.Handle{}, err
	}
	rc, err := rt.CastToReal(c)
	if err != nil {
		_ = rt.Release(c)
		return array.Handle{}, err
	}

	return rc, nil
}

// stdErrors returns sqrt(diag(cov)·sigma2) as a p×1 column.
func stdErrors(rt *array.Runtime, cov array.Handle, sigma2 float64) (array.Handle, error) {
	p, _, err := rt.Dims(cov)
	if err != nil {
		return array.Handle{}, err
	}
	se, err := rt.Alloc(array.Real, p, 1)
	if err != nil {
		return array.Handle{}, err
	}
	for i := 0; i < p; i++ {
		d, err := rt.Real(cov, i, i)
		if err != nil {
			_ = rt.Release(se)
			return array.Handle{}, err
		}
		if err = rt.SetReal(se, i, 0, math.Sqrt(d*sigma2)); err != nil {
			_ = rt.Release(se)
			return array.Handle{}, err
		}
	}

	return se, nil
}
