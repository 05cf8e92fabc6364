// SPDX-License-Identifier: MIT

package linalg

import (
	"fmt"

	"github.com/hans-elliott99/statql/array"
)

// SolveUpperTriangular solves Rβ = y for upper-triangular R (p×p) and
// returns β as a Real p×1 array. y may have any shape holding p elements.
// Rows are resolved from last to first:
//
//	β[j] = (y[j] − Σ_{i>j} R[j,i]·β[i]) / R[j,j]
//
// Only the upper triangle of R is read.
func SolveUpperTriangular(rt *array.Runtime, r, y array.Handle) (array.Handle, error) {
	vr, err := numeric(rt, r)
	if err != nil {
		return array.Handle{}, linalgErrorf(opSolve, err)
	}
	if vr.rows != vr.cols {
		return array.Handle{}, linalgErrorf(opSolve, fmt.Errorf("R is %dx%d: %w",
			vr.rows, vr.cols, array.ErrDimensionMismatch))
	}
	vy, err := numeric(rt, y)
	if err != nil {
		return array.Handle{}, linalgErrorf(opSolve, err)
	}
	p := vr.rows
	if vy.len() != p {
		return array.Handle{}, linalgErrorf(opSolve, fmt.Errorf("y has %d elements, want %d: %w",
			vy.len(), p, array.ErrDimensionMismatch))
	}

	out, err := rt.Alloc(array.Real, p, 1)
	if err != nil {
		return array.Handle{}, linalgErrorf(opSolve, err)
	}
	beta, _ := rt.Reals(out)

	var (
		i, j int
		sum  float64
	)
	for j = p - 1; j >= 0; j-- {
		sum = vy.at(j)
		for i = j + 1; i < p; i++ {
			sum -= vr.get(j, i) * beta[i]
		}
		beta[j] = sum / vr.get(j, j)
	}

	return out, nil
}

// InvertUpperTriangular returns R⁻¹ for a square upper-triangular R.
//
// The identity is driven through the back-substitution pattern one row at
// a time, last to first: row j -= R[j,i]·row i for every i > j, then
// row j /= R[j,j]. The input is not checked for triangularity; entries
// below the diagonal are ignored.
func InvertUpperTriangular(rt *array.Runtime, r array.Handle) (array.Handle, error) {
	vr, err := numeric(rt, r)
	if err != nil {
		return array.Handle{}, linalgErrorf(opInvert, err)
	}
	if vr.rows != vr.cols {
		return array.Handle{}, linalgErrorf(opInvert, fmt.Errorf("R is %dx%d: %w",
			vr.rows, vr.cols, array.ErrDimensionMismatch))
	}
	p := vr.rows

	inv, err := rt.Alloc(array.Real, p, p)
	if err != nil {
		return array.Handle{}, linalgErrorf(opInvert, err)
	}
	for i := 0; i < p; i++ {
		if err = rt.SetReal(inv, i, i, 1); err != nil {
			_ = rt.Release(inv)
			return array.Handle{}, linalgErrorf(opInvert, err)
		}
	}

	for j := p - 1; j >= 0; j-- {
		if err = eliminateRow(rt, inv, vr, j); err != nil {
			_ = rt.Release(inv)
			return array.Handle{}, linalgErrorf(opInvert, err)
		}
	}

	return inv, nil
}

// eliminateRow finishes row j of the inverse; rows j+1.. are already final.
func eliminateRow(rt *array.Runtime, inv array.Handle, vr view, j int) error {
	s := &scratch{rt: rt}
	defer s.release()

	row, err := rt.Row(inv, j)
	if err != nil {
		return err
	}
	s.add(row)
	for i := j + 1; i < vr.cols; i++ {
		other, err := rt.Row(inv, i)
		if err != nil {
			return err
		}
		s.add(other)
		if err = rt.MulNumInPlace(other, vr.get(j, i)); err != nil {
			return err
		}
		if _, err = rt.SubtractInPlace(row, other); err != nil {
			return err
		}
	}
	if err = rt.DivNumInPlace(row, vr.get(j, j)); err != nil {
		return err
	}

	return rt.SetRow(inv, j, row)
}
