// SPDX-License-Identifier: MIT

package array

import "math"

// IntegersEqual reports whether two Integer arrays have the same shape and
// elements. A shape mismatch is inequality, not an error.
func (rt *Runtime) IntegersEqual(ha, hb Handle) (bool, error) {
	x, y, same, err := rt.comparable(ha, hb, Integer)
	if err != nil || !same {
		return false, err
	}
	xs, ys := x.data.(intStore), y.data.(intStore)
	for i := range xs {
		if xs[i] != ys[i] {
			return false, nil
		}
	}

	return true, nil
}

// RealsEqualWithin reports whether two Real arrays have the same shape and
// every pair of elements differs by at most tol.
func (rt *Runtime) RealsEqualWithin(ha, hb Handle, tol float64) (bool, error) {
	x, y, same, err := rt.comparable(ha, hb, Real)
	if err != nil || !same {
		return false, err
	}
	xs, ys := x.data.(realStore), y.data.(realStore)
	for i := range xs {
		if !(math.Abs(xs[i]-ys[i]) <= tol) {
			return false, nil
		}
	}

	return true, nil
}

// comparable resolves both operands, checks their variant, and reports
// whether their shapes agree.
func (rt *Runtime) comparable(ha, hb Handle, want Variant) (*Array, *Array, bool, error) {
	x, err := rt.get(opEqual, ha)
	if err != nil {
		return nil, nil, false, err
	}
	y, err := rt.get(opEqual, hb)
	if err != nil {
		return nil, nil, false, err
	}
	for _, a := range []*Array{x, y} {
		if a.variant() != want {
			return nil, nil, false, arrayErrorf(opEqual, variantErr(a.variant(), want))
		}
	}

	return x, y, x.rows == y.rows && x.cols == y.cols, nil
}
