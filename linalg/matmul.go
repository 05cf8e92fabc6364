// SPDX-License-Identifier: MIT

package linalg

import (
	"fmt"

	"github.com/hans-elliott99/statql/array"
)

// MatMul returns the Real product A·B.
//
// Implementation:
//   - Stage 1: Resolve both operands through widening views; require A.cols == B.rows.
//   - Stage 2: Allocate a Real A.rows×B.cols result and fill it with the
//     triple loop out[i,j] = Σ_k A[i,k]*B[k,j] (i→j→k order).
//
// Errors:
//   - array.ErrDimensionMismatch when A.cols != B.rows.
//   - array.ErrUnsupportedVariant for Text operands.
//   - arena.ErrStaleHandle for released handles.
//
// Complexity:
//   - Time O(r*c*k), Space O(r*c) for the result.
func MatMul(rt *array.Runtime, a, b array.Handle) (array.Handle, error) {
	va, err := numeric(rt, a)
	if err != nil {
		return array.Handle{}, linalgErrorf(opMatMul, err)
	}
	vb, err := numeric(rt, b)
	if err != nil {
		return array.Handle{}, linalgErrorf(opMatMul, err)
	}
	if va.cols != vb.rows {
		return array.Handle{}, linalgErrorf(opMatMul, fmt.Errorf("%dx%d · %dx%d: %w",
			va.rows, va.cols, vb.rows, vb.cols, array.ErrDimensionMismatch))
	}

	out, err := rt.Alloc(array.Real, va.rows, vb.cols)
	if err != nil {
		return array.Handle{}, linalgErrorf(opMatMul, err)
	}
	vals, _ := rt.Reals(out)

	var (
		i, j, k int
		sum     float64
	)
	for i = 0; i < va.rows; i++ {
		for j = 0; j < vb.cols; j++ {
			sum = 0
			for k = 0; k < va.cols; k++ {
				sum += va.get(i, k) * vb.get(k, j)
			}
			vals[i*vb.cols+j] = sum
		}
	}

	return out, nil
}

// MatMulInPlace replaces A with A·B. The product is built in a temporary,
// A is reallocated as Real with the product's shape, and the temporary is
// released. The returned Handle replaces a when A was Integer.
func MatMulInPlace(rt *array.Runtime, a, b array.Handle) (array.Handle, error) {
	tmp, err := MatMul(rt, a, b)
	if err != nil {
		return array.Handle{}, err
	}
	defer func() { _ = rt.Release(tmp) }()

	rows, cols, _ := rt.Dims(tmp)
	a2, err := rt.Realloc(a, array.Real, rows, cols)
	if err != nil {
		return array.Handle{}, linalgErrorf(opMatMul, err)
	}
	src, _ := rt.Reals(tmp)
	dst, _ := rt.Reals(a2)
	copy(dst, src)

	return a2, nil
}

// Crossprod returns XᵗY.
func Crossprod(rt *array.Runtime, x, y array.Handle) (array.Handle, error) {
	xt, err := Transpose(rt, x)
	if err != nil {
		return array.Handle{}, linalgErrorf(opCrossprod, err)
	}
	defer func() { _ = rt.Release(xt) }()

	return MatMul(rt, xt, y)
}

// Tcrossprod returns XYᵗ.
func Tcrossprod(rt *array.Runtime, x, y array.Handle) (array.Handle, error) {
	yt, err := Transpose(rt, y)
	if err != nil {
		return array.Handle{}, linalgErrorf(opCrossprod, err)
	}
	defer func() { _ = rt.Release(yt) }()

	return MatMul(rt, x, yt)
}
