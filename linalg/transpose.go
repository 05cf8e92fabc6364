// SPDX-License-Identifier: MIT

package linalg

import (
	"github.com/hans-elliott99/statql/array"
)

// Transpose returns a new array Aᵗ of A's variant.
// Integer and Real arrays are supported.
func Transpose(rt *array.Runtime, a array.Handle) (array.Handle, error) {
	v, err := numeric(rt, a)
	if err != nil {
		return array.Handle{}, linalgErrorf(opTranspose, err)
	}
	variant, _ := rt.Variant(a)
	out, err := rt.Alloc(variant, v.cols, v.rows)
	if err != nil {
		return array.Handle{}, linalgErrorf(opTranspose, err)
	}
	copyTransposed(rt, out, a, v.rows, v.cols)

	return out, nil
}

// TransposeInPlace transposes A without changing its handle or variant.
// Row and column vectors are reshaped only; matrices go through a temporary.
func TransposeInPlace(rt *array.Runtime, a array.Handle) error {
	v, err := numeric(rt, a)
	if err != nil {
		return linalgErrorf(opTranspose, err)
	}
	if v.rows == 1 || v.cols == 1 {
		if err = rt.Reshape(a, v.cols, v.rows); err != nil {
			return linalgErrorf(opTranspose, err)
		}
		return nil
	}

	tmp, err := rt.Copy(a)
	if err != nil {
		return linalgErrorf(opTranspose, err)
	}
	defer func() { _ = rt.Release(tmp) }()

	if err = rt.Reshape(a, v.cols, v.rows); err != nil {
		return linalgErrorf(opTranspose, err)
	}
	copyTransposed(rt, a, tmp, v.rows, v.cols)

	return nil
}

// copyTransposed writes the transpose of the rows×cols array src into dst.
// Both arrays share a numeric variant and dst holds cols×rows elements.
func copyTransposed(rt *array.Runtime, dst, src array.Handle, rows, cols int) {
	if s, err := rt.Ints(src); err == nil {
		d, _ := rt.Ints(dst)
		transposeFlat(d, s, rows, cols)
		return
	}
	s, _ := rt.Reals(src)
	d, _ := rt.Reals(dst)
	transposeFlat(d, s, rows, cols)
}

func transposeFlat[T int | float64](dst, src []T, rows, cols int) {
	var i, j int
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			dst[j*rows+i] = src[i*cols+j]
		}
	}
}
