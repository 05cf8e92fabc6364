// SPDX-License-Identifier: MIT

package linalg

import (
	"github.com/hans-elliott99/statql/array"
)

// QR factors the n×p matrix X into Q (n×p, orthonormal columns) and
// R (p×p, upper triangular) with X = QR, using classical Gram-Schmidt.
//
// Implementation:
//   - For column j: v = X[:,j] (widened to Real).
//   - For i < j: R[i,j] = Q[:,i]ᵗ v, then v -= R[i,j]·Q[:,i].
//   - R[j,j] = sqrt(vᵗv); Q[:,j] = v / R[j,j].
//
// Each step is expressed with runtime primitives (Col, Crossprod, MulNum,
// SubtractInPlace, SqrtInPlace, DivNumInPlace, SetCol); all temporaries are
// released per column.
//
// Errors:
//   - array.ErrUnsupportedVariant for Text input.
//   - arena.ErrStaleHandle for a released X.
//
// Notes:
//   - No pivoting. A rank-deficient X yields a zero diagonal in R and
//     non-finite columns in Q.
//
// Complexity:
//   - Time O(n*p²), Space O(n*p + p²).
func QR(rt *array.Runtime, x array.Handle) (q, r array.Handle, err error) {
	v, err := numeric(rt, x)
	if err != nil {
		return array.Handle{}, array.Handle{}, linalgErrorf(opQR, err)
	}
	n, p := v.rows, v.cols

	if q, err = rt.Alloc(array.Real, n, p); err != nil {
		return array.Handle{}, array.Handle{}, linalgErrorf(opQR, err)
	}
	if r, err = rt.Alloc(array.Real, p, p); err != nil {
		_ = rt.Release(q)
		return array.Handle{}, array.Handle{}, linalgErrorf(opQR, err)
	}

	for j := 0; j < p; j++ {
		if err = orthogonalize(rt, x, q, r, j); err != nil {
			_ = rt.ReleaseAll(q, r)
			return array.Handle{}, array.Handle{}, linalgErrorf(opQR, err)
		}
	}

	return q, r, nil
}

// orthogonalize computes column j of Q and R from column j of X and the
// already finished columns 0..j-1 of Q.
func orthogonalize(rt *array.Runtime, x, q, r array.Handle, j int) error {
	s := &scratch{rt: rt}
	defer s.release()

	col, err := rt.Col(x, j)
	if err != nil {
		return err
	}
	s.add(col)
	next, err := rt.CastToReal(col)
	if err != nil {
		return err
	}
	col = s.swap(col, next)

	for i := 0; i < j; i++ {
		qi, err := rt.Col(q, i)
		if err != nil {
			return err
		}
		s.add(qi)
		dot, err := Crossprod(rt, qi, col)
		if err != nil {
			return err
		}
		s.add(dot)
		rij, err := rt.Real(dot, 0, 0)
		if err != nil {
			return err
		}
		if err = rt.SetReal(r, i, j, rij); err != nil {
			return err
		}
		proj, err := rt.MulNum(qi, rij)
		if err != nil {
			return err
		}
		s.add(proj)
		if _, err = rt.SubtractInPlace(col, proj); err != nil {
			return err
		}
	}

	norm, err := Crossprod(rt, col, col)
	if err != nil {
		return err
	}
	s.add(norm)
	if _, err = rt.SqrtInPlace(norm); err != nil {
		return err
	}
	rjj, err := rt.Real(norm, 0, 0)
	if err != nil {
		return err
	}
	if err = rt.SetReal(r, j, j, rjj); err != nil {
		return err
	}
	if err = rt.DivNumInPlace(col, rjj); err != nil {
		return err
	}

	return rt.SetCol(q, j, col)
}
