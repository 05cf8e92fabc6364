// SPDX-License-Identifier: MIT

package linalg_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hans-elliott99/statql/array"
	"github.com/hans-elliott99/statql/linalg"
)

func TestMatMul_Square(t *testing.T) {
	rt := newRuntime(t)
	x, err := rt.Alloc(array.Real, 2, 2)
	require.NoError(t, err)
	require.NoError(t, rt.FillRange(x, 1, 1))

	p, err := linalg.MatMul(rt, x, x)
	require.NoError(t, err)
	assert.Equal(t, [2]int{2, 2}, DimsOf(t, rt, p))
	assert.Equal(t, []float64{7, 10, 15, 22}, RealsOf(t, rt, p))
}

func TestMatMul_IntegerOperandsWidened(t *testing.T) {
	rt := newRuntime(t)
	a := MustInts(t, rt, 2, 3, 1, 2, 3, 4, 5, 6)
	b := MustReals(t, rt, 3, 1, 0.5, 0.5, 0.5)
	p, err := linalg.MatMul(rt, a, b)
	require.NoError(t, err)
	v, _ := rt.Variant(p)
	assert.Equal(t, array.Real, v)
	assert.Equal(t, []float64{3, 7.5}, RealsOf(t, rt, p))

	_, err = linalg.MatMul(rt, b, b)
	require.ErrorIs(t, err, array.ErrDimensionMismatch)

	tx, err := rt.FromTexts(1, 1, []string{"a"})
	require.NoError(t, err)
	_, err = linalg.MatMul(rt, tx, tx)
	require.ErrorIs(t, err, array.ErrUnsupportedVariant)
}

func TestMatMulInPlace(t *testing.T) {
	rt := newRuntime(t)
	a := MustInts(t, rt, 2, 2, 1, 2, 3, 4)
	live := rt.Live()

	a2, err := linalg.MatMulInPlace(rt, a, a)
	require.NoError(t, err)
	assert.NotEqual(t, a, a2)
	assert.Equal(t, []float64{7, 10, 15, 22}, RealsOf(t, rt, a2))
	assert.Equal(t, live, rt.Live())

	// Real receiver keeps its handle; shape follows the product.
	col := MustReals(t, rt, 2, 1, 1, 1)
	a3, err := linalg.MatMulInPlace(rt, a2, col)
	require.NoError(t, err)
	assert.Equal(t, a2, a3)
	assert.Equal(t, [2]int{2, 1}, DimsOf(t, rt, a3))
	assert.Equal(t, []float64{17, 37}, RealsOf(t, rt, a3))
}

func TestTranspose(t *testing.T) {
	rt := newRuntime(t)
	a := MustInts(t, rt, 2, 3, 1, 2, 3, 4, 5, 6)

	at, err := linalg.Transpose(rt, a)
	require.NoError(t, err)
	assert.Equal(t, [2]int{3, 2}, DimsOf(t, rt, at))
	ints, err := rt.Ints(at)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 4, 2, 5, 3, 6}, ints)

	require.NoError(t, linalg.TransposeInPlace(rt, a))
	eq, err := rt.IntegersEqual(a, at)
	require.NoError(t, err)
	assert.True(t, eq)

	v := MustReals(t, rt, 1, 3, 1, 2, 3)
	require.NoError(t, linalg.TransposeInPlace(rt, v))
	assert.Equal(t, [2]int{3, 1}, DimsOf(t, rt, v))
	assert.Equal(t, []float64{1, 2, 3}, RealsOf(t, rt, v))
}

func TestMatMulTranspose_Identity(t *testing.T) {
	rt := newRuntime(t)
	rng := rand.New(rand.NewSource(3))
	a, err := rt.Alloc(array.Real, 3, 4)
	require.NoError(t, err)
	b, err := rt.Alloc(array.Real, 4, 2)
	require.NoError(t, err)
	require.NoError(t, rt.FillFunc(a, rng.NormFloat64))
	require.NoError(t, rt.FillFunc(b, rng.NormFloat64))

	ab, err := linalg.MatMul(rt, a, b)
	require.NoError(t, err)
	require.NoError(t, linalg.TransposeInPlace(rt, ab))

	at, err := linalg.Transpose(rt, a)
	require.NoError(t, err)
	bt, err := linalg.Transpose(rt, b)
	require.NoError(t, err)
	btat, err := linalg.MatMul(rt, bt, at)
	require.NoError(t, err)

	eq, err := rt.RealsEqualWithin(ab, btat, tol)
	require.NoError(t, err)
	assert.True(t, eq)
}

func TestCrossprods(t *testing.T) {
	rt := newRuntime(t)
	c := MustReals(t, rt, 3, 1, 1, 2, 3)

	cp, err := linalg.Crossprod(rt, c, c)
	require.NoError(t, err)
	assert.Equal(t, [2]int{1, 1}, DimsOf(t, rt, cp))
	v, err := rt.Real(cp, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 14.0, v)

	tcp, err := linalg.Tcrossprod(rt, c, c)
	require.NoError(t, err)
	assert.Equal(t, [2]int{3, 3}, DimsOf(t, rt, tcp))
	assert.Equal(t, []float64{1, 2, 3, 2, 4, 6, 3, 6, 9}, RealsOf(t, rt, tcp))
	v, err = rt.Real(tcp, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 9.0, v)
}

func TestQR_RoundTrip(t *testing.T) {
	rt := newRuntime(t)
	x := designX(t, rt)

	q, r, err := linalg.QR(rt, x)
	require.NoError(t, err)
	assert.Equal(t, [2]int{4, 3}, DimsOf(t, rt, q))
	assert.Equal(t, [2]int{3, 3}, DimsOf(t, rt, r))

	qr, err := linalg.MatMul(rt, q, r)
	require.NoError(t, err)
	xr, err := rt.Copy(x)
	require.NoError(t, err)
	xr, err = rt.CastToReal(xr)
	require.NoError(t, err)
	eq, err := rt.RealsEqualWithin(qr, xr, tol)
	require.NoError(t, err)
	assert.True(t, eq)

	qtq, err := linalg.Crossprod(rt, q, q)
	require.NoError(t, err)
	id, err := rt.Alloc(array.Real, 3, 3)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		require.NoError(t, rt.SetReal(id, i, i, 1))
	}
	eq, err = rt.RealsEqualWithin(qtq, id, tol)
	require.NoError(t, err)
	assert.True(t, eq)

	// R is upper triangular.
	rv := RealsOf(t, rt, r)
	assert.Zero(t, rv[3])
	assert.Zero(t, rv[6])
	assert.Zero(t, rv[7])
}

func TestQR_RankDeficientHasZeroDiagonal(t *testing.T) {
	rt := newRuntime(t)
	x := MustReals(t, rt, 3, 2, 1, 2, 1, 2, 1, 2)
	_, r, err := linalg.QR(rt, x)
	require.NoError(t, err)
	rjj, err := rt.Real(r, 1, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0, rjj, 1e-12)
}

func TestQR_ReleasesTemporaries(t *testing.T) {
	rt := newRuntime(t)
	x := designX(t, rt)
	before := rt.Metrics()

	q, r, err := linalg.QR(rt, x)
	require.NoError(t, err)
	require.NoError(t, rt.ReleaseAll(q, r))
	after := rt.Metrics()
	assert.Equal(t, before.Len, after.Len)
	assert.Equal(t, before.Outstanding, after.Outstanding)
}

func TestSolveUpperTriangular(t *testing.T) {
	rt := newRuntime(t)
	r := MustReals(t, rt, 3, 3,
		2, 1, -1,
		0, 3, 2,
		0, 0, 4)
	y := MustInts(t, rt, 1, 3, 3, 13, 8)

	beta, err := linalg.SolveUpperTriangular(rt, r, y)
	require.NoError(t, err)
	assert.Equal(t, [2]int{3, 1}, DimsOf(t, rt, beta))
	assert.InDeltaSlice(t, []float64{1, 3, 2}, RealsOf(t, rt, beta), tol)

	short := MustReals(t, rt, 2, 1, 1, 1)
	_, err = linalg.SolveUpperTriangular(rt, r, short)
	require.ErrorIs(t, err, array.ErrDimensionMismatch)
	_, err = linalg.SolveUpperTriangular(rt, y, y)
	require.ErrorIs(t, err, array.ErrDimensionMismatch)
}

func TestInvertUpperTriangular(t *testing.T) {
	rt := newRuntime(t)
	r := MustReals(t, rt, 3, 3,
		2, 1, -1,
		0, 3, 2,
		0, 0, 4)

	inv, err := linalg.InvertUpperTriangular(rt, r)
	require.NoError(t, err)
	prod, err := linalg.MatMul(rt, r, inv)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1}, RealsOf(t, rt, prod), tol)

	iv := RealsOf(t, rt, inv)
	assert.Zero(t, iv[3])
	assert.Zero(t, iv[6])
	assert.Zero(t, iv[7])

	rect := MustReals(t, rt, 2, 3, 1, 2, 3, 4, 5, 6)
	_, err = linalg.InvertUpperTriangular(rt, rect)
	require.ErrorIs(t, err, array.ErrDimensionMismatch)
}

func TestInvertUpperTriangular_DiagonalLeavesNoTemporaries(t *testing.T) {
	rt := newRuntime(t)
	d := MustInts(t, rt, 3, 3,
		2, 0, 0,
		0, 4, 0,
		0, 0, -5)
	before := rt.Metrics()

	inv, err := linalg.InvertUpperTriangular(rt, d)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0, 0, 0, 0.25, 0, 0, 0, -0.2}, RealsOf(t, rt, inv))
	assert.Equal(t, before.Len+1, rt.Live())

	require.NoError(t, rt.Release(inv))
	assert.Equal(t, before.Outstanding, rt.Metrics().Outstanding)
}
