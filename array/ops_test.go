// SPDX-License-Identifier: MIT

package array_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hans-elliott99/statql/arena"
	"github.com/hans-elliott99/statql/array"
)

func TestBinary_ResultVariant(t *testing.T) {
	rt := newRuntime(t)
	i1 := MustInts(t, rt, 1, 3, 1, 2, 3)
	i2 := MustInts(t, rt, 1, 3, 4, 5, 6)
	r := MustReals(t, rt, 1, 3, 0.5, 0.5, 0.5)

	sum, err := rt.Add(i1, i2)
	require.NoError(t, err)
	v, _ := rt.Variant(sum)
	assert.Equal(t, array.Integer, v)
	assert.Equal(t, []int{5, 7, 9}, IntsOf(t, rt, sum))

	mixed, err := rt.Multiply(i1, r)
	require.NoError(t, err)
	v, _ = rt.Variant(mixed)
	assert.Equal(t, array.Real, v)
	assert.Equal(t, []float64{0.5, 1, 1.5}, RealsOf(t, rt, mixed))

	// operands untouched
	assert.Equal(t, []int{1, 2, 3}, IntsOf(t, rt, i1))
}

func TestBinary_Errors(t *testing.T) {
	rt := newRuntime(t)
	a := MustReals(t, rt, 1, 3, 1, 2, 3)
	b := MustReals(t, rt, 1, 2, 1, 2)
	one := MustReals(t, rt, 1, 1, 1)
	tx, err := rt.FromTexts(1, 3, []string{"a", "b", "c"})
	require.NoError(t, err)

	_, err = rt.Add(a, b)
	require.ErrorIs(t, err, array.ErrLengthMismatch)
	// no broadcasting of length-1 operands
	_, err = rt.Add(a, one)
	require.ErrorIs(t, err, array.ErrLengthMismatch)
	_, err = rt.Subtract(a, tx)
	require.ErrorIs(t, err, array.ErrUnsupportedVariant)
	_, err = rt.AddInPlace(tx, a)
	require.ErrorIs(t, err, array.ErrUnsupportedVariant)
	assert.Equal(t, 4, rt.Live())
}

func TestBinary_SameLengthDifferentShape(t *testing.T) {
	rt := newRuntime(t)
	a := MustReals(t, rt, 2, 2, 1, 2, 3, 4)
	b := MustReals(t, rt, 1, 4, 1, 1, 1, 1)
	s, err := rt.Add(a, b)
	require.NoError(t, err)
	rows, cols, _ := rt.Dims(s)
	assert.Equal(t, [2]int{2, 2}, [2]int{rows, cols})
}

func TestAdd_Commutative(t *testing.T) {
	rt := newRuntime(t)
	rng := rand.New(rand.NewSource(7))
	vals := func() []float64 {
		out := make([]float64, 12)
		for i := range out {
			out[i] = rng.NormFloat64()
		}
		return out
	}
	a := MustReals(t, rt, 3, 4, vals()...)
	b := MustReals(t, rt, 3, 4, vals()...)

	ab, err := rt.Add(a, b)
	require.NoError(t, err)
	ba, err := rt.Add(b, a)
	require.NoError(t, err)
	eq, err := rt.RealsEqualWithin(ab, ba, 0)
	require.NoError(t, err)
	assert.True(t, eq)

	ia := MustInts(t, rt, 1, 3, 5, -2, 9)
	ib := MustInts(t, rt, 1, 3, 1, 1, -4)
	x, err := rt.Add(ia, ib)
	require.NoError(t, err)
	y, err := rt.Add(ib, ia)
	require.NoError(t, err)
	eq, err = rt.IntegersEqual(x, y)
	require.NoError(t, err)
	assert.True(t, eq)
}

func TestAddSubtract_RoundTrip(t *testing.T) {
	rt := newRuntime(t)
	a := MustReals(t, rt, 2, 3, 0.1, 0.2, 0.3, 1e3, -7.25, 3.3)
	b := MustReals(t, rt, 2, 3, 5.5, 1e-3, -2, 0.7, 0.9, 1e2)

	s, err := rt.Add(a, b)
	require.NoError(t, err)
	back, err := rt.SubtractInPlace(s, b)
	require.NoError(t, err)
	assert.Equal(t, s, back)
	eq, err := rt.RealsEqualWithin(back, a, 1e-9)
	require.NoError(t, err)
	assert.True(t, eq)
}

func TestInPlace_IntegerPromotedByReal(t *testing.T) {
	rt := newRuntime(t)
	i := MustInts(t, rt, 1, 2, 1, 2)
	r := MustReals(t, rt, 1, 2, 0.5, 0.25)

	h, err := rt.AddInPlace(i, r)
	require.NoError(t, err)
	assert.NotEqual(t, i, h)
	_, err = rt.Variant(i)
	require.ErrorIs(t, err, arena.ErrStaleHandle)
	assert.Equal(t, []float64{1.5, 2.25}, RealsOf(t, rt, h))
	assert.Equal(t, 2, rt.Live())

	// Integer in place with Integer keeps the handle.
	j := MustInts(t, rt, 1, 2, 3, 4)
	k, err := rt.MultiplyInPlace(j, j)
	require.NoError(t, err)
	assert.Equal(t, j, k)
	assert.Equal(t, []int{9, 16}, IntsOf(t, rt, j))
}

func TestDivide(t *testing.T) {
	rt := newRuntime(t)
	a := MustInts(t, rt, 1, 3, 7, -7, 9)
	b := MustInts(t, rt, 1, 3, 2, 2, 0)

	_, err := rt.Divide(a, b)
	require.ErrorIs(t, err, array.ErrDivideByZero)
	_, err = rt.DivideInPlace(a, b)
	require.ErrorIs(t, err, array.ErrDivideByZero)
	assert.Equal(t, []int{7, -7, 9}, IntsOf(t, rt, a))

	require.NoError(t, rt.SetInt(b, 0, 2, 4))
	q, err := rt.Divide(a, b)
	require.NoError(t, err)
	assert.Equal(t, []int{3, -3, 2}, IntsOf(t, rt, q))

	r := MustReals(t, rt, 1, 2, 1, -1)
	z := MustReals(t, rt, 1, 2, 0, 0)
	q, err = rt.Divide(r, z)
	require.NoError(t, err)
	got := RealsOf(t, rt, q)
	assert.True(t, math.IsInf(got[0], 1))
	assert.True(t, math.IsInf(got[1], -1))
}

func TestScalarOps(t *testing.T) {
	rt := newRuntime(t)
	i := MustInts(t, rt, 1, 3, 1, 2, 3)
	r := MustReals(t, rt, 1, 3, 1, 2, 3)

	h, err := rt.AddNum(i, 0.5)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, IntsOf(t, rt, h))

	h, err = rt.MulNum(i, 2.5)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 5, 7}, IntsOf(t, rt, h))

	h, err = rt.DivNum(r, 4)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.25, 0.5, 0.75}, RealsOf(t, rt, h))

	_, err = rt.DivNum(i, 0)
	require.ErrorIs(t, err, array.ErrDivideByZero)

	require.NoError(t, rt.DivNumInPlace(i, 2))
	assert.Equal(t, []int{0, 1, 1}, IntsOf(t, rt, i))

	// whole scalars keep integer precision beyond 2^53
	big := MustInts(t, rt, 1, 3, math.MaxInt, 1<<53+1, -(1<<53 + 1))
	h, err = rt.AddNum(big, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{math.MaxInt, 1<<53 + 1, -(1<<53 + 1)}, IntsOf(t, rt, h))
	h, err = rt.AddNum(big, -1)
	require.NoError(t, err)
	assert.Equal(t, []int{math.MaxInt - 1, 1 << 53, -(1<<53 + 2)}, IntsOf(t, rt, h))
	h, err = rt.DivNum(big, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{math.MaxInt / 3, (1<<53 + 1) / 3, -(1<<53 + 1) / 3}, IntsOf(t, rt, h))
	require.NoError(t, rt.MulNumInPlace(big, 1))
	assert.Equal(t, math.MaxInt, IntsOf(t, rt, big)[0])
	require.NoError(t, rt.AddNumInPlace(r, -1))
	require.NoError(t, rt.MulNumInPlace(r, 10))
	assert.Equal(t, []float64{0, 10, 20}, RealsOf(t, rt, r))
}

func TestUnaryOps(t *testing.T) {
	rt := newRuntime(t)
	i := MustInts(t, rt, 1, 3, 1, 4, 9)

	sq, err := rt.Square(i)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 16, 81}, IntsOf(t, rt, sq))

	root, err := rt.Sqrt(i)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, RealsOf(t, rt, root))

	rec, err := rt.Reciprocal(i)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 0.25, 1.0 / 9}, RealsOf(t, rt, rec), 1e-15)

	require.NoError(t, rt.SquareInPlace(i))
	assert.Equal(t, []int{1, 16, 81}, IntsOf(t, rt, i))

	h, err := rt.SqrtInPlace(i)
	require.NoError(t, err)
	assert.NotEqual(t, i, h)
	assert.Equal(t, []float64{1, 4, 9}, RealsOf(t, rt, h))

	h2, err := rt.ReciprocalInPlace(h)
	require.NoError(t, err)
	assert.Equal(t, h, h2)

	tx, err := rt.FromTexts(1, 1, []string{"x"})
	require.NoError(t, err)
	_, err = rt.Sqrt(tx)
	require.ErrorIs(t, err, array.ErrUnsupportedVariant)
}

func TestFill(t *testing.T) {
	rt := newRuntime(t)
	i, err := rt.Alloc(array.Integer, 2, 2)
	require.NoError(t, err)
	require.NoError(t, rt.FillRange(i, 1, 1.5))
	assert.Equal(t, []int{1, 2, 4, 5}, IntsOf(t, rt, i))

	r, err := rt.Alloc(array.Real, 1, 3)
	require.NoError(t, err)
	require.NoError(t, rt.FillRange(r, 0, 0.5))
	assert.Equal(t, []float64{0, 0.5, 1}, RealsOf(t, rt, r))

	calls := 0
	require.NoError(t, rt.FillFunc(r, func() float64 { calls++; return float64(calls) }))
	assert.Equal(t, 3, calls)
	assert.Equal(t, []float64{1, 2, 3}, RealsOf(t, rt, r))
	require.ErrorIs(t, rt.FillFunc(r, nil), array.ErrNilFunc)

	tx, err := rt.Alloc(array.Text, 1, 2)
	require.NoError(t, err)
	require.ErrorIs(t, rt.FillRange(tx, 0, 1), array.ErrUnsupportedVariant)
	require.ErrorIs(t, rt.FillText(r, "x"), array.ErrVariant)
}

func TestFillText_RepeatedFillsStayAtCapacity(t *testing.T) {
	rt := newRuntime(t)
	h, err := rt.Alloc(array.Text, 2, 2)
	require.NoError(t, err)
	base := rt.Metrics().Outstanding

	require.NoError(t, rt.SetText(h, 0, 1, "pre"))
	for range 3 {
		require.NoError(t, rt.FillText(h, "z"))
	}
	n, _ := rt.Len(h)
	assert.Equal(t, 4, n)
	assert.Equal(t, base+4, rt.Metrics().Outstanding)
	s, err := rt.Text(h, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, "z", s)
}

func TestEquality(t *testing.T) {
	rt := newRuntime(t)
	a := MustReals(t, rt, 1, 2, 1, 2)
	b := MustReals(t, rt, 1, 2, 1, 2.05)
	c := MustReals(t, rt, 2, 1, 1, 2)
	i := MustInts(t, rt, 1, 2, 1, 2)

	eq, err := rt.RealsEqualWithin(a, b, 0.1)
	require.NoError(t, err)
	assert.True(t, eq)
	eq, err = rt.RealsEqualWithin(a, b, 0.01)
	require.NoError(t, err)
	assert.False(t, eq)
	eq, err = rt.RealsEqualWithin(a, c, 1)
	require.NoError(t, err)
	assert.False(t, eq)

	_, err = rt.RealsEqualWithin(a, i, 1)
	require.ErrorIs(t, err, array.ErrVariant)
	_, err = rt.IntegersEqual(i, a)
	require.ErrorIs(t, err, array.ErrVariant)
}
