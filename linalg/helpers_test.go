// SPDX-License-Identifier: MIT

package linalg_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hans-elliott99/statql/array"
)

const tol = 1e-9

func newRuntime(t *testing.T) *array.Runtime {
	t.Helper()
	rt := array.New()
	t.Cleanup(func() {
		rep := rt.Teardown()
		require.False(t, rep.Leaked(), "outstanding after teardown: %d", rep.Outstanding)
	})

	return rt
}

func MustReals(t *testing.T, rt *array.Runtime, rows, cols int, vals ...float64) array.Handle {
	t.Helper()
	h, err := rt.FromReals(rows, cols, vals)
	require.NoError(t, err)

	return h
}

func MustInts(t *testing.T, rt *array.Runtime, rows, cols int, vals ...int) array.Handle {
	t.Helper()
	h, err := rt.FromInts(rows, cols, vals)
	require.NoError(t, err)

	return h
}

func RealsOf(t *testing.T, rt *array.Runtime, h array.Handle) []float64 {
	t.Helper()
	vals, err := rt.Reals(h)
	require.NoError(t, err)

	return append([]float64(nil), vals...)
}

func DimsOf(t *testing.T, rt *array.Runtime, h array.Handle) [2]int {
	t.Helper()
	rows, cols, err := rt.Dims(h)
	require.NoError(t, err)

	return [2]int{rows, cols}
}

// designX is the 4×3 design matrix of the reference regression.
func designX(t *testing.T, rt *array.Runtime) array.Handle {
	return MustInts(t, rt, 4, 3,
		1, 2, 3,
		1, 3, 9,
		1, 9, 10,
		1, 4, 5)
}
