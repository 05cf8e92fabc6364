// SPDX-License-Identifier: MIT

package array_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hans-elliott99/statql/array"
)

// newRuntime returns a Runtime that is torn down, and checked for leaks,
// when the test ends.
func newRuntime(t *testing.T) *array.Runtime {
	t.Helper()
	rt := array.New()
	t.Cleanup(func() {
		rep := rt.Teardown()
		require.False(t, rep.Leaked(), "outstanding after teardown: %d", rep.Outstanding)
	})

	return rt
}

// MustReals allocates a Real rows×cols array holding vals.
func MustReals(t *testing.T, rt *array.Runtime, rows, cols int, vals ...float64) array.Handle {
	t.Helper()
	h, err := rt.FromReals(rows, cols, vals)
	require.NoError(t, err)

	return h
}

// MustInts allocates an Integer rows×cols array holding vals.
func MustInts(t *testing.T, rt *array.Runtime, rows, cols int, vals ...int) array.Handle {
	t.Helper()
	h, err := rt.FromInts(rows, cols, vals)
	require.NoError(t, err)

	return h
}

// RealsOf returns a copy of the Real buffer of h.
func RealsOf(t *testing.T, rt *array.Runtime, h array.Handle) []float64 {
	t.Helper()
	vals, err := rt.Reals(h)
	require.NoError(t, err)

	return append([]float64(nil), vals...)
}

// IntsOf returns a copy of the Integer buffer of h.
func IntsOf(t *testing.T, rt *array.Runtime, h array.Handle) []int {
	t.Helper()
	vals, err := rt.Ints(h)
	require.NoError(t, err)

	return append([]int(nil), vals...)
}
