// SPDX-License-Identifier: MIT

package array_test

import (
	"math/rand"
	"testing"

	"github.com/hans-elliott99/statql/array"
)

const benchN = 4096

func benchPair(b *testing.B) (*array.Runtime, array.Handle, array.Handle) {
	b.Helper()
	rng := rand.New(rand.NewSource(42))
	rt := array.New()
	x, _ := rt.Alloc(array.Real, 1, benchN)
	y, _ := rt.Alloc(array.Real, 1, benchN)
	_ = rt.FillFunc(x, rng.Float64)
	_ = rt.FillFunc(y, rng.Float64)
	b.Cleanup(func() { rt.Teardown() })

	return rt, x, y
}

func BenchmarkAdd_Allocating(b *testing.B) {
	rt, x, y := benchPair(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h, err := rt.Add(x, y)
		if err != nil {
			b.Fatal(err)
		}
		_ = rt.Release(h)
	}
}

func BenchmarkAdd_InPlace(b *testing.B) {
	rt, x, y := benchPair(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := rt.AddInPlace(x, y); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCopy_Text(b *testing.B) {
	rt := array.New()
	b.Cleanup(func() { rt.Teardown() })
	h, _ := rt.Alloc(array.Text, 1, 256)
	_ = rt.FillText(h, "statql")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c, err := rt.Copy(h)
		if err != nil {
			b.Fatal(err)
		}
		_ = rt.Release(c)
	}
}
