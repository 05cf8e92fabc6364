// SPDX-License-Identifier: MIT

package array

import (
	"fmt"
	"math"

	"fortio.org/safecast"
)

type scalarKind uint8

const (
	scalarAdd scalarKind = iota
	scalarMul
	scalarDiv
)

func (k scalarKind) tag() string {
	switch k {
	case scalarAdd:
		return opAddNum
	case scalarMul:
		return opMulNum
	default:
		return opDivNum
	}
}

func (k scalarKind) apply(v, x float64) float64 {
	switch k {
	case scalarAdd:
		return v + x
	case scalarMul:
		return v * x
	default:
		return v / x
	}
}

func (k scalarKind) ints(v, n int) int {
	switch k {
	case scalarAdd:
		return v + n
	case scalarMul:
		return v * n
	default:
		return v / n
	}
}

// wholeInt reports whether x is an integral value that fits an int.
func wholeInt(x float64) (int, bool) {
	if x != math.Trunc(x) {
		return 0, false
	}
	n, err := safecast.Truncate[int](x)

	return n, err == nil
}

// AddNum returns a new array with x added to every element.
//
// Implementation:
//   - Real arrays: plain float64 arithmetic.
//   - Integer arrays stay Integer. A whole x that fits an int is applied
//     with integer arithmetic, exact for every int. A fractional x goes
//     through float64 and each result is truncated toward zero.
//
// Errors:
//   - ErrNotRepresentable when a truncated result does not fit an int.
//   - ErrUnsupportedVariant for Text, ErrEmpty for Empty arrays.
//
// Complexity:
//   - Time O(n), Space O(n).
func (rt *Runtime) AddNum(h Handle, x float64) (Handle, error) {
	return rt.scalar(scalarAdd, h, x, false)
}

// MulNum returns a new array with every element multiplied by x.
func (rt *Runtime) MulNum(h Handle, x float64) (Handle, error) {
	return rt.scalar(scalarMul, h, x, false)
}

// DivNum returns a new array with every element divided by x.
// Dividing an Integer array by zero is ErrDivideByZero.
func (rt *Runtime) DivNum(h Handle, x float64) (Handle, error) {
	return rt.scalar(scalarDiv, h, x, false)
}

// AddNumInPlace adds x to every element of h. The variant never changes.
func (rt *Runtime) AddNumInPlace(h Handle, x float64) error {
	_, err := rt.scalar(scalarAdd, h, x, true)
	return err
}

// MulNumInPlace multiplies every element of h by x.
func (rt *Runtime) MulNumInPlace(h Handle, x float64) error {
	_, err := rt.scalar(scalarMul, h, x, true)
	return err
}

// DivNumInPlace divides every element of h by x.
func (rt *Runtime) DivNumInPlace(h Handle, x float64) error {
	_, err := rt.scalar(scalarDiv, h, x, true)
	return err
}

func (rt *Runtime) scalar(kind scalarKind, h Handle, x float64, inPlace bool) (Handle, error) {
	tag := kind.tag()
	a, err := rt.get(tag, h)
	if err != nil {
		return Handle{}, err
	}

	var next storage
	switch d := a.data.(type) {
	case intStore:
		if kind == scalarDiv && x == 0 {
			return Handle{}, arrayErrorf(tag, ErrDivideByZero)
		}
		if n, ok := wholeInt(x); ok {
			ints := d
			if !inPlace {
				ints = make(intStore, len(d))
			}
			for i, v := range d {
				ints[i] = kind.ints(v, n)
			}
			next = ints
			break
		}
		ints, err := truncInts(len(d), func(i int) float64 { return kind.apply(float64(d[i]), x) })
		if err != nil {
			return Handle{}, arrayErrorf(tag, err)
		}
		next = ints
	case realStore:
		vals := d
		if !inPlace {
			vals = make(realStore, len(d))
		}
		for i, v := range d {
			vals[i] = kind.apply(v, x)
		}
		next = vals
	case nil:
		return Handle{}, arrayErrorf(tag, ErrEmpty)
	default:
		return Handle{}, arrayErrorf(tag, fmt.Errorf("%s: %w", a.variant(), ErrUnsupportedVariant))
	}

	if inPlace {
		a.data = next
		return h, nil
	}

	return rt.adopt(&Array{rows: a.rows, cols: a.cols, data: next}), nil
}
