// SPDX-License-Identifier: MIT

package array

import "fmt"

// binaryKind selects the elementwise operator of binary.
type binaryKind uint8

const (
	kindAdd binaryKind = iota
	kindSub
	kindMul
	kindDiv
)

func (k binaryKind) tag() string {
	switch k {
	case kindAdd:
		return opAdd
	case kindSub:
		return opSubtract
	case kindMul:
		return opMultiply
	default:
		return opDivide
	}
}

func (k binaryKind) ints(x, y int) int {
	switch k {
	case kindAdd:
		return x + y
	case kindSub:
		return x - y
	case kindMul:
		return x * y
	default:
		return x / y
	}
}

func (k binaryKind) reals(x, y float64) float64 {
	switch k {
	case kindAdd:
		return x + y
	case kindSub:
		return x - y
	case kindMul:
		return x * y
	default:
		return x / y
	}
}

// Add returns a new array a+b.
//
// Implementation:
//   - Stage 1: Resolve both operands; both must be numeric and hold the
//     same number of elements (no broadcasting).
//   - Stage 2: Pick the result variant: Integer when both are Integer,
//     Real otherwise, reading Integer operands through widening.
//   - Stage 3: Allocate a result with a's shape and fill it elementwise.
//
// Errors:
//   - ErrUnsupportedVariant for Text operands, ErrEmpty for Empty ones.
//   - ErrLengthMismatch when the element counts differ.
//
// Complexity:
//   - Time O(n), Space O(n).
func (rt *Runtime) Add(a, b Handle) (Handle, error) { return rt.binary(kindAdd, a, b, false) }

// Subtract returns a new array a-b.
func (rt *Runtime) Subtract(a, b Handle) (Handle, error) { return rt.binary(kindSub, a, b, false) }

// Multiply returns a new array holding the elementwise product a*b.
func (rt *Runtime) Multiply(a, b Handle) (Handle, error) { return rt.binary(kindMul, a, b, false) }

// Divide returns a new array a/b.
//
// Both operands must be numeric and hold the same number of elements; no
// broadcasting is done. The result has a's shape and is Integer only when
// both operands are Integer. Integer division truncates toward zero and a
// zero divisor is ErrDivideByZero; Real division follows IEEE 754.
func (rt *Runtime) Divide(a, b Handle) (Handle, error) { return rt.binary(kindDiv, a, b, false) }

// AddInPlace stores a+b into a and returns the handle to use for a.
//
// Implementation:
//   - Same checks as Add, all run before the first write.
//   - Integer+Integer writes into a's buffer; a keeps its Handle.
//   - When b is Real and a is Integer, a is cast to Real and reissued: the
//     Handle passed in turns stale.
//
// Errors: as Add; DivideInPlace adds ErrDivideByZero.
//
// Complexity:
//   - Time O(n), Space O(n) when a Real result is built.
func (rt *Runtime) AddInPlace(a, b Handle) (Handle, error) { return rt.binary(kindAdd, a, b, true) }

// SubtractInPlace stores a-b into a.
func (rt *Runtime) SubtractInPlace(a, b Handle) (Handle, error) {
	return rt.binary(kindSub, a, b, true)
}

// MultiplyInPlace stores a*b into a.
func (rt *Runtime) MultiplyInPlace(a, b Handle) (Handle, error) {
	return rt.binary(kindMul, a, b, true)
}

// DivideInPlace stores a/b into a.
func (rt *Runtime) DivideInPlace(a, b Handle) (Handle, error) {
	return rt.binary(kindDiv, a, b, true)
}

// binary is the shared elementwise routine. Every check runs before the
// first write so a failed call leaves both operands untouched.
func (rt *Runtime) binary(kind binaryKind, ha, hb Handle, inPlace bool) (Handle, error) {
	tag := kind.tag()
	a, err := rt.get(tag, ha)
	if err != nil {
		return Handle{}, err
	}
	b, err := rt.get(tag, hb)
	if err != nil {
		return Handle{}, err
	}
	if a.data == nil || b.data == nil {
		return Handle{}, arrayErrorf(tag, ErrEmpty)
	}
	va, vb := a.variant(), b.variant()
	if !va.Numeric() || !vb.Numeric() {
		return Handle{}, arrayErrorf(tag, fmt.Errorf("%s and %s: %w", va, vb, ErrUnsupportedVariant))
	}
	n := a.data.capacity()
	if m := b.data.capacity(); m != n {
		return Handle{}, arrayErrorf(tag, fmt.Errorf("%d vs %d elements: %w", n, m, ErrLengthMismatch))
	}
	out := promote(va, vb)

	if out == Integer {
		x, y := a.data.(intStore), b.data.(intStore)
		if kind == kindDiv {
			for i, v := range y {
				if v == 0 {
					return Handle{}, arrayErrorf(tag, fmt.Errorf("element %d: %w", i, ErrDivideByZero))
				}
			}
		}
		dst := x
		hr := ha
		if !inPlace {
			dst = make(intStore, n)
		}
		for i := range dst {
			dst[i] = kind.ints(x[i], y[i])
		}
		if !inPlace {
			hr = rt.adopt(&Array{rows: a.rows, cols: a.cols, data: dst})
		}
		return hr, nil
	}

	// Real result: read both sides through widening readers.
	ra, _ := realReader(a.data)
	rb, _ := realReader(b.data)
	vals := make(realStore, n)
	for i := range vals {
		vals[i] = kind.reals(ra(i), rb(i))
	}
	if !inPlace {
		return rt.adopt(&Array{rows: a.rows, cols: a.cols, data: vals}), nil
	}
	a.data = vals
	if va == Real {
		return ha, nil
	}

	return rt.reissue(ha, va, Real)
}
