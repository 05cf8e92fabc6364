// SPDX-License-Identifier: MIT

package array

import "fmt"

// element resolves h and (row, col) to the array and its flat offset.
func (rt *Runtime) element(tag string, h Handle, row, col int) (*Array, int, error) {
	a, err := rt.get(tag, h)
	if err != nil {
		return nil, 0, err
	}
	i, err := a.index(row, col)
	if err != nil {
		return nil, 0, arrayErrorf(tag, err)
	}

	return a, i, nil
}

// Int returns element (row, col) of an Integer array.
func (rt *Runtime) Int(h Handle, row, col int) (int, error) {
	a, i, err := rt.element(opGet, h, row, col)
	if err != nil {
		return 0, err
	}
	d, ok := a.data.(intStore)
	if !ok {
		return 0, arrayErrorf(opGet, variantErr(a.variant(), Integer))
	}

	return d[i], nil
}

// SetInt stores v at (row, col) of an Integer array.
func (rt *Runtime) SetInt(h Handle, row, col, v int) error {
	a, i, err := rt.element(opSet, h, row, col)
	if err != nil {
		return err
	}
	d, ok := a.data.(intStore)
	if !ok {
		return arrayErrorf(opSet, variantErr(a.variant(), Integer))
	}
	d[i] = v

	return nil
}

// Real returns element (row, col) of a Real array.
func (rt *Runtime) Real(h Handle, row, col int) (float64, error) {
	a, i, err := rt.element(opGet, h, row, col)
	if err != nil {
		return 0, err
	}
	d, ok := a.data.(realStore)
	if !ok {
		return 0, arrayErrorf(opGet, variantErr(a.variant(), Real))
	}

	return d[i], nil
}

// SetReal stores v at (row, col) of a Real array.
func (rt *Runtime) SetReal(h Handle, row, col int, v float64) error {
	a, i, err := rt.element(opSet, h, row, col)
	if err != nil {
		return err
	}
	d, ok := a.data.(realStore)
	if !ok {
		return arrayErrorf(opSet, variantErr(a.variant(), Real))
	}
	d[i] = v

	return nil
}

// Text returns element (row, col) of a Text array. Reading a slot that was
// never assigned is ErrUnset.
func (rt *Runtime) Text(h Handle, row, col int) (string, error) {
	a, i, err := rt.element(opGet, h, row, col)
	if err != nil {
		return "", err
	}
	d, ok := a.data.(*textStore)
	if !ok {
		return "", arrayErrorf(opGet, variantErr(a.variant(), Text))
	}
	if !d.set[i] {
		return "", arrayErrorf(opGet, fmt.Errorf("(%d,%d): %w", row, col, ErrUnset))
	}

	return d.vals[i], nil
}

// SetText stores a private copy of v at (row, col) of a Text array.
// Assigning a fresh slot bumps the populated count; reassigning replaces.
func (rt *Runtime) SetText(h Handle, row, col int, v string) error {
	a, i, err := rt.element(opSet, h, row, col)
	if err != nil {
		return err
	}
	d, ok := a.data.(*textStore)
	if !ok {
		return arrayErrorf(opSet, variantErr(a.variant(), Text))
	}
	if d.assign(i, v) {
		rt.mem.Track(1)
	}

	return nil
}

// AsInt reads a numeric element as int. Real values truncate toward zero.
func (rt *Runtime) AsInt(h Handle, row, col int) (int, error) {
	a, i, err := rt.element(opAsInt, h, row, col)
	if err != nil {
		return 0, err
	}
	switch d := a.data.(type) {
	case intStore:
		return d[i], nil
	case realStore:
		n, err := truncInt(d[i])
		if err != nil {
			return 0, arrayErrorf(opAsInt, err)
		}
		return n, nil
	default:
		return 0, arrayErrorf(opAsInt, ErrUnsupportedVariant)
	}
}

// AsReal reads a numeric element as float64.
func (rt *Runtime) AsReal(h Handle, row, col int) (float64, error) {
	a, i, err := rt.element(opAsReal, h, row, col)
	if err != nil {
		return 0, err
	}
	switch d := a.data.(type) {
	case intStore:
		return float64(d[i]), nil
	case realStore:
		return d[i], nil
	default:
		return 0, arrayErrorf(opAsReal, ErrUnsupportedVariant)
	}
}

// Ints returns the live row-major buffer of an Integer array. Writes through
// the slice are visible to the array until its storage changes.
func (rt *Runtime) Ints(h Handle) ([]int, error) {
	a, err := rt.get(opGet, h)
	if err != nil {
		return nil, err
	}
	d, ok := a.data.(intStore)
	if !ok {
		return nil, arrayErrorf(opGet, variantErr(a.variant(), Integer))
	}

	return d, nil
}

// Reals returns the live row-major buffer of a Real array.
func (rt *Runtime) Reals(h Handle) ([]float64, error) {
	a, err := rt.get(opGet, h)
	if err != nil {
		return nil, err
	}
	d, ok := a.data.(realStore)
	if !ok {
		return nil, arrayErrorf(opGet, variantErr(a.variant(), Real))
	}

	return d, nil
}

// CastToInteger converts h to Integer in place.
//
// Implementation:
//   - Stage 1: Integer input is returned unchanged with the same Handle.
//   - Stage 2: Real input is narrowed into a fresh buffer, truncating toward
//     zero; the old buffer is dropped only after every element converted.
//   - Stage 3: The node's handle is reissued: h turns stale and the
//     returned Handle must be used.
//
// Errors:
//   - ErrNotRepresentable for NaN, ±Inf or out-of-range elements (h is
//     left intact).
//   - ErrUnsupportedVariant for Text, ErrEmpty for Empty arrays.
//
// Complexity:
//   - Time O(n), Space O(n).
func (rt *Runtime) CastToInteger(h Handle) (Handle, error) {
	a, err := rt.get(opCastInt, h)
	if err != nil {
		return Handle{}, err
	}
	switch d := a.data.(type) {
	case intStore:
		return h, nil
	case realStore:
		next, err := truncInts(len(d), func(i int) float64 { return d[i] })
		if err != nil {
			return Handle{}, arrayErrorf(opCastInt, err)
		}
		a.data = next
		return rt.reissue(h, Real, Integer)
	case nil:
		return Handle{}, arrayErrorf(opCastInt, ErrEmpty)
	default:
		return Handle{}, arrayErrorf(opCastInt, ErrUnsupportedVariant)
	}
}

// CastToReal converts h to Real in place by widening.
//
// Implementation:
//   - Real input is returned unchanged with the same Handle.
//   - Integer input is widened into a fresh buffer and the handle is
//     reissued: h turns stale and the returned Handle must be used.
//
// Errors:
//   - ErrUnsupportedVariant for Text, ErrEmpty for Empty arrays.
//
// Complexity:
//   - Time O(n), Space O(n).
func (rt *Runtime) CastToReal(h Handle) (Handle, error) {
	a, err := rt.get(opCastReal, h)
	if err != nil {
		return Handle{}, err
	}
	switch d := a.data.(type) {
	case realStore:
		return h, nil
	case intStore:
		a.data = widen(d)
		return rt.reissue(h, Integer, Real)
	case nil:
		return Handle{}, arrayErrorf(opCastReal, ErrEmpty)
	default:
		return Handle{}, arrayErrorf(opCastReal, ErrUnsupportedVariant)
	}
}

func widen(d intStore) realStore {
	out := make(realStore, len(d))
	for i, v := range d {
		out[i] = float64(v)
	}

	return out
}
