// SPDX-License-Identifier: MIT

package array

import "fmt"

// FillRange writes start + step*i into element i (row-major) of a numeric
// array. The variant is kept: Integer arrays receive truncated values.
func (rt *Runtime) FillRange(h Handle, start, step float64) error {
	return rt.fill(h, func(i int) float64 { return start + step*float64(i) })
}

// FillFunc calls gen once per element in row-major order and stores the
// result. It is the hook for external random generators.
func (rt *Runtime) FillFunc(h Handle, gen func() float64) error {
	if gen == nil {
		return arrayErrorf(opFill, ErrNilFunc)
	}

	return rt.fill(h, func(int) float64 { return gen() })
}

func (rt *Runtime) fill(h Handle, at func(int) float64) error {
	a, err := rt.get(opFill, h)
	if err != nil {
		return err
	}
	switch d := a.data.(type) {
	case intStore:
		ints, err := truncInts(len(d), at)
		if err != nil {
			return arrayErrorf(opFill, err)
		}
		copy(d, ints)
	case realStore:
		for i := range d {
			d[i] = at(i)
		}
	case nil:
		return arrayErrorf(opFill, ErrEmpty)
	default:
		return arrayErrorf(opFill, fmt.Errorf("%s: %w", a.variant(), ErrUnsupportedVariant))
	}

	return nil
}

// FillText assigns a private copy of value to every slot of a Text array.
// Slots already assigned are replaced, so populated ends equal to capacity
// no matter how often FillText runs.
func (rt *Runtime) FillText(h Handle, value string) error {
	a, err := rt.get(opFill, h)
	if err != nil {
		return err
	}
	d, ok := a.data.(*textStore)
	if !ok {
		return arrayErrorf(opFill, variantErr(a.variant(), Text))
	}
	added := 0
	for i := range d.vals {
		if d.assign(i, value) {
			added++
		}
	}
	rt.mem.Track(added)

	return nil
}
