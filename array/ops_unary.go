// SPDX-License-Identifier: MIT

package array

import (
	"fmt"
	"math"
)

// Square returns a new array of the same variant with every element squared.
func (rt *Runtime) Square(h Handle) (Handle, error) {
	a, err := rt.get(opSquare, h)
	if err != nil {
		return Handle{}, err
	}
	switch d := a.data.(type) {
	case intStore:
		out := make(intStore, len(d))
		for i, v := range d {
			out[i] = v * v
		}
		return rt.adopt(&Array{rows: a.rows, cols: a.cols, data: out}), nil
	case realStore:
		out := make(realStore, len(d))
		for i, v := range d {
			out[i] = v * v
		}
		return rt.adopt(&Array{rows: a.rows, cols: a.cols, data: out}), nil
	case nil:
		return Handle{}, arrayErrorf(opSquare, ErrEmpty)
	default:
		return Handle{}, arrayErrorf(opSquare, fmt.Errorf("%s: %w", a.variant(), ErrUnsupportedVariant))
	}
}

// SquareInPlace squares every element of h; the variant is kept.
func (rt *Runtime) SquareInPlace(h Handle) error {
	a, err := rt.get(opSquare, h)
	if err != nil {
		return err
	}
	switch d := a.data.(type) {
	case intStore:
		for i, v := range d {
			d[i] = v * v
		}
	case realStore:
		for i, v := range d {
			d[i] = v * v
		}
	case nil:
		return arrayErrorf(opSquare, ErrEmpty)
	default:
		return arrayErrorf(opSquare, fmt.Errorf("%s: %w", a.variant(), ErrUnsupportedVariant))
	}

	return nil
}

// Sqrt returns a new Real array of element square roots. Negative inputs
// yield NaN.
func (rt *Runtime) Sqrt(h Handle) (Handle, error) { return rt.realMap(opSqrt, h, math.Sqrt, false) }

// SqrtInPlace replaces h with its element square roots, casting to Real
// first. It returns the handle to use for h.
func (rt *Runtime) SqrtInPlace(h Handle) (Handle, error) {
	return rt.realMap(opSqrt, h, math.Sqrt, true)
}

// Reciprocal returns a new Real array of 1/x per element.
func (rt *Runtime) Reciprocal(h Handle) (Handle, error) {
	return rt.realMap(opRecip, h, recip, false)
}

// ReciprocalInPlace replaces h with 1/x per element, casting to Real first.
func (rt *Runtime) ReciprocalInPlace(h Handle) (Handle, error) {
	return rt.realMap(opRecip, h, recip, true)
}

func recip(x float64) float64 { return 1 / x }

// realMap applies fn to every element, producing Real output.
func (rt *Runtime) realMap(tag string, h Handle, fn func(float64) float64, inPlace bool) (Handle, error) {
	a, err := rt.get(tag, h)
	if err != nil {
		return Handle{}, err
	}
	if a.data == nil {
		return Handle{}, arrayErrorf(tag, ErrEmpty)
	}
	at, err := realReader(a.data)
	if err != nil {
		return Handle{}, arrayErrorf(tag, fmt.Errorf("%s: %w", a.variant(), ErrUnsupportedVariant))
	}
	out := make(realStore, a.data.capacity())
	for i := range out {
		out[i] = fn(at(i))
	}
	if !inPlace {
		return rt.adopt(&Array{rows: a.rows, cols: a.cols, data: out}), nil
	}
	from := a.variant()
	a.data = out
	if from == Real {
		return h, nil
	}

	return rt.reissue(h, from, Real)
}
