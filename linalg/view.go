// SPDX-License-Identifier: MIT

package linalg

import (
	"fmt"

	"github.com/hans-elliott99/statql/array"
)

// view is a read-only widening window over a numeric array.
type view struct {
	rows, cols int
	at         func(i int) float64 // flat row-major index
}

func (v view) get(i, j int) float64 { return v.at(i*v.cols + j) }

func (v view) len() int { return v.rows * v.cols }

// numeric resolves h into a view. Text and Empty arrays are rejected.
func numeric(rt *array.Runtime, h array.Handle) (view, error) {
	rows, cols, err := rt.Dims(h)
	if err != nil {
		return view{}, err
	}
	variant, err := rt.Variant(h)
	if err != nil {
		return view{}, err
	}
	switch variant {
	case array.Integer:
		vals, err := rt.Ints(h)
		if err != nil {
			return view{}, err
		}
		return view{rows: rows, cols: cols, at: func(i int) float64 { return float64(vals[i]) }}, nil
	case array.Real:
		vals, err := rt.Reals(h)
		if err != nil {
			return view{}, err
		}
		return view{rows: rows, cols: cols, at: func(i int) float64 { return vals[i] }}, nil
	case array.Empty:
		return view{}, array.ErrEmpty
	default:
		return view{}, fmt.Errorf("%s: %w", variant, array.ErrUnsupportedVariant)
	}
}

// scratch collects temporaries and releases them together.
type scratch struct {
	rt *array.Runtime
	hs []array.Handle
}

func (s *scratch) add(h array.Handle) array.Handle {
	s.hs = append(s.hs, h)
	return h
}

// swap records that old was reissued as h.
func (s *scratch) swap(old, h array.Handle) array.Handle {
	for i := range s.hs {
		if s.hs[i] == old {
			s.hs[i] = h
		}
	}

	return h
}

// forget drops h from the set, handing ownership to the caller.
func (s *scratch) forget(h array.Handle) {
	for i := range s.hs {
		if s.hs[i] == h {
			s.hs[i] = array.Handle{}
		}
	}
}

func (s *scratch) release() {
	_ = s.rt.ReleaseAll(s.hs...)
	s.hs = s.hs[:0]
}
