// SPDX-License-Identifier: MIT

package array

import (
	"math"
	"strings"
)

// storage is the payload of a non-empty Array: exactly one of intStore,
// realStore or *textStore.
type storage interface {
	variant() Variant
	capacity() int
	populated() int
	allocs() int // raw allocations held: the buffer plus owned strings
	clone() storage
}

type intStore []int

func (s intStore) variant() Variant { return Integer }
func (s intStore) capacity() int    { return len(s) }
func (s intStore) populated() int   { return len(s) }
func (s intStore) allocs() int      { return 1 }
func (s intStore) clone() storage   { return append(intStore(nil), s...) }

type realStore []float64

func (s realStore) variant() Variant { return Real }
func (s realStore) capacity() int    { return len(s) }
func (s realStore) populated() int   { return len(s) }
func (s realStore) allocs() int      { return 1 }
func (s realStore) clone() storage   { return append(realStore(nil), s...) }

// textStore owns one string per assigned slot. set[i] tells whether slot i
// was assigned; n counts assigned slots and never exceeds len(vals).
type textStore struct {
	vals []string
	set  []bool
	n    int
}

func (s *textStore) variant() Variant { return Text }
func (s *textStore) capacity() int    { return len(s.vals) }
func (s *textStore) populated() int   { return s.n }
func (s *textStore) allocs() int      { return 1 + s.n }

func (s *textStore) clone() storage {
	c := &textStore{
		vals: make([]string, len(s.vals)),
		set:  append([]bool(nil), s.set...),
		n:    s.n,
	}
	for i, ok := range s.set {
		if ok {
			c.vals[i] = strings.Clone(s.vals[i])
		}
	}

	return c
}

// assign stores a private copy of v in slot i and reports whether the slot
// was newly populated.
func (s *textStore) assign(i int, v string) bool {
	s.vals[i] = strings.Clone(v)
	if s.set[i] {
		return false
	}
	s.set[i] = true
	s.n++

	return true
}

// newStorage allocates zeroed storage of the given variant for n slots.
func newStorage(v Variant, n int) (storage, error) {
	switch v {
	case Integer:
		return make(intStore, n), nil
	case Real:
		return make(realStore, n), nil
	case Text:
		return &textStore{vals: make([]string, n), set: make([]bool, n)}, nil
	default:
		return nil, variantErr(v, Integer)
	}
}

// Array is one tagged two-dimensional array. Arrays are owned by a Runtime's
// arena and reached through Handles.
type Array struct {
	rows, cols int
	data       storage // nil when Empty
}

// Free implements arena.Resource.
func (a *Array) Free() int {
	if a.data == nil {
		return 0
	}
	n := a.data.allocs()
	a.data = nil
	a.rows, a.cols = 0, 0

	return n
}

func (a *Array) variant() Variant {
	if a.data == nil {
		return Empty
	}

	return a.data.variant()
}

// index bounds-checks (row, col) and returns the flat offset.
func (a *Array) index(row, col int) (int, error) {
	if a.data == nil {
		return 0, ErrEmpty
	}
	if row < 0 || row >= a.rows || col < 0 || col >= a.cols {
		return 0, fmtIndex(row, col, a.rows, a.cols)
	}

	return row*a.cols + col, nil
}

// realReader returns a widening reader over numeric storage.
func realReader(s storage) (func(int) float64, error) {
	switch d := s.(type) {
	case intStore:
		return func(i int) float64 { return float64(d[i]) }, nil
	case realStore:
		return func(i int) float64 { return d[i] }, nil
	case nil:
		return nil, ErrEmpty
	default:
		return nil, variantErr(s.variant(), Real)
	}
}

// checkShape validates rows, cols >= 1 and that rows*cols fits an int.
func checkShape(rows, cols int) error {
	if rows <= 0 || cols <= 0 || rows > math.MaxInt/cols {
		return fmtShape(rows, cols)
	}

	return nil
}
