// SPDX-License-Identifier: MIT

package array

import "fmt"

// Row returns row i of h as a new 1×cols array of the same variant.
// Unassigned Text slots stay unassigned in the copy.
func (rt *Runtime) Row(h Handle, i int) (Handle, error) {
	a, err := rt.get(opRow, h)
	if err != nil {
		return Handle{}, err
	}
	if _, err = a.index(i, 0); err != nil {
		return Handle{}, arrayErrorf(opRow, err)
	}

	return rt.extract(a, 1, a.cols, func(k int) int { return i*a.cols + k })
}

// Col returns column j of h as a new rows×1 array of the same variant.
func (rt *Runtime) Col(h Handle, j int) (Handle, error) {
	a, err := rt.get(opCol, h)
	if err != nil {
		return Handle{}, err
	}
	if _, err = a.index(0, j); err != nil {
		return Handle{}, arrayErrorf(opCol, err)
	}

	return rt.extract(a, a.rows, 1, func(k int) int { return k*a.cols + j })
}

func (rt *Runtime) extract(a *Array, rows, cols int, at func(int) int) (Handle, error) {
	data, _ := newStorage(a.variant(), rows*cols)
	out := &Array{rows: rows, cols: cols, data: data}
	for k := 0; k < rows*cols; k++ {
		copyElem(out.data, k, a.data, at(k))
	}

	return rt.adopt(out), nil
}

// SetRow overwrites row i of h with src, which must be 1×cols. The variants
// must match, except that a Real row accepts an Integer source.
func (rt *Runtime) SetRow(h Handle, i int, src Handle) error {
	a, s, err := rt.replaceable(opSetRow, h, src)
	if err != nil {
		return err
	}
	if _, err = a.index(i, 0); err != nil {
		return arrayErrorf(opSetRow, err)
	}
	if s.rows != 1 || s.cols != a.cols {
		return arrayErrorf(opSetRow, fmt.Errorf("%dx%d into a row of width %d: %w",
			s.rows, s.cols, a.cols, ErrDimensionMismatch))
	}
	for k := 0; k < a.cols; k++ {
		rt.mem.Track(copyElem(a.data, i*a.cols+k, s.data, k))
	}

	return nil
}

// SetCol overwrites column j of h with src, which must be rows×1.
func (rt *Runtime) SetCol(h Handle, j int, src Handle) error {
	a, s, err := rt.replaceable(opSetCol, h, src)
	if err != nil {
		return err
	}
	if _, err = a.index(0, j); err != nil {
		return arrayErrorf(opSetCol, err)
	}
	if s.cols != 1 || s.rows != a.rows {
		return arrayErrorf(opSetCol, fmt.Errorf("%dx%d into a column of height %d: %w",
			s.rows, s.cols, a.rows, ErrDimensionMismatch))
	}
	for k := 0; k < a.rows; k++ {
		rt.mem.Track(copyElem(a.data, k*a.cols+j, s.data, k))
	}

	return nil
}

func (rt *Runtime) replaceable(tag string, h, src Handle) (*Array, *Array, error) {
	a, err := rt.get(tag, h)
	if err != nil {
		return nil, nil, err
	}
	s, err := rt.get(tag, src)
	if err != nil {
		return nil, nil, err
	}
	if a.data == nil || s.data == nil {
		return nil, nil, arrayErrorf(tag, ErrEmpty)
	}
	dv, sv := a.variant(), s.variant()
	if dv != sv && !(dv == Real && sv == Integer) {
		return nil, nil, arrayErrorf(tag, variantErr(sv, dv))
	}

	return a, s, nil
}

// copyElem copies src[si] into dst[di] and returns the change in owned
// strings. Callers guarantee the variants are compatible.
func copyElem(dst storage, di int, src storage, si int) int {
	switch d := dst.(type) {
	case intStore:
		d[di] = src.(intStore)[si]
	case realStore:
		if s, ok := src.(intStore); ok {
			d[di] = float64(s[si])
		} else {
			d[di] = src.(realStore)[si]
		}
	case *textStore:
		s := src.(*textStore)
		if s.set[si] {
			if d.assign(di, s.vals[si]) {
				return 1
			}
			return 0
		}
		if d.set[di] {
			d.vals[di], d.set[di] = "", false
			d.n--
			return -1
		}
	}

	return 0
}
