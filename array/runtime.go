// SPDX-License-Identifier: MIT

package array

import (
	"fmt"
	"log/slog"

	"github.com/hans-elliott99/statql/arena"
)

// Handle addresses an array owned by a Runtime.
type Handle = arena.Handle

// Runtime owns an arena of arrays and implements every array operation.
type Runtime struct {
	mem *arena.Arena[*Array]
	log *slog.Logger
}

// New returns a Runtime with an empty arena.
func New(opts ...Option) *Runtime {
	o := gatherOptions(opts...)

	return &Runtime{
		mem: arena.New[*Array](arena.WithLogger(o.logger)),
		log: o.logger,
	}
}

// get resolves h, wrapping a stale handle with the operation tag.
func (rt *Runtime) get(tag string, h Handle) (*Array, error) {
	a, err := rt.mem.Get(h)
	if err != nil {
		return nil, arrayErrorf(tag, fmt.Errorf("%v: %w", h, err))
	}

	return a, nil
}

// adopt appends a fully built array to the arena and accounts its storage.
func (rt *Runtime) adopt(a *Array) Handle {
	h := rt.mem.Append(a)
	if a.data != nil {
		rt.mem.Track(a.data.allocs())
	}
	rt.log.Debug("array alloc",
		slog.String("handle", h.String()),
		slog.String("variant", a.variant().String()),
		slog.Int("rows", a.rows),
		slog.Int("cols", a.cols))

	return h
}

// reissue retires h after an in-place variant change.
func (rt *Runtime) reissue(h Handle, from, to Variant) (Handle, error) {
	h2, err := rt.mem.Reissue(h)
	if err != nil {
		return Handle{}, err
	}
	rt.log.Debug("array variant changed",
		slog.String("old", h.String()),
		slog.String("new", h2.String()),
		slog.String("from", from.String()),
		slog.String("to", to.String()))

	return h2, nil
}

// Alloc allocates a rows×cols array of variant v.
//
// Implementation:
//   - Stage 1: Validate the shape (rows, cols >= 1, rows*cols fits an int).
//   - Stage 2: Allocate zeroed storage: Integer and Real are fully
//     populated, Text slots start unassigned.
//   - Stage 3: Append the array to the arena and account the node plus
//     its buffer as two raw allocations.
//
// Errors:
//   - ErrBadShape when rows or cols < 1.
//   - ErrVariant when v is Empty or unknown.
//
// Complexity:
//   - Time O(rows*cols), Space O(rows*cols).
func (rt *Runtime) Alloc(v Variant, rows, cols int) (Handle, error) {
	if err := checkShape(rows, cols); err != nil {
		return Handle{}, arrayErrorf(opAlloc, err)
	}
	data, err := newStorage(v, rows*cols)
	if err != nil {
		return Handle{}, arrayErrorf(opAlloc, err)
	}

	return rt.adopt(&Array{rows: rows, cols: cols, data: data}), nil
}

// AllocRow allocates a 1×n array.
func (rt *Runtime) AllocRow(v Variant, n int) (Handle, error) { return rt.Alloc(v, 1, n) }

// FromInts allocates an Integer rows×cols array holding vals (row-major).
func (rt *Runtime) FromInts(rows, cols int, vals []int) (Handle, error) {
	if err := checkShape(rows, cols); err != nil {
		return Handle{}, arrayErrorf(opFrom, err)
	}
	if len(vals) != rows*cols {
		return Handle{}, arrayErrorf(opFrom, ErrLengthMismatch)
	}

	return rt.adopt(&Array{rows: rows, cols: cols, data: append(intStore(nil), vals...)}), nil
}

// FromReals allocates a Real rows×cols array holding vals (row-major).
func (rt *Runtime) FromReals(rows, cols int, vals []float64) (Handle, error) {
	if err := checkShape(rows, cols); err != nil {
		return Handle{}, arrayErrorf(opFrom, err)
	}
	if len(vals) != rows*cols {
		return Handle{}, arrayErrorf(opFrom, ErrLengthMismatch)
	}

	return rt.adopt(&Array{rows: rows, cols: cols, data: append(realStore(nil), vals...)}), nil
}

// FromTexts allocates a Text rows×cols array with every slot assigned.
func (rt *Runtime) FromTexts(rows, cols int, vals []string) (Handle, error) {
	if err := checkShape(rows, cols); err != nil {
		return Handle{}, arrayErrorf(opFrom, err)
	}
	if len(vals) != rows*cols {
		return Handle{}, arrayErrorf(opFrom, ErrLengthMismatch)
	}
	ts := &textStore{vals: make([]string, len(vals)), set: make([]bool, len(vals))}
	for i, s := range vals {
		ts.assign(i, s)
	}

	return rt.adopt(&Array{rows: rows, cols: cols, data: ts}), nil
}

// Release frees the array addressed by h. Releasing the zero Handle is a no-op.
func (rt *Runtime) Release(h Handle) error {
	if err := rt.mem.Remove(h); err != nil {
		return arrayErrorf(opRelease, fmt.Errorf("%v: %w", h, err))
	}
	if !h.IsZero() {
		rt.log.Debug("array release", slog.String("handle", h.String()))
	}

	return nil
}

// ReleaseAll releases every handle, returning the first error encountered.
func (rt *Runtime) ReleaseAll(hs ...Handle) error {
	var first error
	for _, h := range hs {
		if err := rt.Release(h); err != nil && first == nil {
			first = err
		}
	}

	return first
}

// Teardown releases every live array and reports the final arena length and
// outstanding raw allocations. A non-zero outstanding count is logged as a leak.
func (rt *Runtime) Teardown() arena.Report { return rt.mem.Teardown() }

// Metrics returns a snapshot of the arena statistics.
func (rt *Runtime) Metrics() arena.Metrics { return rt.mem.Metrics() }

// Live returns the number of live arrays.
func (rt *Runtime) Live() int { return rt.mem.Len() }

// Variant returns the variant of h.
func (rt *Runtime) Variant(h Handle) (Variant, error) {
	a, err := rt.get(opGet, h)
	if err != nil {
		return Empty, err
	}

	return a.variant(), nil
}

// Dims returns the shape of h.
func (rt *Runtime) Dims(h Handle) (rows, cols int, err error) {
	a, err := rt.get(opGet, h)
	if err != nil {
		return 0, 0, err
	}

	return a.rows, a.cols, nil
}

// Len returns the number of populated elements of h (for Text, the number
// of assigned slots).
func (rt *Runtime) Len(h Handle) (int, error) {
	a, err := rt.get(opGet, h)
	if err != nil || a.data == nil {
		return 0, err
	}

	return a.data.populated(), nil
}

// Cap returns the number of storage slots of h.
func (rt *Runtime) Cap(h Handle) (int, error) {
	a, err := rt.get(opGet, h)
	if err != nil || a.data == nil {
		return 0, err
	}

	return a.data.capacity(), nil
}

// IsMatrix reports whether h has more than one row or more than one column.
func (rt *Runtime) IsMatrix(h Handle) (bool, error) {
	a, err := rt.get(opGet, h)
	if err != nil {
		return false, err
	}

	return a.data != nil && (a.rows > 1 || a.cols > 1), nil
}

// Resize changes the number of storage slots of h to n and reshapes it to 1×n.
//
// Implementation:
//   - Integer/Real: grows with zeros or truncates; populated == capacity == n.
//   - Text: shrinking frees trailing assigned strings from the highest index
//     down to n first; growing adds unassigned slots.
//   - n == capacity is a no-op (shape kept).
//   - n == 0 drops all storage; the array stays alive as Empty and can be
//     reused with Realloc.
//
// Use Reshape afterwards to restore a matrix shape.
//
// Errors:
//   - ErrBadShape when n < 0.
//   - ErrEmpty when growing an Empty array.
//   - arena.ErrStaleHandle, arena.ErrForeignHandle for unusable handles.
//
// Complexity:
//   - Time O(max(n, capacity)), Space O(n).
func (rt *Runtime) Resize(h Handle, n int) error {
	a, err := rt.get(opResize, h)
	if err != nil {
		return err
	}
	if n < 0 {
		return arrayErrorf(opResize, fmtShape(1, n))
	}
	if a.data == nil {
		if n == 0 {
			return nil
		}
		return arrayErrorf(opResize, ErrEmpty)
	}
	if n == a.data.capacity() {
		return nil
	}
	if n == 0 {
		rt.mem.Track(-a.data.allocs())
		a.data = nil
		a.rows, a.cols = 0, 0
		return nil
	}

	switch d := a.data.(type) {
	case intStore:
		next := make(intStore, n)
		copy(next, d)
		a.data = next
	case realStore:
		next := make(realStore, n)
		copy(next, d)
		a.data = next
	case *textStore:
		for i := len(d.vals) - 1; i >= n; i-- {
			if d.set[i] {
				d.vals[i], d.set[i] = "", false
				d.n--
				rt.mem.Track(-1)
			}
		}
		vals := make([]string, n)
		set := make([]bool, n)
		copy(vals, d.vals)
		copy(set, d.set)
		d.vals, d.set = vals, set
	}
	a.rows, a.cols = 1, n

	return nil
}

// Reshape reinterprets h as rows×cols. The element count must not change.
func (rt *Runtime) Reshape(h Handle, rows, cols int) error {
	a, err := rt.get(opReshape, h)
	if err != nil {
		return err
	}
	if err = checkShape(rows, cols); err != nil {
		return arrayErrorf(opReshape, err)
	}
	if a.data == nil {
		return arrayErrorf(opReshape, ErrEmpty)
	}
	if rows*cols != a.data.capacity() {
		return arrayErrorf(opReshape, fmt.Errorf("%dx%d from %d elements: %w",
			rows, cols, a.data.capacity(), ErrDimensionMismatch))
	}
	a.rows, a.cols = rows, cols

	return nil
}

// Realloc gives the live array h fresh zeroed storage of variant v and shape
// rows×cols, discarding its contents. It works on Empty arrays too.
// If the variant changes, h is retired and the returned Handle must be used.
func (rt *Runtime) Realloc(h Handle, v Variant, rows, cols int) (Handle, error) {
	a, err := rt.get(opRealloc, h)
	if err != nil {
		return Handle{}, err
	}
	if err = checkShape(rows, cols); err != nil {
		return Handle{}, arrayErrorf(opRealloc, err)
	}
	data, err := newStorage(v, rows*cols)
	if err != nil {
		return Handle{}, arrayErrorf(opRealloc, err)
	}
	from := a.variant()
	if a.data != nil {
		rt.mem.Track(-a.data.allocs())
	}
	a.data, a.rows, a.cols = data, rows, cols
	rt.mem.Track(data.allocs())
	if from == v {
		return h, nil
	}

	return rt.reissue(h, from, v)
}

// Copy returns a deep copy of h.
//
// Implementation:
//   - Numeric buffers are cloned as a whole.
//   - Text strings are duplicated one by one and the assigned bitmap is
//     copied, so the copy shares nothing with the source and unassigned
//     slots stay unassigned.
//
// Errors:
//   - ErrEmpty for an Empty source.
//   - arena.ErrStaleHandle, arena.ErrForeignHandle for unusable handles.
//
// Complexity:
//   - Time O(capacity), Space O(capacity) plus the copied strings.
func (rt *Runtime) Copy(h Handle) (Handle, error) {
	a, err := rt.get(opCopy, h)
	if err != nil {
		return Handle{}, err
	}
	if a.data == nil {
		return Handle{}, arrayErrorf(opCopy, ErrEmpty)
	}

	return rt.adopt(&Array{rows: a.rows, cols: a.cols, data: a.data.clone()}), nil
}

// SameShape allocates a fresh array of variant v with the shape of h.
func (rt *Runtime) SameShape(h Handle, v Variant) (Handle, error) {
	a, err := rt.get(opSameShape, h)
	if err != nil {
		return Handle{}, err
	}
	if a.data == nil {
		return Handle{}, arrayErrorf(opSameShape, ErrEmpty)
	}

	return rt.Alloc(v, a.rows, a.cols)
}
