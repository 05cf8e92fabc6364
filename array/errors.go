// SPDX-License-Identifier: MIT

package array

import (
	"errors"
	"fmt"
)

var (
	// ErrBadShape is returned when rows or cols is not positive, or a
	// requested element count is negative.
	ErrBadShape = errors.New("array: invalid shape")

	// ErrOutOfRange indicates a row or column index outside the array.
	ErrOutOfRange = errors.New("array: index out of range")

	// ErrVariant indicates an array of the wrong variant for the accessor,
	// e.g. SetInt on a Real array.
	ErrVariant = errors.New("array: wrong variant")

	// ErrUnsupportedVariant indicates a variant the operation is not defined
	// for, e.g. Text passed to a numeric operator.
	ErrUnsupportedVariant = errors.New("array: unsupported variant")

	// ErrLengthMismatch indicates operands with different element counts.
	ErrLengthMismatch = errors.New("array: lengths are not compatible")

	// ErrDimensionMismatch indicates incompatible shapes, e.g. a row of the
	// wrong width passed to SetRow.
	ErrDimensionMismatch = errors.New("array: dimension mismatch")

	// ErrUnset is returned when reading a Text slot that was never assigned.
	ErrUnset = errors.New("array: element not set")

	// ErrEmpty is returned for operations on an array without storage.
	ErrEmpty = errors.New("array: array is empty")

	// ErrDivideByZero is returned by integer division by zero.
	ErrDivideByZero = errors.New("array: integer division by zero")

	// ErrNotRepresentable is returned when a real value cannot be narrowed to
	// an integer (NaN, ±Inf or out of range).
	ErrNotRepresentable = errors.New("array: value not representable as integer")

	// ErrNilFunc is returned when a nil generator is passed to FillFunc.
	ErrNilFunc = errors.New("array: nil generator")
)

// Operation tags for error wrapping.
const (
	opAlloc     = "Alloc"
	opFrom      = "From"
	opRelease   = "Release"
	opResize    = "Resize"
	opReshape   = "Reshape"
	opRealloc   = "Realloc"
	opCopy      = "Copy"
	opSameShape = "SameShape"
	opGet       = "Get"
	opSet       = "Set"
	opAsInt     = "AsInt"
	opAsReal    = "AsReal"
	opCastInt   = "CastToInteger"
	opCastReal  = "CastToReal"
	opFill      = "Fill"
	opEqual     = "Equal"
	opRow       = "Row"
	opCol       = "Col"
	opSetRow    = "SetRow"
	opSetCol    = "SetCol"
	opFormat    = "Format"
	opAdd       = "Add"
	opSubtract  = "Subtract"
	opMultiply  = "Multiply"
	opDivide    = "Divide"
	opAddNum    = "AddNum"
	opMulNum    = "MulNum"
	opDivNum    = "DivNum"
	opSquare    = "Square"
	opSqrt      = "Sqrt"
	opRecip     = "Reciprocal"
)

// arrayErrorf wraps err with an operation tag. err must be non-nil.
func arrayErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// variantErr describes a variant mismatch while keeping ErrVariant matchable.
func variantErr(got, want Variant) error {
	return fmt.Errorf("array is %s, want %s: %w", got, want, ErrVariant)
}
