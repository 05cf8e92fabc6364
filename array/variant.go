// SPDX-License-Identifier: MIT

package array

// Variant is the element kind carried by an array.
type Variant uint8

const (
	// Integer arrays hold int elements.
	Integer Variant = iota
	// Real arrays hold float64 elements.
	Real
	// Text arrays hold owned strings; slots start unassigned.
	Text
	// Empty marks an array without storage (after Resize to 0).
	Empty
)

// String implements fmt.Stringer.
func (v Variant) String() string {
	switch v {
	case Integer:
		return "INTEGER"
	case Real:
		return "REAL"
	case Text:
		return "TEXT"
	case Empty:
		return "EMPTY"
	default:
		return "UNKNOWN"
	}
}

// Numeric reports whether v is Integer or Real.
func (v Variant) Numeric() bool { return v == Integer || v == Real }

// promote returns the result variant of a binary numeric operation:
// Integer only when both operands are Integer.
func promote(a, b Variant) Variant {
	if a == Integer && b == Integer {
		return Integer
	}

	return Real
}
