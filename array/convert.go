// SPDX-License-Identifier: MIT

package array

import (
	"fmt"

	"fortio.org/safecast"
)

// truncInt narrows x to int, truncating toward zero.
func truncInt(x float64) (int, error) {
	n, err := safecast.Truncate[int](x)
	if err != nil {
		return 0, fmt.Errorf("%g: %w", x, ErrNotRepresentable)
	}

	return n, nil
}

// truncInts narrows every element of src into a fresh buffer, failing before
// anything is committed.
func truncInts(n int, at func(int) float64) (intStore, error) {
	out := make(intStore, n)
	for i := range out {
		v, err := truncInt(at(i))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}

	return out, nil
}

func fmtIndex(row, col, rows, cols int) error {
	return fmt.Errorf("(%d,%d) outside %dx%d: %w", row, col, rows, cols, ErrOutOfRange)
}

func fmtShape(rows, cols int) error {
	return fmt.Errorf("%dx%d: %w", rows, cols, ErrBadShape)
}
