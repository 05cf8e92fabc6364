// SPDX-License-Identifier: MIT

package table

import (
	"errors"
	"fmt"
)

var (
	// ErrNoHeader is returned for input without a header record.
	ErrNoHeader = errors.New("table: missing header")

	// ErrRaggedRow indicates a record whose field count differs from the header.
	ErrRaggedRow = errors.New("table: record has wrong number of fields")

	// ErrUnknownColumn is returned when a column name is not in the header.
	ErrUnknownColumn = errors.New("table: unknown column")

	// ErrNotNumeric is returned when a Text column is used where numbers are needed.
	ErrNotNumeric = errors.New("table: column is not numeric")

	// ErrNotLoaded is returned by accessors before Init succeeded.
	ErrNotLoaded = errors.New("table: not initialized")
)

const (
	opInit   = "Init"
	opColumn = "Column"
	opDesign = "Design"
	opHead   = "Head"
)

func tableErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
