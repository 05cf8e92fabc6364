// SPDX-License-Identifier: MIT

// Package table reads a delimited text table into typed statql arrays.
//
// Each column becomes an nrows×1 array whose variant is inferred from its
// cells: Integer when every present cell is an integer, Real when every
// present cell is numeric, Text otherwise. Empty, NA and NULL cells are
// missing: NaN in a Real column (an Integer column with a missing cell is
// read as Real), an unassigned slot in a Text column.
//
// The header is kept in two single-row arrays: Names (Text) and Types
// (Integer, one array.Variant code per column).
package table
