// SPDX-License-Identifier: MIT

// Package array implements a small tagged-array runtime in the style of
// statistical-language vectors.
//
// Every array carries one element variant (Integer, Real or Text) and a
// two-dimensional shape stored row-major in a flat buffer
// (offset = row*cols + col). A 1×1 array doubles as a scalar, a 1×n or n×1
// array as a vector, anything larger as a matrix.
//
// Arrays live in an arena owned by a Runtime and are addressed through
// generation-checked Handles. Release frees one array, Teardown frees them
// all and reports leaks.
//
// Numeric operators come in pairs: an allocating form that leaves its operands
// untouched, and an InPlace form that writes into its first operand. When an
// in-place operation has to change the first operand's variant (for example
// Integer + Real), the operand is cast to Real first and the returned Handle
// replaces the one passed in: the old Handle is stale from then on.
//
// Errors are package sentinels wrapped with the failing operation's name;
// match them with errors.Is.
//
// A Runtime is not safe for concurrent use.
package array
