// SPDX-License-Identifier: MIT

// Package linalg builds the matrix layer of statql on top of array.Runtime:
// matrix multiply, transpose, cross-products, Gram-Schmidt QR, triangular
// solves and inversion, and ordinary least squares.
//
// Every function takes the Runtime that owns its operands and returns
// Handles into the same Runtime. Results are always Real; Integer operands
// are read through widening. Temporaries are released before returning,
// on success and on error alike.
//
// No pivoting or singularity checks are performed: a (near-)zero diagonal
// of R shows up as Inf or NaN in the results rather than as an error.
package linalg
