// SPDX-License-Identifier: MIT

package linalg

import (
	"errors"
	"fmt"
)

// ErrDegreesOfFreedom is returned by LeastSquares when the design matrix has
// no more rows than columns, leaving no residual degrees of freedom.
var ErrDegreesOfFreedom = errors.New("linalg: no residual degrees of freedom")

// Operation tags for error wrapping.
const (
	opMatMul    = "MatMul"
	opTranspose = "Transpose"
	opCrossprod = "Crossprod"
	opQR        = "QR"
	opSolve     = "SolveUpperTriangular"
	opInvert    = "InvertUpperTriangular"
	opLM        = "LeastSquares"
)

// linalgErrorf wraps err with an operation tag. err must be non-nil.
func linalgErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
