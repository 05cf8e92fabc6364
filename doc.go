// SPDX-License-Identifier: MIT

// Package statql is a small numeric array runtime with a linear-algebra
// layer for ordinary least squares, in the spirit of a statistical
// language's vectors and matrices.
//
// The module is organized in layers, leaves first:
//
//	arena/      generation-checked handles, a doubly linked ownership list,
//	            raw-allocation accounting and teardown with leak reporting
//	array/      tagged Integer/Real/Text arrays: allocation, access, casts,
//	            resize, copies, elementwise and scalar operators, fills
//	linalg/     matrix multiply, transpose, cross-products, Gram-Schmidt QR,
//	            triangular solve and inversion, LeastSquares
//	table/      CSV ingestion into typed column arrays and design matrices
//	cmd/statql  command-line front end (lm, simulate)
//
// Quick example:
//
//	rt := array.New()
//	defer rt.Teardown()
//
//	x, _ := rt.FromInts(4, 3, []int{1, 2, 3, 1, 3, 9, 1, 9, 10, 1, 4, 5})
//	y, _ := rt.FromInts(4, 1, []int{1, 2, 3, 4})
//	fit, _ := linalg.LeastSquares(rt, x, y)
//	beta, _ := rt.Reals(fit.Coefficients) // 1.7615, 0.2487, -0.0564
//
// A Runtime and every Handle it issues belong to one goroutine.
package statql
