// SPDX-License-Identifier: MIT

package linalg_test

import (
	"fmt"

	"github.com/hans-elliott99/statql/array"
	"github.com/hans-elliott99/statql/linalg"
)

func ExampleMatMul() {
	rt := array.New()
	defer rt.Teardown()

	x, _ := rt.FromReals(2, 2, []float64{1, 2, 3, 4})
	p, err := linalg.MatMul(rt, x, x)
	if err != nil {
		fmt.Println(err)
		return
	}
	s, _ := rt.Format(p)
	fmt.Print(s)

	// Output:
	//  7 10
	// 15 22
}

func ExampleLeastSquares() {
	rt := array.New()
	x, _ := rt.FromInts(4, 3, []int{
		1, 2, 3,
		1, 3, 9,
		1, 9, 10,
		1, 4, 5,
	})
	y, _ := rt.FromInts(1, 4, []int{1, 2, 3, 4})

	fit, err := linalg.LeastSquares(rt, x, y)
	if err != nil {
		fmt.Println(err)
		return
	}
	beta, _ := rt.Reals(fit.Coefficients)
	se, _ := rt.Reals(fit.StdErrors)
	for i := range beta {
		fmt.Printf("b%d = %7.4f (se %.4f)\n", i, beta[i], se[i])
	}
	fmt.Printf("sigma = %.4f on %d df\n", fit.Sigma, fit.N-fit.P)

	_ = fit.Release(rt)
	rep := rt.Teardown()
	fmt.Println("leaked:", rep.Leaked())

	// Output:
	// b0 =  1.7615 (se 2.4662)
	// b1 =  0.2487 (se 0.4989)
	// b2 = -0.0564 (se 0.4695)
	// sigma = 1.9249 on 1 df
	// leaked: false
}
