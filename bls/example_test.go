package bls_test

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/hechtlab/gobifurc/bls"
	"github.com/hechtlab/gobifurc/densesolve"
)

// ExampleBorderingBLS_SolveScalar solves a bordered system with an identity
// Jacobian and a decoupled scalar border: u solves I*u = r directly, and
// v = s/c since the border columns are zero.
func ExampleBorderingBLS_SolveScalar() {
	J := mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	})
	dR := []float64{0, 0, 0}
	dzu := []float64{0, 0, 0}
	dzp := 1.0
	R := []float64{1, 2, 3}
	s := 4.0

	bec, err := bls.NewBorderingBLS(&densesolve.LU{})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	dX, dl, converged, _ := bec.SolveScalar(J, 0, dR, dzu, dzp, R, s, 1, 1)
	fmt.Printf("converged: %v\n", converged)
	fmt.Printf("u: %v\n", dX)
	fmt.Printf("v: %v\n", dl)

	// Output:
	// converged: true
	// u: [1 2 3]
	// v: 4
}
