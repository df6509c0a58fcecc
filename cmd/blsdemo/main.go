// Command blsdemo runs a few bordered linear system scenarios and prints
// the result of each of the three back-ends side by side. It exists purely
// as a runnable entry point for the bls package, which is itself a library
// with no CLI surface of its own.
package main

import (
	"flag"
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"

	"github.com/hechtlab/gobifurc/bls"
	"github.com/hechtlab/gobifurc/densesolve"
)

func main() {
	scenario := flag.String("scenario", "s1", "scenario to run: s1, s2, s5")
	flag.Parse()

	switch *scenario {
	case "s1":
		runS1()
	case "s2":
		runS2()
	case "s5":
		runS5()
	default:
		fmt.Fprintf(os.Stderr, "unknown scenario %q (want s1, s2 or s5)\n", *scenario)
		os.Exit(1)
	}
}

func runS1() {
	J := mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
	a := [][]float64{{0, 0, 0}}
	bRows := [][]float64{{0, 0, 0}}
	c := mat.NewDense(1, 1, []float64{1})
	r := []float64{1, 2, 3}
	s := []float64{4}

	printScenario("S1 identity border", J, a, bRows, c, r, s)
}

func runS2() {
	J := mat.NewDense(2, 2, []float64{2, 0, 0, 3})
	a := [][]float64{{1, 1}}
	bRows := [][]float64{{1, 1}}
	c := mat.NewDense(1, 1, []float64{0})
	r := []float64{3, 4}
	s := []float64{2}

	printScenario("S2 coupled", J, a, bRows, c, r, s)
}

func runS5() {
	J := mat.NewDense(4, 4, []float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1})
	a := [][]float64{{1, 0, 0, 0}, {0, 1, 0, 0}}
	bRows := [][]float64{{1, 0, 0, 0}, {0, 1, 0, 0}}
	c := mat.NewDense(2, 2, []float64{2, 0, 0, 2})
	r := []float64{0.5, 0.5, 0, 0}
	s := []float64{1, 1}

	printScenario("S5 block m=2", J, a, bRows, c, r, s)
}

func printScenario(name string, J *mat.Dense, a, bRows [][]float64, c *mat.Dense, r, s []float64) {
	fmt.Printf("== %s ==\n", name)

	bec, err := bls.NewBorderingBLS(&densesolve.LU{})
	must(err)
	u, v, ok, iters := bec.SolveBlock(J, 0, a, bRows, c, r, s)
	fmt.Printf("BorderingBLS:  u=%v v=%v converged=%v iterations=%v\n", u, v, ok, iters)

	mbls, err := bls.NewMatrixBLS()
	must(err)
	u2, v2, ok2, it2 := mbls.Solve(J, 0, a, bRows, c, r, s, nil)
	fmt.Printf("MatrixBLS:     u=%v v=%v converged=%v iterations=%v\n", u2, v2, ok2, it2)

	mf, err := bls.NewMatrixFreeBLS(bls.WithTolerance(1e-12))
	must(err)
	u3, v3, ok3, it3 := mf.Solve(bls.DenseOperator{J: J}, 0, a, bRows, c, r, s)
	fmt.Printf("MatrixFreeBLS: u=%v v=%v converged=%v iterations=%v\n", u3, v3, ok3, it3)
}

func must(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
