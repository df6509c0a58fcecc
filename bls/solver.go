package bls

import "gonum.org/v1/gonum/mat"

// Solver is the inner linear solver contract for J. Implementations are
// free to cache a factorisation of J across calls (as densesolve.LU does);
// Solve and SolveTwo both accept the shift applied to J so a single cached
// factorisation can serve repeated calls only when shift is unchanged.
//
// J is typed as mat.Matrix so that any of gonum's dense, symmetric, or
// banded matrix types, or a user type that implements Dims/At/T, can be used
// directly — the package defines no matrix type of its own.
type Solver interface {
	// Solve returns x solving (shift·I+J)·x = r.
	Solve(J mat.Matrix, shift float64, r []float64) (x []float64, converged bool, iters int)

	// SolveTwo returns x1, x2 solving (shift·I+J)·x1 = r1 and
	// (shift·I+J)·x2 = r2, reusing a factorisation of (shift·I+J) across
	// both solves when the implementation supports it.
	SolveTwo(J mat.Matrix, shift float64, r1, r2 []float64) (x1, x2 []float64, converged bool, iters [2]int)
}

// Operator represents J as a matrix-vector product only, for use by
// MatrixFreeBLS where no factorisation of J is available or desired.
type Operator interface {
	// Dim is the dimension n of the square operator.
	Dim() int
	// Apply computes dst = J*x. Apply must not retain x or dst.
	Apply(dst, x []float64)
}

// DenseOperator adapts a mat.Matrix to Operator by a direct
// matrix-vector product, for callers that have J materialised but want to
// exercise the matrix-free path (e.g. for cross-implementation testing
// against the other two back-ends).
type DenseOperator struct {
	J mat.Matrix
}

// Dim implements Operator.
func (d DenseOperator) Dim() int {
	r, _ := d.J.Dims()
	return r
}

// Apply implements Operator.
func (d DenseOperator) Apply(dst, x []float64) {
	n := d.Dim()
	if len(x) != n || len(dst) != n {
		dimensionMismatch("DenseOperator.Apply", n, len(x))
	}
	xv := mat.NewVecDense(n, append([]float64(nil), x...))
	var dv mat.VecDense
	dv.MulVec(d.J, xv)
	copy(dst, dv.RawVector().Data)
}
