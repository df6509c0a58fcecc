package bls

import "gonum.org/v1/gonum/mat"

// MatrixBLS solves a bordered linear system by assembling the full
// (n+m)×(n+m) matrix and delegating to a dense LU solve. It
// is the simplest of the three back-ends and the reference used by the
// cross-implementation agreement property checked against the other two back-ends.
type MatrixBLS struct {
	config
}

// NewMatrixBLS constructs a MatrixBLS. Only WithTrace has any effect;
// WithDotProduct, tol, checkPrecision and k are accepted for API symmetry
// with the other two back-ends but ignored. The assembled last rows hold
// b as given (a Euclidean product with u); a weighted inner product enters
// only through the ApplyXiU callback of Solve. A dense solve is considered
// exact: Solve reports converged=true, iterations=1, except when the LU
// solve returns an error, in which case it returns nil u and v with
// converged=false.
func NewMatrixBLS(opts ...Option) (*MatrixBLS, error) {
	c := defaultConfig()
	if err := applyOptions(&c, opts); err != nil {
		return nil, err
	}
	return &MatrixBLS{config: c}, nil
}

// Clone returns a new MatrixBLS sharing this instance's configuration.
// MatrixBLS holds no per-call scratch, so the clone is independent of the
// receiver from construction and both may be used concurrently.
func (mb *MatrixBLS) Clone() *MatrixBLS {
	return &MatrixBLS{config: mb.config}
}

// ApplyXiU, if set, is called on the assembled last-row u-block in place
// before the solve. It must be a pure function of row: it must not retain
// row past the call, and must not mutate any state outside row.
type ApplyXiU func(row []float64)

// Solve assembles
//
//	A = [ shift·I+J   a ]   rhs = [ r ]
//	    [ b            c ]        [ s ]
//
// (block-wise for m>1: the south-west block holds the rows of b, the
// south-east block is c) and solves A·[u;v] = rhs with LU. applyXiU, if
// non-nil, transforms the south-west row block in place before the solve.
func (mb *MatrixBLS) Solve(J mat.Matrix, shift float64, a, bRows [][]float64, c *mat.Dense, r, s []float64, applyXiU ApplyXiU) (u, v []float64, converged bool, iterations int) {
	n, _ := J.Dims()
	m := len(a)
	if len(bRows) != m {
		dimensionMismatch("MatrixBLS.Solve: len(bRows)", m, len(bRows))
	}
	if len(s) != m {
		dimensionMismatch("MatrixBLS.Solve: len(s)", m, len(s))
	}

	dim := n + m
	A := mat.NewDense(dim, dim, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			A.Set(i, j, J.At(i, j))
		}
		A.Set(i, i, A.At(i, i)+shift)
	}
	for j := 0; j < m; j++ {
		for i := 0; i < n; i++ {
			A.Set(i, n+j, a[j][i])
		}
	}
	for i := 0; i < m; i++ {
		row := append([]float64(nil), bRows[i]...)
		if applyXiU != nil {
			applyXiU(row)
		}
		for j := 0; j < n; j++ {
			A.Set(n+i, j, row[j])
		}
		for j := 0; j < m; j++ {
			A.Set(n+i, n+j, c.At(i, j))
		}
	}

	rhs := mat.NewVecDense(dim, nil)
	copy(rhs.RawVector().Data[:n], r)
	copy(rhs.RawVector().Data[n:], s)

	var lu mat.LU
	lu.Factorize(A)
	var x mat.VecDense
	if err := lu.SolveVecTo(&x, false, rhs); err != nil {
		mb.trace.emit("bls: MatrixBLS dense solve failed: %v", err)
		return nil, nil, false, 1
	}

	data := x.RawVector().Data
	u = append([]float64(nil), data[:n]...)
	v = append([]float64(nil), data[n:]...)
	return u, v, true, 1
}
