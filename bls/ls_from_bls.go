package bls

import "gonum.org/v1/gonum/mat"

// denseInnerSolver is the subset of densesolve.LU's method set LSFromBLS
// depends on, kept narrow so callers can supply any factorisation-caching
// dense solver, not just densesolve.LU.
type denseInnerSolver interface {
	Solver
}

// LSFromBLS exposes a BorderingBLS as a plain linear solver for an
// (n+m)×(n+m) matrix M, partitioned as
//
//	M = [ J   a ]   rhs = [ r ]
//	    [ b   c ]         [ s ]
//
// as a plain linear solve. J is factorised once by innerSolver and the resulting
// cached factorisation is handed to an internal BorderingBLS as its inner
// solver.
type LSFromBLS struct {
	bec          *BorderingBLS
	innerSolver  denseInnerSolver
	m            int // border width; M is (n+m)x(n+m)
}

// NewLSFromBLS constructs an LSFromBLS for a border of width m, using
// innerSolver (typically a *densesolve.LU) as the factorisation-caching
// dense solver for the partitioned J block.
func NewLSFromBLS(innerSolver denseInnerSolver, m int, opts ...Option) (*LSFromBLS, error) {
	bec, err := NewBorderingBLS(innerSolver, opts...)
	if err != nil {
		return nil, err
	}
	return &LSFromBLS{bec: bec, innerSolver: innerSolver, m: m}, nil
}

// partition splits the (n+m)x(n+m) matrix M into J, a (m columns), bRows (m
// rows) and c (m x m).
func (ls *LSFromBLS) partition(M mat.Matrix) (J *mat.Dense, a, bRows [][]float64, c *mat.Dense) {
	dim, _ := M.Dims()
	n := dim - ls.m
	m := ls.m

	J = mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			J.Set(i, j, M.At(i, j))
		}
	}
	a = make([][]float64, m)
	for j := 0; j < m; j++ {
		col := make([]float64, n)
		for i := 0; i < n; i++ {
			col[i] = M.At(i, n+j)
		}
		a[j] = col
	}
	bRows = make([][]float64, m)
	for i := 0; i < m; i++ {
		row := make([]float64, n)
		for j := 0; j < n; j++ {
			row[j] = M.At(n+i, j)
		}
		bRows[i] = row
	}
	c = mat.NewDense(m, m, nil)
	for i := 0; i < m; i++ {
		for j := 0; j < m; j++ {
			c.Set(i, j, M.At(n+i, n+j))
		}
	}
	return J, a, bRows, c
}

// Solve returns the concatenated solution x to M*x = rhs, where rhs is
// [r; s] of length n+m.
func (ls *LSFromBLS) Solve(M mat.Matrix, rhs []float64) (x []float64, converged bool, iterations int) {
	dim, _ := M.Dims()
	n := dim - ls.m
	J, a, bRows, c := ls.partition(M)
	return ls.solveOne(J, a, bRows, c, rhs[:n], rhs[n:])
}

func (ls *LSFromBLS) solveOne(J *mat.Dense, a, bRows [][]float64, c *mat.Dense, r, s []float64) (x []float64, converged bool, iterations int) {
	if ls.m == 1 {
		u, v, ok, iters := ls.bec.SolveScalar(J, 0, a[0], bRows[0], c.At(0, 0), r, s[0], 1, 1)
		return append(u, v), ok, iters
	}
	u, v, ok, iters := ls.bec.SolveBlock(J, 0, a, bRows, c, r, s)
	total := 0
	for _, it := range iters {
		total += it
	}
	return append(u, v...), ok, total
}

// SolveTwo solves M*x1 = rhs1 and M*x2 = rhs2, reusing a single
// factorisation of J across both bordered solves (the two-RHS
// overload): J is partitioned from M once, and the same *mat.Dense is
// handed to both bordered solves so a factorisation-caching inner solver
// (e.g. densesolve.LU) recognises the second call as a cache hit.
func (ls *LSFromBLS) SolveTwo(M mat.Matrix, rhs1, rhs2 []float64) (x1, x2 []float64, converged bool, iterations int) {
	dim, _ := M.Dims()
	n := dim - ls.m
	J, a, bRows, c := ls.partition(M)

	x1, c1, i1 := ls.solveOne(J, a, bRows, c, rhs1[:n], rhs1[n:])
	x2, c2, i2 := ls.solveOne(J, a, bRows, c, rhs2[:n], rhs2[n:])
	return x1, x2, c1 && c2, i1 + i2
}
