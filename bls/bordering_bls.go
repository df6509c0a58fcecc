package bls

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// BorderingBLS solves a bordered linear system by block elimination with
// optional iterative refinement (Govaerts BEC+k). Once
// constructed it is immutable except for its scratch buffers, which are
// lazily sized to (n, m) on first use and can be explicitly resized with
// Reset.
type BorderingBLS struct {
	config
	solver Solver

	n, m int
	x2   []*mat.VecDense // cached solve(J, a_i), i = 0..m-1
	schu *mat.Dense      // cached Schur complement S = c - Bᵀ·X2, m×m
}

// NewBorderingBLS constructs a BorderingBLS using solver as the inner
// linear solver for J. k defaults to 1, tol to 1e-12, checkPrecision to
// true; WithMaxRefinements(k) with k<=0 fails construction.
func NewBorderingBLS(solver Solver, opts ...Option) (*BorderingBLS, error) {
	c := defaultConfig()
	if err := applyOptions(&c, opts); err != nil {
		return nil, err
	}
	return &BorderingBLS{config: c, solver: solver}, nil
}

// Reset (re)sizes the instance's scratch for an (n, m) problem. It is
// called automatically by SolveBlock (and so by SolveScalar) whenever the
// dimensions differ from the previous call; callers may also call it
// explicitly up front to size the scratch before the first solve. The
// dimension comparison still runs on every call.
func (b *BorderingBLS) Reset(n, m int) {
	b.n, b.m = n, m
	b.x2 = make([]*mat.VecDense, m)
	for i := range b.x2 {
		b.x2[i] = mat.NewVecDense(n, nil)
	}
	b.schu = mat.NewDense(m, m, nil)
}

// Clone returns a new BorderingBLS sharing this instance's immutable
// configuration and solver but with independent scratch, safe to use
// concurrently with the receiver.
func (b *BorderingBLS) Clone() *BorderingBLS {
	clone := &BorderingBLS{config: b.config, solver: b.solver}
	if b.n > 0 {
		clone.Reset(b.n, b.m)
	}
	return clone
}

// SolveScalar implements the scalar (m=1) contract: given
// J, border column dR, tangent (dzu, dzp), scaling (xiu, xip), and
// right-hand sides (R, s), returns (dX, dl) satisfying
//
//	(shift·I + J)·dX + dR·dl = R
//	xiu·dotp(dzu, dX) + xip·dzp·dl = s
//
// to within tol, using at most k+2 calls of solver.Solve: one for the border
// column dR and at most k+1 for R and its residual corrections.
func (b *BorderingBLS) SolveScalar(J mat.Matrix, shift float64, dR, dzu []float64, dzp float64, R []float64, s, xiu, xip float64) (dX []float64, dl float64, converged bool, iterations int) {
	n := len(R)
	scaledDzu := make([]float64, n)
	for i := range scaledDzu {
		scaledDzu[i] = xiu * dzu[i]
	}
	c := mat.NewDense(1, 1, []float64{xip * dzp})
	u, v, cv, iters := b.SolveBlock(J, shift, [][]float64{dR}, [][]float64{scaledDzu}, c, R, []float64{s})
	total := 0
	for _, it := range iters {
		total += it
	}
	return u, v[0], cv, total
}

// SolveBlock implements the block (m>=1) contract: given J,
// column border a (m vectors of length n), row border b (m vectors of
// length n, i.e. the rows of the system's b block), small block c (m×m),
// and right-hand sides (r, s), returns (u, v) satisfying
//
//	(shift·I + J)·u + sum_i a_i·v_i = r
//	            b·u  +        c·v  = s
//
// to within tol using at most k+1 BEC steps. iterations[i] is the inner
// solver's reported iteration count for the i-th application.
func (b *BorderingBLS) SolveBlock(J mat.Matrix, shift float64, a, bRows [][]float64, c *mat.Dense, r, s []float64) (u, v []float64, converged bool, iterations []int) {
	m := len(a)
	n := len(r)
	if len(bRows) != m {
		dimensionMismatch("BorderingBLS.SolveBlock: len(bRows)", m, len(bRows))
	}
	if len(s) != m {
		dimensionMismatch("BorderingBLS.SolveBlock: len(s)", m, len(s))
	}
	if b.n != n || b.m != m {
		b.Reset(n, m)
	}

	converged = true
	var allIters []int

	// X2: one solve per border column, cached for the whole call (including
	// all refinement rounds) since a does not change between rounds.
	for i := 0; i < m; i++ {
		xi, ok, it := b.solver.Solve(J, shift, a[i])
		converged = converged && ok
		if !ok {
			b.trace.emit("bls: BorderingBLS inner solve for border column %d did not converge (%d iterations)", i, it)
		}
		allIters = append(allIters, it)
		copy(b.x2[i].RawVector().Data, xi)
	}

	// Schur complement S = c - Bᵀ·X2, S[i][j] = c[i][j] - dotp(b_i, x2_j).
	for i := 0; i < m; i++ {
		for j := 0; j < m; j++ {
			b.schu.Set(i, j, c.At(i, j)-b.config.dotp(bRows[i], b.x2[j].RawVector().Data))
		}
	}

	dX := make([]float64, n)
	dl := make([]float64, m)

	residU := append([]float64(nil), r...)
	residS := append([]float64(nil), s...)

	for step := 0; step <= b.k; step++ {
		x1, ok, it := b.solver.Solve(J, shift, residU)
		converged = converged && ok
		if !ok {
			b.trace.emit("bls: BorderingBLS inner solve at step %d did not converge (%d iterations)", step, it)
		}
		allIters = append(allIters, it)

		cx1 := make([]float64, m)
		for i := 0; i < m; i++ {
			cx1[i] = b.config.dotp(bRows[i], x1)
		}
		rhsV := make([]float64, m)
		for i := range rhsV {
			rhsV[i] = residS[i] - cx1[i]
		}
		vCorrection := solveSmallDense(b.schu, rhsV)

		uCorrection := append([]float64(nil), x1...)
		for j := 0; j < m; j++ {
			for i := 0; i < n; i++ {
				uCorrection[i] -= b.x2[j].AtVec(i) * vCorrection[j]
			}
		}

		for i := range dX {
			dX[i] += uCorrection[i]
		}
		for i := range dl {
			dl[i] += vCorrection[i]
		}

		if !b.checkPrecision {
			break
		}

		// Residual: δu = r - (shift·I+J)·dX - a·dl, δs = s - b·dX - c·dl.
		applyJ(J, shift, dX, residU)
		for i := range residU {
			residU[i] = r[i] - residU[i]
		}
		for j := 0; j < m; j++ {
			for i := 0; i < n; i++ {
				residU[i] -= a[j][i] * dl[j]
			}
		}
		for i := 0; i < m; i++ {
			cv := 0.0
			for j := 0; j < m; j++ {
				cv += c.At(i, j) * dl[j]
			}
			residS[i] = s[i] - b.config.dotp(bRows[i], dX) - cv
		}

		if norm2(residU) <= b.tol && norm2(residS) <= b.tol {
			break
		}
		if step == b.k {
			b.trace.emit("bls: BorderingBLS refinement did not reach tol=%g after k=%d corrections (residual %g, %g)", b.tol, b.k, norm2(residU), norm2(residS))
		}
	}

	return dX, dl, converged, allIters
}

// applyJ computes dst = (shift·I + J)*x.
func applyJ(J mat.Matrix, shift float64, x, dst []float64) {
	n := len(x)
	xv := mat.NewVecDense(n, append([]float64(nil), x...))
	var yv mat.VecDense
	yv.MulVec(J, xv)
	copy(dst, yv.RawVector().Data)
	if shift != 0 {
		for i := range dst {
			dst[i] += shift * x[i]
		}
	}
}

func solveSmallDense(S *mat.Dense, rhs []float64) []float64 {
	m := len(rhs)
	b := mat.NewVecDense(m, append([]float64(nil), rhs...))
	var x mat.VecDense
	if err := x.SolveVec(S, b); err != nil {
		// Singular Schur complement: NumericDegeneracy is not
		// detected by the core; return whatever the solve produced.
		return x.RawVector().Data
	}
	return x.RawVector().Data
}

func norm2(x []float64) float64 {
	sum := 0.0
	for _, v := range x {
		sum += v * v
	}
	return math.Sqrt(sum)
}
