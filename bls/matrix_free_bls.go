package bls

import (
	"gonum.org/v1/gonum/linsolve"
	"gonum.org/v1/gonum/mat"

	"github.com/hechtlab/gobifurc/itersolve"
)

// MatrixFreeBLS solves a bordered linear system by wrapping it as a single
// linear operator and delegating to an iterative solver. It
// never materialises J, a, b or c beyond what the caller already holds and
// performs no factorisation.
type MatrixFreeBLS struct {
	config
}

// NewMatrixFreeBLS constructs a MatrixFreeBLS. WithIterativeMethod selects
// the linsolve.Method (default GMRES); WithBorderedArrayRepresentation
// selects the operator apply path; WithTolerance sets the
// iterative solver's convergence tolerance.
func NewMatrixFreeBLS(opts ...Option) (*MatrixFreeBLS, error) {
	c := defaultConfig()
	if err := applyOptions(&c, opts); err != nil {
		return nil, err
	}
	return &MatrixFreeBLS{config: c}, nil
}

// Clone returns a new MatrixFreeBLS sharing this instance's configuration.
// MatrixFreeBLS holds no per-call scratch, so the clone is independent of
// the receiver from construction and both may be used concurrently.
func (mf *MatrixFreeBLS) Clone() *MatrixFreeBLS {
	return &MatrixFreeBLS{config: mf.config}
}

func denseRows(d *mat.Dense) [][]float64 {
	r, c := d.Dims()
	rows := make([][]float64, r)
	for i := 0; i < r; i++ {
		row := make([]float64, c)
		for j := 0; j < c; j++ {
			row[j] = d.At(i, j)
		}
		rows[i] = row
	}
	return rows
}

// solve builds the bordered operator for (J, a, bRows, c, shift) and drives
// it to convergence against flatRhs, dispatching to whichever of
// borderedOperator (flat, copies through []float64 on every apply) or
// borderedVecOperator (structured, applies directly on *mat.VecDense) the
// useBorderedArray flag selects.
func (mf *MatrixFreeBLS) solve(J Operator, shift float64, a, bRows [][]float64, c *mat.Dense, flatRhs []float64) (x *mat.VecDense, converged bool, iterations int) {
	n := J.Dim()
	m := len(a)
	op := &borderedOperator{
		J:     J,
		a:     a,
		bRows: bRows,
		c:     denseRows(c),
		shift: shift,
		dotp:  mf.dotp,
		n:     n,
		m:     m,
	}
	rhs := mat.NewVecDense(n+m, append([]float64(nil), flatRhs...))
	settings := &linsolve.Settings{Tolerance: mf.tol}

	if mf.useBorderedArray {
		return itersolve.SolveVec(&borderedVecOperator{op}, rhs, mf.method, settings)
	}
	x2, ok, iters := itersolve.Solve(op, rhs.RawVector().Data, mf.method, settings)
	return mat.NewVecDense(n+m, x2), ok, iters
}

// Solve wraps J, a, b, c, shift into a linear operator and invokes the
// configured iterative solver on the bordered right-hand side (r, s).
func (mf *MatrixFreeBLS) Solve(J Operator, shift float64, a, bRows [][]float64, c *mat.Dense, r, s []float64) (u, v []float64, converged bool, iterations int) {
	n := J.Dim()
	m := len(a)
	if len(bRows) != m {
		dimensionMismatch("MatrixFreeBLS.Solve: len(bRows)", m, len(bRows))
	}
	if len(s) != m {
		dimensionMismatch("MatrixFreeBLS.Solve: len(s)", m, len(s))
	}

	flatRhs := make([]float64, n+m)
	copy(flatRhs[:n], r)
	copy(flatRhs[n:], s)

	x, ok, iters := mf.solve(J, shift, a, bRows, c, flatRhs)
	if !ok {
		mf.trace.emit("bls: MatrixFreeBLS iterative solve did not converge after %d iterations", iters)
	}

	data := x.RawVector().Data
	u = append([]float64(nil), data[:n]...)
	v = append([]float64(nil), data[n:]...)
	return u, v, ok, iters
}

// SolveBorderedVector is the BorderedVector-typed counterpart of Solve. It
// performs the identical computation as Solve, through whichever apply path
// the useBorderedArray flag selects; only the input/output container
// differs.
func (mf *MatrixFreeBLS) SolveBorderedVector(J Operator, shift float64, a, bRows [][]float64, c *mat.Dense, rhs *BorderedVector) (sol *BorderedVector, converged bool, iterations int) {
	n, m := rhs.Dims()
	if len(a) != m {
		dimensionMismatch("MatrixFreeBLS.SolveBorderedVector: len(a)", m, len(a))
	}
	if len(bRows) != m {
		dimensionMismatch("MatrixFreeBLS.SolveBorderedVector: len(bRows)", m, len(bRows))
	}

	x, ok, iters := mf.solve(J, shift, a, bRows, c, rhs.Flatten())
	if !ok {
		mf.trace.emit("bls: MatrixFreeBLS iterative solve did not converge after %d iterations", iters)
	}

	data := x.RawVector().Data
	sol = NewBorderedVectorFrom(data[:n], data[n:])
	return sol, ok, iters
}
