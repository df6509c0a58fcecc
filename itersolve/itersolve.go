// Package itersolve adapts the []float64-facing matrix-free inner solver
// contract used throughout this module onto
// gonum.org/v1/gonum/linsolve.Iterative. It owns no numerics of its own:
// GMRES, BiCGStab and CG are general-purpose iterative methods with nothing
// bordered-specific to adapt, so this package is a thin translation layer,
// not a reimplementation.
package itersolve

import (
	"gonum.org/v1/gonum/linsolve"
	"gonum.org/v1/gonum/mat"
)

// Operator represents a square operator by a matrix-vector product over
// plain slices, mirroring linsolve.MulVecToer at the []float64 boundary
// used throughout this module.
type Operator interface {
	Dim() int
	MulVecTo(dst []float64, trans bool, x []float64)
}

// sliceOperator adapts an Operator to linsolve.MulVecToer.
type sliceOperator struct {
	op Operator
}

func (s sliceOperator) MulVecTo(dst *mat.VecDense, trans bool, x mat.Vector) {
	n := s.op.Dim()
	xs := make([]float64, n)
	for i := 0; i < n; i++ {
		xs[i] = x.AtVec(i)
	}
	ds := make([]float64, n)
	s.op.MulVecTo(ds, trans, xs)
	copy(dst.RawVector().Data, ds)
}

// Solve finds an approximate solution of op*x = rhs using method (nil
// selects linsolve's default, GMRES) and settings (nil selects linsolve's
// defaults). It reports convergence as (err == nil); ErrIterationLimit and
// any other error from the inner method are treated as non-fatal
// non-convergence, surfaced to the caller as converged=false.
func Solve(op Operator, rhs []float64, method linsolve.Method, settings *linsolve.Settings) (x []float64, converged bool, iterations int) {
	n := op.Dim()
	b := mat.NewVecDense(n, append([]float64(nil), rhs...))

	result, err := linsolve.Iterative(sliceOperator{op}, b, method, settings)
	if result == nil {
		return make([]float64, n), false, 0
	}
	x = append([]float64(nil), result.X.RawVector().Data...)
	return x, err == nil, result.Stats.Iterations
}

// SolveVec is the *mat.VecDense-native counterpart of Solve, for operators
// that already implement linsolve.MulVecToer and so can be handed to
// linsolve.Iterative directly, without Solve's []float64 translation
// layer. The returned vector aliases the linsolve.Result's own storage.
func SolveVec(op linsolve.MulVecToer, rhs *mat.VecDense, method linsolve.Method, settings *linsolve.Settings) (x *mat.VecDense, converged bool, iterations int) {
	result, err := linsolve.Iterative(op, rhs, method, settings)
	if result == nil {
		return mat.NewVecDense(rhs.Len(), nil), false, 0
	}
	return result.X, err == nil, result.Stats.Iterations
}
