// Package densesolve provides a reference dense inner solver for the
// bordered linear solvers in package bls, by caching an LU factorisation of
// (shift·I + J) across calls. It is grounded on the factorize-then-solve
// shape of gonum.org/v1/gonum/mat's own QR/LQ/LU types, updated from the
// older mat64.Dense.Solve delegation pattern.
package densesolve

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// LU is a dense reference Solver: it caches the factorisation of the most
// recent shift·I+J and reuses it across consecutive Solve/SolveTwo calls
// with the same J (by identity) and shift, per the inner linear solver
// contract's requirement of factorisation reuse when possible.
//
// LU's zero value is ready to use. It satisfies bls.Solver structurally
// (Solve/SolveTwo with matching signatures) without importing package bls,
// keeping the dependency one-directional.
type LU struct {
	// CondThreshold, if positive, makes Solve/SolveTwo report
	// converged=false whenever the cached factorisation's condition number
	// exceeds it. Zero (the default) disables this check: the core does
	// not detect NumericDegeneracy unless asked to.
	CondThreshold float64

	lu        mat.LU
	factored  bool
	lastShift float64
	lastJ     mat.Matrix
	n         int
}

// factorize (re)computes the LU factorisation of shift·I+J, reusing the
// cached factorisation when J and shift are unchanged from the previous
// call.
func (s *LU) factorize(J mat.Matrix, shift float64) {
	if s.factored && s.lastJ == J && s.lastShift == shift {
		return
	}
	n, _ := J.Dims()
	shifted := mat.NewDense(n, n, nil)
	shifted.Copy(J)
	for i := 0; i < n; i++ {
		shifted.Set(i, i, shifted.At(i, i)+shift)
	}
	s.lu.Factorize(shifted)
	s.factored = true
	s.lastShift = shift
	s.lastJ = J
	s.n = n
}

func (s *LU) converged() bool {
	if s.CondThreshold <= 0 {
		return true
	}
	cond := s.lu.Cond()
	return !math.IsInf(cond, 1) && cond <= s.CondThreshold
}

// Solve returns x solving (shift·I+J)·x = r.
func (s *LU) Solve(J mat.Matrix, shift float64, r []float64) (x []float64, converged bool, iters int) {
	s.factorize(J, shift)
	b := mat.NewVecDense(len(r), append([]float64(nil), r...))
	var xv mat.VecDense
	err := s.lu.SolveVecTo(&xv, false, b)
	return append([]float64(nil), xv.RawVector().Data...), err == nil && s.converged(), 1
}

// SolveTwo returns x1, x2 solving (shift·I+J)·x1 = r1 and
// (shift·I+J)·x2 = r2, reusing one factorisation of shift·I+J for both.
func (s *LU) SolveTwo(J mat.Matrix, shift float64, r1, r2 []float64) (x1, x2 []float64, converged bool, iters [2]int) {
	s.factorize(J, shift)

	n := len(r1)
	B := mat.NewDense(n, 2, nil)
	for i := 0; i < n; i++ {
		B.Set(i, 0, r1[i])
		B.Set(i, 1, r2[i])
	}
	var X mat.Dense
	err := s.lu.SolveTo(&X, false, B)

	x1 = make([]float64, n)
	x2 = make([]float64, n)
	for i := 0; i < n; i++ {
		x1[i] = X.At(i, 0)
		x2[i] = X.At(i, 1)
	}
	ok := err == nil && s.converged()
	return x1, x2, ok, [2]int{1, 1}
}

// Cond returns the condition number of the most recently factorised
// shift·I+J, or +Inf if nothing has been factorised yet.
func (s *LU) Cond() float64 {
	if !s.factored {
		return math.Inf(1)
	}
	return s.lu.Cond()
}
