package bls

import "gonum.org/v1/gonum/mat"

// ContinuationState is the minimal view a pseudo-arclength continuation
// loop exposes to a BLS through the "continuation adapter" calling shape:
// the tangent (τ.u, τ.p), the arclength weight θ, and the weighted inner
// product dotp.
type ContinuationState interface {
	// Tangent returns τ.u (length n) and τ.p, the current direction along
	// the solution branch.
	Tangent() (tauU []float64, tauP float64)
	// Theta returns the arclength weighting parameter θ; the BLS derives
	// xiu = θ, xip = 1-θ from it.
	Theta() float64
	// DotProduct returns the weighted inner product to use on the
	// u-component, or nil to fall back to the Euclidean product.
	DotProduct() DotProduct
}

// SolveFromState forwards to SolveScalar using the tangent, weighting and
// inner product read from state, per the continuation adapter call shape
// `(state, J, dR, R, n; shift)`. If state supplies a non-nil DotProduct it
// is installed on the receiver for the duration of the call and restored
// afterwards; concurrent calls on the same *BorderingBLS are not safe while
// a non-default dotp is in flight — use Clone for concurrent use.
func (b *BorderingBLS) SolveFromState(state ContinuationState, J mat.Matrix, shift float64, dR, R []float64, n float64) (dX []float64, dl float64, converged bool, iterations int) {
	tauU, tauP := state.Tangent()
	theta := state.Theta()
	if dotp := state.DotProduct(); dotp != nil {
		prev := b.dotp
		b.dotp = dotp
		defer func() { b.dotp = prev }()
	}
	return b.SolveScalar(J, shift, dR, tauU, tauP, R, n, theta, 1-theta)
}

// SolveFromState is MatrixBLS's counterpart of the continuation adapter
// shape. xiu = θ scales the tangent row and xip = 1-θ scales the corner
// entry before assembly; applyXiU, if non-nil, is then applied to that row
// as in Solve. state.DotProduct is not used.
func (mb *MatrixBLS) SolveFromState(state ContinuationState, J mat.Matrix, shift float64, dR, R []float64, n float64, applyXiU ApplyXiU) (dX []float64, dl float64, converged bool, iterations int) {
	tauU, tauP := state.Tangent()
	theta := state.Theta()
	scaledTauU := make([]float64, len(tauU))
	for i := range scaledTauU {
		scaledTauU[i] = theta * tauU[i]
	}
	c := mat.NewDense(1, 1, []float64{(1 - theta) * tauP})
	u, v, ok, iters := mb.Solve(J, shift, [][]float64{dR}, [][]float64{scaledTauU}, c, R, []float64{n}, applyXiU)
	return u, v[0], ok, iters
}
