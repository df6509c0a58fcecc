package bls

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/hechtlab/gobifurc/densesolve"
)

func TestBorderingBLSScalarIdentity(t *testing.T) {
	// S1: J = I3, a = 0, b = 0, c = 1, r = (1,2,3), s = 4.
	J := mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
	bec, err := NewBorderingBLS(&densesolve.LU{})
	if err != nil {
		t.Fatal(err)
	}

	dX, dl, ok, _ := bec.SolveScalar(J, 0, []float64{0, 0, 0}, []float64{0, 0, 0}, 1, []float64{1, 2, 3}, 4, 1, 1)
	if !ok {
		t.Fatal("expected convergence")
	}
	vecsEqual(t, dX, []float64{1, 2, 3}, testTol)
	if dl != 4 {
		t.Errorf("dl = %v, want 4", dl)
	}
}

func TestBorderingBLSScalarCoupled(t *testing.T) {
	// S2: J = diag(2,3), a=(1,1), b=(1,1), c=0, r=(3,4), s=2.
	J := mat.NewDense(2, 2, []float64{2, 0, 0, 3})
	bec, err := NewBorderingBLS(&densesolve.LU{})
	if err != nil {
		t.Fatal(err)
	}

	dX, dl, ok, _ := bec.SolveScalar(J, 0, []float64{1, 1}, []float64{1, 1}, 0, []float64{3, 4}, 2, 1, 1)
	if !ok {
		t.Fatal("expected convergence")
	}
	// Eliminating u from (3-v)/2 + (4-v)/3 = 2 gives v = 1, u = (1, 1).
	wantV := (3.0/2 + 4.0/3 - 2) / (1.0/2 + 1.0/3)
	wantU := []float64{(3 - wantV) / 2, (4 - wantV) / 3}
	if notClose(dl, wantV) {
		t.Errorf("dl = %v, want %v", dl, wantV)
	}
	vecsEqual(t, dX, wantU, 1e-10)
}

func TestBorderingBLSFoldLimitDoesNotCrash(t *testing.T) {
	// S3: J = diag(1, 1e-12); solver should return finite values without panicking.
	J := mat.NewDense(2, 2, []float64{1, 0, 0, 1e-12})
	bec, err := NewBorderingBLS(&densesolve.LU{})
	if err != nil {
		t.Fatal(err)
	}
	dX, dl, _, _ := bec.SolveScalar(J, 0, []float64{0, 1}, []float64{0, 1}, 0, []float64{1, 1}, 1, 1, 1)
	for _, v := range append(dX, dl) {
		if v-v != 0 { // v-v is 0 only for finite v; NaN and ±Inf both fail
			t.Errorf("got non-finite component in result %v, %v", dX, dl)
		}
	}
}

func TestBorderingBLSBlockM2(t *testing.T) {
	// S5: J=I4, a=(e1,e2), b=(e1,e2), d=2·I2, r=(1/2,1/2,0,0), s=(1,1).
	// Schur complement S = d - bᵀ·J⁻¹·a = I2, so v = S⁻¹(s - b·r) = (1/2, 1/2)
	// and u = r - a·v = 0.
	J := mat.NewDense(4, 4, []float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1})
	a := [][]float64{{1, 0, 0, 0}, {0, 1, 0, 0}}
	bRows := [][]float64{{1, 0, 0, 0}, {0, 1, 0, 0}}
	c := mat.NewDense(2, 2, []float64{2, 0, 0, 2})
	r := []float64{0.5, 0.5, 0, 0}
	s := []float64{1, 1}

	bec, err := NewBorderingBLS(&densesolve.LU{})
	if err != nil {
		t.Fatal(err)
	}
	u, v, ok, _ := bec.SolveBlock(J, 0, a, bRows, c, r, s)
	if !ok {
		t.Fatal("expected convergence")
	}
	vecsEqual(t, u, []float64{0, 0, 0, 0}, 1e-10)
	vecsEqual(t, v, []float64{0.5, 0.5}, 1e-10)
}

func TestBorderingBLSBlockScalarConsistency(t *testing.T) {
	// Property 5: a block problem with m=1 solved via the block path
	// matches the scalar path to within 1e-12.
	J := mat.NewDense(3, 3, []float64{4, 1, 0, 1, 3, 1, 0, 1, 5})
	dR := []float64{1, 2, 3}
	dzu := []float64{2, -1, 1}
	dzp := 0.5
	R := []float64{5, -2, 1}
	n := 3.0

	becScalar, err := NewBorderingBLS(&densesolve.LU{})
	if err != nil {
		t.Fatal(err)
	}
	dX, dl, okS, _ := becScalar.SolveScalar(J, 0, dR, dzu, dzp, R, n, 1, 1)
	if !okS {
		t.Fatal("expected scalar path convergence")
	}

	becBlock, err := NewBorderingBLS(&densesolve.LU{})
	if err != nil {
		t.Fatal(err)
	}
	c := mat.NewDense(1, 1, []float64{dzp})
	u, v, okB, _ := becBlock.SolveBlock(J, 0, [][]float64{dR}, [][]float64{dzu}, c, R, []float64{n})
	if !okB {
		t.Fatal("expected block path convergence")
	}

	vecsEqual(t, u, dX, 1e-12)
	if notCloseTol(v[0], dl, 1e-12) {
		t.Errorf("block v = %v, scalar dl = %v", v[0], dl)
	}
}

func TestBorderingBLSRefinementMonotonicity(t *testing.T) {
	// Property 3: increasing k should not increase the residual norm, for
	// an inner solver that deliberately under-converges.
	J := mat.NewDense(3, 3, []float64{10, 1, 0, 1, 8, 1, 0, 1, 9})
	dR := []float64{1, 0, 0}
	dzu := []float64{1, 1, 1}
	dzp := 1.0
	R := []float64{1, 1, 1}
	n := 1.0

	prevResidual := maxFloat
	for k := 0; k <= 3; k++ {
		bec, err := NewBorderingBLS(&noisyDenseSolver{LU: &densesolve.LU{}, relErr: 1e-6}, WithMaxRefinements(maxInt(k, 1)), WithCheckPrecision(k > 0))
		if err != nil {
			t.Fatal(err)
		}
		dX, dl, _, _ := bec.SolveScalar(J, 0, dR, dzu, dzp, R, n, 1, 1)
		residual := bordersResidual(J, dR, dzu, dzp, R, n, dX, dl)
		if residual > prevResidual+1e-9 {
			t.Errorf("k=%d: residual %v increased from %v", k, residual, prevResidual)
		}
		prevResidual = residual
	}
}

func bordersResidual(J mat.Matrix, dR, dzu []float64, dzp float64, R []float64, n float64, dX []float64, dl float64) float64 {
	resU := make([]float64, len(R))
	applyJ(J, 0, dX, resU)
	for i := range resU {
		resU[i] = R[i] - resU[i] - dR[i]*dl
	}
	resS := n - dzp*dl - euclideanDot(dzu, dX)
	return norm2(append(resU, resS))
}

const maxFloat = 1e308

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func notClose(a, b float64) bool  { return notCloseTol(a, b, 1e-9) }
func notCloseTol(a, b, tol float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d > tol
}

// noisyDenseSolver wraps densesolve.LU and perturbs each solution by a
// fixed relative error, modelling a scenario where the "inner solver
// deliberately returns a solution with 1e-6 relative error".
type noisyDenseSolver struct {
	*densesolve.LU
	relErr float64
}

func (n *noisyDenseSolver) Solve(J mat.Matrix, shift float64, r []float64) ([]float64, bool, int) {
	x, ok, it := n.LU.Solve(J, shift, r)
	for i := range x {
		x[i] *= 1 + n.relErr
	}
	return x, ok, it
}

func (n *noisyDenseSolver) SolveTwo(J mat.Matrix, shift float64, r1, r2 []float64) ([]float64, []float64, bool, [2]int) {
	x1, x2, ok, it := n.LU.SolveTwo(J, shift, r1, r2)
	for i := range x1 {
		x1[i] *= 1 + n.relErr
		x2[i] *= 1 + n.relErr
	}
	return x1, x2, ok, it
}
