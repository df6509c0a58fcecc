package bls

import (
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

const testTol = 1e-12

func vecsEqual(t *testing.T, got, want []float64, tol float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d want %d", len(got), len(want))
	}
	for i := range got {
		if !scalar.EqualWithinAbsOrRel(got[i], want[i], tol, tol) {
			t.Errorf("index %d: got %v want %v", i, got[i], want[i])
		}
	}
}

func TestBorderedVectorFlattenRoundTrip(t *testing.T) {
	x := NewBorderedVectorFrom([]float64{1, 2, 3}, []float64{4, 5})
	flat := x.Flatten()
	vecsEqual(t, flat, []float64{1, 2, 3, 4, 5}, testTol)

	y := NewBorderedVector(3, 2)
	y.Unflatten(flat)
	vecsEqual(t, y.U.RawVector().Data, x.U.RawVector().Data, testTol)
	vecsEqual(t, y.P, x.P, testTol)
}

func TestBorderedVectorAddScaled(t *testing.T) {
	a := NewBorderedVectorFrom([]float64{1, 2}, []float64{3})
	b := NewBorderedVectorFrom([]float64{10, 20}, []float64{30})

	x := NewBorderedVector(2, 1)
	x.AddScaled(a, 2, b)

	vecsEqual(t, x.U.RawVector().Data, []float64{21, 42}, testTol)
	vecsEqual(t, x.P, []float64{63}, testTol)
}

func TestBorderedVectorNormEuclidean(t *testing.T) {
	x := NewBorderedVectorFrom([]float64{3, 0}, []float64{4})
	got := x.Norm(nil)
	if !scalar.EqualWithinAbsOrRel(got, 5, testTol, testTol) {
		t.Errorf("Norm() = %v, want 5", got)
	}
}

func TestBorderedVectorDimensionMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on dimension mismatch")
		}
	}()
	a := NewBorderedVector(2, 1)
	b := NewBorderedVector(3, 1)
	x := NewBorderedVector(2, 1)
	x.AddScaled(a, 1, b)
}
