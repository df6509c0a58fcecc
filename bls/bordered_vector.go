package bls

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// DotProduct is the inner product used on the u-component of a
// BorderedVector. It must be bilinear, symmetric and positive-definite; the
// package does not check this. A BLS constructed without an explicit
// WithDotProduct option uses the Euclidean product, as does
// BorderedVector.Norm when passed nil.
type DotProduct func(a, b []float64) float64

func euclideanDot(a, b []float64) float64 {
	return floats.Dot(a, b)
}

// BorderedVector is the composite vector x = (u, p) with u of dimension n
// and p of dimension m. The length of u is fixed across the lifetime of a
// BorderedVector; arithmetic between two BorderedVectors panics if their
// dimensions differ.
type BorderedVector struct {
	U *mat.VecDense
	P []float64
}

// NewBorderedVector allocates a BorderedVector of dimensions (n, m) with
// zero entries.
func NewBorderedVector(n, m int) *BorderedVector {
	return &BorderedVector{
		U: mat.NewVecDense(n, nil),
		P: make([]float64, m),
	}
}

// NewBorderedVectorFrom builds a BorderedVector from existing data. u and p
// are copied.
func NewBorderedVectorFrom(u, p []float64) *BorderedVector {
	bv := NewBorderedVector(len(u), len(p))
	copy(bv.U.RawVector().Data, u)
	copy(bv.P, p)
	return bv
}

// Dims returns (n, m).
func (x *BorderedVector) Dims() (n, m int) {
	return x.U.Len(), len(x.P)
}

func (x *BorderedVector) checkSameDims(y *BorderedVector, op string) {
	xn, xm := x.Dims()
	yn, ym := y.Dims()
	if xn != yn {
		dimensionMismatch(op, xn, yn)
	}
	if xm != ym {
		dimensionMismatch(op, xm, ym)
	}
}

// AddScaled sets x to a + alpha*b, in place.
func (x *BorderedVector) AddScaled(a *BorderedVector, alpha float64, b *BorderedVector) {
	a.checkSameDims(b, "BorderedVector.AddScaled")
	x.U.AddScaledVec(a.U, alpha, b.U)
	if len(x.P) != len(a.P) {
		x.P = make([]float64, len(a.P))
	}
	for i := range x.P {
		x.P[i] = a.P[i] + alpha*b.P[i]
	}
}

// Scale sets x to alpha*a, in place.
func (x *BorderedVector) Scale(alpha float64, a *BorderedVector) {
	x.U.ScaleVec(alpha, a.U)
	if len(x.P) != len(a.P) {
		x.P = make([]float64, len(a.P))
	}
	for i := range x.P {
		x.P[i] = alpha * a.P[i]
	}
}

// Norm returns the composite norm sqrt(dotp(u,u) + |p|^2) using dotp as the
// inner product on the u-component. If dotp is nil, the Euclidean product
// is used.
func (x *BorderedVector) Norm(dotp DotProduct) float64 {
	if dotp == nil {
		dotp = euclideanDot
	}
	uu := dotp(x.U.RawVector().Data, x.U.RawVector().Data)
	pp := floats.Dot(x.P, x.P)
	return math.Sqrt(uu + pp)
}

// Flatten returns the flat [u; p] representation of length n+m. The
// returned slice is freshly allocated; mutating it does not affect x.
func (x *BorderedVector) Flatten() []float64 {
	n, m := x.Dims()
	flat := make([]float64, n+m)
	copy(flat[:n], x.U.RawVector().Data)
	copy(flat[n:], x.P)
	return flat
}

// Unflatten loads x from a flat [u; p] slice of length n+m, where n and m
// are the existing dimensions of x.
func (x *BorderedVector) Unflatten(flat []float64) {
	n, m := x.Dims()
	if len(flat) != n+m {
		dimensionMismatch("BorderedVector.Unflatten", n+m, len(flat))
	}
	copy(x.U.RawVector().Data, flat[:n])
	copy(x.P, flat[n:])
}
