package bls

import "gonum.org/v1/gonum/mat"

// borderedOperator implements itersolve.Operator for the bordered operator
// B(J, a, b, c, shift, dotp):
//
//	(u, p) -> ((shift·I + J)·u + sum_i p_i·a_i, c·p + (dotp(b_i, u))_i)
//
// It is owned for the duration of one MatrixFreeBLS call and released
// afterwards.
type borderedOperator struct {
	J     Operator
	a     [][]float64 // m columns, length n
	bRows [][]float64 // m rows, length n
	c     [][]float64 // m x m, dense (small)
	shift float64
	dotp  DotProduct
	n, m  int
}

func (o *borderedOperator) Dim() int { return o.n + o.m }

// MulVecTo computes out = B(x) for flat x = [x_u; x_p]. trans is not
// supported: the default iterative method configured by MatrixFreeBLS is
// GMRES, which per gonum's own documentation never requires the
// transpose apply.
func (o *borderedOperator) MulVecTo(dst []float64, trans bool, x []float64) {
	if trans {
		panic("bls: borderedOperator does not support the transposed apply")
	}
	n, m := o.n, o.m
	xu, xp := x[:n], x[n:]
	outU, outP := dst[:n], dst[n:]

	o.J.Apply(outU, xu)
	if o.shift != 0 {
		for i := range outU {
			outU[i] += o.shift * xu[i]
		}
	}
	for j := 0; j < m; j++ {
		pj := xp[j]
		if pj == 0 {
			continue
		}
		aj := o.a[j]
		for i := 0; i < n; i++ {
			outU[i] += pj * aj[i]
		}
	}

	for i := 0; i < m; i++ {
		cv := 0.0
		ci := o.c[i]
		for j := 0; j < m; j++ {
			cv += ci[j] * xp[j]
		}
		outP[i] = cv + o.dotp(o.bRows[i], xu)
	}
}

// borderedVecOperator is the *mat.VecDense-native counterpart of
// borderedOperator, used by MatrixFreeBLS when
// WithBorderedArrayRepresentation(true) selects the structured
// representation. It implements gonum.org/v1/gonum/linsolve.MulVecToer
// directly: when handed a *mat.VecDense (always the case in practice,
// since that is what linsolve.Iterative itself allocates for dst and x),
// it reads and writes RawVector().Data in place, with no intermediate
// []float64 copy on the apply — unlike borderedOperator's
// itersolve.Operator path, which always copies through a plain slice on
// every call.
type borderedVecOperator struct {
	*borderedOperator
}

func (o *borderedVecOperator) MulVecTo(dst *mat.VecDense, trans bool, x mat.Vector) {
	if trans {
		panic("bls: borderedVecOperator does not support the transposed apply")
	}
	if xv, ok := x.(*mat.VecDense); ok {
		o.borderedOperator.MulVecTo(dst.RawVector().Data, false, xv.RawVector().Data)
		return
	}
	n := o.n + o.m
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = x.AtVec(i)
	}
	ds := make([]float64, n)
	o.borderedOperator.MulVecTo(ds, false, xs)
	copy(dst.RawVector().Data, ds)
}
