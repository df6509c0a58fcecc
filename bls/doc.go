// Package bls implements bordered linear solvers for parameterised
// nonlinear equations. Given a square operator J of size n×n, a column
// border a of size n×m, a row border b of size m×n and a small block c of
// size m×m, the solvers in this package compute (u, v) such that
//
//	(shift·I + J)·u + a·v = r
//	       b·u  +     c·v = s
//
// Three interchangeable back-ends are provided: BorderingBLS (block
// elimination with iterative refinement), MatrixBLS (full assembly and
// dense solve) and MatrixFreeBLS (operator wrapping and iterative solve).
// LSFromBLS inverts the relationship, exposing a BorderingBLS as a plain
// linear solver for an (n+m)×(n+m) matrix.
//
// The package does not choose a linear solver for J, does not discretise
// PDEs and does not tune iterative-refinement parameters adaptively.
package bls
