package bls

import "fmt"

// ConfigurationError is returned by the BLS constructors when a
// configuration parameter is invalid. It is fatal: the caller must not use
// the (zero-valued) constructed value.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("bls: invalid configuration for %s: %s", e.Field, e.Reason)
}

// DimensionMismatchError identifies the operand sizes that disagreed. Op
// names the operation or argument that failed the check (e.g.
// "BorderingBLS.SolveBlock: len(bRows)").
type DimensionMismatchError struct {
	Op   string
	Want int
	Got  int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("bls: %s: dimension mismatch, want %d got %d", e.Op, e.Want, e.Got)
}

// dimensionMismatch panics with a *DimensionMismatchError identifying the
// offending dimensions. Dimension mismatches are programmer errors, not
// data conditions, so they halt rather than returning an error — the same
// convention gonum.org/v1/gonum/mat uses for panic(ErrShape).
func dimensionMismatch(op string, want, got int) {
	panic(&DimensionMismatchError{Op: op, Want: want, Got: got})
}

// TraceFunc receives a formatted message whenever an inner solve fails to
// converge, and, from BorderingBLS, when iterative refinement ends with a
// residual still above tol. A nil TraceFunc (the default) is a no-op.
type TraceFunc func(format string, args ...any)

func (t TraceFunc) emit(format string, args ...any) {
	if t != nil {
		t(format, args...)
	}
}
