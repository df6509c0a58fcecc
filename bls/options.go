package bls

import "gonum.org/v1/gonum/linsolve"

// config holds the fields shared by all three BLS back-ends. Each back-end
// embeds it, accepts every Option, and reads only the fields that apply to
// it.
type config struct {
	tol            float64
	checkPrecision bool
	k              int
	dotp           DotProduct
	trace          TraceFunc

	// useBorderedArray and method apply only to MatrixFreeBLS.
	useBorderedArray bool
	method           linsolve.Method
}

func defaultConfig() config {
	return config{
		tol:            1e-12,
		checkPrecision: true,
		k:              1,
		dotp:           euclideanDot,
	}
}

// Option configures a BLS instance at construction time.
type Option func(*config) error

// WithTolerance sets the residual tolerance used by iterative refinement
// (BorderingBLS) or by the inner iterative solver (MatrixFreeBLS). Must be
// positive.
func WithTolerance(tol float64) Option {
	return func(c *config) error {
		if tol <= 0 {
			return &ConfigurationError{Field: "tol", Reason: "must be positive"}
		}
		c.tol = tol
		return nil
	}
}

// WithCheckPrecision toggles iterative refinement on BorderingBLS.
func WithCheckPrecision(enabled bool) Option {
	return func(c *config) error {
		c.checkPrecision = enabled
		return nil
	}
}

// WithMaxRefinements sets k, the maximum number of refinement corrections
// performed by BorderingBLS. Must be at least 1.
func WithMaxRefinements(k int) Option {
	return func(c *config) error {
		if k <= 0 {
			return &ConfigurationError{Field: "k", Reason: "must be >= 1"}
		}
		c.k = k
		return nil
	}
}

// WithDotProduct overrides the inner product used on the u-component.
// Passing nil restores the Euclidean default.
func WithDotProduct(dotp DotProduct) Option {
	return func(c *config) error {
		if dotp == nil {
			dotp = euclideanDot
		}
		c.dotp = dotp
		return nil
	}
}

// WithTrace installs a callback invoked once whenever an inner solve fails
// to converge (and, for BorderingBLS, when refinement ends above tol).
func WithTrace(trace TraceFunc) Option {
	return func(c *config) error {
		c.trace = trace
		return nil
	}
}

// WithBorderedArrayRepresentation selects, for MatrixFreeBLS, how the
// iterative solver applies the bordered operator: with enabled=true it
// reads and writes the solver's *mat.VecDense storage directly; with
// enabled=false (the default) every apply copies through a flat []float64
// of length n+m. Both compute the same result. The flag does not change
// the argument or result types of Solve or SolveBorderedVector.
func WithBorderedArrayRepresentation(enabled bool) Option {
	return func(c *config) error {
		c.useBorderedArray = enabled
		return nil
	}
}

// WithIterativeMethod selects the linsolve.Method used by MatrixFreeBLS.
// Passing nil (the default) selects linsolve's own default, GMRES.
func WithIterativeMethod(m linsolve.Method) Option {
	return func(c *config) error {
		c.method = m
		return nil
	}
}

func applyOptions(c *config, opts []Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}
