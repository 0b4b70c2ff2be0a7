// Package solver provides the Newton-Raphson root finders behind the
// annuity rate solve and the internal rate of return.
//
// Residuals are supplied as closures returning the function value and its
// first derivative at a point, so each caller keeps its own equation and
// the iteration logic lives in one place. Solver state (current estimate,
// iteration count) is local to each call.
package solver

import (
	"math"

	"github.com/db47h/decimal"
)

// Config holds the iteration parameters for a Newton-Raphson solve.
type Config struct {
	// Tolerance is the convergence bound. Newton compares it against the
	// difference between successive iterates; NewtonDecimal compares it
	// against the residual magnitude.
	Tolerance float64

	// MaxIterations caps the number of Newton steps.
	MaxIterations int

	// InitialGuess is the starting estimate.
	InitialGuess float64
}

const (
	// derivativeThreshold is the minimum derivative magnitude. Below this,
	// iteration stops to avoid division by near-zero.
	derivativeThreshold = 1e-15

	// decimalPrec is the mantissa precision, in decimal digits, carried
	// through NewtonDecimal.
	decimalPrec = 34

	// maxHalvings bounds the step-halving search in NewtonDecimal.
	maxHalvings = 10
)

// Newton iterates x' = x - f/f' from cfg.InitialGuess, where ffp returns
// the residual and its derivative at x. Iteration stops once successive
// iterates differ by at most cfg.Tolerance; the second return reports
// whether that happened within cfg.MaxIterations steps. The last iterate
// is returned either way, so callers needing the legacy
// best-effort-estimate behavior can discard the flag.
func Newton(ffp func(x float64) (fx, dfx float64), cfg Config) (float64, bool) {
	x := cfg.InitialGuess
	for iter := 0; iter < cfg.MaxIterations; iter++ {
		f, df := ffp(x)
		if math.Abs(df) < derivativeThreshold {
			return x, false
		}
		next := x - f/df
		if math.Abs(next-x) <= cfg.Tolerance {
			return next, true
		}
		x = next
	}
	return x, false
}

// NewtonDecimal runs the same iteration in arbitrary-precision decimal
// arithmetic. Each step is halved until the residual magnitude shrinks,
// so a far-off initial guess cannot overshoot into a spurious root the
// way a raw Newton step can. Convergence means the residual magnitude
// reached cfg.Tolerance; as with Newton, the last iterate is returned
// regardless.
func NewtonDecimal(ffp func(x *decimal.Decimal) (fx, dfx *decimal.Decimal), cfg Config) (float64, bool) {
	var (
		x    = decimal.NewDecimal(cfg.InitialGuess).SetPrec(decimalPrec)
		tol  = decimal.NewDecimal(cfg.Tolerance).SetPrec(decimalPrec)
		half = decimal.NewDecimal(0.5).SetPrec(decimalPrec)
	)

	f, df := ffp(x)
	norm := new(decimal.Decimal).SetPrec(decimalPrec).Abs(f)

	for iter := 0; ; iter++ {
		if norm.Cmp(tol) <= 0 {
			root, _ := x.Float64()
			return root, true
		}
		if iter >= cfg.MaxIterations || df.Sign() == 0 {
			break
		}

		step := new(decimal.Decimal).SetPrec(decimalPrec).Quo(f, df)
		trial := new(decimal.Decimal).SetPrec(decimalPrec)
		reduced := false
		for h := 0; h < maxHalvings; h++ {
			trial.Sub(x, step)
			tf, tdf := ffp(trial)
			tnorm := new(decimal.Decimal).SetPrec(decimalPrec).Abs(tf)
			if tnorm.Cmp(norm) < 0 {
				x.Set(trial)
				f, df, norm = tf, tdf, tnorm
				reduced = true
				break
			}
			step.Mul(step, half)
		}
		if !reduced {
			break
		}
	}

	root, _ := x.Float64()
	return root, false
}
