package cashflow

import (
	"github.com/db47h/decimal"

	"github.com/meenmo/tvmlib/solver"
)

// Newton parameters for IRR. The residual is the NPV itself, evaluated in
// decimal arithmetic, so the tolerance bounds the residual magnitude.
const (
	irrTolerance = 1e-16
	irrMaxIter   = 100
	irrGuess     = 1.0
	irrPrec      = 34
)

// IRR returns the rate at which the series' net present value is zero.
//
// A one-sided series (no negative entries, or no non-negative entries;
// the empty series counts as one-sided) returns 0 without solving. If the
// solver runs out of iterations the last estimate is returned as is.
func IRR(values []float64) float64 {
	var pos, neg bool
	for _, v := range values {
		if v < 0 {
			neg = true
		} else {
			pos = true
		}
	}
	if !pos || !neg {
		return 0
	}

	rate, _ := solver.NewtonDecimal(npvResidual(values), solver.Config{
		Tolerance:     irrTolerance,
		MaxIterations: irrMaxIter,
		InitialGuess:  irrGuess,
	})
	return rate
}

// npvResidual builds the decimal NPV residual and its derivative in the
// rate:
//
//	f(x)  = Σ v_k / (1+x)^k
//	f'(x) = Σ -k · v_k / (1+x)^(k+1)
//
// Powers of (1+x) accumulate by repeated multiplication, so the whole
// evaluation stays at decimal precision.
func npvResidual(values []float64) func(x *decimal.Decimal) (fx, dfx *decimal.Decimal) {
	terms := make([]*decimal.Decimal, len(values))
	for k, v := range values {
		terms[k] = decimal.NewDecimal(v).SetPrec(irrPrec)
	}
	one := decimal.NewDecimal(1).SetPrec(irrPrec)

	return func(x *decimal.Decimal) (fx, dfx *decimal.Decimal) {
		base := new(decimal.Decimal).SetPrec(irrPrec).Add(one, x)
		fx = new(decimal.Decimal).SetPrec(irrPrec)
		dfx = new(decimal.Decimal).SetPrec(irrPrec)

		// pow tracks (1+x)^k across the loop.
		pow := new(decimal.Decimal).SetPrec(irrPrec).Set(one)
		for k, v := range terms {
			if k > 0 {
				pow.Mul(pow, base)
			}
			if v.Sign() == 0 {
				continue
			}
			term := new(decimal.Decimal).SetPrec(irrPrec).Quo(v, pow)
			fx.Add(fx, term)
			if k == 0 {
				continue
			}
			d := new(decimal.Decimal).SetPrec(irrPrec).Quo(term, base)
			d.Mul(d, decimal.NewDecimal(float64(k)).SetPrec(irrPrec))
			dfx.Sub(dfx, d)
		}
		return fx, dfx
	}
}
