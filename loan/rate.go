package loan

import (
	"math"

	"github.com/meenmo/tvmlib/solver"
)

// Default Newton parameters for Rate.
const (
	rateTolerance = 1e-6
	rateMaxIter   = 100
	rateGuess     = 0.1
)

// Rate solves for the periodic rate implied by the loan's amount, future
// value, payment and duration, under the default solver settings. If the
// iteration cap runs out the last estimate is returned as is.
func (l Loan) Rate() float64 {
	return l.RateWithConfig(solver.Config{
		Tolerance:     rateTolerance,
		MaxIterations: rateMaxIter,
		InitialGuess:  rateGuess,
	})
}

// RateWithConfig is Rate under caller-supplied solver settings.
func (l Loan) RateWithConfig(cfg solver.Config) float64 {
	rate, _ := solver.Newton(l.rateResidual, cfg)
	return rate
}

// rateResidual evaluates the annuity balance equation and its derivative
// in the periodic rate:
//
//	g(x)  = fv + (1+x)^n·pv + pmt·((1+x)^n - 1)·(x·T + 1)/x
//	g'(x) = n·pv·(1+x)^(n-1) + pmt·(n·(1+x)^(n-1)·(T + 1/x) - ((1+x)^n - 1)/x^2)
//
// where T is the timing (0 or 1). An absent payment contributes nothing.
func (l Loan) rateResidual(x float64) (gx, dgx float64) {
	var payment float64
	if l.payment != nil {
		payment = *l.payment
	}

	n := l.duration
	t := float64(l.timing)
	pow := math.Pow(1+x, n)
	powPrev := math.Pow(1+x, n-1)

	gx = l.futureValue + pow*l.presentValue + payment*(pow-1)*(x*t+1)/x
	dgx = n*l.presentValue*powPrev + payment*(n*powPrev*(t+1/x)-(pow-1)/(x*x))
	return gx, dgx
}
