// Package loan implements the annuity mathematics of a fixed-payment
// loan: the per-period installment, present and future value, the
// interest/principal split of any period, the period count needed to
// amortize, and the implied periodic rate.
//
// Monetary values are signed: outflows negative, inflows positive. The
// closed forms depend on that convention, so callers must keep it.
// Compounding is always monthly; the periodic rate is the nominal annual
// rate over twelve.
package loan

import "errors"

// PaymentTiming selects where the installment falls within a period. The
// numeric values feed the annuity formulas directly.
type PaymentTiming int

const (
	// TimingEnd is an ordinary annuity: installments at period end.
	TimingEnd PaymentTiming = 0
	// TimingBeginning is an annuity due: installments at period start.
	TimingBeginning PaymentTiming = 1
)

// Sentinel errors classifying computation failures. Call sites wrap them
// with the operation name; classify with errors.Is.
var (
	// ErrMissingArgument reports an operation invoked without a field it
	// requires: the payment for FV and Nper, the period for IPmt and PPmt.
	ErrMissingArgument = errors.New("missing argument")
	// ErrMathDomain reports a logarithm evaluated outside its domain while
	// computing a period count.
	ErrMathDomain = errors.New("math domain")
)

// Parameters describes a loan to New. The zero value of every field is a
// usable default; in particular a zero Duration means a single period.
type Parameters struct {
	// NominalAnnualRate is the quoted annual rate in decimal form
	// (0.07 means 7%).
	NominalAnnualRate float64

	// Duration is the number of periods.
	Duration float64

	// Amount is the present value of the loan. Signed.
	Amount float64

	// FutureValue is the balance remaining after the final period. Signed.
	FutureValue float64

	// Payment is the per-period installment. nil means absent, which is
	// distinct from an explicit zero payment.
	Payment *float64

	// Period is the 1-based period that IPmt and PPmt report on.
	Period *int

	// Timing is the installment timing. Unknown values fall back to
	// TimingEnd.
	Timing PaymentTiming
}

// Loan is a normalized, immutable view of Parameters. Every operation is
// a pure function of the value; none mutate it.
type Loan struct {
	nominalRate  float64
	duration     float64
	presentValue float64
	futureValue  float64
	payment      *float64
	period       *int
	timing       PaymentTiming
}

// New normalizes p into a Loan: a zero duration becomes one period and an
// unrecognized timing becomes TimingEnd.
func New(p Parameters) Loan {
	duration := p.Duration
	if duration == 0 {
		duration = 1
	}
	timing := p.Timing
	if timing != TimingEnd && timing != TimingBeginning {
		timing = TimingEnd
	}

	l := Loan{
		nominalRate:  p.NominalAnnualRate,
		duration:     duration,
		presentValue: p.Amount,
		futureValue:  p.FutureValue,
		timing:       timing,
	}
	if p.Payment != nil {
		v := *p.Payment
		l.payment = &v
	}
	if p.Period != nil {
		v := *p.Period
		l.period = &v
	}
	return l
}

// PeriodicRate is the monthly rate: the nominal annual rate over twelve.
func (l Loan) PeriodicRate() float64 {
	return l.nominalRate / 12
}
