package loan

import (
	"fmt"
	"math"
)

// annuityFactors returns (1+r)^n together with the annuity factor,
// substituting the linear limit n when the rate is zero.
func (l Loan) annuityFactors() (factor, af float64) {
	r := l.PeriodicRate()
	factor = math.Pow(1+r, l.duration)
	if r == 0 {
		return factor, l.duration
	}
	return factor, (factor - 1) * (1 + r*float64(l.timing)) / r
}

// Pmt returns the per-period installment that amortizes the loan from its
// amount down to its future value over its duration.
func (l Loan) Pmt() float64 {
	factor, af := l.annuityFactors()
	return -(l.futureValue + l.presentValue*factor) / af
}

// FV returns the balance after the final period using the loan's own
// payment field, which must be present.
func (l Loan) FV() (float64, error) {
	if l.payment == nil {
		return 0, fmt.Errorf("FV: payment is required: %w", ErrMissingArgument)
	}
	return l.FVWithPayment(*l.payment), nil
}

// FVWithPayment is FV with an explicit per-period payment. It assumes a
// non-zero periodic rate: at a zero rate the annuity term is 0/0 and the
// result is NaN.
func (l Loan) FVWithPayment(payment float64) float64 {
	r := l.PeriodicRate()
	factor := math.Pow(1+r, l.duration)
	af := (factor - 1) * (1 + r*float64(l.timing)) / r
	return -(l.presentValue*factor + payment*af)
}

// PV returns the value today of the future value plus the payment stream.
// An absent payment contributes nothing. At a zero rate the annuity factor
// takes its linear limit n, so PV stays finite where FV does not.
func (l Loan) PV() float64 {
	factor, af := l.annuityFactors()
	var payment float64
	if l.payment != nil {
		payment = *l.payment
	}
	return -(l.futureValue + payment*af) / factor
}

// IPmt returns the interest portion of the installment for the loan's
// period field, which must be present.
//
// The balance entering period p is the future value of running the loan
// for the p-1 preceding periods at its own installment. With
// beginning-of-period timing the first installment carries no interest
// and later ones discount the accrued interest back one period.
func (l Loan) IPmt() (float64, error) {
	if l.period == nil {
		return 0, fmt.Errorf("IPmt: period is required: %w", ErrMissingArgument)
	}
	period := *l.period
	r := l.PeriodicRate()
	raw := l.remainingBalance(period) * r

	if l.timing == TimingBeginning {
		if period == 1 {
			return 0, nil
		}
		return raw / (1 + r), nil
	}
	return raw, nil
}

// PPmt returns the principal portion of the installment for the loan's
// period: the installment less its interest portion.
func (l Loan) PPmt() (float64, error) {
	interest, err := l.IPmt()
	if err != nil {
		return 0, fmt.Errorf("PPmt: %w", err)
	}
	return l.Pmt() - interest, nil
}

// Nper returns the number of periods needed to amortize the loan at its
// own payment field, which must be present.
func (l Loan) Nper() (float64, error) {
	if l.payment == nil {
		return 0, fmt.Errorf("Nper: payment is required: %w", ErrMissingArgument)
	}
	r := l.PeriodicRate()
	base := 1 + r
	if base <= 0 {
		return 0, fmt.Errorf("Nper: log undefined for periodic rate %g: %w", r, ErrMathDomain)
	}

	z := *l.payment * (1 + r*float64(l.timing)) / r
	arg := (z - l.futureValue) / (l.presentValue + z)
	if arg <= 0 {
		return 0, fmt.Errorf("Nper: log of non-positive value %g: %w", arg, ErrMathDomain)
	}
	return math.Log(arg) / math.Log(base), nil
}

// remainingBalance is the balance at the start of the given 1-based
// period. The shortened copy keeps rate, amount and timing; the payment
// is the full loan's installment.
func (l Loan) remainingBalance(period int) float64 {
	payment := l.Pmt()
	sub := l
	sub.duration = float64(period - 1)
	return sub.FVWithPayment(payment)
}
