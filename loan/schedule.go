package loan

import (
	"fmt"
	"math"
)

// Installment is one period of an amortization schedule. Payment,
// Interest and Principal carry the loan's sign convention. Balance is the
// remaining balance after the period's installment and lands on the
// loan's future value at the final period.
type Installment struct {
	Period    int
	Payment   float64
	Interest  float64
	Principal float64
	Balance   float64
}

// Schedule amortizes the loan period by period at its computed
// installment. Duration must be a positive whole number of periods.
//
// A zero-rate loan amortizes linearly: the annuity factors degenerate,
// but their limit is exact, so the schedule stays finite.
func (l Loan) Schedule() ([]Installment, error) {
	n := l.duration
	if n < 1 || n != math.Trunc(n) {
		return nil, fmt.Errorf("Schedule: duration must be a positive whole number of periods, got %g", n)
	}

	r := l.PeriodicRate()
	payment := l.Pmt()

	rows := make([]Installment, 0, int(n))
	for p := 1; p <= int(n); p++ {
		var interest float64
		switch {
		case r == 0:
			interest = 0
		case l.timing == TimingBeginning && p == 1:
			interest = 0
		case l.timing == TimingBeginning:
			interest = l.remainingBalance(p) * r / (1 + r)
		default:
			interest = l.remainingBalance(p) * r
		}

		var balance float64
		if r == 0 {
			balance = -(l.presentValue + payment*float64(p))
		} else {
			sub := l
			sub.duration = float64(p)
			balance = sub.FVWithPayment(payment)
		}

		rows = append(rows, Installment{
			Period:    p,
			Payment:   payment,
			Interest:  interest,
			Principal: payment - interest,
			Balance:   balance,
		})
	}
	return rows, nil
}
