// Package cashflow aggregates arbitrary cash-flow series: net present
// value, internal rate of return and modified internal rate of return.
//
// A series is ordered, one entry per period, 0-based: the first entry sits
// at time zero and is never discounted. Entries are signed, outflows
// negative and inflows positive.
package cashflow

import "math"

// NPV discounts values at the given per-period rate and sums them. Order
// is significant. A rate of -1 is not guarded; IEEE infinities propagate
// into the sum.
func NPV(rate float64, values []float64) float64 {
	var total float64
	for k, v := range values {
		total += v / math.Pow(1+rate, float64(k))
	}
	return total
}

// MIRR returns the modified internal rate of return of values, financing
// outflows at financeRate and reinvesting inflows at reinvestRate.
//
// The series splits element-wise into an inflow and an outflow series of
// the same length, zero-filled so every entry keeps its period. A series
// with no inflows or no outflows returns 0.
func MIRR(values []float64, financeRate, reinvestRate float64) float64 {
	inflows := make([]float64, len(values))
	outflows := make([]float64, len(values))
	var anyIn, anyOut bool
	for k, v := range values {
		if v >= 0 {
			inflows[k] = v
			anyIn = anyIn || v > 0
		} else {
			outflows[k] = v
			anyOut = true
		}
	}
	if !anyIn || !anyOut {
		return 0
	}

	fv := math.Abs(NPV(reinvestRate, inflows))
	pv := math.Abs(NPV(financeRate, outflows))
	n := float64(len(values))
	return math.Pow(fv/pv, 1/(n-1))*(1+reinvestRate) - 1
}
