package main

import (
	"fmt"
	"log"

	"github.com/meenmo/tvmlib/cashflow"
	"github.com/meenmo/tvmlib/loan"
)

func main() {
	l := loan.New(loan.Parameters{
		NominalAnnualRate: 0.1,
		Duration:          12,
		Amount:            1000,
	})

	fmt.Printf("Monthly payment: %.2f\n", l.Pmt())

	rows, err := l.Schedule()
	if err != nil {
		log.Fatal(err)
	}
	var totalInterest float64
	for _, row := range rows {
		totalInterest += row.Interest
	}
	fmt.Printf("Total interest over %d periods: %.2f\n", len(rows), totalInterest)

	series := []float64{-4000, 1200, 1410, 1875, 1050}
	fmt.Printf("NPV at 20%%: %.2f\n", cashflow.NPV(0.2, series))
	fmt.Printf("IRR: %.6f\n", cashflow.IRR(series))
	fmt.Printf("MIRR (finance 5%%, reinvest 6%%): %.6f\n", cashflow.MIRR(series, 0.05, 0.06))
}
