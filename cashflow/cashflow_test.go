package cashflow_test

import (
	"math"
	"testing"

	"github.com/meenmo/tvmlib/cashflow"
)

func TestNPV(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		rate   float64
		values []float64
		want   float64
	}{
		{"discounted project", 0.2, []float64{-1000, 100, 100, 100}, -789.3518518518517},
		{"single value is undiscounted", 0.2, []float64{250}, 250},
		{"empty series", 0.2, nil, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := cashflow.NPV(tc.rate, tc.values)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("NPV mismatch: got %.12f want %.12f", got, tc.want)
			}
		})
	}
}

func TestNPVOrderSignificant(t *testing.T) {
	t.Parallel()

	a := cashflow.NPV(0.1, []float64{-1000, 600, 400})
	b := cashflow.NPV(0.1, []float64{-1000, 400, 600})
	if math.Abs(a-b) < 1e-9 {
		t.Fatalf("expected order to matter: %.12f vs %.12f", a, b)
	}
}

func TestNPVRateMinusOne(t *testing.T) {
	t.Parallel()

	got := cashflow.NPV(-1, []float64{100, 100})
	if !math.IsInf(got, 1) {
		t.Fatalf("expected +Inf, got %v", got)
	}
}

func TestIRR(t *testing.T) {
	t.Parallel()

	got := cashflow.IRR([]float64{-4000, 1200, 1410, 1875, 1050})
	want := 0.14299344106053188
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("IRR mismatch: got %.17f want %.17f", got, want)
	}
}

func TestIRRZeroesNPV(t *testing.T) {
	t.Parallel()

	values := []float64{-2500, 800, 900, 1100, 300}
	rate := cashflow.IRR(values)
	if npv := cashflow.NPV(rate, values); math.Abs(npv) > 1e-6 {
		t.Fatalf("NPV at IRR should vanish: got %.12f at rate %.12f", npv, rate)
	}
}

func TestIRROneSidedSeries(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		values []float64
	}{
		{"all inflows", []float64{100, 200, 300}},
		{"all outflows", []float64{-100, -200}},
		{"zeros count as inflows", []float64{0, 0}},
		{"empty", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := cashflow.IRR(tc.values); got != 0 {
				t.Fatalf("expected 0, got %.12f", got)
			}
		})
	}
}

func TestMIRR(t *testing.T) {
	t.Parallel()

	got := cashflow.MIRR([]float64{100, 200, -50, 300, -200}, 0.05, 0.06)
	want := 0.3428233878421769
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("MIRR mismatch: got %.16f want %.16f", got, want)
	}
}

func TestMIRROneSidedSeries(t *testing.T) {
	t.Parallel()

	if got := cashflow.MIRR([]float64{100, 200}, 0.05, 0.06); got != 0 {
		t.Fatalf("expected 0 for all inflows, got %.12f", got)
	}
	if got := cashflow.MIRR([]float64{-100, -200}, 0.05, 0.06); got != 0 {
		t.Fatalf("expected 0 for all outflows, got %.12f", got)
	}
}

func TestMIRROrderDependent(t *testing.T) {
	t.Parallel()

	a := cashflow.MIRR([]float64{100, 200, -50, 300, -200}, 0.05, 0.06)
	b := cashflow.MIRR([]float64{-50, 100, 200, -200, 300}, 0.05, 0.06)
	if math.Abs(a-b) < 1e-9 {
		t.Fatalf("expected order to matter: %.12f vs %.12f", a, b)
	}
}
