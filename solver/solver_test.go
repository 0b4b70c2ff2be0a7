package solver_test

import (
	"math"
	"testing"

	"github.com/db47h/decimal"

	"github.com/meenmo/tvmlib/solver"
)

// sqrt2 is the residual x^2 - 2 with derivative 2x.
func sqrt2(x float64) (float64, float64) {
	return x*x - 2, 2 * x
}

func TestNewtonSolvesSqrtTwo(t *testing.T) {
	t.Parallel()

	root, converged := solver.Newton(sqrt2, solver.Config{
		Tolerance:     1e-12,
		MaxIterations: 50,
		InitialGuess:  1.0,
	})
	if !converged {
		t.Fatalf("expected convergence, got last iterate %v", root)
	}
	if math.Abs(root-math.Sqrt2) > 1e-9 {
		t.Fatalf("root mismatch: got %.12f want %.12f", root, math.Sqrt2)
	}
}

func TestNewtonExhaustsCapSilently(t *testing.T) {
	t.Parallel()

	root, converged := solver.Newton(sqrt2, solver.Config{
		Tolerance:     1e-15,
		MaxIterations: 2,
		InitialGuess:  1.0,
	})
	if converged {
		t.Fatal("expected cap exhaustion")
	}
	// Two steps from 1.0 already land near the root; the last iterate must
	// come back rather than an error.
	if math.Abs(root-math.Sqrt2) > 1e-2 {
		t.Fatalf("last iterate too far off: got %.12f want around %.12f", root, math.Sqrt2)
	}
}

func TestNewtonStopsOnFlatDerivative(t *testing.T) {
	t.Parallel()

	flat := func(x float64) (float64, float64) { return 1.0, 0.0 }
	root, converged := solver.Newton(flat, solver.Config{
		Tolerance:     1e-12,
		MaxIterations: 50,
		InitialGuess:  3.0,
	})
	if converged {
		t.Fatal("expected no convergence on a flat residual")
	}
	if root != 3.0 {
		t.Fatalf("expected the initial guess back, got %v", root)
	}
}

func TestNewtonDecimalSolvesSqrtTwo(t *testing.T) {
	t.Parallel()

	ffp := func(x *decimal.Decimal) (*decimal.Decimal, *decimal.Decimal) {
		two := decimal.NewDecimal(2).SetPrec(34)
		f := new(decimal.Decimal).SetPrec(34).Mul(x, x)
		f.Sub(f, two)
		df := new(decimal.Decimal).SetPrec(34).Mul(two, x)
		return f, df
	}

	root, converged := solver.NewtonDecimal(ffp, solver.Config{
		Tolerance:     1e-16,
		MaxIterations: 100,
		InitialGuess:  1.0,
	})
	if !converged {
		t.Fatalf("expected convergence, got last iterate %v", root)
	}
	if math.Abs(root-math.Sqrt2) > 1e-12 {
		t.Fatalf("root mismatch: got %.15f want %.15f", root, math.Sqrt2)
	}
}

func TestNewtonDecimalRecoversFromOvershoot(t *testing.T) {
	t.Parallel()

	// f(x) = 1/x - 1/4 has its root at 4, but a raw Newton step from 10
	// jumps across the pole to a negative iterate. The halving search has
	// to pull the step back.
	quarter := decimal.NewDecimal(0.25).SetPrec(34)
	one := decimal.NewDecimal(1).SetPrec(34)
	ffp := func(x *decimal.Decimal) (*decimal.Decimal, *decimal.Decimal) {
		f := new(decimal.Decimal).SetPrec(34).Quo(one, x)
		f.Sub(f, quarter)
		sq := new(decimal.Decimal).SetPrec(34).Mul(x, x)
		df := new(decimal.Decimal).SetPrec(34).Quo(one, sq)
		df.Neg(df)
		return f, df
	}

	root, converged := solver.NewtonDecimal(ffp, solver.Config{
		Tolerance:     1e-16,
		MaxIterations: 100,
		InitialGuess:  10.0,
	})
	if !converged {
		t.Fatalf("expected convergence, got last iterate %v", root)
	}
	if math.Abs(root-4.0) > 1e-12 {
		t.Fatalf("root mismatch: got %.15f want 4", root)
	}
}
