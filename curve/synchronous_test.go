package curve

import (
	"math"
	"testing"

	"github.com/inputaccel/curves/jet"
)

func TestSynchronousIdentityAtCusp(t *testing.T) {
	c := NewSynchronous(1.5, 1.0, 5.0, 0.5)
	got := c.EvalReal(c.CriticalPoints()[0])
	if math.Abs(got-1.0) > 1e-9 {
		t.Fatalf("EvalReal(p) = %v, want 1.0", got)
	}
}

func TestSynchronousCuspContinuity(t *testing.T) {
	c := NewSynchronous(10, 1, 8.3, 0.5)
	p := c.CriticalPoints()[0]
	got := c.EvalReal(p)
	if math.Abs(got-1.0) > 1e-5 {
		t.Fatalf("EvalReal(p) = %v, want ~1.0", got)
	}
	left := c.EvalJet(jet.Var(p - 2e-7))
	right := c.EvalJet(jet.Var(p + 2e-7))
	if math.Abs(left.V-right.V) > 1e-3 {
		t.Fatalf("one-sided slopes differ by %v, want < 1e-3", math.Abs(left.V-right.V))
	}
}

func TestSynchronousAt0MatchesLimit(t *testing.T) {
	c := NewSynchronous(1.5, 1.0, 5.0, 0.5)
	if got := c.At0(); math.Abs(got-1/1.5) > 1e-12 {
		t.Fatalf("At0() = %v, want %v", got, 1/1.5)
	}
	near := c.EvalReal(1e-300)
	if math.Abs(near-c.At0()) > 1e-12 {
		t.Fatalf("EvalReal near 0 = %v, want At0() = %v", near, c.At0())
	}
}

func TestSynchronousJetMatchesNumericDerivative(t *testing.T) {
	c := NewSynchronous(2.0, 1.2, 3.0, 0.3)
	x0 := 1.7
	h := 1e-6
	numeric := (c.EvalReal(x0+h) - c.EvalReal(x0-h)) / (2 * h)
	analytic := c.EvalJet(jet.Var(x0)).V
	if math.Abs(numeric-analytic) > 1e-4 {
		t.Fatalf("analytic derivative %v vs numeric %v differ too much", analytic, numeric)
	}
}

func TestSynchronousEvalMatchesEvalJetValue(t *testing.T) {
	c := NewSynchronous(1.5, 1.0, 5.0, 0.5)
	for _, x := range []float64{0.1, 1.0, 4.999, 5.0, 5.001, 20.0} {
		real := c.EvalReal(x)
		j := c.EvalJet(jet.Var(x))
		if math.Abs(real-j.A) > 1e-12 {
			t.Fatalf("x=%v: EvalReal=%v EvalJet.A=%v mismatch", x, real, j.A)
		}
	}
}
