package transfer

import (
	"math"
	"testing"

	"github.com/inputaccel/curves/jet"
)

// linearCurve models f(x) = m*x + b: a minimal curve.Curve implementation
// for exercising composed adapters without pulling in Synchronous's
// transcendental branches.
type linearCurve struct {
	m, b           float64
	criticalPoints []float64
}

func (l linearCurve) EvalReal(x float64) float64 { return l.m*x + l.b }
func (l linearCurve) EvalJet(x jet.Jet) jet.Jet {
	return jet.Jet{A: l.m*x.A + l.b, V: l.m * x.V}
}
func (l linearCurve) CriticalPoints() []float64 { return l.criticalPoints }
func (l linearCurve) At0() float64              { return l.b }

// linearCurveWithAntiderivative adds a closed-form antiderivative
// F(x) = m*x^2/2 + b*x to linearCurve, for exercising Gain's analytic path.
type linearCurveWithAntiderivative struct {
	linearCurve
}

func (l linearCurveWithAntiderivative) Antiderivative(x float64) float64 {
	return l.m*x*x/2 + l.b*x
}

func TestSensitivityAtZeroUsesAt0(t *testing.T) {
	s := NewSensitivity(linearCurve{m: 2, b: 3})
	got := s.Eval(0)
	if got.A != 0 || got.V != 3 {
		t.Fatalf("Eval(0) = %+v, want {0,3}", got)
	}
}

func TestSensitivityProductRule(t *testing.T) {
	s := NewSensitivity(linearCurve{m: 2, b: 3})
	x := 4.0
	got := s.Eval(x)
	wantT := x * (2*x + 3)
	wantG := (2*x + 3) + x*2
	if math.Abs(got.A-wantT) > 1e-9 || math.Abs(got.V-wantG) > 1e-9 {
		t.Fatalf("Eval(%v) = %+v, want {%v,%v}", x, got, wantT, wantG)
	}
}

func TestSensitivityCriticalPointsFiltered(t *testing.T) {
	s := NewSensitivity(linearCurve{m: 1, criticalPoints: []float64{1, 5, 10}})
	got := s.CriticalPoints(6)
	if len(got) != 2 || got[0] != 1 || got[1] != 5 {
		t.Fatalf("CriticalPoints(6) = %v, want [1 5]", got)
	}
}

func TestGainNumericIntegrationMatchesAnalytic(t *testing.T) {
	g := NewGain(linearCurve{m: 2, b: 1}) // G(x) = 2x+1, T(x) = x^2+x
	for _, x := range []float64{1.0, 2.0, 3.0} {
		got := g.Eval(x)
		want := x*x + x
		if math.Abs(got.A-want) > 1e-6 {
			t.Fatalf("Gain numeric Eval(%v).A = %v, want %v", x, got.A, want)
		}
	}
}

func TestGainAnalyticPathUsesAntiderivative(t *testing.T) {
	g := NewGain(linearCurveWithAntiderivative{linearCurve{m: 2, b: 1}})
	got := g.Eval(3.0)
	want := 3.0*3.0 + 3.0
	if math.Abs(got.A-want) > 1e-9 {
		t.Fatalf("Gain analytic Eval(3).A = %v, want %v", got.A, want)
	}
}
