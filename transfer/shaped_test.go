package transfer

import (
	"math"
	"testing"

	"github.com/inputaccel/curves/shaping"
)

func TestShapedValueComposesInner(t *testing.T) {
	sh := shaping.NewEaseOut(10, 5)
	inner := NewSensitivity(linearCurve{m: 0, b: 2}) // T(x) = 2x
	s := NewShaped(sh, inner)

	for _, v := range []float64{0, 3, 9.9, 11, 13, 20} {
		u, _, _ := sh.Eval(v)
		got := s.Eval(v)
		want := inner.Eval(u)
		if got.A != want.A {
			t.Fatalf("Eval(%v).A = %v, want inner at U(v) = %v", v, got.A, want.A)
		}
	}
}

func TestShapedDerivativeFollowsChainRule(t *testing.T) {
	sh := shaping.NewEaseOut(10, 5)
	inner := NewSensitivity(linearCurve{m: 2, b: 1})
	s := NewShaped(sh, inner)

	h := 1e-6
	for _, v := range []float64{2, 11, 12.5, 14} {
		numeric := (s.Eval(v+h).A - s.Eval(v-h).A) / (2 * h)
		analytic := s.Eval(v).V
		if math.Abs(numeric-analytic) > 1e-4 {
			t.Fatalf("at v=%v: analytic derivative %v vs numeric %v", v, analytic, numeric)
		}
	}
}

func TestShapedFlatBeyondCeiling(t *testing.T) {
	sh := shaping.NewEaseOut(10, 5)
	inner := NewSensitivity(linearCurve{m: 1, b: 1})
	s := NewShaped(sh, inner)

	// Beyond the ease-out ceiling U is constant, so T and its derivative
	// freeze.
	a, b := s.Eval(16), s.Eval(100)
	if a.A != b.A {
		t.Fatalf("Eval beyond ceiling not flat: %v vs %v", a.A, b.A)
	}
	if a.V != 0 {
		t.Fatalf("derivative beyond ceiling = %v, want 0", a.V)
	}
}

func TestShapedCriticalPointsMergeAndMapBack(t *testing.T) {
	sh := shaping.NewEaseOut(10, 5)
	// Inner critical point at u=5 sits in the shaper's linear region, so it
	// maps back to v=5 unchanged.
	inner := NewSensitivity(linearCurve{m: 1, criticalPoints: []float64{5}})
	s := NewShaped(sh, inner)

	got := s.CriticalPoints(20)
	want := []float64{5, 10, 15}
	if len(got) != len(want) {
		t.Fatalf("CriticalPoints(20) = %v, want %v", got, want)
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("CriticalPoints(20)[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
