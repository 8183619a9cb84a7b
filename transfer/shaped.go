package transfer

import (
	"sort"

	"github.com/inputaccel/curves/jet"
)

// Shaper is the input-shaping stage a Shaped transfer composes in front of
// another transfer function: it maps raw velocity v to shaped velocity U(v)
// and exposes the first two derivatives symbolically plus the inverse map.
// Both shaping.EaseIn and shaping.EaseOut satisfy it.
type Shaper interface {
	Eval(v float64) (value, first, second float64)
	Inverse(y float64) float64
	CriticalPoints() [2]float64
}

// Shaped bakes input shaping into a transfer function: T(v) = inner(U(v)),
// with the derivative propagated through the chain rule. The spline built
// from a Shaped target maps raw velocity to output directly, so the kernel
// evaluator never has to compose shaping at evaluation time.
type Shaped struct {
	shaper Shaper
	inner  Func
}

// NewShaped composes shaper in front of inner.
func NewShaped(shaper Shaper, inner Func) Shaped {
	return Shaped{shaper: shaper, inner: inner}
}

// Eval returns a Jet carrying (T(U(v)), T'(U(v)) * U'(v)).
func (s Shaped) Eval(v float64) jet.Jet {
	u, du, _ := s.shaper.Eval(v)
	j := s.inner.Eval(u)
	j.V *= du
	return j
}

// CriticalPoints merges the shaper's region breakpoints with the inner
// transfer function's critical points mapped back through the shaper's
// inverse, sorted and filtered to domainMax.
func (s Shaped) CriticalPoints(domainMax float64) []float64 {
	var out []float64
	for _, p := range s.shaper.CriticalPoints() {
		if p <= domainMax {
			out = append(out, p)
		}
	}
	uMax, _, _ := s.shaper.Eval(domainMax)
	for _, p := range s.inner.CriticalPoints(uMax) {
		if v := s.shaper.Inverse(p); v <= domainMax {
			out = append(out, v)
		}
	}
	sort.Float64s(out)
	return out
}
