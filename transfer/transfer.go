// Package transfer implements the two user-facing interpretations of a
// curve as a transfer function T(x): Sensitivity (T(x) = x*S(x)) and Gain
// (T(x) = integral of G from 0 to x). Both expose the same Func interface
// so the subdivider and spline builder don't care which interpretation
// produced the target function they're approximating.
package transfer

import (
	"math"

	"github.com/inputaccel/curves/curve"
	"github.com/inputaccel/curves/jet"
	"github.com/inputaccel/curves/numeric"
)

// machineEpsilon is the threshold below which x is treated as the origin,
// where the product rule that defines T(x) collapses and a direct
// evaluation is used instead.
const machineEpsilon = 2.220446049250313e-16

// Func is a transfer function: Eval returns a Jet carrying (T(x), G(x)),
// and CriticalPoints forwards the underlying curve's points of reduced
// smoothness, filtered to the caller's domain.
type Func interface {
	Eval(x float64) jet.Jet
	CriticalPoints(domainMax float64) []float64
}

// Antiderivative is implemented by curves with a closed-form antiderivative
// F, allowing Gain to evaluate T(x) = F(x) - F(0) analytically instead of
// by numeric quadrature.
type Antiderivative interface {
	Antiderivative(x float64) float64
}

func filterCriticalPoints(points []float64, domainMax float64) []float64 {
	out := make([]float64, 0, len(points))
	for _, p := range points {
		if p <= domainMax {
			out = append(out, p)
		}
	}
	return out
}

// Sensitivity interprets the underlying curve as S(x): T(x) = x*S(x),
// T'(x) = S(x) + x*S'(x). At x < epsilon the product rule collapses and
// the curve's at_0 value stands in directly for T'(0).
type Sensitivity struct {
	curve curve.Curve
}

// NewSensitivity wraps c as a Sensitivity transfer function.
func NewSensitivity(c curve.Curve) Sensitivity { return Sensitivity{curve: c} }

// Eval returns a Jet carrying (T(x), T'(x)).
func (s Sensitivity) Eval(x float64) jet.Jet {
	if x < machineEpsilon {
		return jet.Jet{A: 0, V: s.curve.At0()}
	}
	j := s.curve.EvalJet(jet.Var(x))
	return jet.Jet{A: x * j.A, V: j.A + x*j.V}
}

// CriticalPoints forwards the underlying curve's critical points, filtered
// to domainMax.
func (s Sensitivity) CriticalPoints(domainMax float64) []float64 {
	return filterCriticalPoints(s.curve.CriticalPoints(), domainMax)
}

// gainPanelWidth bounds the width of each composite Gauss-5 panel used by
// Gain's numeric-integration path: narrow enough that a degree-9-exact
// five-node rule per panel holds the composite error well under the
// subdivider's tolerance even for the curve's steepest regions.
const gainPanelWidth = 1.0 / 64

// Gain interprets the underlying curve as G(x) = T'(x): T(x) is the
// integral of G from 0 to x. If the curve provides a closed-form
// antiderivative F, T(x) = F(x) - F(0) is evaluated analytically;
// otherwise T(x) is recomputed from 0 to x as a fresh composite Gauss-5
// quadrature on every call. The subdivider's priority-queue-driven
// refinement samples the domain in error order, not left to right, so an
// incremental accumulator keyed on "the previous call's x" would silently
// return a stale value whenever a later call's x is behind the last one;
// recomputing the full [0,x] integral each time has no such ordering
// requirement at the cost of repeated work, acceptable for a builder that
// runs once per profile change.
type Gain struct {
	curve curve.Curve
	anti  func(x float64) float64
}

// NewGain wraps c as a Gain transfer function, using c's Antiderivative
// method when available.
func NewGain(c curve.Curve) *Gain {
	g := &Gain{curve: c}
	if a, ok := c.(Antiderivative); ok {
		g.anti = a.Antiderivative
	}
	return g
}

// Eval returns a Jet carrying (T(x), G(x)). Calls may arrive in any order;
// Eval carries no state between them.
func (g *Gain) Eval(x float64) jet.Jet {
	if g.anti != nil {
		return jet.Jet{A: g.anti(x) - g.anti(0), V: g.curve.EvalReal(x)}
	}
	return jet.Jet{A: g.integrate(x), V: g.curve.EvalReal(x)}
}

// integrate computes the integral of G from 0 to x as a sum of fixed-width
// composite Gauss-5 panels.
func (g *Gain) integrate(x float64) float64 {
	if x <= 0 {
		return 0
	}
	panels := int(math.Ceil(x / gainPanelWidth))
	if panels < 1 {
		panels = 1
	}
	width := x / float64(panels)
	sum := 0.0
	a := 0.0
	for i := 0; i < panels; i++ {
		b := a + width
		sum += numeric.Gauss5(g.curve.EvalReal, a, b)
		a = b
	}
	return sum
}

// CriticalPoints forwards the underlying curve's critical points, filtered
// to domainMax.
func (g *Gain) CriticalPoints(domainMax float64) []float64 {
	return filterCriticalPoints(g.curve.CriticalPoints(), domainMax)
}
