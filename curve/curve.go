// Package curve implements the parametric curve families the transfer
// function adapters and subdivider build on. A Curve exposes twin
// EvalReal/EvalJet methods rather than a single generic Eval, since the
// transcendental lifts (exp, log, tanh, pow) aren't expressible behind a
// single Go generic constraint -- see package jet's doc comment.
package curve

import "github.com/inputaccel/curves/jet"

// Curve is a one-dimensional parametric family with at least one point of
// reduced smoothness (a critical point) that the spline builder must honor
// as a knot.
type Curve interface {
	// EvalReal evaluates the curve at a plain scalar x.
	EvalReal(x float64) float64
	// EvalJet evaluates the curve at x, propagating the incoming
	// derivative x.V through the chain rule.
	EvalJet(x jet.Jet) jet.Jet
	// CriticalPoints lists points of reduced smoothness that must be
	// knots of any spline approximating this curve.
	CriticalPoints() []float64
	// At0 is the curve's value in the limit as x approaches zero.
	At0() float64
}
