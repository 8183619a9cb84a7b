package curve

import (
	"math"

	"github.com/inputaccel/curves/jet"
)

// cuspApproximationDistance is the half-width around the cusp p inside
// which the curve switches to a linear Taylor branch, avoiding the 0/0
// indeterminate form in the log(x/p) term as x -> p.
const cuspApproximationDistance = 1e-7

// Synchronous is the acceleration curve family
// f(x) = exp(sign(u) * L * tanh(|u|^k)^r), u = g*log(x/p), parameterized by
// motivity m (>1, the asymptotic gain ratio), gamma (a shape exponent),
// the cusp location p (the "1:1" synchronization speed), and smooth, a
// sharpness knob in (0, 0.5].
type Synchronous struct {
	m, l, g, p, k, r float64
}

// NewSynchronous constructs a Synchronous curve from validated parameters.
// smooth is expected in (0, 0.5]; the sharpness exponent k is derived as
// min(0.5/smooth, 32).
func NewSynchronous(motivity, gamma, p, smooth float64) Synchronous {
	l := math.Log(motivity)
	k := math.Min(0.5/smooth, 32)
	g := 0.0
	if l != 0 {
		// motivity 1 degenerates to the identity curve f(x)=1; gamma/l
		// would be infinite there and every branch already collapses to 1
		// with g=0.
		g = gamma / l
	}
	return Synchronous{
		m: motivity,
		l: l,
		g: g,
		p: p,
		k: k,
		r: 1 / k,
	}
}

// machineEpsilon mirrors std::numeric_limits<double>::epsilon(), the
// threshold below which x is treated as zero.
const machineEpsilon = 2.220446049250313e-16

// EvalReal evaluates the curve at a plain scalar x.
func (s Synchronous) EvalReal(x float64) float64 {
	if x < machineEpsilon {
		return 1 / s.m
	}
	displacement := x - s.p
	if math.Abs(displacement) <= cuspApproximationDistance {
		return 1 + (s.l*s.g/s.p)*displacement
	}
	u := s.g * math.Log(x/s.p)
	w := math.Tanh(math.Pow(math.Abs(u), s.k))
	return math.Exp(math.Copysign(s.l, u) * math.Pow(w, s.r))
}

// EvalJet evaluates the curve at x.A and propagates the incoming
// derivative x.V through the chain rule, using the closed-form derivative
// rather than nested dual numbers (faster, and exact away from the two
// branch boundaries).
func (s Synchronous) EvalJet(x jet.Jet) jet.Jet {
	if x.A < machineEpsilon {
		return jet.Jet{A: 1 / s.m}
	}
	displacement := x.A - s.p
	if math.Abs(displacement) <= cuspApproximationDistance {
		slope := s.l * s.g / s.p
		return jet.Jet{A: 1 + slope*displacement, V: slope * x.V}
	}

	u := s.g * math.Log(x.A/s.p)
	sign := math.Copysign(1, u)
	uAbs := math.Abs(u)

	uKm1 := math.Pow(uAbs, s.k-1)
	uK := uKm1 * uAbs
	w := math.Tanh(uK)
	wRm1 := math.Pow(w, s.r-1)
	wR := wRm1 * w

	f := math.Exp(sign * s.l * wR)
	sech2 := 1 - w*w
	fp := (f * s.l * s.g / x.A) * uKm1 * wRm1 * sech2

	return jet.Jet{A: f, V: fp * x.V}
}

// CriticalPoints returns the cusp location p, the Synchronous family's
// single point of reduced smoothness.
func (s Synchronous) CriticalPoints() []float64 { return []float64{s.p} }

// At0 is the curve's value in the limit as x -> 0, 1/motivity.
func (s Synchronous) At0() float64 { return 1 / s.m }
