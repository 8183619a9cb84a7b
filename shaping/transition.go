// Package shaping implements the input-shaping pipeline: a normalized
// transition function glued between a flat/linear region (ease-in) or a
// linear/flat region (ease-out), exposing the value and its first two
// derivatives symbolically so the subdivider never needs numeric
// differencing.
package shaping

import "github.com/inputaccel/curves/numeric"

// transitionFunc is a normalized function P: [0,1] -> [0, H] with
// P(0)=0, P(1)=H=At1(), and P''/P''' zero at both endpoints.
// smootherStepIntegral has P'(0)=0, P'(1)=1 (ease-in); reflected swaps
// these to P'(0)=1, P'(1)=0 (ease-out). Eval returns (P(t), P'(t), P''(t)).
type transitionFunc interface {
	At1() float64
	Eval(t float64) (value, first, second float64)
}

// smootherStepIntegral is the integral of the smootherstep polynomial,
// P(t) = t^4(t^2 - 3t + 2.5) = t^6 - 3t^5 + 2.5t^4, the reference
// transition function: C3-continuous at both endpoints, with
// P(0)=0, P(1)=0.5, P'(0)=0, P'(1)=1, P''(0)=P''(1)=0.
type smootherStepIntegral struct{}

const (
	sspC0 = 1.0
	sspC1 = -3.0
	sspC2 = 2.5
)

func (smootherStepIntegral) At1() float64 { return sspC0 + sspC1 + sspC2 }

func (smootherStepIntegral) Eval(t float64) (value, first, second float64) {
	t2 := t * t
	t3 := t2 * t
	t4 := t2 * t2
	value = t4 * (t2 + sspC1*t + sspC2)
	first = t3 * (6*t2 - 15*t + 10)
	second = 30 * t2 * (t-1)*(t-1)
	return value, first, second
}

// reflected composes a transition function to reflect it about (1, at_1):
// R(t) = at1 - P(1-t). R'(t) = P'(1-t), R''(t) = -P''(1-t).
type reflected struct {
	inner transitionFunc
}

func (r reflected) At1() float64 { return r.inner.At1() }

func (r reflected) Eval(t float64) (value, first, second float64) {
	pv, pf, ps := r.inner.Eval(1 - t)
	return r.inner.At1() - pv, pf, -ps
}

// transition glues the reference transition function into a segment of
// the caller's choosing: domain [x0, x0+width), range [0, height].
type transition struct {
	x0, width float64
	fn        transitionFunc
}

func newTransition(x0, width float64, fn transitionFunc) transition {
	return transition{x0: x0, width: width, fn: fn}
}

func (tr transition) height() float64 { return tr.width * tr.fn.At1() }

// eval returns (U(x), U'(x), U''(x)) for x within [x0, x0+width).
func (tr transition) eval(x float64) (value, first, second float64) {
	xn := (x - tr.x0) / tr.width
	pv, pf, ps := tr.fn.Eval(xn)
	value = pv * tr.width
	first = pf
	second = ps / tr.width
	return value, first, second
}

// inverse solves eval(x)=y for x, via bisection on the normalized domain.
func (tr transition) inverse(y float64) float64 {
	yn := y / tr.width
	tn := numeric.InvertByPartition(func(t float64) float64 {
		v, _, _ := tr.fn.Eval(t)
		return v
	}, yn, 1e-12)
	return tn*tr.width + tr.x0
}
