// Package errmetric implements the build-time accuracy accumulator: max
// and RMS absolute/relative error against a reference function, with
// Kahan-compensated summation so the sum-of-squares doesn't drift over the
// many samples a spline build evaluates.
package errmetric

import (
	"fmt"
	"math"

	"github.com/inputaccel/curves/wide"
)

// relativeErrorFloor is the reference magnitude below which a relative
// error sample is skipped: division by a near-zero reference would report
// a meaningless, unbounded relative error.
const relativeErrorFloor = 1e-12

// kahanSum accumulates a running sum with compensation for the low-order
// bits lost to each addition.
type kahanSum struct {
	sum, compensation float64
}

// add implements the canonical Kahan summation step: c = (t-s)-y; s = t.
func (k *kahanSum) add(x float64) {
	y := x - k.compensation
	t := k.sum + y
	k.compensation = (t - k.sum) - y
	k.sum = t
}

// Accumulator tracks the error between an approximation and a reference
// function across a sequence of samples.
type Accumulator struct {
	maxAbs *wide.ArgExtremum
	maxRel *wide.ArgExtremum

	sseAbs kahanSum
	sseRel kahanSum
	n      int
	nRel   int
}

// NewAccumulator returns an empty Accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{
		maxAbs: wide.NewArgMax(),
		maxRel: wide.NewArgMax(),
	}
}

// Sample presents one (x, approx, reference) triple to the accumulator.
func (a *Accumulator) Sample(x, approx, reference float64) {
	absErr := math.Abs(approx - reference)
	a.maxAbs.Offer(x, absErr)
	a.sseAbs.add(absErr * absErr)
	a.n++

	if math.Abs(reference) >= relativeErrorFloor {
		relErr := absErr / math.Abs(reference)
		a.maxRel.Offer(x, relErr)
		a.sseRel.add(relErr * relErr)
		a.nRel++
	}
}

// MaxAbsErr returns the largest absolute error observed and the abscissa
// it occurred at.
func (a *Accumulator) MaxAbsErr() (err, at float64) {
	if !a.maxAbs.Valid() {
		return 0, 0
	}
	return a.maxAbs.Value(), a.maxAbs.Arg()
}

// MaxRelErr returns the largest relative error observed (over samples
// where the reference magnitude cleared the floor) and its abscissa.
func (a *Accumulator) MaxRelErr() (err, at float64) {
	if !a.maxRel.Valid() {
		return 0, 0
	}
	return a.maxRel.Value(), a.maxRel.Arg()
}

// RMSEAbs returns the root-mean-square absolute error over all samples.
func (a *Accumulator) RMSEAbs() float64 {
	if a.n == 0 {
		return 0
	}
	return math.Sqrt(a.sseAbs.sum / float64(a.n))
}

// RMSERel returns the root-mean-square relative error over samples whose
// reference magnitude cleared the floor.
func (a *Accumulator) RMSERel() float64 {
	if a.nRel == 0 {
		return 0
	}
	return math.Sqrt(a.sseRel.sum / float64(a.nRel))
}

// String renders a one-line summary suitable for a build log.
func (a *Accumulator) String() string {
	maxAbs, atAbs := a.MaxAbsErr()
	maxRel, atRel := a.MaxRelErr()
	return fmt.Sprintf(
		"max_abs_err=%.3e@%.6g max_rel_err=%.3e@%.6g rmse_abs=%.3e rmse_rel=%.3e n=%d",
		maxAbs, atAbs, maxRel, atRel, a.RMSEAbs(), a.RMSERel(), a.n,
	)
}
