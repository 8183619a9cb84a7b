// Package subdivide implements the adaptive cubic-spline subdivider:
// starting from Hermite cubics seeded at a curve's critical points, it
// refines whichever segment has the worst estimated error until every
// segment is within tolerance, the segment-count cap is hit, or segments
// can no longer be usefully split. Refinement order is a max-heap by
// estimated error, built with container/heap the same way the pack's own
// graph algorithms build their priority queues.
package subdivide

import (
	"container/heap"
	"math"

	"github.com/inputaccel/curves/jet"
	"github.com/inputaccel/curves/segment"
	"github.com/inputaccel/curves/transfer"
	"github.com/inputaccel/curves/wide"
)

// errorGridPoints is the number of interior samples the error estimator
// checks per segment; endpoints are excluded since the Hermite cubic
// interpolates them exactly.
const errorGridPoints = 16

// knotGrid is the quantization step of the knot-position grid, 2^-24.
const knotGrid = 1.0 / (1 << 24)

func quantizeKnot(v float64) float64 {
	return math.Round(v*(1<<24)) / (1 << 24)
}

// hermiteSegment is a Hermite cubic in monomial form over a local
// parameter t=(v-startV)/width in [0,1), plus its estimated error against
// the target function.
type hermiteSegment struct {
	startV, endV float64
	coeffs       [4]float64 // a,b,c,d: f(t) = ((a*t+b)*t+c)*t+d
	maxError     float64
	splitV       float64
}

func (h hermiteSegment) width() float64 { return h.endV - h.startV }

// hermiteFromJets builds the Hermite cubic interpolating (startV, y0) and
// (endV, y1), where y0/y1 carry the target function's value and its
// derivative with respect to v.
func hermiteFromJets(startV, endV float64, y0, y1 jet.Jet) [4]float64 {
	width := endV - startV
	m0 := y0.V * width
	m1 := y1.V * width
	return [4]float64{
		2*y0.A + m0 - 2*y1.A + m1,
		-3*y0.A - 2*m0 + 3*y1.A - m1,
		m0,
		y0.A,
	}
}

func hornerEval(coeffs [4]float64, t float64) float64 {
	return ((coeffs[0]*t+coeffs[1])*t+coeffs[2])*t + coeffs[3]
}

// estimateError samples the absolute difference between the target
// function and the Hermite approximation on a fixed interior grid,
// returning the maximum and the v-position it occurred at.
func estimateError(target transfer.Func, coeffs [4]float64, startV, width float64) (maxErr, splitV float64) {
	tracker := wide.NewArgMax()
	for i := 1; i <= errorGridPoints; i++ {
		t := float64(i) / float64(errorGridPoints+1)
		v := startV + t*width
		actual := target.Eval(v).A
		approx := hornerEval(coeffs, t)
		tracker.Offer(v, math.Abs(actual-approx))
	}
	return tracker.Value(), tracker.Arg()
}

func buildSegment(target transfer.Func, startV, endV float64, y0, y1 jet.Jet) hermiteSegment {
	coeffs := hermiteFromJets(startV, endV, y0, y1)
	maxErr, splitV := estimateError(target, coeffs, startV, endV-startV)
	return hermiteSegment{startV: startV, endV: endV, coeffs: coeffs, maxError: maxErr, splitV: splitV}
}

// pqItem is one entry in the refinement priority queue: the index of a
// segment in the pool, its estimated error, and a monotonic sequence
// number used to break ties by insertion order.
type pqItem struct {
	index    int
	maxError float64
	seq      int
}

type refinementQueue []pqItem

func (q refinementQueue) Len() int { return len(q) }
func (q refinementQueue) Less(i, j int) bool {
	if q[i].maxError != q[j].maxError {
		return q[i].maxError > q[j].maxError // max-heap
	}
	return q[i].seq < q[j].seq // stable insertion-order tie-break
}
func (q refinementQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *refinementQueue) Push(x any)   { *q = append(*q, x.(pqItem)) }
func (q *refinementQueue) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	*q = old[:n-1]
	return it
}

// Result is the subdivider's output: an ordered, gap-free sequence of
// normalized segments covering the input domain, their knot positions, and
// whether any segment hit the capacity limit still above tolerance.
type Result struct {
	Segments        []segment.Normalized
	KnotPositions   []float64
	PerSegmentError []float64
	CapacityLimited bool
}

// Build runs the seed/refine/drain/serialize algorithm: seeding a
// Hermite cubic between each adjacent pair of critical points,
// then repeatedly splitting the worst-error segment until the queue
// drains, the segment count reaches nMax, or a segment's width falls
// below 2*wMin.
func Build(target transfer.Func, criticalPoints []float64, eps float64, nMax int, wMin float64) Result {
	segments := make([]hermiteSegment, 0, nMax)
	successor := make([]int, 0, nMax) // successor[i] = index of i's logical successor, or -1
	var queue refinementQueue
	heap.Init(&queue)
	seq := 0

	push := func(h hermiteSegment) int {
		idx := len(segments)
		segments = append(segments, h)
		successor = append(successor, -1)
		return idx
	}

	enqueue := func(idx int) {
		if segments[idx].maxError > eps {
			heap.Push(&queue, pqItem{index: idx, maxError: segments[idx].maxError, seq: seq})
			seq++
		}
	}

	// Seed: one segment per adjacent pair of critical points. Knots live on
	// the quantized abscissa grid, so critical points are snapped to it
	// before the target is sampled; pairs that collapse onto the same grid
	// point are skipped.
	prevV := quantizeKnot(criticalPoints[0])
	prevJet := target.Eval(prevV)
	head := -1
	tail := -1
	for i := 1; i < len(criticalPoints); i++ {
		v := quantizeKnot(criticalPoints[i])
		if v <= prevV {
			continue
		}
		y := target.Eval(v)
		h := buildSegment(target, prevV, v, prevJet, y)
		idx := push(h)
		if head == -1 {
			head = idx
		} else {
			successor[tail] = idx
		}
		tail = idx
		enqueue(idx)
		prevV, prevJet = v, y
	}

	// Refine.
	for queue.Len() > 0 && len(segments) < nMax {
		top := heap.Pop(&queue).(pqItem)
		parent := segments[top.index]
		if parent.width() < 2*wMin {
			continue // best-effort: left in place as final
		}

		splitV := quantizeKnot(parent.splitV)
		minV, maxV := parent.startV+wMin, parent.endV-wMin
		if splitV < minV {
			splitV = minV
		}
		if splitV > maxV {
			splitV = maxV
		}

		splitJet := target.Eval(splitV)
		left := buildSegment(target, parent.startV, splitV, target.Eval(parent.startV), splitJet)
		right := buildSegment(target, splitV, parent.endV, splitJet, target.Eval(parent.endV))

		oldSuccessor := successor[top.index]
		segments[top.index] = left
		rightIdx := push(right)
		successor[top.index] = rightIdx
		successor[rightIdx] = oldSuccessor

		enqueue(top.index)
		enqueue(rightIdx)
	}

	// Drain: anything left in the queue is accepted as-is (already stored
	// in segments; no further action needed).

	return serialize(segments, successor, head, eps)
}

func serialize(segments []hermiteSegment, successor []int, head int, eps float64) Result {
	var result Result
	if head == -1 {
		return result
	}
	result.Segments = make([]segment.Normalized, 0, len(segments))
	result.KnotPositions = make([]float64, 0, len(segments)+1)
	result.PerSegmentError = make([]float64, 0, len(segments))

	idx := head
	result.KnotPositions = append(result.KnotPositions, segments[idx].startV)
	for idx != -1 {
		h := segments[idx]
		width := h.width()
		norm := segment.Normalized{
			Coeffs:   h.coeffs,
			InvWidth: 1 / width,
		}
		result.Segments = append(result.Segments, norm)
		result.KnotPositions = append(result.KnotPositions, h.endV)
		result.PerSegmentError = append(result.PerSegmentError, h.maxError)
		if h.maxError > eps {
			result.CapacityLimited = true
		}
		idx = successor[idx]
	}
	return result
}
