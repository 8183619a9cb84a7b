// Package spline implements the spline evaluator and the wire format that
// carries a built spline between the builder and the kernel hot path:
// Build runs the adaptive subdivider and packs its output;
// FromPacked/ToPacked round-trip the header-plus-segments byte layout;
// Eval does the knot lookup and fixed-point Horner evaluation.
//
// Eval is the one place in this module that genuinely runs in Q32.32
// fixed-point end to end, since it is the function the kernel hot path
// calls: the per-segment Hermite coefficients and reciprocal width are
// converted to Q32.32 once, at construction, rather than on every call,
// so Eval itself allocates nothing and does only integer arithmetic.
package spline

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/crypto/blake2b"

	"github.com/inputaccel/curves/fixed"
	"github.com/inputaccel/curves/log"
	"github.com/inputaccel/curves/segment"
	"github.com/inputaccel/curves/subdivide"
	"github.com/inputaccel/curves/transfer"
	"github.com/inputaccel/curves/wide"
)

const (
	wireMagic   = "CRVS"
	wireVersion = uint16(1)

	// headerBytes covers magic, version, segment_count, v_to_x, x_end_max.
	headerBytes = 4 + 2 + 2 + 8 + 8
	// maxSegments is the hard cap on segment count the subdivider and the
	// wire format's u16 segment_count both respect.
	maxSegments = 256
)

// FromPacked never panics on malformed input; it reports one of these.
var (
	ErrBadMagic             = errors.New("spline: bad magic")
	ErrBadVersion           = errors.New("spline: unsupported wire version")
	ErrTruncated            = errors.New("spline: truncated or malformed wire data")
	ErrTooManySegments      = errors.New("spline: segment_count exceeds 256")
	ErrNonMonotonicKnots    = errors.New("spline: knot positions not strictly increasing")
	ErrNotRepresentable     = errors.New("spline: value not representable in the target Q-format")
	ErrSubdividerEmptyBuild = errors.New("spline: subdivider produced no segments")
)

// evalSegment holds one segment's Hermite coefficients and reciprocal
// width pre-converted to Q32.32 raw integers, so Eval never does a
// float-to-fixed conversion on the hot path.
type evalSegment struct {
	coeffs   [4]int64 // Q32.32: f(t) = ((a*t+b)*t+c)*t+d
	invWidth int64    // Q32.32
}

// Spline is the immutable, built (or decoded) piecewise-cubic transfer
// function: a k-ary-searchable set of knots over packed Hermite segments,
// plus the domain rescale v_to_x. Safe for concurrent read-only use.
type Spline struct {
	packed  []segment.Packed
	eval    []evalSegment
	knots   []int64 // Q8.24 raw, strictly increasing, len(packed)+1
	vToX    int64   // Q32.32 raw
	xEndMax int64   // Q32.32 raw

	// Build-time diagnostics; not part of the wire format.
	segmentErrors   []float64
	capacityLimited bool
}

// SegmentCount returns the number of packed segments.
func (s *Spline) SegmentCount() int { return len(s.packed) }

// CapacityLimited reports whether the subdivider that produced this spline
// hit its segment cap before every segment met the build tolerance. Always
// false for a spline obtained via FromPacked (the wire format carries no
// per-segment residual error).
func (s *Spline) CapacityLimited() bool { return s.capacityLimited }

// SegmentErrors returns the per-segment build-time error estimates, or nil
// for a spline obtained via FromPacked.
func (s *Spline) SegmentErrors() []float64 { return s.segmentErrors }

func knotToQ32_32(knotQ8_24 int64) int64 { return knotQ8_24 << 8 } // 32-24 extra frac bits

func decodeEvalSegments(packed []segment.Packed) ([]evalSegment, error) {
	out := make([]evalSegment, len(packed))
	for i, p := range packed {
		norm := segment.Unpack(p)
		var es evalSegment
		for c := 0; c < 4; c++ {
			q, ok := fixed.NewQ32_32(norm.Coeffs[c])
			if !ok {
				return nil, fmt.Errorf("%w: segment %d coeff %d = %v", ErrNotRepresentable, i, c, norm.Coeffs[c])
			}
			es.coeffs[c] = q.Raw()
		}
		q, ok := fixed.NewQ32_32(norm.InvWidth)
		if !ok {
			return nil, fmt.Errorf("%w: segment %d inv_width = %v", ErrNotRepresentable, i, norm.InvWidth)
		}
		es.invWidth = q.Raw()
		out[i] = es
	}
	return out, nil
}

// Build runs the adaptive subdivider against target over
// criticalPoints with the given tolerance, segment cap, and minimum
// segment width, then packs the result into a Spline whose domain rescale
// is vToX. It logs a one-line summary on completion and a warning if the
// subdivider hit its capacity before meeting eps, per the ambient logging
// contract.
func Build(target transfer.Func, criticalPoints []float64, eps float64, nMax int, wMin float64, vToX float64) (*Spline, error) {
	if nMax > maxSegments {
		nMax = maxSegments
	}
	res := subdivide.Build(target, criticalPoints, eps, nMax, wMin)
	if len(res.Segments) == 0 {
		return nil, ErrSubdividerEmptyBuild
	}

	packed := make([]segment.Packed, len(res.Segments))
	for i, n := range res.Segments {
		p, err := segment.Pack(n)
		if err != nil {
			return nil, fmt.Errorf("spline: packing segment %d: %w", i, err)
		}
		packed[i] = p
	}

	knots := make([]int64, len(res.KnotPositions))
	for i, v := range res.KnotPositions {
		q, ok := fixed.NewQ8_24(v)
		if !ok {
			return nil, fmt.Errorf("%w: knot %d = %v", ErrNotRepresentable, i, v)
		}
		knots[i] = q.Raw()
	}

	vToXQ, ok := fixed.NewQ32_32(vToX)
	if !ok {
		return nil, fmt.Errorf("%w: v_to_x = %v", ErrNotRepresentable, vToX)
	}
	xEndMaxQ, ok := fixed.NewQ32_32(res.KnotPositions[len(res.KnotPositions)-1])
	if !ok {
		return nil, fmt.Errorf("%w: x_end_max = %v", ErrNotRepresentable, res.KnotPositions[len(res.KnotPositions)-1])
	}

	evalSegs, err := decodeEvalSegments(packed)
	if err != nil {
		return nil, err
	}

	s := &Spline{
		packed:          packed,
		eval:            evalSegs,
		knots:           knots,
		vToX:            vToXQ.Raw(),
		xEndMax:         xEndMaxQ.Raw(),
		segmentErrors:   res.PerSegmentError,
		capacityLimited: res.CapacityLimited,
	}

	logger := log.Default().Module("spline")
	limitedCount := 0
	for _, e := range res.PerSegmentError {
		if e > eps {
			limitedCount++
		}
	}
	logger.Info("spline built", "segments", len(packed), "capacity_limited_segments", limitedCount)
	if res.CapacityLimited {
		logger.Warn("subdivider hit capacity before meeting tolerance",
			"segments", len(packed), "capacity_limited_segments", limitedCount, "eps", eps)
	}
	return s, nil
}

// ToPacked serializes the spline into its wire format: a 24-byte header,
// the knot-position array, then the packed segments.
func (s *Spline) ToPacked() []byte {
	n := len(s.packed)
	size := headerBytes + 8*(n+1) + 32*n
	buf := make([]byte, size)

	copy(buf[0:4], wireMagic)
	binary.LittleEndian.PutUint16(buf[4:6], wireVersion)
	binary.LittleEndian.PutUint16(buf[6:8], uint16(n))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(s.vToX))
	binary.LittleEndian.PutUint64(buf[16:24], uint64(s.xEndMax))

	off := headerBytes
	for _, k := range s.knots {
		binary.LittleEndian.PutUint64(buf[off:off+8], uint64(k))
		off += 8
	}
	for _, p := range s.packed {
		for w := 0; w < 4; w++ {
			binary.LittleEndian.PutUint64(buf[off:off+8], p[w])
			off += 8
		}
	}
	return buf
}

// FromPacked decodes the wire format, rejecting unknown magic or version
// and any violation of the strictly-increasing knot invariant.
// It never panics on malformed external data.
func FromPacked(data []byte) (*Spline, error) {
	if len(data) < headerBytes {
		return nil, ErrTruncated
	}
	if string(data[0:4]) != wireMagic {
		return nil, ErrBadMagic
	}
	version := binary.LittleEndian.Uint16(data[4:6])
	if version != wireVersion {
		return nil, ErrBadVersion
	}
	n := int(binary.LittleEndian.Uint16(data[6:8]))
	if n > maxSegments {
		return nil, ErrTooManySegments
	}
	vToX := int64(binary.LittleEndian.Uint64(data[8:16]))
	xEndMax := int64(binary.LittleEndian.Uint64(data[16:24]))

	wantLen := headerBytes + 8*(n+1) + 32*n
	if len(data) != wantLen {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", ErrTruncated, wantLen, len(data))
	}

	off := headerBytes
	knots := make([]int64, n+1)
	for i := 0; i <= n; i++ {
		knots[i] = int64(binary.LittleEndian.Uint64(data[off : off+8]))
		off += 8
		if i > 0 && knots[i] <= knots[i-1] {
			return nil, ErrNonMonotonicKnots
		}
	}

	packed := make([]segment.Packed, n)
	for i := 0; i < n; i++ {
		var p segment.Packed
		for w := 0; w < 4; w++ {
			p[w] = binary.LittleEndian.Uint64(data[off : off+8])
			off += 8
		}
		packed[i] = p
	}

	evalSegs, err := decodeEvalSegments(packed)
	if err != nil {
		return nil, err
	}

	return &Spline{
		packed:  packed,
		eval:    evalSegs,
		knots:   knots,
		vToX:    vToX,
		xEndMax: xEndMax,
	}, nil
}

// Fingerprint returns a blake2b-256 digest of the packed wire bytes, used
// only for golden-file regression tests and debug identification -- never
// part of the wire format itself.
func (s *Spline) Fingerprint() [32]byte {
	return blake2b.Sum256(s.ToPacked())
}

// findSegment returns the index of the segment containing xRaw (a Q32.32
// raw value already clamped to [0, xEndMax]), via binary search over the
// knot index.
func (s *Spline) findSegment(xRaw int64) int {
	n := len(s.eval)
	// sort.Search finds the first knot index i such that knots[i] > xRaw;
	// the containing segment is i-1, clamped into [0, n-1].
	i := sort.Search(len(s.knots), func(i int) bool {
		return knotToQ32_32(s.knots[i]) > xRaw
	})
	idx := i - 1
	if idx < 0 {
		idx = 0
	}
	if idx > n-1 {
		idx = n - 1
	}
	return idx
}

// Eval computes the transfer value T(x) for x = vFixed*v_to_x, clamped to
// [0, x_end_max]: a knot lookup, a fixed-point t = (x-x_start)*inv_width,
// and a Horner evaluation of the segment's Hermite cubic, all in Q32.32
// with widened 64x64->128-bit multiplications, rescaled to the output
// Q16.16 format on the final step. Evaluation allocates nothing and never
// logs.
func (s *Spline) Eval(vFixed fixed.Q16_16) fixed.Q16_16 {
	v := int64(vFixed) << 16 // Q16.16 -> Q32.32, exact (extra frac bits are zero)
	x := wide.MulI64Shr(v, s.vToX, 32)
	if x < 0 {
		x = 0
	}
	if x > s.xEndMax {
		x = s.xEndMax
	}

	idx := s.findSegment(x)
	xStart := knotToQ32_32(s.knots[idx])
	dx := x - xStart

	seg := s.eval[idx]
	t := wide.MulI64Shr(dx, seg.invWidth, 32)

	acc := seg.coeffs[0]
	acc = wide.MulI64Shr(acc, t, 32) + seg.coeffs[1]
	acc = wide.MulI64Shr(acc, t, 32) + seg.coeffs[2]
	acc = wide.MulI64Shr(acc, t, 32) + seg.coeffs[3]

	return fixed.Q16_16(wide.ShrI64(acc, 16, wide.RoundNearestEven))
}
