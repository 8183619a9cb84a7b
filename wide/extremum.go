package wide

// ArgExtremum retains the extremum of a stream of (arg, value) samples and
// the abscissa it occurred at. Used by the error-metric accumulator to
// report where the worst absolute/relative error was observed.
type ArgExtremum struct {
	seen     bool
	wantMax  bool
	arg, val float64
}

// NewArgMax returns a tracker that retains the sample with the largest value.
func NewArgMax() *ArgExtremum { return &ArgExtremum{wantMax: true} }

// NewArgMin returns a tracker that retains the sample with the smallest value.
func NewArgMin() *ArgExtremum { return &ArgExtremum{wantMax: false} }

// Offer presents a new (arg, value) sample to the tracker.
func (e *ArgExtremum) Offer(arg, value float64) {
	better := !e.seen || (e.wantMax && value > e.val) || (!e.wantMax && value < e.val)
	if better {
		e.seen, e.arg, e.val = true, arg, value
	}
}

// Valid reports whether at least one sample has been offered.
func (e *ArgExtremum) Valid() bool { return e.seen }

// Arg returns the abscissa of the retained extremum.
func (e *ArgExtremum) Arg() float64 { return e.arg }

// Value returns the retained extremum value.
func (e *ArgExtremum) Value() float64 { return e.val }

// MinMax tracks the minimum and maximum of a stream of values.
type MinMax struct {
	seen     bool
	min, max float64
}

// Offer presents a new value to the tracker.
func (m *MinMax) Offer(v float64) {
	if !m.seen {
		m.min, m.max, m.seen = v, v, true
		return
	}
	if v < m.min {
		m.min = v
	}
	if v > m.max {
		m.max = v
	}
}

// Valid reports whether at least one value has been offered.
func (m *MinMax) Valid() bool { return m.seen }

// Min returns the smallest value seen.
func (m *MinMax) Min() float64 { return m.min }

// Max returns the largest value seen.
func (m *MinMax) Max() float64 { return m.max }
