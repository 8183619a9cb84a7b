// Package param implements the core-facing side of the config contract:
// a named, bounded scalar that clamps out-of-range values on validate and
// reports the clamp through an optional reporter, plus the trivial-validate
// bool/enum variants. The TOML persistence layer and the UI's reflection
// tree that walk these params live outside this module; this package only
// owns the leaf value and its validation.
package param

import "fmt"

// Numeric is the set of scalar types a bounded Param[T] can hold.
type Numeric interface {
	~int | ~int64 | ~float64
}

// Reporter is the optional capability a caller installs to learn about
// clamp events. The core detects which half a reporter implements via type
// assertion against the narrower ErrorReporter/WarningReporter interfaces
// below, and elides the call when a reporter supports neither.
type Reporter interface {
	ReportError(msg string)
	ReportWarning(msg string)
}

// ErrorReporter is satisfied by a Reporter that only wants fatal reports.
type ErrorReporter interface {
	ReportError(msg string)
}

// WarningReporter is satisfied by a Reporter that only wants clamp
// warnings; Param.Validate only ever needs this half.
type WarningReporter interface {
	ReportWarning(msg string)
}

// Param is a named scalar bounded to [Min, Max]. Validate clamps an
// out-of-range Value in place and, if reporter implements
// WarningReporter, reports the clamp.
type Param[T Numeric] struct {
	Name     string
	Value    T
	Min, Max T
}

// New constructs a Param with the given name, initial value, and bounds.
func New[T Numeric](name string, value, min, max T) Param[T] {
	return Param[T]{Name: name, Value: value, Min: min, Max: max}
}

// Validate clamps Value into [Min, Max] if it falls outside, reporting the
// clamp (original value, clamped value, and the allowed range) to reporter
// if it implements WarningReporter. reporter may be nil. Validate is
// idempotent: a second call after clamping is a no-op.
func (p *Param[T]) Validate(reporter any) {
	if p.Value >= p.Min && p.Value <= p.Max {
		return
	}
	original := p.Value
	clamped := p.Value
	if clamped < p.Min {
		clamped = p.Min
	}
	if clamped > p.Max {
		clamped = p.Max
	}
	p.Value = clamped

	if wr, ok := reporter.(WarningReporter); ok {
		wr.ReportWarning(fmt.Sprintf(
			"%s was out of range [%v, %v]: clamped from %v to %v",
			p.Name, p.Min, p.Max, original, clamped,
		))
	}
}

// Reflect calls visitor with a pointer to this leaf param. Section
// grouping is left to the caller as an explicit closure rather than an
// inherited method, since this module does not implement the persistence
// layer that needs it.
func (p *Param[T]) Reflect(visitor func(*Param[T])) { visitor(p) }

// BoolParam is a named boolean param. It has no bounds, so Validate is
// always a no-op: there is no out-of-range state to clamp.
type BoolParam struct {
	Name  string
	Value bool
}

// NewBool constructs a BoolParam.
func NewBool(name string, value bool) BoolParam { return BoolParam{Name: name, Value: value} }

// Validate is a no-op for BoolParam.
func (p *BoolParam) Validate(reporter any) {}

// Reflect calls visitor with a pointer to this leaf param.
func (p *BoolParam) Reflect(visitor func(*BoolParam)) { visitor(p) }

// EnumParam is a named enumerated param over a comparable value type E
// (typically a defined int type with named constants). Validate is a
// no-op: an EnumParam's value space has no min/max to clamp against.
type EnumParam[E comparable] struct {
	Name  string
	Value E
}

// NewEnum constructs an EnumParam.
func NewEnum[E comparable](name string, value E) EnumParam[E] {
	return EnumParam[E]{Name: name, Value: value}
}

// Validate is a no-op for EnumParam.
func (p *EnumParam[E]) Validate(reporter any) {}

// Reflect calls visitor with a pointer to this leaf param.
func (p *EnumParam[E]) Reflect(visitor func(*EnumParam[E])) { visitor(p) }
