package param

import (
	"strings"
	"testing"
)

type recordingReporter struct {
	warnings []string
	errors   []string
}

func (r *recordingReporter) ReportWarning(msg string) { r.warnings = append(r.warnings, msg) }
func (r *recordingReporter) ReportError(msg string)   { r.errors = append(r.errors, msg) }

type warnOnlyReporter struct{ warnings []string }

func (r *warnOnlyReporter) ReportWarning(msg string) { r.warnings = append(r.warnings, msg) }

func TestValidateClampsOutOfRangeValue(t *testing.T) {
	p := New("dpi", -5, 0, 256000)
	rep := &recordingReporter{}
	p.Validate(rep)

	if p.Value != 0 {
		t.Fatalf("Value = %v, want 0", p.Value)
	}
	if len(rep.warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(rep.warnings))
	}
	msg := rep.warnings[0]
	for _, want := range []string{"dpi", "-5", "0", "256000"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("warning %q missing %q", msg, want)
		}
	}
}

func TestValidateInRangeIsNoop(t *testing.T) {
	p := New("gamma", 1.5, 0.0, 4.0)
	rep := &recordingReporter{}
	p.Validate(rep)
	if p.Value != 1.5 {
		t.Fatalf("Value = %v, want unchanged 1.5", p.Value)
	}
	if len(rep.warnings) != 0 {
		t.Fatalf("got %d warnings, want 0", len(rep.warnings))
	}
}

func TestValidateIdempotent(t *testing.T) {
	p := New("dpi", 999999, 0, 256000)
	rep := &recordingReporter{}
	p.Validate(rep)
	clampedOnce := p.Value
	p.Validate(rep)
	if p.Value != clampedOnce {
		t.Fatalf("second Validate changed Value: %v -> %v", clampedOnce, p.Value)
	}
	if len(rep.warnings) != 1 {
		t.Fatalf("second Validate should not re-warn, got %d total warnings", len(rep.warnings))
	}
}

func TestValidateClampsHighSide(t *testing.T) {
	p := New("smooth", 10.0, 0.0, 0.5)
	p.Validate(nil)
	if p.Value != 0.5 {
		t.Fatalf("Value = %v, want 0.5", p.Value)
	}
}

func TestValidateNilReporterDoesNotPanic(t *testing.T) {
	p := New("dpi", -1, 0, 1000)
	p.Validate(nil)
	if p.Value != 0 {
		t.Fatalf("Value = %v, want 0", p.Value)
	}
}

func TestValidateWarnOnlyReporterIsUsed(t *testing.T) {
	p := New("dpi", -1, 0, 1000)
	rep := &warnOnlyReporter{}
	p.Validate(rep)
	if len(rep.warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(rep.warnings))
	}
}

func TestBoolParamValidateIsNoop(t *testing.T) {
	p := NewBool("invert", true)
	p.Validate(nil)
	if !p.Value {
		t.Fatal("BoolParam.Validate mutated Value")
	}
}

type direction int

const (
	directionPositive direction = iota
	directionNegative
)

func TestEnumParamValidateIsNoop(t *testing.T) {
	p := NewEnum("direction", directionNegative)
	p.Validate(nil)
	if p.Value != directionNegative {
		t.Fatal("EnumParam.Validate mutated Value")
	}
}

func TestReflectVisitsLeaf(t *testing.T) {
	p := New("dpi", 800, 0, 256000)
	visited := false
	p.Reflect(func(leaf *Param[int]) {
		visited = true
		if leaf.Value != 800 {
			t.Fatalf("leaf.Value = %v, want 800", leaf.Value)
		}
	})
	if !visited {
		t.Fatal("Reflect did not invoke visitor")
	}
}
