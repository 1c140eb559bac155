package field

import (
	"math"
	"testing"
)

func src(x, y, amp, freq, phase float64) Source {
	return Source{X: x, Y: y, Amplitude: amp, Frequency: freq, Phase: phase, Visible: true}
}

func TestEvalFiniteAtSourcePosition(t *testing.T) {
	sources := []Source{src(0, 0, 2.0, 1.0, 0)}

	for _, mode := range []Mode{ModeElongation, ModeVelocity, ModeAcceleration, ModeAmplitude, ModePhase} {
		s := Eval(0, 0, math.Pi/2, sources, 10, mode, false)
		if math.IsNaN(s.Value) || math.IsInf(s.Value, 0) {
			t.Errorf("mode %v: value not finite at source position: %v", mode, s.Value)
		}
		if math.IsNaN(s.GradX) || math.IsNaN(s.GradY) {
			t.Errorf("mode %v: gradient not finite at source position", mode)
		}
	}
}

func TestEvalFiniteWithZeroSpeed(t *testing.T) {
	sources := []Source{src(1, 1, 1.0, 3.0, 0.5)}
	s := Eval(2, 2, 1.0, sources, 0, ModeElongation, false)
	if math.IsNaN(s.Value) || math.IsInf(s.Value, 0) {
		t.Errorf("value not finite with zero speed: %v", s.Value)
	}
}

func TestEvalEmptySourceList(t *testing.T) {
	s := Eval(1, 2, 3, nil, 5, ModeElongation, false)
	if s.Value != 0 || s.Elongation != 0 || s.GradX != 0 || s.GradY != 0 {
		t.Errorf("expected zero sample for empty source list, got %+v", s)
	}
}

func TestAmplitudeInterference(t *testing.T) {
	// Evaluation point equidistant from both sources, equal frequency, so
	// the phase offset between contributions is exactly the phase delta.
	tests := []struct {
		name     string
		phase2   float64
		expected float64
	}{
		{"destructive", math.Pi, 0.0},
		{"constructive", 0.0, 2.0},
	}

	for _, tt := range tests {
		sources := []Source{
			src(-3, 0, 1.0, 2.0, 0),
			src(3, 0, 1.0, 2.0, tt.phase2),
		}
		s := Eval(0, 4, 1.7, sources, 5, ModeAmplitude, false)
		if math.Abs(s.Value-tt.expected) > 1e-9 {
			t.Errorf("%s: expected amplitude %.4f, got %.6f", tt.name, tt.expected, s.Value)
		}
	}
}

func TestPhaseWithFewerThanTwoSources(t *testing.T) {
	one := []Source{src(1, 0, 1.0, 2.0, 0.7)}
	if v := Eval(0, 0, 1, one, 5, ModePhase, false).Value; v != 0 {
		t.Errorf("single source: expected phase 0, got %v", v)
	}
	if v := Eval(0, 0, 1, nil, 5, ModePhase, false).Value; v != 0 {
		t.Errorf("no sources: expected phase 0, got %v", v)
	}

	// Invisible sources do not count.
	two := []Source{src(1, 0, 1, 2, 0.7), {X: -1, Amplitude: 1, Frequency: 2, Visible: false}}
	if v := Eval(0, 0, 1, two, 5, ModePhase, false).Value; v != 0 {
		t.Errorf("one visible source: expected phase 0, got %v", v)
	}
}

func TestPhaseSymmetricUnderReordering(t *testing.T) {
	sources := []Source{
		src(-4, 1, 1.0, 2.0, 0.3),
		src(2, -3, 0.8, 1.5, 1.1),
		src(5, 5, 1.2, 2.7, 2.9),
	}
	reversed := []Source{sources[2], sources[1], sources[0]}

	a := Eval(0.5, -1.5, 2.3, sources, 5, ModePhase, false).Value
	b := Eval(0.5, -1.5, 2.3, reversed, 5, ModePhase, false).Value
	if math.Abs(a-b) > 1e-12 {
		t.Errorf("phase not order-independent: %v vs %v", a, b)
	}
	if a <= -math.Pi || a > math.Pi {
		t.Errorf("phase %v outside (-pi, pi]", a)
	}
}

func TestTwoSourceElongationAtOrigin(t *testing.T) {
	sources := []Source{
		src(-5, 0, 1.0, 2.0, 0),
		src(5, 0, 1.0, 2.0, 0),
	}
	s := Eval(0, 0, 0, sources, 5, ModeElongation, false)
	expected := 2 * math.Sin(-2.0)
	if math.Abs(s.Value-expected) > 1e-9 {
		t.Errorf("expected %.4f, got %.6f", expected, s.Value)
	}
}

func TestSingleSourceRetardedPhase(t *testing.T) {
	sources := []Source{src(0, 0, 2.0, 1.0, 0)}
	s := Eval(1, 0, math.Pi/2, sources, 10, ModeElongation, false)
	theta := math.Pi/2 - 0.1
	expected := 2 * math.Sin(theta)
	if math.Abs(s.Value-expected) > 1e-9 {
		t.Errorf("expected %.4f, got %.6f", expected, s.Value)
	}
}

func TestVelocityAccelerationConvention(t *testing.T) {
	// First and second trig derivatives in theta only; no omega scaling.
	sources := []Source{src(0, 0, 1.5, 4.0, 0.2)}
	x, y, tt, c := 3.0, 4.0, 1.3, 6.0

	r := 5.0
	theta := 4.0*(tt-r/c) + 0.2

	vel := Eval(x, y, tt, sources, c, ModeVelocity, false).Value
	if math.Abs(vel-1.5*math.Cos(theta)) > 1e-9 {
		t.Errorf("velocity: expected %.6f, got %.6f", 1.5*math.Cos(theta), vel)
	}
	accel := Eval(x, y, tt, sources, c, ModeAcceleration, false).Value
	if math.Abs(accel-(-1.5*math.Sin(theta))) > 1e-9 {
		t.Errorf("acceleration: expected %.6f, got %.6f", -1.5*math.Sin(theta), accel)
	}
}

func TestGradientMatchesFiniteDifference(t *testing.T) {
	sources := []Source{
		src(-6, 2, 1.0, 2.0, 0.4),
		src(4, -3, 0.7, 3.1, 1.9),
	}
	x, y, tt, c := 1.5, 2.5, 0.8, 5.0
	h := 1e-6

	s := Eval(x, y, tt, sources, c, ModeElongation, false)
	nx := (Eval(x+h, y, tt, sources, c, ModeElongation, false).Elongation -
		Eval(x-h, y, tt, sources, c, ModeElongation, false).Elongation) / (2 * h)
	ny := (Eval(x, y+h, tt, sources, c, ModeElongation, false).Elongation -
		Eval(x, y-h, tt, sources, c, ModeElongation, false).Elongation) / (2 * h)

	if math.Abs(s.GradX-nx) > 1e-4 {
		t.Errorf("grad x: analytic %.8f vs numeric %.8f", s.GradX, nx)
	}
	if math.Abs(s.GradY-ny) > 1e-4 {
		t.Errorf("grad y: analytic %.8f vs numeric %.8f", s.GradY, ny)
	}
}

func TestHorizonDamp(t *testing.T) {
	tests := []struct {
		r        float64
		expected float64
	}{
		{0, 1},
		{DampStart, 1},
		{(DampStart + DampEnd) / 2, 0.5},
		{DampEnd, 0},
		{DampEnd + 500, 0},
	}
	for _, tt := range tests {
		if got := horizonDamp(tt.r); math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("horizonDamp(%.0f): expected %.2f, got %.4f", tt.r, tt.expected, got)
		}
	}

	// Damping shapes the elongation, never the other accumulators.
	far := []Source{src(0, 0, 1.0, 2.0, 0)}
	d := Eval(DampEnd+100, 0, 0.3, far, 5, ModeVelocity, false)
	w := Eval(DampEnd+100, 0, 0.3, far, 5, ModeVelocity, true)
	if w.Elongation != 0 {
		t.Errorf("expected damped elongation 0 beyond horizon, got %v", w.Elongation)
	}
	if d.Value != w.Value {
		t.Errorf("velocity should ignore damping: %v vs %v", d.Value, w.Value)
	}
}

func TestInvisibleSourcesExcluded(t *testing.T) {
	sources := []Source{
		src(-5, 0, 1.0, 2.0, 0),
		{X: 5, Y: 0, Amplitude: 100, Frequency: 2, Visible: false},
	}
	s := Eval(0, 0, 0, sources, 5, ModeElongation, false)
	expected := math.Sin(-2.0)
	if math.Abs(s.Value-expected) > 1e-9 {
		t.Errorf("invisible source leaked into sum: expected %.4f, got %.6f", expected, s.Value)
	}
}

func TestParseModeRoundTrip(t *testing.T) {
	for _, m := range []Mode{ModeElongation, ModeVelocity, ModeAcceleration, ModeAmplitude, ModePhase} {
		if got := ParseMode(m.String()); got != m {
			t.Errorf("ParseMode(%q) = %v, want %v", m.String(), got, m)
		}
	}
	if got := ParseMode("bogus"); got != ModeElongation {
		t.Errorf("unknown mode should fall back to elongation, got %v", got)
	}
}
