package colormap

import (
	"math"
	"testing"

	"github.com/san-kum/wavelab/internal/field"
)

func TestDivergingEndpoints(t *testing.T) {
	tests := []struct {
		v       float64
		r, g, b float64
	}{
		{0, 1, 1, 1},
		{DivergingMax, 0, 0, 1},
		{DivergingMax * 10, 0, 0, 1}, // saturates
		{-DivergingMax, 1, 0, 0},
		{-DivergingMax * 10, 1, 0, 0},
	}
	for _, tt := range tests {
		c := Map(tt.v, field.ModeElongation)
		if math.Abs(c.R-tt.r) > 1e-9 || math.Abs(c.G-tt.g) > 1e-9 || math.Abs(c.B-tt.b) > 1e-9 {
			t.Errorf("diverging(%v) = %+v, expected (%v,%v,%v)", tt.v, c, tt.r, tt.g, tt.b)
		}
	}
}

func TestDivergingAppliesToKinematicModes(t *testing.T) {
	for _, mode := range []field.Mode{field.ModeElongation, field.ModeVelocity, field.ModeAcceleration} {
		c := Map(-DivergingMax, mode)
		if c.R != 1 || c.G != 0 || c.B != 0 {
			t.Errorf("mode %v: expected pure red at negative saturation, got %+v", mode, c)
		}
	}
}

func TestAmplitudeRamp(t *testing.T) {
	if c := Map(0, field.ModeAmplitude); c.R != 1 || c.G != 1 || c.B != 1 {
		t.Errorf("zero amplitude should be white, got %+v", c)
	}
	if c := Map(nodeEps/2, field.ModeAmplitude); c.R != 1 || c.G != 1 || c.B != 1 {
		t.Errorf("interference node should be forced white, got %+v", c)
	}
	if c := Map(AmplitudeMax, field.ModeAmplitude); c.R != 0 || c.G != 0 || c.B != 1 {
		t.Errorf("saturated amplitude should be blue, got %+v", c)
	}
	// Magnitude ramp, sign-independent.
	if a, b := Map(1.0, field.ModeAmplitude), Map(-1.0, field.ModeAmplitude); a != b {
		t.Errorf("amplitude ramp should use magnitude: %+v vs %+v", a, b)
	}
}

func TestPhaseWheelCyclic(t *testing.T) {
	for _, v := range []float64{0, 0.5, 1.5, -2.0} {
		a := Map(v, field.ModePhase)
		b := Map(v+2*math.Pi, field.ModePhase)
		if math.Abs(a.R-b.R) > 1e-9 || math.Abs(a.G-b.G) > 1e-9 || math.Abs(a.B-b.B) > 1e-9 {
			t.Errorf("phase wheel not 2pi-periodic at %v: %+v vs %+v", v, a, b)
		}
	}

	// Distinct phases land on distinct hues.
	a, b := Map(0, field.ModePhase), Map(math.Pi, field.ModePhase)
	if a == b {
		t.Error("opposite phases mapped to the same color")
	}
}

func TestLitRespondsToNormal(t *testing.T) {
	base := Map(0, field.ModeElongation)
	view := Vec3{Y: 1}

	toward := Lit(base, SunDir, view)
	away := Lit(base, SunDir.Scale(-1), view)

	if toward.R+toward.G+toward.B <= away.R+away.G+away.B {
		t.Errorf("sun-facing normal should be brighter: %+v vs %+v", toward, away)
	}
	for _, c := range []float64{toward.R, toward.G, toward.B, away.R, away.G, away.B} {
		if c < 0 || c > 1 {
			t.Errorf("channel out of range: %v", c)
		}
	}
}

func TestWaterHorizonFade(t *testing.T) {
	n := Vec3{Y: 1}
	v := Vec3{X: 0.3, Y: 0.8, Z: 0.1}

	near := Water(n, v, 0)
	far := Water(n, v, waterFadeEnd+100)
	skyCol := sky(v)

	if math.Abs(far.R-skyCol.R) > 1e-9 || math.Abs(far.G-skyCol.G) > 1e-9 || math.Abs(far.B-skyCol.B) > 1e-9 {
		t.Errorf("beyond the horizon the water should match the sky: %+v vs %+v", far, skyCol)
	}
	if near == far {
		t.Error("near and far water shading should differ")
	}
}

func TestReflect(t *testing.T) {
	v := Vec3{X: 1, Y: -1}.Normalize()
	r := v.Reflect(Vec3{Y: 1})
	expected := Vec3{X: 1, Y: 1}.Normalize()
	if math.Abs(r.X-expected.X) > 1e-12 || math.Abs(r.Y-expected.Y) > 1e-12 {
		t.Errorf("reflect = %+v, expected %+v", r, expected)
	}
}
