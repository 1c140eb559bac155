package colormap

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/wavelab/internal/field"
)

const (
	// DivergingMax is the magnitude at which the red/blue ramps saturate.
	DivergingMax = 1.5

	// AmplitudeMax saturates the white-to-blue envelope ramp.
	AmplitudeMax = 2.0

	// nodeEps forces interference nodes to pure white so they stay visible.
	nodeEps = 0.02
)

// Map converts a field value to its base color for the given mode. One case
// per mode keeps the table testable away from any renderer.
func Map(v float64, mode field.Mode) colorful.Color {
	switch mode {
	case field.ModeAmplitude:
		return amplitudeRamp(v)
	case field.ModePhase:
		return phaseWheel(v)
	default:
		return diverging(v)
	}
}

// diverging maps negative values toward red and positive toward blue, white
// at zero, saturating at DivergingMax.
func diverging(v float64) colorful.Color {
	t := clamp(v/DivergingMax, -1, 1)
	if t >= 0 {
		return colorful.Color{R: 1 - t, G: 1 - t, B: 1}
	}
	return colorful.Color{R: 1, G: 1 + t, B: 1 + t}
}

func amplitudeRamp(v float64) colorful.Color {
	m := math.Abs(v)
	if m < nodeEps {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	t := clamp(m/AmplitudeMax, 0, 1)
	return colorful.Color{R: 1 - t, G: 1 - t, B: 1}
}

// phaseWheel maps a phase offset onto a cyclic hue: the fractional part of
// v/2pi at full saturation and value.
func phaseWheel(v float64) colorful.Color {
	h := math.Mod(v/(2*math.Pi), 1)
	if h < 0 {
		h++
	}
	return colorful.Hsv(h*360, 1, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
