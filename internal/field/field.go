package field

import "math"

const (
	// MaxSources is the fixed capacity of the source arena. Matches the
	// uniform-array limit of the shading stage.
	MaxSources = 10

	// Eps keeps distances away from the singularity at a source position.
	Eps = 0.01

	// MinSpeed is the floor applied to the propagation speed before it is
	// used in any denominator.
	MinSpeed = 0.1

	// Horizon fade radii for the water style. Elongation contributions fall
	// off linearly from full strength at DampStart to zero at DampEnd.
	DampStart = 1200.0
	DampEnd   = 1600.0
)

// Mode selects which scalar quantity the evaluator accumulates.
type Mode int

const (
	ModeElongation Mode = iota
	ModeVelocity
	ModeAcceleration
	ModeAmplitude
	ModePhase
)

func (m Mode) String() string {
	switch m {
	case ModeElongation:
		return "elongation"
	case ModeVelocity:
		return "velocity"
	case ModeAcceleration:
		return "acceleration"
	case ModeAmplitude:
		return "amplitude"
	case ModePhase:
		return "phase"
	}
	return "unknown"
}

// ParseMode maps a mode name to its Mode. Unknown names fall back to
// elongation.
func ParseMode(name string) Mode {
	switch name {
	case "velocity":
		return ModeVelocity
	case "acceleration":
		return ModeAcceleration
	case "amplitude":
		return ModeAmplitude
	case "phase":
		return ModePhase
	default:
		return ModeElongation
	}
}

// Source is one circular wave emitter. Frequency is angular (rad/s). The
// evaluator treats the slice it receives as an immutable snapshot.
type Source struct {
	ID        string
	X, Y      float64
	Amplitude float64
	Frequency float64
	Phase     float64
	Visible   bool
}

// Oscillation is the single-source elongation at the source itself,
// A*sin(w*t + phi). Drives the per-source indicators.
func (s Source) Oscillation(t float64) float64 {
	return s.Amplitude * math.Sin(s.Frequency*t+s.Phase)
}

// Sample is the result of one field evaluation: the elevation used to
// displace the surface, the display value for the selected mode, and the
// spatial gradient of the elongation field.
type Sample struct {
	Elongation float64
	Value      float64
	GradX      float64
	GradY      float64
}

// horizonDamp fades a contribution between the two fixed horizon radii. A
// visual fade only, not physical attenuation.
func horizonDamp(r float64) float64 {
	if r <= DampStart {
		return 1
	}
	if r >= DampEnd {
		return 0
	}
	return 1 - (r-DampStart)/(DampEnd-DampStart)
}

// Eval superposes all visible sources at (x, y) and time t. The returned
// sample is finite for every input: distance and speed are clamped before
// they reach a denominator. When damped is set (water style), the per-source
// horizon fade multiplies the elongation contribution only.
//
// Velocity and acceleration are the first and second trigonometric
// derivatives in theta; neither is scaled by omega. The amplitude
// envelope is the magnitude of the phasor sum, so interference nodes and
// antinodes show up instead of a flat per-point total.
func Eval(x, y, t float64, sources []Source, speed float64, mode Mode, damped bool) Sample {
	c := math.Max(speed, MinSpeed)

	var elong, vel, accel, re, im, gx, gy float64
	var thetas [MaxSources]float64
	n := 0

	for _, s := range sources {
		if !s.Visible {
			continue
		}
		dx, dy := x-s.X, y-s.Y
		r := math.Max(math.Hypot(dx, dy), Eps)
		theta := s.Frequency*(t-r/c) + s.Phase

		damp := 1.0
		if damped {
			damp = horizonDamp(r)
		}

		sin, cos := math.Sincos(theta)
		elong += s.Amplitude * sin * damp
		vel += s.Amplitude * cos
		accel -= s.Amplitude * sin
		re += s.Amplitude * cos
		im += s.Amplitude * sin

		// d/dr of A*sin(w*(t - r/c) + phi), times the unit vector from
		// source to evaluation point.
		dr := -s.Amplitude * s.Frequency * cos * damp / c
		gx += dr * dx / r
		gy += dr * dy / r

		if n < MaxSources {
			thetas[n] = theta
			n++
		}
	}

	out := Sample{Elongation: elong, GradX: gx, GradY: gy}

	switch mode {
	case ModeVelocity:
		out.Value = vel
	case ModeAcceleration:
		out.Value = accel
	case ModeAmplitude:
		out.Value = math.Hypot(re, im)
	case ModePhase:
		out.Value = circularPhase(thetas[:n])
	default:
		out.Value = elong
	}
	return out
}

// circularPhase combines all pairwise phase differences by circular mean.
// Fewer than two phases have no defined offset and report 0.
func circularPhase(thetas []float64) float64 {
	if len(thetas) < 2 {
		return 0
	}
	var ssum, csum float64
	for i := 0; i < len(thetas); i++ {
		for j := i + 1; j < len(thetas); j++ {
			d := thetas[i] - thetas[j]
			ssum += math.Sin(d)
			csum += math.Cos(d)
		}
	}
	return math.Atan2(ssum, csum)
}

// Evaluate is the plain field contract: display value plus the spatial
// gradient of the elongation field at (x, y).
func Evaluate(x, y, t float64, sources []Source, speed float64, mode Mode) (value, gx, gy float64) {
	s := Eval(x, y, t, sources, speed, mode, false)
	return s.Value, s.GradX, s.GradY
}
