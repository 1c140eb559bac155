package colormap

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Vec3 is a minimal vector for shading math.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Dot(o Vec3) float64   { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) Length() float64      { return math.Sqrt(v.Dot(v)) }

func (v Vec3) Normalize() Vec3 {
	if l := v.Length(); l != 0 {
		return v.Scale(1 / l)
	}
	return Vec3{}
}

// Reflect mirrors v about the unit normal n.
func (v Vec3) Reflect(n Vec3) Vec3 {
	return v.Sub(n.Scale(2 * v.Dot(n)))
}

var (
	// SunDir is the fixed directional light for the shaded styles.
	SunDir = Vec3{X: 0.35, Y: 0.8, Z: 0.5}.Normalize()

	skyZenith  = colorful.Color{R: 0.22, G: 0.42, B: 0.72}
	skyHorizon = colorful.Color{R: 0.74, G: 0.84, B: 0.94}
	shallow    = colorful.Color{R: 0.05, G: 0.33, B: 0.42}
)

// Water horizon fade, measured from the viewpoint.
const (
	waterFadeStart = 1200.0
	waterFadeEnd   = 1600.0
)

// Lit applies directional plus specular shading on top of the base color,
// using the analytic surface normal. Used by the 3D parameter style.
func Lit(base colorful.Color, normal, view Vec3) colorful.Color {
	n := normal.Normalize()
	diff := math.Max(n.Dot(SunDir), 0)
	refl := SunDir.Scale(-1).Reflect(n)
	spec := 0.4 * math.Pow(math.Max(refl.Dot(view.Normalize()), 0), 32)

	l := 0.3 + 0.7*diff
	return colorful.Color{
		R: clamp(base.R*l+spec, 0, 1),
		G: clamp(base.G*l+spec, 0, 1),
		B: clamp(base.B*l+spec, 0, 1),
	}
}

// sky samples the procedural sky along a direction: horizon tint near the
// plane, zenith tint overhead.
func sky(dir Vec3) colorful.Color {
	t := clamp(dir.Normalize().Y, 0, 1)
	return mix(skyHorizon, skyZenith, t)
}

// Water computes the stylized reflection/refraction blend for the water
// style. view points from the surface toward the eye; dist is the planar
// distance from the viewpoint, driving the horizon fade into the sky color.
func Water(normal, view Vec3, dist float64) colorful.Color {
	n := normal.Normalize()
	v := view.Normalize()

	// Schlick's approximation against the up-facing surface.
	cosNV := math.Max(n.Dot(v), 0)
	fresnel := 0.02 + 0.98*math.Pow(1-cosNV, 5)

	refl := v.Scale(-1).Reflect(n)
	col := mix(shallow, sky(refl), fresnel)

	sun := math.Pow(math.Max(refl.Dot(SunDir), 0), 64)
	col = colorful.Color{
		R: clamp(col.R+sun, 0, 1),
		G: clamp(col.G+sun, 0, 1),
		B: clamp(col.B+sun, 0, 1),
	}

	fade := smoothstep(waterFadeStart, waterFadeEnd, dist)
	return mix(col, sky(v), fade)
}

func mix(a, b colorful.Color, t float64) colorful.Color {
	return colorful.Color{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
	}
}

func smoothstep(lo, hi, v float64) float64 {
	t := clamp((v-lo)/(hi-lo), 0, 1)
	return t * t * (3 - 2*t)
}
