package mesh

import "math"

const (
	// HalfExtent is the physical half-size of the square domain.
	HalfExtent = 800.0

	// Exponent shapes the axis mapping. Values above 1 concentrate vertices
	// near the domain center where the sources sit.
	Exponent = 2.2

	// Resolution bounds. The divisor picks coarser geometry for faster
	// media, since fast-moving waveforms alias later to the eye.
	BaseResolution = 2000
	MinResolution  = 400
	MaxResolution  = 2000
)

// ResolutionFor derives the grid resolution from the geometry speed control.
// Monotone non-increasing in speed, clamped on both ends.
func ResolutionFor(speed float64) int {
	if speed < 1 {
		speed = 1
	}
	r := int(math.Floor(float64(BaseResolution) / math.Sqrt(speed)))
	if r < MinResolution {
		r = MinResolution
	}
	if r > MaxResolution {
		r = MaxResolution
	}
	return r
}

// Grid is a tessellated square domain with non-uniform vertex spacing. The
// axis coordinates and the index buffer are immutable once built; rebuilding
// is the expensive path and happens only when the resolution changes.
type Grid struct {
	Resolution int
	Axis       []float64
	Indices    []int32
}

// axisCoord maps u in [-1, 1] to a physical coordinate, compressing spacing
// toward the center.
func axisCoord(u float64) float64 {
	return math.Copysign(math.Pow(math.Abs(u), Exponent)*HalfExtent, u)
}

// New builds a grid of (r+1) x (r+1) vertices with triangulated quads.
func New(r int) *Grid {
	if r < 1 {
		r = 1
	}
	g := &Grid{
		Resolution: r,
		Axis:       make([]float64, r+1),
		Indices:    make([]int32, 0, 6*r*r),
	}
	for i := 0; i <= r; i++ {
		u := -1 + 2*float64(i)/float64(r)
		g.Axis[i] = axisCoord(u)
	}

	stride := int32(r + 1)
	for row := 0; row < r; row++ {
		for col := 0; col < r; col++ {
			v00 := int32(row)*stride + int32(col)
			v01 := v00 + 1
			v10 := v00 + stride
			v11 := v10 + 1
			g.Indices = append(g.Indices, v00, v10, v01, v01, v10, v11)
		}
	}
	return g
}

// VertexCount reports the number of grid vertices.
func (g *Grid) VertexCount() int {
	return (g.Resolution + 1) * (g.Resolution + 1)
}

// Position returns the planar coordinates of the vertex at (row, col).
func (g *Grid) Position(row, col int) (x, y float64) {
	return g.Axis[col], g.Axis[row]
}
