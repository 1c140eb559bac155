// Package surface evaluates the wave field over a grid: one evaluator call
// per vertex yields the elevation, the display value and an analytic normal.
// Work is split across workers; every vertex is independent, so parallel and
// serial evaluation produce bit-identical results.
package surface

import (
	"math"

	"github.com/san-kum/wavelab/internal/field"
	"github.com/san-kum/wavelab/internal/mesh"
)

// Snapshot is the immutable per-frame input set. Consumers must not mutate
// Sources while a frame is being evaluated.
type Snapshot struct {
	Sources []field.Source
	Speed   float64
	Time    float64
	Mode    field.Mode
	Damped  bool
}

// Field holds the evaluated per-vertex data for one grid. Buffers are
// allocated once per grid rebuild and overwritten each frame. Normals are
// packed x,y,z with y up.
type Field struct {
	Grid    *mesh.Grid
	Heights []float64
	Values  []float64
	Normals []float64
}

// NewField allocates evaluation buffers for a grid.
func NewField(g *mesh.Grid) *Field {
	n := g.VertexCount()
	return &Field{
		Grid:    g,
		Heights: make([]float64, n),
		Values:  make([]float64, n),
		Normals: make([]float64, 3*n),
	}
}

// Evaluate fills the buffers for one frame.
func (f *Field) Evaluate(snap Snapshot) {
	stride := f.Grid.Resolution + 1
	parallelFor(f.Grid.VertexCount(), 4096, func(start, end int) {
		for v := start; v < end; v++ {
			x, y := f.Grid.Position(v/stride, v%stride)
			s := field.Eval(x, y, snap.Time, snap.Sources, snap.Speed, snap.Mode, snap.Damped)

			f.Heights[v] = s.Elongation
			f.Values[v] = s.Value

			// The lighting normal comes from the elongation gradient
			// regardless of display mode, so shading never jumps when the
			// user switches fields.
			nx, ny, nz := -s.GradX, 1.0, -s.GradY
			inv := 1 / math.Sqrt(nx*nx+1+nz*nz)
			f.Normals[3*v] = nx * inv
			f.Normals[3*v+1] = ny * inv
			f.Normals[3*v+2] = nz * inv
		}
	})
}

// Normal returns the packed normal of a vertex.
func (f *Field) Normal(v int) (x, y, z float64) {
	return f.Normals[3*v], f.Normals[3*v+1], f.Normals[3*v+2]
}
