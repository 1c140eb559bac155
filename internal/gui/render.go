package gui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/wavelab/internal/colormap"
	"github.com/san-kum/wavelab/internal/scene"
)

func (a *App) vertex(v int) rl.Vector3 {
	stride := a.Grid.Resolution + 1
	x, y := a.Grid.Position(v/stride, v%stride)
	return rl.NewVector3(float32(x), float32(a.Field.Heights[v]*heightScale), float32(y))
}

// vertexColor runs the full shading pipeline for one vertex: base color from
// the mode table, then the style's presentation on top.
func (a *App) vertexColor(v int) rl.Color {
	stride := a.Grid.Resolution + 1
	px, py := a.Grid.Position(v/stride, v%stride)
	nx, ny, nz := a.Field.Normal(v)
	normal := colormap.Vec3{X: nx, Y: ny, Z: nz}

	cam := a.Camera.Position
	pos := colormap.Vec3{X: px, Y: a.Field.Heights[v] * heightScale, Z: py}
	view := colormap.Vec3{X: float64(cam.X), Y: float64(cam.Y), Z: float64(cam.Z)}.Sub(pos)

	switch a.Scene.Style {
	case scene.StyleWater:
		dx, dz := px-float64(cam.X), py-float64(cam.Z)
		c := colormap.Water(normal, view, math.Hypot(dx, dz))
		return toRL(c)
	case scene.StyleParams3D:
		base := colormap.Map(a.Field.Values[v], a.displayMode())
		return toRL(colormap.Lit(base, normal, view))
	default:
		return toRL(colormap.Map(a.Field.Values[v], a.displayMode()))
	}
}

func (a *App) drawSurface() {
	idx := a.Grid.Indices
	for i := 0; i+2 < len(idx); i += 3 {
		v1, v2, v3 := int(idx[i]), int(idx[i+1]), int(idx[i+2])
		rl.DrawTriangle3D(a.vertex(v1), a.vertex(v2), a.vertex(v3), a.vertexColor(v1))
	}
}

// drawIndicators renders the per-source oscillation markers: length tracks
// |elongation|, green above zero, red below, hidden near zero crossings.
// Depth testing is off so they stay legible above the surface.
func (a *App) drawIndicators() {
	rl.DisableDepthTest()
	defer rl.EnableDepthTest()

	for _, src := range a.Scene.Sources() {
		if !src.Visible {
			continue
		}
		e := src.Oscillation(a.Scene.Time)
		if math.Abs(e) < indicatorEps {
			continue
		}
		col := ColUp
		if e < 0 {
			col = ColDown
		}
		base := rl.NewVector3(float32(src.X), 0, float32(src.Y))
		tip := rl.NewVector3(float32(src.X), float32(math.Abs(e)*heightScale), float32(src.Y))
		rl.DrawLine3D(base, tip, col)
		rl.DrawSphere(base, 5, col)
		rl.DrawSphere(tip, 3, col)
	}
}

func toRL(c colorful.Color) rl.Color {
	r, g, b := c.RGB255()
	return rl.NewColor(r, g, b, 255)
}
