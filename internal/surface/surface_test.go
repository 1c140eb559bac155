package surface

import (
	"math"
	"testing"

	"github.com/san-kum/wavelab/internal/field"
	"github.com/san-kum/wavelab/internal/mesh"
)

func testSnapshot() Snapshot {
	return Snapshot{
		Sources: []field.Source{
			{ID: "a", X: -50, Y: 10, Amplitude: 1.0, Frequency: 2.0, Visible: true},
			{ID: "b", X: 80, Y: -30, Amplitude: 0.7, Frequency: 1.3, Phase: 0.5, Visible: true},
		},
		Speed: 40,
		Time:  1.25,
		Mode:  field.ModeElongation,
	}
}

func TestEvaluateMatchesPointwise(t *testing.T) {
	g := mesh.New(16)
	f := NewField(g)
	snap := testSnapshot()
	f.Evaluate(snap)

	stride := g.Resolution + 1
	for v := 0; v < g.VertexCount(); v++ {
		x, y := g.Position(v/stride, v%stride)
		want := field.Eval(x, y, snap.Time, snap.Sources, snap.Speed, snap.Mode, false)
		if f.Heights[v] != want.Elongation {
			t.Fatalf("vertex %d: height %v, want %v", v, f.Heights[v], want.Elongation)
		}
		if f.Values[v] != want.Value {
			t.Fatalf("vertex %d: value %v, want %v", v, f.Values[v], want.Value)
		}
	}
}

func TestParallelMatchesSerial(t *testing.T) {
	// Large enough that parallelFor actually splits the range.
	g := mesh.New(120)
	snap := testSnapshot()

	par := NewField(g)
	par.Evaluate(snap)

	ser := NewField(g)
	stride := g.Resolution + 1
	for v := 0; v < g.VertexCount(); v++ {
		x, y := g.Position(v/stride, v%stride)
		s := field.Eval(x, y, snap.Time, snap.Sources, snap.Speed, snap.Mode, false)
		ser.Heights[v] = s.Elongation
		ser.Values[v] = s.Value
	}

	for v := range par.Heights {
		if par.Heights[v] != ser.Heights[v] || par.Values[v] != ser.Values[v] {
			t.Fatalf("parallel result differs from serial at vertex %d", v)
		}
	}
}

func TestNormalsUnitLength(t *testing.T) {
	g := mesh.New(12)
	f := NewField(g)
	f.Evaluate(testSnapshot())

	for v := 0; v < g.VertexCount(); v++ {
		x, y, z := f.Normal(v)
		l := math.Sqrt(x*x + y*y + z*z)
		if math.Abs(l-1) > 1e-12 {
			t.Fatalf("vertex %d: normal length %v", v, l)
		}
		if y <= 0 {
			t.Fatalf("vertex %d: normal should keep a positive up component, got %v", v, y)
		}
	}
}

func TestFlatFieldNormalsPointUp(t *testing.T) {
	g := mesh.New(8)
	f := NewField(g)
	f.Evaluate(Snapshot{Speed: 10, Time: 1, Mode: field.ModeElongation})

	for v := 0; v < g.VertexCount(); v++ {
		x, y, z := f.Normal(v)
		if x != 0 || z != 0 || y != 1 {
			t.Fatalf("vertex %d: flat surface normal (%v,%v,%v)", v, x, y, z)
		}
		if f.Heights[v] != 0 {
			t.Fatalf("vertex %d: flat surface height %v", v, f.Heights[v])
		}
	}
}

func TestNormalsUseElongationGradientForAllModes(t *testing.T) {
	g := mesh.New(10)
	snap := testSnapshot()

	ref := NewField(g)
	ref.Evaluate(snap)

	for _, mode := range []field.Mode{field.ModeVelocity, field.ModeAmplitude, field.ModePhase} {
		other := snap
		other.Mode = mode
		f := NewField(g)
		f.Evaluate(other)
		for v := range f.Normals {
			if f.Normals[v] != ref.Normals[v] {
				t.Fatalf("mode %v: normal differs from elongation-mode normal", mode)
			}
		}
		for v := range f.Heights {
			if f.Heights[v] != ref.Heights[v] {
				t.Fatalf("mode %v: elevation differs", mode)
			}
		}
	}
}
