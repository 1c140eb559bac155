package mesh

import (
	"math"
	"testing"
)

func TestResolutionBounds(t *testing.T) {
	speeds := []float64{0, 0.5, 1, 2, 10, 25, 80, 500, 1e6}
	for _, s := range speeds {
		r := ResolutionFor(s)
		if r < MinResolution || r > MaxResolution {
			t.Errorf("speed %.1f: resolution %d outside [%d, %d]", s, r, MinResolution, MaxResolution)
		}
	}
}

func TestResolutionMonotone(t *testing.T) {
	prev := math.MaxInt
	for s := 1.0; s <= 1000; s += 0.5 {
		r := ResolutionFor(s)
		if r > prev {
			t.Fatalf("resolution increased with speed: %d -> %d at speed %.1f", prev, r, s)
		}
		prev = r
	}
}

func TestResolutionLaw(t *testing.T) {
	tests := []struct {
		speed    float64
		expected int
	}{
		{1, 2000},
		{4, 1000},
		{16, 500},
		{25, 400},
		{100, 400}, // clamped
	}
	for _, tt := range tests {
		if got := ResolutionFor(tt.speed); got != tt.expected {
			t.Errorf("speed %.0f: expected %d, got %d", tt.speed, tt.expected, got)
		}
	}
}

func TestAxisShape(t *testing.T) {
	g := New(10)

	if len(g.Axis) != 11 {
		t.Fatalf("expected 11 axis samples, got %d", len(g.Axis))
	}
	if g.Axis[0] != -HalfExtent || g.Axis[10] != HalfExtent {
		t.Errorf("axis endpoints %v, %v; expected +/-%v", g.Axis[0], g.Axis[10], HalfExtent)
	}
	if g.Axis[5] != 0 {
		t.Errorf("axis center %v, expected 0", g.Axis[5])
	}

	for i := 0; i < 10; i++ {
		if g.Axis[i+1] <= g.Axis[i] {
			t.Fatalf("axis not strictly increasing at %d: %v -> %v", i, g.Axis[i], g.Axis[i+1])
		}
	}

	// Symmetric about the center.
	for i := 0; i <= 10; i++ {
		if math.Abs(g.Axis[i]+g.Axis[10-i]) > 1e-9 {
			t.Errorf("axis not symmetric: axis[%d]=%v axis[%d]=%v", i, g.Axis[i], 10-i, g.Axis[10-i])
		}
	}

	// Spacing widens away from the center.
	for i := 5; i < 10-1; i++ {
		d0 := g.Axis[i+1] - g.Axis[i]
		d1 := g.Axis[i+2] - g.Axis[i+1]
		if d1 <= d0 {
			t.Errorf("spacing not widening toward edge at %d: %v then %v", i, d0, d1)
		}
	}
}

func TestIndexBuffer(t *testing.T) {
	g := New(4)

	if got := g.VertexCount(); got != 25 {
		t.Fatalf("expected 25 vertices, got %d", got)
	}
	if len(g.Indices) != 6*4*4 {
		t.Fatalf("expected %d indices, got %d", 6*4*4, len(g.Indices))
	}
	for _, idx := range g.Indices {
		if idx < 0 || int(idx) >= g.VertexCount() {
			t.Fatalf("index %d out of range", idx)
		}
	}

	// Every vertex is referenced by at least one triangle.
	seen := make(map[int32]bool)
	for _, idx := range g.Indices {
		seen[idx] = true
	}
	if len(seen) != g.VertexCount() {
		t.Errorf("expected all %d vertices referenced, got %d", g.VertexCount(), len(seen))
	}
}

func TestPosition(t *testing.T) {
	g := New(2)
	x, y := g.Position(0, 2)
	if x != HalfExtent || y != -HalfExtent {
		t.Errorf("Position(0,2) = (%v, %v), expected (%v, %v)", x, y, HalfExtent, -HalfExtent)
	}
}
