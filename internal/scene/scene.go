// Package scene owns the interactive state: the fixed-capacity source arena,
// the global propagation speed, the play clock, and the debounced geometry
// speed that drives mesh rebuilds.
package scene

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/san-kum/wavelab/internal/field"
	"github.com/san-kum/wavelab/internal/share"
)

// Style is the overall visual presentation.
type Style int

const (
	StyleWater Style = iota
	StyleParams3D
	StyleParams2D
)

func (s Style) String() string {
	switch s {
	case StyleWater:
		return "water"
	case StyleParams3D:
		return "3d"
	case StyleParams2D:
		return "2d"
	}
	return "unknown"
}

// ParseStyle maps a style name to its Style, defaulting to water.
func ParseStyle(name string) Style {
	switch name {
	case "3d":
		return StyleParams3D
	case "2d":
		return StyleParams2D
	default:
		return StyleWater
	}
}

// Defaults for new scenes and new sources.
const (
	DefaultSpeed     = 80.0
	DefaultAmplitude = 1.0
	DefaultFrequency = 2.0
	spawnSpread      = 200.0
)

// Scene is the mutable interactive state. Sources live in an arena of fixed
// slots so identifiers stay stable across removals and the evaluation stage
// can rely on a bounded count.
type Scene struct {
	slots [field.MaxSources]field.Source
	used  [field.MaxSources]bool

	Speed   float64
	Mode    field.Mode
	Style   Style
	Playing bool
	Time    float64

	nextID int
	rng    *rand.Rand

	geom *Debounce
}

// New creates a scene with one centered default source, playing.
func New() *Scene {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded creates a scene with a deterministic spawn sequence.
func NewSeeded(seed int64) *Scene {
	s := &Scene{
		Speed:   DefaultSpeed,
		Mode:    field.ModeElongation,
		Style:   StyleWater,
		Playing: true,
		rng:     rand.New(rand.NewSource(seed)),
		geom:    NewDebounce(GeometryQuiescence, DefaultSpeed),
	}
	if src, ok := s.Add(); ok {
		src.X, src.Y = 0, 0
	}
	return s
}

// Add creates a source at a randomized position with default parameters.
// Returns false without touching the arena when all slots are taken.
func (s *Scene) Add() (*field.Source, bool) {
	for i := range s.slots {
		if s.used[i] {
			continue
		}
		s.nextID++
		s.slots[i] = field.Source{
			ID:        fmt.Sprintf("w%d", s.nextID),
			X:         (s.rng.Float64()*2 - 1) * spawnSpread,
			Y:         (s.rng.Float64()*2 - 1) * spawnSpread,
			Amplitude: DefaultAmplitude,
			Frequency: DefaultFrequency,
			Visible:   true,
		}
		s.used[i] = true
		return &s.slots[i], true
	}
	return nil, false
}

// Clear empties the arena.
func (s *Scene) Clear() {
	for i := range s.slots {
		s.used[i] = false
		s.slots[i] = field.Source{}
	}
}

// Remove frees the slot holding id. Unknown ids are ignored.
func (s *Scene) Remove(id string) bool {
	for i := range s.slots {
		if s.used[i] && s.slots[i].ID == id {
			s.used[i] = false
			s.slots[i] = field.Source{}
			return true
		}
	}
	return false
}

// Get returns a pointer into the arena for in-place slider edits.
func (s *Scene) Get(id string) (*field.Source, bool) {
	for i := range s.slots {
		if s.used[i] && s.slots[i].ID == id {
			return &s.slots[i], true
		}
	}
	return nil, false
}

// Put stores an edited source back into its slot, matching by ID.
func (s *Scene) Put(src field.Source) bool {
	for i := range s.slots {
		if s.used[i] && s.slots[i].ID == src.ID {
			s.slots[i] = src
			return true
		}
	}
	return false
}

// Sources snapshots the occupied slots in arena order. The returned slice is
// the caller's to keep for the frame; the evaluator never mutates it.
func (s *Scene) Sources() []field.Source {
	out := make([]field.Source, 0, field.MaxSources)
	for i := range s.slots {
		if s.used[i] {
			out = append(out, s.slots[i])
		}
	}
	return out
}

// Count reports occupied slots.
func (s *Scene) Count() int {
	n := 0
	for i := range s.used {
		if s.used[i] {
			n++
		}
	}
	return n
}

// Advance moves the simulation clock while playing. Negative deltas from a
// misbehaving frame timer are dropped.
func (s *Scene) Advance(dt float64) {
	if s.Playing && dt > 0 {
		s.Time += dt
	}
}

// Reset rewinds the clock to zero.
func (s *Scene) Reset() { s.Time = 0 }

// SetSpeed updates the live propagation speed used by the evaluator and arms
// the geometry debounce. The mesh resolution only follows once the control
// has been quiet for the quiescence window.
func (s *Scene) SetSpeed(v float64, now time.Time) {
	s.Speed = math.Max(v, field.MinSpeed)
	s.geom.Set(s.Speed, now)
}

// GeometrySpeed reports the debounced speed and whether it changed since the
// last call, i.e. whether the mesh must be rebuilt.
func (s *Scene) GeometrySpeed(now time.Time) (float64, bool) {
	return s.geom.Tick(now)
}

// ToShare flattens the scene into the codec record.
func (s *Scene) ToShare() share.State {
	return share.State{
		Sources:   s.Sources(),
		Speed:     s.Speed,
		AppMode:   uint8(s.Style),
		ParamMode: uint8(s.Mode),
	}
}

// ApplyShare replaces the arena and globals from a decoded record. Slots
// beyond the arena capacity were already rejected by the codec.
func (s *Scene) ApplyShare(st share.State) {
	for i := range s.slots {
		s.used[i] = false
		s.slots[i] = field.Source{}
	}
	for i, src := range st.Sources {
		if i >= field.MaxSources {
			break
		}
		s.slots[i] = src
		s.used[i] = true
	}
	// Keep generated ids clear of the restored ones.
	s.nextID = len(st.Sources)
	for _, src := range st.Sources {
		var n int
		if _, err := fmt.Sscanf(src.ID, "w%d", &n); err == nil && n > s.nextID {
			s.nextID = n
		}
	}
	if st.Speed > 0 {
		s.Speed = st.Speed
	}
	if st.AppMode <= uint8(StyleParams2D) {
		s.Style = Style(st.AppMode)
	}
	if st.ParamMode <= uint8(field.ModePhase) {
		s.Mode = field.Mode(st.ParamMode)
	}
}
