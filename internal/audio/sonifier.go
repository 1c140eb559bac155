// Package audio turns the wave field into sound: each visible source drives
// one oscillator whose pitch scales with the source frequency, so
// interference-heavy scenes are audibly denser.
package audio

import (
	"fmt"
	"math"
	"sync"

	"github.com/gordonklaus/portaudio"

	"github.com/san-kum/wavelab/internal/field"
)

const (
	SampleRate = 44100
	BufferSize = 1024

	// pitchScale maps angular source frequency (a few rad/s) into an
	// audible band.
	pitchScale = 55.0
)

type Sonifier struct {
	stream *portaudio.Stream

	mu      sync.Mutex
	sources []field.Source

	time   float64
	smooth float64
	Active bool
}

func NewSonifier() *Sonifier {
	return &Sonifier{}
}

func (s *Sonifier) Start() error {
	portaudio.Initialize()

	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, s.process)
	if err != nil {
		fmt.Printf("AUDIO ERROR: %v\n", err)
		return err
	}
	if err := stream.Start(); err != nil {
		fmt.Printf("STREAM START ERROR: %v\n", err)
		return err
	}

	s.stream = stream
	s.Active = true
	return nil
}

func (s *Sonifier) Stop() {
	if s.stream != nil {
		s.stream.Stop()
		s.stream.Close()
	}
	portaudio.Terminate()
	s.Active = false
}

// SetSources installs the per-frame source snapshot. The callback reads it
// under the lock, so the frame loop can hand over its slice directly.
func (s *Sonifier) SetSources(src []field.Source) {
	s.mu.Lock()
	s.sources = src
	s.mu.Unlock()
}

func (s *Sonifier) process(in []float32, out [][]float32) {
	s.mu.Lock()
	sources := s.sources
	s.mu.Unlock()

	dt := 1.0 / float64(SampleRate)
	vol := 0.2

	for i := 0; i < len(out[0]); i++ {
		var sample float64
		var total float64
		for _, src := range sources {
			if !src.Visible {
				continue
			}
			f := math.Abs(src.Frequency) * pitchScale
			sample += src.Amplitude * math.Sin(2*math.Pi*f*s.time+src.Phase)
			total += src.Amplitude
		}
		if total > 1 {
			sample /= total
		}

		// One-pole smoothing takes the edge off parameter jumps.
		s.smooth += 0.05 * (sample - s.smooth)

		v := float32(math.Tanh(s.smooth) * vol)
		out[0][i] = v
		out[1][i] = v

		s.time += dt
	}
}
