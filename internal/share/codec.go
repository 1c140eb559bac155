// Package share encodes the full interactive state to a compact versioned
// byte buffer, carried as a base64 URL fragment. Malformed or unknown-version
// input yields "no state"; callers fall back to defaults.
package share

import (
	"encoding/base64"
	"encoding/binary"
	"math"

	"github.com/san-kum/wavelab/internal/field"
)

// Version is the current format byte. Decoding rejects anything else.
const Version = 0x01

// State is the flat settings record the codec round-trips. Spatial and wave
// parameters are quantized to float32 on the wire.
type State struct {
	Sources   []field.Source
	Speed     float64
	AppMode   uint8
	ParamMode uint8
}

// Encode serializes the state.
// Layout: [version][count] then per source [idLen][id][x][y][amp][freq][phase][visible],
// then [speed][appMode][paramMode]. All floats are little-endian float32.
func Encode(s State) []byte {
	n := len(s.Sources)
	if n > field.MaxSources {
		n = field.MaxSources
	}

	buf := make([]byte, 0, 2+n*32+6)
	buf = append(buf, Version, byte(n))

	for _, src := range s.Sources[:n] {
		id := []byte(src.ID)
		if len(id) > 255 {
			id = id[:255]
		}
		buf = append(buf, byte(len(id)))
		buf = append(buf, id...)
		buf = appendFloat(buf, src.X)
		buf = appendFloat(buf, src.Y)
		buf = appendFloat(buf, src.Amplitude)
		buf = appendFloat(buf, src.Frequency)
		buf = appendFloat(buf, src.Phase)
		if src.Visible {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
	}

	buf = appendFloat(buf, s.Speed)
	buf = append(buf, s.AppMode, s.ParamMode)
	return buf
}

// Decode parses a buffer produced by Encode. The second return is false for
// an unknown version byte or a structurally invalid payload; no partial
// best-effort state is ever returned.
func Decode(buf []byte) (State, bool) {
	var s State
	if len(buf) < 2 || buf[0] != Version {
		return State{}, false
	}
	count := int(buf[1])
	if count > field.MaxSources {
		return State{}, false
	}

	off := 2
	for i := 0; i < count; i++ {
		if off >= len(buf) {
			return State{}, false
		}
		idLen := int(buf[off])
		off++
		if off+idLen+21 > len(buf) {
			return State{}, false
		}
		src := field.Source{ID: string(buf[off : off+idLen])}
		off += idLen
		src.X, off = readFloat(buf, off)
		src.Y, off = readFloat(buf, off)
		src.Amplitude, off = readFloat(buf, off)
		src.Frequency, off = readFloat(buf, off)
		src.Phase, off = readFloat(buf, off)
		src.Visible = buf[off] != 0
		off++
		s.Sources = append(s.Sources, src)
	}

	if off+6 > len(buf) {
		return State{}, false
	}
	s.Speed, off = readFloat(buf, off)
	s.AppMode = buf[off]
	s.ParamMode = buf[off+1]
	return s, true
}

// EncodeString is the URL-fragment form of Encode.
func EncodeString(s State) string {
	return base64.RawURLEncoding.EncodeToString(Encode(s))
}

// DecodeString reverses EncodeString. Invalid base64 counts as no state.
func DecodeString(str string) (State, bool) {
	buf, err := base64.RawURLEncoding.DecodeString(str)
	if err != nil {
		return State{}, false
	}
	return Decode(buf)
}

func appendFloat(buf []byte, v float64) []byte {
	return binary.LittleEndian.AppendUint32(buf, math.Float32bits(float32(v)))
}

func readFloat(buf []byte, off int) (float64, int) {
	bits := binary.LittleEndian.Uint32(buf[off : off+4])
	return float64(math.Float32frombits(bits)), off + 4
}
