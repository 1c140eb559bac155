// Package export writes evaluated field snapshots to disk for offline
// inspection.
package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"strconv"

	"github.com/san-kum/wavelab/internal/surface"
)

// Snapshot is the JSON form of one evaluated frame.
type Snapshot struct {
	Time       float64     `json:"time"`
	Speed      float64     `json:"speed"`
	Mode       string      `json:"mode"`
	Resolution int         `json:"resolution"`
	Axis       []float64   `json:"axis"`
	Heights    [][]float64 `json:"heights"`
	Values     [][]float64 `json:"values"`
}

// Build reshapes the flat evaluation buffers into grid rows.
func Build(f *surface.Field, snap surface.Snapshot) *Snapshot {
	stride := f.Grid.Resolution + 1
	out := &Snapshot{
		Time:       snap.Time,
		Speed:      snap.Speed,
		Mode:       snap.Mode.String(),
		Resolution: f.Grid.Resolution,
		Axis:       f.Grid.Axis,
		Heights:    make([][]float64, stride),
		Values:     make([][]float64, stride),
	}
	for row := 0; row < stride; row++ {
		out.Heights[row] = f.Heights[row*stride : (row+1)*stride]
		out.Values[row] = f.Values[row*stride : (row+1)*stride]
	}
	return out
}

// WriteJSON writes the snapshot as indented JSON.
func WriteJSON(path string, s *Snapshot) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// WriteCSV writes one row per vertex: x, y, height, value.
func WriteCSV(path string, s *Snapshot) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"x", "y", "height", "value"}); err != nil {
		return err
	}
	for row := range s.Heights {
		for col := range s.Heights[row] {
			rec := []string{
				strconv.FormatFloat(s.Axis[col], 'f', 6, 64),
				strconv.FormatFloat(s.Axis[row], 'f', 6, 64),
				strconv.FormatFloat(s.Heights[row][col], 'f', 6, 64),
				strconv.FormatFloat(s.Values[row][col], 'f', 6, 64),
			}
			if err := w.Write(rec); err != nil {
				return err
			}
		}
	}
	return nil
}
