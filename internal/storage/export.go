package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/nbody/internal/dynamo"
)

type ExportData struct {
	Run    RunMetadata   `json:"run"`
	Frames []ExportFrame `json:"frames"`
}

type ExportFrame struct {
	Step   int          `json:"step"`
	Bodies []ExportBody `json:"bodies"`
}

type ExportBody struct {
	ID           string     `json:"id"`
	Mass         float64    `json:"mass"`
	Position     [3]float64 `json:"position"`
	Velocity     [3]float64 `json:"velocity"`
	Acceleration [3]float64 `json:"acceleration"`
}

func ExportJSON(w io.Writer, meta RunMetadata, frames []dynamo.Frame) error {
	data := ExportData{
		Run:    meta,
		Frames: make([]ExportFrame, len(frames)),
	}

	for i, f := range frames {
		out := ExportFrame{Step: f.Step, Bodies: make([]ExportBody, f.Len())}
		for j := range out.Bodies {
			p, v, a := f.Positions[j], f.Velocities[j], f.Accelerations[j]
			out.Bodies[j] = ExportBody{
				ID:           f.IDs[j],
				Mass:         f.Masses[j],
				Position:     [3]float64{p.X, p.Y, p.Z},
				Velocity:     [3]float64{v.X, v.Y, v.Z},
				Acceleration: [3]float64{a.X, a.Y, a.Z},
			}
		}
		data.Frames[i] = out
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
