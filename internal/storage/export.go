package storage

import (
	"encoding/json"
	"io"
	"os"
)

type ExportData struct {
	Run    RunMetadata   `json:"run"`
	Frames []ExportFrame `json:"frames"`
}

type ExportFrame struct {
	Step      int              `json:"step"`
	Time      float64          `json:"time"`
	Particles []ExportParticle `json:"particles"`
}

type ExportParticle struct {
	ID     int        `json:"id"`
	Pos    [3]float64 `json:"pos"`
	Vel    [3]float64 `json:"vel"`
	Weight float64    `json:"weight,omitempty"`
}

func exportData(meta RunMetadata, frames []Frame) ExportData {
	data := ExportData{
		Run:    meta,
		Frames: make([]ExportFrame, len(frames)),
	}
	for i, f := range frames {
		ef := ExportFrame{
			Step:      f.Step,
			Time:      f.Time,
			Particles: make([]ExportParticle, len(f.Particles)),
		}
		for j, p := range f.Particles {
			ef.Particles[j] = ExportParticle{
				ID:     p.ID,
				Pos:    [3]float64{p.Pos.X, p.Pos.Y, p.Pos.Z},
				Vel:    [3]float64{p.Vel.X, p.Vel.Y, p.Vel.Z},
				Weight: p.Weight,
			}
		}
		data.Frames[i] = ef
	}
	return data
}

// WriteJSON encodes a run as indented JSON.
func WriteJSON(w io.Writer, meta RunMetadata, frames []Frame) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(exportData(meta, frames))
}

func ExportJSON(path string, meta RunMetadata, frames []Frame) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteJSON(file, meta, frames); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
