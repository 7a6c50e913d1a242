package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/nbody/internal/body"
)

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.csv"
)

var (
	ErrMalformed = errors.New("storage: malformed trajectory")
	ErrNoRunID   = errors.New("storage: run has no id")
)

var trajectoryHeader = []string{"step", "time", "id", "x", "y", "z", "vx", "vy", "vz"}

// Frame is the particle set at one recorded step.
type Frame struct {
	Step      int
	Time      float64
	Particles []body.Particle
}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        int64              `json:"seed"`
	Strategy    string             `json:"strategy"`
	Method      string             `json:"method"`
	Law         string             `json:"law"`
	Dt          float64            `json:"dt"`
	Steps       int                `json:"steps"`
	Particles   int                `json:"particles"`
	Frames      int                `json:"frames"`
	EnergyDrift float64            `json:"energy_drift"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Save writes meta and the frames of a run to a new directory and returns
// the run ID.
func (s *Store) Save(meta RunMetadata, frames []Frame) (string, error) {
	now := time.Now()
	meta.ID = fmt.Sprintf("%s_%d", meta.Name, now.UnixNano())
	meta.Timestamp = now
	meta.Frames = len(frames)

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, trajectoryFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteTrajectory(csvFile, frames); err != nil {
		return "", err
	}
	return meta.ID, nil
}

// WriteTrajectory writes one CSV row per particle per frame.
func WriteTrajectory(w io.Writer, frames []Frame) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(trajectoryHeader); err != nil {
		return err
	}

	row := make([]string, len(trajectoryHeader))
	for _, f := range frames {
		for _, p := range f.Particles {
			row[0] = strconv.Itoa(f.Step)
			row[1] = formatFloat(f.Time)
			row[2] = strconv.Itoa(p.ID)
			row[3], row[4], row[5] = formatFloat(p.Pos.X), formatFloat(p.Pos.Y), formatFloat(p.Pos.Z)
			row[6], row[7], row[8] = formatFloat(p.Vel.X), formatFloat(p.Vel.Y), formatFloat(p.Vel.Z)
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadTrajectory reads the frames of a run. Particle weights are not
// stored and come back as zero.
func (s *Store) LoadTrajectory(runID string) ([]Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadTrajectory(file)
}

func ReadTrajectory(r io.Reader) ([]Frame, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(trajectoryHeader)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if len(records) < 2 {
		return []Frame{}, nil
	}

	frames := make([]Frame, 0)
	vals := make([]float64, len(trajectoryHeader))
	for i, record := range records[1:] {
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d column %s: %w", ErrMalformed, i+2, trajectoryHeader[j], err)
			}
			vals[j] = v
		}

		step := int(vals[0])
		if len(frames) == 0 || frames[len(frames)-1].Step != step {
			frames = append(frames, Frame{Step: step, Time: vals[1]})
		}
		f := &frames[len(frames)-1]
		f.Particles = append(f.Particles, body.Particle{
			ID:  int(vals[2]),
			Pos: r3.Vec{X: vals[3], Y: vals[4], Z: vals[5]},
			Vel: r3.Vec{X: vals[6], Y: vals[7], Z: vals[8]},
		})
	}
	return frames, nil
}
