package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/nbody/internal/dynamo"
)

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.csv"
)

var trajectoryHeader = []string{"step", "id", "mass", "px", "py", "pz", "vx", "vy", "vz", "ax", "ay", "az"}

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
	ID         string             `json:"id"`
	System     string             `json:"system"`
	Numeric    string             `json:"numeric"`
	Integrator string             `json:"integrator"`
	Timestamp  time.Time          `json:"timestamp"`
	Dt         float64            `json:"dt"`
	Steps      int                `json:"steps"`
	Cycles     int                `json:"cycles"`
	Workers    int                `json:"workers"`
	G          float64            `json:"gravitational_constant"`
	Softening  float64            `json:"softening_constant"`
	Bodies     int                `json:"bodies"`
	Frames     int                `json:"frames"`
	Elapsed    time.Duration      `json:"elapsed_ns"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Save writes a new run directory and returns its id. meta.ID, Timestamp
// and Frames are filled in here.
func (s *Store) Save(meta RunMetadata, frames []dynamo.Frame) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", runName(meta.System), now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.Frames = len(frames)

	if err := writeMetadata(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeTrajectory(filepath.Join(runDir, trajectoryFile), frames); err != nil {
		return "", err
	}
	return runID, nil
}

func runName(system string) string {
	name := strings.TrimSuffix(filepath.Base(system), filepath.Ext(system))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "run"
	}
	return name
}

func writeMetadata(path string, meta RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func writeTrajectory(path string, frames []dynamo.Frame) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(trajectoryHeader); err != nil {
		return err
	}

	for _, fr := range frames {
		step := strconv.Itoa(fr.Step)
		for i := 0; i < fr.Len(); i++ {
			row := []string{step, fr.IDs[i], formatFloat(fr.Masses[i])}
			row = appendVec(row, fr.Positions[i])
			row = appendVec(row, fr.Velocities[i])
			row = appendVec(row, fr.Accelerations[i])
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}

func formatFloat(x float64) string { return strconv.FormatFloat(x, 'g', -1, 64) }

func appendVec(row []string, v r3.Vec) []string {
	return append(row, formatFloat(v.X), formatFloat(v.Y), formatFloat(v.Z))
}

// List returns every readable run, oldest first.
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
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

// LoadFrames reads a trajectory back. Rows sharing a step become one frame.
func (s *Store) LoadFrames(runID string) ([]dynamo.Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(trajectoryHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []dynamo.Frame{}, nil
	}

	frames := make([]dynamo.Frame, 0)
	for line, record := range records[1:] {
		step, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", trajectoryFile, line+2, err)
		}
		nums := make([]float64, 10)
		for k := range nums {
			nums[k], err = strconv.ParseFloat(record[k+2], 64)
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", trajectoryFile, line+2, err)
			}
		}

		if len(frames) == 0 || frames[len(frames)-1].Step != step {
			frames = append(frames, dynamo.Frame{Step: step})
		}
		fr := &frames[len(frames)-1]
		fr.IDs = append(fr.IDs, record[1])
		fr.Masses = append(fr.Masses, nums[0])
		fr.Positions = append(fr.Positions, r3.Vec{X: nums[1], Y: nums[2], Z: nums[3]})
		fr.Velocities = append(fr.Velocities, r3.Vec{X: nums[4], Y: nums[5], Z: nums[6]})
		fr.Accelerations = append(fr.Accelerations, r3.Vec{X: nums[7], Y: nums[8], Z: nums[9]})
	}
	return frames, nil
}
