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

	"github.com/san-kum/boxdrop/internal/headless"
	"github.com/san-kum/boxdrop/internal/scene"
)

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.csv"
)

var trajectoryHeader = []string{"frame", "time", "mesh", "x", "y", "z", "vx", "vy", "vz"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Dir is the directory holding runs and the live log.
func (s *Store) Dir() string { return s.baseDir }

type RunMetadata struct {
	ID         string                `json:"id"`
	Preset     string                `json:"preset"`
	Timestamp  time.Time             `json:"timestamp"`
	Backend    string                `json:"backend"`
	Integrator string                `json:"integrator"`
	Physics    bool                  `json:"physics"`
	Dt         float64               `json:"dt"`
	Frames     int                   `json:"frames"`
	Final      map[string]scene.Vec3 `json:"final"`
	Metrics    map[string]float64    `json:"metrics,omitempty"`
}

// Save writes a run directory and returns its id. Final is filled from the
// last sample of every mesh.
func (s *Store) Save(meta RunMetadata, samples []headless.Sample) (string, error) {
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	name := meta.Preset
	if name == "" {
		name = "run"
	}
	meta.ID = fmt.Sprintf("%s_%d", name, meta.Timestamp.UnixNano())
	meta.Final = make(map[string]scene.Vec3)
	for _, smp := range samples {
		meta.Final[smp.Mesh] = smp.Position
	}

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

	w := csv.NewWriter(csvFile)
	if err := w.Write(trajectoryHeader); err != nil {
		return "", err
	}
	for _, smp := range samples {
		row := []string{
			strconv.Itoa(smp.Frame),
			formatFloat(smp.Time),
			smp.Mesh,
			formatFloat(smp.Position.X),
			formatFloat(smp.Position.Y),
			formatFloat(smp.Position.Z),
			formatFloat(smp.Velocity.X),
			formatFloat(smp.Velocity.Y),
			formatFloat(smp.Velocity.Z),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return meta.ID, nil
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
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
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadSamples reads back a run's trajectory. Malformed rows are skipped.
func (s *Store) LoadSamples(runID string) ([]headless.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	samples := make([]headless.Sample, 0, max(len(records)-1, 0))
	for i := 1; i < len(records); i++ {
		smp, ok := parseSample(records[i])
		if !ok {
			continue
		}
		samples = append(samples, smp)
	}
	return samples, nil
}

// Series returns the y position of one mesh over time.
func Series(samples []headless.Sample, mesh string) []float64 {
	var ys []float64
	for _, smp := range samples {
		if smp.Mesh == mesh {
			ys = append(ys, smp.Position.Y)
		}
	}
	return ys
}

type ExportData struct {
	RunMetadata
	Samples []headless.Sample `json:"samples"`
}

// ExportJSON writes a run's metadata and trajectory as one JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	samples, err := s.LoadSamples(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{RunMetadata: *meta, Samples: samples})
}

func parseSample(record []string) (headless.Sample, bool) {
	if len(record) != len(trajectoryHeader) {
		return headless.Sample{}, false
	}
	frame, err := strconv.Atoi(record[0])
	if err != nil {
		return headless.Sample{}, false
	}
	vals := make([]float64, 0, 7)
	for _, field := range append([]string{record[1]}, record[3:]...) {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return headless.Sample{}, false
		}
		vals = append(vals, v)
	}
	return headless.Sample{
		Frame:    frame,
		Time:     vals[0],
		Mesh:     record[2],
		Position: scene.V(vals[1], vals[2], vals[3]),
		Velocity: scene.V(vals[4], vals[5], vals[6]),
	}, true
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
