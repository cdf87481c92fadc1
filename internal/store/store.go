package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/kinelab/kinelab/internal/config"
	"github.com/kinelab/kinelab/internal/timeline"
)

// Store persists simulation runs under a base directory, one directory per
// run holding metadata.json and samples.csv. The engine itself never
// touches it; the CLI hands finished snapshots in.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// BodyRecord is the persisted description of one body.
type BodyRecord struct {
	Name string  `json:"name"`
	Mode string  `json:"mode"`
	X0   float64 `json:"x0"`
	V0   float64 `json:"v0"`
	A    float64 `json:"a"`
}

// CrossingRecord is the persisted crossing point, when one was found.
type CrossingRecord struct {
	T float64 `json:"t"`
	X float64 `json:"x"`
}

// RunMetadata is the JSON sidecar written next to each run's samples.
type RunMetadata struct {
	ID        string          `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Step      float64         `json:"step"`
	Horizon   float64         `json:"horizon"`
	BodyA     BodyRecord      `json:"body_a"`
	BodyB     BodyRecord      `json:"body_b"`
	Crossing  *CrossingRecord `json:"crossing,omitempty"`
}

// Save writes one run to disk and returns its ID.
func (s *Store) Save(cfg *config.Config, snap *timeline.Snapshot) (string, error) {
	runID := fmt.Sprintf("run_%d", time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	a, b := cfg.Bodies()
	meta := RunMetadata{
		ID:        runID,
		Timestamp: time.Now(),
		Step:      snap.Timeline.Step,
		Horizon:   snap.Timeline.Horizon,
		BodyA:     BodyRecord{Name: a.Name, Mode: a.Mode(), X0: a.X0, V0: a.V0, A: a.A},
		BodyB:     BodyRecord{Name: b.Name, Mode: b.Mode(), X0: b.X0, V0: b.V0, A: b.A},
	}
	if snap.Crossing != nil {
		meta.Crossing = &CrossingRecord{T: snap.Crossing.T, X: snap.Crossing.X}
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "samples.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"t", "x_a", "v_a", "x_b", "v_b"}); err != nil {
		return "", err
	}
	for _, f := range snap.Timeline.Frames {
		row := []string{
			strconv.FormatFloat(f.T, 'f', -1, 64),
			strconv.FormatFloat(f.A.X, 'f', -1, 64),
			strconv.FormatFloat(f.A.V, 'f', -1, 64),
			strconv.FormatFloat(f.B.X, 'f', -1, 64),
			strconv.FormatFloat(f.B.V, 'f', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return runID, nil
}

// List returns metadata for all stored runs, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := s.LoadMetadata(e.Name())
		if err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

// LoadMetadata reads one run's metadata.json.
func (s *Store) LoadMetadata(runID string) (RunMetadata, error) {
	var meta RunMetadata
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return meta, err
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return meta, err
	}
	return meta, nil
}

// LoadSamples reads one run's samples.csv back into a Timeline.
func (s *Store) LoadSamples(runID string) (timeline.Timeline, error) {
	var tl timeline.Timeline

	meta, err := s.LoadMetadata(runID)
	if err != nil {
		return tl, err
	}
	tl.Step = meta.Step
	tl.Horizon = meta.Horizon

	f, err := os.Open(filepath.Join(s.baseDir, runID, "samples.csv"))
	if err != nil {
		return tl, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return tl, err
	}
	if len(rows) < 1 {
		return tl, fmt.Errorf("store: run %s has no samples", runID)
	}

	tl.Frames = make([]timeline.Frame, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) != 5 {
			return tl, fmt.Errorf("store: run %s has a malformed sample row", runID)
		}
		vals := make([]float64, 5)
		for i, cell := range row {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return tl, fmt.Errorf("store: run %s: %w", runID, err)
			}
			vals[i] = v
		}
		tl.Frames = append(tl.Frames, timeline.Frame{
			T: vals[0],
			A: timeline.BodyState{X: vals[1], V: vals[2]},
			B: timeline.BodyState{X: vals[3], V: vals[4]},
		})
	}
	return tl, nil
}

// SamplesPath returns the CSV path for a run, for streaming exports.
func (s *Store) SamplesPath(runID string) string {
	return filepath.Join(s.baseDir, runID, "samples.csv")
}
