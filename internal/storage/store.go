// Package storage persists simulation runs as a per-run directory with
// a metadata.json and a states.csv trajectory.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/balancelab/internal/sim"
)

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
	Scenario    string             `json:"scenario"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        int64              `json:"seed"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	ColumnState string             `json:"column_state"`
	Metrics     map[string]float64 `json:"metrics"`
}

func (s *Store) Save(scenario, columnState string, cfg sim.Config, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", scenario, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Scenario:    scenario,
		Timestamp:   time.Now(),
		Seed:        cfg.Seed,
		Dt:          cfg.Dt,
		Duration:    cfg.Duration,
		ColumnState: columnState,
		Metrics:     result.Metrics,
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

	csvFile, err := os.Create(filepath.Join(runDir, "states.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"time", "tilt", "omega", "torque"}); err != nil {
		return "", err
	}

	for i := range result.Times {
		row := []string{
			strconv.FormatFloat(result.Times[i], 'f', 6, 64),
			strconv.FormatFloat(result.Tilts[i], 'f', 6, 64),
			strconv.FormatFloat(result.Omegas[i], 'f', 6, 64),
			strconv.FormatFloat(result.Torques[i], 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
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

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadStates reads the recorded trajectory back as frames.
func (s *Store) LoadStates(runID string) ([]sim.Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "states.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []sim.Frame{}, nil
	}

	frames := make([]sim.Frame, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 4 {
			continue
		}

		vals := make([]float64, 4)
		bad := false
		for i := 0; i < 4; i++ {
			v, err := strconv.ParseFloat(record[i], 64)
			if err != nil {
				bad = true
				break
			}
			vals[i] = v
		}
		if bad {
			continue
		}

		frames = append(frames, sim.Frame{
			Time:   vals[0],
			Tilt:   vals[1],
			Omega:  vals[2],
			Torque: vals[3],
		})
	}

	return frames, nil
}
