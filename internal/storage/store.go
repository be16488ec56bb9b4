package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/poolsim/internal/kinetics"
)

// Store persists completed runs under a base directory, one subdirectory
// per run with metadata.json and trace.csv. It consumes traces after a
// run; it is not part of the stepping loop.
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
	Model      string             `json:"model"`
	Timestamp  time.Time          `json:"timestamp"`
	Dt         float64            `json:"dt"`
	Steps      int                `json:"steps"`
	Integrator string             `json:"integrator"`
	PoolNames  []string           `json:"pool_names"`
	FluxNames  []string           `json:"flux_names"`
	Metrics    map[string]float64 `json:"metrics"`
}

func (s *Store) Save(model string, cfg kinetics.Config, integrator string, poolNames, fluxNames []string, metrics map[string]float64, tr *kinetics.Trace) (string, error) {
	runID := fmt.Sprintf("%s_%d", model, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Model:      model,
		Timestamp:  time.Now(),
		Dt:         cfg.Dt,
		Steps:      cfg.Steps,
		Integrator: integrator,
		PoolNames:  poolNames,
		FluxNames:  fluxNames,
		Metrics:    metrics,
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "trace.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := []string{"time"}
	header = append(header, poolNames...)
	for _, name := range poolNames {
		header = append(header, "con_"+name)
	}
	header = append(header, fluxNames...)
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, rec := range tr.All() {
		row := make([]string, 0, len(header))
		row = append(row, strconv.FormatFloat(rec.Time, 'f', 6, 64))
		for _, v := range rec.State {
			row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
		}
		for _, v := range rec.Aux.Concentrations {
			row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
		}
		for _, v := range rec.Aux.Fluxes {
			row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
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

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
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
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadTrace rebuilds a run's trace from trace.csv, using the pool and flux
// counts recorded in its metadata to split the columns.
func (s *Store) LoadTrace(runID string) (*kinetics.Trace, *RunMetadata, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, nil, err
	}

	csvPath := filepath.Join(s.baseDir, runID, "trace.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	nPools := len(meta.PoolNames)
	nFluxes := len(meta.FluxNames)
	wantCols := 1 + 2*nPools + nFluxes

	tr := kinetics.NewTrace(len(records))
	for i := 1; i < len(records); i++ {
		row := records[i]
		if len(row) != wantCols {
			return nil, nil, fmt.Errorf("trace row %d has %d columns, want %d", i, len(row), wantCols)
		}

		vals := make([]float64, len(row))
		for j, field := range row {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("trace row %d column %d: %w", i, j, err)
			}
			vals[j] = v
		}

		rec := kinetics.Record{
			Time:  vals[0],
			State: kinetics.State(vals[1 : 1+nPools]),
			Aux: kinetics.Snapshot{
				Concentrations: vals[1+nPools : 1+2*nPools],
				Fluxes:         vals[1+2*nPools:],
			},
		}
		tr.Append(rec)
	}

	return tr, meta, nil
}
