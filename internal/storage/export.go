package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/poolsim/internal/kinetics"
)

type ExportData struct {
	Model          string             `json:"model"`
	Integrator     string             `json:"integrator"`
	Dt             float64            `json:"dt"`
	Steps          int                `json:"steps"`
	PoolNames      []string           `json:"pool_names"`
	FluxNames      []string           `json:"flux_names"`
	Times          []float64          `json:"times"`
	States         [][]float64        `json:"states"`
	Concentrations [][]float64        `json:"concentrations"`
	Fluxes         [][]float64        `json:"fluxes"`
	Metrics        map[string]float64 `json:"metrics"`
}

func exportData(meta *RunMetadata, tr *kinetics.Trace) ExportData {
	data := ExportData{
		Model:          meta.Model,
		Integrator:     meta.Integrator,
		Dt:             meta.Dt,
		Steps:          meta.Steps,
		PoolNames:      meta.PoolNames,
		FluxNames:      meta.FluxNames,
		Times:          make([]float64, 0, tr.Len()),
		States:         make([][]float64, 0, tr.Len()),
		Concentrations: make([][]float64, 0, tr.Len()),
		Fluxes:         make([][]float64, 0, tr.Len()),
		Metrics:        meta.Metrics,
	}

	for _, rec := range tr.All() {
		data.Times = append(data.Times, rec.Time)
		data.States = append(data.States, rec.State)
		data.Concentrations = append(data.Concentrations, rec.Aux.Concentrations)
		data.Fluxes = append(data.Fluxes, rec.Aux.Fluxes)
	}

	return data
}

func ExportJSON(w io.Writer, meta *RunMetadata, tr *kinetics.Trace) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(exportData(meta, tr))
}

func ExportJSONFile(path string, meta *RunMetadata, tr *kinetics.Trace) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return ExportJSON(file, meta, tr)
}
