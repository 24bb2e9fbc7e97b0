package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/mechlab/internal/sim"
)

type ExportData struct {
	ID         string             `json:"id,omitempty"`
	Experiment string             `json:"experiment"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Params     map[string]float64 `json:"params,omitempty"`
	Steps      int                `json:"steps"`
	Columns    []string           `json:"columns"`
	Times      []float64          `json:"times"`
	Samples    [][]float64        `json:"samples"`
	Metrics    map[string]float64 `json:"metrics"`
}

// ExportJSON writes a run as one indented JSON document. meta may be nil
// for results that were never saved.
func ExportJSON(w io.Writer, meta *RunMetadata, result *sim.Result) error {
	data := ExportData{
		Experiment: result.Experiment,
		Steps:      len(result.Times),
		Columns:    result.Columns,
		Times:      result.Times,
		Samples:    make([][]float64, len(result.Samples)),
		Metrics:    result.Metrics,
	}
	if meta != nil {
		data.ID = meta.ID
		data.Dt = meta.Dt
		data.Duration = meta.Duration
		data.Params = meta.Params
	}

	for i, s := range result.Samples {
		data.Samples[i] = s
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
