package storage

import (
	"encoding/json"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/san-kum/bisect/internal/bisect"
)

// jsonFloat encodes NaN and the infinities as null.
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

type exportStep struct {
	Iteration int       `json:"iteration"`
	Low       jsonFloat `json:"low"`
	High      jsonFloat `json:"high"`
	Mid       jsonFloat `json:"mid"`
	FMid      jsonFloat `json:"fmid"`
}

type ExportData struct {
	RunMetadata
	Steps []exportStep `json:"steps"`
}

func newExportData(meta RunMetadata, steps []bisect.Step) ExportData {
	data := ExportData{RunMetadata: meta, Steps: make([]exportStep, len(steps))}
	for i, st := range steps {
		data.Steps[i] = exportStep{
			Iteration: st.Iteration,
			Low:       jsonFloat(st.Low),
			High:      jsonFloat(st.High),
			Mid:       jsonFloat(st.Mid),
			FMid:      jsonFloat(st.FMid),
		}
	}
	return data
}

// ExportJSON writes a run's metadata and steps as one JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	steps, err := s.LoadSteps(runID)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newExportData(*meta, steps))
}

// ExportCSV copies a run's step table to w.
func (s *Store) ExportCSV(w io.Writer, runID string) error {
	file, err := os.Open(s.StepsPath(runID))
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = io.Copy(w, file)
	return err
}
