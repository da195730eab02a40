package storage

import (
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/zeebo/blake3"

	"github.com/san-kum/bisect/internal/bisect"
)

const (
	metadataFile = "metadata.json"
	stepsFile    = "steps.csv"
)

var stepsHeader = []string{"iteration", "low", "high", "mid", "fmid"}

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
	ID            string             `json:"id"`
	Function      string             `json:"function"`
	Expr          string             `json:"expr"`
	Timestamp     time.Time          `json:"timestamp"`
	Low           float64            `json:"low"`
	High          float64            `json:"high"`
	Tolerance     float64            `json:"tolerance"`
	MaxIterations int                `json:"max_iterations"`
	Root          float64            `json:"root"`
	FRoot         float64            `json:"froot"`
	Iterations    int                `json:"iterations"`
	Evaluations   int                `json:"evaluations"`
	Converged     bool               `json:"converged"`
	Reason        string             `json:"reason"`
	Error         string             `json:"error,omitempty"`
	Metrics       map[string]float64 `json:"metrics"`
}

// NewRunMetadata fills the outcome fields from a solve. res may be nil when
// the solve failed before bisecting.
func NewRunMetadata(function, expr string, low, high float64, cfg bisect.Config, res *bisect.Result, err error) RunMetadata {
	meta := RunMetadata{
		Function:      function,
		Expr:          expr,
		Low:           low,
		High:          high,
		Tolerance:     cfg.Tolerance,
		MaxIterations: cfg.MaxIterations,
		Reason:        bisect.StopNone.String(),
	}
	if res != nil {
		meta.Root = res.Root
		meta.FRoot = finiteOr(res.FRoot, 0)
		meta.Iterations = res.Iterations
		meta.Evaluations = res.Evaluations
		meta.Converged = res.Converged
		meta.Reason = res.Reason.String()
		meta.Metrics = make(map[string]float64, len(res.Metrics))
		for name, v := range res.Metrics {
			// JSON has no encoding for NaN or the infinities
			if !math.IsNaN(v) && !math.IsInf(v, 0) {
				meta.Metrics[name] = v
			}
		}
	}
	if err != nil {
		meta.Error = err.Error()
	}
	return meta
}

// RunID derives the run directory name from the solve inputs, so solving
// the same problem twice overwrites one run instead of creating two.
func RunID(meta RunMetadata) string {
	h := blake3.New()
	fmt.Fprintf(h, "%s\x00%s\x00%x\x00%x\x00%x\x00%d",
		meta.Function, meta.Expr, meta.Low, meta.High, meta.Tolerance, meta.MaxIterations)
	sum := h.Sum(nil)

	name := meta.Function
	if name == "" {
		name = "expr"
	}
	return fmt.Sprintf("%s_%s", name, hex.EncodeToString(sum[:6]))
}

func (s *Store) Save(meta RunMetadata, steps []bisect.Step) (string, error) {
	runID := RunID(meta)
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
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

	csvFile, err := os.Create(filepath.Join(runDir, stepsFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteStepsCSV(csvFile, steps); err != nil {
		return "", err
	}
	return runID, nil
}

// WriteStepsCSV writes steps with full float64 precision.
func WriteStepsCSV(w io.Writer, steps []bisect.Step) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(stepsHeader); err != nil {
		return err
	}
	for _, st := range steps {
		row := []string{
			strconv.Itoa(st.Iteration),
			strconv.FormatFloat(st.Low, 'g', -1, 64),
			strconv.FormatFloat(st.High, 'g', -1, 64),
			strconv.FormatFloat(st.Mid, 'g', -1, 64),
			strconv.FormatFloat(st.FMid, 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// List returns the stored runs, newest first.
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
		return runs[i].Timestamp.After(runs[j].Timestamp)
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

func (s *Store) LoadSteps(runID string) ([]bisect.Step, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, stepsFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(stepsHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []bisect.Step{}, nil
	}

	steps := make([]bisect.Step, 0, len(records)-1)
	for i, record := range records[1:] {
		st, err := parseStep(record)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", stepsFile, i+2, err)
		}
		steps = append(steps, st)
	}
	return steps, nil
}

func parseStep(record []string) (bisect.Step, error) {
	var st bisect.Step
	var err error
	if st.Iteration, err = strconv.Atoi(record[0]); err != nil {
		return st, err
	}
	vals := make([]float64, 4)
	for i := range vals {
		if vals[i], err = strconv.ParseFloat(record[i+1], 64); err != nil {
			return st, err
		}
	}
	st.Low, st.High, st.Mid, st.FMid = vals[0], vals[1], vals[2], vals[3]
	return st, nil
}

// StepsPath is the location of a run's step table.
func (s *Store) StepsPath(runID string) string {
	return filepath.Join(s.baseDir, runID, stepsFile)
}

func finiteOr(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}
