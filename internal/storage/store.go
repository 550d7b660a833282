package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/vortsim/internal/config"
	"github.com/san-kum/vortsim/internal/metrics"
	"github.com/san-kum/vortsim/pkg/vortex"
)

var ErrMalformed = errors.New("storage: malformed run file")

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
	Preset     string             `json:"preset"`
	Timestamp  time.Time          `json:"timestamp"`
	Resolution int                `json:"resolution"`
	Viscosity  float64            `json:"viscosity"`
	Dt         float64            `json:"dt"`
	Frames     int                `json:"frames"`
	Boundary   string             `json:"boundary"`
	Metrics    map[string]float64 `json:"metrics"`
	Config     *config.Config     `json:"config"`
}

// Run is everything persisted for one headless simulation.
type Run struct {
	Preset  string
	Config  *config.Config
	History []vortex.Diagnostics
	Field   []float64
	Metrics map[string]float64
}

func (s *Store) Save(run *Run) (string, error) {
	if run.Config == nil {
		return "", fmt.Errorf("storage: run has no config")
	}
	n := run.Config.Resolution
	if len(run.Field) != 0 && len(run.Field) != n*n {
		return "", fmt.Errorf("storage: field has %d cells, want %d", len(run.Field), n*n)
	}

	name := run.Preset
	if name == "" {
		name = "custom"
	}
	runID, runDir, err := s.newRunDir(name)
	if err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Preset:     run.Preset,
		Timestamp:  time.Now(),
		Resolution: n,
		Viscosity:  run.Config.Viscosity,
		Dt:         run.Config.Dt,
		Frames:     len(run.History),
		Boundary:   run.Config.Boundary,
		Metrics:    run.Metrics,
		Config:     run.Config,
	}
	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if err := writeSeries(filepath.Join(runDir, "diagnostics.csv"), run.History); err != nil {
		return "", err
	}
	if len(run.Field) > 0 {
		if err := writeField(filepath.Join(runDir, "vorticity.csv"), run.Field, n); err != nil {
			return "", err
		}
	}
	return runID, nil
}

// newRunDir creates <base>/<name>_<unix>, adding a counter when several runs
// start within the same second.
func (s *Store) newRunDir(name string) (string, string, error) {
	if err := s.Init(); err != nil {
		return "", "", err
	}
	base := fmt.Sprintf("%s_%d", name, time.Now().Unix())
	runID := base
	for i := 2; ; i++ {
		runDir := filepath.Join(s.baseDir, runID)
		err := os.Mkdir(runDir, 0755)
		if err == nil {
			return runID, runDir, nil
		}
		if !os.IsExist(err) {
			return "", "", err
		}
		runID = fmt.Sprintf("%s_%d", base, i)
	}
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSeries(path string, history []vortex.Diagnostics) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(append([]string{"frame"}, metrics.Columns...)); err != nil {
		return err
	}
	for _, d := range history {
		row := []string{strconv.Itoa(d.Frame)}
		for _, v := range metrics.Row(d) {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeField(path string, field []float64, n int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	row := make([]string, n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			row[x] = strconv.FormatFloat(field[y*n+x], 'g', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, newest first.
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

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
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

// LoadSeries reads the per-frame diagnostics of a run.
func (s *Store) LoadSeries(runID string) ([]vortex.Diagnostics, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, "diagnostics.csv"))
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []vortex.Diagnostics{}, nil
	}

	history := make([]vortex.Diagnostics, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) != len(metrics.Columns)+1 {
			return nil, fmt.Errorf("%w: diagnostics row %d has %d fields", ErrMalformed, i+1, len(record))
		}
		frame, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("%w: diagnostics row %d: %v", ErrMalformed, i+1, err)
		}
		values, err := parseFloats(record[1:])
		if err != nil {
			return nil, fmt.Errorf("%w: diagnostics row %d: %v", ErrMalformed, i+1, err)
		}
		d, err := metrics.FromRow(frame, values)
		if err != nil {
			return nil, err
		}
		history = append(history, d)
	}
	return history, nil
}

// LoadField reads the final vorticity of a run and its resolution.
func (s *Store) LoadField(runID string) ([]float64, int, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, "vorticity.csv"))
	if err != nil {
		return nil, 0, err
	}
	n := len(records)
	field := make([]float64, 0, n*n)
	for y, record := range records {
		if len(record) != n {
			return nil, 0, fmt.Errorf("%w: vorticity row %d has %d cells, want %d", ErrMalformed, y, len(record), n)
		}
		values, err := parseFloats(record)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: vorticity row %d: %v", ErrMalformed, y, err)
		}
		field = append(field, values...)
	}
	return field, n, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

func parseFloats(fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, s := range fields {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
