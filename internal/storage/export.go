package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/vortsim/pkg/vortex"
)

type ExportData struct {
	Metadata   *RunMetadata         `json:"metadata"`
	History    []vortex.Diagnostics `json:"history"`
	Resolution int                  `json:"resolution"`
	Vorticity  []float64            `json:"vorticity,omitempty"`
}

// Export writes a stored run as one JSON document. The final field is
// included when the run has one.
func (s *Store) Export(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	history, err := s.LoadSeries(runID)
	if err != nil {
		return err
	}
	data := ExportData{
		Metadata:   meta,
		History:    history,
		Resolution: meta.Resolution,
	}

	field, _, err := s.LoadField(runID)
	switch {
	case err == nil:
		data.Vorticity = field
	case !os.IsNotExist(err):
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportFile is Export into a new file at path.
func (s *Store) ExportFile(path, runID string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.Export(f, runID); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
