package metrics

import (
	"fmt"

	"github.com/san-kum/vortsim/pkg/vortex"
)

// Columns names the per-frame series in the order Row emits them.
var Columns = []string{
	"circulation",
	"enstrophy",
	"kinetic_energy",
	"peak",
	"variance",
	"max_divergence",
	"residual",
}

// Row flattens d into Columns order.
func Row(d vortex.Diagnostics) []float64 {
	return []float64{
		d.Circulation,
		d.Enstrophy,
		d.KineticEnergy,
		d.Peak,
		d.Variance,
		d.MaxDivergence,
		d.Residual,
	}
}

// FromRow is the inverse of Row.
func FromRow(frame int, values []float64) (vortex.Diagnostics, error) {
	if len(values) != len(Columns) {
		return vortex.Diagnostics{}, fmt.Errorf("expected %d values, got %d", len(Columns), len(values))
	}
	return vortex.Diagnostics{
		Frame:         frame,
		Circulation:   values[0],
		Enstrophy:     values[1],
		KineticEnergy: values[2],
		Peak:          values[3],
		Variance:      values[4],
		MaxDivergence: values[5],
		Residual:      values[6],
	}, nil
}

// Recorder keeps the diagnostics history of a run.
type Recorder struct {
	history []vortex.Diagnostics
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Observe(d vortex.Diagnostics) {
	r.history = append(r.history, d)
}

func (r *Recorder) Len() int { return len(r.history) }

// History returns the recorded frames; callers must not modify it.
func (r *Recorder) History() []vortex.Diagnostics { return r.history }

func (r *Recorder) Last() (vortex.Diagnostics, bool) {
	if len(r.history) == 0 {
		return vortex.Diagnostics{}, false
	}
	return r.history[len(r.history)-1], true
}

// Series returns one column of the history by name.
func (r *Recorder) Series(name string) ([]float64, bool) {
	col := -1
	for i, c := range Columns {
		if c == name {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, false
	}
	out := make([]float64, len(r.history))
	for i, d := range r.history {
		out[i] = Row(d)[col]
	}
	return out, true
}

func (r *Recorder) Reset() {
	r.history = r.history[:0]
}
