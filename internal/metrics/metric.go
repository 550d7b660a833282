package metrics

import "github.com/san-kum/vortsim/pkg/vortex"

// Metric folds the per-frame diagnostics of a run into one number.
type Metric interface {
	Name() string
	Observe(d vortex.Diagnostics)
	Value() float64
	Reset()
}

// Standard returns the metrics recorded for every stored run.
func Standard() []Metric {
	return []Metric{
		NewCirculationDrift(),
		NewEnergy(),
		NewEnstrophyDecay(),
		NewPeakDecay(),
		NewStability(1e-6),
	}
}

func ObserveAll(ms []Metric, d vortex.Diagnostics) {
	for _, m := range ms {
		m.Observe(d)
	}
}

func Summarize(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
