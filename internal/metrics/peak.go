package metrics

import "github.com/san-kum/vortsim/pkg/vortex"

// PeakDecay is the ratio of the latest max |ω| to the first.
type PeakDecay struct {
	ratio
}

func NewPeakDecay() *PeakDecay {
	return &PeakDecay{ratio{name: "peak_decay", pick: func(d vortex.Diagnostics) float64 { return d.Peak }}}
}
