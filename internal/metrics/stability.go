package metrics

import (
	"math"

	"github.com/san-kum/vortsim/pkg/vortex"
)

// Stability is the fraction of frames whose velocity divergence stayed under
// threshold with every measure finite.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(d vortex.Diagnostics) {
	s.samples++
	if !(d.MaxDivergence <= s.threshold) || !finite(d.Peak) || !finite(d.Circulation) {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
