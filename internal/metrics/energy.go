package metrics

import (
	"math"

	"github.com/san-kum/vortsim/pkg/vortex"
)

// Energy is the mean kinetic energy over the observed frames.
type Energy struct {
	name    string
	samples int
	total   float64
}

func NewEnergy() *Energy {
	return &Energy{name: "kinetic_energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(d vortex.Diagnostics) {
	e.total += d.KineticEnergy
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *Energy) Reset() {
	e.total = 0
	e.samples = 0
}

// CirculationDrift is the largest deviation of Σω from its first observed
// value, relative to that value. When the flow starts with no net
// circulation the drift is absolute.
type CirculationDrift struct {
	name     string
	initial  float64
	maxDrift float64
	samples  int
}

func NewCirculationDrift() *CirculationDrift {
	return &CirculationDrift{name: "circulation_drift"}
}

func (c *CirculationDrift) Name() string { return c.name }

func (c *CirculationDrift) Observe(d vortex.Diagnostics) {
	if c.samples == 0 {
		c.initial = d.Circulation
	}
	c.samples++

	drift := math.Abs(d.Circulation - c.initial)
	if math.Abs(c.initial) > 1e-12 {
		drift /= math.Abs(c.initial)
	}
	c.maxDrift = math.Max(c.maxDrift, drift)
}

func (c *CirculationDrift) Value() float64 {
	return c.maxDrift
}

func (c *CirculationDrift) Reset() {
	c.initial = 0
	c.maxDrift = 0
	c.samples = 0
}

// EnstrophyDecay is the ratio of the latest enstrophy to the first.
type EnstrophyDecay struct {
	ratio
}

func NewEnstrophyDecay() *EnstrophyDecay {
	return &EnstrophyDecay{ratio{name: "enstrophy_decay", pick: func(d vortex.Diagnostics) float64 { return d.Enstrophy }}}
}

// ratio tracks last/first of one diagnostic.
type ratio struct {
	name        string
	pick        func(vortex.Diagnostics) float64
	first, last float64
	samples     int
}

func (r *ratio) Name() string { return r.name }

func (r *ratio) Observe(d vortex.Diagnostics) {
	v := r.pick(d)
	if r.samples == 0 {
		r.first = v
	}
	r.last = v
	r.samples++
}

func (r *ratio) Value() float64 {
	if r.samples == 0 || r.first == 0 {
		return 1
	}
	return r.last / r.first
}

func (r *ratio) Reset() {
	r.first, r.last = 0, 0
	r.samples = 0
}
