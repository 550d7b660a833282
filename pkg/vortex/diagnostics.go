package vortex

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Diagnostics summarises the flow after the most recent frame.
type Diagnostics struct {
	Frame         int     `json:"frame"`
	Circulation   float64 `json:"circulation"`
	Enstrophy     float64 `json:"enstrophy"`
	KineticEnergy float64 `json:"kinetic_energy"`
	Peak          float64 `json:"peak"`
	Variance      float64 `json:"variance"`
	MaxDivergence float64 `json:"max_divergence"`
	Residual      float64 `json:"residual"`
}

// Peak returns max |ω| over the interior.
func Peak(g Grid, f Field) float64 {
	lo, hi := g.Interior()
	peak := 0.0
	for y := lo; y < hi; y++ {
		row := g.row(f, y)
		peak = math.Max(peak, math.Max(floats.Max(row), -floats.Min(row)))
	}
	return peak
}

// Enstrophy returns ½Σω² over the interior.
func Enstrophy(g Grid, f Field) float64 {
	lo, hi := g.Interior()
	total := 0.0
	for y := lo; y < hi; y++ {
		row := g.row(f, y)
		total += floats.Dot(row, row)
	}
	return 0.5 * total
}

// KineticEnergy returns ½Σ(u² + v²).
func KineticEnergy(u, v Field) float64 {
	return 0.5 * (floats.Dot(u, u) + floats.Dot(v, v))
}

// Variance returns the population variance of every cell of f.
func Variance(f []float64) float64 {
	if len(f) == 0 {
		return 0
	}
	_, variance := stat.PopMeanVariance(f, nil)
	return variance
}
