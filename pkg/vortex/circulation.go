package vortex

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Circulation returns Σω over the interior cells of g. Wall edge cells are
// mirror copies and are not counted.
func Circulation(g Grid, f Field) float64 {
	lo, hi := g.Interior()
	total := 0.0
	for y := lo; y < hi; y++ {
		total += floats.Sum(g.row(f, y))
	}
	return total
}

// restoreCirculation spreads the difference between target and the current
// circulation of f uniformly over the interior. Bilinear backtracing loses
// vorticity wherever the departure point leaves a vortex core, which at large
// dt·|u| is most of it.
func restoreCirculation(g Grid, f Field, target float64) {
	delta := (target - Circulation(g, f)) / float64(g.InteriorCells())
	if delta == 0 || math.IsNaN(delta) || math.IsInf(delta, 0) {
		return
	}
	lo, hi := g.Interior()
	for y := lo; y < hi; y++ {
		floats.AddConst(delta, g.row(f, y))
	}
	g.Mirror(f)
}
