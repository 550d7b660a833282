package vortex

import "math"

// reconstructVelocity takes the curl of the streamfunction by central
// differences: u = ∂ψ/∂y, v = −∂ψ/∂x. Wall cells are left untouched (zero).
func reconstructVelocity(g Grid, psi, u, v Field, workers int) {
	lo, hi := g.Interior()
	parallelRows(lo, hi, workers, func(y int) {
		for x := lo; x < hi; x++ {
			i := g.Index(x, y)
			u[i] = 0.5 * (psi[g.Index(x, y+1)] - psi[g.Index(x, y-1)])
			v[i] = -0.5 * (psi[g.Index(x+1, y)] - psi[g.Index(x-1, y)])
		}
	})
}

// MaxDivergence returns the largest |∂u/∂x + ∂v/∂y| (central differences)
// over the interior cells. Wall cells count as zero velocity.
func MaxDivergence(g Grid, u, v Field) float64 {
	lo, hi := g.Interior()
	worst := 0.0
	for y := lo; y < hi; y++ {
		for x := lo; x < hi; x++ {
			div := 0.5*(u[g.Index(x+1, y)]-u[g.Index(x-1, y)]) +
				0.5*(v[g.Index(x, y+1)]-v[g.Index(x, y-1)])
			worst = math.Max(worst, math.Abs(div))
		}
	}
	return worst
}
