package vortex

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// PoissonSolver recovers the streamfunction from ∇²ψ = −ω with a fixed
// number of red-black Gauss–Seidel sweeps. The ψ passed to Solve is the warm
// start and is updated in place.
//
// Partial convergence is accepted: too few sweeps shows up as soft,
// compressible-looking large-scale flow, never as an error.
type PoissonSolver struct {
	Sweeps  int
	Workers int

	src Field
}

// Solve relaxes psi towards the solution for vorticity w. On a Wall grid the
// edge of psi is never written and stays at zero. On a Periodic grid the
// source is made mean-free and psi is returned with zero mean.
func (p *PoissonSolver) Solve(g Grid, psi, w Field) {
	src := w
	workers := p.Workers
	if g.Boundary == Periodic {
		if len(p.src) != g.Cells() {
			p.src = NewField(g)
		}
		mean := floats.Sum(w) / float64(len(w))
		for i, v := range w {
			p.src[i] = v - mean
		}
		src = p.src
		// With odd N the wrap joins two cells of the same colour across
		// rows, so rows may no longer be relaxed independently.
		if g.N%2 == 1 {
			workers = 1
		}
	}

	lo, hi := g.Interior()
	for it := 0; it < p.Sweeps; it++ {
		for colour := 0; colour < 2; colour++ {
			parallelRows(lo, hi, workers, func(y int) {
				x := lo
				if (x+y)&1 != colour {
					x++
				}
				for ; x < hi; x += 2 {
					psi[g.Index(x, y)] = 0.25 * (psi[g.Index(x-1, y)] + psi[g.Index(x+1, y)] +
						psi[g.Index(x, y-1)] + psi[g.Index(x, y+1)] + src[g.Index(x, y)])
				}
			})
		}
	}

	if g.Boundary == Periodic {
		floats.AddConst(-floats.Sum(psi)/float64(len(psi)), psi)
	}
}

// PoissonResidual returns max |∇²ψ + ω| over the interior, using the same
// mean-free source as Solve on Periodic grids.
func PoissonResidual(g Grid, psi, w Field) float64 {
	mean := 0.0
	if g.Boundary == Periodic {
		mean = floats.Sum(w) / float64(len(w))
	}
	lo, hi := g.Interior()
	worst := 0.0
	for y := lo; y < hi; y++ {
		for x := lo; x < hi; x++ {
			lap := psi[g.Index(x-1, y)] + psi[g.Index(x+1, y)] + psi[g.Index(x, y-1)] +
				psi[g.Index(x, y+1)] - 4*psi[g.Index(x, y)]
			worst = math.Max(worst, math.Abs(lap+w[g.Index(x, y)]-mean))
		}
	}
	return worst
}
