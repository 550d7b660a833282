package vortex

// Diffuser applies viscosity nu over dt to w in place.
type Diffuser interface {
	Diffuse(g Grid, w Field, nu, dt float64)
}

// ImplicitDiffusion relaxes the backward-Euler diffusion equation
//
//	ω = (ω₀ + a·(ω[x-1] + ω[x+1] + ω[y-1] + ω[y+1])) / (1 + 4a),  a = ν·dt·N²
//
// for a fixed number of Jacobi iterations seeded from ω₀. Iterations ping-pong
// between two private buffers so rows update independently and the result
// does not depend on Workers. After a fixed iteration count the iterate is
// not the one a serial Gauss–Seidel sweep would produce; both approach the
// same fixed point, Jacobi more slowly. Every update is a convex combination
// of ω₀ and the previous iterate, and with mirrored or wrapped edges the
// interior sum is preserved by each iteration.
type ImplicitDiffusion struct {
	Iterations int
	Workers    int

	iter Buffer
}

func (d *ImplicitDiffusion) Diffuse(g Grid, w Field, nu, dt float64) {
	a := nu * dt * float64(g.N*g.N)
	if !(a > 0) || d.Iterations <= 0 {
		return
	}
	if len(d.iter.Front) != g.Cells() {
		d.iter = NewBuffer(g)
	}
	copy(d.iter.Front, w)
	g.Mirror(d.iter.Front)

	c := 1 / (1 + 4*a)
	lo, hi := g.Interior()
	for k := 0; k < d.Iterations; k++ {
		cur, next := d.iter.Front, d.iter.Back
		parallelRows(lo, hi, d.Workers, func(y int) {
			for x := lo; x < hi; x++ {
				next[g.Index(x, y)] = (w[g.Index(x, y)] + a*(cur[g.Index(x-1, y)]+cur[g.Index(x+1, y)]+
					cur[g.Index(x, y-1)]+cur[g.Index(x, y+1)])) * c
			}
		})
		g.Mirror(next)
		d.iter.Swap()
	}
	copy(w, d.iter.Front)
}
