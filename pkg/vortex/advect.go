package vortex

import "math"

// Advector transports src along (u, v) for dt and writes the result into dst.
// dst and src never alias. Only interior cells of dst need to be written;
// the caller restores the edge afterwards.
type Advector interface {
	Advect(g Grid, dst, src, u, v Field, dt float64)
}

// SemiLagrangian traces each interior cell backwards along its own velocity
// and samples src bilinearly at the departure point. It is stable for any dt
// but smooths the field.
type SemiLagrangian struct {
	Workers int
}

func (a SemiLagrangian) Advect(g Grid, dst, src, u, v Field, dt float64) {
	lo, hi := g.Interior()
	parallelRows(lo, hi, a.Workers, func(y int) {
		for x := lo; x < hi; x++ {
			i := g.Index(x, y)
			dst[i] = Sample(g, src, float64(x)-dt*u[i], float64(y)-dt*v[i])
		}
	})
}

// Sample bilinearly interpolates f at the fractional cell position (x, y).
// On a Wall grid the position is clamped into [0.5, N-1.5] so the stencil
// stays inside the buffer; on a Periodic grid it wraps.
func Sample(g Grid, f Field, x, y float64) float64 {
	if g.Boundary == Periodic {
		x, y = wrap(x, float64(g.N)), wrap(y, float64(g.N))
	} else {
		x = clamp(x, 0.5, float64(g.N)-1.5)
		y = clamp(y, 0.5, float64(g.N)-1.5)
	}

	x0, y0 := math.Floor(x), math.Floor(y)
	fx, fy := x-x0, y-y0
	i0, j0 := int(x0), int(y0)

	return (1-fx)*(1-fy)*f[g.Index(i0, j0)] +
		fx*(1-fy)*f[g.Index(i0+1, j0)] +
		(1-fx)*fy*f[g.Index(i0, j0+1)] +
		fx*fy*f[g.Index(i0+1, j0+1)]
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func wrap(v, n float64) float64 {
	v = math.Mod(v, n)
	if v < 0 {
		v += n
	}
	return v
}
