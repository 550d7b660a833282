package vortex

import "math"

const (
	// blobRadiusDivisor makes an injected blob N/24 cells in radius.
	blobRadiusDivisor = 24
	// blobFalloff scales the Gaussian: weight = exp(-d²/(blobFalloff·r)).
	blobFalloff = 0.6
)

// BlobRadius is the radius in cells of the vorticity blob deposited by
// Inject on a grid of resolution n.
func BlobRadius(n int) float64 {
	return float64(n) / blobRadiusDivisor
}

// deposit adds a Gaussian vorticity blob of peak strength centred at (x, y).
// On a Wall grid the centre is clamped into the interior and stencil cells
// outside it are skipped; on a Periodic grid everything wraps.
func deposit(g Grid, w Field, x, y int, strength float64) {
	if g.Boundary == Periodic {
		x, y = g.fold(x), g.fold(y)
	} else {
		lo, hi := g.Interior()
		x, y = clampInt(x, lo, hi-1), clampInt(y, lo, hi-1)
	}

	r := BlobRadius(g.N)
	reach := int(math.Ceil(r))
	for j := -reach; j <= reach; j++ {
		for i := -reach; i <= reach; i++ {
			d := float64(i*i + j*j)
			if d > r*r {
				continue
			}
			cx, cy := x+i, y+j
			if g.Boundary == Wall && !g.Inside(cx, cy) {
				continue
			}
			w[g.Index(cx, cy)] += strength * math.Exp(-d/(blobFalloff*r))
		}
	}
	g.Mirror(w)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
