package vortex

import (
	"fmt"
	"strings"
)

// Boundary selects how coordinates outside [0, N) are folded back into the
// grid and how the edge cells of each field are treated.
type Boundary int

const (
	// Wall is a closed box: coordinates clamp to the edge, ψ is zero on the
	// edge and ω mirrors its interior neighbour.
	Wall Boundary = iota
	// Periodic wraps coordinates in both directions; every cell is interior.
	Periodic
)

func (b Boundary) String() string {
	switch b {
	case Wall:
		return "wall"
	case Periodic:
		return "periodic"
	default:
		return fmt.Sprintf("boundary(%d)", int(b))
	}
}

// ParseBoundary accepts the names produced by Boundary.String.
func ParseBoundary(s string) (Boundary, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "wall", "walled", "closed":
		return Wall, nil
	case "periodic", "wrap", "torus":
		return Periodic, nil
	}
	return Wall, fmt.Errorf("unknown boundary: %q", s)
}

// Grid is the immutable N×N cell layout shared by every field of a
// simulation. All index arithmetic goes through Index.
type Grid struct {
	N        int
	Boundary Boundary
}

// NewGrid validates the resolution. A usable grid needs at least one
// non-boundary cell, so n must be at least 3.
func NewGrid(n int, b Boundary) (Grid, error) {
	if n <= 2 {
		return Grid{}, fmt.Errorf("%w, got %d", ErrResolution, n)
	}
	if b != Wall && b != Periodic {
		return Grid{}, fmt.Errorf("unsupported boundary %v", b)
	}
	return Grid{N: n, Boundary: b}, nil
}

// Cells returns N².
func (g Grid) Cells() int { return g.N * g.N }

// Index maps (x, y) to the row-major offset y*N + x. Coordinates outside
// [0, N) are wrapped (Periodic) or clamped (Wall); Index never panics.
func (g Grid) Index(x, y int) int {
	return g.fold(y)*g.N + g.fold(x)
}

func (g Grid) fold(c int) int {
	if g.Boundary == Periodic {
		c %= g.N
		if c < 0 {
			c += g.N
		}
		return c
	}
	if c < 0 {
		return 0
	}
	if c >= g.N {
		return g.N - 1
	}
	return c
}

// Interior returns the half-open coordinate range updated by the solvers,
// identical for both axes.
func (g Grid) Interior() (lo, hi int) {
	if g.Boundary == Periodic {
		return 0, g.N
	}
	return 1, g.N - 1
}

// InteriorCells is the number of cells inside Interior.
func (g Grid) InteriorCells() int {
	lo, hi := g.Interior()
	return (hi - lo) * (hi - lo)
}

// Inside reports whether (x, y) lies in the interior without folding.
func (g Grid) Inside(x, y int) bool {
	lo, hi := g.Interior()
	return x >= lo && x < hi && y >= lo && y < hi
}

// Mirror copies the adjacent interior row or column into every edge cell of
// f (reflective Neumann condition). It does nothing for Periodic grids.
func (g Grid) Mirror(f Field) {
	if g.Boundary == Periodic {
		return
	}
	n := g.N
	for x := 0; x < n; x++ {
		f[g.Index(x, 0)] = f[g.Index(x, 1)]
		f[g.Index(x, n-1)] = f[g.Index(x, n-2)]
	}
	for y := 0; y < n; y++ {
		f[g.Index(0, y)] = f[g.Index(1, y)]
		f[g.Index(n-1, y)] = f[g.Index(n-2, y)]
	}
}

// row returns the interior slice of row y, which is contiguous for both
// boundary policies.
func (g Grid) row(f Field, y int) Field {
	lo, hi := g.Interior()
	return f[g.Index(lo, y) : g.Index(hi-1, y)+1]
}
