package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/vortsim/pkg/vortex"
)

// Spectrum returns the enstrophy spectrum of the full n×n field w: entry k
// holds ½Σ|ŵ|²/n² over the wavevectors whose length rounds to k. The
// entries sum to ½Σw². The transform treats the field as periodic whatever
// the grid's boundary.
func Spectrum(g vortex.Grid, w []float64) []float64 {
	n := g.N
	if n <= 0 || len(w) != n*n {
		return nil
	}

	rows := make([][]float64, n)
	for y := range rows {
		rows[y] = w[y*n : (y+1)*n]
	}
	coeffs := fft.FFT2Real(rows)

	shells := int(math.Round(math.Sqrt2*float64(n/2))) + 1
	spec := make([]float64, shells)
	norm := 0.5 / float64(n*n)
	for y := 0; y < n; y++ {
		ky := wavenumber(y, n)
		for x := 0; x < n; x++ {
			kx := wavenumber(x, n)
			k := int(math.Round(math.Hypot(float64(kx), float64(ky))))
			a := cmplx.Abs(coeffs[y][x])
			spec[k] += a * a * norm
		}
	}
	return spec
}

func wavenumber(i, n int) int {
	if i > n/2 {
		return i - n
	}
	return i
}

// DominantWavenumber returns the shell holding the most enstrophy, ignoring
// the mean at k = 0, or 0 when nothing is above it.
func DominantWavenumber(spec []float64) int {
	if len(spec) < 2 {
		return 0
	}
	rest := spec[1:]
	i := floats.MaxIdx(rest)
	if rest[i] <= 0 {
		return 0
	}
	return i + 1
}
