package vortex

import (
	"math"
	"testing"
)

func TestDiffusionConservesCirculation(t *testing.T) {
	for _, b := range []Boundary{Wall, Periodic} {
		t.Run(b.String(), func(t *testing.T) {
			g, _ := NewGrid(32, b)
			w := randomField(g, 21)
			before := Circulation(g, w)

			d := &ImplicitDiffusion{Iterations: 20}
			for k := 0; k < 5; k++ {
				d.Diffuse(g, w, 1e-3, 1)
			}

			if after := Circulation(g, w); math.Abs(after-before) > 1e-10*math.Abs(before) {
				t.Errorf("circulation drifted: %g -> %g", before, after)
			}
		})
	}
}

func TestDiffusionSmooths(t *testing.T) {
	g, _ := NewGrid(32, Wall)
	w := NewField(g)
	deposit(g, w, 16, 16, 10)
	peak, variance := Peak(g, w), Variance(w)

	d := &ImplicitDiffusion{Iterations: 20, Workers: 2}
	for k := 0; k < 10; k++ {
		d.Diffuse(g, w, 8e-4, 0.8)
		p := Peak(g, w)
		if p > peak {
			t.Fatalf("iteration %d: peak grew from %g to %g", k, peak, p)
		}
		peak = p
	}
	if v := Variance(w); v >= variance {
		t.Errorf("variance did not decrease: %g -> %g", variance, v)
	}
}

func TestDiffusionUniformFieldUnchanged(t *testing.T) {
	g, _ := NewGrid(16, Periodic)
	w := NewField(g)
	w.Fill(3.5)

	(&ImplicitDiffusion{Iterations: 20}).Diffuse(g, w, 0.01, 1)

	for i, v := range w {
		if math.Abs(v-3.5) > 1e-12 {
			t.Fatalf("cell %d = %g, want 3.5", i, v)
		}
	}
}

func TestDiffusionNoop(t *testing.T) {
	g, _ := NewGrid(16, Wall)

	tests := []struct {
		name       string
		nu, dt     float64
		iterations int
	}{
		{"zero viscosity", 0, 1, 20},
		{"zero dt", 1e-3, 0, 20},
		{"no iterations", 1e-3, 1, 0},
		{"NaN viscosity", math.NaN(), 1, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := randomField(g, 9)
			want := w.Clone()
			(&ImplicitDiffusion{Iterations: tt.iterations}).Diffuse(g, w, tt.nu, tt.dt)
			for i := range w {
				if w[i] != want[i] {
					t.Fatalf("cell %d changed: %g -> %g", i, want[i], w[i])
				}
			}
		})
	}
}

func TestDiffusionWorkerIndependent(t *testing.T) {
	for _, b := range []Boundary{Wall, Periodic} {
		g, _ := NewGrid(48, b)
		serial, parallel := randomField(g, 5), randomField(g, 5)

		(&ImplicitDiffusion{Iterations: 20, Workers: 1}).Diffuse(g, serial, 2e-3, 0.8)
		(&ImplicitDiffusion{Iterations: 20, Workers: 4}).Diffuse(g, parallel, 2e-3, 0.8)

		for i := range serial {
			if math.Float64bits(serial[i]) != math.Float64bits(parallel[i]) {
				t.Fatalf("%v: cell %d differs: %g vs %g", b, i, serial[i], parallel[i])
			}
		}
	}
}
