package vortex

import (
	"fmt"
	"math"
	"sync"
)

// Simulation owns the grid and every buffer of one vorticity–streamfunction
// flow. Create it with New; a resolution change means a new Simulation.
type Simulation struct {
	mu sync.Mutex

	grid    Grid
	nu      float64
	workers int
	correct bool
	frame   int

	poisson  *PoissonSolver
	advector Advector
	diffuser Diffuser

	w    Buffer // vorticity, Front is live
	psi  Field
	u, v Field
}

// New allocates a zeroed simulation of resolution×resolution cells. It fails
// when resolution < 3 or viscosity is not a positive finite number.
func New(resolution int, viscosity float64, opts ...Option) (*Simulation, error) {
	cfg := defaultSettings()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if err := checkViscosity(viscosity); err != nil {
		return nil, err
	}
	g, err := NewGrid(resolution, cfg.boundary)
	if err != nil {
		return nil, err
	}

	s := &Simulation{
		grid:     g,
		nu:       viscosity,
		workers:  cfg.workers,
		correct:  cfg.correct,
		poisson:  &PoissonSolver{Sweeps: cfg.poissonSweeps, Workers: cfg.workers},
		advector: cfg.advector,
		diffuser: cfg.diffuser,
		w:        NewBuffer(g),
		psi:      NewField(g),
		u:        NewField(g),
		v:        NewField(g),
	}
	if s.advector == nil {
		s.advector = SemiLagrangian{Workers: cfg.workers}
	}
	if s.diffuser == nil {
		s.diffuser = &ImplicitDiffusion{Iterations: cfg.diffusionSweeps, Workers: cfg.workers}
	}
	return s, nil
}

func checkViscosity(nu float64) error {
	if !(nu > 0) || math.IsInf(nu, 0) {
		return fmt.Errorf("%w, got %g", ErrViscosity, nu)
	}
	return nil
}

// Step advances the flow by dt: Poisson solve, velocity reconstruction,
// advection, circulation correction and diffusion. A negative or non-finite
// dt leaves the state untouched.
func (s *Simulation) Step(dt float64) {
	if !(dt >= 0) || math.IsInf(dt, 0) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.grid
	s.poisson.Solve(g, s.psi, s.w.Front)
	reconstructVelocity(g, s.psi, s.u, s.v, s.workers)

	before := Circulation(g, s.w.Front)
	s.advector.Advect(g, s.w.Back, s.w.Front, s.u, s.v, dt)
	s.w.Swap()
	g.Mirror(s.w.Front)
	if s.correct {
		restoreCirculation(g, s.w.Front, before)
	}

	s.diffuser.Diffuse(g, s.w.Front, s.nu, dt)
	s.frame++
}

// Inject deposits a Gaussian vorticity blob with peak strength at (x, y).
// Out-of-range coordinates are folded by the boundary policy; a zero or
// non-finite strength changes nothing.
func (s *Simulation) Inject(x, y int, strength float64) {
	if strength == 0 || math.IsNaN(strength) || math.IsInf(strength, 0) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	deposit(s.grid, s.w.Front, x, y, strength)
}

// Snapshot returns a copy of the vorticity field (N² cells, row-major).
func (s *Simulation) Snapshot() []float64 {
	return s.SnapshotInto(nil)
}

// SnapshotInto copies the vorticity field into dst, growing it if needed,
// and returns the result.
func (s *Simulation) SnapshotInto(dst []float64) []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyInto(dst, s.w.Front)
}

// Streamfunction returns a copy of ψ from the most recent frame.
func (s *Simulation) Streamfunction() []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyInto(nil, s.psi)
}

// Velocity returns copies of u and v from the most recent frame.
func (s *Simulation) Velocity() (u, v []float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyInto(nil, s.u), copyInto(nil, s.v)
}

// Reset zeroes every field, keeping resolution and parameters.
func (s *Simulation) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.w.Clear()
	s.psi.Fill(0)
	s.u.Fill(0)
	s.v.Fill(0)
	s.frame = 0
}

// SetViscosity changes ν for subsequent frames.
func (s *Simulation) SetViscosity(nu float64) error {
	if err := checkViscosity(nu); err != nil {
		return err
	}
	s.mu.Lock()
	s.nu = nu
	s.mu.Unlock()
	return nil
}

// Viscosity returns the current kinematic viscosity.
func (s *Simulation) Viscosity() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nu
}

// Grid returns the dimensions and boundary policy fixed at New.
func (s *Simulation) Grid() Grid { return s.grid }

// Resolution returns N, the side length of the grid.
func (s *Simulation) Resolution() int { return s.grid.N }

// Frame counts the Step calls since creation or the last Reset.
func (s *Simulation) Frame() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame
}

// Diagnostics measures the current buffers.
func (s *Simulation) Diagnostics() Diagnostics {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, w := s.grid, s.w.Front
	return Diagnostics{
		Frame:         s.frame,
		Circulation:   Circulation(g, w),
		Enstrophy:     Enstrophy(g, w),
		KineticEnergy: KineticEnergy(s.u, s.v),
		Peak:          Peak(g, w),
		Variance:      Variance(w),
		MaxDivergence: MaxDivergence(g, s.u, s.v),
		Residual:      PoissonResidual(g, s.psi, w),
	}
}

func copyInto(dst []float64, src Field) []float64 {
	if cap(dst) < len(src) {
		dst = make([]float64, len(src))
	}
	dst = dst[:len(src)]
	copy(dst, src)
	return dst
}
