package vortex

import "fmt"

const (
	// DefaultPoissonSweeps and DefaultDiffusionSweeps match the interactive
	// quality/performance balance at N = 128.
	DefaultPoissonSweeps   = 60
	DefaultDiffusionSweeps = 20
)

// Option configures a Simulation at construction.
type Option func(*settings) error

type settings struct {
	boundary        Boundary
	poissonSweeps   int
	diffusionSweeps int
	workers         int
	correct         bool
	advector        Advector
	diffuser        Diffuser
}

func defaultSettings() settings {
	return settings{
		boundary:        Wall,
		poissonSweeps:   DefaultPoissonSweeps,
		diffusionSweeps: DefaultDiffusionSweeps,
		correct:         true,
	}
}

// WithBoundary selects the boundary policy (Wall by default).
func WithBoundary(b Boundary) Option {
	return func(s *settings) error {
		if b != Wall && b != Periodic {
			return fmt.Errorf("unsupported boundary %v", b)
		}
		s.boundary = b
		return nil
	}
}

// WithPoissonSweeps sets the Gauss–Seidel sweep count per frame.
func WithPoissonSweeps(n int) Option {
	return func(s *settings) error {
		if n <= 0 {
			return fmt.Errorf("poisson: %w, got %d", ErrSweeps, n)
		}
		s.poissonSweeps = n
		return nil
	}
}

// WithDiffusionSweeps sets the diffusion relaxation count per frame.
func WithDiffusionSweeps(n int) Option {
	return func(s *settings) error {
		if n <= 0 {
			return fmt.Errorf("diffusion: %w, got %d", ErrSweeps, n)
		}
		s.diffusionSweeps = n
		return nil
	}
}

// WithWorkers bounds the goroutines used per sweep; 0 means GOMAXPROCS and
// 1 keeps everything on the calling goroutine.
func WithWorkers(n int) Option {
	return func(s *settings) error {
		if n < 0 {
			return fmt.Errorf("%w, got %d", ErrWorkers, n)
		}
		s.workers = n
		return nil
	}
}

// WithCirculationCorrection toggles the post-advection step that restores
// the total circulation lost by interpolation. Enabled by default.
func WithCirculationCorrection(on bool) Option {
	return func(s *settings) error {
		s.correct = on
		return nil
	}
}

// WithAdvector replaces the semi-Lagrangian transport stage.
func WithAdvector(a Advector) Option {
	return func(s *settings) error {
		s.advector = a
		return nil
	}
}

// WithDiffuser replaces the implicit diffusion stage.
func WithDiffuser(d Diffuser) Option {
	return func(s *settings) error {
		s.diffuser = d
		return nil
	}
}
