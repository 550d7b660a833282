package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/vortsim/pkg/vortex"
)

const (
	DefaultResolution = 128
	DefaultViscosity  = 0.0008
	DefaultDt         = 0.8
	DefaultFrames     = 200
	DefaultStrength   = 60.0
	DefaultBoundary   = "wall"
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Resolution      int            `yaml:"resolution"`
	Viscosity       float64        `yaml:"viscosity"`
	Dt              float64        `yaml:"dt"`
	Frames          int            `yaml:"frames"`
	Boundary        string         `yaml:"boundary"`
	PoissonSweeps   int            `yaml:"poisson_sweeps"`
	DiffusionSweeps int            `yaml:"diffusion_sweeps"`
	Workers         int            `yaml:"workers"`
	Correction      bool           `yaml:"circulation_correction"`
	Vortices        []VortexConfig `yaml:"vortices"`
}

// VortexConfig places one blob. X and Y are fractions of the grid width so
// a scenario looks the same at every resolution.
type VortexConfig struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Strength float64 `yaml:"strength"`
}

func DefaultConfig() *Config {
	return &Config{
		Resolution:      DefaultResolution,
		Viscosity:       DefaultViscosity,
		Dt:              DefaultDt,
		Frames:          DefaultFrames,
		Boundary:        DefaultBoundary,
		PoissonSweeps:   vortex.DefaultPoissonSweeps,
		DiffusionSweeps: vortex.DefaultDiffusionSweeps,
		Correction:      true,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Resolution < 3 {
		return fmt.Errorf("%w: resolution must be at least 3, got %d", ErrInvalid, c.Resolution)
	}
	if !(c.Viscosity > 0) || math.IsInf(c.Viscosity, 0) {
		return fmt.Errorf("%w: viscosity must be positive, got %g", ErrInvalid, c.Viscosity)
	}
	if !(c.Dt > 0) || math.IsInf(c.Dt, 0) {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalid, c.Dt)
	}
	if c.Frames < 0 {
		return fmt.Errorf("%w: frames must not be negative, got %d", ErrInvalid, c.Frames)
	}
	if c.PoissonSweeps <= 0 || c.DiffusionSweeps <= 0 {
		return fmt.Errorf("%w: sweep counts must be positive", ErrInvalid)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalid, c.Workers)
	}
	if _, err := vortex.ParseBoundary(c.Boundary); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	for i, v := range c.Vortices {
		if v.X < 0 || v.X > 1 || v.Y < 0 || v.Y > 1 {
			return fmt.Errorf("%w: vortex %d lies outside the unit square", ErrInvalid, i)
		}
		if math.IsNaN(v.Strength) || math.IsInf(v.Strength, 0) {
			return fmt.Errorf("%w: vortex %d has non-finite strength", ErrInvalid, i)
		}
	}
	return nil
}

// Options translates the solver settings into construction options.
func (c *Config) Options() ([]vortex.Option, error) {
	b, err := vortex.ParseBoundary(c.Boundary)
	if err != nil {
		return nil, err
	}
	return []vortex.Option{
		vortex.WithBoundary(b),
		vortex.WithPoissonSweeps(c.PoissonSweeps),
		vortex.WithDiffusionSweeps(c.DiffusionSweeps),
		vortex.WithWorkers(c.Workers),
		vortex.WithCirculationCorrection(c.Correction),
	}, nil
}

// NewSimulation validates c, builds the simulation and seeds its vortices.
func (c *Config) NewSimulation() (*vortex.Simulation, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	opts, err := c.Options()
	if err != nil {
		return nil, err
	}
	sim, err := vortex.New(c.Resolution, c.Viscosity, opts...)
	if err != nil {
		return nil, err
	}
	c.Seed(sim)
	return sim, nil
}

// Seed injects the configured vortices into sim.
func (c *Config) Seed(sim *vortex.Simulation) {
	n := sim.Resolution()
	for _, v := range c.Vortices {
		x, y := v.Cell(n)
		sim.Inject(x, y, v.Strength)
	}
}

// Cell converts the fractional position to a cell on an n×n grid.
func (v VortexConfig) Cell(n int) (x, y int) {
	return int(math.Round(v.X * float64(n))), int(math.Round(v.Y * float64(n)))
}
