package config

import (
	"errors"
	"fmt"
	"math"
)

var ErrUnknownParam = errors.New("config: unknown parameter")

// Params lists the names accepted by Set and Get.
var Params = []string{
	"viscosity",
	"dt",
	"resolution",
	"frames",
	"strength",
	"poisson_sweeps",
	"diffusion_sweeps",
	"workers",
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	out := *c
	out.Vortices = append([]VortexConfig(nil), c.Vortices...)
	return &out
}

// Set assigns one numeric setting by name. Setting "strength" gives every
// vortex that magnitude and keeps its sign. Integer settings reject
// fractional values. Set does not validate the result.
func (c *Config) Set(name string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%w: %s must be finite", ErrInvalid, name)
	}
	switch name {
	case "viscosity":
		c.Viscosity = value
		return nil
	case "dt":
		c.Dt = value
		return nil
	case "strength":
		for i := range c.Vortices {
			c.Vortices[i].Strength = math.Copysign(value, c.Vortices[i].Strength)
		}
		return nil
	}

	target := c.intParam(name)
	if target == nil {
		return fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	if value != math.Trunc(value) {
		return fmt.Errorf("%w: %s must be an integer, got %g", ErrInvalid, name, value)
	}
	*target = int(value)
	return nil
}

// Get reads one numeric setting by name. "strength" is the largest vortex
// magnitude.
func (c *Config) Get(name string) (float64, error) {
	switch name {
	case "viscosity":
		return c.Viscosity, nil
	case "dt":
		return c.Dt, nil
	case "strength":
		peak := 0.0
		for _, v := range c.Vortices {
			peak = math.Max(peak, math.Abs(v.Strength))
		}
		return peak, nil
	}
	if target := c.intParam(name); target != nil {
		return float64(*target), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownParam, name)
}

func (c *Config) intParam(name string) *int {
	switch name {
	case "resolution":
		return &c.Resolution
	case "frames":
		return &c.Frames
	case "poisson_sweeps":
		return &c.PoissonSweeps
	case "diffusion_sweeps":
		return &c.DiffusionSweeps
	case "workers":
		return &c.Workers
	}
	return nil
}
