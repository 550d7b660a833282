package vortex

import "errors"

// Configuration errors reported by New, options and SetViscosity.
var (
	// ErrResolution indicates a grid too small to have an interior cell.
	ErrResolution = errors.New("vortex: resolution must be at least 3")

	// ErrViscosity indicates a viscosity that is not a positive finite number.
	ErrViscosity = errors.New("vortex: viscosity must be positive and finite")

	// ErrSweeps indicates a non-positive relaxation sweep count.
	ErrSweeps = errors.New("vortex: sweep count must be positive")

	// ErrWorkers indicates a negative worker count.
	ErrWorkers = errors.New("vortex: worker count must not be negative")
)
