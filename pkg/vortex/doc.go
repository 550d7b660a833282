// Package vortex implements a real-time 2-D incompressible flow integrator in
// the vorticity–streamfunction formulation.
//
// A [Simulation] owns every buffer and advances the vorticity field ω one
// frame at a time:
//
//   - Poisson solve: ∇²ψ = −ω by red-black Gauss–Seidel relaxation
//   - velocity reconstruction: u = ∂ψ/∂y, v = −∂ψ/∂x by central differences
//   - semi-Lagrangian advection of ω along (u, v)
//   - implicit diffusion of ω with viscosity ν
//
// Hosts drive the simulation explicitly; the package has no opinion on timing
// or rendering:
//
//	s, err := vortex.New(128, 0.0008)
//	if err != nil {
//	    return err
//	}
//	s.Inject(64, 64, 60)
//	for i := 0; i < 100; i++ {
//	    s.Step(0.8)
//	}
//	w := s.Snapshot()
//
// # Boundaries
//
// [Wall] (the default) models a closed box: ψ is held at zero on the edge and
// ω mirrors its interior neighbour. [Periodic] wraps every access instead.
// [Grid.Index] applies the policy, so out-of-range coordinates are always
// folded back into the N×N buffer.
//
// # Thread Safety
//
// All methods on [Simulation] are safe for concurrent use. Step, Inject and
// Reset are serialised, so an injection lands strictly before or after a
// frame and never in the middle of a sweep.
package vortex
