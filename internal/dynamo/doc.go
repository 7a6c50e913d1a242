// Package dynamo provides core simulation primitives for dynamical systems.
//
// The package defines the fundamental interfaces and types for numerical
// simulation of ordinary differential equations (ODEs):
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Integrator]: numerical stepper interface
//   - [Metric] and [Observer]: per-step hooks
//   - [Simulator]: orchestrates simulation runs
//
// # Example
//
//	sys := nbody.New(dt, nbody.WithStrategy(nbody.StrategyTree))
//	integ, _ := integrators.New("rk4")
//	sim := dynamo.New(sys, integ)
//	result, _ := sim.Run(ctx, sys.State(), cfg)
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe. [ParallelFor] is the only
// concurrent helper; callers must make sure fn only touches disjoint data.
package dynamo
