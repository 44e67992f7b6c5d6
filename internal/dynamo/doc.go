// Package dynamo provides the core primitives shared by the arm engine.
//
// The package defines the small set of types every dynamical element and
// solver agrees on:
//
//   - [Dynamics]: capability "given (state, control) -> derivative"
//   - [DerivFunc]: adapter turning a plain function into [Dynamics]
//   - [Integrator]: one-step solver for dv/dt = f(v, u)
//   - [Vec2]: 2-D point in world coordinates (metres)
//
// Domain errors live here as sentinels so every package can match them with
// errors.Is regardless of which layer produced them.
//
// # Example
//
//	dyn := dynamo.DerivFunc[float32](func(v, u float32) float32 { return -v + u })
//	v1 := integrators.NewRK4[float32]().Step(dyn, 0, 1, 0.01)
package dynamo
