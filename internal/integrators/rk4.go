package integrators

import "github.com/neoaces/arm/internal/dynamo"

// RK4 is the classical four-stage explicit Runge–Kutta method.
type RK4[T dynamo.Float] struct{}

func NewRK4[T dynamo.Float]() *RK4[T] {
	return &RK4[T]{}
}

func (RK4[T]) Step(dyn dynamo.Dynamics[T], v0, u, dt T) T {
	half := dt / 2

	k1 := dyn.Derive(v0, u)
	k2 := dyn.Derive(v0+half*k1, u)
	k3 := dyn.Derive(v0+half*k2, u)
	k4 := dyn.Derive(v0+dt*k3, u)

	return v0 + dt/6*(k1+2*k2+2*k3+k4)
}
