package integrators

import "github.com/neoaces/arm/internal/dynamo"

type Euler[T dynamo.Float] struct{}

func NewEuler[T dynamo.Float]() *Euler[T] {
	return &Euler[T]{}
}

func (Euler[T]) Step(dyn dynamo.Dynamics[T], v0, u, dt T) T {
	return v0 + dt*dyn.Derive(v0, u)
}
